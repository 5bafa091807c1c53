package utils

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	SetCache("k1", "v1", time.Minute)

	value, ok := GetCache("k1")
	if !ok || value != "v1" {
		t.Fatalf("GetCache 应命中 v1, got %v ok=%v", value, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	SetCache("k2", "v2", 10*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	if _, ok := GetCache("k2"); ok {
		t.Fatal("过期键不应命中")
	}
}

func TestCachePurgeExpired(t *testing.T) {
	SetCache("live", "1", time.Minute)
	SetCache("dead1", "1", time.Millisecond)
	SetCache("dead2", "1", time.Millisecond)

	time.Sleep(10 * time.Millisecond)

	if purged := PurgeExpired(); purged < 2 {
		t.Fatalf("应至少清理 2 个过期键, got %d", purged)
	}
	if _, ok := GetCache("live"); !ok {
		t.Fatal("未过期键不应被清理")
	}
}
