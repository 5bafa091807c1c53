package utils

import (
	"sync"
	"time"
)

// 使用 sync.Map 保证并发安全
var memoryCache sync.Map

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      string
	expiration int64
}

// SetCache 设置缓存
// 主要用于登出后的 Token 黑名单，TTL 取 Token 的剩余有效期
func SetCache(key, value string, ttl time.Duration) {
	memoryCache.Store(key, cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl).UnixNano(),
	})
}

// GetCache 获取缓存并验证是否过期
func GetCache(key string) (string, bool) {
	val, ok := memoryCache.Load(key)
	if !ok {
		return "", false
	}

	item := val.(cacheItem)

	// 懒删除
	if time.Now().UnixNano() > item.expiration {
		memoryCache.Delete(key)
		return "", false
	}

	return item.value, true
}

// PurgeExpired 全量清理过期条目，返回清理数量
// 黑名单条目靠懒删除可能长期滞留，定时任务会周期性调用这里兜底
func PurgeExpired() int {
	now := time.Now().UnixNano()
	purged := 0
	memoryCache.Range(func(key, val interface{}) bool {
		if item, ok := val.(cacheItem); ok && now > item.expiration {
			memoryCache.Delete(key)
			purged++
		}
		return true
	})
	return purged
}
