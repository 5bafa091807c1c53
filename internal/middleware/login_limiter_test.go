package middleware

import (
	"testing"
	"time"
)

func TestLoginLimiterAllowsUnderLimit(t *testing.T) {
	limiter := NewLoginLimiter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		if result := limiter.Check("a@example.com"); !result.Allowed {
			t.Fatalf("第 %d 次检查应放行", i+1)
		}
		limiter.RecordFailure("a@example.com")
	}

	result := limiter.Check("a@example.com")
	if result.Allowed {
		t.Fatal("超过失败上限后应拒绝")
	}
	if result.RetryAfter <= 0 || result.RetryAfter > time.Minute {
		t.Fatalf("RetryAfter 应在 (0, window] 内, got %v", result.RetryAfter)
	}
}

func TestLoginLimiterIsolatesAccounts(t *testing.T) {
	limiter := NewLoginLimiter(time.Minute, 1)

	limiter.RecordFailure("a@example.com")
	if limiter.Check("a@example.com").Allowed {
		t.Fatal("a 账号应被限流")
	}
	// 不同账号互不影响
	if !limiter.Check("b@example.com").Allowed {
		t.Fatal("b 账号不应受 a 的失败影响")
	}
}

func TestLoginLimiterResetOnSuccess(t *testing.T) {
	limiter := NewLoginLimiter(time.Minute, 1)

	limiter.RecordFailure("a@example.com")
	if limiter.Check("a@example.com").Allowed {
		t.Fatal("限流前置条件不成立")
	}

	limiter.Reset("a@example.com")
	if !limiter.Check("a@example.com").Allowed {
		t.Fatal("登录成功 Reset 后应立即放行")
	}
}

func TestLoginLimiterWindowRollover(t *testing.T) {
	limiter := NewLoginLimiter(10*time.Millisecond, 1)

	limiter.RecordFailure("a@example.com")
	if limiter.Check("a@example.com").Allowed {
		t.Fatal("窗口内应被限流")
	}

	time.Sleep(20 * time.Millisecond)
	if !limiter.Check("a@example.com").Allowed {
		t.Fatal("窗口滚动后应重新放行")
	}
}
