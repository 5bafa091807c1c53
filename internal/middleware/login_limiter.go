package middleware

import (
	"fmt"
	"sync"
	"time"
)

// ==================== LoginLimiter 登录限流器 ====================

// LoginLimiter 登录尝试限流器
// 按邮箱聚合失败次数，窗口内超限后拒绝，防止对单个账号的暴力破解
type LoginLimiter struct {
	entries sync.Map // email -> *attemptEntry

	window      time.Duration // 统计窗口
	maxAttempts int           // 窗口内允许的失败次数
}

// attemptEntry 单账号的尝试记录
type attemptEntry struct {
	mu          sync.Mutex
	failures    int
	windowStart time.Time
}

// 全局限流器实例
var globalLoginLimiter = NewLoginLimiter(time.Minute, 5)

// GetLoginLimiter 获取全局登录限流器
func GetLoginLimiter() *LoginLimiter {
	return globalLoginLimiter
}

// NewLoginLimiter 创建登录限流器
func NewLoginLimiter(window time.Duration, maxAttempts int) *LoginLimiter {
	return &LoginLimiter{
		window:      window,
		maxAttempts: maxAttempts,
	}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Check 是否允许对该账号再次尝试登录
func (l *LoginLimiter) Check(email string) CheckResult {
	val, _ := l.entries.LoadOrStore(email, &attemptEntry{windowStart: time.Now()})
	entry := val.(*attemptEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// 窗口滚动
	if time.Since(entry.windowStart) > l.window {
		entry.failures = 0
		entry.windowStart = time.Now()
	}

	if entry.failures >= l.maxAttempts {
		retryAfter := l.window - time.Since(entry.windowStart)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return CheckResult{Allowed: false, RetryAfter: retryAfter}
	}

	return CheckResult{Allowed: true}
}

// RecordFailure 记录一次登录失败
func (l *LoginLimiter) RecordFailure(email string) {
	val, _ := l.entries.LoadOrStore(email, &attemptEntry{windowStart: time.Now()})
	entry := val.(*attemptEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if time.Since(entry.windowStart) > l.window {
		entry.failures = 0
		entry.windowStart = time.Now()
	}
	entry.failures++
}

// Reset 登录成功后清零
func (l *LoginLimiter) Reset(email string) {
	l.entries.Delete(email)
}

// RetryMessage 友好的限流提示
func RetryMessage(retryAfter time.Duration) string {
	seconds := int(retryAfter.Seconds()) + 1
	return fmt.Sprintf("登录尝试过于频繁，请 %d 秒后重试", seconds)
}
