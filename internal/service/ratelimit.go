package service

import (
	"sync"
	"time"
)

// 两次生成请求之间的最小间隔
const cooldownInterval = 2000 * time.Millisecond

// RateLimiter 进程内冷却限流,重启后状态清零
type RateLimiter struct {
	mu          sync.Mutex
	lastAllowed time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{}
}

// CheckAndRecord 检查冷却并记录本次请求时间
// 检查和更新在同一把锁内完成,并发调用不会同时放行
func (r *RateLimiter) CheckAndRecord(now time.Time) (allowed bool, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := now.Sub(r.lastAllowed)
	if !r.lastAllowed.IsZero() && elapsed < cooldownInterval {
		remaining = int((cooldownInterval - elapsed + time.Second - 1) / time.Second)
		return false, remaining
	}

	r.lastAllowed = now
	return true, 0
}
