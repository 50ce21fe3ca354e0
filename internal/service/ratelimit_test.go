package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterFirstCallAllowed(t *testing.T) {
	limiter := NewRateLimiter()

	allowed, remaining := limiter.CheckAndRecord(time.Now())
	require.True(t, allowed)
	require.Equal(t, 0, remaining)
}

func TestRateLimiterThrottlesWithinCooldown(t *testing.T) {
	limiter := NewRateLimiter()
	base := time.Now()

	allowed, _ := limiter.CheckAndRecord(base)
	require.True(t, allowed)

	// 500ms后再次请求,应被限流,剩余约2秒
	allowed, remaining := limiter.CheckAndRecord(base.Add(500 * time.Millisecond))
	require.False(t, allowed)
	require.Equal(t, 2, remaining)
}

func TestRateLimiterAllowsAfterCooldown(t *testing.T) {
	limiter := NewRateLimiter()
	base := time.Now()

	allowed, _ := limiter.CheckAndRecord(base)
	require.True(t, allowed)

	allowed, remaining := limiter.CheckAndRecord(base.Add(2100 * time.Millisecond))
	require.True(t, allowed)
	require.Equal(t, 0, remaining)
}

func TestRateLimiterThrottledCallDoesNotResetCooldown(t *testing.T) {
	limiter := NewRateLimiter()
	base := time.Now()

	limiter.CheckAndRecord(base)

	// 被限流的请求不应刷新冷却起点
	allowed, _ := limiter.CheckAndRecord(base.Add(1500 * time.Millisecond))
	require.False(t, allowed)

	allowed, _ = limiter.CheckAndRecord(base.Add(2100 * time.Millisecond))
	require.True(t, allowed)
}
