package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter 以令牌桶方式限制对外部数据源的调用频率，
// 替代在业务循环中硬编码的 sleep。
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter 创建限流器，perMinute 为每分钟允许的请求数。
func NewLimiter(perMinute int) *Limiter {
	if perMinute <= 0 {
		perMinute = 60
	}

	rps := float64(perMinute) / 60.0
	burst := perMinute / 10
	if burst < 1 {
		burst = 1
	}
	if burst > 5 {
		burst = 5
	}

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Wait 阻塞至获得令牌或上下文取消。
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow 立即判断当前是否可以发起请求。
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
