package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestNewLimiter_DefaultsOnInvalidInput(t *testing.T) {
	l := NewLimiter(0)
	if !l.Allow() {
		t.Error("新建限流器应允许首个请求")
	}
}

func TestLimiter_BurstExhaustion(t *testing.T) {
	// 每分钟6个请求不构成突发额度，桶内只有1个令牌。
	l := NewLimiter(6)
	if !l.Allow() {
		t.Fatal("首个请求应被放行")
	}
	if l.Allow() {
		t.Error("令牌耗尽后应拒绝请求")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(6)
	l.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Error("上下文超时后 Wait 应返回错误")
	}
}
