// internal/pkg/ratelimit/redis_store.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window request counter per subject and route.
type RateLimiter struct {
	client      redis.Cmdable
	maxRequests int64
	window      time.Duration
}

func NewRateLimiter(client redis.Cmdable, maxRequests int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
	}
}

// Result of a single rate-limit check.
type Result struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetIn   time.Duration
}

// CheckAPIRateLimit counts one request by subject against route.
func (r *RateLimiter) CheckAPIRateLimit(ctx context.Context, subject, route string) (Result, error) {
	key := fmt.Sprintf("ratelimit:api:%s:%s", subject, route)

	// ExpireNX only arms the window once, and also repairs a key left without a TTL.
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, r.window)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to increment API rate limit: %w", err)
	}

	count := incr.Val()
	ttl := ttlCmd.Val()
	if ttl < 0 {
		ttl = r.window
	}

	remaining := r.maxRequests - count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   count <= r.maxRequests,
		Limit:     r.maxRequests,
		Remaining: remaining,
		ResetIn:   ttl,
	}, nil
}
