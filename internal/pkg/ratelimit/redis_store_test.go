package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAPIRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	limiter := NewRateLimiter(client, 2, time.Minute)
	ctx := context.Background()

	res, err := limiter.CheckAPIRateLimit(ctx, "user-1", "/search")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, int64(1), res.Remaining)
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:api:user-1:/search"))

	res, err = limiter.CheckAPIRateLimit(ctx, "user-1", "/search")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.CheckAPIRateLimit(ctx, "user-1", "/search")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, int64(0), res.Remaining)

	// other subjects have their own window
	res, err = limiter.CheckAPIRateLimit(ctx, "user-2", "/search")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	// window expiry resets the counter
	mr.FastForward(time.Minute + time.Second)
	res, err = limiter.CheckAPIRateLimit(ctx, "user-1", "/search")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestCheckAPIRateLimitRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	_, err := NewRateLimiter(client, 2, time.Minute).CheckAPIRateLimit(context.Background(), "u", "/r")
	assert.Error(t, err)
}

func TestCheckAPIRateLimitRearmsMissingWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	// a counter stuck over the limit with no expiry
	key := "ratelimit:api:user-1:/search"
	require.NoError(t, mr.Set(key, "5"))
	assert.Equal(t, time.Duration(0), mr.TTL(key))

	limiter := NewRateLimiter(client, 2, time.Minute)
	res, err := limiter.CheckAPIRateLimit(context.Background(), "user-1", "/search")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, time.Minute, mr.TTL(key))
	assert.Equal(t, time.Minute, res.ResetIn)

	// a live window keeps its remaining time
	mr.FastForward(20 * time.Second)
	res, err = limiter.CheckAPIRateLimit(context.Background(), "user-1", "/search")
	require.NoError(t, err)
	assert.Equal(t, 40*time.Second, mr.TTL(key))
	assert.Equal(t, 40*time.Second, res.ResetIn)

	mr.FastForward(41 * time.Second)
	res, err = limiter.CheckAPIRateLimit(context.Background(), "user-1", "/search")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}
