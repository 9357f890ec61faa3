package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	fixed := time.Date(2024, time.May, 1, 12, 0, 10, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		res, err := limiter.Allow(ctx, "ip:1.2.3.4", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 4-i, res.Remaining)
	}

	res, err := limiter.Allow(ctx, "ip:1.2.3.4", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 50*time.Second, res.RetryAfter)

	other, err := limiter.Allow(ctx, "ip:5.6.7.8", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, other.Allowed)

	limiter.now = func() time.Time { return fixed.Add(time.Minute) }
	next, err := limiter.Allow(ctx, "ip:1.2.3.4", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, next.Allowed, "a new window starts fresh")
}

func TestRedisRateLimiter_DisabledLimit(t *testing.T) {
	limiter := NewRedisRateLimiter(nil)
	res, err := limiter.Allow(context.Background(), "any", 0, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}
