package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// RedisRateLimiter is a fixed-window counter shared by every instance
// pointing at the same Redis. Each window bucket is its own key with a TTL.
type RedisRateLimiter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, now: time.Now}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	if limit <= 0 || window <= 0 {
		return Result{Allowed: true}, nil
	}

	now := l.now()
	bucket := now.UnixNano() / int64(window)
	redisKey := fmt.Sprintf("%s%s:%d", keyPrefix, key, bucket)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Result{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, window+time.Second).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}

	windowEnd := time.Unix(0, (bucket+1)*int64(window))
	if count > int64(limit) {
		return Result{Allowed: false, RetryAfter: windowEnd.Sub(now)}, nil
	}
	return Result{Allowed: true, Remaining: limit - int(count)}, nil
}
