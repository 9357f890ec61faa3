package ratelimit

import (
	"context"
	"time"
)

// Result describes a single rate limit decision.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter counts hits per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
}
