package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/infrastructure/ratelimit"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

// RateLimiter enforces a fixed-window request budget per client IP.
// Counters live in Redis so every instance shares them.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	scope   string
	limit   int
	window  time.Duration
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, scope string, limit int, window time.Duration, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		scope:   scope,
		limit:   limit,
		window:  window,
		logger:  logger,
	}
}

// Limit applies the budget to every request.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c) {
			return
		}
		c.Next()
	}
}

// LimitAnonymous applies the budget only to requests without an identity.
// It must run after OptionalAuth.
func (rl *RateLimiter) LimitAnonymous() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); ok {
			c.Next()
			return
		}
		if !rl.allow(c) {
			return
		}
		c.Next()
	}
}

// allow writes the 429 itself and reports whether the request may continue.
// Limiter errors fail open.
func (rl *RateLimiter) allow(c *gin.Context) bool {
	if rl.limiter == nil || rl.limit <= 0 {
		return true
	}

	key := fmt.Sprintf("%s:ip:%s", rl.scope, c.ClientIP())
	res, err := rl.limiter.Allow(c.Request.Context(), key, rl.limit, rl.window)
	if err != nil {
		rl.logger.Warnw("rate limiter unavailable, allowing request", "error", err, "scope", rl.scope)
		return true
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	if res.Allowed {
		return true
	}

	c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
	utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
	c.Abort()
	return false
}
