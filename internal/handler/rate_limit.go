package handler

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prperemyshlev/donor-service/internal/service"
)

// RateLimiter checks and records hits for a key
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*service.RateLimitDecision, error)
}

// RateLimitMiddleware limits requests per key. Limiter outages fail open.
func RateLimitMiddleware(limiter RateLimiter, logger *zap.Logger, limit int, window time.Duration, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)

		decision, err := limiter.Allow(c.Request.Context(), key, limit, window)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))

		var limitErr *service.RateLimitError
		switch {
		case errors.As(err, &limitErr):
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(limitErr.RetryAfter.Seconds()))))
			respondError(c, err)
			return
		case err != nil:
			logger.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
		default:
			c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		}

		c.Next()
	}
}

// IPBasedKey returns a key function scoping the limit to the client IP and route
func IPBasedKey(scope string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		return scope + ":" + c.ClientIP()
	}
}
