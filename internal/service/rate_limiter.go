package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prperemyshlev/donor-service/pkg/database"
)

// ErrRateLimited is returned when a key has used up its window
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimitError reports how long the caller must wait
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, try again in %v", e.RetryAfter.Round(time.Second))
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// RateLimitDecision is the outcome of a rate limit check
type RateLimitDecision struct {
	Limit     int
	Remaining int
}

// RateLimiter handles rate limiting using a Redis sliding window log
type RateLimiter struct {
	redis *database.Redis
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redis *database.Redis) *RateLimiter {
	return &RateLimiter{redis: redis}
}

// Allow records a hit for key and reports the remaining budget.
// It returns a *RateLimitError once limit hits fall inside window.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitDecision, error) {
	now := time.Now()
	redisKey := "ratelimit:" + key
	windowStart := strconv.FormatInt(now.Add(-window).UnixMilli(), 10)

	if err := r.redis.Client.ZRemRangeByScore(ctx, redisKey, "0", windowStart).Err(); err != nil {
		return nil, fmt.Errorf("failed to clean old entries: %w", err)
	}

	count, err := r.redis.Client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	if count >= int64(limit) {
		retryAfter := window
		oldest, err := r.redis.Client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		if err == nil && len(oldest) > 0 {
			retryAfter = window - now.Sub(time.UnixMilli(int64(oldest[0].Score)))
		}
		return &RateLimitDecision{Limit: limit}, &RateLimitError{RetryAfter: max(retryAfter, time.Second)}
	}

	pipe := r.redis.Client.TxPipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	pipe.Expire(ctx, redisKey, window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to add entry: %w", err)
	}

	return &RateLimitDecision{Limit: limit, Remaining: limit - int(count) - 1}, nil
}
