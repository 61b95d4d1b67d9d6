package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/fundboard/fundboard/internal/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const rateLimitWindow = time.Minute

// RateLimiter throttles authenticated users with a fixed per-minute window
// counted in Redis. Each user gets their own counter so one noisy workspace
// member cannot starve the others.
type RateLimiter struct {
	client *Client
	limit  int64
}

// NewRateLimiter creates a rate limiter allowing RequestsPerMinute plus
// Burst requests per user per window.
func NewRateLimiter(client *Client, cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  int64(cfg.RequestsPerMinute + cfg.Burst),
	}
}

func userKey(userID uuid.UUID) string {
	return fmt.Sprintf("ratelimit:user:%s", userID)
}

// Allow records one request for the user and reports whether it fits in the
// current window, along with the requests left and when the window resets.
func (r *RateLimiter) Allow(ctx context.Context, userID uuid.UUID) (bool, int, time.Time, error) {
	key := userKey(userID)

	pipe := r.client.rdb.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, rateLimitWindow)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, 0, time.Time{}, fmt.Errorf("failed to count request: %w", err)
	}

	count := incr.Val()
	remaining := r.limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetAt := time.Now().Truncate(rateLimitWindow).Add(rateLimitWindow)

	return count <= r.limit, int(remaining), resetAt, nil
}

// Reset clears the user's window counter
func (r *RateLimiter) Reset(ctx context.Context, userID uuid.UUID) error {
	return r.client.rdb.Del(ctx, userKey(userID)).Err()
}
