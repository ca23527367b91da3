package ports

import (
	"context"
	"time"
)

// RateLimitRepository defines the interface for rate limit counter storage
type RateLimitRepository interface {
	IncrementWindow(ctx context.Context, caller string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

// RateLimiter decides whether a caller may proceed within the current window.
type RateLimiter interface {
	Allow(ctx context.Context, caller string) (allowed bool, remaining int, limit int, reset time.Time, err error)
}
