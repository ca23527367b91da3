package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kalado/auth-gateway/internal/core/ports"
)

// RateLimiterService implements RateLimiter with a single static policy over
// fixed windows. Callers are identified by an opaque key (the gateway uses
// the client IP).
type RateLimiterService struct {
	repo      ports.RateLimitRepository
	limit     int
	window    time.Duration
	keyPrefix string
	logger    *logrus.Logger
}

// RateLimiterConfig groups configuration parameters for the rate limiter.
type RateLimiterConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	KeyPrefix         string
}

func NewRateLimiterService(repo ports.RateLimitRepository, cfg *RateLimiterConfig, logger *logrus.Logger) ports.RateLimiter {
	// Apply defaults
	limit := 120
	window := time.Minute
	keyPrefix := "ratelimit:gateway"
	if cfg != nil {
		if cfg.RequestsPerWindow > 0 {
			limit = cfg.RequestsPerWindow
		}
		if cfg.Window > 0 {
			window = cfg.Window
		}
		if cfg.KeyPrefix != "" {
			keyPrefix = cfg.KeyPrefix
		}
	}
	return &RateLimiterService{repo: repo, limit: limit, window: window, keyPrefix: keyPrefix, logger: logger}
}

func (s *RateLimiterService) Allow(ctx context.Context, caller string) (bool, int, int, time.Time, error) {
	ttl := s.window * 2 // retain overlap window
	count, windowStart, err := s.repo.IncrementWindow(ctx, caller, s.window, s.keyPrefix, ttl)
	reset := windowStart.Add(s.window)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"caller": caller}).WithError(err).Error("rate limiter: failed to increment window")
		}
		// fail open
		return true, s.limit, s.limit, reset, err
	}
	if count > s.limit {
		return false, 0, s.limit, reset, nil
	}
	return true, s.limit - count, s.limit, reset, nil
}
