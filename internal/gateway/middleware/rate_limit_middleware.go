package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/kalado/auth-gateway/internal/core/ports"
)

type RateLimitMiddleware struct {
	rateLimiter ports.RateLimiter
	logger      *logrus.Logger
}

func NewRateLimitMiddleware(rateLimiter ports.RateLimiter, logger *logrus.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter, logger: logger}
}

// Handler limits requests per client IP over a fixed window, failing open on
// limiter errors.
func (r *RateLimitMiddleware) Handler() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := c.RealIP()

			allowed, remaining, limit, reset, rlErr := r.rateLimiter.Allow(c.Request().Context(), caller)
			c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			c.Response().Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			c.Response().Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", reset.Unix()))

			if rlErr != nil {
				if r.logger != nil {
					r.logger.WithError(rlErr).WithField("caller", caller).Warn("rate limiter error; allowing request (fail-open)")
				}
				return next(c)
			}

			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
