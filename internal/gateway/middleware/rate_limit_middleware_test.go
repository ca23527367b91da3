package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/kalado/auth-gateway/internal/gateway/middleware"
)

type limiterFunc func(ctx context.Context, caller string) (bool, int, int, time.Time, error)

func (f limiterFunc) Allow(ctx context.Context, caller string) (bool, int, int, time.Time, error) {
	return f(ctx, caller)
}

func runLimiter(t *testing.T, limiter limiterFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/product", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := middleware.NewRateLimitMiddleware(limiter, nil).Handler()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestRateLimitMiddleware_Allows(t *testing.T) {
	reset := time.Now().Add(time.Minute)
	rec, err := runLimiter(t, func(ctx context.Context, caller string) (bool, int, int, time.Time, error) {
		return true, 9, 10, reset, nil
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "9", rec.Header().Get("X-RateLimit-Remaining"))
	require.Equal(t, fmt.Sprintf("%d", reset.Unix()), rec.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimitMiddleware_Blocks(t *testing.T) {
	_, err := runLimiter(t, func(ctx context.Context, caller string) (bool, int, int, time.Time, error) {
		return false, 0, 10, time.Now().Add(time.Minute), nil
	})
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusTooManyRequests, httpErr.Code)
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	rec, err := runLimiter(t, func(ctx context.Context, caller string) (bool, int, int, time.Time, error) {
		return true, 0, 10, time.Time{}, fmt.Errorf("redis unreachable")
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}
