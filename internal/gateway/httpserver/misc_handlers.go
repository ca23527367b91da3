package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
)

// ErrorResponse is the wire shape of every error leaving the gateway.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		status := domainErr.Code.HTTPStatus()
		_ = c.JSON(status, ErrorResponse{Code: status, Message: domainErr.Message})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		_ = c.JSON(httpErr.Code, ErrorResponse{Code: httpErr.Code, Message: msg})
		return
	}

	if s.logger != nil {
		s.logger.WithError(err).Error("unhandled gateway error")
	}
	_ = c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}

type healthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	status := healthStatus{Status: "ok", Checks: make(map[string]string, len(s.healthCheckers))}
	code := http.StatusOK

	for _, checker := range s.healthCheckers {
		if err := checker.Check(ctx); err != nil {
			status.Checks[checker.Name()] = err.Error()
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[checker.Name()] = "ok"
	}

	return c.JSON(code, status)
}

func (s *Server) metricsEndpoint(c echo.Context) error {
	handler := promhttp.Handler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
