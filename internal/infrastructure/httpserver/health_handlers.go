package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

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
