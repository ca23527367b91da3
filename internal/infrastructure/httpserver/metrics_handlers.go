package httpserver

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsEndpoint serves the Prometheus scrape endpoint.
func (s *Server) metricsEndpoint(c echo.Context) error {
	handler := promhttp.Handler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
