package httpserver

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
	s.echo.Use(middleware.RequestID())

	s.echo.Use(s.metrics.CollectHTTPMetrics())
	s.echo.Use(s.logging.RequestLogging())
	s.echo.Use(s.rateLimit.Handler())
}

func (s *Server) setupRoutes() error {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	auth := s.echo.Group("/v1/auth")
	auth.POST("/login", s.login)
	auth.POST("/register", s.register)
	auth.POST("/verify", s.verifyEmail)
	auth.POST("/resend-verification", s.resendVerification)

	// Operations that need a verified identity first.
	auth.GET("/validate", s.validate, s.gate.RequireAuth())
	auth.POST("/logout", s.logout, s.gate.RequireAuth())
	auth.GET("/info", s.getUsername, s.gate.RequireAuth())

	// Downstream services, reverse-proxied behind the gate. The role policy
	// applies per request path inside the gate middleware.
	proxies := []struct {
		prefix string
		target string
	}{
		{"/v1/product", s.gatewayConfig.ProductURL},
		{"/v1/create", s.gatewayConfig.ProductURL},
		{"/v1/payment", s.gatewayConfig.PaymentURL},
		{"/v1/reports", s.gatewayConfig.ReportingURL},
		{"/v1/user", s.gatewayConfig.UserURL},
	}
	for _, p := range proxies {
		target, err := url.Parse(p.target)
		if err != nil {
			return fmt.Errorf("invalid upstream URL for %s: %w", p.prefix, err)
		}
		group := s.echo.Group(p.prefix, s.gate.RequireAuth())
		group.Use(middleware.Proxy(middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{{URL: target}})))
	}

	return nil
}
