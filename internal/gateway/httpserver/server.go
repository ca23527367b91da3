package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	config "github.com/kalado/auth-gateway/configs"
	"github.com/kalado/auth-gateway/internal/core/ports"
	"github.com/kalado/auth-gateway/internal/gateway/authclient"
	gwMiddleware "github.com/kalado/auth-gateway/internal/gateway/middleware"
	"github.com/kalado/auth-gateway/internal/gateway/policy"
	authMiddleware "github.com/kalado/auth-gateway/internal/infrastructure/httpserver/middleware"
	"github.com/kalado/auth-gateway/internal/infrastructure/metrics"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

type ServerDeps struct {
	AuthClient     *authclient.Client
	Policy         policy.Table
	RateLimiter    ports.RateLimiter
	HealthCheckers []ports.HealthChecker
}

// Server is the gateway: it authenticates and authorizes inbound requests,
// then forwards them to the owning service.
type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	gatewayConfig  *config.GatewayConfig
	logger         *logrus.Logger
	authClient     *authclient.Client
	gate           *gwMiddleware.AuthMiddleware
	rateLimit      *gwMiddleware.RateLimitMiddleware
	logging        *authMiddleware.LoggingMiddleware
	metrics        *authMiddleware.MetricsMiddleware
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, gatewayConfig *config.GatewayConfig, logger *logrus.Logger, deps ServerDeps) (*Server, error) {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		gatewayConfig:  gatewayConfig,
		logger:         logger,
		authClient:     deps.AuthClient,
		gate:           gwMiddleware.NewAuthMiddleware(deps.AuthClient, deps.Policy, logger),
		rateLimit:      gwMiddleware.NewRateLimitMiddleware(deps.RateLimiter, logger),
		logging:        authMiddleware.NewLoggingMiddleware(logger),
		metrics:        authMiddleware.NewMetricsMiddleware(metrics.RequestsTotal(), metrics.RequestDuration()),
		healthCheckers: deps.HealthCheckers,
	}

	e.HTTPErrorHandler = server.errorHandler

	server.setupMiddleware()
	if err := server.setupRoutes(); err != nil {
		return nil, err
	}

	return server, nil
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)

	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	if s.config.TLSCertFile != "" && s.config.TLSKeyFile != "" {
		s.logger.Infof("Starting HTTPS gateway on %s", addr)
		return s.echo.StartTLS(addr, s.config.TLSCertFile, s.config.TLSKeyFile)
	}

	s.logger.Infof("Starting HTTP gateway on %s", addr)
	return s.echo.StartServer(server)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}
