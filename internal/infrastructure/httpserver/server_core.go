package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/kalado/auth-gateway/internal/core/ports"
	customMiddleware "github.com/kalado/auth-gateway/internal/infrastructure/httpserver/middleware"
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
	AuthService         ports.AuthService
	VerificationService ports.VerificationService
	AccountRepo         ports.AccountRepository
	HealthCheckers      []ports.HealthChecker
}

type Server struct {
	echo            *echo.Echo
	config          *ServerConfig
	logger          *logrus.Logger
	authSvc         ports.AuthService
	verificationSvc ports.VerificationService
	accountRepo     ports.AccountRepository
	logging         *customMiddleware.LoggingMiddleware
	metrics         *customMiddleware.MetricsMiddleware
	healthCheckers  []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:            e,
		config:          serverConfig,
		logger:          logger,
		authSvc:         deps.AuthService,
		verificationSvc: deps.VerificationService,
		accountRepo:     deps.AccountRepo,
		healthCheckers:  deps.HealthCheckers,
		logging:         customMiddleware.NewLoggingMiddleware(logger),
		metrics:         customMiddleware.NewMetricsMiddleware(metrics.RequestsTotal(), metrics.RequestDuration()),
	}

	e.HTTPErrorHandler = server.errorHandler

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
