package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/kalado/auth-gateway/configs"
	"github.com/kalado/auth-gateway/internal/application/services"
	"github.com/kalado/auth-gateway/internal/core/ports"
	"github.com/kalado/auth-gateway/internal/infrastructure/db"
	"github.com/kalado/auth-gateway/internal/infrastructure/email"
	"github.com/kalado/auth-gateway/internal/infrastructure/health"
	"github.com/kalado/auth-gateway/internal/infrastructure/httpserver"
	"github.com/kalado/auth-gateway/internal/infrastructure/profile"
	"github.com/kalado/auth-gateway/internal/infrastructure/redis"
	"github.com/kalado/auth-gateway/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting authentication service...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Repositories
	accountRepo := repositories.NewAccountRepository(database, logger)
	verificationRepo := repositories.NewVerificationRepository(database, logger)
	revocationStore := repositories.NewTokenRedisRepository(redisClient, logger)

	// Infrastructure services
	emailService, err := email.NewEmailService(&cfg.Email, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service:", err)
	}
	profileClient := profile.NewClient(&cfg.Profile, logger)

	// Application services
	tokenService := services.NewTokenService(accountRepo, revocationStore, &cfg.JWT, logger)
	verificationService := services.NewVerificationService(verificationRepo, emailService, logger)
	authService := services.NewAuthService(accountRepo, tokenService, verificationService, profileClient, logger)

	checkers := []ports.HealthChecker{
		health.NewDBHealthChecker(database),
		health.NewRedisHealthChecker(redisClient),
	}

	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	server := httpserver.NewServer(serverConfig, logger, httpserver.ServerDeps{
		AuthService:         authService,
		VerificationService: verificationService,
		AccountRepo:         accountRepo,
		HealthCheckers:      checkers,
	})

	go func() {
		if err := server.Start(); err != nil {
			logger.Info("Server stopped:", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down authentication service...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed:", err)
	}
}
