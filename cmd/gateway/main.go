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
	"github.com/kalado/auth-gateway/internal/gateway/authclient"
	"github.com/kalado/auth-gateway/internal/gateway/httpserver"
	"github.com/kalado/auth-gateway/internal/gateway/policy"
	"github.com/kalado/auth-gateway/internal/infrastructure/health"
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

	logger.Info("Starting API gateway...")

	// Redis backs the per-client rate limiter
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	rateLimitRepo := repositories.NewRateLimitRedisRepository(redisClient)
	rateLimiter := services.NewRateLimiterService(rateLimitRepo, &services.RateLimiterConfig{
		RequestsPerWindow: cfg.Gateway.RateLimitRPM,
		Window:            cfg.Gateway.RateLimitWindow,
		KeyPrefix:         cfg.Gateway.RateLimitPrefix,
	}, logger)

	authClient := authclient.NewClient(&cfg.Gateway, logger)

	checkers := []ports.HealthChecker{
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

	server, err := httpserver.NewServer(serverConfig, &cfg.Gateway, logger, httpserver.ServerDeps{
		AuthClient:     authClient,
		Policy:         policy.Default(),
		RateLimiter:    rateLimiter,
		HealthCheckers: checkers,
	})
	if err != nil {
		logger.Fatal("Failed to initialize gateway server:", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			logger.Info("Server stopped:", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down API gateway...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed:", err)
	}
}
