// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/freshmeals/web/internal/config"
	"github.com/freshmeals/web/internal/domain/checkout"
	"github.com/freshmeals/web/internal/domain/order"
	"github.com/freshmeals/web/internal/domain/payment"
	"github.com/freshmeals/web/internal/domain/summary"
	httpserver "github.com/freshmeals/web/internal/interfaces/http"
	"github.com/freshmeals/web/internal/interfaces/http/routes"
	"github.com/freshmeals/web/internal/pkg/auth"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg)
	logger.Infof("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Payment processor is optional; its absence degrades, never crashes
	var intentClient payment.IntentClient
	if cfg.PaymentsEnabled() {
		intentClient = payment.NewStripeClient(cfg.Stripe.SecretKey)
	} else {
		logger.Warn("Stripe secret key missing; payments are disabled")
	}
	if cfg.Stripe.PublishableKey == "" {
		logger.Warn("Stripe publishable key missing; the payment element will not mount")
	}

	// Optional Redis, used only by the rate limiter
	var redisClient *redis.Client
	if cfg.RateLimitEnabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("Redis unreachable; rate limiting will fail open")
		}
		cancel()
		defer redisClient.Close()
	}

	// Process-lifetime state
	orderRepo := order.NewMemoryRepository()
	summaries := summary.NewMemoryStore()
	adminSessions := auth.NewSessionStore()
	passwords := auth.NewPasswordManager(cfg)

	intake := payment.NewIntakeService(orderRepo, intentClient, logger)

	coordinatorFactory := func(sessionID string) *payment.Coordinator {
		if intentClient == nil {
			return nil
		}
		return payment.NewCoordinator(intake, intentClient, orderRepo, summaries.ForSession(sessionID), cfg.Payment.MinAmount, cfg.Payment.Currency, logger)
	}

	registry := checkout.NewRegistry(checkout.FeeRules{
		FreeThreshold: cfg.Delivery.FreeThreshold,
		FlatFee:       cfg.Delivery.FlatFee,
	}, coordinatorFactory)

	// Create and start HTTP server
	server := httpserver.NewServer(cfg, routes.Deps{
		Config:    cfg,
		Log:       logger,
		Registry:  registry,
		Intake:    intake,
		Orders:    orderRepo,
		Summaries: summaries,
		Passwords: passwords,
		Sessions:  adminSessions,
	}, redisClient)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	logger.Info("Server shutdown completed")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
