package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcHandler "github.com/wekeepgrowing/payment-recovery/internal/adapter/handler/grpc"
	httpHandler "github.com/wekeepgrowing/payment-recovery/internal/adapter/handler/http"
	"github.com/wekeepgrowing/payment-recovery/internal/config"
	domainAnalytics "github.com/wekeepgrowing/payment-recovery/internal/domain/analytics"
	"github.com/wekeepgrowing/payment-recovery/internal/infrastructure/analytics"
	"github.com/wekeepgrowing/payment-recovery/internal/infrastructure/database"
	grpcServer "github.com/wekeepgrowing/payment-recovery/internal/infrastructure/grpc"
	httpServer "github.com/wekeepgrowing/payment-recovery/internal/infrastructure/http"
	"github.com/wekeepgrowing/payment-recovery/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/payment-recovery/internal/infrastructure/provider"
	"github.com/wekeepgrowing/payment-recovery/internal/usecase"
	"github.com/wekeepgrowing/payment-recovery/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		FilePath:    cfg.Log.FilePath,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger = zapLogger.With(
		zap.String("service", cfg.Service.Name),
		zap.String("version", cfg.Service.Version),
	)

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize database connection
	db, err := database.NewConnection(ctx, &cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, zapLogger); err != nil {
			zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
		}
	}

	repos := database.NewRepositories(db, zapLogger)

	// Analytics, counted into Prometheus on the way out
	baseTracker, closeTracker, err := analytics.NewTracker(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize analytics", zap.Error(err))
	}
	defer func() {
		if err := closeTracker(); err != nil {
			zapLogger.Error("Failed to flush analytics", zap.Error(err))
		}
	}()
	tracker := metrics.NewTracker(baseTracker)

	ledger := usecase.NewPaymentAttemptService(repos.PaymentAttempt, repos.Goal, tracker, zapLogger.Named("ledger"))
	retryService := newRetryService(cfg, ledger, tracker, zapLogger)

	// Initialize servers
	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("Failed to get underlying SQL database", zap.Error(err))
	}
	health := grpcHandler.NewHealthHandler(sqlDB, 15*time.Second, zapLogger.Named("health"))
	go health.Run(ctx)

	grpcSrv := grpcServer.NewServer(cfg, zapLogger, health.Server())
	httpSrv := httpServer.NewServer(cfg, zapLogger, httpServer.Handlers{
		Payment: httpHandler.NewPaymentHandler(retryService, ledger, cfg.Retry.MaxAttempts, zapLogger),
		Webhook: httpHandler.NewWebhookHandler(zapLogger, cfg.Stripe.WebhookSecret, ledger),
	})

	// Start servers
	go func() {
		if err := grpcSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start gRPC server", zap.Error(err))
		}
	}()

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	zapLogger.Info("Shutting down servers...")
	health.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	// Shutdown servers
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
	}

	zapLogger.Info("Servers shut down successfully")
}

// newRetryService picks the retry implementation for the configured platform.
func newRetryService(cfg *config.Config, ledger usecase.AttemptLedger, tracker domainAnalytics.Tracker, zapLogger *zap.Logger) usecase.PaymentRetryService {
	if cfg.Service.Platform == config.PlatformWeb {
		zapLogger.Info("Payment retry disabled on web platform")
		return usecase.NewUnsupportedRetryService()
	}

	paymentProvider, err := provider.NewFactory(cfg, zapLogger).GetProviderFromString("")
	if err != nil {
		zapLogger.Fatal("Failed to create payment provider", zap.Error(err))
	}

	return usecase.NewPaymentRetryService(paymentProvider, ledger, tracker, usecase.RetryOptions{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Timeout:     cfg.Retry.Timeout,
	}, zapLogger.Named("retry"))
}
