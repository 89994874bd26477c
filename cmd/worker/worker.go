package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"TripPlanner/config"
	"TripPlanner/internal/queue"
	"TripPlanner/internal/service"
	"TripPlanner/pkg/logger"
	pkgotel "TripPlanner/pkg/otel"
	"TripPlanner/storage"
)

func main() {
	logger.Init()
	defer logger.Sync()

	if !config.Cfg.EventsEnabled {
		logger.Logger.Fatal("Worker requires EVENTS_ENABLED=true")
	}
	if !config.Cfg.CacheEnabled {
		logger.Logger.Fatal("Worker requires CACHE_ENABLED=true, there is no summary cache to refresh")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	shutdownOTEL, err := pkgotel.Setup(ctx, config.Cfg.ServiceName+"-worker")
	if err != nil {
		logger.Logger.Fatal("Failed to initialize OpenTelemetry", zap.Error(err))
	}
	defer func() {
		if err := shutdownOTEL(context.Background()); err != nil {
			logger.Logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	logger.Logger.Info("Worker service starting",
		zap.String("service", config.Cfg.ServiceName+"-worker"),
		zap.String("environment", config.Cfg.Environment),
		zap.Bool("cache_enabled", config.Cfg.CacheEnabled),
	)

	if err := queue.StartSummaryRefreshConsumer(ctx, service.Expense()); err != nil && !errors.Is(err, context.Canceled) {
		logger.Logger.Error("Summary refresh consumer stopped", zap.Error(err))
	}

	logger.Logger.Info("Worker service shutting down gracefully")
}
