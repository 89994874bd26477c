package middleware

import (
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"TripPlanner/config"
	"TripPlanner/pkg/logger"
)

// Init registers the HTTP metrics on the global meter provider.
func Init() error {
	if config.Cfg.OTELEnabled {
		if err := InitMetrics(otel.Meter(config.Cfg.ServiceName)); err != nil {
			logger.Logger.Error("Failed to initialize HTTP metrics", zap.Error(err))
			return err
		}
	}

	logger.Logger.Info("All middlewares initialized successfully")
	return nil
}
