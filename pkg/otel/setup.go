package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"TripPlanner/config"
	pkgdb "TripPlanner/pkg/database"
	"TripPlanner/pkg/logger"
	pkgmq "TripPlanner/pkg/mq"
	pkgredis "TripPlanner/pkg/redis"
)

// Setup installs the exporters when OTEL_ENABLED is set and registers the
// storage instruments. With telemetry off only the propagator is installed
// and the returned func is a no-op.
func Setup(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	SetPropagator()
	if !config.Cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	shutdown, err := InitOpenTelemetry(ctx, Config{
		ServiceName:    serviceName,
		ServiceVersion: config.Cfg.ServiceVer,
		Environment:    config.Cfg.Environment,
		OTLPEndpoint:   config.Cfg.OTELEndpoint,
		SampleRatio:    config.Cfg.OTELSampleRatio,
	})
	if err != nil {
		return nil, err
	}

	meter := otel.Meter(serviceName)
	if err := pkgdb.InitDatabaseMetrics(meter); err != nil {
		logger.Logger.Warn("Failed to register database metrics", zap.Error(err))
	}
	if err := pkgredis.InitRedisMetrics(meter); err != nil {
		logger.Logger.Warn("Failed to register redis metrics", zap.Error(err))
	}
	if err := pkgmq.InitMQMetrics(meter); err != nil {
		logger.Logger.Warn("Failed to register mq metrics", zap.Error(err))
	}

	logger.Logger.Info("OpenTelemetry initialized",
		zap.String("endpoint", config.Cfg.OTELEndpoint),
		zap.Float64("sample_ratio", config.Cfg.OTELSampleRatio),
	)
	return shutdown, nil
}
