package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"TripPlanner/pkg/logger"
	"TripPlanner/storage/database"
	"TripPlanner/storage/mq"
	"TripPlanner/storage/redis"
)

// Close shuts storage down in the order MQ, Redis, Database so in-flight
// publishes and cache writes finish before the database goes away.
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Logger.Info("Closing storage connections...")

	if err := mq.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close message queue", zap.Error(err))
	} else {
		logger.Logger.Info("Message queue closed successfully")
	}

	if err := redis.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close Redis connection", zap.Error(err))
	} else {
		logger.Logger.Info("Redis connection closed successfully")
	}

	if err := database.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close database connection", zap.Error(err))
	} else {
		logger.Logger.Info("Database connection closed successfully")
	}

	logger.Logger.Info("All storage connections closed")
}
