package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"TripPlanner/internal/model"
	"TripPlanner/pkg/logger"
)

// Migrate creates or updates the trips, places and expenses tables.
func Migrate() error {
	return MigrateDB(DB())
}

func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}

	logger.Logger.Info("Starting database migration...")

	err := db.AutoMigrate(
		&model.Trip{},
		&model.Place{},
		&model.Expense{},
	)
	if err != nil {
		logger.Logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migration completed successfully")
	return nil
}
