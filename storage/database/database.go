package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"TripPlanner/config"
	pkgdb "TripPlanner/pkg/database"
	"TripPlanner/pkg/logger"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
	dbErr  error
)

// Init opens the primary connection, registers read replicas and runs migrations.
func Init() error {
	dbOnce.Do(func() {
		gormDB, err := Open(buildDSN())
		if err != nil {
			dbErr = err
			return
		}

		if err := useReplicas(gormDB, config.Cfg.PostgreSQLReplicaDSNs); err != nil {
			dbErr = err
			logger.Logger.Error("Failed to register read replicas", zap.Error(err))
			return
		}

		if config.Cfg.OTELEnabled {
			if err := pkgdb.WithDefaultOTELPlugin(gormDB, config.Cfg.ServiceName, config.Cfg.PostgreSQLDatabase); err != nil {
				logger.Logger.Warn("Failed to install GORM tracing plugin", zap.Error(err))
			}
		}

		db = gormDB
		if err := Migrate(); err != nil {
			dbErr = fmt.Errorf("failed to run database migration: %w", err)
			return
		}
		logger.Logger.Info("Database initialized successfully",
			zap.Int("replicas", len(config.Cfg.PostgreSQLReplicaDSNs)),
		)
	})

	return dbErr
}

// Open connects to dsn with the service's GORM settings and pings it.
func Open(dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                                   newLogger(),
		DisableForeignKeyConstraintWhenMigrating: true,
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		logger.Logger.Error("Failed to open database", zap.String("host", config.Cfg.PostgreSQLHost), zap.Error(err))
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Logger.Error("Failed to get sql.DB from gorm", zap.Error(err))
		return nil, err
	}

	configureConnectionPool(sqlDB)

	if err := sqlDB.Ping(); err != nil {
		logger.Logger.Error("Failed to ping database", zap.Error(err))
		return nil, err
	}
	return gormDB, nil
}

func useReplicas(gormDB *gorm.DB, dsns []string) error {
	if len(dsns) == 0 {
		return nil
	}

	replicas := make([]gorm.Dialector, 0, len(dsns))
	for _, dsn := range dsns {
		replicas = append(replicas, postgres.Open(dsn))
	}

	return gormDB.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}).
		SetMaxIdleConns(config.Cfg.PostgreSQLMaxIdle).
		SetMaxOpenConns(config.Cfg.PostgreSQLMaxOpen).
		SetConnMaxIdleTime(10 * time.Minute).
		SetConnMaxLifetime(2 * time.Hour))
}

func DB() *gorm.DB {
	return db
}

func Close(ctx context.Context) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- sqlDB.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func buildDSN() string {
	return config.Cfg.GetDSN()
}

func configureConnectionPool(sqlDB *sql.DB) {
	cfg := config.Cfg

	sqlDB.SetMaxIdleConns(cfg.PostgreSQLMaxIdle)
	sqlDB.SetMaxOpenConns(cfg.PostgreSQLMaxOpen)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)
}

func newLogger() gormlogger.Interface {
	level := gormlogger.Warn
	switch config.Cfg.LoggerLevel {
	case "DEBUG":
		level = gormlogger.Info
	case "ERROR":
		level = gormlogger.Error
	}

	return gormlogger.New(zapWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	logger.Logger.Sugar().Infof(format, args...)
}
