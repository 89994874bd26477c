package storage

import (
	"TripPlanner/config"
	"TripPlanner/storage/database"
	"TripPlanner/storage/mq"
	"TripPlanner/storage/redis"
)

// Init opens the database and, when their features are enabled, Redis and RabbitMQ.
func Init() error {
	if err := database.Init(); err != nil {
		return err
	}

	if redis.Enabled() {
		if err := redis.Init(); err != nil {
			return err
		}
	}

	if config.Cfg.EventsEnabled {
		if err := mq.Init(); err != nil {
			return err
		}
	}

	return nil
}
