package mq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"TripPlanner/config"
	"TripPlanner/pkg/logger"
)

var (
	conn     *amqp.Connection
	connMu   sync.RWMutex
	initOnce sync.Once
	initErr  error
)

// Init dials RabbitMQ and declares the trip event topology.
func Init() error {
	initOnce.Do(func() {
		c, err := amqp.Dial(config.Cfg.GetRabbitMQURL())
		if err != nil {
			initErr = fmt.Errorf("failed to dial rabbitmq: %w", err)
			return
		}

		ch, err := c.Channel()
		if err != nil {
			_ = c.Close()
			initErr = fmt.Errorf("failed to open setup channel: %w", err)
			return
		}
		defer ch.Close()

		if err := DeclareTopology(ch); err != nil {
			_ = c.Close()
			initErr = err
			return
		}

		connMu.Lock()
		conn = c
		connMu.Unlock()

		logger.Logger.Info("RabbitMQ initialized",
			zap.String("host", config.Cfg.RabbitMQAddr),
			zap.String("exchange", TripEventsExchange),
		)
	})

	return initErr
}

// Connection returns the shared connection, nil before Init.
func Connection() *amqp.Connection {
	connMu.RLock()
	defer connMu.RUnlock()
	return conn
}

func Close(ctx context.Context) error {
	pubMutex.Lock()
	if publisherCh != nil {
		_ = publisherCh.Close()
		publisherCh = nil
	}
	pubMutex.Unlock()

	c := Connection()
	if c == nil || c.IsClosed() {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- c.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
