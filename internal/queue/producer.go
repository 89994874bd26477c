package queue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"TripPlanner/internal/model"
	"TripPlanner/pkg/logger"
	"TripPlanner/pkg/metrics"
	"TripPlanner/pkg/snowflake"
	"TripPlanner/storage/mq"
)

// Publisher sends trip events to the trip.events exchange.
type Publisher struct {
	exchange string
}

func NewPublisher() *Publisher {
	return &Publisher{exchange: mq.TripEventsExchange}
}

// NewTripEvent builds an event with a fresh message id.
func NewTripEvent(eventType, tripID, entityID string, payload map[string]interface{}) (model.TripEvent, error) {
	id, err := snowflake.NextMessageID("trip_event")
	if err != nil {
		return model.TripEvent{}, fmt.Errorf("failed to generate message ID: %w", err)
	}
	return model.TripEvent{
		MessageID:  id,
		EventType:  eventType,
		TripID:     tripID,
		EntityID:   entityID,
		Payload:    payload,
		OccurredAt: time.Now().Format(time.RFC3339),
	}, nil
}

// Publish is fire-and-forget: the change it reports is already committed,
// so failures are logged and never returned to the caller.
func (p *Publisher) Publish(ctx context.Context, eventType, tripID, entityID string, payload map[string]interface{}) {
	event, err := NewTripEvent(eventType, tripID, entityID, payload)
	if err != nil {
		metrics.Get().RecordEvent(ctx, eventType, err)
		logger.Ctx(ctx).Warn("Failed to build trip event",
			zap.String("event_type", eventType),
			zap.String("trip_id", tripID),
			zap.Error(err),
		)
		return
	}

	err = mq.PublishMessage(ctx, p.exchange, eventType, event.MessageID, event)
	metrics.Get().RecordEvent(ctx, eventType, err)
	if err != nil {
		logger.Ctx(ctx).Warn("Failed to publish trip event",
			zap.String("message_id", event.MessageID),
			zap.String("event_type", eventType),
			zap.String("trip_id", tripID),
			zap.Error(err),
		)
		return
	}

	logger.Ctx(ctx).Debug("Published trip event",
		zap.String("message_id", event.MessageID),
		zap.String("event_type", eventType),
		zap.String("trip_id", tripID),
		zap.String("entity_id", entityID),
	)
}
