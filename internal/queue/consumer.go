package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"TripPlanner/internal/cache"
	"TripPlanner/internal/model"
	"TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
	"TripPlanner/storage/mq"
	"TripPlanner/storage/redis"
)

// SummaryRefresher recomputes and stores a trip's expense summary.
type SummaryRefresher interface {
	RefreshSummary(ctx context.Context, tripID string) error
}

// MessageMarker deduplicates deliveries by message id.
type MessageMarker interface {
	TryMarkProcessing(ctx context.Context, messageID string) (bool, error)
	Unmark(ctx context.Context, messageID string) error
	MarkProcessed(ctx context.Context, messageID string) error
}

type redisMarker struct{}

func (redisMarker) TryMarkProcessing(ctx context.Context, messageID string) (bool, error) {
	return cache.TryMarkMessageProcessing(ctx, messageID, 24*time.Hour)
}

func (redisMarker) Unmark(ctx context.Context, messageID string) error {
	return cache.UnmarkMessageProcessing(ctx, messageID)
}

func (redisMarker) MarkProcessed(ctx context.Context, messageID string) error {
	return cache.MarkMessageProcessed(ctx, messageID, 48*time.Hour)
}

// noopMarker lets every delivery through when Redis is not configured.
type noopMarker struct{}

func (noopMarker) TryMarkProcessing(context.Context, string) (bool, error) { return true, nil }
func (noopMarker) Unmark(context.Context, string) error                    { return nil }
func (noopMarker) MarkProcessed(context.Context, string) error             { return nil }

func newMarker() MessageMarker {
	if redis.Enabled() {
		return redisMarker{}
	}
	return noopMarker{}
}

// StartSummaryRefreshConsumer re-warms the summary cache of every trip whose
// places or expenses changed. It blocks until ctx is done.
func StartSummaryRefreshConsumer(ctx context.Context, refresher SummaryRefresher) error {
	h := &summaryRefreshHandler{refresher: refresher, marker: newMarker()}
	return mq.Consume(ctx, mq.ConsumeOptions{
		Queue:         mq.SummaryRefreshQueue,
		ConsumerTag:   "summary_refresh_consumer",
		PrefetchCount: 10,
		Handler:       h.Handle,
	})
}

type summaryRefreshHandler struct {
	refresher SummaryRefresher
	marker    MessageMarker
}

func (h *summaryRefreshHandler) Handle(ctx context.Context, body []byte) error {
	var event model.TripEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return &errors.SkipMessageError{Reason: fmt.Sprintf("malformed trip event: %v", err)}
	}
	if event.TripID == "" {
		return &errors.SkipMessageError{Reason: "trip event without trip id"}
	}

	if event.MessageID != "" {
		first, err := h.marker.TryMarkProcessing(ctx, event.MessageID)
		if err != nil {
			// process anyway; a refresh is idempotent
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", event.MessageID),
				zap.Error(err),
			)
		} else if !first {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("message %s already processed", event.MessageID)}
		}
	}

	if err := h.refresher.RefreshSummary(ctx, event.TripID); err != nil {
		if event.MessageID != "" {
			_ = h.marker.Unmark(ctx, event.MessageID)
		}
		return fmt.Errorf("failed to refresh summary of trip %s: %w", event.TripID, err)
	}

	logger.Logger.Info("Refreshed expense summary",
		zap.String("message_id", event.MessageID),
		zap.String("event_type", event.EventType),
		zap.String("trip_id", event.TripID),
	)

	if event.MessageID != "" {
		if err := h.marker.MarkProcessed(ctx, event.MessageID); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", event.MessageID),
				zap.Error(err),
			)
		}
	}
	return nil
}
