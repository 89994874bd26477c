package cache

import (
	"context"
	"time"

	"TripPlanner/internal/model/dto"
)

const summaryPrefix = "summary"

// SummaryCache holds the computed expense summary per trip.
type SummaryCache struct {
	store *JSONCache
}

func NewSummaryCache(ttl time.Duration) *SummaryCache {
	return &SummaryCache{store: NewJSONCache(summaryPrefix, ttl)}
}

func (c *SummaryCache) Get(ctx context.Context, tripID string) (*dto.ExpenseSummary, bool, error) {
	var summary dto.ExpenseSummary
	hit, err := c.store.Get(ctx, tripID, &summary)
	if err != nil || !hit {
		return nil, false, err
	}
	return &summary, true, nil
}

func (c *SummaryCache) Set(ctx context.Context, summary *dto.ExpenseSummary) error {
	return c.store.Set(ctx, summary.TripID, summary)
}

func (c *SummaryCache) Invalidate(ctx context.Context, tripID string) error {
	return c.store.Delete(ctx, tripID)
}
