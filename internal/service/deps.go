package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"TripPlanner/internal/cache"
	"TripPlanner/internal/model"
	"TripPlanner/internal/model/dto"
	"TripPlanner/internal/reorder"
)

type TripStore interface {
	List(ctx context.Context) ([]model.Trip, error)
	Get(ctx context.Context, id string) (*model.Trip, error)
	Create(ctx context.Context, trip *model.Trip) error
	FindByTitleKeyword(ctx context.Context, keyword string) (*model.Trip, error)
}

type PlaceStore interface {
	ListByTrip(ctx context.Context, tripID string) ([]model.Place, error)
	Get(ctx context.Context, id string) (*model.Place, error)
	Create(ctx context.Context, place *model.Place, shifts []reorder.Item) error
	Update(ctx context.Context, id string, fields map[string]interface{}, shifts []reorder.Item) error
	Delete(ctx context.Context, id string, shifts []reorder.Item) error
	UpdatePositions(ctx context.Context, positions []reorder.Item) error
}

type ExpenseStore interface {
	ListByTrip(ctx context.Context, tripID string) ([]model.ExpenseWithPlace, error)
	ListByPlace(ctx context.Context, placeID string) ([]model.ExpenseWithPlace, error)
	Get(ctx context.Context, id string) (*model.Expense, error)
	Create(ctx context.Context, expense *model.Expense) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	CategoryStats(ctx context.Context, tripID string) ([]dto.CategoryStat, error)
}

// EventPublisher reports committed changes. Implementations must not fail the caller.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, tripID, entityID string, payload map[string]interface{})
}

type SummaryStore interface {
	Get(ctx context.Context, tripID string) (*dto.ExpenseSummary, bool, error)
	Set(ctx context.Context, summary *dto.ExpenseSummary) error
	Invalidate(ctx context.Context, tripID string) error
}

// TripLocker serialises mutations of one trip's places. Lock returns the release func.
type TripLocker interface {
	Lock(ctx context.Context, tripID string) (func(), error)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, string, string, map[string]interface{}) {}

type noopSummaryStore struct{}

func (noopSummaryStore) Get(context.Context, string) (*dto.ExpenseSummary, bool, error) {
	return nil, false, nil
}

func (noopSummaryStore) Set(context.Context, *dto.ExpenseSummary) error { return nil }

func (noopSummaryStore) Invalidate(context.Context, string) error { return nil }

// localLocker keeps one lock per trip inside the process. Used when Redis is off.
// Each lock is a 1-buffered channel so a waiter can give up when ctx ends.
type localLocker struct {
	mu    sync.Mutex
	trips map[string]chan struct{}
}

func newLocalLocker() *localLocker {
	return &localLocker{trips: map[string]chan struct{}{}}
}

func (l *localLocker) Lock(ctx context.Context, tripID string) (func(), error) {
	l.mu.Lock()
	ch, ok := l.trips[tripID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.trips[tripID] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", cache.ErrLockNotObtained, ctx.Err())
	}
}

func isNotFound(err error) bool {
	return err != nil && stderrors.Is(err, gorm.ErrRecordNotFound)
}
