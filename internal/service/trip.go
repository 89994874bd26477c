package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"TripPlanner/internal/model"
	"TripPlanner/internal/model/dto"
	pkgerrors "TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
)

type TripService struct {
	trips TripStore
}

var (
	tripService *TripService
	tripOnce    sync.Once
)

func Trip() *TripService {
	tripOnce.Do(func() {
		tripService = NewTripService(tripRepo())
	})
	return tripService
}

func NewTripService(trips TripStore) *TripService {
	return &TripService{trips: trips}
}

func (s *TripService) List(ctx context.Context) ([]dto.TripItem, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewTripItems(trips), nil
}

func (s *TripService) Get(ctx context.Context, id string) (*dto.TripItem, error) {
	trip, err := loadTrip(ctx, s.trips, id)
	if err != nil {
		return nil, err
	}
	item := dto.NewTripItem(trip)
	return &item, nil
}

func (s *TripService) Create(ctx context.Context, req dto.CreateTripRequest) (*dto.TripItem, error) {
	trip, err := newTrip(req)
	if err != nil {
		return nil, err
	}

	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info("Trip created",
		zap.String("trip_id", trip.ID),
		zap.String("start_date", trip.StartDate.String()),
		zap.Int("total_days", trip.TotalDays()),
	)

	item := dto.NewTripItem(trip)
	return &item, nil
}

// Ensure returns the oldest trip whose title contains req.Keyword and creates
// one from req when none exists. created reports which happened.
func (s *TripService) Ensure(ctx context.Context, req dto.EnsureTripRequest) (item *dto.TripItem, created bool, err error) {
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return nil, false, pkgerrors.TitleKeywordNone
	}

	existing, err := s.trips.FindByTitleKeyword(ctx, keyword)
	switch {
	case err == nil:
		found := dto.NewTripItem(existing)
		return &found, false, nil
	case !isNotFound(err):
		return nil, false, fmt.Errorf("failed to look up trip by keyword: %w", err)
	}

	item, err = s.Create(ctx, req.CreateTripRequest)
	if err != nil {
		return nil, false, err
	}
	return item, true, nil
}

func newTrip(req dto.CreateTripRequest) (*model.Trip, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, pkgerrors.InvalidRequest.WithMessage("title is required")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, pkgerrors.InvalidRequest.WithMessage("startDate and endDate are required")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, pkgerrors.TripDateRange
	}

	trip := &model.Trip{
		Title:       title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Budget.Set {
		if req.Budget.IsNegative() {
			return nil, pkgerrors.AmountInvalid
		}
		budget := req.Budget.Decimal
		trip.Budget = &budget
	}
	return trip, nil
}

func loadTrip(ctx context.Context, trips TripStore, id string) (*model.Trip, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.TripIDRequired
	}
	trip, err := trips.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.TripNotFound
		}
		return nil, fmt.Errorf("failed to load trip: %w", err)
	}
	return trip, nil
}
