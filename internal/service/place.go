package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"TripPlanner/internal/cache"
	"TripPlanner/internal/model"
	"TripPlanner/internal/model/dto"
	"TripPlanner/internal/reorder"
	pkgerrors "TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
	"TripPlanner/pkg/metrics"
)

type PlaceService struct {
	trips     TripStore
	places    PlaceStore
	locker    TripLocker
	summaries SummaryStore
	events    EventPublisher
}

var (
	placeService *PlaceService
	placeOnce    sync.Once
)

func Place() *PlaceService {
	placeOnce.Do(func() {
		placeService = NewPlaceService(tripRepo(), placeRepo(), tripLocker(), summaryStore(), publisher())
	})
	return placeService
}

func NewPlaceService(trips TripStore, places PlaceStore, locker TripLocker, summaries SummaryStore, events EventPublisher) *PlaceService {
	if locker == nil {
		locker = newLocalLocker()
	}
	if summaries == nil {
		summaries = noopSummaryStore{}
	}
	if events == nil {
		events = noopPublisher{}
	}
	return &PlaceService{
		trips:     trips,
		places:    places,
		locker:    locker,
		summaries: summaries,
		events:    events,
	}
}

// List returns the trip's places ordered by day, then order.
func (s *PlaceService) List(ctx context.Context, tripID string) ([]model.Place, error) {
	if _, err := loadTrip(ctx, s.trips, tripID); err != nil {
		return nil, err
	}
	return s.places.ListByTrip(ctx, tripID)
}

// Create inserts a place at req.Order within its day, or appends when Order is 0
// or past the end. Later places of the day shift down by one.
func (s *PlaceService) Create(ctx context.Context, req dto.CreatePlaceRequest) (*model.Place, error) {
	trip, err := loadTrip(ctx, s.trips, req.TripID)
	if err != nil {
		return nil, err
	}
	if !trip.ValidDay(req.Day) {
		return nil, pkgerrors.DayOutOfRange
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.InvalidRequest.WithMessage("name is required")
	}

	place := &model.Place{
		TripID:          trip.ID,
		Name:            name,
		Address:         req.Address,
		TimeRange:       req.Time,
		Duration:        req.Duration,
		Day:             req.Day,
		Category:        req.Category,
		ExternalPlaceID: req.PlaceID,
		OperatingHours:  req.OperatingHours,
		Notes:           req.Notes,
	}
	place.ID = uuid.NewString()
	if place.Category == "" {
		place.Category = model.DefaultPlaceCategory
	}
	if place.Duration == "" {
		place.Duration = model.DefaultPlaceDuration
	}

	err = s.withTrip(ctx, trip.ID, func(items []reorder.Item) error {
		after := reorder.Insert(items, reorder.Item{ID: place.ID, Day: req.Day, Order: req.Order})
		var shifts []reorder.Item
		for _, it := range reorder.Changed(items, after) {
			if it.ID == place.ID {
				place.Order = it.Order
				continue
			}
			shifts = append(shifts, it)
		}
		return s.places.Create(ctx, place, shifts)
	})
	if err != nil {
		return nil, err
	}

	s.afterChange(ctx, model.EventPlaceCreated, trip.ID, place.ID, map[string]interface{}{
		"day":   place.Day,
		"order": place.Order,
	})
	return place, nil
}

// Update changes the given fields. A new day or order moves the place through
// the same renumbering as Create and Delete.
func (s *PlaceService) Update(ctx context.Context, id string, req dto.UpdatePlaceRequest) (*model.Place, error) {
	current, err := s.loadPlace(ctx, id)
	if err != nil {
		return nil, err
	}
	trip, err := loadTrip(ctx, s.trips, current.TripID)
	if err != nil {
		return nil, err
	}

	fields, err := placeFields(req)
	if err != nil {
		return nil, err
	}

	day, order := current.Day, current.Order
	moving := req.Day != nil || req.Order != nil
	if req.Day != nil {
		if !trip.ValidDay(*req.Day) {
			return nil, pkgerrors.DayOutOfRange
		}
		day = *req.Day
		if day != current.Day {
			// a new day without an order appends
			order = 0
		}
	}
	if req.Order != nil {
		order = *req.Order
	}

	err = s.withTrip(ctx, trip.ID, func(items []reorder.Item) error {
		var shifts []reorder.Item
		if moving {
			shifts = reorder.Changed(items, reorder.Place(items, id, day, order))
		}
		return s.places.Update(ctx, id, fields, shifts)
	})
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.PlaceNotFound
		}
		return nil, err
	}

	updated, err := s.loadPlace(ctx, id)
	if err != nil {
		return nil, err
	}
	s.afterChange(ctx, model.EventPlaceUpdated, trip.ID, id, map[string]interface{}{
		"day":   updated.Day,
		"order": updated.Order,
	})
	return updated, nil
}

// Delete removes the place and closes the gap in its day. Its expenses stay.
func (s *PlaceService) Delete(ctx context.Context, id string) error {
	place, err := s.loadPlace(ctx, id)
	if err != nil {
		return err
	}

	err = s.withTrip(ctx, place.TripID, func(items []reorder.Item) error {
		return s.places.Delete(ctx, id, reorder.Changed(items, reorder.Remove(items, id)))
	})
	if err != nil {
		if isNotFound(err) {
			return pkgerrors.PlaceNotFound
		}
		return err
	}

	s.afterChange(ctx, model.EventPlaceDeleted, place.TripID, id, map[string]interface{}{
		"day":   place.Day,
		"order": place.Order,
	})
	return nil
}

// BulkUpdate writes explicit positions for places of one trip. The resulting
// layout must keep every day dense, otherwise nothing is written.
func (s *PlaceService) BulkUpdate(ctx context.Context, positions []dto.PlacePosition) ([]model.Place, error) {
	if len(positions) == 0 {
		return nil, pkgerrors.BulkUpdateEmpty
	}

	seen := make(map[string]struct{}, len(positions))
	for _, p := range positions {
		if _, dup := seen[p.ID]; dup {
			return nil, pkgerrors.InvalidRequest.WithMessage("duplicate place " + p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	first, err := s.loadPlace(ctx, positions[0].ID)
	if err != nil {
		return nil, err
	}
	trip, err := loadTrip(ctx, s.trips, first.TripID)
	if err != nil {
		return nil, err
	}
	for _, p := range positions {
		if !trip.ValidDay(p.Day) {
			return nil, pkgerrors.DayOutOfRange
		}
	}

	var changed []reorder.Item
	err = s.withTrip(ctx, trip.ID, func(items []reorder.Item) error {
		index := make(map[string]int, len(items))
		for i, it := range items {
			index[it.ID] = i
		}

		after := make([]reorder.Item, len(items))
		copy(after, items)
		for _, p := range positions {
			i, ok := index[p.ID]
			if !ok {
				return s.foreignPlace(ctx, p.ID)
			}
			after[i].Day = p.Day
			after[i].Order = p.Order
		}

		if err := reorder.Validate(after); err != nil {
			if stderrors.Is(err, reorder.ErrNotContiguous) {
				return pkgerrors.OrderNotContiguous
			}
			return pkgerrors.InvalidRequest.WithMessage(err.Error())
		}

		changed = reorder.Changed(items, after)
		return s.places.UpdatePositions(ctx, changed)
	})
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.PlaceNotFound
		}
		return nil, err
	}

	if len(changed) > 0 {
		s.afterChange(ctx, model.EventPlaceReordered, trip.ID, "", map[string]interface{}{
			"changed": len(changed),
		})
	}
	return s.places.ListByTrip(ctx, trip.ID)
}

// Move applies a drag and drop: targetPlaceId drops onto another place,
// targetDay onto a day container. Drops that change nothing write nothing.
func (s *PlaceService) Move(ctx context.Context, id string, req dto.MovePlaceRequest) (*dto.MovePlaceResponse, error) {
	var target reorder.Target
	switch {
	case req.TargetPlaceID != nil && *req.TargetPlaceID != "":
		target = reorder.PlaceTarget(*req.TargetPlaceID)
	case req.TargetDay != nil:
		target = reorder.DayTarget(*req.TargetDay)
	default:
		return nil, pkgerrors.MoveTargetRequired
	}

	place, err := s.loadPlace(ctx, id)
	if err != nil {
		return nil, err
	}
	trip, err := loadTrip(ctx, s.trips, place.TripID)
	if err != nil {
		return nil, err
	}

	var result reorder.Result
	err = s.withTrip(ctx, trip.ID, func(items []reorder.Item) error {
		result = reorder.Apply(items, id, target, trip.TotalDays())
		if result.NoOp() {
			return nil
		}
		return s.places.UpdatePositions(ctx, result.Changed)
	})
	if err != nil {
		metrics.Get().RecordMove(ctx, "error", 0)
		if isNotFound(err) {
			return nil, pkgerrors.PlaceNotFound
		}
		return nil, err
	}

	places, err := s.places.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	if result.NoOp() {
		metrics.Get().RecordMove(ctx, "noop", 0)
		return &dto.MovePlaceResponse{Moved: false, Places: places}, nil
	}

	metrics.Get().RecordMove(ctx, "moved", len(result.Changed))
	s.afterChange(ctx, model.EventPlaceReordered, trip.ID, id, map[string]interface{}{
		"changed": len(result.Changed),
	})
	return &dto.MovePlaceResponse{Moved: true, Changed: len(result.Changed), Places: places}, nil
}

// withTrip holds the trip lock while fn computes and writes new positions from
// a fresh read of the trip's places.
func (s *PlaceService) withTrip(ctx context.Context, tripID string, fn func(items []reorder.Item) error) error {
	release, err := s.locker.Lock(ctx, tripID)
	if err != nil {
		if stderrors.Is(err, cache.ErrLockNotObtained) {
			return pkgerrors.TripBusy
		}
		return err
	}
	defer release()

	places, err := s.places.ListByTrip(ctx, tripID)
	if err != nil {
		return err
	}
	return fn(toItems(places))
}

func (s *PlaceService) loadPlace(ctx context.Context, id string) (*model.Place, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.PlaceNotFound
	}
	place, err := s.places.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.PlaceNotFound
		}
		return nil, fmt.Errorf("failed to load place: %w", err)
	}
	return place, nil
}

// foreignPlace explains why id is missing from the trip being updated.
func (s *PlaceService) foreignPlace(ctx context.Context, id string) error {
	if _, err := s.loadPlace(ctx, id); err != nil {
		return err
	}
	return pkgerrors.PlaceTripMismatch
}

// afterChange drops the cached summary, whose daily totals follow place days,
// and announces the change.
func (s *PlaceService) afterChange(ctx context.Context, eventType, tripID, placeID string, payload map[string]interface{}) {
	if err := s.summaries.Invalidate(ctx, tripID); err != nil {
		logger.Ctx(ctx).Warn("Failed to invalidate summary cache",
			zap.String("trip_id", tripID),
			zap.Error(err),
		)
	}
	s.events.Publish(ctx, eventType, tripID, placeID, payload)
}

func placeFields(req dto.UpdatePlaceRequest) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, pkgerrors.InvalidRequest.WithMessage("name must not be empty")
		}
		fields["name"] = name
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Time != nil {
		fields["time_range"] = *req.Time
	}
	if req.Duration != nil {
		fields["duration"] = *req.Duration
	}
	if req.Category != nil && *req.Category != "" {
		fields["category"] = *req.Category
	}
	if req.PlaceID != nil {
		fields["external_place_id"] = *req.PlaceID
	}
	if req.OperatingHours != nil {
		fields["operating_hours"] = req.OperatingHours
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	return fields, nil
}

func toItems(places []model.Place) []reorder.Item {
	items := make([]reorder.Item, len(places))
	for i, p := range places {
		items[i] = reorder.Item{ID: p.ID, Day: p.Day, Order: p.Order}
	}
	return items
}
