package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"TripPlanner/internal/cache"
	"TripPlanner/internal/model"
	"TripPlanner/internal/model/dto"
	"TripPlanner/internal/reorder"
)

type fakeTripStore struct {
	trips map[string]*model.Trip
	order []string
}

func newFakeTripStore(trips ...*model.Trip) *fakeTripStore {
	s := &fakeTripStore{trips: map[string]*model.Trip{}}
	for _, t := range trips {
		_ = s.Create(context.Background(), t)
	}
	return s
}

func (s *fakeTripStore) List(ctx context.Context) ([]model.Trip, error) {
	out := make([]model.Trip, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.trips[id])
	}
	return out, nil
}

func (s *fakeTripStore) Get(ctx context.Context, id string) (*model.Trip, error) {
	t, ok := s.trips[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTripStore) Create(ctx context.Context, trip *model.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	cp := *trip
	s.trips[trip.ID] = &cp
	s.order = append(s.order, trip.ID)
	return nil
}

func (s *fakeTripStore) FindByTitleKeyword(ctx context.Context, keyword string) (*model.Trip, error) {
	for _, id := range s.order {
		if strings.Contains(s.trips[id].Title, keyword) {
			cp := *s.trips[id]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakePlaceStore struct {
	places         map[string]*model.Place
	positionWrites int
}

func newFakePlaceStore(places ...model.Place) *fakePlaceStore {
	s := &fakePlaceStore{places: map[string]*model.Place{}}
	for i := range places {
		p := places[i]
		s.places[p.ID] = &p
	}
	return s
}

func (s *fakePlaceStore) ListByTrip(ctx context.Context, tripID string) ([]model.Place, error) {
	var out []model.Place
	for _, p := range s.places {
		if p.TripID == tripID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Order < out[j].Order
	})
	return out, nil
}

func (s *fakePlaceStore) Get(ctx context.Context, id string) (*model.Place, error) {
	p, ok := s.places[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakePlaceStore) Create(ctx context.Context, place *model.Place, shifts []reorder.Item) error {
	if err := s.UpdatePositions(ctx, shifts); err != nil {
		return err
	}
	cp := *place
	s.places[place.ID] = &cp
	return nil
}

func (s *fakePlaceStore) Update(ctx context.Context, id string, fields map[string]interface{}, shifts []reorder.Item) error {
	p, ok := s.places[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if err := s.UpdatePositions(ctx, shifts); err != nil {
		return err
	}
	if name, ok := fields["name"].(string); ok {
		p.Name = name
	}
	if category, ok := fields["category"].(string); ok {
		p.Category = category
	}
	return nil
}

func (s *fakePlaceStore) Delete(ctx context.Context, id string, shifts []reorder.Item) error {
	if _, ok := s.places[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.places, id)
	return s.UpdatePositions(ctx, shifts)
}

func (s *fakePlaceStore) UpdatePositions(ctx context.Context, positions []reorder.Item) error {
	for _, pos := range positions {
		if _, ok := s.places[pos.ID]; !ok {
			return gorm.ErrRecordNotFound
		}
	}
	if len(positions) > 0 {
		s.positionWrites++
	}
	for _, pos := range positions {
		s.places[pos.ID].Day = pos.Day
		s.places[pos.ID].Order = pos.Order
	}
	return nil
}

func (s *fakePlaceStore) items(tripID string) []reorder.Item {
	places, _ := s.ListByTrip(context.Background(), tripID)
	return toItems(places)
}

type fakeExpenseStore struct {
	expenses map[string]*model.Expense
	places   *fakePlaceStore
	seq      int
}

func newFakeExpenseStore(places *fakePlaceStore) *fakeExpenseStore {
	return &fakeExpenseStore{expenses: map[string]*model.Expense{}, places: places}
}

func (s *fakeExpenseStore) join(e *model.Expense) model.ExpenseWithPlace {
	out := model.ExpenseWithPlace{Expense: *e}
	if e.PlaceID != nil {
		if p, ok := s.places.places[*e.PlaceID]; ok {
			name, day := p.Name, p.Day
			out.PlaceName = &name
			out.PlaceDay = &day
		}
	}
	return out
}

func (s *fakeExpenseStore) sorted(keep func(*model.Expense) bool) []model.ExpenseWithPlace {
	var out []model.ExpenseWithPlace
	for _, e := range s.expenses {
		if keep(e) {
			out = append(out, s.join(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *fakeExpenseStore) ListByTrip(ctx context.Context, tripID string) ([]model.ExpenseWithPlace, error) {
	return s.sorted(func(e *model.Expense) bool { return e.TripID == tripID }), nil
}

func (s *fakeExpenseStore) ListByPlace(ctx context.Context, placeID string) ([]model.ExpenseWithPlace, error) {
	return s.sorted(func(e *model.Expense) bool { return e.PlaceID != nil && *e.PlaceID == placeID }), nil
}

func (s *fakeExpenseStore) Get(ctx context.Context, id string) (*model.Expense, error) {
	e, ok := s.expenses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *fakeExpenseStore) Create(ctx context.Context, expense *model.Expense) error {
	s.seq++
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	expense.CreatedAt = time.Unix(int64(s.seq), 0)
	cp := *expense
	s.expenses[expense.ID] = &cp
	return nil
}

func (s *fakeExpenseStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	e, ok := s.expenses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if amount, ok := fields["amount"].(decimal.Decimal); ok {
		e.Amount = amount
	}
	if category, ok := fields["category"].(string); ok {
		e.Category = category
	}
	if description, ok := fields["description"].(string); ok {
		e.Description = description
	}
	if v, ok := fields["place_id"]; ok {
		if v == nil {
			e.PlaceID = nil
		} else {
			id := v.(string)
			e.PlaceID = &id
		}
	}
	return nil
}

func (s *fakeExpenseStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.expenses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *fakeExpenseStore) CategoryStats(ctx context.Context, tripID string) ([]dto.CategoryStat, error) {
	totals := map[string]*dto.CategoryStat{}
	for _, e := range s.expenses {
		if e.TripID != tripID {
			continue
		}
		st, ok := totals[e.Category]
		if !ok {
			st = &dto.CategoryStat{Category: e.Category}
			totals[e.Category] = st
		}
		st.TotalAmount = st.TotalAmount.Add(e.Amount)
		st.Count++
	}
	out := make([]dto.CategoryStat, 0, len(totals))
	for _, st := range totals {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalAmount.GreaterThan(out[j].TotalAmount) })
	return out, nil
}

type fakeSummaryStore struct {
	entries     map[string]dto.ExpenseSummary
	invalidated []string
}

func newFakeSummaryStore() *fakeSummaryStore {
	return &fakeSummaryStore{entries: map[string]dto.ExpenseSummary{}}
}

func (s *fakeSummaryStore) Get(ctx context.Context, tripID string) (*dto.ExpenseSummary, bool, error) {
	v, ok := s.entries[tripID]
	if !ok {
		return nil, false, nil
	}
	return &v, true, nil
}

func (s *fakeSummaryStore) Set(ctx context.Context, summary *dto.ExpenseSummary) error {
	s.entries[summary.TripID] = *summary
	return nil
}

func (s *fakeSummaryStore) Invalidate(ctx context.Context, tripID string) error {
	delete(s.entries, tripID)
	s.invalidated = append(s.invalidated, tripID)
	return nil
}

type publishedEvent struct {
	eventType string
	tripID    string
	entityID  string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType, tripID, entityID string, payload map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType, tripID, entityID})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.eventType
	}
	return out
}

type busyLocker struct{}

func (busyLocker) Lock(context.Context, string) (func(), error) {
	return nil, cache.ErrLockNotObtained
}

func phuketTrip() *model.Trip {
	return &model.Trip{
		BaseModel: model.BaseModel{ID: "trip-1"},
		Title:     "태국 푸켓 여행",
		StartDate: model.NewDate(2025, time.August, 13),
		EndDate:   model.NewDate(2025, time.August, 16),
	}
}

func place(id string, day, order int) model.Place {
	return model.Place{
		BaseModel: model.BaseModel{ID: id},
		TripID:    "trip-1",
		Name:      id,
		Day:       day,
		Order:     order,
		Category:  model.PlaceCategoryRestaurant,
	}
}
