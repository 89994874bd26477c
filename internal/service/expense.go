package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"TripPlanner/internal/exchange"
	"TripPlanner/internal/model"
	"TripPlanner/internal/model/dto"
	"TripPlanner/internal/stats"
	pkgerrors "TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
	"TripPlanner/pkg/metrics"
	"TripPlanner/pkg/money"
	"TripPlanner/utils"
)

type ExpenseService struct {
	trips         TripStore
	places        PlaceStore
	expenses      ExpenseStore
	summaries     SummaryStore
	events        EventPublisher
	converter     exchange.Converter
	defaultBudget decimal.Decimal
}

var (
	expenseService *ExpenseService
	expenseOnce    sync.Once
)

func Expense() *ExpenseService {
	expenseOnce.Do(func() {
		expenseService = NewExpenseService(
			tripRepo(), placeRepo(), expenseRepo(),
			summaryStore(), publisher(),
			expenseConverter(), defaultBudget(),
		)
	})
	return expenseService
}

func NewExpenseService(
	trips TripStore,
	places PlaceStore,
	expenses ExpenseStore,
	summaries SummaryStore,
	events EventPublisher,
	converter exchange.Converter,
	defaultBudget decimal.Decimal,
) *ExpenseService {
	if summaries == nil {
		summaries = noopSummaryStore{}
	}
	if events == nil {
		events = noopPublisher{}
	}
	return &ExpenseService{
		trips:         trips,
		places:        places,
		expenses:      expenses,
		summaries:     summaries,
		events:        events,
		converter:     converter,
		defaultBudget: defaultBudget,
	}
}

func (s *ExpenseService) List(ctx context.Context, tripID string) ([]model.ExpenseWithPlace, error) {
	if _, err := loadTrip(ctx, s.trips, tripID); err != nil {
		return nil, err
	}
	return s.expenses.ListByTrip(ctx, tripID)
}

func (s *ExpenseService) ListByPlace(ctx context.Context, placeID string) ([]model.ExpenseWithPlace, error) {
	if _, err := s.loadPlace(ctx, placeID); err != nil {
		return nil, err
	}
	return s.expenses.ListByPlace(ctx, placeID)
}

// Create stores the expense in KRW. THB amounts are converted at the expense rate.
func (s *ExpenseService) Create(ctx context.Context, req dto.CreateExpenseRequest) (*model.Expense, error) {
	trip, err := loadTrip(ctx, s.trips, req.TripID)
	if err != nil {
		return nil, err
	}
	if !utils.IsExpenseCategory(req.Category) {
		return nil, pkgerrors.InvalidRequest.WithMessage("unknown expense category " + req.Category)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, pkgerrors.InvalidRequest.WithMessage("description is required")
	}
	if req.Date.IsZero() {
		return nil, pkgerrors.InvalidRequest.WithMessage("date is required")
	}
	amount, err := s.toKRW(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	expense := &model.Expense{
		TripID:      trip.ID,
		Amount:      amount,
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Date:        req.Date,
		Currency:    model.CurrencyKRW,
	}
	if req.PlaceID != nil && *req.PlaceID != "" {
		if err := s.checkPlace(ctx, *req.PlaceID, trip.ID); err != nil {
			return nil, err
		}
		placeID := *req.PlaceID
		expense.PlaceID = &placeID
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}

	metrics.Get().RecordExpense(ctx, "create", expense.Category, expense.Amount.InexactFloat64())
	s.afterChange(ctx, model.EventExpenseCreated, trip.ID, expense.ID, expense)
	return expense, nil
}

func (s *ExpenseService) Update(ctx context.Context, id string, req dto.UpdateExpenseRequest) (*model.Expense, error) {
	current, err := s.loadExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Amount.Set {
		amount, err := s.toKRW(req.Amount, req.Currency)
		if err != nil {
			return nil, err
		}
		fields["amount"] = amount
		fields["currency"] = model.CurrencyKRW
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		if desc == "" {
			return nil, pkgerrors.InvalidRequest.WithMessage("description must not be empty")
		}
		fields["description"] = desc
	}
	if req.Category != nil {
		if !utils.IsExpenseCategory(*req.Category) {
			return nil, pkgerrors.InvalidRequest.WithMessage("unknown expense category " + *req.Category)
		}
		fields["category"] = *req.Category
	}
	if req.Date != nil && !req.Date.IsZero() {
		fields["date"] = *req.Date
	}
	switch {
	case req.ClearPlace:
		fields["place_id"] = nil
	case req.PlaceID != nil && *req.PlaceID != "":
		if err := s.checkPlace(ctx, *req.PlaceID, current.TripID); err != nil {
			return nil, err
		}
		fields["place_id"] = *req.PlaceID
	}

	if err := s.expenses.Update(ctx, id, fields); err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.ExpenseNotFound
		}
		return nil, err
	}

	updated, err := s.loadExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	metrics.Get().RecordExpense(ctx, "update", updated.Category, 0)
	s.afterChange(ctx, model.EventExpenseUpdated, updated.TripID, id, updated)
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	expense, err := s.loadExpense(ctx, id)
	if err != nil {
		return err
	}
	if err := s.expenses.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return pkgerrors.ExpenseNotFound
		}
		return err
	}

	metrics.Get().RecordExpense(ctx, "delete", expense.Category, 0)
	s.afterChange(ctx, model.EventExpenseDeleted, expense.TripID, id, nil)
	return nil
}

// Stats returns per-category totals and counts, largest total first.
func (s *ExpenseService) Stats(ctx context.Context, tripID string) ([]dto.CategoryStat, error) {
	if _, err := loadTrip(ctx, s.trips, tripID); err != nil {
		return nil, err
	}
	return s.expenses.CategoryStats(ctx, tripID)
}

// Summary serves the budget view from cache and computes it on a miss.
func (s *ExpenseService) Summary(ctx context.Context, tripID string) (*dto.ExpenseSummary, error) {
	trip, err := loadTrip(ctx, s.trips, tripID)
	if err != nil {
		return nil, err
	}

	cached, hit, err := s.summaries.Get(ctx, tripID)
	if err != nil {
		logger.Ctx(ctx).Warn("Failed to read summary cache",
			zap.String("trip_id", tripID),
			zap.Error(err),
		)
	}
	metrics.Get().RecordSummaryCache(ctx, hit)
	if hit {
		return cached, nil
	}

	return s.computeSummary(ctx, trip)
}

// RefreshSummary recomputes the trip's summary and stores it in the cache.
func (s *ExpenseService) RefreshSummary(ctx context.Context, tripID string) error {
	trip, err := loadTrip(ctx, s.trips, tripID)
	if err != nil {
		if stderrors.Is(err, pkgerrors.TripNotFound) {
			return &pkgerrors.SkipMessageError{Reason: "trip " + tripID + " no longer exists"}
		}
		return err
	}
	_, err = s.computeSummary(ctx, trip)
	return err
}

func (s *ExpenseService) computeSummary(ctx context.Context, trip *model.Trip) (*dto.ExpenseSummary, error) {
	expenses, err := s.expenses.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	summary := stats.Summarize(trip.ID, expenses, dto.BudgetOrDefault(trip, s.defaultBudget))
	if err := s.summaries.Set(ctx, &summary); err != nil {
		logger.Ctx(ctx).Warn("Failed to write summary cache",
			zap.String("trip_id", trip.ID),
			zap.Error(err),
		)
	}
	return &summary, nil
}

// SetPlaceCost records the cost of a place. The place's first expense is
// overwritten; without one a new expense named after the place is created,
// dated on the place's trip day.
func (s *ExpenseService) SetPlaceCost(ctx context.Context, placeID string, req dto.SetPlaceCostRequest) (*model.Expense, error) {
	place, err := s.loadPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	trip, err := loadTrip(ctx, s.trips, place.TripID)
	if err != nil {
		return nil, err
	}
	amount, err := s.toKRW(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	existing, err := s.expenses.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}

	if len(existing) > 0 {
		id := existing[0].ID
		if err := s.expenses.Update(ctx, id, map[string]interface{}{
			"amount":   amount,
			"currency": model.CurrencyKRW,
		}); err != nil {
			return nil, err
		}
		updated, err := s.loadExpense(ctx, id)
		if err != nil {
			return nil, err
		}
		metrics.Get().RecordExpense(ctx, "update", updated.Category, 0)
		s.afterChange(ctx, model.EventExpenseUpdated, trip.ID, id, updated)
		return updated, nil
	}

	pid := place.ID
	expense := &model.Expense{
		TripID:      trip.ID,
		PlaceID:     &pid,
		Amount:      amount,
		Description: place.Name,
		Category:    model.ExpenseCategoryForPlace(place.Category),
		Date:        trip.DateOfDay(place.Day),
		Currency:    model.CurrencyKRW,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	metrics.Get().RecordExpense(ctx, "create", expense.Category, expense.Amount.InexactFloat64())
	s.afterChange(ctx, model.EventExpenseCreated, trip.ID, expense.ID, expense)
	return expense, nil
}

func (s *ExpenseService) toKRW(in money.Input, currency string) (decimal.Decimal, error) {
	if !in.Set || in.IsNegative() {
		return decimal.Zero, pkgerrors.AmountInvalid
	}
	krw, err := s.converter.ToKRW(in.Decimal, currency)
	if err != nil {
		return decimal.Zero, err
	}
	// amount column is numeric(14,2)
	return krw.Round(2), nil
}

func (s *ExpenseService) checkPlace(ctx context.Context, placeID, tripID string) error {
	place, err := s.loadPlace(ctx, placeID)
	if err != nil {
		return err
	}
	if place.TripID != tripID {
		return pkgerrors.PlaceTripMismatch
	}
	return nil
}

func (s *ExpenseService) loadPlace(ctx context.Context, id string) (*model.Place, error) {
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

func (s *ExpenseService) loadExpense(ctx context.Context, id string) (*model.Expense, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.ExpenseNotFound
	}
	expense, err := s.expenses.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.ExpenseNotFound
		}
		return nil, fmt.Errorf("failed to load expense: %w", err)
	}
	return expense, nil
}

func (s *ExpenseService) afterChange(ctx context.Context, eventType, tripID, expenseID string, expense *model.Expense) {
	if err := s.summaries.Invalidate(ctx, tripID); err != nil {
		logger.Ctx(ctx).Warn("Failed to invalidate summary cache",
			zap.String("trip_id", tripID),
			zap.Error(err),
		)
	}

	var payload map[string]interface{}
	if expense != nil {
		payload = map[string]interface{}{
			"amount":   expense.Amount.String(),
			"category": expense.Category,
		}
	}
	s.events.Publish(ctx, eventType, tripID, expenseID, payload)
}
