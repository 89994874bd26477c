package dto

import (
	"github.com/shopspring/decimal"

	"TripPlanner/internal/model"
	"TripPlanner/pkg/money"
)

// ========== Trip DTOs ==========

// CreateTripRequest creates a trip.
type CreateTripRequest struct {
	Title       string      `json:"title" validate:"required,max=255"`
	Description string      `json:"description"`
	StartDate   model.Date  `json:"startDate" validate:"required"`
	EndDate     model.Date  `json:"endDate" validate:"required"`
	Budget      money.Input `json:"budget"`
}

// EnsureTripRequest reuses the first trip whose title contains Keyword,
// otherwise creates one from the remaining fields.
type EnsureTripRequest struct {
	Keyword string `json:"keyword" validate:"required"`
	CreateTripRequest
}

// TripItem is the trip as returned to clients.
type TripItem struct {
	model.Trip
	TotalDays int `json:"totalDays"`
}

func NewTripItem(t *model.Trip) TripItem {
	return TripItem{Trip: *t, TotalDays: t.TotalDays()}
}

func NewTripItems(trips []model.Trip) []TripItem {
	items := make([]TripItem, 0, len(trips))
	for i := range trips {
		items = append(items, NewTripItem(&trips[i]))
	}
	return items
}

// BudgetOrDefault returns the trip budget or fallback when unset.
func BudgetOrDefault(t *model.Trip, fallback decimal.Decimal) decimal.Decimal {
	if t.Budget != nil {
		return *t.Budget
	}
	return fallback
}
