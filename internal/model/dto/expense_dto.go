package dto

import (
	"github.com/shopspring/decimal"

	"TripPlanner/internal/model"
	"TripPlanner/pkg/money"
)

// ========== Expense DTOs ==========

// CreateExpenseRequest creates an expense. THB amounts are converted to KRW before storage.
type CreateExpenseRequest struct {
	TripID      string      `json:"tripId" validate:"required"`
	PlaceID     *string     `json:"placeId"`
	Amount      money.Input `json:"amount"`
	Description string      `json:"description" validate:"required"`
	Category    string      `json:"category" validate:"required,expense_category"`
	Date        model.Date  `json:"date" validate:"required"`
	Currency    string      `json:"currency" validate:"omitempty,oneof=KRW THB"`
}

// UpdateExpenseRequest carries the fields to change.
type UpdateExpenseRequest struct {
	PlaceID     *string     `json:"placeId"`
	ClearPlace  bool        `json:"clearPlace"`
	Amount      money.Input `json:"amount"`
	Description *string     `json:"description" validate:"omitempty,min=1"`
	Category    *string     `json:"category" validate:"omitempty,expense_category"`
	Date        *model.Date `json:"date"`
	Currency    string      `json:"currency" validate:"omitempty,oneof=KRW THB"`
}

// SetPlaceCostRequest sets the cost recorded against a place.
type SetPlaceCostRequest struct {
	Amount   money.Input `json:"amount"`
	Currency string      `json:"currency" validate:"omitempty,oneof=KRW THB"`
}

// CategoryStat is one row of the per-category statistics.
type CategoryStat struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int64           `json:"count"`
}

// ExpenseSummary is the budget view of a trip's expenses.
type ExpenseSummary struct {
	TripID         string                     `json:"tripId"`
	TotalSpent     decimal.Decimal            `json:"totalSpent"`
	Budget         decimal.Decimal            `json:"budget"`
	Remaining      decimal.Decimal            `json:"remaining"`
	PercentUsed    decimal.Decimal            `json:"percentUsed"`
	CategoryTotals map[string]decimal.Decimal `json:"categoryTotals"`
	DailyTotals    map[int]decimal.Decimal    `json:"dailyTotals"`
	MiscTotal      decimal.Decimal            `json:"miscTotal"`
	Count          int                        `json:"count"`
}
