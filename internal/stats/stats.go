// Package stats folds a trip's expense list into totals.
package stats

import (
	"github.com/shopspring/decimal"

	"TripPlanner/internal/model"
	"TripPlanner/internal/model/dto"
)

var hundred = decimal.NewFromInt(100)

func TotalSpent(expenses []model.ExpenseWithPlace) decimal.Decimal {
	total := decimal.Zero
	for i := range expenses {
		total = total.Add(expenses[i].Amount)
	}
	return total
}

func CategoryTotals(expenses []model.ExpenseWithPlace) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// DailyTotals sums place-attached expenses by the day of their place.
// Miscellaneous expenses are left out.
func DailyTotals(expenses []model.ExpenseWithPlace) map[int]decimal.Decimal {
	totals := make(map[int]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		if e.PlaceID == nil || e.PlaceDay == nil {
			continue
		}
		totals[*e.PlaceDay] = totals[*e.PlaceDay].Add(e.Amount)
	}
	return totals
}

// DailyExpenses groups place-attached expenses by day.
func DailyExpenses(expenses []model.ExpenseWithPlace) map[int][]model.ExpenseWithPlace {
	groups := make(map[int][]model.ExpenseWithPlace)
	for i := range expenses {
		e := expenses[i]
		if e.PlaceID == nil || e.PlaceDay == nil {
			continue
		}
		groups[*e.PlaceDay] = append(groups[*e.PlaceDay], e)
	}
	return groups
}

func ByPlace(expenses []model.ExpenseWithPlace, placeID string) []model.ExpenseWithPlace {
	var out []model.ExpenseWithPlace
	for i := range expenses {
		if expenses[i].PlaceID != nil && *expenses[i].PlaceID == placeID {
			out = append(out, expenses[i])
		}
	}
	return out
}

func MiscTotal(expenses []model.ExpenseWithPlace) decimal.Decimal {
	total := decimal.Zero
	for i := range expenses {
		if expenses[i].PlaceID == nil {
			total = total.Add(expenses[i].Amount)
		}
	}
	return total
}

// Summarize builds the budget view. PercentUsed has one decimal and is zero
// when no budget is set.
func Summarize(tripID string, expenses []model.ExpenseWithPlace, budget decimal.Decimal) dto.ExpenseSummary {
	total := TotalSpent(expenses)

	percent := decimal.Zero
	if budget.IsPositive() {
		percent = total.Div(budget).Mul(hundred).Round(1)
	}

	return dto.ExpenseSummary{
		TripID:         tripID,
		TotalSpent:     total,
		Budget:         budget,
		Remaining:      budget.Sub(total),
		PercentUsed:    percent,
		CategoryTotals: CategoryTotals(expenses),
		DailyTotals:    DailyTotals(expenses),
		MiscTotal:      MiscTotal(expenses),
		Count:          len(expenses),
	}
}
