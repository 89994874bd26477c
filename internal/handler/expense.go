package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TripPlanner/internal/model/dto"
	"TripPlanner/internal/service"
	"TripPlanner/pkg/errors"
	"TripPlanner/pkg/response"
)

// ListExpenses lists the trip's expenses with their place name and day.
// GET /expenses?tripId=
func ListExpenses(ctx context.Context, c *app.RequestContext) {
	tripID, ok := requireTripID(ctx, c)
	if !ok {
		return
	}

	expenses, err := service.Expense().List(ctx, tripID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, expenses)
}

// CreateExpense
// POST /expenses
func CreateExpense(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateExpenseRequest
	if !bindJSON(ctx, c, &req) {
		return
	}
	if !req.Amount.Set || req.Amount.IsNegative() {
		response.Error(ctx, c, errors.AmountInvalid)
		return
	}

	expense, err := service.Expense().Create(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Created(ctx, c, expense)
}

// UpdateExpense
// PUT /expenses/:id
func UpdateExpense(ctx context.Context, c *app.RequestContext) {
	var req dto.UpdateExpenseRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	expense, err := service.Expense().Update(ctx, c.Param("id"), req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, expense)
}

// DeleteExpense
// DELETE /expenses/:id
func DeleteExpense(ctx context.Context, c *app.RequestContext) {
	if err := service.Expense().Delete(ctx, c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.NoContent(ctx, c)
}

// GetExpenseStats returns per-category totals and counts.
// GET /expenses/stats?tripId=
func GetExpenseStats(ctx context.Context, c *app.RequestContext) {
	tripID, ok := requireTripID(ctx, c)
	if !ok {
		return
	}

	stats, err := service.Expense().Stats(ctx, tripID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, stats)
}

// GetExpenseSummary returns totals against the budget.
// GET /expenses/summary?tripId=
func GetExpenseSummary(ctx context.Context, c *app.RequestContext) {
	tripID, ok := requireTripID(ctx, c)
	if !ok {
		return
	}

	summary, err := service.Expense().Summary(ctx, tripID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, summary)
}
