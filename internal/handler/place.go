package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TripPlanner/internal/model/dto"
	"TripPlanner/internal/service"
	"TripPlanner/pkg/errors"
	"TripPlanner/pkg/response"
)

// ListPlaces lists the trip's places ordered by day and order.
// GET /places?tripId=
func ListPlaces(ctx context.Context, c *app.RequestContext) {
	tripID, ok := requireTripID(ctx, c)
	if !ok {
		return
	}

	places, err := service.Place().List(ctx, tripID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, places)
}

// CreatePlace
// POST /places
func CreatePlace(ctx context.Context, c *app.RequestContext) {
	var req dto.CreatePlaceRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	place, err := service.Place().Create(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Created(ctx, c, place)
}

// UpdatePlace
// PUT /places/:id
func UpdatePlace(ctx context.Context, c *app.RequestContext) {
	var req dto.UpdatePlaceRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	place, err := service.Place().Update(ctx, c.Param("id"), req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, place)
}

// DeletePlace
// DELETE /places/:id
func DeletePlace(ctx context.Context, c *app.RequestContext) {
	if err := service.Place().Delete(ctx, c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.NoContent(ctx, c)
}

// BulkUpdatePlaces writes {id, day, order} triples in one transaction.
// POST /places/bulk-update
func BulkUpdatePlaces(ctx context.Context, c *app.RequestContext) {
	var req dto.BulkUpdatePlacesRequest
	if !bindJSON(ctx, c, &req) {
		return
	}
	positions := req.Positions()
	if len(positions) == 0 {
		response.Error(ctx, c, errors.BulkUpdateEmpty)
		return
	}

	places, err := service.Place().BulkUpdate(ctx, positions)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.SuccessWithMeta(ctx, c, places, map[string]interface{}{
		"updated": len(positions),
	})
}

// MovePlace applies a drag and drop onto a day or another place.
// POST /places/:id/move
func MovePlace(ctx context.Context, c *app.RequestContext) {
	var req dto.MovePlaceRequest
	if !bindJSON(ctx, c, &req) {
		return
	}
	if req.TargetDay == nil && (req.TargetPlaceID == nil || *req.TargetPlaceID == "") {
		response.Error(ctx, c, errors.MoveTargetRequired)
		return
	}

	result, err := service.Place().Move(ctx, c.Param("id"), req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, result)
}

// ListPlaceExpenses
// GET /places/:id/expenses
func ListPlaceExpenses(ctx context.Context, c *app.RequestContext) {
	expenses, err := service.Expense().ListByPlace(ctx, c.Param("id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, expenses)
}

// SetPlaceCost overwrites the place's cost or records a first one.
// PUT /places/:id/cost
func SetPlaceCost(ctx context.Context, c *app.RequestContext) {
	var req dto.SetPlaceCostRequest
	if !bindJSON(ctx, c, &req) {
		return
	}
	if !req.Amount.Set || req.Amount.IsNegative() {
		response.Error(ctx, c, errors.AmountInvalid)
		return
	}

	expense, err := service.Expense().SetPlaceCost(ctx, c.Param("id"), req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, expense)
}
