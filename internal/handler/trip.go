package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TripPlanner/internal/model/dto"
	"TripPlanner/internal/service"
	"TripPlanner/pkg/response"
)

// ListTrips lists all trips.
// GET /trips
func ListTrips(ctx context.Context, c *app.RequestContext) {
	trips, err := service.Trip().List(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, trips)
}

// CreateTrip
// POST /trips
func CreateTrip(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateTripRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	trip, err := service.Trip().Create(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Created(ctx, c, trip)
}

// GetTrip returns one trip with its day count.
// GET /trips/:id
func GetTrip(ctx context.Context, c *app.RequestContext) {
	trip, err := service.Trip().Get(ctx, c.Param("id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, trip)
}

// EnsureTrip returns the trip matching keyword, creating it on first call.
// POST /trips/ensure
func EnsureTrip(ctx context.Context, c *app.RequestContext) {
	var req dto.EnsureTripRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	trip, created, err := service.Trip().Ensure(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	if created {
		response.Created(ctx, c, trip)
		return
	}
	response.Success(ctx, c, trip)
}
