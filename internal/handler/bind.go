package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TripPlanner/pkg/errors"
	"TripPlanner/pkg/response"
	"TripPlanner/utils"
)

// bindJSON decodes the body into req and validates it. On failure the error
// response is already written.
func bindJSON(ctx context.Context, c *app.RequestContext, req interface{}) bool {
	if err := c.BindJSON(req); err != nil {
		response.BindError(ctx, c, err)
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		response.ErrorWithDetails(ctx, c,
			errors.InvalidRequest.WithMessage(utils.ValidationMessage(err)),
			utils.ProcessValidationErrors(err),
		)
		return false
	}
	return true
}

func requireTripID(ctx context.Context, c *app.RequestContext) (string, bool) {
	tripID := c.Query("tripId")
	if tripID == "" {
		response.Error(ctx, c, errors.TripIDRequired)
		return "", false
	}
	return tripID, true
}
