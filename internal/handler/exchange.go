package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TripPlanner/internal/service"
	"TripPlanner/pkg/errors"
	"TripPlanner/pkg/response"
)

// GetExchangeRates
// GET /exchange/rates
func GetExchangeRates(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, service.Exchange().Rates())
}

// ConvertCurrency runs the calculator. from defaults to THB.
// GET /exchange/convert?amount=&from=
func ConvertCurrency(ctx context.Context, c *app.RequestContext) {
	amount := c.Query("amount")
	if amount == "" {
		response.Error(ctx, c, errors.AmountInvalid)
		return
	}

	result, err := service.Exchange().Convert(amount, c.DefaultQuery("from", "THB"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, result)
}
