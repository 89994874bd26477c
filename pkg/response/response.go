package response

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
)

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
}

// SuccessResponse is the success envelope.
type SuccessResponse struct {
	Data interface{}            `json:"data"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

// StatusFor maps a business error to its HTTP status.
func StatusFor(err error) int {
	var def errors.Definition
	if !stderrors.As(err, &def) {
		return http.StatusInternalServerError
	}

	switch def.Code {
	case errors.InvalidRequest.Code, errors.TripDateRange.Code, errors.TripIDRequired.Code,
		errors.DayOutOfRange.Code, errors.TitleKeywordNone.Code, errors.OrderNotContiguous.Code,
		errors.PlaceTripMismatch.Code, errors.MoveTargetRequired.Code, errors.BulkUpdateEmpty.Code,
		errors.AmountInvalid.Code, errors.UnsupportedCurrency.Code:
		return http.StatusBadRequest // 400
	case errors.TripNotFound.Code, errors.PlaceNotFound.Code, errors.ExpenseNotFound.Code:
		return http.StatusNotFound // 404
	case errors.TripBusy.Code:
		return http.StatusConflict // 409
	case errors.TooManyRequests.Code:
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}

func toDetail(err error) ErrorDetail {
	var def errors.Definition
	if stderrors.As(err, &def) && StatusFor(def) != http.StatusInternalServerError {
		return ErrorDetail{Code: def.Code, Message: def.Message}
	}
	// storage and unexpected failures stay server-side
	return ErrorDetail{Code: errors.Internal.Code, Message: errors.Internal.Message}
}

// Error writes err using the error envelope.
func Error(ctx context.Context, c *app.RequestContext, err error) {
	ErrorWithDetails(ctx, c, err, nil)
}

func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	statusCode := StatusFor(err)
	if statusCode >= http.StatusInternalServerError {
		logger.Ctx(ctx).Error("Request failed",
			zap.String("method", string(c.Method())),
			zap.String("path", string(c.Path())),
			zap.Error(err),
		)
	}

	detail := toDetail(err)
	detail.Details = details
	c.JSON(statusCode, ErrorResponse{Error: detail})
}

func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
	})
}

func Created(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Data: data,
	})
}

func SuccessWithMeta(ctx context.Context, c *app.RequestContext, data interface{}, meta map[string]interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    errors.InvalidRequest.Code,
			Message: err.Error(),
		},
	})
}

// NoContent writes 204, used by DELETE.
func NoContent(ctx context.Context, c *app.RequestContext) {
	c.Status(http.StatusNoContent)
}
