package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition is a business error code with its default message.
type Definition struct {
	Code    string
	Message string
}

// WithMessage returns a copy of d carrying a more specific message.
func (d Definition) WithMessage(msg string) Definition {
	return Definition{Code: d.Code, Message: msg}
}

// Is lets errors.Is match definitions by code regardless of message.
func (d Definition) Is(target error) bool {
	t, ok := target.(Definition)
	return ok && t.Code == d.Code
}

// Request errors.
var (
	InvalidRequest  = Definition{Code: "INVALID_REQUEST", Message: "Invalid request"}
	TooManyRequests = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests"}
	Internal        = Definition{Code: "INTERNAL_ERROR", Message: "Internal server error"}
)

// Trip errors.
var (
	TripNotFound     = Definition{Code: "TRIP_NOT_FOUND", Message: "Trip not found"}
	TripDateRange    = Definition{Code: "TRIP_DATE_RANGE_INVALID", Message: "End date must not precede start date"}
	TripBusy         = Definition{Code: "TRIP_BUSY", Message: "Trip is being modified, retry shortly"}
	TripIDRequired   = Definition{Code: "TRIP_ID_REQUIRED", Message: "tripId is required"}
	DayOutOfRange    = Definition{Code: "DAY_OUT_OF_RANGE", Message: "Day is outside the trip"}
	TitleKeywordNone = Definition{Code: "TITLE_KEYWORD_REQUIRED", Message: "Title keyword is required"}
)

// Place errors.
var (
	PlaceNotFound       = Definition{Code: "PLACE_NOT_FOUND", Message: "Place not found"}
	OrderNotContiguous  = Definition{Code: "ORDER_NOT_CONTIGUOUS", Message: "Orders within a day must be 1..N"}
	PlaceTripMismatch   = Definition{Code: "PLACE_TRIP_MISMATCH", Message: "Places belong to different trips"}
	MoveTargetRequired  = Definition{Code: "MOVE_TARGET_REQUIRED", Message: "targetDay or targetPlaceId is required"}
	BulkUpdateEmpty     = Definition{Code: "BULK_UPDATE_EMPTY", Message: "No updates given"}
	OperatingHoursCodec = Definition{Code: "OPERATING_HOURS_INVALID", Message: "Operating hours could not be decoded"}
)

// Expense errors.
var (
	ExpenseNotFound     = Definition{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found"}
	AmountInvalid       = Definition{Code: "AMOUNT_INVALID", Message: "Amount must be a non-negative number"}
	UnsupportedCurrency = Definition{Code: "UNSUPPORTED_CURRENCY", Message: "Currency must be KRW or THB"}
)

// Lookup resolves a code to its definition.
var Lookup = map[string]Definition{
	InvalidRequest.Code:      InvalidRequest,
	TooManyRequests.Code:     TooManyRequests,
	Internal.Code:            Internal,
	TripNotFound.Code:        TripNotFound,
	TripDateRange.Code:       TripDateRange,
	TripBusy.Code:            TripBusy,
	TripIDRequired.Code:      TripIDRequired,
	DayOutOfRange.Code:       DayOutOfRange,
	TitleKeywordNone.Code:    TitleKeywordNone,
	PlaceNotFound.Code:       PlaceNotFound,
	OrderNotContiguous.Code:  OrderNotContiguous,
	PlaceTripMismatch.Code:   PlaceTripMismatch,
	MoveTargetRequired.Code:  MoveTargetRequired,
	BulkUpdateEmpty.Code:     BulkUpdateEmpty,
	OperatingHoursCodec.Code: OperatingHoursCodec,
	ExpenseNotFound.Code:     ExpenseNotFound,
	AmountInvalid.Code:       AmountInvalid,
	UnsupportedCurrency.Code: UnsupportedCurrency,
}

// Get returns the Definition for code, or a generic one when unknown.
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// SkipMessageError tells a consumer to ack a message without processing it.
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}
