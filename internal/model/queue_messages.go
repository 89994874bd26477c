package model

// Routing keys of the trip events exchange.
const (
	EventPlaceCreated   = "place.created"
	EventPlaceUpdated   = "place.updated"
	EventPlaceDeleted   = "place.deleted"
	EventPlaceReordered = "place.reordered"
	EventExpenseCreated = "expense.created"
	EventExpenseUpdated = "expense.updated"
	EventExpenseDeleted = "expense.deleted"
)

// TripEvent is published after a committed change to a trip's places or expenses.
type TripEvent struct {
	MessageID  string                 `json:"message_id"` // used for idempotency checks
	EventType  string                 `json:"event_type"`
	TripID     string                 `json:"trip_id"`
	EntityID   string                 `json:"entity_id,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt string                 `json:"occurred_at"`
}
