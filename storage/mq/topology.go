package mq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	TripEventsExchange  = "trip.events"
	SummaryRefreshQueue = "trip.summary.refresh"
)

// summary refresh listens to every place and expense change
var summaryRefreshBindings = []string{"place.*", "expense.*"}

// DeclareTopology declares the durable topic exchange, the summary queue and its bindings.
func DeclareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(TripEventsExchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", TripEventsExchange, err)
	}

	if _, err := ch.QueueDeclare(SummaryRefreshQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", SummaryRefreshQueue, err)
	}

	for _, key := range summaryRefreshBindings {
		if err := ch.QueueBind(SummaryRefreshQueue, key, TripEventsExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind %s to %s: %w", SummaryRefreshQueue, key, err)
		}
	}
	return nil
}
