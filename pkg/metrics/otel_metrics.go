package metrics

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// TripMetrics are the itinerary and expense instruments.
type TripMetrics struct {
	PlaceMovesTotal    metric.Int64Counter
	PlacesRenumbered   metric.Int64Histogram
	ExpensesTotal      metric.Int64Counter
	ExpenseAmountKRW   metric.Float64Counter
	SummaryCacheTotal  metric.Int64Counter
	EventsPublishTotal metric.Int64Counter
	LockWaitDuration   metric.Float64Histogram
}

var (
	metrics     *TripMetrics
	metricsOnce sync.Once
)

// Get returns the instruments, creating them from the global meter on first
// use. Before a meter provider is installed they record to a no-op meter.
func Get() *TripMetrics {
	metricsOnce.Do(func() {
		m, err := newTripMetrics(otel.Meter("tripplanner"))
		if err != nil {
			otel.Handle(err)
		}
		metrics = m
	})
	return metrics
}

func newTripMetrics(meter metric.Meter) (*TripMetrics, error) {
	m := &TripMetrics{}
	var err error

	if m.PlaceMovesTotal, err = meter.Int64Counter(
		"trip.place.moves.total",
		metric.WithDescription("Place drag and drop moves by outcome"),
		metric.WithUnit("{move}"),
	); err != nil {
		return m, err
	}

	if m.PlacesRenumbered, err = meter.Int64Histogram(
		"trip.place.renumbered",
		metric.WithDescription("Places whose position changed in one write"),
		metric.WithUnit("{place}"),
	); err != nil {
		return m, err
	}

	if m.ExpensesTotal, err = meter.Int64Counter(
		"trip.expenses.total",
		metric.WithDescription("Expense writes by operation and category"),
		metric.WithUnit("{expense}"),
	); err != nil {
		return m, err
	}

	if m.ExpenseAmountKRW, err = meter.Float64Counter(
		"trip.expenses.amount",
		metric.WithDescription("Sum of created expense amounts"),
		metric.WithUnit("KRW"),
	); err != nil {
		return m, err
	}

	if m.SummaryCacheTotal, err = meter.Int64Counter(
		"trip.summary.cache.total",
		metric.WithDescription("Expense summary cache lookups by result"),
		metric.WithUnit("{lookup}"),
	); err != nil {
		return m, err
	}

	if m.EventsPublishTotal, err = meter.Int64Counter(
		"trip.events.publish.total",
		metric.WithDescription("Trip events published by type and status"),
		metric.WithUnit("{event}"),
	); err != nil {
		return m, err
	}

	if m.LockWaitDuration, err = meter.Float64Histogram(
		"trip.lock.wait.duration",
		metric.WithDescription("Time spent obtaining the per-trip lock"),
		metric.WithUnit("s"),
	); err != nil {
		return m, err
	}

	return m, nil
}

func (m *TripMetrics) RecordMove(ctx context.Context, outcome string, changed int) {
	if m == nil || m.PlaceMovesTotal == nil {
		return
	}
	m.PlaceMovesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	if changed > 0 && m.PlacesRenumbered != nil {
		m.PlacesRenumbered.Record(ctx, int64(changed))
	}
}

func (m *TripMetrics) RecordExpense(ctx context.Context, op, category string, amountKRW float64) {
	if m == nil || m.ExpensesTotal == nil {
		return
	}
	m.ExpensesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("category", category),
	))
	if op == "create" && m.ExpenseAmountKRW != nil && amountKRW > 0 {
		m.ExpenseAmountKRW.Add(ctx, amountKRW, metric.WithAttributes(attribute.String("category", category)))
	}
}

func (m *TripMetrics) RecordSummaryCache(ctx context.Context, hit bool) {
	if m == nil || m.SummaryCacheTotal == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.SummaryCacheTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (m *TripMetrics) RecordEvent(ctx context.Context, eventType string, err error) {
	if m == nil || m.EventsPublishTotal == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.EventsPublishTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
		attribute.String("status", status),
	))
}

func (m *TripMetrics) RecordLockWait(ctx context.Context, seconds float64, obtained bool) {
	if m == nil || m.LockWaitDuration == nil {
		return
	}
	m.LockWaitDuration.Record(ctx, seconds, metric.WithAttributes(attribute.Bool("obtained", obtained)))
}
