package metrics

import (
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestTripMetricsRecord(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := newTripMetrics(provider.Meter("test"))
	if err != nil {
		t.Fatalf("newTripMetrics: %v", err)
	}

	ctx := context.Background()
	m.RecordMove(ctx, "moved", 3)
	m.RecordMove(ctx, "noop", 0)
	m.RecordExpense(ctx, "create", "food", 4300)
	m.RecordSummaryCache(ctx, true)
	m.RecordEvent(ctx, "place.reordered", errors.New("down"))

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			names[md.Name] = true
		}
	}
	for _, want := range []string{
		"trip.place.moves.total",
		"trip.place.renumbered",
		"trip.expenses.total",
		"trip.expenses.amount",
		"trip.summary.cache.total",
		"trip.events.publish.total",
	} {
		if !names[want] {
			t.Errorf("metric %s not collected", want)
		}
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *TripMetrics
	m.RecordMove(context.Background(), "moved", 1)
	m.RecordEvent(context.Background(), "x", nil)
}
