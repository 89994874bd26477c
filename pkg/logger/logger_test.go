package logger

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func useObserved(t *testing.T, opts ...zap.Option) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger
	Logger = zap.New(core, opts...)
	t.Cleanup(func() { Logger = prev })
	return logs
}

func TestCtxAddsTraceIDs(t *testing.T) {
	logs := useObserved(t)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	Ctx(ctx).Info("place moved")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["trace_id"] != traceID.String() {
		t.Errorf("trace_id = %v, want %s", fields["trace_id"], traceID)
	}
	if fields["span_id"] != spanID.String() {
		t.Errorf("span_id = %v, want %s", fields["span_id"], spanID)
	}
}

func TestCtxWithoutSpan(t *testing.T) {
	useObserved(t)
	if got := Ctx(context.Background()); got != Logger {
		t.Error("Ctx without a span should return Logger itself")
	}
}

func TestSamplingKeepsErrors(t *testing.T) {
	logs := useObserved(t, sampling(1, 1000))

	for i := 0; i < 5; i++ {
		Logger.Info("cache miss")
		Logger.Error("publish failed")
	}

	if got := logs.FilterMessage("cache miss").Len(); got != 1 {
		t.Errorf("sampled info entries = %d, want 1", got)
	}
	if got := logs.FilterMessage("publish failed").Len(); got != 5 {
		t.Errorf("error entries = %d, want 5", got)
	}
}

func TestSamplingDisabled(t *testing.T) {
	logs := useObserved(t, sampling(0, 100))
	for i := 0; i < 3; i++ {
		Logger.Info("cache miss")
	}
	if got := logs.Len(); got != 3 {
		t.Errorf("entries = %d, want 3", got)
	}
}
