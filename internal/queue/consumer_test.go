package queue

import (
	"context"
	stderrors "errors"
	"testing"

	"TripPlanner/config"
	"TripPlanner/pkg/errors"
)

type fakeRefresher struct {
	calls []string
	err   error
}

func (f *fakeRefresher) RefreshSummary(ctx context.Context, tripID string) error {
	f.calls = append(f.calls, tripID)
	return f.err
}

type fakeMarker struct {
	seen     map[string]string
	markErr  error
	unmarked []string
}

func newFakeMarker() *fakeMarker {
	return &fakeMarker{seen: map[string]string{}}
}

func (m *fakeMarker) TryMarkProcessing(ctx context.Context, id string) (bool, error) {
	if m.markErr != nil {
		return false, m.markErr
	}
	if _, ok := m.seen[id]; ok {
		return false, nil
	}
	m.seen[id] = "processing"
	return true, nil
}

func (m *fakeMarker) Unmark(ctx context.Context, id string) error {
	delete(m.seen, id)
	m.unmarked = append(m.unmarked, id)
	return nil
}

func (m *fakeMarker) MarkProcessed(ctx context.Context, id string) error {
	m.seen[id] = "completed"
	return nil
}

const event = `{"message_id":"trip_event_1","event_type":"expense.created","trip_id":"t-1"}`

func TestSummaryRefreshHandlerDeduplicates(t *testing.T) {
	refresher := &fakeRefresher{}
	marker := newFakeMarker()
	h := &summaryRefreshHandler{refresher: refresher, marker: marker}

	if err := h.Handle(context.Background(), []byte(event)); err != nil {
		t.Fatalf("first Handle: %v", err)
	}
	err := h.Handle(context.Background(), []byte(event))
	var skip *errors.SkipMessageError
	if !stderrors.As(err, &skip) {
		t.Fatalf("second Handle err = %v, want SkipMessageError", err)
	}
	if len(refresher.calls) != 1 || refresher.calls[0] != "t-1" {
		t.Errorf("refresh calls = %v, want [t-1]", refresher.calls)
	}
	if marker.seen["trip_event_1"] != "completed" {
		t.Errorf("marker = %q, want completed", marker.seen["trip_event_1"])
	}
}

func TestSummaryRefreshHandlerUnmarksOnFailure(t *testing.T) {
	refresher := &fakeRefresher{err: stderrors.New("db down")}
	marker := newFakeMarker()
	h := &summaryRefreshHandler{refresher: refresher, marker: marker}

	err := h.Handle(context.Background(), []byte(event))
	if err == nil {
		t.Fatal("Handle err = nil, want refresh failure")
	}
	var skip *errors.SkipMessageError
	if stderrors.As(err, &skip) {
		t.Fatalf("refresh failure must be retried, got skip: %v", err)
	}
	if len(marker.unmarked) != 1 {
		t.Errorf("unmarked = %v, want one entry", marker.unmarked)
	}
	if _, ok := marker.seen["trip_event_1"]; ok {
		t.Error("message still marked after failure")
	}
}

func TestSummaryRefreshHandlerSkipsMalformed(t *testing.T) {
	h := &summaryRefreshHandler{refresher: &fakeRefresher{}, marker: newFakeMarker()}
	for _, body := range []string{`not json`, `{"event_type":"place.created"}`} {
		err := h.Handle(context.Background(), []byte(body))
		var skip *errors.SkipMessageError
		if !stderrors.As(err, &skip) {
			t.Errorf("Handle(%s) err = %v, want SkipMessageError", body, err)
		}
	}
}

func TestSummaryRefreshHandlerProceedsWhenMarkerFails(t *testing.T) {
	refresher := &fakeRefresher{}
	marker := newFakeMarker()
	marker.markErr = stderrors.New("redis down")
	h := &summaryRefreshHandler{refresher: refresher, marker: marker}

	if err := h.Handle(context.Background(), []byte(event)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(refresher.calls) != 1 {
		t.Errorf("refresh calls = %d, want 1", len(refresher.calls))
	}
}

func TestSummaryRefreshWithoutRedis(t *testing.T) {
	prevCache, prevRate := config.Cfg.CacheEnabled, config.Cfg.RateLimitEnabled
	t.Cleanup(func() {
		config.Cfg.CacheEnabled, config.Cfg.RateLimitEnabled = prevCache, prevRate
	})
	config.Cfg.CacheEnabled = false
	config.Cfg.RateLimitEnabled = false

	marker := newMarker()
	if _, ok := marker.(noopMarker); !ok {
		t.Fatalf("newMarker() = %T, want noopMarker", marker)
	}

	refresher := &fakeRefresher{}
	h := &summaryRefreshHandler{refresher: refresher, marker: marker}
	if err := h.Handle(context.Background(), []byte(event)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(refresher.calls) != 1 || refresher.calls[0] != "t-1" {
		t.Errorf("refresh calls = %v, want [t-1]", refresher.calls)
	}
}
