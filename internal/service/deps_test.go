package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"TripPlanner/internal/cache"
	"TripPlanner/internal/model/dto"
	pkgerrors "TripPlanner/pkg/errors"
)

func TestLocalLockerGivesUpWhenContextEnds(t *testing.T) {
	l := newLocalLocker()

	release, err := l.Lock(context.Background(), "trip-1")
	if err != nil {
		t.Fatalf("first Lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		_, err := l.Lock(ctx, "trip-1")
		done <- err
	}()

	select {
	case err := <-done:
		if !stderrors.Is(err, cache.ErrLockNotObtained) {
			t.Errorf("Lock err = %v, want ErrLockNotObtained", err)
		}
		if !stderrors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Lock err = %v, want it to wrap DeadlineExceeded", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Lock kept waiting after its context ended")
	}

	release()
	again, err := l.Lock(context.Background(), "trip-1")
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	again()
}

func TestLocalLockerTripsAreIndependent(t *testing.T) {
	l := newLocalLocker()
	release, err := l.Lock(context.Background(), "trip-1")
	if err != nil {
		t.Fatalf("Lock trip-1: %v", err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	other, err := l.Lock(ctx, "trip-2")
	if err != nil {
		t.Fatalf("Lock trip-2: %v", err)
	}
	other()
}

func TestPlaceMoveBusyWhileTripLocked(t *testing.T) {
	f := newPlaceFixture(place("A", 1, 1), place("B", 1, 2))
	l := newLocalLocker()
	f.svc.locker = l

	release, err := l.Lock(context.Background(), "trip-1")
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	target := "A"
	_, err = f.svc.Move(ctx, "B", dto.MovePlaceRequest{TargetPlaceID: &target})
	if !stderrors.Is(err, pkgerrors.TripBusy) {
		t.Errorf("Move err = %v, want TripBusy", err)
	}
}
