package service

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"

	"TripPlanner/internal/model"
	"TripPlanner/internal/model/dto"
	"TripPlanner/internal/reorder"
	pkgerrors "TripPlanner/pkg/errors"
)

type placeFixture struct {
	svc       *PlaceService
	places    *fakePlaceStore
	summaries *fakeSummaryStore
	events    *recordingPublisher
}

func newPlaceFixture(places ...model.Place) *placeFixture {
	f := &placeFixture{
		places:    newFakePlaceStore(places...),
		summaries: newFakeSummaryStore(),
		events:    &recordingPublisher{},
	}
	f.svc = NewPlaceService(newFakeTripStore(phuketTrip()), f.places, nil, f.summaries, f.events)
	return f
}

func (f *placeFixture) layout() []reorder.Item {
	return f.places.items("trip-1")
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestPlaceServiceMoveWithinDay(t *testing.T) {
	f := newPlaceFixture(place("A", 1, 1), place("B", 1, 2), place("C", 1, 3))

	resp, err := f.svc.Move(context.Background(), "A", dto.MovePlaceRequest{TargetPlaceID: strPtr("C")})
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !resp.Moved {
		t.Fatal("Moved = false, want true")
	}

	want := []reorder.Item{{ID: "B", Day: 1, Order: 1}, {ID: "C", Day: 1, Order: 2}, {ID: "A", Day: 1, Order: 3}}
	if got := f.layout(); !reflect.DeepEqual(got, want) {
		t.Errorf("layout = %v, want %v", got, want)
	}
	if len(resp.Places) != 3 || resp.Places[0].ID != "B" {
		t.Errorf("response places = %v", resp.Places)
	}
	if got := f.events.types(); !reflect.DeepEqual(got, []string{model.EventPlaceReordered}) {
		t.Errorf("events = %v", got)
	}
	if len(f.summaries.invalidated) != 1 {
		t.Errorf("summary invalidations = %d, want 1", len(f.summaries.invalidated))
	}
}

func TestPlaceServiceMoveToEmptyDay(t *testing.T) {
	f := newPlaceFixture(place("X", 1, 1))

	if _, err := f.svc.Move(context.Background(), "X", dto.MovePlaceRequest{TargetDay: intPtr(2)}); err != nil {
		t.Fatalf("Move: %v", err)
	}
	want := []reorder.Item{{ID: "X", Day: 2, Order: 1}}
	if got := f.layout(); !reflect.DeepEqual(got, want) {
		t.Errorf("layout = %v, want %v", got, want)
	}
}

func TestPlaceServiceMoveNoOpWritesNothing(t *testing.T) {
	f := newPlaceFixture(place("A", 1, 1), place("B", 1, 2))

	for name, req := range map[string]dto.MovePlaceRequest{
		"own day":      {TargetDay: intPtr(1)},
		"self":         {TargetPlaceID: strPtr("A")},
		"day past end": {TargetDay: intPtr(9)},
		"unknown":      {TargetPlaceID: strPtr("nope")},
	} {
		resp, err := f.svc.Move(context.Background(), "A", req)
		if err != nil {
			t.Fatalf("%s: Move: %v", name, err)
		}
		if resp.Moved {
			t.Errorf("%s: Moved = true, want false", name)
		}
	}
	if f.places.positionWrites != 0 {
		t.Errorf("position writes = %d, want 0", f.places.positionWrites)
	}
	if len(f.events.types()) != 0 {
		t.Errorf("events = %v, want none", f.events.types())
	}
}

func TestPlaceServiceMoveRequiresTarget(t *testing.T) {
	f := newPlaceFixture(place("A", 1, 1))
	if _, err := f.svc.Move(context.Background(), "A", dto.MovePlaceRequest{}); !stderrors.Is(err, pkgerrors.MoveTargetRequired) {
		t.Errorf("err = %v, want MOVE_TARGET_REQUIRED", err)
	}
}

func TestPlaceServiceTripBusy(t *testing.T) {
	places := newFakePlaceStore(place("A", 1, 1))
	svc := NewPlaceService(newFakeTripStore(phuketTrip()), places, busyLocker{}, nil, nil)

	_, err := svc.Move(context.Background(), "A", dto.MovePlaceRequest{TargetDay: intPtr(2)})
	if !stderrors.Is(err, pkgerrors.TripBusy) {
		t.Errorf("err = %v, want TRIP_BUSY", err)
	}
	if places.positionWrites != 0 {
		t.Errorf("position writes = %d, want 0", places.positionWrites)
	}
}

func TestPlaceServiceCreate(t *testing.T) {
	f := newPlaceFixture(place("A", 1, 1), place("B", 1, 2))
	ctx := context.Background()

	appended, err := f.svc.Create(ctx, dto.CreatePlaceRequest{TripID: "trip-1", Name: "C", Day: 1})
	if err != nil {
		t.Fatalf("Create append: %v", err)
	}
	if appended.Order != 3 {
		t.Errorf("appended order = %d, want 3", appended.Order)
	}
	if appended.Category != model.DefaultPlaceCategory || appended.Duration != model.DefaultPlaceDuration {
		t.Errorf("defaults = %q %q", appended.Category, appended.Duration)
	}

	inserted, err := f.svc.Create(ctx, dto.CreatePlaceRequest{TripID: "trip-1", Name: "D", Day: 1, Order: 1})
	if err != nil {
		t.Fatalf("Create insert: %v", err)
	}
	if inserted.Order != 1 {
		t.Errorf("inserted order = %d, want 1", inserted.Order)
	}
	if err := reorder.Validate(f.layout()); err != nil {
		t.Errorf("layout not dense: %v", err)
	}
	if got := f.layout()[1].ID; got != "A" {
		t.Errorf("second place = %s, want A", got)
	}

	if _, err := f.svc.Create(ctx, dto.CreatePlaceRequest{TripID: "trip-1", Name: "E", Day: 5}); !stderrors.Is(err, pkgerrors.DayOutOfRange) {
		t.Errorf("day 5 err = %v, want DAY_OUT_OF_RANGE", err)
	}
}

func TestPlaceServiceUpdateMovesDay(t *testing.T) {
	f := newPlaceFixture(place("A", 1, 1), place("B", 1, 2), place("C", 2, 1))

	updated, err := f.svc.Update(context.Background(), "A", dto.UpdatePlaceRequest{
		Name: strPtr("빠통 비치"),
		Day:  intPtr(2),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "빠통 비치" || updated.Day != 2 || updated.Order != 2 {
		t.Errorf("updated = %+v, want day 2 order 2", updated)
	}
	want := []reorder.Item{{ID: "B", Day: 1, Order: 1}, {ID: "C", Day: 2, Order: 1}, {ID: "A", Day: 2, Order: 2}}
	if got := f.layout(); !reflect.DeepEqual(got, want) {
		t.Errorf("layout = %v, want %v", got, want)
	}
}

func TestPlaceServiceDeleteClosesGap(t *testing.T) {
	f := newPlaceFixture(place("A", 1, 1), place("B", 1, 2), place("C", 1, 3))

	if err := f.svc.Delete(context.Background(), "A"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	want := []reorder.Item{{ID: "B", Day: 1, Order: 1}, {ID: "C", Day: 1, Order: 2}}
	if got := f.layout(); !reflect.DeepEqual(got, want) {
		t.Errorf("layout = %v, want %v", got, want)
	}
	if got := f.events.types(); !reflect.DeepEqual(got, []string{model.EventPlaceDeleted}) {
		t.Errorf("events = %v", got)
	}

	if err := f.svc.Delete(context.Background(), "A"); !stderrors.Is(err, pkgerrors.PlaceNotFound) {
		t.Errorf("second Delete err = %v, want PLACE_NOT_FOUND", err)
	}
}

func TestPlaceServiceBulkUpdate(t *testing.T) {
	f := newPlaceFixture(place("A", 1, 1), place("B", 1, 2), place("C", 2, 1))

	places, err := f.svc.BulkUpdate(context.Background(), []dto.PlacePosition{
		{ID: "A", Day: 2, Order: 2},
		{ID: "B", Day: 1, Order: 1},
	})
	if err != nil {
		t.Fatalf("BulkUpdate: %v", err)
	}
	if len(places) != 3 {
		t.Fatalf("places = %d, want 3", len(places))
	}
	want := []reorder.Item{{ID: "B", Day: 1, Order: 1}, {ID: "C", Day: 2, Order: 1}, {ID: "A", Day: 2, Order: 2}}
	if got := f.layout(); !reflect.DeepEqual(got, want) {
		t.Errorf("layout = %v, want %v", got, want)
	}
}

func TestPlaceServiceBulkUpdateRejects(t *testing.T) {
	other := place("Z", 1, 1)
	other.TripID = "trip-2"

	tests := []struct {
		name      string
		positions []dto.PlacePosition
		want      pkgerrors.Definition
	}{
		{"empty", nil, pkgerrors.BulkUpdateEmpty},
		{"gap", []dto.PlacePosition{{ID: "A", Day: 1, Order: 3}}, pkgerrors.OrderNotContiguous},
		{"day out of range", []dto.PlacePosition{{ID: "A", Day: 7, Order: 1}}, pkgerrors.DayOutOfRange},
		{"other trip", []dto.PlacePosition{{ID: "A", Day: 1, Order: 1}, {ID: "Z", Day: 1, Order: 2}}, pkgerrors.PlaceTripMismatch},
		{"unknown first", []dto.PlacePosition{{ID: "nope", Day: 1, Order: 1}}, pkgerrors.PlaceNotFound},
		{"duplicate", []dto.PlacePosition{{ID: "A", Day: 1, Order: 1}, {ID: "A", Day: 1, Order: 2}}, pkgerrors.InvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPlaceFixture(place("A", 1, 1), place("B", 1, 2), other)
			_, err := f.svc.BulkUpdate(context.Background(), tt.positions)
			if !stderrors.Is(err, tt.want) {
				t.Errorf("err = %v, want %s", err, tt.want.Code)
			}
			if f.places.positionWrites != 0 {
				t.Errorf("position writes = %d, want 0", f.places.positionWrites)
			}
		})
	}
}
