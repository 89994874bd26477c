package model

import (
	"reflect"
	"testing"
)

func TestOperatingHoursRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   OperatingHours
	}{
		{name: "weekdays", in: OperatingHours{"월": "09:00-18:00", "토": "10:00-22:00", "일": "휴무"}},
		{name: "empty", in: OperatingHours{}},
		{name: "nil", in: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.in.Value()
			if err != nil {
				t.Fatalf("Value: %v", err)
			}

			var got OperatingHours
			if err := got.Scan(v); err != nil {
				t.Fatalf("Scan(%v): %v", v, err)
			}
			if !reflect.DeepEqual(got, tt.in) {
				t.Errorf("round trip = %#v, want %#v", got, tt.in)
			}
		})
	}
}

func TestOperatingHoursValueNil(t *testing.T) {
	var h OperatingHours
	v, err := h.Value()
	if err != nil || v != nil {
		t.Errorf("Value() = %v, %v, want nil, nil", v, err)
	}
}

func TestOperatingHoursScan(t *testing.T) {
	tests := []struct {
		name    string
		src     interface{}
		want    OperatingHours
		wantErr bool
	}{
		{name: "nil", src: nil, want: nil},
		{name: "empty text", src: "", want: nil},
		{name: "empty bytes", src: []byte{}, want: nil},
		{name: "bytes", src: []byte(`{"월":"09:00-18:00"}`), want: OperatingHours{"월": "09:00-18:00"}},
		{name: "bad json", src: "{", wantErr: true},
		{name: "wrong type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := OperatingHours{"stale": "x"}
			err := h.Scan(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Scan(%v) expected error", tt.src)
				}
				return
			}
			if err != nil {
				t.Fatalf("Scan(%v): %v", tt.src, err)
			}
			if !reflect.DeepEqual(h, tt.want) {
				t.Errorf("Scan(%v) = %#v, want %#v", tt.src, h, tt.want)
			}
		})
	}
}
