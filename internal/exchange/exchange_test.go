package exchange

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "TripPlanner/pkg/errors"
)

func TestToKRW(t *testing.T) {
	c := NewConverterFromFloat(43)

	tests := []struct {
		amount   string
		currency string
		want     string
		wantErr  error
	}{
		{amount: "100", currency: "THB", want: "4300"},
		{amount: "100", currency: "thb", want: "4300"},
		{amount: "12.5", currency: "THB", want: "537.5"},
		{amount: "4300", currency: "KRW", want: "4300"},
		{amount: "4300", currency: "", want: "4300"},
		{amount: "1", currency: "USD", wantErr: pkgerrors.UnsupportedCurrency},
	}

	for _, tt := range tests {
		got, err := c.ToKRW(decimal.RequireFromString(tt.amount), tt.currency)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ToKRW(%s %s) error = %v, want %v", tt.amount, tt.currency, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ToKRW(%s %s): %v", tt.amount, tt.currency, err)
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ToKRW(%s %s) = %s, want %s", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestConvertCalculator(t *testing.T) {
	c := NewConverterFromFloat(38.5)

	got, to, err := c.Convert(decimal.NewFromInt(100), "THB")
	if err != nil {
		t.Fatalf("Convert THB: %v", err)
	}
	if to != "KRW" || !got.Equal(decimal.NewFromInt(3850)) {
		t.Errorf("Convert(100 THB) = %s %s, want 3850 KRW", got, to)
	}

	got, to, err = c.Convert(decimal.NewFromInt(10000), "KRW")
	if err != nil {
		t.Fatalf("Convert KRW: %v", err)
	}
	if to != "THB" || !got.Equal(decimal.RequireFromString("259.74")) {
		t.Errorf("Convert(10000 KRW) = %s %s, want 259.74 THB", got, to)
	}

	if _, _, err := c.Convert(decimal.NewFromInt(1), "JPY"); !errors.Is(err, pkgerrors.UnsupportedCurrency) {
		t.Errorf("Convert JPY error = %v, want UnsupportedCurrency", err)
	}
}

func TestRatesStayIndependent(t *testing.T) {
	expense := NewConverterFromFloat(43)
	calc := NewConverterFromFloat(38.5)

	a, _ := expense.ToKRW(decimal.NewFromInt(100), "THB")
	b, _, _ := calc.Convert(decimal.NewFromInt(100), "THB")
	if a.Equal(b) {
		t.Errorf("expense and calculator conversions should differ, both %s", a)
	}
}
