// Package exchange converts between Thai Baht and Korean Won at a fixed rate.
package exchange

import (
	"strings"

	"github.com/shopspring/decimal"

	"TripPlanner/internal/model"
	pkgerrors "TripPlanner/pkg/errors"
)

// Converter holds the KRW per THB rate of one feature area.
type Converter struct {
	rate decimal.Decimal
}

func NewConverter(rate decimal.Decimal) Converter {
	return Converter{rate: rate}
}

func NewConverterFromFloat(rate float64) Converter {
	return Converter{rate: decimal.NewFromFloat(rate)}
}

func (c Converter) Rate() decimal.Decimal {
	return c.rate
}

// NormalizeCurrency upper-cases code and defaults an empty code to KRW.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return model.CurrencyKRW
	}
	return code
}

// ToKRW converts amount to won. Only KRW and THB are accepted.
func (c Converter) ToKRW(amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	switch NormalizeCurrency(currency) {
	case model.CurrencyKRW:
		return amount, nil
	case model.CurrencyTHB:
		return amount.Mul(c.rate), nil
	default:
		return decimal.Zero, pkgerrors.UnsupportedCurrency
	}
}

// FromKRW converts won to baht rounded to two decimals.
func (c Converter) FromKRW(amount decimal.Decimal) decimal.Decimal {
	if c.rate.IsZero() {
		return decimal.Zero
	}
	return amount.Div(c.rate).Round(2)
}

// Convert runs the calculator in either direction and returns the result with
// the currency it is expressed in.
func (c Converter) Convert(amount decimal.Decimal, from string) (decimal.Decimal, string, error) {
	switch NormalizeCurrency(from) {
	case model.CurrencyTHB:
		return amount.Mul(c.rate).Round(0), model.CurrencyKRW, nil
	case model.CurrencyKRW:
		return c.FromKRW(amount), model.CurrencyTHB, nil
	default:
		return decimal.Zero, "", pkgerrors.UnsupportedCurrency
	}
}
