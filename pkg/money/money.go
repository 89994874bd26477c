package money

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// currency markers users type next to an amount
var markers = []string{"KRW", "krw", "THB", "thb", "원", "₩", "฿", "baht", "Baht"}

// Parse accepts user-formatted amounts like "1,000", "THB 100" or "₩4,300"
// as well as JSON numbers and Go numeric values.
func Parse(i interface{}) (decimal.Decimal, error) {
	switch v := i.(type) {
	case string:
		return parseString(v)
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case decimal.Decimal:
		return v, nil
	default:
		return decimal.Zero, fmt.Errorf("invalid amount type %T", i)
	}
}

func parseString(v string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(v, ",", "")
	for _, m := range markers {
		s = strings.ReplaceAll(s, m, "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("invalid amount %q", v)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", v, err)
	}
	return d, nil
}

// ParseOrZero mirrors the lenient form behaviour: anything unparsable counts as zero.
func ParseOrZero(i interface{}) decimal.Decimal {
	d, err := Parse(i)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Input is an amount in a request body. It decodes from a JSON string or number.
type Input struct {
	decimal.Decimal
	Set bool
}

func (in *Input) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	d, err := Parse(raw)
	if err != nil {
		return err
	}
	in.Decimal = d
	in.Set = true
	return nil
}

func (in Input) MarshalJSON() ([]byte, error) {
	if !in.Set {
		return []byte("null"), nil
	}
	return in.Decimal.MarshalJSON()
}

// RoundKRW rounds to whole won, the smallest unit shown to users.
func RoundKRW(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
