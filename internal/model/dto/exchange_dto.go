package dto

import "github.com/shopspring/decimal"

// ConversionResult is the calculator output.
type ConversionResult struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Result decimal.Decimal `json:"result"`
	Rate   decimal.Decimal `json:"rate"`
}

// Rates lists the configured THB→KRW rates per feature.
type Rates struct {
	Expense    decimal.Decimal `json:"expense"`
	Calculator decimal.Decimal `json:"calculator"`
}
