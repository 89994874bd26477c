package service

import (
	"sync"

	"TripPlanner/internal/exchange"
	"TripPlanner/internal/model/dto"
	pkgerrors "TripPlanner/pkg/errors"
	"TripPlanner/pkg/money"
)

// ExchangeService backs the standalone THB/KRW calculator.
type ExchangeService struct {
	expense    exchange.Converter
	calculator exchange.Converter
}

var (
	exchangeService *ExchangeService
	exchangeOnce    sync.Once
)

func Exchange() *ExchangeService {
	exchangeOnce.Do(func() {
		exchangeService = NewExchangeService(expenseConverter(), calculatorConverter())
	})
	return exchangeService
}

func NewExchangeService(expense, calculator exchange.Converter) *ExchangeService {
	return &ExchangeService{expense: expense, calculator: calculator}
}

func (s *ExchangeService) Rates() dto.Rates {
	return dto.Rates{
		Expense:    s.expense.Rate(),
		Calculator: s.calculator.Rate(),
	}
}

// Convert parses a user-typed amount and converts it at the calculator rate.
func (s *ExchangeService) Convert(amount, from string) (*dto.ConversionResult, error) {
	value, err := money.Parse(amount)
	if err != nil || value.IsNegative() {
		return nil, pkgerrors.AmountInvalid
	}
	result, to, err := s.calculator.Convert(value, from)
	if err != nil {
		return nil, err
	}
	return &dto.ConversionResult{
		Amount: value,
		From:   exchange.NormalizeCurrency(from),
		To:     to,
		Result: result,
		Rate:   s.calculator.Rate(),
	}, nil
}
