package service

import (
	"github.com/shopspring/decimal"

	"TripPlanner/config"
	"TripPlanner/internal/cache"
	"TripPlanner/internal/exchange"
	"TripPlanner/internal/queue"
	"TripPlanner/internal/repository"
	"TripPlanner/storage/database"
)

func publisher() EventPublisher {
	if config.Cfg.EventsEnabled {
		return queue.NewPublisher()
	}
	return noopPublisher{}
}

func summaryStore() SummaryStore {
	if config.Cfg.CacheEnabled {
		return cache.NewSummaryCache(config.Cfg.SummaryCacheTTL)
	}
	return noopSummaryStore{}
}

func tripLocker() TripLocker {
	if config.Cfg.CacheEnabled {
		return cache.NewTripLocker(config.Cfg.ReorderLockTTL)
	}
	return newLocalLocker()
}

func expenseConverter() exchange.Converter {
	return exchange.NewConverterFromFloat(config.Cfg.ExpenseTHBKRWRate)
}

func calculatorConverter() exchange.Converter {
	return exchange.NewConverterFromFloat(config.Cfg.CalculatorTHBKRWRate)
}

func defaultBudget() decimal.Decimal {
	return decimal.NewFromInt(config.Cfg.DefaultTripBudgetKRW)
}

func tripRepo() TripStore {
	return repository.NewTripRepository(database.DB())
}

func placeRepo() PlaceStore {
	return repository.NewPlaceRepository(database.DB())
}

func expenseRepo() ExpenseStore {
	return repository.NewExpenseRepository(database.DB())
}
