package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"TripPlanner/config"
	"TripPlanner/internal/handler"
	"TripPlanner/internal/middleware"
)

func Register(h *server.Hertz) {
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())
	if config.Cfg.RateLimitEnabled {
		h.Use(middleware.WriteRateLimitMiddleware())
	}

	h.GET("/healthz", handler.Healthz)

	trips := h.Group("/trips")
	{
		trips.GET("", handler.ListTrips)
		trips.POST("", handler.CreateTrip)
		trips.POST("/ensure", handler.EnsureTrip)
		trips.GET("/:id", handler.GetTrip)
	}

	places := h.Group("/places")
	{
		places.GET("", handler.ListPlaces)
		places.POST("", handler.CreatePlace)
		// static segment before /:id
		places.POST("/bulk-update", handler.BulkUpdatePlaces)
		places.PUT("/:id", handler.UpdatePlace)
		places.DELETE("/:id", handler.DeletePlace)
		places.POST("/:id/move", handler.MovePlace)
		places.GET("/:id/expenses", handler.ListPlaceExpenses)
		places.PUT("/:id/cost", handler.SetPlaceCost)
	}

	expenses := h.Group("/expenses")
	{
		expenses.GET("", handler.ListExpenses)
		expenses.POST("", handler.CreateExpense)
		expenses.GET("/stats", handler.GetExpenseStats)
		expenses.GET("/summary", handler.GetExpenseSummary)
		expenses.PUT("/:id", handler.UpdateExpense)
		expenses.DELETE("/:id", handler.DeleteExpense)
	}

	exchange := h.Group("/exchange")
	{
		exchange.GET("/rates", handler.GetExchangeRates)
		exchange.GET("/convert", handler.ConvertCurrency)
	}
}
