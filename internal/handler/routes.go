package handler

import (
	"github.com/dafibh/fortuna/profit-loss-function/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the function routes
func RegisterRoutes(e *echo.Echo, rateLimiter *middleware.RateLimiter, profitLossHandler *ProfitLossHandler) {
	limited := middleware.RateLimitMiddleware(rateLimiter)

	// Function execution path
	e.GET("/", profitLossHandler.GetProfitLoss, limited)
	e.POST("/", profitLossHandler.GetProfitLoss, limited)

	// API version 1
	api := e.Group("/api/v1")
	api.Use(limited)
	api.GET("/profit-loss", profitLossHandler.GetProfitLoss)
}
