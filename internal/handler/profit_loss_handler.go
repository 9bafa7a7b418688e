package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dafibh/fortuna/profit-loss-function/internal/domain"
	"github.com/dafibh/fortuna/profit-loss-function/internal/service"
	"github.com/dafibh/fortuna/profit-loss-function/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProfitLossHandler handles profit/loss report requests
type ProfitLossHandler struct {
	profitLossService *service.ProfitLossService
}

// NewProfitLossHandler creates a new ProfitLossHandler
func NewProfitLossHandler(profitLossService *service.ProfitLossService) *ProfitLossHandler {
	return &ProfitLossHandler{
		profitLossService: profitLossService,
	}
}

// ProfitLossRowResponse represents one month in the API response
type ProfitLossRowResponse struct {
	Month   string      `json:"month"`
	Profit  json.Number `json:"profit"`
	Expense json.Number `json:"expense"`
}

// ProfitLossResponse represents the profit/loss API response
type ProfitLossResponse struct {
	OK            bool                    `json:"ok"`
	MonthlyData   []ProfitLossRowResponse `json:"monthlyData"`
	TotalProfit   json.Number             `json:"totalProfit"`
	TotalExpenses json.Number             `json:"totalExpenses"`
}

// GetProfitLoss handles GET /api/v1/profit-loss and the function root path.
// Accepts an optional year query param; defaults to the current year.
func (h *ProfitLossHandler) GetProfitLoss(c echo.Context) error {
	year := util.CurrentYear(h.profitLossService.Location())

	if yearStr := c.QueryParam("year"); yearStr != "" {
		parsedYear, err := strconv.Atoi(yearStr)
		if err != nil {
			return NewValidationError(c, "Invalid year format")
		}
		if parsedYear < 2000 || parsedYear > 2100 {
			return NewValidationError(c, "Year must be between 2000 and 2100")
		}
		year = parsedYear
	}

	summary, err := h.profitLossService.GetProfitLoss(c.Request().Context(), year)
	if err != nil {
		if errors.Is(err, domain.ErrMissingConfiguration) {
			return NewInternalError(c, domain.ConfigurationErrorMessage)
		}
		log.Error().Err(err).Int("year", year).Msg("Failed to calculate profit/loss")
		return NewInternalError(c, domain.ProcessingErrorPrefix+err.Error())
	}

	return c.JSON(http.StatusOK, toProfitLossResponse(summary))
}

func toProfitLossResponse(summary *domain.ProfitLossSummary) ProfitLossResponse {
	rows := make([]ProfitLossRowResponse, 0, len(summary.MonthlyData))
	for _, row := range summary.MonthlyData {
		rows = append(rows, ProfitLossRowResponse{
			Month:   row.Month,
			Profit:  toNumber(row.Profit),
			Expense: toNumber(row.Expense),
		})
	}

	return ProfitLossResponse{
		OK:            true,
		MonthlyData:   rows,
		TotalProfit:   toNumber(summary.TotalProfit),
		TotalExpenses: toNumber(summary.TotalExpenses),
	}
}

func toNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
