package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/fortuna/profit-loss-function/internal/config"
	"github.com/dafibh/fortuna/profit-loss-function/internal/domain"
	"github.com/rs/zerolog"
)

// ProfitLossService builds the yearly profit/loss report from the orders and expenses collections
type ProfitLossService struct {
	source   domain.DocumentSource
	appwrite config.AppwriteConfig
	pageSize int
	location *time.Location
	logger   zerolog.Logger
}

// ProfitLossServiceConfig holds configuration for the profit/loss service
type ProfitLossServiceConfig struct {
	Appwrite config.AppwriteConfig
	PageSize int            // Documents requested per page
	Location *time.Location // Zone used to read document dates
}

// NewProfitLossService creates a new ProfitLossService
func NewProfitLossService(source domain.DocumentSource, cfg ProfitLossServiceConfig, logger zerolog.Logger) *ProfitLossService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = domain.DefaultPageSize
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &ProfitLossService{
		source:   source,
		appwrite: cfg.Appwrite,
		pageSize: cfg.PageSize,
		location: cfg.Location,
		logger:   logger.With().Str("component", "profit_loss_service").Logger(),
	}
}

// Location returns the zone the report is computed in
func (s *ProfitLossService) Location() *time.Location {
	return s.location
}

// GetProfitLoss returns monthly profit and expense totals for the given year.
// A configuration problem is reported before any document is fetched.
func (s *ProfitLossService) GetProfitLoss(ctx context.Context, year int) (*domain.ProfitLossSummary, error) {
	s.logger.Info().Int("year", year).Msg("Starting profit/loss aggregation")

	if err := s.appwrite.Validate(); err != nil {
		s.logger.Error().Err(err).Msg("Missing environment variables")
		return nil, err
	}

	acc := NewMonthAccumulator(year, s.location)

	if err := s.drain(ctx, s.appwrite.OrdersCollectionID, acc.AddRevenue); err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	if err := s.drain(ctx, s.appwrite.ExpensesCollectionID, acc.AddExpense); err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	summary := acc.Summary()

	s.logger.Info().
		Int("year", year).
		Int("months", len(summary.MonthlyData)).
		Str("total_profit", summary.TotalProfit.String()).
		Str("total_expenses", summary.TotalExpenses.String()).
		Msg("Profit/loss data generated")

	return summary, nil
}

// drain reads a collection page by page until a short page is returned
func (s *ProfitLossService) drain(ctx context.Context, collectionID string, add func(domain.Document)) error {
	offset := 0
	for {
		page, err := s.source.FetchPage(ctx, collectionID, s.pageSize, offset)
		if err != nil {
			return err
		}

		for _, doc := range page.Documents {
			add(doc)
		}

		if page.IsLastPage(s.pageSize) {
			return nil
		}
		offset += s.pageSize
	}
}
