package domain

import "github.com/shopspring/decimal"

// MonthBucket holds running totals for a single calendar month
type MonthBucket struct {
	Month   string
	Profit  decimal.Decimal
	Expense decimal.Decimal
}

// ProfitLossRow is one charted month
type ProfitLossRow struct {
	Month   string          `json:"month"`
	Profit  decimal.Decimal `json:"profit"`
	Expense decimal.Decimal `json:"expense"`
}

// IsEmpty reports whether neither side contributed to the month
func (r ProfitLossRow) IsEmpty() bool {
	return r.Profit.IsZero() && r.Expense.IsZero()
}

// ProfitLossSummary contains the monthly rows and grand totals for a year
type ProfitLossSummary struct {
	Year          int             `json:"year"`
	MonthlyData   []ProfitLossRow `json:"monthlyData"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
}
