package service

import (
	"testing"
	"time"

	"github.com/dafibh/fortuna/profit-loss-function/internal/domain"
	"github.com/dafibh/fortuna/profit-loss-function/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYear = 2026

func rowsAsStrings(rows []domain.ProfitLossRow) [][3]string {
	out := make([][3]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, [3]string{r.Month, r.Profit.String(), r.Expense.String()})
	}
	return out
}

func TestMonthAccumulator_Empty(t *testing.T) {
	summary := NewMonthAccumulator(testYear, time.UTC).Summary()

	assert.Equal(t, testYear, summary.Year)
	assert.NotNil(t, summary.MonthlyData)
	assert.Empty(t, summary.MonthlyData)
	assert.True(t, summary.TotalProfit.IsZero())
	assert.True(t, summary.TotalExpenses.IsZero())
}

func TestMonthAccumulator_Aggregation(t *testing.T) {
	tests := []struct {
		name         string
		orders       []domain.Document
		expenses     []domain.Document
		wantRows     [][3]string
		wantProfit   string
		wantExpenses string
	}{
		{
			name:         "single month with both sides",
			orders:       []domain.Document{testutil.NewOrder("o1", "2026-03-10T12:00:00.000+00:00", 1000)},
			expenses:     []domain.Document{testutil.NewExpense("e1", "2026-03-20T12:00:00.000+00:00", 300)},
			wantRows:     [][3]string{{"Mar", "1000", "300"}},
			wantProfit:   "1000",
			wantExpenses: "300",
		},
		{
			name: "other years are excluded",
			orders: []domain.Document{
				testutil.NewOrder("o1", "2025-03-10T12:00:00Z", 500),
				testutil.NewOrder("o2", "2027-01-01T00:00:00Z", 700),
				testutil.NewOrder("o3", "2026-05-05T00:00:00Z", 40),
			},
			expenses:     []domain.Document{testutil.NewExpense("e1", "2024-05-05", 99)},
			wantRows:     [][3]string{{"May", "40", "0"}},
			wantProfit:   "40",
			wantExpenses: "0",
		},
		{
			name: "non numeric amounts contribute nothing",
			orders: []domain.Document{
				testutil.NewOrder("o1", "2026-02-01", "1000"),
				testutil.NewOrder("o2", "2026-02-02", nil),
				testutil.NewOrder("o3", "2026-02-03", 25.5),
				testutil.NewOrder("o4", "2026-04-03", true),
			},
			wantRows:     [][3]string{{"Feb", "25.5", "0"}},
			wantProfit:   "25.5",
			wantExpenses: "0",
		},
		{
			name: "bad dates are skipped",
			orders: []domain.Document{
				testutil.NewOrder("o1", "yesterday", 10),
				testutil.NewOrder("o2", nil, 10),
				testutil.NewDocument("o3", map[string]interface{}{"totalAmount": 10}),
			},
			wantRows:     [][3]string{},
			wantProfit:   "0",
			wantExpenses: "0",
		},
		{
			name: "expense only month is kept",
			expenses: []domain.Document{
				testutil.NewExpense("e1", "2026-08-15", 5),
			},
			wantRows:     [][3]string{{"Aug", "0", "5"}},
			wantProfit:   "0",
			wantExpenses: "5",
		},
		{
			name: "rows follow calendar order",
			orders: []domain.Document{
				testutil.NewOrder("o1", "2026-12-01", 12),
				testutil.NewOrder("o2", "2026-01-01", 1),
				testutil.NewOrder("o3", "2026-06-01", 6),
			},
			expenses: []domain.Document{
				testutil.NewExpense("e1", "2026-09-01", 9),
				testutil.NewExpense("e2", "2026-01-15", 0.5),
			},
			wantRows: [][3]string{
				{"Jan", "1", "0.5"},
				{"Jun", "6", "0"},
				{"Sep", "0", "9"},
				{"Dec", "12", "0"},
			},
			wantProfit:   "19",
			wantExpenses: "9.5",
		},
		{
			name: "fractional amounts sum exactly",
			orders: []domain.Document{
				testutil.NewOrder("o1", "2026-10-01", 0.1),
				testutil.NewOrder("o2", "2026-10-02", 0.2),
			},
			wantRows:     [][3]string{{"Oct", "0.3", "0"}},
			wantProfit:   "0.3",
			wantExpenses: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewMonthAccumulator(testYear, time.UTC)
			for _, d := range tt.orders {
				acc.AddRevenue(d)
			}
			for _, d := range tt.expenses {
				acc.AddExpense(d)
			}

			summary := acc.Summary()
			assert.Equal(t, tt.wantRows, rowsAsStrings(summary.MonthlyData))
			assert.Equal(t, tt.wantProfit, summary.TotalProfit.String())
			assert.Equal(t, tt.wantExpenses, summary.TotalExpenses.String())
		})
	}
}

func TestMonthAccumulator_TotalsMatchRows(t *testing.T) {
	acc := NewMonthAccumulator(testYear, time.UTC)
	for i, date := range []string{"2026-01-03", "2026-02-14", "2026-02-28", "2026-07-04", "2026-11-11"} {
		acc.AddRevenue(testutil.NewOrder("o", date, float64(i+1)*10.25))
		acc.AddExpense(testutil.NewExpense("e", date, float64(i+1)*3.5))
	}

	summary := acc.Summary()
	require.NotEmpty(t, summary.MonthlyData)

	profit, expense := decimal.Zero, decimal.Zero
	for _, row := range summary.MonthlyData {
		profit = profit.Add(row.Profit)
		expense = expense.Add(row.Expense)
		assert.False(t, row.IsEmpty())
	}
	assert.True(t, profit.Equal(summary.TotalProfit))
	assert.True(t, expense.Equal(summary.TotalExpenses))
}

func TestMonthAccumulator_UsesLocationForMonth(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	acc := NewMonthAccumulator(testYear, loc)

	// 23:00 UTC on 31 Mar is already April at UTC+2
	acc.AddRevenue(testutil.NewOrder("o1", "2026-03-31T23:00:00Z", 10))

	assert.Equal(t, [][3]string{{"Apr", "10", "0"}}, rowsAsStrings(acc.Summary().MonthlyData))
}
