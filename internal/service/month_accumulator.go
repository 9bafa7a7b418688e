package service

import (
	"time"

	"github.com/dafibh/fortuna/profit-loss-function/internal/domain"
	"github.com/dafibh/fortuna/profit-loss-function/internal/util"
	"github.com/shopspring/decimal"
)

// MonthAccumulator buckets revenue and expense amounts by month for one year.
// It holds no I/O and is built fresh for every report.
type MonthAccumulator struct {
	year     int
	location *time.Location
	buckets  map[string]*domain.MonthBucket
}

// NewMonthAccumulator creates an accumulator for the given year
func NewMonthAccumulator(year int, loc *time.Location) *MonthAccumulator {
	if loc == nil {
		loc = time.UTC
	}
	return &MonthAccumulator{
		year:     year,
		location: loc,
		buckets:  make(map[string]*domain.MonthBucket),
	}
}

// AddRevenue adds an orders document to the profit side
func (a *MonthAccumulator) AddRevenue(doc domain.Document) {
	a.add(doc, domain.RevenueFields, func(b *domain.MonthBucket, amount decimal.Decimal) {
		b.Profit = b.Profit.Add(amount)
	})
}

// AddExpense adds an expenses document to the expense side
func (a *MonthAccumulator) AddExpense(doc domain.Document) {
	a.add(doc, domain.ExpenseFields, func(b *domain.MonthBucket, amount decimal.Decimal) {
		b.Expense = b.Expense.Add(amount)
	})
}

// add skips documents outside the year or with an unreadable date.
// A non-numeric amount still opens the bucket but contributes nothing.
func (a *MonthAccumulator) add(doc domain.Document, fields domain.RecordFields, apply func(*domain.MonthBucket, decimal.Decimal)) {
	date, ok := util.ParseDocumentDate(doc.Field(fields.DateField), a.location)
	if !ok || date.Year() != a.year {
		return
	}

	month := util.MonthAbbrev(date.Month())
	bucket, exists := a.buckets[month]
	if !exists {
		bucket = &domain.MonthBucket{Month: month, Profit: decimal.Zero, Expense: decimal.Zero}
		a.buckets[month] = bucket
	}

	if amount, ok := util.ParseAmount(doc.Field(fields.AmountField)); ok {
		apply(bucket, amount)
	}
}

// Summary returns calendar-ordered rows with empty months removed, plus totals
func (a *MonthAccumulator) Summary() *domain.ProfitLossSummary {
	summary := &domain.ProfitLossSummary{
		Year:          a.year,
		MonthlyData:   make([]domain.ProfitLossRow, 0, len(a.buckets)),
		TotalProfit:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, month := range util.MonthAbbreviations {
		row := domain.ProfitLossRow{Month: month, Profit: decimal.Zero, Expense: decimal.Zero}
		if bucket, ok := a.buckets[month]; ok {
			row.Profit = bucket.Profit
			row.Expense = bucket.Expense
		}
		if row.IsEmpty() {
			continue
		}
		summary.MonthlyData = append(summary.MonthlyData, row)
		summary.TotalProfit = summary.TotalProfit.Add(row.Profit)
		summary.TotalExpenses = summary.TotalExpenses.Add(row.Expense)
	}

	return summary
}
