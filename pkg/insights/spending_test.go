package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSpending_CategoryBreakdown(t *testing.T) {
	transactions := []Transaction{
		{ID: "1", Date: "2025-03-01", Amount: -120.50, Merchant: "Whole Foods", Category: "Groceries"},
		{ID: "2", Date: "2025-03-05", Amount: -80.25, Merchant: "Safeway", Category: "Groceries"},
		{ID: "3", Date: "2025-03-10", Amount: -45.00, Merchant: "Shell", Category: "Gas"},
		{ID: "4", Date: "2025-03-12", Amount: -15.99, Merchant: "Netflix"},
		{ID: "5", Date: "2025-03-15", Amount: 3000.00, Merchant: "Employer"},
	}

	analysis := AnalyzeSpending(transactions, nil)

	assert.Equal(t, 261.74, analysis.TotalSpending)
	assert.Equal(t, 3000.00, analysis.TotalIncome)
	assert.Equal(t, 5, analysis.TransactionCount)
	assert.Equal(t, "2025-03-01", analysis.StartDate)
	assert.Equal(t, "2025-03-15", analysis.EndDate)

	require.Len(t, analysis.Categories, 3)
	assert.Equal(t, "Groceries", analysis.Categories[0].Category)
	assert.Equal(t, 200.75, analysis.Categories[0].Amount)
	assert.Equal(t, 2, analysis.Categories[0].Count)
	assert.Equal(t, "Gas", analysis.Categories[1].Category)
	assert.Equal(t, "Uncategorized", analysis.Categories[2].Category)

	// Percentages sum to ~100 when total spending > 0.
	var pctSum float64
	for _, c := range analysis.Categories {
		pctSum += c.Percentage
	}
	assert.InDelta(t, 100, pctSum, 0.05)

	// 15 inclusive days in the period.
	assert.Equal(t, round2(261.74/15), analysis.DailyAverage)
}

func TestAnalyzeSpending_EmptyInput(t *testing.T) {
	analysis := AnalyzeSpending(nil, &SpendingOptions{Today: "2025-03-20"})

	assert.Zero(t, analysis.TotalSpending)
	assert.Zero(t, analysis.TotalIncome)
	assert.Zero(t, analysis.TransactionCount)
	assert.Zero(t, analysis.DailyAverage)
	assert.Empty(t, analysis.Categories)
	assert.Equal(t, "2025-03-20", analysis.StartDate)
	assert.Equal(t, "2025-03-20", analysis.EndDate)
}

func TestAnalyzeSpending_DateFilter(t *testing.T) {
	transactions := []Transaction{
		{ID: "1", Date: "2025-02-15", Amount: -100, Merchant: "A", Category: "Food"},
		{ID: "2", Date: "2025-03-05", Amount: -50, Merchant: "B", Category: "Food"},
		{ID: "3", Date: "2025-04-01", Amount: -25, Merchant: "C", Category: "Food"},
	}

	analysis := AnalyzeSpending(transactions, &SpendingOptions{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
	})

	assert.Equal(t, 50.0, analysis.TotalSpending)
	assert.Equal(t, 1, analysis.TransactionCount)
	assert.Equal(t, "2025-03-01", analysis.StartDate)
	assert.Equal(t, "2025-03-31", analysis.EndDate)
	// 31 inclusive days from the explicit bounds, not the data span.
	assert.Equal(t, round2(50.0/31), analysis.DailyAverage)
}

func TestAnalyzeSpending_TopN(t *testing.T) {
	transactions := []Transaction{
		{ID: "1", Date: "2025-03-01", Amount: -300, Category: "Rent"},
		{ID: "2", Date: "2025-03-02", Amount: -200, Category: "Groceries"},
		{ID: "3", Date: "2025-03-03", Amount: -100, Category: "Gas"},
	}

	analysis := AnalyzeSpending(transactions, &SpendingOptions{TopN: 2})

	require.Len(t, analysis.Categories, 2)
	assert.Equal(t, "Rent", analysis.Categories[0].Category)
	assert.Equal(t, "Groceries", analysis.Categories[1].Category)
	// Truncation does not change the total.
	assert.Equal(t, 600.0, analysis.TotalSpending)
}

func TestAnalyzeSpending_PriorPeriodComparison(t *testing.T) {
	current := []Transaction{
		{ID: "1", Date: "2025-03-01", Amount: -150, Category: "Food"},
	}
	prior := []Transaction{
		{ID: "p1", Date: "2025-02-01", Amount: -100, Category: "Food"},
		{ID: "p2", Date: "2025-02-10", Amount: 500},
	}

	analysis := AnalyzeSpending(current, &SpendingOptions{PriorPeriod: prior})

	require.NotNil(t, analysis.Comparison)
	assert.Equal(t, 100.0, analysis.Comparison.PriorSpending)
	assert.Equal(t, 50.0, analysis.Comparison.Change)
	assert.Equal(t, 50.0, analysis.Comparison.ChangePercent)
}

func TestAnalyzeSpending_PriorPeriodZeroSpend(t *testing.T) {
	current := []Transaction{
		{ID: "1", Date: "2025-03-01", Amount: -150, Category: "Food"},
	}

	analysis := AnalyzeSpending(current, &SpendingOptions{PriorPeriod: []Transaction{}})

	require.NotNil(t, analysis.Comparison)
	assert.Zero(t, analysis.Comparison.PriorSpending)
	assert.Equal(t, 150.0, analysis.Comparison.Change)
	assert.Zero(t, analysis.Comparison.ChangePercent)
}
