package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSubscriptions_EmptyInput(t *testing.T) {
	summary := AnalyzeSubscriptions(nil, nil)

	assert.NotNil(t, summary)
	assert.Empty(t, summary.Subscriptions)
	assert.Empty(t, summary.RecentChanges)
	assert.Zero(t, summary.TotalAnnualCost)
	assert.Zero(t, summary.TotalMonthlyCost)
}

func TestAnalyzeSubscriptions_MonthlyDetection(t *testing.T) {
	charges := []RecurringCharge{
		{ID: "1", Date: "2025-01-15", Amount: -15.99, Merchant: "Netflix"},
		{ID: "2", Date: "2025-02-14", Amount: -15.99, Merchant: "NETFLIX"},
	}

	summary := AnalyzeSubscriptions(charges, nil)

	require.Len(t, summary.Subscriptions, 1)
	sub := summary.Subscriptions[0]
	// Display name comes from the most recent occurrence.
	assert.Equal(t, "NETFLIX", sub.Merchant)
	assert.Equal(t, FrequencyMonthly, sub.Frequency)
	assert.Equal(t, 15.99, sub.Amount)
	assert.False(t, sub.PriceChanged)
	assert.Equal(t, []float64{15.99, 15.99}, sub.PriceHistory)
	assert.Equal(t, round2(15.99*12), sub.AnnualCost)
	assert.Equal(t, "2025-03-14", sub.NextExpected)
	assert.Empty(t, summary.RecentChanges)
}

func TestAnalyzeSubscriptions_PriceChange(t *testing.T) {
	charges := []RecurringCharge{
		{ID: "1", Date: "2025-01-15", Amount: -15.99, Merchant: "Netflix"},
		{ID: "2", Date: "2025-02-14", Amount: -15.99, Merchant: "Netflix"},
		{ID: "3", Date: "2025-03-16", Amount: -17.99, Merchant: "Netflix"},
	}

	summary := AnalyzeSubscriptions(charges, nil)

	require.Len(t, summary.Subscriptions, 1)
	sub := summary.Subscriptions[0]
	assert.True(t, sub.PriceChanged)
	assert.Equal(t, []float64{15.99, 15.99, 17.99}, sub.PriceHistory)
	assert.Equal(t, 17.99, sub.Amount)
	require.Len(t, summary.RecentChanges, 1)
	assert.Equal(t, sub, summary.RecentChanges[0])
}

func TestAnalyzeSubscriptions_WeeklyDetection(t *testing.T) {
	charges := []RecurringCharge{
		{ID: "1", Date: "2025-03-01", Amount: -12.50, Merchant: "Meal Kit"},
		{ID: "2", Date: "2025-03-08", Amount: -12.50, Merchant: "Meal Kit"},
		{ID: "3", Date: "2025-03-15", Amount: -12.50, Merchant: "Meal Kit"},
	}

	summary := AnalyzeSubscriptions(charges, nil)

	require.Len(t, summary.Subscriptions, 1)
	sub := summary.Subscriptions[0]
	assert.Equal(t, FrequencyWeekly, sub.Frequency)
	assert.Equal(t, round2(12.50*52), sub.AnnualCost)
	assert.Equal(t, "2025-03-22", sub.NextExpected)
}

func TestAnalyzeSubscriptions_QuarterlyAndAnnual(t *testing.T) {
	charges := []RecurringCharge{
		{ID: "q1", Date: "2025-01-01", Amount: -30, Merchant: "Water Utility"},
		{ID: "q2", Date: "2025-04-02", Amount: -30, Merchant: "Water Utility"},
		{ID: "a1", Date: "2024-06-01", Amount: -120, Merchant: "Domain Registrar"},
		{ID: "a2", Date: "2025-06-01", Amount: -120, Merchant: "Domain Registrar"},
	}

	summary := AnalyzeSubscriptions(charges, nil)

	require.Len(t, summary.Subscriptions, 2)
	byMerchant := map[string]*Subscription{}
	for _, s := range summary.Subscriptions {
		byMerchant[s.Merchant] = s
	}
	assert.Equal(t, FrequencyQuarterly, byMerchant["Water Utility"].Frequency)
	assert.Equal(t, FrequencyAnnual, byMerchant["Domain Registrar"].Frequency)
}

func TestAnalyzeSubscriptions_SingleOccurrenceDefaultsToMonthly(t *testing.T) {
	charges := []RecurringCharge{
		{ID: "1", Date: "2025-03-01", Amount: -9.99, Merchant: "New Service"},
	}

	summary := AnalyzeSubscriptions(charges, nil)

	require.Len(t, summary.Subscriptions, 1)
	assert.Equal(t, FrequencyMonthly, summary.Subscriptions[0].Frequency)
}

func TestAnalyzeSubscriptions_NearestFallback(t *testing.T) {
	// A ~60 day gap matches no tolerance band; quarterly (91) is closer
	// than monthly (30) at 62 days.
	charges := []RecurringCharge{
		{ID: "1", Date: "2025-01-01", Amount: -20, Merchant: "Odd Cadence"},
		{ID: "2", Date: "2025-03-04", Amount: -20, Merchant: "Odd Cadence"},
	}

	summary := AnalyzeSubscriptions(charges, nil)

	require.Len(t, summary.Subscriptions, 1)
	assert.Equal(t, FrequencyQuarterly, summary.Subscriptions[0].Frequency)
}

func TestAnalyzeSubscriptions_Totals(t *testing.T) {
	charges := []RecurringCharge{
		{ID: "1", Date: "2025-01-15", Amount: -10, Merchant: "A"},
		{ID: "2", Date: "2025-02-14", Amount: -10, Merchant: "A"},
		{ID: "3", Date: "2025-01-20", Amount: -50, Merchant: "B"},
		{ID: "4", Date: "2025-02-19", Amount: -50, Merchant: "B"},
	}

	summary := AnalyzeSubscriptions(charges, nil)

	require.Len(t, summary.Subscriptions, 2)
	// Sorted by annual cost descending.
	assert.Equal(t, "B", summary.Subscriptions[0].Merchant)
	assert.Equal(t, 720.0, summary.TotalAnnualCost)
	assert.Equal(t, 60.0, summary.TotalMonthlyCost)
}
