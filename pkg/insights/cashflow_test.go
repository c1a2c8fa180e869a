package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastCashflow_StartingBalanceDefaultSelection(t *testing.T) {
	accounts := []Account{
		{ID: "checking", CurrentBalance: 2500, Type: AccountTypeDepository},
		{ID: "savings", CurrentBalance: 10000, Type: AccountTypeDepository},
		{ID: "brokerage", CurrentBalance: 50000, Type: AccountTypeInvestment, IsAsset: true},
	}

	forecast := ForecastCashflow(accounts, nil, nil, &ForecastOptions{Today: "2025-03-01"})

	// Accounts flagged isAsset are excluded from the default selection.
	assert.Equal(t, 12500.0, forecast.StartingBalance)
}

func TestForecastCashflow_AccountIDsOverrideSelection(t *testing.T) {
	accounts := []Account{
		{ID: "checking", CurrentBalance: 2500, Type: AccountTypeDepository},
		{ID: "savings", CurrentBalance: 10000, Type: AccountTypeDepository},
		{ID: "brokerage", CurrentBalance: 50000, Type: AccountTypeInvestment, IsAsset: true},
	}

	forecast := ForecastCashflow(accounts, nil, nil, &ForecastOptions{
		Today:      "2025-03-01",
		AccountIDs: []string{"checking", "brokerage"},
	})

	assert.Equal(t, 52500.0, forecast.StartingBalance)
}

func TestForecastCashflow_RecurringDailyEquivalents(t *testing.T) {
	items := []RecurringItem{
		{ID: "pay", Merchant: "Employer", Amount: 3000, Frequency: FrequencyMonthly, NextDate: "2025-03-15"},
		{ID: "rent", Merchant: "Landlord", Amount: -2100, Frequency: FrequencyMonthly, NextDate: "2025-04-01"},
		{ID: "gym", Merchant: "Gym", Amount: -14, Frequency: FrequencyWeekly, NextDate: "2025-03-03"},
	}

	forecast := ForecastCashflow(nil, nil, items, &ForecastOptions{Today: "2025-03-01"})

	assert.Equal(t, 100.0, forecast.RecurringIncome)
	assert.Equal(t, 72.0, forecast.RecurringExpenses)
}

func TestForecastCashflow_ScheduledEventsHitTheBalance(t *testing.T) {
	items := []RecurringItem{
		{ID: "pay", Merchant: "Employer", Amount: 1000, Frequency: FrequencyMonthly, NextDate: "2025-03-10"},
	}

	forecast := ForecastCashflow(nil, nil, items, &ForecastOptions{
		Today:        "2025-03-01",
		ForecastDays: 15,
	})

	require.Len(t, forecast.Days, 15)
	// No discretionary history, so the balance only moves on the pay date.
	assert.Equal(t, "2025-03-10", forecast.Days[8].Date)
	assert.Equal(t, 0.0, forecast.Days[7].Balance)
	assert.Equal(t, 1000.0, forecast.Days[8].Balance)
	assert.Equal(t, 1000.0, forecast.Days[14].Balance)
	assert.Equal(t, 1000.0, forecast.ProjectedBalance)
}

func TestForecastCashflow_PastNextDateAdvancesIntoWindow(t *testing.T) {
	items := []RecurringItem{
		{ID: "gym", Merchant: "Gym", Amount: -14, Frequency: FrequencyWeekly, NextDate: "2025-02-03"},
	}

	forecast := ForecastCashflow(nil, nil, items, &ForecastOptions{
		Today:        "2025-03-01",
		ForecastDays: 14,
	})

	// The stale weekly item lands on 03-03 and 03-10 inside the window.
	assert.Equal(t, -28.0, forecast.ProjectedBalance)
}

func TestForecastCashflow_ConfidenceIntervalWidens(t *testing.T) {
	// Varied discretionary days give a positive standard deviation.
	transactions := []Transaction{
		{ID: "1", Date: "2025-02-01", Amount: -20, Merchant: "Cafe"},
		{ID: "2", Date: "2025-02-02", Amount: -80, Merchant: "Restaurant"},
		{ID: "3", Date: "2025-02-03", Amount: -35, Merchant: "Bookstore"},
		{ID: "4", Date: "2025-02-04", Amount: -60, Merchant: "Bar"},
	}

	forecast := ForecastCashflow(nil, transactions, nil, &ForecastOptions{Today: "2025-03-01"})

	require.Len(t, forecast.Days, 30)
	prevWidth := -1.0
	for _, day := range forecast.Days {
		width := day.Upper - day.Lower
		assert.GreaterOrEqual(t, width, prevWidth)
		prevWidth = width
	}
	assert.Positive(t, prevWidth)
}

func TestForecastCashflow_RecurringMerchantsExcludedFromDiscretionary(t *testing.T) {
	items := []RecurringItem{
		{ID: "rent", Merchant: "Landlord", Amount: -2100, Frequency: FrequencyMonthly, NextDate: "2025-04-01"},
	}
	transactions := []Transaction{
		{ID: "1", Date: "2025-02-01", Amount: -2100, Merchant: "LANDLORD "},
		{ID: "2", Date: "2025-02-02", Amount: -40, Merchant: "Cafe"},
		{ID: "3", Date: "2025-02-03", Amount: -60, Merchant: "Subscribed Box"},
	}

	forecast := ForecastCashflow(nil, transactions, items, &ForecastOptions{
		Today:              "2025-03-01",
		RecurringMerchants: []string{"Subscribed Box"},
	})

	// Only the cafe day remains discretionary.
	assert.Equal(t, 40.0, forecast.DiscretionaryAverage)
}
