package insights

import (
	"math"
	"sort"
)

// defaultForecastDays is the forecast horizon when none is requested.
const defaultForecastDays = 30

// ForecastOptions configures ForecastCashflow.
type ForecastOptions struct {
	// ForecastDays is the projection horizon in days (default 30).
	ForecastDays int `json:"forecastDays,omitempty"`

	// AccountIDs selects the accounts contributing to the starting balance.
	// When set it overrides the default isAsset-based selection.
	AccountIDs []string `json:"accountIds,omitempty"`

	// RecurringMerchants names additional merchants treated as known
	// recurring when isolating discretionary spending.
	RecurringMerchants []string `json:"recurringMerchants,omitempty"`

	// Today overrides the start of the forecast window.
	Today string `json:"-"`
}

// ForecastDay is one simulated day of the projection.
type ForecastDay struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
	Lower   float64 `json:"lower"`
	Upper   float64 `json:"upper"`
}

// CashflowForecast is the result of ForecastCashflow.
type CashflowForecast struct {
	StartingBalance      float64        `json:"startingBalance"`
	ProjectedBalance     float64        `json:"projectedBalance"`
	RecurringIncome      float64        `json:"recurringIncome"`
	RecurringExpenses    float64        `json:"recurringExpenses"`
	DiscretionaryAverage float64        `json:"discretionaryAverage"`
	Days                 []*ForecastDay `json:"days"`
}

// ForecastCashflow projects a running balance over the forecast horizon by
// combining scheduled recurring cash flows with the observed day-to-day
// discretionary spending baseline. Confidence bounds widen with the square
// root of elapsed days, reflecting accumulated volatility under an
// independence assumption.
func ForecastCashflow(accounts []Account, transactions []Transaction, items []RecurringItem, opts *ForecastOptions) *CashflowForecast {
	if opts == nil {
		opts = &ForecastOptions{}
	}
	horizon := opts.ForecastDays
	if horizon <= 0 {
		horizon = defaultForecastDays
	}

	// Starting balance over the selected accounts.
	var startingBalance float64
	if len(opts.AccountIDs) > 0 {
		selected := make(map[string]bool, len(opts.AccountIDs))
		for _, id := range opts.AccountIDs {
			selected[id] = true
		}
		for _, a := range accounts {
			if selected[a.ID] {
				startingBalance += a.CurrentBalance
			}
		}
	} else {
		for _, a := range accounts {
			if !a.IsAsset {
				startingBalance += a.CurrentBalance
			}
		}
	}

	// Daily-equivalent recurring flows, split by sign.
	var dailyIncome, dailyExpenses float64
	for _, item := range items {
		daily := item.Amount / periodDays(item.Frequency)
		if daily > 0 {
			dailyIncome += daily
		} else {
			dailyExpenses += -daily
		}
	}

	// Discretionary baseline: per-day totals of expense spend not
	// attributable to a known recurring merchant.
	recurringMerchants := make(map[string]bool, len(items)+len(opts.RecurringMerchants))
	for _, item := range items {
		recurringMerchants[normalizeMerchant(item.Merchant)] = true
	}
	for _, m := range opts.RecurringMerchants {
		recurringMerchants[normalizeMerchant(m)] = true
	}

	dailySpend := make(map[string]float64)
	for _, t := range transactions {
		if t.Amount >= 0 {
			continue
		}
		if recurringMerchants[normalizeMerchant(t.Merchant)] {
			continue
		}
		dailySpend[t.Date] += -t.Amount
	}
	perDayTotals := make([]float64, 0, len(dailySpend))
	for _, v := range dailySpend {
		perDayTotals = append(perDayTotals, v)
	}
	sort.Float64s(perDayTotals)
	discretionaryMean := mean(perDayTotals)
	discretionaryStdDev := sampleStdDev(perDayTotals)

	// Scheduled recurring events inside (today, today+horizon]. Items whose
	// next date already passed are advanced until they reach the window.
	today := parseDate(todayOrDefault(opts.Today))
	windowStart := today.AddDate(0, 0, 1)
	windowEnd := today.AddDate(0, 0, horizon)
	scheduled := make(map[string]float64)
	for _, item := range items {
		occurrence := parseDate(item.NextDate)
		if occurrence.IsZero() {
			continue
		}
		for occurrence.Before(windowStart) {
			occurrence = advance(occurrence, item.Frequency)
		}
		for !occurrence.After(windowEnd) {
			scheduled[occurrence.Format(dateLayout)] += item.Amount
			occurrence = advance(occurrence, item.Frequency)
		}
	}

	// Day-by-day simulation.
	balance := startingBalance
	days := make([]*ForecastDay, 0, horizon)
	for d := 1; d <= horizon; d++ {
		date := today.AddDate(0, 0, d).Format(dateLayout)
		balance += scheduled[date] - discretionaryMean
		halfWidth := discretionaryStdDev * math.Sqrt(float64(d))
		days = append(days, &ForecastDay{
			Date:    date,
			Balance: round2(balance),
			Lower:   round2(balance - halfWidth),
			Upper:   round2(balance + halfWidth),
		})
	}

	return &CashflowForecast{
		StartingBalance:      round2(startingBalance),
		ProjectedBalance:     days[len(days)-1].Balance,
		RecurringIncome:      round2(dailyIncome),
		RecurringExpenses:    round2(dailyExpenses),
		DiscretionaryAverage: round2(discretionaryMean),
		Days:                 days,
	}
}
