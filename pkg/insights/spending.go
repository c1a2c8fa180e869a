package insights

import "sort"

// defaultTopCategories caps how many category buckets a spending analysis
// returns when the caller does not ask for a specific count.
const defaultTopCategories = 10

// SpendingOptions configures AnalyzeSpending. The zero value (or nil) means
// no date filter, the default category cap, and no period comparison.
type SpendingOptions struct {
	// StartDate and EndDate bound the analysis period (inclusive, ISO dates).
	// Transactions outside the bounds are dropped before aggregation.
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`

	// TopN limits how many categories are returned (default 10).
	TopN int `json:"topN,omitempty"`

	// PriorPeriod is a separate transaction set to compare total spend
	// against.
	PriorPeriod []Transaction `json:"-"`

	// Today overrides the current date for empty-input period defaults.
	Today string `json:"-"`
}

// CategorySpend is one category bucket of a spending analysis.
type CategorySpend struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PeriodComparison reports how total spend moved against a prior period.
type PeriodComparison struct {
	PriorSpending float64 `json:"priorSpending"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// SpendingAnalysis is the result of AnalyzeSpending.
type SpendingAnalysis struct {
	StartDate        string            `json:"startDate"`
	EndDate          string            `json:"endDate"`
	TotalSpending    float64           `json:"totalSpending"`
	TotalIncome      float64           `json:"totalIncome"`
	TransactionCount int               `json:"transactionCount"`
	DailyAverage     float64           `json:"dailyAverage"`
	Categories       []*CategorySpend  `json:"categories"`
	Comparison       *PeriodComparison `json:"comparison,omitempty"`
}

// AnalyzeSpending aggregates expense transactions into category buckets and
// computes period totals. Expenses (negative amounts) are grouped by
// category and accumulated as absolute spend; income (positive amounts) only
// contributes to the income total. Buckets are sorted by spend descending
// and capped at TopN, each carrying its share of total spend.
func AnalyzeSpending(transactions []Transaction, opts *SpendingOptions) *SpendingAnalysis {
	if opts == nil {
		opts = &SpendingOptions{}
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = defaultTopCategories
	}

	var filtered []Transaction
	for _, t := range transactions {
		if opts.StartDate != "" && t.Date < opts.StartDate {
			continue
		}
		if opts.EndDate != "" && t.Date > opts.EndDate {
			continue
		}
		filtered = append(filtered, t)
	}

	type bucket struct {
		amount float64
		count  int
	}
	buckets := make(map[string]*bucket)

	var totalSpending, totalIncome float64
	minDate, maxDate := "", ""
	for _, t := range filtered {
		if minDate == "" || t.Date < minDate {
			minDate = t.Date
		}
		if maxDate == "" || t.Date > maxDate {
			maxDate = t.Date
		}
		if t.Amount > 0 {
			totalIncome += t.Amount
			continue
		}
		if t.Amount < 0 {
			name := categoryName(t)
			b := buckets[name]
			if b == nil {
				b = &bucket{}
				buckets[name] = b
			}
			b.amount += -t.Amount
			b.count++
			totalSpending += -t.Amount
		}
	}

	// Period bounds default to the span of the filtered data, or today when
	// the filtered set is empty.
	startDate, endDate := opts.StartDate, opts.EndDate
	if startDate == "" {
		startDate = minDate
	}
	if endDate == "" {
		endDate = maxDate
	}
	if startDate == "" {
		startDate = todayOrDefault(opts.Today)
	}
	if endDate == "" {
		endDate = startDate
	}

	categories := make([]*CategorySpend, 0, len(buckets))
	for name, b := range buckets {
		pct := 0.0
		if totalSpending > 0 {
			pct = b.amount / totalSpending * 100
		}
		categories = append(categories, &CategorySpend{
			Category:   name,
			Amount:     round2(b.amount),
			Count:      b.count,
			Percentage: round2(pct),
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Amount != categories[j].Amount {
			return categories[i].Amount > categories[j].Amount
		}
		return categories[i].Category < categories[j].Category
	})
	if len(categories) > topN {
		categories = categories[:topN]
	}

	days := daysBetween(startDate, endDate) + 1
	if days < 1 {
		days = 1
	}

	analysis := &SpendingAnalysis{
		StartDate:        startDate,
		EndDate:          endDate,
		TotalSpending:    round2(totalSpending),
		TotalIncome:      round2(totalIncome),
		TransactionCount: len(filtered),
		DailyAverage:     round2(totalSpending / float64(days)),
		Categories:       categories,
	}

	if opts.PriorPeriod != nil {
		var priorSpending float64
		for _, t := range opts.PriorPeriod {
			if t.Amount < 0 {
				priorSpending += -t.Amount
			}
		}
		change := totalSpending - priorSpending
		changePct := 0.0
		if priorSpending > 0 {
			changePct = change / priorSpending * 100
		}
		analysis.Comparison = &PeriodComparison{
			PriorSpending: round2(priorSpending),
			Change:        round2(change),
			ChangePercent: round2(changePct),
		}
	}

	return analysis
}
