package insights

import (
	"math"
	"sort"
)

// TrendDirection classifies how a category's monthly spend is moving.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// TrendOptions configures DetectTrends. Zero values take the documented
// defaults.
type TrendOptions struct {
	// MinMonths is the minimum number of distinct months a category needs
	// before a trend is emitted (default 3).
	MinMonths int `json:"minMonths,omitempty"`

	// StableThreshold is the absolute percent change below which a category
	// is classified as stable (default 5).
	StableThreshold float64 `json:"stableThreshold,omitempty"`

	// Categories restricts the analysis to the named categories.
	Categories []string `json:"categories,omitempty"`

	// StartDate and EndDate bound the considered transactions (inclusive).
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// TrendPoint is one month of category spend backing a trend.
type TrendPoint struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// Trend is the classified spending direction for one category.
type Trend struct {
	Category      string         `json:"category"`
	Direction     TrendDirection `json:"direction"`
	ChangePercent float64        `json:"changePercent"`
	Months        []*TrendPoint  `json:"months"`
}

// DetectTrends buckets expense transactions by category and month, fits a
// least-squares slope per category, and classifies the direction of monthly
// spend. Results are sorted by absolute percent change descending so the
// most dramatic movements come first.
func DetectTrends(transactions []Transaction, opts *TrendOptions) []*Trend {
	if opts == nil {
		opts = &TrendOptions{}
	}
	minMonths := opts.MinMonths
	if minMonths <= 0 {
		minMonths = 3
	}
	stableThreshold := opts.StableThreshold
	if stableThreshold <= 0 {
		stableThreshold = 5
	}

	var allowed map[string]bool
	if len(opts.Categories) > 0 {
		allowed = make(map[string]bool, len(opts.Categories))
		for _, c := range opts.Categories {
			allowed[c] = true
		}
	}

	// Bucket absolute expense amounts by (category, YYYY-MM).
	monthly := make(map[string]map[string]float64)
	for _, t := range transactions {
		if t.Amount >= 0 {
			continue
		}
		if opts.StartDate != "" && t.Date < opts.StartDate {
			continue
		}
		if opts.EndDate != "" && t.Date > opts.EndDate {
			continue
		}
		category := categoryName(t)
		if allowed != nil && !allowed[category] {
			continue
		}
		if len(t.Date) < 7 {
			continue
		}
		month := t.Date[:7]
		if monthly[category] == nil {
			monthly[category] = make(map[string]float64)
		}
		monthly[category][month] += -t.Amount
	}

	trends := []*Trend{}
	for category, months := range monthly {
		if len(months) < minMonths {
			continue
		}
		labels := make([]string, 0, len(months))
		for m := range months {
			labels = append(labels, m)
		}
		sort.Strings(labels)

		points := make([]*TrendPoint, len(labels))
		totals := make([]float64, len(labels))
		for i, m := range labels {
			totals[i] = months[m]
			points[i] = &TrendPoint{Month: m, Total: round2(months[m])}
		}

		changePercent := regressionChangePercent(totals)
		direction := TrendStable
		switch {
		case math.Abs(changePercent) < stableThreshold:
			direction = TrendStable
		case changePercent > 0:
			direction = TrendIncreasing
		default:
			direction = TrendDecreasing
		}

		trends = append(trends, &Trend{
			Category:      category,
			Direction:     direction,
			ChangePercent: round2(changePercent),
			Months:        points,
		})
	}

	sort.Slice(trends, func(i, j int) bool {
		ai, aj := math.Abs(trends[i].ChangePercent), math.Abs(trends[j].ChangePercent)
		if ai != aj {
			return ai > aj
		}
		return trends[i].Category < trends[j].Category
	})

	return trends
}

// regressionChangePercent fits an ordinary-least-squares slope over the
// series at integer x positions 0..n-1 and derives the percent change across
// the fitted span. The fitted first-period value is recovered through the
// mean-centering identity (intercept = ȳ - slope·x̄) rather than a generic
// intercept term so the numeric output is stable.
func regressionChangePercent(totals []float64) float64 {
	n := len(totals)
	if n < 2 {
		return 0
	}
	xMean := float64(n-1) / 2
	yMean := mean(totals)

	var num, den float64
	for i, y := range totals {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	slope := num / den
	first := yMean - slope*xMean
	if first == 0 {
		return 0
	}
	return slope * float64(n-1) / math.Abs(first) * 100
}
