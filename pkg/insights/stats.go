package insights

import (
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// uncategorized is the bucket for transactions without a category.
const uncategorized = "Uncategorized"

// normalizeMerchant produces the grouping key for a merchant name:
// whitespace trimmed, case folded to lowercase.
func normalizeMerchant(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// categoryName resolves a transaction's category bucket, falling back to
// "Uncategorized" for missing categories.
func categoryName(t Transaction) string {
	if strings.TrimSpace(t.Category) == "" {
		return uncategorized
	}
	return t.Category
}

// round2 rounds to cents, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// linearScore maps v from the range [lo, hi] onto [0, 100], clamped.
// lo may exceed hi for inverted scales (a lower raw value scoring higher).
func linearScore(v, lo, hi float64) float64 {
	if lo == hi {
		return 50
	}
	return clamp((v-lo)/(hi-lo)*100, 0, 100)
}

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev returns the sample standard deviation (Bessel's correction,
// n-1 divisor), 0 when fewer than two observations exist.
func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// parseDate parses an ISO date string. Malformed dates are a caller
// precondition violation; the zero time keeps downstream arithmetic defined.
func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// daysBetween returns the whole-day difference between two ISO dates.
func daysBetween(start, end string) int {
	a, b := parseDate(start), parseDate(end)
	return int(b.Sub(a).Hours() / 24)
}

// todayOrDefault returns the supplied override date, or today's date when
// the override is empty. Analyzers take an injectable "today" so results
// stay deterministic under test.
func todayOrDefault(override string) string {
	if override != "" {
		return override
	}
	return time.Now().Format(dateLayout)
}

// periodDays returns the length of one recurrence period in days, used to
// convert mixed-frequency cash flows into daily-equivalent rates.
func periodDays(f Frequency) float64 {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyBiweekly:
		return 14
	case FrequencyQuarterly:
		return 91
	case FrequencyAnnual:
		return 365
	default:
		return 30
	}
}

// periodsPerYear returns how many times a frequency recurs per year.
func periodsPerYear(f Frequency) float64 {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencyQuarterly:
		return 4
	case FrequencyAnnual:
		return 1
	default:
		return 12
	}
}

// advance moves a date forward by one recurrence period. Weekly cadences add
// days; monthly and longer cadences are calendar-aware.
func advance(t time.Time, f Frequency) time.Time {
	switch f {
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return t.AddDate(0, 0, 14)
	case FrequencyQuarterly:
		return t.AddDate(0, 3, 0)
	case FrequencyAnnual:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}
