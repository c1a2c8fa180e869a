package insights

import (
	"fmt"
	"math"
	"sort"
)

// AnomalyType identifies the detection pass that produced an anomaly.
type AnomalyType string

const (
	AnomalyUnusualAmount AnomalyType = "unusual_amount"
	AnomalyDuplicate     AnomalyType = "duplicate"
	AnomalyNewMerchant   AnomalyType = "new_merchant"
)

// Severity ranks how noteworthy an anomaly is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// severityRank orders severities for result sorting, highest first.
var severityRank = map[Severity]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

// AnomalyOptions configures DetectAnomalies. Zero values take the documented
// defaults.
type AnomalyOptions struct {
	// StdDevThreshold is the deviation multiplier above which an amount is
	// flagged as unusual (default 2).
	StdDevThreshold float64 `json:"stdDevThreshold,omitempty"`

	// DuplicateWindowDays is the inclusive day window within which two
	// identical charges count as duplicates (default 3).
	DuplicateWindowDays int `json:"duplicateWindowDays,omitempty"`

	// MinTransactionsForStats is the minimum number of baseline observations
	// a merchant needs before amount statistics apply (default 3).
	MinTransactionsForStats int `json:"minTransactionsForStats,omitempty"`

	// Historical is a separate baseline set. When absent the scanned set is
	// its own baseline and new-merchant detection is skipped.
	Historical []Transaction `json:"-"`
}

// AnomalyTransaction is the flagged transaction embedded in an anomaly.
type AnomalyTransaction struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Merchant string  `json:"merchant"`
}

// Anomaly is one detected irregularity. A single transaction may appear in
// multiple anomalies when it trips more than one detection pass.
type Anomaly struct {
	Type        AnomalyType        `json:"type"`
	Severity    Severity           `json:"severity"`
	Description string             `json:"description"`
	Transaction AnomalyTransaction `json:"transaction"`
}

// merchantStats holds per-merchant baseline statistics.
type merchantStats struct {
	count  int
	mean   float64
	stdDev float64
}

// DetectAnomalies scans transactions for statistical outliers, duplicate
// charges, and first-seen merchants. The three passes are independent and
// additive. Results are ordered by severity descending, then by transaction
// date descending.
func DetectAnomalies(transactions []Transaction, opts *AnomalyOptions) []*Anomaly {
	anomalies := []*Anomaly{}
	if len(transactions) == 0 {
		return anomalies
	}
	if opts == nil {
		opts = &AnomalyOptions{}
	}
	threshold := opts.StdDevThreshold
	if threshold <= 0 {
		threshold = 2
	}
	windowDays := opts.DuplicateWindowDays
	if windowDays <= 0 {
		windowDays = 3
	}
	minStats := opts.MinTransactionsForStats
	if minStats <= 0 {
		minStats = 3
	}

	baseline := opts.Historical
	if baseline == nil {
		baseline = transactions
	}

	stats := buildMerchantStats(baseline)

	// Pass 1: unusual amounts against the merchant baseline.
	for _, t := range transactions {
		s, ok := stats[normalizeMerchant(t.Merchant)]
		if !ok || s.count < minStats || s.stdDev == 0 {
			continue
		}
		deviation := math.Abs(math.Abs(t.Amount)-s.mean) / s.stdDev
		if deviation <= threshold {
			continue
		}
		severity := SeverityLow
		switch {
		case deviation >= 4:
			severity = SeverityHigh
		case deviation >= 3:
			severity = SeverityMedium
		}
		anomalies = append(anomalies, &Anomaly{
			Type:     AnomalyUnusualAmount,
			Severity: severity,
			Description: fmt.Sprintf("%s charge of $%.2f is %.1f standard deviations from the typical $%.2f",
				t.Merchant, math.Abs(t.Amount), deviation, s.mean),
			Transaction: anomalyTransaction(t),
		})
	}

	// Pass 2: duplicate charges. Scanning in date order lets the inner loop
	// stop as soon as the gap exceeds the window.
	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].ID < sorted[j].ID
	})
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if daysBetween(sorted[i].Date, sorted[j].Date) > windowDays {
				break
			}
			if sorted[i].ID == sorted[j].ID {
				continue
			}
			if normalizeMerchant(sorted[i].Merchant) != normalizeMerchant(sorted[j].Merchant) {
				continue
			}
			if sorted[i].Amount != sorted[j].Amount {
				continue
			}
			anomalies = append(anomalies, &Anomaly{
				Type:     AnomalyDuplicate,
				Severity: SeverityMedium,
				Description: fmt.Sprintf("Possible duplicate: %s charged $%.2f on %s and again on %s",
					sorted[j].Merchant, math.Abs(sorted[j].Amount), sorted[i].Date, sorted[j].Date),
				Transaction: anomalyTransaction(sorted[j]),
			})
		}
	}

	// Pass 3: merchants never seen in the historical baseline. Only
	// meaningful when a separate baseline was supplied.
	if opts.Historical != nil {
		known := make(map[string]bool, len(opts.Historical))
		for _, t := range opts.Historical {
			known[normalizeMerchant(t.Merchant)] = true
		}
		for _, t := range sorted {
			key := normalizeMerchant(t.Merchant)
			if known[key] {
				continue
			}
			known[key] = true
			anomalies = append(anomalies, &Anomaly{
				Type:        AnomalyNewMerchant,
				Severity:    SeverityLow,
				Description: fmt.Sprintf("First transaction with new merchant %s", t.Merchant),
				Transaction: anomalyTransaction(t),
			})
		}
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		ri, rj := severityRank[anomalies[i].Severity], severityRank[anomalies[j].Severity]
		if ri != rj {
			return ri < rj
		}
		return anomalies[i].Transaction.Date > anomalies[j].Transaction.Date
	})

	return anomalies
}

// buildMerchantStats computes per-merchant mean and sample standard
// deviation of absolute amounts.
func buildMerchantStats(transactions []Transaction) map[string]*merchantStats {
	amounts := make(map[string][]float64)
	for _, t := range transactions {
		key := normalizeMerchant(t.Merchant)
		amounts[key] = append(amounts[key], math.Abs(t.Amount))
	}
	stats := make(map[string]*merchantStats, len(amounts))
	for key, vals := range amounts {
		stats[key] = &merchantStats{
			count:  len(vals),
			mean:   mean(vals),
			stdDev: sampleStdDev(vals),
		}
	}
	return stats
}

func anomalyTransaction(t Transaction) AnomalyTransaction {
	return AnomalyTransaction{
		ID:       t.ID,
		Date:     t.Date,
		Amount:   t.Amount,
		Merchant: t.Merchant,
	}
}
