package insights

import "sort"

// SubscriptionOptions configures AnalyzeSubscriptions. Zero values take the
// documented defaults.
type SubscriptionOptions struct {
	// DayTolerance is how far the mean payment interval may sit from a
	// canonical frequency interval and still match it (default 5).
	DayTolerance float64 `json:"dayTolerance,omitempty"`

	// PriceChangeThreshold is the minimum absolute percent change between
	// the two most recent amounts that counts as a price change (default 1).
	PriceChangeThreshold float64 `json:"priceChangeThreshold,omitempty"`
}

// Subscription is the derived view of one recurring merchant: its latest
// charge, inferred cadence, annualized cost, and price history.
type Subscription struct {
	Merchant     string    `json:"merchant"`
	Amount       float64   `json:"amount"`
	Frequency    Frequency `json:"frequency"`
	AnnualCost   float64   `json:"annualCost"`
	NextExpected string    `json:"nextExpected"`
	PriceHistory []float64 `json:"priceHistory"`
	PriceChanged bool      `json:"priceChanged"`
}

// SubscriptionSummary is the result of AnalyzeSubscriptions.
type SubscriptionSummary struct {
	Subscriptions    []*Subscription `json:"subscriptions"`
	TotalAnnualCost  float64         `json:"totalAnnualCost"`
	TotalMonthlyCost float64         `json:"totalMonthlyCost"`
	RecentChanges    []*Subscription `json:"recentChanges"`
}

// AnalyzeSubscriptions groups historical recurring charges by normalized
// merchant, infers each merchant's payment cadence from the spacing of its
// charges, and reports annualized costs and recent price changes.
// Subscriptions are sorted by annual cost descending.
func AnalyzeSubscriptions(charges []RecurringCharge, opts *SubscriptionOptions) *SubscriptionSummary {
	summary := &SubscriptionSummary{
		Subscriptions: []*Subscription{},
		RecentChanges: []*Subscription{},
	}
	if len(charges) == 0 {
		return summary
	}
	if opts == nil {
		opts = &SubscriptionOptions{}
	}
	tolerance := opts.DayTolerance
	if tolerance <= 0 {
		tolerance = 5
	}
	priceThreshold := opts.PriceChangeThreshold
	if priceThreshold <= 0 {
		priceThreshold = 1
	}

	groups := make(map[string][]RecurringCharge)
	for _, c := range charges {
		key := normalizeMerchant(c.Merchant)
		groups[key] = append(groups[key], c)
	}

	var totalAnnual float64
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			if group[i].Date != group[j].Date {
				return group[i].Date < group[j].Date
			}
			return group[i].ID < group[j].ID
		})

		latest := group[len(group)-1]
		priceHistory := make([]float64, len(group))
		for i, c := range group {
			amount := c.Amount
			if amount < 0 {
				amount = -amount
			}
			priceHistory[i] = round2(amount)
		}
		latestAmount := priceHistory[len(priceHistory)-1]

		frequency := inferFrequency(group, tolerance)
		annualCost := latestAmount * periodsPerYear(frequency)

		priceChanged := false
		if len(priceHistory) >= 2 {
			prev := priceHistory[len(priceHistory)-2]
			curr := latestAmount
			if prev == 0 {
				priceChanged = curr != 0
			} else {
				pct := (curr - prev) / prev * 100
				if pct < 0 {
					pct = -pct
				}
				priceChanged = pct >= priceThreshold
			}
		}

		sub := &Subscription{
			Merchant:     latest.Merchant,
			Amount:       latestAmount,
			Frequency:    frequency,
			AnnualCost:   round2(annualCost),
			NextExpected: advance(parseDate(latest.Date), frequency).Format(dateLayout),
			PriceHistory: priceHistory,
			PriceChanged: priceChanged,
		}
		summary.Subscriptions = append(summary.Subscriptions, sub)
		totalAnnual += annualCost
		if priceChanged {
			summary.RecentChanges = append(summary.RecentChanges, sub)
		}
	}

	sort.Slice(summary.Subscriptions, func(i, j int) bool {
		if summary.Subscriptions[i].AnnualCost != summary.Subscriptions[j].AnnualCost {
			return summary.Subscriptions[i].AnnualCost > summary.Subscriptions[j].AnnualCost
		}
		return summary.Subscriptions[i].Merchant < summary.Subscriptions[j].Merchant
	})
	sort.Slice(summary.RecentChanges, func(i, j int) bool {
		if summary.RecentChanges[i].AnnualCost != summary.RecentChanges[j].AnnualCost {
			return summary.RecentChanges[i].AnnualCost > summary.RecentChanges[j].AnnualCost
		}
		return summary.RecentChanges[i].Merchant < summary.RecentChanges[j].Merchant
	})

	summary.TotalAnnualCost = round2(totalAnnual)
	summary.TotalMonthlyCost = round2(totalAnnual / 12)
	return summary
}

// inferFrequency derives a payment cadence from the mean gap between
// consecutive charges. The check order and widened tolerances mirror the
// behavior the rest of the system was built against: weekly, monthly (+3
// days), a second weekly band intended as a biweekly heuristic (unreachable
// after the first weekly check, kept for compatibility), quarterly (+10
// days), annual (+30 days), then nearest canonical interval.
func inferFrequency(group []RecurringCharge, tolerance float64) Frequency {
	if len(group) < 2 {
		return FrequencyMonthly
	}

	var totalDays float64
	for i := 1; i < len(group); i++ {
		totalDays += float64(daysBetween(group[i-1].Date, group[i].Date))
	}
	avg := totalDays / float64(len(group)-1)

	switch {
	case absFloat(avg-7) <= tolerance:
		return FrequencyWeekly
	case absFloat(avg-30) <= tolerance+3:
		return FrequencyMonthly
	case absFloat(avg-7) <= tolerance:
		return FrequencyBiweekly
	case absFloat(avg-91) <= tolerance+10:
		return FrequencyQuarterly
	case absFloat(avg-365) <= tolerance+30:
		return FrequencyAnnual
	}

	// No band matched: snap to the nearest canonical interval.
	candidates := []struct {
		freq Frequency
		days float64
	}{
		{FrequencyWeekly, 7},
		{FrequencyMonthly, 30},
		{FrequencyQuarterly, 91},
		{FrequencyAnnual, 365},
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if absFloat(avg-c.days) < absFloat(avg-best.days) {
			best = c
		}
	}
	return best.freq
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
