package monarch

import (
	"github.com/eshaffer321/monarch-insights-go/pkg/insights"
)

// This file is the single point where provider shapes become the normalized
// records the analysis engine consumes. Nothing downstream of it should see
// provider types.

// ToInsightsTransactions converts provider transactions to normalized records.
// Pending transactions are dropped.
func ToInsightsTransactions(transactions []*Transaction) []insights.Transaction {
	records := make([]insights.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t == nil || t.Pending {
			continue
		}

		record := insights.Transaction{
			ID:     t.ID,
			Date:   t.Date.String(),
			Amount: t.Amount,
		}
		if t.Merchant != nil {
			record.Merchant = t.Merchant.Name
		}
		if t.Category != nil {
			record.Category = t.Category.Name
		}
		records = append(records, record)
	}
	return records
}

// ToInsightsAccounts converts provider accounts to normalized records.
func ToInsightsAccounts(accounts []*Account) []insights.Account {
	records := make([]insights.Account, 0, len(accounts))
	for _, a := range accounts {
		if a == nil {
			continue
		}

		typeName := ""
		if a.Type != nil {
			typeName = a.Type.Name
		}

		records = append(records, insights.Account{
			ID:             a.ID,
			DisplayName:    a.DisplayName,
			CurrentBalance: a.CurrentBalance,
			Type:           accountTypeFor(typeName),
			IsAsset:        a.IsAsset,
		})
	}
	return records
}

// ToInsightsBudgets converts provider budget rows to normalized budget items.
// Rows without a category are dropped.
func ToInsightsBudgets(budgets []*BudgetCategory) []insights.BudgetItem {
	records := make([]insights.BudgetItem, 0, len(budgets))
	for _, b := range budgets {
		if b == nil || b.Category == nil {
			continue
		}

		records = append(records, insights.BudgetItem{
			Category: b.Category.Name,
			Budgeted: b.Budgeted,
			Actual:   b.Actual,
		})
	}
	return records
}

// ToInsightsNetWorth converts aggregate snapshots to net-worth points.
func ToInsightsNetWorth(snapshots []*NetWorthSnapshot) []insights.NetWorthPoint {
	records := make([]insights.NetWorthPoint, 0, len(snapshots))
	for _, s := range snapshots {
		if s == nil {
			continue
		}
		records = append(records, insights.NetWorthPoint{
			Date:     s.Date.String(),
			NetWorth: s.Balance,
		})
	}
	return records
}

// ToInsightsRecurring converts recurring streams to normalized recurring items.
func ToInsightsRecurring(streams []*RecurringStream) []insights.RecurringItem {
	records := make([]insights.RecurringItem, 0, len(streams))
	for _, s := range streams {
		if s == nil {
			continue
		}

		record := insights.RecurringItem{
			ID:        s.ID,
			Amount:    s.Amount,
			Frequency: frequencyFor(s.Frequency),
			NextDate:  s.NextDate.String(),
		}
		if s.Merchant != nil {
			record.Merchant = s.Merchant.Name
		}
		records = append(records, record)
	}
	return records
}

// ToInsightsRecurringCharges converts recurring history rows to normalized
// charge records.
func ToInsightsRecurringCharges(charges []*RecurringChargeRecord) []insights.RecurringCharge {
	records := make([]insights.RecurringCharge, 0, len(charges))
	for _, c := range charges {
		if c == nil {
			continue
		}

		record := insights.RecurringCharge{
			ID:     c.ID,
			Date:   c.Date.String(),
			Amount: c.Amount,
		}
		if c.Merchant != nil {
			record.Merchant = c.Merchant.Name
		}
		records = append(records, record)
	}
	return records
}

// accountTypeFor maps the provider's account type names onto the normalized
// classification.
func accountTypeFor(name string) insights.AccountType {
	switch name {
	case "depository":
		return insights.AccountTypeDepository
	case "brokerage", "investment":
		return insights.AccountTypeInvestment
	case "credit":
		return insights.AccountTypeCredit
	case "loan":
		return insights.AccountTypeLoan
	case "mortgage":
		return insights.AccountTypeMortgage
	default:
		return insights.AccountTypeOther
	}
}

// frequencyFor maps the provider's stream cadence names onto the normalized
// frequency set. Unrecognized cadences fall back to monthly.
func frequencyFor(name string) insights.Frequency {
	switch name {
	case "weekly":
		return insights.FrequencyWeekly
	case "biweekly", "every_2_weeks":
		return insights.FrequencyBiweekly
	case "monthly":
		return insights.FrequencyMonthly
	case "quarterly", "every_3_months":
		return insights.FrequencyQuarterly
	case "yearly", "annually", "annual":
		return insights.FrequencyAnnual
	default:
		return insights.FrequencyMonthly
	}
}
