// Package insights implements the analysis engine of the gateway: a set of
// pure, deterministic computations over normalized financial records.
// Spending breakdowns, anomaly detection, category trends, subscription
// analysis, cash-flow forecasting and a composite financial-health score are
// all derived from caller-supplied slices; nothing here performs I/O, keeps
// state between calls, or mutates its inputs.
package insights

// AccountType classifies an account. Credit, loan and mortgage accounts are
// liabilities; their balances are treated as positive magnitudes of debt.
type AccountType string

const (
	AccountTypeDepository AccountType = "depository"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeMortgage   AccountType = "mortgage"
	AccountTypeOther      AccountType = "other"
)

// Frequency labels a recurring cash flow's cadence.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnual    Frequency = "annual"
)

// Transaction is a single normalized transaction. Amount is negative for
// expenses and positive for income. Date is an ISO date string (YYYY-MM-DD),
// which sorts lexicographically in chronological order. Category may be
// empty; use categoryName to resolve the display bucket.
type Transaction struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Merchant string  `json:"merchant"`
	Category string  `json:"category,omitempty"`
}

// Account is a normalized account record.
type Account struct {
	ID             string      `json:"id"`
	DisplayName    string      `json:"displayName"`
	CurrentBalance float64     `json:"currentBalance"`
	Type           AccountType `json:"type"`
	IsAsset        bool        `json:"isAsset,omitempty"`
}

// BudgetItem is one budget line: the budgeted amount for a category and the
// absolute amount actually spent against it.
type BudgetItem struct {
	Category string  `json:"category"`
	Budgeted float64 `json:"budgeted"`
	Actual   float64 `json:"actual"`
}

// NetWorthPoint is one net-worth snapshot. Histories may arrive unordered;
// consumers sort by date before use.
type NetWorthPoint struct {
	Date     string  `json:"date"`
	NetWorth float64 `json:"netWorth"`
}

// RecurringItem is a known recurring cash flow used by the forecaster.
// Amount is signed; NextDate is the next expected occurrence.
type RecurringItem struct {
	ID        string    `json:"id"`
	Merchant  string    `json:"merchant"`
	Amount    float64   `json:"amount"`
	Frequency Frequency `json:"frequency"`
	NextDate  string    `json:"nextDate"`
}

// RecurringCharge is one historical occurrence of a recurring charge, the
// input row shape for subscription analysis. Amount is negative.
type RecurringCharge struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Merchant string  `json:"merchant"`
}
