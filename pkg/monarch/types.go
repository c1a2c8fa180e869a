package monarch

import (
	"time"
)

// Account represents a financial account
type Account struct {
	ID                string              `json:"id"`
	DisplayName       string              `json:"displayName"`
	CurrentBalance    float64             `json:"currentBalance"`
	IsAsset           bool                `json:"isAsset"`
	IncludeInNetWorth bool                `json:"includeInNetWorth"`
	Type              *AccountTypeInfo    `json:"type"`
	Subtype           *AccountSubtypeInfo `json:"subtype"`
	Institution       *Institution        `json:"institution"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// AccountTypeInfo represents account type information
type AccountTypeInfo struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

// AccountSubtypeInfo represents account subtype information
type AccountSubtypeInfo struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

// Institution represents a financial institution
type Institution struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Merchant represents a merchant
type Merchant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// TransactionCategory represents a transaction category
type TransactionCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Transaction represents a financial transaction
type Transaction struct {
	ID       string               `json:"id"`
	Date     Date                 `json:"date"`
	Amount   float64              `json:"amount"`
	Pending  bool                 `json:"pending"`
	Notes    string               `json:"notes"`
	Merchant *Merchant            `json:"merchant"`
	Category *TransactionCategory `json:"category"`
	Account  *Account             `json:"account"`
}

// TransactionList represents paginated transaction results
type TransactionList struct {
	Transactions []*Transaction `json:"transactions"`
	TotalCount   int            `json:"totalCount"`
	HasMore      bool           `json:"hasMore"`
	NextOffset   int            `json:"nextOffset"`
}

// TransactionListParams filters a transaction listing.
type TransactionListParams struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
	Search    string
}

// NetWorthSnapshot is a single point of aggregate balance history.
type NetWorthSnapshot struct {
	Date    Date    `json:"date"`
	Balance float64 `json:"balance"`
}

// NetWorthHistoryParams filters aggregate snapshot history.
type NetWorthHistoryParams struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// BudgetCategory is one category's planned and actual spend for a month.
type BudgetCategory struct {
	Category  *TransactionCategory `json:"category"`
	Month     string               `json:"month"`
	Budgeted  float64              `json:"budgeted"`
	Actual    float64              `json:"actual"`
	Remaining float64              `json:"remaining"`
}

// RecurringStream represents a detected recurring transaction stream.
type RecurringStream struct {
	ID        string    `json:"id"`
	Merchant  *Merchant `json:"merchant"`
	Amount    float64   `json:"amount"`
	Frequency string    `json:"frequency"`
	NextDate  Date      `json:"nextDate"`
}

// RecurringHistoryParams filters recurring transaction history.
type RecurringHistoryParams struct {
	StreamID  string
	StartDate *time.Time
	EndDate   *time.Time
}

// RecurringChargeRecord is one historical charge of a recurring stream.
type RecurringChargeRecord struct {
	ID       string    `json:"id"`
	Date     Date      `json:"date"`
	Amount   float64   `json:"amount"`
	Merchant *Merchant `json:"merchant"`
}

// Session represents an authenticated session
type Session struct {
	Token      string    `json:"token"`
	UserID     string    `json:"userId"`
	Email      string    `json:"email"`
	ExpiresAt  time.Time `json:"expiresAt"`
	DeviceUUID string    `json:"deviceUuid"`
}
