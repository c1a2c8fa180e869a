package monarch

import (
	"context"
	"time"
)

// AccountService handles account-related operations
type AccountService interface {
	// List retrieves all accounts
	List(ctx context.Context) ([]*Account, error)

	// Get retrieves a single account by ID
	Get(ctx context.Context, accountID string) (*Account, error)

	// GetNetWorthHistory retrieves aggregate balance history
	GetNetWorthHistory(ctx context.Context, params *NetWorthHistoryParams) ([]*NetWorthSnapshot, error)
}

// TransactionService handles transaction-related operations
type TransactionService interface {
	// List retrieves a page of transactions matching params
	List(ctx context.Context, params *TransactionListParams) (*TransactionList, error)

	// ListAll retrieves all transactions matching params, following pagination
	ListAll(ctx context.Context, params *TransactionListParams) ([]*Transaction, error)
}

// BudgetService handles budget operations
type BudgetService interface {
	// List retrieves per-category budgets for a month range
	List(ctx context.Context, startDate, endDate time.Time) ([]*BudgetCategory, error)
}

// RecurringService handles recurring transaction streams
type RecurringService interface {
	// List retrieves all recurring streams
	List(ctx context.Context) ([]*RecurringStream, error)

	// History retrieves historical charges for recurring streams
	History(ctx context.Context, params *RecurringHistoryParams) ([]*RecurringChargeRecord, error)
}

// AuthService handles authentication
type AuthService interface {
	// Login performs authentication
	Login(ctx context.Context, email, password string) error

	// LoginWithMFA performs login with MFA
	LoginWithMFA(ctx context.Context, email, password, mfaCode string) error

	// LoginWithTOTP performs login with TOTP secret
	LoginWithTOTP(ctx context.Context, email, password, totpSecret string) error

	// GetSession returns the current session
	GetSession() (*Session, error)

	// SaveSession saves session to file
	SaveSession(path string) error

	// LoadSession loads session from file
	LoadSession(path string) error
}
