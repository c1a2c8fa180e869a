package monarch

import (
	"context"

	"github.com/pkg/errors"
)

// accountService implements the AccountService interface
type accountService struct {
	client *Client
}

// List retrieves all accounts
func (s *accountService) List(ctx context.Context) ([]*Account, error) {
	query := s.client.loadQuery("accounts/list.graphql")

	var result struct {
		Accounts []*Account `json:"accounts"`
	}

	if err := s.client.executeGraphQL(ctx, query, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get accounts")
	}

	return result.Accounts, nil
}

// Get retrieves a single account by ID
func (s *accountService) Get(ctx context.Context, accountID string) (*Account, error) {
	accounts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if account.ID == accountID {
			return account, nil
		}
	}

	return nil, ErrNotFound
}

// GetNetWorthHistory retrieves aggregate balance history across all accounts.
func (s *accountService) GetNetWorthHistory(ctx context.Context, params *NetWorthHistoryParams) ([]*NetWorthSnapshot, error) {
	query := s.client.loadQuery("accounts/snapshots.graphql")

	filters := map[string]interface{}{}
	if params != nil {
		if params.StartDate != nil {
			filters["startDate"] = params.StartDate.Format("2006-01-02")
		}
		if params.EndDate != nil {
			filters["endDate"] = params.EndDate.Format("2006-01-02")
		}
	}

	variables := map[string]interface{}{
		"filters": filters,
	}

	var result struct {
		AggregateSnapshots []*NetWorthSnapshot `json:"aggregateSnapshots"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get net worth history")
	}

	return result.AggregateSnapshots, nil
}
