package monarch

import (
	"context"

	"github.com/pkg/errors"
)

const (
	defaultTransactionPageSize = 100

	// maxTransactionFetch caps ListAll so a runaway filter cannot page
	// through an unbounded history.
	maxTransactionFetch = 10000
)

// transactionService implements the TransactionService interface
type transactionService struct {
	client *Client
}

// List retrieves a page of transactions matching params.
func (s *transactionService) List(ctx context.Context, params *TransactionListParams) (*TransactionList, error) {
	if params == nil {
		params = &TransactionListParams{}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}

	query := s.client.loadQuery("transactions/list.graphql")

	filters := map[string]interface{}{}
	if params.StartDate != nil {
		filters["startDate"] = params.StartDate.Format("2006-01-02")
	}
	if params.EndDate != nil {
		filters["endDate"] = params.EndDate.Format("2006-01-02")
	}
	if params.Search != "" {
		filters["search"] = params.Search
	}

	variables := map[string]interface{}{
		"offset":  params.Offset,
		"limit":   limit,
		"filters": filters,
	}

	var result struct {
		AllTransactions struct {
			TotalCount int            `json:"totalCount"`
			Results    []*Transaction `json:"results"`
		} `json:"allTransactions"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get transactions")
	}

	nextOffset := params.Offset + len(result.AllTransactions.Results)
	return &TransactionList{
		Transactions: result.AllTransactions.Results,
		TotalCount:   result.AllTransactions.TotalCount,
		HasMore:      nextOffset < result.AllTransactions.TotalCount,
		NextOffset:   nextOffset,
	}, nil
}

// ListAll retrieves all transactions matching params, following pagination.
func (s *transactionService) ListAll(ctx context.Context, params *TransactionListParams) ([]*Transaction, error) {
	if params == nil {
		params = &TransactionListParams{}
	}

	page := *params
	page.Offset = 0

	var all []*Transaction
	for {
		list, err := s.List(ctx, &page)
		if err != nil {
			return nil, err
		}

		all = append(all, list.Transactions...)

		if !list.HasMore || len(list.Transactions) == 0 || len(all) >= maxTransactionFetch {
			return all, nil
		}
		page.Offset = list.NextOffset
	}
}
