package monarch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransactionService_List(t *testing.T) {
	client, mockTransport := newTestClient()

	mockResponse := `{
		"allTransactions": {
			"totalCount": 2,
			"results": [
				{
					"id": "txn-1",
					"date": "2025-03-01",
					"amount": -42.50,
					"merchant": {"id": "m-1", "name": "Corner Store"},
					"category": {"id": "c-1", "name": "Groceries"}
				},
				{
					"id": "txn-2",
					"date": "2025-03-02",
					"amount": 2500,
					"merchant": {"id": "m-2", "name": "Employer Inc"}
				}
			]
		}
	}`

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(variables map[string]interface{}) bool {
			filters, ok := variables["filters"].(map[string]interface{})
			return ok && filters["startDate"] == "2025-03-01" && variables["limit"] == 100
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	list, err := client.Transactions.List(context.Background(), &TransactionListParams{
		StartDate: &start,
	})
	require.NoError(t, err)
	require.Len(t, list.Transactions, 2)

	assert.Equal(t, 2, list.TotalCount)
	assert.False(t, list.HasMore)
	assert.Equal(t, "txn-1", list.Transactions[0].ID)
	assert.Equal(t, "2025-03-01", list.Transactions[0].Date.String())
	assert.Equal(t, -42.50, list.Transactions[0].Amount)
	assert.Equal(t, "Corner Store", list.Transactions[0].Merchant.Name)
	assert.Equal(t, "Groceries", list.Transactions[0].Category.Name)
	assert.Nil(t, list.Transactions[1].Category)

	mockTransport.AssertExpectations(t)
}

func TestTransactionService_ListAll_Paginates(t *testing.T) {
	client, mockTransport := newTestClient()

	pageOne := `{
		"allTransactions": {
			"totalCount": 3,
			"results": [
				{"id": "txn-1", "date": "2025-03-01", "amount": -10},
				{"id": "txn-2", "date": "2025-03-02", "amount": -20}
			]
		}
	}`
	pageTwo := `{
		"allTransactions": {
			"totalCount": 3,
			"results": [
				{"id": "txn-3", "date": "2025-03-03", "amount": -30}
			]
		}
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(variables map[string]interface{}) bool {
			return variables["offset"] == 0
		}),
		mock.Anything,
	).Return(pageOne, nil).Once()

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(variables map[string]interface{}) bool {
			return variables["offset"] == 2
		}),
		mock.Anything,
	).Return(pageTwo, nil).Once()

	all, err := client.Transactions.ListAll(context.Background(), &TransactionListParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "txn-3", all[2].ID)

	mockTransport.AssertExpectations(t)
}
