package monarch

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/eshaffer321/monarch-insights-go/internal/graphql"
	internalTypes "github.com/eshaffer321/monarch-insights-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransport is a mock implementation of the Transport interface
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Execute(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	args := m.Called(ctx, query, variables, result)

	// If mock provides result data, unmarshal it
	if args.Get(0) != nil {
		resultJSON := args.Get(0).(string)
		if err := json.Unmarshal([]byte(resultJSON), result); err != nil {
			return err
		}
	}

	return args.Error(1)
}

func (m *MockTransport) SetAuth(token string) {
	m.Called(token)
}

func (m *MockTransport) SetSession(session *internalTypes.Session) {
	m.Called(session)
}

// newTestClient builds a client wired to a fresh MockTransport.
func newTestClient() (*Client, *MockTransport) {
	mockTransport := new(MockTransport)
	client := &Client{
		transport:   mockTransport,
		queryLoader: graphql.NewQueryLoader(),
		options:     &ClientOptions{},
		baseURL:     "https://api.test.com",
	}
	client.initServices()
	return client, mockTransport
}

func TestAccountService_List(t *testing.T) {
	client, mockTransport := newTestClient()

	mockResponse := `{
		"accounts": [
			{
				"id": "acc-123",
				"displayName": "Test Checking",
				"currentBalance": 1500.50,
				"isAsset": true,
				"type": {
					"name": "depository",
					"display": "Depository"
				}
			},
			{
				"id": "acc-456",
				"displayName": "Test Credit Card",
				"currentBalance": -430.25,
				"isAsset": false,
				"type": {
					"name": "credit",
					"display": "Credit"
				}
			}
		]
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	accounts, err := client.Accounts.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "acc-123", accounts[0].ID)
	assert.Equal(t, "Test Checking", accounts[0].DisplayName)
	assert.Equal(t, 1500.50, accounts[0].CurrentBalance)
	assert.True(t, accounts[0].IsAsset)
	require.NotNil(t, accounts[0].Type)
	assert.Equal(t, "depository", accounts[0].Type.Name)

	assert.Equal(t, "acc-456", accounts[1].ID)
	assert.False(t, accounts[1].IsAsset)

	mockTransport.AssertExpectations(t)
}

func TestAccountService_Get(t *testing.T) {
	client, mockTransport := newTestClient()

	mockResponse := `{
		"accounts": [
			{"id": "acc-123", "displayName": "Checking"},
			{"id": "acc-456", "displayName": "Savings"}
		]
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	account, err := client.Accounts.Get(context.Background(), "acc-456")
	require.NoError(t, err)
	assert.Equal(t, "Savings", account.DisplayName)

	_, err = client.Accounts.Get(context.Background(), "acc-999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountService_GetNetWorthHistory(t *testing.T) {
	client, mockTransport := newTestClient()

	mockResponse := `{
		"aggregateSnapshots": [
			{"date": "2025-01-01", "balance": 10000},
			{"date": "2025-02-01", "balance": 10500.75}
		]
	}`

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(variables map[string]interface{}) bool {
			filters, ok := variables["filters"].(map[string]interface{})
			return ok && filters["startDate"] == "2025-01-01"
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	snapshots, err := client.Accounts.GetNetWorthHistory(context.Background(), &NetWorthHistoryParams{
		StartDate: &start,
	})
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "2025-01-01", snapshots[0].Date.String())
	assert.Equal(t, 10500.75, snapshots[1].Balance)

	mockTransport.AssertExpectations(t)
}
