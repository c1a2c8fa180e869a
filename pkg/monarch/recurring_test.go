package monarch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecurringService_List(t *testing.T) {
	client, mockTransport := newTestClient()

	mockResponse := `{
		"recurringTransactionStreams": [
			{
				"stream": {
					"id": "stream-1",
					"frequency": "monthly",
					"amount": -15.99,
					"merchant": {"id": "m-1", "name": "Netflix"}
				},
				"nextForecastedTransaction": {
					"date": "2025-04-01",
					"amount": -17.99
				}
			},
			{
				"stream": {
					"id": "stream-2",
					"frequency": "yearly",
					"amount": -99,
					"merchant": {"id": "m-2", "name": "Prime"}
				},
				"nextForecastedTransaction": {
					"date": "2025-11-15",
					"amount": 0
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

	streams, err := client.Recurring.List(context.Background())
	require.NoError(t, err)
	require.Len(t, streams, 2)

	assert.Equal(t, "stream-1", streams[0].ID)
	assert.Equal(t, "Netflix", streams[0].Merchant.Name)
	// Forecasted amount wins over the stream baseline when present.
	assert.Equal(t, -17.99, streams[0].Amount)
	assert.Equal(t, "2025-04-01", streams[0].NextDate.String())

	// Zero forecast amount falls back to the stream amount.
	assert.Equal(t, -99.0, streams[1].Amount)
	assert.Equal(t, "yearly", streams[1].Frequency)

	mockTransport.AssertExpectations(t)
}

func TestRecurringService_History(t *testing.T) {
	client, mockTransport := newTestClient()

	mockResponse := `{
		"recurringTransactionHistory": [
			{"id": "ch-1", "date": "2025-01-01", "amount": -15.99, "merchant": {"id": "m-1", "name": "Netflix"}},
			{"id": "ch-2", "date": "2025-02-01", "amount": -15.99, "merchant": {"id": "m-1", "name": "Netflix"}}
		]
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(variables map[string]interface{}) bool {
			return variables["streamId"] == "stream-1"
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	charges, err := client.Recurring.History(context.Background(), &RecurringHistoryParams{
		StreamID: "stream-1",
	})
	require.NoError(t, err)
	require.Len(t, charges, 2)
	assert.Equal(t, "ch-1", charges[0].ID)
	assert.Equal(t, "2025-01-01", charges[0].Date.String())

	mockTransport.AssertExpectations(t)
}
