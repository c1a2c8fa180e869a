package monarch

import (
	"context"

	"github.com/pkg/errors"
)

// recurringService implements the RecurringService interface
type recurringService struct {
	client *Client
}

// List retrieves all recurring transaction streams.
func (s *recurringService) List(ctx context.Context) ([]*RecurringStream, error) {
	query := s.client.loadQuery("recurring/streams.graphql")

	var result struct {
		RecurringTransactionStreams []struct {
			Stream struct {
				ID        string    `json:"id"`
				Frequency string    `json:"frequency"`
				Amount    float64   `json:"amount"`
				Merchant  *Merchant `json:"merchant"`
			} `json:"stream"`
			NextForecastedTransaction struct {
				Date   Date    `json:"date"`
				Amount float64 `json:"amount"`
			} `json:"nextForecastedTransaction"`
		} `json:"recurringTransactionStreams"`
	}

	if err := s.client.executeGraphQL(ctx, query, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get recurring streams")
	}

	var streams []*RecurringStream
	for _, item := range result.RecurringTransactionStreams {
		amount := item.Stream.Amount
		if item.NextForecastedTransaction.Amount != 0 {
			amount = item.NextForecastedTransaction.Amount
		}

		streams = append(streams, &RecurringStream{
			ID:        item.Stream.ID,
			Merchant:  item.Stream.Merchant,
			Amount:    amount,
			Frequency: item.Stream.Frequency,
			NextDate:  item.NextForecastedTransaction.Date,
		})
	}

	return streams, nil
}

// History retrieves historical charges for recurring streams.
func (s *recurringService) History(ctx context.Context, params *RecurringHistoryParams) ([]*RecurringChargeRecord, error) {
	query := s.client.loadQuery("recurring/history.graphql")

	variables := map[string]interface{}{}
	if params != nil {
		if params.StreamID != "" {
			variables["streamId"] = params.StreamID
		}
		if params.StartDate != nil {
			variables["startDate"] = params.StartDate.Format("2006-01-02")
		}
		if params.EndDate != nil {
			variables["endDate"] = params.EndDate.Format("2006-01-02")
		}
	}

	var result struct {
		RecurringTransactionHistory []*RecurringChargeRecord `json:"recurringTransactionHistory"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get recurring history")
	}

	return result.RecurringTransactionHistory, nil
}
