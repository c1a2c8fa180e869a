package monarch

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// budgetService implements the BudgetService interface
type budgetService struct {
	client *Client
}

// List retrieves per-category budgets for a month range.
func (s *budgetService) List(ctx context.Context, startDate, endDate time.Time) ([]*BudgetCategory, error) {
	query := s.client.loadQuery("budgets/list.graphql")

	variables := map[string]interface{}{
		"startDate": startDate.Format("2006-01-02"),
		"endDate":   endDate.Format("2006-01-02"),
	}

	var result struct {
		BudgetData struct {
			MonthlyAmountsByCategory []struct {
				Category       *TransactionCategory `json:"category"`
				MonthlyAmounts []struct {
					Month                 string  `json:"month"`
					PlannedCashFlowAmount float64 `json:"plannedCashFlowAmount"`
					ActualAmount          float64 `json:"actualAmount"`
					RemainingAmount       float64 `json:"remainingAmount"`
				} `json:"monthlyAmounts"`
			} `json:"monthlyAmountsByCategory"`
		} `json:"budgetData"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get budgets")
	}

	var budgets []*BudgetCategory
	for _, entry := range result.BudgetData.MonthlyAmountsByCategory {
		for _, month := range entry.MonthlyAmounts {
			budgets = append(budgets, &BudgetCategory{
				Category:  entry.Category,
				Month:     month.Month,
				Budgeted:  month.PlannedCashFlowAmount,
				Actual:    month.ActualAmount,
				Remaining: month.RemainingAmount,
			})
		}
	}

	return budgets, nil
}
