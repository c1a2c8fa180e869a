package main

import (
	"context"
	"fmt"
	"time"

	"github.com/eshaffer321/monarch-insights-go/pkg/insights"
	"github.com/eshaffer321/monarch-insights-go/pkg/monarch"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const dateLayout = "2006-01-02"

// insightTools holds the Monarch Money client and implements all tool handlers
type insightTools struct {
	client *monarch.Client
}

// fetchTransactions pulls all transactions in [start, end] and normalizes them.
func (t *insightTools) fetchTransactions(ctx context.Context, start, end time.Time) ([]insights.Transaction, error) {
	transactions, err := t.client.Transactions.ListAll(ctx, &monarch.TransactionListParams{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return monarch.ToInsightsTransactions(transactions), nil
}

func parseISODate(field, value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format (expected YYYY-MM-DD): %w", field, err)
	}
	return parsed, nil
}

// resolveRange applies the default lookback window when dates are omitted.
func resolveRange(startDate, endDate string, defaultDays int) (time.Time, time.Time, error) {
	end := time.Now()
	if endDate != "" {
		parsed, err := parseISODate("endDate", endDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -defaultDays)
	if startDate != "" {
		parsed, err := parseISODate("startDate", startDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}

	return start, end, nil
}

// GetAccounts tool

type GetAccountsInput struct{}

type AccountEntry struct {
	ID          string  `json:"id" jsonschema:"Account ID"`
	Name        string  `json:"name" jsonschema:"Account display name"`
	Balance     float64 `json:"balance" jsonschema:"Current balance"`
	Type        string  `json:"type,omitempty" jsonschema:"Account type (depository, credit, loan, ...)"`
	IsAsset     bool    `json:"isAsset" jsonschema:"Whether the account is an asset"`
	Institution string  `json:"institution,omitempty" jsonschema:"Institution name"`
}

type GetAccountsOutput struct {
	Accounts []AccountEntry `json:"accounts" jsonschema:"List of accounts"`
	Count    int            `json:"count" jsonschema:"Number of accounts"`
}

func (t *insightTools) GetAccounts(ctx context.Context, req *mcp.CallToolRequest, input GetAccountsInput) (*mcp.CallToolResult, GetAccountsOutput, error) {
	accounts, err := t.client.Accounts.List(ctx)
	if err != nil {
		return nil, GetAccountsOutput{}, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	var entries []AccountEntry
	for _, a := range accounts {
		entry := AccountEntry{
			ID:      a.ID,
			Name:    a.DisplayName,
			Balance: a.CurrentBalance,
			IsAsset: a.IsAsset,
		}
		if a.Type != nil {
			entry.Type = a.Type.Name
		}
		if a.Institution != nil {
			entry.Institution = a.Institution.Name
		}
		entries = append(entries, entry)
	}

	return nil, GetAccountsOutput{Accounts: entries, Count: len(entries)}, nil
}

// GetTransactions tool

type GetTransactionsInput struct {
	StartDate string `json:"startDate,omitempty" jsonschema:"Start date in YYYY-MM-DD format (default: 30 days ago)"`
	EndDate   string `json:"endDate,omitempty" jsonschema:"End date in YYYY-MM-DD format (default: today)"`
	Search    string `json:"search,omitempty" jsonschema:"Free-text search over merchant and notes"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of transactions to return (default: 50)"`
}

type TransactionEntry struct {
	ID       string  `json:"id" jsonschema:"Transaction ID"`
	Date     string  `json:"date" jsonschema:"Transaction date (YYYY-MM-DD)"`
	Amount   float64 `json:"amount" jsonschema:"Transaction amount (negative for expenses)"`
	Merchant string  `json:"merchant,omitempty" jsonschema:"Merchant name"`
	Category string  `json:"category,omitempty" jsonschema:"Transaction category"`
	Account  string  `json:"account,omitempty" jsonschema:"Account name"`
	Pending  bool    `json:"pending" jsonschema:"Whether the transaction is pending"`
}

type GetTransactionsOutput struct {
	Transactions []TransactionEntry `json:"transactions" jsonschema:"List of transactions"`
	Count        int                `json:"count" jsonschema:"Number of transactions returned"`
	TotalCount   int                `json:"totalCount" jsonschema:"Total number of matching transactions"`
}

func (t *insightTools) GetTransactions(ctx context.Context, req *mcp.CallToolRequest, input GetTransactionsInput) (*mcp.CallToolResult, GetTransactionsOutput, error) {
	start, end, err := resolveRange(input.StartDate, input.EndDate, 30)
	if err != nil {
		return nil, GetTransactionsOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	list, err := t.client.Transactions.List(ctx, &monarch.TransactionListParams{
		StartDate: &start,
		EndDate:   &end,
		Search:    input.Search,
		Limit:     limit,
	})
	if err != nil {
		return nil, GetTransactionsOutput{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	var entries []TransactionEntry
	for _, txn := range list.Transactions {
		entry := TransactionEntry{
			ID:      txn.ID,
			Date:    txn.Date.String(),
			Amount:  txn.Amount,
			Pending: txn.Pending,
		}
		if txn.Merchant != nil {
			entry.Merchant = txn.Merchant.Name
		}
		if txn.Category != nil {
			entry.Category = txn.Category.Name
		}
		if txn.Account != nil {
			entry.Account = txn.Account.DisplayName
		}
		entries = append(entries, entry)
	}

	return nil, GetTransactionsOutput{
		Transactions: entries,
		Count:        len(entries),
		TotalCount:   list.TotalCount,
	}, nil
}

// GetBudgets tool

type GetBudgetsInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month in YYYY-MM format (default: current month)"`
}

type BudgetEntry struct {
	Category  string  `json:"category" jsonschema:"Budget category name"`
	Budgeted  float64 `json:"budgeted" jsonschema:"Budgeted amount for this category"`
	Actual    float64 `json:"actual" jsonschema:"Actual amount spent"`
	Remaining float64 `json:"remaining" jsonschema:"Remaining budget amount"`
}

type GetBudgetsOutput struct {
	Month   string        `json:"month" jsonschema:"Month of the budget data"`
	Budgets []BudgetEntry `json:"budgets" jsonschema:"List of budget entries per category"`
}

func (t *insightTools) GetBudgets(ctx context.Context, req *mcp.CallToolRequest, input GetBudgetsInput) (*mcp.CallToolResult, GetBudgetsOutput, error) {
	month := input.Month
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	startDate, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, GetBudgetsOutput{}, fmt.Errorf("invalid month format (expected YYYY-MM): %w", err)
	}
	endDate := startDate.AddDate(0, 1, -1)

	budgets, err := t.client.Budgets.List(ctx, startDate, endDate)
	if err != nil {
		return nil, GetBudgetsOutput{}, fmt.Errorf("failed to fetch budgets: %w", err)
	}

	var entries []BudgetEntry
	for _, b := range budgets {
		if b.Category == nil {
			continue
		}
		entries = append(entries, BudgetEntry{
			Category:  b.Category.Name,
			Budgeted:  b.Budgeted,
			Actual:    b.Actual,
			Remaining: b.Remaining,
		})
	}

	return nil, GetBudgetsOutput{Month: month, Budgets: entries}, nil
}

// GetRecurring tool

type GetRecurringInput struct{}

type RecurringEntry struct {
	ID        string  `json:"id" jsonschema:"Recurring stream ID"`
	Merchant  string  `json:"merchant,omitempty" jsonschema:"Merchant name"`
	Amount    float64 `json:"amount" jsonschema:"Charge amount (negative for expenses)"`
	Frequency string  `json:"frequency" jsonschema:"Payment cadence"`
	NextDate  string  `json:"nextDate,omitempty" jsonschema:"Next expected charge date"`
}

type GetRecurringOutput struct {
	Recurring []RecurringEntry `json:"recurring" jsonschema:"List of recurring streams"`
	Count     int              `json:"count" jsonschema:"Number of streams"`
}

func (t *insightTools) GetRecurring(ctx context.Context, req *mcp.CallToolRequest, input GetRecurringInput) (*mcp.CallToolResult, GetRecurringOutput, error) {
	streams, err := t.client.Recurring.List(ctx)
	if err != nil {
		return nil, GetRecurringOutput{}, fmt.Errorf("failed to fetch recurring streams: %w", err)
	}

	var entries []RecurringEntry
	for _, s := range streams {
		entry := RecurringEntry{
			ID:        s.ID,
			Amount:    s.Amount,
			Frequency: s.Frequency,
			NextDate:  s.NextDate.String(),
		}
		if s.Merchant != nil {
			entry.Merchant = s.Merchant.Name
		}
		entries = append(entries, entry)
	}

	return nil, GetRecurringOutput{Recurring: entries, Count: len(entries)}, nil
}

// AnalyzeSpending tool

type AnalyzeSpendingInput struct {
	StartDate    string `json:"startDate,omitempty" jsonschema:"Start date in YYYY-MM-DD format (default: 30 days ago)"`
	EndDate      string `json:"endDate,omitempty" jsonschema:"End date in YYYY-MM-DD format (default: today)"`
	TopN         int    `json:"topN,omitempty" jsonschema:"How many top categories to return (default: 10)"`
	ComparePrior bool   `json:"comparePrior,omitempty" jsonschema:"Compare against the preceding period of equal length"`
}

func (t *insightTools) AnalyzeSpending(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeSpendingInput) (*mcp.CallToolResult, *insights.SpendingAnalysis, error) {
	start, end, err := resolveRange(input.StartDate, input.EndDate, 30)
	if err != nil {
		return nil, nil, err
	}

	transactions, err := t.fetchTransactions(ctx, start, end)
	if err != nil {
		return nil, nil, err
	}

	opts := &insights.SpendingOptions{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		TopN:      input.TopN,
	}

	if input.ComparePrior {
		windowDays := int(end.Sub(start).Hours() / 24)
		priorEnd := start.AddDate(0, 0, -1)
		priorStart := priorEnd.AddDate(0, 0, -windowDays)

		prior, err := t.fetchTransactions(ctx, priorStart, priorEnd)
		if err != nil {
			return nil, nil, err
		}
		opts.PriorPeriod = prior
	}

	return nil, insights.AnalyzeSpending(transactions, opts), nil
}

// DetectAnomalies tool

type DetectAnomaliesInput struct {
	Days                int     `json:"days,omitempty" jsonschema:"How many recent days to scan (default: 30)"`
	BaselineDays        int     `json:"baselineDays,omitempty" jsonschema:"How many days before the scan window form the baseline (default: 90)"`
	StdDevThreshold     float64 `json:"stdDevThreshold,omitempty" jsonschema:"Deviation multiplier above which an amount is unusual (default: 2)"`
	DuplicateWindowDays int     `json:"duplicateWindowDays,omitempty" jsonschema:"Day window within which identical charges count as duplicates (default: 3)"`
}

type DetectAnomaliesOutput struct {
	Anomalies []*insights.Anomaly `json:"anomalies" jsonschema:"Detected anomalies ordered by severity"`
	Count     int                 `json:"count" jsonschema:"Number of anomalies"`
}

func (t *insightTools) DetectAnomalies(ctx context.Context, req *mcp.CallToolRequest, input DetectAnomaliesInput) (*mcp.CallToolResult, DetectAnomaliesOutput, error) {
	days := input.Days
	if days <= 0 {
		days = 30
	}
	baselineDays := input.BaselineDays
	if baselineDays <= 0 {
		baselineDays = 90
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	recent, err := t.fetchTransactions(ctx, start, end)
	if err != nil {
		return nil, DetectAnomaliesOutput{}, err
	}

	baselineEnd := start.AddDate(0, 0, -1)
	baselineStart := baselineEnd.AddDate(0, 0, -baselineDays)
	baseline, err := t.fetchTransactions(ctx, baselineStart, baselineEnd)
	if err != nil {
		return nil, DetectAnomaliesOutput{}, err
	}

	anomalies := insights.DetectAnomalies(recent, &insights.AnomalyOptions{
		StdDevThreshold:     input.StdDevThreshold,
		DuplicateWindowDays: input.DuplicateWindowDays,
		Historical:          baseline,
	})

	return nil, DetectAnomaliesOutput{Anomalies: anomalies, Count: len(anomalies)}, nil
}

// DetectTrends tool

type DetectTrendsInput struct {
	Months          int      `json:"months,omitempty" jsonschema:"How many recent months to analyze (default: 6)"`
	Categories      []string `json:"categories,omitempty" jsonschema:"Restrict analysis to these categories"`
	MinMonths       int      `json:"minMonths,omitempty" jsonschema:"Minimum months of data a category needs (default: 3)"`
	StableThreshold float64  `json:"stableThreshold,omitempty" jsonschema:"Absolute percent change below which a category is stable (default: 5)"`
}

type DetectTrendsOutput struct {
	Trends []*insights.Trend `json:"trends" jsonschema:"Per-category trends sorted by magnitude"`
	Count  int               `json:"count" jsonschema:"Number of trends"`
}

func (t *insightTools) DetectTrends(ctx context.Context, req *mcp.CallToolRequest, input DetectTrendsInput) (*mcp.CallToolResult, DetectTrendsOutput, error) {
	months := input.Months
	if months <= 0 {
		months = 6
	}

	end := time.Now()
	start := end.AddDate(0, -months, 0)

	transactions, err := t.fetchTransactions(ctx, start, end)
	if err != nil {
		return nil, DetectTrendsOutput{}, err
	}

	trends := insights.DetectTrends(transactions, &insights.TrendOptions{
		MinMonths:       input.MinMonths,
		StableThreshold: input.StableThreshold,
		Categories:      input.Categories,
	})

	return nil, DetectTrendsOutput{Trends: trends, Count: len(trends)}, nil
}

// AnalyzeSubscriptions tool

type AnalyzeSubscriptionsInput struct {
	MonthsBack int `json:"monthsBack,omitempty" jsonschema:"How many months of charge history to analyze (default: 12)"`
}

func (t *insightTools) AnalyzeSubscriptions(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeSubscriptionsInput) (*mcp.CallToolResult, *insights.SubscriptionSummary, error) {
	monthsBack := input.MonthsBack
	if monthsBack <= 0 {
		monthsBack = 12
	}

	end := time.Now()
	start := end.AddDate(0, -monthsBack, 0)

	charges, err := t.client.Recurring.History(ctx, &monarch.RecurringHistoryParams{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch recurring history: %w", err)
	}

	summary := insights.AnalyzeSubscriptions(monarch.ToInsightsRecurringCharges(charges), nil)
	return nil, summary, nil
}

// ForecastCashflow tool

type ForecastCashflowInput struct {
	ForecastDays int      `json:"forecastDays,omitempty" jsonschema:"Projection horizon in days (default: 30)"`
	AccountIDs   []string `json:"accountIds,omitempty" jsonschema:"Accounts contributing to the starting balance (default: all liquid accounts)"`
}

func (t *insightTools) ForecastCashflow(ctx context.Context, req *mcp.CallToolRequest, input ForecastCashflowInput) (*mcp.CallToolResult, *insights.CashflowForecast, error) {
	accounts, err := t.client.Accounts.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	end := time.Now()
	start := end.AddDate(0, 0, -90)
	transactions, err := t.fetchTransactions(ctx, start, end)
	if err != nil {
		return nil, nil, err
	}

	streams, err := t.client.Recurring.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch recurring streams: %w", err)
	}

	forecast := insights.ForecastCashflow(
		monarch.ToInsightsAccounts(accounts),
		transactions,
		monarch.ToInsightsRecurring(streams),
		&insights.ForecastOptions{
			ForecastDays: input.ForecastDays,
			AccountIDs:   input.AccountIDs,
		},
	)

	return nil, forecast, nil
}

// FinancialHealthScore tool

type FinancialHealthScoreInput struct {
	EmergencyFundMonths float64 `json:"emergencyFundMonths,omitempty" jsonschema:"Emergency fund coverage target in months (default: 6)"`
}

func (t *insightTools) FinancialHealthScore(ctx context.Context, req *mcp.CallToolRequest, input FinancialHealthScoreInput) (*mcp.CallToolResult, *insights.HealthScore, error) {
	accounts, err := t.client.Accounts.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	end := time.Now()
	txnStart := end.AddDate(0, 0, -90)
	transactions, err := t.fetchTransactions(ctx, txnStart, end)
	if err != nil {
		return nil, nil, err
	}

	monthStart := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	budgets, err := t.client.Budgets.List(ctx, monthStart, monthStart.AddDate(0, 1, -1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch budgets: %w", err)
	}

	historyStart := end.AddDate(-1, 0, 0)
	history, err := t.client.Accounts.GetNetWorthHistory(ctx, &monarch.NetWorthHistoryParams{
		StartDate: &historyStart,
		EndDate:   &end,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch net worth history: %w", err)
	}

	score := insights.CalculateHealthScore(&insights.HealthData{
		Accounts:            monarch.ToInsightsAccounts(accounts),
		Transactions:        transactions,
		Budgets:             monarch.ToInsightsBudgets(budgets),
		NetWorthHistory:     monarch.ToInsightsNetWorth(history),
		EmergencyFundMonths: input.EmergencyFundMonths,
	})

	return nil, score, nil
}
