package main

import (
	"context"
	"log"
	"os"

	"github.com/eshaffer321/monarch-insights-go/pkg/monarch"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// Get Monarch Money token from environment
	token := os.Getenv("MONARCH_TOKEN")
	if token == "" {
		log.Fatal("MONARCH_TOKEN environment variable is required")
	}

	// Initialize Monarch Money client
	client, err := monarch.NewClient(&monarch.ClientOptions{
		Token:     token,
		SentryDSN: os.Getenv("SENTRY_DSN"),
	})
	if err != nil {
		log.Fatalf("failed to initialize Monarch Money client: %v", err)
	}
	defer client.Close()

	// Create MCP server with v1.0.0 API
	impl := &mcp.Implementation{
		Name:    "monarch-insights",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	// Register all tools
	registerTools(server, client)

	// Run server over stdio transport (for Claude Desktop)
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func registerTools(server *mcp.Server, client *monarch.Client) {
	tools := &insightTools{client: client}

	// Raw data tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_accounts",
		Description: "Get all accounts with their current balances, types, and institution information.",
	}, tools.GetAccounts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transactions",
		Description: "Query transactions with optional filters for date range, search text, and limit. Returns transaction details including date, amount, merchant, and category.",
	}, tools.GetTransactions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_budgets",
		Description: "Get budget information for a specific month. Returns per-category budgeted amounts, actual spending, and remaining amounts.",
	}, tools.GetBudgets)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_recurring",
		Description: "Get detected recurring transaction streams with merchant, amount, cadence, and next expected date.",
	}, tools.GetRecurring)

	// Analysis tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_spending",
		Description: "Analyze spending over a date range: category breakdown with percentages, totals, daily average, and an optional comparison against the preceding period of equal length.",
	}, tools.AnalyzeSpending)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_anomalies",
		Description: "Scan recent transactions for anomalies: statistically unusual amounts per merchant, duplicate charges within a day window, and first-time merchants. Results are ordered by severity.",
	}, tools.DetectAnomalies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_trends",
		Description: "Detect per-category spending trends over recent months using a least-squares fit. Classifies each category as increasing, decreasing, or stable.",
	}, tools.DetectTrends)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_subscriptions",
		Description: "Analyze recurring charges to infer each subscription's cadence, annualized cost, next expected charge, and recent price changes.",
	}, tools.AnalyzeSubscriptions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "forecast_cashflow",
		Description: "Project account balances forward by combining scheduled recurring cash flows with the observed discretionary spending baseline, including widening confidence bounds.",
	}, tools.ForecastCashflow)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "financial_health_score",
		Description: "Compute a 0-100 composite financial health score from savings rate, debt ratio, emergency fund coverage, budget adherence, and net worth trend, with recommendations.",
	}, tools.FinancialHealthScore)
}
