// Command analyze runs the analysis engine offline against a JSON fixture,
// which is useful for inspecting analyzer output without API credentials.
//
// The fixture is a single JSON object with optional top-level keys matching
// the normalized record types:
//
//	{
//	  "transactions": [...],
//	  "accounts": [...],
//	  "budgets": [...],
//	  "netWorthHistory": [...],
//	  "recurring": [...],
//	  "recurringCharges": [...]
//	}
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eshaffer321/monarch-insights-go/pkg/insights"
)

// fixture is the offline input data set.
type fixture struct {
	Transactions     []insights.Transaction     `json:"transactions"`
	Accounts         []insights.Account         `json:"accounts"`
	Budgets          []insights.BudgetItem      `json:"budgets"`
	NetWorthHistory  []insights.NetWorthPoint   `json:"netWorthHistory"`
	Recurring        []insights.RecurringItem   `json:"recurring"`
	RecurringCharges []insights.RecurringCharge `json:"recurringCharges"`
}

func main() {
	var (
		inputPath = flag.String("input", "", "Path to the JSON fixture (required)")
		analysis  = flag.String("analysis", "all", "Which analysis to run: spending, anomalies, trends, subscriptions, cashflow, health, or all")
		today     = flag.String("today", "", "Override the current date (YYYY-MM-DD) for deterministic output")
	)
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := loadFixture(*inputPath)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	results := map[string]interface{}{}

	run := func(name string) bool {
		return *analysis == "all" || *analysis == name
	}

	if run("spending") {
		results["spending"] = insights.AnalyzeSpending(data.Transactions, &insights.SpendingOptions{Today: *today})
	}
	if run("anomalies") {
		results["anomalies"] = insights.DetectAnomalies(data.Transactions, nil)
	}
	if run("trends") {
		results["trends"] = insights.DetectTrends(data.Transactions, nil)
	}
	if run("subscriptions") {
		results["subscriptions"] = insights.AnalyzeSubscriptions(data.RecurringCharges, nil)
	}
	if run("cashflow") {
		results["cashflow"] = insights.ForecastCashflow(data.Accounts, data.Transactions, data.Recurring, &insights.ForecastOptions{Today: *today})
	}
	if run("health") {
		results["health"] = insights.CalculateHealthScore(&insights.HealthData{
			Accounts:        data.Accounts,
			Transactions:    data.Transactions,
			Budgets:         data.Budgets,
			NetWorthHistory: data.NetWorthHistory,
		})
	}

	if len(results) == 0 {
		log.Fatalf("Unknown analysis: %s", *analysis)
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal results: %v", err)
	}
	fmt.Println(string(out))
}

// loadFixture reads and parses the JSON fixture.
func loadFixture(path string) (*fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data fixture
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid fixture JSON: %w", err)
	}

	return &data, nil
}
