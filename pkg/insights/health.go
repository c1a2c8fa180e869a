package insights

import (
	"fmt"
	"sort"
)

// defaultEmergencyFundMonths is the emergency-fund coverage target when the
// caller does not set one.
const defaultEmergencyFundMonths = 6.0

// neutralScore is the fallback component score when the data a component
// needs is absent.
const neutralScore = 50.0

// Component weights; they sum to 1.0.
const (
	weightSavingsRate     = 0.25
	weightDebtRatio       = 0.20
	weightEmergencyFund   = 0.20
	weightBudgetAdherence = 0.20
	weightNetWorthTrend   = 0.15
)

// HealthData bundles the inputs for CalculateHealthScore.
type HealthData struct {
	Accounts        []Account       `json:"accounts"`
	Transactions    []Transaction   `json:"transactions"`
	Budgets         []BudgetItem    `json:"budgets"`
	NetWorthHistory []NetWorthPoint `json:"netWorthHistory"`

	// EmergencyFundMonths is the coverage target in months (default 6).
	EmergencyFundMonths float64 `json:"emergencyFundMonths,omitempty"`
}

// ComponentScore is one scored dimension of financial health.
type ComponentScore struct {
	Value       float64 `json:"value"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// HealthScore is the composite result of CalculateHealthScore.
type HealthScore struct {
	Overall         float64        `json:"overall"`
	SavingsRate     ComponentScore `json:"savingsRate"`
	DebtRatio       ComponentScore `json:"debtRatio"`
	EmergencyFund   ComponentScore `json:"emergencyFund"`
	BudgetAdherence ComponentScore `json:"budgetAdherence"`
	NetWorthTrend   ComponentScore `json:"netWorthTrend"`
	Recommendations []string       `json:"recommendations"`
}

// CalculateHealthScore blends five independently scored components into a
// 0-100 composite. Each component degrades to a neutral 50 when the data it
// needs is absent, so an all-empty input scores exactly 50.
func CalculateHealthScore(data *HealthData) *HealthScore {
	if data == nil {
		data = &HealthData{}
	}
	target := data.EmergencyFundMonths
	if target <= 0 {
		target = defaultEmergencyFundMonths
	}

	score := &HealthScore{
		SavingsRate:     scoreSavingsRate(data.Transactions),
		DebtRatio:       scoreDebtRatio(data.Accounts),
		EmergencyFund:   scoreEmergencyFund(data.Accounts, data.Transactions, target),
		BudgetAdherence: scoreBudgetAdherence(data.Budgets),
		NetWorthTrend:   scoreNetWorthTrend(data.NetWorthHistory),
	}

	overall := score.SavingsRate.Score*weightSavingsRate +
		score.DebtRatio.Score*weightDebtRatio +
		score.EmergencyFund.Score*weightEmergencyFund +
		score.BudgetAdherence.Score*weightBudgetAdherence +
		score.NetWorthTrend.Score*weightNetWorthTrend
	score.Overall = clamp(round2(overall), 0, 100)

	score.Recommendations = buildRecommendations(score)
	return score
}

func scoreSavingsRate(transactions []Transaction) ComponentScore {
	if len(transactions) == 0 {
		return ComponentScore{
			Value:       0,
			Score:       neutralScore,
			Description: "No transaction data available to assess savings rate",
		}
	}
	var income, spending float64
	for _, t := range transactions {
		if t.Amount > 0 {
			income += t.Amount
		} else {
			spending += -t.Amount
		}
	}
	if income == 0 {
		return ComponentScore{
			Value:       0,
			Score:       0,
			Description: "No income recorded in this period",
		}
	}
	rate := (income - spending) / income * 100
	return ComponentScore{
		Value:       round2(rate),
		Score:       round2(linearScore(rate, -10, 25)),
		Description: fmt.Sprintf("You are saving %.1f%% of your income", rate),
	}
}

func scoreDebtRatio(accounts []Account) ComponentScore {
	var debt, assets float64
	for _, a := range accounts {
		switch a.Type {
		case AccountTypeCredit, AccountTypeLoan, AccountTypeMortgage:
			if a.CurrentBalance < 0 {
				debt += -a.CurrentBalance
			} else {
				debt += a.CurrentBalance
			}
		default:
			if a.CurrentBalance > 0 {
				assets += a.CurrentBalance
			}
		}
	}
	if assets == 0 && debt == 0 {
		return ComponentScore{
			Value:       0,
			Score:       neutralScore,
			Description: "No account data available to assess debt",
		}
	}
	ratio := 1.0
	if assets > 0 {
		ratio = debt / assets
	}
	return ComponentScore{
		Value:       round2(ratio * 100),
		Score:       round2(linearScore(ratio, 1, 0)),
		Description: fmt.Sprintf("Debt is %.1f%% of your assets", ratio*100),
	}
}

func scoreEmergencyFund(accounts []Account, transactions []Transaction, targetMonths float64) ComponentScore {
	var liquid float64
	for _, a := range accounts {
		if a.Type == AccountTypeDepository {
			liquid += a.CurrentBalance
		}
	}

	var totalExpense float64
	minDate, maxDate := "", ""
	for _, t := range transactions {
		if t.Amount >= 0 {
			continue
		}
		totalExpense += -t.Amount
		if minDate == "" || t.Date < minDate {
			minDate = t.Date
		}
		if maxDate == "" || t.Date > maxDate {
			maxDate = t.Date
		}
	}

	var monthlyExpense float64
	if totalExpense > 0 {
		months := float64(daysBetween(minDate, maxDate)) / 30
		if months < 1 {
			months = 1
		}
		monthlyExpense = totalExpense / months
	}

	if monthlyExpense == 0 {
		if liquid > 0 {
			return ComponentScore{
				Value:       0,
				Score:       75,
				Description: "Liquid savings on hand but no expense history to size them against",
			}
		}
		return ComponentScore{
			Value:       0,
			Score:       neutralScore,
			Description: "No data available to assess emergency fund",
		}
	}

	monthsCovered := liquid / monthlyExpense
	return ComponentScore{
		Value:       round2(monthsCovered),
		Score:       round2(linearScore(monthsCovered, 0, targetMonths)),
		Description: fmt.Sprintf("Liquid savings cover %.1f months of expenses", monthsCovered),
	}
}

func scoreBudgetAdherence(budgets []BudgetItem) ComponentScore {
	if len(budgets) == 0 {
		return ComponentScore{
			Value:       0,
			Score:       neutralScore,
			Description: "No budget data available",
		}
	}
	within := 0
	for _, b := range budgets {
		if b.Actual <= b.Budgeted {
			within++
		}
	}
	fraction := float64(within) / float64(len(budgets)) * 100
	return ComponentScore{
		Value:       round2(fraction),
		Score:       round2(clamp(fraction, 0, 100)),
		Description: fmt.Sprintf("Staying within budget in %d of %d categories", within, len(budgets)),
	}
}

func scoreNetWorthTrend(history []NetWorthPoint) ComponentScore {
	if len(history) < 2 {
		return ComponentScore{
			Value:       0,
			Score:       neutralScore,
			Description: "Not enough net worth history to assess a trend",
		}
	}
	sorted := make([]NetWorthPoint, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	first := sorted[0].NetWorth
	last := sorted[len(sorted)-1].NetWorth
	change := last - first

	var percentChange float64
	if first == 0 {
		if change > 0 {
			percentChange = 100
		}
	} else {
		abs := first
		if abs < 0 {
			abs = -abs
		}
		percentChange = change / abs * 100
	}

	perPeriod := change / float64(len(sorted)-1)
	return ComponentScore{
		Value:       round2(percentChange),
		Score:       round2(linearScore(percentChange, -20, 20)),
		Description: fmt.Sprintf("Net worth changed %.1f%% ($%.2f per period) over the tracked history", percentChange, perPeriod),
	}
}

// Recommendation thresholds and advisory strings, applied in component
// evaluation order.
func buildRecommendations(s *HealthScore) []string {
	var recs []string
	if s.SavingsRate.Score < 50 {
		recs = append(recs, "Increase your savings rate by reducing discretionary spending or growing income")
	}
	if s.DebtRatio.Score < 50 {
		recs = append(recs, "Pay down high-interest debt to improve your debt-to-asset ratio")
	}
	if s.EmergencyFund.Score < 50 {
		recs = append(recs, "Build your emergency fund toward several months of expenses in liquid accounts")
	}
	if s.BudgetAdherence.Score < 70 {
		recs = append(recs, "Review categories that regularly exceed their budgets and adjust limits or spending")
	}
	if s.NetWorthTrend.Score < 50 {
		recs = append(recs, "Your net worth is trending down; revisit spending and debt payoff priorities")
	}
	if len(recs) == 0 {
		recs = append(recs, "Your finances look healthy; keep up your current savings and budgeting habits")
	}
	return recs
}
