package reporting

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/clinic-billing-api/internal/models"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// roundHalfUp rounds to the nearest integer, halves toward +Inf (-2.5 -> -2, 2.5 -> 3)
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Add(half).Floor().IntPart()
}

// divideRounded returns round(a / b), or 0 when b is 0
func divideRounded(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	return roundHalfUp(decimal.NewFromInt(a).Div(decimal.NewFromInt(b)))
}

// Percent returns round(part / whole * 100), or 0 when whole is 0.
// The zero floor means "no meaningful ratio", not a measured 0%.
func Percent(part, whole int64) int64 {
	if whole == 0 {
		return 0
	}
	return roundHalfUp(decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(whole)))
}

// PercentShares splits 100 across amounts by largest remainder: every share is the floor or
// ceiling of its exact percentage and the shares sum to exactly 100. Remainder ties go to the
// earlier index. All zeros when the total is 0.
func PercentShares(amounts []int64) []int64 {
	shares := make([]int64, len(amounts))
	var total int64
	for _, a := range amounts {
		total += a
	}
	if total == 0 {
		return shares
	}

	remainders := make([]int64, len(amounts))
	var assigned int64
	for i, a := range amounts {
		shares[i] = a * 100 / total
		remainders[i] = a * 100 % total
		assigned += shares[i]
	}

	order := make([]int, len(amounts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return remainders[order[i]] > remainders[order[j]]
	})
	for _, i := range order[:100-assigned] {
		shares[i]++
	}
	return shares
}

// GrowthPercentage returns round((current - previous) / previous * 100), 0 when previous is 0
func GrowthPercentage(current, previous int64) int64 {
	return Percent(current-previous, previous)
}

// ProfitAndLoss builds the profit/loss statement; the margin is 0 when nothing was collected
func ProfitAndLoss(collected, expenses int64) models.ProfitLoss {
	net := collected - expenses
	return models.ProfitLoss{
		Revenue:      collected,
		Expenses:     expenses,
		NetProfit:    net,
		ProfitMargin: Percent(net, collected),
		IsProfit:     net >= 0,
	}
}

// BudgetProgress compares collected revenue and spent expenses with the summed targets.
// Returns nil when no target is configured, so callers can tell "no goal" from "0% of goal".
func BudgetProgress(targets []models.BudgetTarget, collected, expenses int64) *models.BudgetStatus {
	if len(targets) == 0 {
		return nil
	}

	status := &models.BudgetStatus{
		Collected:        collected,
		ActualExpenses:   expenses,
		MonthsConfigured: len(targets),
	}
	for _, t := range targets {
		status.TargetRevenue += t.TargetRevenue
		if t.TargetExpenses != nil {
			if status.TargetExpenses == nil {
				status.TargetExpenses = new(int64)
			}
			*status.TargetExpenses += *t.TargetExpenses
		}
	}

	status.Achieved = Percent(collected, status.TargetRevenue)
	if status.Achieved > 100 {
		status.Achieved = 100
	}
	status.RevenueGap = status.TargetRevenue - collected
	status.Exceeded = status.RevenueGap < 0

	if status.TargetExpenses != nil {
		usage := Percent(expenses, *status.TargetExpenses)
		headroom := *status.TargetExpenses - expenses
		status.ExpenseUsage = &usage
		status.ExpenseHeadroom = &headroom
	}
	return status
}
