package analytics

import (
	"sort"
	"time"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/timeutil"
)

// Totals sums one month of cash flow.
type Totals struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// BudgetLine compares a budget against what was spent in its category.
type BudgetLine struct {
	BudgetID string  `json:"budgetId"`
	Category string  `json:"category"`
	Budget   float64 `json:"budget"`
	Spent    float64 `json:"spent"`
	Percent  float64 `json:"percent"`
	Status   string  `json:"status"`
}

// Budget line statuses, by percent used.
const (
	BudgetOK      = "ok"
	BudgetWarning = "warning"
	BudgetOver    = "over"
)

// CategoryTotal is the spend for one expense category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

func inMonth(t time.Time, month time.Time) bool {
	start := timeutil.StartOfMonth(month)
	end := timeutil.EndOfMonth(month)
	t = t.In(start.Location())
	return !t.Before(start) && !t.After(end)
}

// MonthExpenses filters expenses dated within month.
func MonthExpenses(expenses []entity.Expense, month time.Time) []entity.Expense {
	var out []entity.Expense
	for _, e := range expenses {
		if inMonth(e.Date.Time, month) {
			out = append(out, e)
		}
	}
	return out
}

// MonthIncome filters income dated within month.
func MonthIncome(income []entity.Income, month time.Time) []entity.Income {
	var out []entity.Income
	for _, i := range income {
		if inMonth(i.Date.Time, month) {
			out = append(out, i)
		}
	}
	return out
}

// MonthTotals sums income and expenses dated within month.
func MonthTotals(expenses []entity.Expense, income []entity.Income, month time.Time) Totals {
	t := Totals{Month: timeutil.MonthKey(month)}
	for _, e := range MonthExpenses(expenses, month) {
		t.Expenses += e.Amount
	}
	for _, i := range MonthIncome(income, month) {
		t.Income += i.Amount
	}
	t.Net = t.Income - t.Expenses
	return t
}

// ExpensesByCategory sums month's expenses per category, largest first.
func ExpensesByCategory(expenses []entity.Expense, month time.Time) []CategoryTotal {
	sums := map[string]float64{}
	for _, e := range MonthExpenses(expenses, month) {
		sums[e.Category] += e.Amount
	}
	out := make([]CategoryTotal, 0, len(sums))
	for c, a := range sums {
		out = append(out, CategoryTotal{Category: c, Amount: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount == out[j].Amount {
			return out[i].Category < out[j].Category
		}
		return out[i].Amount > out[j].Amount
	})
	return out
}

// BudgetVsActual reports every budget set for month against that month's
// spending in the same category. Over 80% is a warning, over 100% is over.
func BudgetVsActual(budgets []entity.Budget, expenses []entity.Expense, month time.Time) []BudgetLine {
	key := timeutil.MonthKey(month)
	spent := map[string]float64{}
	for _, e := range MonthExpenses(expenses, month) {
		spent[e.Category] += e.Amount
	}
	var out []BudgetLine
	for _, b := range budgets {
		if b.Month != key {
			continue
		}
		line := BudgetLine{
			BudgetID: b.ID,
			Category: b.Category,
			Budget:   b.Amount,
			Spent:    spent[b.Category],
		}
		if b.Amount > 0 {
			line.Percent = line.Spent / b.Amount * 100
		}
		switch {
		case line.Percent > 100:
			line.Status = BudgetOver
		case line.Percent > 80:
			line.Status = BudgetWarning
		default:
			line.Status = BudgetOK
		}
		out = append(out, line)
	}
	return out
}

// FinancialGoalProgress returns current/target as a percentage. It is not
// capped, so overfunded goals report more than 100.
func FinancialGoalProgress(g entity.FinancialGoal) float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}
