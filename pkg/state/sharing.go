package state

import "reflect"

// Changes reports which branches differ between two states by identity. A
// branch that was not touched by the reducer compares equal.
type Changes struct {
	Tasks          bool
	Habits         bool
	Goals          bool
	Notes          bool
	Events         bool
	Highlights     bool
	Budgets        bool
	Expenses       bool
	Income         bool
	FinancialGoals bool
	Meta           bool
}

// Any reports whether anything changed.
func (c Changes) Any() bool {
	return c.Tasks || c.Habits || c.Goals || c.Notes || c.Events || c.Highlights ||
		c.Budgets || c.Expenses || c.Income || c.FinancialGoals || c.Meta
}

// Diff compares prev and next branch by branch without looking at elements.
func Diff(prev, next State) Changes {
	return Changes{
		Tasks:          !same(prev.Tasks, next.Tasks),
		Habits:         !same(prev.Habits, next.Habits),
		Goals:          !same(prev.Goals, next.Goals),
		Notes:          !same(prev.Notes, next.Notes),
		Events:         !same(prev.Events, next.Events),
		Highlights:     !same(prev.Highlights, next.Highlights),
		Budgets:        !same(prev.Finance.Budgets, next.Finance.Budgets),
		Expenses:       !same(prev.Finance.Expenses, next.Finance.Expenses),
		Income:         !same(prev.Finance.Income, next.Finance.Income),
		FinancialGoals: !same(prev.Finance.FinancialGoals, next.Finance.FinancialGoals),
		Meta: prev.DarkMode != next.DarkMode ||
			!same(prev.Finance.ExpenseCategories, next.Finance.ExpenseCategories) ||
			!same(prev.Analytics.DailyActivity, next.Analytics.DailyActivity) ||
			!sameMap(prev.Analytics.ModuleTime, next.Analytics.ModuleTime),
	}
}

// same reports whether a and b share the same backing array and length.
func same[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

func sameMap[K comparable, V any](a, b map[K]V) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
