package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/mindgrid/pkg/entity"
)

// Wednesday.
var now = time.Date(2025, time.March, 5, 14, 0, 0, 0, time.Local)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil, nil, now, Week)
	assert.Zero(t, s.TaskRate)
	assert.Zero(t, s.HabitRate)
	assert.Zero(t, s.GoalRate)
	assert.Zero(t, s.AvgHabitStreak)
	assert.Zero(t, s.ProductivityScore)
}

func TestSummarizeAllDone(t *testing.T) {
	tasks := []entity.Task{{ID: "1", Completed: true}, {ID: "2", Completed: true}}
	habits := []entity.Habit{{ID: "h", CurrentStreak: 4, LastCompleted: entity.Ptr(now.Add(-time.Hour))}}
	goals := []entity.Goal{{ID: "g", Status: entity.GoalCompleted, Progress: 100}}

	s := Summarize(tasks, habits, goals, now, Month)
	assert.Equal(t, 100.0, s.TaskRate)
	assert.Equal(t, 100.0, s.HabitRate)
	assert.Equal(t, 100.0, s.GoalRate)
	assert.Equal(t, 4.0, s.AvgHabitStreak)
	assert.Equal(t, 100.0, s.AvgGoalProgress)
	assert.Equal(t, 100, s.ProductivityScore)
}

func TestSummarizeMixed(t *testing.T) {
	tasks := []entity.Task{{ID: "1", Completed: true}, {ID: "2"}, {ID: "3"}, {ID: "4"}}
	habits := []entity.Habit{
		{ID: "a", CurrentStreak: 2, LastCompleted: entity.Ptr(now)},
		{ID: "b", CurrentStreak: 1, LastCompleted: entity.Ptr(now.AddDate(0, 0, -1))},
	}
	goals := []entity.Goal{{ID: "g", Status: entity.GoalActive, Progress: 40}}

	s := Summarize(tasks, habits, goals, now, Week)
	assert.Equal(t, 25.0, s.TaskRate)
	assert.Equal(t, 50.0, s.HabitRate)
	assert.Zero(t, s.GoalRate)
	assert.Equal(t, 1.5, s.AvgHabitStreak)
	assert.Equal(t, 40.0, s.AvgGoalProgress)
	// 25*0.4 + 50*0.3 = 25
	assert.Equal(t, 25, s.ProductivityScore)
}

func TestProductivityScoreRounds(t *testing.T) {
	assert.Equal(t, 33, ProductivityScore(33.3333, 33.3333, 33.3333))
	assert.Equal(t, 67, ProductivityScore(66.6667, 66.6667, 66.6667))
}

func TestRangeDays(t *testing.T) {
	assert.Equal(t, 7, Week.Days(now))
	assert.Equal(t, 31, Month.Days(now))
	assert.Equal(t, 91, Quarter.Days(now))

	start, end := Week.Bounds(now)
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, time.Saturday, end.Weekday())
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("")
	require.NoError(t, err)
	assert.Equal(t, Week, r)

	r, err = ParseRange("Quarter")
	require.NoError(t, err)
	assert.Equal(t, Quarter, r)

	_, err = ParseRange("year")
	assert.Error(t, err)
}

func TestTrendCountsRealHistory(t *testing.T) {
	monday := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.Local)
	tasks := []entity.Task{
		{ID: "1", Completed: true, CompletedAt: entity.Ptr(monday)},
		{ID: "2", Completed: true, CompletedAt: entity.Ptr(monday.Add(2 * time.Hour))},
		{ID: "3", Completed: false},
		{ID: "4", Completed: true, CompletedAt: entity.Ptr(monday.AddDate(0, 0, -30))},
	}
	habits := []entity.Habit{{ID: "h", Completions: []entity.Timestamp{
		entity.At(monday), entity.At(now),
	}}}
	goals := []entity.Goal{{ID: "g", Status: entity.GoalCompleted, CompletedAt: entity.Ptr(now)}}

	points := Trend(tasks, habits, goals, now, Week)
	require.Len(t, points, 7)
	assert.Equal(t, "Mar 02", points[0].Label)
	assert.Equal(t, "Mar 08", points[6].Label)

	assert.Equal(t, 2, points[1].Tasks)
	assert.Equal(t, 1, points[1].Habits)
	assert.Equal(t, 1, points[3].Habits)
	assert.Equal(t, 1, points[3].Goals)

	total := 0
	for _, p := range points {
		total += p.Tasks
	}
	assert.Equal(t, 2, total)
}

func TestModuleTimes(t *testing.T) {
	got := ModuleTimes(map[string]time.Duration{
		"notes": time.Minute,
		"tasks": 3 * time.Minute,
	})
	require.Len(t, got, 2)
	assert.Equal(t, "tasks", got[0].Module)
	assert.Equal(t, 75.0, got[0].Share)
	assert.Equal(t, 25.0, got[1].Share)

	assert.Empty(t, ModuleTimes(nil))
}

func TestFinanceMonth(t *testing.T) {
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	expenses := []entity.Expense{
		{ID: "e1", Amount: 50, Category: "Food", Date: entity.At(march.AddDate(0, 0, 3))},
		{ID: "e2", Amount: 40, Category: "Food", Date: entity.At(march.AddDate(0, 0, 10))},
		{ID: "e3", Amount: 20, Category: "Bills", Date: entity.At(march.AddDate(0, 0, 20))},
		{ID: "e4", Amount: 999, Category: "Food", Date: entity.At(march.AddDate(0, -1, 0))},
	}
	income := []entity.Income{
		{ID: "i1", Amount: 300, Source: "Salary", Date: entity.At(march.AddDate(0, 0, 1))},
		{ID: "i2", Amount: 100, Source: "Salary", Date: entity.At(march.AddDate(0, 1, 0))},
	}

	totals := MonthTotals(expenses, income, march)
	assert.Equal(t, "2025-03", totals.Month)
	assert.Equal(t, 110.0, totals.Expenses)
	assert.Equal(t, 300.0, totals.Income)
	assert.Equal(t, 190.0, totals.Net)

	byCat := ExpensesByCategory(expenses, march)
	require.Len(t, byCat, 2)
	assert.Equal(t, CategoryTotal{Category: "Food", Amount: 90}, byCat[0])

	budgets := []entity.Budget{
		{ID: "b1", Category: "Food", Amount: 100, Month: "2025-03"},
		{ID: "b2", Category: "Bills", Amount: 10, Month: "2025-03"},
		{ID: "b3", Category: "Fun", Amount: 10, Month: "2025-03"},
		{ID: "b4", Category: "Food", Amount: 100, Month: "2025-02"},
	}
	lines := BudgetVsActual(budgets, expenses, march)
	require.Len(t, lines, 3)
	assert.InDelta(t, 90.0, lines[0].Percent, 1e-9)
	assert.Equal(t, BudgetWarning, lines[0].Status)
	assert.Equal(t, BudgetOver, lines[1].Status)
	assert.Equal(t, 200.0, lines[1].Percent)
	assert.Equal(t, BudgetOK, lines[2].Status)
	assert.Zero(t, lines[2].Spent)
}

func TestFinancialGoalProgress(t *testing.T) {
	assert.Equal(t, 25.0, FinancialGoalProgress(entity.FinancialGoal{TargetAmount: 400, CurrentAmount: 100}))
	assert.Equal(t, 150.0, FinancialGoalProgress(entity.FinancialGoal{TargetAmount: 100, CurrentAmount: 150}))
	assert.Zero(t, FinancialGoalProgress(entity.FinancialGoal{}))
}
