// Package state holds the MindGrid state tree and the reducer that evolves it.
package state

import (
	"time"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/link"
)

// DailyActivityLimit caps Analytics.DailyActivity; older entries are dropped.
const DailyActivityLimit = 30

// State is the whole store. Values are replaced, never mutated: a reducer step
// copies only the branch it changes and shares the rest.
type State struct {
	Tasks      []entity.Task      `json:"tasks"`
	Habits     []entity.Habit     `json:"habits"`
	Goals      []entity.Goal      `json:"goals"`
	Notes      []entity.Note      `json:"notes"`
	Events     []entity.Event     `json:"events"`
	Highlights []entity.Highlight `json:"highlights"`
	Finance    Finance            `json:"finance"`
	DarkMode   bool               `json:"darkMode"`
	Analytics  Analytics          `json:"analytics"`
}

// Finance groups the money tracking collections.
type Finance struct {
	Budgets           []entity.Budget        `json:"budgets"`
	Expenses          []entity.Expense       `json:"expenses"`
	Income            []entity.Income        `json:"income"`
	FinancialGoals    []entity.FinancialGoal `json:"financialGoals"`
	ExpenseCategories []string               `json:"expenseCategories"`
}

// Analytics holds usage counters fed by the views.
type Analytics struct {
	ModuleTime    map[string]time.Duration `json:"moduleTime"`
	DailyActivity []Activity               `json:"dailyActivity"`
}

// Activity is one entry in the daily activity log.
type Activity struct {
	At     entity.Timestamp `json:"at"`
	Module string           `json:"module"`
	Action string           `json:"action"`
	Count  int              `json:"count,omitempty"`
}

// Initial returns an empty store seeded with the default expense categories.
func Initial() State {
	return State{
		Finance: Finance{
			ExpenseCategories: entity.DefaultExpenseCategories(),
		},
	}
}

// Graph exposes the linked collections to the link package.
func (s State) Graph() link.Graph {
	return link.Graph{
		Tasks:      s.Tasks,
		Goals:      s.Goals,
		Notes:      s.Notes,
		Events:     s.Events,
		Highlights: s.Highlights,
	}
}

func (s State) withGraph(g link.Graph) State {
	s.Tasks = g.Tasks
	s.Goals = g.Goals
	s.Notes = g.Notes
	s.Events = g.Events
	s.Highlights = g.Highlights
	return s
}

// Task looks up a task by id.
func (s State) Task(id string) (entity.Task, bool) {
	return find(s.Tasks, id, taskID)
}

func (s State) Habit(id string) (entity.Habit, bool) {
	return find(s.Habits, id, habitID)
}

func (s State) Goal(id string) (entity.Goal, bool) {
	return find(s.Goals, id, goalID)
}

func (s State) Note(id string) (entity.Note, bool) {
	return find(s.Notes, id, noteID)
}

func (s State) Event(id string) (entity.Event, bool) {
	return find(s.Events, id, eventID)
}

func (s State) Highlight(id string) (entity.Highlight, bool) {
	return find(s.Highlights, id, highlightID)
}

func (s State) Budget(id string) (entity.Budget, bool) {
	return find(s.Finance.Budgets, id, budgetID)
}

func (s State) Expense(id string) (entity.Expense, bool) {
	return find(s.Finance.Expenses, id, expenseID)
}

func (s State) Income(id string) (entity.Income, bool) {
	return find(s.Finance.Income, id, incomeID)
}

func (s State) FinancialGoal(id string) (entity.FinancialGoal, bool) {
	return find(s.Finance.FinancialGoals, id, financialGoalID)
}
