package app

import (
	"context"
	"strings"
	"time"

	"tableflip.dev/mindgrid/pkg/analytics"
	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/link"
	"tableflip.dev/mindgrid/pkg/state"
	"tableflip.dev/mindgrid/pkg/timeutil"
)

// DefaultFinancialGoalCategory is used when a savings goal names none.
const DefaultFinancialGoalCategory = "savings"

type BudgetInput struct {
	Category string  `json:"category" validate:"required"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	// Month is YYYY-MM; empty means the current month.
	Month string `json:"month" validate:"omitempty,month"`
}

type ExpenseInput struct {
	Description string    `json:"description" validate:"required"`
	Amount      float64   `json:"amount" validate:"gt=0"`
	Category    string    `json:"category" validate:"required"`
	Date        time.Time `json:"date"`
}

type IncomeInput struct {
	Description string    `json:"description" validate:"required"`
	Amount      float64   `json:"amount" validate:"gt=0"`
	Source      string    `json:"source" validate:"required"`
	Date        time.Time `json:"date"`
}

type FinancialGoalInput struct {
	Title         string     `json:"title" validate:"required"`
	TargetAmount  float64    `json:"targetAmount" validate:"gt=0"`
	CurrentAmount float64    `json:"currentAmount" validate:"gte=0"`
	TargetDate    *time.Time `json:"targetDate"`
	Category      string     `json:"category"`
}

func parseMonthKey(raw string) (time.Time, error) {
	return time.ParseInLocation(timeutil.MonthLayout, raw, time.Local)
}

func (s *Service) AddBudget(ctx context.Context, in BudgetInput) (entity.Budget, error) {
	in.Category = strings.TrimSpace(in.Category)
	in.Month = strings.TrimSpace(in.Month)
	if err := check(in); err != nil {
		return entity.Budget{}, err
	}
	now := s.now()
	if in.Month == "" {
		in.Month = timeutil.MonthKey(now)
	}
	b := entity.Budget{
		ID:        entity.NewID(),
		Category:  in.Category,
		Amount:    in.Amount,
		Month:     in.Month,
		CreatedAt: entity.At(now),
	}
	if _, err := s.dispatch(state.AddBudget{Budget: b}); err != nil {
		return b, err
	}
	return b, nil
}

// AddExpense records spending. A zero date means now.
func (s *Service) AddExpense(ctx context.Context, in ExpenseInput) (entity.Expense, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if err := check(in); err != nil {
		return entity.Expense{}, err
	}
	now := s.now()
	if in.Date.IsZero() {
		in.Date = now
	}
	e := entity.Expense{
		ID:          entity.NewID(),
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        entity.At(in.Date),
		CreatedAt:   entity.At(now),
	}
	if _, err := s.dispatch(state.AddExpense{Expense: e}); err != nil {
		return e, err
	}
	return e, nil
}

func (s *Service) AddIncome(ctx context.Context, in IncomeInput) (entity.Income, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Source = strings.TrimSpace(in.Source)
	if err := check(in); err != nil {
		return entity.Income{}, err
	}
	now := s.now()
	if in.Date.IsZero() {
		in.Date = now
	}
	i := entity.Income{
		ID:          entity.NewID(),
		Description: in.Description,
		Amount:      in.Amount,
		Source:      in.Source,
		Date:        entity.At(in.Date),
		CreatedAt:   entity.At(now),
	}
	if _, err := s.dispatch(state.AddIncome{Income: i}); err != nil {
		return i, err
	}
	return i, nil
}

func (s *Service) AddFinancialGoal(ctx context.Context, in FinancialGoalInput) (entity.FinancialGoal, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	if err := check(in); err != nil {
		return entity.FinancialGoal{}, err
	}
	if in.Category == "" {
		in.Category = DefaultFinancialGoalCategory
	}
	g := entity.FinancialGoal{
		ID:            entity.NewID(),
		Title:         in.Title,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		TargetDate:    timestampPtr(in.TargetDate),
		Category:      in.Category,
		CreatedAt:     entity.At(s.now()),
	}
	if _, err := s.dispatch(state.AddFinancialGoal{Goal: g}); err != nil {
		return g, err
	}
	return g, nil
}

// Contribute adds amount (which may be negative) to a savings goal. The
// balance never drops below zero.
func (s *Service) Contribute(ctx context.Context, id string, amount float64) (entity.FinancialGoal, error) {
	st, err := s.State()
	if err != nil {
		return entity.FinancialGoal{}, err
	}
	g, ok := st.FinancialGoal(id)
	if !ok {
		return entity.FinancialGoal{}, notFound("financial goal", id)
	}
	g.CurrentAmount += amount
	if g.CurrentAmount < 0 {
		g.CurrentAmount = 0
	}
	if _, err := s.dispatch(state.UpdateFinancialGoal{Goal: g}); err != nil {
		return g, err
	}
	return g, nil
}

// FinanceRecord names what DeleteFinance removes.
type FinanceRecord string

const (
	RecordBudget  FinanceRecord = "budget"
	RecordExpense FinanceRecord = "expense"
	RecordIncome  FinanceRecord = "income"
	RecordGoal    FinanceRecord = "goal"
)

func (s *Service) DeleteFinance(ctx context.Context, record FinanceRecord, id string) error {
	switch record {
	case RecordBudget:
		_, err := s.dispatchExisting(state.DeleteBudget{ID: id}, func(st state.State) bool {
			_, ok := st.Budget(id)
			return ok
		}, "budget", id)
		return err
	case RecordExpense:
		_, err := s.dispatchExisting(state.DeleteExpense{ID: id}, func(st state.State) bool {
			_, ok := st.Expense(id)
			return ok
		}, "expense", id)
		return err
	case RecordIncome:
		_, err := s.dispatchExisting(state.DeleteIncome{ID: id}, func(st state.State) bool {
			_, ok := st.Income(id)
			return ok
		}, "income", id)
		return err
	case RecordGoal:
		_, err := s.dispatchExisting(state.DeleteFinancialGoal{ID: id}, func(st state.State) bool {
			_, ok := st.FinancialGoal(id)
			return ok
		}, "financial goal", id)
		return err
	}
	return invalid("record", "must be one of budget, expense, income, goal")
}

// FinanceSummary is one month of the finance view.
type FinanceSummary struct {
	Totals     analytics.Totals          `json:"totals"`
	Budgets    []analytics.BudgetLine    `json:"budgets"`
	Categories []analytics.CategoryTotal `json:"categories"`
	Expenses   []entity.Expense          `json:"expenses"`
	Income     []entity.Income           `json:"income"`
	Goals      []FinancialGoalProgress   `json:"goals"`
}

type FinancialGoalProgress struct {
	Goal    entity.FinancialGoal `json:"goal"`
	Percent float64              `json:"percent"`
}

// Finance summarises month. A zero month means the current one.
func (s *Service) Finance(ctx context.Context, month time.Time) (FinanceSummary, error) {
	st, err := s.State()
	if err != nil {
		return FinanceSummary{}, err
	}
	if month.IsZero() {
		month = s.now()
	}
	f := st.Finance
	out := FinanceSummary{
		Totals:     analytics.MonthTotals(f.Expenses, f.Income, month),
		Budgets:    analytics.BudgetVsActual(f.Budgets, f.Expenses, month),
		Categories: analytics.ExpensesByCategory(f.Expenses, month),
		Expenses:   analytics.MonthExpenses(f.Expenses, month),
		Income:     analytics.MonthIncome(f.Income, month),
	}
	for _, g := range f.FinancialGoals {
		out.Goals = append(out.Goals, FinancialGoalProgress{Goal: g, Percent: analytics.FinancialGoalProgress(g)})
	}
	return out, nil
}

// ExpenseCategories returns the configured categories plus any used by an
// expense.
func (s *Service) ExpenseCategories(ctx context.Context) ([]string, error) {
	st, err := s.State()
	if err != nil {
		return nil, err
	}
	out := st.Finance.ExpenseCategories
	for _, e := range st.Finance.Expenses {
		out, _ = link.Add(out, e.Category)
	}
	return out, nil
}
