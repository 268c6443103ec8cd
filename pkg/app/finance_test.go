package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/mindgrid/pkg/analytics"
)

func TestFinanceSummary(t *testing.T) {
	svc, now := newTestService()
	ctx := context.Background()

	if _, err := svc.AddBudget(ctx, BudgetInput{Category: "Food", Amount: 200}); err != nil {
		t.Fatalf("budget: %v", err)
	}
	if _, err := svc.AddExpense(ctx, ExpenseInput{Description: "Groceries", Amount: 50, Category: "Food"}); err != nil {
		t.Fatalf("expense: %v", err)
	}
	if _, err := svc.AddExpense(ctx, ExpenseInput{Description: "Old", Amount: 70, Category: "Food", Date: now.AddDate(0, -2, 0)}); err != nil {
		t.Fatalf("expense: %v", err)
	}
	if _, err := svc.AddIncome(ctx, IncomeInput{Description: "Pay", Amount: 1000, Source: "Salary"}); err != nil {
		t.Fatalf("income: %v", err)
	}
	g, err := svc.AddFinancialGoal(ctx, FinancialGoalInput{Title: "Trip", TargetAmount: 500})
	if err != nil {
		t.Fatalf("goal: %v", err)
	}
	if g.Category != DefaultFinancialGoalCategory {
		t.Fatalf("expected default category, got %q", g.Category)
	}
	if _, err := svc.Contribute(ctx, g.ID, 125); err != nil {
		t.Fatalf("contribute: %v", err)
	}

	sum, err := svc.Finance(ctx, time.Time{})
	if err != nil {
		t.Fatalf("finance: %v", err)
	}
	if sum.Totals.Month != "2025-03" || sum.Totals.Expenses != 50 || sum.Totals.Net != 950 {
		t.Fatalf("unexpected totals %+v", sum.Totals)
	}
	if len(sum.Budgets) != 1 || sum.Budgets[0].Percent != 25 || sum.Budgets[0].Status != analytics.BudgetOK {
		t.Fatalf("unexpected budgets %+v", sum.Budgets)
	}
	if len(sum.Goals) != 1 || sum.Goals[0].Percent != 25 {
		t.Fatalf("unexpected goals %+v", sum.Goals)
	}
	if len(sum.Expenses) != 1 {
		t.Fatalf("expected only this month's expenses, got %d", len(sum.Expenses))
	}
}

func TestFinanceValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	var verr *ValidationError

	if _, err := svc.AddBudget(ctx, BudgetInput{Category: "Food"}); !errors.As(err, &verr) || verr.Fields["amount"] == "" {
		t.Fatalf("expected amount error, got %v", err)
	}
	if _, err := svc.AddBudget(ctx, BudgetInput{Category: "Food", Amount: 1, Month: "March"}); !errors.As(err, &verr) || verr.Fields["month"] == "" {
		t.Fatalf("expected month error, got %v", err)
	}
	if _, err := svc.AddExpense(ctx, ExpenseInput{Description: "x", Amount: 1}); !errors.As(err, &verr) || verr.Fields["category"] == "" {
		t.Fatalf("expected category error, got %v", err)
	}
	if _, err := svc.AddIncome(ctx, IncomeInput{Description: "x", Amount: 1}); !errors.As(err, &verr) || verr.Fields["source"] == "" {
		t.Fatalf("expected source error, got %v", err)
	}
	if err := svc.DeleteFinance(ctx, RecordExpense, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalyticsAndReport(t *testing.T) {
	svc, now := newTestService()
	ctx := context.Background()

	task, _ := svc.AddTask(ctx, TaskInput{Title: "a"})
	_, _ = svc.AddTask(ctx, TaskInput{Title: "b"})
	if _, err := svc.ToggleTask(ctx, task.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	h, _ := svc.AddHabit(ctx, HabitInput{Name: "walk"})
	if _, err := svc.CompleteHabit(ctx, h.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := svc.TrackModuleTime(ctx, "Tasks", 5*time.Minute); err != nil {
		t.Fatalf("track: %v", err)
	}
	if err := svc.TrackModuleTime(ctx, "tasks", 0); err == nil {
		t.Fatalf("expected duration validation error")
	}

	dash, err := svc.Analytics(ctx, analytics.Week)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if dash.Summary.TaskRate != 50 || dash.Summary.HabitRate != 100 {
		t.Fatalf("unexpected summary %+v", dash.Summary)
	}
	// 50*0.4 + 100*0.3 = 50
	if dash.Summary.ProductivityScore != 50 {
		t.Fatalf("unexpected productivity %d", dash.Summary.ProductivityScore)
	}
	if len(dash.Trend) != 7 || dash.Trend[3].Tasks != 1 || dash.Trend[3].Habits != 1 {
		t.Fatalf("unexpected trend %+v", dash.Trend)
	}
	if len(dash.ModuleTime) != 1 || dash.ModuleTime[0].Module != "tasks" {
		t.Fatalf("unexpected module time %+v", dash.ModuleTime)
	}

	report, err := svc.Report(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Total != 2 || len(report.Sections) != 2 || report.Sections[0].Module != "habits" {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestActivityLog(t *testing.T) {
	svc, now := newTestService()
	ctx := context.Background()
	for i := 0; i < 35; i++ {
		*now = now.Add(time.Minute)
		if _, err := svc.LogActivity(ctx, "notes", "edit", 1); err != nil {
			t.Fatalf("log: %v", err)
		}
	}
	all, _ := svc.Activity(ctx, time.Time{})
	if len(all) != 30 {
		t.Fatalf("expected capped log, got %d", len(all))
	}
	recent, _ := svc.Activity(ctx, now.Add(-2*time.Minute))
	if len(recent) != 3 {
		t.Fatalf("expected 3 recent entries, got %d", len(recent))
	}
	if _, err := svc.LogActivity(ctx, "", "edit", 1); err == nil {
		t.Fatalf("expected module validation error")
	}
}

func TestAuditAndRepair(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	n, _ := svc.AddNote(ctx, NoteInput{Title: "n", Content: "c"})
	// Reducer link actions do not check existence, so this leaves a dangling id.
	if _, err := svc.dispatch(linkMissingTask(n.ID)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	findings, err := svc.Audit(ctx)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %v", findings)
	}
	if _, err := svc.Repair(ctx); err != nil {
		t.Fatalf("repair: %v", err)
	}
	if findings, _ = svc.Audit(ctx); len(findings) != 0 {
		t.Fatalf("expected clean audit, got %v", findings)
	}
}
