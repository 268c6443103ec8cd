package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/link"
	"tableflip.dev/mindgrid/pkg/state"
	"tableflip.dev/mindgrid/pkg/timeutil"
)

// Dashboard prints the analytics summary, trend and module time.
func (pp *PrettyPrint) Dashboard(d app.Dashboard) {
	bold := color.New(color.Bold)
	s := d.Summary

	pp.Title(fmt.Sprintf("Analytics (%s)", s.Range))
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Productivity", bold.Sprintf("%d", s.ProductivityScore), Bar(float64(s.ProductivityScore), 20))
	tbl.AddRow("Tasks", fmt.Sprintf("%d/%d", s.CompletedTasks, s.TotalTasks), fmt.Sprintf("%.0f%%", s.TaskRate))
	tbl.AddRow("Habits today", fmt.Sprintf("%d/%d", s.HabitsDoneToday, s.TotalHabits), fmt.Sprintf("%.0f%%", s.HabitRate))
	tbl.AddRow("Goals", fmt.Sprintf("%d/%d", s.CompletedGoals, s.TotalGoals), fmt.Sprintf("%.0f%%", s.GoalRate))
	tbl.AddRow("Avg streak", fmt.Sprintf("%.1f days", s.AvgHabitStreak), "")
	tbl.AddRow("Avg progress", fmt.Sprintf("%.0f%%", s.AvgGoalProgress), "")
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	if len(d.Trend) > 0 {
		pp.Title("Trend")
		tbl = uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint("Day"), bold.Sprint("Tasks"), bold.Sprint("Habits"), bold.Sprint("Goals"))
		for _, p := range d.Trend {
			if p.Tasks+p.Habits+p.Goals == 0 && len(d.Trend) > 31 {
				continue
			}
			tbl.AddRow(p.Label, p.Tasks, p.Habits, p.Goals)
		}
		tbl.RightAlign(1)
		tbl.RightAlign(2)
		tbl.RightAlign(3)
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}

	if len(d.ModuleTime) > 0 {
		pp.Title("Time by module")
		tbl = uitable.New()
		tbl.Separator = "  "
		for _, m := range d.ModuleTime {
			tbl.AddRow(m.Module, timeutil.FormatWindow(m.Duration), fmt.Sprintf("%.0f%%", m.Share))
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
}

// Report prints finished items grouped by module.
func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	header := fmt.Sprintf("Done in the last %s", label)
	pp.TitleWithCount(header, result.Total)
	f := color.New(color.Faint)
	for _, section := range result.Sections {
		_, _ = color.New(color.Bold).Fprintln(pp.out(), section.Module)
		for _, item := range section.Entries {
			pp.id(item.ID)
			_, _ = f.Fprintf(pp.out(), "  %s  ", item.CompletedAt.Local().Format("Mon Jan 2 15:04"))
			_, _ = fmt.Fprintln(pp.out(), item.Title)
		}
	}
	pp.NewLine()
}

// Agenda prints what needs attention today.
func (pp *PrettyPrint) Agenda(st state.State, a app.Agenda) {
	if len(a.Overdue) > 0 {
		_, _ = color.New(color.FgRed, color.Bold).Fprintln(pp.out(), "Overdue")
		pp.Tasks(a.Overdue...)
	}
	pp.Title("Due today")
	pp.Tasks(a.DueToday...)
	pp.Title("Today")
	pp.Events(st, a.Events...)
	if len(a.Reminders) > 0 {
		pp.Title("Reminders")
		for _, r := range a.Reminders {
			pp.id(r.Event.ID)
			_, _ = fmt.Fprintf(pp.out(), "%s  %s\n", r.FireAt.Local().Format("15:04"), r.Event.Title)
		}
		pp.NewLine()
	}
	if len(a.AtRisk) > 0 {
		_, _ = color.New(color.FgYellow, color.Bold).Fprintln(pp.out(), "Streaks at risk")
		pp.Habits(a.AtRisk...)
	}
}

// Findings prints link integrity problems.
func (pp *PrettyPrint) Findings(findings []link.Finding, repaired bool) {
	if len(findings) == 0 {
		_, _ = color.New(color.FgGreen).Fprintln(pp.out(), "links ok")
		return
	}
	verb := "found"
	if repaired {
		verb = "repaired"
	}
	pp.TitleWithCount(fmt.Sprintf("Link problems %s", verb), len(findings))
	for _, f := range findings {
		pp.id(f.ID)
		_, _ = color.New(color.FgYellow).Fprintln(pp.out(), f.String())
	}
	pp.NewLine()
}

// Activity prints the daily activity log, newest last.
func (pp *PrettyPrint) Activity(log []state.Activity) {
	if len(log) == 0 {
		pp.none()
		return
	}
	f := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, a := range log {
		count := ""
		if a.Count > 0 {
			count = fmt.Sprintf("x%d", a.Count)
		}
		tbl.AddRow(f.Sprint(a.At.Local().Format("Jan 02 15:04")), a.Module, a.Action, count)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}
