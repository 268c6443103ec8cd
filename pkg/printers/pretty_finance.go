package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mindgrid/pkg/analytics"
	"tableflip.dev/mindgrid/pkg/app"
)

func money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

// Finance prints one month of the finance view.
func (pp *PrettyPrint) Finance(sum app.FinanceSummary) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	pp.Title(sum.Totals.Month)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Income", green.Sprint(money(sum.Totals.Income)))
	tbl.AddRow("Expenses", red.Sprint(money(sum.Totals.Expenses)))
	net := green
	if sum.Totals.Net < 0 {
		net = red
	}
	tbl.AddRow(bold.Sprint("Net"), net.Sprint(money(sum.Totals.Net)))
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	if len(sum.Budgets) > 0 {
		pp.Title("Budgets")
		tbl = uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint("Category"), bold.Sprint("Spent"), bold.Sprint("Budget"), bold.Sprint("Used"), "")
		for _, b := range sum.Budgets {
			c := green
			switch b.Status {
			case analytics.BudgetOver:
				c = red
			case analytics.BudgetWarning:
				c = color.New(color.FgYellow)
			}
			tbl.AddRow(b.Category, money(b.Spent), money(b.Budget), c.Sprintf("%.1f%%", b.Percent), Bar(b.Percent, 10))
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}

	if len(sum.Categories) > 0 {
		pp.Title("By category")
		tbl = uitable.New()
		tbl.Separator = "  "
		for _, c := range sum.Categories {
			tbl.AddRow(c.Category, money(c.Amount))
		}
		tbl.RightAlign(1)
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}

	if len(sum.Goals) > 0 {
		pp.Title("Savings goals")
		tbl = uitable.New()
		tbl.Separator = "  "
		for _, g := range sum.Goals {
			row := []interface{}{g.Goal.Title, fmt.Sprintf("%s / %s", money(g.Goal.CurrentAmount), money(g.Goal.TargetAmount)), Bar(g.Percent, 10), fmt.Sprintf("%.1f%%", g.Percent)}
			if pp.ShowID {
				row = append([]interface{}{g.Goal.ID}, row...)
			}
			tbl.AddRow(row...)
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
}

// Ledger lists the month's expenses and income.
func (pp *PrettyPrint) Ledger(sum app.FinanceSummary) {
	f := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range sum.Expenses {
		row := []interface{}{e.Date.Format("Jan 02"), e.Description, f.Sprint(e.Category), color.New(color.FgRed).Sprint(money(-e.Amount))}
		if pp.ShowID {
			row = append([]interface{}{e.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	for _, i := range sum.Income {
		row := []interface{}{i.Date.Format("Jan 02"), i.Description, f.Sprint(i.Source), color.New(color.FgGreen).Sprint(money(i.Amount))}
		if pp.ShowID {
			row = append([]interface{}{i.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	if len(tbl.Rows) == 0 {
		pp.none()
		return
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}
