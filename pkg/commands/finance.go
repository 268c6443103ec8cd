package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/commands/options"
	"tableflip.dev/mindgrid/pkg/timeutil"
)

func addFinance(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "finance",
		Aliases: []string{"money", "f"},
		Short:   "Budgets, expenses, income and savings goals",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	addFinanceBudget(cmd)
	addFinanceEntry(cmd, "expense")
	addFinanceEntry(cmd, "income")
	addFinanceGoal(cmd)
	addFinanceContribute(cmd)
	addFinanceSummary(cmd, "summary", "Show income, spending and budgets for a month")
	addFinanceSummary(cmd, "ledger", "List every expense and income of a month")
	addFinanceCategories(cmd)
	addFinanceDelete(cmd)

	topLevel.AddCommand(cmd)
}

func parseAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(raw), "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	return v, nil
}

func addFinanceBudget(topLevel *cobra.Command) {
	in := app.BudgetInput{}

	cmd := &cobra.Command{
		Use:   "budget <category> <amount>",
		Short: "Set a monthly budget for a category",
		Example: `
mindgrid finance budget Food 400
mindgrid finance budget Rent 1500 --month 2025-04
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			in.Category = args[0]
			var err error
			if in.Amount, err = parseAmount(args[1]); err != nil {
				return oo.HandleError(err)
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			b, err := svc.AddBudget(cmd.Context(), in)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(b, func() { done("budget %s %s: %.2f for %s", b.ID, b.Category, b.Amount, b.Month) })
		},
	}

	cmd.Flags().StringVar(&in.Month, "month", "", "Month as YYYY-MM, defaults to this month.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

// addFinanceEntry adds the expense or income command, which share a shape.
func addFinanceEntry(topLevel *cobra.Command, kind string) {
	on := &options.OnOptions{}
	var group string

	groupFlag, groupUsage := "category", "Expense category."
	example := `
mindgrid finance expense 12.50 lunch with Sam --category Food
`
	if kind == "income" {
		groupFlag, groupUsage = "source", "Where the money came from."
		example = `
mindgrid finance income 3200 march salary --source Employer --on 2025-03-01
`
	}

	cmd := &cobra.Command{
		Use:     kind + " <amount> <description>",
		Short:   "Record " + map[string]string{"expense": "an expense", "income": "income"}[kind],
		Example: example,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires an amount and a description")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			amount, err := parseAmount(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			description := strings.Join(args[1:], " ")
			day, err := on.GetOn(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			if kind == "income" {
				inc, err := svc.AddIncome(cmd.Context(), app.IncomeInput{Description: description, Amount: amount, Source: group, Date: day})
				if err != nil {
					return oo.HandleError(err)
				}
				return emit(inc, func() { done("income %s: %.2f from %s", inc.ID, inc.Amount, inc.Source) })
			}
			exp, err := svc.AddExpense(cmd.Context(), app.ExpenseInput{Description: description, Amount: amount, Category: group, Date: day})
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(exp, func() { done("expense %s: %.2f on %s", exp.ID, exp.Amount, exp.Category) })
		},
	}

	cmd.Flags().StringVarP(&group, groupFlag, groupFlag[:1], "", groupUsage)
	if kind == "expense" {
		_ = cmd.RegisterFlagCompletionFunc(groupFlag, func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return expenseCategoryCompletions(cmd), cobra.ShellCompDirectiveNoFileComp
		})
	}
	options.AddOnArgs(cmd, on)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addFinanceGoal(topLevel *cobra.Command) {
	do := &options.DueOptions{}
	in := app.FinancialGoalInput{}

	cmd := &cobra.Command{
		Use:   "goal <target> <title>",
		Short: "Add a savings goal",
		Example: `
mindgrid finance goal 5000 emergency fund --current 1200 --by 2025-12-31
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a target amount and a title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var err error
			if in.TargetAmount, err = parseAmount(args[0]); err != nil {
				return oo.HandleError(err)
			}
			in.Title = strings.Join(args[1:], " ")
			if in.TargetDate, err = do.GetDue(time.Now()); err != nil {
				return oo.HandleError(err)
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			g, err := svc.AddFinancialGoal(cmd.Context(), in)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(g, func() { done("goal %s %s: %.2f of %.2f", g.ID, g.Title, g.CurrentAmount, g.TargetAmount) })
		},
	}

	cmd.Flags().Float64Var(&in.CurrentAmount, "current", 0, "Amount already saved.")
	cmd.Flags().StringVarP(&in.Category, "category", "c", app.DefaultFinancialGoalCategory, "Goal category.")
	options.AddDueArgs(cmd, do, "by")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addFinanceContribute(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "contribute <goal-id> <amount>",
		Short: "Add to (or with a negative amount, take from) a savings goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			amount, err := parseAmount(args[1])
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			g, err := svc.Contribute(cmd.Context(), args[0], amount)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(g, func() { done("goal %s: %.2f of %.2f", g.Title, g.CurrentAmount, g.TargetAmount) })
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addFinanceSummary(topLevel *cobra.Command, use, short string) {
	ido := &options.IDOptions{}
	var month string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Example: fmt.Sprintf(`
mindgrid finance %s
mindgrid finance %s --month 2025-02
`, use, use),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			var m time.Time
			if month != "" {
				var err error
				if m, err = timeutil.ParseMonth(month, time.Now()); err != nil {
					return oo.HandleError(err)
				}
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			sum, err := svc.Finance(cmd.Context(), m)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(sum, func() {
				pp := printer(ido.ShowID)
				if use == "ledger" {
					pp.Ledger(sum)
					return
				}
				pp.Finance(sum)
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM, defaults to this month.")
	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addFinanceCategories(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List expense categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			cats, err := svc.ExpenseCategories(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(cats, func() {
				for _, c := range cats {
					fmt.Println(c)
				}
			})
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addFinanceDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}
	records := []string{string(app.RecordBudget), string(app.RecordExpense), string(app.RecordIncome), string(app.RecordGoal)}

	cmd := &cobra.Command{
		Use:       "rm <budget|expense|income|goal> <id>",
		Aliases:   []string{"delete"},
		Short:     "Delete a finance record",
		Args:      cobra.ExactArgs(2),
		ValidArgs: records,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := confirm(cmd, co, "Delete "+args[0]); err != nil {
				return oo.HandleError(err)
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			if err := svc.DeleteFinance(cmd.Context(), app.FinanceRecord(strings.ToLower(args[0])), args[1]); err != nil {
				return oo.HandleError(err)
			}
			done("deleted %s %s", args[0], args[1])
			return nil
		},
	}

	options.AddConfirmArgs(cmd, co)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
