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
	"tableflip.dev/mindgrid/pkg/entity"
)

func addGoal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goals", "project"},
		Short:   "Track goals and their progress",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	addGoalAdd(cmd)
	addGoalList(cmd)
	addGoalProgress(cmd)
	addGoalStatus(cmd)
	addDelete(cmd, "goal", (*app.Service).DeleteGoal)

	topLevel.AddCommand(cmd)
}

func goalCategories() []string {
	var out []string
	for _, c := range entity.GoalCategories() {
		out = append(out, string(c))
	}
	return out
}

func addGoalAdd(topLevel *cobra.Command) {
	do := &options.DueOptions{}
	in := app.GoalInput{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Example: `
mindgrid goal add run a half marathon --category health --by 2025-10-01
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			in.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			if in.TargetDate, err = do.GetDue(time.Now()); err != nil {
				return oo.HandleError(err)
			}
			g, err := svc.AddGoal(cmd.Context(), in)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(g, func() { printer(true).Goals(g) })
		},
	}

	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "Longer description.")
	cmd.Flags().StringVarP(&in.Category, "category", "c", string(entity.CategoryPersonal),
		fmt.Sprintf("One of %s.", strings.Join(goalCategories(), ", ")))
	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return goalCategories(), cobra.ShellCompDirectiveNoFileComp
	})
	options.AddDueArgs(cmd, do, "by")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addGoalList(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			goals, err := svc.Goals(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(goals, func() {
				pp := printer(io.ShowID)
				pp.TitleWithCount("Goals", len(goals))
				pp.Goals(goals...)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addGoalProgress(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "progress <id> <percent>",
		Short: "Set how far along a goal is, 0 to 100",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			progress, err := strconv.Atoi(strings.TrimSuffix(args[1], "%"))
			if err != nil {
				return oo.HandleError(fmt.Errorf("invalid progress %q", args[1]))
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			g, err := svc.SetGoalProgress(cmd.Context(), args[0], progress)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(g, func() { printer(false).Goals(g) })
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addGoalStatus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "status <id> <active|completed|paused>",
		Short:     "Move a goal through its lifecycle",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(entity.GoalActive), string(entity.GoalCompleted), string(entity.GoalPaused)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			g, err := svc.SetGoalStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(g, func() { printer(false).Goals(g) })
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
