package commands

import (
	"errors"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/commands/options"
)

func addHabit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits"},
		Short:   "Track habits and streaks",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	addHabitAdd(cmd)
	addHabitList(cmd)
	addHabitDone(cmd)
	addHabitReset(cmd)
	addDelete(cmd, "habit", (*app.Service).DeleteHabit)

	topLevel.AddCommand(cmd)
}

func addHabitAdd(topLevel *cobra.Command) {
	in := app.HabitInput{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Example: `
mindgrid habit add read 20 pages
mindgrid habit add long run --frequency weekly
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a name")
			}
			in.Name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			h, err := svc.AddHabit(cmd.Context(), in)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(h, func() { printer(true).Habits(h) })
		},
	}

	cmd.Flags().StringVarP(&in.Frequency, "frequency", "f", "daily", "How often: daily, weekly or monthly.")
	cmd.Flags().IntVar(&in.TargetCount, "target", 1, "Completions expected per period.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addHabitList(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits with their current streaks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			habits, err := svc.Habits(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(habits, func() {
				pp := printer(io.ShowID)
				pp.TitleWithCount("Habits", len(habits))
				pp.Habits(habits...)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addHabitDone(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"complete", "check"},
		Short:   "Record a completion for today",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			h, err := svc.CompleteHabit(cmd.Context(), args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(h, func() { printer(false).Habits(h) })
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addHabitReset(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Zero the streaks of habits that missed their period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			habits, err := svc.ResetStreaks(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(habits, func() { printer(false).Habits(habits...) })
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
