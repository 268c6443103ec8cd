package commands

import (
	"errors"
	"strings"
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/analytics"
	"tableflip.dev/mindgrid/pkg/timeutil"
)

func addAnalytics(topLevel *cobra.Command) {
	var rangeFlag string

	cmd := &cobra.Command{
		Use:     "analytics",
		Aliases: []string{"stats"},
		Short:   "Completion rates, productivity score, trend and time per module",
		Example: `
mindgrid analytics
mindgrid analytics --range quarter --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			r, err := analytics.ParseRange(rangeFlag)
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			d, err := svc.Analytics(cmd.Context(), r)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(d, func() { printer(false).Dashboard(d) })
		},
	}

	cmd.Flags().StringVarP(&rangeFlag, "range", "r", string(analytics.Week), "One of week, month or quarter.")
	_ = cmd.RegisterFlagCompletionFunc("range", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, r := range analytics.Ranges() {
			out = append(out, string(r))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTime(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Record time spent in a module",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	track := &cobra.Command{
		Use:   "track <module> <duration>",
		Short: "Add time spent in a module",
		Example: `
mindgrid time track notes 45m
mindgrid time track finance 1h30m
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			d, err := time.ParseDuration(args[1])
			if err != nil {
				if d, _, err = timeutil.ParseWindow(args[1]); err != nil {
					return oo.HandleError(err)
				}
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			if err := svc.TrackModuleTime(cmd.Context(), args[0], d); err != nil {
				return oo.HandleError(err)
			}
			done("tracked %s in %s", timeutil.FormatWindow(d), strings.ToLower(args[0]))
			return nil
		},
	}
	base.AddOutputArg(track, oo)
	cmd.AddCommand(track)

	topLevel.AddCommand(cmd)
}

func addActivity(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "The daily activity log",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	var count int
	logCmd := &cobra.Command{
		Use:   "log <module> <action>",
		Short: "Append to the activity log",
		Example: `
mindgrid activity log habits "morning run" --count 1
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a module and an action")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			a, err := svc.LogActivity(cmd.Context(), args[0], strings.Join(args[1:], " "), count)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(a, func() { done("logged %s %s", a.Module, a.Action) })
		},
	}
	logCmd.Flags().IntVar(&count, "count", 0, "How many, if it counts.")
	base.AddOutputArg(logCmd, oo)
	cmd.AddCommand(logCmd)

	var last string
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show recent activity",
		Example: `
mindgrid activity list --last 3d
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			window, _, err := timeutil.ParseWindow(last)
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			log, err := svc.Activity(cmd.Context(), time.Now().Add(-window))
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(log, func() { printer(false).Activity(log) })
		},
	}
	listCmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	base.AddOutputArg(listCmd, oo)
	cmd.AddCommand(listCmd)

	topLevel.AddCommand(cmd)
}

func addReport(topLevel *cobra.Command) {
	var last string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display recently finished tasks, habits and goals",
		Long: `Report lists tasks completed, habit check-ins and goals reached within the
specified time window, grouped by module.

Examples:
  mindgrid report
  mindgrid report --last 3d
  mindgrid report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			duration, label, err := timeutil.ParseWindow(last)
			if err != nil {
				return oo.HandleError(err)
			}
			until := time.Now()
			since := until.Add(-duration)

			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			result, err := svc.Report(cmd.Context(), since, until)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(result, func() { printer(false).Report(result, label) })
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
