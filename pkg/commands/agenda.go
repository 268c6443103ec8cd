package commands

import (
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/timeutil"
)

func addAgenda(topLevel *cobra.Command) {
	var horizon string

	cmd := &cobra.Command{
		Use:     "agenda",
		Aliases: []string{"today"},
		Short:   "What needs attention today",
		Long: `Agenda shows overdue tasks, tasks due today, today's events, reminders about to
fire and habits whose streak ends unless they are done today.`,
		Example: `
mindgrid agenda
mindgrid today --horizon 4h
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			h, err := time.ParseDuration(horizon)
			if err != nil {
				if h, _, err = timeutil.ParseWindow(horizon); err != nil {
					return oo.HandleError(err)
				}
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			a, err := svc.Agenda(cmd.Context(), h)
			if err != nil {
				return oo.HandleError(err)
			}
			st, _ := svc.State()
			return emit(a, func() { printer(false).Agenda(st, a) })
		},
	}

	cmd.Flags().StringVar(&horizon, "horizon", "1h", "How far ahead to look for reminders.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
