package commands

import (
	"fmt"
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/commands/options"
)

func addCalendar(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	var (
		view string
		grid bool
	)

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show the day, week or month around a date",
		Example: `
mindgrid calendar
mindgrid calendar --view month --grid
mindgrid cal --view week --on 2025-03-10
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			v := app.CalendarView(view)
			switch v {
			case app.ViewDay, app.ViewWeek, app.ViewMonth:
			default:
				return oo.HandleError(fmt.Errorf("unknown view %q, expected day, week or month", view))
			}
			day, err := on.GetOn(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			days, err := svc.Calendar(cmd.Context(), v, day)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(days, func() {
				pp := printer(false)
				if grid && v == app.ViewMonth {
					pp.MonthGrid(days)
					return
				}
				pp.Calendar(days)
			})
		},
	}

	cmd.Flags().StringVar(&view, "view", string(app.ViewWeek), "One of day, week or month.")
	cmd.Flags().BoolVar(&grid, "grid", false, "Draw the month view as a grid of event counts.")
	options.AddOnArgs(cmd, on)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
