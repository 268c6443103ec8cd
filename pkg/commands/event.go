package commands

import (
	"errors"
	"strings"
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/commands/options"
	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/timeutil"
)

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events", "e"},
		Short:   "Schedule calendar events",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	addEventAdd(cmd)
	addEventList(cmd)
	addEventEdit(cmd)
	addEventLink(cmd, "link-task", "Link an event to a task")
	addEventLink(cmd, "link-goal", "Link an event to a goal")
	addEventUnlink(cmd)
	addDelete(cmd, "event", (*app.Service).DeleteEvent)

	topLevel.AddCommand(cmd)
}

// eventFlags are shared by add and edit.
type eventFlags struct {
	start, end string
	reminder   int
	in         app.EventInput
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", `Start, example: --start="2025-03-05T09:30" or --start=tomorrow.`)
	cmd.Flags().StringVar(&f.end, "end", "", "End, defaults to one hour after start.")
	cmd.Flags().BoolVar(&f.in.AllDay, "all-day", false, "Span the whole start day.")
	cmd.Flags().StringVar(&f.in.Type, "type", string(entity.EventMeeting), "One of meeting, work, personal, appointment, reminder or other.")
	cmd.Flags().StringVarP(&f.in.Description, "description", "d", "", "Longer description.")
	cmd.Flags().StringVarP(&f.in.Location, "location", "l", "", "Where it happens.")
	cmd.Flags().StringSliceVar(&f.in.Attendees, "attendee", nil, "Attendee, repeatable.")
	cmd.Flags().IntVar(&f.reminder, "reminder", -1, "Minutes before start to remind, negative for none.")
	cmd.Flags().StringVar(&f.in.Color, "color", "", "Color as #rrggbb, defaults by type.")
	cmd.Flags().StringVar(&f.in.LinkedTaskID, "task", "", "Linked task id.")
	cmd.Flags().StringVar(&f.in.LinkedProjectID, "goal", "", "Linked goal id.")
	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, t := range entity.EventTypes() {
			out = append(out, string(t))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

// times applies --start, --end and --reminder on top of in.
func (f *eventFlags) apply(cmd *cobra.Command, now time.Time, in app.EventInput) (app.EventInput, error) {
	var err error
	flags := cmd.Flags()
	if f.start != "" {
		if in.Start, err = timeutil.ParseMoment(f.start, now); err != nil {
			return in, err
		}
		if !flags.Changed("end") {
			in.End = time.Time{}
		}
	}
	if f.end != "" {
		if in.End, err = timeutil.ParseMoment(f.end, now); err != nil {
			return in, err
		}
	}
	if flags.Changed("reminder") {
		in.Reminder = nil
		if f.reminder >= 0 {
			minutes := f.reminder
			in.Reminder = &minutes
		}
	}
	return in, nil
}

func addEventAdd(topLevel *cobra.Command) {
	ef := &eventFlags{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an event",
		Example: `
mindgrid event add design review --start 2025-03-05T14:00 --end 2025-03-05T15:30 --reminder 15
mindgrid event add offsite --start 2025-03-10 --all-day --type work
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			if ef.start == "" {
				return errors.New("requires --start")
			}
			ef.in.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			in, err := ef.apply(cmd, time.Now(), ef.in)
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := svc.AddEvent(cmd.Context(), in)
			if err != nil {
				return oo.HandleError(err)
			}
			st, _ := svc.State()
			return emit(e, func() { printer(true).Events(st, e) })
		},
	}

	ef.register(cmd)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addEventList(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	var from, to string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List events in a window, by default the next seven days",
		Example: `
mindgrid event list
mindgrid event list --from 2025-03-01 --to 2025-04-01
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			now := time.Now()
			start := timeutil.StartOfDay(now)
			end := start.AddDate(0, 0, 7)
			var err error
			if from != "" {
				if start, err = timeutil.ParseDay(from, now); err != nil {
					return oo.HandleError(err)
				}
			}
			if to != "" {
				if end, err = timeutil.ParseDay(to, now); err != nil {
					return oo.HandleError(err)
				}
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			events, err := svc.EventsBetween(cmd.Context(), start, end)
			if err != nil {
				return oo.HandleError(err)
			}
			st, _ := svc.State()
			return emit(events, func() {
				pp := printer(ido.ShowID)
				pp.TitleWithCount("Events", len(events))
				pp.Events(st, events...)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day, defaults to today.")
	cmd.Flags().StringVar(&to, "to", "", "Day after the last, defaults to a week from today.")
	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addEventEdit(topLevel *cobra.Command) {
	ef := &eventFlags{}
	var title string

	cmd := &cobra.Command{
		Use:     "edit <id>",
		Aliases: []string{"update"},
		Short:   "Change an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			st, err := svc.State()
			if err != nil {
				return oo.HandleError(err)
			}
			e, ok := st.Event(args[0])
			if !ok {
				return oo.HandleError(app.ErrNotFound)
			}
			in := app.EventInput{
				Title:           e.Title,
				Description:     e.Description,
				Start:           e.StartTime.Time,
				End:             e.EndTime.Time,
				AllDay:          e.IsAllDay,
				Type:            string(e.Type),
				Location:        e.Location,
				Attendees:       e.Attendees,
				Reminder:        e.Reminder,
				Color:           e.Color,
				LinkedTaskID:    e.LinkedTaskID,
				LinkedProjectID: e.LinkedProjectID,
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = title
			}
			for name, apply := range map[string]func(){
				"all-day":     func() { in.AllDay = ef.in.AllDay },
				"type":        func() { in.Type = ef.in.Type },
				"description": func() { in.Description = ef.in.Description },
				"location":    func() { in.Location = ef.in.Location },
				"attendee":    func() { in.Attendees = ef.in.Attendees },
				"color":       func() { in.Color = ef.in.Color },
				"task":        func() { in.LinkedTaskID = ef.in.LinkedTaskID },
				"goal":        func() { in.LinkedProjectID = ef.in.LinkedProjectID },
			} {
				if flags.Changed(name) {
					apply()
				}
			}
			if in, err = ef.apply(cmd, time.Now(), in); err != nil {
				return oo.HandleError(err)
			}
			updated, err := svc.UpdateEvent(cmd.Context(), args[0], in)
			if err != nil {
				return oo.HandleError(err)
			}
			st, _ = svc.State()
			return emit(updated, func() { printer(false).Events(st, updated) })
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title.")
	ef.register(cmd)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addEventLink(topLevel *cobra.Command, use, short string) {
	cmd := &cobra.Command{
		Use:   use + " <event-id> <target-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			op := svc.LinkEventToTask
			if use == "link-goal" {
				op = svc.LinkEventToProject
			}
			e, err := op(cmd.Context(), args[0], args[1])
			if err != nil {
				return oo.HandleError(err)
			}
			st, _ := svc.State()
			return emit(e, func() { printer(false).Events(st, e) })
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addEventUnlink(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "unlink <event-id>",
		Short: "Clear an event's task and goal links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := svc.UnlinkEvent(cmd.Context(), args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			st, _ := svc.State()
			return emit(e, func() { printer(false).Events(st, e) })
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
