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
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Manage tasks",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	addTaskAdd(cmd)
	addTaskList(cmd)
	addTaskToggle(cmd)
	addTaskEdit(cmd)
	addDelete(cmd, "task", (*app.Service).DeleteTask)

	topLevel.AddCommand(cmd)
}

func addTaskAdd(topLevel *cobra.Command) {
	po := &options.PriorityOptions{}
	do := &options.DueOptions{}
	var description string
	in := app.TaskInput{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Example: `
mindgrid task add write the quarterly report --priority high --due tomorrow
mindgrid task add call the bank --due 2025-03-07
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
			in.Priority = po.Priority
			in.Description = description
			if in.DueDate, err = do.GetDue(time.Now()); err != nil {
				return oo.HandleError(err)
			}
			t, err := svc.AddTask(cmd.Context(), in)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(t, func() { printer(true).Tasks(t) })
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Longer description.")
	options.AddPriorityArgs(cmd, po, string(entity.PriorityMedium))
	options.AddDueArgs(cmd, do, "due")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTaskList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	po := &options.PriorityOptions{}
	var status string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Example: `
mindgrid task list
mindgrid task list --status completed -k
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			f := app.TaskFilter{Status: app.TaskStatus(status)}
			if po.Priority != "" {
				if f.Priority, err = entity.ParsePriority(po.Priority, ""); err != nil {
					return oo.HandleError(err)
				}
			}
			tasks, err := svc.Tasks(cmd.Context(), f)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(tasks, func() {
				pp := printer(io.ShowID)
				pp.TitleWithCount("Tasks", len(tasks))
				pp.Tasks(tasks...)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", string(app.TasksAll), "Filter by status: all, active or completed.")
	options.AddPriorityArgs(cmd, po, "")
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTaskToggle(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle", "complete"},
		Short:   "Toggle a task between open and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			t, err := svc.ToggleTask(cmd.Context(), args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(t, func() { printer(false).Tasks(t) })
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTaskEdit(topLevel *cobra.Command) {
	po := &options.PriorityOptions{}
	do := &options.DueOptions{}
	var title, description string

	cmd := &cobra.Command{
		Use:     "edit <id>",
		Aliases: []string{"update"},
		Short:   "Change a task's title, description, priority or due date",
		Example: `
mindgrid task edit 0190a8c4-... --title "Ship it" --priority low
`,
		Args: cobra.ExactArgs(1),
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
			current, ok := st.Task(args[0])
			if !ok {
				return oo.HandleError(app.ErrNotFound)
			}
			in := app.TaskInput{
				Title:       current.Title,
				Description: current.Description,
				Priority:    string(current.Priority),
			}
			if entity.IsSet(current.DueDate) {
				due := current.DueDate.Time
				in.DueDate = &due
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = title
			}
			if flags.Changed("description") {
				in.Description = description
			}
			if flags.Changed("priority") {
				in.Priority = po.Priority
			}
			if flags.Changed("due") {
				if in.DueDate, err = do.GetDue(time.Now()); err != nil {
					return oo.HandleError(err)
				}
			}
			t, err := svc.UpdateTask(cmd.Context(), args[0], in)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(t, func() { printer(false).Tasks(t) })
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title.")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description.")
	options.AddPriorityArgs(cmd, po, "")
	options.AddDueArgs(cmd, do, "due")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
