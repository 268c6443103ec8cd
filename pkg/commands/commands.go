package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
	ro = &options.RootOptions{}
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mindgrid",
		Short: base.Wrap80("Tasks, habits, goals, notes, calendar and money in one local store."),
		Long: base.Wrap80(`MindGrid keeps tasks, habits, goals, notes, calendar events, reading highlights and
personal finances in one local store, links them together and reports on how the
week is going. Run "mindgrid ui" for the dashboard.`),
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ro.Interactive {
				return PromptNext(cmd, args)
			}
			return cmd.Help()
		},
	}

	options.AddRootArgs(cmd, ro)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTask(topLevel)
	addHabit(topLevel)
	addGoal(topLevel)
	addNote(topLevel)
	addEvent(topLevel)
	addCalendar(topLevel)
	addHighlight(topLevel)
	addFinance(topLevel)
	addAnalytics(topLevel)
	addTime(topLevel)
	addActivity(topLevel)
	addReport(topLevel)
	addAgenda(topLevel)
	addCheck(topLevel)
	addDarkMode(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
