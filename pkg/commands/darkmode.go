package commands

import (
	"github.com/muesli/termenv"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
)

func addDarkMode(topLevel *cobra.Command) {
	var auto bool

	cmd := &cobra.Command{
		Use:   "darkmode",
		Short: "Toggle the dashboard between dark and light themes",
		Example: `
mindgrid darkmode
mindgrid darkmode --auto
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			st, err := svc.State()
			if err != nil {
				return oo.HandleError(err)
			}
			on := st.DarkMode
			// --auto follows the terminal background and only flips when they differ.
			if !auto || termenv.HasDarkBackground() != on {
				if on, err = svc.ToggleDarkMode(cmd.Context()); err != nil {
					return oo.HandleError(err)
				}
			}
			return emit(map[string]bool{"darkMode": on}, func() {
				if on {
					done("dark mode on")
					return
				}
				done("dark mode off")
			})
		},
	}

	cmd.Flags().BoolVar(&auto, "auto", false, "match the terminal background instead of toggling")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
