package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/tui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "ui",
		Aliases: []string{"dashboard"},
		Short:   "Open the interactive dashboard",
		Example: `
mindgrid ui
mindgrid ui --memory
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("ui: stdout is not a terminal")
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), svc)
		},
	}

	topLevel.AddCommand(cmd)
}
