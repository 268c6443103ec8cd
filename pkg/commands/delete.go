package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/commands/options"
)

// addDelete adds an "rm <id>" command that asks before calling del.
func addDelete(topLevel *cobra.Command, kind string, del func(*app.Service, context.Context, string) error) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a " + kind,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := confirm(cmd, co, "Delete "+kind); err != nil {
				return oo.HandleError(err)
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			if err := del(svc, cmd.Context(), args[0]); err != nil {
				return oo.HandleError(err)
			}
			done("deleted %s %s", kind, args[0])
			return nil
		},
	}

	options.AddConfirmArgs(cmd, co)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
