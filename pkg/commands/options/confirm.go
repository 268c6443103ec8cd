package options

import (
	"github.com/spf13/cobra"
)

// ConfirmOptions skips the interactive confirmation on destructive commands.
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Do not ask for confirmation.")
}
