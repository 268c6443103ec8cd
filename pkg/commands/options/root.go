package options

import (
	"github.com/spf13/cobra"
)

// RootOptions are persistent flags shared by every command.
type RootOptions struct {
	Verbose bool
	Memory  bool
	Path    string

	// Interactive is local to the root command.
	Interactive bool
}

func AddRootArgs(cmd *cobra.Command, o *RootOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log store activity to stderr.")
	cmd.PersistentFlags().BoolVar(&o.Memory, "memory", false,
		"Keep state in memory only, nothing is read or written.")
	cmd.PersistentFlags().StringVar(&o.Path, "path", "",
		"Data directory, overrides MINDGRID_PATH and the config file.")
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		"Pick a command, its arguments and flags from menus.")
}

// IDOptions controls the id column of list output.
type IDOptions struct {
	ShowID bool
}

// AddShowIDArgs adds -k, so ids can be copied into edit, link and rm.
func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Print record ids in the first column.")
}
