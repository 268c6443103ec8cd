package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

// Build metadata, set with -ldflags "-X tableflip.dev/mindgrid/pkg/commands.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// buildVersion falls back to the module version stamped by go install.
func buildVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

func addVersion(topLevel *cobra.Command) {
	var (
		short  bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the mindgrid version.",
		Args:  cobra.NoArgs,
		Example: `
mindgrid version
mindgrid version -o yaml
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown output %q, want json or yaml", format)
			}
			fmt.Fprint(cmd.OutOrStdout(), goversion.FuncWithOutput(short, buildVersion(), Commit, Date, format))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&format, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")

	topLevel.AddCommand(cmd)
}
