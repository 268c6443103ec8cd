package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/link"
)

func addCheck(topLevel *cobra.Command) {
	var repair bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Find links that point at deleted records",
		Example: `
mindgrid check
mindgrid check --repair
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			var findings []link.Finding
			if repair {
				findings, err = svc.Repair(cmd.Context())
			} else {
				findings, err = svc.Audit(cmd.Context())
			}
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(findings, func() { printer(true).Findings(findings, repair) })
		},
	}

	cmd.Flags().BoolVar(&repair, "repair", false, "Drop the dangling links.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
