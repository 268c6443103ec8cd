package options

import (
	"github.com/spf13/cobra"
)

// PriorityOptions
type PriorityOptions struct {
	Priority string
}

func AddPriorityArgs(cmd *cobra.Command, o *PriorityOptions, def string) {
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", def,
		"Priority, one of low, medium or high.")
	_ = cmd.RegisterFlagCompletionFunc("priority", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"low", "medium", "high"}, cobra.ShellCompDirectiveNoFileComp
	})
}
