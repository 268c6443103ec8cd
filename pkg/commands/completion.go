package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion scripts.",
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		Long: `Print a completion script for your shell, bash when no shell is named.

  # ~/.bashrc
  . <(mindgrid completion)

  # ~/.zshrc
  source <(mindgrid completion zsh)

  mindgrid completion fish > ~/.config/fish/completions/mindgrid.fish
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			out := cmd.OutOrStdout()
			switch shell {
			case "bash":
				return topLevel.GenBashCompletion(out)
			case "zsh":
				return topLevel.GenZshCompletion(out)
			case "fish":
				return topLevel.GenFishCompletion(out, true)
			case "powershell":
				return topLevel.GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell %q", shell)
		},
	}

	topLevel.AddCommand(cmd)
}

// expenseCategoryCompletions offers the categories already used by expenses
// and budgets.
func expenseCategoryCompletions(cmd *cobra.Command) []string {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := newService(ctx)
	if err != nil {
		return nil
	}
	cats, err := svc.ExpenseCategories(ctx)
	if err != nil {
		return nil
	}
	return cats
}
