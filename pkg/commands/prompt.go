package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/mindgrid/pkg/commands/options"
)

// PromptNext walks the command tree with a searchable menu, asks for the
// chosen leaf's arguments and flags, and runs it.
func PromptNext(cmd *cobra.Command, args []string) error {
	var subcommands []*cobra.Command
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			subcommands = append(subcommands, c)
		}
	}
	if len(subcommands) == 0 {
		return cmd.Help()
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name }} {{ .Short | cyan }}",
		Inactive: "   {{ .Name }} {{ .Short | cyan }}",
		Selected: "➜  {{ .Name }} {{ .Short | cyan }}",
		Details: `
--------- Details ----------
{{ .Example }}
`,
	}

	searcher := func(input string, index int) bool {
		subcommand := subcommands[index]
		name := strings.ReplaceAll(strings.ToLower(subcommand.Name()+subcommand.Short), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Commands",
		Items:     subcommands,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    NopCloser(cmd.OutOrStdout()),
	}

	i, _, err := prompt.Run()
	if err != nil {
		return err
	}

	next := subcommands[i]
	if next.HasAvailableSubCommands() {
		return PromptNext(next, args)
	}
	if next.RunE == nil {
		return next.Help()
	}
	if next.Args != nil && next.Args(next, args) != nil {
		if args, err = promptArgs(next); err != nil {
			return err
		}
		if err := next.Args(next, args); err != nil {
			return err
		}
	}
	if err := promptFlags(next); err != nil {
		return err
	}
	return next.RunE(next, args)
}

func promptArgs(cmd *cobra.Command) ([]string, error) {
	prompt := promptui.Prompt{
		Label:  cmd.Use,
		Stdin:  io.NopCloser(cmd.InOrStdin()),
		Stdout: NopCloser(cmd.OutOrStdout()),
	}
	line, err := prompt.Run()
	if err != nil {
		return nil, err
	}
	return strings.Fields(line), nil
}

// runSentinel ends flag selection.
const runSentinel = "run"

// promptFlags lets the user set any of cmd's local flags before it runs.
func promptFlags(cmd *cobra.Command) error {
	var fs []*pflag.Flag
	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden && f.Name != "help" {
			fs = append(fs, f)
		}
	})
	if len(fs) == 0 {
		return nil
	}
	fs = append(fs, &pflag.Flag{Name: runSentinel, Usage: "run " + cmd.CommandPath()})

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name }} {{ .Usage | cyan }}",
		Inactive: "   {{ .Name }} {{ .Usage | cyan }}",
		Selected: "➜  {{ .Name }}",
		Details: `
--------- Details ----------
{{ if .Value }}value: {{ .Value.String }}{{ end }}
`,
	}
	searcher := func(input string, index int) bool {
		return strings.Contains(strings.ToLower(fs[index].Name), strings.ToLower(strings.TrimSpace(input)))
	}

	cursor := 0
	for {
		sel := promptui.Select{
			HideHelp:  true,
			Label:     "Flags",
			Items:     fs,
			Templates: templates,
			Size:      10,
			CursorPos: cursor,
			Searcher:  searcher,
			Stdin:     io.NopCloser(cmd.InOrStdin()),
			Stdout:    NopCloser(cmd.OutOrStdout()),
		}
		i, _, err := sel.Run()
		if err != nil {
			return err
		}
		f := fs[i]
		if f.Name == runSentinel {
			return nil
		}
		cursor = i
		value, err := promptFlagValue(cmd, f)
		if err != nil {
			return err
		}
		if err := cmd.Flags().Set(f.Name, value); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "--%s: %v\n", f.Name, err)
		}
	}
}

func promptFlagValue(cmd *cobra.Command, f *pflag.Flag) (string, error) {
	if f.Value.Type() == "bool" {
		sel := promptui.Select{
			HideHelp: true,
			Label:    "--" + f.Name,
			Items:    []string{"true", "false"},
			Stdin:    io.NopCloser(cmd.InOrStdin()),
			Stdout:   NopCloser(cmd.OutOrStdout()),
		}
		_, v, err := sel.Run()
		return v, err
	}
	prompt := promptui.Prompt{
		Label:   "--" + f.Name,
		Default: f.Value.String(),
		Stdin:   io.NopCloser(cmd.InOrStdin()),
		Stdout:  NopCloser(cmd.OutOrStdout()),
	}
	return prompt.Run()
}

// confirm asks before a destructive change unless --yes was given or JSON
// output is requested.
func confirm(cmd *cobra.Command, co *options.ConfirmOptions, label string) error {
	if co.Yes || oo.JSON {
		return nil
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    NopCloser(cmd.OutOrStdout()),
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return errors.New("aborted")
		}
		return err
	}
	return nil
}

// NopCloser returns a WriteCloser with a no-op Close method wrapping
// the provided Writer w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func done(format string, a ...any) {
	if oo.JSON {
		return
	}
	fmt.Printf(format+"\n", a...)
}
