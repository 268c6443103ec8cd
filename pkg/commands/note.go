package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/commands/options"
)

func addNote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes", "n"},
		Short:   "Write, search and link notes",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	addNoteAdd(cmd)
	addNoteList(cmd)
	addNoteShow(cmd)
	addNoteEdit(cmd)
	addNoteLink(cmd, true)
	addNoteLink(cmd, false)
	addNoteTags(cmd)
	addNoteSuggest(cmd)
	addDelete(cmd, "note", (*app.Service).DeleteNote)

	topLevel.AddCommand(cmd)
}

// readContent returns content, or stdin when content is "-".
func readContent(cmd *cobra.Command, content string) (string, error) {
	if content != "-" {
		return content, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func addNoteAdd(topLevel *cobra.Command) {
	in := app.NoteInput{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a note",
		Example: `
mindgrid note add standup --content "blocked on review" --tag work --task 0190a8c4-...
cat draft.md | mindgrid note add design notes --content -
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			in.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			content, err := readContent(cmd, in.Content)
			if err != nil {
				return oo.HandleError(err)
			}
			in.Content = content
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			n, err := svc.AddNote(cmd.Context(), in)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(n, func() { printer(true).Notes(n) })
		},
	}

	cmd.Flags().StringVar(&in.Content, "content", "", `Note body, "-" reads stdin.`)
	cmd.Flags().StringSliceVar(&in.Tags, "tag", nil, "Tag, repeatable.")
	cmd.Flags().StringSliceVar(&in.LinkedTasks, "task", nil, "Linked task id, repeatable.")
	cmd.Flags().StringSliceVar(&in.LinkedGoals, "goal", nil, "Linked goal id, repeatable.")
	cmd.Flags().StringSliceVar(&in.LinkedNoteIDs, "note", nil, "Linked note id, repeatable.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addNoteList(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	f := app.NoteFilter{}

	cmd := &cobra.Command{
		Use:     "list [query]",
		Aliases: []string{"ls", "search"},
		Short:   "List notes, optionally matching a query or tag",
		Example: `
mindgrid note list
mindgrid note search budget --tag finance
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			f.Query = strings.Join(args, " ")
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			notes, err := svc.SearchNotes(cmd.Context(), f)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(notes, func() {
				pp := printer(ido.ShowID)
				pp.TitleWithCount("Notes", len(notes))
				pp.Notes(notes...)
			})
		},
	}

	cmd.Flags().StringVar(&f.Tag, "tag", "", "Only notes with this tag.")
	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addNoteShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"get", "cat"},
		Short:   "Show a note with its links",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			n, err := svc.ShowNote(cmd.Context(), args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(n, func() { printer(false).Note(n) })
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addNoteEdit(topLevel *cobra.Command) {
	var (
		title, content string
		tags           []string
	)

	cmd := &cobra.Command{
		Use:     "edit <id>",
		Aliases: []string{"update"},
		Short:   "Change a note's title, content or tags",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			st, err := svc.State()
			if err != nil {
				return oo.HandleError(err)
			}
			current, ok := st.Note(args[0])
			if !ok {
				return oo.HandleError(fmt.Errorf("note %q: %w", args[0], app.ErrNotFound))
			}
			in := app.NoteInput{
				Title:         current.Title,
				Content:       current.Content,
				Tags:          current.Tags,
				LinkedTasks:   current.LinkedTasks,
				LinkedGoals:   current.LinkedGoals,
				LinkedNoteIDs: current.LinkedNoteIDs,
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = title
			}
			if flags.Changed("content") {
				if in.Content, err = readContent(cmd, content); err != nil {
					return oo.HandleError(err)
				}
			}
			if flags.Changed("tag") {
				in.Tags = tags
			}
			n, err := svc.UpdateNote(cmd.Context(), args[0], in)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(n, func() { printer(false).Notes(n) })
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title.")
	cmd.Flags().StringVar(&content, "content", "", `New body, "-" reads stdin.`)
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Replace tags, repeatable.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addNoteLink(topLevel *cobra.Command, link bool) {
	use, short := "link", "Link a note to a task, goal or another note"
	if !link {
		use, short = "unlink", "Remove a link from a note"
	}
	targets := []string{string(app.TargetTask), string(app.TargetGoal), string(app.TargetNote)}

	cmd := &cobra.Command{
		Use:   use + " <note-id> <task|goal|note> <target-id>",
		Short: short,
		Example: fmt.Sprintf(`
mindgrid note %s 0190a8c4-... task 0190a8c5-...
`, use),
		Args: cobra.ExactArgs(3),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return targets, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			target := app.LinkTarget(strings.ToLower(args[1]))
			op := svc.LinkNote
			if !link {
				op = svc.UnlinkNote
			}
			if _, err := op(cmd.Context(), args[0], target, args[2]); err != nil {
				return oo.HandleError(err)
			}
			n, err := svc.ShowNote(cmd.Context(), args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(n, func() { printer(false).Note(n) })
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addNoteTags(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			tags, err := svc.Tags(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(tags, func() { printer(false).Tags(tags) })
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addNoteSuggest(topLevel *cobra.Command) {
	var apply bool

	cmd := &cobra.Command{
		Use:   "suggest <id>",
		Short: "Find tasks, goals and notes mentioned by title but not linked",
		Example: `
mindgrid note suggest 0190a8c4-...
mindgrid note suggest 0190a8c4-... --apply
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			op, title := svc.SuggestLinks, "Suggested links"
			if apply {
				op, title = svc.ApplySuggestions, "Linked"
			}
			ms, err := op(cmd.Context(), args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(ms, func() { printer(true).Mentions(title, ms) })
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Link every suggestion.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
