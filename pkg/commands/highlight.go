package commands

import (
	"errors"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/commands/options"
	"tableflip.dev/mindgrid/pkg/entity"
)

func addHighlight(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "highlight",
		Aliases: []string{"highlights", "hl"},
		Short:   "Keep reading highlights and tie them to notes",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	addHighlightAdd(cmd)
	addHighlightList(cmd)
	addHighlightLink(cmd)
	addDelete(cmd, "highlight", (*app.Service).DeleteHighlight)

	topLevel.AddCommand(cmd)
}

func addHighlightAdd(topLevel *cobra.Command) {
	po := &options.PriorityOptions{}
	in := app.HighlightInput{}

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a highlight",
		Example: `
mindgrid highlight add "premature optimization is the root of all evil" --annotation Knuth --color "#34d399"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the highlighted text")
			}
			in.Text = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			in.Priority = po.Priority
			h, err := svc.AddHighlight(cmd.Context(), in)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(h, func() { printer(true).Highlights(h) })
		},
	}

	cmd.Flags().StringVarP(&in.Annotation, "annotation", "a", "", "Your comment on the passage.")
	cmd.Flags().StringVar(&in.Color, "color", entity.DefaultHighlightColor, "Marker color as #rrggbb.")
	cmd.Flags().StringSliceVar(&in.Tags, "tag", nil, "Tag, repeatable.")
	cmd.Flags().StringVar(&in.LinkedNoteID, "note", "", "Note to attach the highlight to.")
	options.AddPriorityArgs(cmd, po, string(entity.PriorityMedium))
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addHighlightList(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	po := &options.PriorityOptions{}
	f := app.HighlightFilter{}

	cmd := &cobra.Command{
		Use:     "list [search]",
		Aliases: []string{"ls", "search"},
		Short:   "List highlights, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			f.Search = strings.Join(args, " ")
			var err error
			if f.Priority, err = entity.ParsePriority(po.Priority, ""); err != nil {
				return oo.HandleError(err)
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			highlights, err := svc.Highlights(cmd.Context(), f)
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(highlights, func() {
				pp := printer(ido.ShowID)
				pp.TitleWithCount("Highlights", len(highlights))
				pp.Highlights(highlights...)
			})
		},
	}

	cmd.Flags().StringVar(&f.Color, "color", "", "Only highlights with this color.")
	options.AddPriorityArgs(cmd, po, "")
	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addHighlightLink(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "link <highlight-id> <note-id>",
		Short: "Attach a highlight to a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			h, err := svc.LinkHighlightToNote(cmd.Context(), args[0], args[1])
			if err != nil {
				return oo.HandleError(err)
			}
			return emit(h, func() { printer(false).Highlights(h) })
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
