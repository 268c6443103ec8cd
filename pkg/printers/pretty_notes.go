package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/link"
)

func (pp *PrettyPrint) Notes(notes ...entity.Note) {
	if len(notes) == 0 {
		pp.none()
		return
	}
	t := color.New(color.Bold)
	f := color.New(color.Faint)
	for _, n := range notes {
		pp.id(n.ID)
		_, _ = t.Fprint(pp.out(), n.Title)
		if len(n.Tags) > 0 {
			_, _ = color.New(color.FgCyan).Fprintf(pp.out(), "  #%s", strings.Join(n.Tags, " #"))
		}
		links := len(n.LinkedTasks) + len(n.LinkedGoals) + len(n.LinkedNoteIDs)
		if links > 0 {
			_, _ = f.Fprintf(pp.out(), "  (%d links)", links)
		}
		_, _ = t.Fprintln(pp.out(), "")
	}
	pp.NewLine()
}

// Note prints one note with its content wrapped and its links resolved.
func (pp *PrettyPrint) Note(n app.NoteLinks) {
	b := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint)
	p := color.New()

	_, _ = b.Fprintln(pp.out(), wordwrap.String(n.Note.Title, pp.width()))
	if !n.Note.UpdatedAt.IsZero() {
		_, _ = f.Fprintln(pp.out(), wordwrap.String("updated "+n.Note.UpdatedAt.Format("Jan 2, 2006 15:04"), pp.width()))
	}
	pp.NewLine()
	_, _ = p.Fprintln(pp.out(), wordwrap.String(n.Note.Content, pp.width()))
	pp.NewLine()

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		_, _ = f.Fprintln(pp.out(), title)
		for _, item := range items {
			_, _ = p.Fprintf(pp.out(), "  - %s\n", item)
		}
	}
	if len(n.Note.Tags) > 0 {
		_, _ = color.New(color.FgCyan).Fprintf(pp.out(), "#%s\n", strings.Join(n.Note.Tags, " #"))
	}
	section("Tasks", n.Tasks)
	section("Goals", n.Goals)
	section("Notes", n.Notes)
	if n.Highlight != "" {
		_, _ = f.Fprintln(pp.out(), "Highlight")
		_, _ = color.New(color.FgHiYellow, color.Italic).Fprintln(pp.out(), indent.String(wordwrap.String(n.Highlight, pp.width()-2), 2))
	}
}

func (pp *PrettyPrint) Highlights(highlights ...entity.Highlight) {
	if len(highlights) == 0 {
		pp.none()
		return
	}
	p := color.New(color.Italic)
	f := color.New(color.Faint)
	for _, h := range highlights {
		pp.id(h.ID)
		_, _ = priorityColor(h.Priority).Fprintf(pp.out(), "%-6s ", h.Priority)
		_, _ = f.Fprintf(pp.out(), "%s ", h.Color)
		_, _ = p.Fprintf(pp.out(), "%q\n", h.Text)
		if h.Annotation != "" {
			_, _ = f.Fprintln(pp.out(), indent.String(wordwrap.String(h.Annotation, pp.width()-4), 4))
		}
	}
	pp.NewLine()
}

func (pp *PrettyPrint) Tags(tags []string) {
	pp.TitleWithCount("Tags", len(tags))
	if len(tags) == 0 {
		pp.none()
		return
	}
	c := color.New(color.FgCyan)
	for _, t := range tags {
		_, _ = c.Fprintf(pp.out(), "#%s\n", t)
	}
	pp.NewLine()
}

// Mentions prints link suggestions for a note.
func (pp *PrettyPrint) Mentions(title string, ms []link.Mention) {
	pp.TitleWithCount(title, len(ms))
	if len(ms) == 0 {
		pp.none()
		return
	}
	k := color.New(color.FgCyan)
	for _, m := range ms {
		pp.id(m.ID)
		_, _ = k.Fprintf(pp.out(), "%-5s ", m.Kind)
		_, _ = fmt.Fprintln(pp.out(), m.Title)
	}
	pp.NewLine()
}
