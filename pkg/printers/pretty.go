package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/mindgrid/pkg/entity"
)

// PrettyPrint renders records for a terminal.
type PrettyPrint struct {
	ShowID bool
	// Width wraps long text. Zero means 80.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	// UUIDv7 ids are 36 characters.
	spacing = strings.Repeat(" ", len("0190a8c4-7b1e-7c3a-9d2f-4e5b6a7c8d9e  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// id prints the id column when enabled.
func (pp *PrettyPrint) id(id string) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	_, _ = y.Fprint(pp.out(), id)
	if pad := len(spacing) - len(id); pad > 0 {
		_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
	} else {
		_, _ = y.Fprint(pp.out(), "  ")
	}
}

func priorityColor(p entity.Priority) *color.Color {
	switch p {
	case entity.PriorityHigh:
		return color.New(color.FgRed, color.Bold)
	case entity.PriorityLow:
		return color.New(color.Faint)
	default:
		return color.New(color.FgYellow)
	}
}

func (pp *PrettyPrint) Tasks(tasks ...entity.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}
	t := color.New()
	done := color.New(color.Faint, color.CrossedOut)
	for _, task := range tasks {
		pp.id(task.ID)
		box := "[ ]"
		printer := t
		if task.Completed {
			box = "[x]"
			printer = done
		}
		_, _ = t.Fprintf(pp.out(), "%s ", box)
		_, _ = priorityColor(task.Priority).Fprintf(pp.out(), "%-6s ", task.Priority)
		_, _ = printer.Fprint(pp.out(), task.Title)
		if entity.IsSet(task.DueDate) {
			_, _ = color.New(color.Faint).Fprintf(pp.out(), "  due %s", task.DueDate.Format("Jan 2"))
		}
		_, _ = t.Fprintln(pp.out(), "")
	}
	_, _ = t.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Habits(habits ...entity.Habit) {
	if len(habits) == 0 {
		pp.none()
		return
	}
	t := color.New()
	streak := color.New(color.FgHiGreen, color.Bold)
	f := color.New(color.Faint)
	for _, h := range habits {
		pp.id(h.ID)
		_, _ = t.Fprintf(pp.out(), "%s ", h.Name)
		_, _ = f.Fprintf(pp.out(), "(%s, x%d) ", h.Frequency, h.TargetCount)
		_, _ = streak.Fprintf(pp.out(), "streak %d", h.CurrentStreak)
		_, _ = f.Fprintf(pp.out(), " best %d", h.LongestStreak)
		if entity.IsSet(h.LastCompleted) {
			_, _ = f.Fprintf(pp.out(), "  last %s", h.LastCompleted.Format("Jan 2 15:04"))
		}
		_, _ = t.Fprintln(pp.out(), "")
	}
	_, _ = t.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Goals(goals ...entity.Goal) {
	if len(goals) == 0 {
		pp.none()
		return
	}
	t := color.New()
	f := color.New(color.Faint)
	for _, g := range goals {
		pp.id(g.ID)
		_, _ = t.Fprintf(pp.out(), "%s %s ", Bar(float64(g.Progress), 10), g.Title)
		_, _ = f.Fprintf(pp.out(), "%d%% %s/%s", g.Progress, g.Category, g.Status)
		if entity.IsSet(g.TargetDate) {
			_, _ = f.Fprintf(pp.out(), "  by %s", g.TargetDate.Format("Jan 2, 2006"))
		}
		_, _ = t.Fprintln(pp.out(), "")
	}
	_, _ = t.Fprintln(pp.out(), "")
}

// Bar renders percent as a fixed width progress bar, capped at full.
func Bar(percent float64, cells int) string {
	filled := int(percent / 100 * float64(cells))
	if filled > cells {
		filled = cells
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", cells-filled) + "]"
}
