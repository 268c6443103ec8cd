package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
)

// Events lists events with their time span and links.
func (pp *PrettyPrint) Events(st state.State, events ...entity.Event) {
	if len(events) == 0 {
		pp.none()
		return
	}
	p := color.New()
	f := color.New(color.Faint)
	for _, e := range events {
		pp.id(e.ID)
		_, _ = eventColor(e).Fprint(pp.out(), "● ")
		_, _ = f.Fprintf(pp.out(), "%s ", span(e))
		_, _ = p.Fprint(pp.out(), e.Title)
		_, _ = f.Fprintf(pp.out(), " [%s]", e.Type)
		if e.Location != "" {
			_, _ = f.Fprintf(pp.out(), " @ %s", e.Location)
		}
		if e.LinkedTaskID != "" {
			_, _ = f.Fprintf(pp.out(), " -> task %q", app.ResolveTaskTitle(st, e.LinkedTaskID))
		}
		if e.LinkedProjectID != "" {
			_, _ = f.Fprintf(pp.out(), " -> project %q", app.ResolveGoalTitle(st, e.LinkedProjectID))
		}
		_, _ = p.Fprintln(pp.out(), "")
	}
	pp.NewLine()
}

func span(e entity.Event) string {
	if e.IsAllDay {
		return e.StartTime.Format("Mon Jan 2") + " all day"
	}
	if e.StartTime.Local().YearDay() == e.EndTime.Local().YearDay() {
		return fmt.Sprintf("%s-%s", e.StartTime.Local().Format("Mon Jan 2 15:04"), e.EndTime.Local().Format("15:04"))
	}
	return fmt.Sprintf("%s - %s", e.StartTime.Local().Format("Mon Jan 2 15:04"), e.EndTime.Local().Format("Mon Jan 2 15:04"))
}

// eventColor maps the event's hex color onto the nearest basic terminal
// color.
func eventColor(e entity.Event) *color.Color {
	c, err := colorful.Hex(e.Color)
	if err != nil {
		return color.New(color.FgWhite)
	}
	h, _, l := c.Hsl()
	switch {
	case l < 0.15:
		return color.New(color.FgBlack)
	case h < 20 || h >= 330:
		return color.New(color.FgRed)
	case h < 70:
		return color.New(color.FgYellow)
	case h < 170:
		return color.New(color.FgGreen)
	case h < 200:
		return color.New(color.FgCyan)
	case h < 260:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgMagenta)
	}
}

// Calendar prints days with their events, one line per event.
func (pp *PrettyPrint) Calendar(days []app.CalendarDay) {
	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	f := color.New(color.Faint)
	today := time.Now()

	for _, day := range days {
		printer := p
		if day.Date.Weekday() == time.Sunday {
			printer = s
		}
		if entity.At(day.Date).SameDay(today) {
			printer = b
		}
		_, _ = printer.Fprintf(pp.out(), "%2d %s", day.Date.Day(), day.Date.Weekday().String()[0:1])
		if len(day.Events) == 0 {
			_, _ = p.Fprintln(pp.out(), "")
			continue
		}
		for i, e := range day.Events {
			if i > 0 {
				_, _ = p.Fprint(pp.out(), "    ")
			}
			_, _ = eventColor(e).Fprint(pp.out(), "  ● ")
			when := "all day"
			if !e.IsAllDay {
				when = e.StartTime.Local().Format("15:04")
			}
			_, _ = f.Fprintf(pp.out(), "%-7s ", when)
			_, _ = p.Fprintln(pp.out(), e.Title)
		}
	}
	pp.NewLine()
}

const width = len("11 12 13 14 15 16 17") // an example week

// PrintMonthCount prints a month grid, bolding days with a non-zero count.
func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(pp.out(), "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(pp.out(), "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// MonthGrid prints the month of days as a grid, marking days with events.
func (pp *PrettyPrint) MonthGrid(days []app.CalendarDay) {
	if len(days) == 0 {
		return
	}
	count := make([]int, DaysIn(days[0].Date))
	for _, day := range days {
		if i := day.Date.Day() - 1; i < len(count) {
			count[i] = len(day.Events)
		}
	}
	pp.PrintMonthCount(days[0].Date, count)
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
