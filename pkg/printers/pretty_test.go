package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/mindgrid/pkg/analytics"
	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
)

func init() {
	color.NoColor = true
}

func TestBar(t *testing.T) {
	cases := map[float64]string{
		0:   "[..........]",
		55:  "[#####.....]",
		100: "[##########]",
		250: "[##########]",
		-5:  "[..........]",
	}
	for percent, want := range cases {
		if got := Bar(percent, 10); got != want {
			t.Fatalf("Bar(%v) = %q, want %q", percent, got, want)
		}
	}
}

func TestTasksMarksCompletion(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Tasks(
		entity.Task{ID: "1", Title: "open", Priority: entity.PriorityHigh},
		entity.Task{ID: "2", Title: "done", Completed: true, Priority: entity.PriorityLow},
	)
	out := buf.String()
	if !strings.Contains(out, "[ ] high   open") || !strings.Contains(out, "[x] low    done") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestNoteWrapsContent(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Width: 20}
	pp.Note(app.NoteLinks{
		Note:  entity.Note{Title: "Wrap", Content: "one two three four five six seven eight nine ten"},
		Tasks: []string{app.UnknownTask},
	})
	for _, line := range strings.Split(buf.String(), "\n") {
		if len(line) > 20 {
			t.Fatalf("line longer than width: %q", line)
		}
	}
	if !strings.Contains(buf.String(), "- Unknown Task") {
		t.Fatalf("expected resolved task, got:\n%s", buf.String())
	}
}

func TestNoteHeader(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Width: 20}
	pp.Note(app.NoteLinks{Note: entity.Note{Title: "Fresh"}})
	if strings.Contains(buf.String(), "updated") {
		t.Fatalf("unsaved note should have no updated line:\n%s", buf.String())
	}

	buf.Reset()
	at := time.Date(2025, time.March, 5, 9, 30, 0, 0, time.Local)
	pp.Note(app.NoteLinks{Note: entity.Note{Title: "Edited", UpdatedAt: entity.At(at)}})
	out := buf.String()
	if !strings.Contains(out, "updated Mar 5, 2025") {
		t.Fatalf("expected updated date, got:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 20 {
			t.Fatalf("line longer than width: %q", line)
		}
	}
}

func TestEventsResolveLinks(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	start := time.Date(2025, time.March, 5, 9, 0, 0, 0, time.Local)
	st := state.Initial()
	st.Tasks = []entity.Task{{ID: "t1", Title: "Prep slides"}}
	pp.Events(st, entity.Event{
		ID:           "e1",
		Title:        "Review",
		StartTime:    entity.At(start),
		EndTime:      entity.At(start.Add(time.Hour)),
		Type:         entity.EventMeeting,
		Color:        entity.EventMeeting.DefaultColor(),
		LinkedTaskID: "t1",
	})
	if !strings.Contains(buf.String(), `-> task "Prep slides"`) {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "09:00-10:00") {
		t.Fatalf("expected time span, got:\n%s", buf.String())
	}
}

func TestFinanceTable(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Finance(app.FinanceSummary{
		Totals:  analytics.Totals{Month: "2025-03", Income: 100, Expenses: 150, Net: -50},
		Budgets: []analytics.BudgetLine{{Category: "Food", Budget: 100, Spent: 150, Percent: 150, Status: analytics.BudgetOver}},
	})
	out := buf.String()
	if !strings.Contains(out, "-$50.00") || !strings.Contains(out, "150.0%") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestMonthGridHelpers(t *testing.T) {
	feb := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.Local)
	if got := DaysIn(feb); got != 29 {
		t.Fatalf("DaysIn = %d", got)
	}
	if got := StartDay(feb); got != time.Thursday {
		t.Fatalf("StartDay = %v", got)
	}
}
