package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/state"
	"tableflip.dev/mindgrid/pkg/store"
)

var clock = time.Date(2025, time.March, 5, 9, 0, 0, 0, time.Local)

func newTestService(t *testing.T) *Service {
	t.Helper()
	a := app.NewService(store.New(state.Initial()), nil)
	a.Now = func() time.Time { return clock }
	return NewService(a)
}

func TestServiceOverviewCounts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	task, err := svc.App.AddTask(ctx, app.TaskInput{Title: "Write report"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if _, err := svc.App.AddTask(ctx, app.TaskInput{Title: "File taxes"}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if _, err := svc.App.ToggleTask(ctx, task.ID); err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if _, err := svc.App.AddNote(ctx, app.NoteInput{Title: "Ideas", Content: "more sleep"}); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	o, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if o.Tasks != 2 || o.OpenTasks != 1 || o.Notes != 1 {
		t.Fatalf("unexpected overview %+v", o)
	}
}

func TestServiceSearch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.App.AddTask(ctx, app.TaskInput{Title: "Book flights", Description: "to Lisbon"}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if _, err := svc.App.AddNote(ctx, app.NoteInput{Title: "Trip", Content: "Lisbon has great tiles"}); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if _, err := svc.App.AddNote(ctx, app.NoteInput{Title: "Groceries", Content: "eggs"}); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	hits, err := svc.Search(ctx, "lisbon", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d: %+v", len(hits), hits)
	}
	if hits[0].Kind != "task" || hits[1].Kind != "note" {
		t.Fatalf("unexpected order %+v", hits)
	}
	if !strings.Contains(hits[1].Snippet, "Lisbon") {
		t.Fatalf("expected snippet around match, got %q", hits[1].Snippet)
	}

	limited, err := svc.Search(ctx, "lisbon", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}

	if _, err := svc.Search(ctx, "  ", 10); err == nil {
		t.Fatalf("expected error for empty query")
	}
}

func TestServiceUpcomingGroupsByDay(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, start := range []time.Time{
		clock.Add(2 * time.Hour),
		clock.Add(26 * time.Hour),
		clock.Add(27 * time.Hour),
		clock.AddDate(0, 0, 30),
	} {
		if _, err := svc.App.AddEvent(ctx, app.EventInput{Title: "sync", Start: start}); err != nil {
			t.Fatalf("AddEvent failed: %v", err)
		}
	}

	days, err := svc.Upcoming(ctx, 7)
	if err != nil {
		t.Fatalf("Upcoming failed: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if len(days[0].Events) != 1 || len(days[1].Events) != 2 {
		t.Fatalf("unexpected grouping %+v", days)
	}
	if !days[0].Date.Before(days[1].Date) {
		t.Fatalf("days out of order")
	}
}

func TestServiceWithoutApp(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.Overview(context.Background()); err == nil {
		t.Fatalf("expected error without app service")
	}
}

func TestRouterHealthz(t *testing.T) {
	r := Runner{Service: newTestService(t).App}
	mcpHit := false
	h := r.Router(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mcpHit = true
		w.WriteHeader(http.StatusAccepted)
	}), "/mcp")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{}")))
	if !mcpHit || rec.Code != http.StatusAccepted {
		t.Fatalf("expected mcp handler to serve /mcp, got %d", rec.Code)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, b,,c ")
	if strings.Join(got, "|") != "a|b|c" {
		t.Fatalf("unexpected split %v", got)
	}
}
