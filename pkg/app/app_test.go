package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
	"tableflip.dev/mindgrid/pkg/store"
)

// Wednesday morning.
var clock = time.Date(2025, time.March, 5, 9, 0, 0, 0, time.Local)

func newTestService() (*Service, *time.Time) {
	now := clock
	svc := NewService(store.New(state.Initial()), nil)
	svc.Now = func() time.Time { return now }
	return svc, &now
}

func mustState(t *testing.T, svc *Service) state.State {
	t.Helper()
	st, err := svc.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	return st
}

func TestServiceWithoutStore(t *testing.T) {
	svc := &Service{}
	if _, err := svc.AddTask(context.Background(), TaskInput{Title: "x"}); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestAddTaskValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddTask(ctx, TaskInput{Title: "   "})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["title"] != "is required" {
		t.Fatalf("unexpected fields %v", verr.Fields)
	}
	if _, err := svc.AddTask(ctx, TaskInput{Title: "x", Priority: "urgent"}); !errors.As(err, &verr) {
		t.Fatalf("expected priority validation error, got %v", err)
	}
	if got := len(mustState(t, svc).Tasks); got != 0 {
		t.Fatalf("invalid input reached the store: %d tasks", got)
	}
}

func TestTaskLifecycle(t *testing.T) {
	svc, now := newTestService()
	ctx := context.Background()

	task, err := svc.AddTask(ctx, TaskInput{Title: " Write report ", Priority: "HIGH"})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if task.ID == "" || task.Title != "Write report" || task.Priority != entity.PriorityHigh {
		t.Fatalf("unexpected task %+v", task)
	}
	if !task.CreatedAt.Equal(*now) {
		t.Fatalf("expected created at clock, got %v", task.CreatedAt)
	}

	toggled, err := svc.ToggleTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Completed || toggled.CompletedAt == nil {
		t.Fatalf("expected completed task, got %+v", toggled)
	}

	active, _ := svc.Tasks(ctx, TaskFilter{Status: TasksActive})
	done, _ := svc.Tasks(ctx, TaskFilter{Status: TasksCompleted})
	if len(active) != 0 || len(done) != 1 {
		t.Fatalf("unexpected filter results: %d active, %d done", len(active), len(done))
	}

	if _, err := svc.ToggleTask(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCompleteHabitResetsLapsedStreak(t *testing.T) {
	svc, now := newTestService()
	ctx := context.Background()

	h, err := svc.AddHabit(ctx, HabitInput{Name: "Read"})
	if err != nil {
		t.Fatalf("add habit: %v", err)
	}
	if h.TargetCount != 1 || h.Frequency != entity.Daily {
		t.Fatalf("unexpected defaults %+v", h)
	}

	if h, err = svc.CompleteHabit(ctx, h.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	*now = now.AddDate(0, 0, 1)
	if h, err = svc.CompleteHabit(ctx, h.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if h.CurrentStreak != 2 {
		t.Fatalf("expected streak 2, got %d", h.CurrentStreak)
	}

	*now = now.AddDate(0, 0, 3)
	listed, err := svc.Habits(ctx)
	if err != nil {
		t.Fatalf("habits: %v", err)
	}
	if listed[0].CurrentStreak != 0 {
		t.Fatalf("expected lapsed streak to read 0, got %d", listed[0].CurrentStreak)
	}
	if h, err = svc.CompleteHabit(ctx, h.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if h.CurrentStreak != 1 || h.LongestStreak != 2 {
		t.Fatalf("expected streak 1 longest 2, got %d/%d", h.CurrentStreak, h.LongestStreak)
	}
	if _, err := svc.AddHabit(ctx, HabitInput{Name: "x", TargetCount: -1}); err == nil {
		t.Fatalf("expected target count validation error")
	}
}

func TestGoalStatusStampsCompletion(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	g, err := svc.AddGoal(ctx, GoalInput{Title: "Run a marathon", Category: "health"})
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if _, err := svc.SetGoalProgress(ctx, g.ID, 101); err == nil {
		t.Fatalf("expected progress validation error")
	}
	if g, err = svc.SetGoalStatus(ctx, g.ID, "completed"); err != nil {
		t.Fatalf("status: %v", err)
	}
	if g.CompletedAt == nil {
		t.Fatalf("expected completion stamp")
	}
	if g, err = svc.SetGoalStatus(ctx, g.ID, "active"); err != nil {
		t.Fatalf("status: %v", err)
	}
	if g.CompletedAt != nil {
		t.Fatalf("expected completion stamp cleared")
	}
}

func TestNoteLinking(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	task, _ := svc.AddTask(ctx, TaskInput{Title: "task"})
	a, err := svc.AddNote(ctx, NoteInput{Title: "A", Content: "alpha", Tags: []string{"work", " work ", ""}})
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	if len(a.Tags) != 1 {
		t.Fatalf("expected tags deduplicated, got %v", a.Tags)
	}
	b, err := svc.AddNote(ctx, NoteInput{Title: "B", Content: "beta", LinkedNoteIDs: []string{a.ID, "missing"}, LinkedTasks: []string{task.ID, task.ID}})
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	if len(b.LinkedNoteIDs) != 1 || len(b.LinkedTasks) != 1 {
		t.Fatalf("expected filtered links, got %+v", b)
	}
	st := mustState(t, svc)
	if peer, _ := st.Note(a.ID); len(peer.LinkedNoteIDs) != 1 || peer.LinkedNoteIDs[0] != b.ID {
		t.Fatalf("expected symmetric link, got %v", peer.LinkedNoteIDs)
	}

	if _, err := svc.LinkNote(ctx, a.ID, TargetGoal, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing goal, got %v", err)
	}
	if _, err := svc.LinkNote(ctx, a.ID, TargetNote, a.ID); err == nil {
		t.Fatalf("expected self link to fail")
	}
	if _, err := svc.UnlinkNote(ctx, b.ID, TargetNote, a.ID); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	st = mustState(t, svc)
	if peer, _ := st.Note(a.ID); len(peer.LinkedNoteIDs) != 0 {
		t.Fatalf("expected symmetric unlink, got %v", peer.LinkedNoteIDs)
	}

	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	shown, err := svc.ShowNote(ctx, b.ID)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if len(shown.Tasks) != 0 {
		t.Fatalf("expected task link swept, got %v", shown.Tasks)
	}

	found, _ := svc.SearchNotes(ctx, NoteFilter{Query: "ALPH"})
	if len(found) != 1 || found[0].ID != a.ID {
		t.Fatalf("unexpected search result %+v", found)
	}
	tagged, _ := svc.SearchNotes(ctx, NoteFilter{Tag: "work"})
	if len(tagged) != 1 {
		t.Fatalf("unexpected tag result %+v", tagged)
	}
	tags, _ := svc.Tags(ctx)
	if len(tags) != 1 || tags[0] != "work" {
		t.Fatalf("unexpected tags %v", tags)
	}
}

func TestSuggestLinks(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	task, _ := svc.AddTask(ctx, TaskInput{Title: "Renew passport"})
	goal, _ := svc.AddGoal(ctx, GoalInput{Title: "Visit Japan"})
	n, err := svc.AddNote(ctx, NoteInput{Title: "Trip", Content: "Before we visit japan I must renew passport."})
	if err != nil {
		t.Fatalf("add note: %v", err)
	}

	ms, err := svc.SuggestLinks(ctx, n.ID)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(ms) != 2 || ms[0].ID != goal.ID || ms[1].ID != task.ID {
		t.Fatalf("unexpected suggestions %+v", ms)
	}

	if _, err := svc.ApplySuggestions(ctx, n.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}
	st := mustState(t, svc)
	got, _ := st.Note(n.ID)
	if len(got.LinkedTasks) != 1 || len(got.LinkedGoals) != 1 {
		t.Fatalf("expected links applied, got %+v", got)
	}
	if ms, _ := svc.SuggestLinks(ctx, n.ID); len(ms) != 0 {
		t.Fatalf("linked titles should not be suggested again, got %+v", ms)
	}
	if _, err := svc.SuggestLinks(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNoteValidation(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.AddNote(context.Background(), NoteInput{Title: "only title"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields["content"] == "" {
		t.Fatalf("expected content validation error, got %v", err)
	}
}

func TestResolveFallbacks(t *testing.T) {
	st := state.Initial()
	if got := ResolveTaskTitle(st, "x"); got != UnknownTask {
		t.Fatalf("got %q", got)
	}
	if got := ResolveGoalTitle(st, "x"); got != UnknownGoal {
		t.Fatalf("got %q", got)
	}
	if got := ResolveNoteTitle(st, "x"); got != UnknownNote {
		t.Fatalf("got %q", got)
	}
}

func linkMissingTask(noteID string) state.Action {
	return state.LinkNoteToTask{NoteID: noteID, TaskID: "ghost"}
}
