package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
)

var created = time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

func TestDispatchNotifiesSubscribersInOrder(t *testing.T) {
	s := New(state.Initial())

	var order []string
	s.Subscribe(func(prev, next state.State) { order = append(order, "first") })
	unsubscribe := s.Subscribe(func(prev, next state.State) { order = append(order, "second") })
	var transitions [][2]int
	s.Subscribe(func(prev, next state.State) {
		order = append(order, "third")
		transitions = append(transitions, [2]int{len(prev.Tasks), len(next.Tasks)})
	})

	if _, err := s.Dispatch(state.AddTask{Task: entity.Task{ID: "1", Title: "a"}}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if want := []string{"first", "second", "third"}; !equal(order, want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	if len(transitions) != 1 || transitions[0] != [2]int{0, 1} {
		t.Fatalf("unexpected transitions %v", transitions)
	}

	unsubscribe()
	order = nil
	if _, err := s.Dispatch(state.ToggleDarkMode{}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if want := []string{"first", "third"}; !equal(order, want) {
		t.Fatalf("expected %v after unsubscribe, got %v", want, order)
	}
	if !s.State().DarkMode {
		t.Fatalf("expected dark mode on")
	}
}

func TestDispatchConcurrent(t *testing.T) {
	s := New(state.Initial())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Dispatch(state.AddTask{Task: entity.Task{ID: entity.NewID(), Title: "t"}})
		}(i)
	}
	wg.Wait()
	if got := len(s.State().Tasks); got != 50 {
		t.Fatalf("expected 50 tasks, got %d", got)
	}
}

func TestMemoryStoreHasNoPersistence(t *testing.T) {
	s := New(state.Initial())
	if s.Persistent() {
		t.Fatalf("expected in-memory store")
	}
	if _, err := s.Reload(context.Background()); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
	if _, err := s.Watch(context.Background()); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	base := t.TempDir()
	p, err := Load(PathConfig(base), nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx := context.Background()

	s, err := Open(ctx, p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	actions := []state.Action{
		state.AddTask{Task: entity.Task{ID: "t/1", Title: "first", CreatedAt: entity.At(created)}},
		state.AddTask{Task: entity.Task{ID: "t2", Title: "second", CreatedAt: entity.At(created.Add(time.Minute))}},
		state.AddGoal{Goal: entity.Goal{ID: "g1", Title: "goal", CreatedAt: entity.At(created)}},
		state.AddNote{Note: entity.Note{ID: "n1", Title: "note", Content: "body", CreatedAt: entity.At(created)}},
		state.LinkNoteToTask{NoteID: "n1", TaskID: "t2"},
		state.AddExpense{Expense: entity.Expense{ID: "e1", Description: "lunch", Amount: 12.5, Category: "Food", Date: entity.At(created)}},
		state.ToggleDarkMode{},
		state.TrackModuleTime{Module: "tasks", Duration: time.Minute},
	}
	for _, a := range actions {
		if _, err := s.Dispatch(a); err != nil {
			t.Fatalf("dispatch %s: %v", a.Kind(), err)
		}
	}

	reopened, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reopened.Tasks) != 2 || reopened.Tasks[0].ID != "t/1" || reopened.Tasks[1].ID != "t2" {
		t.Fatalf("unexpected tasks %+v", reopened.Tasks)
	}
	if len(reopened.Notes) != 1 || len(reopened.Notes[0].LinkedTasks) != 1 {
		t.Fatalf("unexpected notes %+v", reopened.Notes)
	}
	if !reopened.DarkMode {
		t.Fatalf("expected dark mode to persist")
	}
	if reopened.Analytics.ModuleTime["tasks"] != time.Minute {
		t.Fatalf("unexpected module time %v", reopened.Analytics.ModuleTime)
	}
	if len(reopened.Finance.Expenses) != 1 || reopened.Finance.Expenses[0].Amount != 12.5 {
		t.Fatalf("unexpected expenses %+v", reopened.Finance.Expenses)
	}
	if len(reopened.Finance.ExpenseCategories) != len(entity.DefaultExpenseCategories()) {
		t.Fatalf("expected default categories, got %v", reopened.Finance.ExpenseCategories)
	}

	if _, err := s.Dispatch(state.DeleteTask{ID: "t2"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	reopened, err = p.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reopened.Tasks) != 1 {
		t.Fatalf("expected one task after delete, got %d", len(reopened.Tasks))
	}
	if len(reopened.Notes[0].LinkedTasks) != 0 {
		t.Fatalf("expected sweep to persist, got %v", reopened.Notes[0].LinkedTasks)
	}
}

func TestSaveWritesOnlyChangedKinds(t *testing.T) {
	base := t.TempDir()
	p, err := Load(PathConfig(base), nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	prev := state.Initial()
	next := state.Reduce(prev, state.AddTask{Task: entity.Task{ID: "t1", Title: "a"}})
	if err := p.Save(prev, next); err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, kind := range []string{KindNotes, KindGoals, KindMeta} {
		if _, err := os.Stat(filepath.Join(base, kind)); !os.IsNotExist(err) {
			t.Fatalf("expected no %s directory, got %v", kind, err)
		}
	}
	entries, err := os.ReadDir(filepath.Join(base, KindTasks))
	if err != nil {
		t.Fatalf("read tasks dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one task file, got %d", len(entries))
	}
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()
	p, err := Load(PathConfig(base), nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	s, err := Open(ctx, p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	other, err := Open(ctx, p)
	if err != nil {
		t.Fatalf("open second: %v", err)
	}
	if _, err := other.Dispatch(state.AddHabit{Habit: entity.Habit{ID: "h1", Name: "walk", TargetCount: 1}}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	next, err := s.Reload(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(next.Habits) != 1 || next.Habits[0].Name != "walk" {
		t.Fatalf("unexpected habits %+v", next.Habits)
	}
}

func TestReloadSeesWritesFromAnotherProcess(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()
	open := func() *Store {
		p, err := Load(PathConfig(base), nil)
		if err != nil {
			t.Fatalf("load persistence: %v", err)
		}
		s, err := Open(ctx, p)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		return s
	}

	a := open()
	if _, err := a.Dispatch(state.AddTask{Task: entity.Task{ID: "t1", Title: "a"}}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	// Warm a's read cache.
	if _, err := a.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}

	b := open()
	if _, err := b.Dispatch(state.ToggleTask{ID: "t1"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	next, err := a.Reload(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, ok := next.Task("t1")
	if !ok || !got.Completed {
		t.Fatalf("expected t1 completed after reload, got %+v", got)
	}
}

func TestEventsKeepCreationOrder(t *testing.T) {
	base := t.TempDir()
	p, err := Load(PathConfig(base), nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	prev := state.Initial()
	next := state.Reduce(prev, state.AddEvent{Event: entity.Event{ID: "b", Title: "late", CreatedAt: entity.At(created)}})
	next = state.Reduce(next, state.AddEvent{Event: entity.Event{ID: "a", Title: "later", CreatedAt: entity.At(created.Add(time.Minute))}})
	if err := p.Save(prev, next); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Events) != 2 || loaded.Events[0].ID != "b" || loaded.Events[1].ID != "a" {
		t.Fatalf("unexpected events %+v", loaded.Events)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
