package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/link"
)

var now = time.Date(2025, time.March, 3, 12, 0, 0, 0, time.Local)

type unknownAction struct{}

func (unknownAction) Kind() Kind { return "SOMETHING_ELSE" }
func (unknownAction) action()    {}

func apply(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func TestUnknownActionReturnsInput(t *testing.T) {
	s := apply(Initial(), AddTask{Task: entity.Task{ID: "1", Title: "a"}})

	next := Reduce(s, unknownAction{})
	assert.Same(t, &s.Tasks[0], &next.Tasks[0])
	assert.Equal(t, s, next)

	assert.Equal(t, s, Reduce(s, nil))
}

func TestToggleTaskScenario(t *testing.T) {
	s := Reduce(Initial(), AddTask{Task: entity.Task{ID: "1639", Title: "Buy milk", Priority: entity.PriorityLow}})
	require.Len(t, s.Tasks, 1)
	assert.False(t, s.Tasks[0].Completed)

	s = Reduce(s, ToggleTask{ID: "1639", At: now})
	assert.True(t, s.Tasks[0].Completed)
	require.NotNil(t, s.Tasks[0].CompletedAt)
	assert.True(t, s.Tasks[0].CompletedAt.Equal(now))

	s = Reduce(s, ToggleTask{ID: "1639", At: now})
	assert.False(t, s.Tasks[0].Completed)
	assert.Nil(t, s.Tasks[0].CompletedAt)
}

func TestToggleParity(t *testing.T) {
	for n := 1; n <= 5; n++ {
		s := Reduce(Initial(), AddTask{Task: entity.Task{ID: "t", Title: "x"}})
		for i := 0; i < n; i++ {
			s = Reduce(s, ToggleTask{ID: "t", At: now})
		}
		assert.Equal(t, n%2 == 1, s.Tasks[0].Completed, "after %d toggles", n)
	}
}

func TestAddRejectsDuplicateIDs(t *testing.T) {
	s := apply(Initial(),
		AddTask{Task: entity.Task{ID: "1", Title: "first"}},
		AddTask{Task: entity.Task{ID: "1", Title: "second"}},
		AddTask{Task: entity.Task{Title: "no id"}},
	)
	require.Len(t, s.Tasks, 1)
	assert.Equal(t, "first", s.Tasks[0].Title)
}

func TestMissingIDsAreNoOps(t *testing.T) {
	s := Reduce(Initial(), AddTask{Task: entity.Task{ID: "1", Title: "a"}})
	for _, a := range []Action{
		ToggleTask{ID: "nope", At: now},
		UpdateTask{Task: entity.Task{ID: "nope"}},
		DeleteTask{ID: "nope"},
		CompleteHabit{ID: "nope", At: now},
		DeleteHighlight{ID: "nope"},
	} {
		next := Reduce(s, a)
		assert.False(t, Diff(s, next).Any(), "%s should not change state", a.Kind())
	}
}

func TestStructuralSharing(t *testing.T) {
	s := apply(Initial(),
		AddTask{Task: entity.Task{ID: "t", Title: "task"}},
		AddHabit{Habit: entity.Habit{ID: "h", Name: "run", Frequency: entity.Daily, TargetCount: 1}},
		AddNote{Note: entity.Note{ID: "n", Title: "note"}},
	)
	next := Reduce(s, ToggleTask{ID: "t", At: now})

	changes := Diff(s, next)
	assert.True(t, changes.Tasks)
	assert.False(t, changes.Habits)
	assert.False(t, changes.Notes)
	assert.Same(t, &s.Habits[0], &next.Habits[0])
	assert.NotSame(t, &s.Tasks[0], &next.Tasks[0])
	assert.False(t, s.Tasks[0].Completed, "previous state must be untouched")
}

func TestAddThenDeleteLeavesNoReferences(t *testing.T) {
	s := apply(Initial(),
		AddTask{Task: entity.Task{ID: "t", Title: "task"}},
		AddGoal{Goal: entity.Goal{ID: "g", Title: "goal"}},
		AddNote{Note: entity.Note{ID: "a", Title: "A"}},
		AddNote{Note: entity.Note{ID: "b", Title: "B"}},
		AddHighlight{Highlight: entity.Highlight{ID: "h", Text: "quote", LinkedNoteID: "a"}},
		AddEvent{Event: entity.Event{ID: "e1", Title: "standup", LinkedTaskID: "t"}},
		AddEvent{Event: entity.Event{ID: "e2", Title: "review", LinkedProjectID: "g"}},
		LinkNoteToTask{NoteID: "a", TaskID: "t"},
		LinkNoteToGoal{NoteID: "a", GoalID: "g"},
		LinkNotes{A: "a", B: "b"},
	)
	a, _ := s.Note("a")
	require.Equal(t, "h", a.LinkedHighlightID)

	s = apply(s, DeleteTask{ID: "t"}, DeleteGoal{ID: "g"}, DeleteHighlight{ID: "h"}, DeleteNote{ID: "b"})

	_, ok := s.Task("t")
	assert.False(t, ok)
	a, _ = s.Note("a")
	assert.Empty(t, a.LinkedTasks)
	assert.Empty(t, a.LinkedGoals)
	assert.Empty(t, a.LinkedNoteIDs)
	assert.Empty(t, a.LinkedHighlightID)
	for _, e := range s.Events {
		assert.Empty(t, e.LinkedTaskID)
		assert.Empty(t, e.LinkedProjectID)
	}
}

func TestDeleteNoteClearsHighlight(t *testing.T) {
	s := apply(Initial(),
		AddNote{Note: entity.Note{ID: "a", Title: "A"}},
		AddHighlight{Highlight: entity.Highlight{ID: "h", Text: "quote", LinkedNoteID: "a"}},
		DeleteNote{ID: "a"},
	)
	h, ok := s.Highlight("h")
	require.True(t, ok)
	assert.Empty(t, h.LinkedNoteID)
}

func TestLinkNotesIdempotentAndUnlinkSymmetric(t *testing.T) {
	s := apply(Initial(),
		AddNote{Note: entity.Note{ID: "a"}},
		AddNote{Note: entity.Note{ID: "b"}},
		AddNote{Note: entity.Note{ID: "c"}},
		LinkNotes{A: "a", B: "b"},
		LinkNotes{A: "a", B: "b"},
		LinkNotes{A: "b", B: "c"},
	)
	a, _ := s.Note("a")
	b, _ := s.Note("b")
	assert.Equal(t, []string{"b"}, a.LinkedNoteIDs)
	assert.Equal(t, []string{"a", "c"}, b.LinkedNoteIDs)

	s = Reduce(s, UnlinkNotes{A: "a", B: "b"})
	a, _ = s.Note("a")
	b, _ = s.Note("b")
	c, _ := s.Note("c")
	assert.Empty(t, a.LinkedNoteIDs)
	assert.Equal(t, []string{"c"}, b.LinkedNoteIDs)
	assert.Equal(t, []string{"b"}, c.LinkedNoteIDs)
}

func TestLinkNoteToTaskDeduplicates(t *testing.T) {
	s := apply(Initial(),
		AddTask{Task: entity.Task{ID: "t"}},
		AddNote{Note: entity.Note{ID: "a"}},
		LinkNoteToTask{NoteID: "a", TaskID: "t"},
		LinkNoteToTask{NoteID: "a", TaskID: "t"},
	)
	a, _ := s.Note("a")
	assert.Equal(t, []string{"t"}, a.LinkedTasks)
}

func TestAddAndUpdateNoteKeepLinksSymmetric(t *testing.T) {
	s := apply(Initial(),
		AddNote{Note: entity.Note{ID: "a"}},
		AddNote{Note: entity.Note{ID: "b"}},
		AddNote{Note: entity.Note{ID: "c", LinkedNoteIDs: []string{"a", "missing"}}},
	)
	a, _ := s.Note("a")
	c, _ := s.Note("c")
	assert.Equal(t, []string{"c"}, a.LinkedNoteIDs)
	assert.Equal(t, []string{"a"}, c.LinkedNoteIDs)

	c.LinkedNoteIDs = []string{"b"}
	c.Title = "renamed"
	s = Reduce(s, UpdateNote{Note: c})

	a, _ = s.Note("a")
	b, _ := s.Note("b")
	c, _ = s.Note("c")
	assert.Empty(t, a.LinkedNoteIDs)
	assert.Equal(t, []string{"c"}, b.LinkedNoteIDs)
	assert.Equal(t, []string{"b"}, c.LinkedNoteIDs)
	assert.Equal(t, "renamed", c.Title)
}

func TestEventLinkScenario(t *testing.T) {
	s := apply(Initial(),
		AddEvent{Event: entity.Event{ID: "e", Title: "sync", LinkedTaskID: "5"}},
		LinkEventToProject{EventID: "e", ProjectID: "9"},
	)
	e, ok := s.Event("e")
	require.True(t, ok)
	assert.Equal(t, "9", e.LinkedProjectID)
	assert.Empty(t, e.LinkedTaskID)
}

func TestAddEventWithBothLinksKeepsTask(t *testing.T) {
	s := Reduce(Initial(), AddEvent{Event: entity.Event{ID: "e", LinkedTaskID: "1", LinkedProjectID: "2"}})
	assert.Equal(t, "1", s.Events[0].LinkedTaskID)
	assert.Empty(t, s.Events[0].LinkedProjectID)
}

func TestDeletedIDIsNotRemembered(t *testing.T) {
	s := apply(Initial(),
		AddTask{Task: entity.Task{ID: "t", Title: "first"}},
		DeleteTask{ID: "t"},
		AddTask{Task: entity.Task{ID: "t", Title: "second"}},
	)
	got, ok := s.Task("t")
	require.True(t, ok)
	assert.Equal(t, "second", got.Title)
}

func TestRelinkHighlightMovesPair(t *testing.T) {
	s := apply(Initial(),
		AddNote{Note: entity.Note{ID: "n1"}},
		AddNote{Note: entity.Note{ID: "n2"}},
		AddHighlight{Highlight: entity.Highlight{ID: "h1", LinkedNoteID: "n1"}},
		AddHighlight{Highlight: entity.Highlight{ID: "h2", LinkedNoteID: "n2"}},
		LinkHighlightToNote{HighlightID: "h1", NoteID: "n2"},
	)
	n1, _ := s.Note("n1")
	n2, _ := s.Note("n2")
	h1, _ := s.Highlight("h1")
	h2, _ := s.Highlight("h2")
	assert.Empty(t, n1.LinkedHighlightID)
	assert.Equal(t, "h1", n2.LinkedHighlightID)
	assert.Equal(t, "n2", h1.LinkedNoteID)
	assert.Empty(t, h2.LinkedNoteID, "displaced highlight lets go of the note")
	assert.Empty(t, link.Audit(s.Graph()))
}

func TestUpdateHighlightReconcilesNote(t *testing.T) {
	s := apply(Initial(),
		AddNote{Note: entity.Note{ID: "n1"}},
		AddNote{Note: entity.Note{ID: "n2"}},
		AddHighlight{Highlight: entity.Highlight{ID: "h", LinkedNoteID: "n1"}},
		UpdateHighlight{Highlight: entity.Highlight{ID: "h", LinkedNoteID: "n2"}},
	)
	n1, _ := s.Note("n1")
	n2, _ := s.Note("n2")
	assert.Empty(t, n1.LinkedHighlightID)
	assert.Equal(t, "h", n2.LinkedHighlightID)

	s = Reduce(s, UpdateHighlight{Highlight: entity.Highlight{ID: "h"}})
	n2, _ = s.Note("n2")
	assert.Empty(t, n2.LinkedHighlightID)
	assert.Empty(t, link.Audit(s.Graph()))
}

func TestUpdateNoteReconcilesHighlight(t *testing.T) {
	s := apply(Initial(),
		AddNote{Note: entity.Note{ID: "n1"}},
		AddNote{Note: entity.Note{ID: "n2"}},
		AddHighlight{Highlight: entity.Highlight{ID: "h", LinkedNoteID: "n1"}},
		UpdateNote{Note: entity.Note{ID: "n2", LinkedHighlightID: "h"}},
	)
	n1, _ := s.Note("n1")
	h, _ := s.Highlight("h")
	assert.Empty(t, n1.LinkedHighlightID)
	assert.Equal(t, "n2", h.LinkedNoteID)

	s = Reduce(s, UpdateNote{Note: entity.Note{ID: "n2"}})
	h, _ = s.Highlight("h")
	assert.Empty(t, h.LinkedNoteID)
	assert.Empty(t, link.Audit(s.Graph()))
}

func TestLinkHighlightToNote(t *testing.T) {
	s := apply(Initial(),
		AddNote{Note: entity.Note{ID: "n"}},
		AddHighlight{Highlight: entity.Highlight{ID: "h", Text: "x"}},
		LinkHighlightToNote{HighlightID: "h", NoteID: "n"},
	)
	n, _ := s.Note("n")
	h, _ := s.Highlight("h")
	assert.Equal(t, "h", n.LinkedHighlightID)
	assert.Equal(t, "n", h.LinkedNoteID)
}

func TestDailyActivityKeepsLastThirty(t *testing.T) {
	s := Initial()
	for i := 0; i < 31; i++ {
		s = Reduce(s, LogDailyActivity{Activity: Activity{Module: "tasks", Action: fmt.Sprintf("a%d", i)}})
	}
	require.Len(t, s.Analytics.DailyActivity, DailyActivityLimit)
	assert.Equal(t, "a1", s.Analytics.DailyActivity[0].Action)
	assert.Equal(t, "a30", s.Analytics.DailyActivity[29].Action)
}

func TestTrackModuleTimeAccumulates(t *testing.T) {
	s := apply(Initial(),
		TrackModuleTime{Module: "notes", Duration: 5 * time.Minute},
		TrackModuleTime{Module: "notes", Duration: 10 * time.Minute},
		TrackModuleTime{Module: "tasks", Duration: time.Minute},
	)
	prev := s
	assert.Equal(t, 15*time.Minute, s.Analytics.ModuleTime["notes"])
	assert.Equal(t, time.Minute, s.Analytics.ModuleTime["tasks"])

	s = Reduce(s, TrackModuleTime{Module: "tasks", Duration: time.Minute})
	assert.Equal(t, time.Minute, prev.Analytics.ModuleTime["tasks"], "maps are copied on write")
	assert.True(t, Diff(prev, s).Meta)
}

func TestToggleDarkMode(t *testing.T) {
	s := Reduce(Initial(), ToggleDarkMode{})
	assert.True(t, s.DarkMode)
	assert.False(t, Reduce(s, ToggleDarkMode{}).DarkMode)
}

func TestCompleteHabitIncrementsStreak(t *testing.T) {
	s := apply(Initial(),
		AddHabit{Habit: entity.Habit{ID: "h", Name: "read", Frequency: entity.Daily, TargetCount: 1}},
		CompleteHabit{ID: "h", At: now},
		CompleteHabit{ID: "h", At: now.Add(24 * time.Hour)},
	)
	h, _ := s.Habit("h")
	assert.Equal(t, 2, h.CurrentStreak)
	assert.Equal(t, 2, h.LongestStreak)
	assert.Len(t, h.Completions, 2)
	require.NotNil(t, h.LastCompleted)
	assert.True(t, h.LastCompleted.Equal(now.Add(24*time.Hour)))
}

func TestResetHabitStreaks(t *testing.T) {
	s := apply(Initial(),
		AddHabit{Habit: entity.Habit{ID: "daily", Frequency: entity.Daily, TargetCount: 1}},
		AddHabit{Habit: entity.Habit{ID: "weekly", Frequency: entity.Weekly, TargetCount: 1}},
		CompleteHabit{ID: "daily", At: now},
		CompleteHabit{ID: "weekly", At: now},
	)

	same := Reduce(s, ResetHabitStreaks{At: now.Add(24 * time.Hour)})
	assert.False(t, Diff(s, same).Habits, "completing yesterday keeps the streak")

	later := Reduce(s, ResetHabitStreaks{At: now.Add(3 * 24 * time.Hour)})
	d, _ := later.Habit("daily")
	w, _ := later.Habit("weekly")
	assert.Equal(t, 0, d.CurrentStreak)
	assert.Equal(t, 1, d.LongestStreak)
	assert.Equal(t, 1, w.CurrentStreak)
}

func TestFinanceCRUD(t *testing.T) {
	s := apply(Initial(),
		AddBudget{Budget: entity.Budget{ID: "b", Category: "Food", Amount: 100, Month: "2025-03"}},
		AddExpense{Expense: entity.Expense{ID: "x", Description: "lunch", Amount: 12, Category: "Food"}},
		AddIncome{Income: entity.Income{ID: "i", Description: "pay", Amount: 1000, Source: "Salary"}},
		AddFinancialGoal{Goal: entity.FinancialGoal{ID: "g", Title: "rainy day", TargetAmount: 500}},
		UpdateBudget{Budget: entity.Budget{ID: "b", Category: "Food", Amount: 150, Month: "2025-03"}},
		DeleteExpense{ID: "x"},
	)
	b, _ := s.Budget("b")
	assert.Equal(t, 150.0, b.Amount)
	assert.Empty(t, s.Finance.Expenses)
	assert.Len(t, s.Finance.Income, 1)
	assert.Len(t, s.Finance.FinancialGoals, 1)
	assert.Equal(t, entity.DefaultExpenseCategories(), s.Finance.ExpenseCategories)
}

func TestRepairLinks(t *testing.T) {
	s := Initial()
	s.Notes = []entity.Note{{ID: "a", LinkedTasks: []string{"ghost"}}}
	s = Reduce(s, RepairLinks{})
	assert.Empty(t, s.Notes[0].LinkedTasks)
}

func TestHydrateReplacesTree(t *testing.T) {
	loaded := Initial()
	loaded.DarkMode = true
	s := Reduce(Reduce(Initial(), AddTask{Task: entity.Task{ID: "x"}}), Hydrate{State: loaded})
	assert.True(t, s.DarkMode)
	assert.Empty(t, s.Tasks)
}
