package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/state"
	"tableflip.dev/mindgrid/pkg/store"
)

func newTestModel(t *testing.T) (*Model, *app.Service, *time.Time) {
	t.Helper()
	now := time.Date(2025, time.March, 5, 9, 0, 0, 0, time.Local)
	svc := app.NewService(store.New(state.Initial()), nil)
	svc.Now = func() time.Time { return now }
	m := New(context.Background(), svc)
	t.Cleanup(m.close)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, svc, &now
}

// view renders m without styling so assertions see plain text.
func view(m *Model) string {
	s, _ := m.View()
	return ansi.Strip(s)
}

func TestViewListsTabs(t *testing.T) {
	m, _, _ := newTestModel(t)
	out := view(m)
	for _, name := range tabNames {
		if !strings.Contains(out, name) {
			t.Fatalf("expected tab %q in view:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "nothing due") {
		t.Fatalf("expected empty agenda on dashboard:\n%s", out)
	}
}

func TestTasksTabTogglesSelection(t *testing.T) {
	m, svc, _ := newTestModel(t)
	ctx := context.Background()
	if _, err := svc.AddTask(ctx, app.TaskInput{Title: "Groceries"}); err != nil {
		t.Fatal(err)
	}
	second, err := svc.AddTask(ctx, app.TaskInput{Title: "Laundry"})
	if err != nil {
		t.Fatal(err)
	}

	m.handleKey("2")
	if m.active != tabTasks {
		t.Fatalf("expected tasks tab, got %d", m.active)
	}
	out := view(m)
	if !strings.Contains(out, "Tasks (2)") || !strings.Contains(out, "Laundry") {
		t.Fatalf("unexpected tasks view:\n%s", out)
	}

	m.handleKey("j")
	m.handleKey("space")
	st, _ := svc.State()
	got, _ := st.Task(second.ID)
	if !got.Completed {
		t.Fatalf("expected %s to be completed", second.Title)
	}
	if st.Tasks[0].Completed {
		t.Fatalf("first task should be untouched")
	}
	if m.status != "Completed Laundry" {
		t.Fatalf("unexpected status %q", m.status)
	}

	// Cursor clamps at the last row.
	m.handleKey("j")
	m.handleKey("j")
	if m.cursor[tabTasks] != 1 {
		t.Fatalf("cursor should clamp to 1, got %d", m.cursor[tabTasks])
	}
}

func TestQuickAddNote(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m.handleKey("4")
	m.startAdd()
	if !m.adding {
		t.Fatal("expected prompt to open")
	}
	m.input.SetValue("Ideas: try the new planner")
	m.handleInputKey(tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.adding {
		t.Fatal("expected prompt to close")
	}

	st, _ := svc.State()
	if len(st.Notes) != 1 {
		t.Fatalf("expected one note, got %d", len(st.Notes))
	}
	if st.Notes[0].Title != "Ideas" || st.Notes[0].Content != "try the new planner" {
		t.Fatalf("unexpected note %+v", st.Notes[0])
	}
}

func TestQuickAddUnsupportedTab(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.handleKey("5")
	m.startAdd()
	if m.adding {
		t.Fatal("calendar has no quick add")
	}
	if !strings.HasPrefix(m.status, "Nothing to add") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestHabitsTabCompletes(t *testing.T) {
	m, svc, _ := newTestModel(t)
	h, err := svc.AddHabit(context.Background(), app.HabitInput{Name: "Stretch", TargetCount: 1})
	if err != nil {
		t.Fatal(err)
	}
	m.handleKey("3")
	m.handleKey("x")
	st, _ := svc.State()
	got, _ := st.Habit(h.ID)
	if got.CurrentStreak != 1 {
		t.Fatalf("expected streak 1, got %d", got.CurrentStreak)
	}
}

func TestToggleThemePersistsDarkMode(t *testing.T) {
	m, svc, _ := newTestModel(t)
	if m.th.Dark {
		t.Fatal("initial state is light")
	}
	m.handleKey("d")
	st, _ := svc.State()
	if !st.DarkMode || !m.th.Dark {
		t.Fatal("expected dark mode after toggle")
	}
}

func TestSwitchingTabsTracksModuleTime(t *testing.T) {
	m, svc, now := newTestModel(t)
	*now = now.Add(5 * time.Minute)
	m.handleKey("tab")
	if m.active != tabTasks {
		t.Fatalf("expected tasks tab, got %d", m.active)
	}
	st, _ := svc.State()
	if got := st.Analytics.ModuleTime["dashboard"]; got != 5*time.Minute {
		t.Fatalf("expected 5m on dashboard, got %s", got)
	}

	// Sub-second visits are not recorded.
	m.handleKey("shift+tab")
	st, _ = svc.State()
	if _, ok := st.Analytics.ModuleTime["tasks"]; ok {
		t.Fatal("tasks visit was too short to record")
	}
}

func TestCycleRange(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.handleKey("8")
	m.handleKey("r")
	if m.rng != "month" {
		t.Fatalf("expected month, got %s", m.rng)
	}
	if !strings.Contains(view(m), "Analytics (month") {
		t.Fatalf("expected month analytics:\n%s", view(m))
	}
}

func TestBodyScrollsWithoutSelection(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 6})
	m.handleKey("8")
	if m.body.TotalLineCount() <= m.body.Height() {
		t.Fatalf("analytics should overflow a %d-row body, got %d lines", m.body.Height(), m.body.TotalLineCount())
	}

	m.handleKey("j")
	if m.body.YOffset != 1 {
		t.Fatalf("expected offset 1 after j, got %d", m.body.YOffset)
	}
	m.handleKey("k")
	if m.body.YOffset != 0 {
		t.Fatalf("expected offset 0 after k, got %d", m.body.YOffset)
	}
	m.handleKey("pgdown")
	if m.body.YOffset == 0 {
		t.Fatal("expected pgdown to scroll")
	}
	m.handleKey("pgup")
	if m.body.YOffset != 0 {
		t.Fatalf("expected pgup back to top, got %d", m.body.YOffset)
	}
}

func TestBar(t *testing.T) {
	if got := bar(50, 10); got != "█████░░░░░" {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := bar(150, 4); got != "████" {
		t.Fatalf("bar should clamp, got %q", got)
	}
}

func TestActivityPanelShowsLoggedActions(t *testing.T) {
	m, svc, _ := newTestModel(t)
	if _, err := svc.AddTask(context.Background(), app.TaskInput{Title: "Dishes"}); err != nil {
		t.Fatal(err)
	}
	m.handleKey("2")
	m.handleKey("space")
	m.handleKey("v")
	if !m.showActivity {
		t.Fatal("expected activity panel")
	}
	out := view(m)
	if !strings.Contains(out, "completed task") || !strings.Contains(out, "[tasks]") {
		t.Fatalf("expected logged activity:\n%s", out)
	}
	st, _ := svc.State()
	if n := len(st.Analytics.DailyActivity); n != 1 {
		t.Fatalf("expected one activity entry, got %d", n)
	}
}

func TestHelpToggles(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.handleKey("?")
	if !m.showHelp || m.help == nil {
		t.Fatal("expected help to open")
	}
	if !strings.Contains(view(m), "quick add") {
		t.Fatalf("expected help text:\n%s", view(m))
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.showHelp {
		t.Fatal("expected esc to close help")
	}
}
