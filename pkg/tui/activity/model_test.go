package activity

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
)

func TestViewListsNewestFirst(t *testing.T) {
	at := time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC)
	m := New()
	m.SetSize(60, 8)
	m.SetEntries([]state.Activity{
		{At: entity.Timestamp{Time: at}, Module: "tasks", Action: "completed"},
		{At: entity.Timestamp{Time: at.Add(time.Hour)}, Module: "habits", Action: "checked", Count: 3},
	})

	out := m.View()
	first := strings.Index(out, "checked x3")
	second := strings.Index(out, "completed")
	if first < 0 || second < 0 {
		t.Fatalf("missing entries:\n%s", out)
	}
	if first > second {
		t.Fatalf("expected newest entry first:\n%s", out)
	}
	if !strings.Contains(out, "[habits]") {
		t.Fatalf("expected module label:\n%s", out)
	}
}

func TestViewGroupsByDay(t *testing.T) {
	day := time.Date(2025, time.March, 4, 12, 0, 0, 0, time.Local)
	m := New()
	m.SetSize(60, 12)
	m.SetEntries([]state.Activity{
		{At: entity.At(day), Module: "notes", Action: "added"},
		{At: entity.At(day.Add(time.Hour)), Module: "tasks", Action: "added"},
		{At: entity.At(day.AddDate(0, 0, 1)), Module: "tasks", Action: "completed"},
	})

	out := m.View()
	wed := strings.Index(out, "Wed Mar 5")
	tue := strings.Index(out, "Tue Mar 4")
	if wed < 0 || tue < 0 || wed > tue {
		t.Fatalf("expected newest day heading first:\n%s", out)
	}
	if strings.Count(out, "Tue Mar 4") != 1 {
		t.Fatalf("expected one heading per day:\n%s", out)
	}
}

func TestViewEmpty(t *testing.T) {
	m := New()
	if m.View() != "" {
		t.Fatal("unsized panel should render nothing")
	}
	m.SetSize(40, 5)
	if !strings.Contains(m.View(), "No activity yet") {
		t.Fatalf("expected placeholder:\n%s", m.View())
	}
}
