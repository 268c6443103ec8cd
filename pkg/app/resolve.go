package app

import "tableflip.dev/mindgrid/pkg/state"

// Fallback display names for ids that no longer resolve.
const (
	UnknownTask = "Unknown Task"
	UnknownGoal = "Unknown Goal"
	UnknownNote = "Unknown Note"
)

func ResolveTaskTitle(st state.State, id string) string {
	if t, ok := st.Task(id); ok {
		return t.Title
	}
	return UnknownTask
}

func ResolveGoalTitle(st state.State, id string) string {
	if g, ok := st.Goal(id); ok {
		return g.Title
	}
	return UnknownGoal
}

func ResolveNoteTitle(st state.State, id string) string {
	if n, ok := st.Note(id); ok {
		return n.Title
	}
	return UnknownNote
}
