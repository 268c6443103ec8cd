package link

import (
	"tableflip.dev/mindgrid/pkg/entity"
)

// SweepTask removes every reference to a deleted task.
func SweepTask(notes []entity.Note, events []entity.Event, taskID string) ([]entity.Note, []entity.Event) {
	notes = mapNotes(notes, func(n entity.Note) (entity.Note, bool) {
		ids, changed := Remove(n.LinkedTasks, taskID)
		n.LinkedTasks = ids
		return n, changed
	})
	events = mapEvents(events, func(e entity.Event) (entity.Event, bool) {
		if e.LinkedTaskID != taskID {
			return e, false
		}
		e.LinkedTaskID = ""
		return e, true
	})
	return notes, events
}

// SweepGoal removes every reference to a deleted goal, including event
// project links.
func SweepGoal(notes []entity.Note, events []entity.Event, goalID string) ([]entity.Note, []entity.Event) {
	notes = mapNotes(notes, func(n entity.Note) (entity.Note, bool) {
		ids, changed := Remove(n.LinkedGoals, goalID)
		n.LinkedGoals = ids
		return n, changed
	})
	events = mapEvents(events, func(e entity.Event) (entity.Event, bool) {
		if e.LinkedProjectID != goalID {
			return e, false
		}
		e.LinkedProjectID = ""
		return e, true
	})
	return notes, events
}

// SweepNote removes every reference to a deleted note from the remaining
// notes and from highlights.
func SweepNote(notes []entity.Note, highlights []entity.Highlight, noteID string) ([]entity.Note, []entity.Highlight) {
	notes = mapNotes(notes, func(n entity.Note) (entity.Note, bool) {
		ids, changed := Remove(n.LinkedNoteIDs, noteID)
		n.LinkedNoteIDs = ids
		return n, changed
	})
	highlights = mapHighlights(highlights, func(h entity.Highlight) (entity.Highlight, bool) {
		if h.LinkedNoteID != noteID {
			return h, false
		}
		h.LinkedNoteID = ""
		return h, true
	})
	return notes, highlights
}

// SweepHighlight clears LinkedHighlightID on any note pointing at the deleted
// highlight.
func SweepHighlight(notes []entity.Note, highlightID string) []entity.Note {
	return mapNotes(notes, func(n entity.Note) (entity.Note, bool) {
		if n.LinkedHighlightID != highlightID || highlightID == "" {
			return n, false
		}
		n.LinkedHighlightID = ""
		return n, true
	})
}
