package link

import (
	"tableflip.dev/mindgrid/pkg/entity"
)

// mapNotes applies fn to every note, copying the slice only when fn reports a
// change.
func mapNotes(notes []entity.Note, fn func(n entity.Note) (entity.Note, bool)) []entity.Note {
	var out []entity.Note
	for i := range notes {
		next, changed := fn(notes[i])
		if !changed {
			if out != nil {
				out[i] = notes[i]
			}
			continue
		}
		if out == nil {
			out = make([]entity.Note, len(notes))
			copy(out, notes[:i])
		}
		out[i] = next
	}
	if out == nil {
		return notes
	}
	return out
}

// NoteToTask adds taskID to the note's LinkedTasks. Repeated calls keep a
// single entry.
func NoteToTask(notes []entity.Note, noteID, taskID string) []entity.Note {
	return mapNotes(notes, func(n entity.Note) (entity.Note, bool) {
		if n.ID != noteID {
			return n, false
		}
		ids, changed := Add(n.LinkedTasks, taskID)
		n.LinkedTasks = ids
		return n, changed
	})
}

// NoteFromTask removes taskID from the note's LinkedTasks.
func NoteFromTask(notes []entity.Note, noteID, taskID string) []entity.Note {
	return mapNotes(notes, func(n entity.Note) (entity.Note, bool) {
		if n.ID != noteID {
			return n, false
		}
		ids, changed := Remove(n.LinkedTasks, taskID)
		n.LinkedTasks = ids
		return n, changed
	})
}

// NoteToGoal adds goalID to the note's LinkedGoals.
func NoteToGoal(notes []entity.Note, noteID, goalID string) []entity.Note {
	return mapNotes(notes, func(n entity.Note) (entity.Note, bool) {
		if n.ID != noteID {
			return n, false
		}
		ids, changed := Add(n.LinkedGoals, goalID)
		n.LinkedGoals = ids
		return n, changed
	})
}

// NoteFromGoal removes goalID from the note's LinkedGoals.
func NoteFromGoal(notes []entity.Note, noteID, goalID string) []entity.Note {
	return mapNotes(notes, func(n entity.Note) (entity.Note, bool) {
		if n.ID != noteID {
			return n, false
		}
		ids, changed := Remove(n.LinkedGoals, goalID)
		n.LinkedGoals = ids
		return n, changed
	})
}

// Notes links a and b in both directions. Both notes must exist; linking a
// note to itself is ignored.
func Notes(notes []entity.Note, a, b string) []entity.Note {
	if a == b || !hasNote(notes, a) || !hasNote(notes, b) {
		return notes
	}
	return mapNotes(notes, func(n entity.Note) (entity.Note, bool) {
		var other string
		switch n.ID {
		case a:
			other = b
		case b:
			other = a
		default:
			return n, false
		}
		ids, changed := Add(n.LinkedNoteIDs, other)
		n.LinkedNoteIDs = ids
		return n, changed
	})
}

// UnlinkNotes removes the a↔b pair from both notes.
func UnlinkNotes(notes []entity.Note, a, b string) []entity.Note {
	return mapNotes(notes, func(n entity.Note) (entity.Note, bool) {
		var other string
		switch n.ID {
		case a:
			other = b
		case b:
			other = a
		default:
			return n, false
		}
		ids, changed := Remove(n.LinkedNoteIDs, other)
		n.LinkedNoteIDs = ids
		return n, changed
	})
}

func hasNote(notes []entity.Note, id string) bool {
	for i := range notes {
		if notes[i].ID == id {
			return true
		}
	}
	return false
}
