package link

import (
	"tableflip.dev/mindgrid/pkg/entity"
)

// PairHighlight links a highlight and a note one to one. A note that pointed
// at the highlight and a highlight that pointed at the note both lose their
// link. An empty noteID unpairs the highlight; an empty highlightID unpairs
// the note.
func PairHighlight(notes []entity.Note, highlights []entity.Highlight, highlightID, noteID string) ([]entity.Note, []entity.Highlight) {
	notes = mapNotes(notes, func(n entity.Note) (entity.Note, bool) {
		switch {
		case noteID != "" && n.ID == noteID:
			if n.LinkedHighlightID == highlightID {
				return n, false
			}
			n.LinkedHighlightID = highlightID
			return n, true
		case highlightID != "" && n.LinkedHighlightID == highlightID:
			n.LinkedHighlightID = ""
			return n, true
		}
		return n, false
	})
	highlights = mapHighlights(highlights, func(h entity.Highlight) (entity.Highlight, bool) {
		switch {
		case highlightID != "" && h.ID == highlightID:
			if h.LinkedNoteID == noteID {
				return h, false
			}
			h.LinkedNoteID = noteID
			return h, true
		case noteID != "" && h.LinkedNoteID == noteID:
			h.LinkedNoteID = ""
			return h, true
		}
		return h, false
	})
	return notes, highlights
}

// pairHighlights makes every highlight/note pair symmetric. Pairs that already
// agree are kept; other claims are honoured in highlight order while the note
// is free, and the rest are cleared.
func pairHighlights(notes []entity.Note, highlights []entity.Highlight) ([]entity.Note, []entity.Highlight) {
	claimed := make(map[string]string, len(notes))
	for _, n := range notes {
		if n.LinkedHighlightID != "" {
			claimed[n.ID] = n.LinkedHighlightID
		}
	}

	owner := make(map[string]string, len(highlights))
	for _, h := range highlights {
		if h.LinkedNoteID != "" && claimed[h.LinkedNoteID] == h.ID {
			owner[h.LinkedNoteID] = h.ID
		}
	}
	for _, h := range highlights {
		if h.LinkedNoteID == "" || !hasNote(notes, h.LinkedNoteID) {
			continue
		}
		if _, taken := owner[h.LinkedNoteID]; !taken {
			owner[h.LinkedNoteID] = h.ID
		}
	}

	highlights = mapHighlights(highlights, func(h entity.Highlight) (entity.Highlight, bool) {
		if h.LinkedNoteID == "" || owner[h.LinkedNoteID] == h.ID {
			return h, false
		}
		h.LinkedNoteID = ""
		return h, true
	})
	notes = mapNotes(notes, func(n entity.Note) (entity.Note, bool) {
		if n.LinkedHighlightID == owner[n.ID] {
			return n, false
		}
		n.LinkedHighlightID = owner[n.ID]
		return n, true
	})
	return notes, highlights
}
