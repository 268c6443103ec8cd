package link

import (
	"fmt"

	"tableflip.dev/mindgrid/pkg/entity"
)

// Graph is the slice of state the linking rules operate over.
type Graph struct {
	Tasks      []entity.Task
	Goals      []entity.Goal
	Notes      []entity.Note
	Events     []entity.Event
	Highlights []entity.Highlight
}

// Problem classifies an integrity violation.
type Problem string

const (
	// ProblemDangling is a reference to an id that does not exist.
	ProblemDangling Problem = "dangling"
	// ProblemDuplicate is an id listed more than once in one link list.
	ProblemDuplicate Problem = "duplicate"
	// ProblemAsymmetric is a note link, or a highlight/note pair, without its
	// reverse.
	ProblemAsymmetric Problem = "asymmetric"
	// ProblemExclusive is an event carrying both a task and a project link.
	ProblemExclusive Problem = "exclusive"
)

// Finding describes one integrity violation.
type Finding struct {
	Problem Problem `json:"problem"`
	Kind    string  `json:"kind"`
	ID      string  `json:"id"`
	Field   string  `json:"field"`
	Target  string  `json:"target,omitempty"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %s.%s -> %q (%s)", f.Kind, f.ID, f.Field, f.Target, f.Problem)
}

type index struct {
	tasks      map[string]struct{}
	goals      map[string]struct{}
	notes      map[string]entity.Note
	highlights map[string]entity.Highlight
}

func newIndex(g Graph) index {
	idx := index{
		tasks:      make(map[string]struct{}, len(g.Tasks)),
		goals:      make(map[string]struct{}, len(g.Goals)),
		notes:      make(map[string]entity.Note, len(g.Notes)),
		highlights: make(map[string]entity.Highlight, len(g.Highlights)),
	}
	for _, t := range g.Tasks {
		idx.tasks[t.ID] = struct{}{}
	}
	for _, goal := range g.Goals {
		idx.goals[goal.ID] = struct{}{}
	}
	for _, n := range g.Notes {
		idx.notes[n.ID] = n
	}
	for _, h := range g.Highlights {
		idx.highlights[h.ID] = h
	}
	return idx
}

// Audit walks every link field and reports violations. It never modifies g.
func Audit(g Graph) []Finding {
	idx := newIndex(g)
	var findings []Finding

	list := func(kind, id, field string, ids []string, exists func(string) bool) {
		seen := make(map[string]bool, len(ids))
		for _, target := range ids {
			if seen[target] {
				findings = append(findings, Finding{Problem: ProblemDuplicate, Kind: kind, ID: id, Field: field, Target: target})
				continue
			}
			seen[target] = true
			if !exists(target) {
				findings = append(findings, Finding{Problem: ProblemDangling, Kind: kind, ID: id, Field: field, Target: target})
			}
		}
	}

	for _, n := range g.Notes {
		list("note", n.ID, "linkedTasks", n.LinkedTasks, idx.hasTask)
		list("note", n.ID, "linkedGoals", n.LinkedGoals, idx.hasGoal)
		list("note", n.ID, "linkedNoteIds", n.LinkedNoteIDs, idx.hasNote)
		for _, other := range n.LinkedNoteIDs {
			peer, ok := idx.notes[other]
			if ok && !Contains(peer.LinkedNoteIDs, n.ID) {
				findings = append(findings, Finding{Problem: ProblemAsymmetric, Kind: "note", ID: n.ID, Field: "linkedNoteIds", Target: other})
			}
		}
		if n.LinkedHighlightID != "" {
			h, ok := idx.highlights[n.LinkedHighlightID]
			switch {
			case !ok:
				findings = append(findings, Finding{Problem: ProblemDangling, Kind: "note", ID: n.ID, Field: "linkedHighlightId", Target: n.LinkedHighlightID})
			case h.LinkedNoteID != n.ID:
				findings = append(findings, Finding{Problem: ProblemAsymmetric, Kind: "note", ID: n.ID, Field: "linkedHighlightId", Target: n.LinkedHighlightID})
			}
		}
	}
	for _, e := range g.Events {
		if e.LinkedTaskID != "" && e.LinkedProjectID != "" {
			findings = append(findings, Finding{Problem: ProblemExclusive, Kind: "event", ID: e.ID, Field: "linkedProjectId", Target: e.LinkedProjectID})
		}
		if e.LinkedTaskID != "" && !idx.hasTask(e.LinkedTaskID) {
			findings = append(findings, Finding{Problem: ProblemDangling, Kind: "event", ID: e.ID, Field: "linkedTaskId", Target: e.LinkedTaskID})
		}
		if e.LinkedProjectID != "" && !idx.hasGoal(e.LinkedProjectID) {
			findings = append(findings, Finding{Problem: ProblemDangling, Kind: "event", ID: e.ID, Field: "linkedProjectId", Target: e.LinkedProjectID})
		}
	}
	for _, h := range g.Highlights {
		if h.LinkedNoteID == "" {
			continue
		}
		n, ok := idx.notes[h.LinkedNoteID]
		switch {
		case !ok:
			findings = append(findings, Finding{Problem: ProblemDangling, Kind: "highlight", ID: h.ID, Field: "linkedNoteId", Target: h.LinkedNoteID})
		case n.LinkedHighlightID != h.ID:
			findings = append(findings, Finding{Problem: ProblemAsymmetric, Kind: "highlight", ID: h.ID, Field: "linkedNoteId", Target: h.LinkedNoteID})
		}
	}
	return findings
}

// Repair returns a graph with every Audit finding resolved: dangling ids are
// dropped, duplicates collapsed, asymmetric note links completed, highlight
// pairs made one to one and project links cleared on events that also link a
// task. Slices without findings keep their identity.
func Repair(g Graph) Graph {
	idx := newIndex(g)

	notes := mapNotes(g.Notes, func(n entity.Note) (entity.Note, bool) {
		dirty := false
		clean := func(ids []string, exists func(string) bool) []string {
			ids, d1 := Dedupe(ids)
			ids, d2 := Filter(ids, func(id string) bool { return exists(id) && id != n.ID })
			dirty = dirty || d1 || d2
			return ids
		}
		n.LinkedTasks = clean(n.LinkedTasks, idx.hasTask)
		n.LinkedGoals = clean(n.LinkedGoals, idx.hasGoal)
		n.LinkedNoteIDs = clean(n.LinkedNoteIDs, idx.hasNote)
		if n.LinkedHighlightID != "" && !idx.hasHighlight(n.LinkedHighlightID) {
			n.LinkedHighlightID = ""
			dirty = true
		}
		return n, dirty
	})

	// Complete half links so every surviving note link is symmetric.
	for _, n := range notes {
		for _, other := range n.LinkedNoteIDs {
			notes = Notes(notes, n.ID, other)
		}
	}

	events := mapEvents(g.Events, func(e entity.Event) (entity.Event, bool) {
		dirty := false
		if e.LinkedTaskID != "" && !idx.hasTask(e.LinkedTaskID) {
			e.LinkedTaskID = ""
			dirty = true
		}
		if e.LinkedProjectID != "" && !idx.hasGoal(e.LinkedProjectID) {
			e.LinkedProjectID = ""
			dirty = true
		}
		if e.LinkedTaskID != "" && e.LinkedProjectID != "" {
			e.LinkedProjectID = ""
			dirty = true
		}
		return e, dirty
	})

	highlights := mapHighlights(g.Highlights, func(h entity.Highlight) (entity.Highlight, bool) {
		if h.LinkedNoteID == "" || idx.hasNote(h.LinkedNoteID) {
			return h, false
		}
		h.LinkedNoteID = ""
		return h, true
	})
	notes, highlights = pairHighlights(notes, highlights)

	return Graph{
		Tasks:      g.Tasks,
		Goals:      g.Goals,
		Notes:      notes,
		Events:     events,
		Highlights: highlights,
	}
}

func (i index) hasTask(id string) bool {
	_, ok := i.tasks[id]
	return ok
}

func (i index) hasGoal(id string) bool {
	_, ok := i.goals[id]
	return ok
}

func (i index) hasNote(id string) bool {
	_, ok := i.notes[id]
	return ok
}

func (i index) hasHighlight(id string) bool {
	_, ok := i.highlights[id]
	return ok
}
