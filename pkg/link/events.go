package link

import (
	"tableflip.dev/mindgrid/pkg/entity"
)

func mapEvents(events []entity.Event, fn func(e entity.Event) (entity.Event, bool)) []entity.Event {
	var out []entity.Event
	for i := range events {
		next, changed := fn(events[i])
		if !changed {
			if out != nil {
				out[i] = events[i]
			}
			continue
		}
		if out == nil {
			out = make([]entity.Event, len(events))
			copy(out, events[:i])
		}
		out[i] = next
	}
	if out == nil {
		return events
	}
	return out
}

// EventToTask links the event to taskID and clears any project link.
func EventToTask(events []entity.Event, eventID, taskID string) []entity.Event {
	return mapEvents(events, func(e entity.Event) (entity.Event, bool) {
		if e.ID != eventID {
			return e, false
		}
		if e.LinkedTaskID == taskID && e.LinkedProjectID == "" {
			return e, false
		}
		e.LinkedTaskID = taskID
		e.LinkedProjectID = ""
		return e, true
	})
}

// EventToProject links the event to projectID and clears any task link.
func EventToProject(events []entity.Event, eventID, projectID string) []entity.Event {
	return mapEvents(events, func(e entity.Event) (entity.Event, bool) {
		if e.ID != eventID {
			return e, false
		}
		if e.LinkedProjectID == projectID && e.LinkedTaskID == "" {
			return e, false
		}
		e.LinkedProjectID = projectID
		e.LinkedTaskID = ""
		return e, true
	})
}

// UnlinkEvent clears both event links.
func UnlinkEvent(events []entity.Event, eventID string) []entity.Event {
	return mapEvents(events, func(e entity.Event) (entity.Event, bool) {
		if e.ID != eventID || (e.LinkedTaskID == "" && e.LinkedProjectID == "") {
			return e, false
		}
		e.LinkedTaskID = ""
		e.LinkedProjectID = ""
		return e, true
	})
}

// ExclusiveEvent enforces the task XOR project rule on a freshly supplied
// event. When both are set the task link wins.
func ExclusiveEvent(e entity.Event) entity.Event {
	if e.LinkedTaskID != "" && e.LinkedProjectID != "" {
		e.LinkedProjectID = ""
	}
	return e
}

func mapHighlights(highlights []entity.Highlight, fn func(h entity.Highlight) (entity.Highlight, bool)) []entity.Highlight {
	var out []entity.Highlight
	for i := range highlights {
		next, changed := fn(highlights[i])
		if !changed {
			if out != nil {
				out[i] = highlights[i]
			}
			continue
		}
		if out == nil {
			out = make([]entity.Highlight, len(highlights))
			copy(out, highlights[:i])
		}
		out[i] = next
	}
	if out == nil {
		return highlights
	}
	return out
}
