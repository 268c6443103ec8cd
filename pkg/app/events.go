package app

import (
	"context"
	"sort"
	"strings"
	"time"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
	"tableflip.dev/mindgrid/pkg/timeutil"
)

// EventInput is the editable part of an event. All-day events span the whole
// start day regardless of the times given.
type EventInput struct {
	Title           string    `json:"title" validate:"required"`
	Description     string    `json:"description"`
	Start           time.Time `json:"startTime" validate:"required"`
	End             time.Time `json:"endTime"`
	AllDay          bool      `json:"isAllDay"`
	Type            string    `json:"type" validate:"omitempty,oneof=meeting work personal appointment reminder other"`
	Location        string    `json:"location"`
	Attendees       []string  `json:"attendees"`
	Reminder        *int      `json:"reminder" validate:"omitempty,gte=0"`
	Color           string    `json:"color" validate:"omitempty,color"`
	LinkedTaskID    string    `json:"linkedTaskId"`
	LinkedProjectID string    `json:"linkedProjectId"`
}

func (in EventInput) normalize() EventInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Attendees = normalizeTags(in.Attendees)
	if in.AllDay {
		in.Start = timeutil.StartOfDay(in.Start)
		in.End = time.Date(in.Start.Year(), in.Start.Month(), in.Start.Day(), 23, 59, 59, 0, in.Start.Location())
	} else if in.End.IsZero() {
		in.End = in.Start.Add(time.Hour)
	}
	return in
}

func (s *Service) buildEvent(st state.State, e entity.Event, in EventInput) (entity.Event, error) {
	typ, _ := entity.ParseEventType(in.Type)
	color, err := entity.NormalizeColor(in.Color, typ.DefaultColor())
	if err != nil {
		return e, invalid("color", "must be a hex color")
	}
	if in.LinkedTaskID != "" {
		if _, ok := st.Task(in.LinkedTaskID); !ok {
			return e, notFound("task", in.LinkedTaskID)
		}
	}
	if in.LinkedProjectID != "" {
		if _, ok := st.Goal(in.LinkedProjectID); !ok {
			return e, notFound("goal", in.LinkedProjectID)
		}
	}
	e.Title = in.Title
	e.Description = in.Description
	e.StartTime = entity.At(in.Start)
	e.EndTime = entity.At(in.End)
	e.IsAllDay = in.AllDay
	e.Type = typ
	e.Location = in.Location
	e.Attendees = in.Attendees
	e.Reminder = in.Reminder
	e.Color = color
	e.LinkedTaskID = in.LinkedTaskID
	e.LinkedProjectID = in.LinkedProjectID
	return e, nil
}

// AddEvent stores a new event. When both links are given the task link wins.
func (s *Service) AddEvent(ctx context.Context, in EventInput) (entity.Event, error) {
	in = in.normalize()
	if err := check(in); err != nil {
		return entity.Event{}, err
	}
	st, err := s.State()
	if err != nil {
		return entity.Event{}, err
	}
	e, err := s.buildEvent(st, entity.Event{ID: entity.NewID(), CreatedAt: entity.At(s.now())}, in)
	if err != nil {
		return e, err
	}
	next, err := s.dispatch(state.AddEvent{Event: e})
	if err != nil {
		return e, err
	}
	e, _ = next.Event(e.ID)
	return e, nil
}

func (s *Service) UpdateEvent(ctx context.Context, id string, in EventInput) (entity.Event, error) {
	in = in.normalize()
	if err := check(in); err != nil {
		return entity.Event{}, err
	}
	st, err := s.State()
	if err != nil {
		return entity.Event{}, err
	}
	e, ok := st.Event(id)
	if !ok {
		return entity.Event{}, notFound("event", id)
	}
	if e, err = s.buildEvent(st, e, in); err != nil {
		return e, err
	}
	next, err := s.dispatch(state.UpdateEvent{Event: e})
	if err != nil {
		return e, err
	}
	e, _ = next.Event(id)
	return e, nil
}

func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	_, err := s.dispatchExisting(state.DeleteEvent{ID: id}, func(st state.State) bool {
		_, ok := st.Event(id)
		return ok
	}, "event", id)
	return err
}

// LinkEventToTask points the event at a task, dropping any project link.
func (s *Service) LinkEventToTask(ctx context.Context, eventID, taskID string) (entity.Event, error) {
	return s.eventLink(eventID, state.LinkEventToTask{EventID: eventID, TaskID: taskID}, func(st state.State) error {
		if _, ok := st.Task(taskID); !ok {
			return notFound("task", taskID)
		}
		return nil
	})
}

// LinkEventToProject points the event at a goal, dropping any task link.
func (s *Service) LinkEventToProject(ctx context.Context, eventID, goalID string) (entity.Event, error) {
	return s.eventLink(eventID, state.LinkEventToProject{EventID: eventID, ProjectID: goalID}, func(st state.State) error {
		if _, ok := st.Goal(goalID); !ok {
			return notFound("goal", goalID)
		}
		return nil
	})
}

func (s *Service) UnlinkEvent(ctx context.Context, eventID string) (entity.Event, error) {
	return s.eventLink(eventID, state.UnlinkEvent{EventID: eventID}, nil)
}

func (s *Service) eventLink(eventID string, a state.Action, target func(state.State) error) (entity.Event, error) {
	st, err := s.State()
	if err != nil {
		return entity.Event{}, err
	}
	if _, ok := st.Event(eventID); !ok {
		return entity.Event{}, notFound("event", eventID)
	}
	if target != nil {
		if err := target(st); err != nil {
			return entity.Event{}, err
		}
	}
	next, err := s.dispatch(a)
	if err != nil {
		return entity.Event{}, err
	}
	e, _ := next.Event(eventID)
	return e, nil
}

// EventsBetween lists events intersecting [from, to), earliest first.
func (s *Service) EventsBetween(ctx context.Context, from, to time.Time) ([]entity.Event, error) {
	st, err := s.State()
	if err != nil {
		return nil, err
	}
	var out []entity.Event
	for _, e := range st.Events {
		if e.Overlaps(from, to) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime.Time)
	})
	return out, nil
}

// CalendarView selects the span shown by Calendar.
type CalendarView string

const (
	ViewDay   CalendarView = "day"
	ViewWeek  CalendarView = "week"
	ViewMonth CalendarView = "month"
)

// CalendarDay groups events by the day they touch.
type CalendarDay struct {
	Date   time.Time      `json:"date"`
	Events []entity.Event `json:"events"`
}

// Calendar returns one entry per day of the view around day. Multi-day
// events appear on every day they cover.
func (s *Service) Calendar(ctx context.Context, view CalendarView, day time.Time) ([]CalendarDay, error) {
	var from, to time.Time
	switch view {
	case ViewWeek:
		from, to = timeutil.StartOfWeek(day), timeutil.StartOfWeek(day).AddDate(0, 0, 7)
	case ViewMonth:
		from, to = timeutil.StartOfMonth(day), timeutil.StartOfMonth(day).AddDate(0, 1, 0)
	default:
		from, to = timeutil.StartOfDay(day), timeutil.StartOfDay(day).AddDate(0, 0, 1)
	}
	events, err := s.EventsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	var out []CalendarDay
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		cd := CalendarDay{Date: d}
		for _, e := range events {
			if e.Overlaps(d, d.AddDate(0, 0, 1)) {
				cd.Events = append(cd.Events, e)
			}
		}
		out = append(out, cd)
	}
	return out, nil
}
