package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/timeutil"
)

// Agenda lists what needs attention around now.
type Agenda struct {
	Overdue   []entity.Task  `json:"overdue"`
	DueToday  []entity.Task  `json:"dueToday"`
	Events    []entity.Event `json:"events"`
	Reminders []Reminder     `json:"reminders"`
	// AtRisk holds habits with a live streak that were not completed in the
	// current period.
	AtRisk []entity.Habit `json:"atRisk"`
}

// Reminder is an event whose reminder fires within the agenda window.
type Reminder struct {
	Event  entity.Event `json:"event"`
	FireAt time.Time    `json:"fireAt"`
}

// Agenda collects open tasks that are overdue or due today, today's events,
// reminders firing in the next horizon, and habits whose streak ends if not
// completed today.
func (s *Service) Agenda(ctx context.Context, horizon time.Duration) (Agenda, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return Agenda{}, err
		}
	}
	st, err := s.State()
	if err != nil {
		return Agenda{}, err
	}
	now := s.now()
	today := timeutil.StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	var out Agenda
	for _, t := range st.Tasks {
		if t.Completed || !entity.IsSet(t.DueDate) {
			continue
		}
		switch due := t.DueDate.Time; {
		case due.Before(today):
			out.Overdue = append(out.Overdue, t)
		case due.Before(tomorrow):
			out.DueToday = append(out.DueToday, t)
		}
	}
	sort.SliceStable(out.Overdue, func(i, j int) bool {
		return out.Overdue[i].DueDate.Before(out.Overdue[j].DueDate.Time)
	})

	for _, e := range st.Events {
		if e.Overlaps(today, tomorrow) {
			out.Events = append(out.Events, e)
		}
		if at, ok := e.ReminderAt(); ok && !at.Before(now) && !at.After(now.Add(horizon)) {
			out.Reminders = append(out.Reminders, Reminder{Event: e, FireAt: at})
		}
	}
	sort.SliceStable(out.Events, func(i, j int) bool {
		return out.Events[i].StartTime.Before(out.Events[j].StartTime.Time)
	})
	sort.SliceStable(out.Reminders, func(i, j int) bool {
		return out.Reminders[i].FireAt.Before(out.Reminders[j].FireAt)
	})

	for _, h := range st.Habits {
		if h.CurrentStreak == 0 || h.StreakBroken(now) {
			continue
		}
		if h.StreakBroken(tomorrow) {
			out.AtRisk = append(out.AtRisk, h)
		}
	}
	return out, nil
}
