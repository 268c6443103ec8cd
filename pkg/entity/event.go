package entity

import "time"

// Event is a calendar entry. At most one of LinkedTaskID and LinkedProjectID
// is set; project ids refer to goals.
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	StartTime       Timestamp `json:"startTime"`
	EndTime         Timestamp `json:"endTime"`
	IsAllDay        bool      `json:"isAllDay"`
	Type            EventType `json:"type"`
	Location        string    `json:"location,omitempty"`
	Attendees       []string  `json:"attendees,omitempty"`
	Reminder        *int      `json:"reminder,omitempty"`
	LinkedTaskID    string    `json:"linkedTaskId,omitempty"`
	LinkedProjectID string    `json:"linkedProjectId,omitempty"`
	Color           string    `json:"color"`
	CreatedAt       Timestamp `json:"createdAt"`
}

// Overlaps reports whether the event intersects [from, to).
func (e Event) Overlaps(from, to time.Time) bool {
	start := e.StartTime.Time
	end := e.EndTime.Time
	if end.Before(start) {
		end = start
	}
	return start.Before(to) && !end.Before(from)
}

// ReminderAt returns when the reminder should fire.
func (e Event) ReminderAt() (time.Time, bool) {
	if e.Reminder == nil {
		return time.Time{}, false
	}
	return e.StartTime.Add(-time.Duration(*e.Reminder) * time.Minute), true
}
