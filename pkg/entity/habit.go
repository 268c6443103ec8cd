package entity

import "time"

// periodIndex maps t to a monotonically increasing bucket number for the
// habit's frequency, in local time.
func (f Frequency) periodIndex(t time.Time) int {
	t = t.Local()
	switch f {
	case Weekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		day = day.AddDate(0, 0, -int(day.Weekday()))
		return int(day.Unix() / (7 * 24 * 60 * 60))
	case Monthly:
		return t.Year()*12 + int(t.Month())
	default:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return int(day.Unix() / (24 * 60 * 60))
	}
}

// StreakBroken reports whether at least one whole period passed between the
// last completion and at without the habit being completed.
func (h Habit) StreakBroken(at time.Time) bool {
	if h.CurrentStreak == 0 || !IsSet(h.LastCompleted) {
		return false
	}
	return h.Frequency.periodIndex(at)-h.Frequency.periodIndex(h.LastCompleted.Time) > 1
}

// CompletedOn reports whether the habit was last completed on the same local
// day as at.
func (h Habit) CompletedOn(at time.Time) bool {
	return IsSet(h.LastCompleted) && h.LastCompleted.SameDay(at)
}
