package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DayLayout is the calendar day format accepted on the command line.
	DayLayout = "2006-01-02"
	// MonthLayout is the YYYY-MM format used for budgets.
	MonthLayout = "2006-01"
	// MinuteLayout is the local date-time format used for event times.
	MinuteLayout = "2006-01-02T15:04"
)

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns the Sunday that starts t's week.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// EndOfWeek returns the end of the Saturday that closes t's week.
func EndOfWeek(t time.Time) time.Time {
	return EndOfDay(StartOfWeek(t).AddDate(0, 0, 6))
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// DaysBetween counts calendar days from start to end, ignoring the time of day.
func DaysBetween(start, end time.Time) int {
	s := StartOfDay(start)
	e := StartOfDay(end)
	days := 0
	for s.Before(e) {
		s = s.AddDate(0, 0, 1)
		days++
	}
	return days
}

// MonthKey renders t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// ParseMonth parses YYYY-MM in loc. Empty input yields the month of now.
func ParseMonth(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StartOfMonth(now), nil
	}
	t, err := time.ParseInLocation(MonthLayout, raw, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", raw)
	}
	return t, nil
}

// ParseDay parses YYYY-MM-DD (or "today"/"tomorrow"/"yesterday") in now's
// location.
func ParseDay(raw string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "today":
		return StartOfDay(now), nil
	case "tomorrow":
		return StartOfDay(now).AddDate(0, 0, 1), nil
	case "yesterday":
		return StartOfDay(now).AddDate(0, 0, -1), nil
	}
	t, err := time.ParseInLocation(DayLayout, strings.TrimSpace(raw), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return t, nil
}

// ParseMoment accepts YYYY-MM-DDTHH:MM, RFC3339 or a bare day.
func ParseMoment(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(MinuteLayout, raw, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return ParseDay(raw, now)
}
