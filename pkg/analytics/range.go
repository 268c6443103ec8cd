// Package analytics derives read-only reports from MindGrid state.
package analytics

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/mindgrid/pkg/timeutil"
)

// Range selects the reporting window.
type Range string

const (
	Week    Range = "week"
	Month   Range = "month"
	Quarter Range = "quarter"
)

// Ranges lists the supported windows in display order.
func Ranges() []Range {
	return []Range{Week, Month, Quarter}
}

// ParseRange accepts week, month or quarter. Empty input means week.
func ParseRange(raw string) (Range, error) {
	switch Range(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Week:
		return Week, nil
	case Month:
		return Month, nil
	case Quarter:
		return Quarter, nil
	}
	return "", fmt.Errorf("unknown range %q (want week, month or quarter)", raw)
}

// Bounds returns the inclusive window for r around now. Weeks start on
// Sunday; a quarter is the trailing 90 days.
func (r Range) Bounds(now time.Time) (time.Time, time.Time) {
	switch r {
	case Month:
		return timeutil.StartOfMonth(now), timeutil.EndOfMonth(now)
	case Quarter:
		return now.AddDate(0, 0, -90), now
	default:
		return timeutil.StartOfWeek(now), timeutil.EndOfWeek(now)
	}
}

// Days counts the calendar days covered by r, both ends included.
func (r Range) Days(now time.Time) int {
	start, end := r.Bounds(now)
	return timeutil.DaysBetween(start, end) + 1
}
