package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultWindow is used when a window flag is left empty.
const DefaultWindow = "1w"

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
)

// span is one window unit. The first name is the canonical label.
type span struct {
	names []string
	size  time.Duration
	// label marks units that FormatWindow emits.
	label bool
}

var spans = []span{
	{names: []string{"mo", "month", "months"}, size: month},
	{names: []string{"w", "wk", "wks", "week", "weeks"}, size: week, label: true},
	{names: []string{"d", "day", "days"}, size: day, label: true},
	{names: []string{"h", "hr", "hrs", "hour", "hours"}, size: time.Hour, label: true},
	{names: []string{"m", "min", "mins", "minute", "minutes"}, size: time.Minute, label: true},
	{names: []string{"s", "sec", "secs", "second", "seconds"}, size: time.Second, label: true},
}

func lookupSpan(name string) (time.Duration, bool) {
	for _, s := range spans {
		for _, n := range s.names {
			if n == name {
				return s.size, true
			}
		}
	}
	return 0, false
}

// ParseWindow reads windows like "3d", "1mo" or "1w 2d 6h" and returns the
// total with its normalized label. A month is thirty days and empty input is
// DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		s = DefaultWindow
	}

	var total time.Duration
	for i := 0; i < len(s); {
		for i < len(s) && s[i] == ' ' {
			i++
		}
		if i == len(s) {
			break
		}
		start := i
		for i < len(s) && unicode.IsDigit(rune(s[i])) {
			i++
		}
		if start == i {
			return 0, "", fmt.Errorf("window %q: expected a number at %q", input, s[start:])
		}
		n, err := strconv.ParseInt(s[start:i], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("window %q: %w", input, err)
		}
		for i < len(s) && s[i] == ' ' {
			i++
		}
		unitStart := i
		for i < len(s) && unicode.IsLetter(rune(s[i])) {
			i++
		}
		size, ok := lookupSpan(s[unitStart:i])
		if !ok {
			return 0, "", fmt.Errorf("window %q: unknown unit %q", input, s[unitStart:i])
		}
		total += time.Duration(n) * size
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("window %q: must be longer than zero", input)
	}
	return total, FormatWindow(total), nil
}

// FormatWindow prints d as compact week through second tokens, e.g. "4w2d".
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, s := range spans {
		if !s.label || d < s.size {
			continue
		}
		fmt.Fprintf(&b, "%d%s", d/s.size, s.names[0])
		d %= s.size
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}
