package analytics

import (
	"sort"
	"time"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/timeutil"
)

// TrendPoint counts what was finished on one calendar day.
type TrendPoint struct {
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
	Tasks  int       `json:"tasks"`
	Habits int       `json:"habits"`
	Goals  int       `json:"goals"`
}

// Trend builds one point per day of r, ending on the range's last day.
// Tasks count by CompletedAt, habits by each recorded completion and goals by
// CompletedAt.
func Trend(tasks []entity.Task, habits []entity.Habit, goals []entity.Goal, now time.Time, r Range) []TrendPoint {
	_, end := r.Bounds(now)
	days := r.Days(now)
	last := timeutil.StartOfDay(end)

	points := make([]TrendPoint, days)
	index := make(map[string]int, days)
	for i := range points {
		day := last.AddDate(0, 0, -(days - 1 - i))
		points[i] = TrendPoint{Date: day, Label: day.Format("Jan 02")}
		index[day.Format(timeutil.DayLayout)] = i
	}
	bucket := func(t time.Time) (int, bool) {
		i, ok := index[t.In(last.Location()).Format(timeutil.DayLayout)]
		return i, ok
	}

	for _, t := range tasks {
		if !t.Completed || !entity.IsSet(t.CompletedAt) {
			continue
		}
		if i, ok := bucket(t.CompletedAt.Time); ok {
			points[i].Tasks++
		}
	}
	for _, h := range habits {
		for _, c := range h.Completions {
			if i, ok := bucket(c.Time); ok {
				points[i].Habits++
			}
		}
	}
	for _, g := range goals {
		if g.Status != entity.GoalCompleted || !entity.IsSet(g.CompletedAt) {
			continue
		}
		if i, ok := bucket(g.CompletedAt.Time); ok {
			points[i].Goals++
		}
	}
	return points
}

// ModuleTime is the tracked time for one module.
type ModuleTime struct {
	Module   string        `json:"module"`
	Duration time.Duration `json:"duration"`
	Share    float64       `json:"share"`
}

// ModuleTimes orders tracked module time from most to least, with each
// module's share of the total as a percentage.
func ModuleTimes(tracked map[string]time.Duration) []ModuleTime {
	var total time.Duration
	out := make([]ModuleTime, 0, len(tracked))
	for module, d := range tracked {
		total += d
		out = append(out, ModuleTime{Module: module, Duration: d})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Duration == out[j].Duration {
			return out[i].Module < out[j].Module
		}
		return out[i].Duration > out[j].Duration
	})
	if total > 0 {
		for i := range out {
			out[i].Share = float64(out[i].Duration) / float64(total) * 100
		}
	}
	return out
}
