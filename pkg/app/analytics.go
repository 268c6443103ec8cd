package app

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/mindgrid/pkg/analytics"
	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
)

// Dashboard is the analytics view for one range.
type Dashboard struct {
	Summary    analytics.Summary      `json:"summary"`
	Trend      []analytics.TrendPoint `json:"trend"`
	ModuleTime []analytics.ModuleTime `json:"moduleTime"`
}

// Analytics computes the dashboard for r as of now. Habit streaks are read
// as of now, so lapsed streaks do not inflate the average.
func (s *Service) Analytics(ctx context.Context, r analytics.Range) (Dashboard, error) {
	st, err := s.State()
	if err != nil {
		return Dashboard{}, err
	}
	now := s.now()
	habits := state.Reduce(st, state.ResetHabitStreaks{At: now}).Habits
	return Dashboard{
		Summary:    analytics.Summarize(st.Tasks, habits, st.Goals, now, r),
		Trend:      analytics.Trend(st.Tasks, habits, st.Goals, now, r),
		ModuleTime: analytics.ModuleTimes(st.Analytics.ModuleTime),
	}, nil
}

// TrackModuleTime adds d to the time spent in module.
func (s *Service) TrackModuleTime(ctx context.Context, module string, d time.Duration) error {
	module = strings.ToLower(strings.TrimSpace(module))
	if module == "" {
		return invalid("module", "is required")
	}
	if d <= 0 {
		return invalid("duration", "must be greater than 0")
	}
	_, err := s.dispatch(state.TrackModuleTime{Module: module, Duration: d})
	return err
}

// LogActivity appends to the daily activity log, which keeps the latest
// entries only.
func (s *Service) LogActivity(ctx context.Context, module, action string, count int) (state.Activity, error) {
	a := state.Activity{
		At:     entity.At(s.now()),
		Module: strings.TrimSpace(module),
		Action: strings.TrimSpace(action),
		Count:  count,
	}
	if a.Module == "" {
		return a, invalid("module", "is required")
	}
	if a.Action == "" {
		return a, invalid("action", "is required")
	}
	if _, err := s.dispatch(state.LogDailyActivity{Activity: a}); err != nil {
		return a, err
	}
	s.logger().Debug("activity", zap.String("module", a.Module), zap.String("action", a.Action))
	return a, nil
}

// Activity lists log entries newer than since, oldest first.
func (s *Service) Activity(ctx context.Context, since time.Time) ([]state.Activity, error) {
	st, err := s.State()
	if err != nil {
		return nil, err
	}
	var out []state.Activity
	for _, a := range st.Analytics.DailyActivity {
		if !since.IsZero() && a.At.Before(since) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
