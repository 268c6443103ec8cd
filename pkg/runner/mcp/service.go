// Package mcp provides the Model Context Protocol server integration for
// MindGrid.
package mcp

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/timeutil"
)

// Service adapts app.Service for MCP resources and tools.
type Service struct {
	App *app.Service
}

// NewService builds a service wrapper around the application service.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc}
}

var errNoService = errors.New("service is not configured")

// Overview counts what the store holds.
type Overview struct {
	Tasks          int  `json:"tasks"`
	OpenTasks      int  `json:"openTasks"`
	Habits         int  `json:"habits"`
	Goals          int  `json:"goals"`
	Notes          int  `json:"notes"`
	Events         int  `json:"events"`
	Highlights     int  `json:"highlights"`
	Budgets        int  `json:"budgets"`
	Expenses       int  `json:"expenses"`
	Income         int  `json:"income"`
	FinancialGoals int  `json:"financialGoals"`
	DarkMode       bool `json:"darkMode"`
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	if s.App == nil {
		return Overview{}, errNoService
	}
	st, err := s.App.State()
	if err != nil {
		return Overview{}, err
	}
	out := Overview{
		Tasks:          len(st.Tasks),
		Habits:         len(st.Habits),
		Goals:          len(st.Goals),
		Notes:          len(st.Notes),
		Events:         len(st.Events),
		Highlights:     len(st.Highlights),
		Budgets:        len(st.Finance.Budgets),
		Expenses:       len(st.Finance.Expenses),
		Income:         len(st.Finance.Income),
		FinancialGoals: len(st.Finance.FinancialGoals),
		DarkMode:       st.DarkMode,
	}
	for _, t := range st.Tasks {
		if !t.Completed {
			out.OpenTasks++
		}
	}
	return out, nil
}

// SearchHit is one match from Search.
type SearchHit struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
}

// Search finds tasks, goals, notes, events and highlights whose text
// contains query, case insensitive. Results are grouped by kind in that
// order and capped at limit.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if s.App == nil {
		return nil, errNoService
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, errors.New("query is required")
	}
	if limit <= 0 {
		limit = 20
	}
	st, err := s.App.State()
	if err != nil {
		return nil, err
	}

	var hits []SearchHit
	match := func(kind, id, title string, fields ...string) {
		for _, f := range append([]string{title}, fields...) {
			if strings.Contains(strings.ToLower(f), q) {
				hits = append(hits, SearchHit{Kind: kind, ID: id, Title: title, Snippet: snippet(f, q)})
				return
			}
		}
	}
	for _, t := range st.Tasks {
		match("task", t.ID, t.Title, t.Description)
	}
	for _, g := range st.Goals {
		match("goal", g.ID, g.Title, g.Description)
	}
	for _, n := range st.Notes {
		match("note", n.ID, n.Title, append([]string{n.Content}, n.Tags...)...)
	}
	for _, e := range st.Events {
		match("event", e.ID, e.Title, e.Description, e.Location)
	}
	for _, h := range st.Highlights {
		match("highlight", h.ID, h.Text, h.Annotation)
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// snippet returns up to 40 characters either side of the first match.
func snippet(text, q string) string {
	lower := strings.ToLower(text)
	i := strings.Index(lower, q)
	if i < 0 {
		return ""
	}
	start, end := i-40, i+len(q)+40
	prefix, suffix := "…", "…"
	if start <= 0 {
		start, prefix = 0, ""
	}
	if end >= len(text) {
		end, suffix = len(text), ""
	}
	return prefix + strings.TrimSpace(text[start:end]) + suffix
}

// Upcoming returns events starting within days of now, soonest first.
func (s *Service) Upcoming(ctx context.Context, days int) ([]app.CalendarDay, error) {
	if s.App == nil {
		return nil, errNoService
	}
	if days <= 0 {
		days = 7
	}
	start := timeutil.StartOfDay(s.now())
	events, err := s.App.EventsBetween(ctx, start, start.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	byDay := map[string]*app.CalendarDay{}
	var out []*app.CalendarDay
	for _, e := range events {
		d := timeutil.StartOfDay(e.StartTime.Local())
		if d.Before(start) {
			d = start
		}
		key := d.Format(timeutil.DayLayout)
		cd, ok := byDay[key]
		if !ok {
			cd = &app.CalendarDay{Date: d}
			byDay[key] = cd
			out = append(out, cd)
		}
		cd.Events = append(cd.Events, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	result := make([]app.CalendarDay, len(out))
	for i, cd := range out {
		result[i] = *cd
	}
	return result, nil
}

func (s *Service) now() time.Time {
	if s.App != nil && s.App.Now != nil {
		return s.App.Now()
	}
	return time.Now()
}

// parseWhen accepts RFC3339, YYYY-MM-DDTHH:MM, YYYY-MM-DD or today/tomorrow.
func (s *Service) parseWhen(raw string) (time.Time, error) {
	return timeutil.ParseMoment(raw, s.now())
}

// parseOptionalDay returns nil for empty input.
func (s *Service) parseOptionalDay(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := timeutil.ParseDay(raw, s.now())
	if err != nil {
		return nil, err
	}
	return &t, nil
}
