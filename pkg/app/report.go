package app

import (
	"context"
	"sort"
	"time"
)

// ReportItem captures something finished and when it was finished.
type ReportItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CompletedAt time.Time `json:"completedAt"`
}

// ReportSection groups finished items by module.
type ReportSection struct {
	Module  string       `json:"module"`
	Entries []ReportItem `json:"entries"`
}

// ReportResult encapsulates a done report for a time window.
type ReportResult struct {
	Since    time.Time       `json:"since"`
	Until    time.Time       `json:"until"`
	Sections []ReportSection `json:"sections"`
	Total    int             `json:"total"`
}

// Report returns tasks, habit completions and goals finished between the
// provided bounds, grouped by module.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	st, err := s.State()
	if err != nil {
		return ReportResult{}, err
	}
	within := func(t time.Time) bool {
		return !t.Before(since) && !t.After(until)
	}

	grouped := make(map[string][]ReportItem)
	for _, t := range st.Tasks {
		if !t.Completed || t.CompletedAt == nil || !within(t.CompletedAt.Time) {
			continue
		}
		grouped["tasks"] = append(grouped["tasks"], ReportItem{ID: t.ID, Title: t.Title, CompletedAt: t.CompletedAt.Time})
	}
	for _, h := range st.Habits {
		for _, c := range h.Completions {
			if within(c.Time) {
				grouped["habits"] = append(grouped["habits"], ReportItem{ID: h.ID, Title: h.Name, CompletedAt: c.Time})
			}
		}
	}
	for _, g := range st.Goals {
		if g.CompletedAt == nil || !within(g.CompletedAt.Time) {
			continue
		}
		grouped["goals"] = append(grouped["goals"], ReportItem{ID: g.ID, Title: g.Title, CompletedAt: g.CompletedAt.Time})
	}

	result := ReportResult{Since: since, Until: until}
	modules := make([]string, 0, len(grouped))
	for module := range grouped {
		modules = append(modules, module)
	}
	sort.Strings(modules)
	for _, module := range modules {
		items := grouped[module]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CompletedAt.Before(items[j].CompletedAt)
		})
		result.Sections = append(result.Sections, ReportSection{Module: module, Entries: items})
		result.Total += len(items)
	}
	return result, nil
}
