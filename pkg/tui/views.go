package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
	"tableflip.dev/mindgrid/pkg/timeutil"
	"tableflip.dev/mindgrid/pkg/tui/theme"
)

func itoa(n int) string { return strconv.Itoa(n) }

// page accumulates rendered lines and remembers where the cursor row is.
type page struct {
	lines  []string
	cursor int
}

func newPage() *page { return &page{cursor: -1} }

func (p *page) add(line string) { p.lines = append(p.lines, line) }

func (p *page) blank() { p.lines = append(p.lines, "") }

func (p *page) mark() { p.cursor = len(p.lines) }

func (p *page) String() string { return strings.Join(p.lines, "\n") }

// renderTab returns the active tab's content and the line the cursor is on,
// or -1 when the tab has no cursor.
func (m *Model) renderTab() (string, int) {
	if m.svc == nil {
		return m.th.Panel.Muted.Render("no store"), -1
	}
	st, err := m.svc.State()
	if err != nil {
		return m.th.Footer.Error.Render(err.Error()), -1
	}
	p := newPage()
	switch m.active {
	case tabDashboard:
		m.renderDashboard(p, st)
	case tabTasks:
		m.renderTasks(p, st)
	case tabHabits:
		m.renderHabits(p, st)
	case tabNotes:
		m.renderNotes(p, st)
	case tabCalendar:
		m.renderCalendar(p, st)
	case tabFinance:
		m.renderFinance(p)
	case tabHighlights:
		m.renderHighlights(p, st)
	case tabAnalytics:
		m.renderAnalytics(p)
	}
	return p.String(), p.cursor
}

func (m *Model) title(p *page, s string) {
	p.add(m.th.Panel.Title.Render(s))
}

func (m *Model) empty(p *page, s string) {
	p.add(m.th.Panel.Muted.Render("  " + s))
}

func (m *Model) clip(s string) string {
	if m.width <= 4 {
		return s
	}
	return truncate.StringWithTail(s, uint(m.width-2), "…")
}

// row renders one selectable line, highlighted when it is under the cursor.
func (m *Model) row(p *page, index int, line string) {
	line = m.clip(line)
	if index == m.cursor[m.active] {
		p.mark()
		p.add(m.th.Item.Selected.Render("> " + line))
		return
	}
	p.add("  " + line)
}

func (m *Model) renderDashboard(p *page, st state.State) {
	now := m.now()
	d, err := m.svc.Analytics(m.ctx, m.rng)
	if err == nil {
		s := d.Summary
		m.title(p, fmt.Sprintf("Productivity %d/100 (%s)", s.ProductivityScore, s.Range))
		p.add(fmt.Sprintf("  tasks %d/%d  habits today %d/%d  goals %d/%d",
			s.CompletedTasks, s.TotalTasks, s.HabitsDoneToday, s.TotalHabits, s.CompletedGoals, s.TotalGoals))
		p.blank()
	}

	agenda, err := m.svc.Agenda(m.ctx, 0)
	if err != nil {
		p.add(m.th.Footer.Error.Render(err.Error()))
		return
	}
	m.title(p, "Today "+now.Format("Mon Jan 2"))
	if len(agenda.Overdue)+len(agenda.DueToday)+len(agenda.Events)+len(agenda.AtRisk) == 0 {
		m.empty(p, "nothing due")
	}
	for _, t := range agenda.Overdue {
		p.add("  " + m.th.Item.Negative.Render("overdue ") + m.clip(t.Title))
	}
	for _, t := range agenda.DueToday {
		p.add("  due     " + m.clip(t.Title))
	}
	for _, e := range agenda.Events {
		p.add("  " + theme.Swatch(e.Color) + " " + eventWhen(e) + " " + m.clip(e.Title))
	}
	for _, h := range agenda.AtRisk {
		p.add("  " + m.th.Item.Medium.Render("streak ") + fmt.Sprintf("%s (%d)", h.Name, h.CurrentStreak))
	}

	p.blank()
	m.title(p, "Goals")
	if len(st.Goals) == 0 {
		m.empty(p, "no goals")
	}
	for _, g := range st.Goals {
		p.add(fmt.Sprintf("  %s %3d%% %s", bar(g.Progress, 20), g.Progress, m.clip(g.Title)))
	}
}

func (m *Model) renderTasks(p *page, st state.State) {
	m.title(p, fmt.Sprintf("Tasks (%d)", len(st.Tasks)))
	if len(st.Tasks) == 0 {
		m.empty(p, "press a to add a task")
		return
	}
	now := m.now()
	for i, t := range st.Tasks {
		box := "[ ]"
		title := t.Title
		if t.Completed {
			box = "[x]"
			title = m.th.Item.Done.Render(title)
		}
		due := ""
		if t.DueDate != nil {
			due = " due " + t.DueDate.Format("Jan 2")
			if !t.Completed && t.DueDate.Before(timeutil.StartOfDay(now)) {
				due = m.th.Item.Negative.Render(due)
			}
		}
		m.row(p, i, fmt.Sprintf("%s %s %s%s", box, m.th.Priority(t.Priority).Render(fmt.Sprintf("%-6s", t.Priority)), title, due))
	}
}

func (m *Model) renderHabits(p *page, st state.State) {
	m.title(p, fmt.Sprintf("Habits (%d)", len(st.Habits)))
	if len(st.Habits) == 0 {
		m.empty(p, "press a to add a habit")
		return
	}
	for i, h := range st.Habits {
		last := "never"
		if h.LastCompleted != nil {
			last = h.LastCompleted.Format("Jan 2 15:04")
		}
		m.row(p, i, fmt.Sprintf("%-24s %-8s streak %3d best %3d  last %s", h.Name, h.Frequency, h.CurrentStreak, h.LongestStreak, last))
	}
}

func (m *Model) renderNotes(p *page, st state.State) {
	m.title(p, fmt.Sprintf("Notes (%d)", len(st.Notes)))
	if len(st.Notes) == 0 {
		m.empty(p, "press a to add a note")
		return
	}
	var selected *entity.Note
	for i, n := range st.Notes {
		tags := ""
		if len(n.Tags) > 0 {
			tags = m.th.Panel.Muted.Render(" #" + strings.Join(n.Tags, " #"))
		}
		m.row(p, i, n.Title+tags)
		if i == m.cursor[m.active] {
			n := n
			selected = &n
		}
	}
	if selected == nil {
		return
	}
	p.blank()
	body := selected.Content
	if w := m.width - 4; w > 10 {
		body = lipgloss.NewStyle().Width(w).Render(body)
	}
	p.add(m.th.Panel.Frame.Render(body))
	for _, id := range selected.LinkedTasks {
		p.add("  -> task " + app.ResolveTaskTitle(st, id))
	}
	for _, id := range selected.LinkedGoals {
		p.add("  -> goal " + app.ResolveGoalTitle(st, id))
	}
	for _, id := range selected.LinkedNoteIDs {
		p.add("  -> note " + app.ResolveNoteTitle(st, id))
	}
}

func (m *Model) renderCalendar(p *page, st state.State) {
	days, err := m.svc.Calendar(m.ctx, app.ViewWeek, m.now())
	if err != nil {
		p.add(m.th.Footer.Error.Render(err.Error()))
		return
	}
	today := timeutil.StartOfDay(m.now())
	for _, day := range days {
		label := day.Date.Format("Mon Jan 2")
		if day.Date.Equal(today) {
			label += " (today)"
		}
		m.title(p, label)
		if len(day.Events) == 0 {
			m.empty(p, "-")
		}
		for _, e := range day.Events {
			line := "  " + theme.Swatch(e.Color) + " " + eventWhen(e) + " " + e.Title
			if e.LinkedTaskID != "" {
				line += m.th.Panel.Muted.Render(" -> " + app.ResolveTaskTitle(st, e.LinkedTaskID))
			} else if e.LinkedProjectID != "" {
				line += m.th.Panel.Muted.Render(" -> " + app.ResolveGoalTitle(st, e.LinkedProjectID))
			}
			p.add(m.clip(line))
		}
	}
}

func (m *Model) renderFinance(p *page) {
	sum, err := m.svc.Finance(m.ctx, m.now())
	if err != nil {
		p.add(m.th.Footer.Error.Render(err.Error()))
		return
	}
	t := sum.Totals
	m.title(p, "Finance "+t.Month)
	net := m.th.Item.Positive.Render(money(t.Net))
	if t.Net < 0 {
		net = m.th.Item.Negative.Render(money(t.Net))
	}
	p.add(fmt.Sprintf("  income %s  expenses %s  net %s", money(t.Income), money(t.Expenses), net))
	p.blank()
	m.title(p, "Budgets")
	if len(sum.Budgets) == 0 {
		m.empty(p, "no budgets")
	}
	for _, b := range sum.Budgets {
		style := m.th.Item.Low
		switch b.Status {
		case "warning":
			style = m.th.Item.Medium
		case "over":
			style = m.th.Item.High
		}
		p.add(fmt.Sprintf("  %-14s %s %s / %s", b.Category, style.Render(bar(int(b.Percent), 20)), money(b.Spent), money(b.Budget)))
	}
	p.blank()
	m.title(p, "Savings goals")
	if len(sum.Goals) == 0 {
		m.empty(p, "no savings goals")
	}
	for _, g := range sum.Goals {
		p.add(fmt.Sprintf("  %-14s %s %s / %s", g.Goal.Title, bar(int(g.Percent), 20), money(g.Goal.CurrentAmount), money(g.Goal.TargetAmount)))
	}
}

func (m *Model) renderHighlights(p *page, st state.State) {
	m.title(p, fmt.Sprintf("Highlights (%d)", len(st.Highlights)))
	if len(st.Highlights) == 0 {
		m.empty(p, "press a to add a highlight")
		return
	}
	for i, h := range st.Highlights {
		line := theme.Swatch(h.Color) + " " + m.th.Priority(h.Priority).Render(fmt.Sprintf("%-6s", h.Priority)) + " " + h.Text
		if h.LinkedNoteID != "" {
			line += m.th.Panel.Muted.Render(" -> " + app.ResolveNoteTitle(st, h.LinkedNoteID))
		}
		m.row(p, i, line)
	}
}

func (m *Model) renderAnalytics(p *page) {
	d, err := m.svc.Analytics(m.ctx, m.rng)
	if err != nil {
		p.add(m.th.Footer.Error.Render(err.Error()))
		return
	}
	s := d.Summary
	m.title(p, fmt.Sprintf("Analytics (%s, r to change)", s.Range))
	p.add(fmt.Sprintf("  score     %s %d", bar(s.ProductivityScore, 20), s.ProductivityScore))
	p.add(fmt.Sprintf("  tasks     %s %.0f%%", bar(int(s.TaskRate), 20), s.TaskRate))
	p.add(fmt.Sprintf("  habits    %s %.0f%%", bar(int(s.HabitRate), 20), s.HabitRate))
	p.add(fmt.Sprintf("  goals     %s %.0f%%", bar(int(s.GoalRate), 20), s.GoalRate))
	p.add(fmt.Sprintf("  avg streak %.1f  avg goal progress %.0f%%", s.AvgHabitStreak, s.AvgGoalProgress))
	p.blank()
	m.title(p, "Trend")
	for _, pt := range d.Trend {
		total := pt.Tasks + pt.Habits + pt.Goals
		p.add(fmt.Sprintf("  %-8s %s %d", pt.Label, strings.Repeat("▇", total), total))
	}
	if len(d.ModuleTime) > 0 {
		p.blank()
		m.title(p, "Time by module")
		for _, mt := range d.ModuleTime {
			p.add(fmt.Sprintf("  %-12s %s", mt.Module, timeutil.FormatWindow(mt.Duration)))
		}
	}
}

func eventWhen(e entity.Event) string {
	if e.IsAllDay {
		return "all day    "
	}
	return e.StartTime.Format("15:04") + "-" + e.EndTime.Format("15:04")
}

// bar draws a width-cell meter for pct in [0, 100].
func bar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}
