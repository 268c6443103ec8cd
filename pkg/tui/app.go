// Package tui renders the MindGrid dashboard with Bubble Tea.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"

	"tableflip.dev/mindgrid/pkg/analytics"
	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/state"
	"tableflip.dev/mindgrid/pkg/store"
	"tableflip.dev/mindgrid/pkg/tui/activity"
	"tableflip.dev/mindgrid/pkg/tui/help"
	"tableflip.dev/mindgrid/pkg/tui/theme"
)

type tab int

const (
	tabDashboard tab = iota
	tabTasks
	tabHabits
	tabNotes
	tabCalendar
	tabFinance
	tabHighlights
	tabAnalytics
	tabCount
)

var tabNames = [tabCount]string{"Dashboard", "Tasks", "Habits", "Notes", "Calendar", "Finance", "Highlights", "Analytics"}

// module is the name time spent on the tab is tracked under.
func (t tab) module() string {
	return strings.ToLower(tabNames[t])
}

const helpText = "1-8/tab switch  j/k move  space toggle  a add  ? help  q quit"

type stateChangedMsg struct{ st state.State }

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct{ event store.Event }

type watchStoppedMsg struct{}

// Model is the root dashboard model.
type Model struct {
	ctx context.Context
	svc *app.Service
	th  theme.Theme

	width  int
	height int

	active  tab
	cursor  [tabCount]int
	entered time.Time
	rng     analytics.Range

	body       viewport.Model
	bodyHeight int
	input      textinput.Model
	// adding is true while the quick-add prompt has focus.
	adding bool

	activity     *activity.Model
	showActivity bool

	help     *help.Model
	showHelp bool

	status    string
	statusErr bool

	changes     chan state.State
	unsubscribe func()
	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New constructs the dashboard for svc.
func New(ctx context.Context, svc *app.Service) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.VirtualCursor = true

	m := &Model{
		ctx:      ctx,
		svc:      svc,
		th:       theme.Default(),
		rng:      analytics.Week,
		body:     viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		input:    ti,
		activity: activity.New(),
		status:   "Ready",
		changes:  make(chan state.State, 1),
	}
	if svc != nil {
		m.entered = m.now()
		if st, err := svc.State(); err == nil {
			m.th = theme.For(st.DarkMode)
		}
		if svc.Store != nil {
			m.unsubscribe = svc.Store.Subscribe(func(_, next state.State) {
				// Keep only the newest state; the view re-reads from the service.
				select {
				case <-m.changes:
				default:
				}
				select {
				case m.changes <- next:
				default:
				}
			})
		}
	}
	return m
}

// Run launches the dashboard and blocks until the user quits.
func Run(ctx context.Context, svc *app.Service) error {
	m := New(ctx, svc)
	defer m.close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) now() time.Time {
	if m.svc != nil && m.svc.Now != nil {
		return m.svc.Now()
	}
	return time.Now()
}

func (m *Model) log() *zap.Logger {
	if m.svc == nil || m.svc.Log == nil {
		return zap.NewNop()
	}
	return m.svc.Log
}

func (m *Model) close() {
	m.trackTime()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.stopWatch()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.refresh()
	var cmds []tea.Cmd
	if m.svc != nil && m.svc.Store != nil {
		cmds = append(cmds, m.waitForChange())
		if m.svc.Store.Persistent() {
			cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case st := <-ch:
			return stateChangedMsg{st: st}
		case <-ctx.Done():
			return nil
		}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout()
	case stateChangedMsg:
		m.th = theme.For(v.st.DarkMode)
		m.refresh()
		cmds = append(cmds, m.waitForChange())
	case watchStartedMsg:
		if v.err != nil {
			m.setError("watch: " + v.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = v.ch
		m.watchCancel = v.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		// Reload dispatches Hydrate, which reaches us through the subscription.
		if _, err := m.svc.Reload(m.ctx); err != nil {
			m.log().Warn("reload", zap.Error(err))
			m.setError("reload: " + err.Error())
		}
		cmds = append(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyPressMsg:
		if m.adding {
			return m, m.handleInputKey(v)
		}
		if m.showHelp {
			switch v.String() {
			case "?", "esc", "q":
				m.showHelp = false
				return m, nil
			}
			return m, m.help.Update(v)
		}
		if cmd := m.handleKey(v.String()); cmd != nil {
			return m, cmd
		}
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c", "q":
		m.close()
		return tea.Quit
	case "tab", "l", "right":
		m.switchTo((m.active + 1) % tabCount)
	case "shift+tab", "h", "left":
		m.switchTo((m.active + tabCount - 1) % tabCount)
	case "1", "2", "3", "4", "5", "6", "7", "8":
		m.switchTo(tab(key[0] - '1'))
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "pgdown":
		m.body.ViewDown()
	case "pgup":
		m.body.ViewUp()
	case "space", " ", "x", "enter":
		m.toggleSelected()
	case "a":
		return m.startAdd()
	case "r":
		m.cycleRange()
	case "d":
		m.toggleTheme()
	case "v":
		m.showActivity = !m.showActivity
		m.layout()
	case "?":
		m.showHelp = true
		m.layout()
	}
	return nil
}

func (m *Model) handleInputKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.stopAdd("Cancelled")
		return nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.stopAdd("")
		if value != "" {
			m.quickAdd(value)
		}
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) switchTo(t tab) {
	if t == m.active || t < 0 || t >= tabCount {
		return
	}
	m.trackTime()
	m.active = t
	m.body.SetYOffset(0)
	m.refresh()
}

// trackTime records time spent on the active tab since it was entered.
func (m *Model) trackTime() {
	if m.svc == nil || m.entered.IsZero() {
		return
	}
	now := m.now()
	spent := now.Sub(m.entered)
	m.entered = now
	if spent < time.Second {
		return
	}
	if err := m.svc.TrackModuleTime(m.ctx, m.active.module(), spent.Round(time.Second)); err != nil {
		m.log().Warn("track time", zap.String("module", m.active.module()), zap.Error(err))
	}
}

func (m *Model) moveCursor(delta int) {
	n := len(m.selectable())
	if n == 0 {
		if delta < 0 {
			m.body.LineUp(-delta)
		} else {
			m.body.LineDown(delta)
		}
		return
	}
	c := m.cursor[m.active] + delta
	if c < 0 {
		c = 0
	}
	if c >= n {
		c = n - 1
	}
	m.cursor[m.active] = c
	m.refresh()
}

// selectable returns the ids of the rows the cursor moves over on the
// active tab.
func (m *Model) selectable() []string {
	if m.svc == nil {
		return nil
	}
	var ids []string
	switch m.active {
	case tabTasks:
		tasks, _ := m.svc.Tasks(m.ctx, app.TaskFilter{})
		for _, t := range tasks {
			ids = append(ids, t.ID)
		}
	case tabHabits:
		habits, _ := m.svc.Habits(m.ctx)
		for _, h := range habits {
			ids = append(ids, h.ID)
		}
	case tabNotes:
		notes, _ := m.svc.SearchNotes(m.ctx, app.NoteFilter{})
		for _, n := range notes {
			ids = append(ids, n.ID)
		}
	case tabHighlights:
		highlights, _ := m.svc.Highlights(m.ctx, app.HighlightFilter{})
		for _, h := range highlights {
			ids = append(ids, h.ID)
		}
	}
	return ids
}

func (m *Model) selectedID() string {
	ids := m.selectable()
	c := m.cursor[m.active]
	if c < 0 || c >= len(ids) {
		return ""
	}
	return ids[c]
}

func (m *Model) toggleSelected() {
	id := m.selectedID()
	if id == "" {
		return
	}
	switch m.active {
	case tabTasks:
		t, err := m.svc.ToggleTask(m.ctx, id)
		if err != nil {
			m.setError(err.Error())
			return
		}
		if t.Completed {
			m.setStatus("Completed " + t.Title)
			m.logActivity("tasks", "completed task")
		} else {
			m.setStatus("Reopened " + t.Title)
		}
	case tabHabits:
		h, err := m.svc.CompleteHabit(m.ctx, id)
		if err != nil {
			m.setError(err.Error())
			return
		}
		m.setStatus(h.Name + " streak " + itoa(h.CurrentStreak))
		m.logActivity("habits", "completed habit")
	default:
		return
	}
	m.refresh()
}

func (m *Model) startAdd() tea.Cmd {
	var placeholder string
	switch m.active {
	case tabTasks:
		placeholder = "task title"
	case tabHabits:
		placeholder = "habit name"
	case tabNotes:
		placeholder = "title: content"
	case tabHighlights:
		placeholder = "highlight text"
	default:
		m.setStatus("Nothing to add on " + tabNames[m.active])
		return nil
	}
	m.adding = true
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.layout()
	return m.input.Focus()
}

func (m *Model) stopAdd(status string) {
	m.adding = false
	m.input.Blur()
	m.input.SetValue("")
	if status != "" {
		m.setStatus(status)
	}
	m.layout()
}

func (m *Model) quickAdd(value string) {
	var err error
	switch m.active {
	case tabTasks:
		_, err = m.svc.AddTask(m.ctx, app.TaskInput{Title: value})
	case tabHabits:
		_, err = m.svc.AddHabit(m.ctx, app.HabitInput{Name: value, TargetCount: 1})
	case tabNotes:
		title, content := value, value
		if i := strings.Index(value, ":"); i > 0 {
			title = strings.TrimSpace(value[:i])
			if rest := strings.TrimSpace(value[i+1:]); rest != "" {
				content = rest
			}
		}
		_, err = m.svc.AddNote(m.ctx, app.NoteInput{Title: title, Content: content})
	case tabHighlights:
		_, err = m.svc.AddHighlight(m.ctx, app.HighlightInput{Text: value})
	}
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.setStatus("Added " + value)
	m.logActivity(m.active.module(), "added")
	m.refresh()
}

func (m *Model) logActivity(module, action string) {
	if _, err := m.svc.LogActivity(m.ctx, module, action, 1); err != nil {
		m.log().Warn("log activity", zap.String("module", module), zap.Error(err))
	}
}

func (m *Model) cycleRange() {
	ranges := analytics.Ranges()
	for i, r := range ranges {
		if r == m.rng {
			m.rng = ranges[(i+1)%len(ranges)]
			break
		}
	}
	m.setStatus("Range " + string(m.rng))
	m.refresh()
}

func (m *Model) toggleTheme() {
	if m.svc == nil {
		return
	}
	dark, err := m.svc.ToggleDarkMode(m.ctx)
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.th = theme.For(dark)
	if dark {
		m.setStatus("Dark mode")
	} else {
		m.setStatus("Light mode")
	}
	m.refresh()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) layout() {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	// Tab strip and footer take one row each.
	rows := max(1, h-2)
	if m.showActivity && rows > 8 {
		panel := min(12, max(5, rows/3))
		m.activity.SetSize(w, panel)
		rows -= panel
	}
	m.body.SetWidth(w)
	m.bodyHeight = rows
	if m.showHelp {
		if m.help == nil {
			m.help = help.New(w, rows)
		}
		m.help.SetFrame(m.th.Panel.Frame)
		m.help.SetSize(w, rows)
	}
	m.body.SetHeight(m.bodyHeight)
	m.input.SetWidth(max(1, w-4))
	m.refresh()
}

// refresh re-renders the active tab into the viewport.
func (m *Model) refresh() {
	m.activity.WithStyles(activityStyles(m.th))
	if m.svc != nil {
		if st, err := m.svc.State(); err == nil {
			m.activity.SetEntries(st.Analytics.DailyActivity)
		}
	}
	content, line := m.renderTab()
	m.body.SetContent(content)
	if line >= 0 {
		// Keep the cursor row in the middle of the viewport.
		m.body.SetYOffset(max(0, line-m.bodyHeight/2))
	}
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	body := m.body.View()
	if m.showHelp && m.help != nil {
		body = m.help.View()
	}
	parts := []string{m.tabsView(), body}
	if m.showActivity && m.activity.Height() > 0 {
		parts = append(parts, m.activity.View())
	}
	parts = append(parts, m.footerView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...), nil
}

func activityStyles(th theme.Theme) activity.Styles {
	return activity.Styles{
		Frame:     th.Panel.Frame.Padding(0).Border(lipgloss.NormalBorder()),
		Header:    th.Panel.Title,
		Text:      th.Panel.Body,
		Timestamp: th.Panel.Muted,
		Module:    th.Panel.Muted,
	}
}

func (m *Model) tabsView() string {
	parts := make([]string, 0, tabCount)
	for i := tab(0); i < tabCount; i++ {
		label := itoa(int(i)+1) + " " + tabNames[i]
		if i == m.active {
			parts = append(parts, m.th.Tabs.Active.Render(label))
		} else {
			parts = append(parts, m.th.Tabs.Inactive.Render(label))
		}
	}
	return strings.Join(parts, m.th.Tabs.Gap.Render("│"))
}

func (m *Model) footerView() string {
	if m.adding {
		return m.th.Footer.Prompt.Render("+ ") + m.input.View()
	}
	status := m.th.Footer.Status.Render(m.status)
	if m.statusErr {
		status = m.th.Footer.Error.Render(m.status)
	}
	return status + "  " + m.th.Footer.Help.Render(helpText)
}
