// Package activity docks the daily activity log under the dashboard.
package activity

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mindgrid/pkg/state"
)

// Styles controls the panel's presentation.
type Styles struct {
	Frame     lipgloss.Style
	Header    lipgloss.Style
	Text      lipgloss.Style
	Timestamp lipgloss.Style
	Module    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Frame:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Module:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Model lists activity newest first, grouped under a heading per day.
type Model struct {
	vp      viewport.Model
	st      Styles
	entries []state.Activity // oldest first, as stored

	width, height int
}

func New() *Model {
	return &Model{
		vp: viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		st: DefaultStyles(),
	}
}

// SetSize sets the outer size. Two rows go to the border and one to the title.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = max(width, 4), max(height, 3)
	m.vp.SetWidth(m.width - 2)
	m.vp.SetHeight(max(m.height-3, 1))
	m.render()
}

// SetEntries replaces the log and scrolls back to the newest entry.
func (m *Model) SetEntries(entries []state.Activity) {
	m.entries = entries
	m.render()
	m.vp.SetYOffset(0)
}

func (m *Model) WithStyles(s Styles) {
	m.st = s
	m.render()
}

// Height is the number of rows the panel occupies, zero before SetSize.
func (m *Model) Height() int { return m.height }

func (m *Model) View() string {
	if m.height == 0 {
		return ""
	}
	return m.st.Frame.Width(m.width - 2).Render(
		m.st.Header.Render("Activity") + "\n" + m.vp.View(),
	)
}

func (m *Model) render() {
	if len(m.entries) == 0 {
		m.vp.SetContent(m.st.Timestamp.Render("No activity yet"))
		return
	}
	var (
		b   strings.Builder
		day string
	)
	for i := len(m.entries) - 1; i >= 0; i-- {
		a := m.entries[i]
		local := a.At.Local()
		if d := local.Format("Mon Jan 2"); d != day {
			if day != "" {
				b.WriteByte('\n')
			}
			day = d
			b.WriteString(m.st.Header.Render(d))
		}
		action := a.Action
		if a.Count > 1 {
			action += fmt.Sprintf(" x%d", a.Count)
		}
		fmt.Fprintf(&b, "\n  %s %s %s",
			m.st.Timestamp.Render(local.Format("15:04")),
			m.st.Module.Render("["+a.Module+"]"),
			m.st.Text.Render(action))
	}
	m.vp.SetContent(b.String())
}
