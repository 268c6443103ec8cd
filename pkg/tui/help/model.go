// Package help shows the dashboard key reference, rendered from markdown
// with Glamour into a scrollable frame.
package help

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
)

//go:embed help.md
var source string

const (
	minWidth  = 32
	minHeight = 8
)

type Model struct {
	vp            viewport.Model
	frame         lipgloss.Style
	width, height int

	// wrap is the width the current content was rendered for.
	wrap int
	err  error
}

func New(width, height int) *Model {
	m := &Model{
		vp:    viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		frame: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
	}
	m.vp.MouseWheelEnabled = true
	m.SetSize(width, height)
	return m
}

// Update scrolls on keys and the mouse wheel.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return cmd
}

func (m *Model) View() string {
	body := m.vp.View()
	if m.err != nil {
		body = "help unavailable: " + m.err.Error()
	}
	return m.frame.Width(m.width).Height(m.height).Render(body)
}

// SetFrame restyles the border and refits the content inside it.
func (m *Model) SetFrame(frame lipgloss.Style) {
	m.frame = frame
	m.fit()
}

// SetSize resizes the frame, never below 32x8.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = max(width, minWidth), max(height, minHeight)
	m.fit()
}

func (m *Model) fit() {
	w := max(m.width-m.frame.GetHorizontalFrameSize(), 1)
	m.vp.SetWidth(w)
	m.vp.SetHeight(max(m.height-m.frame.GetVerticalFrameSize(), 1))
	if w == m.wrap && m.err == nil {
		return
	}
	content, err := render(w)
	m.wrap, m.err = w, err
	if err == nil {
		m.vp.SetContent(content)
		m.vp.SetYOffset(0)
	}
}

// render uses the notty style so the frame can measure plain cells.
func render(wrap int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(max(wrap, 10)),
	)
	if err != nil {
		return "", err
	}
	return r.Render(strings.TrimSpace(source))
}
