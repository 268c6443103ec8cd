package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mindgrid/pkg/entity"
)

// Theme centralizes Lip Gloss styles for the dashboard.
type Theme struct {
	Dark   bool
	Tabs   TabTheme
	Footer FooterTheme
	Panel  PanelTheme
	Item   ItemTheme
}

// TabTheme styles the tab strip across the top.
type TabTheme struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Gap      lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/input bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
}

// ItemTheme styles individual rows inside a panel.
type ItemTheme struct {
	Selected lipgloss.Style
	Done     lipgloss.Style
	High     lipgloss.Style
	Medium   lipgloss.Style
	Low      lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
}

type palette struct {
	fg, muted, accent, border, selectBg color.Color
	high, medium, low, positive         color.Color
}

var (
	darkPalette = palette{
		fg:       lipgloss.Color("252"),
		muted:    lipgloss.Color("244"),
		accent:   lipgloss.Color("212"),
		border:   lipgloss.Color("240"),
		selectBg: lipgloss.Color("237"),
		high:     lipgloss.Color("#ef4444"),
		medium:   lipgloss.Color("#f59e0b"),
		low:      lipgloss.Color("#10b981"),
		positive: lipgloss.Color("#10b981"),
	}
	lightPalette = palette{
		fg:       lipgloss.Color("235"),
		muted:    lipgloss.Color("243"),
		accent:   lipgloss.Color("125"),
		border:   lipgloss.Color("250"),
		selectBg: lipgloss.Color("254"),
		high:     lipgloss.Color("#b91c1c"),
		medium:   lipgloss.Color("#b45309"),
		low:      lipgloss.Color("#047857"),
		positive: lipgloss.Color("#047857"),
	}
)

// For returns the dark or light theme.
func For(dark bool) Theme {
	if dark {
		return build(darkPalette, true)
	}
	return build(lightPalette, false)
}

// Default returns the dark theme.
func Default() Theme {
	return For(true)
}

func build(p palette, dark bool) Theme {
	tab := lipgloss.NewStyle().Padding(0, 1)
	return Theme{
		Dark: dark,
		Tabs: TabTheme{
			Active:   tab.Foreground(p.accent).Bold(true).Underline(true),
			Inactive: tab.Foreground(p.muted),
			Gap:      lipgloss.NewStyle().Foreground(p.border),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(p.muted),
			Status: lipgloss.NewStyle().Foreground(p.fg),
			Error:  lipgloss.NewStyle().Foreground(p.high).Bold(true),
			Prompt: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(p.border).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
			Body:  lipgloss.NewStyle().Foreground(p.fg),
			Muted: lipgloss.NewStyle().Foreground(p.muted),
		},
		Item: ItemTheme{
			Selected: lipgloss.NewStyle().Background(p.selectBg).Bold(true),
			Done:     lipgloss.NewStyle().Foreground(p.muted).Strikethrough(true),
			High:     lipgloss.NewStyle().Foreground(p.high),
			Medium:   lipgloss.NewStyle().Foreground(p.medium),
			Low:      lipgloss.NewStyle().Foreground(p.low),
			Positive: lipgloss.NewStyle().Foreground(p.positive),
			Negative: lipgloss.NewStyle().Foreground(p.high),
		},
	}
}

// Priority picks the style for p.
func (t Theme) Priority(p entity.Priority) lipgloss.Style {
	switch p {
	case entity.PriorityHigh:
		return t.Item.High
	case entity.PriorityLow:
		return t.Item.Low
	default:
		return t.Item.Medium
	}
}

// Swatch renders a small block in the given hex color.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}
