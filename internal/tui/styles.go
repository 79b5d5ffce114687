// Package tui provides the terminal user interface for almanac.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/almanac/internal/tui/theme"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg      lipgloss.Color
	colorPanelBg lipgloss.Color
	colorOverlay lipgloss.Color

	// Title bar
	HeaderStyle lipgloss.Style

	// Sticky year label pinned to the top of the year view
	StickyStyle lipgloss.Style

	// Floating month title shown while the month view scrolls
	FloatingTitleStyle lipgloss.Style

	// Month view weekday header
	WeekdayHeaderStyle lipgloss.Style

	// Footer
	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	HelpStyle    lipgloss.Style
	MetricsStyle lipgloss.Style

	// App container
	AppStyle lipgloss.Style

	Year   view.YearStyles
	Week   view.WeekStyles
	Panel  view.PanelStyles
	Prompt view.PromptStyles
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorPanelBg = palette.Panel.Bg
	s.colorOverlay = palette.BgSelection

	base := lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.Bg)
	muted := base.Foreground(palette.FgMuted)

	s.HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.TextOnAccent).
		Background(palette.Accent)

	s.StickyStyle = base.
		Bold(true).
		Foreground(palette.Accent).
		Background(palette.BgHighlight)

	s.FloatingTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Fg).
		Background(palette.BgSelection)

	s.WeekdayHeaderStyle = muted.Bold(true)

	s.StatusStyle = base.Foreground(palette.Accent)
	s.ErrorStyle = base.Foreground(palette.Warning).Bold(true)
	s.HelpStyle = muted
	s.MetricsStyle = muted.Italic(true)

	s.AppStyle = lipgloss.NewStyle().Background(palette.Bg)

	s.Year = view.YearStyles{
		Label:    base.Bold(true).Foreground(palette.Accent),
		Month:    base.Bold(true),
		Weekday:  muted,
		Day:      base,
		Outside:  muted,
		Today:    lipgloss.NewStyle().Bold(true).Foreground(palette.TextOnToday).Background(palette.Today),
		Selected: lipgloss.NewStyle().Foreground(palette.Fg).Background(palette.BgSelection),
		Fill:     base,
	}

	bar := lipgloss.NewStyle().Bold(true)
	s.Week = view.WeekStyles{
		Day:        base,
		Outside:    muted,
		Today:      lipgloss.NewStyle().Bold(true).Foreground(palette.TextOnToday).Background(palette.Today),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(palette.Fg).Background(palette.BgSelection),
		MonthStart: base.Bold(true).Foreground(palette.Accent),
		Bars: [2]lipgloss.Style{
			bar.Foreground(palette.TextOnEvent).Background(palette.EventBg),
			bar.Foreground(palette.TextOnEvent).Background(palette.EventBgAlt),
		},
		AllDayBars: [2]lipgloss.Style{
			bar.Foreground(palette.TextOnAllDay).Background(palette.AllDayBg),
			bar.Foreground(palette.TextOnAllDay).Background(palette.AllDayBgAlt),
		},
		PastBar:      lipgloss.NewStyle().Foreground(palette.FgMuted).Background(palette.PastBg),
		Record:       base.Foreground(palette.Event),
		AllDayRecord: base.Foreground(palette.AllDay),
		More:         base.Foreground(palette.Warning),
		Separator:    lipgloss.NewStyle().Foreground(palette.BgSelection).Background(palette.Bg),
		Fill:         base,
	}

	panelBase := lipgloss.NewStyle().
		Foreground(palette.Panel.Text).
		Background(palette.Panel.Bg)
	s.Panel = view.PanelStyles{
		Box: panelBase.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Panel.Border).
			BorderBackground(palette.Panel.Bg),
		Title: panelBase.Bold(true),
		Text:  panelBase,
		Muted: panelBase.Foreground(palette.Panel.Muted),
		Arrow: lipgloss.NewStyle().Foreground(palette.Panel.Border).Background(palette.Bg),
	}

	s.Prompt = view.PromptStyles{
		Box: panelBase.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Accent).
			BorderBackground(palette.Panel.Bg),
		Suggestion: panelBase.Foreground(palette.Panel.Muted),
		Error:      panelBase.Foreground(palette.Warning),
	}

	return s
}
