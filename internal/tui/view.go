package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/tui/input"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

const promptWidth = 48

// View renders the TUI: header, the active virtual list, footer, and whatever
// floats over them.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return view.Render(view.ViewState{EmptyPlaceholder: "Loading..."})
	}
	start := time.Now()
	defer func() { m.metrics.RecordRender(time.Since(start)) }()

	out := view.Render(m.viewState())
	if m.prompting {
		out = m.splicePrompt(out)
	}
	return out
}

func (m Model) viewState() view.ViewState {
	today := m.today()
	container := m.viewportHeight()

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderHeader())
	if m.mode == ViewMonth {
		lines = append(lines, m.renderWeekdays())
		lines = append(lines, m.month.render(container, m.styles, today, m.selected)...)
	} else {
		lines = append(lines, m.year.render(container, m.styles, today, m.selected)...)
	}
	lines = append(lines, m.renderFooter())
	base := view.PadLinesWithBackground(strings.Join(lines, "\n"), m.width, m.height, m.styles.colorBg)

	state := view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      base,
		Overlay:          m.overlay,
		EmptyPlaceholder: "Loading...",
	}

	if m.mode == ViewMonth && m.month.manager.Scrolling() {
		state.ShowOverlay = true
		state.OverlayContent = m.styles.FloatingTitleStyle.Render(m.month.floatingTitle(today))
	}

	switch {
	case m.help.ShowAll:
		state.Panel, state.PanelLeft, state.PanelTop = m.renderHelpPanel()
		state.ShowPanel = state.Panel != nil
	case m.showDetail && m.mode == ViewMonth:
		if p, ok := m.detailPanel(m.viewportTop(), container); ok {
			state.Panel, state.PanelLeft, state.PanelTop = p.lines, p.left, p.top
			state.ShowPanel = true
		}
	}
	state.PanelBg = m.styles.colorPanelBg
	return state
}

func (m Model) renderHeader() string {
	var right string
	if m.mode == ViewMonth {
		right = m.month.floatingTitle(m.today())
	} else {
		right = fmt.Sprintf("%d", m.year.currentYear())
	}
	if m.month.loading {
		right = "loading… " + right
	}
	return view.RenderHeader(view.HeaderViewState{
		Width: m.width,
		Title: " almanac · " + m.mode.String(),
		Right: right + " ",
		Style: m.styles.HeaderStyle,
	})
}

// renderWeekdays draws the Mon..Sun labels over the week columns.
func (m Model) renderWeekdays() string {
	var b strings.Builder
	for i, w := range view.ColumnWidths(m.width) {
		b.WriteString(view.Fit(" "+calendar.WeekdayShortName(i), w, m.styles.WeekdayHeaderStyle))
	}
	return b.String()
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.err != nil:
		status = m.styles.ErrorStyle.Render("Error: " + m.err.Error())
	case m.statusMsg != "":
		status = m.styles.StatusStyle.Render(m.statusMsg)
	case m.showMetrics:
		status = m.styles.MetricsStyle.Render(metricsLine(m))
	default:
		status = m.styles.StatusStyle.Render(m.selected.Format("Mon Jan 2 2006"))
	}

	helpView := m.help
	helpView.ShowAll = false
	return view.RenderFooter(view.FooterViewState{
		Width:      m.width,
		StatusLine: view.Fit(" "+status, m.width, m.styles.StatusStyle),
		HelpLine:   view.Fit(" "+helpView.View(m.keys), m.width, m.styles.HelpStyle),
		Bg:         m.styles.colorBg,
	})
}

func metricsLine(m Model) string {
	s := m.metrics.Snapshot()
	return fmt.Sprintf("scrolls %d (%.1f/s)  renders %d avg %s  drops %d  cache %.0f%% of %d",
		s.ScrollEvents, s.ScrollsPerSecond,
		s.Renders, s.AvgRenderTime.Round(time.Microsecond),
		s.FrameDrops,
		s.CacheHitRate*100, s.CacheHits+s.CacheMisses)
}

// renderHelpPanel draws the full key list as a centered panel.
func (m Model) renderHelpPanel() (lines []string, left, top int) {
	full := m.help
	full.ShowAll = true
	body := strings.Split(full.View(m.keys), "\n")

	width := 0
	for _, l := range body {
		width = max(width, lipgloss.Width(l))
	}
	width = min(width+4, m.width)
	height := min(view.PanelLines(len(body)), m.height)

	lines = view.RenderPanel(view.PanelState{
		Title:    "Keys",
		Lines:    body,
		Width:    width,
		Height:   height,
		ArrowRow: -1,
	}, m.styles.Panel)
	return lines, max(0, (m.width-width)/2), max(0, (m.height-height)/2)
}

// splicePrompt draws the go-to prompt above the footer.
func (m Model) splicePrompt(out string) string {
	width := min(promptWidth, m.width)
	frameW, frameH := m.styles.Prompt.Box.GetFrameSize()

	var suggestions []view.PromptCommand
	for _, c := range input.PromptMatchingCommands(m.prompt.Value(), input.GotoCommands) {
		suggestions = append(suggestions, view.PromptCommand{Name: c.Name, Description: c.Description})
	}
	body := view.PromptLines(view.PromptState{
		Input:       m.prompt.View(),
		Suggestions: suggestions,
		Error:       m.promptErr,
	}, width-frameW, m.styles.Prompt)
	body = view.ClampPromptLines(body, max(1, m.height/2-frameH), width-frameW)

	box := view.RenderPrompt(width, m.styles.Prompt, body)
	top := max(0, m.height-view.FooterLines-len(box))
	return view.Splice(out, box, (m.width-width)/2, top, m.width, m.height, m.styles.colorPanelBg)
}
