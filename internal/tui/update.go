package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/log"
	"github.com/javiermolinar/almanac/internal/tui/commands"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case commands.EventsLoadedMsg:
		m.month.apply(msg.From, msg.To, msg.Events)
		return m, m.maybeLoad()

	case commands.SettleMsg:
		switch msg.View {
		case yearViewName:
			m.year.manager.Settle(msg.Gen)
		case monthViewName:
			m.month.manager.Settle(msg.Gen)
		}
		return m, nil

	case commands.FrameMsg:
		return m.handleFrame()

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.err = nil
		return m, commands.ClearStatusAfter(statusTimeout)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		m.err = nil
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.month.loading = false
		log.Error("tui command failed", msg.Err)
		return m, commands.ClearStatusAfter(statusTimeout)
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.help.Width = msg.Width
	m.prompt.Width = max(1, min(promptWidth, msg.Width)-6)

	today := m.today()
	m.year.resize(m.width, max(0, m.height-1-view.FooterLines), today, m.styles)
	m.month.resize(m.width, max(0, m.height-2-view.FooterLines))

	if !m.sized {
		// First layout: start on the selected day.
		m.sized = true
		index, _ := m.year.domain.Index(m.selected)
		m.year.manager.ScrollTo(index, false)
		m.month.manager.ScrollTo(m.month.weekIndex(m.selected), false)
	}
	log.Debug("terminal resized", "width", m.width, "height", m.height, "week_lines", m.month.lines, "year_lines", m.year.manager.UnitSize())
	return m, m.afterNavigate(nil)
}

// handleFrame advances running animations and flushes frame callbacks.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	m.ticking = false

	var cmds []tea.Cmd
	if cmd, ok := m.year.step(); ok {
		m.year.sticky.Schedule()
		cmds = append(cmds, cmd)
	}
	if cmd, ok := m.month.step(); ok {
		cmds = append(cmds, cmd)
	}
	m.frames.Flush()

	cmds = append(cmds, m.ensureFrames(), m.maybeLoad())
	return m, tea.Batch(cmds...)
}

// afterNavigate runs after anything moved a view: the sticky header is
// re-measured next frame and events are fetched when the month view nears the
// edge of what is loaded.
func (m *Model) afterNavigate(cmd tea.Cmd) tea.Cmd {
	m.year.sticky.Schedule()
	return tea.Batch(cmd, m.ensureFrames(), m.maybeLoad())
}

// ensureFrames starts the frame loop when something needs a frame.
func (m *Model) ensureFrames() tea.Cmd {
	if m.ticking {
		return nil
	}
	if !m.year.animating() && !m.month.animating() && m.frames.Len() == 0 {
		return nil
	}
	m.ticking = true
	return commands.Frame()
}

func (m *Model) maybeLoad() tea.Cmd {
	if !m.sized {
		return nil
	}
	from, to, ok := m.month.needsLoad()
	if !ok {
		return nil
	}
	m.month.loading = true
	log.Debug("loading events", "from", from.Format("2006-01-02"), "to", to.Format("2006-01-02"))
	return commands.LoadEvents(m.repo, from, to)
}
