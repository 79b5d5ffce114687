package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/log"
	"github.com/javiermolinar/almanac/internal/tui/commands"
	"github.com/javiermolinar/almanac/internal/tui/input"
	"github.com/javiermolinar/almanac/internal/tui/view"
	"github.com/javiermolinar/almanac/internal/window"
)

// Mouse wheel steps, in lines.
const (
	yearWheelLines  = 3
	monthWheelLines = 1
)

// keyMap holds every binding; it also feeds the help line.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Today    key.Binding
	Detail   key.Binding
	Close    key.Binding
	Switch   key.Binding
	Goto     key.Binding
	Copy     key.Binding
	Metrics  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
		Left:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "previous day")),
		Right:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next day")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "K"), key.WithHelp("pgup", "jump back")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "J"), key.WithHelp("pgdn", "jump ahead")),
		Today:    key.NewBinding(key.WithKeys("t", "home"), key.WithHelp("t", "today")),
		Detail:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Switch:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "year/month")),
		Goto:     key.NewBinding(key.WithKeys("g", "/"), key.WithHelp("g", "go to")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy week")),
		Metrics:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "metrics")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Today, k.Switch, k.Detail, k.Goto, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PageUp, k.PageDown, k.Today, k.Goto},
		{k.Switch, k.Detail, k.Close, k.Copy},
		{k.Metrics, k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.prompting {
		return m.handlePromptKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Metrics):
		m.showMetrics = !m.showMetrics
		return m, nil
	case key.Matches(msg, m.keys.Switch):
		return m.switchView()
	case key.Matches(msg, m.keys.Goto):
		return m.openPrompt()
	}

	if m.mode == ViewYear {
		return m.handleYearKeys(msg)
	}
	return m.handleMonthKeys(msg)
}

func (m Model) handleYearKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.year
	var req window.ScrollRequest
	switch {
	case key.Matches(msg, m.keys.Up):
		req = v.manager.Previous()
	case key.Matches(msg, m.keys.Down):
		req = v.manager.Next()
	case key.Matches(msg, m.keys.PageUp):
		req = v.manager.Jump(-window.JumpSize)
	case key.Matches(msg, m.keys.PageDown):
		req = v.manager.Jump(window.JumpSize)
	case key.Matches(msg, m.keys.Today):
		m.setSelected(m.today())
		req = v.manager.Today(m.now())
	case key.Matches(msg, m.keys.Detail):
		return m.switchView()
	default:
		return m, nil
	}
	return m, m.afterNavigate(v.follow(req))
}

func (m Model) handleMonthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.month
	smooth := m.config.Window.SmoothScroll
	var req window.ScrollRequest
	switch {
	case key.Matches(msg, m.keys.Up):
		m.setSelected(dateutil.AddDays(m.selected, -dateutil.DaysPerWeek))
		req = v.manager.Previous()
	case key.Matches(msg, m.keys.Down):
		m.setSelected(dateutil.AddDays(m.selected, dateutil.DaysPerWeek))
		req = v.manager.Next()
	case key.Matches(msg, m.keys.PageUp):
		m.setSelected(dateutil.AddDays(m.selected, -window.JumpSize*dateutil.DaysPerWeek))
		req = v.manager.Jump(-window.JumpSize)
	case key.Matches(msg, m.keys.PageDown):
		m.setSelected(dateutil.AddDays(m.selected, window.JumpSize*dateutil.DaysPerWeek))
		req = v.manager.Jump(window.JumpSize)
	case key.Matches(msg, m.keys.Today):
		m.setSelected(m.today())
		req = v.manager.Today(m.now())
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		delta := 1
		if key.Matches(msg, m.keys.Left) {
			delta = -1
		}
		m.setSelected(dateutil.AddDays(m.selected, delta))
		r, ok := v.reveal(m.selected, smooth)
		if !ok {
			return m, nil
		}
		req = r
	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
		return m, nil
	case key.Matches(msg, m.keys.Close):
		m.showDetail = false
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		start := dateutil.StartOfWeek(m.selected)
		text := weekText(start, v.eventsOfWeek(start), m.loc)
		return m, commands.CopyToClipboard(text, "week")
	default:
		return m, nil
	}
	return m, m.afterNavigate(v.follow(req))
}

// handleMouseMsg scrolls on the wheel and selects the clicked day.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		return m, nil
	}
	step := 0
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		step = -1
	case tea.MouseButtonWheelDown:
		step = 1
	}

	if step != 0 {
		if m.mode == ViewYear {
			return m, m.afterNavigate(m.year.scrollBy(float64(step * yearWheelLines)))
		}
		return m, m.afterNavigate(m.month.scrollBy(float64(step * monthWheelLines)))
	}

	if m.mode != ViewMonth || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	row := msg.Y - m.viewportTop()
	if row < 0 || row >= m.viewportHeight() {
		return m, nil
	}
	col := view.DayAt(msg.X, m.width)
	if col < 0 {
		return m, nil
	}
	index := int((m.month.manager.Offset() + float64(row)) / float64(max(1, m.month.lines)))
	start, ok := m.month.domain.Start(index)
	if !ok {
		return m, nil
	}
	m.setSelected(dateutil.AddDays(start, col))
	log.Debug("day clicked", "date", m.selected.Format("2006-01-02"))
	return m, nil
}

func (m Model) openPrompt() (tea.Model, tea.Cmd) {
	m.prompting = true
	m.promptErr = ""
	m.prompt.SetValue("")
	return m, m.prompt.Focus()
}

func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case tea.KeyTab:
		if value, ok := input.PromptAutocomplete(m.prompt.Value(), input.GotoCommands); ok {
			m.prompt.SetValue(value)
			m.prompt.CursorEnd()
		}
		return m, nil
	case tea.KeyEnter:
		target, err := input.ParseTarget(m.prompt.Value(), m.now().In(m.loc))
		if err != nil {
			m.promptErr = err.Error()
			return m, nil
		}
		m.prompting = false
		m.prompt.Blur()
		return m.goTo(target)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	m.promptErr = ""
	return m, cmd
}

// goTo moves both views to target; a bare year opens the year view.
func (m Model) goTo(target input.Target) (tea.Model, tea.Cmd) {
	m.setSelected(target.Date)
	if target.Year {
		m.mode = ViewYear
	}
	var cmd tea.Cmd
	if m.mode == ViewYear {
		index, _ := m.year.domain.Index(target.Date)
		cmd = m.year.follow(m.year.manager.ScrollTo(index, m.config.Window.SmoothScroll))
	} else {
		cmd = m.month.follow(m.month.manager.ScrollTo(m.month.weekIndex(target.Date), m.config.Window.SmoothScroll))
	}
	return m, m.afterNavigate(cmd)
}

// switchView toggles between the year and month views, keeping the selection
// in sight.
func (m Model) switchView() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.mode == ViewYear {
		m.mode = ViewMonth
		// Land on the selected day when it is in the year on screen.
		if m.selected.Year() != m.year.currentYear() {
			m.setSelected(dateutil.TruncateToDay(yearStart(m.year.currentYear(), m.loc)))
		}
		cmd = m.month.follow(m.month.manager.ScrollTo(m.month.weekIndex(m.selected), false))
	} else {
		m.mode = ViewYear
		m.showDetail = false
		index, _ := m.year.domain.Index(m.selected)
		cmd = m.year.follow(m.year.manager.ScrollTo(index, false))
	}
	return m, m.afterNavigate(cmd)
}
