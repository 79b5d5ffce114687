// Package tui provides the terminal user interface for almanac.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/log"
	"github.com/javiermolinar/almanac/internal/metrics"
	"github.com/javiermolinar/almanac/internal/sticky"
	"github.com/javiermolinar/almanac/internal/tui/commands"
	"github.com/javiermolinar/almanac/internal/tui/theme"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

// ViewMode is which virtual list is on screen.
type ViewMode int

const (
	ViewYear ViewMode = iota
	ViewMonth
)

func (v ViewMode) String() string {
	switch v {
	case ViewYear:
		return "year"
	case ViewMonth:
		return "month"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(v))
	}
}

// statusTimeout is how long a status message stays on the footer.
const statusTimeout = 3 * time.Second

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   event.Repository
	config *config.Config
	loc    *time.Location
	now    func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	keys   keyMap
	help   help.Model

	// Go-to prompt
	prompt    textinput.Model
	prompting bool
	promptErr string

	// Frame loop shared by scroll animations and sticky measurement
	metrics *metrics.Recorder
	frames  *sticky.FrameQueue
	ticking bool

	// Views
	year     *yearView
	month    *monthView
	mode     ViewMode
	selected time.Time // midnight in loc

	showDetail  bool
	showMetrics bool
	overlay     OverlayModel

	// Terminal dimensions
	width  int
	height int
	sized  bool

	statusMsg string
	err       error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// WithMode sets the view shown first.
func WithMode(mode ViewMode) ModelOption {
	return func(m *Model) { m.mode = mode }
}

// loadTheme resolves the configured theme; unknown names load the default.
var loadTheme = theme.Load

// New creates a new TUI model. repo may be nil, in which case no events are shown.
func New(repo event.Repository, cfg *config.Config, opts ...ModelOption) (*Model, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Warn("falling back to local time zone", "timezone", cfg.Calendar.Timezone, "err", err)
		loc = time.Local
	}

	t, err := loadTheme(cfg.UI.Theme)
	if err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}
	styles := NewStyles(t)

	prompt := textinput.New()
	prompt.Prompt = "> "
	prompt.Placeholder = "2031, 2025-03, friday, /today"
	prompt.CharLimit = 64

	m := &Model{
		repo:    repo,
		config:  cfg,
		loc:     loc,
		now:     time.Now,
		theme:   t,
		styles:  styles,
		keys:    defaultKeyMap(),
		help:    help.New(),
		prompt:  prompt,
		metrics: metrics.NewRecorder(),
		frames:  &sticky.FrameQueue{},
		mode:    ViewMonth,
		overlay: NewOverlayModel(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.overlay.SetBackground(styles.colorOverlay)
	m.selected = m.today()

	if m.year, err = newYearView(cfg, loc, m.frames, m.metrics); err != nil {
		return nil, fmt.Errorf("creating year view: %w", err)
	}
	if m.month, err = newMonthView(cfg, loc, m.metrics); err != nil {
		return nil, fmt.Errorf("creating month view: %w", err)
	}
	return m, nil
}

// Init loads the events around today.
func (m Model) Init() tea.Cmd {
	today := m.today()
	m.month.loading = true
	return commands.LoadEvents(m.repo,
		dateutil.StartOfWeek(dateutil.AddDays(today, -loadWeeks*dateutil.DaysPerWeek)),
		dateutil.StartOfWeek(dateutil.AddDays(today, loadWeeks*dateutil.DaysPerWeek)),
	)
}

// today returns midnight of the current day in the calendar's zone.
func (m *Model) today() time.Time {
	return dateutil.TruncateToDay(m.now().In(m.loc))
}

func (m *Model) setSelected(day time.Time) {
	day = dateutil.TruncateToDay(day.In(m.loc))
	if day.Equal(m.selected) {
		return
	}
	m.selected = day
	m.year.selectionChanged()
	m.month.manager.Cache().Purge()
}

func yearStart(year int, loc *time.Location) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
}

// viewportTop is the screen row the virtual list starts on.
func (m *Model) viewportTop() int {
	if m.mode == ViewMonth {
		return 2 // header, weekday names
	}
	return 1
}

// viewportHeight is how many lines the virtual list gets.
func (m *Model) viewportHeight() int {
	return max(0, m.height-m.viewportTop()-view.FooterLines)
}

// Run starts the TUI.
func Run(repo event.Repository, cfg *config.Config) error {
	if cfg.Log.File != "" {
		logger, closer, err := log.NewFile(cfg.Log.File, cfg.LogLevel())
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() { _ = closer.Close() }()
		// The terminal belongs to the UI while it runs.
		prev := log.Default()
		log.SetDefault(logger)
		defer log.SetDefault(prev)
	}

	model, err := New(repo, cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
