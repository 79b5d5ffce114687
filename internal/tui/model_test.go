package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/tui/commands"
	"github.com/javiermolinar/almanac/internal/tui/theme"
)

// Wednesday.
var testNow = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

const (
	testWidth  = 100
	testHeight = 40
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Calendar.Timezone = "UTC"
	cfg.Window.MinYear = 2000
	cfg.Window.MaxYear = 2050
	cfg.Window.SmoothScroll = false
	cfg.Log.File = ""
	return cfg
}

func newTestModel(t *testing.T, cfg *config.Config, opts ...ModelOption) Model {
	t.Helper()
	opts = append([]ModelOption{WithClock(func() time.Time { return testNow })}, opts...)
	m, err := New(nil, cfg, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func day(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func timed(id, title string, start time.Time, d time.Duration) event.Event {
	return event.Event{ID: id, Title: title, Start: event.At(start), End: event.At(start.Add(d))}
}

func TestViewModeString(t *testing.T) {
	tests := []struct {
		mode ViewMode
		want string
	}{
		{ViewYear, "year"},
		{ViewMonth, "month"},
		{ViewMode(7), "ViewMode(7)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestNewStartsOnToday(t *testing.T) {
	m := newTestModel(t, testConfig())

	if !m.selected.Equal(day(2025, 3, 12)) {
		t.Fatalf("selected = %v, want 2025-03-12", m.selected)
	}
	if m.mode != ViewMonth {
		t.Fatalf("mode = %v, want month", m.mode)
	}
	if got, want := m.month.manager.Current(), m.month.weekIndex(day(2025, 3, 10)); got != want {
		t.Errorf("month current = %d, want %d", got, want)
	}
	if got := m.year.currentYear(); got != 2025 {
		t.Errorf("year current = %d, want 2025", got)
	}
	if !m.month.loading {
		t.Error("expected the first layout to request events")
	}
}

func TestNewRejectsBadWindowConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Window.CacheCapacity = -1
	if _, err := New(nil, cfg); err == nil {
		t.Fatal("expected error for negative cache capacity")
	}
}

func TestNewReportsThemeErrors(t *testing.T) {
	orig := loadTheme
	t.Cleanup(func() { loadTheme = orig })
	loadTheme = func(string) (*theme.Theme, error) {
		return nil, errTest("corrupt theme")
	}

	m, err := New(nil, testConfig())
	if err == nil || !strings.Contains(err.Error(), "corrupt theme") {
		t.Fatalf("got error %v, want the theme error", err)
	}
	if m != nil {
		t.Errorf("got model %v, want nil", m)
	}
}

func TestNewUnknownThemeUsesDefault(t *testing.T) {
	cfg := testConfig()
	cfg.UI.Theme = "nonexistent"
	m := newTestModel(t, cfg)
	if m.theme.Name != theme.DefaultName {
		t.Errorf("theme: got %q, want %q", m.theme.Name, theme.DefaultName)
	}
}

func TestMonthKeysMoveSelection(t *testing.T) {
	m := newTestModel(t, testConfig())
	start := m.month.manager.Current()

	tests := []struct {
		key         string
		wantDay     time.Time
		wantCurrent int
	}{
		{key: "j", wantDay: day(2025, 3, 19), wantCurrent: start + 1},
		{key: "l", wantDay: day(2025, 3, 20), wantCurrent: start + 1},
		{key: "k", wantDay: day(2025, 3, 13), wantCurrent: start},
		{key: "h", wantDay: day(2025, 3, 12), wantCurrent: start},
		{key: "J", wantDay: day(2025, 4, 16), wantCurrent: start + 5},
		{key: "t", wantDay: day(2025, 3, 12), wantCurrent: start},
	}
	for _, tt := range tests {
		m = press(t, m, tt.key)
		if !m.selected.Equal(tt.wantDay) {
			t.Errorf("%s: selected = %s, want %s", tt.key, m.selected.Format(time.DateOnly), tt.wantDay.Format(time.DateOnly))
		}
		if got := m.month.manager.Current(); got != tt.wantCurrent {
			t.Errorf("%s: current = %d, want %d", tt.key, got, tt.wantCurrent)
		}
	}
}

func TestSelectingPastTheBottomScrolls(t *testing.T) {
	m := newTestModel(t, testConfig())
	start := m.month.manager.Current()
	visible := m.month.visibleWeeks()

	// Sunday of the last visible row, then one more day.
	last := day(2025, 3, 10).AddDate(0, 0, 7*visible-1)
	m.setSelected(last)
	m = press(t, m, "l")

	if got := m.month.manager.Current(); got != start+1 {
		t.Errorf("current = %d, want %d", got, start+1)
	}
}

func TestYearKeys(t *testing.T) {
	m := newTestModel(t, testConfig(), WithMode(ViewYear))

	m = press(t, m, "j")
	if got := m.year.currentYear(); got != 2026 {
		t.Fatalf("after j: year = %d, want 2026", got)
	}
	m = press(t, m, "K")
	if got := m.year.currentYear(); got != 2021 {
		t.Fatalf("after K: year = %d, want 2021", got)
	}
	m = press(t, m, "t")
	if got := m.year.currentYear(); got != 2025 {
		t.Fatalf("after t: year = %d, want 2025", got)
	}
}

func TestSwitchView(t *testing.T) {
	m := newTestModel(t, testConfig())

	m = press(t, m, "tab")
	if m.mode != ViewYear {
		t.Fatalf("mode = %v, want year", m.mode)
	}
	m = press(t, m, "j", "j")
	m = press(t, m, "tab")
	if m.mode != ViewMonth {
		t.Fatalf("mode = %v, want month", m.mode)
	}
	// The year on screen did not contain the selection, so it moves to January 1.
	if !m.selected.Equal(day(2027, 1, 1)) {
		t.Errorf("selected = %v, want 2027-01-01", m.selected)
	}
	if got, want := m.month.manager.Current(), m.month.weekIndex(day(2027, 1, 1)); got != want {
		t.Errorf("current = %d, want %d", got, want)
	}
}

func TestEventsLoadedAndDetailPanel(t *testing.T) {
	m := newTestModel(t, testConfig())
	events := []event.Event{
		timed("1", "Standup", time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC), 15*time.Minute),
		{ID: "2", Title: "Trip", AllDay: true, Start: event.Date(2025, 3, 11), End: event.Date(2025, 3, 13)},
		timed("3", "Other day", time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC), time.Hour),
	}
	updated, _ := m.Update(commands.EventsLoadedMsg{From: day(2024, 9, 1), To: day(2025, 9, 1), Events: events})
	m = updated.(Model)

	if m.month.loading {
		t.Fatal("loading should be cleared")
	}
	on := m.month.eventsOn(m.selected)
	if len(on) != 2 || on[0].Title != "Trip" || on[1].Title != "Standup" {
		t.Fatalf("events on the 12th = %+v, want Trip then Standup", on)
	}

	m = press(t, m, "enter")
	state := m.viewState()
	if !state.ShowPanel {
		t.Fatal("expected the detail panel")
	}
	panel := ansi.Strip(strings.Join(state.Panel, "\n"))
	for _, want := range []string{"Wednesday, March 12 2025", "Standup", "Trip", "09:00-09:15"} {
		if !strings.Contains(panel, want) {
			t.Errorf("panel missing %q:\n%s", want, panel)
		}
	}
	if strings.Contains(panel, "Other day") {
		t.Error("panel lists an event of another day")
	}
	if w := lipgloss.Width(state.Panel[0]); w != panelMaxWidth {
		t.Errorf("panel width = %d, want %d", w, panelMaxWidth)
	}

	m = press(t, m, "esc")
	if m.viewState().ShowPanel {
		t.Error("esc should close the panel")
	}
}

func TestWheelScrollSettles(t *testing.T) {
	m := newTestModel(t, testConfig())
	before := m.month.manager.Offset()

	updated, _ := m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	m = updated.(Model)

	if got := m.month.manager.Offset(); got != before+monthWheelLines {
		t.Fatalf("offset = %v, want %v", got, before+monthWheelLines)
	}
	if !m.month.manager.Scrolling() {
		t.Fatal("expected scrolling after the wheel")
	}
	if !m.viewState().ShowOverlay {
		t.Error("expected the floating month title while scrolling")
	}

	stale := m.month.manager.Generation() - 1
	updated, _ = m.Update(commands.SettleMsg{View: monthViewName, Gen: stale})
	m = updated.(Model)
	if !m.month.manager.Scrolling() {
		t.Fatal("a stale settle must not end scrolling")
	}

	updated, _ = m.Update(commands.SettleMsg{View: monthViewName, Gen: m.month.manager.Generation()})
	m = updated.(Model)
	if m.month.manager.Scrolling() {
		t.Fatal("expected scrolling to end")
	}
	if m.viewState().ShowOverlay {
		t.Error("floating title should hide once settled")
	}
}

func TestSmoothScrollRunsOnFrames(t *testing.T) {
	cfg := testConfig()
	cfg.Window.SmoothScroll = true
	m := newTestModel(t, cfg)
	target := float64(m.month.manager.Current()+1) * m.month.manager.UnitSize()

	m = press(t, m, "j")
	if !m.month.animating() || !m.ticking {
		t.Fatal("expected a running animation")
	}

	for i := 0; i < smoothSteps+2 && m.ticking; i++ {
		updated, _ := m.Update(commands.FrameMsg{})
		m = updated.(Model)
	}
	if m.ticking || m.month.animating() {
		t.Fatal("animation should have finished")
	}
	if got := m.month.manager.Offset(); got != target {
		t.Errorf("offset = %v, want %v", got, target)
	}
	if m.frames.Len() != 0 {
		t.Errorf("pending frames = %d, want 0", m.frames.Len())
	}
}

func TestYearStickyHeader(t *testing.T) {
	m := newTestModel(t, testConfig(), WithMode(ViewYear))

	updated, _ := m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	m = updated.(Model)
	updated, _ = m.Update(commands.FrameMsg{})
	m = updated.(Model)

	h := m.year.header
	index, _ := m.year.domain.Index(day(2025, 1, 1))
	if !h.HasPinned || h.PinnedID != index {
		t.Fatalf("header = %+v, want 2025 pinned", h)
	}
	if h.HasUpcoming {
		t.Errorf("next year is a full block away, got %+v", h)
	}

	lines := m.year.render(m.viewportHeight(), m.styles, m.today(), m.selected)
	if got := ansi.Strip(lines[0]); !strings.Contains(got, "2025") {
		t.Errorf("first line = %q, want the pinned year", got)
	}
}

func TestMouseClickSelectsDay(t *testing.T) {
	m := newTestModel(t, testConfig())

	// Columns are 15,15,14,14,14,14,14 wide; x=60 is Friday.
	updated, _ := m.Update(tea.MouseMsg{X: 60, Y: m.viewportTop(), Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = updated.(Model)
	if !m.selected.Equal(day(2025, 3, 14)) {
		t.Errorf("selected = %s, want 2025-03-14", m.selected.Format(time.DateOnly))
	}

	updated, _ = m.Update(tea.MouseMsg{X: 60, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = updated.(Model)
	if !m.selected.Equal(day(2025, 3, 14)) {
		t.Error("clicking the header should not change the selection")
	}
}

func TestGotoPrompt(t *testing.T) {
	m := newTestModel(t, testConfig())

	m = press(t, m, "g")
	if !m.prompting {
		t.Fatal("expected the prompt to open")
	}
	m = press(t, m, "abc", "enter")
	if !m.prompting || m.promptErr == "" {
		t.Fatalf("bad input should keep the prompt open with an error, got %q", m.promptErr)
	}

	m = press(t, m, "esc", "g", "2031", "enter")
	if m.prompting {
		t.Fatal("prompt should close after a valid target")
	}
	if m.mode != ViewYear {
		t.Errorf("mode = %v, want year", m.mode)
	}
	if got := m.year.currentYear(); got != 2031 {
		t.Errorf("year = %d, want 2031", got)
	}
	if !m.selected.Equal(day(2031, 1, 1)) {
		t.Errorf("selected = %v, want 2031-01-01", m.selected)
	}
}

func TestGotoPromptAutocomplete(t *testing.T) {
	m := newTestModel(t, testConfig())
	m = press(t, m, "g", "/to", "tab")
	if got := m.prompt.Value(); got != "/today " {
		t.Fatalf("value = %q, want %q", got, "/today ")
	}
}

func TestErrMsgShowsError(t *testing.T) {
	m := newTestModel(t, testConfig())
	updated, _ := m.Update(commands.ErrMsg{Err: errTest("boom")})
	m = updated.(Model)

	if m.err == nil || m.month.loading {
		t.Fatalf("err = %v, loading = %v", m.err, m.month.loading)
	}
	if !strings.Contains(ansi.Strip(m.View()), "Error: boom") {
		t.Error("footer should show the error")
	}

	updated, _ = m.Update(commands.ClearStatusMsg{})
	m = updated.(Model)
	if m.err != nil {
		t.Error("error should clear")
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestViewFillsTerminal(t *testing.T) {
	for _, mode := range []ViewMode{ViewMonth, ViewYear} {
		t.Run(mode.String(), func(t *testing.T) {
			m := newTestModel(t, testConfig(), WithMode(mode))
			m = press(t, m, "?")

			lines := strings.Split(m.View(), "\n")
			if len(lines) != testHeight {
				t.Fatalf("got %d lines, want %d", len(lines), testHeight)
			}
			for i, l := range lines {
				if w := lipgloss.Width(l); w != testWidth {
					t.Errorf("line %d width = %d, want %d", i, w, testWidth)
				}
			}
			if m.metrics.Snapshot().Renders != 1 {
				t.Errorf("renders = %d, want 1", m.metrics.Snapshot().Renders)
			}
		})
	}
}

func TestResizeKeepsWeekRowsAligned(t *testing.T) {
	m := newTestModel(t, testConfig())

	for _, height := range []int{64, 70, 64} {
		updated, _ := m.Update(tea.WindowSizeMsg{Width: testWidth, Height: height})
		m = updated.(Model)

		before := m.month.manager.Current()
		if got, want := float64(m.month.lines), m.month.manager.UnitSize(); got != want {
			t.Fatalf("height %d: rows are %v lines, manager places them every %v", height, got, want)
		}
		if got := m.month.manager.Offset(); got != float64(before)*m.month.manager.UnitSize() {
			t.Errorf("height %d: offset %v is not on a row boundary", height, got)
		}
	}
}

func TestViewBeforeSize(t *testing.T) {
	m, err := New(nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if got := m.View(); got != "Loading..." {
		t.Errorf("got %q, want Loading...", got)
	}
}
