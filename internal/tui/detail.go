package tui

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/geometry"
	"github.com/javiermolinar/almanac/internal/layout"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

const (
	// lineHeight converts terminal lines to the arrow geometry's pixel units.
	lineHeight    = 16
	panelMaxWidth = 36
	timeColumn    = 15
)

// detailPanel is a rendered detail panel and where it goes on screen.
type detailPanel struct {
	lines []string
	left  int
	top   int
}

// sortForDay orders events the way a day lists them: all-day first, then by
// start, then by title.
func sortForDay(events []event.Event, loc *time.Location) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.AllDay != b.AllDay {
			return a.AllDay
		}
		as, bs := a.Start.In(loc), b.Start.In(loc)
		if !as.Equal(bs) {
			return as.Before(bs)
		}
		return a.Title < b.Title
	})
}

// eventsCovering returns the events whose span includes day, sorted for listing.
// Events that cannot be laid out are left out.
func eventsCovering(events []event.Event, day time.Time, loc *time.Location) []event.Event {
	day = dateutil.TruncateToDay(day.In(loc))
	var out []event.Event
	for _, e := range events {
		span, err := layout.NormalizeSpan(e, loc)
		if err != nil || day.Before(span.Start) || day.After(span.End) {
			continue
		}
		out = append(out, e)
	}
	sortForDay(out, loc)
	return out
}

// detailLines formats one line per event: time column, then title.
func detailLines(events []event.Event, loc *time.Location) []string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		when := ansi.Truncate(view.FormatEventTime(e, loc), timeColumn-1, "")
		lines = append(lines, when+strings.Repeat(" ", timeColumn-ansi.StringWidth(when))+e.Title)
	}
	return lines
}

// detailPanel lays out the selected day's panel next to its column. viewTop is
// the screen row of the first week row and container the rows' height.
func (m *Model) detailPanel(viewTop, container int) (detailPanel, bool) {
	if m.width < 8 || container < 3 {
		return detailPanel{}, false
	}
	loc := m.loc
	day := m.selected
	lines := detailLines(m.month.eventsOn(day), loc)

	width := min(panelMaxWidth, m.width/2)
	height := min(view.PanelLines(len(lines)), container)

	// Column edges of the selected day.
	cols := view.ColumnWidths(m.width)
	di := (int(day.Weekday()) + 6) % 7
	colLeft := 0
	for i := 0; i < di; i++ {
		colLeft += cols[i]
	}
	colRight := colLeft + cols[di]

	side, _ := geometry.ArrowSide(day.Weekday() == time.Sunday)
	left := colRight
	if side == geometry.Right {
		left = colLeft - width
	}
	left = max(0, min(left, m.width-width))

	// Arrow row, from the selected week's position in the viewport.
	weekTop := float64(m.month.weekIndex(day)*m.month.lines) - m.month.manager.Offset()
	content := geometry.Rect{Top: float64(viewTop * lineHeight), Height: float64(container * lineHeight)}
	rowRect := geometry.Rect{Top: (float64(viewTop) + weekTop) * lineHeight, Height: float64(m.month.lines * lineHeight)}
	arrowRow := -1
	top, ok := geometry.ArrowTop(geometry.ArrowInput{
		Visibility: geometry.VisibilityOf(rowRect, content),
		PanelTop:   float64(viewTop * lineHeight),
		Panel:      &geometry.Panel{Height: float64(height * lineHeight), BorderBottom: lineHeight},
		Content:    &content,
		Event:      &rowRect,
	})
	if ok {
		arrowRow = int(math.Round((top + geometry.ArrowSize/2) / lineHeight))
		arrowRow = max(1, min(arrowRow, height-2))
	}

	rendered := view.RenderPanel(view.PanelState{
		Title:      view.FormatDayTitle(day),
		Lines:      lines,
		Empty:      "No events",
		Width:      width,
		Height:     height,
		ArrowRow:   arrowRow,
		ArrowRight: side == geometry.Right,
	}, m.styles.Panel)
	if rendered == nil {
		return detailPanel{}, false
	}
	return detailPanel{lines: rendered, left: left, top: viewTop}, true
}
