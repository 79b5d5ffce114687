package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/layout"
)

// MinWeekLines is the smallest week row: day header, one event row, separator.
const MinWeekLines = 3

// WeekStyles are the styles a month-view week row is drawn with.
type WeekStyles struct {
	Day          lipgloss.Style
	Outside      lipgloss.Style // days of other months
	Today        lipgloss.Style
	Selected     lipgloss.Style
	MonthStart   lipgloss.Style // the "1 Mar" label
	Bars         [2]lipgloss.Style
	AllDayBars   [2]lipgloss.Style
	PastBar      lipgloss.Style
	Record       lipgloss.Style
	AllDayRecord lipgloss.Style
	More         lipgloss.Style
	Separator    lipgloss.Style
	Fill         lipgloss.Style
}

// WeekRowState is everything needed to draw one week row.
type WeekRowState struct {
	Layout   *layout.WeekLayout
	Width    int
	Lines    int
	Location *time.Location
	Today    time.Time
	Selected time.Time  // zero selects nothing
	Month    time.Month // days of other months are dimmed; zero dims none
}

// WeekLines returns the row height for a viewport of container lines: room for
// maxEvents records plus header, "+N more" and separator, and at least a sixth
// of the viewport.
func WeekLines(container, maxEvents int) int {
	return max(maxEvents+MinWeekLines, container/6)
}

// ColumnWidths splits width into seven day columns, the leftover going to the
// first ones.
func ColumnWidths(width int) [7]int {
	var cols [7]int
	base, extra := width/7, width%7
	for i := range cols {
		cols[i] = base
		if i < extra {
			cols[i]++
		}
	}
	return cols
}

// DayAt returns the day column under x, or -1 when x is outside the row.
func DayAt(x, width int) int {
	if x < 0 || x >= width {
		return -1
	}
	edge := 0
	for i, w := range ColumnWidths(width) {
		edge += w
		if x < edge {
			return i
		}
	}
	return -1
}

type weekCell struct {
	text  string
	style lipgloss.Style
	span  int // columns covered from here; 0 when covered by a cell to the left
}

// RenderWeek draws one week row of s.Lines lines, each s.Width cells wide.
// Overlay bars take the rows of their packing slot; the last event row is kept
// for records and "+N more", so bars in deeper slots are folded into the count.
func RenderWeek(s WeekRowState, st WeekStyles) []string {
	lines := max(MinWeekLines, s.Lines)
	eventRows := lines - 2
	barLimit := eventRows - 1
	cols := ColumnWidths(s.Width)
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}

	grid := make([][7]weekCell, eventRows)
	for r := range grid {
		for d := range grid[r] {
			grid[r][d] = weekCell{style: st.Fill, span: 1}
		}
	}

	var barsHidden [7]int
	today := dateutil.TruncateToDay(s.Today.In(loc))
	for slot, segs := range s.Layout.Packing.Layers {
		for _, seg := range segs {
			if slot >= barLimit {
				for d := seg.StartDay; d <= seg.EndDay; d++ {
					barsHidden[d]++
				}
				continue
			}
			grid[slot][seg.StartDay] = weekCell{
				text:  barText(seg, spanWidth(cols, seg.StartDay, seg.EndDay)-1),
				style: barStyle(seg, slot, today, loc, st),
				span:  seg.Days(),
			}
			for d := seg.StartDay + 1; d <= seg.EndDay; d++ {
				grid[slot][d].span = 0
			}
		}
	}

	for d, cell := range s.Layout.Days {
		start := min(cell.Reserved, barLimit)
		free := eventRows - start
		extra := cell.Hidden + barsHidden[d]
		shown := len(cell.Visible)
		if extra > 0 || shown > free {
			shown = max(0, min(shown, free-1))
		}
		for i, rec := range cell.Visible[:shown] {
			grid[start+i][d] = recordCell(rec, loc, st)
		}
		if more := len(cell.Visible) - shown + extra; more > 0 {
			grid[start+shown][d] = weekCell{text: fmt.Sprintf("+%d more", more), style: st.More, span: 1}
		}
	}

	out := make([]string, 0, lines)
	out = append(out, headerLine(s, cols, loc, st))
	for _, row := range grid {
		var b strings.Builder
		for d := 0; d < 7; {
			c := row[d]
			if c.span == 0 {
				d++
				continue
			}
			w := spanWidth(cols, d, d+c.span-1)
			if c.text == "" {
				b.WriteString(st.Fill.Render(strings.Repeat(" ", w)))
			} else {
				b.WriteString(Fit(c.text, w-1, c.style))
				b.WriteString(st.Fill.Render(" "))
			}
			d += c.span
		}
		out = append(out, b.String())
	}
	out = append(out, st.Separator.Render(strings.Repeat("─", max(0, s.Width))))
	return out
}

func headerLine(s WeekRowState, cols [7]int, loc *time.Location, st WeekStyles) string {
	today := dateutil.TruncateToDay(s.Today.In(loc))
	var b strings.Builder
	for d, cell := range s.Layout.Days {
		date := cell.Date
		label := fmt.Sprintf(" %d", date.Day())
		style := st.Day
		if date.Day() == 1 {
			label += " " + date.Month().String()[:3]
			style = st.MonthStart
		}
		if s.Month != 0 && date.Month() != s.Month {
			style = st.Outside
		}
		if dateutil.SameDay(date, today) {
			style = st.Today
		}
		if !s.Selected.IsZero() && dateutil.SameDay(date, s.Selected.In(loc)) {
			style = st.Selected
		}
		b.WriteString(Fit(label, cols[d], style))
	}
	return b.String()
}

func recordCell(rec layout.Record, loc *time.Location, st WeekStyles) weekCell {
	if rec.Event.AllDay {
		return weekCell{text: rec.Event.Title, style: st.AllDayRecord, span: 1}
	}
	start := rec.Event.Start.In(loc)
	return weekCell{text: start.Format("15:04") + " " + rec.Event.Title, style: st.Record, span: 1}
}

func barStyle(seg layout.Segment, slot int, today time.Time, loc *time.Location, st WeekStyles) lipgloss.Style {
	if span, err := layout.NormalizeSpan(seg.Event, loc); err == nil && span.End.Before(today) {
		return st.PastBar
	}
	if seg.Event.AllDay {
		return st.AllDayBars[slot%2]
	}
	return st.Bars[slot%2]
}

// barText lays out a bar title with continuation markers on the clipped ends.
func barText(seg layout.Segment, width int) string {
	if width <= 0 {
		return ""
	}
	left, right := "", ""
	if !seg.IsFirst {
		left = "◀ "
	}
	if !seg.IsLast {
		right = " ▶"
	}
	inner := width - lipgloss.Width(left) - lipgloss.Width(right)
	if inner <= 0 {
		return ansi.Truncate(left+right, width, "")
	}
	title := ansi.Truncate(seg.Event.Title, inner, "…")
	return left + title + strings.Repeat(" ", inner-lipgloss.Width(title)) + right
}

func spanWidth(cols [7]int, from, to int) int {
	w := 0
	for d := from; d <= to; d++ {
		w += cols[d]
	}
	return w
}
