package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/almanac/internal/calendar"
)

// Year grid geometry, in terminal cells.
const (
	DayCellWidth = 3
	MonthWidth   = 7 * DayCellWidth
	MonthGap     = 2
	MaxColumns   = 4

	// MonthLines is one month: name, weekday header, six weeks and a blank line.
	MonthLines = 9

	yearLabelLines = 1
)

// YearStyles are the styles a year block is drawn with.
type YearStyles struct {
	Label    lipgloss.Style
	Month    lipgloss.Style
	Weekday  lipgloss.Style
	Day      lipgloss.Style
	Outside  lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	Fill     lipgloss.Style
}

// YearColumns returns how many month columns fit in width, from 1 to MaxColumns.
func YearColumns(width int) int {
	cols := (width + MonthGap) / (MonthWidth + MonthGap)
	return max(1, min(MaxColumns, cols))
}

// YearBlockLines returns the height of a year block laid out in cols columns.
func YearBlockLines(cols int) int {
	cols = max(1, min(MaxColumns, cols))
	rows := (12 + cols - 1) / cols
	return yearLabelLines + rows*MonthLines
}

// YearLabel renders the label line of a year block.
func YearLabel(year, width int, style lipgloss.Style) string {
	return Fit(fmt.Sprintf(" %d", year), width, style)
}

// RenderYear renders the twelve months of y in cols columns. Every line is
// exactly width cells wide and the block is YearBlockLines(cols) tall.
func RenderYear(y calendar.Year, cols, width int, st YearStyles) []string {
	cols = max(1, min(MaxColumns, cols))
	lines := make([]string, 0, YearBlockLines(cols))
	lines = append(lines, YearLabel(y.Year, width, st.Label))

	gap := st.Fill.Render(strings.Repeat(" ", MonthGap))
	for first := 0; first < 12; first += cols {
		var grids [][]string
		for m := first; m < min(first+cols, 12); m++ {
			grids = append(grids, RenderMonth(y.Months[m], st))
		}
		for i := 0; i < MonthLines; i++ {
			var b strings.Builder
			for c, g := range grids {
				if c > 0 {
					b.WriteString(gap)
				}
				b.WriteString(g[i])
			}
			lines = append(lines, padLine(b.String(), width, st.Fill))
		}
	}
	return lines
}

// RenderMonth renders one month grid, MonthLines lines of MonthWidth cells.
func RenderMonth(m calendar.Month, st YearStyles) []string {
	lines := make([]string, 0, MonthLines)
	lines = append(lines, st.Month.Width(MonthWidth).Align(lipgloss.Center).Render(m.Name()))

	var header strings.Builder
	for d := 0; d < 7; d++ {
		header.WriteString(fmt.Sprintf("%-3s", calendar.WeekdayShortName(d)[:2]))
	}
	lines = append(lines, st.Weekday.Render(header.String()))

	for _, week := range m.Weeks() {
		var b strings.Builder
		for _, day := range week {
			b.WriteString(dayCell(day, st))
		}
		lines = append(lines, b.String())
	}

	lines = append(lines, st.Fill.Render(strings.Repeat(" ", MonthWidth)))
	return lines
}

func dayCell(d calendar.GridDay, st YearStyles) string {
	if !d.InMonth {
		return st.Outside.Render(strings.Repeat(" ", DayCellWidth))
	}
	num := fmt.Sprintf("%2d", d.Day)
	style := st.Day
	switch {
	case d.IsSelected:
		style = st.Selected
	case d.IsToday:
		style = st.Today
	}
	return style.Render(num) + st.Fill.Render(" ")
}

func padLine(line string, width int, fill lipgloss.Style) string {
	w := lipgloss.Width(line)
	if w >= width {
		return line
	}
	return line + fill.Render(strings.Repeat(" ", width-w))
}
