// Package calendar builds the per-unit grids displayed by the year and month views.
package calendar

import (
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// GridDays is the number of cells in a month grid: six Monday-first weeks.
const GridDays = 6 * dateutil.DaysPerWeek

// GridDay is one cell of a month grid.
type GridDay struct {
	Date       time.Time
	Day        int
	InMonth    bool
	IsToday    bool
	IsSelected bool
}

// Month is a Monday-first grid of GridDays cells starting on or before the 1st.
type Month struct {
	Year  int
	Month time.Month
	Days  [GridDays]GridDay
}

// Name returns the month name.
func (m Month) Name() string { return m.Month.String() }

// Weeks returns the grid split into six rows.
func (m Month) Weeks() [6][7]GridDay {
	var rows [6][7]GridDay
	for i, d := range m.Days {
		rows[i/7][i%7] = d
	}
	return rows
}

// Year holds the twelve month grids of one year.
type Year struct {
	Year   int
	Months [12]Month
}

// BuildYear builds the grids of year. Today and selected are matched by
// calendar date and only flagged on days inside their own month; a zero
// selected marks nothing.
func BuildYear(year int, today, selected time.Time, loc *time.Location) Year {
	if loc == nil {
		loc = time.Local
	}
	y := Year{Year: year}
	for m := range y.Months {
		y.Months[m] = BuildMonth(year, time.Month(m+1), today, selected, loc)
	}
	return y
}

// BuildMonth builds a single month grid.
func BuildMonth(year int, month time.Month, today, selected time.Time, loc *time.Location) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	gridStart := dateutil.StartOfWeek(first)

	m := Month{Year: year, Month: month}
	for i := range m.Days {
		date := dateutil.AddDays(gridStart, i)
		inMonth := date.Month() == month
		m.Days[i] = GridDay{
			Date:       date,
			Day:        date.Day(),
			InMonth:    inMonth,
			IsToday:    inMonth && dateutil.SameDay(date, today),
			IsSelected: inMonth && !selected.IsZero() && dateutil.SameDay(date, selected),
		}
	}
	return m
}
