// Package window computes which slice of an unbounded timeline is visible and
// keeps the scroll position anchored to a time unit (a year or a week).
package window

import (
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// Default year domain bounds.
const (
	DefaultMinYear = 1970
	DefaultMaxYear = 2100
)

// Domain maps unit indices to their start boundaries.
// Index 0 is the first unit; indices outside [0, Len()) do not exist.
type Domain interface {
	Len() int
	Start(index int) (time.Time, bool)
	Index(t time.Time) (int, bool)
}

// YearDomain addresses whole years from Min to Max inclusive.
type YearDomain struct {
	Min int
	Max int
	Loc *time.Location
}

// NewYearDomain returns the years min..max in loc.
func NewYearDomain(min, max int, loc *time.Location) YearDomain {
	if loc == nil {
		loc = time.Local
	}
	return YearDomain{Min: min, Max: max, Loc: loc}
}

func (d YearDomain) Len() int {
	if d.Max < d.Min {
		return 0
	}
	return d.Max - d.Min + 1
}

func (d YearDomain) Start(index int) (time.Time, bool) {
	if index < 0 || index >= d.Len() {
		return time.Time{}, false
	}
	return time.Date(d.Min+index, time.January, 1, 0, 0, 0, 0, d.location()), true
}

func (d YearDomain) Index(t time.Time) (int, bool) {
	i := t.In(d.location()).Year() - d.Min
	return i, i >= 0 && i < d.Len()
}

// Year returns the calendar year of index.
func (d YearDomain) Year(index int) int { return d.Min + index }

func (d YearDomain) location() *time.Location {
	if d.Loc == nil {
		return time.Local
	}
	return d.Loc
}

// WeekDomain addresses Monday-aligned weeks starting at Epoch.
type WeekDomain struct {
	Epoch time.Time
	Count int
}

// NewWeekDomain returns every week from the one containing from to the one containing to.
func NewWeekDomain(from, to time.Time) WeekDomain {
	epoch := dateutil.StartOfWeek(from)
	last := dateutil.StartOfWeek(to)
	count := dateutil.DaysBetween(epoch, last)/dateutil.DaysPerWeek + 1
	if count < 0 {
		count = 0
	}
	return WeekDomain{Epoch: epoch, Count: count}
}

func (d WeekDomain) Len() int { return d.Count }

func (d WeekDomain) Start(index int) (time.Time, bool) {
	if index < 0 || index >= d.Count {
		return time.Time{}, false
	}
	return dateutil.AddDays(d.Epoch, index*dateutil.DaysPerWeek), true
}

func (d WeekDomain) Index(t time.Time) (int, bool) {
	days := dateutil.DaysBetween(d.Epoch, t.In(d.Epoch.Location()))
	i := days / dateutil.DaysPerWeek
	if days < 0 && days%dateutil.DaysPerWeek != 0 {
		i--
	}
	return i, i >= 0 && i < d.Count
}
