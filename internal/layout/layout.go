// Package layout turns a set of events into a week grid: per-day records for
// in-cell display and week-clipped segments packed into non-overlapping slots
// for multi-day overlay bars.
//
// Everything here is recomputed from scratch per week. Caller events are read,
// never modified.
package layout

import (
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// Geometry defaults, in pixels, for graphical renderers.
const (
	RowHeight         = 16
	RowSpacing        = 17
	MultiDayTopOffset = 33
)

// DefaultMaxEventsPerDay is how many records a day cell shows before "+N more".
const DefaultMaxEventsPerDay = 4

// Warner receives warnings about events that cannot be laid out.
type Warner interface {
	Warn(msg string, kv ...any)
}

// Options configure a layout pass.
type Options struct {
	// Location is the zone calendar days are computed in. Defaults to time.Local.
	Location        *time.Location
	MaxEventsPerDay int
	Logger          Warner
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.MaxEventsPerDay <= 0 {
		o.MaxEventsPerDay = DefaultMaxEventsPerDay
	}
	return o
}

func (o Options) warn(msg string, kv ...any) {
	if o.Logger != nil {
		o.Logger.Warn(msg, kv...)
	}
}

// Skipped is an event excluded from layout.
type Skipped struct {
	EventID string
	Err     error
}

// dayIndex returns the 0..6 position of day within the week starting at weekStart,
// or a value outside that range when day is in another week.
func dayIndex(weekStart, day time.Time) int {
	return dateutil.DaysBetween(weekStart, day)
}

// anchorDay returns midnight in loc of the calendar date t shows.
func anchorDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
