package event

import (
	"fmt"
	"time"
)

// Time is either a date-only point (a whole day, no timezone) or a zoned instant.
// The zero value is "unset".
type Time struct {
	t        time.Time
	dateOnly bool
	set      bool
}

// Date returns a date-only Time.
func Date(year int, month time.Month, day int) Time {
	return Time{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), dateOnly: true, set: true}
}

// DateOf returns the date-only Time for the calendar date of t in its own location.
func DateOf(t time.Time) Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// At returns a zoned Time for the instant t.
func At(t time.Time) Time {
	return Time{t: t, set: true}
}

// IsZero reports whether the time is unset.
func (t Time) IsZero() bool { return !t.set }

// DateOnly reports whether the value carries no time of day or zone.
func (t Time) DateOnly() bool { return t.dateOnly }

// In converts t to an absolute instant in loc.
// A date-only value becomes midnight of that date in loc.
func (t Time) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	if t.dateOnly {
		return time.Date(t.t.Year(), t.t.Month(), t.t.Day(), 0, 0, 0, 0, loc)
	}
	return t.t.In(loc)
}

// Raw returns the underlying value: midnight UTC for date-only values.
func (t Time) Raw() time.Time { return t.t }

// String formats date-only values as YYYY-MM-DD and instants as RFC3339.
func (t Time) String() string {
	switch {
	case !t.set:
		return ""
	case t.dateOnly:
		return t.t.Format("2006-01-02")
	default:
		return t.t.Format(time.RFC3339)
	}
}

// ParseTime is the inverse of String.
func ParseTime(s string) (Time, error) {
	if s == "" {
		return Time{}, nil
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return DateOf(d), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Time{}, fmt.Errorf("parsing event time %q: %w", s, err)
	}
	return At(t), nil
}
