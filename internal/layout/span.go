package layout

import (
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

// Span is the inclusive range of calendar days an event occupies.
// Both ends are midnight in the layout location.
type Span struct {
	Start time.Time
	End   time.Time
}

// Days returns how many calendar days the span covers.
func (s Span) Days() int {
	return dateutil.DaysBetween(s.Start, s.End) + 1
}

// MultiDay reports whether the span covers more than one day.
func (s Span) MultiDay() bool {
	return !s.Start.Equal(s.End)
}

// NormalizeSpan returns the days e occupies in loc.
//
// A timed event ending exactly at midnight after less than 24 hours ends on the
// previous day, so 23:00 to 00:00 stays a single-day event.
func NormalizeSpan(e event.Event, loc *time.Location) (Span, error) {
	if err := e.Validate(); err != nil {
		return Span{}, err
	}
	if loc == nil {
		loc = time.Local
	}

	start, end := e.Start.In(loc), e.End.In(loc)
	startDay, endDay := dateutil.TruncateToDay(start), dateutil.TruncateToDay(end)

	if !e.AllDay && dateutil.IsMidnight(end) {
		if d := end.Sub(start); d > 0 && d < 24*time.Hour {
			endDay = dateutil.AddDays(endDay, -1)
		}
	}
	if endDay.Before(startDay) {
		endDay = startDay
	}
	return Span{Start: startDay, End: endDay}, nil
}

// IsMultiDay reports whether e covers more than one day in loc.
// Invalid events are not multi-day.
func IsMultiDay(e event.Event, loc *time.Location) bool {
	s, err := NormalizeSpan(e, loc)
	return err == nil && s.MultiDay()
}

// WeekKey identifies a week by its Monday, formatted YYYY-MM-DD.
type WeekKey string

// WeekOf returns the key of the week containing t.
func WeekOf(t time.Time) WeekKey {
	return WeekKey(dateutil.StartOfWeek(t).Format("2006-01-02"))
}

// Start returns the Monday of the week in loc.
func (k WeekKey) Start(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation("2006-01-02", string(k), loc)
}

// BucketByWeek places every valid event in each week it touches, from its
// start week to its end week inclusive. Input order is kept within a bucket.
func BucketByWeek(events []event.Event, opts Options) (map[WeekKey][]event.Event, []Skipped) {
	opts = opts.withDefaults()
	buckets := make(map[WeekKey][]event.Event)
	var skipped []Skipped

	for _, e := range events {
		span, err := NormalizeSpan(e, opts.Location)
		if err != nil {
			opts.warn("skipping invalid event", "id", e.ID, "err", err)
			skipped = append(skipped, Skipped{EventID: e.ID, Err: err})
			continue
		}

		last := dateutil.StartOfWeek(span.End)
		for week := dateutil.StartOfWeek(span.Start); !week.After(last); week = dateutil.AddDays(week, dateutil.DaysPerWeek) {
			key := WeekOf(week)
			buckets[key] = append(buckets[key], e)
		}
	}
	return buckets, skipped
}
