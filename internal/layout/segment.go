package layout

import (
	"fmt"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

// Kind classifies a segment by where its event starts and ends relative to the week.
type Kind string

const (
	// KindSingle: the event starts and ends inside this week.
	KindSingle Kind = "single"
	// KindStart: the event starts this week and continues into the next.
	KindStart Kind = "start"
	// KindMiddle: the event started before this week and continues after it.
	KindMiddle Kind = "middle"
	// KindEnd: the event started before this week and ends in it.
	KindEnd Kind = "end"
	// KindStartWeekEnd: the event starts on the last day of the week and continues.
	KindStartWeekEnd Kind = "start-week-end"
	// KindEndWeekStart: the event started earlier and ends on the first day of the week.
	KindEndWeekStart Kind = "end-week-start"
)

// Segment is the part of a multi-day event that falls inside one week.
type Segment struct {
	ID           string
	EventID      string
	Event        event.Event
	StartDay     int // 0..6, clipped to the week
	EndDay       int // StartDay..6
	Kind         Kind
	TotalDays    int // full span of the event
	SegmentIndex int // week ordinal within the event, 0 for its first week
	IsFirst      bool
	IsLast       bool
	Slot         int // -1 until packed
}

// Days returns the number of days the segment covers in this week.
func (s Segment) Days() int { return s.EndDay - s.StartDay + 1 }

// Covers reports whether the segment includes day.
func (s Segment) Covers(day int) bool { return day >= s.StartDay && day <= s.EndDay }

// Overlaps reports whether two segments share a day.
func (s Segment) Overlaps(o Segment) bool {
	return s.StartDay <= o.EndDay && o.StartDay <= s.EndDay
}

// SegmentResult is the output of SegmentWeek.
type SegmentResult struct {
	Segments []Segment
	Skipped  []Skipped
}

// SegmentWeek produces one segment per multi-day event touching the week that
// starts at weekStart. Single-day events produce no segments.
func SegmentWeek(events []event.Event, weekStart time.Time, opts Options) SegmentResult {
	opts = opts.withDefaults()
	weekStart = anchorDay(weekStart, opts.Location)

	var res SegmentResult
	for _, e := range events {
		span, err := NormalizeSpan(e, opts.Location)
		if err != nil {
			opts.warn("skipping invalid event", "id", e.ID, "err", err)
			res.Skipped = append(res.Skipped, Skipped{EventID: e.ID, Err: err})
			continue
		}
		if !span.MultiDay() {
			continue
		}
		if seg, ok := segmentFor(e, span, weekStart); ok {
			res.Segments = append(res.Segments, seg)
		}
	}
	return res
}

func segmentFor(e event.Event, span Span, weekStart time.Time) (Segment, bool) {
	first := dayIndex(weekStart, span.Start)
	last := dayIndex(weekStart, span.End)
	if last < 0 || first > 6 {
		return Segment{}, false
	}

	seg := Segment{
		EventID:   e.ID,
		Event:     e,
		StartDay:  max(0, first),
		EndDay:    min(6, last),
		TotalDays: span.Days(),
		IsFirst:   first >= 0,
		IsLast:    last <= 6,
		Slot:      -1,
	}
	seg.SegmentIndex = dateutil.DaysBetween(dateutil.StartOfWeek(span.Start), weekStart) / dateutil.DaysPerWeek
	seg.ID = fmt.Sprintf("%s-%d", e.ID, seg.SegmentIndex)
	seg.Kind = classify(seg)
	return seg, true
}

func classify(s Segment) Kind {
	switch {
	case s.IsFirst && s.IsLast:
		return KindSingle
	case s.IsFirst:
		if s.StartDay == 6 {
			return KindStartWeekEnd
		}
		return KindStart
	case s.IsLast:
		if s.EndDay == 0 {
			return KindEndWeekStart
		}
		return KindEnd
	default:
		return KindMiddle
	}
}
