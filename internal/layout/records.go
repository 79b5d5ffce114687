package layout

import (
	"sort"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

// Record is an event shown inside a single day cell.
type Record struct {
	Event event.Event
	Day   int // 0..6
	Date  time.Time
	// Covered is set when an overlay segment already draws this event on Day.
	Covered bool
}

// Records builds the per-day records of the week starting at weekStart.
//
// Single-day events get one record on their day. All-day multi-day events get
// one record per day they cover. Timed multi-day events only appear as
// segments. Records of all-day events already drawn by a segment in segs are
// marked Covered.
func Records(events []event.Event, weekStart time.Time, segs []Segment, opts Options) []Record {
	opts = opts.withDefaults()
	weekStart = anchorDay(weekStart, opts.Location)

	covered := make(map[string]Segment, len(segs))
	for _, s := range segs {
		covered[s.EventID] = s
	}

	var records []Record
	for _, e := range events {
		span, err := NormalizeSpan(e, opts.Location)
		if err != nil {
			continue
		}

		if !span.MultiDay() {
			if d := dayIndex(weekStart, span.Start); d >= 0 && d <= 6 {
				records = append(records, Record{Event: e, Day: d, Date: span.Start})
			}
			continue
		}
		if !e.AllDay {
			continue
		}

		for day := span.Start; !day.After(span.End); day = dateutil.AddDays(day, 1) {
			d := dayIndex(weekStart, day)
			if d < 0 {
				continue
			}
			if d > 6 {
				break
			}
			seg, ok := covered[e.ID]
			records = append(records, Record{
				Event:   e,
				Day:     d,
				Date:    day,
				Covered: ok && seg.Covers(d),
			})
		}
	}
	return records
}

// DayCell is what one day of the week grid displays.
type DayCell struct {
	Date time.Time
	// Reserved is the number of overlay rows crossing this day.
	Reserved int
	Visible  []Record
	// Hidden is the count behind "+N more".
	Hidden int
}

// buildCells distributes uncovered records over the seven days, sorted all-day
// first and then by start time, keeping at most limit per day.
func buildCells(weekStart time.Time, records []Record, depth [7]int, limit int, loc *time.Location) [7]DayCell {
	var cells [7]DayCell
	for i := range cells {
		cells[i].Date = dateutil.AddDays(weekStart, i)
		cells[i].Reserved = depth[i]
	}

	var perDay [7][]Record
	for _, r := range records {
		if r.Covered {
			continue
		}
		perDay[r.Day] = append(perDay[r.Day], r)
	}

	for i, recs := range perDay {
		sortDayRecords(recs, loc)
		if len(recs) > limit {
			cells[i].Hidden = len(recs) - limit
			recs = recs[:limit]
		}
		cells[i].Visible = recs
	}
	return cells
}

// sortDayRecords puts all-day records first in their original order, then timed
// records by start.
func sortDayRecords(recs []Record, loc *time.Location) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i].Event, recs[j].Event
		if a.AllDay != b.AllDay {
			return a.AllDay
		}
		if a.AllDay {
			return false
		}
		return a.Start.In(loc).Before(b.Start.In(loc))
	})
}
