package layout

import (
	"time"

	"github.com/javiermolinar/almanac/internal/event"
)

// WeekLayout is everything a renderer needs to draw one week row.
type WeekLayout struct {
	Start   time.Time
	Days    [7]DayCell
	Packing Packing
	Skipped []Skipped
}

// Segments returns every packed segment, slot by slot.
func (w *WeekLayout) Segments() []Segment {
	var out []Segment
	for _, layer := range w.Packing.Layers {
		out = append(out, layer...)
	}
	return out
}

// LayoutWeek segments, packs and distributes events over the week starting at weekStart.
func LayoutWeek(events []event.Event, weekStart time.Time, opts Options) *WeekLayout {
	opts = opts.withDefaults()
	weekStart = anchorDay(weekStart, opts.Location)

	res := SegmentWeek(events, weekStart, opts)
	packing := Pack(res.Segments)
	records := Records(events, weekStart, res.Segments, opts)

	return &WeekLayout{
		Start:   weekStart,
		Days:    buildCells(weekStart, records, packing.Depth, opts.MaxEventsPerDay, opts.Location),
		Packing: packing,
		Skipped: res.Skipped,
	}
}
