package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/layout"
	"github.com/javiermolinar/almanac/internal/log"
	"github.com/javiermolinar/almanac/internal/metrics"
	"github.com/javiermolinar/almanac/internal/tui/view"
	"github.com/javiermolinar/almanac/internal/window"
)

const monthViewName = "month"

// Events are loaded loadWeeks either side of the current week and reloaded
// once the viewport gets within reloadMargin weeks of the loaded edge.
const (
	loadWeeks    = 26
	reloadMargin = 8
)

// monthView is the virtual list of week rows.
type monthView struct {
	scrollAnim

	domain  window.WeekDomain
	manager *window.Manager[*layout.WeekLayout]
	opts    layout.Options

	width int
	lines int // lines per week row

	events     []event.Event
	buckets    map[layout.WeekKey][]event.Event
	loadedFrom time.Time
	loadedTo   time.Time
	loading    bool
}

func newMonthView(cfg *config.Config, loc *time.Location, sink metrics.Sink) (*monthView, error) {
	from := time.Date(cfg.Window.MinYear, time.January, 1, 0, 0, 0, 0, loc)
	to := time.Date(cfg.Window.MaxYear, time.December, 31, 0, 0, 0, 0, loc)
	v := &monthView{
		domain: window.NewWeekDomain(from, to),
		opts: layout.Options{
			Location:        loc,
			MaxEventsPerDay: cfg.Calendar.MaxEventsPerDay,
			Logger:          log.Default(),
		},
		buckets: make(map[layout.WeekKey][]event.Event),
	}
	v.lines = view.WeekLines(0, v.maxEvents())

	mgr, err := window.NewManager[*layout.WeekLayout](v.domain, float64(v.lines), window.Options{
		Overscan:         cfg.Window.Overscan,
		CacheCapacity:    cfg.Window.CacheCapacity,
		ScrollDebounce:   cfg.ScrollDebounce(),
		SmoothNavigation: cfg.Window.SmoothScroll,
		Metrics:          sink,
	})
	if err != nil {
		return nil, err
	}
	v.manager = mgr
	v.scrollAnim = scrollAnim{name: monthViewName, sc: mgr}
	return v, nil
}

func (v *monthView) maxEvents() int {
	if v.opts.MaxEventsPerDay > 0 {
		return v.opts.MaxEventsPerDay
	}
	return layout.DefaultMaxEventsPerDay
}

// resize recomputes the row height for the viewport.
func (v *monthView) resize(width, container int) {
	v.width = width
	v.manager.Resize(float64(container))
	v.lines = view.WeekLines(container, v.maxEvents())
	v.manager.SetUnitSize(float64(v.lines))
}

// weekIndex returns the row of the week containing day.
func (v *monthView) weekIndex(day time.Time) int {
	i, _ := v.domain.Index(day)
	return i
}

// weekStart returns the Monday of the row at the top of the viewport.
func (v *monthView) weekStart() time.Time {
	start, ok := v.domain.Start(max(v.manager.Current(), 0))
	if !ok {
		return v.domain.Epoch
	}
	return start
}

// visibleWeeks is how many whole rows fit in the viewport.
func (v *monthView) visibleWeeks() int {
	return max(1, int(v.manager.Container())/max(1, v.lines))
}

// reveal scrolls just enough to bring the row of day into view.
func (v *monthView) reveal(day time.Time, smooth bool) (window.ScrollRequest, bool) {
	index := v.weekIndex(day)
	top := max(v.manager.Current(), 0)
	switch {
	case index < top:
		return v.manager.ScrollTo(index, smooth), true
	case index >= top+v.visibleWeeks():
		return v.manager.ScrollTo(index-v.visibleWeeks()+1, smooth), true
	}
	return window.ScrollRequest{}, false
}

// needsLoad reports the range to fetch when the viewport nears the edge of
// the loaded one.
func (v *monthView) needsLoad() (from, to time.Time, ok bool) {
	if v.loading {
		return from, to, false
	}
	center := v.weekStart()
	from = dateutil.AddDays(center, -loadWeeks*dateutil.DaysPerWeek)
	to = dateutil.AddDays(center, loadWeeks*dateutil.DaysPerWeek)
	if v.loadedFrom.IsZero() {
		return from, to, true
	}

	lo := dateutil.AddDays(center, -reloadMargin*dateutil.DaysPerWeek)
	hi := dateutil.AddDays(center, (reloadMargin+v.visibleWeeks())*dateutil.DaysPerWeek)
	if lo.Before(v.loadedFrom) || hi.After(v.loadedTo) {
		return from, to, true
	}
	return from, to, false
}

// apply replaces the loaded events and drops every cached layout.
func (v *monthView) apply(from, to time.Time, events []event.Event) {
	v.loading = false
	v.events = events
	v.loadedFrom, v.loadedTo = from, to

	buckets, skipped := layout.BucketByWeek(events, v.opts)
	v.buckets = buckets
	v.manager.Cache().Purge()

	log.Debug("events loaded", "from", from.Format(time.DateOnly), "to", to.Format(time.DateOnly), "events", len(events), "skipped", len(skipped))
}

// eventsOn returns the loaded events covering day, in listing order.
func (v *monthView) eventsOn(day time.Time) []event.Event {
	return eventsCovering(v.events, day, v.opts.Location)
}

// layoutAt returns the packed layout of a row, building it on a cache miss.
func (v *monthView) layoutAt(index int) (*layout.WeekLayout, bool) {
	return v.manager.Data(index, func(_ int, start time.Time) *layout.WeekLayout {
		return layout.LayoutWeek(v.buckets[layout.WeekOf(start)], start, v.opts)
	})
}

// render draws container lines of week rows at the current offset.
func (v *monthView) render(container int, st *Styles, today, selected time.Time) []string {
	out := make([]string, container)
	offset := int(math.Round(v.manager.Offset()))
	_, month := calendar.NewWeek(v.weekStart(), today).DominantMonth()

	_, items := v.manager.Visible()
	for _, it := range items {
		wl, ok := v.layoutAt(it.Index)
		if !ok {
			continue
		}
		rows := view.RenderWeek(view.WeekRowState{
			Layout:   wl,
			Width:    v.width,
			Lines:    v.lines,
			Location: v.opts.Location,
			Today:    today,
			Selected: selected,
			Month:    month,
		}, st.Week)

		top := int(math.Round(it.Offset)) - offset
		for i, line := range rows {
			if row := top + i; row >= 0 && row < container {
				out[row] = line
			}
		}
	}

	blank := st.Week.Fill.Render(strings.Repeat(" ", max(0, v.width)))
	for i := range out {
		if out[i] == "" {
			out[i] = blank
		}
	}
	return out
}

// floatingTitle is the month shown over the rows while scrolling.
func (v *monthView) floatingTitle(today time.Time) string {
	year, month := calendar.NewWeek(v.weekStart(), today).DominantMonth()
	return fmt.Sprintf("%s %d", month, year)
}
