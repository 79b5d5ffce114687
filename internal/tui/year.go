package tui

import (
	"math"
	"strings"
	"time"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/log"
	"github.com/javiermolinar/almanac/internal/metrics"
	"github.com/javiermolinar/almanac/internal/sticky"
	"github.com/javiermolinar/almanac/internal/tui/view"
	"github.com/javiermolinar/almanac/internal/window"
)

const yearViewName = "year"

// yearView is the virtual list of years, one block of month grids per year.
type yearView struct {
	scrollAnim

	domain  window.YearDomain
	manager *window.Manager[calendar.Year]
	sticky  *sticky.Coordinator
	header  sticky.State
	loc     *time.Location

	width int
	cols  int
}

// yearBreakpoints estimate the block height from the viewport width before a
// block has been rendered at that width.
func yearBreakpoints() []window.Breakpoint {
	var bps []window.Breakpoint
	for cols := 1; cols < view.MaxColumns; cols++ {
		bps = append(bps, window.Breakpoint{
			MaxWidth: (cols+1)*(view.MonthWidth+view.MonthGap) - view.MonthGap,
			Size:     float64(view.YearBlockLines(cols)),
		})
	}
	return bps
}

func newYearView(cfg *config.Config, loc *time.Location, frames sticky.FrameScheduler, sink metrics.Sink) (*yearView, error) {
	v := &yearView{
		domain: window.NewYearDomain(cfg.Window.MinYear, cfg.Window.MaxYear, loc),
		loc:    loc,
		cols:   view.MaxColumns,
	}

	estimate := window.UnitSizeFor(0, yearBreakpoints(), float64(view.YearBlockLines(view.MaxColumns)))
	mgr, err := window.NewManager[calendar.Year](v.domain, estimate, window.Options{
		Overscan:         cfg.Window.Overscan,
		CacheCapacity:    cfg.Window.CacheCapacity,
		ScrollDebounce:   cfg.ScrollDebounce(),
		SmoothNavigation: cfg.Window.SmoothScroll,
		Metrics:          sink,
		OnCurrentChange: func(index int) {
			log.Debug("current year changed", "year", v.domain.Year(index))
		},
	})
	if err != nil {
		return nil, err
	}
	v.manager = mgr
	v.scrollAnim = scrollAnim{name: yearViewName, sc: mgr}

	v.sticky = sticky.NewCoordinator(frames, v.measureLabels, v.publishHeader, sticky.Config{
		LabelHeight: float64(cfg.Sticky.LabelHeight),
		Gap:         float64(cfg.Sticky.PushGap),
	})
	return v, nil
}

// resize lays the months out for width and commits the measured block height.
func (v *yearView) resize(width, container int, today time.Time, st *Styles) {
	v.width = width
	v.cols = view.YearColumns(width)
	v.manager.Resize(float64(container))

	if !v.manager.Ready() {
		v.manager.SetUnitSize(window.UnitSizeFor(width, yearBreakpoints(), float64(view.YearBlockLines(view.MaxColumns))))
	}
	// Measure a real block: the estimate and the rendering must agree on height.
	sample := calendar.BuildYear(today.Year(), today, time.Time{}, v.loc)
	v.manager.SetUnitSize(float64(len(view.RenderYear(sample, v.cols, width, st.Year))))
	v.sticky.Schedule()
}

// selectionChanged drops cached grids, which carry the selected-day flag.
func (v *yearView) selectionChanged() {
	v.manager.Cache().Purge()
}

func (v *yearView) measureLabels() ([]sticky.Label, bool) {
	if !v.manager.Ready() || v.manager.Container() <= 0 {
		return nil, false
	}
	_, items := v.manager.Visible()
	if len(items) == 0 {
		return nil, false
	}
	labels := make([]sticky.Label, 0, len(items))
	for _, it := range items {
		labels = append(labels, sticky.Label{
			ID:     it.Index,
			Top:    it.Offset - v.manager.Offset(),
			Height: 1,
		})
	}
	return labels, true
}

func (v *yearView) publishHeader(s sticky.State) {
	v.header = s
	log.Debug("sticky year header", "pinned", v.domain.Year(s.PinnedID), "pushed", s.PinnedOffset, "upcoming", s.HasUpcoming)
}

// currentYear returns the year at the top of the viewport.
func (v *yearView) currentYear() int {
	return v.domain.Year(max(v.manager.Current(), 0))
}

// render draws container lines of the year list at the current offset.
func (v *yearView) render(container int, st *Styles, today, selected time.Time) []string {
	out := make([]string, container)
	offset := int(math.Round(v.manager.Offset()))

	_, items := v.manager.Visible()
	for _, it := range items {
		year, ok := v.manager.Data(it.Index, func(index int, _ time.Time) calendar.Year {
			return calendar.BuildYear(v.domain.Year(index), today, selected, v.loc)
		})
		if !ok {
			continue
		}
		top := int(math.Round(it.Offset)) - offset
		for i, line := range view.RenderYear(year, v.cols, v.width, st.Year) {
			if row := top + i; row >= 0 && row < container {
				out[row] = line
			}
		}
	}

	blank := st.Year.Fill.Render(strings.Repeat(" ", max(0, v.width)))
	for i := range out {
		if out[i] == "" {
			out[i] = blank
		}
	}

	// The pinned label stays on the first line until the next one pushes it out.
	h := v.header
	if container > 0 && h.HasPinned && h.PinnedOffset < 1 {
		out[0] = view.YearLabel(v.domain.Year(h.PinnedID), v.width, st.StickyStyle)
	}
	return out
}
