package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
	// idWidth is how much of an event id the listings print.
	idWidth = 8
)

// PrintOpts configures event printing behavior.
type PrintOpts struct {
	Location     *time.Location
	Verbose      bool // full titles and ids
	MaxDescWidth int  // maximum title width (0 = auto)
}

// CalcMaxDescWidth calculates the maximum title width based on options.
func (o PrintOpts) CalcMaxDescWidth(defaultWidth int) int {
	if o.MaxDescWidth > 0 {
		return o.MaxDescWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// "  HH:MM-HH:MM  " plus a short id column
	overhead := 16 + idWidth + 2
	if available := termWidth() - overhead; available > defaultWidth {
		return available
	}
	return defaultWidth
}

// timeLabel describes when e happens on day: "all day", "09:00-10:30", or
// open-ended arrows for timed events that cross midnight.
func timeLabel(e event.Event, day time.Time, loc *time.Location) string {
	if e.AllDay || e.Start.DateOnly() {
		return "all day"
	}
	start, end := e.Start.In(loc), e.End.In(loc)
	startsToday := dateutil.SameDay(start, day)
	endsToday := dateutil.SameDay(end, day) || (dateutil.IsMidnight(end) && dateutil.SameDay(end, dateutil.AddDays(day, 1)))
	switch {
	case startsToday && endsToday:
		return start.Format(timeLayout) + "-" + end.Format(timeLayout)
	case startsToday:
		return start.Format(timeLayout) + "-→"
	case endsToday:
		return "→-" + end.Format(timeLayout)
	default:
		return "→ all day"
	}
}

// spanLabel describes the full extent of e.
func spanLabel(e event.Event, loc *time.Location) string {
	if e.AllDay || e.Start.DateOnly() {
		if e.Start.String() == e.End.String() {
			return e.Start.String()
		}
		return e.Start.String() + ".." + e.End.String()
	}
	start, end := e.Start.In(loc), e.End.In(loc)
	if dateutil.SameDay(start, end) {
		return start.Format(dateLayout+" "+timeLayout) + "-" + end.Format(timeLayout)
	}
	return start.Format(dateLayout+" "+timeLayout) + " → " + end.Format(dateLayout+" "+timeLayout)
}

// shortID trims an id for display unless verbose output is on.
func shortID(id string, verbose bool) string {
	if verbose || len(id) <= idWidth {
		return id
	}
	return id[:idWidth]
}

func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// PrintEventRow prints one event of day with consistent formatting.
func PrintEventRow(w io.Writer, e event.Event, day time.Time, opts PrintOpts, maxDescWidth int) {
	label := fmt.Sprintf("%-11s", timeLabel(e, day, opts.Location))
	title := truncate(e.Title, maxDescWidth)
	if e.AllDay {
		label, title = formatAllDay(label), formatAllDay(title)
	} else {
		title = formatTimed(title)
	}
	_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", label, title, formatMuted(shortID(e.ID, opts.Verbose)))
}

// dayHeader formats a day heading, highlighting today.
func dayHeader(day, today time.Time) string {
	text := day.Format("Mon Jan 2")
	if dateutil.SameDay(day, today) {
		return formatToday(text + " (today)")
	}
	return formatHeader(text)
}
