package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/layout"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

// eventsOfWeek returns the loaded events touching the week starting at start.
func (v *monthView) eventsOfWeek(start time.Time) []event.Event {
	return v.buckets[layout.WeekOf(start)]
}

// weekText formats the week containing start as plain text for the clipboard:
//
//	Week of March 10 2025
//
//	Mon 10
//	  all day        Trip
//	  09:00-09:15    Standup
func weekText(start time.Time, events []event.Event, loc *time.Location) string {
	start = dateutil.StartOfWeek(start.In(loc))

	var b strings.Builder
	fmt.Fprintf(&b, "Week of %s\n", start.Format("January 2 2006"))
	for i := 0; i < dateutil.DaysPerWeek; i++ {
		day := dateutil.AddDays(start, i)

		onDay := eventsCovering(events, day, loc)
		fmt.Fprintf(&b, "\n%s\n", day.Format("Mon 2"))
		if len(onDay) == 0 {
			b.WriteString("  -\n")
			continue
		}
		for _, e := range onDay {
			fmt.Fprintf(&b, "  %-14s %s\n", view.FormatEventTime(e, loc), e.Title)
		}
	}
	return b.String()
}
