package view

import (
	"fmt"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

// FormatEventTime formats when an event happens, relative to day.
//
//	all day            single all-day event
//	Mar 10 - Mar 14    multi-day all-day event
//	09:00-10:30        timed event inside day
//	09:00 → Mar 12     timed event ending on a later day
func FormatEventTime(e event.Event, loc *time.Location) string {
	start, end := e.Start.In(loc), e.End.In(loc)
	if e.AllDay {
		if dateutil.SameDay(start, end) {
			return "all day"
		}
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2"))
	}
	if dateutil.SameDay(start, end) || (dateutil.IsMidnight(end) && dateutil.DaysBetween(start, end) == 1) {
		return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
	}
	return fmt.Sprintf("%s → %s", start.Format("15:04"), end.Format("Jan 2"))
}

// FormatDayTitle formats a day for panel titles: "Monday, March 10 2025".
func FormatDayTitle(day time.Time) string {
	return day.Format("Monday, January 2 2006")
}
