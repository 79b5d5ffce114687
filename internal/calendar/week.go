package calendar

import (
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// Day is one day of a month-view week row.
type Day struct {
	Date    time.Time
	IsToday bool
}

// Week holds 7 days starting from Monday.
type Week struct {
	StartDate time.Time // Monday of the week
	Days      [7]Day    // Monday (0) through Sunday (6)
}

// NewWeek creates the Week containing date.
func NewWeek(date, today time.Time) Week {
	monday := dateutil.StartOfWeek(date)
	w := Week{StartDate: monday}
	for i := range w.Days {
		d := dateutil.AddDays(monday, i)
		w.Days[i] = Day{Date: d, IsToday: dateutil.SameDay(d, today)}
	}
	return w
}

// EndDate returns the Sunday of the week.
func (w Week) EndDate() time.Time {
	return dateutil.AddDays(w.StartDate, 6)
}

// DayIndex returns the weekday position of date (0=Monday), or -1 if date is
// not in this week.
func (w Week) DayIndex(date time.Time) int {
	i := dateutil.DaysBetween(w.StartDate, date)
	if i < 0 || i > 6 {
		return -1
	}
	return i
}

// MonthStart returns the index of the day that is the 1st of a month, if the
// week contains one. The month view labels that row with the month name.
func (w Week) MonthStart() (int, bool) {
	for i, d := range w.Days {
		if d.Date.Day() == 1 {
			return i, true
		}
	}
	return 0, false
}

// DominantMonth returns the month most days of the week belong to.
func (w Week) DominantMonth() (int, time.Month) {
	// Thursday always belongs to the month holding at least four days.
	thu := w.Days[3].Date
	return thu.Year(), thu.Month()
}

// WeekdayName returns the name of the weekday (0=Monday).
func WeekdayName(weekday int) string {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}

// WeekdayShortName returns the short name of the weekday (0=Monday).
func WeekdayShortName(weekday int) string {
	names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}
