// Package event defines the calendar event types consumed by the layout engine.
package event

import (
	"errors"
	"strings"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// Validation errors.
var (
	ErrMissingStart   = errors.New("event has no start")
	ErrMissingEnd     = errors.New("event has no end")
	ErrEndBeforeStart = errors.New("event ends before it starts")
	ErrEmptyTitle     = errors.New("title cannot be empty")
)

// Domain errors.
var (
	ErrEventNotFound = errors.New("event not found")
)

// DefaultCalendar is the calendar id used when none is given.
const DefaultCalendar = "default"

// Event is a scheduled occurrence owned by a calendar.
type Event struct {
	ID         string
	CalendarID string
	Title      string
	Start      Time
	End        Time
	AllDay     bool
	Version    int
}

// New creates a validated event. All-day events are stored as date-only values.
func New(title string, start, end time.Time, allDay bool) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	e := &Event{
		CalendarID: DefaultCalendar,
		Title:      title,
		AllDay:     allDay,
	}
	if allDay {
		e.Start, e.End = DateOf(start), DateOf(end)
	} else {
		e.Start, e.End = At(start), At(end)
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks that both ends are present and that end is not before start
// once both are normalized to the same granularity.
func (e Event) Validate() error {
	if e.Start.IsZero() {
		return ErrMissingStart
	}
	if e.End.IsZero() {
		return ErrMissingEnd
	}

	loc := time.UTC
	if !e.Start.DateOnly() {
		loc = e.Start.Raw().Location()
	}
	start, end := e.Start.In(loc), e.End.In(loc)
	if e.AllDay || e.Start.DateOnly() || e.End.DateOnly() {
		start, end = dateutil.TruncateToDay(start), dateutil.TruncateToDay(end)
	}
	if end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}
