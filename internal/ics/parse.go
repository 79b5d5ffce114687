// Package ics imports iCalendar files into calendar events.
package ics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/almanac/internal/log"
)

// ErrEmptyCalendar is returned for an input without any content.
var ErrEmptyCalendar = errors.New("empty ICS body")

// ParsedEvent is a VEVENT before recurrence expansion.
type ParsedEvent struct {
	CalendarID string
	UID        string

	Summary string

	// Start and End are zoned instants. For all-day events End is the last
	// day covered, not the exclusive DTEND.
	Start  time.Time
	End    time.Time
	AllDay bool

	RawRRule   string
	ExDates    []time.Time
	Recurrence *time.Time // RECURRENCE-ID of an overridden instance
}

// IsOverride reports whether the event replaces one instance of a series.
func (p ParsedEvent) IsOverride() bool { return p.Recurrence != nil }

// ParseICS reads one calendar. VEVENTs that cannot be parsed are logged and
// skipped.
func ParseICS(calendarID string, r io.Reader) ([]ParsedEvent, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading calendar: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyCalendar
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing calendar %s: %w", calendarID, err)
	}

	var events []ParsedEvent
	for _, ve := range cal.Events() {
		ev, err := parseVEvent(calendarID, ve)
		if err != nil {
			log.Warn("skipping vevent", "calendar", calendarID, "err", err)
			continue
		}
		events = append(events, ev)
	}

	log.Debug("parsed calendar", "calendar", calendarID, "events", len(events))
	return events, nil
}

func parseVEvent(calendarID string, ve *ical.VEvent) (ParsedEvent, error) {
	out := ParsedEvent{CalendarID: calendarID}

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, fmt.Errorf("%s: missing DTSTART", out.UID)
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return out, fmt.Errorf("%s: parsing DTSTART: %w", out.UID, err)
	}
	out.Start = start
	out.AllDay = isDateValue(dtStart)

	end, err := ve.GetEndAt()
	switch {
	case err != nil:
		end = start
	case out.AllDay:
		// DTEND of an all-day event is exclusive.
		if end.After(start) {
			end = end.AddDate(0, 0, -1)
		} else {
			end = start
		}
	}
	out.End = end

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			t, err := parseICSTime(part, p.ICalParameters, start.Location())
			if err != nil {
				log.Warn("skipping exdate", "uid", out.UID, "value", part, "err", err)
				continue
			}
			out.ExDates = append(out.ExDates, t)
		}
	}

	if p := ve.GetProperty(ical.ComponentProperty("RECURRENCE-ID")); p != nil {
		t, err := parseICSTime(p.Value, p.ICalParameters, start.Location())
		if err != nil {
			return out, fmt.Errorf("%s: parsing RECURRENCE-ID: %w", out.UID, err)
		}
		out.Recurrence = &t
	}

	return out, nil
}

// isDateValue reports whether a DTSTART carries a date without a time.
func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// parseICSTime parses a DATE or DATE-TIME value, honoring a TZID parameter.
// Floating values are placed in fallback.
func parseICSTime(v string, params map[string][]string, fallback *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty time value")
	}

	loc := fallback
	if tz, ok := params["TZID"]; ok && len(tz) > 0 {
		l, err := time.LoadLocation(tz[0])
		if err != nil {
			return time.Time{}, fmt.Errorf("unknown TZID %q: %w", tz[0], err)
		}
		loc = l
	}

	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
