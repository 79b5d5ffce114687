package ics

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/log"
)

// DefaultMaxOccurrences caps the instances produced from one recurring event.
const DefaultMaxOccurrences = 5000

// idNamespace seeds the name-based event IDs, so re-importing the same file
// upserts instead of duplicating.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("almanac:ics"))

// ExpandConfig controls recurrence expansion.
type ExpandConfig struct {
	// Location is the zone occurrences are converted to. Nil means time.Local.
	Location *time.Location

	// RangeStart and RangeEnd bound the occurrences, half-open.
	RangeStart time.Time
	RangeEnd   time.Time

	// MaxOccurrences is the per-event cap. Zero means DefaultMaxOccurrences.
	MaxOccurrences int
}

// ExpandResult holds the expanded events and the UIDs that hit the cap.
type ExpandResult struct {
	Events    []event.Event
	Truncated []string
}

// Expand turns parsed VEVENTs into concrete events inside the configured
// range. RRULEs are expanded, EXDATEs removed and RECURRENCE-ID overrides
// replace the instance they name.
func Expand(parsed []ParsedEvent, cfg ExpandConfig) (ExpandResult, error) {
	var result ExpandResult

	if !cfg.RangeEnd.After(cfg.RangeStart) {
		return result, errors.New("expand: range end must be after range start")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.MaxOccurrences <= 0 {
		cfg.MaxOccurrences = DefaultMaxOccurrences
	}

	type key struct{ calendar, uid string }
	bases := make(map[key][]ParsedEvent)
	overrides := make(map[key][]ParsedEvent)
	var order []key
	for _, p := range parsed {
		k := key{p.CalendarID, p.UID}
		if p.IsOverride() {
			overrides[k] = append(overrides[k], p)
			continue
		}
		if _, seen := bases[k]; !seen {
			order = append(order, k)
		}
		bases[k] = append(bases[k], p)
	}

	for _, k := range order {
		truncated := false
		for _, base := range bases[k] {
			events, hitCap := expandOne(base, overrides[k], cfg)
			truncated = truncated || hitCap
			result.Events = append(result.Events, events...)
		}
		if truncated {
			result.Truncated = append(result.Truncated, k.uid)
			log.Warn("truncated recurring event", "uid", k.uid, "cap", cfg.MaxOccurrences)
		}
	}

	sort.SliceStable(result.Events, func(i, j int) bool {
		a, b := result.Events[i].Start.In(cfg.Location), result.Events[j].Start.In(cfg.Location)
		return a.Before(b)
	})
	return result, nil
}

func expandOne(base ParsedEvent, overrides []ParsedEvent, cfg ExpandConfig) ([]event.Event, bool) {
	if base.RawRRule == "" {
		if !overlapsRange(base.Start, base.End, base.AllDay, cfg) {
			return nil, false
		}
		return []event.Event{toEvent(pick(base, overrides, base.Start), base.Start, cfg.Location)}, false
	}

	r, err := rrule.StrToRRule(base.RawRRule)
	if err != nil {
		log.Error("parsing rrule", err, "uid", base.UID, "rrule", base.RawRRule)
		return nil, false
	}
	r.DTStart(base.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range base.ExDates {
		set.ExDate(ex.In(base.Start.Location()))
	}

	// Instances that start before the range may still run into it.
	span := base.End.Sub(base.Start)
	if base.AllDay {
		span += 24 * time.Hour
	}
	from := cfg.RangeStart.Add(-span).In(base.Start.Location())
	to := cfg.RangeEnd.In(base.Start.Location())

	starts := set.Between(from, to, true)
	hitCap := false
	if len(starts) > cfg.MaxOccurrences {
		starts = starts[:cfg.MaxOccurrences]
		hitCap = true
	}

	var out []event.Event
	for _, start := range starts {
		inst := base
		inst.Start = start
		inst.End = start.Add(base.End.Sub(base.Start))
		inst.RawRRule = ""
		inst.ExDates = nil

		chosen := pick(inst, overrides, start)
		if !overlapsRange(chosen.Start, chosen.End, chosen.AllDay, cfg) {
			continue
		}
		out = append(out, toEvent(chosen, start, cfg.Location))
	}
	return out, hitCap
}

// pick returns the override whose RECURRENCE-ID equals start, or inst.
func pick(inst ParsedEvent, overrides []ParsedEvent, start time.Time) ParsedEvent {
	for _, o := range overrides {
		if o.Recurrence.Equal(start) {
			return o
		}
		if inst.AllDay && dateutil.SameDay(o.Recurrence.In(start.Location()), start) {
			return o
		}
	}
	return inst
}

func overlapsRange(start, end time.Time, allDay bool, cfg ExpandConfig) bool {
	if allDay {
		s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, cfg.Location)
		e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, cfg.Location).AddDate(0, 0, 1)
		return s.Before(cfg.RangeEnd) && e.After(cfg.RangeStart)
	}
	if !end.After(start) {
		return !start.Before(cfg.RangeStart) && start.Before(cfg.RangeEnd)
	}
	return start.Before(cfg.RangeEnd) && end.After(cfg.RangeStart)
}

// toEvent converts an instance to an event. instanceStart is the series
// position and keys the ID, so an override keeps the ID of what it replaces.
func toEvent(p ParsedEvent, instanceStart time.Time, loc *time.Location) event.Event {
	e := event.Event{
		ID:         instanceID(p.CalendarID, p.UID, instanceStart, p.AllDay),
		CalendarID: p.CalendarID,
		Title:      p.Summary,
		AllDay:     p.AllDay,
	}
	if e.Title == "" {
		e.Title = "(no title)"
	}
	if p.AllDay {
		e.Start, e.End = event.DateOf(p.Start), event.DateOf(p.End)
	} else {
		e.Start, e.End = event.At(p.Start.In(loc)), event.At(p.End.In(loc))
	}
	return e
}

func instanceID(calendarID, uid string, start time.Time, allDay bool) string {
	stamp := start.UTC().Format(time.RFC3339Nano)
	if allDay {
		stamp = start.Format("2006-01-02")
	}
	name := calendarID + "/" + uid + "/" + stamp
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}
