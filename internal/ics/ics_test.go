package ics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func calendar(events ...string) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//almanac//test//EN",
	}
	for _, e := range events {
		lines = append(lines, strings.Split(strings.TrimSpace(e), "\n")...)
	}
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

const (
	standup = `BEGIN:VEVENT
UID:standup@test
SUMMARY:Standup
DTSTART:20250310T090000Z
DTEND:20250310T091500Z
RRULE:FREQ=DAILY;COUNT=5
EXDATE:20250312T090000Z
END:VEVENT`

	standupMoved = `BEGIN:VEVENT
UID:standup@test
SUMMARY:Standup (moved)
RECURRENCE-ID:20250313T090000Z
DTSTART:20250313T110000Z
DTEND:20250313T111500Z
END:VEVENT`

	trip = `BEGIN:VEVENT
UID:trip@test
SUMMARY:Trip
DTSTART;VALUE=DATE:20250313
DTEND;VALUE=DATE:20250318
END:VEVENT`

	noUID = `BEGIN:VEVENT
SUMMARY:Orphan
DTSTART:20250310T090000Z
DTEND:20250310T100000Z
END:VEVENT`
)

func march() ExpandConfig {
	return ExpandConfig{
		Location:   time.UTC,
		RangeStart: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestParseICS(t *testing.T) {
	parsed, err := ParseICS("work", strings.NewReader(calendar(standup, trip, noUID)))
	if err != nil {
		t.Fatalf("ParseICS failed: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("got %d events, want 2 (event without UID skipped)", len(parsed))
	}

	s := parsed[0]
	if s.UID != "standup@test" || s.CalendarID != "work" || s.AllDay {
		t.Errorf("standup: got %+v", s)
	}
	if s.RawRRule != "FREQ=DAILY;COUNT=5" {
		t.Errorf("rrule: got %q", s.RawRRule)
	}
	if len(s.ExDates) != 1 || !s.ExDates[0].Equal(time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("exdates: got %v", s.ExDates)
	}

	tr := parsed[1]
	if !tr.AllDay {
		t.Fatal("trip should be all-day")
	}
	// DTEND is exclusive; the last covered day is the 17th.
	if tr.End.Day() != 17 || tr.Start.Day() != 13 {
		t.Errorf("trip: got %v..%v, want the 13th to the 17th", tr.Start, tr.End)
	}
}

func TestParseICS_Empty(t *testing.T) {
	if _, err := ParseICS("x", strings.NewReader("  \r\n")); !errors.Is(err, ErrEmptyCalendar) {
		t.Errorf("got %v, want ErrEmptyCalendar", err)
	}
}

func TestParseICS_Override(t *testing.T) {
	parsed, err := ParseICS("work", strings.NewReader(calendar(standupMoved)))
	if err != nil {
		t.Fatalf("ParseICS failed: %v", err)
	}
	if len(parsed) != 1 || !parsed[0].IsOverride() {
		t.Fatalf("expected one override, got %+v", parsed)
	}
	if !parsed[0].Recurrence.Equal(time.Date(2025, 3, 13, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("recurrence id: got %v", parsed[0].Recurrence)
	}
}

func TestExpand_RecurrenceWithExdateAndOverride(t *testing.T) {
	parsed, err := ParseICS("work", strings.NewReader(calendar(standup, standupMoved)))
	if err != nil {
		t.Fatalf("ParseICS failed: %v", err)
	}

	result, err := Expand(parsed, march())
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	// Five days, the 12th excluded.
	wantDays := []int{10, 11, 13, 14}
	if len(result.Events) != len(wantDays) {
		t.Fatalf("got %d events, want %d", len(result.Events), len(wantDays))
	}
	for i, day := range wantDays {
		got := result.Events[i].Start.Raw()
		if got.Day() != day {
			t.Errorf("event %d: got day %d, want %d", i, got.Day(), day)
		}
	}

	moved := result.Events[2]
	if moved.Title != "Standup (moved)" || moved.Start.Raw().Hour() != 11 {
		t.Errorf("override not applied: got %+v", moved)
	}
	if len(result.Truncated) != 0 {
		t.Errorf("unexpected truncation: %v", result.Truncated)
	}
}

func TestExpand_AllDay(t *testing.T) {
	parsed, err := ParseICS("home", strings.NewReader(calendar(trip)))
	if err != nil {
		t.Fatalf("ParseICS failed: %v", err)
	}

	result, err := Expand(parsed, march())
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(result.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(result.Events))
	}

	e := result.Events[0]
	if !e.AllDay || !e.Start.DateOnly() {
		t.Errorf("expected a date-only all-day event, got %+v", e)
	}
	if e.Start.String() != "2025-03-13" || e.End.String() != "2025-03-17" {
		t.Errorf("got %s..%s, want 2025-03-13..2025-03-17", e.Start, e.End)
	}
	if err := e.Validate(); err != nil {
		t.Errorf("expanded event invalid: %v", err)
	}
}

func TestExpand_OutOfRange(t *testing.T) {
	parsed, err := ParseICS("home", strings.NewReader(calendar(trip)))
	if err != nil {
		t.Fatalf("ParseICS failed: %v", err)
	}

	cfg := march()
	cfg.RangeStart = time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC)
	result, err := Expand(parsed, cfg)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(result.Events) != 0 {
		t.Errorf("got %d events, want none after the trip ends", len(result.Events))
	}
}

func TestExpand_Cap(t *testing.T) {
	daily := `BEGIN:VEVENT
UID:daily@test
SUMMARY:Daily
DTSTART:20250101T080000Z
DTEND:20250101T083000Z
RRULE:FREQ=DAILY
END:VEVENT`

	parsed, err := ParseICS("x", strings.NewReader(calendar(daily)))
	if err != nil {
		t.Fatalf("ParseICS failed: %v", err)
	}

	cfg := march()
	cfg.MaxOccurrences = 10
	result, err := Expand(parsed, cfg)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(result.Events) != 10 {
		t.Errorf("got %d events, want 10", len(result.Events))
	}
	if len(result.Truncated) != 1 || result.Truncated[0] != "daily@test" {
		t.Errorf("truncated: got %v", result.Truncated)
	}
}

func TestExpand_StableIDs(t *testing.T) {
	body := calendar(standup)
	first, err := ParseICS("work", strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseICS failed: %v", err)
	}
	second, err := ParseICS("work", strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseICS failed: %v", err)
	}

	a, _ := Expand(first, march())
	b, _ := Expand(second, march())
	seen := map[string]bool{}
	for i := range a.Events {
		if a.Events[i].ID != b.Events[i].ID {
			t.Errorf("event %d: ids differ across imports", i)
		}
		if seen[a.Events[i].ID] {
			t.Errorf("duplicate id %s", a.Events[i].ID)
		}
		seen[a.Events[i].ID] = true
	}

	other, _ := ParseICS("home", strings.NewReader(body))
	c, _ := Expand(other, march())
	if c.Events[0].ID == a.Events[0].ID {
		t.Error("different calendars should not share ids")
	}
}

func TestExpand_InvalidRange(t *testing.T) {
	cfg := march()
	cfg.RangeEnd = cfg.RangeStart
	if _, err := Expand(nil, cfg); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestImportFiles(t *testing.T) {
	dir := t.TempDir()
	work := filepath.Join(dir, "work.ics")
	home := filepath.Join(dir, "home.ics")
	broken := filepath.Join(dir, "missing.ics")

	if err := os.WriteFile(work, []byte(calendar(standup)), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(home, []byte(calendar(trip)), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := ImportFiles(context.Background(), []string{work, home}, 2, march())
	if err != nil {
		t.Fatalf("ImportFiles failed: %v", err)
	}
	if len(result.Events) != 5 {
		t.Errorf("got %d events, want 5", len(result.Events))
	}
	calendars := map[string]int{}
	for _, e := range result.Events {
		calendars[e.CalendarID]++
	}
	if calendars["work"] != 4 || calendars["home"] != 1 {
		t.Errorf("events per calendar: got %v", calendars)
	}

	result, err = ImportFiles(context.Background(), []string{work, broken}, 2, march())
	if err == nil {
		t.Error("expected error for missing file")
	}
	if len(result.Events) != 4 {
		t.Errorf("readable file should still import: got %d events", len(result.Events))
	}
}

func TestCalendarIDFromPath(t *testing.T) {
	tests := map[string]string{
		"/tmp/work.ics":      "work",
		"personal.ICS":       "personal",
		"dir/no-extension":   "no-extension",
		"nested/team.v2.ics": "team.v2",
	}
	for in, want := range tests {
		if got := CalendarIDFromPath(in); got != want {
			t.Errorf("CalendarIDFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}
