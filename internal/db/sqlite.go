// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

// maxZoneSkew bounds how far a date-only value can move when placed in any
// time zone. Range queries are widened by it and then filtered exactly.
const maxZoneSkew = 14 * time.Hour

// SQLite implements event.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ event.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// AddEvent stores a new event. An empty ID is replaced by a random UUID and an
// empty calendar by the default one.
func (s *SQLite) AddEvent(ctx context.Context, e *event.Event) error {
	if err := prepare(e); err != nil {
		return err
	}
	e.Version = 1

	startUnix, endUnix := bounds(*e)
	query := `
		INSERT INTO events (
			id, calendar_id, title, start_raw, end_raw, start_unix, end_unix, all_day, version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.CalendarID,
		e.Title,
		e.Start.String(),
		e.End.String(),
		startUnix,
		endUnix,
		e.AllDay,
		e.Version,
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	return nil
}

// AddEvents upserts events by ID in a single transaction. Existing events have
// their version bumped. Returns the number of events written.
func (s *SQLite) AddEvents(ctx context.Context, events []event.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	for i := range events {
		if err := prepare(&events[i]); err != nil {
			return 0, fmt.Errorf("event %d (%q): %w", i, events[i].Title, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO events (
			id, calendar_id, title, start_raw, end_raw, start_unix, end_unix, all_day, version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			calendar_id = excluded.calendar_id,
			title       = excluded.title,
			start_raw   = excluded.start_raw,
			end_raw     = excluded.end_raw,
			start_unix  = excluded.start_unix,
			end_unix    = excluded.end_unix,
			all_day     = excluded.all_day,
			version     = events.version + 1
		RETURNING version
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range events {
		e := &events[i]
		startUnix, endUnix := bounds(*e)
		err := stmt.QueryRowContext(ctx,
			e.ID,
			e.CalendarID,
			e.Title,
			e.Start.String(),
			e.End.String(),
			startUnix,
			endUnix,
			e.AllDay,
		).Scan(&e.Version)
		if err != nil {
			return 0, fmt.Errorf("upserting event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return len(events), nil
}

// UpdateEvent replaces the stored event with the same ID and bumps its version.
func (s *SQLite) UpdateEvent(ctx context.Context, e *event.Event) error {
	if e.ID == "" {
		return event.ErrEventNotFound
	}
	if err := prepare(e); err != nil {
		return err
	}

	startUnix, endUnix := bounds(*e)
	query := `
		UPDATE events
		SET calendar_id = ?, title = ?, start_raw = ?, end_raw = ?,
		    start_unix = ?, end_unix = ?, all_day = ?, version = version + 1
		WHERE id = ?
		RETURNING version
	`

	err := s.db.QueryRowContext(ctx, query,
		e.CalendarID,
		e.Title,
		e.Start.String(),
		e.End.String(),
		startUnix,
		endUnix,
		e.AllDay,
		e.ID,
	).Scan(&e.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return event.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}

	return nil
}

// DeleteEvent removes an event by ID.
func (s *SQLite) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return event.ErrEventNotFound
	}

	return nil
}

// GetEvent retrieves an event by ID.
func (s *SQLite) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	query := `
		SELECT id, calendar_id, title, start_raw, end_raw, all_day, version
		FROM events
		WHERE id = ?
	`

	e, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, event.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}

	return &e, nil
}

// ListEventsByRange returns the events that overlap [start, end), ordered by
// start. Date-only values are interpreted in start's location.
func (s *SQLite) ListEventsByRange(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	if !end.After(start) {
		return nil, nil
	}

	query := `
		SELECT id, calendar_id, title, start_raw, end_raw, all_day, version
		FROM events
		WHERE start_unix < ?
		  AND end_unix >= ?
		ORDER BY start_unix, id
	`

	rows, err := s.db.QueryContext(ctx, query,
		end.Add(maxZoneSkew).Unix(),
		start.Add(-maxZoneSkew).Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	loc := start.Location()
	var events []event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		if overlaps(e, start, end, loc) {
			events = append(events, e)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (event.Event, error) {
	var (
		e        event.Event
		startRaw string
		endRaw   string
	)

	if err := row.Scan(&e.ID, &e.CalendarID, &e.Title, &startRaw, &endRaw, &e.AllDay, &e.Version); err != nil {
		return event.Event{}, err
	}

	var err error
	if e.Start, err = event.ParseTime(startRaw); err != nil {
		return event.Event{}, fmt.Errorf("parsing start of %s: %w", e.ID, err)
	}
	if e.End, err = event.ParseTime(endRaw); err != nil {
		return event.Event{}, fmt.Errorf("parsing end of %s: %w", e.ID, err)
	}

	return e, nil
}

// prepare fills defaults and validates an event before it is written.
func prepare(e *event.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CalendarID == "" {
		e.CalendarID = event.DefaultCalendar
	}
	if e.Title == "" {
		return event.ErrEmptyTitle
	}
	return e.Validate()
}

// bounds returns the indexed instants of an event. Date-only values are taken
// at UTC midnight and a date-only end covers its whole day.
func bounds(e event.Event) (startUnix, endUnix int64) {
	start := e.Start.In(time.UTC)
	end := e.End.In(time.UTC)
	if e.End.DateOnly() {
		end = end.AddDate(0, 0, 1)
	}
	return start.Unix(), end.Unix()
}

// overlaps reports whether e intersects [start, end) when placed in loc.
// Zero-length events overlap when their instant falls inside the range.
func overlaps(e event.Event, start, end time.Time, loc *time.Location) bool {
	s := e.Start.In(loc)
	f := e.End.In(loc)
	if e.AllDay || e.End.DateOnly() {
		f = dateutil.TruncateToDay(f).AddDate(0, 0, 1)
	}

	if !f.After(s) {
		return !s.Before(start) && s.Before(end)
	}
	return s.Before(end) && f.After(start)
}
