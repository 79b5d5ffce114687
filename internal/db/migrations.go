package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id          TEXT PRIMARY KEY,
			calendar_id TEXT NOT NULL DEFAULT 'default',
			title       TEXT NOT NULL,
			start_raw   TEXT NOT NULL,
			end_raw     TEXT NOT NULL,
			start_unix  INTEGER NOT NULL,
			end_unix    INTEGER NOT NULL,
			all_day     INTEGER NOT NULL DEFAULT 0 CHECK(all_day IN (0, 1)),
			version     INTEGER NOT NULL DEFAULT 1,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_unix);
		CREATE INDEX IF NOT EXISTS idx_events_end ON events(end_unix);
		CREATE INDEX IF NOT EXISTS idx_events_calendar ON events(calendar_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}
