package event

import (
	"context"
	"time"
)

// Repository defines the storage interface for events.
type Repository interface {
	// AddEvent stores a new event and assigns its ID if empty.
	AddEvent(ctx context.Context, e *Event) error

	// AddEvents upserts events by ID in one transaction and returns how many were written.
	AddEvents(ctx context.Context, events []Event) (int, error)

	// UpdateEvent replaces an existing event and bumps its version.
	// Returns ErrEventNotFound if the event does not exist.
	UpdateEvent(ctx context.Context, e *Event) error

	// DeleteEvent removes an event.
	// Returns ErrEventNotFound if the event does not exist.
	DeleteEvent(ctx context.Context, id string) error

	// GetEvent retrieves an event by ID.
	// Returns ErrEventNotFound if the event does not exist.
	GetEvent(ctx context.Context, id string) (*Event, error)

	// ListEventsByRange returns events overlapping [start, end), ordered by start.
	ListEventsByRange(ctx context.Context, start, end time.Time) ([]Event, error)

	// Close releases any resources held by the repository.
	Close() error
}
