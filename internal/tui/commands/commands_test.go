package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/almanac/internal/event"
)

type fakeRepo struct {
	eventsByRange func(start, end time.Time) ([]event.Event, error)
}

func (f fakeRepo) AddEvent(ctx context.Context, e *event.Event) error {
	return errors.New("not implemented")
}

func (f fakeRepo) AddEvents(ctx context.Context, events []event.Event) (int, error) {
	return 0, errors.New("not implemented")
}

func (f fakeRepo) UpdateEvent(ctx context.Context, e *event.Event) error {
	return errors.New("not implemented")
}

func (f fakeRepo) DeleteEvent(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func (f fakeRepo) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	return nil, errors.New("not implemented")
}

func (f fakeRepo) ListEventsByRange(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	if f.eventsByRange == nil {
		return nil, errors.New("not implemented")
	}
	return f.eventsByRange(start, end)
}

func (f fakeRepo) Close() error {
	return nil
}

func TestLoadEvents(t *testing.T) {
	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 14)

	var gotStart, gotEnd time.Time
	repo := fakeRepo{eventsByRange: func(start, end time.Time) ([]event.Event, error) {
		gotStart, gotEnd = start, end
		return []event.Event{{ID: "a"}}, nil
	}}

	msg := LoadEvents(repo, from, to)()
	loaded, ok := msg.(EventsLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want EventsLoadedMsg", msg)
	}
	if !gotStart.Equal(from) || !gotEnd.Equal(to) {
		t.Errorf("queried %v..%v, want %v..%v", gotStart, gotEnd, from, to)
	}
	if len(loaded.Events) != 1 || !loaded.From.Equal(from) || !loaded.To.Equal(to) {
		t.Errorf("got %+v", loaded)
	}
}

func TestLoadEvents_Error(t *testing.T) {
	repo := fakeRepo{eventsByRange: func(start, end time.Time) ([]event.Event, error) {
		return nil, errors.New("boom")
	}}
	msg := LoadEvents(repo, time.Now(), time.Now().Add(time.Hour))()
	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("got %T, want ErrMsg", msg)
	}
	if errMsg.Err == nil || errMsg.Err.Error() != "loading events: boom" {
		t.Errorf("got %v", errMsg.Err)
	}
}

func TestLoadEvents_NilRepo(t *testing.T) {
	msg := LoadEvents(nil, time.Now(), time.Now())()
	if _, ok := msg.(EventsLoadedMsg); !ok {
		t.Fatalf("got %T, want EventsLoadedMsg", msg)
	}
}
