// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/metrics"
)

// EventsLoadedMsg is sent when the events of a date range are loaded.
type EventsLoadedMsg struct {
	From   time.Time
	To     time.Time
	Events []event.Event
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// SettleMsg is sent once the scroll quiescence window has elapsed.
// Gen is the scroll generation it belongs to; stale ones are ignored.
type SettleMsg struct {
	View string
	Gen  uint64
}

// FrameMsg drives one animation frame.
type FrameMsg struct{}

// LoadEvents loads the events overlapping [from, to).
func LoadEvents(repo event.Repository, from, to time.Time) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return EventsLoadedMsg{From: from, To: to}
		}
		events, err := repo.ListEventsByRange(context.Background(), from, to)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading events: %w", err)}
		}
		return EventsLoadedMsg{From: from, To: to, Events: events}
	}
}

// Settle fires a SettleMsg for gen after the quiescence window.
func Settle(view string, gen uint64, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return SettleMsg{View: view, Gen: gen}
	})
}

// Frame schedules the next animation frame.
func Frame() tea.Cmd {
	return tea.Tick(metrics.FrameBudget, func(time.Time) tea.Msg {
		return FrameMsg{}
	})
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// CopyToClipboard copies text and reports the result as a status message.
func CopyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying %s: %w", what, err)}
		}
		return StatusMsgCmd{Msg: "Copied " + what + " to clipboard"}
	}
}
