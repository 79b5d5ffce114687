package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

// defaultDuration is the length of a timed event added without --end.
const defaultDuration = time.Hour

func (a *App) addCmd() *cobra.Command {
	var (
		start    string
		end      string
		allDay   bool
		calendar string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new event",
		Long: `Add a new event to the calendar.

Timed events take "YYYY-MM-DD HH:MM" or RFC3339 values and default to one hour.
All-day events take dates (YYYY-MM-DD, today, tomorrow, friday, next-monday)
and default to a single day.`,
		Example: `  almanac add "Dentist" --start="2025-03-14 09:30" --end="2025-03-14 10:15"
  almanac add "Conference" --all-day --start=2025-04-07 --end=2025-04-09`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			from, err := a.parseWhen(start, allDay)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			to := from
			switch {
			case end != "":
				if to, err = a.parseWhen(end, allDay); err != nil {
					return fmt.Errorf("invalid --end: %w", err)
				}
			case !allDay:
				to = from.Add(defaultDuration)
			}

			e, err := event.New(args[0], from, to, allDay)
			if err != nil {
				return err
			}
			if calendar != "" {
				e.CalendarID = calendar
			}

			if err := a.repo.AddEvent(context.Background(), e); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			_, _ = fmt.Fprintf(a.out, "Created event %s: %s [%s] %s\n",
				e.ID, e.Title, e.CalendarID, spanLabel(*e, a.location()))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date or date-time (required)")
	cmd.Flags().StringVar(&end, "end", "", "End date or date-time")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Create an all-day event")
	cmd.Flags().StringVar(&calendar, "calendar", event.DefaultCalendar, "Calendar id")

	_ = cmd.MarkFlagRequired("start")

	return cmd
}

// parseWhen reads a flag value as a calendar date for all-day events or as a
// date-time in the calendar zone otherwise.
func (a *App) parseWhen(s string, allDay bool) (time.Time, error) {
	if allDay {
		return dateutil.ParseRelativeDate(s, a.now().In(a.location()))
	}
	return dateutil.ParseDateTime(s, a.location())
}
