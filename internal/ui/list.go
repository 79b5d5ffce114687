package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/layout"
	"github.com/javiermolinar/almanac/internal/log"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List all events within a date range.

If no dates are specified, lists today's events.
If only --start is specified, lists events for that single day.
If both --start and --end are specified, lists events in that range (inclusive).
Multi-day events are listed under every day they cover.`,
		Example: `  almanac list
  almanac list --start=2025-01-15
  almanac list --start=monday --end=sunday`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			days, err := dateutil.NewDateRange(startDate, endDate, a.now().In(a.location()))
			if err != nil {
				return err
			}
			from, to := days.Start, days.End

			events, err := a.repo.ListEventsByRange(context.Background(), from, dateutil.AddDays(to, 1))
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			if len(events) == 0 {
				_, _ = fmt.Fprintln(a.out, "No events found in the specified date range.")
				return nil
			}

			opts := PrintOpts{Location: a.location(), Verbose: verbose}
			printDays(a.out, events, from, to, a.today(), opts, opts.CalcMaxDescWidth(40))
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD or relative, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD or relative, defaults to start date)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full titles and ids")

	return cmd
}

// printDays prints the events covering each day of [from, to], skipping empty days.
func printDays(w io.Writer, events []event.Event, from, to, today time.Time, opts PrintOpts, maxDescWidth int) {
	spans := make([]layout.Span, len(events))
	valid := make([]bool, len(events))
	for i, e := range events {
		span, err := layout.NormalizeSpan(e, opts.Location)
		if err != nil {
			log.Warn("skipping invalid event", "id", e.ID, "err", err)
			continue
		}
		spans[i], valid[i] = span, true
	}

	first := true
	for day := from; !day.After(to); day = dateutil.AddDays(day, 1) {
		var todays []event.Event
		for i, e := range events {
			if valid[i] && !day.Before(spans[i].Start) && !day.After(spans[i].End) {
				todays = append(todays, e)
			}
		}
		if len(todays) == 0 {
			continue
		}

		if !first {
			_, _ = fmt.Fprintln(w)
		}
		first = false
		_, _ = fmt.Fprintf(w, "=== %s ===\n", dayHeader(day, today))
		for _, e := range todays {
			PrintEventRow(w, e, day, opts, maxDescWidth)
		}
	}
}
