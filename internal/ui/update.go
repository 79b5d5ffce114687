package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/event"
)

func (a *App) updateCmd() *cobra.Command {
	var (
		title    string
		start    string
		end      string
		allDay   bool
		calendar string
	)

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Change an existing event",
		Long: `Change the title, time or calendar of an event. Only the flags given are applied.

Switching --all-day keeps the dates and drops the time of day, or turns the
dates into midnight instants.`,
		Example: `  almanac update 3f2a9c1e-... --title="Dentist (moved)" --start="2025-03-14 11:00" --end="2025-03-14 12:00"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			loc := a.location()

			e, err := a.repo.GetEvent(ctx, args[0])
			if err != nil {
				if errors.Is(err, event.ErrEventNotFound) {
					return fmt.Errorf("no event with id %s", args[0])
				}
				return fmt.Errorf("fetching event: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				e.Title = title
			}
			if flags.Changed("calendar") {
				e.CalendarID = calendar
			}
			if flags.Changed("all-day") {
				e.AllDay = allDay
			}

			from, to := e.Start.In(loc), e.End.In(loc)
			if flags.Changed("start") {
				if from, err = a.parseWhen(start, e.AllDay); err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
			}
			if flags.Changed("end") {
				if to, err = a.parseWhen(end, e.AllDay); err != nil {
					return fmt.Errorf("invalid --end: %w", err)
				}
			}

			updated, err := event.New(e.Title, from, to, e.AllDay)
			if err != nil {
				return err
			}
			e.Title, e.Start, e.End = updated.Title, updated.Start, updated.End

			if err := a.repo.UpdateEvent(ctx, e); err != nil {
				return fmt.Errorf("updating event: %w", err)
			}

			_, _ = fmt.Fprintf(a.out, "Updated event %s: %s [%s] %s\n",
				e.ID, e.Title, e.CalendarID, spanLabel(*e, loc))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&start, "start", "", "New start date or date-time")
	cmd.Flags().StringVar(&end, "end", "", "New end date or date-time")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Make the event all-day (or not, with --all-day=false)")
	cmd.Flags().StringVar(&calendar, "calendar", "", "Move the event to another calendar")

	return cmd
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			if err := a.repo.DeleteEvent(context.Background(), args[0]); err != nil {
				if errors.Is(err, event.ErrEventNotFound) {
					return fmt.Errorf("no event with id %s", args[0])
				}
				return fmt.Errorf("deleting event: %w", err)
			}

			_, _ = fmt.Fprintf(a.out, "Deleted event %s\n", args[0])
			return nil
		},
	}
}
