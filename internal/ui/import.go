package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/ics"
)

// Default import window around today, in years.
const (
	importYearsBack  = 1
	importYearsAhead = 2
)

func (a *App) importCmd() *cobra.Command {
	var (
		from    string
		to      string
		workers int
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "import [file.ics...]",
		Short: "Import events from iCalendar files",
		Long: `Import events from one or more .ics files. Each file becomes a calendar
named after it ("work.ics" -> "work").

Recurring events are expanded inside the import window, which defaults to one
year back and two years ahead. Re-importing a file updates the events it
created instead of duplicating them.`,
		Example: `  almanac import ~/Downloads/work.ics ~/Downloads/home.ics
  almanac import team.ics --from=2025-01-01 --to=2025-12-31`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			paths := make([]string, 0, len(args))
			for _, arg := range args {
				path, err := resolvePath(arg)
				if err != nil {
					return err
				}
				info, err := os.Stat(path)
				if err != nil {
					if os.IsNotExist(err) {
						return fmt.Errorf("calendar file does not exist: %s", path)
					}
					return fmt.Errorf("checking calendar file: %w", err)
				}
				if info.IsDir() {
					return fmt.Errorf("calendar path is a directory: %s", path)
				}
				paths = append(paths, path)
			}

			cfg, err := a.importWindow(from, to)
			if err != nil {
				return err
			}

			count, truncated, err := importCalendars(context.Background(), a.repo, paths, workers, cfg, dryRun)
			if err != nil && count == 0 {
				return err
			}

			verb := "Imported"
			if dryRun {
				verb = "Would import"
			}
			_, _ = fmt.Fprintf(a.out, "%s %d events from %d file(s)\n", verb, count, len(paths))
			for _, uid := range truncated {
				_, _ = fmt.Fprintf(a.out, "  %s\n", formatMuted("recurrence capped: "+uid))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day of the import window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day of the import window (YYYY-MM-DD)")
	cmd.Flags().IntVar(&workers, "workers", ics.DefaultImportWorkers, "Files parsed in parallel")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and expand without writing")

	return cmd
}

// importWindow builds the expansion window: [from, to] inclusive, in the calendar zone.
func (a *App) importWindow(from, to string) (ics.ExpandConfig, error) {
	loc := a.location()
	today := a.today()
	cfg := ics.ExpandConfig{
		Location:   loc,
		RangeStart: today.AddDate(-importYearsBack, 0, 0),
		RangeEnd:   today.AddDate(importYearsAhead, 0, 0),
	}
	if from != "" {
		t, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return cfg, fmt.Errorf("invalid --from: %w", dateutil.ErrInvalidDateFormat)
		}
		cfg.RangeStart = t
	}
	if to != "" {
		t, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return cfg, fmt.Errorf("invalid --to: %w", dateutil.ErrInvalidDateFormat)
		}
		cfg.RangeEnd = dateutil.AddDays(t, 1)
	}
	if !cfg.RangeEnd.After(cfg.RangeStart) {
		return cfg, dateutil.ErrEndDateBeforeStart
	}
	return cfg, nil
}

// importCalendars parses and expands the files, then upserts the events.
// Files that fail to parse are reported in err while the rest are still written.
func importCalendars(ctx context.Context, dest event.Repository, paths []string, workers int, cfg ics.ExpandConfig, dryRun bool) (int, []string, error) {
	result, parseErr := ics.ImportFiles(ctx, paths, workers, cfg)
	if len(result.Events) == 0 {
		return 0, result.Truncated, parseErr
	}
	if dryRun {
		return len(result.Events), result.Truncated, parseErr
	}

	n, err := dest.AddEvents(ctx, result.Events)
	if err != nil {
		return n, result.Truncated, errors.Join(parseErr, fmt.Errorf("storing events: %w", err))
	}
	return n, result.Truncated, parseErr
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
