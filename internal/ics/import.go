package ics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/javiermolinar/almanac/internal/log"
)

// DefaultImportWorkers bounds how many files are parsed at once.
const DefaultImportWorkers = 4

// CalendarIDFromPath derives a calendar id from a file name: "work.ics" -> "work".
func CalendarIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseFiles parses several calendar files concurrently. Results keep the
// order of paths. Files that fail are reported in the joined error while the
// others are still returned.
func ParseFiles(ctx context.Context, paths []string, workers int) ([]ParsedEvent, error) {
	if workers <= 0 {
		workers = DefaultImportWorkers
	}

	type fileResult struct {
		index  int
		events []ParsedEvent
	}

	p := pool.NewWithResults[fileResult]().
		WithContext(ctx).
		WithMaxGoroutines(workers)

	for i, path := range paths {
		p.Go(func(ctx context.Context) (fileResult, error) {
			if err := ctx.Err(); err != nil {
				return fileResult{}, err
			}
			events, err := parseFile(path)
			if err != nil {
				log.Warn("calendar import failed", "path", path, "err", err)
				return fileResult{}, err
			}
			return fileResult{index: i, events: events}, nil
		})
	}

	results, err := p.Wait()
	sort.Slice(results, func(a, b int) bool { return results[a].index < results[b].index })

	var all []ParsedEvent
	for _, r := range results {
		all = append(all, r.events...)
	}
	return all, err
}

// ImportFiles parses and expands several calendar files.
func ImportFiles(ctx context.Context, paths []string, workers int, cfg ExpandConfig) (ExpandResult, error) {
	parsed, parseErr := ParseFiles(ctx, paths, workers)
	result, err := Expand(parsed, cfg)
	if err != nil {
		return result, err
	}
	log.Info("calendars imported", "files", len(paths), "events", len(result.Events), "truncated", len(result.Truncated))
	return result, parseErr
}

func parseFile(path string) ([]ParsedEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return ParseICS(CalendarIDFromPath(path), f)
}
