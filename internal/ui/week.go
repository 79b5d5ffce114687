package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/layout"
	"github.com/javiermolinar/almanac/internal/log"
)

// Output formats of the week command.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// WeekReport is the serializable layout of one week.
type WeekReport struct {
	Start   string       `json:"start" yaml:"start"`
	End     string       `json:"end" yaml:"end"`
	Bars    []BarReport  `json:"bars" yaml:"bars"`
	Days    []DayReport  `json:"days" yaml:"days"`
	Skipped []SkipReport `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// BarReport is a multi-day segment packed into an overlay slot.
type BarReport struct {
	EventID  string `json:"event_id" yaml:"event_id"`
	Title    string `json:"title" yaml:"title"`
	Slot     int    `json:"slot" yaml:"slot"`
	StartDay int    `json:"start_day" yaml:"start_day"`
	EndDay   int    `json:"end_day" yaml:"end_day"`
	Kind     string `json:"kind" yaml:"kind"`
}

// DayReport is one day cell.
type DayReport struct {
	Date     string        `json:"date" yaml:"date"`
	Reserved int           `json:"reserved" yaml:"reserved"`
	Events   []EventReport `json:"events" yaml:"events"`
	More     int           `json:"more,omitempty" yaml:"more,omitempty"`
}

// EventReport is an event shown inside a day cell.
type EventReport struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	When   string `json:"when" yaml:"when"`
	AllDay bool   `json:"all_day" yaml:"all_day"`
}

// SkipReport names an event left out of the layout.
type SkipReport struct {
	EventID string `json:"event_id" yaml:"event_id"`
	Reason  string `json:"reason" yaml:"reason"`
}

func (a *App) weekCmd() *cobra.Command {
	var (
		date    string
		output  string
		verbose bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the layout of a week",
		Long: `Display one Monday-to-Sunday week the way the calendar lays it out:
multi-day events as bars in stacked slots, then each day's events with
"+N more" once a day holds more than max_events_per_day.`,
		Example: `  almanac week
  almanac week --date=2025-03-12 --output=yaml`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			switch output {
			case outputText, outputJSON, outputYAML:
			default:
				return fmt.Errorf("unknown output %q: must be text, json or yaml", output)
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			loc := a.location()
			day, err := dateutil.ParseRelativeDate(date, a.now().In(loc))
			if err != nil {
				return err
			}
			monday := dateutil.StartOfWeek(day)

			events, err := a.repo.ListEventsByRange(context.Background(), monday, dateutil.AddDays(monday, dateutil.DaysPerWeek))
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			wl := layout.LayoutWeek(events, monday, layout.Options{
				Location:        loc,
				MaxEventsPerDay: a.config.Calendar.MaxEventsPerDay,
				Logger:          log.Default(),
			})
			report := BuildWeekReport(wl, loc)

			switch output {
			case outputJSON:
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			case outputYAML:
				enc := yaml.NewEncoder(a.out)
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return fmt.Errorf("encoding yaml: %w", err)
				}
				return enc.Close()
			}

			opts := PrintOpts{Location: loc, Verbose: verbose}
			printWeek(a.out, wl, a.today(), opts, opts.CalcMaxDescWidth(40))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day of the week to show (default: today)")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full titles and ids")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// BuildWeekReport flattens a week layout into its serializable form.
func BuildWeekReport(wl *layout.WeekLayout, loc *time.Location) WeekReport {
	r := WeekReport{
		Start: wl.Start.Format(dateLayout),
		End:   dateutil.AddDays(wl.Start, dateutil.DaysPerWeek-1).Format(dateLayout),
		Bars:  []BarReport{},
	}
	for _, seg := range wl.Segments() {
		r.Bars = append(r.Bars, BarReport{
			EventID:  seg.EventID,
			Title:    seg.Event.Title,
			Slot:     seg.Slot,
			StartDay: seg.StartDay,
			EndDay:   seg.EndDay,
			Kind:     string(seg.Kind),
		})
	}
	for _, cell := range wl.Days {
		d := DayReport{
			Date:     cell.Date.Format(dateLayout),
			Reserved: cell.Reserved,
			Events:   []EventReport{},
			More:     cell.Hidden,
		}
		for _, rec := range cell.Visible {
			d.Events = append(d.Events, EventReport{
				ID:     rec.Event.ID,
				Title:  rec.Event.Title,
				When:   timeLabel(rec.Event, rec.Date, loc),
				AllDay: rec.Event.AllDay,
			})
		}
		r.Days = append(r.Days, d)
	}
	for _, s := range wl.Skipped {
		r.Skipped = append(r.Skipped, SkipReport{EventID: s.EventID, Reason: s.Err.Error()})
	}
	return r
}

// barCell is the width of one day column in the bar chart.
const barCell = 5

func printWeek(w io.Writer, wl *layout.WeekLayout, today time.Time, opts PrintOpts, maxDescWidth int) {
	_, end := dateutil.WeekRange(wl.Start)
	header := fmt.Sprintf("WEEK: %s - %s", wl.Start.Format("Mon Jan 2"), end.Format("Mon Jan 2, 2006"))
	_, _ = fmt.Fprintf(w, "\n  %s\n", formatHeader(header))
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 74))

	if len(wl.Packing.Layers) > 0 {
		var names strings.Builder
		for d := range dateutil.DaysPerWeek {
			_, _ = fmt.Fprintf(&names, "%-*s", barCell, dateutil.AddDays(wl.Start, d).Format("Mon"))
		}
		_, _ = fmt.Fprintf(w, "  %s\n", formatMuted(strings.TrimRight(names.String(), " ")))
		for _, l := range wl.Packing.Layers {
			_, _ = fmt.Fprintf(w, "  %s\n", slotLine(l, maxDescWidth))
		}
		_, _ = fmt.Fprintln(w)
	}

	first := true
	for _, cell := range wl.Days {
		if len(cell.Visible) == 0 && cell.Hidden == 0 {
			continue
		}
		if !first {
			_, _ = fmt.Fprintln(w)
		}
		first = false
		_, _ = fmt.Fprintf(w, "  %s\n", dayHeader(cell.Date, today))
		for _, rec := range cell.Visible {
			PrintEventRow(w, rec.Event, rec.Date, opts, maxDescWidth)
		}
		if cell.Hidden > 0 {
			_, _ = fmt.Fprintf(w, "  %s\n", formatMuted(fmt.Sprintf("+%d more", cell.Hidden)))
		}
	}

	if len(wl.Skipped) > 0 {
		_, _ = fmt.Fprintf(w, "\n  %s\n", formatMuted(fmt.Sprintf("%d event(s) skipped, see the log", len(wl.Skipped))))
	}
	_, _ = fmt.Fprintln(w)
}

// slotLine draws one packed slot: a bar per segment, followed by the titles.
func slotLine(segs []layout.Segment, maxDescWidth int) string {
	cells := []rune(strings.Repeat(" ", barCell*dateutil.DaysPerWeek))
	titles := make([]string, 0, len(segs))
	for _, seg := range segs {
		from, to := seg.StartDay*barCell, (seg.EndDay+1)*barCell-1
		for i := from; i < to; i++ {
			cells[i] = '━'
		}
		if !seg.IsFirst {
			cells[from] = '┅'
		}
		if !seg.IsLast {
			cells[to-1] = '┅'
		}
		titles = append(titles, seg.Event.Title)
	}
	bar := strings.TrimRight(string(cells), " ")
	return formatBar(bar) + "  " + truncate(strings.Join(titles, ", "), maxDescWidth)
}
