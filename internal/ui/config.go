package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  almanac config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runConfigInteractive(bufio.NewReader(a.in), a.out, path)
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "Config file to edit (default: "+config.DefaultConfigPath()+")")
	return cmd
}

func runConfigInteractive(reader *bufio.Reader, w io.Writer, configPath string) error {
	_, _ = fmt.Fprintf(w, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		_, _ = fmt.Fprintln(w, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		_, _ = fmt.Fprintf(w, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(w, cfg)

	// Ask if user wants to edit
	if !promptYesNo(reader, w, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Calendar.Timezone = promptValue(reader, w, "Time zone (IANA name or Local)", cfg.Calendar.Timezone)
	cfg.Calendar.MaxEventsPerDay = promptInt(reader, w, "Events shown per day", cfg.Calendar.MaxEventsPerDay)
	cfg.Window.MinYear = promptInt(reader, w, "First year", cfg.Window.MinYear)
	cfg.Window.MaxYear = promptInt(reader, w, "Last year", cfg.Window.MaxYear)
	cfg.Window.SmoothScroll = promptBool(reader, w, "Smooth scrolling", cfg.Window.SmoothScroll)
	cfg.Storage.DBPath = promptValue(reader, w, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, w, cfg.UI.Theme)
	cfg.Log.Level = promptValue(reader, w, "Log level (debug, info, warn, error)", cfg.Log.Level)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	_, _ = fmt.Fprintln(w, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(w, format, args...) }

	p("Current configuration:\n")
	p("──────────────────────\n")
	p("[window]\n")
	p("  min_year           = %d\n", cfg.Window.MinYear)
	p("  max_year           = %d\n", cfg.Window.MaxYear)
	p("  overscan           = %d\n", cfg.Window.Overscan)
	p("  cache_capacity     = %d\n", cfg.Window.CacheCapacity)
	p("  scroll_debounce_ms = %d\n", cfg.Window.ScrollDebounceMS)
	p("  smooth_scroll      = %t\n", cfg.Window.SmoothScroll)
	p("\n[sticky]\n")
	p("  label_height       = %d\n", cfg.Sticky.LabelHeight)
	p("  push_gap           = %d\n", cfg.Sticky.PushGap)
	p("\n[calendar]\n")
	p("  timezone           = %s\n", cfg.Calendar.Timezone)
	p("  max_events_per_day = %d\n", cfg.Calendar.MaxEventsPerDay)
	p("\n[storage]\n")
	p("  db_path            = %s\n", cfg.Storage.DBPath)
	p("\n[ui]\n")
	p("  theme              = %s\n", cfg.UI.Theme)
	p("\n[log]\n")
	p("  level              = %s\n", cfg.Log.Level)
	p("  file               = %s\n", cfg.Log.File)
}

func promptYesNo(reader *bufio.Reader, w io.Writer, question string) bool {
	_, _ = fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, w io.Writer, label, current string) string {
	if current == "" {
		_, _ = fmt.Fprintf(w, "  %s: ", label)
	} else {
		_, _ = fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, w io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, w, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		_, _ = fmt.Fprintf(w, "  %q is not a number\n", value)
	}
}

func promptBool(reader *bufio.Reader, w io.Writer, label string, current bool) bool {
	for {
		value := promptValue(reader, w, label, strconv.FormatBool(current))
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
		_, _ = fmt.Fprintf(w, "  %q is not true or false\n", value)
	}
}

func promptTheme(reader *bufio.Reader, w io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for range 3 {
		value := strings.ToLower(promptValue(reader, w, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		_, _ = fmt.Fprintf(w, "  Invalid theme %q. Available: %s\n", value, options)
	}
	return current
}
