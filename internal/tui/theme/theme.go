// Package theme provides the calendar color themes.
package theme

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is used when no theme is configured or the configured one is unknown.
const DefaultName = "mocha"

// ErrUnknownTheme is returned by Lookup for names with no embedded theme.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme holds the colors of a calendar theme as #rrggbb strings.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Grid background
	BgHighlight string `toml:"bg_highlight"` // Selected week row
	BgSelection string `toml:"bg_selection"` // Selected day
	Fg          string `toml:"fg"`           // Days of the displayed month
	FgMuted     string `toml:"fg_muted"`     // Days outside the month, weekday header
	Accent      string `toml:"accent"`       // Year and month labels
	Event       string `toml:"event"`        // Timed events
	AllDay      string `toml:"all_day"`      // All-day events and multi-day bars
	Today       string `toml:"today"`        // Today marker
	Warning     string `toml:"warning"`      // Errors, "+N more"

	// Detail panel. Empty values fall back to base colors, see Panel.
	PanelBg     string `toml:"panel_bg"`
	PanelBorder string `toml:"panel_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// Default returns the built-in dark theme without touching the embedded files.
func Default() *Theme {
	return &Theme{
		Name:        DefaultName,
		Bg:          "#1e1e2e",
		BgHighlight: "#313244",
		BgSelection: "#45475a",
		Fg:          "#cdd6f4",
		FgMuted:     "#7f849c",
		Accent:      "#cba6f7",
		Event:       "#89b4fa",
		AllDay:      "#a6e3a1",
		Today:       "#fab387",
		Warning:     "#f38ba8",
	}
}

// Load returns the named theme. An empty or unknown name loads DefaultName.
func Load(name string) (*Theme, error) {
	t, err := Lookup(name)
	if errors.Is(err, ErrUnknownTheme) {
		return Lookup(DefaultName)
	}
	return t, err
}

// Lookup returns the named embedded theme without falling back.
func Lookup(name string) (*Theme, error) {
	name = normalize(name)
	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("theme %q: %w", name, err)
	}
	return &t, nil
}

// Validate checks that every base color is set and every color is #rrggbb.
func (t *Theme) Validate() error {
	base := []struct{ key, hex string }{
		{"bg", t.Bg},
		{"bg_highlight", t.BgHighlight},
		{"bg_selection", t.BgSelection},
		{"fg", t.Fg},
		{"fg_muted", t.FgMuted},
		{"accent", t.Accent},
		{"event", t.Event},
		{"all_day", t.AllDay},
		{"today", t.Today},
		{"warning", t.Warning},
	}
	for _, c := range base {
		if !isHexColor(c.hex) {
			return fmt.Errorf("%s: %q is not a #rrggbb color", c.key, c.hex)
		}
	}

	panel := []struct{ key, hex string }{
		{"panel_bg", t.PanelBg},
		{"panel_border", t.PanelBorder},
		{"text_primary", t.TextPrimary},
		{"text_muted", t.TextMuted},
		{"highlight", t.Highlight},
	}
	for _, c := range panel {
		if c.hex != "" && !isHexColor(c.hex) {
			return fmt.Errorf("%s: %q is not a #rrggbb color", c.key, c.hex)
		}
	}
	return nil
}

// Available returns the names of the embedded themes, sorted.
func Available() []string {
	entries, err := fs.ReadDir(embeddedThemes, "embedded")
	if err != nil {
		return []string{DefaultName}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".toml"); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), normalize(name))
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultName
	}
	return name
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range strings.ToLower(s[1:]) {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
