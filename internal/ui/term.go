package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI.
var (
	// All-day and multi-day events: bold cyan
	colorAllDay = color.New(color.FgCyan, color.Bold)

	// Timed events: default foreground
	colorTimed = color.New(color.FgWhite)

	// Today's date header
	colorToday = color.New(color.FgYellow, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Overlay bars in the week view
	colorBar = color.New(color.FgGreen)

	// Muted: ids, "+N more", secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatAllDay(s string) string {
	return colorAllDay.Sprint(s)
}

func formatTimed(s string) string {
	return colorTimed.Sprint(s)
}

func formatToday(s string) string {
	return colorToday.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatBar(s string) string {
	return colorBar.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
