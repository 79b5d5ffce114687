// Package input parses the go-to prompt.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Description string
}

// GotoCommands are the commands the go-to prompt understands.
var GotoCommands = []PromptCommand{
	{Name: "/today", Description: "back to today"},
	{Name: "/year", Description: "a year, /year 2031"},
	{Name: "/month", Description: "a month, /month 2025-03"},
	{Name: "/date", Description: "a day, /date 2025-03-10 or /date friday"},
}

// ErrEmptyTarget is returned for a blank prompt.
var ErrEmptyTarget = errors.New("nothing to go to")

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !strings.HasPrefix(strings.TrimSpace(input), "/") {
		return nil
	}
	if strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(strings.TrimSpace(input))
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// Target is where the prompt points.
type Target struct {
	Date time.Time // midnight in the calendar's zone
	Year bool      // only the year was given
}

// ParseTarget resolves prompt input relative to now. Besides the commands,
// bare "2031", "2025-03" and anything dateutil.ParseRelativeDate accepts work.
func ParseTarget(value string, now time.Time) (Target, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Target{}, ErrEmptyTarget
	}

	cmd, arg := "", value
	if strings.HasPrefix(value, "/") {
		cmd, arg, _ = strings.Cut(value, " ")
		cmd = strings.ToLower(cmd)
		arg = strings.TrimSpace(arg)
	}

	switch cmd {
	case "/today":
		return Target{Date: dateutil.TruncateToDay(now)}, nil
	case "/year":
		return parseYear(arg, now.Location())
	case "/month":
		return parseMonth(arg, now.Location())
	case "/date":
		return parseDay(arg, now)
	case "":
	default:
		return Target{}, fmt.Errorf("unknown command %s", cmd)
	}

	switch {
	case len(arg) == 4:
		return parseYear(arg, now.Location())
	case len(arg) == 7 && strings.Count(arg, "-") == 1:
		return parseMonth(arg, now.Location())
	}
	return parseDay(arg, now)
}

func parseYear(s string, loc *time.Location) (Target, error) {
	year, err := strconv.Atoi(s)
	if err != nil || year < 1 || year > 9999 {
		return Target{}, fmt.Errorf("invalid year %q", s)
	}
	return Target{Date: time.Date(year, time.January, 1, 0, 0, 0, 0, loc), Year: true}, nil
}

func parseMonth(s string, loc *time.Location) (Target, error) {
	t, err := time.ParseInLocation("2006-01", s, loc)
	if err != nil {
		return Target{}, fmt.Errorf("invalid month %q, want YYYY-MM", s)
	}
	return Target{Date: t}, nil
}

func parseDay(s string, now time.Time) (Target, error) {
	if s == "" {
		return Target{}, ErrEmptyTarget
	}
	t, err := dateutil.ParseRelativeDate(s, now)
	if err != nil {
		return Target{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Target{Date: t}, nil
}
