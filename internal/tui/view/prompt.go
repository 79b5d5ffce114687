package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// PromptCommand is a command suggestion entry.
type PromptCommand struct {
	Name        string
	Description string
}

// PromptState captures the go-to prompt for rendering.
type PromptState struct {
	Input       string // rendered text input
	Suggestions []PromptCommand
	Error       string
}

// PromptStyles are the styles of the go-to prompt box.
type PromptStyles struct {
	Box        lipgloss.Style
	Suggestion lipgloss.Style
	Error      lipgloss.Style
}

// PromptLines builds the prompt body for contentWidth cells: the input, the
// last error wrapped, then one line per suggestion.
func PromptLines(state PromptState, contentWidth int, st PromptStyles) []string {
	lines := []string{state.Input}
	if state.Error != "" {
		for _, l := range wrapTextWithPrefix(state.Error, "! ", "  ", contentWidth) {
			lines = append(lines, st.Error.Render(l))
		}
	}
	for _, cmd := range state.Suggestions {
		lines = append(lines, st.Suggestion.Render(ansi.Truncate("  "+cmd.Name+" "+cmd.Description, contentWidth, "…")))
	}
	return lines
}

// ClampPromptLines keeps at most maxLines, marking the cut with an ellipsis.
func ClampPromptLines(lines []string, maxLines, width int) []string {
	if maxLines <= 0 {
		return nil
	}
	if len(lines) <= maxLines {
		return lines
	}

	clamped := append([]string(nil), lines[:maxLines]...)
	last := clamped[maxLines-1]
	if lipgloss.Width(last)+1 > width {
		last = ansi.Truncate(last, width-1, "")
	}
	clamped[maxLines-1] = last + "…"
	return clamped
}

// RenderPrompt draws lines in the prompt box, width cells wide with the border.
func RenderPrompt(width int, st PromptStyles, lines []string) []string {
	frameW, _ := st.Box.GetFrameSize()
	contentWidth := max(0, width-frameW)
	if len(lines) == 0 {
		lines = []string{""}
	}
	return strings.Split(st.Box.Width(contentWidth).Render(strings.Join(lines, "\n")), "\n")
}

// WrapTextToWidths wraps text across the provided widths.
func WrapTextToWidths(s string, firstWidth, otherWidth int) []string {
	if firstWidth <= 0 || otherWidth <= 0 {
		return []string{""}
	}

	runes := []rune(s)
	if len(runes) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 4)
	width := firstWidth
	lineStart := 0
	lastSpace := -1
	lineWidth := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == ' ' {
			lastSpace = i
		}

		runeWidth := runewidth.RuneWidth(r)
		if lineWidth+runeWidth > width {
			if lastSpace >= lineStart {
				lines = append(lines, string(runes[lineStart:lastSpace]))
				i = lastSpace
				lineStart = lastSpace + 1
			} else {
				lines = append(lines, string(runes[lineStart:i]))
				lineStart = i
				i--
			}
			width = otherWidth
			lastSpace = -1
			lineWidth = 0
			continue
		}
		lineWidth += runeWidth
	}

	return append(lines, string(runes[lineStart:]))
}

func wrapTextWithPrefix(s, prefix, continuation string, width int) []string {
	if width <= 0 {
		return []string{""}
	}

	lines := WrapTextToWidths(s, max(0, width-len(prefix)), max(0, width-len(continuation)))
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = continuation + lines[i]
		}
	}
	return lines
}
