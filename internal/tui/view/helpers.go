package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a lipgloss.Place box with background fill.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(
		w,
		h,
		lipgloss.Left,
		vAlign,
		content,
		lipgloss.WithWhitespaceBackground(bg),
	)
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads content to width/height with a background color.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	paddingStyle := lipgloss.NewStyle().Background(bg)
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := 0; i < height; i++ {
		line := lines[i]
		lineWidth := lipgloss.Width(line)
		if lineWidth > width {
			lines[i] = ansi.Truncate(line, width, "")
			continue
		}
		lines[i] = line + paddingStyle.Render(strings.Repeat(" ", width-lineWidth))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// Fit truncates plain text to width and pads it, then renders it with style.
func Fit(s string, width int, style lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := lipgloss.Width(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return style.Render(s)
}

// Splice draws box over base with its top-left corner at (left, top).
// Lines of the box that fall outside width x height are clipped.
func Splice(base string, box []string, left, top, width, height int, boxBg lipgloss.Color) string {
	if len(box) == 0 || width <= 0 || height <= 0 {
		return base
	}
	left = max(0, left)
	top = max(0, top)

	baseLines := strings.Split(PadLinesWithBackground(base, width, height, lipgloss.Color("")), "\n")
	for i, line := range box {
		row := top + i
		if row >= height {
			break
		}
		boxWidth := lipgloss.Width(line)
		if left+boxWidth > width {
			boxWidth = width - left
			line = ansi.Cut(line, 0, boxWidth)
		}
		if boxWidth <= 0 {
			continue
		}
		line = ApplyBackgroundResets(line, boxBg) + ansi.ResetStyle

		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+boxWidth, width)
		baseLines[row] = leftSlice + line + rightSlice
	}
	return strings.Join(baseLines, "\n")
}

// ApplyBackgroundResets reapplies a box background after ANSI resets.
func ApplyBackgroundResets(line string, bg lipgloss.Color) string {
	bgSeq := BackgroundSeq(bg)
	if bgSeq == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

// BackgroundSeq returns the background escape sequence for a color.
func BackgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}
