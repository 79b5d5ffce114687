package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PanelStyles are the styles of the event detail panel.
type PanelStyles struct {
	Box   lipgloss.Style // border and background
	Title lipgloss.Style
	Text  lipgloss.Style
	Muted lipgloss.Style
	Arrow lipgloss.Style
}

// PanelState describes one detail panel.
type PanelState struct {
	Title string
	Lines []string
	Empty string // shown when Lines is empty

	Width  int // outer width, border included
	Height int // outer height, border included

	// ArrowRow is the panel line the arrow is drawn on, or -1 for none.
	ArrowRow int
	// ArrowRight puts the arrow on the right border instead of the left one.
	ArrowRight bool
}

// PanelLines returns the outer height needed for n content lines.
func PanelLines(n int) int {
	// border, title, blank, content, border
	return max(1, n) + 4
}

// RenderPanel draws the panel as a list of lines, each exactly s.Width cells wide.
func RenderPanel(s PanelState, st PanelStyles) []string {
	if s.Width < 4 || s.Height < 3 {
		return nil
	}
	innerW := s.Width - 2
	innerH := s.Height - 2

	body := []string{Fit(s.Title, innerW, st.Title), Fit("", innerW, st.Text)}
	if len(s.Lines) == 0 {
		body = append(body, Fit(s.Empty, innerW, st.Muted))
	}
	for _, line := range s.Lines {
		body = append(body, Fit(line, innerW, st.Text))
	}
	if len(body) > innerH {
		body = body[:innerH]
	}

	box := st.Box.
		Width(innerW).
		Height(innerH).
		Render(strings.Join(body, "\n"))
	lines := strings.Split(box, "\n")

	if s.ArrowRow > 0 && s.ArrowRow < len(lines)-1 {
		line := lines[s.ArrowRow]
		w := lipgloss.Width(line)
		if s.ArrowRight {
			lines[s.ArrowRow] = ansi.Cut(line, 0, w-1) + st.Arrow.Render("▶")
		} else {
			lines[s.ArrowRow] = st.Arrow.Render("◀") + ansi.Cut(line, 1, w)
		}
	}
	return lines
}
