package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	Width      int
	StatusLine string
	HelpLine   string
	Bg         lipgloss.Color
}

// FooterLines is the height of the footer.
const FooterLines = 2

// RenderFooter renders the status and help lines.
func RenderFooter(state FooterViewState) string {
	if state.Width <= 0 {
		return ""
	}
	s := state.StatusLine + "\n" + state.HelpLine
	return PlaceBox(state.Width, FooterLines, lipgloss.Bottom, s, state.Bg)
}

// HeaderViewState holds the title bar content.
type HeaderViewState struct {
	Width int
	Title string
	Right string
	Style lipgloss.Style
}

// RenderHeader renders a one-line title bar with Right aligned to the edge.
func RenderHeader(state HeaderViewState) string {
	if state.Width <= 0 {
		return ""
	}
	gap := state.Width - lipgloss.Width(state.Title) - lipgloss.Width(state.Right)
	if gap < 1 {
		return Fit(state.Title, state.Width, state.Style)
	}
	return state.Style.Render(state.Title + strings.Repeat(" ", gap) + state.Right)
}
