// Package view provides view composition helpers for the TUI.
package view

import "github.com/charmbracelet/lipgloss"

// OverlayRenderer renders a centered overlay on top of base content.
type OverlayRenderer interface {
	Render(base string, width, height int, content string) string
}

// ViewState contains pre-rendered content and what is drawn over it.
type ViewState struct {
	Width       int
	Height      int
	BaseContent string

	// Floating title shown while scrolling.
	OverlayContent string
	ShowOverlay    bool
	Overlay        OverlayRenderer

	// Detail panel, already rendered line by line.
	Panel     []string
	PanelLeft int
	PanelTop  int
	PanelBg   lipgloss.Color
	ShowPanel bool

	EmptyPlaceholder string
}

// Render composes the final view output.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}

	out := state.BaseContent
	if state.ShowOverlay && state.Overlay != nil {
		out = state.Overlay.Render(out, state.Width, state.Height, state.OverlayContent)
	}
	if state.ShowPanel {
		out = Splice(out, state.Panel, state.PanelLeft, state.PanelTop, state.Width, state.Height, state.PanelBg)
	}
	return out
}
