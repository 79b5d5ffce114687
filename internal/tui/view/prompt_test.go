package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func promptStyles() PromptStyles {
	return PromptStyles{
		Box:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()),
		Suggestion: lipgloss.NewStyle(),
		Error:      lipgloss.NewStyle(),
	}
}

func TestPromptLinesIncludesSuggestions(t *testing.T) {
	state := PromptState{
		Input:       "> /y",
		Suggestions: []PromptCommand{{Name: "/year", Description: "a year"}},
	}
	lines := PromptLines(state, 40, promptStyles())

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(lines), lines)
	}
	if got := ansi.Strip(lines[1]); got != "  /year a year" {
		t.Errorf("suggestion line = %q", got)
	}
}

func TestPromptLinesWrapsError(t *testing.T) {
	state := PromptState{Input: "> x", Error: "invalid date \"x\" please try again"}
	lines := PromptLines(state, 16, promptStyles())
	if len(lines) < 3 {
		t.Fatalf("expected the error to wrap, got %v", lines)
	}
	if !strings.HasPrefix(ansi.Strip(lines[1]), "! ") {
		t.Errorf("first error line = %q, want ! prefix", lines[1])
	}
	for _, l := range lines[1:] {
		if w := lipgloss.Width(l); w > 16 {
			t.Errorf("line %q is %d wide, want <= 16", l, w)
		}
	}
}

func TestClampPromptLinesAddsEllipsis(t *testing.T) {
	lines := []string{"one", "two", "three"}
	clamped := ClampPromptLines(lines, 2, 5)
	if len(clamped) != 2 {
		t.Fatalf("clamped length = %d, want 2", len(clamped))
	}
	if clamped[1] != "two…" {
		t.Fatalf("got %q, want ellipsis on last line", clamped[1])
	}
	if got := ClampPromptLines(lines, 0, 5); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestRenderPromptWidth(t *testing.T) {
	out := RenderPrompt(30, promptStyles(), []string{"> 2031"})
	if len(out) != 3 {
		t.Fatalf("got %d lines, want 3 (border, input, border)", len(out))
	}
	for _, l := range out {
		if w := lipgloss.Width(l); w != 30 {
			t.Errorf("line width = %d, want 30", w)
		}
	}
}

func TestWrapTextToWidths(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		first int
		other int
		want  []string
	}{
		{name: "fits", in: "go to", first: 10, other: 10, want: []string{"go to"}},
		{name: "word break", in: "jump to year", first: 8, other: 8, want: []string{"jump to", "year"}},
		{name: "hard break", in: "abcdefgh", first: 3, other: 5, want: []string{"abc", "defgh"}},
		{name: "no width", in: "x", first: 0, other: 5, want: []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapTextToWidths(tt.in, tt.first, tt.other)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
