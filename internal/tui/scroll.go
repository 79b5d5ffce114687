package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/tui/commands"
	"github.com/javiermolinar/almanac/internal/window"
)

// smoothSteps is how many frames a smooth scroll is spread over.
const smoothSteps = 6

// scroller is the part of window.Manager the frame loop drives.
type scroller interface {
	Scroll(offset float64) uint64
	Offset() float64
	Generation() uint64
	ScrollDebounce() time.Duration
	Settle(gen uint64) bool
	Scrolling() bool
}

// scrollAnim animates scroll requests over successive frames.
type scrollAnim struct {
	name  string
	sc    scroller
	steps []float64
}

// follow applies a navigation request. Immediate requests were already
// applied by the manager and only need settling; smooth ones are queued.
func (a *scrollAnim) follow(req window.ScrollRequest) tea.Cmd {
	if !req.Smooth {
		a.steps = nil
		return a.settle(a.sc.Generation())
	}
	a.steps = req.Steps(a.sc.Offset(), smoothSteps)
	return nil
}

// scrollBy moves the offset directly, dropping any running animation.
func (a *scrollAnim) scrollBy(delta float64) tea.Cmd {
	a.steps = nil
	return a.settle(a.sc.Scroll(a.sc.Offset() + delta))
}

// step applies the next animation offset. ok is false when idle.
func (a *scrollAnim) step() (cmd tea.Cmd, ok bool) {
	if len(a.steps) == 0 {
		return nil, false
	}
	offset := a.steps[0]
	a.steps = a.steps[1:]
	return a.settle(a.sc.Scroll(offset)), true
}

func (a *scrollAnim) animating() bool { return len(a.steps) > 0 }

func (a *scrollAnim) settle(gen uint64) tea.Cmd {
	return commands.Settle(a.name, gen, a.sc.ScrollDebounce())
}
