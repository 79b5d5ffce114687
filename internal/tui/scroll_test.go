package tui

import (
	"testing"
	"time"

	"github.com/javiermolinar/almanac/internal/window"
)

type fakeScroller struct {
	offset    float64
	gen       uint64
	scrolling bool
}

func (f *fakeScroller) Scroll(offset float64) uint64 {
	f.offset = offset
	f.scrolling = true
	f.gen++
	return f.gen
}
func (f *fakeScroller) Offset() float64               { return f.offset }
func (f *fakeScroller) Generation() uint64            { return f.gen }
func (f *fakeScroller) ScrollDebounce() time.Duration { return time.Millisecond }
func (f *fakeScroller) Scrolling() bool               { return f.scrolling }
func (f *fakeScroller) Settle(gen uint64) bool {
	if gen != f.gen {
		return false
	}
	f.scrolling = false
	return true
}

func TestScrollAnimFollowSmooth(t *testing.T) {
	sc := &fakeScroller{}
	a := scrollAnim{name: "test", sc: sc}

	if cmd := a.follow(window.ScrollRequest{Offset: 60, Smooth: true}); cmd != nil {
		t.Fatal("a smooth request settles per frame, not up front")
	}
	if !a.animating() || len(a.steps) != smoothSteps {
		t.Fatalf("steps = %v, want %d", a.steps, smoothSteps)
	}

	prev := 0.0
	for a.animating() {
		cmd, ok := a.step()
		if !ok || cmd == nil {
			t.Fatal("expected a step with a settle command")
		}
		if sc.offset < prev {
			t.Fatalf("offset went backwards: %v after %v", sc.offset, prev)
		}
		prev = sc.offset
	}
	if sc.offset != 60 {
		t.Errorf("final offset = %v, want 60", sc.offset)
	}
	if _, ok := a.step(); ok {
		t.Error("idle animation should not step")
	}
}

func TestScrollAnimFollowImmediate(t *testing.T) {
	sc := &fakeScroller{}
	a := scrollAnim{name: "test", sc: sc, steps: []float64{1, 2}}

	if cmd := a.follow(window.ScrollRequest{Offset: 10}); cmd == nil {
		t.Fatal("an immediate request still needs settling")
	}
	if a.animating() {
		t.Error("an immediate request cancels the animation")
	}
}

func TestScrollAnimScrollBy(t *testing.T) {
	sc := &fakeScroller{offset: 5}
	a := scrollAnim{name: "test", sc: sc, steps: []float64{9}}

	if cmd := a.scrollBy(-2); cmd == nil {
		t.Fatal("expected a settle command")
	}
	if sc.offset != 3 || a.animating() {
		t.Errorf("offset = %v, animating = %v", sc.offset, a.animating())
	}
}
