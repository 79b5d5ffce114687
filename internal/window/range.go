package window

import "math"

// Params are the inputs of a visible-range computation.
type Params struct {
	Offset    float64 // scroll offset from the top of unit 0
	Container float64 // viewport size
	UnitSize  float64
	Total     int
	Overscan  int
}

// VisibleRange is a contiguous slice of unit indices.
// BufferStart <= StartIndex <= EndIndex <= BufferEnd always holds.
type VisibleRange struct {
	StartIndex  int
	EndIndex    int
	BufferStart int
	BufferEnd   int
}

// Len returns the number of buffered units.
func (r VisibleRange) Len() int { return r.BufferEnd - r.BufferStart + 1 }

// Contains reports whether index is buffered.
func (r VisibleRange) Contains(index int) bool {
	return index >= r.BufferStart && index <= r.BufferEnd
}

// Compute derives the visible range. It has no side effects; ok is false when
// the inputs cannot be measured (no unit size, no container, empty domain).
func Compute(p Params) (VisibleRange, bool) {
	if p.UnitSize <= 0 || p.Container <= 0 || p.Total <= 0 {
		return VisibleRange{}, false
	}
	last := p.Total - 1
	offset := math.Max(0, p.Offset)

	start := clamp(int(math.Floor(offset/p.UnitSize)), 0, last)
	end := clamp(int(math.Ceil((offset+p.Container)/p.UnitSize)), start, last)

	overscan := max(0, p.Overscan)
	return VisibleRange{
		StartIndex:  start,
		EndIndex:    end,
		BufferStart: max(0, start-overscan),
		BufferEnd:   min(last, end+overscan),
	}, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Breakpoint maps viewports narrower than MaxWidth to a unit size estimate.
type Breakpoint struct {
	MaxWidth int
	Size     float64
}

// UnitSizeFor returns the first breakpoint size whose MaxWidth exceeds width,
// or fallback. Breakpoints must be sorted by MaxWidth.
func UnitSizeFor(width int, breakpoints []Breakpoint, fallback float64) float64 {
	for _, bp := range breakpoints {
		if width < bp.MaxWidth {
			return bp.Size
		}
	}
	return fallback
}
