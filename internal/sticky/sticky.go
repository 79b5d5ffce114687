// Package sticky decides which period label is pinned to the top of a scrolling
// view and how far the next label pushes it out.
package sticky

// Pixel defaults for graphical renderers.
const (
	DefaultLabelHeight = 48
	DefaultGap         = 20
)

// Label is the measured position of one rendered period label, relative to
// the top of the scroll container.
type Label struct {
	ID     int
	Top    float64
	Height float64
}

// State is the sticky header state. It is comparable with ==.
type State struct {
	HasPinned      bool
	PinnedID       int
	HasUpcoming    bool
	UpcomingID     int
	PinnedOffset   float64 // how far the pinned label is pushed up
	UpcomingOffset float64 // how far the upcoming label still has to travel
}

// Compute derives the sticky state from label positions.
//
// The pinned label is the one at or above the top closest to it. The upcoming
// candidate is the nearest label below the top. Once it comes within its own
// height plus gap it starts pushing the pinned label out and is published as
// upcoming. Labels without a measured height use defaultHeight.
func Compute(labels []Label, defaultHeight, gap float64) State {
	var (
		pinned, next       Label
		hasPinned, hasNext bool
	)
	for _, l := range labels {
		switch {
		case l.Top <= 0:
			if !hasPinned || l.Top > pinned.Top {
				pinned, hasPinned = l, true
			}
		default:
			if !hasNext || l.Top < next.Top {
				next, hasNext = l, true
			}
		}
	}

	height := defaultHeight
	if hasNext && next.Height > 0 {
		height = next.Height
	}
	push := height + gap

	s := State{
		HasPinned:      hasPinned,
		PinnedID:       pinned.ID,
		UpcomingOffset: push,
	}
	if hasPinned && hasNext && next.Top <= push {
		s.HasUpcoming = true
		s.UpcomingID = next.ID
		s.PinnedOffset = push - next.Top
		s.UpcomingOffset = max(0, next.Top)
	}
	return s
}
