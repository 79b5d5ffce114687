// Package geometry places the pointer arrow of the event detail panel.
package geometry

// Arrow dimensions.
const (
	ArrowSize = 12
	arrowHalf = ArrowSize / 2
	// arrowOverhang is how far the arrow may hang below the panel content.
	arrowOverhang = 11
	// stickyTopInset places the arrow just below the top edge of the content.
	stickyTopInset = 3
	minArrowY      = 12
	// Fallbacks when the panel has not been measured.
	defaultStickyBottomTop = 200
	defaultMaxArrowY       = 240 - ArrowSize
)

// Rect is a vertical extent in viewport coordinates.
type Rect struct {
	Top    float64
	Height float64
}

// Bottom returns Top + Height.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Panel is the measured detail panel box.
type Panel struct {
	Height        float64
	PaddingBottom float64
	BorderBottom  float64
}

// Visibility says where the selected event is relative to the scroll viewport.
type Visibility int

const (
	Visible Visibility = iota
	StickyTop
	StickyBottom
)

// VisibilityOf classifies an event rect against the content viewport.
func VisibilityOf(event, content Rect) Visibility {
	switch {
	case event.Bottom() <= content.Top:
		return StickyTop
	case event.Top >= content.Bottom():
		return StickyBottom
	default:
		return Visible
	}
}

// ArrowInput holds the measurements ArrowTop needs. A nil pointer means the
// element has not been measured.
type ArrowInput struct {
	Visibility Visibility
	PanelTop   float64
	Panel      *Panel
	Content    *Rect
	Event      *Rect
}

// ArrowTop returns the arrow's top offset inside the panel. ok is false when a
// required measurement is missing.
func ArrowTop(in ArrowInput) (top float64, ok bool) {
	switch in.Visibility {
	case StickyTop:
		return stickyTopArrow(in.PanelTop, in.Content)
	case StickyBottom:
		return stickyBottomArrow(in.Panel), true
	default:
		return visibleArrow(in.PanelTop, in.Panel, in.Content, in.Event)
	}
}

func stickyTopArrow(panelTop float64, content *Rect) (float64, bool) {
	if content == nil {
		return 0, false
	}
	y := content.Top + stickyTopInset - panelTop
	return y - arrowHalf, true
}

func stickyBottomArrow(panel *Panel) float64 {
	if panel == nil {
		return defaultStickyBottomTop
	}
	return panel.Height - panel.PaddingBottom - panel.BorderBottom - arrowHalf + arrowOverhang
}

func visibleArrow(panelTop float64, panel *Panel, content, event *Rect) (float64, bool) {
	if content == nil || event == nil {
		return 0, false
	}

	visibleTop := max(event.Top, content.Top)
	visibleBottom := min(event.Bottom(), content.Bottom())
	visibleHeight := max(0, visibleBottom-visibleTop)

	// Point at the middle of the event, or of its visible part when clipped.
	target := event.Top + event.Height/2
	if visibleHeight > 0 && visibleHeight != event.Height {
		target = visibleTop + visibleHeight/2
	}

	maxY := float64(defaultMaxArrowY)
	if panel != nil {
		maxY = panel.Height - panel.PaddingBottom - panel.BorderBottom + arrowOverhang
	}
	y := max(minArrowY, min(maxY, target-panelTop))
	return y - arrowHalf, true
}

// Side is the panel edge the arrow sits on.
type Side int

const (
	Left Side = iota
	Right
)

// ArrowSide returns the edge and horizontal offset of the arrow. Panels for
// Sunday open to the left of the event, so their arrow sits on the right edge.
func ArrowSide(isSunday bool) (Side, float64) {
	if isSunday {
		return Right, -arrowHalf
	}
	return Left, -arrowHalf
}
