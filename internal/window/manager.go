package window

import (
	"math"
	"slices"
	"time"

	"github.com/javiermolinar/almanac/internal/metrics"
)

// DefaultScrollDebounce is the quiescence window after which scrolling is
// considered finished.
const DefaultScrollDebounce = 100 * time.Millisecond

// JumpSize is how many units page navigation moves.
const JumpSize = 5

// Options configure a Manager.
type Options struct {
	Overscan       int
	CacheCapacity  int
	ScrollDebounce time.Duration
	// SmoothNavigation makes Previous/Next/Jump/Today return animated requests.
	SmoothNavigation bool
	Metrics          metrics.Sink
	// OnCurrentChange is called when the current unit crosses a boundary.
	OnCurrentChange func(index int)
}

// Item is one positioned unit of the visible range.
type Item struct {
	Index  int
	Start  time.Time
	Offset float64
	Size   float64
}

// ScrollRequest is a request to move the viewport to a unit.
// Immediate requests have already been applied when returned.
type ScrollRequest struct {
	Index  int
	Offset float64
	Smooth bool
}

// Steps returns n intermediate offsets easing out from from to r.Offset.
// The last step is always r.Offset.
func (r ScrollRequest) Steps(from float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	steps := make([]float64, n)
	for i := 1; i <= n; i++ {
		p := float64(i) / float64(n)
		eased := 1 - (1-p)*(1-p)
		steps[i-1] = from + (r.Offset-from)*eased
	}
	steps[n-1] = r.Offset
	return steps
}

// Manager tracks scroll state over a Domain and owns the per-unit data cache.
// It is not safe for concurrent use; all calls come from the UI loop.
type Manager[T any] struct {
	domain Domain
	opts   Options
	cache  *Cache[T]
	sink   metrics.Sink

	offset    float64
	container float64
	unitSize  float64
	ready     bool

	current   int
	scrolling bool
	gen       uint64

	last      VisibleRange
	lastItems []Item
	lastOK    bool
}

// NewManager creates a manager with an estimated unit size.
func NewManager[T any](domain Domain, unitSize float64, opts Options) (*Manager[T], error) {
	if opts.CacheCapacity == 0 {
		opts.CacheCapacity = DefaultCacheCapacity
	}
	if opts.ScrollDebounce <= 0 {
		opts.ScrollDebounce = DefaultScrollDebounce
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop{}
	}

	cache, err := NewCache[T](opts.CacheCapacity, opts.Metrics)
	if err != nil {
		return nil, err
	}

	return &Manager[T]{
		domain:   domain,
		opts:     opts,
		cache:    cache,
		sink:     opts.Metrics,
		unitSize: unitSize,
		current:  -1,
	}, nil
}

// Domain returns the unit domain.
func (m *Manager[T]) Domain() Domain { return m.domain }

// Cache returns the per-unit data cache.
func (m *Manager[T]) Cache() *Cache[T] { return m.cache }

// Offset returns the scroll offset.
func (m *Manager[T]) Offset() float64 { return m.offset }

// UnitSize returns the committed unit size.
func (m *Manager[T]) UnitSize() float64 { return m.unitSize }

// Container returns the viewport size.
func (m *Manager[T]) Container() float64 { return m.container }

// Ready reports whether a measured unit size has been committed.
func (m *Manager[T]) Ready() bool { return m.ready }

// Scrolling reports whether scroll input arrived within the quiescence window.
func (m *Manager[T]) Scrolling() bool { return m.scrolling }

// Generation returns the generation of the latest scroll.
func (m *Manager[T]) Generation() uint64 { return m.gen }

// ScrollDebounce returns the quiescence window.
func (m *Manager[T]) ScrollDebounce() time.Duration { return m.opts.ScrollDebounce }

// Current returns the current unit index, or -1 before the first scroll.
func (m *Manager[T]) Current() int { return m.current }

// TotalSize returns the size of the whole domain.
func (m *Manager[T]) TotalSize() float64 {
	return float64(m.domain.Len()) * m.unitSize
}

// Resize records a new viewport size. Non-positive sizes are ignored.
func (m *Manager[T]) Resize(container float64) {
	if container <= 0 {
		return
	}
	m.container = container
}

// Scroll applies a new offset and returns its generation. Pass the generation
// to Settle once the quiescence window has elapsed.
func (m *Manager[T]) Scroll(offset float64) uint64 {
	offset = m.clampOffset(offset)
	m.sink.RecordScroll(offset - m.offset)
	m.offset = offset
	m.scrolling = true
	m.gen++
	m.updateCurrent()
	return m.gen
}

// Settle ends the scrolling state if gen is still the latest scroll.
// Stale generations have no effect.
func (m *Manager[T]) Settle(gen uint64) bool {
	if gen != m.gen || !m.scrolling {
		return false
	}
	m.scrolling = false
	return true
}

// Visible returns the visible range and a copy of its positioned units. When
// the inputs cannot be measured the previous known-good result is returned.
func (m *Manager[T]) Visible() (VisibleRange, []Item) {
	r, ok := Compute(m.params())
	if !ok {
		return m.last, slices.Clone(m.lastItems)
	}
	if m.lastOK && r == m.last {
		return r, slices.Clone(m.lastItems)
	}

	items := make([]Item, 0, r.Len())
	for i := r.BufferStart; i <= r.BufferEnd; i++ {
		start, ok := m.domain.Start(i)
		if !ok {
			continue
		}
		items = append(items, Item{
			Index:  i,
			Start:  start,
			Offset: float64(i) * m.unitSize,
			Size:   m.unitSize,
		})
	}
	m.last, m.lastItems, m.lastOK = r, items, true
	return r, slices.Clone(items)
}

// ScrollTo moves to index, clamped into the domain. An immediate request is
// applied before returning; a smooth one is left for the caller to animate.
func (m *Manager[T]) ScrollTo(index int, smooth bool) ScrollRequest {
	if n := m.domain.Len(); n > 0 {
		index = clamp(index, 0, n-1)
	}
	req := ScrollRequest{
		Index:  index,
		Offset: m.clampOffset(float64(index) * m.unitSize),
		Smooth: smooth,
	}
	if !smooth {
		m.Scroll(req.Offset)
	}
	return req
}

// Previous moves one unit back.
func (m *Manager[T]) Previous() ScrollRequest { return m.Jump(-1) }

// Next moves one unit forward.
func (m *Manager[T]) Next() ScrollRequest { return m.Jump(1) }

// Jump moves delta units from the current one.
func (m *Manager[T]) Jump(delta int) ScrollRequest {
	return m.ScrollTo(max(m.current, 0)+delta, m.opts.SmoothNavigation)
}

// Today moves to the unit containing now.
func (m *Manager[T]) Today(now time.Time) ScrollRequest {
	index, _ := m.domain.Index(now)
	return m.ScrollTo(index, m.opts.SmoothNavigation)
}

// SetUnitSize commits a measured unit size and re-anchors the offset so the
// current unit stays at the top. Re-committing the same size only marks the
// manager ready. The manager becomes Ready only after the new offset has been written.
func (m *Manager[T]) SetUnitSize(size float64) float64 {
	if size <= 0 {
		return m.offset
	}
	if size == m.unitSize {
		m.ready = true
		return m.offset
	}

	anchor := 0.0
	if m.unitSize > 0 {
		anchor = math.Round(m.offset / m.unitSize)
	}
	m.unitSize = size
	m.lastOK = false
	m.offset = m.clampOffset(anchor * size)
	m.updateCurrent()
	m.ready = true
	return m.offset
}

// Data returns the cached data for index, building it on a miss.
// ok is false for indices outside the domain.
func (m *Manager[T]) Data(index int, build func(index int, start time.Time) T) (data T, ok bool) {
	start, ok := m.domain.Start(index)
	if !ok {
		return data, false
	}
	if v, hit := m.cache.Get(index); hit {
		return v, true
	}
	data = build(index, start)
	m.cache.Set(index, data)
	return data, true
}

func (m *Manager[T]) params() Params {
	return Params{
		Offset:    m.offset,
		Container: m.container,
		UnitSize:  m.unitSize,
		Total:     m.domain.Len(),
		Overscan:  m.opts.Overscan,
	}
}

func (m *Manager[T]) clampOffset(offset float64) float64 {
	limit := m.TotalSize() - m.container
	if offset > limit {
		offset = limit
	}
	return math.Max(0, offset)
}

func (m *Manager[T]) updateCurrent() {
	n := m.domain.Len()
	if n == 0 || m.unitSize <= 0 {
		return
	}
	index := clamp(int(math.Floor(m.offset/m.unitSize)), 0, n-1)
	if index == m.current {
		return
	}
	m.current = index
	if m.opts.OnCurrentChange != nil {
		m.opts.OnCurrentChange(index)
	}
}
