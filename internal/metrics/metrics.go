// Package metrics collects scroll and render diagnostics through an injectable sink.
package metrics

import (
	"sync"
	"time"
)

// FrameBudget is the render time of one frame at 60Hz. Renders slower than this
// count as dropped frames.
const FrameBudget = time.Second / 60

// renderWindow is how many recent render durations the Recorder keeps.
const renderWindow = 100

// Sink receives diagnostic events from the window manager and views.
type Sink interface {
	RecordScroll(delta float64)
	RecordRender(d time.Duration)
	RecordCacheHit()
	RecordCacheMiss()
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordScroll(float64)        {}
func (Nop) RecordRender(time.Duration) {}
func (Nop) RecordCacheHit()            {}
func (Nop) RecordCacheMiss()           {}

// Snapshot is a point-in-time summary of a Recorder.
type Snapshot struct {
	ScrollEvents     int
	AvgScrollDelta   float64
	Renders          int
	AvgRenderTime    time.Duration
	FrameDrops       int
	CacheHits        int
	CacheMisses      int
	CacheHitRate     float64
	Uptime           time.Duration
	ScrollsPerSecond float64
}

// Recorder is a Sink that keeps running totals.
type Recorder struct {
	mu          sync.Mutex
	start       time.Time
	now         func() time.Time
	scrolls     int
	scrollTotal float64
	renders     []time.Duration
	renderCount int
	frameDrops  int
	hits        int
	misses      int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return newRecorder(time.Now)
}

func newRecorder(now func() time.Time) *Recorder {
	return &Recorder{start: now(), now: now}
}

func (r *Recorder) RecordScroll(delta float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrolls++
	if delta < 0 {
		delta = -delta
	}
	r.scrollTotal += delta
}

func (r *Recorder) RecordRender(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderCount++
	if d > FrameBudget {
		r.frameDrops++
	}
	r.renders = append(r.renders, d)
	if len(r.renders) > renderWindow {
		r.renders = r.renders[len(r.renders)-renderWindow:]
	}
}

func (r *Recorder) RecordCacheHit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits++
}

func (r *Recorder) RecordCacheMiss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses++
}

// Snapshot summarizes everything recorded so far.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		ScrollEvents: r.scrolls,
		Renders:      r.renderCount,
		FrameDrops:   r.frameDrops,
		CacheHits:    r.hits,
		CacheMisses:  r.misses,
		Uptime:       r.now().Sub(r.start),
	}
	if r.scrolls > 0 {
		s.AvgScrollDelta = r.scrollTotal / float64(r.scrolls)
	}
	if len(r.renders) > 0 {
		var total time.Duration
		for _, d := range r.renders {
			total += d
		}
		s.AvgRenderTime = total / time.Duration(len(r.renders))
	}
	if lookups := r.hits + r.misses; lookups > 0 {
		s.CacheHitRate = float64(r.hits) / float64(lookups)
	}
	if secs := s.Uptime.Seconds(); secs > 0 {
		s.ScrollsPerSecond = float64(r.scrolls) / secs
	}
	return s
}

// Reset clears all counters and restarts the uptime clock.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.start = r.now()
	r.scrolls, r.scrollTotal = 0, 0
	r.renders, r.renderCount, r.frameDrops = nil, 0, 0
	r.hits, r.misses = 0, 0
}
