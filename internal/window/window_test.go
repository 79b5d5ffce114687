package window

import (
	"reflect"
	"testing"
	"time"
)

// fakeSink counts metric calls.
type fakeSink struct {
	scrolls []float64
	renders int
	hits    int
	misses  int
}

func (f *fakeSink) RecordScroll(delta float64)   { f.scrolls = append(f.scrolls, delta) }
func (f *fakeSink) RecordRender(time.Duration) { f.renders++ }
func (f *fakeSink) RecordCacheHit()            { f.hits++ }
func (f *fakeSink) RecordCacheMiss()           { f.misses++ }

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   VisibleRange
	}{
		{
			name:   "top of domain",
			params: Params{Offset: 0, Container: 250, UnitSize: 100, Total: 131},
			want:   VisibleRange{StartIndex: 0, EndIndex: 3, BufferStart: 0, BufferEnd: 3},
		},
		{
			name:   "middle with overscan",
			params: Params{Offset: 520, Container: 200, UnitSize: 100, Total: 131, Overscan: 2},
			want:   VisibleRange{StartIndex: 5, EndIndex: 8, BufferStart: 3, BufferEnd: 10},
		},
		{
			name:   "overscan clamped at both ends",
			params: Params{Offset: 100, Container: 250, UnitSize: 100, Total: 4, Overscan: 5},
			want:   VisibleRange{StartIndex: 1, EndIndex: 3, BufferStart: 0, BufferEnd: 3},
		},
		{
			name:   "offset past the end is dropped to the last unit",
			params: Params{Offset: 1e9, Container: 100, UnitSize: 100, Total: 10},
			want:   VisibleRange{StartIndex: 9, EndIndex: 9, BufferStart: 9, BufferEnd: 9},
		},
		{
			name:   "negative offset",
			params: Params{Offset: -50, Container: 100, UnitSize: 100, Total: 10},
			want:   VisibleRange{StartIndex: 0, EndIndex: 1, BufferStart: 0, BufferEnd: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compute(tt.params)
			if !ok {
				t.Fatal("expected a result")
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if got.BufferStart > got.StartIndex || got.StartIndex > got.EndIndex || got.EndIndex > got.BufferEnd {
				t.Errorf("range ordering violated: %+v", got)
			}
		})
	}
}

func TestComputeInvalid(t *testing.T) {
	for _, p := range []Params{
		{Container: 100, UnitSize: 0, Total: 10},
		{Container: 0, UnitSize: 100, Total: 10},
		{Container: 100, UnitSize: 100, Total: 0},
	} {
		if _, ok := Compute(p); ok {
			t.Errorf("Compute(%+v) should not produce a range", p)
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	p := Params{Offset: 1234.5, Container: 480, UnitSize: 77, Total: 131, Overscan: 1}
	a, _ := Compute(p)
	b, _ := Compute(p)
	if a != b {
		t.Errorf("got %+v then %+v", a, b)
	}
}

func TestComputeMonotonic(t *testing.T) {
	prev := -1
	for offset := 0.0; offset < 10000; offset += 13.7 {
		r, _ := Compute(Params{Offset: offset, Container: 300, UnitSize: 90, Total: 131})
		if r.StartIndex < prev {
			t.Fatalf("start index went from %d to %d at offset %v", prev, r.StartIndex, offset)
		}
		prev = r.StartIndex
	}
}

func TestUnitSizeFor(t *testing.T) {
	bps := []Breakpoint{{MaxWidth: 640, Size: 1200}, {MaxWidth: 900, Size: 900}}
	tests := []struct {
		width int
		want  float64
	}{
		{320, 1200},
		{639, 1200},
		{640, 900},
		{899, 900},
		{1440, 700},
	}
	for _, tt := range tests {
		if got := UnitSizeFor(tt.width, bps, 700); got != tt.want {
			t.Errorf("UnitSizeFor(%d) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestCacheBound(t *testing.T) {
	sink := &fakeSink{}
	c, err := NewCache[string](3, sink)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	for i := 0; i < 5; i++ {
		c.Set(i, "v")
	}
	if c.Len() != 3 {
		t.Fatalf("len: got %d, want 3", c.Len())
	}
	if got, want := c.Keys(), []int{2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("keys: got %v, want %v", got, want)
	}

	// Touch 2 so 3 becomes the least recently used.
	if _, ok := c.Get(2); !ok {
		t.Fatal("expected hit for 2")
	}
	c.Set(5, "v")
	if got, want := c.Keys(), []int{4, 2, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("keys after refresh: got %v, want %v", got, want)
	}
	if _, ok := c.Get(3); ok {
		t.Error("3 should have been evicted")
	}

	if sink.hits != 1 || sink.misses != 1 {
		t.Errorf("sink: got %d hits %d misses, want 1 and 1", sink.hits, sink.misses)
	}
}

func TestCacheCapacity(t *testing.T) {
	if _, err := NewCache[int](0, nil); err == nil {
		t.Error("expected error for capacity 0")
	}
	c, err := NewCache[int](1, nil)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	c.Set(1, 1)
	c.Set(2, 2)
	if got := c.Keys(); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("got %v, want [2]", got)
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("len after purge: got %d", c.Len())
	}
}

func TestYearDomain(t *testing.T) {
	d := NewYearDomain(DefaultMinYear, DefaultMaxYear, time.UTC)
	if d.Len() != 131 {
		t.Errorf("len: got %d, want 131", d.Len())
	}
	start, ok := d.Start(55)
	if !ok || !start.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start(55): got %v %v", start, ok)
	}
	if _, ok := d.Start(131); ok {
		t.Error("index past max year should not exist")
	}
	if _, ok := d.Start(-1); ok {
		t.Error("negative index should not exist")
	}
	if i, ok := d.Index(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)); !ok || i != 55 {
		t.Errorf("index: got %d %v, want 55 true", i, ok)
	}
	if _, ok := d.Index(time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC)); ok {
		t.Error("1969 is outside the domain")
	}
}

func TestWeekDomain(t *testing.T) {
	// Wednesday 2025-01-01 to Sunday 2025-01-19: weeks of Dec 30, Jan 6, Jan 13.
	d := NewWeekDomain(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC))
	if d.Len() != 3 {
		t.Fatalf("len: got %d, want 3", d.Len())
	}
	if !d.Epoch.Equal(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("epoch: got %v", d.Epoch)
	}
	start, _ := d.Start(2)
	if !start.Equal(time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start(2): got %v", start)
	}
	if i, ok := d.Index(time.Date(2025, 1, 12, 23, 0, 0, 0, time.UTC)); !ok || i != 1 {
		t.Errorf("index: got %d %v, want 1 true", i, ok)
	}
	if i, ok := d.Index(time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC)); ok || i != -1 {
		t.Errorf("index before epoch: got %d %v, want -1 false", i, ok)
	}
}

func TestWeekDomainSpanningCenturies(t *testing.T) {
	d := NewWeekDomain(time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2100, 12, 31, 0, 0, 0, 0, time.UTC))
	if d.Len() != 20924 {
		t.Fatalf("len: got %d, want 20924", d.Len())
	}

	i, ok := d.Index(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))
	if !ok || i != 17051 {
		t.Fatalf("index: got %d %v, want 17051 true", i, ok)
	}
	start, _ := d.Start(i)
	if !start.Equal(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start: got %v, want 2026-10-12", start)
	}
}

func newYearManager(t *testing.T, opts Options) *Manager[int] {
	t.Helper()
	m, err := NewManager[int](NewYearDomain(DefaultMinYear, DefaultMaxYear, time.UTC), 100, opts)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.Resize(300)
	return m
}

func TestManagerReanchorOnResize(t *testing.T) {
	m := newYearManager(t, Options{})
	m.Scroll(500)

	got := m.SetUnitSize(120)
	if got != 600 {
		t.Errorf("offset: got %v, want 600", got)
	}
	if m.Current() != 5 {
		t.Errorf("current: got %d, want 5", m.Current())
	}
	if !m.Ready() {
		t.Error("manager should be ready after committing a size")
	}
}

func TestManagerReanchorOnSmallSizeChanges(t *testing.T) {
	tests := []struct {
		name       string
		base       float64
		offset     float64
		size       float64
		wantOffset float64
	}{
		{"one unit larger", 100, 530, 101, 505},
		{"one unit smaller", 100, 500, 99, 495},
		{"terminal lines", 10, 50, 11, 55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newYearManager(t, Options{})
			m.SetUnitSize(tt.base)
			m.Scroll(tt.offset)

			if got := m.SetUnitSize(tt.size); got != tt.wantOffset {
				t.Errorf("offset: got %v, want %v", got, tt.wantOffset)
			}
			if m.UnitSize() != tt.size {
				t.Errorf("unit size: got %v, want %v", m.UnitSize(), tt.size)
			}
		})
	}
}

func TestManagerSameSizeOnlyCommits(t *testing.T) {
	m := newYearManager(t, Options{})
	m.Scroll(530)

	if got := m.SetUnitSize(100); got != 530 {
		t.Errorf("offset: got %v, want 530", got)
	}
	if !m.Ready() {
		t.Error("an unchanged size still commits the measurement")
	}
}

func TestManagerCurrentChange(t *testing.T) {
	var changes []int
	m := newYearManager(t, Options{OnCurrentChange: func(i int) { changes = append(changes, i) }})

	for _, off := range []float64{0, 10, 50, 99, 100, 150, 199.9, 200, 120} {
		m.Scroll(off)
	}
	if want := []int{0, 1, 2, 1}; !reflect.DeepEqual(changes, want) {
		t.Errorf("changes: got %v, want %v", changes, want)
	}
}

func TestManagerSettle(t *testing.T) {
	m := newYearManager(t, Options{})

	g1 := m.Scroll(10)
	g2 := m.Scroll(20)
	if !m.Scrolling() {
		t.Fatal("expected scrolling after input")
	}
	if m.Settle(g1) {
		t.Error("stale generation must not end scrolling")
	}
	if !m.Scrolling() {
		t.Error("still scrolling after stale settle")
	}
	if m.Generation() != g2 {
		t.Errorf("Generation() = %d, want %d", m.Generation(), g2)
	}
	if !m.Settle(g2) {
		t.Error("latest generation should end scrolling")
	}
	if m.Scrolling() {
		t.Error("expected scrolling to stop")
	}
	if m.Settle(g2) {
		t.Error("settling twice should report no change")
	}
}

func TestManagerScrollTo(t *testing.T) {
	m := newYearManager(t, Options{})

	req := m.ScrollTo(55, false)
	if req.Offset != 5500 || m.Offset() != 5500 {
		t.Errorf("immediate: got request %v offset %v, want 5500", req.Offset, m.Offset())
	}

	req = m.ScrollTo(10, true)
	if req.Offset != 1000 || !req.Smooth {
		t.Errorf("smooth: got %+v", req)
	}
	if m.Offset() != 5500 {
		t.Errorf("smooth request must not move the viewport, got %v", m.Offset())
	}

	req = m.ScrollTo(-4, false)
	if req.Index != 0 || m.Offset() != 0 {
		t.Errorf("below domain: got %+v offset %v", req, m.Offset())
	}

	req = m.ScrollTo(500, false)
	if req.Index != 130 {
		t.Errorf("above domain: got index %d, want 130", req.Index)
	}
}

func TestManagerNavigation(t *testing.T) {
	m := newYearManager(t, Options{})
	m.Today(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if m.Current() != 55 {
		t.Fatalf("today: got %d, want 55", m.Current())
	}
	m.Next()
	m.Jump(JumpSize)
	m.Previous()
	if m.Current() != 60 {
		t.Errorf("got %d, want 60", m.Current())
	}
}

func TestManagerVisible(t *testing.T) {
	m := newYearManager(t, Options{Overscan: 1})
	m.Scroll(250)

	r, items := m.Visible()
	want := VisibleRange{StartIndex: 2, EndIndex: 6, BufferStart: 1, BufferEnd: 7}
	if r != want {
		t.Fatalf("range: got %+v, want %+v", r, want)
	}
	if len(items) != 7 || items[0].Index != 1 || items[0].Offset != 100 {
		t.Errorf("items: got %+v", items)
	}
	if items[1].Start.Year() != 1972 {
		t.Errorf("start: got %v, want 1972", items[1].Start)
	}

	items[0].Offset = -1
	_ = append(items[:1], Item{Index: 99})
	if _, again := m.Visible(); again[0].Offset != 100 || again[1].Index != 2 {
		t.Errorf("caller edits leaked into the manager: got %+v", again[:2])
	}
}

func TestManagerVisibleKeepsLastGood(t *testing.T) {
	m, err := NewManager[int](NewYearDomain(2000, 2010, time.UTC), 100, Options{})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, items := m.Visible(); items != nil {
		t.Errorf("unmeasured manager returned items: %v", items)
	}

	m.Resize(200)
	good, _ := m.Visible()
	m.Resize(0) // ignored
	m.SetUnitSize(-1)
	got, _ := m.Visible()
	if got != good {
		t.Errorf("got %+v, want last good %+v", got, good)
	}
}

func TestManagerData(t *testing.T) {
	sink := &fakeSink{}
	m := newYearManager(t, Options{CacheCapacity: 2, Metrics: sink})

	builds := 0
	build := func(index int, start time.Time) int {
		builds++
		return start.Year()
	}

	for _, i := range []int{0, 0, 1, 2, 0} {
		if _, ok := m.Data(i, build); !ok {
			t.Fatalf("Data(%d) not ok", i)
		}
	}
	if builds != 4 {
		t.Errorf("builds: got %d, want 4", builds)
	}
	if sink.hits != 1 || sink.misses != 4 {
		t.Errorf("sink: got %d hits %d misses, want 1 and 4", sink.hits, sink.misses)
	}
	if _, ok := m.Data(200, build); ok {
		t.Error("out-of-domain index should be dropped")
	}
	if m.Cache().Len() != 2 {
		t.Errorf("cache len: got %d, want 2", m.Cache().Len())
	}
}

func TestManagerRecordsScrollDeltas(t *testing.T) {
	sink := &fakeSink{}
	m := newYearManager(t, Options{Metrics: sink})
	m.Scroll(100)
	m.Scroll(40)
	if want := []float64{100, -60}; !reflect.DeepEqual(sink.scrolls, want) {
		t.Errorf("got %v, want %v", sink.scrolls, want)
	}
}

func TestScrollRequestSteps(t *testing.T) {
	steps := ScrollRequest{Offset: 100}.Steps(0, 4)
	if len(steps) != 4 || steps[3] != 100 {
		t.Fatalf("got %v", steps)
	}
	for i := 1; i < len(steps); i++ {
		if steps[i] < steps[i-1] {
			t.Errorf("steps not monotonic: %v", steps)
		}
	}
	if steps[0] <= 25 {
		t.Errorf("expected ease-out, first step %v", steps[0])
	}
}
