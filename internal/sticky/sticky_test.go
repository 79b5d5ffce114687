package sticky

import "testing"

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		labels []Label
		want   State
	}{
		{
			name:   "upcoming within push distance",
			labels: []Label{{ID: 2024, Top: -20, Height: 40}, {ID: 2025, Top: 30, Height: 40}},
			want: State{
				HasPinned: true, PinnedID: 2024,
				HasUpcoming: true, UpcomingID: 2025,
				PinnedOffset: 30, UpcomingOffset: 30,
			},
		},
		{
			name:   "upcoming far away",
			labels: []Label{{ID: 1, Top: -500, Height: 40}, {ID: 2, Top: 300, Height: 40}},
			want:   State{HasPinned: true, PinnedID: 1, UpcomingOffset: 60},
		},
		{
			name:   "closest pinned wins",
			labels: []Label{{ID: 1, Top: -900}, {ID: 2, Top: -10}, {ID: 3, Top: -400}},
			want:   State{HasPinned: true, PinnedID: 2, UpcomingOffset: 68},
		},
		{
			name:   "label exactly at the top is pinned",
			labels: []Label{{ID: 7, Top: 0, Height: 40}, {ID: 8, Top: 60, Height: 40}},
			want: State{
				HasPinned: true, PinnedID: 7,
				HasUpcoming: true, UpcomingID: 8,
				PinnedOffset: 0, UpcomingOffset: 60,
			},
		},
		{
			name:   "nothing scrolled past yet",
			labels: []Label{{ID: 1, Top: 10, Height: 40}},
			want:   State{UpcomingOffset: 60},
		},
		{
			name:   "no labels",
			labels: nil,
			want:   State{UpcomingOffset: 68},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.labels, DefaultLabelHeight, DefaultGap)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

type fakeScheduler struct {
	requests int
	queue    FrameQueue
}

func (f *fakeScheduler) RequestFrame(fn func()) func() {
	f.requests++
	return f.queue.RequestFrame(fn)
}

func TestCoordinatorCoalescesBursts(t *testing.T) {
	sched := &fakeScheduler{}
	measures := 0
	var published []State

	c := NewCoordinator(sched, func() ([]Label, bool) {
		measures++
		return []Label{{ID: 1, Top: -20, Height: 40}, {ID: 2, Top: 30, Height: 40}}, true
	}, func(s State) { published = append(published, s) }, Config{LabelHeight: 40, Gap: 20})

	for i := 0; i < 10; i++ {
		c.Schedule()
	}
	if sched.requests != 1 {
		t.Fatalf("frame requests: got %d, want 1", sched.requests)
	}
	if !c.Pending() {
		t.Error("expected a pending recompute")
	}

	sched.queue.Flush()
	if measures != 1 || len(published) != 1 {
		t.Fatalf("got %d measures and %d publishes, want 1 and 1", measures, len(published))
	}
	if got := c.State(); got.PinnedOffset != 30 || got.UpcomingID != 2 {
		t.Errorf("state: got %+v", got)
	}
	if c.Pending() {
		t.Error("nothing should be pending after the frame")
	}

	// Same positions next frame: recomputed but not republished.
	c.Schedule()
	sched.queue.Flush()
	if measures != 2 || len(published) != 1 {
		t.Errorf("got %d measures and %d publishes, want 2 and 1", measures, len(published))
	}
}

func TestCoordinatorKeepsStateOnMeasureFailure(t *testing.T) {
	var q FrameQueue
	ok := true
	labels := []Label{{ID: 1, Top: -5}}
	publishes := 0

	c := NewCoordinator(&q, func() ([]Label, bool) { return labels, ok }, func(State) { publishes++ }, Config{})
	c.Schedule()
	q.Flush()
	want := c.State()

	ok = false
	labels = nil
	c.Schedule()
	q.Flush()
	if c.State() != want || publishes != 1 {
		t.Errorf("got %+v after %d publishes, want %+v after 1", c.State(), publishes, want)
	}
}

func TestCoordinatorCancel(t *testing.T) {
	var q FrameQueue
	measures := 0
	c := NewCoordinator(&q, func() ([]Label, bool) { measures++; return nil, true }, nil, Config{})

	c.Schedule()
	c.Cancel()
	if ran := q.Flush(); ran != 0 || measures != 0 {
		t.Errorf("cancelled frame ran: %d callbacks, %d measures", ran, measures)
	}

	c.Schedule()
	if ran := q.Flush(); ran != 1 || measures != 1 {
		t.Errorf("rescheduled frame: %d callbacks, %d measures", ran, measures)
	}
}

func TestFrameQueueDefersNestedRequests(t *testing.T) {
	var q FrameQueue
	order := []string{}
	q.RequestFrame(func() {
		order = append(order, "a")
		q.RequestFrame(func() { order = append(order, "b") })
	})

	q.Flush()
	if len(order) != 1 || q.Len() != 1 {
		t.Fatalf("nested request ran early: %v", order)
	}
	q.Flush()
	if len(order) != 2 || order[1] != "b" {
		t.Errorf("got %v", order)
	}
}
