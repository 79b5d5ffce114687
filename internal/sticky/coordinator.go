package sticky

// FrameScheduler runs callbacks on the next frame.
type FrameScheduler interface {
	// RequestFrame schedules fn and returns a function that cancels it.
	RequestFrame(fn func()) (cancel func())
}

// MeasureFunc reports the current label positions. ok is false when nothing
// can be measured yet (no labels mounted, zero-size container).
type MeasureFunc func() (labels []Label, ok bool)

// Config holds the push geometry.
type Config struct {
	LabelHeight float64
	Gap         float64
}

// Coordinator recomputes the sticky state at most once per frame and
// publishes it only when it changes.
type Coordinator struct {
	sched   FrameScheduler
	measure MeasureFunc
	publish func(State)
	cfg     Config

	cancel    func()
	state     State
	published bool
}

// NewCoordinator creates a coordinator. publish may be nil.
func NewCoordinator(sched FrameScheduler, measure MeasureFunc, publish func(State), cfg Config) *Coordinator {
	if cfg.LabelHeight <= 0 {
		cfg.LabelHeight = DefaultLabelHeight
	}
	if cfg.Gap < 0 {
		cfg.Gap = 0
	}
	return &Coordinator{
		sched:   sched,
		measure: measure,
		publish: publish,
		cfg:     cfg,
	}
}

// Schedule requests a recompute on the next frame. Calls made while one is
// already pending are folded into it.
func (c *Coordinator) Schedule() {
	if c.cancel != nil {
		return
	}
	c.cancel = c.sched.RequestFrame(c.run)
}

// Pending reports whether a recompute is scheduled.
func (c *Coordinator) Pending() bool { return c.cancel != nil }

// Cancel drops a pending recompute.
func (c *Coordinator) Cancel() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// State returns the last published state.
func (c *Coordinator) State() State { return c.state }

func (c *Coordinator) run() {
	c.cancel = nil

	labels, ok := c.measure()
	if !ok {
		return
	}
	next := Compute(labels, c.cfg.LabelHeight, c.cfg.Gap)
	if c.published && next == c.state {
		return
	}
	c.state, c.published = next, true
	if c.publish != nil {
		c.publish(next)
	}
}

// FrameQueue is a FrameScheduler whose frames are driven by the host calling
// Flush, once per rendered frame. It is not safe for concurrent use.
type FrameQueue struct {
	tasks []*frameTask
}

type frameTask struct {
	fn        func()
	cancelled bool
}

// RequestFrame queues fn for the next Flush.
func (q *FrameQueue) RequestFrame(fn func()) func() {
	t := &frameTask{fn: fn}
	q.tasks = append(q.tasks, t)
	return func() { t.cancelled = true }
}

// Flush runs every queued callback and returns how many ran. Callbacks
// requested during a flush wait for the next one.
func (q *FrameQueue) Flush() int {
	tasks := q.tasks
	q.tasks = nil

	ran := 0
	for _, t := range tasks {
		if t.cancelled {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

// Len returns the number of queued callbacks, cancelled ones included.
func (q *FrameQueue) Len() int { return len(q.tasks) }
