package motion

import "math"

// counterRate is the number of count increments per second.
const counterRate = 60

// Counter counts up from zero to a target once its element comes into view.
type Counter struct {
	// Value is the final number shown.
	Value int
	// Duration is the count-up time in seconds.
	Duration float64

	running float64
	shown   int
	acc     float64
	started bool
	done    bool

	sink     func(n int)
	ticker   Ticker
	frame    FrameID
	observer Observer
	mounted  bool
}

// NewCounter creates a counter with the site's default 2 second duration
// when duration is not positive.
func NewCounter(value int, duration float64) *Counter {
	if duration <= 0 {
		duration = 2
	}
	return &Counter{Value: value, Duration: duration}
}

// Mount observes element id; the count starts on the first intersecting
// report. sink receives every change of the shown number, starting with 0.
// Each mount counts from zero again.
func (c *Counter) Mount(w VisibilityWatcher, t Ticker, id string, sink func(n int)) {
	c.Unmount()
	c.running, c.shown, c.acc = 0, 0, 0
	c.started, c.done = false, false
	c.ticker = t
	c.sink = sink
	c.mounted = true
	c.emit()
	c.observer = w.Observe(WatchOptions{}, func(entries []IntersectionEntry) {
		if entries[len(entries)-1].Intersecting {
			c.start()
		}
	}, id)
}

// Unmount stops observing and cancels the count.
func (c *Counter) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	if c.observer != nil {
		c.observer.Disconnect()
		c.observer = nil
	}
	c.ticker.CancelFrame(c.frame)
	c.frame = 0
}

// Shown returns the number currently displayed.
func (c *Counter) Shown() int { return c.shown }

// Done reports whether the count reached Value.
func (c *Counter) Done() bool { return c.done }

func (c *Counter) start() {
	if c.started || !c.mounted {
		return
	}
	c.started = true
	c.observer.Disconnect()
	c.observer = nil
	c.frame = c.ticker.RequestFrame(c.onFrame)
}

func (c *Counter) onFrame(dt float64) {
	c.frame = 0
	if !c.mounted {
		return
	}
	prev := c.shown
	step := float64(c.Value) / (c.Duration * counterRate)
	c.acc += dt
	for c.acc >= 1.0/counterRate && !c.done {
		c.acc -= 1.0 / counterRate
		c.running += step
		if c.running >= float64(c.Value) {
			c.shown = c.Value
			c.done = true
		} else {
			c.shown = int(math.Floor(c.running))
		}
	}
	if c.shown != prev {
		c.emit()
	}
	if !c.done {
		c.frame = c.ticker.RequestFrame(c.onFrame)
	}
}

func (c *Counter) emit() {
	if c.sink != nil {
		c.sink(c.shown)
	}
}
