package motion

import "github.com/tanema/gween"

const (
	progressFillDuration   = 1.2
	progressMarkerDuration = 0.3
)

// ProgressBar fills to Level percent after its element comes into view and
// Delay has passed, then fades in an end marker.
type ProgressBar struct {
	// Level is the fill target in percent, 0 to 100.
	Level float64
	// Delay is the wait in seconds after the trigger.
	Delay float64

	width  float64
	marker float64
	fill   *gween.Tween
	fade   *gween.Tween
	wait   float64

	started  bool
	sink     func(width, marker float64)
	ticker   Ticker
	frame    FrameID
	observer Observer
	mounted  bool
}

// NewProgressBar creates a bar clamped to [0, 100].
func NewProgressBar(level, delay float64) *ProgressBar {
	return &ProgressBar{Level: min(100, max(0, level)), Delay: delay}
}

// Mount observes element id. sink receives the fill width in percent and the
// marker opacity on every frame of the animation. Each mount starts empty.
func (b *ProgressBar) Mount(w VisibilityWatcher, t Ticker, id string, sink func(width, marker float64)) {
	b.Unmount()
	b.width, b.marker, b.wait = 0, 0, 0
	b.fill, b.fade = nil, nil
	b.started = false
	b.ticker = t
	b.sink = sink
	b.mounted = true
	b.emit()
	b.observer = w.Observe(WatchOptions{}, func(entries []IntersectionEntry) {
		if entries[len(entries)-1].Intersecting {
			b.start()
		}
	}, id)
}

// Unmount stops observing and cancels the animation.
func (b *ProgressBar) Unmount() {
	if !b.mounted {
		return
	}
	b.mounted = false
	if b.observer != nil {
		b.observer.Disconnect()
		b.observer = nil
	}
	b.ticker.CancelFrame(b.frame)
	b.frame = 0
}

// Width returns the current fill in percent.
func (b *ProgressBar) Width() float64 { return b.width }

// Marker returns the end marker's opacity.
func (b *ProgressBar) Marker() float64 { return b.marker }

// Done reports whether fill and marker have finished.
func (b *ProgressBar) Done() bool {
	return b.started && b.fill == nil && b.fade == nil && b.wait <= 0
}

func (b *ProgressBar) start() {
	if b.started || !b.mounted {
		return
	}
	b.started = true
	b.observer.Disconnect()
	b.observer = nil
	b.wait = b.Delay
	b.fill = gween.New(0, float32(b.Level), progressFillDuration, EaseFill)
	b.frame = b.ticker.RequestFrame(b.onFrame)
}

func (b *ProgressBar) onFrame(dt float64) {
	b.frame = 0
	if !b.mounted {
		return
	}
	if b.wait > 0 {
		b.wait -= dt
		if b.wait > 0 {
			b.frame = b.ticker.RequestFrame(b.onFrame)
			return
		}
		dt = -b.wait
		b.wait = 0
	}
	if b.fill != nil {
		val, done := b.fill.Update(float32(dt))
		b.width = float64(val)
		if done {
			b.width = b.Level
			b.fill = nil
			b.fade = gween.New(0, 1, progressMarkerDuration, EaseFill)
		}
	} else if b.fade != nil {
		val, done := b.fade.Update(float32(dt))
		b.marker = clamp01(float64(val))
		if done {
			b.marker = 1
			b.fade = nil
		}
	}
	b.emit()
	if b.fill != nil || b.fade != nil {
		b.frame = b.ticker.RequestFrame(b.onFrame)
	}
}

func (b *ProgressBar) emit() {
	if b.sink != nil {
		b.sink(b.width, b.marker)
	}
}
