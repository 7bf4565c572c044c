package motion

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Style is the paint state of a reveal-animated element.
type Style struct {
	Offset  Vec2
	Opacity float64
}

// StyleSink receives style writes for one element.
type StyleSink interface {
	ApplyStyle(Style)
}

// StyleFunc adapts a function to StyleSink.
type StyleFunc func(Style)

// ApplyStyle calls f.
func (f StyleFunc) ApplyStyle(s Style) { f(s) }

// RevealConfig controls a reveal animation.
type RevealConfig struct {
	Direction Direction
	// Delay is the wait in seconds between the trigger and motion start.
	Delay float64
	// Duration is the length of the animation in seconds.
	Duration float64
	// Once keeps the element visible after its first reveal.
	Once bool
	// Margin is the watch margin; negative values require the element to be
	// that many units inside the viewport edge.
	Margin float64
	// Distance is the resting offset along the direction's axis.
	Distance float64
	Ease     ease.TweenFunc
}

// DefaultRevealConfig returns the fade-in preset: up 24 units over 0.6s,
// triggered 80 units inside the viewport, once.
func DefaultRevealConfig() RevealConfig {
	return RevealConfig{
		Direction: DirectionUp,
		Duration:  0.6,
		Once:      true,
		Margin:    -80,
		Distance:  24,
		Ease:      EaseOutExpoLike,
	}
}

// StaggerItemConfig returns the preset for children of a StaggerGroup.
func StaggerItemConfig() RevealConfig {
	cfg := DefaultRevealConfig()
	cfg.Distance = 20
	cfg.Duration = 0.5
	return cfg
}

// RevealController drives one element between hidden and visible.
type RevealController struct {
	cfg   RevealConfig
	state RevealState
	// resolved is set once a Once reveal has fired; the state is then fixed.
	resolved bool

	ticker   Ticker
	frame    FrameID
	observer Observer
	sink     StyleSink
	mounted  bool

	progress float64 // 0 = hidden style, 1 = visible style
	target   float64
	tween    *gween.Tween
	wait     float64
}

// NewRevealController creates an unmounted controller.
func NewRevealController(cfg RevealConfig) *RevealController {
	if cfg.Ease == nil {
		cfg.Ease = ease.Linear
	}
	return &RevealController{cfg: cfg}
}

// Mount observes element id and writes the hidden style to sink.
func (r *RevealController) Mount(w VisibilityWatcher, t Ticker, id string, sink StyleSink) {
	r.attach(t, sink)
	r.observer = w.Observe(WatchOptions{Margin: r.cfg.Margin}, func(entries []IntersectionEntry) {
		r.setVisible(entries[len(entries)-1].Intersecting, 0)
	}, id)
}

// attach mounts without observing; visibility is pushed by a parent.
func (r *RevealController) attach(t Ticker, sink StyleSink) {
	if r.mounted {
		r.Unmount()
	}
	r.ticker = t
	r.sink = sink
	r.mounted = true
	r.state = StateHidden
	r.resolved = false
	r.progress = 0
	r.write()
}

// Unmount disconnects the observer and cancels any pending frame. No style
// writes happen afterwards.
func (r *RevealController) Unmount() {
	if !r.mounted {
		return
	}
	r.mounted = false
	if r.observer != nil {
		r.observer.Disconnect()
		r.observer = nil
	}
	if r.ticker != nil {
		r.ticker.CancelFrame(r.frame)
	}
	r.frame = 0
	r.tween = nil
}

// Mounted reports whether the controller is mounted.
func (r *RevealController) Mounted() bool { return r.mounted }

// State returns the current trigger state.
func (r *RevealController) State() RevealState { return r.state }

// Animating reports whether a transition is in progress.
func (r *RevealController) Animating() bool { return r.tween != nil }

// Style returns the current paint state.
func (r *RevealController) Style() Style {
	off := r.cfg.Direction.Offset(r.cfg.Distance)
	rest := 1 - r.progress
	return Style{
		Offset:  Vec2{off.X * rest, off.Y * rest},
		Opacity: r.progress,
	}
}

// Config returns the controller's configuration.
func (r *RevealController) Config() RevealConfig { return r.cfg }

// setVisible moves the trigger. extraDelay is added to the configured delay
// when revealing.
func (r *RevealController) setVisible(visible bool, extraDelay float64) {
	if !r.mounted {
		return
	}
	if visible {
		if r.state == StateVisible {
			return
		}
		r.state = StateVisible
		if r.cfg.Once {
			r.resolved = true
			if r.observer != nil {
				r.observer.Disconnect()
				r.observer = nil
			}
		}
		r.animate(1, r.cfg.Delay+extraDelay)
		return
	}
	if r.resolved || r.state == StateHidden {
		return
	}
	r.state = StateHidden
	r.animate(0, 0)
}

func (r *RevealController) animate(target, delay float64) {
	r.target = target
	if r.cfg.Duration <= 0 && delay <= 0 {
		r.tween = nil
		r.progress = target
		r.write()
		return
	}
	r.tween = gween.New(float32(r.progress), float32(target), float32(max(r.cfg.Duration, 0)), r.cfg.Ease)
	r.wait = delay
	r.request()
}

func (r *RevealController) request() {
	if r.frame != 0 || r.ticker == nil {
		return
	}
	r.frame = r.ticker.RequestFrame(r.onFrame)
}

func (r *RevealController) onFrame(dt float64) {
	r.frame = 0
	if !r.mounted || r.tween == nil {
		return
	}
	if r.wait > 0 {
		r.wait -= dt
		if r.wait > 0 {
			r.request()
			return
		}
		dt = -r.wait
		r.wait = 0
	}
	val, done := r.tween.Update(float32(dt))
	r.progress = clamp01(float64(val))
	if done {
		r.progress = r.target
		r.tween = nil
	}
	r.write()
	if !done {
		r.request()
	}
}

func (r *RevealController) write() {
	if r.sink != nil {
		r.sink.ApplyStyle(r.Style())
	}
}
