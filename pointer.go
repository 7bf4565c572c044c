package motion

import "github.com/charmbracelet/harmonica"

// Indicators receives the pointer follower's paint output. Positions are
// centers in screen coordinates.
type Indicators interface {
	PlaceDot(x, y float64)
	PlaceRing(x, y, size, opacity float64)
}

// FollowerConfig tunes the pointer follower.
type FollowerConfig struct {
	// Smoothing is the fraction of the remaining distance the ring covers
	// each frame, in (0, 1].
	Smoothing float64
	// RestSize and RestOpacity are the ring preset away from interactive
	// elements.
	RestSize    float64
	RestOpacity float64
	// ActiveSize and ActiveOpacity are the preset while hovering one.
	ActiveSize    float64
	ActiveOpacity float64
	// SpringFrequency and SpringDamping shape the preset transition. The
	// spring is stepped with each frame's elapsed time, so the transition
	// takes as long at 30 frames per second as at 60.
	SpringFrequency float64
	SpringDamping   float64
}

// DefaultFollowerConfig returns the site's cursor tuning.
func DefaultFollowerConfig() FollowerConfig {
	return FollowerConfig{
		Smoothing:       0.12,
		RestSize:        32,
		RestOpacity:     0.5,
		ActiveSize:      48,
		ActiveOpacity:   0.8,
		SpringFrequency: 12,
		SpringDamping:   1,
	}
}

// Smooth moves ring a fraction k of the way toward dot. When the step is
// too small to change the distance in floating point, ring snaps to dot, so
// the distance always strictly shrinks until it reaches zero.
func Smooth(ring, dot Vec2, k float64) Vec2 {
	if ring == dot {
		return ring
	}
	next := Vec2{
		X: ring.X + (dot.X-ring.X)*k,
		Y: ring.Y + (dot.Y-ring.Y)*k,
	}
	if dot.Sub(next).Len() >= dot.Sub(ring).Len() {
		return dot
	}
	return next
}

// PointerFollower tracks an instantaneous dot and a ring that lags behind
// it, and resizes the ring while an interactive element is hovered.
type PointerFollower struct {
	cfg FollowerConfig

	dot, ring  Vec2
	hasPointer bool
	hovering   bool

	size, sizeVel       float64
	opacity, opacityVel float64
	spring              harmonica.Spring
	springDT            float64

	ticker  Ticker
	frame   FrameID
	out     Indicators
	mounted bool
}

// NewPointerFollower creates an unmounted follower.
func NewPointerFollower(cfg FollowerConfig) *PointerFollower {
	if cfg.Smoothing <= 0 || cfg.Smoothing > 1 {
		cfg.Smoothing = DefaultFollowerConfig().Smoothing
	}
	return &PointerFollower{
		cfg:     cfg,
		size:    cfg.RestSize,
		opacity: cfg.RestOpacity,
	}
}

// tune rebuilds the spring coefficients when the frame time changes.
func (p *PointerFollower) tune(dt float64) {
	if dt <= 0 {
		dt = harmonica.FPS(60)
	}
	if dt == p.springDT {
		return
	}
	p.springDT = dt
	p.spring = harmonica.NewSpring(dt, p.cfg.SpringFrequency, p.cfg.SpringDamping)
}

// Mount starts the per-frame loop writing to out.
func (p *PointerFollower) Mount(t Ticker, out Indicators) {
	if p.mounted {
		p.Unmount()
	}
	p.ticker = t
	p.out = out
	p.mounted = true
	p.hasPointer = false
	p.frame = t.RequestFrame(p.onFrame)
}

// Unmount cancels the loop. Later pointer events are ignored.
func (p *PointerFollower) Unmount() {
	if !p.mounted {
		return
	}
	p.mounted = false
	p.ticker.CancelFrame(p.frame)
	p.frame = 0
}

// Mounted reports whether the loop is running.
func (p *PointerFollower) Mounted() bool { return p.mounted }

// Move records the raw pointer position. The first move seeds the ring at
// the same point.
func (p *PointerFollower) Move(x, y float64) {
	if !p.mounted {
		return
	}
	p.dot = Vec2{x, y}
	if !p.hasPointer {
		p.ring = p.dot
		p.hasPointer = true
	}
}

// Enter marks an interactive element as hovered.
func (p *PointerFollower) Enter() {
	if p.mounted {
		p.hovering = true
	}
}

// Leave clears the hover state.
func (p *PointerFollower) Leave() {
	if p.mounted {
		p.hovering = false
	}
}

// Hovering reports the hover state.
func (p *PointerFollower) Hovering() bool { return p.hovering }

// Dot returns the dot position and whether any pointer event was seen.
func (p *PointerFollower) Dot() (Vec2, bool) { return p.dot, p.hasPointer }

// Ring returns the ring position and whether any pointer event was seen.
func (p *PointerFollower) Ring() (Vec2, bool) { return p.ring, p.hasPointer }

// RingAppearance returns the current ring size and opacity.
func (p *PointerFollower) RingAppearance() (size, opacity float64) {
	return p.size, p.opacity
}

// Lag returns the distance between ring and dot.
func (p *PointerFollower) Lag() float64 {
	return p.dot.Sub(p.ring).Len()
}

func (p *PointerFollower) onFrame(dt float64) {
	p.frame = 0
	if !p.mounted {
		return
	}
	p.tune(dt)
	p.step()
	p.frame = p.ticker.RequestFrame(p.onFrame)
}

func (p *PointerFollower) step() {
	targetSize, targetOpacity := p.cfg.RestSize, p.cfg.RestOpacity
	if p.hovering {
		targetSize, targetOpacity = p.cfg.ActiveSize, p.cfg.ActiveOpacity
	}
	p.size, p.sizeVel = p.spring.Update(p.size, p.sizeVel, targetSize)
	p.opacity, p.opacityVel = p.spring.Update(p.opacity, p.opacityVel, targetOpacity)

	if !p.hasPointer {
		return
	}
	p.ring = Smooth(p.ring, p.dot, p.cfg.Smoothing)
	if p.out != nil {
		p.out.PlaceDot(p.dot.X, p.dot.Y)
		p.out.PlaceRing(p.ring.X, p.ring.Y, p.size, clamp01(p.opacity))
	}
}
