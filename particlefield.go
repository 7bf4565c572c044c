package motion

import (
	"math"
	"math/rand/v2"
)

// Canvas is a 2D drawing surface redrawn every frame.
type Canvas interface {
	Clear()
	FillCircle(x, y, radius float64, c Color)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
}

// particle holds per-particle simulation state. Velocity is in units per
// frame and never changes after seeding.
type particle struct {
	x, y    float64
	vx, vy  float64
	radius  float64
	opacity float64
}

// FieldConfig controls particle seeding and the connection pass.
type FieldConfig struct {
	// Count is the number of particles seeded at mount.
	Count int
	// Velocity is the range each velocity component is drawn from, in units
	// per frame. A symmetric range keeps net drift near zero.
	Velocity Range
	Radius   Range
	Opacity  Range
	// LinkDistance is the proximity radius for connection lines.
	LinkDistance float64
	// LinkOpacity is the line opacity at distance zero.
	LinkOpacity float64
	LinkWidth   float64
	// Color supplies the draw color each frame. Nil draws the default light
	// particle color.
	Color ColorResolver
	// Rand seeds particles; nil uses the global source.
	Rand *rand.Rand
}

// DefaultFieldConfig returns the hero background's tuning.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Count:        60,
		Velocity:     Range{-0.15, 0.15},
		Radius:       Range{0.5, 2},
		Opacity:      Range{0.05, 0.35},
		LinkDistance: 120,
		LinkOpacity:  0.05,
		LinkWidth:    0.5,
	}
}

// ParticleField simulates drifting particles on a toroidal surface and
// draws the proximity graph between them.
type ParticleField struct {
	config    FieldConfig
	particles []particle
	width     float64
	height    float64

	ticker  Ticker
	frame   FrameID
	canvas  Canvas
	mounted bool

	grid  proximityGrid
	pairs []pair
}

// NewParticleField creates an unmounted field.
func NewParticleField(cfg FieldConfig) *ParticleField {
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	if cfg.Color == nil {
		light, _ := ParseHex(DefaultLightHex.Particle)
		cfg.Color = Fixed(light)
	}
	return &ParticleField{config: cfg}
}

// Mount sizes the surface, seeds particles and starts the frame loop.
func (f *ParticleField) Mount(t Ticker, canvas Canvas, width, height float64) {
	if f.mounted {
		f.Unmount()
	}
	f.ticker = t
	f.canvas = canvas
	f.width, f.height = width, height
	f.seed()
	f.mounted = true
	f.frame = t.RequestFrame(f.onFrame)
}

// Unmount cancels the frame loop and discards the particles.
func (f *ParticleField) Unmount() {
	if !f.mounted {
		return
	}
	f.mounted = false
	f.ticker.CancelFrame(f.frame)
	f.frame = 0
	f.particles = f.particles[:0]
}

// Mounted reports whether the loop is running.
func (f *ParticleField) Mounted() bool { return f.mounted }

// Resize changes the surface bounds. Particles are not reseeded; positions
// outside the new bounds wrap back in on the next step.
func (f *ParticleField) Resize(width, height float64) {
	f.width, f.height = width, height
}

// Bounds returns the surface size.
func (f *ParticleField) Bounds() (width, height float64) {
	return f.width, f.height
}

// Count returns the number of live particles.
func (f *ParticleField) Count() int {
	return len(f.particles)
}

// Config returns a pointer to the field's config for live tuning.
func (f *ParticleField) Config() *FieldConfig {
	return &f.config
}

// Position returns particle i's position.
func (f *ParticleField) Position(i int) Vec2 {
	p := &f.particles[i]
	return Vec2{p.x, p.y}
}

// seed fills the pool with uniformly placed particles.
func (f *ParticleField) seed() {
	cfg := &f.config
	if cap(f.particles) < cfg.Count {
		f.particles = make([]particle, cfg.Count)
	}
	f.particles = f.particles[:cfg.Count]
	w, h := math.Max(f.width, 0), math.Max(f.height, 0)
	for i := range f.particles {
		p := &f.particles[i]
		p.x = Range{0, w}.Random(cfg.Rand)
		p.y = Range{0, h}.Random(cfg.Rand)
		p.vx = cfg.Velocity.Random(cfg.Rand)
		p.vy = cfg.Velocity.Random(cfg.Rand)
		p.radius = cfg.Radius.Random(cfg.Rand)
		p.opacity = cfg.Opacity.Random(cfg.Rand)
		p.x, p.y = wrap(p.x, w), wrap(p.y, h)
	}
}

func (f *ParticleField) onFrame(dt float64) {
	f.frame = 0
	if !f.mounted {
		return
	}
	f.Step()
	f.frame = f.ticker.RequestFrame(f.onFrame)
}

// Step advances and draws one frame. A degenerate surface skips the frame
// entirely.
func (f *ParticleField) Step() {
	if f.width <= 0 || f.height <= 0 {
		return
	}
	f.advance()
	if f.canvas == nil {
		return
	}
	f.draw(f.config.Color())
}

// advance moves every particle by its velocity and wraps it into
// [0, width) x [0, height).
func (f *ParticleField) advance() {
	for i := range f.particles {
		p := &f.particles[i]
		p.x = wrap(p.x+p.vx, f.width)
		p.y = wrap(p.y+p.vy, f.height)
	}
}

func (f *ParticleField) draw(base Color) {
	f.canvas.Clear()
	for i := range f.particles {
		p := &f.particles[i]
		f.canvas.FillCircle(p.x, p.y, p.radius, base.WithAlpha(p.opacity))
	}

	f.pairs = f.collectPairs(f.pairs[:0])
	for _, pr := range f.pairs {
		a, b := &f.particles[pr.i], &f.particles[pr.j]
		alpha := LinkOpacity(pr.dist, f.config.LinkDistance, f.config.LinkOpacity)
		f.canvas.StrokeLine(a.x, a.y, b.x, b.y, f.config.LinkWidth, base.WithAlpha(alpha))
	}
}

// LinkOpacity returns the connection opacity for two particles dist apart:
// max at distance 0, falling linearly to 0 at radius and beyond.
func LinkOpacity(dist, radius, max float64) float64 {
	if radius <= 0 || dist >= radius || math.IsNaN(dist) {
		return 0
	}
	if dist <= 0 {
		return max
	}
	return max * (1 - dist/radius)
}

// wrap maps v into [0, size). A non-positive size maps everything to 0.
func wrap(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// Mod of a tiny negative value can round up to exactly size.
	if v >= size {
		v = 0
	}
	return v
}
