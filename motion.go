package motion

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// WithAlpha returns c with its alpha replaced by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA converts c to a premultiplied color.RGBA for drawing backends.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Inset shrinks r by d on every side. A negative d grows it. The result
// never has a negative size.
func (r Rect) Inset(d float64) Rect {
	out := Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
	if out.Width < 0 {
		out.X += out.Width / 2
		out.Width = 0
	}
	if out.Height < 0 {
		out.Y += out.Height / 2
		out.Height = 0
	}
	return out
}

// Intersection returns the overlapping area of r and o and whether they
// overlap or touch.
func (r Rect) Intersection(o Rect) (Rect, bool) {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.X+r.Width, o.X+o.Width)
	y1 := math.Min(r.Y+r.Height, o.Y+o.Height)
	if x1 < x0 || y1 < y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Range is a general-purpose min/max range used for randomized seeding.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max] drawn from rng, or from the
// global source when rng is nil.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	var f float64
	if rng != nil {
		f = rng.Float64()
	} else {
		f = rand.Float64()
	}
	return r.Min + f*(r.Max-r.Min)
}

// Direction selects the axis and sign of a reveal's resting offset.
type Direction uint8

const (
	DirectionUp    Direction = iota // enters moving upward (starts below)
	DirectionDown                   // enters moving downward (starts above)
	DirectionLeft                   // enters moving left (starts to the right)
	DirectionRight                  // enters moving right (starts to the left)
	DirectionNone                   // fades in place
)

// ParseDirection maps "up", "down", "left", "right" and "none" to a
// Direction. Unknown names report false.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirectionUp, true
	case "down":
		return DirectionDown, true
	case "left":
		return DirectionLeft, true
	case "right":
		return DirectionRight, true
	case "none":
		return DirectionNone, true
	}
	return DirectionUp, false
}

// Offset returns the hidden-state displacement for a travel distance.
func (d Direction) Offset(distance float64) Vec2 {
	switch d {
	case DirectionUp:
		return Vec2{0, distance}
	case DirectionDown:
		return Vec2{0, -distance}
	case DirectionLeft:
		return Vec2{distance, 0}
	case DirectionRight:
		return Vec2{-distance, 0}
	default:
		return Vec2{}
	}
}

// RevealState is the two-state animation trigger of a reveal.
type RevealState uint8

const (
	StateHidden RevealState = iota
	StateVisible
)

func (s RevealState) String() string {
	if s == StateVisible {
		return "visible"
	}
	return "hidden"
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
