package motion

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertNearTol(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

// --- Rect ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{0, 0, 100, 60}

	in := r.Inset(10)
	if in != (Rect{10, 10, 80, 40}) {
		t.Errorf("Inset(10) = %v", in)
	}
	out := r.Inset(-5)
	if out != (Rect{-5, -5, 110, 70}) {
		t.Errorf("Inset(-5) = %v", out)
	}
	collapsed := r.Inset(40)
	if collapsed.Width != 20 || collapsed.Height != 0 {
		t.Errorf("Inset(40) = %v, want zero height", collapsed)
	}
	assertNear(t, "collapsed Y", collapsed.Y, 30)
}

func TestRectIntersection(t *testing.T) {
	a := Rect{0, 0, 100, 100}

	got, ok := a.Intersection(Rect{50, 50, 100, 100})
	if !ok || got != (Rect{50, 50, 50, 50}) {
		t.Errorf("overlap = %v, %v", got, ok)
	}
	got, ok = a.Intersection(Rect{100, 0, 10, 10})
	if !ok || got.Area() != 0 {
		t.Errorf("adjacent = %v, %v, want touching with zero area", got, ok)
	}
	if _, ok = a.Intersection(Rect{101, 0, 10, 10}); ok {
		t.Error("disjoint rects reported as intersecting")
	}
}

// --- Direction ---

func TestDirectionOffset(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Vec2
	}{
		{DirectionUp, Vec2{0, 24}},
		{DirectionDown, Vec2{0, -24}},
		{DirectionLeft, Vec2{24, 0}},
		{DirectionRight, Vec2{-24, 0}},
		{DirectionNone, Vec2{}},
	}
	for _, tt := range tests {
		if got := tt.dir.Offset(24); got != tt.want {
			t.Errorf("Direction(%d).Offset(24) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, name := range []string{"up", "down", "left", "right", "none"} {
		if _, ok := ParseDirection(name); !ok {
			t.Errorf("ParseDirection(%q) not ok", name)
		}
	}
	if d, ok := ParseDirection("sideways"); ok || d != DirectionUp {
		t.Errorf("ParseDirection(sideways) = %v, %v", d, ok)
	}
}

// --- Color ---

func TestColorRGBAPremultiplies(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}.RGBA()
	if c.A != 128 || c.R != 128 || c.G != 64 || c.B != 0 {
		t.Errorf("RGBA() = %+v", c)
	}
}

// --- Easing ---

func TestCubicBezierEndpoints(t *testing.T) {
	fn := CubicBezier(0.22, 1, 0.36, 1)
	if got := fn(0, 0, 1, 1); math.Abs(float64(got)) > 1e-4 {
		t.Errorf("ease(0) = %v, want 0", got)
	}
	if got := fn(1, 0, 1, 1); math.Abs(float64(got)-1) > 1e-4 {
		t.Errorf("ease(1) = %v, want 1", got)
	}
	// Ease-out curve: well ahead of linear at the midpoint.
	if got := fn(0.5, 0, 1, 1); got < 0.8 {
		t.Errorf("ease(0.5) = %v, want > 0.8", got)
	}
}

func TestCubicBezierLinearControlPoints(t *testing.T) {
	fn := CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	for _, x := range []float32{0.1, 0.25, 0.5, 0.9} {
		if got := fn(x, 0, 1, 1); math.Abs(float64(got-x)) > 1e-4 {
			t.Errorf("linear bezier(%v) = %v", x, got)
		}
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	fn := EaseFill
	prev := float32(-1)
	for i := 0; i <= 100; i++ {
		v := fn(float32(i)/100, 0, 1, 1)
		if v < prev-1e-5 {
			t.Fatalf("ease decreased at step %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestCubicBezierScalesBeginChange(t *testing.T) {
	fn := EaseOutExpoLike
	if got := fn(2, 10, 5, 2); math.Abs(float64(got)-15) > 1e-3 {
		t.Errorf("ease at end = %v, want 15", got)
	}
	if got := fn(0, 10, 5, 0); got != 15 {
		t.Errorf("zero duration = %v, want 15", got)
	}
}
