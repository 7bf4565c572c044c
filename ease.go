package motion

import (
	"math"

	"github.com/tanema/gween/ease"
)

// CubicBezier returns an easing function for the CSS-style timing curve
// cubic-bezier(x1, y1, x2, y2). The curve's end points are fixed at (0,0)
// and (1,1); x1 and x2 are clamped to [0,1] so the curve stays a function
// of time.
func CubicBezier(x1, y1, x2, y2 float64) ease.TweenFunc {
	x1 = clamp01(x1)
	x2 = clamp01(x2)

	// Polynomial coefficients for B(s) = ((a*s + b)*s + c)*s.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	solve := func(x float64) float64 {
		// Newton-Raphson first, bisection if the slope flattens out.
		s := x
		for range 8 {
			err := sampleX(s) - x
			if math.Abs(err) < 1e-7 {
				return s
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= err / d
		}
		lo, hi := 0.0, 1.0
		s = x
		for range 32 {
			v := sampleX(s)
			if math.Abs(v-x) < 1e-7 {
				break
			}
			if v < x {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return s
	}

	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		p := clamp01(float64(t / d))
		return b + c*float32(sampleY(solve(p)))
	}
}

// Curves used by the site's motion presets.
var (
	// EaseOutExpoLike is cubic-bezier(0.22, 1, 0.36, 1), the reveal curve.
	EaseOutExpoLike = CubicBezier(0.22, 1, 0.36, 1)
	// EaseFill is cubic-bezier(0.16, 1, 0.3, 1), used by progress bars.
	EaseFill = CubicBezier(0.16, 1, 0.3, 1)
)
