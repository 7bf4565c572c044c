package stage

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/motion"
)

type drawKind uint8

const (
	drawCircle drawKind = iota
	drawLine
)

// drawOp is one recorded canvas call.
type drawOp struct {
	kind           drawKind
	x0, y0, x1, y1 float64
	size           float64 // radius for circles, width for lines
	color          motion.Color
}

// DrawList is a motion.Canvas that records the particle field's calls during
// Update and replays them onto the screen during Draw.
type DrawList struct {
	ops []drawOp
}

// Clear drops every recorded call.
func (d *DrawList) Clear() {
	d.ops = d.ops[:0]
}

// FillCircle records a filled circle.
func (d *DrawList) FillCircle(x, y, radius float64, c motion.Color) {
	d.ops = append(d.ops, drawOp{kind: drawCircle, x0: x, y0: y, size: radius, color: c})
}

// StrokeLine records a line segment.
func (d *DrawList) StrokeLine(x0, y0, x1, y1, width float64, c motion.Color) {
	d.ops = append(d.ops, drawOp{kind: drawLine, x0: x0, y0: y0, x1: x1, y1: y1, size: width, color: c})
}

// Len returns the number of recorded calls.
func (d *DrawList) Len() int { return len(d.ops) }

// Counts returns the number of recorded circles and lines.
func (d *DrawList) Counts() (circles, lines int) {
	for i := range d.ops {
		if d.ops[i].kind == drawCircle {
			circles++
		} else {
			lines++
		}
	}
	return circles, lines
}

// Replay draws every recorded call onto dst translated by (dx, dy).
func (d *DrawList) Replay(dst *ebiten.Image, dx, dy float64) {
	for i := range d.ops {
		op := &d.ops[i]
		clr := op.color.RGBA()
		switch op.kind {
		case drawCircle:
			vector.FillCircle(dst, float32(op.x0+dx), float32(op.y0+dy), float32(op.size), clr, true)
		case drawLine:
			vector.StrokeLine(dst,
				float32(op.x0+dx), float32(op.y0+dy),
				float32(op.x1+dx), float32(op.y1+dy),
				float32(op.size), clr, true)
		}
	}
}
