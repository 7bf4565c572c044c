// Package termcanvas rasterizes the particle field and the pointer
// indicators into terminal cells through tcell.
package termcanvas

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/motion"
)

// Glyphs used for the different marks.
const (
	glyphSmall = '·'
	glyphDot   = '•'
	glyphLarge = '●'
	glyphDotP  = '+'
	glyphRing  = 'o'
)

// cellKind orders marks; a higher kind is never overwritten by a lower one
// within a frame.
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellLine
	cellParticle
	cellRing
	cellPointer
)

type cell struct {
	kind  cellKind
	glyph rune
	color motion.Color
	alpha float64
}

// Canvas is a motion.Canvas and motion.Indicators backed by a tcell screen.
// Each cell covers a fixed rectangle of world units.
type Canvas struct {
	screen     tcell.Screen
	cellW      float64
	cellH      float64
	cols, rows int
	buf        []cell
	bg         motion.Color

	// LineGain and DotGain scale mark opacity before blending with the
	// background.
	LineGain float64
	DotGain  float64
}

// New creates a canvas over screen. cellW and cellH are the world size of
// one cell.
func New(screen tcell.Screen, cellW, cellH float64) *Canvas {
	c := &Canvas{
		screen:   screen,
		cellW:    cellW,
		cellH:    cellH,
		LineGain: 8,
		DotGain:  2.5,
	}
	c.Sync()
	return c
}

// Sync re-reads the screen size and reallocates the cell buffer.
func (c *Canvas) Sync() {
	c.cols, c.rows = c.screen.Size()
	c.buf = make([]cell, c.cols*c.rows)
}

// Bounds returns the world size covered by the screen.
func (c *Canvas) Bounds() (width, height float64) {
	return float64(c.cols) * c.cellW, float64(c.rows) * c.cellH
}

// CellAt converts a cell position to the world coordinates of its center.
func (c *Canvas) CellAt(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * c.cellW, (float64(row) + 0.5) * c.cellH
}

// SetBackground sets the color cells blend toward.
func (c *Canvas) SetBackground(col motion.Color) {
	c.bg = col
}

// Clear empties every cell.
func (c *Canvas) Clear() {
	clear(c.buf)
}

// FillCircle marks the cell under the circle's center. Larger radii use a
// heavier glyph.
func (c *Canvas) FillCircle(x, y, radius float64, col motion.Color) {
	g := glyphSmall
	switch {
	case radius >= 1.5:
		g = glyphLarge
	case radius >= 1:
		g = glyphDot
	}
	cx, cy := c.toCell(x, y)
	c.plot(cx, cy, cellParticle, g, col, col.A*c.DotGain)
}

// StrokeLine marks the cells along the segment with a glyph matching its
// slope.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col motion.Color) {
	g := slopeGlyph((x1-x0)/c.cellW, (y1-y0)/c.cellH)
	a := col.A * c.LineGain
	ax, ay := c.toCell(x0, y0)
	bx, by := c.toCell(x1, y1)
	bresenham(ax, ay, bx, by, func(cx, cy int) {
		c.plot(cx, cy, cellLine, g, col, a)
	})
}

// PlaceDot marks the pointer position.
func (c *Canvas) PlaceDot(x, y float64) {
	cx, cy := c.toCell(x, y)
	c.plot(cx, cy, cellPointer, glyphDotP, motion.Color{R: 1, G: 1, B: 1, A: 1}, 1)
}

// PlaceRing marks the smoothed ring center. Size is ignored; opacity sets
// the glyph's strength.
func (c *Canvas) PlaceRing(x, y, size, opacity float64) {
	cx, cy := c.toCell(x, y)
	c.plot(cx, cy, cellRing, glyphRing, motion.Color{R: 1, G: 1, B: 1, A: 1}, opacity)
}

// Mark returns the glyph at a cell, or ' ' when empty or out of range.
func (c *Canvas) Mark(col, row int) rune {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return ' '
	}
	if k := c.buf[row*c.cols+col]; k.kind != cellEmpty {
		return k.glyph
	}
	return ' '
}

// Show writes the buffer to the screen and presents it.
func (c *Canvas) Show() {
	bg := toTcell(c.bg)
	base := tcell.StyleDefault.Background(bg)
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			k := c.buf[row*c.cols+col]
			if k.kind == cellEmpty {
				c.screen.SetContent(col, row, ' ', nil, base)
				continue
			}
			fg := motion.Blend(c.bg.WithAlpha(1), k.color.WithAlpha(1), math.Min(1, k.alpha))
			c.screen.SetContent(col, row, k.glyph, nil, base.Foreground(toTcell(fg)))
		}
	}
	c.screen.Show()
}

func (c *Canvas) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / c.cellW)), int(math.Floor(y / c.cellH))
}

func (c *Canvas) plot(x, y int, kind cellKind, g rune, col motion.Color, alpha float64) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	p := &c.buf[y*c.cols+x]
	if kind < p.kind || (kind == p.kind && alpha <= p.alpha) {
		return
	}
	*p = cell{kind: kind, glyph: g, color: col, alpha: alpha}
}

// slopeGlyph picks a line glyph for a direction in cell units. Screen Y
// grows downward.
func slopeGlyph(dx, dy float64) rune {
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case ady*2 < adx:
		return '-'
	case adx*2 < ady:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

// bresenham visits every cell on the segment from (x0, y0) to (x1, y1).
func bresenham(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func toTcell(c motion.Color) tcell.Color {
	return tcell.NewRGBColor(
		int32(math.Round(c.R*255)),
		int32(math.Round(c.G*255)),
		int32(math.Round(c.B*255)),
	)
}
