package stage

import "github.com/phanxgames/motion"

// element is the runtime paint state of one page block or stagger item.
// It is the StyleSink its controller writes to.
type element struct {
	id    string
	kind  BlockKind
	label string
	doc   motion.Rect // document coordinates
	style motion.Style

	hoverable bool

	// Counter and bar output.
	count  int
	width  float64
	marker float64
}

func (e *element) ApplyStyle(s motion.Style) { e.style = s }

// screenRect returns where the element paints this frame, including its
// reveal offset.
func (e *element) screenRect(v *motion.Viewport) motion.Rect {
	r := v.ToScreen(e.doc)
	r.X += e.style.Offset.X
	r.Y += e.style.Offset.Y
	return r
}

// cursorMarks receives the pointer follower's output for drawing.
type cursorMarks struct {
	dot     motion.Vec2
	ring    motion.Vec2
	size    float64
	opacity float64
	placed  bool
}

func (c *cursorMarks) PlaceDot(x, y float64) {
	c.dot = motion.Vec2{X: x, Y: y}
	c.placed = true
}

func (c *cursorMarks) PlaceRing(x, y, size, opacity float64) {
	c.ring = motion.Vec2{X: x, Y: y}
	c.size = size
	c.opacity = opacity
}
