package motion

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrolledThreshold is the scroll offset past which the page counts as
// scrolled (the navigation bar switches to its solid style).
const scrolledThreshold = 40

// Viewport is the geometry-backed VisibilityWatcher. It holds element layout
// rectangles in document coordinates and a vertical scroll offset, and
// computes intersections on Flush.
type Viewport struct {
	width, height float64
	docHeight     float64
	scrollY       float64

	layout map[string]Rect
	set    watchSet

	scrollTween *gween.Tween
}

// NewViewport creates a viewport of the given screen size.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{
		width:  width,
		height: height,
		layout: make(map[string]Rect),
	}
}

// Observe registers fn for the given element ids. The first Flush after
// observing reports the current state of every id that has a layout.
func (v *Viewport) Observe(opts WatchOptions, fn EntryFunc, ids ...string) Observer {
	return v.set.add(opts, fn, ids)
}

// Live returns the number of connected observers.
func (v *Viewport) Live() int {
	return len(v.set.watches)
}

// Resize sets the screen size.
func (v *Viewport) Resize(width, height float64) {
	v.width, v.height = width, height
	v.clampScroll()
}

// Size returns the screen size.
func (v *Viewport) Size() (width, height float64) {
	return v.width, v.height
}

// SetLayout places an element in document coordinates. The document height
// grows to contain it.
func (v *Viewport) SetLayout(id string, r Rect) {
	v.layout[id] = r
	if bottom := r.Y + r.Height; bottom > v.docHeight {
		v.docHeight = bottom
	}
}

// RemoveLayout forgets an element's placement. Observers keep the id but
// receive no entries for it until it is placed again.
func (v *Viewport) RemoveLayout(id string) {
	delete(v.layout, id)
}

// Layout returns an element's document rectangle.
func (v *Viewport) Layout(id string) (Rect, bool) {
	r, ok := v.layout[id]
	return r, ok
}

// ScrollY returns the current vertical scroll offset.
func (v *Viewport) ScrollY() float64 {
	return v.scrollY
}

// SetScroll jumps to offset y, cancelling any scroll animation.
func (v *Viewport) SetScroll(y float64) {
	v.scrollTween = nil
	v.scrollY = y
	v.clampScroll()
}

// ScrollBy moves the scroll offset by dy, cancelling any scroll animation.
func (v *Viewport) ScrollBy(dy float64) {
	v.SetScroll(v.scrollY + dy)
}

// ScrollTo animates the scroll offset to y over duration seconds.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = v.clamp(y)
	if duration <= 0 {
		v.SetScroll(y)
		return
	}
	v.scrollTween = gween.New(float32(v.scrollY), float32(y), duration, easeFn)
}

// ScrollToElement animates so the element's top aligns with the viewport
// top. Unknown ids are ignored.
func (v *Viewport) ScrollToElement(id string, duration float32, easeFn ease.TweenFunc) bool {
	r, ok := v.layout[id]
	if !ok {
		return false
	}
	v.ScrollTo(r.Y, duration, easeFn)
	return true
}

// Scrolling reports whether a scroll animation is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// Scrolled reports whether the page is scrolled past the navigation
// threshold.
func (v *Viewport) Scrolled() bool {
	return v.scrollY > scrolledThreshold
}

// Update advances the scroll animation by dt seconds.
func (v *Viewport) Update(dt float64) {
	if v.scrollTween == nil {
		return
	}
	val, done := v.scrollTween.Update(float32(dt))
	v.scrollY = float64(val)
	if done {
		v.scrollTween = nil
	}
	v.clampScroll()
}

// Visible returns the viewport rectangle in document coordinates.
func (v *Viewport) Visible() Rect {
	return Rect{X: 0, Y: v.scrollY, Width: v.width, Height: v.height}
}

// ToScreen converts a document rectangle to screen coordinates.
func (v *Viewport) ToScreen(r Rect) Rect {
	r.Y -= v.scrollY
	return r
}

// ToDocument converts a screen point to document coordinates.
func (v *Viewport) ToDocument(x, y float64) (float64, float64) {
	return x, y + v.scrollY
}

// Flush computes the visibility of every observed element and delivers, per
// observer, one batch of the entries whose intersecting state changed since
// the last report.
func (v *Viewport) Flush() {
	view := v.Visible()
	for _, w := range v.set.snapshot() {
		if !w.connected {
			continue
		}
		root := view.Inset(-w.opts.Margin)
		var batch []IntersectionEntry
		for _, id := range w.ids {
			r, ok := v.layout[id]
			if !ok {
				continue
			}
			e := intersect(id, r, root, w.opts.Threshold)
			if prev, known := w.reported[id]; known && prev == e.Intersecting {
				continue
			}
			w.reported[id] = e.Intersecting
			batch = append(batch, e)
		}
		w.deliver(batch)
	}
}

// intersect computes the entry for element r against root.
func intersect(id string, r, root Rect, threshold float64) IntersectionEntry {
	e := IntersectionEntry{ID: id}
	overlap, touching := r.Intersection(root)
	if !touching {
		return e
	}
	area := r.Area()
	if area <= 0 {
		// Degenerate elements are fully visible when their point is inside.
		e.Ratio = 1
	} else {
		e.Ratio = clamp01(overlap.Area() / area)
	}
	if threshold <= 0 {
		e.Intersecting = e.Ratio > 0 || area <= 0
	} else {
		e.Intersecting = e.Ratio >= threshold
	}
	return e
}

func (v *Viewport) clamp(y float64) float64 {
	maxY := math.Max(0, v.docHeight-v.height)
	return math.Max(0, math.Min(y, maxY))
}

func (v *Viewport) clampScroll() {
	v.scrollY = v.clamp(v.scrollY)
}
