package stage

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/motion"
)

// --- Navigation layout ---

const (
	navHeight    = 56
	navItemWidth = 104
	navItemGap   = 8
	navToggleID  = "theme-toggle"
)

// target is a hit-testable region. Fixed targets are in screen coordinates;
// the rest are in document coordinates and scroll with the page.
type target struct {
	id     string
	bounds motion.Rect
	fixed  bool
	elem   *element
	click  func()
}

func (t *target) screenRect(v *motion.Viewport) motion.Rect {
	if t.fixed {
		return t.bounds
	}
	if t.elem != nil {
		return t.elem.screenRect(v)
	}
	return v.ToScreen(t.bounds)
}

// buildNav creates one fixed item per section plus the theme toggle.
func (s *Stage) buildNav() {
	for _, id := range s.page.SectionIDs() {
		s.nav = append(s.nav, &target{id: id, fixed: true, click: func() { s.ScrollToSection(id) }})
	}
	s.nav = append(s.nav, &target{id: navToggleID, fixed: true, click: s.ToggleTheme})
	s.layoutNav()
}

// layoutNav right-aligns the navigation items in the top bar.
func (s *Stage) layoutNav() {
	x := s.opts.Width - 24
	for i := len(s.nav) - 1; i >= 0; i-- {
		w := float64(navItemWidth)
		if s.nav[i].id == navToggleID {
			w = 40
		}
		x -= w
		s.nav[i].bounds = motion.Rect{X: x, Y: 12, Width: w, Height: navHeight - 24}
		x -= navItemGap
	}
}

// NavBounds returns the screen rectangle of a navigation item or of the
// theme toggle ("theme-toggle").
func (s *Stage) NavBounds(id string) (motion.Rect, bool) {
	for _, t := range s.nav {
		if t.id == id {
			return t.bounds, true
		}
	}
	return motion.Rect{}, false
}

// --- Pointer events ---

// EventType identifies a pointer event fired by the stage.
type EventType uint8

const (
	EventEnter EventType = iota
	EventLeave
	EventClick
	eventTypeCount
)

// PointerEvent carries the target id and screen position of a pointer event.
type PointerEvent struct {
	Type   EventType
	Target string
	X, Y   float64
}

type pointerHandler struct {
	id uint32
	fn func(PointerEvent)
}

type handlerRegistry struct {
	byType [eventTypeCount][]pointerHandler
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

// On registers a callback for pointer events of the given type.
func (s *Stage) On(event EventType, fn func(PointerEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.byType[event] = append(s.handlers.byType[event], pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

func (s *Stage) fire(event EventType, t *target, x, y float64) {
	evt := PointerEvent{Type: event, Target: t.id, X: x, Y: y}
	for _, h := range s.handlers.byType[event] {
		h.fn(evt)
	}
}

// --- Pointer state machine ---

type pointerState struct {
	seen  bool
	down  bool
	x, y  float64
	hover *target // for enter/leave
	press *target // target under the pointer at press time
}

// processInput reads the mouse, wheel and keyboard from ebiten.
func (s *Stage) processInput() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processPointer(float64(mx), float64(my), pressed)

	if _, dy := ebiten.Wheel(); dy != 0 {
		s.view.ScrollBy(-dy * s.opts.WheelSpeed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		s.ToggleTheme()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		s.view.ScrollTo(0, float32(s.opts.ScrollDuration), motion.EaseOutExpoLike)
	}
}

// processPointer runs the pointer state machine for the single mouse
// pointer. Coordinates are in screen space.
func (s *Stage) processPointer(x, y float64, pressed bool) {
	ps := &s.pointer
	if !s.mounted {
		return
	}
	moved := !ps.seen || x != ps.x || y != ps.y
	ps.seen = true
	ps.x, ps.y = x, y
	if moved {
		s.follower.Move(x, y)
	}

	hit := s.hitTest(x, y)
	if hit != ps.hover {
		if ps.hover != nil {
			s.fire(EventLeave, ps.hover, x, y)
		}
		if hit != nil {
			s.fire(EventEnter, hit, x, y)
			s.follower.Enter()
		} else {
			s.follower.Leave()
		}
		ps.hover = hit
	}

	if pressed && !ps.down {
		ps.down = true
		ps.press = hit
	} else if !pressed && ps.down {
		if ps.press != nil && ps.press == hit {
			s.fire(EventClick, hit, x, y)
			if hit.click != nil {
				hit.click()
			}
		}
		ps.down = false
		ps.press = nil
	}
}

// hitTest returns the topmost target under the screen point. The
// navigation bar covers the page beneath it.
func (s *Stage) hitTest(x, y float64) *target {
	for i := len(s.nav) - 1; i >= 0; i-- {
		if s.nav[i].bounds.Contains(x, y) {
			return s.nav[i]
		}
	}
	if y < navHeight {
		return nil
	}
	for i := len(s.targets) - 1; i >= 0; i-- {
		t := s.targets[i]
		if t.elem != nil && t.elem.style.Opacity <= 0 {
			continue
		}
		if t.screenRect(s.view).Contains(x, y) {
			return t
		}
	}
	return nil
}
