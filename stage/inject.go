package stage

type syntheticKind uint8

const (
	synthPointer syntheticKind = iota
	synthScroll
	synthTheme
)

// syntheticEvent is a single injected input event. Pointer coordinates are
// in screen space, identical to real mouse input.
type syntheticEvent struct {
	kind    syntheticKind
	x, y    float64
	pressed bool
	dy      float64
}

// InjectMove queues a pointer move to the given screen position with the
// button up. The event is consumed on the next tick.
func (s *Stage) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthPointer, x: x, y: y})
}

// InjectPress queues a button press at the given screen position.
func (s *Stage) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthPointer, x: x, y: y, pressed: true})
}

// InjectRelease queues a button release at the given screen position.
func (s *Stage) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthPointer, x: x, y: y})
}

// InjectClick queues a press followed by a release at the same position.
// Consumes two ticks.
func (s *Stage) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectScroll queues an immediate scroll by dy document units.
func (s *Stage) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthScroll, dy: dy})
}

// InjectToggleTheme queues a theme toggle.
func (s *Stage) InjectToggleTheme() {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthTheme})
}

// InjectPath queues pointer moves from (fromX, fromY) to (toX, toY), one per
// tick over the given number of frames (minimum 1).
func (s *Stage) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// Pending returns the number of queued injected events.
func (s *Stage) Pending() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and applies it.
// Returns true if an event was consumed (real input should be skipped).
func (s *Stage) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case synthPointer:
		s.processPointer(evt.x, evt.y, evt.pressed)
	case synthScroll:
		s.view.ScrollBy(evt.dy)
	case synthTheme:
		s.ToggleTheme()
	}
	return true
}
