package motion

import (
	"math/rand/v2"
	"testing"
)

type indicatorRecorder struct {
	dots  int
	rings int
	dot   Vec2
	ring  Vec2
	size  float64
	alpha float64
}

func (r *indicatorRecorder) PlaceDot(x, y float64) {
	r.dots++
	r.dot = Vec2{x, y}
}

func (r *indicatorRecorder) PlaceRing(x, y, size, opacity float64) {
	r.rings++
	r.ring = Vec2{x, y}
	r.size = size
	r.alpha = opacity
}

func TestSmoothMonotonicConvergence(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		ring := Vec2{rng.Float64()*2000 - 1000, rng.Float64()*2000 - 1000}
		dot := Vec2{rng.Float64()*2000 - 1000, rng.Float64()*2000 - 1000}
		before := dot.Sub(ring).Len()
		after := dot.Sub(Smooth(ring, dot, 0.12)).Len()
		if after >= before {
			t.Fatalf("distance %v -> %v did not shrink", before, after)
		}
	}
}

func TestSmoothFixedPoint(t *testing.T) {
	p := Vec2{42, -7}
	if got := Smooth(p, p, 0.12); got != p {
		t.Errorf("Smooth(p, p) = %v, want %v", got, p)
	}
}

func TestSmoothTinyGapSnaps(t *testing.T) {
	ring := Vec2{1e6, 1e6}
	dot := Vec2{1e6 + 1e-10, 1e6}
	got := Smooth(ring, dot, 0.12)
	if got.Sub(dot).Len() >= dot.Sub(ring).Len() {
		t.Errorf("tiny gap did not shrink: %v", got)
	}
}

func TestSmoothRepeatedReachesDot(t *testing.T) {
	ring := Vec2{0, 0}
	dot := Vec2{300, 200}
	prev := dot.Sub(ring).Len()
	for i := 0; i < 2000 && ring != dot; i++ {
		ring = Smooth(ring, dot, 0.12)
		d := dot.Sub(ring).Len()
		if d >= prev && d != 0 {
			t.Fatalf("step %d: distance %v did not shrink from %v", i, d, prev)
		}
		prev = d
	}
	if ring != dot {
		t.Errorf("ring = %v, never reached dot", ring)
	}
}

func TestFollowerNoWritesBeforePointer(t *testing.T) {
	s := NewFrameScheduler()
	rec := &indicatorRecorder{}
	p := NewPointerFollower(DefaultFollowerConfig())
	p.Mount(s, rec)

	for range 5 {
		s.Advance(1.0 / 60)
	}
	if rec.dots != 0 || rec.rings != 0 {
		t.Errorf("writes before first pointer event: dots=%d rings=%d", rec.dots, rec.rings)
	}
	if _, ok := p.Ring(); ok {
		t.Error("Ring reported a position before any pointer event")
	}
	if s.Pending() != 1 {
		t.Errorf("loop should keep running; pending = %d", s.Pending())
	}
}

func TestFollowerRingLagsDot(t *testing.T) {
	s := NewFrameScheduler()
	rec := &indicatorRecorder{}
	p := NewPointerFollower(DefaultFollowerConfig())
	p.Mount(s, rec)

	p.Move(100, 100)
	s.Advance(1.0 / 60)
	if rec.ring != (Vec2{100, 100}) {
		t.Errorf("first move should seed ring at the dot, got %v", rec.ring)
	}

	p.Move(200, 100)
	s.Advance(1.0 / 60)
	if rec.dot != (Vec2{200, 100}) {
		t.Errorf("dot = %v, want raw pointer", rec.dot)
	}
	assertNear(t, "ring x", rec.ring.X, 112)
	assertNear(t, "lag", p.Lag(), 88)

	prev := p.Lag()
	for range 30 {
		s.Advance(1.0 / 60)
		if p.Lag() >= prev && prev != 0 {
			t.Fatalf("lag grew: %v -> %v", prev, p.Lag())
		}
		prev = p.Lag()
	}
}

func TestFollowerHoverResizesWithoutMovingRing(t *testing.T) {
	s := NewFrameScheduler()
	rec := &indicatorRecorder{}
	cfg := DefaultFollowerConfig()
	p := NewPointerFollower(cfg)
	p.Mount(s, rec)
	p.Move(50, 50)
	s.Advance(1.0 / 60)

	p.Enter()
	if !p.Hovering() {
		t.Fatal("Enter did not set hovering")
	}
	ring, _ := p.Ring()
	for range 120 {
		s.Advance(1.0 / 60)
	}
	if got, _ := p.Ring(); got != ring {
		t.Errorf("hover moved the ring: %v -> %v", ring, got)
	}
	size, alpha := p.RingAppearance()
	assertNearTol(t, "active size", size, cfg.ActiveSize, 0.01)
	assertNearTol(t, "active opacity", alpha, cfg.ActiveOpacity, 0.01)

	p.Leave()
	for range 120 {
		s.Advance(1.0 / 60)
	}
	size, alpha = p.RingAppearance()
	assertNearTol(t, "rest size", size, cfg.RestSize, 0.01)
	assertNearTol(t, "rest opacity", alpha, cfg.RestOpacity, 0.01)
}

func TestFollowerUnmountCancelsLoop(t *testing.T) {
	s := NewFrameScheduler()
	rec := &indicatorRecorder{}
	p := NewPointerFollower(DefaultFollowerConfig())
	p.Mount(s, rec)
	p.Move(10, 10)
	s.Advance(1.0 / 60)

	n := rec.rings
	p.Unmount()
	p.Move(500, 500)
	p.Enter()
	for range 10 {
		s.Advance(1.0 / 60)
	}
	if rec.rings != n {
		t.Errorf("ring writes after unmount = %d", rec.rings-n)
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
	if p.Hovering() {
		t.Error("hover changed after unmount")
	}
}

func TestFollowerInvalidSmoothingFallsBack(t *testing.T) {
	cfg := DefaultFollowerConfig()
	cfg.Smoothing = 1.5
	p := NewPointerFollower(cfg)
	assertNear(t, "smoothing", p.cfg.Smoothing, 0.12)
}

func TestFollowerHoverTransitionIndependentOfFrameRate(t *testing.T) {
	sizeAfter := func(fps, frames int) float64 {
		s := NewFrameScheduler()
		p := NewPointerFollower(DefaultFollowerConfig())
		p.Mount(s, &indicatorRecorder{})
		p.Move(50, 50)
		p.Enter()
		for range frames {
			s.Advance(1 / float64(fps))
		}
		size, _ := p.RingAppearance()
		return size
	}
	at60 := sizeAfter(60, 15)
	at30 := sizeAfter(30, 8)
	if at60 >= DefaultFollowerConfig().ActiveSize-0.5 {
		t.Fatalf("size after 0.25s = %v, transition already settled", at60)
	}
	// 15 frames at 60fps and 8 at 30fps differ by 1/60s.
	assertNearTol(t, "size at 30fps", at30, sizeAfter(60, 16), 0.01)
	if at30 <= at60 {
		t.Errorf("30fps size %v should lead 60fps size %v", at30, at60)
	}
}
