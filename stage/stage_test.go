package stage

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/phanxgames/motion"
)

const tick = 1.0 / 60

func newTestStage(t *testing.T) *Stage {
	t.Helper()
	opts := DefaultOptions(1280, 720)
	opts.Field.Rand = rand.New(rand.NewPCG(1, 2))
	s := New(opts, nil)
	s.Mount()
	t.Cleanup(s.Unmount)
	return s
}

func run(s *Stage, ticks int) {
	for range ticks {
		s.Step(tick)
	}
}

func TestStageRevealsAboveTheFold(t *testing.T) {
	s := newTestStage(t)
	run(s, 1)
	st, ok := s.ElementStyle("hero-title")
	if !ok {
		t.Fatal("hero-title missing")
	}
	if st.Opacity <= 0 || st.Opacity >= 1 {
		t.Errorf("opacity after one tick = %v, want mid-animation", st.Opacity)
	}
	run(s, 60)
	st, _ = s.ElementStyle("hero-title")
	if st.Opacity != 1 || st.Offset != (motion.Vec2{}) {
		t.Errorf("style after 1s = %+v, want fully visible", st)
	}
}

func TestStageBelowTheFoldStaysHidden(t *testing.T) {
	s := newTestStage(t)
	run(s, 60)
	st, _ := s.ElementStyle("about-heading")
	if st.Opacity != 0 {
		t.Errorf("about-heading opacity = %v before scrolling", st.Opacity)
	}
	if st.Offset.Y != 24 {
		t.Errorf("hidden offset = %v, want 24 below rest", st.Offset.Y)
	}

	s.InjectScroll(700)
	run(s, 60)
	st, _ = s.ElementStyle("about-heading")
	if st.Opacity != 1 {
		t.Errorf("about-heading opacity = %v after scrolling into view", st.Opacity)
	}
}

func TestStageOnceRevealSurvivesScrollBack(t *testing.T) {
	s := newTestStage(t)
	s.InjectScroll(700)
	run(s, 60)
	s.InjectScroll(-700)
	run(s, 60)
	if st, _ := s.ElementStyle("about-heading"); st.Opacity != 1 {
		t.Errorf("once reveal hid again: opacity %v", st.Opacity)
	}
}

func TestStageTracksSection(t *testing.T) {
	s := newTestStage(t)
	run(s, 1)
	if got := s.ActiveSection(); got != "hero" {
		t.Fatalf("ActiveSection = %q at top", got)
	}
	s.InjectScroll(1360) // skills fills the viewport
	run(s, 1)
	if got := s.ActiveSection(); got != "skills" {
		t.Errorf("ActiveSection = %q, want skills", got)
	}
}

func TestStageCounterAndBar(t *testing.T) {
	s := newTestStage(t)
	s.InjectScroll(700)
	run(s, 150)
	if n, ok := s.CounterValue("about-years"); !ok || n != 8 {
		t.Errorf("about-years = %d (ok %v), want 8", n, ok)
	}
	if w, _, _ := s.BarFill("skill-go"); w != 0 {
		t.Errorf("skill-go filled to %v while off screen", w)
	}

	s.InjectScroll(700)
	run(s, 120)
	w, m, ok := s.BarFill("skill-go")
	if !ok || math.Abs(w-92) > 1e-9 || m != 1 {
		t.Errorf("skill-go = (%v, %v, %v), want (92, 1, true)", w, m, ok)
	}
	if _, _, ok := s.BarFill("about-years"); ok {
		t.Error("BarFill accepted a counter id")
	}
}

func TestStageStaggerItemsRevealInOrder(t *testing.T) {
	s := newTestStage(t)
	s.InjectScroll(1960) // experience top
	run(s, 10)           // 0.15s elapsed: item 0 started, item 3 still waiting
	first, _ := s.ElementStyle("experience-list-0")
	last, _ := s.ElementStyle("experience-list-3")
	if first.Opacity <= 0 {
		t.Errorf("first item opacity = %v, want started", first.Opacity)
	}
	if last.Opacity != 0 {
		t.Errorf("last item opacity = %v, want still waiting", last.Opacity)
	}
	run(s, 60)
	last, _ = s.ElementStyle("experience-list-3")
	if last.Opacity != 1 {
		t.Errorf("last item opacity = %v after 1s", last.Opacity)
	}
}

func TestStageParticlesDrawEveryTick(t *testing.T) {
	s := newTestStage(t)
	run(s, 1)
	circles, _ := s.Particles().Counts()
	if circles != 60 {
		t.Errorf("circles = %d, want 60", circles)
	}
	run(s, 1)
	if circles, _ = s.Particles().Counts(); circles != 60 {
		t.Errorf("circles after second tick = %d; canvas not cleared", circles)
	}
}

func TestStageResizeMovesNavAndField(t *testing.T) {
	s := newTestStage(t)
	before, _ := s.NavBounds(navToggleID)
	s.Resize(1600, 900)
	after, _ := s.NavBounds(navToggleID)
	if after.X-before.X != 320 {
		t.Errorf("toggle moved by %v, want 320", after.X-before.X)
	}
	if w, h := s.Field().Bounds(); w != 1600 || h != 720 {
		t.Errorf("field bounds = %vx%v, want 1600x720", w, h)
	}
	if w, h := s.Viewport().Size(); w != 1600 || h != 900 {
		t.Errorf("viewport = %vx%v", w, h)
	}
}

func TestStageResizeRelaysOutDefaultPage(t *testing.T) {
	s := newTestStage(t)
	s.Resize(1600, 900)

	if r, _ := s.Viewport().Layout("about-years"); math.Abs(r.X-1040) > 1e-9 {
		t.Errorf("about-years x = %v, want 1040", r.X)
	}
	want := (1600 - 160 - 2*itemGap) / 3.0
	r, ok := s.Viewport().Layout("projects-grid-2")
	if !ok || r.Width != want {
		t.Errorf("projects-grid-2 width = %v, want %v", r.Width, want)
	}
	if e := s.byID["projects-grid-2"]; e.doc != r {
		t.Errorf("element rect %v does not match layout %v", e.doc, r)
	}
	for _, tg := range s.targets {
		if tg.elem != nil && tg.bounds != tg.elem.doc {
			t.Errorf("target %s bounds %v, want %v", tg.id, tg.bounds, tg.elem.doc)
		}
	}
}

func TestStageResizeKeepsCustomPage(t *testing.T) {
	opts := DefaultOptions(1280, 720)
	opts.Page = Page{Sections: []Section{{ID: "only", Height: 800, Blocks: []Block{
		{ID: "box", Kind: BlockReveal, Bounds: motion.Rect{X: 40, Y: 40, Width: 200, Height: 100}},
	}}}}
	s := New(opts, nil)
	s.Resize(1600, 900)
	if r, _ := s.Viewport().Layout("box"); r.X != 40 || r.Width != 200 {
		t.Errorf("custom block moved to %v", r)
	}
}

func TestStageUnmountReleasesEverything(t *testing.T) {
	opts := DefaultOptions(1280, 720)
	s := New(opts, nil)
	s.Mount()
	run(s, 5)
	s.Unmount()
	if n := s.Scheduler().Pending(); n != 0 {
		t.Errorf("pending frames after unmount = %d", n)
	}
	if n := s.Viewport().Live(); n != 0 {
		t.Errorf("live observers after unmount = %d", n)
	}
	frames := s.Frames()
	s.InjectMove(10, 10)
	run(s, 3)
	if s.Follower().Hovering() {
		t.Error("follower reacted after unmount")
	}
	if s.Frames() != frames+3 {
		t.Errorf("frames = %d", s.Frames())
	}
}

func TestStageThemeSubscriptionReleased(t *testing.T) {
	theme := motion.NewDefaultThemeStore(nil)
	s := New(DefaultOptions(800, 600), theme)
	s.Mount()
	s.Unmount()
	calls := 0
	theme.Subscribe(func(bool) { calls++ })
	if err := theme.Toggle(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want only the test's listener", calls)
	}
}
