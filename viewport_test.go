package motion

import (
	"testing"

	"github.com/tanema/gween/ease"
)

type batchRecorder struct {
	batches [][]IntersectionEntry
}

func (r *batchRecorder) fn(es []IntersectionEntry) {
	r.batches = append(r.batches, append([]IntersectionEntry(nil), es...))
}

func (r *batchRecorder) last() IntersectionEntry {
	b := r.batches[len(r.batches)-1]
	return b[len(b)-1]
}

func newTestViewport() *Viewport {
	v := NewViewport(800, 600)
	v.SetLayout("hero", Rect{0, 0, 800, 600})
	v.SetLayout("about", Rect{0, 600, 800, 600})
	v.SetLayout("contact", Rect{0, 1200, 800, 600})
	return v
}

func TestViewportInitialReport(t *testing.T) {
	v := newTestViewport()
	rec := &batchRecorder{}
	v.Observe(WatchOptions{Threshold: 0.5}, rec.fn, "hero", "about")

	v.Flush()
	if len(rec.batches) != 1 || len(rec.batches[0]) != 2 {
		t.Fatalf("batches = %v, want one batch of two", rec.batches)
	}
	hero, about := rec.batches[0][0], rec.batches[0][1]
	if !hero.Intersecting || hero.Ratio != 1 {
		t.Errorf("hero = %+v, want fully visible", hero)
	}
	if about.Intersecting || about.Ratio != 0 {
		t.Errorf("about = %+v, want hidden", about)
	}

	v.Flush()
	if len(rec.batches) != 1 {
		t.Error("unchanged state produced another batch")
	}
}

func TestViewportThresholdCrossing(t *testing.T) {
	v := newTestViewport()
	rec := &batchRecorder{}
	v.Observe(WatchOptions{Threshold: 0.5}, rec.fn, "about")
	v.Flush()

	v.SetScroll(250) // about is 250/600 visible
	v.Flush()
	if len(rec.batches) != 1 {
		t.Fatal("below threshold should not report")
	}

	v.SetScroll(350) // 350/600 visible
	v.Flush()
	e := rec.last()
	if !e.Intersecting {
		t.Fatalf("about = %+v, want intersecting", e)
	}
	assertNear(t, "ratio", e.Ratio, 350.0/600.0)
}

func TestViewportNegativeMarginDelaysTrigger(t *testing.T) {
	v := newTestViewport()
	rec := &batchRecorder{}
	v.Observe(WatchOptions{Margin: -80}, rec.fn, "about")
	v.Flush()

	v.SetScroll(50) // 50 units of about on screen, but inside the 80 margin
	v.Flush()
	if rec.last().Intersecting {
		t.Fatal("element inside the margin band reported intersecting")
	}

	v.SetScroll(100)
	v.Flush()
	if !rec.last().Intersecting {
		t.Error("element 20 units past the margin should intersect")
	}
}

func TestViewportUnknownLayoutSkipped(t *testing.T) {
	v := newTestViewport()
	rec := &batchRecorder{}
	v.Observe(WatchOptions{}, rec.fn, "missing")
	v.Flush()
	if len(rec.batches) != 0 {
		t.Errorf("batches = %v, want none", rec.batches)
	}
}

func TestViewportScrollClamps(t *testing.T) {
	v := newTestViewport()
	v.SetScroll(-10)
	assertNear(t, "scroll", v.ScrollY(), 0)
	v.SetScroll(5000)
	assertNear(t, "scroll", v.ScrollY(), 1200) // doc 1800 - view 600
	v.ScrollBy(-200)
	assertNear(t, "scroll", v.ScrollY(), 1000)
}

func TestViewportScrollToAnimates(t *testing.T) {
	v := newTestViewport()
	if !v.ScrollToElement("contact", 1, ease.Linear) {
		t.Fatal("ScrollToElement returned false")
	}
	if !v.Scrolling() {
		t.Fatal("expected scroll animation")
	}
	v.Update(0.5)
	assertNearTol(t, "half-way scroll", v.ScrollY(), 600, 1)
	v.Update(0.5)
	assertNearTol(t, "final scroll", v.ScrollY(), 1200, 0.5)
	if v.Scrolling() {
		t.Error("animation should be finished")
	}
	if v.ScrollToElement("nope", 1, ease.Linear) {
		t.Error("unknown element should return false")
	}
}

func TestViewportScrolledFlag(t *testing.T) {
	v := newTestViewport()
	if v.Scrolled() {
		t.Error("Scrolled at top")
	}
	v.SetScroll(40)
	if v.Scrolled() {
		t.Error("Scrolled at exactly the threshold")
	}
	v.SetScroll(41)
	if !v.Scrolled() {
		t.Error("not Scrolled past the threshold")
	}
}

func TestViewportDisconnectStopsReports(t *testing.T) {
	v := newTestViewport()
	rec := &batchRecorder{}
	obs := v.Observe(WatchOptions{}, rec.fn, "hero")
	obs.Disconnect()
	v.Flush()
	if len(rec.batches) != 0 || v.Live() != 0 {
		t.Errorf("batches = %d, live = %d after Disconnect", len(rec.batches), v.Live())
	}
}

func TestViewportResizeChangesVisibility(t *testing.T) {
	v := newTestViewport()
	rec := &batchRecorder{}
	v.Observe(WatchOptions{}, rec.fn, "about")
	v.Flush()
	if rec.last().Intersecting {
		t.Fatal("about visible before resize")
	}
	v.Resize(800, 700)
	v.Flush()
	if !rec.last().Intersecting {
		t.Error("taller viewport should reveal about")
	}
}

func TestIntersectZeroAreaElement(t *testing.T) {
	e := intersect("pt", Rect{10, 10, 0, 0}, Rect{0, 0, 100, 100}, 0)
	if !e.Intersecting || e.Ratio != 1 {
		t.Errorf("zero-area inside = %+v", e)
	}
	e = intersect("pt", Rect{200, 10, 0, 0}, Rect{0, 0, 100, 100}, 0)
	if e.Intersecting {
		t.Errorf("zero-area outside = %+v", e)
	}
}
