package termcanvas

import (
	"math/rand/v2"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/motion"
)

func newSimCanvas(t *testing.T, cols, rows int) (*Canvas, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return New(screen, 10, 20), screen
}

var accent = motion.Color{R: 0, G: 0.6, B: 0.8, A: 0.3}

func TestBounds(t *testing.T) {
	c, _ := newSimCanvas(t, 40, 20)
	if w, h := c.Bounds(); w != 400 || h != 400 {
		t.Errorf("Bounds = %vx%v, want 400x400", w, h)
	}
	if x, y := c.CellAt(2, 3); x != 25 || y != 70 {
		t.Errorf("CellAt(2, 3) = (%v, %v)", x, y)
	}
}

func TestFillCircleGlyphs(t *testing.T) {
	c, _ := newSimCanvas(t, 40, 20)
	c.FillCircle(15, 25, 0.5, accent)
	c.FillCircle(25, 25, 1.2, accent)
	c.FillCircle(35, 25, 2, accent)
	for col, want := range map[int]rune{1: glyphSmall, 2: glyphDot, 3: glyphLarge} {
		if got := c.Mark(col, 1); got != want {
			t.Errorf("Mark(%d, 1) = %q, want %q", col, got, want)
		}
	}
}

func TestStrokeLineCoversCells(t *testing.T) {
	c, _ := newSimCanvas(t, 40, 20)
	c.StrokeLine(5, 10, 95, 10, 0.5, accent)
	for col := 0; col <= 9; col++ {
		if got := c.Mark(col, 0); got != '-' {
			t.Errorf("Mark(%d, 0) = %q, want '-'", col, got)
		}
	}
	if got := c.Mark(10, 0); got != ' ' {
		t.Errorf("line overran its end: %q", got)
	}

	c.Clear()
	c.StrokeLine(5, 10, 5, 190, 0.5, accent)
	if got := c.Mark(0, 5); got != '|' {
		t.Errorf("vertical line glyph = %q", got)
	}
	c.Clear()
	c.StrokeLine(5, 10, 95, 190, 0.5, accent)
	if got := c.Mark(0, 0); got != '\\' {
		t.Errorf("down-right diagonal glyph = %q", got)
	}
}

func TestMarkPriority(t *testing.T) {
	c, _ := newSimCanvas(t, 40, 20)
	c.FillCircle(15, 10, 2, accent)
	c.StrokeLine(5, 10, 95, 10, 0.5, accent)
	if got := c.Mark(1, 0); got != glyphLarge {
		t.Errorf("line overwrote a particle: %q", got)
	}
	c.PlaceRing(15, 10, 32, 0.5)
	c.PlaceDot(15, 10)
	if got := c.Mark(1, 0); got != glyphDotP {
		t.Errorf("pointer dot should win, got %q", got)
	}
}

func TestOutOfRangeIgnored(t *testing.T) {
	c, _ := newSimCanvas(t, 4, 4)
	c.FillCircle(-5, 10, 2, accent)
	c.FillCircle(1000, 10, 2, accent)
	c.StrokeLine(-100, -100, 1000, 1000, 0.5, accent)
	if got := c.Mark(-1, 0); got != ' ' {
		t.Errorf("Mark out of range = %q", got)
	}
}

func TestShowWritesScreen(t *testing.T) {
	c, screen := newSimCanvas(t, 20, 10)
	c.SetBackground(motion.Color{R: 0.04, G: 0.04, B: 0.06, A: 1})
	c.FillCircle(15, 25, 2, accent)
	c.Show()

	mainc, _, _, _ := screen.GetContent(1, 1)
	if mainc != glyphLarge {
		t.Errorf("screen cell = %q, want %q", mainc, glyphLarge)
	}
	mainc, _, _, _ = screen.GetContent(5, 5)
	if mainc != ' ' {
		t.Errorf("empty cell = %q", mainc)
	}
}

func TestParticleFieldOnTerminal(t *testing.T) {
	c, _ := newSimCanvas(t, 80, 24)
	cfg := motion.DefaultFieldConfig()
	cfg.Rand = rand.New(rand.NewPCG(9, 9))
	f := motion.NewParticleField(cfg)
	s := motion.NewFrameScheduler()
	w, h := c.Bounds()
	f.Mount(s, c, w, h)
	defer f.Unmount()

	s.Advance(1.0 / 60)
	marks := 0
	for row := 0; row < 24; row++ {
		for col := 0; col < 80; col++ {
			if c.Mark(col, row) != ' ' {
				marks++
			}
		}
	}
	if marks == 0 {
		t.Error("field drew nothing")
	}
	c.Show()
}

func TestResizeSync(t *testing.T) {
	c, screen := newSimCanvas(t, 10, 10)
	screen.SetSize(30, 5)
	c.Sync()
	if w, h := c.Bounds(); w != 300 || h != 100 {
		t.Errorf("Bounds after resize = %vx%v", w, h)
	}
}
