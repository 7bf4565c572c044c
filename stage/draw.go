package stage

import (
	"fmt"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/motion"
)

const dotRadius = 3

// Draw paints the page, the particle field, the navigation bar and the
// cursor onto screen.
func (s *Stage) Draw(screen *ebiten.Image) {
	pal := s.theme.Palette()
	screen.Fill(pal.Background.RGBA())

	// The field's surface is the first section, which scrolls with the page.
	s.particles.Replay(screen, 0, -s.view.ScrollY())

	for _, e := range s.elements {
		s.drawElement(screen, e, pal)
	}
	s.drawNav(screen, pal)
	s.drawCursor(screen, pal)

	if s.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f  y: %.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), s.view.ScrollY()), 4, navHeight+4)
	}
	s.flushScreenshots(screen)
}

func (s *Stage) drawElement(screen *ebiten.Image, e *element, pal motion.Palette) {
	r := e.screenRect(s.view)
	if r.Y > s.opts.Height || r.Y+r.Height < 0 {
		return
	}
	switch e.kind {
	case BlockBar:
		fillRect(screen, r, pal.Text.WithAlpha(0.1))
		fill := r
		fill.Width = r.Width * e.width / 100
		fillRect(screen, fill, pal.Accent)
		if e.marker > 0 {
			vector.FillCircle(screen, float32(fill.X+fill.Width), float32(r.Y+r.Height/2),
				float32(r.Height), pal.Accent.WithAlpha(e.marker).RGBA(), true)
		}
		ebitenutil.DebugPrintAt(screen, e.label, int(r.X), int(r.Y)-18)
	case BlockCounter:
		fillRect(screen, r, pal.Accent.WithAlpha(0.08))
		ebitenutil.DebugPrintAt(screen, strconv.Itoa(e.count)+"+ "+e.label, int(r.X)+8, int(r.Y)+8)
	default:
		a := e.style.Opacity
		if a <= 0 {
			return
		}
		base := pal.Text.WithAlpha(0.06 * a)
		if s.pointer.hover != nil && s.pointer.hover.elem == e {
			base = pal.Accent.WithAlpha(0.18 * a)
		}
		fillRect(screen, r, base)
		if a >= 0.5 {
			ebitenutil.DebugPrintAt(screen, e.label, int(r.X)+8, int(r.Y)+8)
		}
	}
}

func (s *Stage) drawNav(screen *ebiten.Image, pal motion.Palette) {
	if s.view.Scrolled() {
		fillRect(screen, motion.Rect{Width: s.opts.Width, Height: navHeight}, pal.Background.WithAlpha(0.9))
	}
	active := s.tracker.Active()
	for _, t := range s.nav {
		r := t.bounds
		if t.id == navToggleID {
			label := "L"
			if s.theme.Dark() {
				label = "D"
			}
			vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
				1, pal.Text.WithAlpha(0.4).RGBA(), false)
			ebitenutil.DebugPrintAt(screen, label, int(r.X+r.Width/2)-3, int(r.Y)+8)
			continue
		}
		if t.id == active {
			fillRect(screen, motion.Rect{X: r.X, Y: r.Y + r.Height - 2, Width: r.Width, Height: 2}, pal.Accent)
		}
		ebitenutil.DebugPrintAt(screen, t.id, int(r.X)+8, int(r.Y)+8)
	}
}

func (s *Stage) drawCursor(screen *ebiten.Image, pal motion.Palette) {
	if !s.cursor.placed {
		return
	}
	c := s.cursor
	vector.FillCircle(screen, float32(c.dot.X), float32(c.dot.Y), dotRadius, pal.Cursor.RGBA(), true)
	vector.StrokeCircle(screen, float32(c.ring.X), float32(c.ring.Y), float32(c.size/2), 1,
		pal.Cursor.WithAlpha(c.opacity).RGBA(), true)
}

func fillRect(dst *ebiten.Image, r motion.Rect, c motion.Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.RGBA(), false)
}
