package stage

import (
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/phanxgames/motion"
)

// Options configures a Stage.
type Options struct {
	Width, Height float64
	// Page is the layout to animate. Empty uses DefaultPage(Width).
	Page Page

	Reveal      motion.RevealConfig
	StaggerItem motion.RevealConfig
	// StaggerDelay, DelayChildren and StaggerMargin tune every stagger group.
	StaggerDelay  float64
	DelayChildren float64
	StaggerMargin float64

	Field    motion.FieldConfig
	Follower motion.FollowerConfig

	// ScrollDuration is the smooth scroll time for navigation clicks.
	ScrollDuration float64
	// WheelSpeed is the scroll distance per wheel notch.
	WheelSpeed float64

	// ScreenshotDir receives PNGs queued with Screenshot.
	ScreenshotDir string

	Logger zerolog.Logger
	Debug  bool
}

// DefaultOptions returns the site's tuning for a screen of the given size.
func DefaultOptions(width, height float64) Options {
	return Options{
		Width:          width,
		Height:         height,
		Reveal:         motion.DefaultRevealConfig(),
		StaggerItem:    motion.StaggerItemConfig(),
		StaggerDelay:   0.08,
		DelayChildren:  0.1,
		StaggerMargin:  -60,
		Field:          motion.DefaultFieldConfig(),
		Follower:       motion.DefaultFollowerConfig(),
		ScrollDuration: 0.8,
		WheelSpeed:     48,
		ScreenshotDir:  "screenshots",
		Logger:         zerolog.Nop(),
	}
}

// Stage is the top-level object that owns the frame scheduler, the viewport,
// and every animation component of the page. It mirrors ebiten's Update/Draw
// split and is driven by a thin ebiten.Game wrapper.
type Stage struct {
	opts  Options
	page  Page
	fluid bool // page follows the width
	log   zerolog.Logger
	debug bool

	sched *motion.FrameScheduler
	view  *motion.Viewport
	theme *motion.ThemeStore

	follower *motion.PointerFollower
	field    *motion.ParticleField
	tracker  *motion.SectionTracker
	reveals  []*motion.RevealController
	groups   []*motion.StaggerGroup
	counters []*motion.Counter
	bars     []*motion.ProgressBar

	elements  []*element
	byID      map[string]*element
	nav       []*target
	targets   []*target
	particles DrawList
	cursor    cursorMarks
	themeSub  motion.Subscription

	handlers    handlerRegistry
	pointer     pointerState
	injectQueue []syntheticEvent
	runner      *TestRunner
	shots       []string

	frames  uint64
	mounted bool
}

// New creates a stage. theme may be shared with other surfaces; nil creates a
// light in-memory store.
func New(opts Options, theme *motion.ThemeStore) *Stage {
	fluid := len(opts.Page.Sections) == 0
	if fluid {
		opts.Page = DefaultPage(opts.Width)
	}
	if theme == nil {
		theme = motion.NewDefaultThemeStore(nil)
	}
	s := &Stage{
		opts:  opts,
		page:  opts.Page,
		fluid: fluid,
		log:   opts.Logger.With().Str("component", "stage").Logger(),
		debug: opts.Debug,
		sched: motion.NewFrameScheduler(),
		view:  motion.NewViewport(opts.Width, opts.Height),
		theme: theme,
		byID:  make(map[string]*element),
	}
	s.field = motion.NewParticleField(s.fieldConfig())
	s.follower = motion.NewPointerFollower(opts.Follower)
	s.tracker = motion.NewSectionTracker(opts.Page.SectionIDs(), opts.Page.Sections[0].ID)
	s.tracker.OnChange(func(id string) {
		s.log.Debug().Str("section", id).Msg("active section")
	})
	s.build()
	return s
}

func (s *Stage) fieldConfig() motion.FieldConfig {
	cfg := s.opts.Field
	if cfg.Color == nil {
		cfg.Color = s.theme.Resolver(func(p motion.Palette) motion.Color { return p.Particle })
	}
	return cfg
}

// build lays out the page and creates a controller per block.
func (s *Stage) build() {
	for i, sec := range s.page.Sections {
		r := s.page.SectionRect(i, s.opts.Width)
		s.view.SetLayout(sec.ID, r)
		for _, b := range sec.Blocks {
			doc := b.Bounds
			doc.Y += r.Y
			switch b.Kind {
			case BlockReveal:
				cfg := s.opts.Reveal
				cfg.Direction = b.Direction
				cfg.Delay = b.Delay
				s.reveals = append(s.reveals, motion.NewRevealController(cfg))
				s.addElement(b, doc)
			case BlockStagger:
				g := motion.NewStaggerGroup()
				g.StaggerDelay = s.opts.StaggerDelay
				g.DelayChildren = s.opts.DelayChildren
				g.Margin = s.opts.StaggerMargin
				s.view.SetLayout(b.ID, doc)
				for k := range b.Items {
					item := b.ItemRect(k)
					item.Y += r.Y
					e := s.addElement(Block{
						ID:        b.ID + "-" + strconv.Itoa(k),
						Kind:      BlockStagger,
						Label:     b.Label + " " + strconv.Itoa(k+1),
						Hoverable: b.Hoverable,
					}, item)
					g.Add(s.opts.StaggerItem, e)
				}
				s.groups = append(s.groups, g)
			case BlockCounter:
				s.counters = append(s.counters, motion.NewCounter(int(b.Value), 0))
				s.addElement(b, doc)
			case BlockBar:
				s.bars = append(s.bars, motion.NewProgressBar(b.Value, b.Delay))
				s.addElement(b, doc)
			}
		}
	}
	s.buildNav()
}

func (s *Stage) addElement(b Block, doc motion.Rect) *element {
	e := &element{
		id:        b.ID,
		kind:      b.Kind,
		label:     b.Label,
		doc:       doc,
		hoverable: b.Hoverable,
	}
	s.elements = append(s.elements, e)
	s.byID[b.ID] = e
	s.view.SetLayout(b.ID, doc)
	if b.Hoverable {
		s.targets = append(s.targets, &target{id: b.ID, bounds: doc, elem: e})
	}
	return e
}

// Mount starts every component: observers, frame loops and the theme
// subscription.
func (s *Stage) Mount() {
	if s.mounted {
		return
	}
	s.mounted = true
	s.field.Mount(s.sched, &s.particles, s.opts.Width, s.page.Sections[0].Height)
	s.follower.Mount(s.sched, &s.cursor)
	s.tracker.Mount(s.view)
	s.themeSub = s.theme.Subscribe(func(dark bool) {
		s.log.Info().Bool("dark", dark).Msg("theme changed")
	})

	var ri, ci, bi, gi int
	for _, sec := range s.page.Sections {
		for _, b := range sec.Blocks {
			switch b.Kind {
			case BlockReveal:
				s.reveals[ri].Mount(s.view, s.sched, b.ID, s.byID[b.ID])
				ri++
			case BlockStagger:
				s.groups[gi].Mount(s.view, s.sched, b.ID)
				gi++
			case BlockCounter:
				e := s.byID[b.ID]
				s.counters[ci].Mount(s.view, s.sched, b.ID, func(n int) { e.count = n })
				ci++
			case BlockBar:
				e := s.byID[b.ID]
				s.bars[bi].Mount(s.view, s.sched, b.ID, func(w, m float64) { e.width, e.marker = w, m })
				bi++
			}
		}
	}
	s.log.Debug().
		Int("reveals", len(s.reveals)).
		Int("groups", len(s.groups)).
		Int("counters", len(s.counters)).
		Int("bars", len(s.bars)).
		Int("particles", s.field.Count()).
		Msg("stage mounted")
}

// Unmount stops every component. After Unmount no frame callbacks remain and
// no observers are connected.
func (s *Stage) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false
	s.field.Unmount()
	s.follower.Unmount()
	s.tracker.Unmount()
	s.themeSub.Remove()
	for _, r := range s.reveals {
		r.Unmount()
	}
	for _, g := range s.groups {
		g.Unmount()
	}
	for _, c := range s.counters {
		c.Unmount()
	}
	for _, b := range s.bars {
		b.Unmount()
	}
	s.log.Debug().Uint64("frames", s.frames).Msg("stage unmounted")
}

// Update reads input and advances one tick at the ebiten tick rate.
func (s *Stage) Update() {
	s.frame(1.0/float64(ebiten.TPS()), true)
}

// Step advances one tick of dt seconds using only injected input. It is the
// headless form of Update.
func (s *Stage) Step(dt float64) {
	s.frame(dt, false)
}

func (s *Stage) frame(dt float64, live bool) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	if s.runner != nil {
		s.runner.step(s)
	}
	if !s.processInjectedInput() && live {
		s.processInput()
	}
	s.view.Update(dt)
	s.view.Flush()
	s.sched.Advance(dt)
	s.frames++
	if s.debug {
		s.debugLog(frameStats{
			elapsed:  time.Since(t0),
			pending:  s.sched.Pending(),
			observed: s.view.Live(),
			ops:      s.particles.Len(),
		})
	}
}

// Resize changes the screen size. The particle surface follows the width,
// and so do the blocks of a default page.
func (s *Stage) Resize(width, height float64) {
	if width == s.opts.Width && height == s.opts.Height {
		return
	}
	widthChanged := width != s.opts.Width
	s.opts.Width, s.opts.Height = width, height
	if s.fluid && widthChanged {
		s.page = DefaultPage(width)
		s.opts.Page = s.page
		s.layout()
	}
	s.view.Resize(width, height)
	s.field.Resize(width, s.page.Sections[0].Height)
	s.layoutNav()
}

// layout moves every section, block and stagger item built by build to its
// place in the current page.
func (s *Stage) layout() {
	for i, sec := range s.page.Sections {
		r := s.page.SectionRect(i, s.opts.Width)
		s.view.SetLayout(sec.ID, r)
		for _, b := range sec.Blocks {
			doc := b.Bounds
			doc.Y += r.Y
			if b.Kind != BlockStagger {
				s.place(b.ID, doc)
				continue
			}
			s.view.SetLayout(b.ID, doc)
			for k := range b.Items {
				item := b.ItemRect(k)
				item.Y += r.Y
				s.place(b.ID+"-"+strconv.Itoa(k), item)
			}
		}
	}
	for _, t := range s.targets {
		if t.elem != nil {
			t.bounds = t.elem.doc
		}
	}
}

func (s *Stage) place(id string, doc motion.Rect) {
	if e, ok := s.byID[id]; ok {
		e.doc = doc
		s.view.SetLayout(id, doc)
	}
}

// ToggleTheme flips the theme. A persistence failure is logged; the
// in-memory flag has already changed.
func (s *Stage) ToggleTheme() {
	if err := s.theme.Toggle(); err != nil {
		s.log.Warn().Err(err).Msg("theme not saved")
	}
}

// ScrollToSection smoothly scrolls the section's top to the viewport top.
func (s *Stage) ScrollToSection(id string) bool {
	return s.view.ScrollToElement(id, float32(s.opts.ScrollDuration), motion.EaseOutExpoLike)
}

// Viewport returns the stage's viewport.
func (s *Stage) Viewport() *motion.Viewport { return s.view }

// Scheduler returns the stage's frame scheduler.
func (s *Stage) Scheduler() *motion.FrameScheduler { return s.sched }

// Theme returns the stage's theme store.
func (s *Stage) Theme() *motion.ThemeStore { return s.theme }

// Follower returns the pointer follower.
func (s *Stage) Follower() *motion.PointerFollower { return s.follower }

// Field returns the particle field.
func (s *Stage) Field() *motion.ParticleField { return s.field }

// Particles returns the particle field's recorded draw calls.
func (s *Stage) Particles() *DrawList { return &s.particles }

// ActiveSection returns the id highlighted in the navigation.
func (s *Stage) ActiveSection() string { return s.tracker.Active() }

// Frames returns the number of ticks run.
func (s *Stage) Frames() uint64 { return s.frames }

// ElementStyle returns the reveal style of an element.
func (s *Stage) ElementStyle(id string) (motion.Style, bool) {
	e, ok := s.byID[id]
	if !ok {
		return motion.Style{}, false
	}
	return e.style, true
}

// CounterValue returns the number a counter block currently shows.
func (s *Stage) CounterValue(id string) (int, bool) {
	e, ok := s.byID[id]
	if !ok || e.kind != BlockCounter {
		return 0, false
	}
	return e.count, true
}

// BarFill returns a bar block's fill percent and marker opacity.
func (s *Stage) BarFill(id string) (width, marker float64, ok bool) {
	e, ok := s.byID[id]
	if !ok || e.kind != BlockBar {
		return 0, 0, false
	}
	return e.width, e.marker, true
}
