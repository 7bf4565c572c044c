package motion

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Palette is the set of colors the motion components draw with.
type Palette struct {
	Background Color
	Text       Color
	Accent     Color
	Particle   Color
	Cursor     Color
}

// PaletteHex lists palette colors as "#rrggbb" strings, the form used in
// config files.
type PaletteHex struct {
	Background string `yaml:"background" mapstructure:"background"`
	Text       string `yaml:"text" mapstructure:"text"`
	Accent     string `yaml:"accent" mapstructure:"accent"`
	Particle   string `yaml:"particle" mapstructure:"particle"`
	Cursor     string `yaml:"cursor" mapstructure:"cursor"`
}

// Parse converts every entry to a Color.
func (h PaletteHex) Parse() (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *Color
	}{
		{"background", h.Background, &p.Background},
		{"text", h.Text, &p.Text},
		{"accent", h.Accent, &p.Accent},
		{"particle", h.Particle, &p.Particle},
		{"cursor", h.Cursor, &p.Cursor},
	}
	for _, f := range fields {
		c, err := ParseHex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("palette %s: %w", f.name, err)
		}
		*f.dst = c
	}
	return p, nil
}

// ParseHex parses "#rrggbb" (or "#rgb") into an opaque Color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// Blend mixes a toward b by t in linear RGB. Alpha is interpolated directly.
func Blend(a, b Color, t float64) Color {
	ca := colorful.Color{R: a.R, G: a.G, B: a.B}
	cb := colorful.Color{R: b.R, G: b.G, B: b.B}
	m := ca.BlendLinearRgb(cb, t).Clamped()
	return Color{R: m.R, G: m.G, B: m.B, A: lerp(a.A, b.A, t)}
}

// DefaultLightHex and DefaultDarkHex are the site's stock palettes.
var (
	DefaultLightHex = PaletteHex{
		Background: "#f7f6f2",
		Text:       "#1a1a1a",
		Accent:     "#0099cc",
		Particle:   "#0099cc",
		Cursor:     "#0099cc",
	}
	DefaultDarkHex = PaletteHex{
		Background: "#0a0a0f",
		Text:       "#e8e8e8",
		Accent:     "#00d4ff",
		Particle:   "#00d4ff",
		Cursor:     "#00d4ff",
	}
)

// Subscription allows removing a theme listener.
type Subscription struct {
	id    uint32
	store *ThemeStore
}

// Remove unregisters the listener so it no longer fires.
func (s Subscription) Remove() {
	if s.store == nil {
		return
	}
	subs := s.store.subs
	for i := range subs {
		if subs[i].id == s.id {
			copy(subs[i:], subs[i+1:])
			subs[len(subs)-1] = themeListener{}
			s.store.subs = subs[:len(subs)-1]
			return
		}
	}
}

type themeListener struct {
	id uint32
	fn func(dark bool)
}

// ThemeStore is the single process-wide holder of the light/dark flag. Only
// the navigation toggle writes it; drawing code reads it every frame.
type ThemeStore struct {
	dark      bool
	light     Palette
	darkPal   Palette
	persister ThemePersister
	subs      []themeListener
	nextID    uint32
}

// NewThemeStore creates a light-mode store with the given palettes. A nil
// persister keeps the flag in memory only.
func NewThemeStore(light, dark Palette, persister ThemePersister) *ThemeStore {
	return &ThemeStore{light: light, darkPal: dark, persister: persister}
}

// NewDefaultThemeStore creates a store with the stock palettes.
func NewDefaultThemeStore(persister ThemePersister) *ThemeStore {
	light, _ := DefaultLightHex.Parse()
	dark, _ := DefaultDarkHex.Parse()
	return NewThemeStore(light, dark, persister)
}

// Load restores the persisted flag. A missing record leaves light mode.
func (s *ThemeStore) Load() error {
	if s.persister == nil {
		return nil
	}
	dark, err := s.persister.LoadTheme()
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	s.apply(dark)
	return nil
}

// Dark reports whether dark mode is active.
func (s *ThemeStore) Dark() bool {
	return s.dark
}

// SetDark sets the flag, persists it and notifies listeners when it changes.
// The in-memory flag changes even if persisting fails.
func (s *ThemeStore) SetDark(dark bool) error {
	if dark == s.dark {
		return nil
	}
	s.apply(dark)
	if s.persister == nil {
		return nil
	}
	if err := s.persister.SaveTheme(dark); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle flips the flag.
func (s *ThemeStore) Toggle() error {
	return s.SetDark(!s.dark)
}

func (s *ThemeStore) apply(dark bool) {
	if dark == s.dark {
		return
	}
	s.dark = dark
	for _, l := range append([]themeListener(nil), s.subs...) {
		l.fn(dark)
	}
}

// Subscribe registers fn to be called after each change.
func (s *ThemeStore) Subscribe(fn func(dark bool)) Subscription {
	s.nextID++
	s.subs = append(s.subs, themeListener{id: s.nextID, fn: fn})
	return Subscription{id: s.nextID, store: s}
}

// Palette returns the palette for the current flag.
func (s *ThemeStore) Palette() Palette {
	if s.dark {
		return s.darkPal
	}
	return s.light
}

// ColorResolver returns the current color for some palette role. Resolvers
// are read at draw time so a theme change shows on the next frame.
type ColorResolver func() Color

// Resolver builds a ColorResolver that reads role from the current palette.
func (s *ThemeStore) Resolver(role func(Palette) Color) ColorResolver {
	return func() Color { return role(s.Palette()) }
}

// Fixed returns a resolver that always yields c.
func Fixed(c Color) ColorResolver {
	return func() Color { return c }
}

// ThemePersister stores the theme flag between runs.
type ThemePersister interface {
	LoadTheme() (dark bool, err error)
	SaveTheme(dark bool) error
}

type themeFile struct {
	Theme string `yaml:"theme"`
}

// FileThemePersister keeps the flag in a small YAML file.
type FileThemePersister struct {
	Path string
}

// LoadTheme reads the file. A missing file means light mode.
func (p FileThemePersister) LoadTheme() (bool, error) {
	data, err := os.ReadFile(p.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", p.Path, err)
	}
	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return false, fmt.Errorf("parse %s: %w", p.Path, err)
	}
	return f.Theme == "dark", nil
}

// SaveTheme writes "dark" or "light", creating parent directories.
func (p FileThemePersister) SaveTheme(dark bool) error {
	f := themeFile{Theme: "light"}
	if dark {
		f.Theme = "dark"
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
		return fmt.Errorf("create theme dir: %w", err)
	}
	if err := os.WriteFile(p.Path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p.Path, err)
	}
	return nil
}
