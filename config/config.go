// Package config loads the tuning file for the portfolio demo and maps it
// onto the motion component configurations.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/phanxgames/motion"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// MOTION_PARTICLES_COUNT=120.
const EnvPrefix = "MOTION"

// RevealSection tunes the fade-in preset.
type RevealSection struct {
	Direction string    `mapstructure:"direction"`
	Duration  float64   `mapstructure:"duration"`
	Distance  float64   `mapstructure:"distance"`
	Margin    float64   `mapstructure:"margin"`
	Once      bool      `mapstructure:"once"`
	Ease      []float64 `mapstructure:"ease"`
}

// StaggerSection tunes stagger groups and their items.
type StaggerSection struct {
	Delay         float64 `mapstructure:"delay"`
	DelayChildren float64 `mapstructure:"delayChildren"`
	Margin        float64 `mapstructure:"margin"`
	ItemDistance  float64 `mapstructure:"itemDistance"`
	ItemDuration  float64 `mapstructure:"itemDuration"`
}

// ParticleSection tunes the hero particle field.
type ParticleSection struct {
	Count        int        `mapstructure:"count"`
	Velocity     [2]float64 `mapstructure:"velocity"`
	Radius       [2]float64 `mapstructure:"radius"`
	Opacity      [2]float64 `mapstructure:"opacity"`
	LinkDistance float64    `mapstructure:"linkDistance"`
	LinkOpacity  float64    `mapstructure:"linkOpacity"`
	LinkWidth    float64    `mapstructure:"linkWidth"`
}

// CursorSection tunes the pointer follower.
type CursorSection struct {
	Smoothing       float64 `mapstructure:"smoothing"`
	RestSize        float64 `mapstructure:"restSize"`
	RestOpacity     float64 `mapstructure:"restOpacity"`
	ActiveSize      float64 `mapstructure:"activeSize"`
	ActiveOpacity   float64 `mapstructure:"activeOpacity"`
	SpringFrequency float64 `mapstructure:"springFrequency"`
	SpringDamping   float64 `mapstructure:"springDamping"`
}

// WindowSection sizes the ebiten window.
type WindowSection struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// ScrollSection tunes page scrolling.
type ScrollSection struct {
	Duration   float64 `mapstructure:"duration"`
	WheelSpeed float64 `mapstructure:"wheelSpeed"`
}

// PaletteSection holds both palettes as hex strings.
type PaletteSection struct {
	Light motion.PaletteHex `mapstructure:"light"`
	Dark  motion.PaletteHex `mapstructure:"dark"`
}

// Config is the whole tuning file.
type Config struct {
	LogLevel  string          `mapstructure:"logLevel"`
	ThemeFile string          `mapstructure:"themeFile"`
	Window    WindowSection   `mapstructure:"window"`
	Reveal    RevealSection   `mapstructure:"reveal"`
	Stagger   StaggerSection  `mapstructure:"stagger"`
	Particles ParticleSection `mapstructure:"particles"`
	Cursor    CursorSection   `mapstructure:"cursor"`
	Scroll    ScrollSection   `mapstructure:"scroll"`
	Palettes  PaletteSection  `mapstructure:"palettes"`
}

// setDefaults registers every key with the site's stock value.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("themeFile", "")

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "portfolio")

	v.SetDefault("reveal.direction", "up")
	v.SetDefault("reveal.duration", 0.6)
	v.SetDefault("reveal.distance", 24)
	v.SetDefault("reveal.margin", -80)
	v.SetDefault("reveal.once", true)
	v.SetDefault("reveal.ease", []float64{0.22, 1, 0.36, 1})

	v.SetDefault("stagger.delay", 0.08)
	v.SetDefault("stagger.delayChildren", 0.1)
	v.SetDefault("stagger.margin", -60)
	v.SetDefault("stagger.itemDistance", 20)
	v.SetDefault("stagger.itemDuration", 0.5)

	v.SetDefault("particles.count", 60)
	v.SetDefault("particles.velocity", []float64{-0.15, 0.15})
	v.SetDefault("particles.radius", []float64{0.5, 2})
	v.SetDefault("particles.opacity", []float64{0.05, 0.35})
	v.SetDefault("particles.linkDistance", 120)
	v.SetDefault("particles.linkOpacity", 0.05)
	v.SetDefault("particles.linkWidth", 0.5)

	v.SetDefault("cursor.smoothing", 0.12)
	v.SetDefault("cursor.restSize", 32)
	v.SetDefault("cursor.restOpacity", 0.5)
	v.SetDefault("cursor.activeSize", 48)
	v.SetDefault("cursor.activeOpacity", 0.8)
	v.SetDefault("cursor.springFrequency", 12)
	v.SetDefault("cursor.springDamping", 1)

	v.SetDefault("scroll.duration", 0.8)
	v.SetDefault("scroll.wheelSpeed", 48)

	for _, p := range []struct {
		key string
		hex motion.PaletteHex
	}{
		{"palettes.light", motion.DefaultLightHex},
		{"palettes.dark", motion.DefaultDarkHex},
	} {
		v.SetDefault(p.key+".background", p.hex.Background)
		v.SetDefault(p.key+".text", p.hex.Text)
		v.SetDefault(p.key+".accent", p.hex.Accent)
		v.SetDefault(p.key+".particle", p.hex.Particle)
		v.SetDefault(p.key+".cursor", p.hex.Cursor)
	}
}

// Load reads the tuning file at path (any format viper understands, chosen
// by extension) over the defaults. An empty path loads defaults only.
// Environment variables prefixed with EnvPrefix override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that would make a component misbehave.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if _, ok := motion.ParseDirection(c.Reveal.Direction); !ok {
		errs = append(errs, fmt.Errorf("reveal.direction %q is not one of up, down, left, right, none", c.Reveal.Direction))
	}
	if len(c.Reveal.Ease) != 4 {
		errs = append(errs, fmt.Errorf("reveal.ease needs 4 control values, got %d", len(c.Reveal.Ease)))
	}
	if c.Particles.Count < 0 {
		errs = append(errs, fmt.Errorf("particles.count %d is negative", c.Particles.Count))
	}
	if c.Particles.LinkDistance <= 0 {
		errs = append(errs, fmt.Errorf("particles.linkDistance %v must be positive", c.Particles.LinkDistance))
	}
	if c.Cursor.Smoothing <= 0 || c.Cursor.Smoothing > 1 {
		errs = append(errs, fmt.Errorf("cursor.smoothing %v must be in (0, 1]", c.Cursor.Smoothing))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// RevealConfig returns the fade-in preset.
func (c *Config) RevealConfig() motion.RevealConfig {
	dir, _ := motion.ParseDirection(c.Reveal.Direction)
	cfg := motion.RevealConfig{
		Direction: dir,
		Duration:  c.Reveal.Duration,
		Once:      c.Reveal.Once,
		Margin:    c.Reveal.Margin,
		Distance:  c.Reveal.Distance,
		Ease:      motion.EaseOutExpoLike,
	}
	if e := c.Reveal.Ease; len(e) == 4 {
		cfg.Ease = motion.CubicBezier(e[0], e[1], e[2], e[3])
	}
	return cfg
}

// StaggerItemConfig returns the preset for stagger children.
func (c *Config) StaggerItemConfig() motion.RevealConfig {
	cfg := c.RevealConfig()
	cfg.Direction = motion.DirectionUp
	cfg.Distance = c.Stagger.ItemDistance
	cfg.Duration = c.Stagger.ItemDuration
	return cfg
}

// FieldConfig returns the particle field tuning. Color and Rand are left
// for the caller.
func (c *Config) FieldConfig() motion.FieldConfig {
	p := c.Particles
	return motion.FieldConfig{
		Count:        p.Count,
		Velocity:     motion.Range{Min: p.Velocity[0], Max: p.Velocity[1]},
		Radius:       motion.Range{Min: p.Radius[0], Max: p.Radius[1]},
		Opacity:      motion.Range{Min: p.Opacity[0], Max: p.Opacity[1]},
		LinkDistance: p.LinkDistance,
		LinkOpacity:  p.LinkOpacity,
		LinkWidth:    p.LinkWidth,
	}
}

// FollowerConfig returns the pointer follower tuning.
func (c *Config) FollowerConfig() motion.FollowerConfig {
	k := c.Cursor
	return motion.FollowerConfig{
		Smoothing:       k.Smoothing,
		RestSize:        k.RestSize,
		RestOpacity:     k.RestOpacity,
		ActiveSize:      k.ActiveSize,
		ActiveOpacity:   k.ActiveOpacity,
		SpringFrequency: k.SpringFrequency,
		SpringDamping:   k.SpringDamping,
	}
}

// ThemeStore parses both palettes and returns a store using persister.
func (c *Config) ThemeStore(persister motion.ThemePersister) (*motion.ThemeStore, error) {
	light, err := c.Palettes.Light.Parse()
	if err != nil {
		return nil, fmt.Errorf("palettes.light: %w", err)
	}
	dark, err := c.Palettes.Dark.Parse()
	if err != nil {
		return nil, fmt.Errorf("palettes.dark: %w", err)
	}
	return motion.NewThemeStore(light, dark, persister), nil
}
