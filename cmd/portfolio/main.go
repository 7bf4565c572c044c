// Command portfolio runs the animated portfolio page in an ebiten window or
// the hero particle field in a terminal.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/phanxgames/motion"
	"github.com/phanxgames/motion/config"
	"github.com/phanxgames/motion/stage"
)

//nolint:gochecknoglobals // cobra flag bindings
var (
	configFile string
	themeFile  string
	debug      bool
	particles  int

	logger = zerolog.Nop()

	rootCmd = &cobra.Command{
		Use:   "portfolio",
		Short: "Scroll-reveal portfolio page with a particle hero and a lagging cursor.",
		Long: `portfolio renders a single-page portfolio whose sections fade in as they
scroll into view, with a drifting particle network behind the hero and a
pointer ring that trails the cursor.`,
		SilenceUsage: true,
	}
)

//nolint:gochecknoinits // cobra command wiring
func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Tuning file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&themeFile, "theme-file", "", "Where the light/dark choice is kept (default: user config dir)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging and the FPS overlay")
	rootCmd.PersistentFlags().IntVar(&particles, "particles", -1, "Override the particle count")

	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(termCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the tuning file, applies flag overrides and sets up
// logging. Log output goes to w.
func loadConfig(w io.Writer) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	if particles >= 0 {
		cfg.Particles.Count = particles
	}
	if themeFile != "" {
		cfg.ThemeFile = themeFile
	}
	logger = setupLogging(w, cfg.LogLevel)
	return cfg, nil
}

func setupLogging(w io.Writer, level string) zerolog.Logger {
	var lvl zerolog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = zerolog.DebugLevel
	case "INFO":
		lvl = zerolog.InfoLevel
	case "WARN":
		lvl = zerolog.WarnLevel
	case "ERROR":
		lvl = zerolog.ErrorLevel
	case "TRACE":
		lvl = zerolog.TraceLevel
	default:
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}).Level(lvl).With().Timestamp().Logger()
}

// themeStore builds the palette store with a file persister and restores the
// saved choice.
func themeStore(cfg *config.Config) (*motion.ThemeStore, error) {
	path := cfg.ThemeFile
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locate theme file: %w", err)
		}
		path = filepath.Join(dir, "portfolio", "theme.yaml")
	}
	store, err := cfg.ThemeStore(motion.FileThemePersister{Path: path})
	if err != nil {
		return nil, err
	}
	if err := store.Load(); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("theme not restored")
	}
	logger.Debug().Str("path", path).Bool("dark", store.Dark()).Msg("theme loaded")
	return store, nil
}

// stageOptions maps the tuning file onto stage options.
func stageOptions(cfg *config.Config) stage.Options {
	opts := stage.DefaultOptions(float64(cfg.Window.Width), float64(cfg.Window.Height))
	opts.Reveal = cfg.RevealConfig()
	opts.StaggerItem = cfg.StaggerItemConfig()
	opts.StaggerDelay = cfg.Stagger.Delay
	opts.DelayChildren = cfg.Stagger.DelayChildren
	opts.StaggerMargin = cfg.Stagger.Margin
	opts.Field = cfg.FieldConfig()
	opts.Follower = cfg.FollowerConfig()
	opts.ScrollDuration = cfg.Scroll.Duration
	opts.WheelSpeed = cfg.Scroll.WheelSpeed
	opts.Logger = logger
	opts.Debug = debug
	return opts
}
