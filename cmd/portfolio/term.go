package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/motion"
	"github.com/phanxgames/motion/termcanvas"
)

//nolint:gochecknoglobals // cobra flag bindings
var (
	termFPS int
	logFile string

	termCmd = &cobra.Command{
		Use:   "term",
		Short: "Run the hero particle field and cursor in the terminal.",
		Long: `term draws the particle network in terminal cells and follows the mouse
with the dot and lagging ring. Press t to toggle the theme, q or Esc to quit.`,
		RunE: runTerm,
	}
)

//nolint:gochecknoinits // cobra command wiring
func init() {
	termCmd.Flags().IntVar(&termFPS, "fps", 30, "Frames per second")
	termCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs here instead of discarding them")
}

var errQuit = errors.New("quit")

// World size of one terminal cell. Terminal cells are roughly twice as
// tall as wide.
const (
	cellWidth  = 10
	cellHeight = 20
)

func runTerm(cmd *cobra.Command, _ []string) error {
	if termFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", termFPS)
	}
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	cfg, err := loadConfig(logOut)
	if err != nil {
		return err
	}
	theme, err := themeStore(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	canvas := termcanvas.New(screen, cellWidth, cellHeight)
	canvas.SetBackground(theme.Palette().Background)
	sub := theme.Subscribe(func(bool) {
		canvas.SetBackground(theme.Palette().Background)
	})
	defer sub.Remove()

	sched := motion.NewFrameScheduler()
	fieldCfg := cfg.FieldConfig()
	fieldCfg.Color = theme.Resolver(func(p motion.Palette) motion.Color { return p.Particle })
	field := motion.NewParticleField(fieldCfg)
	follower := motion.NewPointerFollower(cfg.FollowerConfig())

	w, h := canvas.Bounds()
	field.Mount(sched, canvas, w, h)
	defer field.Unmount()
	follower.Mount(sched, canvas)
	defer follower.Unmount()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	// Input and presentation run as the last frame callback so every event
	// is handled on the scheduler's goroutine.
	var pump motion.FrameFunc
	pump = func(float64) {
	drain:
		for {
			select {
			case ev := <-events:
				if !handleTermEvent(ev, canvas, field, follower, theme) {
					cancel(errQuit)
					return
				}
			default:
				break drain
			}
		}
		canvas.Show()
		sched.RequestFrame(pump)
	}
	sched.RequestFrame(pump)

	logger.Info().Int("particles", field.Count()).Int("fps", termFPS).Msg("terminal field running")
	err = sched.Run(ctx, time.Second/time.Duration(termFPS))
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handleTermEvent applies one terminal event. It returns false when the user
// asked to quit.
func handleTermEvent(ev tcell.Event, canvas *termcanvas.Canvas, field *motion.ParticleField,
	follower *motion.PointerFollower, theme *motion.ThemeStore) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 't':
			if err := theme.Toggle(); err != nil {
				logger.Warn().Err(err).Msg("theme not saved")
			}
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := canvas.CellAt(col, row)
		follower.Move(x, y)
	case *tcell.EventResize:
		canvas.Sync()
		w, h := canvas.Bounds()
		field.Resize(w, h)
		logger.Debug().Float64("width", w).Float64("height", h).Msg("terminal resized")
	}
	return true
}
