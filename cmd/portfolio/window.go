package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/motion/stage"
)

//nolint:gochecknoglobals // cobra flag bindings
var (
	scriptFile    string
	screenshotDir string

	windowCmd = &cobra.Command{
		Use:   "window",
		Short: "Open the full page in a desktop window.",
		RunE:  runWindow,
	}
)

//nolint:gochecknoinits // cobra command wiring
func init() {
	windowCmd.Flags().StringVar(&scriptFile, "script", "", "JSON input script to replay; the window closes when it ends")
	windowCmd.Flags().StringVar(&screenshotDir, "screenshot-dir", "screenshots", "Where script screenshots are written")
}

// game adapts a Stage to ebiten.Game.
type game struct {
	stage  *stage.Stage
	runner *stage.TestRunner
}

func (g *game) Update() error {
	g.stage.Update()
	// Screenshots are taken in Draw, so finish only once they are flushed.
	if g.runner != nil && g.runner.Done() && g.stage.PendingScreenshots() == 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.stage.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.stage.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

func runWindow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(os.Stderr)
	if err != nil {
		return err
	}
	theme, err := themeStore(cfg)
	if err != nil {
		return err
	}

	opts := stageOptions(cfg)
	opts.ScreenshotDir = screenshotDir
	s := stage.New(opts, theme)
	g := &game{stage: s}
	if scriptFile != "" {
		data, err := os.ReadFile(scriptFile)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		g.runner, err = stage.LoadTestScript(data)
		if err != nil {
			return err
		}
		s.SetTestRunner(g.runner)
	}
	s.Mount()
	defer s.Unmount()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	logger.Info().Int("width", cfg.Window.Width).Int("height", cfg.Window.Height).Msg("window open")
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	logger.Info().Uint64("frames", s.Frames()).Msg("window closed")
	return nil
}
