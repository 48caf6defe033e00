package host

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/bramble"
)

// Game adapts an Engine to ebiten.Game. Each ebiten tick is one Update and
// one Render; each ebiten frame is one Draw.
type Game struct {
	engine *Engine
}

var _ ebiten.Game = (*Game)(nil)

// NewGame wraps e.
func NewGame(e *Engine) *Game {
	return &Game{engine: e}
}

// Update implements ebiten.Game. It returns ebiten.Termination once the
// engine stops.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	g.engine.Update(dt)
	g.engine.Render(dt)
	if !g.engine.IsRunning() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.engine.Draw(screen)
}

// Layout implements ebiten.Game. The logical size follows the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.engine.Config().Window.Resizable {
		g.engine.Resize(outsideWidth, outsideHeight)
	}
	return g.engine.WindowSize()
}

// Run initializes e, loads the configured start state and blocks in the
// ebiten game loop until Escape is pressed, Shutdown is called or the window
// closes.
func Run(e *Engine) error {
	if err := e.Init(); err != nil {
		return err
	}
	cfg := e.Config()
	if e.State() == nil && cfg.Start != "" {
		if err := e.LoadState(cfg.Start); err != nil {
			return err
		}
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.Window.VSync != nil {
		ebiten.SetVsyncEnabled(*cfg.Window.VSync)
	}
	ebiten.SetTPS(cfg.TPS)

	err := ebiten.RunGame(NewGame(e))
	e.Shutdown()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("host: run: %w", err)
	}
	bramble.Log().Debug("game loop finished")
	return nil
}
