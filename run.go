package evergreen

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// game is the ebiten.Game that Run drives.
type game struct {
	scene *Scene
	fps   *fpsWidget
	w, h  int
}

// Update implements ebiten.Game.
func (g *game) Update() error {
	g.scene.Update()
	if g.fps != nil {
		g.fps.update(1.0 / float64(ebiten.TPS()))
	}
	if g.scene.testRunner != nil && g.scene.testRunner.Done() && len(g.scene.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	if g.scene.updateFunc != nil {
		return g.scene.updateFunc()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The scene renders at the window's size.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.w, g.h = outsideWidth, outsideHeight
	}
	g.scene.Resize(g.w, g.h)
	return g.w, g.h
}

// Run opens a window and runs scene until the window closes, the update
// callback returns an error, or an attached test script finishes.
// ebiten.Termination is not reported as an error.
func Run(scene *Scene, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = int(scene.width), int(scene.height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := &game{scene: scene, w: w, h: h}
	if cfg.ShowFPS {
		g.fps = newFPSWidget()
	}
	return ebiten.RunGame(g)
}
