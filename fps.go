package evergreen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsWidget displays the current FPS and TPS in the bottom-right corner.
// The text is refreshed every ~0.5 seconds into a private image.
type fpsWidget struct {
	img   *ebiten.Image
	since float64
}

func newFPSWidget() *fpsWidget {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsWidget{img: ebiten.NewImage(100, 32), since: 0.5}
}

func (w *fpsWidget) update(dt float64) {
	w.since += dt
	if w.since < 0.5 {
		return
	}
	w.since = 0

	w.img.Clear()
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (w *fpsWidget) draw(dst *ebiten.Image) {
	b := dst.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(b.Max.X-w.img.Bounds().Dx()-8), float64(b.Max.Y-w.img.Bounds().Dy()-8))
	dst.DrawImage(w.img, op)
}
