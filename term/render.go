package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/phanxgames/evergreen"
)

// Glyphs for each scene part. Hovered ornaments swap to the bold variant.
var (
	ornamentGlyphs = [...]rune{evergreen.ShapeSphere: 'o', evergreen.ShapeTeardrop: 'v', evergreen.ShapeDiamond: '◆'}
	hoveredGlyphs  = [...]rune{evergreen.ShapeSphere: 'O', evergreen.ShapeTeardrop: 'V', evergreen.ShapeDiamond: '◇'}
)

const (
	glyphFoliage  = '^'
	glyphTrunk    = '#'
	glyphStar     = '★'
	glyphConfetti = '▪'
	// minAlpha hides particles too faint to read as text.
	minAlpha = 0.05
	// trunkRadius matches the trunk cylinder's mean radius.
	trunkRadius = 0.35
)

// The scene's emerald and bark are tuned for a lit 3D render; flat text
// needs them brighter.
var (
	foliageColor = evergreen.Emerald.Scale(3)
	trunkColor   = evergreen.Bark.Scale(2)
)

// render rasterizes the current frame into the canvas.
func (a *App) render() {
	a.canvas.Clear()
	a.plotField(a.atmosphere, nil, func(float64) rune { return '.' })
	a.plotField(a.glitter, nil, func(alpha float64) rune {
		if alpha > 0.5 {
			return '*'
		}
		return '·'
	})

	group := a.tree.Model()
	a.plotField(a.sparkles, &group, func(float64) rune { return '+' })
	a.plotTrunk()
	a.plotLayers()
	a.plotOrnaments()
	a.plotStar()
	a.plotConfetti()
}

func (a *App) style(c evergreen.Color) tcell.Style {
	return a.bg.Foreground(toTcell(c))
}

func (a *App) plotField(f *evergreen.ParticleField, model *mgl64.Mat4, glyph func(alpha float64) rune) {
	for i := 0; i < f.Len(); i++ {
		alpha := f.Alpha(i, a.elapsed)
		if alpha < minAlpha {
			continue
		}
		var (
			sx, sy, depth float64
			ok            bool
		)
		if model != nil {
			sx, sy, depth, ok = a.camera.ProjectModel(*model, f.Position(i))
		} else {
			sx, sy, depth, ok = a.camera.Project(f.Position(i))
		}
		if !ok {
			continue
		}
		x, y := cellAt(sx, sy)
		a.canvas.Plot(x, y, depth, glyph(alpha), a.style(f.Color(i).WithAlpha(alpha)))
	}
}

func (a *App) plotTrunk() {
	group := a.tree.Model()
	tx, ty, _, ok1 := a.camera.ProjectModel(group, evergreen.Vec3{})
	bx, by, depth, ok2 := a.camera.ProjectModel(group, evergreen.Vec3{Y: -1})
	if !ok1 || !ok2 {
		return
	}
	half := trunkRadius * a.camera.PixelScale(depth)
	cx := (tx + bx) / 2
	st := a.style(trunkColor)
	x0, y0 := cellAt(cx-half, math.Min(ty, by))
	x1, y1 := cellAt(cx+half, math.Max(ty, by))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			a.canvas.Plot(x, y, depth, glyphTrunk, st)
		}
	}
}

// plotLayers fills each foliage silhouette at the depth of its axis, the
// same depth picking uses.
func (a *App) plotLayers() {
	st := a.style(foliageColor)
	for i := range a.tree.Layers {
		pts, depth, ok := a.tree.LayerOutline(i, a.camera)
		if !ok {
			continue
		}
		poly := evergreen.HitPolygon{Points: pts}
		minX, minY, maxX, maxY := bounds(pts)
		x0, y0 := cellAt(minX, minY)
		x1, y1 := cellAt(maxX, maxY)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if poly.Contains(viewport(x, y)) {
					a.canvas.Plot(x, y, depth, glyphFoliage, st)
				}
			}
		}
	}
}

func bounds(pts []evergreen.Vec2) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

func (a *App) plotOrnaments() {
	for i := range a.tree.Ornaments {
		cx, cy, _, depth, ok := a.tree.OrnamentCircle(i, a.camera)
		if !ok {
			continue
		}
		o := &a.tree.Ornaments[i]
		glyph := ornamentGlyphs[o.Shape]
		st := a.style(o.Color)
		if a.tree.Hover.IsHovered(i) {
			glyph = hoveredGlyphs[o.Shape]
			st = st.Bold(true)
		}
		x, y := cellAt(cx, cy)
		a.canvas.Plot(x, y, depth, glyph, st)
	}
}

func (a *App) plotStar() {
	sx, sy, depth, ok := a.camera.Project(a.tree.StarPosition(a.elapsed))
	if !ok {
		return
	}
	x, y := cellAt(sx, sy)
	a.canvas.Plot(x, y, depth, glyphStar, a.style(evergreen.StarGold).Bold(true))
}

// plotConfetti draws pieces over everything else.
func (a *App) plotConfetti() {
	for i := 0; i < a.confetti.AliveCount(); i++ {
		px, py, col := a.confetti.Piece(i)
		x, y := cellAt(px, py)
		a.canvas.Plot(x, y, 0, glyphConfetti, a.style(col))
	}
}
