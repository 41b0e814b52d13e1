package evergreen

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

const (
	starHeight = 4.2
	starRadius = 0.4
	// starFloatSpeed is the bob rate of the star.
	starFloatSpeed = 2
)

// Tree is the decorated tree group: trunk, foliage layers, the floating
// star and the ornaments. Everything in the group turns together by
// Rotation about the Y axis.
type Tree struct {
	Layers    []TreeLayer
	Ornaments []Ornament
	Hover     *HoverSet
	// Rotation is the group's turn about Y in radians.
	Rotation float64

	turn       *TweenGroup
	turnTarget float64

	trunk       *Mesh
	layerMesh   []*Mesh
	star        *Mesh
	shapes      [3]*Mesh
	ornamentCap *Mesh

	trunkMat   Material
	foliageMat Material
	starMat    Material
}

// NewTree builds the meshes for the given layers and ornament layout.
func NewTree(layers []TreeLayer, ornaments []Ornament) *Tree {
	t := &Tree{
		Layers:    layers,
		Ornaments: ornaments,
		Hover:     NewHoverSet(len(ornaments)),
		trunk:     NewCylinder(0.3, 0.4, 1, 12),
		star:      NewOctahedron(starRadius),
		trunkMat:  Material{Color: Bark},
		foliageMat: Material{
			Color:             Emerald,
			Emissive:          EmeraldGlow,
			EmissiveIntensity: 0.5,
			Shininess:         24,
		},
		starMat: Material{
			Color:             StarGold,
			Emissive:          StarGold,
			EmissiveIntensity: 2,
			Shininess:         80,
		},
	}
	for _, l := range layers {
		t.layerMesh = append(t.layerMesh, NewCone(l.Radius, l.Height, 32))
	}

	// Unit-size ornament bodies, scaled per instance.
	t.shapes[ShapeSphere] = NewSphere(1, 16, 10)
	t.shapes[ShapeTeardrop] = NewCone(1, 2, 16)
	t.shapes[ShapeDiamond] = NewOctahedron(1)

	t.ornamentCap = NewCylinder(0.3, 0.4, 0.3, 12)
	for i := range t.ornamentCap.Positions {
		t.ornamentCap.Positions[i].Y += 0.9
	}
	return t
}

// SetOrnaments replaces the ornament layout and clears hover state.
func (t *Tree) SetOrnaments(ornaments []Ornament) {
	t.Ornaments = ornaments
	t.Hover = NewHoverSet(len(ornaments))
}

// Turn starts a quarter-pi turn of the whole group. A turn already in
// flight keeps its target and the new one adds on top.
func (t *Tree) Turn() {
	target := t.Rotation + treeTurn
	if t.turn != nil && !t.turn.Done {
		target = t.turnTarget + treeTurn
	}
	t.turnTarget = target
	t.turn = TweenTo(&t.Rotation, target, 0.6, ease.OutCubic)
}

// Update advances the turn tween by dt seconds.
func (t *Tree) Update(dt float32) {
	if t.turn != nil {
		t.turn.Update(dt)
		if t.turn.Done {
			t.turn = nil
		}
	}
}

// Model returns the group transform.
func (t *Tree) Model() mgl64.Mat4 {
	return mgl64.HomogRotate3DY(t.Rotation)
}

// StarOffset returns the star's bob height and tilt at time elapsed.
func StarOffset(elapsed float64) (dy, rotX, rotY, rotZ float64) {
	a := elapsed / 4 * starFloatSpeed
	return math.Sin(a) / 10, math.Cos(a) / 8, math.Sin(a) / 8, math.Sin(a) / 20
}

// StarPosition returns the star's world position at time elapsed.
func (t *Tree) StarPosition(elapsed float64) Vec3 {
	dy, _, _, _ := StarOffset(elapsed)
	return transformPoint(t.Model(), Vec3{0, starHeight + dy, 0})
}

// StarLight returns the warm point light carried by the star.
func (t *Tree) StarLight(elapsed float64) Light {
	return Light{
		Kind:      LightPoint,
		Position:  t.StarPosition(elapsed),
		Color:     StarGold,
		Intensity: 5,
		Distance:  3,
	}
}

// OrnamentWorld returns ornament i's world-space center.
func (t *Tree) OrnamentWorld(i int) Vec3 {
	return transformPoint(t.Model(), t.Ornaments[i].Position)
}

// ornamentModel returns the body and cap transforms for ornament i.
func (t *Tree) ornamentModel(i int, elapsed float64) (body, hanger mgl64.Mat4) {
	o := &t.Ornaments[i]
	rx, rz := o.Sway(elapsed)
	emph := t.Hover.Emphasis(i)

	group := t.Model()
	body = group.Mul4(ModelMatrix(o.Position, rx, 0, rz, o.Size*emph.Scale))
	if o.Shape == ShapeTeardrop {
		body = body.Mul4(mgl64.HomogRotate3DX(math.Pi))
	}
	hanger = group.Mul4(ModelMatrix(o.Position, rx, 0, rz, o.Size))
	return body, hanger
}

// draw emits the whole group into r.
func (t *Tree) draw(r *renderer, elapsed float64) {
	group := t.Model()

	r.drawMesh(t.trunk, group.Mul4(mgl64.Translate3D(0, -0.5, 0)), t.trunkMat, BlendNormal)
	for i, l := range t.Layers {
		r.drawMesh(t.layerMesh[i], group.Mul4(mgl64.Translate3D(0, l.Y, 0)), t.foliageMat, BlendNormal)
	}

	dy, sx, sy, sz := StarOffset(elapsed)
	star := group.Mul4(ModelMatrix(Vec3{0, starHeight + dy, 0}, sx, sy, sz+math.Pi/5, 1))
	r.drawMesh(t.star, star, t.starMat, BlendNormal)

	capMat := Material{Color: Gold, Shininess: 80}
	for i := range t.Ornaments {
		o := &t.Ornaments[i]
		emph := t.Hover.Emphasis(i)
		body, hanger := t.ornamentModel(i, elapsed)
		mat := Material{
			Color:             o.Color,
			Emissive:          o.Color,
			EmissiveIntensity: emph.Emissive,
			Shininess:         60,
		}
		r.drawMesh(t.shapes[o.Shape], body, mat, BlendNormal)
		r.drawMesh(t.ornamentCap, hanger, capMat, BlendNormal)
	}
}

// LayerOutline returns the screen-space silhouette of foliage layer i as a
// triangle: apex, then the two base corners.
func (t *Tree) LayerOutline(i int, cam *OrbitCamera) ([]Vec2, float64, bool) {
	l := t.Layers[i]
	ax, ay, _, ok1 := cam.Project(Vec3{0, l.Y + l.Height/2, 0})
	bx, by, depth, ok2 := cam.Project(Vec3{0, l.Y - l.Height/2, 0})
	if !ok1 || !ok2 {
		return nil, 0, false
	}
	half := l.Radius * cam.PixelScale(depth)
	return []Vec2{{ax, ay}, {bx - half, by}, {bx + half, by}}, depth, true
}

// OrnamentCircle returns ornament i's screen-space hit circle.
func (t *Tree) OrnamentCircle(i int, cam *OrbitCamera) (cx, cy, radius, depth float64, ok bool) {
	x, y, d, ok := cam.Project(t.OrnamentWorld(i))
	if !ok {
		return 0, 0, 0, 0, false
	}
	o := &t.Ornaments[i]
	r := o.Size * t.Hover.Emphasis(i).Scale * cam.PixelScale(d)
	return x, y, math.Max(r, 3), d, true
}

// Pick finds the ornament or foliage layer under screen point (x, y). The
// nearest ornament wins unless the nearest layer's axis is closer.
func (t *Tree) Pick(cam *OrbitCamera, x, y float64) Target {
	ornament, ornamentDepth := -1, math.Inf(1)
	for i := range t.Ornaments {
		cx, cy, r, depth, ok := t.OrnamentCircle(i, cam)
		if !ok || depth >= ornamentDepth {
			continue
		}
		if (HitCircle{CenterX: cx, CenterY: cy, Radius: r}).Contains(x, y) {
			ornament, ornamentDepth = i, depth
		}
	}

	layer, layerDepth := -1, math.Inf(1)
	for i := range t.Layers {
		pts, depth, ok := t.LayerOutline(i, cam)
		if !ok || depth >= layerDepth {
			continue
		}
		if (HitPolygon{Points: pts}).Contains(x, y) {
			layer, layerDepth = i, depth
		}
	}

	switch {
	case ornament >= 0 && ornamentDepth <= layerDepth:
		return Target{Kind: TargetOrnament, Index: ornament}
	case layer >= 0:
		return Target{Kind: TargetLayer, Index: layer}
	case ornament >= 0:
		return Target{Kind: TargetOrnament, Index: ornament}
	}
	return Target{}
}
