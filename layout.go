package evergreen

import "math"

// OrnamentShape selects an ornament's body geometry.
type OrnamentShape uint8

const (
	ShapeSphere   OrnamentShape = iota // round bauble
	ShapeTeardrop                      // inverted cone
	ShapeDiamond                       // octahedron
)

// LayoutConfig controls ornament placement on the cone envelope.
type LayoutConfig struct {
	// Count is the number of ornaments. Count <= 0 yields none.
	Count int
	// Height is the range heights are sampled from. Keep Max <= ConeHeight so
	// radii stay non-negative.
	Height Range
	// ConeHeight is the apex height of the envelope (H_max).
	ConeHeight float64
	// BaseRadius is the envelope radius at height 0.
	BaseRadius float64
	// Palette is the set of ornament colors, drawn uniformly.
	Palette Palette
	// Size is the range ornament sizes are sampled from.
	Size Range
}

// Ornament is one immutable decoration placement.
type Ornament struct {
	Index    int
	Position Vec3
	Color    Color
	Size     float64
	Shape    OrnamentShape
}

// ConeRadius returns the envelope radius at height h:
// (1 - h/coneHeight) * baseRadius.
func ConeRadius(h, coneHeight, baseRadius float64) float64 {
	return (1 - h/coneHeight) * baseRadius
}

// SampleOrnaments places cfg.Count ornaments. Angle and height are independent
// uniform samples; the radius is derived from height so every ornament sits on
// the cone surface. Draw order per ornament is angle, height, color, size.
func SampleOrnaments(cfg LayoutConfig, rng Rand) []Ornament {
	if cfg.Count <= 0 {
		return nil
	}
	rng = orGlobal(rng)
	out := make([]Ornament, cfg.Count)
	for i := range out {
		angle := Range{0, 2 * math.Pi}.Random(rng)
		h := cfg.Height.Random(rng)
		r := ConeRadius(h, cfg.ConeHeight, cfg.BaseRadius)
		out[i] = Ornament{
			Index:    i,
			Position: Vec3{math.Cos(angle) * r, h, math.Sin(angle) * r},
			Color:    cfg.Palette.Pick(rng),
			Size:     cfg.Size.Random(rng),
			Shape:    OrnamentShape(i % 3),
		}
	}
	return out
}

// Sway returns the ornament's pendulum rotation (about X and Z) at time t.
// The index offsets neighbours so they never swing in unison.
func (o Ornament) Sway(t float64) (rotX, rotZ float64) {
	i := float64(o.Index)
	return math.Cos(t*0.8+i) * 0.05, math.Sin(t+i) * 0.1
}
