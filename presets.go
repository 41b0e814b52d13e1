package evergreen

import "math"

// AtmosphericConfig returns the slow golden dust that drifts down through the
// whole scene: 200 particles in a 20x15x20 box, 30% gold and 70% emerald.
func AtmosphericConfig() FieldConfig {
	return FieldConfig{
		Count: 200,
		Bounds: BoxBounds{
			Min: Vec3{-10, -5, -10},
			Max: Vec3{10, 10, 10},
		},
		Colors:    Pair{Primary: Gold, Secondary: Emerald, Weight: 0.3},
		Speed:     Range{0.005, 0.015},
		Size:      Range{0.02, 0.07},
		Motion:    MotionFallingDrift,
		Drift:     0.002,
		PointSize: 0.08,
		Opacity:   0.4,
		BlendMode: BlendAdd,
	}
}

// GlitterConfig returns the bright glitter that spirals up around the tree:
// 300 particles in a cylinder of radius 1..5, half soft gold and half white.
func GlitterConfig() FieldConfig {
	return FieldConfig{
		Count: 300,
		Bounds: CylinderBounds{
			Radius: Range{1, 5},
			Height: Range{-2, 8},
		},
		Colors:    Pair{Primary: SoftGold, Secondary: White, Weight: 0.5},
		Speed:     Range{0.02, 0.06},
		Phase:     Range{0, 2 * math.Pi},
		Motion:    MotionRisingSwirl,
		Swirl:     5,
		Wobble:    0.2,
		PointSize: 0.04,
		Opacity:   0.6,
		BlendMode: BlendAdd,
	}
}

// SparkleConfig returns the twinkling gold motes hugging the foliage.
func SparkleConfig() FieldConfig {
	return FieldConfig{
		Count: 100,
		Bounds: CylinderBounds{
			Radius: Range{0.3, 3},
			Height: Range{-0.5, 5.5},
		},
		Colors:    Pair{Primary: Gold, Secondary: SoftGold, Weight: 1},
		Speed:     Range{0.001, 0.004},
		Phase:     Range{0, 2 * math.Pi},
		Size:      Range{0.5, 1},
		Motion:    MotionRisingSwirl,
		Swirl:     2,
		Wobble:    0.1,
		PointSize: 0.07,
		Opacity:   0.8,
		Twinkle:   true,
		BlendMode: BlendAdd,
	}
}

// DefaultLayoutConfig returns the 60-ornament layout: heights in [0, 4) on a
// cone of height 4.5 and base radius 2.5.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Count:      60,
		Height:     Range{0, 4},
		ConeHeight: 4.5,
		BaseRadius: 2.5,
		Palette:    OrnamentPalette,
		Size:       Range{0.08, 0.18},
	}
}

// TreeLayer is one foliage cone. Y is the cone's center.
type TreeLayer struct {
	Radius, Height, Y float64
}

// DefaultTreeLayers are the five stacked foliage cones, widest first.
var DefaultTreeLayers = []TreeLayer{
	{Radius: 2.5, Height: 2, Y: 0},
	{Radius: 2, Height: 1.8, Y: 1.2},
	{Radius: 1.5, Height: 1.5, Y: 2.2},
	{Radius: 1, Height: 1.2, Y: 3},
	{Radius: 0.5, Height: 0.8, Y: 3.6},
}
