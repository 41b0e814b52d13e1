package evergreen

import "math"

// Bounds is the volume a particle field is seeded in.
type Bounds interface {
	// sample draws one uniform position and its distance from the Y axis.
	sample(rng Rand) (pos Vec3, radius float64)
	// Vertical returns the Y band of the volume.
	Vertical() Range
}

// BoxBounds is an axis-aligned box. Each axis is sampled independently.
type BoxBounds struct {
	Min, Max Vec3
}

func (b BoxBounds) sample(rng Rand) (Vec3, float64) {
	p := Vec3{
		X: Range{b.Min.X, b.Max.X}.Random(rng),
		Y: Range{b.Min.Y, b.Max.Y}.Random(rng),
		Z: Range{b.Min.Z, b.Max.Z}.Random(rng),
	}
	return p, p.RadialDistance()
}

// Vertical returns the box's Y extent.
func (b BoxBounds) Vertical() Range { return Range{b.Min.Y, b.Max.Y} }

// CylinderBounds is a vertical cylinder (or annulus) centered on the Y axis.
// Angle is uniform, radius is uniform in Radius, height uniform in Height.
type CylinderBounds struct {
	Radius Range
	Height Range
}

func (c CylinderBounds) sample(rng Rand) (Vec3, float64) {
	angle := Range{0, 2 * math.Pi}.Random(rng)
	r := c.Radius.Random(rng)
	h := c.Height.Random(rng)
	return Vec3{math.Cos(angle) * r, h, math.Sin(angle) * r}, r
}

// Vertical returns the cylinder's height band.
func (c CylinderBounds) Vertical() Range { return c.Height }

// MotionPolicy selects how a field's particles move each frame. The policy is
// chosen per field, never per particle.
type MotionPolicy uint8

const (
	MotionFallingDrift MotionPolicy = iota // sink by speed, sway in XZ, re-enter at the top
	MotionRisingSwirl                      // orbit the Y axis, climb by speed, re-enter at the bottom
)

// TimeStep selects how far a particle moves per Update call.
type TimeStep uint8

const (
	// StepPerFrame moves each particle by exactly its speed per call, tying
	// visual speed to the frame rate.
	StepPerFrame TimeStep = iota
	// StepScaled multiplies the step by the elapsed delta in reference frames,
	// so the field moves at the same rate regardless of TPS.
	StepScaled
)

// FieldConfig controls how a particle field is seeded and animated.
type FieldConfig struct {
	// Count is the number of particles. Count <= 0 yields an empty field.
	Count int
	// Bounds is the seeding volume.
	Bounds Bounds
	// Colors is the two-color palette and its coin-flip weight.
	Colors Pair
	// Speed is the per-particle vertical step, in world units per frame.
	Speed Range
	// Phase is the per-particle angular offset in radians.
	Phase Range
	// Size is the per-particle size attribute.
	Size Range
	// Motion is the field's motion policy.
	Motion MotionPolicy
	// Wrap is the vertical band particles loop through. A zero Wrap uses
	// Bounds.Vertical().
	Wrap Range
	// Drift is the amplitude of the XZ sway for MotionFallingDrift.
	Drift float64
	// Swirl multiplies speed into angular velocity for MotionRisingSwirl.
	Swirl float64
	// Wobble is the amplitude of the orbit radius oscillation for MotionRisingSwirl.
	Wobble float64
	// Step selects per-frame or delta-scaled stepping.
	Step TimeStep
	// ReferenceTPS converts elapsed seconds into frames for StepScaled.
	ReferenceTPS float64

	// PointSize is the rendered diameter of one particle in world units.
	PointSize float64
	// Opacity is the base alpha of every particle.
	Opacity float64
	// Twinkle modulates each particle's alpha by a sinusoid of its phase.
	Twinkle bool
	// BlendMode is the compositing operation for the field.
	BlendMode BlendMode
}

// ParticleField is a fixed-size structure-of-arrays particle set sharing one
// motion policy. All slices have the same length and are written only by Update.
type ParticleField struct {
	config FieldConfig
	wrap   Range

	positions  []Vec3
	colorIndex []uint8
	speeds     []float64
	phases     []float64
	sizes      []float64
	radii      []float64

	prevElapsed float64
}

// NewParticleField seeds a field from cfg, drawing every random attribute from
// rng (nil uses the global source). Draw order per particle is position,
// color, size, speed, phase.
func NewParticleField(cfg FieldConfig, rng Rand) *ParticleField {
	n := cfg.Count
	if n < 0 {
		n = 0
	}
	if cfg.ReferenceTPS <= 0 {
		cfg.ReferenceTPS = 60
	}
	f := &ParticleField{
		config:     cfg,
		wrap:       cfg.Wrap,
		positions:  make([]Vec3, n),
		colorIndex: make([]uint8, n),
		speeds:     make([]float64, n),
		phases:     make([]float64, n),
		sizes:      make([]float64, n),
		radii:      make([]float64, n),
	}
	if f.wrap == (Range{}) && cfg.Bounds != nil {
		f.wrap = cfg.Bounds.Vertical()
	}
	if n == 0 || cfg.Bounds == nil {
		f.truncate(0)
		return f
	}

	rng = orGlobal(rng)
	for i := 0; i < n; i++ {
		f.positions[i], f.radii[i] = cfg.Bounds.sample(rng)
		f.colorIndex[i] = cfg.Colors.Flip(rng)
		f.sizes[i] = cfg.Size.Random(rng)
		f.speeds[i] = cfg.Speed.Random(rng)
		f.phases[i] = cfg.Phase.Random(rng)
	}
	return f
}

func (f *ParticleField) truncate(n int) {
	f.positions = f.positions[:n]
	f.colorIndex = f.colorIndex[:n]
	f.speeds = f.speeds[:n]
	f.phases = f.phases[:n]
	f.sizes = f.sizes[:n]
	f.radii = f.radii[:n]
}

// Len returns the number of particles.
func (f *ParticleField) Len() int { return len(f.positions) }

// Config returns a pointer to the field's config for live tuning of the
// render and motion parameters. Changing Count or Bounds has no effect.
func (f *ParticleField) Config() *FieldConfig { return &f.config }

// Wrap returns the vertical band the field loops through.
func (f *ParticleField) Wrap() Range { return f.wrap }

// Position returns particle i's current position.
func (f *ParticleField) Position(i int) Vec3 { return f.positions[i] }

// Color returns particle i's fixed color.
func (f *ParticleField) Color(i int) Color { return f.config.Colors.At(f.colorIndex[i]) }

// ColorIndex returns particle i's palette index (0 primary, 1 secondary).
func (f *ParticleField) ColorIndex(i int) uint8 { return f.colorIndex[i] }

// Speed returns particle i's fixed speed.
func (f *ParticleField) Speed(i int) float64 { return f.speeds[i] }

// Phase returns particle i's fixed phase offset.
func (f *ParticleField) Phase(i int) float64 { return f.phases[i] }

// Size returns particle i's size attribute.
func (f *ParticleField) Size(i int) float64 { return f.sizes[i] }

// Diameter returns particle i's rendered diameter. PointSize is the diameter
// of a particle whose size sits at the middle of the Size range; other
// particles scale with their size. Without a size range every particle is
// PointSize across.
func (f *ParticleField) Diameter(i int) float64 {
	mid := (f.config.Size.Min + f.config.Size.Max) / 2
	if mid <= 0 {
		return f.config.PointSize
	}
	return f.config.PointSize * f.sizes[i] / mid
}

// Alpha returns particle i's opacity at elapsed time t.
func (f *ParticleField) Alpha(i int, t float64) float64 {
	a := f.config.Opacity
	if f.config.Twinkle {
		a *= 0.5 + 0.5*math.Sin(t*3+f.phases[i])
	}
	return a
}
