package evergreen

import "math"

// LightKind distinguishes point lights from spot lights.
type LightKind uint8

const (
	LightPoint LightKind = iota // radiates in every direction
	LightSpot                   // cone aimed at Target
)

// Light is a positional light source.
type Light struct {
	Kind      LightKind
	Position  Vec3
	Color     Color
	Intensity float64
	// Distance is the range after which the light contributes nothing.
	// Zero means unlimited.
	Distance float64

	// Spot-only.
	Target   Vec3
	Angle    float64 // cone half-angle in radians
	Penumbra float64 // fraction of the cone that fades, in [0, 1]
}

// Fog blends distant surfaces toward Color between Near and Far view depth.
type Fog struct {
	Color     Color
	Near, Far float64
}

// Factor returns the fog blend amount at the given depth, in [0, 1].
func (f Fog) Factor(depth float64) float64 {
	if f.Far <= f.Near {
		return 0
	}
	return clamp01((depth - f.Near) / (f.Far - f.Near))
}

// Apply blends c toward the fog color for the given depth.
func (f Fog) Apply(c Color, depth float64) Color {
	k := f.Factor(depth)
	if k == 0 {
		return c
	}
	return Color{
		R: lerp(c.R, f.Color.R, k),
		G: lerp(c.G, f.Color.G, k),
		B: lerp(c.B, f.Color.B, k),
		A: c.A,
	}
}

// Material describes how a surface responds to light.
type Material struct {
	Color             Color
	Emissive          Color
	EmissiveIntensity float64
	// Shininess controls the specular highlight size. Zero disables it.
	Shininess float64
	Opacity   float64
}

// Lighting is the full light rig for a frame.
type Lighting struct {
	Ambient float64
	Lights  []Light
	Fog     Fog
}

// DefaultLighting returns the night-scene rig: dim ambient, a warm spot
// from the upper right and an emerald fill from behind.
func DefaultLighting() Lighting {
	return Lighting{
		Ambient: 0.2,
		Lights: []Light{
			{
				Kind:      LightSpot,
				Position:  Vec3{10, 10, 10},
				Color:     SoftGold,
				Intensity: 2,
				Angle:     0.15,
				Penumbra:  1,
			},
			{
				Kind:      LightPoint,
				Position:  Vec3{-5, 5, -5},
				Color:     Emerald,
				Intensity: 1,
			},
		},
		Fog: Fog{Color: Night, Near: 8, Far: 20},
	}
}

// Shade computes the lit color of a surface point seen from eye.
func (l *Lighting) Shade(m Material, p, n, eye Vec3) Color {
	base := m.Color
	r := base.R * l.Ambient
	g := base.G * l.Ambient
	b := base.B * l.Ambient

	view := eye.Sub(p).Normalize()
	for i := range l.Lights {
		lt := &l.Lights[i]
		toLight := lt.Position.Sub(p)
		dist := toLight.Len()
		if dist == 0 {
			continue
		}
		dir := toLight.Scale(1 / dist)
		k := lt.Intensity * lt.attenuation(dist)
		if lt.Kind == LightSpot {
			k *= lt.spotFactor(p)
		}
		if k == 0 {
			continue
		}

		diff := math.Max(0, n.Dot(dir)) * k
		r += base.R * lt.Color.R * diff
		g += base.G * lt.Color.G * diff
		b += base.B * lt.Color.B * diff

		if m.Shininess > 0 && diff > 0 {
			h := dir.Add(view).Normalize()
			specular := math.Pow(math.Max(0, n.Dot(h)), m.Shininess) * k * 0.5
			r += lt.Color.R * specular
			g += lt.Color.G * specular
			b += lt.Color.B * specular
		}
	}

	r += m.Emissive.R * m.EmissiveIntensity
	g += m.Emissive.G * m.EmissiveIntensity
	b += m.Emissive.B * m.EmissiveIntensity

	a := m.Opacity
	if a == 0 {
		a = 1
	}
	return Color{clamp01(r), clamp01(g), clamp01(b), a}
}

func (lt *Light) attenuation(dist float64) float64 {
	if lt.Distance <= 0 {
		return 1
	}
	f := clamp01(1 - dist/lt.Distance)
	return f * f
}

func (lt *Light) spotFactor(p Vec3) float64 {
	axis := lt.Target.Sub(lt.Position).Normalize()
	cosAngle := p.Sub(lt.Position).Normalize().Dot(axis)
	outer := math.Cos(lt.Angle)
	inner := math.Cos(lt.Angle * (1 - lt.Penumbra))
	if cosAngle <= outer {
		return 0
	}
	if cosAngle >= inner || inner == outer {
		return 1
	}
	t := (cosAngle - outer) / (inner - outer)
	return t * t * (3 - 2*t)
}
