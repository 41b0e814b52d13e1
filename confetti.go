package evergreen

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// confettiPiece holds per-piece simulation state. Unexported; managed by Confetti.
type confettiPiece struct {
	x, y        float64 // screen pixels
	angle       float64 // launch direction in radians (screen space, y down)
	velocity    float64 // pixels per tick
	decay       float64
	gravity     float64
	drift       float64
	wobble      float64
	wobbleSpeed float64
	tilt        float64
	tick        int
	totalTicks  int
	size        float64
	color       Color
}

// BurstConfig describes one confetti burst, modelled on canvas-confetti's
// options. Zero fields take the defaults noted on each.
type BurstConfig struct {
	// Count is the number of pieces (default 50).
	Count int
	// Angle is the launch direction in degrees, 90 = straight up (default 90).
	Angle float64
	// Spread is the cone width in degrees around Angle (default 45).
	Spread float64
	// StartVelocity is the mean launch speed in pixels per tick (default 45).
	StartVelocity float64
	// Decay is the per-tick velocity multiplier (default 0.9).
	Decay float64
	// Gravity is the downward pull per tick, in units of 3px (default 1).
	Gravity float64
	// Drift is the horizontal push per tick.
	Drift float64
	// Ticks is the lifetime of every piece (default 200).
	Ticks int
	// Origin is the launch point in normalized screen coordinates [0, 1].
	Origin Vec2
	// Colors are cycled across pieces (default CelebrationPalette).
	Colors []Color
	// Scalar scales piece size (default 1).
	Scalar float64
}

func (c BurstConfig) withDefaults() BurstConfig {
	if c.Count <= 0 {
		c.Count = 50
	}
	if c.Angle == 0 {
		c.Angle = 90
	}
	if c.Spread == 0 {
		c.Spread = 45
	}
	if c.StartVelocity == 0 {
		c.StartVelocity = 45
	}
	if c.Decay == 0 {
		c.Decay = 0.9
	}
	if c.Gravity == 0 {
		c.Gravity = 1
	}
	if c.Ticks <= 0 {
		c.Ticks = 200
	}
	if len(c.Colors) == 0 {
		c.Colors = CelebrationPalette
	}
	if c.Scalar == 0 {
		c.Scalar = 1
	}
	return c
}

const defaultConfettiPool = 512

// Confetti is a screen-space burst effect with a preallocated piece pool.
// Pieces step once per Update call.
type Confetti struct {
	pieces []confettiPiece
	alive  int
	rng    Rand

	verts []ebiten.Vertex
	inds  []uint32
}

// NewConfetti creates a Confetti with room for maxPieces live pieces.
// maxPieces <= 0 uses a pool of 512. A nil rng uses the global source.
func NewConfetti(maxPieces int, rng Rand) *Confetti {
	if maxPieces <= 0 {
		maxPieces = defaultConfettiPool
	}
	return &Confetti{
		pieces: make([]confettiPiece, maxPieces),
		rng:    orGlobal(rng),
	}
}

// Burst launches cfg.Count pieces from cfg.Origin on a width×height screen.
// Pieces beyond the pool capacity are silently dropped. Returns the number
// actually spawned.
func (c *Confetti) Burst(cfg BurstConfig, width, height float64) int {
	cfg = cfg.withDefaults()
	ox := cfg.Origin.X * width
	oy := cfg.Origin.Y * height
	base := cfg.Angle * math.Pi / 180
	spread := cfg.Spread * math.Pi / 180

	spawned := 0
	for i := 0; i < cfg.Count && c.alive < len(c.pieces); i++ {
		p := &c.pieces[c.alive]
		*p = confettiPiece{
			x:           ox,
			y:           oy,
			angle:       base + (0.5*spread - c.rng.Float64()*spread),
			velocity:    cfg.StartVelocity*0.5 + c.rng.Float64()*cfg.StartVelocity,
			decay:       cfg.Decay,
			gravity:     cfg.Gravity * 3,
			drift:       cfg.Drift,
			wobble:      c.rng.Float64() * 10,
			wobbleSpeed: math.Min(0.11, c.rng.Float64()*0.1+0.05),
			tilt:        (c.rng.Float64()*0.5 + 0.25) * math.Pi,
			totalTicks:  cfg.Ticks,
			size:        10 * cfg.Scalar,
			color:       cfg.Colors[i%len(cfg.Colors)],
		}
		c.alive++
		spawned++
	}
	return spawned
}

// Update advances every live piece by one tick and swap-removes expired ones.
func (c *Confetti) Update() {
	i := 0
	for i < c.alive {
		p := &c.pieces[i]
		p.tick++
		if p.tick >= p.totalTicks {
			c.alive--
			c.pieces[i] = c.pieces[c.alive]
			continue
		}

		// Screen Y grows downward, so an upward launch subtracts.
		p.x += math.Cos(p.angle)*p.velocity + p.drift
		p.y += -math.Sin(p.angle)*p.velocity + p.gravity
		p.velocity *= p.decay
		p.wobble += p.wobbleSpeed
		p.tilt += 0.1

		i++
	}
}

// AliveCount returns the number of live pieces.
func (c *Confetti) AliveCount() int {
	return c.alive
}

// Piece returns live piece i's anchor and its color faded by age.
// i must be below AliveCount.
func (c *Confetti) Piece(i int) (x, y float64, col Color) {
	p := &c.pieces[i]
	return p.x, p.y, p.color.WithAlpha(1 - p.progress())
}

// Reset kills every live piece.
func (c *Confetti) Reset() {
	c.alive = 0
}

// progress returns how far through its life a piece is, in [0, 1).
func (p *confettiPiece) progress() float64 {
	return float64(p.tick) / float64(p.totalTicks)
}

// corners returns the screen-space quad of the piece: its anchor, the
// wobble point, and both offset by the tilt.
func (p *confettiPiece) corners() [4]Vec2 {
	wx := p.x + p.size*math.Cos(p.wobble)
	wy := p.y + p.size*math.Sin(p.wobble)
	tc := 2.5 * math.Cos(p.tilt)
	ts := 2.5 * math.Sin(p.tilt)
	return [4]Vec2{
		{p.x, p.y},
		{wx, p.y + ts},
		{wx + tc, wy + ts},
		{p.x + tc, wy},
	}
}

// Draw renders every live piece onto dst as a tilted quad that fades out
// over its life.
func (c *Confetti) Draw(dst *ebiten.Image) {
	if c.alive == 0 {
		return
	}
	c.verts = c.verts[:0]
	c.inds = c.inds[:0]
	for i := 0; i < c.alive; i++ {
		p := &c.pieces[i]
		col := p.color.WithAlpha(1 - p.progress())
		base := uint32(len(c.verts))
		for _, v := range p.corners() {
			c.verts = append(c.verts, vertex(v.X, v.Y, 0.5, 0.5, col))
		}
		c.inds = append(c.inds, base, base+1, base+2, base, base+2, base+3)
	}
	op := &ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha}
	dst.DrawTriangles32(c.verts, c.inds, WhitePixel, op)
}
