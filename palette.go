package evergreen

// Scene palette. Hex triples match the printed collateral for the tree.
var (
	Gold        = MustColor("#d4af37")
	SoftGold    = MustColor("#f9e29c")
	StarGold    = MustColor("#ffd700")
	Emerald     = MustColor("#062c1e")
	EmeraldGlow = MustColor("#03140e")
	Bark        = MustColor("#2d1b0d")
	Night       = MustColor("#020a08")
	White       = MustColor("#ffffff")
)

// Palette is a fixed, ordered set of colors.
type Palette []Color

// OrnamentPalette is the luxury palette ornaments are drawn from:
// gold, emerald, soft gold, white.
var OrnamentPalette = Palette{Gold, Emerald, SoftGold, White}

// CelebrationPalette colors the confetti fired by the "Unwrap Magic" button.
var CelebrationPalette = Palette{Gold, Emerald, White}

// Index returns a uniformly chosen index into p, or -1 when p is empty.
func (p Palette) Index(rng Rand) int {
	if len(p) == 0 {
		return -1
	}
	i := int(orGlobal(rng).Float64() * float64(len(p)))
	if i >= len(p) {
		i = len(p) - 1
	}
	return i
}

// Pick returns a uniformly chosen color. An empty palette yields ColorWhite.
func (p Palette) Pick(rng Rand) Color {
	i := p.Index(rng)
	if i < 0 {
		return ColorWhite
	}
	return p[i]
}

// Pair is a two-color palette with a weighted coin flip between its entries.
type Pair struct {
	Primary   Color
	Secondary Color
	// Weight is the probability of drawing Primary, in [0, 1].
	Weight float64
}

// Flip draws one index: 0 (Primary) with probability Weight, else 1.
func (p Pair) Flip(rng Rand) uint8 {
	if orGlobal(rng).Float64() < p.Weight {
		return 0
	}
	return 1
}

// At returns the color for an index produced by Flip.
func (p Pair) At(i uint8) Color {
	if i == 0 {
		return p.Primary
	}
	return p.Secondary
}
