package evergreen

import "math"

// Emphasis is the visual weight of one ornament.
type Emphasis struct {
	Scale    float64
	Emissive float64
}

var (
	// BaseEmphasis is an ornament at rest.
	BaseEmphasis = Emphasis{Scale: 1, Emissive: 0.2}
	// HoverEmphasis is an ornament under the pointer.
	HoverEmphasis = Emphasis{Scale: 1.3, Emissive: 1.5}
)

// HoverSet records which items are currently hovered. Items are independent:
// entering or leaving one never touches another. Each item counts the
// pointers over it, so it stays hovered until the last one leaves.
type HoverSet struct {
	pointers []int
}

// NewHoverSet creates a HoverSet for n items, none hovered.
func NewHoverSet(n int) *HoverSet {
	if n < 0 {
		n = 0
	}
	return &HoverSet{pointers: make([]int, n)}
}

// Len returns the number of tracked items.
func (h *HoverSet) Len() int { return len(h.pointers) }

// Enter adds a pointer over item i. Out-of-range indices are ignored.
func (h *HoverSet) Enter(i int) {
	if i >= 0 && i < len(h.pointers) {
		h.pointers[i]++
	}
}

// Leave removes a pointer from item i. Out-of-range indices and items with
// no pointer over them are ignored.
func (h *HoverSet) Leave(i int) {
	if i >= 0 && i < len(h.pointers) && h.pointers[i] > 0 {
		h.pointers[i]--
	}
}

// IsHovered reports whether any pointer is over item i.
func (h *HoverSet) IsHovered(i int) bool {
	return i >= 0 && i < len(h.pointers) && h.pointers[i] > 0
}

// Emphasis returns item i's current emphasis.
func (h *HoverSet) Emphasis(i int) Emphasis {
	if h.IsHovered(i) {
		return HoverEmphasis
	}
	return BaseEmphasis
}

// Clear un-hovers every item.
func (h *HoverSet) Clear() {
	clear(h.pointers)
}

// OrnamentBurst is the confetti fired when an ornament is clicked at the
// normalized screen coordinate (nx, ny): 25 pieces in a 60° cone, in the
// ornament's own color plus gold.
func OrnamentBurst(o Ornament, nx, ny float64) BurstConfig {
	return BurstConfig{
		Count:  25,
		Spread: 60,
		Origin: Vec2{nx, ny},
		Colors: []Color{o.Color, Gold},
	}
}

// CelebrationBurst is the confetti fired by the "Unwrap Magic" button.
func CelebrationBurst() BurstConfig {
	return BurstConfig{
		Count:  150,
		Spread: 70,
		Origin: Vec2{0.5, 0.6},
		Colors: CelebrationPalette,
	}
}

// treeTurn is the group rotation applied per click on a foliage layer.
const treeTurn = math.Pi / 4
