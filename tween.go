package evergreen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors (TweenTo, TweenFrom, TweenVec2) and call
// Update(dt) each frame. The group writes values straight into the fields.
// An optional start delay holds the fields at their begin values until it
// elapses.
//
// There is no global animation manager. Owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	delay  float32
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. Time left over from the delay carries into the tweens.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.delay > 0 {
		g.delay -= dt
		if g.delay > 0 {
			return
		}
		dt = -g.delay
		g.delay = 0
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Add animates field from from to to alongside the group's existing
// fields and sets it to from immediately. A group holds at most four
// fields; further calls are ignored.
func (g *TweenGroup) Add(field *float64, from, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	if g.count == len(g.tweens) {
		return g
	}
	*field = from
	g.tweens[g.count] = gween.New(float32(from), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
	g.Done = false
	return g
}

// Delay sets how many seconds the group waits before animating.
func (g *TweenGroup) Delay(seconds float32) *TweenGroup {
	g.delay = seconds
	return g
}

// Waiting reports whether the group is still inside its start delay.
func (g *TweenGroup) Waiting() bool {
	return g.delay > 0
}

// TweenTo creates a TweenGroup that animates *field from its current value
// to the target over the specified duration using the easing function.
func TweenTo(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}

// TweenFrom sets *field to from immediately and animates it to the target.
func TweenFrom(field *float64, from, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	*field = from
	return TweenTo(field, to, duration, fn)
}

// TweenVec2 animates both components of v to the target.
func TweenVec2(v *Vec2, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(v.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(v.Y), float32(to.Y), duration, fn)
	g.fields[0] = &v.X
	g.fields[1] = &v.Y
	return g
}

// Pulse oscillates between 0 and 1 forever, rising over the first half of
// each period and falling over the second.
type Pulse struct {
	seq   *gween.Sequence
	value float64
}

// NewPulse creates a Pulse with the given period in seconds.
func NewPulse(period float32, fn ease.TweenFunc) *Pulse {
	half := period / 2
	seq := gween.NewSequence(
		gween.New(0, 1, half, fn),
		gween.New(1, 0, half, fn),
	)
	seq.SetLoop(-1)
	return &Pulse{seq: seq}
}

// Update advances the pulse by dt seconds and returns its value.
func (p *Pulse) Update(dt float32) float64 {
	v, _, _ := p.seq.Update(dt)
	p.value = float64(v)
	return p.value
}

// Value returns the last computed value.
func (p *Pulse) Value() float64 {
	return p.value
}

// Reset rewinds the pulse to 0.
func (p *Pulse) Reset() {
	p.seq.Reset()
	p.value = 0
}
