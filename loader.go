package evergreen

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/gofont/gobold"
)

const (
	loaderRingRadius = 48
	loaderFade       = 1
	loaderPulse      = 2
)

// Loader is the full-screen splash shown while the scene settles: a pulsing
// gold arc over the collection name. It hides itself once after a delay and
// then fades out.
type Loader struct {
	Title string

	alpha   float64
	ring    *Pulse
	hideIn  float32
	pending bool
	fade    *TweenGroup
	face    *text.GoTextFace

	vs []ebiten.Vertex
	is []uint16
}

// NewLoader creates a visible loader that starts fading after delay seconds.
func NewLoader(delay float32) (*Loader, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load loader font: %w", err)
	}
	return &Loader{
		Title:   "ARIX SIGNATURE",
		alpha:   1,
		ring:    NewPulse(loaderPulse, ease.InOutSine),
		hideIn:  delay,
		pending: true,
		face:    &text.GoTextFace{Source: src, Size: 24},
	}, nil
}

// Update advances the ring pulse, the hide countdown and the fade.
func (l *Loader) Update(dt float32) {
	l.ring.Update(dt)
	if l.pending {
		l.hideIn -= dt
		if l.hideIn <= 0 {
			l.Hide()
		}
	}
	if l.fade != nil {
		l.fade.Update(dt)
		if l.fade.Done {
			l.fade = nil
		}
	}
}

// Hide starts the fade out now. The deferred hide no longer fires.
func (l *Loader) Hide() {
	l.pending = false
	if l.fade == nil && l.alpha > 0 {
		l.fade = TweenTo(&l.alpha, 0, loaderFade, ease.Linear)
	}
}

// Cancel stops the deferred hide without hiding. The loader stays until
// Hide is called.
func (l *Loader) Cancel() {
	l.pending = false
}

// Pending reports whether the deferred hide is still counting down.
func (l *Loader) Pending() bool {
	return l.pending
}

// Alpha returns the loader's overall opacity.
func (l *Loader) Alpha() float64 {
	return l.alpha
}

// Visible reports whether any of the loader is still on screen.
func (l *Loader) Visible() bool {
	return l.alpha > 0
}

// RingScale returns the ring's current scale, pulsing between 1 and 1.1.
func (l *Loader) RingScale() float64 {
	return 1 + 0.1*l.ring.Value()
}

// RingOpacity returns the ring's current opacity, pulsing between 0.5 and 1.
func (l *Loader) RingOpacity() float64 {
	return 0.5 + 0.5*l.ring.Value()
}

// Draw covers dst with the splash at the loader's current opacity.
func (l *Loader) Draw(dst *ebiten.Image) {
	if !l.Visible() {
		return
	}
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	vector.DrawFilledRect(dst, 0, 0, float32(w), float32(h), Night.WithAlpha(l.alpha).toRGBA(), false)

	cx, cy := w/2, h/2-32
	r := loaderRingRadius * l.RingScale()

	var p vector.Path
	p.Arc(float32(cx), float32(cy), float32(r), -3*math.Pi/4, -math.Pi/4, vector.Clockwise)
	l.vs, l.is = p.AppendVerticesAndIndicesForStroke(l.vs[:0], l.is[:0], &vector.StrokeOptions{
		Width:   2,
		LineCap: vector.LineCapRound,
	})
	c := Gold.WithAlpha(l.alpha * l.RingOpacity())
	for i := range l.vs {
		l.vs[i].SrcX, l.vs[i].SrcY = 0.5, 0.5
		l.vs[i].ColorR = float32(c.R * c.A)
		l.vs[i].ColorG = float32(c.G * c.A)
		l.vs[i].ColorB = float32(c.B * c.A)
		l.vs[i].ColorA = float32(c.A)
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha}
	dst.DrawTriangles(l.vs, l.is, WhitePixel, op)

	tw := text.Advance(l.Title, l.face)
	drawText(dst, textLine{
		s: l.Title, face: l.face, color: Gold,
		x: cx - tw/2, y: cy + loaderRingRadius + 32,
	}, 0, 0, l.alpha)
}
