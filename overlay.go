package evergreen

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	overlayPadding = 48.0
	// overlayFade is the duration of every panel's entrance.
	overlayFade    = 1
	paragraphWidth = 420.0
)

// Overlay button indices, stable for Target.Index.
const (
	ButtonMute = iota
	ButtonCelebrate
	ButtonCustomize
	buttonCount
)

// OverlayActions are the callbacks the overlay buttons trigger. Nil
// actions are skipped.
type OverlayActions struct {
	Celebrate  func()
	Customize  func()
	ToggleMute func()
}

// Button is a rectangular overlay control. Bounds are relative to the
// owning panel's resting position.
type Button struct {
	Label   string
	Bounds  Rect
	Filled  bool
	OnPress func()
	panel   int
}

type textLine struct {
	s     string
	face  *text.GoTextFace
	color Color
	x, y  float64
	// right aligns the line's right edge on x.
	right bool
}

type divider struct {
	x0, y0, x1, y1 float64
	color          Color
}

// overlayPanel is one block of copy that fades and slides in together.
type overlayPanel struct {
	lines    []textLine
	dividers []divider
	alpha    float64
	offsetX  float64
	offsetY  float64
	tween    *TweenGroup
}

type overlayFaces struct {
	label, title, heading, headingItalic, body, button, caption, captionItalic *text.GoTextFace
}

// Overlay is the 2D copy and controls drawn over the scene: a header with
// the collection title and mute toggle, the main pitch with two buttons,
// and a footer of material notes.
type Overlay struct {
	// Muted selects the mute button's icon.
	Muted bool

	panels  [3]overlayPanel
	buttons [buttonCount]Button
	hovered int
	faces   overlayFaces
	sparkle *Pulse
	width   float64
	height  float64
}

const (
	panelHeader = iota
	panelMain
	panelFooter
)

// NewOverlay loads the Go fonts and lays the overlay out for a
// width×height screen. Panels start hidden and fade in on Update.
func NewOverlay(width, height float64, actions OverlayActions) (*Overlay, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load overlay font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load overlay font: %w", err)
	}
	italic, err := text.NewGoTextFaceSource(bytes.NewReader(goitalic.TTF))
	if err != nil {
		return nil, fmt.Errorf("load overlay font: %w", err)
	}

	o := &Overlay{
		Muted:   true,
		hovered: -1,
		sparkle: NewPulse(2, ease.InOutSine),
		faces: overlayFaces{
			label:         &text.GoTextFace{Source: regular, Size: 10},
			title:         &text.GoTextFace{Source: bold, Size: 48},
			heading:       &text.GoTextFace{Source: bold, Size: 52},
			headingItalic: &text.GoTextFace{Source: italic, Size: 52},
			body:          &text.GoTextFace{Source: regular, Size: 15},
			button:        &text.GoTextFace{Source: bold, Size: 12},
			caption:       &text.GoTextFace{Source: regular, Size: 9},
			captionItalic: &text.GoTextFace{Source: italic, Size: 14},
		},
	}
	o.buttons[ButtonMute] = Button{Label: "Mute", panel: panelHeader, OnPress: actions.ToggleMute}
	o.buttons[ButtonCelebrate] = Button{Label: "Unwrap Magic", Filled: true, panel: panelMain, OnPress: actions.Celebrate}
	o.buttons[ButtonCustomize] = Button{Label: "Customize", panel: panelMain, OnPress: actions.Customize}

	o.Layout(width, height)

	o.panels[panelHeader].tween = new(TweenGroup).
		Add(&o.panels[panelHeader].alpha, 0, 1, overlayFade, ease.OutCubic).
		Add(&o.panels[panelHeader].offsetY, -20, 0, overlayFade, ease.OutCubic).
		Delay(0.5)
	o.panels[panelMain].tween = new(TweenGroup).
		Add(&o.panels[panelMain].alpha, 0, 1, overlayFade, ease.OutCubic).
		Add(&o.panels[panelMain].offsetX, -30, 0, overlayFade, ease.OutCubic).
		Delay(1)
	o.panels[panelFooter].tween = new(TweenGroup).
		Add(&o.panels[panelFooter].alpha, 0, 1, overlayFade, ease.OutCubic).
		Delay(1.5)
	return o, nil
}

// Layout positions every line and button for a width×height screen.
func (o *Overlay) Layout(width, height float64) {
	o.width, o.height = width, height
	f := &o.faces
	pad := overlayPadding

	header := &o.panels[panelHeader]
	header.lines = header.lines[:0]
	header.lines = append(header.lines,
		textLine{s: "SIGNATURE COLLECTION", face: f.label, color: White.WithAlpha(0.6), x: pad, y: pad},
		textLine{s: "Arix Christmas", face: f.title, color: Gold, x: pad, y: pad + 16},
	)
	o.buttons[ButtonMute].Bounds = Rect{X: width - pad - 44, Y: pad, Width: 44, Height: 44}

	pitch := &o.panels[panelMain]
	pitch.lines = pitch.lines[:0]
	pitch.dividers = pitch.dividers[:0]
	y := height/2 - 150
	pitch.dividers = append(pitch.dividers, divider{pad, y + 7, pad + 48, y + 7, Gold.WithAlpha(0.4)})
	pitch.lines = append(pitch.lines,
		textLine{s: "INTERACTIVE EXPERIENCE", face: f.button, color: SoftGold, x: pad + 64, y: y},
		textLine{s: "The Golden", face: f.heading, color: White, x: pad, y: y + 32},
	)
	y += 32 + f.heading.Size*0.95
	emerald := "Emerald"
	pitch.lines = append(pitch.lines,
		textLine{s: emerald, face: f.headingItalic, color: White, x: pad, y: y},
		textLine{s: " Tree", face: f.heading, color: White, x: pad + text.Advance(emerald, f.headingItalic), y: y},
	)
	y += f.heading.Size*0.95 + 24
	paragraph := "Experience the pinnacle of festive luxury. A handcrafted digital masterpiece " +
		"adorned with signature Arix ornaments and cinematic radiance."
	for _, line := range wrapText(paragraph, f.body, math.Min(paragraphWidth, width-2*pad)) {
		pitch.lines = append(pitch.lines, textLine{s: line, face: f.body, color: White.WithAlpha(0.6), x: pad, y: y})
		y += f.body.Size * 1.6
	}
	y += 24
	x := pad
	for _, i := range []int{ButtonCelebrate, ButtonCustomize} {
		b := &o.buttons[i]
		w := text.Advance(strings.ToUpper(b.Label), f.button) + 64
		b.Bounds = Rect{X: x, Y: y, Width: w, Height: 44}
		x += w + 16
	}

	footer := &o.panels[panelFooter]
	footer.lines = footer.lines[:0]
	footer.dividers = footer.dividers[:0]
	fy := height - pad - 30
	footer.lines = append(footer.lines,
		textLine{s: "MATERIAL", face: f.caption, color: White.WithAlpha(0.4), x: pad, y: fy},
		textLine{s: "Emerald Silk & Gold", face: f.captionItalic, color: White, x: pad, y: fy + 14},
		textLine{s: "LIGHTING", face: f.caption, color: White.WithAlpha(0.4), x: pad + 190, y: fy},
		textLine{s: "Cinematic Bloom", face: f.captionItalic, color: White, x: pad + 190, y: fy + 14},
		textLine{s: "SCROLL TO EXPLORE", face: f.label, color: White.WithAlpha(0.4), x: width - pad - 48, y: fy + 14, right: true},
	)
	footer.dividers = append(footer.dividers, divider{width - pad - 32, fy + 20, width - pad, fy + 20, White.WithAlpha(0.2)})
}

// wrapText breaks s into lines no wider than maxWidth. A single word wider
// than maxWidth gets a line of its own.
func wrapText(s string, face text.Face, maxWidth float64) []string {
	var lines []string
	var cur string
	for _, word := range strings.Fields(s) {
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		if cur != "" && text.Advance(next, face) > maxWidth {
			lines = append(lines, cur)
			next = word
		}
		cur = next
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// Update advances the entrance tweens and the decorative sparkle.
func (o *Overlay) Update(dt float32) {
	for i := range o.panels {
		if t := o.panels[i].tween; t != nil {
			t.Update(dt)
			if t.Done {
				o.panels[i].tween = nil
			}
		}
	}
	o.sparkle.Update(dt)
}

// panelVisible reports whether panel i has started to appear.
func (o *Overlay) panelVisible(i int) bool {
	return o.panels[i].alpha > 0
}

// buttonBounds returns button i's current screen rectangle, including the
// panel's slide offset.
func (o *Overlay) buttonBounds(i int) Rect {
	b := &o.buttons[i]
	p := &o.panels[b.panel]
	r := b.Bounds
	r.X += p.offsetX
	r.Y += p.offsetY
	return r
}

// buttonAt returns the index of the visible button at (x, y), or -1.
func (o *Overlay) buttonAt(x, y float64) int {
	for i := range o.buttons {
		if !o.panelVisible(o.buttons[i].panel) {
			continue
		}
		if o.buttonBounds(i).Contains(x, y) {
			return i
		}
	}
	return -1
}

// press runs button i's action.
func (o *Overlay) press(i int) {
	if i < 0 || i >= len(o.buttons) {
		return
	}
	if fn := o.buttons[i].OnPress; fn != nil {
		fn()
	}
}

// setHovered highlights button i; -1 clears the highlight.
func (o *Overlay) setHovered(i int) {
	o.hovered = i
}

// Draw renders every visible panel onto dst.
func (o *Overlay) Draw(dst *ebiten.Image) {
	o.drawSparkle(dst)
	for i := range o.panels {
		p := &o.panels[i]
		if p.alpha <= 0 {
			continue
		}
		for _, d := range p.dividers {
			vector.StrokeLine(dst,
				float32(d.x0+p.offsetX), float32(d.y0+p.offsetY),
				float32(d.x1+p.offsetX), float32(d.y1+p.offsetY),
				1, d.color.WithAlpha(d.color.A*p.alpha).toRGBA(), true)
		}
		for _, l := range p.lines {
			drawText(dst, l, p.offsetX, p.offsetY, p.alpha)
		}
	}
	for i := range o.buttons {
		if o.panelVisible(o.buttons[i].panel) {
			o.drawButton(dst, i)
		}
	}
}

func drawText(dst *ebiten.Image, l textLine, dx, dy, alpha float64) {
	op := &text.DrawOptions{}
	x := l.x + dx
	if l.right {
		x -= text.Advance(l.s, l.face)
	}
	op.GeoM.Translate(x, l.y+dy)
	op.ColorScale.Scale(float32(l.color.R), float32(l.color.G), float32(l.color.B), 1)
	op.ColorScale.ScaleAlpha(float32(l.color.A * alpha))
	text.Draw(dst, l.s, l.face, op)
}

func (o *Overlay) drawButton(dst *ebiten.Image, i int) {
	b := &o.buttons[i]
	alpha := o.panels[b.panel].alpha
	r := o.buttonBounds(i)
	hot := o.hovered == i

	if i == ButtonMute {
		o.drawMuteButton(dst, r, alpha, hot)
		return
	}

	fg := Gold
	if b.Filled {
		fill := Gold
		if hot {
			fill = Gold.Mix(White, 0.2)
		}
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
			fill.WithAlpha(alpha).toRGBA(), true)
		fg = Emerald
	} else {
		bg := White.WithAlpha(0.05)
		if hot {
			bg = Gold.WithAlpha(0.1)
		}
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
			bg.WithAlpha(bg.A*alpha).toRGBA(), true)
		vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1,
			White.WithAlpha(0.1*alpha).toRGBA(), true)
	}

	label := strings.ToUpper(b.Label)
	tw := text.Advance(label, o.faces.button)
	drawText(dst, textLine{
		s: label, face: o.faces.button, color: fg,
		x: r.X + (r.Width-tw)/2, y: r.Y + (r.Height-o.faces.button.Size)/2,
	}, 0, 0, alpha)
}

// drawMuteButton draws a round glass button with a speaker glyph, crossed
// out while muted.
func (o *Overlay) drawMuteButton(dst *ebiten.Image, r Rect, alpha float64, hot bool) {
	cx := float32(r.X + r.Width/2)
	cy := float32(r.Y + r.Height/2)
	radius := float32(r.Width / 2)
	if hot {
		radius *= 1.1
	}
	vector.DrawFilledCircle(dst, cx, cy, radius, White.WithAlpha(0.05*alpha).toRGBA(), true)
	vector.StrokeCircle(dst, cx, cy, radius, 1, White.WithAlpha(0.1*alpha).toRGBA(), true)

	ink := StarGold.WithAlpha(alpha).toRGBA()
	vector.DrawFilledRect(dst, cx-8, cy-3, 4, 6, ink, true)
	vector.StrokeLine(dst, cx-4, cy-3, cx+1, cy-8, 1.5, ink, true)
	vector.StrokeLine(dst, cx-4, cy+3, cx+1, cy+8, 1.5, ink, true)
	vector.StrokeLine(dst, cx+1, cy-8, cx+1, cy+8, 1.5, ink, true)
	if o.Muted {
		vector.StrokeLine(dst, cx+4, cy-4, cx+10, cy+4, 1.5, ink, true)
		vector.StrokeLine(dst, cx+4, cy+4, cx+10, cy-4, 1.5, ink, true)
		return
	}
	vector.StrokeLine(dst, cx+4, cy-3, cx+6, cy, 1.5, ink, true)
	vector.StrokeLine(dst, cx+6, cy, cx+4, cy+3, 1.5, ink, true)
	vector.StrokeLine(dst, cx+7, cy-6, cx+10, cy, 1.5, ink, true)
	vector.StrokeLine(dst, cx+10, cy, cx+7, cy+6, 1.5, ink, true)
}

// drawSparkle draws the faint pulsing four-point star in the top right.
func (o *Overlay) drawSparkle(dst *ebiten.Image) {
	cx := float32(o.width - overlayPadding - 60)
	cy := float32(overlayPadding + 120)
	v := o.sparkle.Value()
	ink := StarGold.WithAlpha(0.05 + 0.05*v).toRGBA()
	const arm = 60
	vector.StrokeLine(dst, cx, cy-arm, cx, cy+arm, 3, ink, true)
	vector.StrokeLine(dst, cx-arm, cy, cx+arm, cy, 3, ink, true)
	vector.StrokeLine(dst, cx-arm/3, cy-arm/3, cx+arm/3, cy+arm/3, 2, ink, true)
	vector.StrokeLine(dst, cx-arm/3, cy+arm/3, cx+arm/3, cy-arm/3, 2, ink, true)
}
