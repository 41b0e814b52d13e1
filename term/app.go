// Package term renders an evergreen scene as colored text in a terminal
// with tcell. The same particle fields, ornament layout, orbit camera and
// hit testing drive it as the windowed scene; only the rasterizer differs.
//
// Each terminal cell is treated as one unit wide and two tall, so the
// camera's viewport is cols×(rows*2) and projections keep their aspect.
package term

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/evergreen"
)

// Config sets up an App.
type Config struct {
	// Seed drives every random draw. Zero uses the global source.
	Seed uint64
	// FPS is the redraw rate for Run.
	FPS int
	// AutoRotate turns the camera while no key is held.
	AutoRotate bool

	Atmosphere evergreen.FieldConfig
	Glitter    evergreen.FieldConfig
	Sparkles   evergreen.FieldConfig
	Layout     evergreen.LayoutConfig
	// ConfettiPool caps live confetti pieces.
	ConfettiPool int
}

// DefaultConfig returns the full scene at 30 frames per second.
func DefaultConfig() Config {
	return Config{
		FPS:          30,
		AutoRotate:   true,
		Atmosphere:   evergreen.AtmosphericConfig(),
		Glitter:      evergreen.GlitterConfig(),
		Sparkles:     evergreen.SparkleConfig(),
		Layout:       evergreen.DefaultLayoutConfig(),
		ConfettiPool: 512,
	}
}

const (
	// orbitStep is the camera turn per arrow key press in viewport units.
	orbitStep = 2.0
	// confettiScale shrinks window-sized bursts to terminal cells.
	confettiScale = 0.12
)

var cameraTarget = evergreen.Vec3{Y: 1.6}

// App is a terminal rendition of the tree.
type App struct {
	screen tcell.Screen
	cfg    Config
	rng    evergreen.Rand

	camera     *evergreen.OrbitCamera
	tree       *evergreen.Tree
	atmosphere *evergreen.ParticleField
	glitter    *evergreen.ParticleField
	sparkles   *evergreen.ParticleField
	confetti   *evergreen.Confetti
	canvas     *Canvas
	sound      evergreen.SoundPlayer
	muted      bool

	hover   evergreen.Target
	pressed evergreen.Target
	down    bool

	elapsed float64
	bg      tcell.Style
}

// New builds an App drawing to screen. The screen must already be
// initialized.
func New(screen tcell.Screen, cfg Config) *App {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultConfig().FPS
	}
	var rng evergreen.Rand
	if cfg.Seed != 0 {
		rng = evergreen.NewRand(cfg.Seed)
	}

	a := &App{
		screen: screen,
		cfg:    cfg,
		rng:    rng,
		muted:  true,
		canvas: NewCanvas(0, 0),
		bg:     tcell.StyleDefault.Background(toTcell(evergreen.Night)),
	}
	a.atmosphere = evergreen.NewParticleField(cfg.Atmosphere, rng)
	a.glitter = evergreen.NewParticleField(cfg.Glitter, rng)
	a.tree = evergreen.NewTree(evergreen.DefaultTreeLayers, evergreen.SampleOrnaments(cfg.Layout, rng))
	a.sparkles = evergreen.NewParticleField(cfg.Sparkles, rng)
	a.confetti = evergreen.NewConfetti(cfg.ConfettiPool, rng)

	// Aim at mid-trunk so the star stays inside the short terminal frame.
	a.camera = evergreen.NewOrbitCamera(evergreen.Rect{})
	a.camera.Target = cameraTarget
	a.camera.SetPosition(cameraTarget.Add(evergreen.Vec3{Y: 2, Z: 10}))
	a.camera.AutoRotate = cfg.AutoRotate

	w, h := screen.Size()
	a.Resize(w, h)
	return a
}

// SetSoundPlayer attaches the chime player and applies the mute state.
func (a *App) SetSoundPlayer(p evergreen.SoundPlayer) {
	a.sound = p
	if p != nil {
		p.SetMuted(a.muted)
	}
}

// Camera returns the orbit camera.
func (a *App) Camera() *evergreen.OrbitCamera { return a.camera }

// Tree returns the decorated tree.
func (a *App) Tree() *evergreen.Tree { return a.tree }

// Confetti returns the confetti system, in viewport units.
func (a *App) Confetti() *evergreen.Confetti { return a.confetti }

// Canvas returns the last drawn frame.
func (a *App) Canvas() *Canvas { return a.canvas }

// Resize matches the canvas and camera to a cols×rows terminal.
func (a *App) Resize(cols, rows int) {
	a.canvas.Resize(cols, rows)
	a.camera.SetViewport(evergreen.Rect{Width: float64(cols), Height: float64(rows * 2)})
}

// viewport converts cell (x, y) to the center of that cell in viewport
// units.
func viewport(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(y)*2 + 1
}

// cellAt converts viewport units to a cell.
func cellAt(sx, sy float64) (int, int) {
	return int(math.Floor(sx)), int(math.Floor(sy / 2))
}

// Step advances the scene by dt seconds.
func (a *App) Step(dt float64) {
	a.elapsed += dt
	a.camera.Update(float32(dt), a.down)
	a.tree.Update(float32(dt))
	a.atmosphere.Update(a.elapsed)
	a.glitter.Update(a.elapsed)
	a.sparkles.Update(a.elapsed)
	a.confetti.Update()
}

// HandleEvent applies one terminal event. It returns true when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		a.Resize(w, h)
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.handleMouse(x, y, ev.Buttons()&tcell.Button1 != 0)
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		a.camera.Orbit(-orbitStep, 0)
	case tcell.KeyRight:
		a.camera.Orbit(orbitStep, 0)
	case tcell.KeyUp:
		a.camera.Orbit(0, -orbitStep)
	case tcell.KeyDown:
		a.camera.Orbit(0, orbitStep)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case '+', '=':
			a.camera.Zoom(1)
		case '-':
			a.camera.Zoom(-1)
		case ' ':
			a.Celebrate()
		case 'c':
			a.Customize()
		case 'm':
			a.ToggleMute()
		}
	}
	return false
}

// handleMouse runs hover emphasis and click activation for the pointer at
// cell (x, y).
func (a *App) handleMouse(x, y int, pressed bool) {
	vx, vy := viewport(x, y)
	target := a.tree.Pick(a.camera, vx, vy)

	if target != a.hover {
		if a.hover.Kind == evergreen.TargetOrnament {
			a.tree.Hover.Leave(a.hover.Index)
		}
		if target.Kind == evergreen.TargetOrnament {
			a.tree.Hover.Enter(target.Index)
		}
		a.hover = target
	}

	switch {
	case pressed && !a.down:
		a.down = true
		a.pressed = target
	case !pressed && a.down:
		a.down = false
		if a.pressed == target {
			a.activate(target, vx, vy)
		}
		a.pressed = evergreen.Target{}
	}
}

func (a *App) activate(target evergreen.Target, vx, vy float64) {
	switch target.Kind {
	case evergreen.TargetOrnament:
		n := a.camera.Normalized(vx, vy)
		a.burst(evergreen.OrnamentBurst(a.tree.Ornaments[target.Index], n.X, n.Y))
	case evergreen.TargetLayer:
		a.tree.Turn()
	}
}

// burst fires cfg scaled down to the terminal grid.
func (a *App) burst(cfg evergreen.BurstConfig) {
	if cfg.Scalar == 0 {
		cfg.Scalar = 1
	}
	if cfg.StartVelocity == 0 {
		cfg.StartVelocity = 45
	}
	if cfg.Gravity == 0 {
		cfg.Gravity = 1
	}
	cfg.StartVelocity *= confettiScale
	cfg.Gravity *= confettiScale
	cfg.Scalar *= confettiScale
	vp := a.camera.Viewport
	a.confetti.Burst(cfg, vp.Width, vp.Height)
}

// Celebrate fires the large confetti burst and rings the chime.
func (a *App) Celebrate() {
	a.burst(evergreen.CelebrationBurst())
	if a.sound != nil {
		a.sound.Chime()
	}
}

// Customize redraws the ornament layout.
func (a *App) Customize() {
	a.tree.SetOrnaments(evergreen.SampleOrnaments(a.cfg.Layout, a.rng))
	if a.hover.Kind == evergreen.TargetOrnament {
		a.hover = evergreen.Target{}
	}
	if a.pressed.Kind == evergreen.TargetOrnament {
		a.pressed = evergreen.Target{}
	}
}

// ToggleMute flips the audio mute state. The app starts muted.
func (a *App) ToggleMute() {
	a.muted = !a.muted
	if a.sound != nil {
		a.sound.SetMuted(a.muted)
	}
}

// Muted reports whether audio is muted.
func (a *App) Muted() bool { return a.muted }

// Draw renders the frame to the canvas and shows it on the screen.
func (a *App) Draw() {
	a.render()
	a.canvas.Flush(a.screen, a.bg)
	a.drawStatus()
	a.screen.Show()
}

func (a *App) drawStatus() {
	status := "arrows orbit  +/- zoom  space celebrate  c customize  m sound  q quit"
	if a.muted {
		status += "  [muted]"
	}
	w, h := a.canvas.Size()
	if h == 0 {
		return
	}
	style := a.bg.Foreground(toTcell(evergreen.Gold.WithAlpha(0.6)))
	for i, r := range status {
		if i >= w {
			break
		}
		a.screen.SetContent(i, h-1, r, nil, style)
	}
}

// Run enables the mouse and redraws at cfg.FPS until ctx is done or the
// user quits.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	a.screen.HideCursor()

	events := make(chan tcell.Event, 32)
	quit := make(chan struct{})
	defer close(quit)
	go a.screen.ChannelEvents(events, quit)

	dt := time.Second / time.Duration(a.cfg.FPS)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Step(dt.Seconds())
			a.Draw()
		}
	}
}
