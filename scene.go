package evergreen

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// LayoutStore is an EntityStore that also mirrors the ornament layout. It
// is synced when set on a Scene and after every Customize.
type LayoutStore interface {
	EntityStore
	SyncOrnaments(ornaments []Ornament)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	Target    Target
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
	// Pinch fields (valid for EventPinch)
	Scale      float64
	ScaleDelta float64
	Rotation   float64
	RotDelta   float64
}

// SoundPlayer plays the celebration chime. The audio backend lives outside
// this package so the scene runs without a sound device.
type SoundPlayer interface {
	Chime()
	SetMuted(muted bool)
}

const (
	defaultCommandCap = 4096
	particleDotSize   = 32
	grainSize         = 256
	grainOpacity      = 0.05
	vignetteOffset    = 0.1
	vignetteDarkness  = 1.1
)

// Scene is the top-level object that owns the tree, particle fields, camera,
// input state and render buffers. It implements the body of an ebiten.Game;
// see Run.
type Scene struct {
	// ClearColor fills the screen before anything is drawn.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNGs.
	ScreenshotDir string

	camera     *OrbitCamera
	tree       *Tree
	atmosphere *ParticleField
	glitter    *ParticleField
	sparkles   *ParticleField
	confetti   *Confetti
	lighting   Lighting
	baseLights int

	renderer renderer
	dot      *ebiten.Image
	vignette *ebiten.Image
	grain    *ebiten.Image
	overlay  *Overlay
	loader   *Loader
	sound    SoundPlayer
	muted    bool

	rng    Rand
	layout LayoutConfig
	cfg    SceneConfig

	width, height float64
	elapsed       float64
	frame         int
	debug         bool
	updateFunc    func() error

	// Input state
	store        EntityStore
	handlers     handlerRegistry
	pointers     [maxPointers]pointerState
	dragDeadZone float64
	touches      touchSlots
	touchIDs     []ebiten.TouchID
	pinch        pinchState

	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene builds the scene described by cfg. It fails only if a font
// cannot be loaded.
func NewScene(cfg SceneConfig) (*Scene, error) {
	var rng Rand
	if cfg.Seed != 0 {
		rng = NewRand(cfg.Seed)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	if cfg.Layers == nil {
		cfg.Layers = DefaultTreeLayers
	}

	s := &Scene{
		ClearColor:    Night,
		ScreenshotDir: cfg.ScreenshotDir,
		rng:           rng,
		layout:        cfg.Layout,
		cfg:           cfg,
		lighting:      DefaultLighting(),
		dot:           softDot(particleDotSize),
		confetti:      NewConfetti(cfg.ConfettiPool, rng),
		debug:         cfg.Debug,
		muted:         true,
		dragDeadZone:  defaultDragDeadZone,
	}
	s.baseLights = len(s.lighting.Lights)
	s.renderer.commands = make([]RenderCommand, 0, defaultCommandCap)
	s.renderer.sortBuf = make([]RenderCommand, 0, defaultCommandCap)

	s.atmosphere = NewParticleField(cfg.Atmosphere, rng)
	s.glitter = NewParticleField(cfg.Glitter, rng)
	s.tree = NewTree(cfg.Layers, SampleOrnaments(cfg.Layout, rng))
	s.sparkles = NewParticleField(cfg.Sparkles, rng)

	s.camera = NewOrbitCamera(Rect{})
	s.camera.AutoRotate = cfg.AutoRotate

	if cfg.Overlay {
		overlay, err := NewOverlay(float64(cfg.Width), float64(cfg.Height), OverlayActions{
			Celebrate:  s.Celebrate,
			Customize:  s.Customize,
			ToggleMute: s.ToggleMute,
		})
		if err != nil {
			return nil, fmt.Errorf("new scene: %w", err)
		}
		s.overlay = overlay
	}
	if cfg.LoaderDelay > 0 {
		loader, err := NewLoader(cfg.LoaderDelay)
		if err != nil {
			return nil, fmt.Errorf("new scene: %w", err)
		}
		s.loader = loader
	}
	if cfg.Grain {
		s.grain = grain(grainSize, rng)
	}

	s.Resize(cfg.Width, cfg.Height)
	return s, nil
}

// Resize relayouts the camera, overlay and screen effects for a new size.
func (s *Scene) Resize(width, height int) {
	if float64(width) == s.width && float64(height) == s.height {
		return
	}
	s.width, s.height = float64(width), float64(height)
	s.camera.SetViewport(Rect{Width: s.width, Height: s.height})
	if s.overlay != nil {
		s.overlay.Layout(s.width, s.height)
	}
	if s.cfg.Vignette {
		if s.vignette != nil {
			s.vignette.Deallocate()
		}
		s.vignette = vignette(width, height, vignetteOffset, vignetteDarkness)
	}
}

// Camera returns the scene's orbit camera.
func (s *Scene) Camera() *OrbitCamera { return s.camera }

// Tree returns the decorated tree.
func (s *Scene) Tree() *Tree { return s.tree }

// Confetti returns the screen-space confetti system.
func (s *Scene) Confetti() *Confetti { return s.confetti }

// Overlay returns the text overlay, or nil if disabled.
func (s *Scene) Overlay() *Overlay { return s.overlay }

// Loader returns the splash loader, or nil if disabled.
func (s *Scene) Loader() *Loader { return s.loader }

// Fields returns the atmospheric, glitter and sparkle fields.
func (s *Scene) Fields() (atmosphere, glitter, sparkles *ParticleField) {
	return s.atmosphere, s.glitter, s.sparkles
}

// Elapsed returns the scene clock in seconds.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// Size returns the current screen size in pixels.
func (s *Scene) Size() (width, height float64) { return s.width, s.height }

// SetEntityStore sets the optional ECS bridge. A LayoutStore receives the
// current layout at once.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
	s.syncLayout()
}

// SetSoundPlayer attaches the chime player and applies the current mute state.
func (s *Scene) SetSoundPlayer(p SoundPlayer) {
	s.sound = p
	if p != nil {
		p.SetMuted(s.muted)
	}
}

// SetUpdateFunc sets a callback run at the end of every Update. Returning
// an error (such as ebiten.Termination) stops Run.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDebugMode enables or disables per-frame timing logs on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Celebrate fires the large confetti burst and rings the chime.
func (s *Scene) Celebrate() {
	s.confetti.Burst(CelebrationBurst(), s.width, s.height)
	if s.sound != nil {
		s.sound.Chime()
	}
}

// Customize redraws the ornament layout from the scene's random source.
// Pointers over the old ornaments leave them first, and a LayoutStore is
// handed the new layout.
func (s *Scene) Customize() {
	for i := range s.pointers {
		ps := &s.pointers[i]
		if ps.hover.Kind == TargetOrnament {
			s.firePointerLeave(ps.hover, i, ps.lastX, ps.lastY, ps.button, 0)
			ps.hover = Target{}
		}
		if ps.hit.Kind == TargetOrnament {
			ps.hit = Target{}
		}
	}
	s.tree.SetOrnaments(SampleOrnaments(s.layout, s.rng))
	s.syncLayout()
}

func (s *Scene) syncLayout() {
	if ls, ok := s.store.(LayoutStore); ok {
		ls.SyncOrnaments(s.tree.Ornaments)
	}
}

// ToggleMute flips the audio mute state. The scene starts muted.
func (s *Scene) ToggleMute() {
	s.muted = !s.muted
	if s.overlay != nil {
		s.overlay.Muted = s.muted
	}
	if s.sound != nil {
		s.sound.SetMuted(s.muted)
	}
}

// Muted reports whether audio is muted.
func (s *Scene) Muted() bool { return s.muted }

// Update advances the scene by one tick: scripted steps, input, camera,
// tweens, particle fields and confetti.
func (s *Scene) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))
	s.frame++
	s.elapsed += float64(dt)

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	s.camera.Update(dt, s.orbiting())
	s.tree.Update(dt)

	s.atmosphere.Update(s.elapsed)
	s.glitter.Update(s.elapsed)
	s.sparkles.Update(s.elapsed)
	s.confetti.Update()

	s.lighting.Lights = append(s.lighting.Lights[:s.baseLights], s.tree.StarLight(s.elapsed))

	if s.overlay != nil {
		s.overlay.Update(dt)
	}
	if s.loader != nil {
		s.loader.Update(dt)
	}
}

// Draw renders the 3D scene, then the screen effects, confetti, overlay and
// loader on top.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.toRGBA())

	var report frameReport
	report.start(s.debug)

	r := &s.renderer
	r.begin(s.camera, &s.lighting)
	s.tree.draw(r, s.elapsed)
	s.drawField(s.atmosphere, nil)
	s.drawField(s.glitter, nil)
	group := s.tree.Model()
	s.drawField(s.sparkles, &group)
	report.lap(phaseEmit)

	r.mergeSort()
	report.lap(phaseSort)

	r.submitBatches(screen)
	report.lap(phaseSubmit)

	if s.debug {
		report.commands = len(r.commands)
		report.batches = countBatches(r.commands)
		report.particles = s.atmosphere.Len() + s.glitter.Len() + s.sparkles.Len()
		report.confetti = s.confetti.AliveCount()
		warnCommandCount(report.commands)
		s.debugLog(&report)
	}

	s.drawEffects(screen)
	s.confetti.Draw(screen)
	if s.overlay != nil {
		s.overlay.Draw(screen)
	}
	if s.loader != nil {
		s.loader.Draw(screen)
	}
	s.flushScreenshots(screen)
}

// drawField emits one soft sprite per particle. A non-nil model places the
// field in that group's space.
func (s *Scene) drawField(f *ParticleField, model *mgl64.Mat4) {
	cfg := f.Config()
	for i := 0; i < f.Len(); i++ {
		p := f.Position(i)
		if model != nil {
			p = transformPoint(*model, p)
		}
		col := f.Color(i)
		col.A = f.Alpha(i, s.elapsed)
		if col.A <= 0 {
			continue
		}
		s.renderer.drawSprite(s.dot, p, f.Diameter(i), col, cfg.BlendMode)
	}
}

// drawEffects layers the vignette and film grain over the 3D frame.
func (s *Scene) drawEffects(screen *ebiten.Image) {
	if s.vignette != nil {
		screen.DrawImage(s.vignette, nil)
	}
	if s.grain != nil {
		b := screen.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(grainOpacity)
		// Shift the tile every frame so the noise crawls.
		ox := float64(s.frame*37%grainSize) - grainSize
		oy := float64(s.frame*61%grainSize) - grainSize
		for y := oy; y < float64(b.Dy()); y += grainSize {
			for x := ox; x < float64(b.Dx()); x += grainSize {
				op.GeoM.Reset()
				op.GeoM.Translate(x, y)
				screen.DrawImage(s.grain, op)
			}
		}
	}
}
