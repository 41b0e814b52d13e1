package evergreen

// SceneConfig controls how NewScene seeds and lays out the scene.
type SceneConfig struct {
	// Width and Height are the initial screen size in pixels.
	Width, Height int
	// Seed drives every random draw. Zero uses the global source, so each
	// run differs.
	Seed uint64

	Atmosphere FieldConfig
	Glitter    FieldConfig
	// Sparkles turn with the tree.
	Sparkles FieldConfig

	Layout LayoutConfig
	Layers []TreeLayer

	// AutoRotate turns the camera slowly while nobody is dragging.
	AutoRotate bool
	// ConfettiPool caps the number of live confetti pieces.
	ConfettiPool int

	// LoaderDelay is how long the splash stays before fading, in seconds.
	// Zero skips the splash.
	LoaderDelay float32
	// Overlay draws the text panels and buttons.
	Overlay bool
	// Vignette darkens the screen edges.
	Vignette bool
	// Grain overlays faint film noise.
	Grain bool

	// Debug logs per-frame timings to stderr.
	Debug bool
	// ScreenshotDir is where Screenshot writes PNGs.
	ScreenshotDir string
}

// DefaultSceneConfig returns the full scene at 1280x720: both particle
// fields, sparkles, the 60-ornament layout, overlay, loader and
// post effects.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Width:         1280,
		Height:        720,
		Atmosphere:    AtmosphericConfig(),
		Glitter:       GlitterConfig(),
		Sparkles:      SparkleConfig(),
		Layout:        DefaultLayoutConfig(),
		Layers:        DefaultTreeLayers,
		AutoRotate:    true,
		ConfettiPool:  1024,
		LoaderDelay:   2,
		Overlay:       true,
		Vignette:      true,
		Grain:         true,
		ScreenshotDir: "screenshots",
	}
}

// RunConfig holds optional configuration for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the window size in device-independent pixels.
	Width, Height int
	// ShowFPS draws an FPS/TPS readout in the corner.
	ShowFPS bool
	// Resizable lets the window be resized; the scene relayouts to match.
	Resizable bool
}
