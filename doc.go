// Package evergreen is an animated 3D holiday tree for [Ebitengine].
//
// A [Scene] holds a decorated tree under an orbiting camera: a cone of
// foliage layers with a floating star, a procedurally placed ring of
// ornaments, and three particle fields around it. Everything is projected
// with [mathgl] into depth-sorted screen-space triangles and drawn with
// Ebitengine's DrawTriangles32, so no GPU depth buffer is needed.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene, err := evergreen.NewScene(evergreen.DefaultSceneConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	evergreen.Run(scene, evergreen.RunConfig{
//		Title: "Evergreen", Width: 1280, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Particle fields
//
// A [ParticleField] is a fixed-size set of points sampled inside a
// [Bounds] volume. Each frame its [MotionPolicy] moves every point:
// [MotionFallingDrift] sinks and sways, wrapping from the bottom of the
// range to the top; [MotionRisingSwirl] climbs and circles the axis,
// wrapping from the top back to the bottom. [AtmosphericConfig], [GlitterConfig] and
// [SparkleConfig] are the three presets the scene uses.
//
// # Ornaments
//
// [SampleOrnaments] places ornaments on the surface of a cone: the radius
// at height h is (1 - h/ConeHeight) * BaseRadius, with a uniform angle,
// palette color, size and shape per ornament. Layouts are immutable;
// [Scene.Customize] swaps in a new one.
//
// # Interaction
//
// Pointer input is hit tested against the overlay buttons, then the
// ornaments and foliage layers nearest the camera. Hovering an ornament
// emphasizes it ([HoverSet]); clicking it fires a [Confetti] burst in its
// color; clicking foliage turns the tree. Dragging empty space or the tree
// orbits the camera and two-finger pinches zoom. Register callbacks with
// [Scene.OnClick] and friends, or forward every event to an ECS world with
// [Scene.SetEntityStore] and the adapter in evergreen/ecs.
//
// # Audio and other frontends
//
// The scene rings a [SoundPlayer] when celebrating; evergreen/chime
// synthesizes the bells with beep. evergreen/term draws the same tree as
// colored text with tcell.
//
// # Testing
//
// [LoadTestScript] replays clicks, drags and screenshots through the real
// input path, and the Inject methods queue synthetic pointer events for
// tests of your own.
//
// [Ebitengine]: https://ebitengine.org
// [mathgl]: https://github.com/go-gl/mathgl
package evergreen
