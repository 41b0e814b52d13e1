package evergreen

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// OrbitCamera is a perspective camera that circles a target point. Its
// position is held in spherical coordinates around Target: Azimuth about the
// Y axis (0 places the camera on +Z), Polar measured down from +Y, and
// Distance.
type OrbitCamera struct {
	Target   Vec3
	Azimuth  float64
	Polar    float64
	Distance float64

	// FOV is the vertical field of view in degrees.
	FOV       float64
	Near, Far float64

	MinDistance, MaxDistance float64
	// MinPolar and MaxPolar bound the polar angle in radians.
	MinPolar, MaxPolar float64

	// AutoRotate turns the camera around the target when not dragging.
	// AutoRotateSpeed of 1 completes one orbit per minute.
	AutoRotate      bool
	AutoRotateSpeed float64

	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	zoomTween *gween.Tween
	viewProj  mgl64.Mat4
	dirty     bool
}

// NewOrbitCamera creates a camera at (0, 2, 10) looking at the origin with a
// 45° field of view, distance limited to [5, 15] and the polar angle kept
// above the ground plane.
func NewOrbitCamera(viewport Rect) *OrbitCamera {
	c := &OrbitCamera{
		FOV:             45,
		Near:            0.1,
		Far:             100,
		MinDistance:     5,
		MaxDistance:     15,
		MinPolar:        0,
		MaxPolar:        math.Pi / 1.8,
		AutoRotate:      true,
		AutoRotateSpeed: 0.5,
		Viewport:        viewport,
		dirty:           true,
	}
	c.SetPosition(Vec3{0, 2, 10})
	return c
}

// SetPosition places the camera at p, keeping Target.
func (c *OrbitCamera) SetPosition(p Vec3) {
	off := p.Sub(c.Target)
	c.Distance = off.Len()
	if c.Distance == 0 {
		c.Polar = 0
		c.Azimuth = 0
	} else {
		c.Polar = math.Acos(clampUnit(off.Y / c.Distance))
		c.Azimuth = math.Atan2(off.X, off.Z)
	}
	c.dirty = true
}

// Position returns the camera's world-space eye point.
func (c *OrbitCamera) Position() Vec3 {
	s := math.Sin(c.Polar)
	return c.Target.Add(Vec3{
		X: c.Distance * s * math.Sin(c.Azimuth),
		Y: c.Distance * math.Cos(c.Polar),
		Z: c.Distance * s * math.Cos(c.Azimuth),
	})
}

// Orbit rotates the camera by a pointer drag of (dx, dy) pixels. A drag
// across the full viewport height turns a full circle.
func (c *OrbitCamera) Orbit(dx, dy float64) {
	h := c.Viewport.Height
	if h <= 0 {
		return
	}
	c.Azimuth -= 2 * math.Pi * dx / h
	c.Polar -= 2 * math.Pi * dy / h
	c.clamp()
	c.dirty = true
}

// Zoom moves the camera toward the target by steps wheel notches (negative
// steps move away). Cancels any ZoomTo in flight.
func (c *OrbitCamera) Zoom(steps float64) {
	c.zoomTween = nil
	c.Distance *= math.Pow(0.95, steps)
	c.clamp()
	c.dirty = true
}

// ZoomTo animates Distance to d over duration seconds.
func (c *OrbitCamera) ZoomTo(d float64, duration float32, easeFn ease.TweenFunc) {
	c.zoomTween = gween.New(float32(c.Distance), float32(d), duration, easeFn)
}

// SetViewport changes the render rectangle.
func (c *OrbitCamera) SetViewport(r Rect) {
	if r != c.Viewport {
		c.Viewport = r
		c.dirty = true
	}
}

// Update advances auto-rotation and the zoom tween by dt seconds.
// Auto-rotation pauses while dragging.
func (c *OrbitCamera) Update(dt float32, dragging bool) {
	if c.AutoRotate && !dragging && c.AutoRotateSpeed != 0 {
		c.Azimuth -= 2 * math.Pi / 60 * c.AutoRotateSpeed * float64(dt)
		c.dirty = true
	}
	if c.zoomTween != nil {
		val, done := c.zoomTween.Update(dt)
		c.Distance = float64(val)
		if done {
			c.zoomTween = nil
		}
		c.clamp()
		c.dirty = true
	}
}

func (c *OrbitCamera) clamp() {
	if c.MaxDistance > 0 {
		c.Distance = math.Max(c.MinDistance, math.Min(c.Distance, c.MaxDistance))
	}
	// Keep off the poles so LookAt never sees a degenerate up vector.
	const eps = 1e-6
	c.Polar = math.Max(math.Max(c.MinPolar, eps), math.Min(c.Polar, c.MaxPolar))
}

// ViewProjection returns the cached combined projection * view matrix.
func (c *OrbitCamera) ViewProjection() mgl64.Mat4 {
	if !c.dirty {
		return c.viewProj
	}
	c.dirty = false

	aspect := 1.0
	if c.Viewport.Height > 0 {
		aspect = c.Viewport.Width / c.Viewport.Height
	}
	proj := mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
	eye := c.Position()
	view := mgl64.LookAtV(
		mgl64.Vec3{eye.X, eye.Y, eye.Z},
		mgl64.Vec3{c.Target.X, c.Target.Y, c.Target.Z},
		mgl64.Vec3{0, 1, 0},
	)
	c.viewProj = proj.Mul4(view)
	return c.viewProj
}

// Project converts a world point to screen pixels. depth is the distance
// along the view axis. ok is false for points behind the near plane.
func (c *OrbitCamera) Project(p Vec3) (sx, sy, depth float64, ok bool) {
	return c.project(c.ViewProjection(), p)
}

// ProjectModel projects p after transforming it by the model matrix.
func (c *OrbitCamera) ProjectModel(model mgl64.Mat4, p Vec3) (sx, sy, depth float64, ok bool) {
	return c.project(c.ViewProjection().Mul4(model), p)
}

func (c *OrbitCamera) project(m mgl64.Mat4, p Vec3) (sx, sy, depth float64, ok bool) {
	clip := m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	w := clip.W()
	if w <= c.Near {
		return 0, 0, w, false
	}
	nx := clip.X() / w
	ny := clip.Y() / w
	sx = c.Viewport.X + (nx+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + (1-ny)/2*c.Viewport.Height
	return sx, sy, w, true
}

// PixelScale returns how many screen pixels one world unit spans at the
// given view depth.
func (c *OrbitCamera) PixelScale(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return c.Viewport.Height / (2 * math.Tan(mgl64.DegToRad(c.FOV)/2) * depth)
}

// Normalized converts a screen point to [0, 1] viewport coordinates.
func (c *OrbitCamera) Normalized(sx, sy float64) Vec2 {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: (sx - c.Viewport.X) / c.Viewport.Width,
		Y: (sy - c.Viewport.Y) / c.Viewport.Height,
	}
}

// MarkDirty forces a recomputation of the view-projection matrix.
func (c *OrbitCamera) MarkDirty() {
	c.dirty = true
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
