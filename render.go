package evergreen

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandTriangle CommandType = iota // one shaded mesh triangle
	CommandSprite                      // textured screen-aligned quad
)

// RenderCommand is a single depth-sorted draw instruction. Commands are
// sorted far-to-near and submitted in batches sharing blend and image.
type RenderCommand struct {
	Type      CommandType
	Depth     float64
	BlendMode BlendMode
	verts     [4]ebiten.Vertex
	image     *ebiten.Image
	order     int // emission order, keeps the sort stable
}

// renderer collects commands for one frame. Buffers grow to a high-water
// mark and are reused.
type renderer struct {
	commands   []RenderCommand
	sortBuf    []RenderCommand
	batchVerts []ebiten.Vertex
	batchInds  []uint32

	cam      *OrbitCamera
	lighting *Lighting
	eye      Vec3

	// Scratch for mesh instancing.
	worldPos  []Vec3
	worldNorm []Vec3
	screen    []projected
}

type projected struct {
	x, y, depth float64
	ok          bool
}

// begin clears the command list and caches per-frame camera state.
func (r *renderer) begin(cam *OrbitCamera, lighting *Lighting) {
	r.commands = r.commands[:0]
	r.cam = cam
	r.lighting = lighting
	r.eye = cam.Position()
}

func (r *renderer) push(cmd RenderCommand) {
	cmd.order = len(r.commands)
	r.commands = append(r.commands, cmd)
}

// drawMesh transforms, lights, culls and emits every triangle of m.
func (r *renderer) drawMesh(m *Mesh, model mgl64.Mat4, mat Material, blend BlendMode) {
	n := len(m.Positions)
	if cap(r.worldPos) < n {
		r.worldPos = make([]Vec3, n)
		r.worldNorm = make([]Vec3, n)
		r.screen = make([]projected, n)
	}
	r.worldPos = r.worldPos[:n]
	r.worldNorm = r.worldNorm[:n]
	r.screen = r.screen[:n]

	for i := 0; i < n; i++ {
		wp := transformPoint(model, m.Positions[i])
		r.worldPos[i] = wp
		r.worldNorm[i] = transformNormal(model, m.Normals[i])
		x, y, d, ok := r.cam.Project(wp)
		r.screen[i] = projected{x, y, d, ok}
	}

	for t := 0; t+2 < len(m.Indices); t += 3 {
		ia, ib, ic := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		a, b, c := r.screen[ia], r.screen[ib], r.screen[ic]
		if !a.ok || !b.ok || !c.ok {
			continue
		}

		centroid := r.worldPos[ia].Add(r.worldPos[ib]).Add(r.worldPos[ic]).Scale(1.0 / 3)
		faceN := r.worldNorm[ia].Add(r.worldNorm[ib]).Add(r.worldNorm[ic])
		if faceN.Dot(r.eye.Sub(centroid)) <= 0 {
			continue
		}

		cmd := RenderCommand{
			Type:      CommandTriangle,
			Depth:     (a.depth + b.depth + c.depth) / 3,
			BlendMode: blend,
			image:     WhitePixel,
		}
		for k, idx := range [3]uint16{ia, ib, ic} {
			s := r.screen[idx]
			col := r.lighting.Shade(mat, r.worldPos[idx], r.worldNorm[idx], r.eye)
			col = r.lighting.Fog.Apply(col, s.depth)
			cmd.verts[k] = vertex(s.x, s.y, 0.5, 0.5, col)
		}
		r.push(cmd)
	}
}

// drawSprite emits a screen-aligned quad centered on a world point. size is
// in world units and scales with perspective.
func (r *renderer) drawSprite(img *ebiten.Image, p Vec3, size float64, col Color, blend BlendMode) {
	x, y, depth, ok := r.cam.Project(p)
	if !ok {
		return
	}
	half := size * r.cam.PixelScale(depth) / 2
	if half < 0.5 {
		half = 0.5
	}
	col = r.lighting.Fog.Apply(col, depth)

	b := img.Bounds()
	sw, sh := float64(b.Dx()), float64(b.Dy())
	r.push(RenderCommand{
		Type:      CommandSprite,
		Depth:     depth,
		BlendMode: blend,
		image:     img,
		verts: [4]ebiten.Vertex{
			vertex(x-half, y-half, 0, 0, col),
			vertex(x+half, y-half, sw, 0, col),
			vertex(x-half, y+half, 0, sh, col),
			vertex(x+half, y+half, sw, sh, col),
		},
	})
}

// vertex builds a premultiplied-alpha vertex.
func vertex(x, y, sx, sy float64, c Color) ebiten.Vertex {
	a := float32(c.A)
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   float32(sx),
		SrcY:   float32(sy),
		ColorR: float32(c.R) * a,
		ColorG: float32(c.G) * a,
		ColorB: float32(c.B) * a,
		ColorA: a,
	}
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should draw before or with b: farther
// first, ties in emission order.
func commandLessOrEqual(a, b *RenderCommand) bool {
	if a.Depth != b.Depth {
		return a.Depth > b.Depth
	}
	return a.order <= b.order
}

// mergeSort sorts r.commands in-place using r.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (r *renderer) mergeSort() {
	n := len(r.commands)
	if n <= 1 {
		return
	}
	if cap(r.sortBuf) < n {
		r.sortBuf = make([]RenderCommand, n)
	}
	r.sortBuf = r.sortBuf[:n]

	a := r.commands
	b := r.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(r.commands, r.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// softDot builds a radial-falloff disc used for particle sprites.
func softDot(size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	img.WritePixels(softDotPixels(size))
	return img
}

func softDotPixels(size int) []byte {
	pix := make([]byte, size*size*4)
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c) / c
			a := clamp01(1 - d)
			a *= a
			v := byte(a * 255)
			i := (y*size + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, v
		}
	}
	return pix
}

// vignette builds a full-screen overlay that darkens toward the corners.
func vignette(w, h int, offset, darkness float64) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.WritePixels(vignettePixels(w, h, offset, darkness))
	return img
}

func vignettePixels(w, h int, offset, darkness float64) []byte {
	pix := make([]byte, w*h*4)
	cx, cy := float64(w)/2, float64(h)/2
	maxD := math.Hypot(cx, cy)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy) / maxD
			a := clamp01((d - offset) / (1 - offset) * darkness)
			a *= a
			pix[(y*w+x)*4+3] = byte(a * 255)
		}
	}
	return pix
}

// grain builds a tile of monochrome film noise, drawn faintly over the frame.
func grain(size int, rng Rand) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	img.WritePixels(grainPixels(size, rng))
	return img
}

func grainPixels(size int, rng Rand) []byte {
	rng = orGlobal(rng)
	pix := make([]byte, size*size*4)
	for i := 0; i < len(pix); i += 4 {
		v := byte(rng.Float64() * 256)
		pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, 255
	}
	return pix
}
