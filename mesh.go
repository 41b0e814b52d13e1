package evergreen

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is indexed triangle geometry in local space with per-vertex normals.
// Built once at scene construction and instanced with a model matrix.
type Mesh struct {
	Positions []Vec3
	Normals   []Vec3
	Indices   []uint16
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// lathe revolves a (radius, y) profile around the Y axis. Profile points are
// ordered bottom to top. Vertex normals average the adjacent profile
// segments so curved profiles shade smoothly.
func lathe(profile []Vec2, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	rows := len(profile)
	cols := segments + 1

	// Normal in the (r, y) plane for each profile segment.
	segN := make([]Vec2, rows-1)
	for i := 0; i < rows-1; i++ {
		dr := profile[i+1].X - profile[i].X
		dy := profile[i+1].Y - profile[i].Y
		l := math.Hypot(dr, dy)
		if l > 0 {
			segN[i] = Vec2{dy / l, -dr / l}
		}
	}

	m := &Mesh{
		Positions: make([]Vec3, 0, rows*cols),
		Normals:   make([]Vec3, 0, rows*cols),
		Indices:   make([]uint16, 0, (rows-1)*segments*6),
	}
	for i, p := range profile {
		var n Vec2
		switch {
		case i == 0:
			n = segN[0]
		case i == rows-1:
			n = segN[rows-2]
		default:
			n = Vec2{segN[i-1].X + segN[i].X, segN[i-1].Y + segN[i].Y}
		}
		for j := 0; j < cols; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			s, c := math.Sincos(theta)
			m.Positions = append(m.Positions, Vec3{p.X * s, p.Y, p.X * c})
			m.Normals = append(m.Normals, Vec3{n.X * s, n.Y, n.X * c}.Normalize())
		}
	}
	for i := 0; i < rows-1; i++ {
		for j := 0; j < segments; j++ {
			a := uint16(i*cols + j)
			b := a + 1
			c := a + uint16(cols)
			d := c + 1
			m.Indices = append(m.Indices, a, b, c, b, d, c)
		}
	}
	return m
}

// addDisk appends a flat cap of radius r at height y facing up or down.
func (m *Mesh) addDisk(y, r float64, segments int, up bool) {
	n := Vec3{0, -1, 0}
	if up {
		n = Vec3{0, 1, 0}
	}
	center := uint16(len(m.Positions))
	m.Positions = append(m.Positions, Vec3{0, y, 0})
	m.Normals = append(m.Normals, n)
	for j := 0; j <= segments; j++ {
		s, c := math.Sincos(2 * math.Pi * float64(j) / float64(segments))
		m.Positions = append(m.Positions, Vec3{r * s, y, r * c})
		m.Normals = append(m.Normals, n)
	}
	for j := 0; j < segments; j++ {
		a := center + 1 + uint16(j)
		m.Indices = append(m.Indices, center, a, a+1)
	}
}

// NewCone builds a cone centered on the origin with its apex at +height/2.
func NewCone(radius, height float64, segments int) *Mesh {
	m := lathe([]Vec2{{radius, -height / 2}, {0, height / 2}}, segments)
	m.addDisk(-height/2, radius, segments, false)
	return m
}

// NewCylinder builds a capped cylinder centered on the origin.
func NewCylinder(radiusTop, radiusBottom, height float64, segments int) *Mesh {
	m := lathe([]Vec2{{radiusBottom, -height / 2}, {radiusTop, height / 2}}, segments)
	m.addDisk(-height/2, radiusBottom, segments, false)
	m.addDisk(height/2, radiusTop, segments, true)
	return m
}

// NewSphere builds a UV sphere.
func NewSphere(radius float64, segments, rings int) *Mesh {
	if rings < 2 {
		rings = 2
	}
	profile := make([]Vec2, rings+1)
	for i := range profile {
		phi := math.Pi * float64(i) / float64(rings)
		profile[i] = Vec2{radius * math.Sin(phi), -radius * math.Cos(phi)}
	}
	m := lathe(profile, segments)
	// Pole normals come out horizontal from the segment average; point them
	// straight out instead.
	for i := range m.Positions {
		m.Normals[i] = m.Positions[i].Normalize()
	}
	return m
}

// NewOctahedron builds a flat-shaded octahedron with vertices on the axes.
func NewOctahedron(radius float64) *Mesh {
	axes := [6]Vec3{
		{radius, 0, 0}, {-radius, 0, 0},
		{0, radius, 0}, {0, -radius, 0},
		{0, 0, radius}, {0, 0, -radius},
	}
	faces := [8][3]int{
		{0, 2, 4}, {0, 4, 3}, {0, 3, 5}, {0, 5, 2},
		{1, 2, 5}, {1, 5, 3}, {1, 3, 4}, {1, 4, 2},
	}
	m := &Mesh{}
	for _, f := range faces {
		a, b, c := axes[f[0]], axes[f[1]], axes[f[2]]
		n := a.Add(b).Add(c).Normalize()
		base := uint16(len(m.Positions))
		m.Positions = append(m.Positions, a, b, c)
		m.Normals = append(m.Normals, n, n, n)
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	return m
}

// ModelMatrix composes translate * rotateY * rotateX * rotateZ * scale.
func ModelMatrix(pos Vec3, rotX, rotY, rotZ, scale float64) mgl64.Mat4 {
	return mgl64.Translate3D(pos.X, pos.Y, pos.Z).
		Mul4(mgl64.HomogRotate3DY(rotY)).
		Mul4(mgl64.HomogRotate3DX(rotX)).
		Mul4(mgl64.HomogRotate3DZ(rotZ)).
		Mul4(mgl64.Scale3D(scale, scale, scale))
}

// transformPoint applies a model matrix to a point.
func transformPoint(m mgl64.Mat4, p Vec3) Vec3 {
	v := m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return Vec3{v.X(), v.Y(), v.Z()}
}

// transformNormal applies the rotation part of a model matrix to a normal.
// Model matrices here only scale uniformly, so no inverse-transpose is needed.
func transformNormal(m mgl64.Mat4, n Vec3) Vec3 {
	v := m.Mat3().Mul3x1(mgl64.Vec3{n.X, n.Y, n.Z})
	return Vec3{v.X(), v.Y(), v.Z()}.Normalize()
}
