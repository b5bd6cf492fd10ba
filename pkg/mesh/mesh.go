package mesh

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Object   string    `json:"object"`   // scene object this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(p, n v3.Vec) uint32 {
	i := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
	m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	return i
}

// AddTriangle appends a triangle over existing vertices.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// AddTriangleVertex appends an unshared vertex and indexes it. Three calls
// make one flat-shaded triangle.
func (m *Mesh) AddTriangleVertex(p, n v3.Vec) {
	m.Indices = append(m.Indices, m.AddVertex(p, n))
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) v3.Vec {
	return v3.Vec{X: float64(m.Vertices[3*i]), Y: float64(m.Vertices[3*i+1]), Z: float64(m.Vertices[3*i+2])}
}

// Bounds returns the axis-aligned bounds of the vertices. ok is false for
// an empty mesh.
func (m *Mesh) Bounds() (lo, hi v3.Vec, ok bool) {
	if m.IsEmpty() {
		return v3.Vec{}, v3.Vec{}, false
	}
	lo = v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi = lo.Neg()
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Vertex(i)
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi, true
}

// Append adds the triangles of o to m.
func (m *Mesh) Append(o *Mesh) {
	base := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, o.Vertices...)
	m.Normals = append(m.Normals, o.Normals...)
	for _, i := range o.Indices {
		m.Indices = append(m.Indices, base+i)
	}
}
