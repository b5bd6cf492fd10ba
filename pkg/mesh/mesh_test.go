package mesh

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

// --- Builder tests ---

func quad() *Mesh {
	m := &Mesh{}
	up := v3.Vec{Z: 1}
	a := m.AddVertex(v3.Vec{}, up)
	b := m.AddVertex(v3.Vec{X: 1}, up)
	c := m.AddVertex(v3.Vec{X: 1, Y: 2}, up)
	d := m.AddVertex(v3.Vec{Y: 2, Z: -1}, up)
	m.AddTriangle(a, b, c)
	m.AddTriangle(c, d, a)
	return m
}

func TestMeshAddVertex(t *testing.T) {
	m := quad()
	if got := m.VertexCount(); got != 4 {
		t.Fatalf("VertexCount() = %d, want 4", got)
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Fatalf("normals length %d != vertices length %d", len(m.Normals), len(m.Vertices))
	}
	if got := m.Vertex(2); got != (v3.Vec{X: 1, Y: 2}) {
		t.Errorf("Vertex(2) = %v", got)
	}
	if got := m.TriangleCount(); got != 2 {
		t.Errorf("TriangleCount() = %d, want 2", got)
	}
}

func TestMeshBounds(t *testing.T) {
	if _, _, ok := (&Mesh{}).Bounds(); ok {
		t.Error("Bounds() ok for empty mesh")
	}
	lo, hi, ok := quad().Bounds()
	if !ok {
		t.Fatal("Bounds() not ok")
	}
	if lo != (v3.Vec{Z: -1}) || hi != (v3.Vec{X: 1, Y: 2}) {
		t.Errorf("Bounds() = %v, %v", lo, hi)
	}
}

func TestMeshAppend(t *testing.T) {
	m := quad()
	m.Append(quad())
	if got := m.VertexCount(); got != 8 {
		t.Fatalf("VertexCount() = %d, want 8", got)
	}
	want := []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}
	for i, idx := range m.Indices {
		if idx != want[i] {
			t.Fatalf("Indices = %v, want %v", m.Indices, want)
		}
	}
}

func TestMeshAddTriangleVertex(t *testing.T) {
	m := &Mesh{}
	for _, p := range []v3.Vec{{}, {X: 1}, {Y: 1}} {
		m.AddTriangleVertex(p, v3.Vec{Z: 1})
	}
	if m.TriangleCount() != 1 || m.VertexCount() != 3 {
		t.Fatalf("got %d triangles over %d vertices", m.TriangleCount(), m.VertexCount())
	}
}
