package sdfx

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/chazu/loft/pkg/geom"
)

func TestTorus(t *testing.T) {
	m := New()
	s, err := m.Torus(2, 0.5)
	if err != nil {
		t.Fatalf("Torus failed: %v", err)
	}
	mesh, err := m.ToMesh(s, 48)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.VertexCount() {
		t.Fatalf("indices length %d != vertex count %d", len(mesh.Indices), mesh.VertexCount())
	}
	t.Logf("torus triangle count: %d", mesh.TriangleCount())
}

func TestTorusRejectsBadRadii(t *testing.T) {
	tests := []struct {
		name         string
		major, minor float64
	}{
		{"zero minor", 1, 0},
		{"negative minor", 1, -0.5},
		{"self intersecting", 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New().Torus(tt.major, tt.minor); err == nil {
				t.Fatalf("Torus(%g, %g) succeeded", tt.major, tt.minor)
			}
		})
	}
}

func TestBoundingBox(t *testing.T) {
	m := New()
	s, err := m.Torus(2, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		tr       geom.Transform
		min, max v3.Vec
	}{
		{"identity", geom.IdentityTransform(),
			v3.Vec{X: -2.5, Y: -2.5, Z: -0.5}, v3.Vec{X: 2.5, Y: 2.5, Z: 0.5}},
		{"translated", geom.At(v3.Vec{X: 10, Y: 20, Z: 30}),
			v3.Vec{X: 7.5, Y: 17.5, Z: 29.5}, v3.Vec{X: 12.5, Y: 22.5, Z: 30.5}},
		{"stretched", geom.Transform{Rotation: geom.Identity, Scale: v3.Vec{X: 1, Y: 1, Z: 2}},
			v3.Vec{X: -2.5, Y: -2.5, Z: -1}, v3.Vec{X: 2.5, Y: 2.5, Z: 1}},
		// A quarter turn about x stands the ring up in the xz plane.
		{"upright", geom.Transform{Rotation: geom.AxisAngle(v3.Vec{X: 1}, math.Pi/2), Scale: geom.Ones},
			v3.Vec{X: -2.5, Y: -0.5, Z: -2.5}, v3.Vec{X: 2.5, Y: 0.5, Z: 2.5}},
	}
	const tol = 1e-9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := m.Transform(s, tt.tr).BoundingBox()
			if !geom.NearlyEqual(min, tt.min, tol) {
				t.Errorf("min = %v, expected %v", min, tt.min)
			}
			if !geom.NearlyEqual(max, tt.max, tol) {
				t.Errorf("max = %v, expected %v", max, tt.max)
			}
		})
	}
}

func TestVerticesLieOnTorus(t *testing.T) {
	const major, minor = 2.0, 0.5
	m := New()
	s, err := m.Torus(major, minor)
	if err != nil {
		t.Fatal(err)
	}
	tr := geom.Transform{
		Translation: v3.Vec{X: 1, Y: 2, Z: 3},
		Rotation:    geom.AxisAngle(v3.Vec{X: 1}, math.Pi/2),
		Scale:       geom.Ones,
	}
	mesh, err := m.ToMesh(m.Transform(s, tr), 64)
	if err != nil {
		t.Fatal(err)
	}

	inv := quat.Conj(tr.Rotation)
	const tol = 0.02
	for i := 0; i < mesh.VertexCount(); i++ {
		q := geom.Rotate(inv, mesh.Vertex(i).Sub(tr.Translation))
		d := math.Hypot(math.Hypot(q.X, q.Y)-major, q.Z)
		if math.Abs(d-minor) > tol {
			t.Fatalf("vertex %d at %v is %g from the tube axis, want %g", i, mesh.Vertex(i), d, minor)
		}
	}
}

func TestMatrixMatchesTransform(t *testing.T) {
	tr := geom.Transform{
		Translation: v3.Vec{X: -1, Y: 0.5, Z: 4},
		Rotation:    geom.AxisAngle(v3.Vec{X: 1, Y: 2, Z: 3}, 0.8),
		Scale:       v3.Vec{X: 2, Y: 1, Z: 0.5},
	}
	m := Matrix(tr)
	for _, p := range []v3.Vec{{}, {X: 1}, {X: 1, Y: -2, Z: 3}} {
		got := m.MulPosition(p)
		if want := tr.Apply(p); !geom.NearlyEqual(got, want, 1e-9) {
			t.Errorf("Matrix(t)·%v = %v, Transform.Apply = %v", p, got, want)
		}
	}
}
