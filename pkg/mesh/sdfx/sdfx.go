// Package sdfx implements the mesh.Mesher interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/mesh"
)

// Compile-time interface check.
var _ mesh.Mesher = (*Mesher)(nil)

// DefaultCells is used when ToMesh is asked for fewer cells than this.
const DefaultCells = 16

// solid wraps an sdf.SDF3 to implement mesh.Solid.
type solid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *solid) BoundingBox() (min, max v3.Vec) {
	bb := s.s.BoundingBox()
	return bb.Min, bb.Max
}

// Mesher implements mesh.Mesher using sdfx.
type Mesher struct{}

// New returns a new Mesher.
func New() *Mesher {
	return &Mesher{}
}

func unwrap(s mesh.Solid) sdf.SDF3 {
	return s.(*solid).s
}

// Torus revolves a circle of radius minor, centred major from the axis,
// about z.
func (m *Mesher) Torus(major, minor float64) (mesh.Solid, error) {
	if minor <= 0 || major <= minor {
		return nil, fmt.Errorf("sdfx: torus needs 0 < minor < major, got %g, %g", minor, major)
	}
	c, err := sdf.Circle2D(minor)
	if err != nil {
		return nil, fmt.Errorf("sdfx: %w", err)
	}
	s, err := sdf.Revolve3D(sdf.Transform2D(c, sdf.Translate2d(v2.Vec{X: major})))
	if err != nil {
		return nil, fmt.Errorf("sdfx: %w", err)
	}
	return &solid{s: s}, nil
}

// Transform applies scale, then rotation, then translation.
func (m *Mesher) Transform(s mesh.Solid, t geom.Transform) mesh.Solid {
	return &solid{s: sdf.Transform3D(unwrap(s), Matrix(t))}
}

// Matrix is the model matrix of t.
func Matrix(t geom.Transform) sdf.M44 {
	axis, angle := geom.ToAxisAngle(t.Rotation)
	return sdf.Translate3d(t.Translation).Mul(sdf.Rotate3d(axis, angle)).Mul(sdf.Scale3d(t.Scale))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (m *Mesher) ToMesh(s mesh.Solid, cells int) (*mesh.Mesh, error) {
	if cells < DefaultCells {
		cells = DefaultCells
	}
	triangles := render.ToTriangles(unwrap(s), render.NewMarchingCubesUniform(cells))
	if len(triangles) == 0 {
		return nil, fmt.Errorf("sdfx: marching cubes produced no triangles")
	}

	out := &mesh.Mesh{
		Vertices: make([]float32, 0, len(triangles)*9),
		Normals:  make([]float32, 0, len(triangles)*9),
		Indices:  make([]uint32, 0, len(triangles)*3),
	}
	for _, tri := range triangles {
		n := tri.Normal()
		for j := 0; j < 3; j++ {
			out.AddTriangleVertex(tri[j], n)
		}
	}
	return out, nil
}
