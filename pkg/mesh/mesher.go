// Package mesh holds the triangle mesh handed to viewers and the Mesher
// abstraction that turns implicit solids into meshes. The sdfx subpackage
// is the implementation in use.
package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/geom"
)

// Solid is an opaque handle to a mesher solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max v3.Vec)
}

// Mesher builds solids and polygonises them.
type Mesher interface {
	// Torus is a ring torus about the z axis in the xy plane.
	Torus(major, minor float64) (Solid, error)

	// Transform places a solid.
	Transform(s Solid, t geom.Transform) Solid

	// ToMesh polygonises s with about cells cells along its longest side.
	ToMesh(s Solid, cells int) (*Mesh, error)
}
