package surface

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/geom"
)

// Torus is a ring torus in the xy plane placed by a transform. u runs
// around the major circle and v around the tube.
type Torus struct {
	Major     float64
	Minor     float64
	Transform geom.Transform
}

// Compile-time interface check.
var _ Surface = Torus{}

// Eval implements Surface.
func (t Torus) Eval(u, v float64) v3.Vec {
	ring := t.Major + t.Minor*math.Cos(v)
	local := v3.Vec{X: ring * math.Cos(u), Y: ring * math.Sin(u), Z: t.Minor * math.Sin(v)}
	return t.Transform.Apply(local)
}

// Range implements Surface.
func (Torus) Range() geom.UV { return geom.UV{U: 2 * math.Pi, V: 2 * math.Pi} }

// Wrap implements Surface.
func (Torus) Wrap() (bool, bool) { return true, true }
