package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/num/quat"
)

// Transform places an object: world = Translation + Rotation·(Scale ⊙ local).
type Transform struct {
	Translation v3.Vec      `json:"translation"`
	Rotation    quat.Number `json:"rotation"`
	Scale       v3.Vec      `json:"scale"`
}

// IdentityTransform returns a transform that leaves points in place.
func IdentityTransform() Transform {
	return Transform{Rotation: Identity, Scale: Ones}
}

// At returns the identity transform translated to p.
func At(p v3.Vec) Transform {
	t := IdentityTransform()
	t.Translation = p
	return t
}

// Apply maps a local point to world space.
func (t Transform) Apply(p v3.Vec) v3.Vec {
	return t.Translation.Add(Rotate(t.Rotation, MulElem(t.Scale, p)))
}

// GroupTransform is the translate / rotate / scale applied to a selection
// about its centre.
type GroupTransform struct {
	Translation v3.Vec
	Rotation    quat.Number
	Scale       v3.Vec
}

// ApplyPosition computes center + R·((p + t) - center)·s.
func (g GroupTransform) ApplyPosition(p, center v3.Vec) v3.Vec {
	rel := p.Add(g.Translation).Sub(center)
	return center.Add(MulElem(Rotate(g.Rotation, rel), g.Scale))
}

// ApplyTo composes g with an object's own transform about center.
func (g GroupTransform) ApplyTo(t Transform, center v3.Vec) Transform {
	return Transform{
		Translation: g.ApplyPosition(t.Translation, center),
		Rotation:    quat.Mul(g.Rotation, t.Rotation),
		Scale:       MulElem(t.Scale, g.Scale),
	}
}
