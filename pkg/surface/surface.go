// Package surface evaluates the parametric surfaces the kernel can
// intersect: bicubic Bézier (C0) and cubic B-spline (C2) patch grids and
// transformed tori.
package surface

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/geom"
)

// GradientStep is the finite-difference step used for partial derivatives.
const GradientStep = 1e-4

// Surface is a pure map from a rectangular parameter domain to space.
type Surface interface {
	// Eval returns the point at (u, v). Parameters outside the domain are
	// clamped.
	Eval(u, v float64) v3.Vec
	// Range returns the upper bound of each parameter; the lower bound is 0.
	Range() geom.UV
	// Wrap reports which parameters are periodic.
	Wrap() (u, v bool)
}

// Gradient returns the partial derivatives at (u, v) by central
// differences. Periodic parameters wrap around the seam; the others are
// clamped to the domain with the divisor shortened to match.
func Gradient(s Surface, u, v float64) (du, dv v3.Vec) {
	r := s.Range()
	wu, wv := s.Wrap()
	du = partial(func(x float64) v3.Vec { return s.Eval(x, v) }, u, r.U, wu)
	dv = partial(func(x float64) v3.Vec { return s.Eval(u, x) }, v, r.V, wv)
	return du, dv
}

func partial(f func(float64) v3.Vec, x, max float64, wrap bool) v3.Vec {
	h := GradientStep
	lo, hi := x-h, x+h
	if wrap {
		lo = geom.WrapParam(lo, max)
		hi = geom.WrapParam(hi, max)
		return f(hi).Sub(f(lo)).DivScalar(2 * h)
	}
	lo, _ = geom.ClampParam(lo, max)
	hi, _ = geom.ClampParam(hi, max)
	if hi == lo {
		return v3.Vec{}
	}
	return f(hi).Sub(f(lo)).DivScalar(hi - lo)
}

// Normal returns the unit normal ∂u×∂v at (u, v), or the zero vector where
// the surface is degenerate.
func Normal(s Surface, u, v float64) v3.Vec {
	du, dv := Gradient(s, u, v)
	n := du.Cross(dv)
	l := n.Length()
	if l == 0 {
		return v3.Vec{}
	}
	return n.DivScalar(l)
}

// InDomain reports whether (u, v) lies in the closed parameter rectangle.
func InDomain(s Surface, p geom.UV) bool {
	r := s.Range()
	return p.U >= 0 && p.U <= r.U && p.V >= 0 && p.V <= r.V
}

func clampedPatch(x float64, n int) (int, float64) {
	if x < 0 {
		x = 0
	}
	if x > float64(n) {
		x = float64(n)
	}
	i := int(x)
	if i > n-1 {
		i = n - 1
	}
	return i, x - float64(i)
}
