// Package curve converts between the control representations of the
// kernel's curves: cubic B-splines, natural interpolating splines and the
// piecewise Bernstein polygons they are drawn from.
package curve

import v3 "github.com/deadsy/sdfx/vec/v3"

// BackDragScale is the factor applied to a Bernstein displacement when it is
// pushed back onto the driving B-spline point.
const BackDragScale = 1.5

// BSplineToBernstein converts a uniform cubic B-spline control polygon into
// the Bernstein points of the equivalent piecewise cubic Bézier curve. The
// result holds 3(n-3)+1 points laid out as e1, f1, g1, e2, ... and is nil
// for fewer than four control points.
func BSplineToBernstein(ps []v3.Vec) []v3.Vec {
	n := len(ps)
	if n < 4 {
		return nil
	}
	third := func(a, b v3.Vec) v3.Vec { return a.MulScalar(2).Add(b).DivScalar(3) }

	out := make([]v3.Vec, 0, 3*(n-3)+1)
	gPrev := third(ps[1], ps[0])
	for i := 1; i <= n-3; i++ {
		f := third(ps[i], ps[i+1])
		g := third(ps[i+1], ps[i])
		e := f.Add(gPrev).DivScalar(2)
		out = append(out, e, f, g)
		gPrev = g
	}
	fLast := third(ps[n-2], ps[n-1])
	out = append(out, fLast.Add(gPrev).DivScalar(2))
	return out
}

// BackDrag maps a displacement of Bernstein point k onto the B-spline control
// point that should move and the displacement to apply to it. Rebuilding the
// Bernstein polygon afterwards moves point k by exactly delta.
func BackDrag(k int, delta v3.Vec) (int, v3.Vec) {
	return (k+1)/3 + 1, delta.MulScalar(BackDragScale)
}
