package curve

import v3 "github.com/deadsy/sdfx/vec/v3"

// knotEpsilon is the chord length below which consecutive knots are treated
// as one.
const knotEpsilon = 1e-12

// Interpolate returns the Bernstein points of the natural cubic spline
// through knots, parameterised by chord length. Consecutive segments share
// their end points, so k usable knots yield 3(k-1)+1 points. Two knots yield
// a single degenerate segment with doubled end points and fewer yield nil.
func Interpolate(knots []v3.Vec) []v3.Vec {
	ps := dedupe(knots)
	switch n := len(ps); {
	case n < 2:
		return nil
	case n == 2:
		return []v3.Vec{ps[0], ps[0], ps[1], ps[1]}
	}

	n := len(ps)
	h := make([]float64, n-1)
	for i := range h {
		h[i] = ps[i+1].Sub(ps[i]).Length()
	}

	// Second-order coefficients at the interior knots; the ends are natural.
	c := make([]v3.Vec, n)
	m := n - 2
	sub := make([]float64, m)
	sup := make([]float64, m)
	rhs := make([]v3.Vec, m)
	for j := 0; j < m; j++ {
		i := j + 1
		sum := h[i-1] + h[i]
		sub[j] = h[i-1] / sum
		sup[j] = h[i] / sum
		slopeR := ps[i+1].Sub(ps[i]).DivScalar(h[i])
		slopeL := ps[i].Sub(ps[i-1]).DivScalar(h[i-1])
		rhs[j] = slopeR.Sub(slopeL).MulScalar(3 / sum)
	}
	copy(c[1:n-1], solveTridiagonal(sub, sup, rhs))

	out := make([]v3.Vec, 0, 3*(n-1)+1)
	out = append(out, ps[0])
	for i := 0; i < n-1; i++ {
		a := ps[i]
		b := ps[i+1].Sub(ps[i]).DivScalar(h[i]).Sub(c[i].MulScalar(2).Add(c[i+1]).MulScalar(h[i] / 3))
		d := c[i+1].Sub(c[i]).DivScalar(3 * h[i])

		// Rescale from [0, h] to [0, 1].
		B := b.MulScalar(h[i])
		C := c[i].MulScalar(h[i] * h[i])
		D := d.MulScalar(h[i] * h[i] * h[i])

		out = append(out,
			a.Add(B.DivScalar(3)),
			a.Add(B.MulScalar(2.0/3)).Add(C.DivScalar(3)),
			a.Add(B).Add(C).Add(D),
		)
	}
	return out
}

// solveTridiagonal solves the system with diagonal 2 by Thomas
// elimination. sub[0] and sup[m-1] are ignored. The pivots are kept apart
// from the right-hand side so the inputs are left untouched.
func solveTridiagonal(sub, sup []float64, rhs []v3.Vec) []v3.Vec {
	m := len(rhs)
	if m == 0 {
		return nil
	}
	pivot := make([]float64, m)
	free := make([]v3.Vec, m)
	pivot[0] = 2
	free[0] = rhs[0]
	for j := 1; j < m; j++ {
		w := sub[j] / pivot[j-1]
		pivot[j] = 2 - w*sup[j-1]
		free[j] = rhs[j].Sub(free[j-1].MulScalar(w))
	}
	x := make([]v3.Vec, m)
	x[m-1] = free[m-1].DivScalar(pivot[m-1])
	for j := m - 2; j >= 0; j-- {
		x[j] = free[j].Sub(x[j+1].MulScalar(sup[j])).DivScalar(pivot[j])
	}
	return x
}

func dedupe(knots []v3.Vec) []v3.Vec {
	out := make([]v3.Vec, 0, len(knots))
	for _, p := range knots {
		if len(out) > 0 && p.Sub(out[len(out)-1]).Length() < knotEpsilon {
			continue
		}
		out = append(out, p)
	}
	return out
}
