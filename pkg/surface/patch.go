package surface

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/geom"
)

// Cubic Bernstein and uniform B-spline basis weights at t.
func bernstein(t float64) [4]float64 {
	s := 1 - t
	return [4]float64{s * s * s, 3 * t * s * s, 3 * t * t * s, t * t * t}
}

func bsplineBasis(t float64) [4]float64 {
	t2, t3 := t*t, t*t*t
	return [4]float64{
		(-t3 + 3*t2 - 3*t + 1) / 6,
		(3*t3 - 6*t2 + 4) / 6,
		(-3*t3 + 3*t2 + 3*t + 1) / 6,
		t3 / 6,
	}
}

// Patches is a tensor-product grid of bicubic patches over an expanded
// control grid. Rows run along u.
type Patches struct {
	kind         Kind
	size         Size
	points       []v3.Vec
	cols         int
	wrapU, wrapV bool
}

// Compile-time interface check.
var _ Surface = (*Patches)(nil)

// NewPatches builds an evaluator over an expanded control grid (see Expand).
func NewPatches(kind Kind, expanded []v3.Vec, size Size, wrapU, wrapV bool) (*Patches, error) {
	rows, cols := Dims(kind, size, false)
	if len(expanded) != rows*cols {
		return nil, ErrGridLength
	}
	return &Patches{kind: kind, size: size, points: expanded, cols: cols, wrapU: wrapU, wrapV: wrapV}, nil
}

// Kind returns the patch basis.
func (p *Patches) Kind() Kind { return p.kind }

// Size returns the patch count.
func (p *Patches) Size() Size { return p.size }

// Range implements Surface.
func (p *Patches) Range() geom.UV {
	return geom.UV{U: float64(p.size.U), V: float64(p.size.V)}
}

// Wrap implements Surface.
func (p *Patches) Wrap() (bool, bool) { return p.wrapU, p.wrapV }

// Eval implements Surface.
func (p *Patches) Eval(u, v float64) v3.Vec {
	iu, tu := clampedPatch(u, p.size.U)
	iv, tv := clampedPatch(v, p.size.V)

	var bu, bv [4]float64
	var ru, rv int
	if p.kind == KindC2 {
		bu, bv = bsplineBasis(tu), bsplineBasis(tv)
		ru, rv = iu, iv
	} else {
		bu, bv = bernstein(tu), bernstein(tv)
		ru, rv = 3*iu, 3*iv
	}

	var out v3.Vec
	for i := 0; i < 4; i++ {
		row := (ru + i) * p.cols
		var acc v3.Vec
		for j := 0; j < 4; j++ {
			acc = acc.Add(p.points[row+rv+j].MulScalar(bv[j]))
		}
		out = out.Add(acc.MulScalar(bu[i]))
	}
	return out
}
