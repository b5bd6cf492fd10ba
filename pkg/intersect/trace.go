package intersect

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/mat"

	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/surface"
)

// straightness is the tangent alignment above which the previous tangent is
// reused unchanged.
const straightness = 0.995

// singular is the normal-angle sine below which the surfaces are treated as
// touching and the previous tangent is kept.
const singular = 1e-3

// Curve is a traced intersection polyline. UV and ST are the parameters of
// each point on the first and second surface.
type Curve struct {
	Points    []v3.Vec
	UV        []geom.UV
	ST        []geom.UV
	Wrap      bool // the polyline closes on itself
	Truncated bool // tracing stopped at MaxPoints
}

// Len returns the number of traced points.
func (c *Curve) Len() int { return len(c.Points) }

type state struct {
	uv, st geom.UV
}

type tracer struct {
	a, b surface.Surface
	p    Params
}

// Trace follows the intersection curve from a seed in both directions.
// The forward pass stops at a domain border, when neither a step down to
// MinStep nor a bridging step converges, or when the curve returns to the
// seed; the backward pass then runs from the seed the other way and its
// points are prepended.
func Trace(a, b surface.Surface, uv, st geom.UV, p Params) (*Curve, error) {
	tr := &tracer{a: a, b: b, p: p}
	seed := state{uv: uv, st: st}
	start := a.Eval(uv.U, uv.V)

	forward, closed, capped := tr.pass(seed, start, false, p.MaxPoints-1)
	var backward []state
	if !closed && !capped {
		backward, _, capped = tr.pass(seed, start, true, p.MaxPoints-1-len(forward))
	}
	if len(forward) == 0 && len(backward) == 0 {
		return nil, ErrDiverged
	}

	n := len(backward) + 1 + len(forward)
	c := &Curve{
		Points:    make([]v3.Vec, 0, n),
		UV:        make([]geom.UV, 0, n),
		ST:        make([]geom.UV, 0, n),
		Wrap:      closed,
		Truncated: capped,
	}
	add := func(s state) {
		c.Points = append(c.Points, a.Eval(s.uv.U, s.uv.V))
		c.UV = append(c.UV, s.uv)
		c.ST = append(c.ST, s.st)
	}
	for i := len(backward) - 1; i >= 0; i-- {
		add(backward[i])
	}
	add(seed)
	for _, s := range forward {
		add(s)
	}
	return c, nil
}

// pass walks away from the seed and returns the accepted states in walking
// order, excluding the seed itself. A rejected step is retried at half the
// length and an accepted one lets the step grow back toward Step. When the
// step falls below MinStep, bridge gets one chance before the pass ends.
func (tr *tracer) pass(seed state, start v3.Vec, backward bool, budget int) (out []state, closed, capped bool) {
	step := tr.p.Step
	cur := seed
	var prevTan v3.Vec
	havePrev := false
	far := 0.0

	for {
		if len(out) >= budget {
			return out, false, true
		}
		tan, sin := tr.tangent(cur)
		switch {
		case sin >= singular:
		case havePrev:
			// The surfaces nearly touch here and n1 × n2 has no reliable
			// direction.
			tan = prevTan
		case sin == 0:
			return out, false, false
		}
		if !havePrev && backward {
			tan = tan.Neg()
		}
		if havePrev {
			d := tan.Dot(prevTan)
			if d < 0 {
				tan, d = tan.Neg(), -d
			}
			if d > straightness {
				tan = prevTan
			}
		}

		next, accepted, stop := tr.step(cur, tan, step)
		switch {
		case accepted:
			step = math.Min(2*step, tr.p.Step)
		case step/2 >= tr.p.MinStep:
			step /= 2
			continue
		default:
			if next, accepted, stop = tr.bridge(cur, tan); !accepted {
				return out, false, false
			}
			step = tr.p.Step
		}
		out = append(out, next)
		cur, prevTan, havePrev = next, tan, true
		if stop {
			return out, false, false
		}
		if !backward {
			// Outside a bridge accepted points are at most Step apart, so a
			// curve that comes back passes within Step of the seed.
			d := geom.Distance(start, tr.a.Eval(cur.uv.U, cur.uv.V))
			far = math.Max(far, d)
			if far > 2*tr.p.Step && d < tr.p.Step {
				return out, true, false
			}
		}
	}
}

// bridge tries steps longer than Step. Where two branches of the curve
// cross, Newton fails for every short step but lands on the far side of
// the crossing from a longer one.
func (tr *tracer) bridge(cur state, tan v3.Vec) (state, bool, bool) {
	for _, k := range []float64{2, 4} {
		if next, ok, stop := tr.step(cur, tan, k*tr.p.Step); ok {
			return next, true, stop
		}
	}
	return cur, false, false
}

// tangent is the unit direction of the curve at s, n1 × n2, together with
// the sine of the angle between the normals. A zero sine means no
// direction.
func (tr *tracer) tangent(s state) (v3.Vec, float64) {
	n1 := surface.Normal(tr.a, s.uv.U, s.uv.V)
	n2 := surface.Normal(tr.b, s.st.U, s.st.V)
	t := n1.Cross(n2)
	l := t.Length()
	if l < 1e-12 || math.IsNaN(l) {
		return v3.Vec{}, 0
	}
	return t.DivScalar(l), l
}

// predict moves x so that f moves by roughly d, solving the 2x2 normal
// equations of the surface's tangent plane.
func predict(s surface.Surface, x geom.UV, d v3.Vec) geom.UV {
	du, dv := surface.Gradient(s, x.U, x.V)
	g11, g12, g22 := du.Dot(du), du.Dot(dv), dv.Dot(dv)
	r1, r2 := du.Dot(d), dv.Dot(d)
	det := g11*g22 - g12*g12
	if math.Abs(det) < 1e-14 {
		return x
	}
	return geom.UV{U: x.U + (g22*r1-g12*r2)/det, V: x.V + (g11*r2-g12*r1)/det}
}

// step runs one predictor-corrector step of arc length h from cur along
// tan. It reports whether the result is acceptable and whether the pass
// must end there (a clamped point accepted in rough mode).
func (tr *tracer) step(cur state, tan v3.Vec, h float64) (state, bool, bool) {
	a, b := tr.a, tr.b
	origin := a.Eval(cur.uv.U, cur.uv.V)
	move := tan.MulScalar(h)
	x := state{
		uv: predict(a, cur.uv, move),
		st: predict(b, cur.st, move),
	}
	x, clamped := tr.place(x)
	if clamped {
		if tr.p.Rough {
			return x, true, true
		}
		return cur, false, false
	}

	residual := math.Inf(1)
	for it := 0; it < tr.p.NewtonIterations; it++ {
		f1 := a.Eval(x.uv.U, x.uv.V)
		f2 := b.Eval(x.st.U, x.st.V)
		diff := f1.Sub(f2)
		F := mat.NewVecDense(4, []float64{diff.X, diff.Y, diff.Z, f1.Sub(origin).Dot(tan) - h})
		norm := mat.Norm(F, 2)
		if norm < tr.p.Epsilon {
			return x, true, false
		}
		if norm > residual {
			return cur, false, false
		}
		residual = norm

		du, dv := surface.Gradient(a, x.uv.U, x.uv.V)
		ds, dt := surface.Gradient(b, x.st.U, x.st.V)
		J := mat.NewDense(4, 4, []float64{
			du.X, dv.X, -ds.X, -dt.X,
			du.Y, dv.Y, -ds.Y, -dt.Y,
			du.Z, dv.Z, -ds.Z, -dt.Z,
			du.Dot(tan), dv.Dot(tan), 0, 0,
		})
		var d mat.VecDense
		if err := d.SolveVec(J, F); err != nil {
			return cur, false, false
		}
		alpha := tr.p.Damping
		x.uv = geom.UV{U: x.uv.U - alpha*d.AtVec(0), V: x.uv.V - alpha*d.AtVec(1)}
		x.st = geom.UV{U: x.st.U - alpha*d.AtVec(2), V: x.st.V - alpha*d.AtVec(3)}
		x, clamped = tr.place(x)
		if clamped {
			if tr.p.Rough {
				return x, true, true
			}
			return cur, false, false
		}
	}
	return cur, false, false
}

func (tr *tracer) place(x state) (state, bool) {
	uv, c1 := place(tr.a, x.uv)
	st, c2 := place(tr.b, x.st)
	return state{uv: uv, st: st}, c1 || c2
}
