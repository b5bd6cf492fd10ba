package intersect

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/mat"

	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/surface"
)

// selfSeparation is the parameter distance below which two samples of the
// same surface are considered the same point.
const selfSeparation = 0.1

type sample struct {
	uv geom.UV
	p  v3.Vec
}

func sampleSurface(s surface.Surface, n int) []sample {
	r := s.Range()
	out := make([]sample, 0, n*n)
	for i := 0; i < n; i++ {
		u := (float64(i) + 0.5) * r.U / float64(n)
		for j := 0; j < n; j++ {
			v := (float64(j) + 0.5) * r.V / float64(n)
			out = append(out, sample{uv: geom.UV{U: u, V: v}, p: s.Eval(u, v)})
		}
	}
	return out
}

type cell [3]int64

func cellOf(p v3.Vec, size float64) cell {
	return cell{int64(math.Floor(p.X / size)), int64(math.Floor(p.Y / size)), int64(math.Floor(p.Z / size))}
}

// closeness buckets a distance by decade; larger is closer.
func closeness(d float64) int {
	if d <= 0 {
		return math.MaxInt32
	}
	return int(math.Floor(-math.Log10(d)))
}

// tooClose reports whether two parameter pairs of one surface name nearly
// the same point, measuring across seams of wrapped parameters.
func tooClose(s surface.Surface, a, b geom.UV) bool {
	r := s.Range()
	wu, wv := s.Wrap()
	du := math.Abs(a.U - b.U)
	if wu {
		du = geom.PeriodicDistance(a.U, b.U, r.U)
	}
	dv := math.Abs(a.V - b.V)
	if wv {
		dv = geom.PeriodicDistance(a.V, b.V, r.V)
	}
	return du < selfSeparation || dv < selfSeparation
}

// Seed finds a starting pair of parameters for tracing. Sample pairs closer
// than SeedMaxDistance are ranked by the decade of their distance and then
// by distance from the cursor; the winner is refined by Gauss-Newton.
func Seed(a, b surface.Surface, self bool, cursor v3.Vec, p Params) (geom.UV, geom.UV, error) {
	n := max(p.SeedSamples, 1)
	sa := sampleSurface(a, n)
	sb := sa
	if !self {
		sb = sampleSurface(b, n)
	}

	size := p.SeedMaxDistance
	grid := make(map[cell][]int, len(sb))
	for i, s := range sb {
		c := cellOf(s.p, size)
		grid[c] = append(grid[c], i)
	}

	bestBucket, bestCursor := math.MinInt, math.Inf(1)
	bi, bj := -1, -1
	for i, s := range sa {
		c := cellOf(s.p, size)
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, j := range grid[cell{c[0] + dx, c[1] + dy, c[2] + dz}] {
						t := sb[j]
						d := geom.Distance(s.p, t.p)
						if d >= size {
							continue
						}
						if self && tooClose(a, s.uv, t.uv) {
							continue
						}
						bucket := closeness(d)
						dc := geom.Distance(s.p, cursor)
						if bucket > bestBucket || (bucket == bestBucket && dc < bestCursor) {
							bestBucket, bestCursor = bucket, dc
							bi, bj = i, j
						}
					}
				}
			}
		}
	}
	if bi < 0 {
		return geom.UV{}, geom.UV{}, ErrNoSeed
	}

	uv, st := sa[bi].uv, sb[bj].uv
	if ruv, rst, ok := refineSeed(a, b, uv, st, p); ok && !(self && tooClose(a, ruv, rst)) {
		uv, st = ruv, rst
	}
	return uv, st, nil
}

// refineSeed drives f1(u,v) - f2(s,t) to zero with minimum-norm
// Gauss-Newton steps: Δ = Jᵀ(JJᵀ)⁻¹F.
func refineSeed(a, b surface.Surface, uv, st geom.UV, p Params) (geom.UV, geom.UV, bool) {
	for it := 0; it < p.NewtonIterations; it++ {
		f := a.Eval(uv.U, uv.V).Sub(b.Eval(st.U, st.V))
		if f.Length() < p.Epsilon {
			return uv, st, true
		}
		du, dv := surface.Gradient(a, uv.U, uv.V)
		ds, dt := surface.Gradient(b, st.U, st.V)
		J := mat.NewDense(3, 4, []float64{
			du.X, dv.X, -ds.X, -dt.X,
			du.Y, dv.Y, -ds.Y, -dt.Y,
			du.Z, dv.Z, -ds.Z, -dt.Z,
		})
		var jjt mat.Dense
		jjt.Mul(J, J.T())
		var y mat.VecDense
		if err := y.SolveVec(&jjt, mat.NewVecDense(3, []float64{f.X, f.Y, f.Z})); err != nil {
			return uv, st, false
		}
		var d mat.VecDense
		d.MulVec(J.T(), &y)

		uv, _ = place(a, geom.UV{U: uv.U - d.AtVec(0), V: uv.V - d.AtVec(1)})
		st, _ = place(b, geom.UV{U: st.U - d.AtVec(2), V: st.V - d.AtVec(3)})
	}
	f := a.Eval(uv.U, uv.V).Sub(b.Eval(st.U, st.V))
	return uv, st, f.Length() < p.Epsilon
}

// place wraps periodic parameters and clamps the rest into the domain,
// reporting whether any clamping happened.
func place(s surface.Surface, x geom.UV) (geom.UV, bool) {
	r := s.Range()
	wu, wv := s.Wrap()
	var cu, cv bool
	if wu {
		x.U = geom.WrapParam(x.U, r.U)
	} else {
		x.U, cu = geom.ClampParam(x.U, r.U)
	}
	if wv {
		x.V = geom.WrapParam(x.V, r.V)
	} else {
		x.V, cv = geom.ClampParam(x.V, r.V)
	}
	return x, cu || cv
}
