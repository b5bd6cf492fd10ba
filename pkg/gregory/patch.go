package gregory

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/curve"
)

// Patch is a bicubic Gregory patch. The boundary is an ordinary Bézier
// boundary; each of the four interior points is split in two and blended by
// distance to the two adjacent boundaries.
//
// Corners are P00, P30, P33, P03. Bottom and Top hold the inner points of
// the v=0 and v=1 boundaries, Left and Right those of u=0 and u=1. UInner
// and VInner hold P11, P21, P22, P12 as seen from the u and v boundaries.
type Patch struct {
	Corners [4]v3.Vec `json:"corners"`
	Bottom  [2]v3.Vec `json:"bottom"`
	Top     [2]v3.Vec `json:"top"`
	Left    [2]v3.Vec `json:"left"`
	Right   [2]v3.Vec `json:"right"`
	UInner  [4]v3.Vec `json:"uInner"`
	VInner  [4]v3.Vec `json:"vInner"`
}

// Strip is the position data of one triangle edge: the boundary row
// followed by three rows moving into the source surface.
type Strip [4][4]v3.Vec

// Fit builds the three patches filling the hole bounded by strips. Edge k
// runs from hole corner k to hole corner k+1, and patch k has its P00 on
// corner k. All three patches meet at the shared centre P33.
func Fit(strips [3]Strip) [3]Patch {
	type half struct {
		l, li, r, ri [4]v3.Vec // boundary and first inner row, split at the midpoint
	}
	var h [3]half
	var p3, p2, q [3]v3.Vec
	for k, s := range strips {
		h[k].l, h[k].r = curve.Split(s[0], 0.5)
		h[k].li, h[k].ri = curve.Split(s[1], 0.5)
		p3[k] = h[k].l[3]
		p2[k] = p3[k].Add(p3[k].Sub(h[k].li[3]))
		q[k] = p2[k].MulScalar(3).Sub(p3[k]).DivScalar(2)
	}
	p := q[0].Add(q[1]).Add(q[2]).DivScalar(3)
	var p1 [3]v3.Vec
	for k := range p1 {
		p1[k] = q[k].MulScalar(2).Add(p).DivScalar(3)
	}

	mirror := func(a, b v3.Vec) v3.Vec { return a.Add(a.Sub(b)) }

	var out [3]Patch
	for k := range out {
		prev := (k + 2) % 3
		cur, pr := h[k], h[prev]

		out[k] = Patch{
			Corners: [4]v3.Vec{cur.l[0], p3[k], p, p3[prev]},
			Bottom:  [2]v3.Vec{cur.l[1], cur.l[2]},
			Top:     [2]v3.Vec{p2[prev], p1[prev]},
			Left:    [2]v3.Vec{pr.r[2], pr.r[1]},
			Right:   [2]v3.Vec{p2[k], p1[k]},
			VInner: [4]v3.Vec{
				mirror(cur.l[1], cur.li[1]),
				mirror(cur.l[2], cur.li[2]),
				p1[k].Add(p1[prev]).Sub(p),
				p2[prev].Add(pr.r[1]).Sub(p3[prev]),
			},
			UInner: [4]v3.Vec{
				mirror(pr.r[2], pr.ri[2]),
				p2[k].Add(cur.l[2]).Sub(p3[k]),
				p1[k].Add(p1[prev]).Sub(p),
				mirror(pr.r[1], pr.ri[1]),
			},
		}
	}
	return out
}

// Net returns the Bézier control net at (u, v) with the interior points
// blended. Rows run along u: net[i][j] is P_ij.
func (g Patch) Net(u, v float64) [4][4]v3.Vec {
	var n [4][4]v3.Vec
	n[0][0], n[3][0], n[3][3], n[0][3] = g.Corners[0], g.Corners[1], g.Corners[2], g.Corners[3]
	n[1][0], n[2][0] = g.Bottom[0], g.Bottom[1]
	n[1][3], n[2][3] = g.Top[0], g.Top[1]
	n[0][1], n[0][2] = g.Left[0], g.Left[1]
	n[3][1], n[3][2] = g.Right[0], g.Right[1]

	blend := func(wv float64, pv v3.Vec, wu float64, pu v3.Vec) v3.Vec {
		d := wu + wv
		if d == 0 {
			return pv.Add(pu).DivScalar(2)
		}
		return pv.MulScalar(wv).Add(pu.MulScalar(wu)).DivScalar(d)
	}
	n[1][1] = blend(u, g.VInner[0], v, g.UInner[0])
	n[2][1] = blend(1-u, g.VInner[1], v, g.UInner[1])
	n[2][2] = blend(1-u, g.VInner[2], 1-v, g.UInner[2])
	n[1][2] = blend(u, g.VInner[3], 1-v, g.UInner[3])
	return n
}

// Eval returns the patch point at (u, v) in [0,1]².
func (g Patch) Eval(u, v float64) v3.Vec {
	n := g.Net(u, v)
	var rows [4]v3.Vec
	for i := range n {
		rows[i] = curve.Eval(n[i][:], v)
	}
	return curve.Eval(rows[:], u)
}
