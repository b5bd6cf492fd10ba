package gregory

import "github.com/chazu/loft/pkg/ids"

// Triangle is a closed cycle of three boundary edges: each edge ends where
// the next one starts.
type Triangle struct {
	Edges [3]Edge `json:"edges"`
}

// Corners returns the three hole corners in cycle order.
func (t Triangle) Corners() [3]ids.ID {
	return [3]ids.ID{t.Edges[0].Start(), t.Edges[1].Start(), t.Edges[2].Start()}
}

// Equal reports whether both triangles are made of the same underlying
// edges, ignoring edge order and orientation.
func (t Triangle) Equal(o Triangle) bool {
	used := [3]bool{}
	for _, e := range t.Edges {
		found := false
		for j, f := range o.Edges {
			if !used[j] && e.Equal(f) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// PointIDs lists every control id the triangle depends on.
func (t Triangle) PointIDs() []ids.ID {
	out := make([]ids.ID, 0, 48)
	for _, e := range t.Edges {
		out = append(out, e.PointIDs()...)
	}
	return out
}

// References reports whether the triangle reads point id.
func (t Triangle) References(id ids.ID) bool {
	for _, e := range t.Edges {
		for r := range e.Strip {
			for _, p := range e.Strip[r] {
				if p == id {
					return true
				}
			}
		}
	}
	return false
}

// FindTriangles returns every distinct triangle that can be closed from
// edges or their inverses. Triangles are deduplicated up to edge order and
// orientation; the first one found in input order is kept.
func FindTriangles(edges []Edge) []Triangle {
	all := make([]Edge, 0, 2*len(edges))
	for _, e := range edges {
		all = append(all, e, e.Inverse())
	}
	byStart := make(map[ids.ID][]int)
	for i, e := range all {
		byStart[e.Start()] = append(byStart[e.Start()], i)
	}

	var out []Triangle
	for i, e1 := range all {
		for _, j := range byStart[e1.End()] {
			e2 := all[j]
			if j == i || e1.Equal(e2) {
				continue
			}
			for _, k := range byStart[e2.End()] {
				e3 := all[k]
				if k == i || k == j || e3.End() != e1.Start() {
					continue
				}
				if e3.Equal(e1) || e3.Equal(e2) {
					continue
				}
				tri := Triangle{Edges: [3]Edge{e1, e2, e3}}
				if !containsTriangle(out, tri) {
					out = append(out, tri)
				}
			}
		}
	}
	return out
}

func containsTriangle(ts []Triangle, t Triangle) bool {
	for _, o := range ts {
		if o.Equal(t) {
			return true
		}
	}
	return false
}
