// Package gregory fills triangular holes between bicubic Bézier surfaces
// with three Gregory patches.
package gregory

import (
	"github.com/chazu/loft/pkg/ids"
)

// Edge is one boundary of a bicubic patch. Strip holds the patch's control
// ids laid out from the boundary inward: Strip[0] is the boundary itself and
// Strip[r][k] is the k-th point of the r-th row away from it.
type Edge struct {
	Corners [4]ids.ID    `json:"corners"`
	Strip   [4][4]ids.ID `json:"strip"`
}

// Start and End are the boundary's two end corners.
func (e Edge) Start() ids.ID { return e.Corners[0] }
func (e Edge) End() ids.ID   { return e.Corners[3] }

// Inverse runs the same edge in the opposite direction.
func (e Edge) Inverse() Edge {
	var out Edge
	for k := 0; k < 4; k++ {
		out.Corners[k] = e.Corners[3-k]
		for r := 0; r < 4; r++ {
			out.Strip[r][k] = e.Strip[r][3-k]
		}
	}
	return out
}

// Equal compares the sets of boundary ids, so an edge equals its inverse.
func (e Edge) Equal(o Edge) bool {
	return sameSet(e.Corners[:], o.Corners[:])
}

// PointIDs lists every control id the edge reads, boundary first.
func (e Edge) PointIDs() []ids.ID {
	out := make([]ids.ID, 0, 16)
	for r := range e.Strip {
		out = append(out, e.Strip[r][:]...)
	}
	return out
}

func sameSet(a, b []ids.ID) bool {
	count := make(map[ids.ID]int, len(a))
	for _, id := range a {
		count[id]++
	}
	for _, id := range b {
		if count[id] == 0 {
			return false
		}
		count[id]--
	}
	for _, n := range count {
		if n != 0 {
			return false
		}
	}
	return true
}

// BoundaryEdges enumerates the boundary edges of a C0 surface from its
// expanded id grid (rows along u, 3·Nv+1 columns). One edge is produced per
// boundary patch side. Sides along a wrapped direction are seams and are
// skipped.
func BoundaryEdges(grid []ids.ID, nu, nv int, wrapU, wrapV bool) []Edge {
	rows, cols := 3*nu+1, 3*nv+1
	if len(grid) != rows*cols {
		return nil
	}
	at := func(r, c int) ids.ID { return grid[r*cols+c] }

	var edges []Edge
	rowEdge := func(base, dir, patch int) Edge {
		var e Edge
		for r := 0; r < 4; r++ {
			for k := 0; k < 4; k++ {
				e.Strip[r][k] = at(base+dir*r, 3*patch+k)
			}
		}
		e.Corners = e.Strip[0]
		return e
	}
	colEdge := func(base, dir, patch int) Edge {
		var e Edge
		for r := 0; r < 4; r++ {
			for k := 0; k < 4; k++ {
				e.Strip[r][k] = at(3*patch+k, base+dir*r)
			}
		}
		e.Corners = e.Strip[0]
		return e
	}

	if !wrapU {
		for p := 0; p < nv; p++ {
			edges = append(edges, rowEdge(0, 1, p), rowEdge(rows-1, -1, p))
		}
	}
	if !wrapV {
		for p := 0; p < nu; p++ {
			edges = append(edges, colEdge(0, 1, p), colEdge(cols-1, -1, p))
		}
	}
	return edges
}
