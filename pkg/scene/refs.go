package scene

import (
	"slices"

	"github.com/chazu/loft/pkg/ids"
)

// References lists every curve, surface and Gregory patch that reads point
// id, ordered by kind and then by id.
func (s *Scene) References(id ids.ID) []ObjectRef {
	var out []ObjectRef
	for _, cid := range SortedIDs(s.BezierC0s) {
		if slices.Contains(s.BezierC0s[cid].Points, id) {
			out = append(out, BezierC0Ref(cid))
		}
	}
	for _, cid := range SortedIDs(s.BezierC2s) {
		if slices.Contains(s.BezierC2s[cid].Points, id) {
			out = append(out, BezierC2Ref(cid))
		}
	}
	for _, cid := range SortedIDs(s.BezierInts) {
		if slices.Contains(s.BezierInts[cid].Points, id) {
			out = append(out, BezierIntRef(cid))
		}
	}
	for _, sid := range SortedIDs(s.SurfacesC0) {
		if slices.Contains(s.SurfacesC0[sid].Points, id) {
			out = append(out, SurfaceC0Ref(sid))
		}
	}
	for _, sid := range SortedIDs(s.SurfacesC2) {
		if slices.Contains(s.SurfacesC2[sid].Points, id) {
			out = append(out, SurfaceC2Ref(sid))
		}
	}
	for _, gid := range SortedIDs(s.Gregories) {
		if s.Gregories[gid].Triangle.References(id) {
			out = append(out, GregoryRef(gid))
		}
	}
	return out
}

// IsReferenced reports whether anything still reads point id.
func (s *Scene) IsReferenced(id ids.ID) bool {
	return len(s.References(id)) > 0
}

// ReplacePoint rewrites every reference to old so that it names repl
// instead, and returns the objects that changed.
func (s *Scene) ReplacePoint(old, repl ids.ID) []ObjectRef {
	refs := s.References(old)
	swap := func(pts []ids.ID) {
		for i, p := range pts {
			if p == old {
				pts[i] = repl
			}
		}
	}
	for _, r := range refs {
		switch r.Kind {
		case KindBezierC0:
			swap(s.BezierC0s[r.ID].Points)
		case KindBezierC2:
			swap(s.BezierC2s[r.ID].Points)
		case KindBezierInt:
			swap(s.BezierInts[r.ID].Points)
		case KindSurfaceC0:
			swap(s.SurfacesC0[r.ID].Points)
		case KindSurfaceC2:
			swap(s.SurfacesC2[r.ID].Points)
		case KindGregory:
			tri := &s.Gregories[r.ID].Triangle
			for e := range tri.Edges {
				swap(tri.Edges[e].Corners[:])
				for row := range tri.Edges[e].Strip {
					swap(tri.Edges[e].Strip[row][:])
				}
			}
		}
	}
	return refs
}

// IntersectionsOf returns the ids of intersections that involve ref, in
// increasing order.
func (s *Scene) IntersectionsOf(ref ObjectRef) []ids.ID {
	var out []ids.ID
	for _, id := range SortedIDs(s.Intersections) {
		in := s.Intersections[id]
		if in.First == ref || in.Second == ref {
			out = append(out, id)
		}
	}
	return out
}
