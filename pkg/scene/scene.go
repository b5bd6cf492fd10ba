// Package scene is the in-memory store of the modelling kernel: typed maps
// of entities by id, the selection and the cursor.
//
// Points are shared. Curves, surfaces and Gregory patches hold point ids
// and resolve them through the scene on every read, so moving a point
// affects every object built on it. Derived data (Bernstein polygons,
// Gregory patches) is cached on the entity and refreshed by the kernel.
package scene

import (
	"maps"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/ids"
)

// Scene holds every entity. It is not safe for concurrent use.
type Scene struct {
	Points        map[ids.ID]*Point
	Tori          map[ids.ID]*Torus
	BezierC0s     map[ids.ID]*BezierC0
	BezierC2s     map[ids.ID]*BezierC2
	BezierInts    map[ids.ID]*BezierInt
	SurfacesC0    map[ids.ID]*Surface
	SurfacesC2    map[ids.ID]*Surface
	Gregories     map[ids.ID]*Gregory
	Intersections map[ids.ID]*Intersection

	Selection []ObjectRef
	Cursor    v3.Vec
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{
		Points:        make(map[ids.ID]*Point),
		Tori:          make(map[ids.ID]*Torus),
		BezierC0s:     make(map[ids.ID]*BezierC0),
		BezierC2s:     make(map[ids.ID]*BezierC2),
		BezierInts:    make(map[ids.ID]*BezierInt),
		SurfacesC0:    make(map[ids.ID]*Surface),
		SurfacesC2:    make(map[ids.ID]*Surface),
		Gregories:     make(map[ids.ID]*Gregory),
		Intersections: make(map[ids.ID]*Intersection),
	}
}

// Exists reports whether ref names a live entity.
func (s *Scene) Exists(ref ObjectRef) bool {
	var ok bool
	switch ref.Kind {
	case KindPoint:
		_, ok = s.Points[ref.ID]
	case KindTorus:
		_, ok = s.Tori[ref.ID]
	case KindBezierC0:
		_, ok = s.BezierC0s[ref.ID]
	case KindBezierC2:
		_, ok = s.BezierC2s[ref.ID]
	case KindBezierInt:
		_, ok = s.BezierInts[ref.ID]
	case KindSurfaceC0:
		_, ok = s.SurfacesC0[ref.ID]
	case KindSurfaceC2:
		_, ok = s.SurfacesC2[ref.ID]
	case KindGregory:
		_, ok = s.Gregories[ref.ID]
	case KindIntersection:
		_, ok = s.Intersections[ref.ID]
	}
	return ok
}

// Name returns the display name of ref, or "" if it does not exist.
func (s *Scene) Name(ref ObjectRef) string {
	switch ref.Kind {
	case KindPoint:
		if p, ok := s.Points[ref.ID]; ok {
			return p.Name
		}
	case KindTorus:
		if t, ok := s.Tori[ref.ID]; ok {
			return t.Name
		}
	case KindBezierC0:
		if c, ok := s.BezierC0s[ref.ID]; ok {
			return c.Name
		}
	case KindBezierC2:
		if c, ok := s.BezierC2s[ref.ID]; ok {
			return c.Name
		}
	case KindBezierInt:
		if c, ok := s.BezierInts[ref.ID]; ok {
			return c.Name
		}
	case KindSurfaceC0:
		if c, ok := s.SurfacesC0[ref.ID]; ok {
			return c.Name
		}
	case KindSurfaceC2:
		if c, ok := s.SurfacesC2[ref.ID]; ok {
			return c.Name
		}
	case KindGregory:
		if g, ok := s.Gregories[ref.ID]; ok {
			return g.Name
		}
	case KindIntersection:
		if in, ok := s.Intersections[ref.ID]; ok {
			return in.Name
		}
	}
	return ""
}

// Rename sets the display name of ref and reports whether it exists.
func (s *Scene) Rename(ref ObjectRef, name string) bool {
	switch ref.Kind {
	case KindPoint:
		if p, ok := s.Points[ref.ID]; ok {
			p.Name = name
			return true
		}
	case KindTorus:
		if t, ok := s.Tori[ref.ID]; ok {
			t.Name = name
			return true
		}
	case KindBezierC0:
		if c, ok := s.BezierC0s[ref.ID]; ok {
			c.Name = name
			return true
		}
	case KindBezierC2:
		if c, ok := s.BezierC2s[ref.ID]; ok {
			c.Name = name
			return true
		}
	case KindBezierInt:
		if c, ok := s.BezierInts[ref.ID]; ok {
			c.Name = name
			return true
		}
	case KindSurfaceC0:
		if c, ok := s.SurfacesC0[ref.ID]; ok {
			c.Name = name
			return true
		}
	case KindSurfaceC2:
		if c, ok := s.SurfacesC2[ref.ID]; ok {
			c.Name = name
			return true
		}
	case KindGregory:
		if g, ok := s.Gregories[ref.ID]; ok {
			g.Name = name
			return true
		}
	case KindIntersection:
		if in, ok := s.Intersections[ref.ID]; ok {
			in.Name = name
			return true
		}
	}
	return false
}

// Delete removes ref from its map and from the selection. It does not
// check references; callers enforce that.
func (s *Scene) Delete(ref ObjectRef) {
	switch ref.Kind {
	case KindPoint:
		delete(s.Points, ref.ID)
	case KindTorus:
		delete(s.Tori, ref.ID)
	case KindBezierC0:
		delete(s.BezierC0s, ref.ID)
	case KindBezierC2:
		delete(s.BezierC2s, ref.ID)
	case KindBezierInt:
		delete(s.BezierInts, ref.ID)
	case KindSurfaceC0:
		delete(s.SurfacesC0, ref.ID)
	case KindSurfaceC2:
		delete(s.SurfacesC2, ref.ID)
	case KindGregory:
		delete(s.Gregories, ref.ID)
	case KindIntersection:
		delete(s.Intersections, ref.ID)
	}
	s.Deselect(ref)
}

// Surface returns the C0 or C2 surface named by ref.
func (s *Scene) Surface(ref ObjectRef) (*Surface, bool) {
	var sf *Surface
	switch ref.Kind {
	case KindSurfaceC0:
		sf = s.SurfacesC0[ref.ID]
	case KindSurfaceC2:
		sf = s.SurfacesC2[ref.ID]
	}
	return sf, sf != nil
}

// Positions resolves point ids. It reports false if any id is missing.
func (s *Scene) Positions(pts []ids.ID) ([]v3.Vec, bool) {
	out := make([]v3.Vec, len(pts))
	for i, id := range pts {
		p, ok := s.Points[id]
		if !ok {
			return nil, false
		}
		out[i] = p.Position
	}
	return out, true
}

// SortedIDs returns the keys of m in increasing order.
func SortedIDs[V any](m map[ids.ID]V) []ids.ID {
	return slices.Sorted(maps.Keys(m))
}

// ---------------------------------------------------------------------------
// Selection
// ---------------------------------------------------------------------------

// IsSelected reports whether ref is in the selection.
func (s *Scene) IsSelected(ref ObjectRef) bool {
	return slices.Contains(s.Selection, ref)
}

// Select appends ref to the selection unless it is already there.
func (s *Scene) Select(ref ObjectRef) bool {
	if s.IsSelected(ref) {
		return false
	}
	s.Selection = append(s.Selection, ref)
	return true
}

// Deselect removes ref from the selection.
func (s *Scene) Deselect(ref ObjectRef) bool {
	i := slices.Index(s.Selection, ref)
	if i < 0 {
		return false
	}
	s.Selection = slices.Delete(s.Selection, i, i+1)
	return true
}

// SelectedOf returns the selected ids of one kind in selection order.
func (s *Scene) SelectedOf(kind ObjectKind) []ids.ID {
	var out []ids.ID
	for _, r := range s.Selection {
		if r.Kind == kind {
			out = append(out, r.ID)
		}
	}
	return out
}
