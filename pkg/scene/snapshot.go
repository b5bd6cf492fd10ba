package scene

import (
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/ids"
)

// Snapshot is a detached copy of a scene's entities, each kind sorted by
// id. It is what scene files load into and save from.
type Snapshot struct {
	Points        []Point        `json:"points"`
	Tori          []Torus        `json:"tori"`
	BezierC0s     []BezierC0     `json:"bezierC0"`
	BezierC2s     []BezierC2     `json:"bezierC2"`
	BezierInts    []BezierInt    `json:"bezierInt"`
	SurfacesC0    []Surface      `json:"surfacesC0"`
	SurfacesC2    []Surface      `json:"surfacesC2"`
	Gregories     []Gregory      `json:"gregories"`
	Intersections []Intersection `json:"intersections"`
	Selection     []ObjectRef    `json:"selection"`
	Cursor        v3.Vec         `json:"cursor"`
}

func values[T any](m map[ids.ID]*T, clone func(T) T) []T {
	out := make([]T, 0, len(m))
	for _, id := range SortedIDs(m) {
		out = append(out, clone(*m[id]))
	}
	return out
}

func index[T any](vs []T, id func(*T) ids.ID, clone func(T) T) map[ids.ID]*T {
	m := make(map[ids.ID]*T, len(vs))
	for _, v := range vs {
		c := clone(v)
		m[id(&c)] = &c
	}
	return m
}

func clonePoint(p Point) Point { return p }
func cloneTorus(t Torus) Torus { return t }

func cloneBezierC0(c BezierC0) BezierC0 {
	c.Points = slices.Clone(c.Points)
	return c
}

func cloneBezierC2(c BezierC2) BezierC2 {
	c.Points = slices.Clone(c.Points)
	c.Bernstein = slices.Clone(c.Bernstein)
	return c
}

func cloneBezierInt(c BezierInt) BezierInt {
	c.Points = slices.Clone(c.Points)
	c.Bernstein = slices.Clone(c.Bernstein)
	return c
}

func cloneSurface(s Surface) Surface {
	s.Points = slices.Clone(s.Points)
	return s
}

func cloneGregory(g Gregory) Gregory { return g }

func cloneIntersection(in Intersection) Intersection {
	in.Points = slices.Clone(in.Points)
	in.UV = slices.Clone(in.UV)
	in.ST = slices.Clone(in.ST)
	if in.UVTexture != nil {
		t := *in.UVTexture
		t.Bits = slices.Clone(t.Bits)
		in.UVTexture = &t
	}
	if in.STTexture != nil {
		t := *in.STTexture
		t.Bits = slices.Clone(t.Bits)
		in.STTexture = &t
	}
	return in
}

// Snapshot copies the scene.
func (s *Scene) Snapshot() Snapshot {
	return Snapshot{
		Points:        values(s.Points, clonePoint),
		Tori:          values(s.Tori, cloneTorus),
		BezierC0s:     values(s.BezierC0s, cloneBezierC0),
		BezierC2s:     values(s.BezierC2s, cloneBezierC2),
		BezierInts:    values(s.BezierInts, cloneBezierInt),
		SurfacesC0:    values(s.SurfacesC0, cloneSurface),
		SurfacesC2:    values(s.SurfacesC2, cloneSurface),
		Gregories:     values(s.Gregories, cloneGregory),
		Intersections: values(s.Intersections, cloneIntersection),
		Selection:     slices.Clone(s.Selection),
		Cursor:        s.Cursor,
	}
}

// FromSnapshot builds a scene holding copies of the snapshot's entities.
// Derived caches are taken as given; call Refresh to recompute them.
func FromSnapshot(snap Snapshot) *Scene {
	return &Scene{
		Points:        index(snap.Points, func(p *Point) ids.ID { return p.ID }, clonePoint),
		Tori:          index(snap.Tori, func(t *Torus) ids.ID { return t.ID }, cloneTorus),
		BezierC0s:     index(snap.BezierC0s, func(c *BezierC0) ids.ID { return c.ID }, cloneBezierC0),
		BezierC2s:     index(snap.BezierC2s, func(c *BezierC2) ids.ID { return c.ID }, cloneBezierC2),
		BezierInts:    index(snap.BezierInts, func(c *BezierInt) ids.ID { return c.ID }, cloneBezierInt),
		SurfacesC0:    index(snap.SurfacesC0, func(s *Surface) ids.ID { return s.ID }, cloneSurface),
		SurfacesC2:    index(snap.SurfacesC2, func(s *Surface) ids.ID { return s.ID }, cloneSurface),
		Gregories:     index(snap.Gregories, func(g *Gregory) ids.ID { return g.ID }, cloneGregory),
		Intersections: index(snap.Intersections, func(in *Intersection) ids.ID { return in.ID }, cloneIntersection),
		Selection:     slices.Clone(snap.Selection),
		Cursor:        snap.Cursor,
	}
}

// Refresh recomputes every derived cache from the current points.
func (s *Scene) Refresh() {
	for _, c := range s.BezierC2s {
		s.RebuildBezierC2(c)
	}
	for _, c := range s.BezierInts {
		s.RebuildBezierInt(c)
	}
	for _, g := range s.Gregories {
		s.RebuildGregory(g)
	}
}

// MaxID returns the largest id in use, or zero for an empty scene.
func (s *Snapshot) MaxID() ids.ID {
	var m ids.ID
	bump := func(id ids.ID) { m = max(m, id) }
	for _, p := range s.Points {
		bump(p.ID)
	}
	for _, t := range s.Tori {
		bump(t.ID)
	}
	for _, c := range s.BezierC0s {
		bump(c.ID)
	}
	for _, c := range s.BezierC2s {
		bump(c.ID)
	}
	for _, c := range s.BezierInts {
		bump(c.ID)
	}
	for _, c := range s.SurfacesC0 {
		bump(c.ID)
	}
	for _, c := range s.SurfacesC2 {
		bump(c.ID)
	}
	for _, g := range s.Gregories {
		bump(g.ID)
	}
	for _, in := range s.Intersections {
		bump(in.ID)
	}
	return m
}
