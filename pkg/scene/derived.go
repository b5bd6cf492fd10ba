package scene

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/curve"
	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/gregory"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/intersect"
	"github.com/chazu/loft/pkg/surface"
)

// RebuildBezierC2 refreshes the Bernstein cache of c and drops a selected
// Bernstein index that no longer exists.
func (s *Scene) RebuildBezierC2(c *BezierC2) {
	ps, _ := s.Positions(c.Points)
	c.Bernstein = curve.BSplineToBernstein(ps)
	if c.SelectedBernstein >= len(c.Bernstein) {
		c.SelectedBernstein = NoSelection
	}
}

// RebuildBezierInt refreshes the Bernstein cache of c.
func (s *Scene) RebuildBezierInt(c *BezierInt) {
	ps, _ := s.Positions(c.Points)
	c.Bernstein = curve.Interpolate(ps)
}

// Strips resolves the positions of a triangle's edge strips.
func (s *Scene) Strips(t gregory.Triangle) ([3]gregory.Strip, bool) {
	var out [3]gregory.Strip
	for k, e := range t.Edges {
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				p, ok := s.Points[e.Strip[r][c]]
				if !ok {
					return out, false
				}
				out[k][r][c] = p.Position
			}
		}
	}
	return out, true
}

// RebuildGregory refits the three patches of g from the current points.
func (s *Scene) RebuildGregory(g *Gregory) bool {
	strips, ok := s.Strips(g.Triangle)
	if !ok {
		return false
	}
	g.Patches = gregory.Fit(strips)
	return true
}

// SurfaceKind maps an object kind to its patch basis.
func SurfaceKind(k ObjectKind) surface.Kind {
	if k == KindSurfaceC2 {
		return surface.KindC2
	}
	return surface.KindC0
}

// ExpandedIDs returns the full control-id grid of a surface with the seam
// rows of a cylinder repeated.
func ExpandedIDs(kind ObjectKind, sf *Surface) ([]ids.ID, error) {
	return surface.Expand(SurfaceKind(kind), sf.Points, sf.Size, sf.Cylinder)
}

// Evaluator returns the parametric surface of an intersectable object.
func (s *Scene) Evaluator(ref ObjectRef) (surface.Surface, error) {
	switch ref.Kind {
	case KindTorus:
		t, ok := s.Tori[ref.ID]
		if !ok {
			return nil, fmt.Errorf("scene: no torus %d", ref.ID)
		}
		return surface.Torus{Major: t.MajorRadius, Minor: t.MinorRadius, Transform: t.Transform}, nil
	case KindSurfaceC0, KindSurfaceC2:
		sf, ok := s.Surface(ref)
		if !ok {
			return nil, fmt.Errorf("scene: no %s %d", ref.Kind, ref.ID)
		}
		grid, err := ExpandedIDs(ref.Kind, sf)
		if err != nil {
			return nil, fmt.Errorf("scene: %s %d: %w", ref.Kind, ref.ID, err)
		}
		wu, wv := surface.DetectWrap(SurfaceKind(ref.Kind), grid, sf.Size)
		pos, ok := s.Positions(grid)
		if !ok {
			return nil, fmt.Errorf("scene: %s %d references a missing point", ref.Kind, ref.ID)
		}
		return surface.NewPatches(SurfaceKind(ref.Kind), pos, sf.Size, wu, wv)
	}
	return nil, fmt.Errorf("scene: %s is not a surface", ref.Kind)
}

// Texture composes the trimming mask of ref from every intersection that
// involves it. size is the side of the mask in pixels.
func (s *Scene) Texture(ref ObjectRef, size int) []float32 {
	var layers []intersect.Layer
	for _, id := range s.IntersectionsOf(ref) {
		layers = append(layers, s.Intersections[id].Layers(ref)...)
	}
	return intersect.Compose(size, layers)
}

// Center is the mean position of the selected points and tori. Curves and
// surfaces do not contribute.
func (s *Scene) Center() (v3.Vec, bool) {
	var ps []v3.Vec
	for _, r := range s.Selection {
		switch r.Kind {
		case KindPoint:
			if p, ok := s.Points[r.ID]; ok {
				ps = append(ps, p.Position)
			}
		case KindTorus:
			if t, ok := s.Tori[r.ID]; ok {
				ps = append(ps, t.Transform.Translation)
			}
		}
	}
	return geom.Mean(ps)
}
