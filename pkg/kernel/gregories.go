package kernel

import (
	"fmt"

	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/gregory"
	"github.com/chazu/loft/pkg/scene"
	"github.com/chazu/loft/pkg/surface"
)

// boundaryEdges collects the open patch sides of the selected C0 surfaces.
func boundaryEdges(s *scene.Scene) ([]gregory.Edge, error) {
	var edges []gregory.Edge
	for _, id := range s.SelectedOf(scene.KindSurfaceC0) {
		sf := s.SurfacesC0[id]
		grid, err := scene.ExpandedIDs(scene.KindSurfaceC0, sf)
		if err != nil {
			return nil, fmt.Errorf("surfaceC0 %d: %w", id, err)
		}
		wu, wv := surface.DetectWrap(surface.KindC0, grid, sf.Size)
		edges = append(edges, gregory.BoundaryEdges(grid, sf.Size.U, sf.Size.V, wu, wv)...)
	}
	return edges, nil
}

func (c *Context) filled(t gregory.Triangle) bool {
	for _, g := range c.Scene.Gregories {
		if g.Triangle.Equal(t) {
			return true
		}
	}
	return false
}

func calculateGregories(ctx *Context, _ CalculateGregories) error {
	if len(ctx.Scene.SelectedOf(scene.KindSurfaceC0)) == 0 {
		return fmt.Errorf("no C0 surface selected: %w", ErrPrecondition)
	}
	edges, err := boundaryEdges(ctx.Scene)
	if err != nil {
		return err
	}
	created := 0
	for _, t := range gregory.FindTriangles(edges) {
		if ctx.filled(t) {
			continue
		}
		strips, ok := ctx.Scene.Strips(t)
		if !ok {
			continue
		}
		id := ctx.NewID()
		g := &scene.Gregory{
			ID:        id,
			Name:      nameOr("", "Gregory", id),
			Triangle:  t,
			Patches:   gregory.Fit(strips),
			TessLevel: ctx.Config.Gregory.TessLevel,
		}
		ctx.Scene.Gregories[id] = g
		ctx.Emit(events.GregoryCreated{ID: id, Name: g.Name, TessLevel: g.TessLevel, DrawVectors: g.DrawVectors, Patches: g.Patches})
		created++
	}
	if created == 0 {
		return fmt.Errorf("no unfilled triangular hole among %d boundary edges: %w", len(edges), ErrPrecondition)
	}
	return nil
}

func updateGregory(ctx *Context, c UpdateGregory) error {
	g, ok := ctx.Scene.Gregories[c.ID]
	if !ok {
		return fmt.Errorf("gregory %d: %w", c.ID, ErrNotFound)
	}
	if c.TessLevel < scene.MinTessLevel || c.TessLevel > scene.MaxTessLevel {
		return fmt.Errorf("tess level %d: %w", c.TessLevel, ErrPrecondition)
	}
	g.TessLevel, g.DrawVectors = c.TessLevel, c.DrawVectors
	ctx.Emit(events.GregoryUpdated{ID: c.ID, TessLevel: g.TessLevel, DrawVectors: g.DrawVectors})
	return nil
}
