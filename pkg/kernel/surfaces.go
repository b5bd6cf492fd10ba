package kernel

import (
	"fmt"
	"slices"

	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/scene"
	"github.com/chazu/loft/pkg/surface"
)

// surfaceSpec is what the C0 and C2 creation commands have in common.
type surfaceSpec struct {
	kind     scene.ObjectKind
	id       ids.ID
	name     string
	size     surface.Size
	points   []ids.ID
	cylinder bool
}

func (c *Context) addSurface(s surfaceSpec) error {
	if err := c.fresh(s.id); err != nil {
		return err
	}
	if _, err := surface.Expand(scene.SurfaceKind(s.kind), s.points, s.size, s.cylinder); err != nil {
		return fmt.Errorf("%s %d: %w: %w", s.kind, s.id, err, ErrPrecondition)
	}
	if err := c.pointsExist(s.points); err != nil {
		return err
	}
	c.insertSurface(s)
	return nil
}

func (c *Context) insertSurface(s surfaceSpec) {
	label := "SurfaceC0"
	if s.kind == scene.KindSurfaceC2 {
		label = "SurfaceC2"
	}
	sf := &scene.Surface{
		ID:       s.id,
		Name:     nameOr(s.name, label, s.id),
		Size:     s.size,
		Points:   slices.Clone(s.points),
		Cylinder: s.cylinder,
	}
	if s.kind == scene.KindSurfaceC2 {
		c.Scene.SurfacesC2[s.id] = sf
		c.Emit(events.SurfaceC2Created{ID: sf.ID, Name: sf.Name, Size: sf.Size, Points: slices.Clone(sf.Points), Cylinder: sf.Cylinder})
		return
	}
	c.Scene.SurfacesC0[s.id] = sf
	c.Emit(events.SurfaceC0Created{ID: sf.ID, Name: sf.Name, Size: sf.Size, Points: slices.Clone(sf.Points), Cylinder: sf.Cylinder})
}

func addSurfaceC0(ctx *Context, c AddSurfaceC0) error {
	return ctx.addSurface(surfaceSpec{scene.KindSurfaceC0, c.ID, c.Name, c.Size, c.Points, c.Cylinder})
}

func addSurfaceC2(ctx *Context, c AddSurfaceC2) error {
	return ctx.addSurface(surfaceSpec{scene.KindSurfaceC2, c.ID, c.Name, c.Size, c.Points, c.Cylinder})
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// generateSurface lays out a fresh control grid at the cursor and creates
// the points and the surface.
func (c *Context) generateSurface(kind scene.ObjectKind, name string, size surface.Size, cylinder bool, w, l, r, h float64) error {
	if size.U < 1 || size.V < 1 {
		return fmt.Errorf("surface size %dx%d: %w", size.U, size.V, ErrPrecondition)
	}
	if w < 0 || l < 0 || r < 0 || h < 0 {
		return fmt.Errorf("negative surface extent: %w", ErrPrecondition)
	}
	sk := scene.SurfaceKind(kind)
	if _, err := surface.Expand(sk, make([]struct{}, surface.GridLen(sk, size, cylinder)), size, cylinder); err != nil {
		return fmt.Errorf("%s: %w: %w", kind, err, ErrPrecondition)
	}
	def := c.Config.Surface
	grid := surface.Flat(sk, size, orDefault(w, def.Width), orDefault(l, def.Length), c.Scene.Cursor)
	if cylinder {
		grid = surface.Cylinder(sk, size, orDefault(r, def.Radius), orDefault(h, def.Height), c.Scene.Cursor)
	}
	pts := make([]ids.ID, len(grid))
	for i, p := range grid {
		pts[i] = c.createPoint(p, events.OriginSurface)
	}
	c.insertSurface(surfaceSpec{kind, c.NewID(), name, size, pts, cylinder})
	return nil
}

func createSurfaceC0(ctx *Context, c CreateSurfaceC0) error {
	return ctx.generateSurface(scene.KindSurfaceC0, c.Name, c.Size, c.Cylinder, c.Width, c.Length, c.Radius, c.Height)
}

func createSurfaceC2(ctx *Context, c CreateSurfaceC2) error {
	return ctx.generateSurface(scene.KindSurfaceC2, c.Name, c.Size, c.Cylinder, c.Width, c.Length, c.Radius, c.Height)
}
