package kernel

import (
	"fmt"
	"slices"

	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/scene"
)

func selectObjects(ctx *Context, c SelectObjects) error {
	for _, ref := range c.Objects {
		if err := ctx.exists(ref); err != nil {
			return err
		}
	}
	changed := false
	for _, ref := range c.Objects {
		if ctx.Scene.Select(ref) {
			changed = true
		}
	}
	if !changed {
		return fmt.Errorf("selection unchanged: %w", ErrPrecondition)
	}
	ctx.selectionChanged()
	return nil
}

func toggleSelection(ctx *Context, c ToggleSelection) error {
	if err := ctx.exists(c.Object); err != nil {
		return err
	}
	if !ctx.Scene.Deselect(c.Object) {
		ctx.Scene.Select(c.Object)
	}
	ctx.selectionChanged()
	return nil
}

func clearSelection(ctx *Context, _ ClearSelection) error {
	if len(ctx.Scene.Selection) == 0 {
		return fmt.Errorf("selection already empty: %w", ErrPrecondition)
	}
	ctx.Scene.Selection = nil
	ctx.selectionChanged()
	return nil
}

func setCursor(ctx *Context, c SetCursor) error {
	if !geom.IsFinite(c.Position) {
		return fmt.Errorf("cursor %v: %w", c.Position, ErrPrecondition)
	}
	ctx.Scene.Cursor = c.Position
	ctx.Emit(events.CursorMoved{Position: c.Position})
	return nil
}

func sortedSelection(s *scene.Scene, kind scene.ObjectKind) []ids.ID {
	sel := s.SelectedOf(kind)
	slices.Sort(sel)
	return sel
}

// transformSelected applies the group transform to every selected point and
// torus. All mutations happen before any event is queued; points are
// announced before tori, each in id order.
func transformSelected(ctx *Context, c TransformSelected) error {
	center, ok := ctx.Scene.Center()
	if !ok {
		return fmt.Errorf("no points or tori selected: %w", ErrPrecondition)
	}
	g := c.Transform
	tr, err := validTransform(geom.Transform{Translation: g.Translation, Rotation: g.Rotation, Scale: g.Scale})
	if err != nil {
		return err
	}
	g.Rotation = tr.Rotation

	pts := sortedSelection(ctx.Scene, scene.KindPoint)
	tori := sortedSelection(ctx.Scene, scene.KindTorus)
	for _, id := range pts {
		p := ctx.Scene.Points[id]
		p.Position = g.ApplyPosition(p.Position, center)
	}
	for _, id := range tori {
		t := ctx.Scene.Tori[id]
		t.Transform = g.ApplyTo(t.Transform, center)
		t.Transform.Rotation, _ = geom.Normalize(t.Transform.Rotation)
	}
	for _, id := range pts {
		ctx.Emit(events.PointMoved{ID: id, Position: ctx.Scene.Points[id].Position})
	}
	for _, id := range tori {
		ctx.Emit(events.TorusTransformed{ID: id, Transform: ctx.Scene.Tori[id].Transform})
	}
	return nil
}

// deleteObject removes a non-point entity together with the intersections
// that depend on it.
func (c *Context) deleteObject(ref scene.ObjectRef) {
	if ref.Kind.Intersectable() {
		for _, id := range c.Scene.IntersectionsOf(ref) {
			c.deleteIntersection(id)
		}
	}
	c.Scene.Delete(ref)
	switch ref.Kind {
	case scene.KindTorus:
		c.Emit(events.TorusDeleted{ID: ref.ID})
	case scene.KindBezierC0:
		c.Emit(events.BezierC0Deleted{ID: ref.ID})
	case scene.KindBezierC2:
		c.Emit(events.BezierC2Deleted{ID: ref.ID})
	case scene.KindBezierInt:
		c.Emit(events.BezierIntDeleted{ID: ref.ID})
	case scene.KindSurfaceC0:
		c.Emit(events.SurfaceC0Deleted{ID: ref.ID})
	case scene.KindSurfaceC2:
		c.Emit(events.SurfaceC2Deleted{ID: ref.ID})
	case scene.KindGregory:
		c.Emit(events.GregoryDeleted{ID: ref.ID})
	}
}

// deleteSelectedObjects removes everything selected except points that are
// still referenced once the selected objects are gone.
func deleteSelectedObjects(ctx *Context, _ DeleteSelectedObjects) error {
	sel := slices.Clone(ctx.Scene.Selection)
	if len(sel) == 0 {
		return fmt.Errorf("nothing selected: %w", ErrPrecondition)
	}
	deleted := 0
	for _, ref := range sel {
		if ref.Kind == scene.KindPoint || !ctx.Scene.Exists(ref) {
			continue
		}
		if ref.Kind == scene.KindIntersection {
			ctx.deleteIntersection(ref.ID)
		} else {
			ctx.deleteObject(ref)
		}
		deleted++
	}
	for _, id := range sortedSelection(ctx.Scene, scene.KindPoint) {
		if ctx.Scene.IsReferenced(id) {
			Logger().Debug("point kept", "id", id, "references", len(ctx.Scene.References(id)))
			continue
		}
		ctx.Scene.Delete(scene.PointRef(id))
		ctx.Emit(events.PointDeleted{ID: id})
		deleted++
	}
	if deleted == 0 {
		return fmt.Errorf("every selected point is still referenced: %w", ErrPrecondition)
	}
	ctx.selectionChanged()
	return nil
}
