package kernel

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/scene"
)

func addPoint(ctx *Context, c AddPoint) error {
	if err := ctx.fresh(c.ID); err != nil {
		return err
	}
	if !geom.IsFinite(c.Position) {
		return fmt.Errorf("point position %v: %w", c.Position, ErrPrecondition)
	}
	p := &scene.Point{ID: c.ID, Name: nameOr(c.Name, "Point", c.ID), Position: c.Position}
	ctx.Scene.Points[c.ID] = p
	ctx.Emit(events.PointCreated{ID: p.ID, Name: p.Name, Position: p.Position, Origin: events.OriginUser})
	return nil
}

// createPoint adds a generated point. It does not extend selected curves.
func (c *Context) createPoint(pos v3.Vec, origin events.Origin) ids.ID {
	id := c.NewID()
	p := &scene.Point{ID: id, Name: nameOr("", "Point", id), Position: pos}
	c.Scene.Points[id] = p
	c.Emit(events.PointCreated{ID: id, Name: p.Name, Position: pos, Origin: origin})
	return id
}

func movePoint(ctx *Context, c MovePoint) error {
	p, ok := ctx.Scene.Points[c.ID]
	if !ok {
		return fmt.Errorf("point %d: %w", c.ID, ErrNotFound)
	}
	if !geom.IsFinite(c.Position) {
		return fmt.Errorf("point position %v: %w", c.Position, ErrPrecondition)
	}
	p.Position = c.Position
	ctx.Emit(events.PointMoved{ID: c.ID, Position: c.Position})
	return nil
}

func renameObject(ctx *Context, c RenameObject) error {
	if c.Name == "" {
		return fmt.Errorf("empty name: %w", ErrPrecondition)
	}
	if !ctx.Scene.Rename(c.Object, c.Name) {
		return fmt.Errorf("%s: %w", c.Object, ErrNotFound)
	}
	ctx.Emit(events.ObjectRenamed{Object: c.Object, Name: c.Name})
	return nil
}

func mergeSelectedPoints(ctx *Context, _ MergeSelectedPoints) error {
	sel := ctx.Scene.SelectedOf(scene.KindPoint)
	if len(sel) < 2 {
		return fmt.Errorf("merge needs at least two selected points, have %d: %w", len(sel), ErrPrecondition)
	}
	pos, _ := ctx.Scene.Positions(sel)
	mean, _ := geom.Mean(pos)

	kept, removed := sel[0], sel[1:]
	for _, id := range removed {
		ctx.Scene.ReplacePoint(id, kept)
		ctx.Scene.Delete(scene.PointRef(id))
	}
	ctx.Scene.Points[kept].Position = mean

	ctx.Emit(events.PointsMerged{Kept: kept, Removed: append([]ids.ID(nil), removed...), Position: mean})
	for _, id := range removed {
		ctx.Emit(events.PointDeleted{ID: id})
	}
	// Curves that referenced a removed point now read kept; the move
	// refreshes their caches.
	ctx.Emit(events.PointMoved{ID: kept, Position: mean})
	ctx.selectionChanged()
	return nil
}
