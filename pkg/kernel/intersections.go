package kernel

import (
	"fmt"
	"slices"

	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/intersect"
	"github.com/chazu/loft/pkg/scene"
)

func findIntersection(ctx *Context, c FindIntersection) error {
	if err := ctx.fresh(c.ID); err != nil {
		return err
	}
	for _, ref := range []scene.ObjectRef{c.First, c.Second} {
		if !ref.Kind.Intersectable() {
			return fmt.Errorf("%s cannot be intersected: %w", ref.Kind, ErrPrecondition)
		}
		if err := ctx.exists(ref); err != nil {
			return err
		}
	}
	a, err := ctx.Scene.Evaluator(c.First)
	if err != nil {
		return fmt.Errorf("%w: %w", err, ErrPrecondition)
	}
	b, err := ctx.Scene.Evaluator(c.Second)
	if err != nil {
		return fmt.Errorf("%w: %w", err, ErrPrecondition)
	}

	params := ctx.Config.Params()
	res, err := intersect.Find(a, b, c.First == c.Second, ctx.Scene.Cursor, params)
	if err != nil {
		// A search that finds nothing still completes; the failure is
		// reported on the stream.
		err = fmt.Errorf("%w: %w", ErrNoConvergence, err)
		Logger().Info("intersection not found", "first", c.First.String(), "second", c.Second.String(), "err", err)
		ctx.Emit(events.IntersectionFailed{First: c.First, Second: c.Second, Reason: err.Error()})
		return nil
	}

	in := &scene.Intersection{
		ID:        c.ID,
		Name:      nameOr(c.Name, "Intersection", c.ID),
		First:     c.First,
		Second:    c.Second,
		Points:    res.Points,
		UV:        res.UV,
		ST:        res.ST,
		UVTexture: res.UVTexture,
		STTexture: res.STTexture,
		Wrap:      res.Wrap,
		UVDraw:    intersect.DrawBoth,
		STDraw:    intersect.DrawBoth,
	}
	ctx.Scene.Intersections[c.ID] = in
	ctx.Emit(events.IntersectionCreated{
		ID:        in.ID,
		Name:      in.Name,
		First:     in.First,
		Second:    in.Second,
		UVTexture: in.UVTexture,
		STTexture: in.STTexture,
		Points:    slices.Clone(in.Points),
		Wrap:      in.Wrap,
	})
	if res.Truncated {
		Logger().Warn("intersection truncated", "id", c.ID, "points", len(in.Points))
		ctx.Emit(events.IntersectionTruncated{ID: c.ID, Points: len(in.Points)})
	}
	return nil
}

func setIntersectionTextureDraw(ctx *Context, c SetIntersectionTextureDraw) error {
	in, ok := ctx.Scene.Intersections[c.ID]
	if !ok {
		return fmt.Errorf("intersection %d: %w", c.ID, ErrNotFound)
	}
	valid := func(d intersect.TextureDraw) bool { return d&^intersect.DrawBoth == 0 }
	if !valid(c.UVDraw) || !valid(c.STDraw) {
		return fmt.Errorf("texture draw %d/%d: %w", c.UVDraw, c.STDraw, ErrPrecondition)
	}
	in.UVDraw, in.STDraw = c.UVDraw, c.STDraw
	ctx.Emit(events.IntersectionTexturesDrawSet{ID: c.ID, UVDraw: c.UVDraw, STDraw: c.STDraw, First: in.First, Second: in.Second})
	return nil
}

func (c *Context) deleteIntersection(id ids.ID) {
	in := c.Scene.Intersections[id]
	c.Scene.Delete(scene.IntersectionRef(id))
	c.Emit(events.IntersectionDeleted{ID: id, First: in.First, Second: in.Second})
}

func intersectionToInterpolated(ctx *Context, c IntersectionToInterpolated) error {
	in, ok := ctx.Scene.Intersections[c.ID]
	if !ok {
		return fmt.Errorf("intersection %d: %w", c.ID, ErrNotFound)
	}
	if len(in.Points) == 0 {
		return fmt.Errorf("intersection %d has no points: %w", c.ID, ErrPrecondition)
	}
	pts := make([]ids.ID, 0, len(in.Points)+1)
	for _, p := range in.Points {
		pts = append(pts, ctx.createPoint(p, events.OriginDerived))
	}
	if in.Wrap {
		pts = append(pts, pts[0])
	}
	ctx.newBezierInt(ctx.NewID(), c.Name, pts)
	ctx.deleteIntersection(c.ID)
	return nil
}
