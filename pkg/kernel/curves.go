package kernel

import (
	"fmt"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/curve"
	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/scene"
)

// curvePoints resolves the control points of a new curve.
func (c *Context) curvePoints(pts []ids.ID) ([]ids.ID, error) {
	if len(pts) == 0 {
		pts = c.Scene.SelectedOf(scene.KindPoint)
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("curve without points: %w", ErrPrecondition)
	}
	if err := c.pointsExist(pts); err != nil {
		return nil, err
	}
	return slices.Clone(pts), nil
}

// removeAll drops every occurrence of del from pts and reports which ids
// were present.
func removeAll(pts, del []ids.ID) ([]ids.ID, []ids.ID) {
	var gone []ids.ID
	for _, id := range del {
		if slices.Contains(pts, id) && !slices.Contains(gone, id) {
			gone = append(gone, id)
		}
	}
	kept := slices.DeleteFunc(slices.Clone(pts), func(id ids.ID) bool {
		return slices.Contains(gone, id)
	})
	return kept, gone
}

func clonePolygon(ps []v3.Vec) []v3.Vec { return slices.Clone(ps) }

// ---------------------------------------------------------------------------
// C0
// ---------------------------------------------------------------------------

func addBezierC0(ctx *Context, c AddBezierC0) error {
	if err := ctx.fresh(c.ID); err != nil {
		return err
	}
	pts, err := ctx.curvePoints(c.Points)
	if err != nil {
		return err
	}
	b := &scene.BezierC0{ID: c.ID, Name: nameOr(c.Name, "BezierC0", c.ID), Points: pts}
	ctx.Scene.BezierC0s[c.ID] = b
	ctx.Emit(events.BezierC0Created{ID: b.ID, Name: b.Name, Points: slices.Clone(pts)})
	return nil
}

func addPointToBezierC0(ctx *Context, c AddPointToBezierC0) error {
	b, ok := ctx.Scene.BezierC0s[c.BezierID]
	if !ok {
		return fmt.Errorf("bezierC0 %d: %w", c.BezierID, ErrNotFound)
	}
	p, ok := ctx.Scene.Points[c.PointID]
	if !ok {
		return fmt.Errorf("point %d: %w", c.PointID, ErrNotFound)
	}
	b.Points = append(b.Points, c.PointID)
	ctx.Emit(events.PointAddedToBezierC0{PointID: c.PointID, BezierID: b.ID, PointName: p.Name})
	return nil
}

func deletePointsFromBezierC0(ctx *Context, c DeletePointsFromBezierC0) error {
	b, ok := ctx.Scene.BezierC0s[c.ID]
	if !ok {
		return fmt.Errorf("bezierC0 %d: %w", c.ID, ErrNotFound)
	}
	kept, gone := removeAll(b.Points, c.Points)
	if len(gone) == 0 {
		return fmt.Errorf("bezierC0 %d holds none of %v: %w", c.ID, c.Points, ErrPrecondition)
	}
	b.Points = kept
	ctx.Emit(events.BezierC0PointsDeleted{ID: c.ID, Deleted: gone})
	return nil
}

// ---------------------------------------------------------------------------
// C2
// ---------------------------------------------------------------------------

func addBezierC2(ctx *Context, c AddBezierC2) error {
	if err := ctx.fresh(c.ID); err != nil {
		return err
	}
	pts, err := ctx.curvePoints(c.Points)
	if err != nil {
		return err
	}
	b := &scene.BezierC2{
		ID:                c.ID,
		Name:              nameOr(c.Name, "BezierC2", c.ID),
		Points:            pts,
		SelectedBernstein: scene.NoSelection,
	}
	ctx.Scene.RebuildBezierC2(b)
	ctx.Scene.BezierC2s[c.ID] = b
	ctx.Emit(events.BezierC2Created{ID: b.ID, Name: b.Name, Points: slices.Clone(pts), Bernstein: clonePolygon(b.Bernstein)})
	return nil
}

func addPointToBezierC2(ctx *Context, c AddPointToBezierC2) error {
	b, ok := ctx.Scene.BezierC2s[c.BezierID]
	if !ok {
		return fmt.Errorf("bezierC2 %d: %w", c.BezierID, ErrNotFound)
	}
	p, ok := ctx.Scene.Points[c.PointID]
	if !ok {
		return fmt.Errorf("point %d: %w", c.PointID, ErrNotFound)
	}
	b.Points = append(b.Points, c.PointID)
	ctx.Scene.RebuildBezierC2(b)
	ctx.Emit(events.PointAddedToBezierC2{PointID: c.PointID, BezierID: b.ID, PointName: p.Name, Bernstein: clonePolygon(b.Bernstein)})
	return nil
}

func deletePointsFromBezierC2(ctx *Context, c DeletePointsFromBezierC2) error {
	b, ok := ctx.Scene.BezierC2s[c.ID]
	if !ok {
		return fmt.Errorf("bezierC2 %d: %w", c.ID, ErrNotFound)
	}
	kept, gone := removeAll(b.Points, c.Points)
	if len(gone) == 0 {
		return fmt.Errorf("bezierC2 %d holds none of %v: %w", c.ID, c.Points, ErrPrecondition)
	}
	b.Points = kept
	ctx.Scene.RebuildBezierC2(b)
	ctx.Emit(events.BezierC2PointsDeleted{ID: c.ID, Deleted: gone, Bernstein: clonePolygon(b.Bernstein)})
	return nil
}

func selectBezierC2Bernstein(ctx *Context, c SelectBezierC2Bernstein) error {
	b, ok := ctx.Scene.BezierC2s[c.ID]
	if !ok {
		return fmt.Errorf("bezierC2 %d: %w", c.ID, ErrNotFound)
	}
	if c.Index != scene.NoSelection && (c.Index < 0 || c.Index >= len(b.Bernstein)) {
		return fmt.Errorf("bernstein index %d of %d: %w", c.Index, len(b.Bernstein), ErrPrecondition)
	}
	b.SelectedBernstein = c.Index
	ctx.Emit(events.BezierC2BernsteinSelected{ID: c.ID, Index: c.Index})
	return nil
}

func moveBezierC2Bernstein(ctx *Context, c MoveBezierC2Bernstein) error {
	b, ok := ctx.Scene.BezierC2s[c.ID]
	if !ok {
		return fmt.Errorf("bezierC2 %d: %w", c.ID, ErrNotFound)
	}
	if c.Index < 0 || c.Index >= len(b.Bernstein) {
		return fmt.Errorf("bernstein index %d of %d: %w", c.Index, len(b.Bernstein), ErrPrecondition)
	}
	j, delta := curve.BackDrag(c.Index, c.Position.Sub(b.Bernstein[c.Index]))
	p := ctx.Scene.Points[b.Points[j]]
	p.Position = p.Position.Add(delta)
	ctx.Emit(events.PointMoved{ID: p.ID, Position: p.Position})
	return nil
}

// ---------------------------------------------------------------------------
// Interpolating
// ---------------------------------------------------------------------------

func addBezierInt(ctx *Context, c AddBezierInt) error {
	if err := ctx.fresh(c.ID); err != nil {
		return err
	}
	pts, err := ctx.curvePoints(c.Points)
	if err != nil {
		return err
	}
	ctx.newBezierInt(c.ID, c.Name, pts)
	return nil
}

func (c *Context) newBezierInt(id ids.ID, name string, pts []ids.ID) {
	b := &scene.BezierInt{ID: id, Name: nameOr(name, "BezierInt", id), Points: pts}
	c.Scene.RebuildBezierInt(b)
	c.Scene.BezierInts[id] = b
	c.Emit(events.BezierIntCreated{ID: b.ID, Name: b.Name, Points: slices.Clone(pts), Bernstein: clonePolygon(b.Bernstein)})
}

func addPointToBezierInt(ctx *Context, c AddPointToBezierInt) error {
	b, ok := ctx.Scene.BezierInts[c.BezierID]
	if !ok {
		return fmt.Errorf("bezierInt %d: %w", c.BezierID, ErrNotFound)
	}
	p, ok := ctx.Scene.Points[c.PointID]
	if !ok {
		return fmt.Errorf("point %d: %w", c.PointID, ErrNotFound)
	}
	b.Points = append(b.Points, c.PointID)
	ctx.Scene.RebuildBezierInt(b)
	ctx.Emit(events.PointAddedToBezierInt{PointID: c.PointID, BezierID: b.ID, PointName: p.Name, Bernstein: clonePolygon(b.Bernstein)})
	return nil
}

func deletePointsFromBezierInt(ctx *Context, c DeletePointsFromBezierInt) error {
	b, ok := ctx.Scene.BezierInts[c.ID]
	if !ok {
		return fmt.Errorf("bezierInt %d: %w", c.ID, ErrNotFound)
	}
	kept, gone := removeAll(b.Points, c.Points)
	if len(gone) == 0 {
		return fmt.Errorf("bezierInt %d holds none of %v: %w", c.ID, c.Points, ErrPrecondition)
	}
	b.Points = kept
	ctx.Scene.RebuildBezierInt(b)
	ctx.Emit(events.BezierIntPointsDeleted{ID: c.ID, Deleted: gone, Bernstein: clonePolygon(b.Bernstein)})
	return nil
}

// ---------------------------------------------------------------------------
// Shared
// ---------------------------------------------------------------------------

func setDrawPolygon(ctx *Context, c SetDrawPolygon) error {
	id := c.Object.ID
	var flag *bool
	switch c.Object.Kind {
	case scene.KindBezierC0:
		if b, ok := ctx.Scene.BezierC0s[id]; ok {
			flag = &b.DrawPolygon
		}
	case scene.KindBezierC2:
		if b, ok := ctx.Scene.BezierC2s[id]; ok {
			flag = &b.DrawPolygon
		}
	case scene.KindBezierInt:
		if b, ok := ctx.Scene.BezierInts[id]; ok {
			flag = &b.DrawPolygon
		}
	case scene.KindSurfaceC0, scene.KindSurfaceC2:
		if sf, ok := ctx.Scene.Surface(c.Object); ok {
			flag = &sf.DrawPolygon
		}
	default:
		return fmt.Errorf("%s has no control polygon: %w", c.Object.Kind, ErrPrecondition)
	}
	if flag == nil {
		return fmt.Errorf("%s: %w", c.Object, ErrNotFound)
	}
	*flag = c.Draw
	ctx.Emit(events.DrawPolygonSet{Object: c.Object, Draw: c.Draw})
	return nil
}
