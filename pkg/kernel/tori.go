package kernel

import (
	"fmt"

	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/scene"
)

func addTorus(ctx *Context, c AddTorus) error {
	if err := ctx.fresh(c.ID); err != nil {
		return err
	}
	if !scene.ValidTorus(c.MajorRadius, c.MinorRadius, c.MajorSegments, c.MinorSegments) {
		return fmt.Errorf("torus R=%g r=%g segments %dx%d: %w",
			c.MajorRadius, c.MinorRadius, c.MajorSegments, c.MinorSegments, ErrPrecondition)
	}
	t := &scene.Torus{
		ID:            c.ID,
		Name:          nameOr(c.Name, "Torus", c.ID),
		MajorRadius:   c.MajorRadius,
		MinorRadius:   c.MinorRadius,
		MajorSegments: c.MajorSegments,
		MinorSegments: c.MinorSegments,
		Transform:     geom.At(ctx.Scene.Cursor),
	}
	ctx.Scene.Tori[c.ID] = t
	ctx.Emit(events.TorusCreated{
		ID:            t.ID,
		Name:          t.Name,
		MajorRadius:   t.MajorRadius,
		MinorRadius:   t.MinorRadius,
		MajorSegments: t.MajorSegments,
		MinorSegments: t.MinorSegments,
		Transform:     t.Transform,
	})
	return nil
}

func updateTorus(ctx *Context, c UpdateTorus) error {
	t, ok := ctx.Scene.Tori[c.ID]
	if !ok {
		return fmt.Errorf("torus %d: %w", c.ID, ErrNotFound)
	}
	if !scene.ValidTorus(c.MajorRadius, c.MinorRadius, c.MajorSegments, c.MinorSegments) {
		return fmt.Errorf("torus R=%g r=%g segments %dx%d: %w",
			c.MajorRadius, c.MinorRadius, c.MajorSegments, c.MinorSegments, ErrPrecondition)
	}
	t.MajorRadius, t.MinorRadius = c.MajorRadius, c.MinorRadius
	t.MajorSegments, t.MinorSegments = c.MajorSegments, c.MinorSegments
	ctx.Emit(events.TorusUpdated{
		ID:            c.ID,
		MajorRadius:   t.MajorRadius,
		MinorRadius:   t.MinorRadius,
		MajorSegments: t.MajorSegments,
		MinorSegments: t.MinorSegments,
	})
	return nil
}

func validTransform(t geom.Transform) (geom.Transform, error) {
	q, ok := geom.Normalize(t.Rotation)
	if !ok {
		return t, fmt.Errorf("zero rotation quaternion: %w", ErrPrecondition)
	}
	if !geom.IsFinite(t.Translation) || !geom.IsFinite(t.Scale) {
		return t, fmt.Errorf("non-finite transform: %w", ErrPrecondition)
	}
	if t.Scale.X == 0 || t.Scale.Y == 0 || t.Scale.Z == 0 {
		return t, fmt.Errorf("degenerate scale %v: %w", t.Scale, ErrPrecondition)
	}
	t.Rotation = q
	return t, nil
}

func transformTorus(ctx *Context, c TransformTorus) error {
	t, ok := ctx.Scene.Tori[c.ID]
	if !ok {
		return fmt.Errorf("torus %d: %w", c.ID, ErrNotFound)
	}
	tr, err := validTransform(c.Transform)
	if err != nil {
		return err
	}
	t.Transform = tr
	ctx.Emit(events.TorusTransformed{ID: c.ID, Transform: tr})
	return nil
}
