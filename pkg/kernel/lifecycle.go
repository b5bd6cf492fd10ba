package kernel

import (
	"fmt"

	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/scene"
)

func loadScene(ctx *Context, c LoadScene) error {
	s := scene.FromSnapshot(c.Snapshot)
	s.Refresh()
	if errs := scene.Errors(s.Validate()); len(errs) > 0 {
		return fmt.Errorf("scene has %d problems, first %v: %w", len(errs), errs[0], ErrPrecondition)
	}
	ctx.IDs.Reserve(c.Snapshot.MaxID())
	*ctx.Scene = *s

	snap := c.Snapshot
	objects := len(snap.Tori) + len(snap.BezierC0s) + len(snap.BezierC2s) + len(snap.BezierInts) +
		len(snap.SurfacesC0) + len(snap.SurfacesC2) + len(snap.Gregories) + len(snap.Intersections)
	ctx.Emit(events.SceneCleared{}, events.SceneLoaded{Points: len(snap.Points), Objects: objects})
	return nil
}

// clearScene empties the scene. Ids already issued stay spent.
func clearScene(ctx *Context, _ ClearScene) error {
	*ctx.Scene = *scene.New()
	ctx.Emit(events.SceneCleared{})
	return nil
}
