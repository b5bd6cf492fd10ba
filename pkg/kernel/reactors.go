package kernel

import (
	"slices"

	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/scene"
)

// registerReactors subscribes the handlers that keep derived data current.
// Each runs in its own borrow, taken after the triggering command has
// released the scene.
func registerReactors(k *Kernel) {
	events.On(k.bus, func(e events.PointMoved) { k.react(func(ctx *Context) { refreshDependents(ctx, e) }) })
	events.On(k.bus, func(e events.PointCreated) { k.react(func(ctx *Context) { extendSelectedCurves(ctx, e) }) })
	events.On(k.bus, func(e events.IntersectionCreated) { k.react(func(ctx *Context) { updateTextures(ctx, e.First, e.Second) }) })
	events.On(k.bus, func(e events.IntersectionDeleted) { k.react(func(ctx *Context) { updateTextures(ctx, e.First, e.Second) }) })
	events.On(k.bus, func(e events.IntersectionTexturesDrawSet) {
		k.react(func(ctx *Context) { updateTextures(ctx, e.First, e.Second) })
	})
	events.On(k.bus, func(events.SceneLoaded) { k.react(updateAllTextures) })
}

func (k *Kernel) react(fn func(*Context)) {
	_ = k.mutate(func(ctx *Context) error {
		fn(ctx)
		return nil
	})
}

// refreshDependents rebuilds whatever reads the moved point. It never moves
// points itself.
func refreshDependents(ctx *Context, e events.PointMoved) {
	s := ctx.Scene
	for _, ref := range s.References(e.ID) {
		switch ref.Kind {
		case scene.KindBezierC2:
			c := s.BezierC2s[ref.ID]
			s.RebuildBezierC2(c)
			ctx.Emit(events.BezierC2PointMoved{ID: c.ID, Bernstein: clonePolygon(c.Bernstein)})
		case scene.KindBezierInt:
			c := s.BezierInts[ref.ID]
			s.RebuildBezierInt(c)
			ctx.Emit(events.BezierIntPointMoved{ID: c.ID, Bernstein: clonePolygon(c.Bernstein)})
		case scene.KindSurfaceC0:
			ctx.Emit(events.SurfaceC0PointMoved{ID: ref.ID, PointID: e.ID})
		case scene.KindSurfaceC2:
			ctx.Emit(events.SurfaceC2PointMoved{ID: ref.ID, PointID: e.ID})
		case scene.KindGregory:
			g := s.Gregories[ref.ID]
			if s.RebuildGregory(g) {
				ctx.Emit(events.GregoryMeshRecalculated{ID: g.ID, Patches: g.Patches})
			}
		}
	}
}

// extendSelectedCurves appends a point placed by the user to every selected
// C0 and interpolating curve.
func extendSelectedCurves(ctx *Context, e events.PointCreated) {
	if e.Origin != events.OriginUser {
		return
	}
	s := ctx.Scene
	for _, ref := range s.Selection {
		switch ref.Kind {
		case scene.KindBezierC0:
			c, ok := s.BezierC0s[ref.ID]
			if !ok || slices.Contains(c.Points, e.ID) {
				continue
			}
			c.Points = append(c.Points, e.ID)
			ctx.Emit(events.PointAddedToBezierC0{PointID: e.ID, BezierID: c.ID, PointName: e.Name})
		case scene.KindBezierInt:
			c, ok := s.BezierInts[ref.ID]
			if !ok || slices.Contains(c.Points, e.ID) {
				continue
			}
			c.Points = append(c.Points, e.ID)
			s.RebuildBezierInt(c)
			ctx.Emit(events.PointAddedToBezierInt{PointID: e.ID, BezierID: c.ID, PointName: e.Name, Bernstein: clonePolygon(c.Bernstein)})
		}
	}
}

func updateTextures(ctx *Context, refs ...scene.ObjectRef) {
	size := ctx.Config.Intersection.TextureSize
	var done []scene.ObjectRef
	for _, ref := range refs {
		if slices.Contains(done, ref) || !ctx.Scene.Exists(ref) {
			continue
		}
		done = append(done, ref)
		ctx.Emit(events.UpdateTexture{Object: ref, Size: size, Texture: ctx.Scene.Texture(ref, size)})
	}
}

func updateAllTextures(ctx *Context) {
	var refs []scene.ObjectRef
	for _, id := range scene.SortedIDs(ctx.Scene.Intersections) {
		in := ctx.Scene.Intersections[id]
		refs = append(refs, in.First, in.Second)
	}
	updateTextures(ctx, refs...)
}
