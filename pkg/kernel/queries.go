package kernel

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/scene"
)

// Queries naming an id that does not exist panic.

type PointDetails struct{ ID ids.ID }
type TorusDetails struct{ ID ids.ID }
type BezierC0Details struct{ ID ids.ID }
type BezierC2Details struct{ ID ids.ID }
type BezierIntDetails struct{ ID ids.ID }
type SurfaceC0Details struct{ ID ids.ID }
type SurfaceC2Details struct{ ID ids.ID }
type GregoryDetails struct{ ID ids.ID }
type IntersectionDetails struct{ ID ids.ID }

// AllPoints lists every point in id order.
type AllPoints struct{}

type SelectedObjects struct{}

// SelectionCenter answers a Center.
type SelectionCenter struct{}

type CursorPosition struct{}

// ObjectTexture composes the trimming mask of an intersectable object.
// Size zero takes the configured texture size.
type ObjectTexture struct {
	Object scene.ObjectRef
	Size   int
}

// SurfacePoint evaluates an intersectable object at (U, V).
type SurfacePoint struct {
	Object scene.ObjectRef
	U, V   float64
}

// IntersectableObjects lists tori and surfaces by kind and id.
type IntersectableObjects struct{}

// ReferencingObjects lists what reads a point.
type ReferencingObjects struct{ PointID ids.ID }

type SceneSnapshot struct{}

// Center is the answer to SelectionCenter. OK is false when no point or
// torus is selected.
type Center struct {
	Position v3.Vec
	OK       bool
}

// NamedObject pairs a reference with its display name.
type NamedObject struct {
	Ref  scene.ObjectRef
	Name string
}

func (PointDetails) query()         {}
func (TorusDetails) query()         {}
func (BezierC0Details) query()      {}
func (BezierC2Details) query()      {}
func (BezierIntDetails) query()     {}
func (SurfaceC0Details) query()     {}
func (SurfaceC2Details) query()     {}
func (GregoryDetails) query()       {}
func (IntersectionDetails) query()  {}
func (AllPoints) query()            {}
func (SelectedObjects) query()      {}
func (SelectionCenter) query()      {}
func (CursorPosition) query()       {}
func (ObjectTexture) query()        {}
func (SurfacePoint) query()         {}
func (IntersectableObjects) query() {}
func (ReferencingObjects) query()   {}
func (SceneSnapshot) query()        {}

// lookup copies the entity with id out of m.
func lookup[T any](m map[ids.ID]*T, kind scene.ObjectKind, id ids.ID) T {
	v, ok := m[id]
	if !ok {
		panic(fmt.Sprintf("kernel: no %s with id %d", kind, id))
	}
	return *v
}

func registerQueries(k *Kernel) {
	answer(k, func(s *scene.Scene, q PointDetails) scene.Point {
		return lookup(s.Points, scene.KindPoint, q.ID)
	})
	answer(k, func(s *scene.Scene, q TorusDetails) scene.Torus {
		return lookup(s.Tori, scene.KindTorus, q.ID)
	})
	// Slices are copied through the snapshot clone helpers.
	answer(k, func(s *scene.Scene, q BezierC0Details) scene.BezierC0 {
		return detached(s, scene.BezierC0Ref(q.ID)).BezierC0s[0]
	})
	answer(k, func(s *scene.Scene, q BezierC2Details) scene.BezierC2 {
		return detached(s, scene.BezierC2Ref(q.ID)).BezierC2s[0]
	})
	answer(k, func(s *scene.Scene, q BezierIntDetails) scene.BezierInt {
		return detached(s, scene.BezierIntRef(q.ID)).BezierInts[0]
	})
	answer(k, func(s *scene.Scene, q SurfaceC0Details) scene.Surface {
		return detached(s, scene.SurfaceC0Ref(q.ID)).SurfacesC0[0]
	})
	answer(k, func(s *scene.Scene, q SurfaceC2Details) scene.Surface {
		return detached(s, scene.SurfaceC2Ref(q.ID)).SurfacesC2[0]
	})
	answer(k, func(s *scene.Scene, q GregoryDetails) scene.Gregory {
		return lookup(s.Gregories, scene.KindGregory, q.ID)
	})
	answer(k, func(s *scene.Scene, q IntersectionDetails) scene.Intersection {
		return detached(s, scene.IntersectionRef(q.ID)).Intersections[0]
	})
	answer(k, func(s *scene.Scene, _ AllPoints) []scene.Point {
		return s.Snapshot().Points
	})
	answer(k, func(s *scene.Scene, _ SelectedObjects) []scene.ObjectRef {
		return append([]scene.ObjectRef(nil), s.Selection...)
	})
	answer(k, func(s *scene.Scene, _ SelectionCenter) Center {
		p, ok := s.Center()
		return Center{Position: p, OK: ok}
	})
	answer(k, func(s *scene.Scene, _ CursorPosition) v3.Vec {
		return s.Cursor
	})
	answer(k, func(s *scene.Scene, q ObjectTexture) []float32 {
		mustExist(s, q.Object)
		size := q.Size
		if size == 0 {
			size = k.cfg.Intersection.TextureSize
		}
		return s.Texture(q.Object, size)
	})
	answer(k, func(s *scene.Scene, q SurfacePoint) v3.Vec {
		mustExist(s, q.Object)
		sf, err := s.Evaluator(q.Object)
		if err != nil {
			panic(fmt.Sprintf("kernel: %v", err))
		}
		return sf.Eval(q.U, q.V)
	})
	answer(k, func(s *scene.Scene, _ IntersectableObjects) []NamedObject {
		var out []NamedObject
		add := func(ref scene.ObjectRef) { out = append(out, NamedObject{Ref: ref, Name: s.Name(ref)}) }
		for _, id := range scene.SortedIDs(s.Tori) {
			add(scene.TorusRef(id))
		}
		for _, id := range scene.SortedIDs(s.SurfacesC0) {
			add(scene.SurfaceC0Ref(id))
		}
		for _, id := range scene.SortedIDs(s.SurfacesC2) {
			add(scene.SurfaceC2Ref(id))
		}
		return out
	})
	answer(k, func(s *scene.Scene, q ReferencingObjects) []scene.ObjectRef {
		mustExist(s, scene.PointRef(q.PointID))
		return s.References(q.PointID)
	})
	answer(k, func(s *scene.Scene, _ SceneSnapshot) scene.Snapshot {
		return s.Snapshot()
	})
}

func mustExist(s *scene.Scene, ref scene.ObjectRef) {
	if !s.Exists(ref) {
		panic(fmt.Sprintf("kernel: no %s with id %d", ref.Kind, ref.ID))
	}
}

// detached returns a snapshot of the single entity ref.
func detached(s *scene.Scene, ref scene.ObjectRef) scene.Snapshot {
	mustExist(s, ref)
	one := scene.New()
	switch ref.Kind {
	case scene.KindBezierC0:
		one.BezierC0s[ref.ID] = s.BezierC0s[ref.ID]
	case scene.KindBezierC2:
		one.BezierC2s[ref.ID] = s.BezierC2s[ref.ID]
	case scene.KindBezierInt:
		one.BezierInts[ref.ID] = s.BezierInts[ref.ID]
	case scene.KindSurfaceC0:
		one.SurfacesC0[ref.ID] = s.SurfacesC0[ref.ID]
	case scene.KindSurfaceC2:
		one.SurfacesC2[ref.ID] = s.SurfacesC2[ref.ID]
	case scene.KindIntersection:
		one.Intersections[ref.ID] = s.Intersections[ref.ID]
	}
	return one.Snapshot()
}
