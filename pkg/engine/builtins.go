package engine

import (
	"context"
	"fmt"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/kernel"
	"github.com/chazu/loft/pkg/scene"
	"github.com/chazu/loft/pkg/surface"
)

// evaluation is the state shared by the builtins of one Evaluate call.
type evaluation struct {
	ctx context.Context
	e   *Engine
}

func (ev *evaluation) kernel() *kernel.Kernel { return ev.e.k }

// newID allocates an entity id, refusing after the deadline.
func (ev *evaluation) newID() (ids.ID, error) {
	if err := guard(ev.ctx); err != nil {
		return 0, err
	}
	return ev.kernel().NewID(), nil
}

// exec runs c and returns the events it caused. The kernel publishes
// nothing for a refused command, which is reported as an error.
func (ev *evaluation) exec(c kernel.Command) ([]events.Event, error) {
	if err := guard(ev.ctx); err != nil {
		return nil, err
	}
	n := len(ev.e.log)
	ev.kernel().Execute(c)
	out := ev.e.log[n:]
	if len(out) == 0 {
		return nil, fmt.Errorf("%T refused", c)
	}
	return out, nil
}

func all[E events.Event](evs []events.Event) []E {
	var out []E
	for _, e := range evs {
		if x, ok := e.(E); ok {
			out = append(out, x)
		}
	}
	return out
}

func first[E events.Event](evs []events.Event) (E, bool) {
	if xs := all[E](evs); len(xs) > 0 {
		return xs[0], true
	}
	var zero E
	return zero, false
}

// builtin is one console function. Names use hyphens; they are registered
// with underscores to match preprocessSource.
type builtin struct {
	name string
	fn   func(ev *evaluation, a kwArgs) (zygo.Sexp, error)
}

func (ev *evaluation) register(env *zygo.Zlisp) {
	for _, b := range builtins {
		env.AddFunction(strings.ReplaceAll(b.name, "-", "_"), func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
			out, err := b.fn(ev, parseArgs(args))
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", b.name, err)
			}
			return out, nil
		})
	}
}

var builtins = []builtin{
	{"point", point},
	{"move", move},
	{"rename", rename},
	{"merge", merge},
	{"torus", torus},
	{"bezier-c0", curve(scene.KindBezierC0)},
	{"bezier-c2", curve(scene.KindBezierC2)},
	{"bezier-int", curve(scene.KindBezierInt)},
	{"surface-c0", surfaceBuiltin(surface.KindC0)},
	{"surface-c2", surfaceBuiltin(surface.KindC2)},
	{"gregories", gregories},
	{"intersect", intersection},
	{"to-spline", toSpline},
	{"select", selectObjects},
	{"deselect", deselect},
	{"selection", selection},
	{"cursor", cursor},
	{"delete-selected", deleteSelected},
	{"translate-selected", groupTransform(translation)},
	{"rotate-selected", groupTransform(rotation)},
	{"scale-selected", groupTransform(scaling)},
}

// ---------------------------------------------------------------------------
// Points
// ---------------------------------------------------------------------------

// (point x y z :name "a")
func point(ev *evaluation, a kwArgs) (zygo.Sexp, error) {
	pos, err := toVec(a.positional)
	if err != nil {
		return nil, err
	}
	name, err := a.text("name")
	if err != nil {
		return nil, err
	}
	id, err := ev.newID()
	if err != nil {
		return nil, err
	}
	if _, err := ev.exec(kernel.AddPoint{ID: id, Name: name, Position: pos}); err != nil {
		return nil, err
	}
	return refOf(scene.KindPoint, id), nil
}

// (move p x y z) moves a point, or places a torus keeping its rotation
// and scale.
func move(ev *evaluation, a kwArgs) (zygo.Sexp, error) {
	if len(a.positional) != 4 {
		return nil, fmt.Errorf("expected an object and x y z")
	}
	ref, err := toRef(a.positional[0], scene.KindPoint, scene.KindTorus)
	if err != nil {
		return nil, err
	}
	pos, err := toVec(a.positional[1:])
	if err != nil {
		return nil, err
	}
	if ref.Kind == scene.KindPoint {
		_, err = ev.exec(kernel.MovePoint{ID: ref.ID, Position: pos})
		return a.positional[0], err
	}
	if !ev.intersectable(ref) {
		return nil, fmt.Errorf("no %s", ref)
	}
	t := kernel.Ask[scene.Torus](ev.kernel(), kernel.TorusDetails{ID: ref.ID}).Transform
	t.Translation = pos
	_, err = ev.exec(kernel.TransformTorus{ID: ref.ID, Transform: t})
	return a.positional[0], err
}

func (ev *evaluation) intersectable(ref scene.ObjectRef) bool {
	for _, o := range kernel.Ask[[]kernel.NamedObject](ev.kernel(), kernel.IntersectableObjects{}) {
		if o.Ref == ref {
			return true
		}
	}
	return false
}

// (rename obj "name")
func rename(ev *evaluation, a kwArgs) (zygo.Sexp, error) {
	if len(a.positional) != 2 {
		return nil, fmt.Errorf("expected an object and a name")
	}
	ref, err := toRef(a.positional[0])
	if err != nil {
		return nil, err
	}
	name, err := toString(a.positional[1])
	if err != nil {
		return nil, err
	}
	_, err = ev.exec(kernel.RenameObject{Object: ref, Name: name})
	return a.positional[0], err
}

// (merge) collapses the selected points.
func merge(ev *evaluation, _ kwArgs) (zygo.Sexp, error) {
	evs, err := ev.exec(kernel.MergeSelectedPoints{})
	if err != nil {
		return nil, err
	}
	m, _ := first[events.PointsMerged](evs)
	return refOf(scene.KindPoint, m.Kept), nil
}

// ---------------------------------------------------------------------------
// Tori and curves
// ---------------------------------------------------------------------------

// (torus :major 1 :minor 0.5 :major-segments 100 :minor-segments 100 :name "t")
// places a torus at the cursor.
func torus(ev *evaluation, a kwArgs) (zygo.Sexp, error) {
	def := ev.kernel().Config().Torus
	c := kernel.AddTorus{}
	var err error
	if c.Name, err = a.text("name"); err != nil {
		return nil, err
	}
	if c.MajorRadius, err = a.number("major", def.MajorRadius); err != nil {
		return nil, err
	}
	if c.MinorRadius, err = a.number("minor", def.MinorRadius); err != nil {
		return nil, err
	}
	if c.MajorSegments, err = a.integer("major-segments", def.MajorSegments); err != nil {
		return nil, err
	}
	if c.MinorSegments, err = a.integer("minor-segments", def.MinorSegments); err != nil {
		return nil, err
	}
	if c.ID, err = ev.newID(); err != nil {
		return nil, err
	}
	if _, err := ev.exec(c); err != nil {
		return nil, err
	}
	return refOf(scene.KindTorus, c.ID), nil
}

// (bezier-c0 p1 p2 ... :name "c") through the given points, or through the
// selected points when none are given.
func curve(kind scene.ObjectKind) func(*evaluation, kwArgs) (zygo.Sexp, error) {
	return func(ev *evaluation, a kwArgs) (zygo.Sexp, error) {
		refs, err := toRefs(a.positional, scene.KindPoint)
		if err != nil {
			return nil, err
		}
		pts := make([]ids.ID, len(refs))
		for i, r := range refs {
			pts[i] = r.ID
		}
		name, err := a.text("name")
		if err != nil {
			return nil, err
		}
		id, err := ev.newID()
		if err != nil {
			return nil, err
		}
		var c kernel.Command
		switch kind {
		case scene.KindBezierC0:
			c = kernel.AddBezierC0{ID: id, Name: name, Points: pts}
		case scene.KindBezierC2:
			c = kernel.AddBezierC2{ID: id, Name: name, Points: pts}
		default:
			c = kernel.AddBezierInt{ID: id, Name: name, Points: pts}
		}
		if _, err := ev.exec(c); err != nil {
			return nil, err
		}
		return refOf(kind, id), nil
	}
}

// ---------------------------------------------------------------------------
// Surfaces, Gregory patches and intersections
// ---------------------------------------------------------------------------

// (surface-c0 :u 2 :v 1 :cylinder true :radius 1 :height 3 :name "s")
// generates a surface at the cursor. Unset extents take the configured
// defaults.
func surfaceBuiltin(kind surface.Kind) func(*evaluation, kwArgs) (zygo.Sexp, error) {
	return func(ev *evaluation, a kwArgs) (zygo.Sexp, error) {
		var (
			size       surface.Size
			w, l, r, h float64
			cyl        bool
			name       string
			err        error
		)
		if size.U, err = a.integer("u", 1); err != nil {
			return nil, err
		}
		if size.V, err = a.integer("v", 1); err != nil {
			return nil, err
		}
		if cyl, err = a.flag("cylinder"); err != nil {
			return nil, err
		}
		if name, err = a.text("name"); err != nil {
			return nil, err
		}
		for _, f := range []struct {
			key string
			dst *float64
		}{{"width", &w}, {"length", &l}, {"radius", &r}, {"height", &h}} {
			if *f.dst, err = a.number(f.key, 0); err != nil {
				return nil, err
			}
		}

		if kind == surface.KindC2 {
			evs, err := ev.exec(kernel.CreateSurfaceC2{
				Name: name, Size: size, Cylinder: cyl, Width: w, Length: l, Radius: r, Height: h,
			})
			if err != nil {
				return nil, err
			}
			created, _ := first[events.SurfaceC2Created](evs)
			return refOf(scene.KindSurfaceC2, created.ID), nil
		}
		evs, err := ev.exec(kernel.CreateSurfaceC0{
			Name: name, Size: size, Cylinder: cyl, Width: w, Length: l, Radius: r, Height: h,
		})
		if err != nil {
			return nil, err
		}
		created, _ := first[events.SurfaceC0Created](evs)
		return refOf(scene.KindSurfaceC0, created.ID), nil
	}
}

// (gregories) fills the holes between the selected C0 surfaces and returns
// the new patches.
func gregories(ev *evaluation, _ kwArgs) (zygo.Sexp, error) {
	evs, err := ev.exec(kernel.CalculateGregories{})
	if err != nil {
		return nil, err
	}
	var refs []scene.ObjectRef
	for _, g := range all[events.GregoryCreated](evs) {
		refs = append(refs, scene.GregoryRef(g.ID))
	}
	return refList(refs), nil
}

// (intersect a b :name "x") traces a against b, or a against itself.
func intersection(ev *evaluation, a kwArgs) (zygo.Sexp, error) {
	if n := len(a.positional); n < 1 || n > 2 {
		return nil, fmt.Errorf("expected one or two objects, got %d", n)
	}
	refs, err := toRefs(a.positional, scene.KindTorus, scene.KindSurfaceC0, scene.KindSurfaceC2)
	if err != nil {
		return nil, err
	}
	second := refs[0]
	if len(refs) > 1 {
		second = refs[1]
	}
	name, err := a.text("name")
	if err != nil {
		return nil, err
	}
	id, err := ev.newID()
	if err != nil {
		return nil, err
	}
	evs, err := ev.exec(kernel.FindIntersection{ID: id, Name: name, First: refs[0], Second: second})
	if err != nil {
		return nil, err
	}
	if f, ok := first[events.IntersectionFailed](evs); ok {
		return nil, fmt.Errorf("no intersection: %s", f.Reason)
	}
	return refOf(scene.KindIntersection, id), nil
}

// (to-spline x :name "c") replaces intersection x with an interpolating
// curve.
func toSpline(ev *evaluation, a kwArgs) (zygo.Sexp, error) {
	if len(a.positional) != 1 {
		return nil, fmt.Errorf("expected one intersection")
	}
	ref, err := toRef(a.positional[0], scene.KindIntersection)
	if err != nil {
		return nil, err
	}
	name, err := a.text("name")
	if err != nil {
		return nil, err
	}
	evs, err := ev.exec(kernel.IntersectionToInterpolated{ID: ref.ID, Name: name})
	if err != nil {
		return nil, err
	}
	c, _ := first[events.BezierIntCreated](evs)
	return refOf(scene.KindBezierInt, c.ID), nil
}

// ---------------------------------------------------------------------------
// Selection and cursor
// ---------------------------------------------------------------------------

// (select a b ...) adds objects to the selection.
func selectObjects(ev *evaluation, a kwArgs) (zygo.Sexp, error) {
	refs, err := toRefs(a.positional)
	if err != nil {
		return nil, err
	}
	if _, err := ev.exec(kernel.SelectObjects{Objects: refs}); err != nil {
		return nil, err
	}
	return selection(ev, a)
}

// (deselect a b ...) drops objects from the selection; (deselect) clears it.
func deselect(ev *evaluation, a kwArgs) (zygo.Sexp, error) {
	refs, err := toRefs(a.positional)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		if _, err := ev.exec(kernel.ClearSelection{}); err != nil {
			return nil, err
		}
		return zygo.SexpNull, nil
	}
	selected := kernel.Ask[[]scene.ObjectRef](ev.kernel(), kernel.SelectedObjects{})
	for _, r := range refs {
		if !containsRef(selected, r) {
			return nil, fmt.Errorf("%s is not selected", r)
		}
		if _, err := ev.exec(kernel.ToggleSelection{Object: r}); err != nil {
			return nil, err
		}
	}
	return selection(ev, a)
}

func containsRef(rs []scene.ObjectRef, r scene.ObjectRef) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

// (selection) lists the selection in order.
func selection(ev *evaluation, _ kwArgs) (zygo.Sexp, error) {
	return refList(kernel.Ask[[]scene.ObjectRef](ev.kernel(), kernel.SelectedObjects{})), nil
}

// (cursor x y z) moves the cursor; (cursor) returns its position.
func cursor(ev *evaluation, a kwArgs) (zygo.Sexp, error) {
	if len(a.positional) == 0 {
		p := kernel.Ask[v3.Vec](ev.kernel(), kernel.CursorPosition{})
		return zygo.MakeList([]zygo.Sexp{
			&zygo.SexpFloat{Val: p.X}, &zygo.SexpFloat{Val: p.Y}, &zygo.SexpFloat{Val: p.Z},
		}), nil
	}
	pos, err := toVec(a.positional)
	if err != nil {
		return nil, err
	}
	_, err = ev.exec(kernel.SetCursor{Position: pos})
	return zygo.SexpNull, err
}

// (delete-selected)
func deleteSelected(ev *evaluation, _ kwArgs) (zygo.Sexp, error) {
	_, err := ev.exec(kernel.DeleteSelectedObjects{})
	return zygo.SexpNull, err
}

// ---------------------------------------------------------------------------
// Group transforms
// ---------------------------------------------------------------------------

// (translate-selected x y z)
func translation(a kwArgs) (geom.GroupTransform, error) {
	v, err := toVec(a.positional)
	return geom.GroupTransform{Translation: v, Rotation: geom.Identity, Scale: geom.Ones}, err
}

// (rotate-selected ax ay az radians)
func rotation(a kwArgs) (geom.GroupTransform, error) {
	if len(a.positional) != 4 {
		return geom.GroupTransform{}, fmt.Errorf("expected an axis and an angle")
	}
	axis, err := toVec(a.positional[:3])
	if err != nil {
		return geom.GroupTransform{}, err
	}
	angle, err := toFloat64(a.positional[3])
	if err != nil {
		return geom.GroupTransform{}, err
	}
	if axis.Length() == 0 {
		return geom.GroupTransform{}, fmt.Errorf("zero rotation axis")
	}
	return geom.GroupTransform{Rotation: geom.AxisAngle(axis, angle), Scale: geom.Ones}, nil
}

// (scale-selected s) or (scale-selected sx sy sz)
func scaling(a kwArgs) (geom.GroupTransform, error) {
	var s v3.Vec
	switch len(a.positional) {
	case 1:
		f, err := toFloat64(a.positional[0])
		if err != nil {
			return geom.GroupTransform{}, err
		}
		s = geom.Ones.MulScalar(f)
	default:
		v, err := toVec(a.positional)
		if err != nil {
			return geom.GroupTransform{}, err
		}
		s = v
	}
	return geom.GroupTransform{Rotation: geom.Identity, Scale: s}, nil
}

func groupTransform(parse func(kwArgs) (geom.GroupTransform, error)) func(*evaluation, kwArgs) (zygo.Sexp, error) {
	return func(ev *evaluation, a kwArgs) (zygo.Sexp, error) {
		g, err := parse(a)
		if err != nil {
			return nil, err
		}
		if _, err := ev.exec(kernel.TransformSelected{Transform: g}); err != nil {
			return nil, err
		}
		return zygo.SexpNull, nil
	}
}
