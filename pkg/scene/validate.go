package scene

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/curve"
	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/surface"
)

// cacheTolerance bounds the drift allowed between a Bernstein cache and the
// polygon recomputed from current points.
const cacheTolerance = 1e-9

// ValidationSeverity indicates whether a finding breaks the scene or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // scene is inconsistent
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Object   ObjectRef          // offending entity
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Object, e.Message)
}

// Errors filters out warnings.
func Errors(findings []ValidationError) []ValidationError {
	var out []ValidationError
	for _, f := range findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks the cross-entity invariants: every referenced point
// exists, ids are unique across kinds, Bernstein caches match their
// points, surface grids have the right length, intersections and the
// selection name live objects. It never mutates the scene.
func (s *Scene) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, s.validateUniqueIDs()...)
	errs = append(errs, s.validateReferences()...)
	errs = append(errs, s.validateCaches()...)
	errs = append(errs, s.validateGrids()...)
	errs = append(errs, s.validateIntersections()...)
	errs = append(errs, s.validateSelection()...)
	return errs
}

func (s *Scene) validateUniqueIDs() []ValidationError {
	var errs []ValidationError
	seen := make(map[ids.ID]ObjectKind)
	check := func(kind ObjectKind, id ids.ID) {
		if id.IsZero() {
			errs = append(errs, ValidationError{
				Object:   ObjectRef{kind, id},
				Message:  "zero id",
				Severity: SeverityError,
			})
			return
		}
		if prev, dup := seen[id]; dup {
			errs = append(errs, ValidationError{
				Object:   ObjectRef{kind, id},
				Message:  fmt.Sprintf("id already used by a %s", prev),
				Severity: SeverityError,
			})
			return
		}
		seen[id] = kind
	}
	for _, id := range SortedIDs(s.Points) {
		check(KindPoint, id)
	}
	for _, id := range SortedIDs(s.Tori) {
		check(KindTorus, id)
	}
	for _, id := range SortedIDs(s.BezierC0s) {
		check(KindBezierC0, id)
	}
	for _, id := range SortedIDs(s.BezierC2s) {
		check(KindBezierC2, id)
	}
	for _, id := range SortedIDs(s.BezierInts) {
		check(KindBezierInt, id)
	}
	for _, id := range SortedIDs(s.SurfacesC0) {
		check(KindSurfaceC0, id)
	}
	for _, id := range SortedIDs(s.SurfacesC2) {
		check(KindSurfaceC2, id)
	}
	for _, id := range SortedIDs(s.Gregories) {
		check(KindGregory, id)
	}
	for _, id := range SortedIDs(s.Intersections) {
		check(KindIntersection, id)
	}
	return errs
}

func (s *Scene) missing(ref ObjectRef, pts []ids.ID) []ValidationError {
	var errs []ValidationError
	for _, id := range pts {
		if _, ok := s.Points[id]; !ok {
			errs = append(errs, ValidationError{
				Object:   ref,
				Message:  fmt.Sprintf("references missing point %d", id),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func (s *Scene) validateReferences() []ValidationError {
	var errs []ValidationError
	for _, id := range SortedIDs(s.BezierC0s) {
		errs = append(errs, s.missing(BezierC0Ref(id), s.BezierC0s[id].Points)...)
	}
	for _, id := range SortedIDs(s.BezierC2s) {
		errs = append(errs, s.missing(BezierC2Ref(id), s.BezierC2s[id].Points)...)
	}
	for _, id := range SortedIDs(s.BezierInts) {
		errs = append(errs, s.missing(BezierIntRef(id), s.BezierInts[id].Points)...)
	}
	for _, id := range SortedIDs(s.SurfacesC0) {
		errs = append(errs, s.missing(SurfaceC0Ref(id), s.SurfacesC0[id].Points)...)
	}
	for _, id := range SortedIDs(s.SurfacesC2) {
		errs = append(errs, s.missing(SurfaceC2Ref(id), s.SurfacesC2[id].Points)...)
	}
	for _, id := range SortedIDs(s.Gregories) {
		errs = append(errs, s.missing(GregoryRef(id), s.Gregories[id].Triangle.PointIDs())...)
	}
	return errs
}

func sameCache(a, b []v3.Vec) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !geom.NearlyEqual(a[i], b[i], cacheTolerance) {
			return false
		}
	}
	return true
}

func (s *Scene) validateCaches() []ValidationError {
	var errs []ValidationError
	stale := func(ref ObjectRef) {
		errs = append(errs, ValidationError{
			Object:   ref,
			Message:  "Bernstein cache out of date",
			Severity: SeverityError,
		})
	}
	for _, id := range SortedIDs(s.BezierC2s) {
		c := s.BezierC2s[id]
		ps, ok := s.Positions(c.Points)
		if ok && !sameCache(c.Bernstein, curve.BSplineToBernstein(ps)) {
			stale(BezierC2Ref(id))
		}
	}
	for _, id := range SortedIDs(s.BezierInts) {
		c := s.BezierInts[id]
		ps, ok := s.Positions(c.Points)
		if ok && !sameCache(c.Bernstein, curve.Interpolate(ps)) {
			stale(BezierIntRef(id))
		}
	}
	return errs
}

func (s *Scene) validateGrids() []ValidationError {
	var errs []ValidationError
	check := func(kind ObjectKind, m map[ids.ID]*Surface) {
		for _, id := range SortedIDs(m) {
			sf := m[id]
			if _, err := surface.Expand(SurfaceKind(kind), sf.Points, sf.Size, sf.Cylinder); err != nil {
				errs = append(errs, ValidationError{
					Object:   ObjectRef{kind, id},
					Message:  err.Error(),
					Severity: SeverityError,
				})
			}
		}
	}
	check(KindSurfaceC0, s.SurfacesC0)
	check(KindSurfaceC2, s.SurfacesC2)
	return errs
}

func (s *Scene) validateIntersections() []ValidationError {
	var errs []ValidationError
	for _, id := range SortedIDs(s.Intersections) {
		in := s.Intersections[id]
		for _, r := range []ObjectRef{in.First, in.Second} {
			if !r.Kind.Intersectable() || !s.Exists(r) {
				errs = append(errs, ValidationError{
					Object:   IntersectionRef(id),
					Message:  fmt.Sprintf("intersects missing or unsupported %s", r),
					Severity: SeverityError,
				})
			}
		}
		if len(in.UV) != len(in.Points) || len(in.ST) != len(in.Points) {
			errs = append(errs, ValidationError{
				Object:   IntersectionRef(id),
				Message:  "parameter lists do not match the polyline",
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func (s *Scene) validateSelection() []ValidationError {
	var errs []ValidationError
	seen := make(map[ObjectRef]bool)
	for _, r := range s.Selection {
		if !s.Exists(r) {
			errs = append(errs, ValidationError{
				Object:   r,
				Message:  "selected object does not exist",
				Severity: SeverityError,
			})
		}
		if seen[r] {
			errs = append(errs, ValidationError{
				Object:   r,
				Message:  "selected twice",
				Severity: SeverityError,
			})
		}
		seen[r] = true
	}
	return errs
}
