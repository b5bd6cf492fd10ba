package scene

import (
	"fmt"

	"github.com/chazu/loft/pkg/ids"
)

// ObjectKind enumerates the entity kinds held by a Scene.
type ObjectKind int

const (
	KindPoint ObjectKind = iota
	KindTorus
	KindBezierC0
	KindBezierC2
	KindBezierInt
	KindSurfaceC0
	KindSurfaceC2
	KindGregory
	KindIntersection
)

var kindNames = [...]string{
	KindPoint:        "point",
	KindTorus:        "torus",
	KindBezierC0:     "bezierC0",
	KindBezierC2:     "bezierC2",
	KindBezierInt:    "bezierInt",
	KindSurfaceC0:    "surfaceC0",
	KindSurfaceC2:    "surfaceC2",
	KindGregory:      "gregory",
	KindIntersection: "intersection",
}

func (k ObjectKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ObjectKind(%d)", int(k))
}

// Intersectable reports whether objects of this kind can take part in an
// intersection.
func (k ObjectKind) Intersectable() bool {
	return k == KindTorus || k == KindSurfaceC0 || k == KindSurfaceC2
}

// ObjectRef is a typed reference to a scene entity.
type ObjectRef struct {
	Kind ObjectKind `json:"kind"`
	ID   ids.ID     `json:"id"`
}

func (r ObjectRef) String() string {
	return fmt.Sprintf("%s %d", r.Kind, r.ID)
}

// Ref helpers.
func PointRef(id ids.ID) ObjectRef        { return ObjectRef{KindPoint, id} }
func TorusRef(id ids.ID) ObjectRef        { return ObjectRef{KindTorus, id} }
func BezierC0Ref(id ids.ID) ObjectRef     { return ObjectRef{KindBezierC0, id} }
func BezierC2Ref(id ids.ID) ObjectRef     { return ObjectRef{KindBezierC2, id} }
func BezierIntRef(id ids.ID) ObjectRef    { return ObjectRef{KindBezierInt, id} }
func SurfaceC0Ref(id ids.ID) ObjectRef    { return ObjectRef{KindSurfaceC0, id} }
func SurfaceC2Ref(id ids.ID) ObjectRef    { return ObjectRef{KindSurfaceC2, id} }
func GregoryRef(id ids.ID) ObjectRef      { return ObjectRef{KindGregory, id} }
func IntersectionRef(id ids.ID) ObjectRef { return ObjectRef{KindIntersection, id} }
