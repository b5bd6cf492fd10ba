package events

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/gregory"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/intersect"
	"github.com/chazu/loft/pkg/scene"
	"github.com/chazu/loft/pkg/surface"
)

// Event is one entry of the kernel's event stream. The set of events is
// closed; every event type lives in this package.
type Event interface {
	Kind() Kind
}

// Origin tells why a point was created.
type Origin int

const (
	OriginUser    Origin = iota // placed by a command from the shell
	OriginDerived               // promoted from an intersection polyline
	OriginSurface               // generated as a surface control point
)

// Kind tags each event type.
type Kind int

const (
	KindPointCreated Kind = iota
	KindPointMoved
	KindPointDeleted
	KindPointsMerged
	KindObjectRenamed
	KindTorusCreated
	KindTorusUpdated
	KindTorusTransformed
	KindTorusDeleted
	KindBezierC0Created
	KindBezierC0Deleted
	KindPointAddedToBezierC0
	KindBezierC0PointsDeleted
	KindBezierC2Created
	KindBezierC2Deleted
	KindPointAddedToBezierC2
	KindBezierC2PointsDeleted
	KindBezierC2PointMoved
	KindBezierC2BernsteinSelected
	KindBezierIntCreated
	KindBezierIntDeleted
	KindPointAddedToBezierInt
	KindBezierIntPointsDeleted
	KindBezierIntPointMoved
	KindDrawPolygonSet
	KindSurfaceC0Created
	KindSurfaceC0PointMoved
	KindSurfaceC0Deleted
	KindSurfaceC2Created
	KindSurfaceC2PointMoved
	KindSurfaceC2Deleted
	KindGregoryCreated
	KindGregoryMeshRecalculated
	KindGregoryUpdated
	KindGregoryDeleted
	KindIntersectionCreated
	KindIntersectionDeleted
	KindIntersectionTexturesDrawSet
	KindIntersectionFailed
	KindIntersectionTruncated
	KindUpdateTexture
	KindSelectionChanged
	KindCursorMoved
	KindSceneLoaded
	KindSceneCleared

	kindCount
)

var kindNames = [...]string{
	KindPointCreated:                "PointCreated",
	KindPointMoved:                  "PointMoved",
	KindPointDeleted:                "PointDeleted",
	KindPointsMerged:                "PointsMerged",
	KindObjectRenamed:               "ObjectRenamed",
	KindTorusCreated:                "TorusCreated",
	KindTorusUpdated:                "TorusUpdated",
	KindTorusTransformed:            "TorusTransformed",
	KindTorusDeleted:                "TorusDeleted",
	KindBezierC0Created:             "BezierC0Created",
	KindBezierC0Deleted:             "BezierC0Deleted",
	KindPointAddedToBezierC0:        "PointAddedToBezierC0",
	KindBezierC0PointsDeleted:       "BezierC0PointsDeleted",
	KindBezierC2Created:             "BezierC2Created",
	KindBezierC2Deleted:             "BezierC2Deleted",
	KindPointAddedToBezierC2:        "PointAddedToBezierC2",
	KindBezierC2PointsDeleted:       "BezierC2PointsDeleted",
	KindBezierC2PointMoved:          "BezierC2PointMoved",
	KindBezierC2BernsteinSelected:   "BezierC2BernsteinSelected",
	KindBezierIntCreated:            "BezierIntCreated",
	KindBezierIntDeleted:            "BezierIntDeleted",
	KindPointAddedToBezierInt:       "PointAddedToBezierInt",
	KindBezierIntPointsDeleted:      "BezierIntPointsDeleted",
	KindBezierIntPointMoved:         "BezierIntPointMoved",
	KindDrawPolygonSet:              "DrawPolygonSet",
	KindSurfaceC0Created:            "SurfaceC0Created",
	KindSurfaceC0PointMoved:         "SurfaceC0PointMoved",
	KindSurfaceC0Deleted:            "SurfaceC0Deleted",
	KindSurfaceC2Created:            "SurfaceC2Created",
	KindSurfaceC2PointMoved:         "SurfaceC2PointMoved",
	KindSurfaceC2Deleted:            "SurfaceC2Deleted",
	KindGregoryCreated:              "GregoryCreated",
	KindGregoryMeshRecalculated:     "GregoryMeshRecalculated",
	KindGregoryUpdated:              "GregoryUpdated",
	KindGregoryDeleted:              "GregoryDeleted",
	KindIntersectionCreated:         "IntersectionCreated",
	KindIntersectionDeleted:         "IntersectionDeleted",
	KindIntersectionTexturesDrawSet: "IntersectionTexturesDrawSet",
	KindIntersectionFailed:          "IntersectionFailed",
	KindIntersectionTruncated:       "IntersectionTruncated",
	KindUpdateTexture:               "UpdateTexture",
	KindSelectionChanged:            "SelectionChanged",
	KindCursorMoved:                 "CursorMoved",
	KindSceneLoaded:                 "SceneLoaded",
	KindSceneCleared:                "SceneCleared",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ---------------------------------------------------------------------------
// Points
// ---------------------------------------------------------------------------

// PointCreated announces a new point. Origin tells user-placed points apart
// from generated ones.
type PointCreated struct {
	ID       ids.ID
	Name     string
	Position v3.Vec
	Origin   Origin
}

func (PointCreated) Kind() Kind { return KindPointCreated }

type PointMoved struct {
	ID       ids.ID
	Position v3.Vec
}

func (PointMoved) Kind() Kind { return KindPointMoved }

type PointDeleted struct {
	ID ids.ID
}

func (PointDeleted) Kind() Kind { return KindPointDeleted }

// PointsMerged reports that Removed were folded into Kept, which now sits
// at Position.
type PointsMerged struct {
	Kept     ids.ID
	Removed  []ids.ID
	Position v3.Vec
}

func (PointsMerged) Kind() Kind { return KindPointsMerged }

type ObjectRenamed struct {
	Object scene.ObjectRef
	Name   string
}

func (ObjectRenamed) Kind() Kind { return KindObjectRenamed }

// ---------------------------------------------------------------------------
// Tori
// ---------------------------------------------------------------------------

type TorusCreated struct {
	ID            ids.ID
	Name          string
	MajorRadius   float64
	MinorRadius   float64
	MajorSegments int
	MinorSegments int
	Transform     geom.Transform
}

func (TorusCreated) Kind() Kind { return KindTorusCreated }

type TorusUpdated struct {
	ID            ids.ID
	MajorRadius   float64
	MinorRadius   float64
	MajorSegments int
	MinorSegments int
}

func (TorusUpdated) Kind() Kind { return KindTorusUpdated }

type TorusTransformed struct {
	ID        ids.ID
	Transform geom.Transform
}

func (TorusTransformed) Kind() Kind { return KindTorusTransformed }

type TorusDeleted struct {
	ID ids.ID
}

func (TorusDeleted) Kind() Kind { return KindTorusDeleted }

// ---------------------------------------------------------------------------
// C0 curves
// ---------------------------------------------------------------------------

type BezierC0Created struct {
	ID     ids.ID
	Name   string
	Points []ids.ID
}

func (BezierC0Created) Kind() Kind { return KindBezierC0Created }

type BezierC0Deleted struct {
	ID ids.ID
}

func (BezierC0Deleted) Kind() Kind { return KindBezierC0Deleted }

type PointAddedToBezierC0 struct {
	PointID   ids.ID
	BezierID  ids.ID
	PointName string
}

func (PointAddedToBezierC0) Kind() Kind { return KindPointAddedToBezierC0 }

type BezierC0PointsDeleted struct {
	ID      ids.ID
	Deleted []ids.ID
}

func (BezierC0PointsDeleted) Kind() Kind { return KindBezierC0PointsDeleted }

// ---------------------------------------------------------------------------
// C2 curves
// ---------------------------------------------------------------------------

type BezierC2Created struct {
	ID        ids.ID
	Name      string
	Points    []ids.ID
	Bernstein []v3.Vec
}

func (BezierC2Created) Kind() Kind { return KindBezierC2Created }

type BezierC2Deleted struct {
	ID ids.ID
}

func (BezierC2Deleted) Kind() Kind { return KindBezierC2Deleted }

type PointAddedToBezierC2 struct {
	PointID   ids.ID
	BezierID  ids.ID
	PointName string
	Bernstein []v3.Vec
}

func (PointAddedToBezierC2) Kind() Kind { return KindPointAddedToBezierC2 }

type BezierC2PointsDeleted struct {
	ID        ids.ID
	Deleted   []ids.ID
	Bernstein []v3.Vec
}

func (BezierC2PointsDeleted) Kind() Kind { return KindBezierC2PointsDeleted }

// BezierC2PointMoved carries the rebuilt Bernstein polygon after a control point moved.
type BezierC2PointMoved struct {
	ID        ids.ID
	Bernstein []v3.Vec
}

func (BezierC2PointMoved) Kind() Kind { return KindBezierC2PointMoved }

type BezierC2BernsteinSelected struct {
	ID    ids.ID
	Index int
}

func (BezierC2BernsteinSelected) Kind() Kind { return KindBezierC2BernsteinSelected }

// ---------------------------------------------------------------------------
// Interpolating curves
// ---------------------------------------------------------------------------

type BezierIntCreated struct {
	ID        ids.ID
	Name      string
	Points    []ids.ID
	Bernstein []v3.Vec
}

func (BezierIntCreated) Kind() Kind { return KindBezierIntCreated }

type BezierIntDeleted struct {
	ID ids.ID
}

func (BezierIntDeleted) Kind() Kind { return KindBezierIntDeleted }

type PointAddedToBezierInt struct {
	PointID   ids.ID
	BezierID  ids.ID
	PointName string
	Bernstein []v3.Vec
}

func (PointAddedToBezierInt) Kind() Kind { return KindPointAddedToBezierInt }

type BezierIntPointsDeleted struct {
	ID        ids.ID
	Deleted   []ids.ID
	Bernstein []v3.Vec
}

func (BezierIntPointsDeleted) Kind() Kind { return KindBezierIntPointsDeleted }

type BezierIntPointMoved struct {
	ID        ids.ID
	Bernstein []v3.Vec
}

func (BezierIntPointMoved) Kind() Kind { return KindBezierIntPointMoved }

type DrawPolygonSet struct {
	Object scene.ObjectRef
	Draw   bool
}

func (DrawPolygonSet) Kind() Kind { return KindDrawPolygonSet }

// ---------------------------------------------------------------------------
// Surfaces
// ---------------------------------------------------------------------------

type SurfaceC0Created struct {
	ID       ids.ID
	Name     string
	Size     surface.Size
	Points   []ids.ID
	Cylinder bool
}

func (SurfaceC0Created) Kind() Kind { return KindSurfaceC0Created }

// SurfaceC0PointMoved names the surface and the control point that moved.
type SurfaceC0PointMoved struct {
	ID      ids.ID
	PointID ids.ID
}

func (SurfaceC0PointMoved) Kind() Kind { return KindSurfaceC0PointMoved }

type SurfaceC0Deleted struct {
	ID ids.ID
}

func (SurfaceC0Deleted) Kind() Kind { return KindSurfaceC0Deleted }

type SurfaceC2Created struct {
	ID       ids.ID
	Name     string
	Size     surface.Size
	Points   []ids.ID
	Cylinder bool
}

func (SurfaceC2Created) Kind() Kind { return KindSurfaceC2Created }

type SurfaceC2PointMoved struct {
	ID      ids.ID
	PointID ids.ID
}

func (SurfaceC2PointMoved) Kind() Kind { return KindSurfaceC2PointMoved }

type SurfaceC2Deleted struct {
	ID ids.ID
}

func (SurfaceC2Deleted) Kind() Kind { return KindSurfaceC2Deleted }

// ---------------------------------------------------------------------------
// Gregory patches
// ---------------------------------------------------------------------------

type GregoryCreated struct {
	ID          ids.ID
	Name        string
	TessLevel   int
	DrawVectors bool
	Patches     [3]gregory.Patch
}

func (GregoryCreated) Kind() Kind { return KindGregoryCreated }

// GregoryMeshRecalculated carries refitted patches after a boundary point moved.
type GregoryMeshRecalculated struct {
	ID      ids.ID
	Patches [3]gregory.Patch
}

func (GregoryMeshRecalculated) Kind() Kind { return KindGregoryMeshRecalculated }

type GregoryUpdated struct {
	ID          ids.ID
	TessLevel   int
	DrawVectors bool
}

func (GregoryUpdated) Kind() Kind { return KindGregoryUpdated }

type GregoryDeleted struct {
	ID ids.ID
}

func (GregoryDeleted) Kind() Kind { return KindGregoryDeleted }

// ---------------------------------------------------------------------------
// Intersections
// ---------------------------------------------------------------------------

// IntersectionCreated carries the traced polyline and both trimming bitmaps.
type IntersectionCreated struct {
	ID        ids.ID
	Name      string
	First     scene.ObjectRef
	Second    scene.ObjectRef
	UVTexture *intersect.Bitmap
	STTexture *intersect.Bitmap
	Points    []v3.Vec
	Wrap      bool
}

func (IntersectionCreated) Kind() Kind { return KindIntersectionCreated }

type IntersectionDeleted struct {
	ID     ids.ID
	First  scene.ObjectRef
	Second scene.ObjectRef
}

func (IntersectionDeleted) Kind() Kind { return KindIntersectionDeleted }

type IntersectionTexturesDrawSet struct {
	ID     ids.ID
	UVDraw intersect.TextureDraw
	STDraw intersect.TextureDraw
	First  scene.ObjectRef
	Second scene.ObjectRef
}

func (IntersectionTexturesDrawSet) Kind() Kind { return KindIntersectionTexturesDrawSet }

// IntersectionFailed is published when no curve could be traced.
type IntersectionFailed struct {
	First  scene.ObjectRef
	Second scene.ObjectRef
	Reason string
}

func (IntersectionFailed) Kind() Kind { return KindIntersectionFailed }

// IntersectionTruncated is published when tracing hit the point cap.
type IntersectionTruncated struct {
	ID     ids.ID
	Points int
}

func (IntersectionTruncated) Kind() Kind { return KindIntersectionTruncated }

// UpdateTexture carries the composed trimming mask of one object as
// Size×Size values of 0 or 1.
type UpdateTexture struct {
	Object  scene.ObjectRef
	Size    int
	Texture []float32
}

func (UpdateTexture) Kind() Kind { return KindUpdateTexture }

// ---------------------------------------------------------------------------
// Scene
// ---------------------------------------------------------------------------

type SelectionChanged struct {
	Selection []scene.ObjectRef
}

func (SelectionChanged) Kind() Kind { return KindSelectionChanged }

type CursorMoved struct {
	Position v3.Vec
}

func (CursorMoved) Kind() Kind { return KindCursorMoved }

// SceneLoaded is published once after a scene replaces the current one.
type SceneLoaded struct {
	Points  int
	Objects int
}

func (SceneLoaded) Kind() Kind { return KindSceneLoaded }

type SceneCleared struct{}

func (SceneCleared) Kind() Kind { return KindSceneCleared }
