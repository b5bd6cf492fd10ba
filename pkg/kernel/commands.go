package kernel

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/intersect"
	"github.com/chazu/loft/pkg/scene"
	"github.com/chazu/loft/pkg/surface"
)

// Entity ids carried by creation commands come from NewID. An empty Name
// is replaced with "<kind> <id>".

// ---------------------------------------------------------------------------
// Points
// ---------------------------------------------------------------------------

type AddPoint struct {
	ID       ids.ID
	Name     string
	Position v3.Vec
}

type MovePoint struct {
	ID       ids.ID
	Position v3.Vec
}

type RenameObject struct {
	Object scene.ObjectRef
	Name   string
}

// MergeSelectedPoints collapses the selected points into the first of them,
// placed at their mean. References to the others are redirected.
type MergeSelectedPoints struct{}

// ---------------------------------------------------------------------------
// Tori
// ---------------------------------------------------------------------------

// AddTorus places a torus at the cursor.
type AddTorus struct {
	ID            ids.ID
	Name          string
	MajorRadius   float64
	MinorRadius   float64
	MajorSegments int
	MinorSegments int
}

type UpdateTorus struct {
	ID            ids.ID
	MajorRadius   float64
	MinorRadius   float64
	MajorSegments int
	MinorSegments int
}

type TransformTorus struct {
	ID        ids.ID
	Transform geom.Transform
}

// ---------------------------------------------------------------------------
// Curves
// ---------------------------------------------------------------------------

// AddBezierC0 creates a curve. With no Points it takes the selected points
// in selection order.
type AddBezierC0 struct {
	ID     ids.ID
	Name   string
	Points []ids.ID
}

type AddPointToBezierC0 struct {
	BezierID ids.ID
	PointID  ids.ID
}

// DeletePointsFromBezierC0 removes every occurrence of Points.
type DeletePointsFromBezierC0 struct {
	ID     ids.ID
	Points []ids.ID
}

type AddBezierC2 struct {
	ID     ids.ID
	Name   string
	Points []ids.ID
}

type AddPointToBezierC2 struct {
	BezierID ids.ID
	PointID  ids.ID
}

type DeletePointsFromBezierC2 struct {
	ID     ids.ID
	Points []ids.ID
}

// SelectBezierC2Bernstein marks one Bernstein point of the curve, or none
// with scene.NoSelection.
type SelectBezierC2Bernstein struct {
	ID    ids.ID
	Index int
}

// MoveBezierC2Bernstein drags Bernstein point Index to Position by moving
// the B-spline point that drives it.
type MoveBezierC2Bernstein struct {
	ID       ids.ID
	Index    int
	Position v3.Vec
}

type AddBezierInt struct {
	ID     ids.ID
	Name   string
	Points []ids.ID
}

type AddPointToBezierInt struct {
	BezierID ids.ID
	PointID  ids.ID
}

type DeletePointsFromBezierInt struct {
	ID     ids.ID
	Points []ids.ID
}

// SetDrawPolygon toggles the control polygon of a curve or surface.
type SetDrawPolygon struct {
	Object scene.ObjectRef
	Draw   bool
}

// ---------------------------------------------------------------------------
// Surfaces
// ---------------------------------------------------------------------------

// AddSurfaceC0 builds a surface over existing points. Points is the stored
// grid, rows along u.
type AddSurfaceC0 struct {
	ID       ids.ID
	Name     string
	Size     surface.Size
	Points   []ids.ID
	Cylinder bool
}

type AddSurfaceC2 struct {
	ID       ids.ID
	Name     string
	Size     surface.Size
	Points   []ids.ID
	Cylinder bool
}

// CreateSurfaceC0 generates the control points of a flat or cylindrical
// surface at the cursor. Zero extents take the configured defaults: Width
// and Length for a flat sheet, Radius and Height for a cylinder. The
// surface id is allocated after its points.
type CreateSurfaceC0 struct {
	Name     string
	Size     surface.Size
	Cylinder bool
	Width    float64
	Length   float64
	Radius   float64
	Height   float64
}

type CreateSurfaceC2 struct {
	Name     string
	Size     surface.Size
	Cylinder bool
	Width    float64
	Length   float64
	Radius   float64
	Height   float64
}

// ---------------------------------------------------------------------------
// Gregory patches
// ---------------------------------------------------------------------------

// CalculateGregories fills every triangular hole bounded by the selected C0
// surfaces that is not filled already.
type CalculateGregories struct{}

type UpdateGregory struct {
	ID          ids.ID
	TessLevel   int
	DrawVectors bool
}

// ---------------------------------------------------------------------------
// Intersections
// ---------------------------------------------------------------------------

// FindIntersection traces First against Second. They may be the same
// object. The seed nearest the cursor wins.
type FindIntersection struct {
	ID     ids.ID
	Name   string
	First  scene.ObjectRef
	Second scene.ObjectRef
}

type SetIntersectionTextureDraw struct {
	ID     ids.ID
	UVDraw intersect.TextureDraw
	STDraw intersect.TextureDraw
}

// IntersectionToInterpolated replaces an intersection with an interpolating
// spline through new points at its polyline vertices. The curve id is
// allocated after the points.
type IntersectionToInterpolated struct {
	ID   ids.ID
	Name string
}

// ---------------------------------------------------------------------------
// Selection and scene
// ---------------------------------------------------------------------------

type SelectObjects struct {
	Objects []scene.ObjectRef
}

type ToggleSelection struct {
	Object scene.ObjectRef
}

type ClearSelection struct{}

type SetCursor struct {
	Position v3.Vec
}

// TransformSelected moves the selected points and tori about the centre of
// the selection.
type TransformSelected struct {
	Transform geom.GroupTransform
}

// DeleteSelectedObjects deletes the selection. Points still referenced by
// something outside the selection survive.
type DeleteSelectedObjects struct{}

// LoadScene replaces the scene with a snapshot. Derived caches are
// recomputed; a snapshot that fails validation is refused.
type LoadScene struct {
	Snapshot scene.Snapshot
}

type ClearScene struct{}

func (AddPoint) command()                   {}
func (MovePoint) command()                  {}
func (RenameObject) command()               {}
func (MergeSelectedPoints) command()        {}
func (AddTorus) command()                   {}
func (UpdateTorus) command()                {}
func (TransformTorus) command()             {}
func (AddBezierC0) command()                {}
func (AddPointToBezierC0) command()         {}
func (DeletePointsFromBezierC0) command()   {}
func (AddBezierC2) command()                {}
func (AddPointToBezierC2) command()         {}
func (DeletePointsFromBezierC2) command()   {}
func (SelectBezierC2Bernstein) command()    {}
func (MoveBezierC2Bernstein) command()      {}
func (AddBezierInt) command()               {}
func (AddPointToBezierInt) command()        {}
func (DeletePointsFromBezierInt) command()  {}
func (SetDrawPolygon) command()             {}
func (AddSurfaceC0) command()               {}
func (AddSurfaceC2) command()               {}
func (CreateSurfaceC0) command()            {}
func (CreateSurfaceC2) command()            {}
func (CalculateGregories) command()         {}
func (UpdateGregory) command()              {}
func (FindIntersection) command()           {}
func (SetIntersectionTextureDraw) command() {}
func (IntersectionToInterpolated) command() {}
func (SelectObjects) command()              {}
func (ToggleSelection) command()            {}
func (ClearSelection) command()             {}
func (SetCursor) command()                  {}
func (TransformSelected) command()          {}
func (DeleteSelectedObjects) command()      {}
func (LoadScene) command()                  {}
func (ClearScene) command()                 {}

func registerCommands(k *Kernel) {
	handle(k, addPoint)
	handle(k, movePoint)
	handle(k, renameObject)
	handle(k, mergeSelectedPoints)
	handle(k, addTorus)
	handle(k, updateTorus)
	handle(k, transformTorus)
	handle(k, addBezierC0)
	handle(k, addPointToBezierC0)
	handle(k, deletePointsFromBezierC0)
	handle(k, addBezierC2)
	handle(k, addPointToBezierC2)
	handle(k, deletePointsFromBezierC2)
	handle(k, selectBezierC2Bernstein)
	handle(k, moveBezierC2Bernstein)
	handle(k, addBezierInt)
	handle(k, addPointToBezierInt)
	handle(k, deletePointsFromBezierInt)
	handle(k, setDrawPolygon)
	handle(k, addSurfaceC0)
	handle(k, addSurfaceC2)
	handle(k, createSurfaceC0)
	handle(k, createSurfaceC2)
	handle(k, calculateGregories)
	handle(k, updateGregory)
	handle(k, findIntersection)
	handle(k, setIntersectionTextureDraw)
	handle(k, intersectionToInterpolated)
	handle(k, selectObjects)
	handle(k, toggleSelection)
	handle(k, clearSelection)
	handle(k, setCursor)
	handle(k, transformSelected)
	handle(k, deleteSelectedObjects)
	handle(k, loadScene)
	handle(k, clearScene)
}
