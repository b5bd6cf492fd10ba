package scene

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/gregory"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/intersect"
	"github.com/chazu/loft/pkg/surface"
)

// Torus segment limits.
const (
	MinSegments = 1
	MaxSegments = 1000
)

// Gregory tessellation limits.
const (
	MinTessLevel = 1
	MaxTessLevel = 64
)

// NoSelection marks a curve with no selected Bernstein point.
const NoSelection = -1

// Point is a free point owned by the scene. Curves, surfaces and Gregory
// patches refer to points by id only.
type Point struct {
	ID       ids.ID `json:"id"`
	Name     string `json:"name"`
	Position v3.Vec `json:"position"`
}

// Torus is a ring torus placed by Transform.
type Torus struct {
	ID            ids.ID         `json:"id"`
	Name          string         `json:"name"`
	MajorRadius   float64        `json:"majorRadius"`
	MinorRadius   float64        `json:"minorRadius"`
	MajorSegments int            `json:"majorSegments"`
	MinorSegments int            `json:"minorSegments"`
	Transform     geom.Transform `json:"transform"`
}

// ValidTorus checks the radius and segment preconditions.
func ValidTorus(major, minor float64, majorSeg, minorSeg int) bool {
	return minor > 0 && major > minor &&
		majorSeg >= MinSegments && majorSeg <= MaxSegments &&
		minorSeg >= MinSegments && minorSeg <= MaxSegments
}

// BezierC0 is a piecewise cubic Bézier curve drawn straight from its
// control points.
type BezierC0 struct {
	ID          ids.ID   `json:"id"`
	Name        string   `json:"name"`
	Points      []ids.ID `json:"points"`
	DrawPolygon bool     `json:"drawPolygon"`
}

// BezierC2 is a uniform cubic B-spline. Bernstein caches its Bézier
// polygon and is rebuilt whenever a control point changes.
type BezierC2 struct {
	ID                ids.ID   `json:"id"`
	Name              string   `json:"name"`
	Points            []ids.ID `json:"points"`
	Bernstein         []v3.Vec `json:"bernstein"`
	SelectedBernstein int      `json:"selectedBernstein"`
	DrawPolygon       bool     `json:"drawPolygon"`
}

// BezierInt is a natural cubic spline through its points. Bernstein caches
// its Bézier polygon.
type BezierInt struct {
	ID          ids.ID   `json:"id"`
	Name        string   `json:"name"`
	Points      []ids.ID `json:"points"`
	Bernstein   []v3.Vec `json:"bernstein"`
	DrawPolygon bool     `json:"drawPolygon"`
}

// Surface is a grid of bicubic patches. Points is the stored control grid,
// rows along u; a cylinder omits the rows repeated across its seam.
type Surface struct {
	ID          ids.ID       `json:"id"`
	Name        string       `json:"name"`
	Size        surface.Size `json:"size"`
	Points      []ids.ID     `json:"points"`
	Cylinder    bool         `json:"cylinder"`
	DrawPolygon bool         `json:"drawPolygon"`
}

// Gregory fills one triangular hole.
type Gregory struct {
	ID          ids.ID           `json:"id"`
	Name        string           `json:"name"`
	Triangle    gregory.Triangle `json:"triangle"`
	Patches     [3]gregory.Patch `json:"patches"`
	TessLevel   int              `json:"tessLevel"`
	DrawVectors bool             `json:"drawVectors"`
}

// Intersection is a traced curve between two objects, which may be the
// same object.
type Intersection struct {
	ID        ids.ID                `json:"id"`
	Name      string                `json:"name"`
	First     ObjectRef             `json:"first"`
	Second    ObjectRef             `json:"second"`
	Points    []v3.Vec              `json:"points"`
	UV        []geom.UV             `json:"uv"`
	ST        []geom.UV             `json:"st"`
	UVTexture *intersect.Bitmap     `json:"uvTexture"`
	STTexture *intersect.Bitmap     `json:"stTexture"`
	Wrap      bool                  `json:"wrap"`
	UVDraw    intersect.TextureDraw `json:"uvDraw"`
	STDraw    intersect.TextureDraw `json:"stDraw"`
}

// Layers returns what the intersection contributes to ref's texture.
func (in *Intersection) Layers(ref ObjectRef) []intersect.Layer {
	var out []intersect.Layer
	if in.First == ref {
		out = append(out, intersect.Layer{Bitmap: in.UVTexture, Draw: in.UVDraw})
	}
	if in.Second == ref {
		out = append(out, intersect.Layer{Bitmap: in.STTexture, Draw: in.STDraw})
	}
	return out
}
