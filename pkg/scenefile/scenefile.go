// Package scenefile reads and writes the JSON scene format shared with
// other modelling tools.
//
// The file is right-handed with z flipped relative to the kernel; every
// position and rotation is mirrored in z on the way in and out. Gregory
// patches and intersections are derived data and are not stored.
package scenefile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/scene"
)

// Object types.
const (
	TypeTorus       = "torus"
	TypeBezierC0    = "bezierC0"
	TypeBezierC2    = "bezierC2"
	TypeInterpolate = "interpolatedC2"
	TypeSurfaceC0   = "bezierSurfaceC0"
	TypeSurfaceC2   = "bezierSurfaceC2"
	TypePatchC0     = "bezierPatchC0"
	TypePatchC2     = "bezierPatchC2"
)

// PatchSamples is the tessellation written for every patch.
const PatchSamples = 4

type File struct {
	Points   []Point    `json:"points"`
	Geometry []Geometry `json:"geometry"`
}

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Samples struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Wrapped struct {
	U bool `json:"u"`
	V bool `json:"v"`
}

type Point struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Position Vec3   `json:"position"`
}

type Ref struct {
	ID uint64 `json:"id"`
}

type Patch struct {
	ObjectType    string  `json:"objectType"`
	ID            uint64  `json:"id"`
	Name          string  `json:"name,omitempty"`
	ControlPoints []Ref   `json:"control_points"`
	Samples       Samples `json:"samples"`
}

// Geometry is the union of every object type. Fields not used by
// ObjectType are omitted.
type Geometry struct {
	ObjectType string `json:"objectType"`
	ID         uint64 `json:"id"`
	Name       string `json:"name"`

	// torus
	Position    *Vec3    `json:"position,omitempty"`
	Rotation    *Vec3    `json:"rotation,omitempty"`
	Scale       *Vec3    `json:"scale,omitempty"`
	Samples     *Samples `json:"samples,omitempty"`
	SmallRadius float64  `json:"smallRadius,omitempty"`
	LargeRadius float64  `json:"largeRadius,omitempty"`

	// curves
	ControlPoints []Ref `json:"controlPoints,omitempty"`
	DeBoorPoints  []Ref `json:"deBoorPoints,omitempty"`

	// surfaces
	Patches          []Patch  `json:"patches,omitempty"`
	ParameterWrapped *Wrapped `json:"parameterWrapped,omitempty"`
	Size             *Samples `json:"size,omitempty"`
}

// ---------------------------------------------------------------------------
// Handedness
// ---------------------------------------------------------------------------

func toKernel(v Vec3) v3.Vec { return v3.Vec{X: v.X, Y: v.Y, Z: -v.Z} }

func fromKernel(v v3.Vec) Vec3 { return Vec3{X: v.X, Y: v.Y, Z: -v.Z} }

// mirror reflects a rotation through the z = 0 plane.
func mirror(q quat.Number) quat.Number {
	return quat.Number{Real: q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: q.Kmag}
}

func refs(pts []ids.ID) []Ref {
	out := make([]Ref, len(pts))
	for i, id := range pts {
		out[i] = Ref{ID: uint64(id)}
	}
	return out
}

func unref(rs []Ref) []ids.ID {
	out := make([]ids.ID, len(rs))
	for i, r := range rs {
		out[i] = ids.ID(r.ID)
	}
	return out
}

// ---------------------------------------------------------------------------
// I/O
// ---------------------------------------------------------------------------

// Read decodes a scene file into a snapshot. The snapshot's derived caches
// are empty; the kernel recomputes them on load.
func Read(r io.Reader) (scene.Snapshot, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return scene.Snapshot{}, fmt.Errorf("scenefile: %w", err)
	}
	return f.Snapshot()
}

// Load reads the scene file at path.
func Load(path string) (scene.Snapshot, error) {
	fh, err := os.Open(path)
	if err != nil {
		return scene.Snapshot{}, fmt.Errorf("scenefile: %w", err)
	}
	defer fh.Close()
	return Read(fh)
}

// Write encodes snap as an indented scene file.
func Write(w io.Writer, snap scene.Snapshot) error {
	f, err := FromSnapshot(snap)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("scenefile: %w", err)
	}
	return nil
}

// Save writes snap to path.
func Save(path string, snap scene.Snapshot) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scenefile: %w", err)
	}
	if err := Write(fh, snap); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

// ---------------------------------------------------------------------------
// Conversion
// ---------------------------------------------------------------------------

// Snapshot converts a decoded file.
func (f *File) Snapshot() (scene.Snapshot, error) {
	var snap scene.Snapshot
	for _, p := range f.Points {
		snap.Points = append(snap.Points, scene.Point{ID: ids.ID(p.ID), Name: p.Name, Position: toKernel(p.Position)})
	}
	for _, g := range f.Geometry {
		id := ids.ID(g.ID)
		switch g.ObjectType {
		case TypeTorus:
			t, err := g.torus()
			if err != nil {
				return scene.Snapshot{}, err
			}
			snap.Tori = append(snap.Tori, t)
		case TypeBezierC0:
			snap.BezierC0s = append(snap.BezierC0s, scene.BezierC0{ID: id, Name: g.Name, Points: unref(g.ControlPoints)})
		case TypeBezierC2:
			snap.BezierC2s = append(snap.BezierC2s, scene.BezierC2{
				ID: id, Name: g.Name, Points: unref(g.DeBoorPoints), SelectedBernstein: scene.NoSelection,
			})
		case TypeInterpolate:
			snap.BezierInts = append(snap.BezierInts, scene.BezierInt{ID: id, Name: g.Name, Points: unref(g.ControlPoints)})
		case TypeSurfaceC0:
			sf, err := g.surface(scene.KindSurfaceC0)
			if err != nil {
				return scene.Snapshot{}, err
			}
			snap.SurfacesC0 = append(snap.SurfacesC0, sf)
		case TypeSurfaceC2:
			sf, err := g.surface(scene.KindSurfaceC2)
			if err != nil {
				return scene.Snapshot{}, err
			}
			snap.SurfacesC2 = append(snap.SurfacesC2, sf)
		default:
			return scene.Snapshot{}, fmt.Errorf("scenefile: object %d: unknown objectType %q", g.ID, g.ObjectType)
		}
	}
	sortByID(snap.Points, func(p scene.Point) ids.ID { return p.ID })
	sortByID(snap.Tori, func(t scene.Torus) ids.ID { return t.ID })
	sortByID(snap.BezierC0s, func(c scene.BezierC0) ids.ID { return c.ID })
	sortByID(snap.BezierC2s, func(c scene.BezierC2) ids.ID { return c.ID })
	sortByID(snap.BezierInts, func(c scene.BezierInt) ids.ID { return c.ID })
	sortByID(snap.SurfacesC0, func(s scene.Surface) ids.ID { return s.ID })
	sortByID(snap.SurfacesC2, func(s scene.Surface) ids.ID { return s.ID })
	return snap, nil
}

func sortByID[T any](vs []T, id func(T) ids.ID) {
	slices.SortFunc(vs, func(a, b T) int {
		switch x, y := id(a), id(b); {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	})
}

func (g *Geometry) torus() (scene.Torus, error) {
	if g.Samples == nil {
		return scene.Torus{}, fmt.Errorf("scenefile: torus %d: missing samples", g.ID)
	}
	tr := geom.IdentityTransform()
	if g.Position != nil {
		tr.Translation = toKernel(*g.Position)
	}
	if g.Rotation != nil {
		tr.Rotation = mirror(geom.FromEuler(g.Rotation.X, g.Rotation.Y, g.Rotation.Z))
	}
	if g.Scale != nil {
		tr.Scale = v3.Vec{X: g.Scale.X, Y: g.Scale.Y, Z: g.Scale.Z}
	}
	return scene.Torus{
		ID:            ids.ID(g.ID),
		Name:          g.Name,
		MajorRadius:   g.LargeRadius,
		MinorRadius:   g.SmallRadius,
		MajorSegments: g.Samples.X,
		MinorSegments: g.Samples.Y,
		Transform:     tr,
	}, nil
}

// FromSnapshot converts a snapshot for encoding.
func FromSnapshot(snap scene.Snapshot) (*File, error) {
	f := &File{Points: []Point{}, Geometry: []Geometry{}}
	next := snap.MaxID() + 1
	for _, p := range snap.Points {
		f.Points = append(f.Points, Point{ID: uint64(p.ID), Name: p.Name, Position: fromKernel(p.Position)})
	}
	for _, t := range snap.Tori {
		pos := fromKernel(t.Transform.Translation)
		x, y, z := geom.ToEuler(mirror(t.Transform.Rotation))
		s := t.Transform.Scale
		f.Geometry = append(f.Geometry, Geometry{
			ObjectType:  TypeTorus,
			ID:          uint64(t.ID),
			Name:        t.Name,
			Position:    &pos,
			Rotation:    &Vec3{X: x, Y: y, Z: z},
			Scale:       &Vec3{X: s.X, Y: s.Y, Z: s.Z},
			Samples:     &Samples{X: t.MajorSegments, Y: t.MinorSegments},
			SmallRadius: t.MinorRadius,
			LargeRadius: t.MajorRadius,
		})
	}
	for _, c := range snap.BezierC0s {
		f.Geometry = append(f.Geometry, Geometry{ObjectType: TypeBezierC0, ID: uint64(c.ID), Name: c.Name, ControlPoints: refs(c.Points)})
	}
	for _, c := range snap.BezierC2s {
		f.Geometry = append(f.Geometry, Geometry{ObjectType: TypeBezierC2, ID: uint64(c.ID), Name: c.Name, DeBoorPoints: refs(c.Points)})
	}
	for _, c := range snap.BezierInts {
		f.Geometry = append(f.Geometry, Geometry{ObjectType: TypeInterpolate, ID: uint64(c.ID), Name: c.Name, ControlPoints: refs(c.Points)})
	}
	for _, s := range snap.SurfacesC0 {
		g, err := surfaceGeometry(scene.KindSurfaceC0, s, &next)
		if err != nil {
			return nil, err
		}
		f.Geometry = append(f.Geometry, g)
	}
	for _, s := range snap.SurfacesC2 {
		g, err := surfaceGeometry(scene.KindSurfaceC2, s, &next)
		if err != nil {
			return nil, err
		}
		f.Geometry = append(f.Geometry, g)
	}
	return f, nil
}

