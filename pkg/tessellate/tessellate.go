// Package tessellate turns a scene snapshot into triangle meshes. Untrimmed
// tori go through a mesh.Mesher; surfaces, Gregory patches and trimmed tori
// are sampled on their parameter grid. One mesh is produced per object.
// Points and curves have no surface and produce nothing.
package tessellate

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/gregory"
	"github.com/chazu/loft/pkg/mesh"
	"github.com/chazu/loft/pkg/scene"
	"github.com/chazu/loft/pkg/surface"
)

// Options controls sampling density.
type Options struct {
	// Samples is the number of grid steps along each patch edge.
	Samples int
	// TextureSize is the side of the trimming mask consulted per triangle.
	TextureSize int
	// Cells overrides the marching-cubes resolution of tori. Zero uses the
	// torus's larger segment count.
	Cells int
}

// DefaultOptions returns the sampling used by the shell.
func DefaultOptions() Options {
	return Options{Samples: 8, TextureSize: 200}
}

// Tessellate produces one mesh per torus, surface and Gregory patch in
// snap, in id order within each kind. It never mutates snap.
func Tessellate(snap scene.Snapshot, m mesh.Mesher, opts Options) ([]*mesh.Mesh, error) {
	if opts.Samples < 1 {
		return nil, fmt.Errorf("tessellate: samples must be positive, got %d", opts.Samples)
	}
	s := scene.FromSnapshot(snap)
	s.Refresh()

	var meshes []*mesh.Mesh
	for _, id := range scene.SortedIDs(s.Tori) {
		out, err := torus(s, s.Tori[id], m, opts)
		if err != nil {
			return nil, fmt.Errorf("tessellate: torus %d: %w", id, err)
		}
		meshes = append(meshes, out)
	}
	for _, kind := range []scene.ObjectKind{scene.KindSurfaceC0, scene.KindSurfaceC2} {
		src := s.SurfacesC0
		if kind == scene.KindSurfaceC2 {
			src = s.SurfacesC2
		}
		for _, id := range scene.SortedIDs(src) {
			ref := scene.ObjectRef{Kind: kind, ID: id}
			ev, err := s.Evaluator(ref)
			if err != nil {
				return nil, fmt.Errorf("tessellate: %w", err)
			}
			sz := src[id].Size
			out := sample(ev, sz.U*opts.Samples, sz.V*opts.Samples, mask(s, ref, opts.TextureSize))
			out.Object = src[id].Name
			meshes = append(meshes, out)
		}
	}
	for _, id := range scene.SortedIDs(s.Gregories) {
		g := s.Gregories[id]
		out := &mesh.Mesh{Object: g.Name}
		for _, p := range g.Patches {
			out.Append(sample(patch{p}, g.TessLevel, g.TessLevel, nil))
		}
		meshes = append(meshes, out)
	}
	return meshes, nil
}

func torus(s *scene.Scene, t *scene.Torus, m mesh.Mesher, opts Options) (*mesh.Mesh, error) {
	ref := scene.ObjectRef{Kind: scene.KindTorus, ID: t.ID}
	if trim := mask(s, ref, opts.TextureSize); trim != nil {
		ev, err := s.Evaluator(ref)
		if err != nil {
			return nil, err
		}
		out := sample(ev, t.MajorSegments, t.MinorSegments, trim)
		out.Object = t.Name
		return out, nil
	}

	solid, err := m.Torus(t.MajorRadius, t.MinorRadius)
	if err != nil {
		return nil, err
	}
	cells := opts.Cells
	if cells == 0 {
		cells = max(t.MajorSegments, t.MinorSegments)
	}
	out, err := m.ToMesh(m.Transform(solid, t.Transform), cells)
	if err != nil {
		return nil, err
	}
	out.Object = t.Name
	return out, nil
}

// ---------------------------------------------------------------------------
// Parametric sampling
// ---------------------------------------------------------------------------

// trim is a size×size keep mask over the parameter rectangle.
type trim struct {
	bits []float32
	size int
	rng  geom.UV
}

// mask returns the trimming mask of ref, or nil when no intersection
// involves it.
func mask(s *scene.Scene, ref scene.ObjectRef, size int) *trim {
	if size < 1 || len(s.IntersectionsOf(ref)) == 0 {
		return nil
	}
	ev, err := s.Evaluator(ref)
	if err != nil {
		return nil
	}
	return &trim{bits: s.Texture(ref, size), size: size, rng: ev.Range()}
}

func (t *trim) keep(u, v float64) bool {
	if t == nil {
		return true
	}
	x := pixel(u/t.rng.U, t.size)
	y := pixel(v/t.rng.V, t.size)
	return t.bits[y*t.size+x] != 0
}

func pixel(f float64, size int) int {
	return max(0, min(size-1, int(f*float64(size))))
}

// sample evaluates s on an (nu+1)×(nv+1) grid and triangulates it,
// dropping triangles whose centre is trimmed away.
func sample(s surface.Surface, nu, nv int, t *trim) *mesh.Mesh {
	out := &mesh.Mesh{}
	if nu < 1 || nv < 1 {
		return out
	}
	r := s.Range()
	at := func(i, j int) geom.UV {
		return geom.UV{U: r.U * float64(i) / float64(nu), V: r.V * float64(j) / float64(nv)}
	}
	idx := make([]uint32, 0, (nu+1)*(nv+1))
	for i := 0; i <= nu; i++ {
		for j := 0; j <= nv; j++ {
			p := at(i, j)
			idx = append(idx, out.AddVertex(s.Eval(p.U, p.V), surface.Normal(s, p.U, p.V)))
		}
	}
	vert := func(i, j int) uint32 { return idx[i*(nv+1)+j] }
	for i := 0; i < nu; i++ {
		for j := 0; j < nv; j++ {
			lo, hi := at(i, j), at(i+1, j+1)
			// Centroids of the two halves of the cell.
			if t.keep((2*lo.U+hi.U)/3, (lo.V+2*hi.V)/3) {
				out.AddTriangle(vert(i, j), vert(i+1, j+1), vert(i, j+1))
			}
			if t.keep((lo.U+2*hi.U)/3, (2*lo.V+hi.V)/3) {
				out.AddTriangle(vert(i, j), vert(i+1, j), vert(i+1, j+1))
			}
		}
	}
	return out
}

// patch adapts a Gregory patch to surface.Surface over [0,1]².
type patch struct{ gregory.Patch }

func (p patch) Eval(u, v float64) v3.Vec { return p.Patch.Eval(clamp01(u), clamp01(v)) }
func (patch) Range() geom.UV             { return geom.UV{U: 1, V: 1} }
func (patch) Wrap() (bool, bool)         { return false, false }

func clamp01(x float64) float64 { return max(0, min(1, x)) }
