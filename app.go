package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chazu/loft/pkg/config"
	"github.com/chazu/loft/pkg/engine"
	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/kernel"
	"github.com/chazu/loft/pkg/mesh"
	"github.com/chazu/loft/pkg/mesh/sdfx"
	"github.com/chazu/loft/pkg/scene"
	"github.com/chazu/loft/pkg/scenefile"
	"github.com/chazu/loft/pkg/tessellate"
)

// colorPalette assigns distinct colors to objects in emission order.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App ties the console, the kernel and the tessellator together.
type App struct {
	kernel *kernel.Kernel
	engine *engine.Engine
	mesher mesh.Mesher
	opts   tessellate.Options
	log    *slog.Logger

	// published counts every event the kernel has delivered.
	published int
}

// MeshData is the JSON-serializable mesh format of one object.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Object   string    `json:"object"`
	Color    string    `json:"color"`
}

// EventData is one entry of the event stream.
type EventData struct {
	Kind  string       `json:"kind"`
	Event events.Event `json:"event"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is everything one evaluation produced.
type EvalResult struct {
	Value  string          `json:"value"`
	Events []EventData     `json:"events"`
	Meshes []MeshData      `json:"meshes"`
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates an App over a fresh kernel configured by cfg.
func NewApp(cfg config.Config, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	k := kernel.New(cfg)
	opts := tessellate.DefaultOptions()
	opts.TextureSize = cfg.Intersection.TextureSize
	a := &App{
		kernel: k,
		engine: engine.New(k),
		mesher: sdfx.New(),
		opts:   opts,
		log:    log,
	}
	k.Bus().SubscribeAll(func(events.Event) { a.published++ })
	return a
}

// Evaluate runs source against the scene and returns the events it caused
// together with meshes of the whole resulting scene.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Events: []EventData{},
		Meshes: []MeshData{},
		Errors: []EvalErrorData{},
	}

	res, err := a.engine.Evaluate(context.Background(), source)
	for _, e := range res.Events {
		result.Events = append(result.Events, EventData{Kind: e.Kind().String(), Event: e})
	}
	if err != nil {
		a.log.Error("evaluate failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	result.Value = res.Value
	for _, e := range res.Errors {
		result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
	}

	meshes, err := a.Meshes()
	if err != nil {
		a.log.Error("tessellate failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "tessellation failed: " + err.Error()})
		return result
	}
	result.Meshes = meshes
	return result
}

// Meshes tessellates the current scene.
func (a *App) Meshes() ([]MeshData, error) {
	snap := kernel.Ask[scene.Snapshot](a.kernel, kernel.SceneSnapshot{})
	meshes, err := tessellate.Tessellate(snap, a.mesher, a.opts)
	if err != nil {
		return nil, err
	}
	out := make([]MeshData, 0, len(meshes))
	for i, m := range meshes {
		out = append(out, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Object:   m.Object,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return out, nil
}

// LoadScene replaces the scene with the contents of a scene file.
func (a *App) LoadScene(path string) error {
	snap, err := scenefile.Load(path)
	if err != nil {
		return err
	}
	n := a.published
	a.kernel.Execute(kernel.LoadScene{Snapshot: snap})
	if a.published == n {
		return fmt.Errorf("load %s: scene refused", path)
	}
	a.log.Info("scene loaded", "path", path, "points", len(snap.Points))
	return nil
}

// SaveScene writes the current scene to a scene file.
func (a *App) SaveScene(path string) error {
	snap := kernel.Ask[scene.Snapshot](a.kernel, kernel.SceneSnapshot{})
	if err := scenefile.Save(path, snap); err != nil {
		return err
	}
	a.log.Info("scene saved", "path", path, "points", len(snap.Points))
	return nil
}
