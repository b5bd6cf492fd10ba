package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/loft/pkg/config"
	"github.com/chazu/loft/pkg/kernel"
	"github.com/chazu/loft/pkg/scene"
)

func newApp() *App {
	return NewApp(config.Default(), nil)
}

func mustEvaluate(t *testing.T, app *App, source string) EvalResult {
	t.Helper()
	result := app.Evaluate(source)
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
	return result
}

func countKind(r EvalResult, kind string) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// TestE2EPatchesExample exercises the full pipeline: Lisp source → engine →
// kernel → tessellate → meshes.
func TestE2EPatchesExample(t *testing.T) {
	app := newApp()

	source, err := os.ReadFile("examples/patches.lisp")
	if err != nil {
		t.Fatalf("failed to read patches.lisp: %v", err)
	}
	result := mustEvaluate(t, app, string(source))

	// 7×7 sheet points, 4×4 stored tube points and three curve points.
	if got := countKind(result, "PointCreated"); got != 49+16+3 {
		t.Errorf("expected %d PointCreated events, got %d", 49+16+3, got)
	}
	if got := countKind(result, "BezierIntCreated"); got != 1 {
		t.Errorf("expected 1 BezierIntCreated event, got %d", got)
	}

	if len(result.Meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(result.Meshes))
	}
	for i, want := range []string{"sheet", "tube"} {
		m := result.Meshes[i]
		if m.Object != want {
			t.Errorf("mesh %d: expected object %q, got %q", i, want, m.Object)
		}
		if len(m.Vertices) == 0 || len(m.Normals) != len(m.Vertices) {
			t.Errorf("mesh %q: %d vertices, %d normals", m.Object, len(m.Vertices), len(m.Normals))
		}
		if len(m.Indices) == 0 {
			t.Errorf("mesh %q: no indices", m.Object)
		}
		if m.Color == "" {
			t.Errorf("mesh %q: no color assigned", m.Object)
		}
	}
}

func TestE2EEmptySource(t *testing.T) {
	result := newApp().Evaluate("")

	if len(result.Errors) != 0 || len(result.Events) != 0 || len(result.Meshes) != 0 {
		t.Errorf("expected nothing for empty source, got %+v", result)
	}
	// Slices are non-nil so JSON serializes them as [].
	if result.Events == nil || result.Meshes == nil || result.Errors == nil {
		t.Error("result slices should be non-nil")
	}
}

func TestE2ETorusMesh(t *testing.T) {
	result := mustEvaluate(t, newApp(), `(torus :major-segments 16 :minor-segments 8 :name "ring")`)

	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	if m := result.Meshes[0]; m.Object != "ring" || len(m.Vertices) == 0 {
		t.Errorf("unexpected torus mesh %q with %d vertices", m.Object, len(m.Vertices))
	}
	if result.Value != "(torus 1)" {
		t.Errorf("expected value (torus 1), got %q", result.Value)
	}
}

func TestE2EStatePersistsAcrossEvaluations(t *testing.T) {
	app := newApp()
	mustEvaluate(t, app, `(torus :major-segments 16 :minor-segments 8)`)
	result := mustEvaluate(t, app, `(cursor 1 1 1)`)

	if len(result.Events) != 1 || result.Events[0].Kind != "CursorMoved" {
		t.Errorf("expected a single CursorMoved event, got %+v", result.Events)
	}
	if len(result.Meshes) != 1 {
		t.Errorf("expected the torus to be meshed again, got %d meshes", len(result.Meshes))
	}
}

func TestE2EErrors(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantEvents int
		wantError  string
	}{
		{"syntax error", `(point 1 2 3`, 0, ""},
		{"undefined symbol", `(frobnicate)`, 0, ""},
		{"refused command", `(delete-selected)`, 0, "refused"},
		{"error after partial work", `(point 0 0 0) (point 1 2)`, 1, "expected x y z"},
		{"wrong object kind", `(intersect (point 0 0 0))`, 0, "not a torus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newApp().Evaluate(tt.source)
			if len(result.Errors) == 0 {
				t.Fatal("expected an error")
			}
			if !strings.Contains(result.Errors[0].Message, tt.wantError) {
				t.Errorf("error %q does not mention %q", result.Errors[0].Message, tt.wantError)
			}
			if len(result.Events) != tt.wantEvents {
				t.Errorf("expected %d events, got %d", tt.wantEvents, len(result.Events))
			}
			if len(result.Meshes) != 0 {
				t.Errorf("expected no meshes, got %d", len(result.Meshes))
			}
		})
	}
}

func TestSaveAndLoadScene(t *testing.T) {
	source, err := os.ReadFile("examples/patches.lisp")
	if err != nil {
		t.Fatalf("failed to read patches.lisp: %v", err)
	}
	first := newApp()
	mustEvaluate(t, first, string(source))
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := first.SaveScene(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := newApp()
	if err := second.LoadScene(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	want := kernel.Ask[[]scene.Point](first.kernel, kernel.AllPoints{})
	got := kernel.Ask[[]scene.Point](second.kernel, kernel.AllPoints{})
	if len(got) != len(want) {
		t.Errorf("expected %d points after load, got %d", len(want), len(got))
	}
	meshes, err := second.Meshes()
	if err != nil {
		t.Fatalf("meshes: %v", err)
	}
	if len(meshes) != 2 {
		t.Errorf("expected 2 meshes after load, got %d", len(meshes))
	}

	// Ids continue above the loaded ones.
	result := mustEvaluate(t, second, `(point 9 9 9)`)
	if result.Value == "(point 1)" {
		t.Errorf("loaded scene reused id 1")
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	if err := newApp().LoadScene(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing scene file")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.lisp")
	if err := os.WriteFile(script, []byte(`(point 1 2 3 :name "a")`), 0o644); err != nil {
		t.Fatal(err)
	}
	saved := filepath.Join(dir, "out.json")

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-save", saved, script}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr %s)", err, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "PointCreated") || !strings.Contains(out, "=> (point 1)") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(saved); err != nil {
		t.Errorf("scene not saved: %v", err)
	}

	stdout.Reset()
	if err := run([]string{"-json", script}, &stdout, &stderr); err != nil {
		t.Fatalf("run -json: %v", err)
	}
	if !strings.Contains(stdout.String(), `"kind": "PointCreated"`) {
		t.Errorf("unexpected JSON output:\n%s", stdout.String())
	}

	if err := run([]string{filepath.Join(dir, "nope.lisp")}, &stdout, &stderr); err == nil {
		t.Error("expected an error for a missing script")
	}
	bad := filepath.Join(dir, "bad.lisp")
	if err := os.WriteFile(bad, []byte(`(delete-selected)`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run([]string{bad}, &stdout, &stderr); err == nil {
		t.Error("expected an error for a failing script")
	}
}
