// Command loft runs a console script against a fresh scene and prints the
// event stream it produced.
//
//	loft [-config loft.toml] [-load in.json] [-save out.json] [-json] script.lisp
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chazu/loft/pkg/config"
	"github.com/chazu/loft/pkg/kernel"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "loft:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("loft", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML configuration file")
	loadPath := fs.String("load", "", "scene file to load before the script")
	savePath := fs.String("save", "", "scene file to write after the script")
	asJSON := fs.Bool("json", false, "print the result as JSON, meshes included")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			return err
		}
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	kernel.SetLogger(log.With("component", "kernel"))

	app := NewApp(cfg, log)
	if *loadPath != "" {
		if err := app.LoadScene(*loadPath); err != nil {
			return err
		}
	}

	var source []byte
	switch fs.NArg() {
	case 0:
	case 1:
		if source, err = os.ReadFile(fs.Arg(0)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("expected one script, got %d", fs.NArg())
	}

	result := app.Evaluate(string(source))
	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printResult(stdout, result)
	}

	if *savePath != "" {
		if err := app.SaveScene(*savePath); err != nil {
			return err
		}
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d evaluation errors", len(result.Errors))
	}
	return nil
}

func printResult(w io.Writer, r EvalResult) {
	for _, e := range r.Events {
		fmt.Fprintf(w, "%s %+v\n", e.Kind, e.Event)
	}
	for _, m := range r.Meshes {
		fmt.Fprintf(w, "mesh %s: %d vertices, %d triangles\n", m.Object, len(m.Vertices)/3, triangles(m))
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "error %d:%d: %s\n", e.Line, e.Col, e.Message)
	}
	if r.Value != "" {
		fmt.Fprintln(w, "=>", r.Value)
	}
}

func triangles(m MeshData) int {
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return len(m.Vertices) / 9
}
