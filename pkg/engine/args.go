package engine

import (
	"fmt"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/scene"
)

// ---------------------------------------------------------------------------
// Scene references as Sexp values
// ---------------------------------------------------------------------------

// sexpRef carries a scene object between builtins.
type sexpRef struct {
	ref scene.ObjectRef
}

func (r *sexpRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %d)", r.ref.Kind, r.ref.ID)
}
func (r *sexpRef) Type() *zygo.RegisteredType { return nil }

func refOf(kind scene.ObjectKind, id ids.ID) *sexpRef {
	return &sexpRef{ref: scene.ObjectRef{Kind: kind, ID: id}}
}

func refList(rs []scene.ObjectRef) zygo.Sexp {
	items := make([]zygo.Sexp, len(rs))
	for i, r := range rs {
		items[i] = &sexpRef{ref: r}
	}
	return zygo.MakeList(items)
}

// ---------------------------------------------------------------------------
// Keyword arguments
// ---------------------------------------------------------------------------

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds a mixed positional and keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	out := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		switch {
		case !ok:
			out.positional = append(out.positional, args[i])
		case i+1 < len(args):
			out.kw[name] = args[i+1]
			i++
		default:
			// trailing keyword is a flag
			out.kw[name] = &zygo.SexpBool{Val: true}
		}
	}
	return out
}

func (a kwArgs) number(name string, def float64) (float64, error) {
	v, ok := a.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

func (a kwArgs) integer(name string, def int) (int, error) {
	f, err := a.number(name, float64(def))
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%s: expected integer, got %g", name, f)
	}
	return int(f), nil
}

func (a kwArgs) text(name string) (string, error) {
	v, ok := a.kw[name]
	if !ok {
		return "", nil
	}
	s, err := toString(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

func (a kwArgs) flag(name string) (bool, error) {
	v, ok := a.kw[name]
	if !ok {
		return false, nil
	}
	b, ok := v.(*zygo.SexpBool)
	if !ok {
		return false, fmt.Errorf("%s: expected boolean, got %s", name, v.SexpString(nil))
	}
	return b.Val, nil
}

// ---------------------------------------------------------------------------
// Value extraction
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec reads three numbers starting at args[0].
func toVec(args []zygo.Sexp) (v3.Vec, error) {
	if len(args) != 3 {
		return v3.Vec{}, fmt.Errorf("expected x y z, got %d values", len(args))
	}
	var c [3]float64
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return v3.Vec{}, err
		}
		c[i] = f
	}
	return v3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

func toRef(s zygo.Sexp, kinds ...scene.ObjectKind) (scene.ObjectRef, error) {
	r, ok := s.(*sexpRef)
	if !ok {
		return scene.ObjectRef{}, fmt.Errorf("expected object reference, got %T (%s)", s, s.SexpString(nil))
	}
	if len(kinds) == 0 {
		return r.ref, nil
	}
	for _, k := range kinds {
		if r.ref.Kind == k {
			return r.ref, nil
		}
	}
	return scene.ObjectRef{}, fmt.Errorf("%s is not a %s", r.ref, kinds[0])
}

// toRefs flattens references and lists of references.
func toRefs(args []zygo.Sexp, kinds ...scene.ObjectKind) ([]scene.ObjectRef, error) {
	var out []scene.ObjectRef
	for _, a := range args {
		items := []zygo.Sexp{a}
		if lst, err := sexpListToSlice(a); err == nil {
			items = lst
		}
		for _, it := range items {
			r, err := toRef(it, kinds...)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
	}
	return out, nil
}

func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}
