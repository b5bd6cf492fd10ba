// Package engine is the Lisp console of loft. It wraps zygomys in a
// sandboxed environment whose builtins issue kernel commands, and records
// the events those commands cause.
package engine

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/kernel"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in user code or a refused command.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result is the outcome of one evaluation. Events holds everything the
// kernel published while the script ran, including events of commands
// that completed before an error.
type Result struct {
	Value  string
	Events []events.Event
	Errors []EvalError
}

// Engine drives one kernel from Lisp source. Evaluations are serialized;
// the kernel state carries over from one evaluation to the next, but every
// evaluation gets a fresh zygomys sandbox.
type Engine struct {
	mu  sync.Mutex
	k   *kernel.Kernel
	log []events.Event
}

// New attaches an engine to k.
func New(k *kernel.Kernel) *Engine {
	e := &Engine{k: k}
	k.Bus().SubscribeAll(func(ev events.Event) { e.log = append(e.log, ev) })
	return e
}

// Kernel returns the kernel the engine drives.
func (e *Engine) Kernel() *kernel.Kernel { return e.k }

// Evaluate runs source to completion on the calling goroutine.
//
// Return semantics:
//   - On success: Result with the printed value of the last form
//   - On parse/eval failure: Result with Errors set and a nil error
//   - On fatal failure (deadline, panic): the partial Result and an error
func (e *Engine) Evaluate(ctx context.Context, source string) (res Result, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = nil
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine: panic during evaluation: %v", r)
		}
		res.Events = e.log
		e.log = nil
	}()

	// Empty source is a valid program that does nothing.
	if strings.TrimSpace(source) == "" {
		return res, nil
	}

	ctx, cancel := withDeadline(ctx)
	defer cancel()

	env := zygo.NewZlispSandbox()
	defer env.Stop()
	(&evaluation{ctx: ctx, e: e}).register(env)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		res.Errors = parseZygomysError(err)
		return res, nil
	}
	v, runErr := env.Run()
	if ctx.Err() != nil {
		return res, fmt.Errorf("%w after %v", ErrTimeout, context.Cause(ctx))
	}
	if runErr != nil {
		res.Errors = parseZygomysError(runErr)
		return res, nil
	}
	if v != nil {
		res.Value = v.SexpString(nil)
	}
	return res, nil
}

// IsTimeout reports whether err came from a deadline.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, p := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := p.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
