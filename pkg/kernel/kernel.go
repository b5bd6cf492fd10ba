// Package kernel is the single entry point to the modelling scene. Callers
// present typed requests: a Command mutates the scene and publishes events,
// a Query reads it, an Operation touches kernel services such as the id
// generator. Reactors subscribed at construction keep derived data (curve
// polygons, Gregory patches, trimming textures) in step with the points
// they depend on.
//
// The kernel is single-threaded. Requests must not be issued concurrently.
package kernel

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/chazu/loft/pkg/config"
	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/scene"
)

// Command is a request that may mutate the scene. The set is closed.
type Command interface{ command() }

// Query is a read-only request. The set is closed.
type Query interface{ query() }

// Operation is a request against kernel services. The set is closed.
type Operation interface{ operation() }

type (
	commandFunc   func(*Context, Command) error
	queryFunc     func(*scene.Scene, Query) any
	operationFunc func(*Kernel, Operation) any
)

// Kernel owns the scene, the id generator and the event bus.
type Kernel struct {
	scene *scene.Scene
	ids   *ids.Generator
	bus   *events.Bus
	cfg   config.Config

	borrowed bool
	depth    int
	pending  []events.Event
	draining bool

	commands   map[reflect.Type]commandFunc
	queries    map[reflect.Type]queryFunc
	operations map[reflect.Type]operationFunc
}

// New returns a kernel over an empty scene with every handler and reactor
// registered.
func New(cfg config.Config) *Kernel {
	k := &Kernel{
		scene:      scene.New(),
		ids:        ids.NewGenerator(),
		bus:        events.NewBus(),
		cfg:        cfg,
		commands:   make(map[reflect.Type]commandFunc),
		queries:    make(map[reflect.Type]queryFunc),
		operations: make(map[reflect.Type]operationFunc),
	}
	registerCommands(k)
	registerQueries(k)
	registerOperations(k)
	registerReactors(k)
	return k
}

// Bus returns the event bus. Shell observers subscribe here; they run after
// the kernel's own reactors for the same event.
func (k *Kernel) Bus() *events.Bus { return k.bus }

// Config returns the configuration the kernel was built with.
func (k *Kernel) Config() config.Config { return k.cfg }

func handle[C Command](k *Kernel, fn func(*Context, C) error) {
	k.commands[reflect.TypeFor[C]()] = func(ctx *Context, c Command) error {
		return fn(ctx, c.(C))
	}
}

func answer[Q Query, R any](k *Kernel, fn func(*scene.Scene, Q) R) {
	k.queries[reflect.TypeFor[Q]()] = func(s *scene.Scene, q Query) any {
		return fn(s, q.(Q))
	}
}

func perform[O Operation, R any](k *Kernel, fn func(*Kernel, O) R) {
	k.operations[reflect.TypeFor[O]()] = func(k *Kernel, o Operation) any {
		return fn(k, o.(O))
	}
}

func requestName(v any) string {
	name := reflect.TypeOf(v).String()
	return strings.TrimPrefix(name, "kernel.")
}

// borrow hands out the scene for one mutation window.
func (k *Kernel) borrow() *Context {
	if k.borrowed {
		panic("kernel: scene borrowed twice")
	}
	k.borrowed = true
	return &Context{Scene: k.scene, IDs: k.ids, Config: k.cfg}
}

func (k *Kernel) release(ctx *Context) []events.Event {
	k.borrowed = false
	evs := ctx.events
	ctx.Scene, ctx.IDs, ctx.events = nil, nil, nil
	return evs
}

// mutate runs fn inside a borrow and publishes what it emitted once the
// borrow is released. Nothing is published when fn fails.
func (k *Kernel) mutate(fn func(*Context) error) error {
	ctx := k.borrow()
	err := fn(ctx)
	evs := k.release(ctx)
	if err != nil {
		return err
	}
	k.publish(evs)
	return nil
}

// publish delivers events in order. Events emitted while an earlier event
// is being delivered are queued behind it, so every subscriber sees a
// primary event before the secondary events it causes.
func (k *Kernel) publish(evs []events.Event) {
	k.pending = append(k.pending, evs...)
	if k.draining {
		return
	}
	k.draining = true
	defer func() {
		k.draining = false
		k.pending = nil
	}()
	for len(k.pending) > 0 {
		e := k.pending[0]
		k.pending = k.pending[1:]
		k.bus.Publish(e)
	}
}

// Execute runs a command. A command that is refused leaves the scene
// untouched and publishes nothing; the refusal is logged at debug level.
func (k *Kernel) Execute(c Command) {
	h, ok := k.commands[reflect.TypeOf(c)]
	if !ok {
		panic(fmt.Sprintf("kernel: no handler for %T", c))
	}
	k.depth++
	defer func() { k.depth-- }()

	if err := k.mutate(func(ctx *Context) error { return h(ctx, c) }); err != nil {
		Logger().Debug("command refused", "command", requestName(c), "err", err)
		return
	}
	if k.depth == 1 && k.cfg.CheckInvariants {
		k.checkInvariants(c)
	}
}

func (k *Kernel) checkInvariants(c Command) {
	if errs := scene.Errors(k.scene.Validate()); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		panic(fmt.Sprintf("kernel: invariants broken after %s:\n%s", requestName(c), strings.Join(msgs, "\n")))
	}
}

// Query answers q from the current scene.
func (k *Kernel) Query(q Query) any {
	h, ok := k.queries[reflect.TypeOf(q)]
	if !ok {
		panic(fmt.Sprintf("kernel: no handler for %T", q))
	}
	if k.borrowed {
		panic("kernel: query during a mutation")
	}
	return h(k.scene, q)
}

// Ask runs q and asserts the type of its answer.
func Ask[R any](k *Kernel, q Query) R {
	return k.Query(q).(R)
}

// Operate runs an operation.
func (k *Kernel) Operate(o Operation) any {
	h, ok := k.operations[reflect.TypeOf(o)]
	if !ok {
		panic(fmt.Sprintf("kernel: no handler for %T", o))
	}
	if k.borrowed {
		panic("kernel: operation during a mutation")
	}
	return h(k, o)
}

// NewID allocates an id.
func (k *Kernel) NewID() ids.ID {
	return k.Operate(NewIDOp{}).(ids.ID)
}

// NewIDOp allocates the next id.
type NewIDOp struct{}

func (NewIDOp) operation() {}

func registerOperations(k *Kernel) {
	perform(k, func(k *Kernel, _ NewIDOp) ids.ID { return k.ids.Next() })
}
