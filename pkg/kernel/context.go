package kernel

import (
	"fmt"

	"github.com/chazu/loft/pkg/config"
	"github.com/chazu/loft/pkg/events"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/scene"
)

// Context is a short-lived borrow of the kernel's state handed to one
// command or reactor. Events emitted through it are published after the
// borrow ends.
type Context struct {
	Scene  *scene.Scene
	IDs    *ids.Generator
	Config config.Config

	events []events.Event
}

// Emit queues events for publication.
func (c *Context) Emit(evs ...events.Event) {
	c.events = append(c.events, evs...)
}

// NewID allocates an id for an entity created inside the borrow.
func (c *Context) NewID() ids.ID {
	return c.IDs.Next()
}

var allKinds = []scene.ObjectKind{
	scene.KindPoint, scene.KindTorus, scene.KindBezierC0, scene.KindBezierC2,
	scene.KindBezierInt, scene.KindSurfaceC0, scene.KindSurfaceC2,
	scene.KindGregory, scene.KindIntersection,
}

// fresh checks that id was issued by the generator and is not yet held by
// any entity.
func (c *Context) fresh(id ids.ID) error {
	if id.IsZero() || id >= c.IDs.Peek() {
		return fmt.Errorf("id %d was never allocated: %w", id, ErrPrecondition)
	}
	for _, kind := range allKinds {
		if c.Scene.Exists(scene.ObjectRef{Kind: kind, ID: id}) {
			return fmt.Errorf("id %d already names a %s: %w", id, kind, ErrPrecondition)
		}
	}
	return nil
}

func (c *Context) exists(ref scene.ObjectRef) error {
	if !c.Scene.Exists(ref) {
		return fmt.Errorf("%s: %w", ref, ErrNotFound)
	}
	return nil
}

func (c *Context) pointsExist(pts []ids.ID) error {
	for _, id := range pts {
		if err := c.exists(scene.PointRef(id)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) selectionChanged() {
	c.Emit(events.SelectionChanged{Selection: append([]scene.ObjectRef(nil), c.Scene.Selection...)})
}

func nameOr(name string, kind string, id ids.ID) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s %d", kind, id)
}
