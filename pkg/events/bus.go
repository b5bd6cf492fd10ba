// Package events defines the typed event stream published by the kernel and
// the synchronous bus that carries it.
package events

// Handler consumes one event.
type Handler func(Event)

// Bus fans events out to subscribers synchronously. Handlers for a kind run
// in subscription order, and handlers registered with SubscribeAll run after
// the kind-specific ones. A handler may publish further events; they are
// delivered before the outer Publish returns.
//
// Bus is not safe for concurrent use.
type Bus struct {
	handlers [kindCount][]Handler
	all      []Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for events of kind k.
func (b *Bus) Subscribe(k Kind, h Handler) {
	if k < 0 || k >= kindCount {
		panic("events: unknown kind " + k.String())
	}
	b.handlers[k] = append(b.handlers[k], h)
}

// SubscribeAll registers h for every event.
func (b *Bus) SubscribeAll(h Handler) {
	b.all = append(b.all, h)
}

// On registers a typed handler for the event type E.
func On[E Event](b *Bus, fn func(E)) {
	var zero E
	b.Subscribe(zero.Kind(), func(e Event) {
		if ev, ok := e.(E); ok {
			fn(ev)
		}
	})
}

// Publish delivers e to every interested handler.
func (b *Bus) Publish(e Event) {
	// Handlers subscribed during delivery only see later events.
	for _, h := range b.handlers[e.Kind()] {
		h(e)
	}
	for _, h := range b.all {
		h(e)
	}
}

// PublishAll delivers events in order.
func (b *Bus) PublishAll(evs []Event) {
	for _, e := range evs {
		b.Publish(e)
	}
}
