// Package ids issues the stable identifiers shared by every scene entity.
// Identifiers are strictly increasing for the lifetime of a Generator and
// are never reused, even after the entity that held one is deleted.
package ids

import "strconv"

// ID identifies a scene entity. The zero ID is never issued.
type ID uint64

// IsZero reports whether id is the unset identifier.
func (id ID) IsZero() bool {
	return id == 0
}

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Generator is a monotonic counter. It is not safe for concurrent use; the
// kernel serialises every access through its scene borrow.
type Generator struct {
	next ID
}

// NewGenerator returns a generator whose first issued ID is 1.
func NewGenerator() *Generator {
	return &Generator{next: 1}
}

// Next returns the next ID and advances the counter.
func (g *Generator) Next() ID {
	if g.next == 0 {
		g.next = 1
	}
	id := g.next
	g.next++
	return id
}

// Peek returns the ID that the next call to Next will issue.
func (g *Generator) Peek() ID {
	if g.next == 0 {
		return 1
	}
	return g.next
}

// Reserve advances the counter past id so that an externally supplied
// identifier (for example one read from a scene file) is never issued again.
func (g *Generator) Reserve(id ID) {
	if id >= g.Peek() {
		g.next = id + 1
	}
}
