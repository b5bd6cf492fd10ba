package kernel

import "errors"

var (
	// ErrPrecondition marks a command refused because its input does not
	// fit the current scene.
	ErrPrecondition = errors.New("precondition failed")
	// ErrNotFound marks a command naming an entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoConvergence marks a numerical search that gave up.
	ErrNoConvergence = errors.New("no convergence")
)
