package engine

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// EvalTimeout bounds an evaluation whose context carries no deadline.
const EvalTimeout = 5 * time.Second

// ErrTimeout reports an evaluation that ran past its deadline.
var ErrTimeout = errors.New("engine: evaluation timed out")

// withDeadline applies EvalTimeout unless ctx already has a deadline.
func withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, EvalTimeout)
}

// guard refuses kernel work once ctx is done. The kernel runs on the
// caller's goroutine, so a script is stopped at its next builtin call
// rather than preempted.
func guard(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w (%v)", ErrTimeout, err)
	}
	return nil
}
