// Package context provides small context helpers shared by goasync
// components that run commands on background goroutines.
package context

import (
	"context"
	"time"
)

// WithTimeoutOrCancel bounds one command: the returned context ends when
// the parent is canceled or when the timeout elapses, whichever comes
// first.
func WithTimeoutOrCancel(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// IsTimedOut reports whether the context ended because its deadline
// passed, as opposed to an explicit cancel. Callers use it to map a
// command failure onto the timeout sentinel.
func IsTimedOut(ctx context.Context) bool {
	return ctx.Err() == context.DeadlineExceeded
}
