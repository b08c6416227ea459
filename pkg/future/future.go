package future

// A Waker is a handle for resuming a suspended task. It is the notification
// half of the suspend/resume contract: a Future that returns Pending must
// have arranged for the Waker supplied in its poll Context to be invoked
// once progress becomes possible again.
//
// Wakers are plain interface values and therefore cheap to copy and pass
// across goroutines. Implementations must be safe for concurrent use:
// Wake may be called from any goroutine, at any time, any number of times.
// Redundant wakes are harmless; they cost at most one extra poll.
type Waker interface {
	// Wake signals that the associated task should be polled again.
	// It must not block beyond the cost of a queue push.
	Wake()
}

// Context carries the per-poll state handed to a Future: the Waker bound to
// the task currently driving it. The Waker identity can change between
// polls, because a pending Future can move between tasks; suspension
// sources must always retain the most recent Waker they were polled with.
type Context struct {
	waker Waker
}

// NewContext creates a poll context carrying the given waker.
func NewContext(w Waker) Context {
	return Context{waker: w}
}

// Waker returns the wake handle for the current poll.
func (c Context) Waker() Waker {
	return c.waker
}

// Poll is the outcome of a single poll call: either a final value or an
// indication that the future is not ready yet.
type Poll struct {
	value any
	ready bool
}

// Pending is the Poll returned by a future that cannot make progress yet.
var Pending = Poll{}

// Ready wraps a final value. Value-level errors belong inside the value
// itself; the executor never inspects it.
func Ready(v any) Poll {
	return Poll{value: v, ready: true}
}

// IsReady reports whether the future resolved.
func (p Poll) IsReady() bool {
	return p.ready
}

// Value returns the resolved value. It is only meaningful when IsReady
// returns true.
func (p Poll) Value() any {
	return p.value
}

// A Future is a suspendable computation: a state machine advanced stepwise
// by polling, possibly pausing when it cannot yet make progress.
//
// Poll attempts to resolve the future to a final value. If the value is not
// yet available, Poll returns Pending, and by doing so the implementation
// promises that the Waker available through ctx (or a Waker derived from
// it) will be invoked once polling again could make progress. Breaking that
// promise stalls the owning task forever; the runtime cannot detect it.
//
// Poll should return quickly and must never block. Work that takes a while
// belongs in a background goroutine that wakes the task when finished.
//
// A Future is not safe for concurrent polling; the runtime guarantees at
// most one Poll call is in flight per future. Once a future has resolved,
// it must not be polled again.
type Future interface {
	Poll(ctx Context) Poll
}

// noopWaker ignores wakes. Only valid under a scheduler that re-polls
// unconditionally, where progress depends on polling cadence rather than
// notification.
type noopWaker struct{}

func (noopWaker) Wake() {}

// NoopWaker returns a waker that does nothing when invoked.
func NoopWaker() Waker {
	return noopWaker{}
}
