/*
Package future defines the suspendable-computation contract used by the
goasync executors: a Future is advanced by polling and, when it cannot make
progress, registers interest in being resumed through a Waker.

The contract has one hard rule. When Poll returns Pending, the future must
have arranged, directly or by delegating to an inner future, for the
Waker carried by the poll Context to be invoked once re-polling could make
progress. A future that forgets this rule is never polled again and its
task never completes.

Basic shape of a suspension source:

	func (s *source) Poll(ctx future.Context) future.Poll {
		if s.done() {
			return future.Ready(s.result())
		}
		s.storeWaker(ctx.Waker()) // invoked later by some goroutine
		return future.Pending
	}

Composition uses the adapters:

	f := future.Then(timer.After(10*time.Millisecond), func(any) future.Future {
		return future.Value("done")
	})

Errors are values here: a future that can fail resolves to a value carrying
its error, and the caller unpacks it. The executor only distinguishes
ready from pending.
*/
package future
