/*
Package goasync provides a minimal wake-driven future executor for Go
applications, with polling futures, timer suspension sources, and async
request/response clients.

Futures (pkg/future):
  - Future: a suspendable computation advanced by polling
  - Waker: a cloneable, thread-safe token that resumes a suspended task
  - Adapters: Func, Value, Then, Map for composing futures

Execution (pkg/executor):
  - Executor: wake-driven scheduler that polls a task only when notified
  - RoundRobin: cooperative busy-polling scheduler for simple workloads

Suspension sources (pkg/timer, pkg/kvstore):
  - timer: Delay and cron-based deadlines backed by timing goroutines
  - kvstore: Redis-backed get/set requests exposed as futures

Example usage:

	import (
		"github.com/vnykmshr/goasync/pkg/executor"
		"github.com/vnykmshr/goasync/pkg/future"
		"github.com/vnykmshr/goasync/pkg/timer"
	)

	exec := executor.New()
	exec.Spawn(future.Then(timer.After(10*time.Millisecond), func(any) future.Future {
		return future.Value("done")
	}))
	exec.Run() // returns once every spawned future has resolved
*/
package goasync
