/*
Package executor provides run-to-completion schedulers for polling futures.

Two scheduling disciplines are offered. Executor is the primary, wake-driven
one: a task is polled only when freshly spawned or when its wake handle
fires, so idle tasks cost nothing. RoundRobin is a simplified busy-polling
mode that re-polls every outstanding future each pass; it is documented
separately and never mixed with Executor.

Basic usage:

	exec := executor.New()

	exec.Spawn(future.Then(timer.After(10*time.Millisecond), func(any) future.Future {
		fmt.Println("timer fired")
		return future.Value(nil)
	}))

	exec.Run() // blocks until every spawned future resolves

Scheduling Model:

One goroutine calls Run and becomes the executor goroutine; it advances at
most one task at a time, so no two polls of the same task (or of different
tasks) ever overlap. Wake handles may be invoked from arbitrary goroutines
(timer goroutines, network callbacks) and only pay the cost of a queue
push. The ready queue is FIFO, though re-enqueue timing from wakes can
interleave orders across tasks.

Wake Semantics:

Each task carries an atomic scheduling state so that:
  - concurrent wakes never enqueue a task twice,
  - a wake arriving while the task is mid-poll schedules exactly one
    re-poll after the current one finishes,
  - wakes after a task resolves are ignored.

Redundant wakes are harmless; at worst they cause one extra poll that finds
the future still pending.

Failure Isolation:

A future that panics during poll is fatal to its task only: the panic is
recovered, logged with the stack, and the task is dropped. The queue and
sibling tasks are unaffected. There is no retry; retry policy belongs inside
a future's own state machine.

Liveness:

Run returns once every spawned future has resolved. The one obligation on
future implementations is the suspend/resume contract from pkg/future: a
future returning Pending must have arranged a wake. A future that breaks
the contract, or genuinely never resolves, keeps Run blocked; there are no
timeouts and no cancellation in this core.

Metrics:

Executors can publish Prometheus metrics (tasks spawned, completed, aborted,
polls, wakes, queue depth) via pkg/metrics:

	exec, err := executor.NewWithConfig(executor.Config{
		MetricsName: "ingest",
		Metrics:     metrics.Config{Enabled: true, Registry: reg},
	})
*/
package executor
