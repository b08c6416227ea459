package executor

import (
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/vnykmshr/goasync/pkg/future"
)

// Task scheduling states. Transitions:
//
//	idle    --Wake-->  queued          (enqueued by the waker)
//	queued  --Run-->   running         (executor popped it)
//	running --Wake-->  woken           (wake arrived mid-poll)
//	running --pending--> idle          (suspended, awaiting a wake)
//	woken   --pending--> queued        (re-enqueued after the poll)
//	running/woken --ready--> done      (dropped, wakes ignored)
const (
	stateIdle uint32 = iota
	stateQueued
	stateRunning
	stateWoken
	stateDone
)

// task binds one top-level future to its re-enqueue mechanism. It is shared
// by reference between the executor's ready queue and every wake handle
// derived from it, since a handle may outlive the task's stay in the queue.
type task struct {
	exec *Executor

	// mu guarantees at most one poll is in flight, even if a waker
	// misbehaves and the task ends up queued twice.
	mu  sync.Mutex
	fut future.Future

	state atomic.Uint32
}

// Wake implements future.Waker. It is safe to call from any goroutine, any
// number of times; a ready task is never enqueued twice concurrently, and a
// wake arriving mid-poll schedules exactly one future re-poll.
func (t *task) Wake() {
	for {
		switch s := t.state.Load(); s {
		case stateIdle:
			if t.state.CompareAndSwap(stateIdle, stateQueued) {
				t.exec.countWake()
				t.exec.enqueue(t)
				return
			}
		case stateRunning:
			if t.state.CompareAndSwap(stateRunning, stateWoken) {
				t.exec.countWake()
				return
			}
		default:
			// Already queued, already flagged woken, or done.
			return
		}
	}
}

// poll drives the wrapped future one step under the task mutex, recovering
// a panicking future so the executor can isolate the failure.
func (t *task) poll() (p future.Poll, recovered any, stack []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			recovered = r
			stack = debug.Stack()
		}
	}()
	p = t.fut.Poll(future.NewContext(t))
	return
}

// finish marks the task resolved and releases the future so late wakes
// cannot reach it.
func (t *task) finish() {
	t.state.Store(stateDone)
	t.mu.Lock()
	t.fut = nil
	t.mu.Unlock()
}
