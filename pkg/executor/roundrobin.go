package executor

import (
	"io"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vnykmshr/goasync/pkg/common/validation"
	"github.com/vnykmshr/goasync/pkg/future"
)

// RoundRobin is a cooperative busy-polling scheduler: every pass polls each
// outstanding future once with a no-op waker, pushing still-pending futures
// to the back of the list. Progress relies on external state changing
// between passes (time passing, a result arriving), not on notifications,
// so a pass that makes no progress burns CPU.
//
// RoundRobin exists as a simplified mode for workloads where busy-polling
// is acceptable. It shares the Future contract with Executor but nothing
// else; the two disciplines are never mixed. Prefer Executor.
type RoundRobin struct {
	mu    sync.Mutex
	queue []future.Future
	log   *logrus.Logger
}

// NewRoundRobin creates an empty round-robin scheduler. An optional logger
// receives task abort reports; nil discards them.
func NewRoundRobin(log *logrus.Logger) *RoundRobin {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &RoundRobin{log: log}
}

// Spawn adds a future to the back of the list. Safe for concurrent use and
// never blocks beyond the queue push.
func (r *RoundRobin) Spawn(f future.Future) error {
	if err := validation.ValidateNotNil("executor", "future", f); err != nil {
		return err
	}
	r.mu.Lock()
	r.queue = append(r.queue, f)
	r.mu.Unlock()
	return nil
}

// RunOnce makes a single pass: each future currently in the list is polled
// exactly once, in FIFO order. Resolved and panicking futures are dropped;
// pending ones keep their relative order. Returns the number of futures
// still outstanding.
func (r *RoundRobin) RunOnce() int {
	r.mu.Lock()
	pass := r.queue
	r.queue = nil
	r.mu.Unlock()

	ctx := future.NewContext(future.NoopWaker())

	var pending []future.Future
	for _, f := range pass {
		if p, ok := r.pollOne(f, ctx); ok && !p.IsReady() {
			pending = append(pending, f)
		}
	}

	r.mu.Lock()
	// Futures spawned during the pass land behind the survivors.
	r.queue = append(pending, r.queue...)
	n := len(r.queue)
	r.mu.Unlock()
	return n
}

// Run repeatedly makes passes until the list is empty. A future that never
// resolves keeps Run spinning indefinitely.
func (r *RoundRobin) Run() {
	for r.RunOnce() > 0 {
	}
}

// Len returns the number of outstanding futures.
func (r *RoundRobin) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// pollOne isolates a panicking future so the rest of the pass survives.
func (r *RoundRobin) pollOne(f future.Future, ctx future.Context) (p future.Poll, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.WithFields(logrus.Fields{
				"panic": rec,
				"stack": string(debug.Stack()),
			}).Error("task aborted: panic during poll")
			ok = false
		}
	}()
	return f.Poll(ctx), true
}
