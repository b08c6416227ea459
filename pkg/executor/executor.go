package executor

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	gaerrors "github.com/vnykmshr/goasync/pkg/common/errors"
	"github.com/vnykmshr/goasync/pkg/common/validation"
	"github.com/vnykmshr/goasync/pkg/future"
	"github.com/vnykmshr/goasync/pkg/metrics"
)

// Config holds configuration options for creating an Executor.
type Config struct {
	// QueueCapacity is the initial capacity of the ready queue. The queue
	// itself is unbounded; this only pre-sizes the backing storage.
	// Zero means the default of 64; negative values are rejected.
	QueueCapacity int

	// Logger receives task abort reports. If nil, logging is discarded.
	Logger *logrus.Logger

	// MetricsName labels this executor's metrics. Defaults to "default"
	// when metrics are enabled.
	MetricsName string

	// Metrics configures Prometheus instrumentation. Disabled by default.
	Metrics metrics.Config
}

// Executor is a wake-driven scheduler. Futures submitted via Spawn are
// wrapped in tasks; a task enters the ready queue only when freshly
// submitted or when its wake handle fires. Run pops tasks one at a time and
// polls each exactly once per dequeue, so no CPU is spent on a task unless
// progress is plausible.
//
// One goroutine calls Run; Spawn and wake handles may be used from any
// goroutine. At most one poll is ever in flight per task.
type Executor struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []*task // FIFO ready queue, unbounded
	live   int     // spawned tasks that have not yet resolved
	closed bool

	running atomic.Bool

	log      *logrus.Logger
	name     string
	registry atomic.Pointer[metrics.Registry]
}

// New creates an executor with default configuration.
func New() *Executor {
	return newExecutor(Config{})
}

// NewWithConfig creates an executor with custom configuration.
func NewWithConfig(cfg Config) (*Executor, error) {
	if cfg.QueueCapacity != 0 {
		if err := validation.ValidatePositive("executor", "queueCapacity", cfg.QueueCapacity); err != nil {
			return nil, err
		}
	}
	return newExecutor(cfg), nil
}

func newExecutor(cfg Config) *Executor {
	capacity := cfg.QueueCapacity
	if capacity <= 0 {
		capacity = 64
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	name := cfg.MetricsName
	if name == "" {
		name = "default"
	}

	e := &Executor{
		queue: make([]*task, 0, capacity),
		log:   log,
		name:  name,
	}
	e.cond = sync.NewCond(&e.mu)

	if reg := metrics.RegistryFor(cfg.Metrics); reg != nil {
		e.registry.Store(reg)
	}

	return e
}

// Spawn submits a future for execution. It wraps the future in a task and
// pushes it onto the ready queue; this is the only way to introduce new
// work. Spawn never blocks beyond the cost of the queue push and is safe
// for concurrent use. After Close it returns ErrClosed.
func (e *Executor) Spawn(f future.Future) error {
	if err := validation.ValidateNotNil("executor", "future", f); err != nil {
		return err
	}

	t := &task{exec: e, fut: f}
	t.state.Store(stateQueued)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return gaerrors.ErrClosed
	}
	e.live++
	e.queue = append(e.queue, t)
	e.mu.Unlock()
	e.cond.Signal()

	if reg := e.registry.Load(); reg != nil {
		reg.TasksSpawned.WithLabelValues(e.name).Inc()
		reg.TasksLive.WithLabelValues(e.name).Inc()
	}
	return nil
}

// Run drives all submitted work to completion. It blocks until every
// spawned future has resolved and the ready queue is empty, or until Close
// is called and the queue drains. A future that never resolves keeps Run
// blocked indefinitely; detecting that is the caller's responsibility.
//
// Run must not be called twice at the same time.
func (e *Executor) Run() error {
	if !e.running.CompareAndSwap(false, true) {
		return gaerrors.ErrAlreadyRunning
	}
	defer e.running.Store(false)

	e.mu.Lock()
	for {
		for len(e.queue) == 0 && e.live > 0 && !e.closed {
			e.cond.Wait()
		}
		if len(e.queue) == 0 {
			break
		}

		t := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.mu.Unlock()

		e.observeQueueDepth()
		e.runTask(t)

		e.mu.Lock()
	}
	e.mu.Unlock()
	return nil
}

// Close stops admission of new work. Run returns once the ready queue
// drains; tasks still suspended at that point are abandoned, and a late
// wake retires the task instead of re-queuing it.
func (e *Executor) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.cond.Broadcast()
}

// QueueDepth returns the current number of tasks in the ready queue.
func (e *Executor) QueueDepth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// Live returns the number of spawned tasks that have not yet resolved.
func (e *Executor) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.live
}

// runTask polls one task and decides between discard and re-schedule.
func (e *Executor) runTask(t *task) {
	t.state.Store(stateRunning)

	p, recovered, stack := t.poll()

	if reg := e.registry.Load(); reg != nil {
		reg.TaskPolls.WithLabelValues(e.name).Inc()
	}

	if recovered != nil {
		// Fatal to this task only; queue and siblings are unaffected.
		e.log.WithFields(logrus.Fields{
			"panic": recovered,
			"stack": string(stack),
		}).Error("task aborted: panic during poll")
		t.finish()
		e.taskDone(true)
		return
	}

	if p.IsReady() {
		t.finish()
		e.taskDone(false)
		return
	}

	// Not ready. The future has arranged a wake; park the task unless a
	// wake already arrived mid-poll, in which case re-enqueue now.
	if t.state.CompareAndSwap(stateRunning, stateIdle) {
		return
	}
	if t.state.CompareAndSwap(stateWoken, stateQueued) {
		e.enqueue(t)
	}
}

// enqueue pushes a woken task back onto the ready queue. Called from
// arbitrary goroutines via task.Wake. After Close the task is retired
// instead, so abandoned tasks are not held alive by their wake sources.
func (e *Executor) enqueue(t *task) {
	e.mu.Lock()
	if e.closed {
		e.live--
		e.mu.Unlock()
		t.finish()
		if reg := e.registry.Load(); reg != nil {
			reg.TasksLive.WithLabelValues(e.name).Dec()
		}
		return
	}
	e.queue = append(e.queue, t)
	e.mu.Unlock()
	e.cond.Signal()
	e.observeQueueDepth()
}

// taskDone retires one live task. When the count reaches zero and the
// queue is empty, Run's wait loop observes it and returns.
func (e *Executor) taskDone(aborted bool) {
	e.mu.Lock()
	e.live--
	e.mu.Unlock()

	if reg := e.registry.Load(); reg != nil {
		reg.TasksLive.WithLabelValues(e.name).Dec()
		if aborted {
			reg.TasksAborted.WithLabelValues(e.name).Inc()
		} else {
			reg.TasksCompleted.WithLabelValues(e.name).Inc()
		}
	}
}

func (e *Executor) countWake() {
	if reg := e.registry.Load(); reg != nil {
		reg.TaskWakes.WithLabelValues(e.name).Inc()
	}
}

func (e *Executor) observeQueueDepth() {
	if reg := e.registry.Load(); reg != nil {
		reg.QueueDepth.WithLabelValues(e.name).Set(float64(e.QueueDepth()))
	}
}

var _ metrics.Instrumentable = (*Executor)(nil)

// EnableMetrics enables metrics collection for this executor.
func (e *Executor) EnableMetrics(config metrics.Config) error {
	reg := metrics.RegistryFor(config)
	if reg == nil {
		e.DisableMetrics()
		return nil
	}
	e.registry.Store(reg)
	return nil
}

// DisableMetrics disables metrics collection for this executor.
func (e *Executor) DisableMetrics() {
	e.registry.Store(nil)
}

// MetricsEnabled returns true if metrics are currently enabled.
func (e *Executor) MetricsEnabled() bool {
	return e.registry.Load() != nil
}
