package timer

import (
	"sync"
	"time"

	"github.com/vnykmshr/goasync/pkg/future"
)

// Delay is a future that resolves once a deadline passes. It is the
// canonical suspension source: the first poll that finds the deadline still
// ahead stores the caller's waker and spawns a single timing goroutine,
// which sleeps until the deadline and then wakes whichever waker is stored
// at that moment.
//
// The stored waker is replaceable because a pending Delay can move between
// tasks across polls; each poll refreshes the slot so the timing goroutine
// never wakes a stale task. The slot is read and written under one mutex,
// so the goroutine can never observe a half-updated handle.
//
// A Delay resolves to its deadline (a time.Time). It is discarded after
// resolving; polling it again is a caller error.
type Delay struct {
	when   time.Time
	source string

	mu    sync.Mutex
	waker future.Waker
	armed bool

	now func() time.Time // stubbed in tests
}

// NewDelay creates a delay that resolves once the given instant has passed.
// A deadline already in the past resolves on the very first poll without
// spawning anything.
func NewDelay(when time.Time) *Delay {
	return &Delay{when: when, source: "delay", now: time.Now}
}

// After creates a delay that resolves d from now.
func After(d time.Duration) *Delay {
	return NewDelay(time.Now().Add(d))
}

// Deadline returns the instant this delay resolves at.
func (d *Delay) Deadline() time.Time {
	return d.when
}

// Armed reports whether a timing goroutine has been spawned for this delay.
func (d *Delay) Armed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// Poll implements future.Future.
func (d *Delay) Poll(ctx future.Context) future.Poll {
	d.mu.Lock()

	if d.armed {
		// The delay may have been moved to a different task since the
		// last poll, in which case the context carries a different
		// waker. Keep the slot current so the timing goroutine wakes
		// the task that actually owns us now.
		if d.waker != ctx.Waker() {
			d.waker = ctx.Waker()
		}
		d.mu.Unlock()

		if !d.now().Before(d.when) {
			return future.Ready(d.when)
		}
		return future.Pending
	}

	if !d.now().Before(d.when) {
		// Already elapsed; resolve without ever arming.
		d.mu.Unlock()
		if reg := registry.Load(); reg != nil {
			reg.DelaysImmediate.WithLabelValues(d.source).Inc()
		}
		return future.Ready(d.when)
	}

	d.waker = ctx.Waker()
	d.armed = true
	d.mu.Unlock()

	if reg := registry.Load(); reg != nil {
		reg.DelaysArmed.WithLabelValues(d.source).Inc()
	}
	go d.fire()
	return future.Pending
}

// fire sleeps out the remaining duration and wakes the latest stored
// waker. Exactly one fire goroutine exists per armed delay; it terminates
// after waking once.
func (d *Delay) fire() {
	// Recompute from the current time: the poll that armed us may have
	// run late, and a stale duration would oversleep.
	if wait := d.when.Sub(d.now()); wait > 0 {
		time.Sleep(wait)
	}

	d.mu.Lock()
	w := d.waker
	d.mu.Unlock()

	if reg := registry.Load(); reg != nil {
		reg.DelaysFired.WithLabelValues(d.source).Inc()
	}
	w.Wake()
}
