package testutil

import (
	"sync"
	"time"
)

// MockClock implements a controllable time source for tests that need to
// move a deadline around without actually sleeping.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock creates a new MockClock starting at the given time.
// If zero time is provided, uses current time.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now()
	}
	return &MockClock{now: start}
}

// Now returns the current mock time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the mock clock forward by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set sets the mock clock to a specific time.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// CountingWaker records how many times it has been woken. It is safe for
// concurrent use, so tests can hammer it from many goroutines.
type CountingWaker struct {
	mu    sync.Mutex
	count int
	ch    chan struct{}
}

// NewCountingWaker creates a CountingWaker with a buffered notification
// channel so a single pending wake can be awaited.
func NewCountingWaker() *CountingWaker {
	return &CountingWaker{ch: make(chan struct{}, 1)}
}

// Wake increments the counter and signals the notification channel.
func (w *CountingWaker) Wake() {
	w.mu.Lock()
	w.count++
	w.mu.Unlock()
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// Count returns the number of Wake calls so far.
func (w *CountingWaker) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Woken returns a channel that receives after a Wake call.
func (w *CountingWaker) Woken() <-chan struct{} {
	return w.ch
}
