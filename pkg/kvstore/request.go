package kvstore

import (
	"context"
	"sync"

	"github.com/vnykmshr/goasync/pkg/future"
)

// Response is the resolved value of a Request. Err carries any command
// failure, including redis.Nil for a missing key, so the executor stays
// error-agnostic and the consumer unpacks it.
type Response struct {
	Key   string
	Value string
	Err   error
}

// Request is a single in-flight command exposed as a future. The first
// poll stores the waker and launches the command in a background
// goroutine; the goroutine records the response and wakes the latest
// stored waker; subsequent polls return the response.
//
// Like any suspension source, a pending Request can move between tasks:
// every poll refreshes the stored waker under the mutex, and the
// completion path reads the slot under the same mutex.
type Request struct {
	client  *Client
	command string
	key     string
	run     func(ctx context.Context) (string, error)

	mu      sync.Mutex
	waker   future.Waker
	started bool
	done    bool
	resp    Response
}

// Poll implements future.Future.
func (r *Request) Poll(ctx future.Context) future.Poll {
	r.mu.Lock()

	if r.done {
		resp := r.resp
		r.mu.Unlock()
		return future.Ready(resp)
	}

	r.waker = ctx.Waker()

	if !r.started {
		r.started = true
		r.mu.Unlock()
		go r.client.execute(r)
		return future.Pending
	}

	r.mu.Unlock()
	return future.Pending
}

// resolve records the response and wakes the owning task.
func (r *Request) resolve(resp Response) {
	r.mu.Lock()
	r.resp = resp
	r.done = true
	w := r.waker
	r.mu.Unlock()

	if w != nil {
		w.Wake()
	}
}
