package future

// Func is a function type that implements the Future interface.
type Func func(ctx Context) Poll

// Poll implements the Future interface for Func.
func (f Func) Poll(ctx Context) Poll {
	return f(ctx)
}

// Value returns a future that resolves to v on its first poll.
func Value(v any) Future {
	return Func(func(Context) Poll {
		return Ready(v)
	})
}

// thenFuture polls first to completion, then switches to the continuation.
type thenFuture struct {
	first  Future
	next   func(v any) Future
	second Future
}

// Then sequences two futures: it drives f to completion, applies next to
// the resolved value, and then drives the returned future. This is the
// polling equivalent of awaiting f before continuing.
func Then(f Future, next func(v any) Future) Future {
	return &thenFuture{first: f, next: next}
}

func (t *thenFuture) Poll(ctx Context) Poll {
	if t.second == nil {
		p := t.first.Poll(ctx)
		if !p.IsReady() {
			// first arranged the wake; nothing more to do here.
			return Pending
		}
		t.second = t.next(p.Value())
		t.first = nil
	}
	return t.second.Poll(ctx)
}

// Map returns a future resolving to fn applied to f's resolved value.
func Map(f Future, fn func(v any) any) Future {
	return Then(f, func(v any) Future {
		return Value(fn(v))
	})
}
