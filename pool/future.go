package pool

import (
	"context"
	"fmt"
)

// PanicError carries a panic recovered from a tracked task. It is
// returned from Future.Get so the submitter observes the failure at
// consumption time.
type PanicError struct {
	// Value is the value the task panicked with
	Value any
}

// Error implements the error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Future is a one-shot completion handle for a tracked submission.
// It is fulfilled exactly once, by the worker, after the task's
// callable has returned.
//
// The zero Future is never ready: Get blocks until the context is
// cancelled and Done returns a nil channel. Submitting a nil callable
// yields such a handle.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// complete fulfills the future. Called exactly once, from the task
// closure.
func (f *Future[T]) complete(v T, err error) {
	f.value = v
	f.err = err
	close(f.done)
}

// Done returns a channel that is closed once the result is available.
// For a never-ready future the channel is nil and blocks forever.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the result is available without blocking.
func (f *Future[T]) Ready() bool {
	if f.done == nil {
		return false
	}
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Get blocks until the result is available or ctx is cancelled. The
// returned error is the task's own error, a *PanicError if the task
// panicked, or the context's error on cancellation.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	var zero T

	if f.done == nil {
		<-ctx.Done()
		return zero, ctx.Err()
	}

	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Wait blocks indefinitely for the result.
func (f *Future[T]) Wait() (T, error) {
	return f.Get(context.Background())
}

// Go enqueues a value-returning callable and returns a handle for its
// result. A nil fn is dropped with a debug message and yields a
// never-ready handle.
func Go[R any](p *Pool, fn func() R) *Future[R] {
	if fn == nil {
		p.dropTask("nil tracked task submitted, dropped")
		return &Future[R]{}
	}

	f := newFuture[R]()
	p.enqueue(func() {
		var (
			v  R
			ok bool
		)
		defer func() {
			if !ok {
				var zero R
				f.complete(zero, &PanicError{Value: recover()})
				return
			}
			f.complete(v, nil)
		}()
		v = fn()
		ok = true
	})
	return f
}

// GoErr enqueues a callable returning a value and an error. The error
// is delivered through the handle alongside the value.
func GoErr[R any](p *Pool, fn func() (R, error)) *Future[R] {
	if fn == nil {
		p.dropTask("nil tracked task submitted, dropped")
		return &Future[R]{}
	}

	f := newFuture[R]()
	p.enqueue(func() {
		var (
			v   R
			err error
			ok  bool
		)
		defer func() {
			if !ok {
				var zero R
				f.complete(zero, &PanicError{Value: recover()})
				return
			}
			f.complete(v, err)
		}()
		v, err = fn()
		ok = true
	})
	return f
}

// Track enqueues a callable with no result and returns a handle that
// becomes ready once it has run, so callers can synchronize on
// completion of an individual task rather than the whole pool.
func (p *Pool) Track(fn func()) *Future[struct{}] {
	if fn == nil {
		p.dropTask("nil tracked task submitted, dropped")
		return &Future[struct{}]{}
	}

	f := newFuture[struct{}]()
	p.enqueue(func() {
		var ok bool
		defer func() {
			if !ok {
				f.complete(struct{}{}, &PanicError{Value: recover()})
				return
			}
			f.complete(struct{}{}, nil)
		}()
		fn()
		ok = true
	})
	return f
}
