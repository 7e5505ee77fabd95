package assets

import (
	"context"
	"sync"
)

// Future is the result of a load that finishes at most once. It is safe to poll from the
// render goroutine while the load runs elsewhere.
type Future[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(v T, err error) {
	f.once.Do(func() {
		f.val, f.err = v, err
		close(f.done)
	})
}

// Go runs fn on a new goroutine and returns a future for its result.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		v, err := fn(ctx)
		f.resolve(v, err)
	}()
	return f
}

// NewPending returns an unresolved future and the function that resolves it.
// Calls after the first are ignored.
func NewPending[T any]() (*Future[T], func(T, error)) {
	f := newFuture[T]()
	return f, f.resolve
}

// Resolved returns a future that is already complete.
func Resolved[T any](v T, err error) *Future[T] {
	f := newFuture[T]()
	f.resolve(v, err)
	return f
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Poll returns the result without blocking. ready is false while the load is in flight.
func (f *Future[T]) Poll() (v T, ready bool, err error) {
	select {
	case <-f.done:
		return f.val, true, f.err
	default:
		return v, false, nil
	}
}

// Wait blocks until the result is available or ctx ends.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
