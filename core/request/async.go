package request

import (
	"context"
	"sync"
)

// asyncState tracks the lifecycle of an AsyncCall. Transitions are guarded
// by the handle mutex so exactly one terminal state is ever reached.
type asyncState int

const (
	asyncCreated asyncState = iota
	asyncStarted
	asyncSucceeded
	asyncFailed
	asyncCancelled
)

// AsyncCall is the handle for one callback-driven execution. Callbacks may
// be registered before or after the call completes: registrations made while
// the call is in flight are stored and invoked from the worker goroutine in
// registration order; registrations made after completion are invoked
// immediately on the registering goroutine with the stored outcome.
//
// Exactly one of the response and error callback sets fires, exactly once,
// unless [AsyncCall.Cancel] stops the call first, in which case neither
// fires.
type AsyncCall[M any] struct {
	run func(ctx context.Context) (M, error)

	mu         sync.Mutex
	state      asyncState
	result     M
	err        error
	onResponse []func(M)
	onError    []func(error)
	cancel     context.CancelFunc
	done       chan struct{}
}

func newAsyncCall[M any](run func(ctx context.Context) (M, error)) *AsyncCall[M] {
	return &AsyncCall[M]{
		run:  run,
		done: make(chan struct{}),
	}
}

// OnResponse registers fn to receive the successful result. It returns the
// handle so registrations can be chained. If the call already succeeded, fn
// is invoked immediately with the stored result; if it already failed or was
// cancelled, fn will never be invoked.
func (a *AsyncCall[M]) OnResponse(fn func(M)) *AsyncCall[M] {
	a.mu.Lock()
	switch a.state {
	case asyncSucceeded:
		result := a.result
		a.mu.Unlock()
		fn(result)
	case asyncFailed, asyncCancelled:
		a.mu.Unlock()
	default:
		a.onResponse = append(a.onResponse, fn)
		a.mu.Unlock()
	}
	return a
}

// OnError registers fn to receive the failure. It returns the handle so
// registrations can be chained. If the call already failed, fn is invoked
// immediately with the stored error; if it already succeeded or was
// cancelled, fn will never be invoked.
func (a *AsyncCall[M]) OnError(fn func(error)) *AsyncCall[M] {
	a.mu.Lock()
	switch a.state {
	case asyncFailed:
		err := a.err
		a.mu.Unlock()
		fn(err)
	case asyncSucceeded, asyncCancelled:
		a.mu.Unlock()
	default:
		a.onError = append(a.onError, fn)
		a.mu.Unlock()
	}
	return a
}

// Start launches the call on its own goroutine and returns the handle.
// Calling Start again, or after Cancel, has no effect.
func (a *AsyncCall[M]) Start(ctx context.Context) *AsyncCall[M] {
	a.mu.Lock()
	if a.state != asyncCreated {
		a.mu.Unlock()
		return a
	}
	a.state = asyncStarted
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()

	go func() {
		defer cancel()
		result, err := a.run(runCtx)
		if err != nil {
			a.fail(err)
			return
		}
		a.resolve(result)
	}()
	return a
}

func (a *AsyncCall[M]) resolve(result M) {
	a.mu.Lock()
	if a.state != asyncStarted {
		// Cancelled while the response was in flight; drop the outcome.
		a.mu.Unlock()
		return
	}
	a.state = asyncSucceeded
	a.result = result
	callbacks := a.onResponse
	a.onResponse = nil
	a.onError = nil
	close(a.done)
	a.mu.Unlock()

	for _, fn := range callbacks {
		fn(result)
	}
}

func (a *AsyncCall[M]) fail(err error) {
	a.mu.Lock()
	if a.state != asyncStarted {
		a.mu.Unlock()
		return
	}
	a.state = asyncFailed
	a.err = err
	callbacks := a.onError
	a.onResponse = nil
	a.onError = nil
	close(a.done)
	a.mu.Unlock()

	for _, fn := range callbacks {
		fn(err)
	}
}

// Cancel stops the call. The underlying request is aborted through its
// context, no further callbacks are delivered, and [AsyncCall.Await] returns
// context.Canceled. Cancelling a call that already completed has no effect;
// callbacks already delivered are not retracted.
func (a *AsyncCall[M]) Cancel() {
	a.mu.Lock()
	if a.state != asyncCreated && a.state != asyncStarted {
		a.mu.Unlock()
		return
	}
	a.state = asyncCancelled
	cancel := a.cancel
	a.onResponse = nil
	a.onError = nil
	close(a.done)
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Await blocks until the call reaches a terminal state or ctx is done. It
// returns the result on success, the stored error on failure, and
// context.Canceled if the call was cancelled.
func (a *AsyncCall[M]) Await(ctx context.Context) (M, error) {
	var zero M
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-a.done:
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.state {
	case asyncSucceeded:
		return a.result, nil
	case asyncFailed:
		return zero, a.err
	default:
		return zero, context.Canceled
	}
}

// Done returns a channel that is closed once the call reaches a terminal
// state.
func (a *AsyncCall[M]) Done() <-chan struct{} {
	return a.done
}
