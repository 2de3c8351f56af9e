package request

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/oaigo/oaigo/internal/utils"
)

// streamState tracks the lifecycle of a StreamCall. The started state covers
// the whole receive loop; partial delivery does not change state.
type streamState int

const (
	streamCreated streamState = iota
	streamStarted
	streamCompleted
	streamFailed
	streamCancelled
)

// StreamCall is the handle for one streaming execution. On-partial callbacks
// are invoked synchronously from the worker goroutine, once per decoded
// event, in arrival order. After the last event, exactly one of on-complete
// (with the accumulated result) and on-error fires, unless
// [StreamCall.Cancel] stops the call first, in which case neither fires.
//
// On-complete and on-error registrations made after the call completed are
// invoked immediately on the registering goroutine with the stored outcome.
// Partial results are not replayed to late registrations.
type StreamCall[R, M any] struct {
	open       StreamOpenFunc
	mapPartial Mapper[R, M]
	accumulate Accumulator[M]
	logEvents  bool
	logger     *slog.Logger

	mu         sync.Mutex
	state      streamState
	acc        M
	err        error
	onPartial  []func(M)
	onComplete []func(M)
	onError    []func(error)
	cancel     context.CancelFunc
	done       chan struct{}
}

func newStreamCall[R, M any](
	open StreamOpenFunc,
	mapPartial Mapper[R, M],
	accumulate Accumulator[M],
	logEvents bool,
	logger *slog.Logger,
) *StreamCall[R, M] {
	return &StreamCall[R, M]{
		open:       open,
		mapPartial: mapPartial,
		accumulate: accumulate,
		logEvents:  logEvents,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// OnPartial registers fn to receive each mapped partial result as it
// arrives. It returns the handle so registrations can be chained.
// Registering after the call completed has no effect.
func (s *StreamCall[R, M]) OnPartial(fn func(M)) *StreamCall[R, M] {
	s.mu.Lock()
	if s.state == streamCreated || s.state == streamStarted {
		s.onPartial = append(s.onPartial, fn)
	}
	s.mu.Unlock()
	return s
}

// OnComplete registers fn to receive the accumulated result once the stream
// ends successfully. It returns the handle so registrations can be chained.
// If the stream already completed, fn is invoked immediately with the stored
// accumulation; if it failed or was cancelled, fn will never be invoked.
func (s *StreamCall[R, M]) OnComplete(fn func(M)) *StreamCall[R, M] {
	s.mu.Lock()
	switch s.state {
	case streamCompleted:
		result := s.acc
		s.mu.Unlock()
		fn(result)
	case streamFailed, streamCancelled:
		s.mu.Unlock()
	default:
		s.onComplete = append(s.onComplete, fn)
		s.mu.Unlock()
	}
	return s
}

// OnError registers fn to receive the failure that ended the stream. It
// returns the handle so registrations can be chained. If the stream already
// failed, fn is invoked immediately with the stored error; if it completed
// or was cancelled, fn will never be invoked.
func (s *StreamCall[R, M]) OnError(fn func(error)) *StreamCall[R, M] {
	s.mu.Lock()
	switch s.state {
	case streamFailed:
		err := s.err
		s.mu.Unlock()
		fn(err)
	case streamCompleted, streamCancelled:
		s.mu.Unlock()
	default:
		s.onError = append(s.onError, fn)
		s.mu.Unlock()
	}
	return s
}

// Start opens the stream on its own goroutine and returns the handle.
// Calling Start again, or after Cancel, has no effect.
func (s *StreamCall[R, M]) Start(ctx context.Context) *StreamCall[R, M] {
	s.mu.Lock()
	if s.state != streamCreated {
		s.mu.Unlock()
		return s
	}
	s.state = streamStarted
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(runCtx, cancel)
	return s
}

// run is the stream worker. It opens the connection, decodes events one by
// one, delivers partials, folds the accumulation and settles the handle in
// exactly one terminal state.
func (s *StreamCall[R, M]) run(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	body, err := s.open(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	defer utils.CloseWithLog(body)

	scanner := NewSSEScanner(body)
	for {
		if ctx.Err() != nil {
			s.fail(&TransportError{Op: "stream read", Err: ctx.Err()})
			return
		}

		payload, scanErr := scanner.Next()
		switch {
		case errors.Is(scanErr, ErrStreamDone):
			// The server confirmed the end of the stream.
			s.complete()
			return
		case errors.Is(scanErr, io.EOF):
			// The server closed the stream without a sentinel. Everything
			// received so far decoded cleanly, so this is a successful end
			// of stream, not an error.
			s.complete()
			return
		case errors.Is(scanErr, bufio.ErrTooLong):
			s.fail(&ProtocolError{Err: scanErr})
			return
		case scanErr != nil:
			s.fail(&TransportError{Op: "stream read", Err: scanErr})
			return
		}

		if s.logEvents {
			s.logger.Debug("received stream event", "data", utils.TruncateString(payload, utils.DefaultMaxStringLength))
		}

		var raw R
		if decodeErr := json.Unmarshal([]byte(payload), &raw); decodeErr != nil {
			s.fail(&DecodeError{Err: decodeErr, Payload: payload})
			return
		}

		partial := s.mapPartial(raw)
		if !s.emitPartial(partial) {
			// Cancelled; stop reading.
			return
		}
		if s.accumulate.Fold != nil {
			s.acc = s.accumulate.Fold(s.acc, partial)
		}
	}
}

// emitPartial delivers one partial to the registered callbacks. It returns
// false when the call is no longer in flight.
func (s *StreamCall[R, M]) emitPartial(partial M) bool {
	s.mu.Lock()
	if s.state != streamStarted {
		s.mu.Unlock()
		return false
	}
	callbacks := s.onPartial
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(partial)
	}
	return true
}

func (s *StreamCall[R, M]) complete() {
	s.mu.Lock()
	if s.state != streamStarted {
		s.mu.Unlock()
		return
	}
	if s.accumulate.Finalize != nil {
		s.acc = s.accumulate.Finalize(s.acc)
	}
	s.state = streamCompleted
	result := s.acc
	callbacks := s.onComplete
	s.clearCallbacks()
	close(s.done)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(result)
	}
}

func (s *StreamCall[R, M]) fail(err error) {
	s.mu.Lock()
	if s.state != streamStarted {
		s.mu.Unlock()
		return
	}
	s.state = streamFailed
	s.err = err
	callbacks := s.onError
	s.clearCallbacks()
	close(s.done)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(err)
	}
}

// clearCallbacks drops all registered callbacks. Callers must hold s.mu.
func (s *StreamCall[R, M]) clearCallbacks() {
	s.onPartial = nil
	s.onComplete = nil
	s.onError = nil
}

// Cancel stops the stream. The connection is aborted through its context, no
// further callbacks are delivered, and [StreamCall.Await] returns
// context.Canceled. Cancelling a stream that already completed has no
// effect; callbacks already delivered are not retracted.
func (s *StreamCall[R, M]) Cancel() {
	s.mu.Lock()
	if s.state != streamCreated && s.state != streamStarted {
		s.mu.Unlock()
		return
	}
	s.state = streamCancelled
	cancel := s.cancel
	s.clearCallbacks()
	close(s.done)
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Await blocks until the stream reaches a terminal state or ctx is done. It
// returns the accumulated result on success, the stored error on failure,
// and context.Canceled if the stream was cancelled.
func (s *StreamCall[R, M]) Await(ctx context.Context) (M, error) {
	var zero M
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-s.done:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case streamCompleted:
		return s.acc, nil
	case streamFailed:
		return zero, s.err
	default:
		return zero, context.Canceled
	}
}

// Done returns a channel that is closed once the stream reaches a terminal
// state.
func (s *StreamCall[R, M]) Done() <-chan struct{} {
	return s.done
}
