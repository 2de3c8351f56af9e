package request

import (
	"context"
	"io"
	"log/slog"
)

// CallFunc performs the blocking round-trip for one call and decodes the
// response body into R. Implementations must honour ctx cancellation.
type CallFunc[R any] func(ctx context.Context) (R, error)

// StreamOpenFunc opens the streaming variant of a call and hands back the
// raw event stream. The returned body is closed by the stream worker once
// reading finishes.
type StreamOpenFunc func(ctx context.Context) (io.ReadCloser, error)

// Mapper projects a raw response R into the result type M handed to the
// caller. The same executor can be instantiated with an identity mapper for
// full typed responses or with a narrowing mapper for scalar projections.
type Mapper[R, M any] func(R) M

// Accumulator describes how mapped partial results merge into the single
// final result delivered to on-complete callbacks.
type Accumulator[M any] struct {
	// Fold merges the next partial into the accumulation. It runs once per
	// decoded event, starting from the zero value of M.
	Fold func(acc, partial M) M
	// Finalize, if non-nil, runs once over the accumulation after the last
	// event and before delivery. Used for repairs that only make sense on
	// the complete value, such as fixing truncated tool-call argument JSON.
	Finalize func(acc M) M
}

// Executor runs one logical API call in either of two styles: a blocking
// [Executor.Execute] or a callback-driven [Executor.Async]. Both styles share
// the call function and the response mapper bound at construction, so a
// request behaves identically regardless of how it is executed.
//
// An Executor is immutable and safe for concurrent use; each Async() call
// produces an independent handle.
type Executor[R, M any] struct {
	call        CallFunc[R]
	mapResponse Mapper[R, M]
}

// New builds an executor for an endpoint without a streaming variant. The
// call function must be non-nil.
func New[R, M any](call CallFunc[R], mapResponse Mapper[R, M]) *Executor[R, M] {
	return &Executor[R, M]{
		call:        call,
		mapResponse: mapResponse,
	}
}

// Execute performs the call synchronously and returns the mapped result.
// Errors from the transport or decode layers are returned as-is; see
// [TransportError], [APIError] and [DecodeError].
func (e *Executor[R, M]) Execute(ctx context.Context) (M, error) {
	var zero M
	raw, err := e.call(ctx)
	if err != nil {
		return zero, err
	}
	return e.mapResponse(raw), nil
}

// Async returns a new handle for callback-driven execution of the same
// call. Nothing happens until [AsyncCall.Start] is invoked.
func (e *Executor[R, M]) Async() *AsyncCall[M] {
	return newAsyncCall(e.Execute)
}

// StreamingExecutor extends [Executor] with a third style, server-sent event
// streaming via [StreamingExecutor.Stream]. Endpoints without a streaming
// variant are constructed with [New] instead, so requesting a stream from
// them is a compile-time error rather than a runtime one.
type StreamingExecutor[R, M any] struct {
	*Executor[R, M]

	open       StreamOpenFunc
	mapPartial Mapper[R, M]
	accumulate Accumulator[M]
	logEvents  bool
	logger     *slog.Logger
}

// NewStreaming builds an executor for an endpoint that supports streaming.
// mapResponse projects the full blocking response; mapPartial projects each
// decoded stream event; accumulate merges mapped partials into the value
// handed to on-complete callbacks. When logEvents is true every received
// event payload is logged at debug level through logger (slog.Default()
// when nil).
func NewStreaming[R, M any](
	call CallFunc[R],
	mapResponse Mapper[R, M],
	open StreamOpenFunc,
	mapPartial Mapper[R, M],
	accumulate Accumulator[M],
	logEvents bool,
	logger *slog.Logger,
) *StreamingExecutor[R, M] {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamingExecutor[R, M]{
		Executor:   New(call, mapResponse),
		open:       open,
		mapPartial: mapPartial,
		accumulate: accumulate,
		logEvents:  logEvents,
		logger:     logger,
	}
}

// Stream returns a new handle for streaming execution. Nothing happens until
// [StreamCall.Start] is invoked.
func (e *StreamingExecutor[R, M]) Stream() *StreamCall[R, M] {
	return newStreamCall(e.open, e.mapPartial, e.accumulate, e.logEvents, e.logger)
}
