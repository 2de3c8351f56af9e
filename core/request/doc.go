// Package request provides the execution core shared by every API endpoint:
// one bound request that can run in three interchangeable styles. A blocking
// [Executor.Execute] returns the mapped result directly, [Executor.Async]
// dispatches success or failure to registered callbacks from a worker
// goroutine, and [StreamingExecutor.Stream] decodes a server-sent event
// stream into per-event partial results plus one accumulated final result.
//
// The package guarantees exactly-once terminal notification per started
// call: one of the success and failure paths fires, never both and never
// twice, with completion ordered after every partial. Callbacks registered
// after the outcome is known receive it immediately at registration.
// Explicit cancellation is the one exception, silencing delivery instead of
// producing an error.
//
// Executors are built by [New] or [NewStreaming] from a call function, a
// stream opener and response mappers, so endpoint packages only describe
// their wire formats and projections. Failures carry a typed cause:
// [TransportError], [APIError], [DecodeError] or [ProtocolError], all
// matchable with errors.As.
package request
