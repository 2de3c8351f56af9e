// Package utils provides small shared helpers used throughout the oaigo
// internals: a generic pointer constructor, string formatting utilities for
// log output, and a logging close wrapper for HTTP response bodies.
//
// Key entry points: [Ptr] for converting values to pointers, [TruncateString]
// for bounding logged payloads, [JSONToString] for safe JSON rendering, and
// [CloseWithLog] for deferred body closes.
package utils
