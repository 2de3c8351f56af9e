// Package parse provides utilities for converting text produced by the API
// into Go values. Streamed tool-call arguments in particular arrive as
// concatenated JSON fragments that may be cut off mid-token, so this package
// applies automatic JSON repair before falling back to a clear error.
//
// The main entry points are the generic [StringAs] function, which handles
// both primitive types (string, bool, int, float) and complex types
// (structs, maps, slices) in a single uniform API, and [RepairJSON], which
// restores well-formedness of a JSON fragment while leaving valid input
// untouched.
package parse
