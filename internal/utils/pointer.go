package utils

// Ptr returns a pointer to v. It avoids the temporary variable otherwise
// needed to take the address of a literal or computed value, which comes up
// constantly when filling optional request fields.
//
// Example:
//
//	request.Temperature = utils.Ptr(0.2)
func Ptr[T any](v T) *T {
	return &v
}
