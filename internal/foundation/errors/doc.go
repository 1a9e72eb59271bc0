// Package errors provides the classified error type used across exportreadme.
//
// Errors carry a category (config, validation, filesystem, internal), a severity and
// structured context. The CLI adapter turns them into a stderr diagnostic and an exit
// code.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "read input failed").
//		AtPath(input).
//		Build()
package errors
