// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// evaluation, timeout, mismatch) and for carrying the underlying cause,
// plus the mapping from error class to process exit code.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Wrapping error types implement the Unwrap() method to support errors.Is() and errors.As().
package apperrors
