package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/bigcalc/internal/bignum"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between engines.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// EvalError encapsulates an expression evaluation error while preserving
// the original cause, so callers can report which expression failed and
// still inspect what went wrong underneath.
type EvalError struct {
	// Expr is the expression whose evaluation failed.
	Expr string
	// Cause is the underlying error that triggered this evaluation error.
	Cause error
}

// Error returns the evaluation context followed by the cause's message.
func (e EvalError) Error() string {
	return fmt.Sprintf("evaluating %q: %s", e.Expr, e.Cause.Error())
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e EvalError) Unwrap() error { return e.Cause }

// TimeoutError represents an evaluation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MismatchError reports that two evaluation engines disagreed on the same
// expression, which means at least one of them is wrong.
type MismatchError struct {
	// Reference is the name of the engine taken as the baseline.
	Reference string
	// Engine is the name of the engine that disagreed with it.
	Engine string
	// Got and Want are the two canonical results.
	Got, Want string
}

// Error returns a formatted message describing the disagreement.
func (e MismatchError) Error() string {
	return fmt.Sprintf("engine %q returned %s, but %q returned %s", e.Engine, e.Got, e.Reference, e.Want)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ColorProvider supplies the ANSI prefixes used by HandleEvaluationError.
// A nil provider produces plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleEvaluationError classifies err, writes a user-facing message to
// out and returns the exit code the process should terminate with.
// Cancellation maps to the SIGINT convention (130), deadlines and
// timeouts to 2, engine mismatches to 3, configuration errors to 4 and
// everything else (including parse and domain errors from the numeric
// core) to 1. A nil err is a success.
//
// Parameters:
//   - err: The error to classify; nil returns ExitSuccess.
//   - duration: How long the evaluation ran before failing.
//   - out: Destination for the user-facing message.
//   - colors: Optional ANSI colors for the message; nil disables them.
//
// Returns:
//   - int: The process exit code for err.
func HandleEvaluationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	var timeoutErr TimeoutError
	var configErr ConfigError
	var mismatchErr MismatchError
	var validationErr ValidationError
	var parseErr *bignum.ParseError
	var domainErr *bignum.DomainError

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%sTimeout after %s: %v%s\n", yellow, duration.Round(time.Millisecond), err, reset)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sCanceled after %s.%s\n", yellow, duration.Round(time.Millisecond), reset)
		return ExitErrorCanceled
	case errors.As(err, &mismatchErr):
		fmt.Fprintf(out, "%sResult mismatch: %v%s\n", red, err, reset)
		return ExitErrorMismatch
	case errors.As(err, &configErr):
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", red, err, reset)
		return ExitErrorConfig
	case errors.As(err, &validationErr), errors.As(err, &parseErr), errors.As(err, &domainErr):
		fmt.Fprintf(out, "%sError: %v%s\n", red, err, reset)
		return ExitErrorGeneric
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", red, err, reset)
		return ExitErrorGeneric
	}
}
