package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// Every input, configuration and resource error exits with 1, matching the
// behavior scripts built around the tool rely on.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates an input, configuration or resource error.
	ExitErrorMismatch = 3   // Indicates that verification runs disagreed.
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

// InputError reports a starting value that could not be produced: an
// unparseable numeral, an unreadable or empty file, or an invalid --ones
// count. Input errors are always detected before the engine starts.
type InputError struct {
	// Source names the input mode ("num", "file", "ones").
	Source string
	// Message explains what is wrong with the input.
	Message string
	// Cause is the underlying error, if any (e.g. an *os.PathError).
	Cause error
}

// Error returns a formatted message describing the input error.
func (e InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// Unwrap returns the underlying cause.
func (e InputError) Unwrap() error { return e.Cause }

// NewInputError creates an InputError without a cause.
func NewInputError(source, format string, a ...any) error {
	return InputError{Source: source, Message: fmt.Sprintf(format, a...)}
}

// AllocationError reports that the working buffer could not grow. The
// arithmetic cannot continue with a truncated buffer, so it is raised as a
// panic from the growth path and only converted to an exit code at the
// application boundary.
type AllocationError struct {
	// Requested is the number of bytes the buffer needed.
	Requested uint64
	// Limit is the configured ceiling in bytes.
	Limit uint64
}

// Error returns a formatted message describing the allocation failure.
func (e AllocationError) Error() string {
	return fmt.Sprintf("buffer growth failed: requested %d bytes (limit: %d)", e.Requested, e.Limit)
}

// MismatchError reports that two runs over the same input produced different
// results.
type MismatchError struct {
	// Want and Got name the disagreeing runs.
	Want, Got string
	// Detail describes the difference.
	Detail string
}

// Error returns a formatted message describing the mismatch.
func (e MismatchError) Error() string {
	return fmt.Sprintf("result mismatch between %s and %s: %s", e.Want, e.Got, e.Detail)
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

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var mismatch MismatchError
	switch {
	case errors.As(err, &mismatch):
		return ExitErrorMismatch
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	}
	return ExitErrorGeneric
}
