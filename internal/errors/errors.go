package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorRender   = 5   // Indicates the image could not be rendered or saved.
	ExitErrorViewer   = 6   // Indicates the image viewer could not be launched.
	ExitErrorFetch    = 7   // Indicates a joke request failed.
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

// RenderError reports a failure while producing the fractal image file.
// Stage names the step that failed ("encode", "write", ...).
type RenderError struct {
	Stage string
	Path  string
	Cause error
}

// Error returns a message naming the failed stage and the target file.
func (e RenderError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("render %s failed: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("render %s failed for %s: %v", e.Stage, e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e RenderError) Unwrap() error { return e.Cause }

// ViewerError reports that the platform image viewer could not be located
// or did not run successfully.
type ViewerError struct {
	// Command is the program (or shell verb) used to open the file.
	Command string
	// Path is the file that was to be opened.
	Path  string
	Cause error
}

// Error returns a descriptive message about the viewer launch failure.
func (e ViewerError) Error() string {
	return fmt.Sprintf("failed to open %s with %q: %v", e.Path, e.Command, e.Cause)
}

// Unwrap returns the underlying cause.
func (e ViewerError) Unwrap() error { return e.Cause }

// FetchError reports a failed joke request. Slot is the one-based
// initiation position of the request inside its pair.
type FetchError struct {
	Slot  int
	URL   string
	Cause error
}

// Error returns the failed slot, URL and cause.
func (e FetchError) Error() string {
	return fmt.Sprintf("request %d to %s failed: %v", e.Slot, e.URL, e.Cause)
}

// Unwrap returns the underlying cause.
func (e FetchError) Unwrap() error { return e.Cause }

// TimeoutError represents an overall run timeout. It captures the operation
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

// ExitCode maps an error to the process exit status.
// Context errors take precedence over the error's own class, so a fetch
// aborted by the run deadline reports a timeout rather than a fetch failure.
func ExitCode(err error) int {
	var (
		configErr  ConfigError
		timeoutErr TimeoutError
		renderErr  RenderError
		viewerErr  ViewerError
		fetchErr   FetchError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.As(err, &renderErr):
		return ExitErrorRender
	case errors.As(err, &viewerErr):
		return ExitErrorViewer
	case errors.As(err, &fetchErr):
		return ExitErrorFetch
	default:
		return ExitErrorGeneric
	}
}
