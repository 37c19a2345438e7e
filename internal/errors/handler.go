package apperrors

import (
	"fmt"
	"io"
)

// ColorProvider supplies the ANSI sequences used by HandleError.
// It lets this package colorize diagnostics without importing the ui package.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// noColor is the ColorProvider used when the caller passes nil.
type noColor struct{}

func (noColor) Red() string    { return "" }
func (noColor) Yellow() string { return "" }
func (noColor) Reset() string  { return "" }

// HandleError writes a diagnostic for err to out and returns the matching
// exit code. A nil error writes nothing and returns ExitSuccess.
//
// Parameters:
//   - err: The error surfaced to the entry point.
//   - out: The writer receiving the diagnostic (usually standard error).
//   - colors: The color provider, or nil for plain output.
//
// Returns:
//   - int: The exit code for the process.
func HandleError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColor{}
	}

	code := ExitCode(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). %v%s\n", colors.Red(), err, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled by user.%s\n", colors.Yellow(), colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
