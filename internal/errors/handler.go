package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ExitCodeFor maps an error returned by a run to the process exit code.
// A nil error maps to ExitSuccess.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case IsConfigError(err):
		return ExitErrorConfig
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.As(err, new(TimeoutError)):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}

// HandleRunError writes a one-line description of err to out and returns the
// matching exit code. It is a no-op returning ExitSuccess for a nil error.
func HandleRunError(err error, out io.Writer) int {
	code := ExitCodeFor(err)
	switch code {
	case ExitSuccess:
		return code
	case ExitErrorConfig:
		fmt.Fprintf(out, "Configuration error: %v\n", err)
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The analysis did not finish in time: %v\n", err)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "Status: Canceled by user.\n")
	default:
		fmt.Fprintf(out, "Status: Failure. %v\n", err)
	}
	return code
}
