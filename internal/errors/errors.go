package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1   // unexpected failure, including report write errors
	ExitErrorTimeout  = 2   // the -timeout deadline expired
	ExitErrorMismatch = 3   // the two passes produced different counts
	ExitErrorConfig   = 4   // invalid flags, environment or config file
	ExitErrorCanceled = 130 // interrupted, as shells report SIGINT
)

// ConfigError is raised for input rejected before any file is read.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ScanError records why a single file could not be scanned. Op is the stage
// that failed ("open" or "read"), File the identifier of the source.
//
// The message leaves File out: failure listings already print it in front
// of every error.
type ScanError struct {
	File  string
	Op    string
	Cause error
}

func (e *ScanError) Error() string {
	cause := e.Cause
	var pathErr *fs.PathError
	if errors.As(cause, &pathErr) {
		cause = pathErr.Err
	}
	return fmt.Sprintf("%s: %v", e.Op, cause)
}

// Unwrap returns the underlying I/O error.
func (e *ScanError) Unwrap() error { return e.Cause }

// TimeoutError reports that Operation did not finish within Limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError rejects the value of one input Field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError prefixes err with a formatted context message, keeping it
// reachable through errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err comes from a canceled or expired
// context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsConfigError reports whether err is, or wraps, a ConfigError or a
// ValidationError. Both are rejected before any work begins.
func IsConfigError(err error) bool {
	var ce ConfigError
	var ve ValidationError
	return errors.As(err, &ce) || errors.As(err, &ve)
}
