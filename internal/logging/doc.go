// Package logging provides the logging interface used across the analyzer.
// It abstracts the underlying implementation (zerolog by default) so that
// scanners, the worker pool and the monitor log the same way.
package logging
