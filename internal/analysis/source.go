//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

package analysis

import (
	"io"
	"os"
)

// Source is a readable text resource the scanner can iterate line by line.
// The core never writes to a Source.
type Source interface {
	// Name identifies the source in progress events and failure reports.
	Name() string
	// Open returns a fresh reader positioned at the start of the content.
	Open() (io.ReadCloser, error)
}

// FileSource is a Source backed by a file on disk.
type FileSource struct {
	Path string
}

// Name returns the file path.
func (f FileSource) Name() string { return f.Path }

// Open opens the file for reading.
func (f FileSource) Open() (io.ReadCloser, error) { return os.Open(f.Path) }

// FileSources wraps paths as Sources, preserving order.
func FileSources(paths []string) []Source {
	sources := make([]Source, len(paths))
	for i, p := range paths {
		sources[i] = FileSource{Path: p}
	}
	return sources
}
