package analysis

import (
	"errors"
	"io"
	"strings"
)

// memSource is an in-memory Source.
type memSource struct {
	name    string
	content string
}

func (m memSource) Name() string { return m.name }

func (m memSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(m.content)), nil
}

var errBrokenDisk = errors.New("input/output error")

// brokenSource opens fine but fails after emitting prefix.
type brokenSource struct {
	name   string
	prefix string
}

func (b brokenSource) Name() string { return b.name }

func (b brokenSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(io.MultiReader(strings.NewReader(b.prefix), failingReader{})), nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errBrokenDisk }

// unopenableSource fails on Open.
type unopenableSource struct{ name string }

func (u unopenableSource) Name() string { return u.name }

func (u unopenableSource) Open() (io.ReadCloser, error) {
	return nil, &fsPathError{path: u.name}
}

type fsPathError struct{ path string }

func (e *fsPathError) Error() string { return "open " + e.path + ": no such file or directory" }
