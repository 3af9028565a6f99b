// Package demo generates synthetic log files, used when no log directory is
// available to analyze.
package demo

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
)

// DefaultSeed makes generated logs identical from run to run.
const DefaultSeed = 12345

// templates are the message bodies picked at random for every line.
var templates = []string{
	"INFO User logged in successfully",
	"WARN Disk usage at 85%",
	"ERROR Unable to connect to DB",
	"DEBUG Cache miss for key: user_123",
	"Exception in thread main java.lang.NullPointerException",
	"Transaction failed for id 9988",
	"INFO Background job completed",
}

// Options controls log generation.
type Options struct {
	// Dir receives the files. It is created if missing.
	Dir string
	// Files is the number of files, named demo_01.log, demo_02.log, ...
	Files int
	// Lines is the number of lines per file.
	Lines int
	// Seed feeds the random generator. Zero means DefaultSeed.
	Seed uint64
}

// Generate writes the demo files and returns their paths in creation order.
// Existing files with the same names are overwritten.
func Generate(opts Options) ([]string, error) {
	if opts.Files < 0 || opts.Lines < 0 {
		return nil, fmt.Errorf("invalid demo size: %d files of %d lines", opts.Files, opts.Lines)
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create demo directory: %w", err)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	rnd := rand.New(rand.NewPCG(seed, seed))

	paths := make([]string, 0, opts.Files)
	for f := 1; f <= opts.Files; f++ {
		path := filepath.Join(opts.Dir, fmt.Sprintf("demo_%02d.log", f))
		if err := writeFile(path, opts.Lines, rnd); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, lines int, rnd *rand.Rand) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create demo file: %w", err)
	}
	w := bufio.NewWriter(file)
	for i := 0; i < lines; i++ {
		fmt.Fprintf(w, "%s | user=%d | session=%d | msg=random-%d\n",
			templates[rnd.IntN(len(templates))], rnd.IntN(1000), rnd.IntN(100000), rnd.IntN(1000000))
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write demo file: %w", err)
	}
	return file.Close()
}
