// Package report turns a finished comparison into the summary written to
// disk: a text layout for people and a JSON document for tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/format"
	"github.com/agbru/loganalyzer/internal/orchestration"
)

// Supported formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// KeywordCount is one row of a count table.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int64  `json:"count"`
}

// Pass summarizes one pass.
type Pass struct {
	Counts      []KeywordCount `json:"counts"`
	Total       int64          `json:"total"`
	DurationNs  int64          `json:"duration_ns"`
	CPUNs       int64          `json:"cpu_ns"`
	FailedFiles int            `json:"failed_files"`
	GCCycles    uint32         `json:"gc_cycles"`
	HeapGrowth  uint64         `json:"heap_growth_bytes"`
}

// Failure names a file missing from the counts.
type Failure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// Report is the serializable summary of a comparison.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Files       int       `json:"files"`
	PoolSize    int       `json:"pool_size"`
	Keywords    []string  `json:"keywords"`
	Sequential  Pass      `json:"sequential"`
	Concurrent  Pass      `json:"concurrent"`
	// Speedup is nil when it is undefined, JSON having no NaN.
	Speedup    *float64  `json:"speedup"`
	Consistent bool      `json:"consistent"`
	Failures   []Failure `json:"failures"`
}

// Build extracts a Report from a comparison.
func Build(cmp orchestration.Comparison, generatedAt time.Time) Report {
	r := Report{
		RunID:       cmp.RunID,
		GeneratedAt: generatedAt,
		Files:       cmp.Sequential.Files,
		PoolSize:    cmp.PoolSize,
		Keywords:    cmp.Keywords.Slice(),
		Sequential:  buildPass(cmp.Sequential),
		Concurrent:  buildPass(cmp.Concurrent),
		Consistent:  cmp.Consistent(),
		Failures:    failureList(cmp.Failures()),
	}
	if s := cmp.Speedup(); !math.IsNaN(s) && !math.IsInf(s, 0) {
		r.Speedup = &s
	}
	return r
}

func buildPass(o orchestration.Outcome) Pass {
	p := Pass{
		Counts:      []KeywordCount{},
		DurationNs:  o.Duration().Nanoseconds(),
		CPUNs:       o.CPU.Nanoseconds(),
		FailedFiles: len(o.Failures),
		GCCycles:    o.Memory.GCCycles,
		HeapGrowth:  o.Memory.HeapGrowth,
	}
	if o.Counts != nil {
		o.Counts.Each(func(kw string, n int64) {
			p.Counts = append(p.Counts, KeywordCount{Keyword: kw, Count: n})
		})
		p.Total = o.Counts.Total()
	}
	return p
}

// Write renders r to w in the given format.
func Write(w io.Writer, r Report, f string) error {
	switch f {
	case FormatText, "":
		return WriteText(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
}

// WriteJSON renders r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText renders r in the plain-text summary layout.
func WriteText(w io.Writer, r Report) error {
	var b strings.Builder
	b.WriteString("===== Multi-Threaded Log Analyzer Summary =====\n")
	fmt.Fprintf(&b, "Run ID: %s\n", r.RunID)
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Files analyzed: %d\n", r.Files)
	fmt.Fprintf(&b, "Pool size: %d\n", r.PoolSize)
	fmt.Fprintf(&b, "Keywords: [%s]\n\n", strings.Join(r.Keywords, ", "))

	writePass(&b, "Sequential", r.Sequential)
	writePass(&b, "Concurrent", r.Concurrent)

	speedup := math.NaN()
	if r.Speedup != nil {
		speedup = *r.Speedup
	}
	fmt.Fprintf(&b, "Speedup (seq / concurrent): %s\n", format.FormatSpeedup(speedup))
	if r.Consistent {
		b.WriteString("Consistency: both passes agree\n")
	} else {
		b.WriteString("Consistency: MISMATCH between passes\n")
	}

	if len(r.Failures) > 0 {
		fmt.Fprintf(&b, "\n--- Failed files (%d) ---\n", len(r.Failures))
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "%s: %s\n", f.File, f.Error)
		}
	}
	b.WriteString("===============================================\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writePass(b *strings.Builder, name string, p Pass) {
	fmt.Fprintf(b, "--- %s Result ---\n", name)
	for _, kc := range p.Counts {
		fmt.Fprintf(b, "%-10s : %d\n", kc.Keyword, kc.Count)
	}
	fmt.Fprintf(b, "%s time: %s\n", name, format.FormatNanosMillis(time.Duration(p.DurationNs)))
	fmt.Fprintf(b, "%s CPU: %s\n\n", name, format.FormatNanosMillis(time.Duration(p.CPUNs)))
}

// WriteFile writes r to path, creating parent directories as needed. An
// empty path writes nothing.
func WriteFile(path string, r Report, f string) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(file, r, f); err != nil {
		file.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return file.Close()
}

func failureList(failures []analysis.FileFailure) []Failure {
	out := make([]Failure, len(failures))
	for i, f := range failures {
		out[i] = Failure{File: f.File, Error: f.Err.Error()}
	}
	return out
}
