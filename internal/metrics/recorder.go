package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/agbru/loganalyzer/internal/analysis"
)

const namespace = "loganalyzer"

var keywordMatchesDesc = prometheus.NewDesc(
	namespace+"_keyword_matches",
	"Occurrences of each keyword found by the last completed comparison",
	[]string{"keyword"},
	nil,
)

// keywordCollector exposes the counts of the last comparison. The values are
// replaced as a whole, so a scrape never sees a mix of two runs.
type keywordCollector struct {
	mu     sync.Mutex
	counts *analysis.Counts
}

// Describe sends the metric descriptor to the channel.
func (c *keywordCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- keywordMatchesDesc
}

// Collect emits one gauge per keyword.
func (c *keywordCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	counts := c.counts
	c.mu.Unlock()
	if counts == nil {
		return
	}
	counts.Each(func(kw string, n int64) {
		ch <- prometheus.MustNewConstMetric(keywordMatchesDesc, prometheus.GaugeValue, float64(n), kw)
	})
}

func (c *keywordCollector) set(counts *analysis.Counts) {
	if counts != nil {
		counts = counts.Clone()
	}
	c.mu.Lock()
	c.counts = counts
	c.mu.Unlock()
}

// Recorder collects analyzer metrics into its own registry. It is safe for
// concurrent use: pool workers report scan events through FileScanned.
type Recorder struct {
	registry *prometheus.Registry

	files       *prometheus.CounterVec
	lines       *prometheus.CounterVec
	bytes       *prometheus.CounterVec
	matches     *prometheus.CounterVec
	scanSeconds *prometheus.HistogramVec
	passSeconds *prometheus.GaugeVec
	passFailed  *prometheus.GaugeVec
	speedup     prometheus.Gauge
	consistent  prometheus.Gauge
	keywords    *keywordCollector
}

// NewRecorder creates a Recorder with the Go runtime and process collectors
// registered next to the analyzer metrics.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "files_scanned_total",
			Help: "Files scanned, by pass and outcome.",
		}, []string{"pass", "outcome"}),
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "lines_scanned_total",
			Help: "Lines read, by pass.",
		}, []string{"pass"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "bytes_scanned_total",
			Help: "Bytes read, by pass.",
		}, []string{"pass"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "matches_total",
			Help: "Keyword occurrences found, by pass.",
		}, []string{"pass"}),
		scanSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "file_scan_seconds",
			Help:    "Time spent scanning a single file, by pass.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"pass"}),
		passSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "pass_duration_seconds",
			Help: "Wall-clock duration of the last pass, by pass.",
		}, []string{"pass"}),
		passFailed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "pass_failed_files",
			Help: "Files missing from the last pass, by pass.",
		}, []string{"pass"}),
		speedup: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "speedup_ratio",
			Help: "Sequential duration divided by concurrent duration for the last comparison.",
		}),
		consistent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "passes_consistent",
			Help: "1 when both passes of the last comparison produced identical counts.",
		}),
		keywords: &keywordCollector{},
	}

	mem := NewMemoryCollector()
	r.registry.MustRegister(
		r.files, r.lines, r.bytes, r.matches, r.scanSeconds,
		r.passSeconds, r.passFailed, r.speedup, r.consistent, r.keywords,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace, Name: "heap_objects",
			Help: "Number of allocated heap objects.",
		}, func() float64 { return float64(mem.Snapshot().HeapObjects) }),
	)
	return r
}

// Registry returns the registry holding every metric of the recorder.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// FileScanned records one scan event.
func (r *Recorder) FileScanned(event analysis.ScanEvent) {
	pass := string(event.Unit.Pass)
	outcome := "ok"
	if event.Err != nil {
		outcome = "error"
	}
	r.files.WithLabelValues(pass, outcome).Inc()
	r.lines.WithLabelValues(pass).Add(float64(event.Lines))
	r.bytes.WithLabelValues(pass).Add(float64(event.Bytes))
	r.matches.WithLabelValues(pass).Add(float64(event.Matches))
	r.scanSeconds.WithLabelValues(pass).Observe(event.Elapsed.Seconds())
}

// PassCompleted records the duration and failure count of a pass.
func (r *Recorder) PassCompleted(pass analysis.Pass, elapsed time.Duration, _, failures int) {
	r.passSeconds.WithLabelValues(string(pass)).Set(elapsed.Seconds())
	r.passFailed.WithLabelValues(string(pass)).Set(float64(failures))
}

// ComparisonCompleted records the final counts and the comparison summary.
func (r *Recorder) ComparisonCompleted(counts *analysis.Counts, speedup float64, consistent bool) {
	r.keywords.set(counts)
	r.speedup.Set(speedup)
	if consistent {
		r.consistent.Set(1)
	} else {
		r.consistent.Set(0)
	}
}

// WriteTextfile writes every metric in the Prometheus text format to path,
// atomically, for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
