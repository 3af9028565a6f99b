// Package metrics measures analyzer runs: Prometheus counters and
// histograms fed by scan events, runtime memory snapshots, and process CPU
// time. Metrics live in a private registry and can be written to a
// node_exporter textfile after the run.
package metrics
