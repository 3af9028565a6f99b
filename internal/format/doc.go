// Package format holds pure formatting helpers shared by the CLI, the
// dashboard and the report writer: durations, counts, speedups, progress
// bars and ETA estimation.
package format
