// Package analysis holds the keyword-counting domain: the literal substring
// matcher, the per-file scanner, ordered keyword sets and count mappings, and
// the single-writer aggregator that folds per-file partial results into one
// global mapping.
package analysis
