// Package orchestration runs the sequential and the concurrent scan over the
// same files and compares their results. It decouples the analysis from
// presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
