// Package parallel provides the bounded worker pool that executes per-file
// scan tasks. A Pool runs exactly Size workers regardless of how many tasks
// it is given.
package parallel
