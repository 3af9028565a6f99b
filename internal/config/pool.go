package config

import "runtime"

// Pool size resolution chain (highest priority first):
//   1. CLI flag (-pool / -p) or the second positional argument
//   2. Environment variable (LOGANALYZER_POOL)
//   3. YAML config file (pool)
//   4. DefaultPoolSize (this file)

// DefaultPoolSize returns the platform degree of parallelism: the number of
// OS threads that may execute Go code simultaneously. Since Go 1.25 this
// respects container CPU limits.
func DefaultPoolSize() int {
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}
