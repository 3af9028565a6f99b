//go:build !unix

package metrics

import "time"

// ProcessCPUTime is not available on this platform and always returns 0.
func ProcessCPUTime() time.Duration { return 0 }
