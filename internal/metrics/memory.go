package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// Delta returns the memory activity between an earlier snapshot and s.
// HeapAlloc may shrink across a collection, in which case HeapGrowth is 0.
func (s MemorySnapshot) Delta(before MemorySnapshot) MemoryDelta {
	d := MemoryDelta{
		HeapEnd:  s.HeapAlloc,
		GCCycles: s.NumGC - before.NumGC,
		GCPause:  time.Duration(s.PauseTotalNs - before.PauseTotalNs),
	}
	if s.HeapAlloc > before.HeapAlloc {
		d.HeapGrowth = s.HeapAlloc - before.HeapAlloc
	}
	return d
}

// MemoryDelta summarizes memory activity over a pass.
type MemoryDelta struct {
	HeapGrowth uint64        // bytes, 0 if the heap shrank
	HeapEnd    uint64        // heap in use when the pass ended
	GCCycles   uint32        // collections completed during the pass
	GCPause    time.Duration // stop-the-world time during the pass
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}
