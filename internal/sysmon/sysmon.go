// Package sysmon samples host and process resource usage while the analyzer
// runs. The pool monitor attaches a sample to every status line.
package sysmon

import (
	"os"
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // system-wide, 0.0 .. 100.0
	MemPercent float64 // system-wide, 0.0 .. 100.0
	ProcessRSS uint64  // resident set size of this process, in bytes
	Threads    int32   // OS threads of this process
}

var (
	self     *process.Process
	selfOnce sync.Once
)

func currentProcess() *process.Process {
	selfOnce.Do(func() {
		p, err := process.NewProcess(int32(os.Getpid()))
		if err == nil {
			self = p
		}
	})
	return self
}

// Sample collects a single snapshot. CPU uses interval=0 (delta since last
// call). Fields that cannot be read are left at zero.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if p := currentProcess(); p != nil {
		if info, err := p.MemoryInfo(); err == nil && info != nil {
			s.ProcessRSS = info.RSS
		}
		if n, err := p.NumThreads(); err == nil {
			s.Threads = n
		}
	}
	return s
}
