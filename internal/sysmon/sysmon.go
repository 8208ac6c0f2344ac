// Package sysmon samples system-wide and per-process resource usage for
// the benchmark dashboard.
package sysmon

import (
	"os"
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds one snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // system-wide, 0.0 .. 100.0
	MemPercent float64 // system-wide, 0.0 .. 100.0
	ProcessRSS uint64  // resident set of this process in bytes
}

// Sampler reads Stats for the current process.
type Sampler struct {
	proc *process.Process // nil when the process cannot be inspected
}

// NewSampler returns a sampler bound to the current process.
func NewSampler() *Sampler {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		p = nil
	}
	return &Sampler{proc: p}
}

// Sample collects a snapshot. CPU usage is the delta since the previous
// call (interval 0), so the first sample may read zero. Fields that
// cannot be read are left at zero.
func (s *Sampler) Sample() Stats {
	var st Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		st.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		st.MemPercent = vm.UsedPercent
	}
	if s.proc != nil {
		if mi, err := s.proc.MemoryInfo(); err == nil && mi != nil {
			st.ProcessRSS = mi.RSS
		}
	}
	return st
}

var defaultSampler = sync.OnceValue(NewSampler)

// Sample collects a snapshot with the shared process sampler.
func Sample() Stats {
	return defaultSampler().Sample()
}
