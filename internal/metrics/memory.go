// Package metrics collects process memory readings and the Prometheus
// series exported by the eintcalc server.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by live limb slices and everything else
	HeapSys      uint64 // bytes obtained from the OS for the heap
	Sys          uint64 // total bytes obtained from the OS
	NumGC        uint32 // completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // allocated heap objects
	TotalAlloc   uint64 // cumulative bytes allocated
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
		TotalAlloc:   m.TotalAlloc,
	}
}

// AllocDelta summarizes what happened between two snapshots of the same
// collector: bytes allocated and GC cycles run.
type AllocDelta struct {
	Allocated uint64
	GCCycles  uint32
}

// Since returns the allocation delta from before to s. Counters are
// monotonic, so a smaller value in s means the snapshots were swapped and
// the delta is reported as zero.
func (s MemorySnapshot) Since(before MemorySnapshot) AllocDelta {
	var d AllocDelta
	if s.TotalAlloc > before.TotalAlloc {
		d.Allocated = s.TotalAlloc - before.TotalAlloc
	}
	if s.NumGC > before.NumGC {
		d.GCCycles = s.NumGC - before.NumGC
	}
	return d
}
