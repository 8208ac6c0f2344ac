package metrics

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// GCMode controls the garbage collector while an evaluation runs.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// GCAutoWords is the operand size in limbs from which auto mode pauses
// the collector. Below it the intermediates are too small for collection
// pauses to matter.
const GCAutoWords = 1 << 16

// GCController pauses the collector for the duration of one large
// evaluation. A soft memory limit of three times the runtime's footprint
// stays in place while it is paused.
type GCController struct {
	mode       GCMode
	active     bool
	oldPercent int
	logger     zerolog.Logger
	start      MemorySnapshot
	end        MemorySnapshot
	collector  *MemoryCollector
}

// NewGCController returns a controller for mode and an operand of words
// limbs. Unknown modes behave like GCModeDisabled.
func NewGCController(mode string, words int) *GCController {
	gc := &GCController{mode: GCMode(mode), logger: zerolog.Nop(), collector: NewMemoryCollector()}
	switch gc.mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = words >= GCAutoWords
	}
	return gc
}

// SetLogger sets the logger for pause and resume events.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Active reports whether Begin will pause the collector.
func (gc *GCController) Active() bool { return gc.active }

// Begin pauses the collector when the controller is active.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	gc.start = gc.collector.Snapshot()
	gc.oldPercent = debug.SetGCPercent(-1)
	if limit := int64(gc.start.Sys) * 3; limit > 0 {
		debug.SetMemoryLimit(limit)
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.start.HeapAlloc).
		Msg("gc paused")
}

// End restores the collector settings and runs a collection.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	gc.end = gc.collector.Snapshot()
	debug.SetGCPercent(gc.oldPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	delta := gc.end.Since(gc.start)
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.end.HeapAlloc).
		Uint64("allocated_bytes", delta.Allocated).
		Uint32("gc_cycles", delta.GCCycles).
		Msg("gc resumed")
}

// Stats returns the allocations made between Begin and End. It is zero
// when the controller was inactive.
func (gc *GCController) Stats() AllocDelta {
	return gc.end.Since(gc.start)
}
