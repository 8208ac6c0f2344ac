package tui

import (
	"time"

	"github.com/agbru/einteger/internal/orchestration"
)

// ProgressMsg reports variant progress within the current sweep size.
type ProgressMsg struct {
	VariantIndex    int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg is sent when every variant of one size has finished.
type ProgressDoneMsg struct{}

// SizeStartedMsg announces the operand size about to be measured.
type SizeStartedMsg struct {
	Index      int
	Words      int
	Generation uint64
}

// SizeResultsMsg carries the timings of every variant at one size.
type SizeResultsMsg struct {
	Words      int
	Results    []orchestration.CalculationResult
	Generation uint64
}

// ErrorMsg reports a failed or inconsistent size.
type ErrorMsg struct {
	Err        error
	Words      int
	Duration   time.Duration
	Generation uint64
}

// SweepCompleteMsg is sent when the sweep ends, normally or not.
type SweepCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg holds a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg holds a system-wide CPU and memory sample plus the
// resident set of the process.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	ProcessRSS uint64
}

// ContextCancelledMsg is sent when the sweep context is done.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
