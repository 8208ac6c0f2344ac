package metrics

import (
	"testing"

	"github.com/agbru/einteger"
)

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemoryCollector_Delta(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()

	x := einteger.One().ShiftLeft(1 << 20)
	_ = x.Multiply(x)

	after := mc.Snapshot()
	if after.Sys < before.Sys {
		t.Error("Sys should not decrease between snapshots")
	}
	d := after.Since(before)
	if d.Allocated < (1<<20)/8 {
		t.Errorf("Allocated = %d, want at least the operand size", d.Allocated)
	}
}

func TestMemorySnapshot_SinceSwapped(t *testing.T) {
	t.Parallel()

	a := MemorySnapshot{TotalAlloc: 100, NumGC: 3}
	b := MemorySnapshot{TotalAlloc: 50, NumGC: 1}
	if d := b.Since(a); d != (AllocDelta{}) {
		t.Errorf("Since on swapped snapshots = %+v, want zero", d)
	}
	if d := a.Since(b); d.Allocated != 50 || d.GCCycles != 2 {
		t.Errorf("Since = %+v, want {50 2}", d)
	}
}
