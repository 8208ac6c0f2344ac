package einteger

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Scratch Limb Pools
// ─────────────────────────────────────────────────────────────────────────────

// Scratch buffers for the recursive multiply and divide paths are pooled by
// power-of-4 size classes: 64, 256, 1K, 4K, 16K, 64K, 256K and 1M limbs.
// Pooled buffers never become part of a returned value.
var scratchPools = [...]sync.Pool{
	{New: func() any { return make([]uint16, 64) }},
	{New: func() any { return make([]uint16, 256) }},
	{New: func() any { return make([]uint16, 1024) }},
	{New: func() any { return make([]uint16, 4096) }},
	{New: func() any { return make([]uint16, 16384) }},
	{New: func() any { return make([]uint16, 65536) }},
	{New: func() any { return make([]uint16, 262144) }},
	{New: func() any { return make([]uint16, 1048576) }},
}

var scratchSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576}

// scratchPoolIndex returns the size class for n limbs, or -1 when n is too
// large to pool. Size class i holds 4^(i+3) limbs.
func scratchPoolIndex(n int) int {
	if n <= 0 {
		return 0
	}
	if n > scratchSizes[len(scratchSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(n-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// acquireScratch returns a zeroed buffer of exactly n limbs.
//
//	buf := acquireScratch(n)
//	defer releaseScratch(buf)
func acquireScratch(n int) nat {
	idx := scratchPoolIndex(n)
	if idx < 0 {
		return make(nat, n)
	}
	buf := scratchPools[idx].Get().([]uint16)
	clear(buf[:n])
	return buf[:n]
}

// releaseScratch returns buf to its pool. Buffers that did not come from
// acquireScratch are left to the garbage collector.
func releaseScratch(buf nat) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := scratchPoolIndex(c)
	if idx >= 0 && scratchSizes[idx] == c {
		scratchPools[idx].Put([]uint16(buf[:c]))
	}
}
