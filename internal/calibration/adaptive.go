package calibration

import (
	"runtime"
	"slices"

	"golang.org/x/sys/cpu"
)

// ─────────────────────────────────────────────────────────────────────────────
// Candidate Operand Sizes
// ─────────────────────────────────────────────────────────────────────────────

// GenerateSizes returns operand sizes (in limbs) from lo to hi growing by
// roughly ratio/8 per step. Sizes are distinct and sorted.
func GenerateSizes(lo, hi int, ratio8 int) []int {
	if lo < 1 || hi < lo || ratio8 <= 8 {
		return nil
	}
	var sizes []int
	for n := lo; n <= hi; n = max(n+1, n*ratio8/8) {
		sizes = append(sizes, n)
	}
	if sizes[len(sizes)-1] != hi {
		sizes = append(sizes, hi)
	}
	return slices.Compact(sizes)
}

// sizeRange is the search window of one crossover.
type sizeRange struct{ lo, hi int }

// searchWindows widens the windows on CPUs whose fast multiply pushes the
// crossovers upwards.
func searchWindows() map[string]sizeRange {
	scale := 1
	if (runtime.GOARCH == "amd64" && cpu.X86.HasBMI2 && cpu.X86.HasADX) || cpu.ARM64.HasASIMD {
		scale = 2
	}
	return map[string]sizeRange{
		"mult":  {4, 48 * scale},
		"toom3": {40, 300 * scale},
		"toom4": {150, 1200 * scale},
		"div":   {8, 600 * scale},
		"gcd":   {4, 96 * scale},
	}
}

// GenerateFullSizes returns the sizes measured by a full calibration.
func GenerateFullSizes(name string) []int {
	w := searchWindows()[name]
	return GenerateSizes(w.lo, w.hi, 10)
}

// GenerateQuickSizes returns a short size list for startup calibration.
func GenerateQuickSizes(name string) []int {
	w := searchWindows()[name]
	return GenerateSizes(w.lo, w.hi, 16)
}

// CPUFeatures lists the CPU features that influence the crossovers. A
// profile is only reused on a machine reporting the same list.
func CPUFeatures() []string {
	var f []string
	add := func(ok bool, name string) {
		if ok {
			f = append(f, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasBMI1, "bmi1")
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasADX, "adx")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasATOMICS, "atomics")
		add(cpu.ARM64.HasCRC32, "crc32")
	}
	return f
}
