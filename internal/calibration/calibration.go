// Package calibration measures the engine's algorithm crossovers on the
// current machine and caches the resulting thresholds in a JSON profile.
package calibration

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/agbru/einteger"
	"github.com/agbru/einteger/internal/config"
	apperrors "github.com/agbru/einteger/internal/errors"
)

// Sample holds the timings of the two competing algorithms at one size.
type Sample struct {
	Size  int
	Lower time.Duration
	Upper time.Duration
}

// UpperWins reports whether the asymptotically faster algorithm won.
func (s Sample) UpperWins() bool { return s.Upper < s.Lower }

// Crossover is the measurement of one threshold.
type Crossover struct {
	// Name is the threshold: "mult", "toom3", "toom4", "div" or "gcd".
	Name         string
	Lower, Upper string
	Samples      []Sample
	Threshold    int
}

// Options controls a calibration run.
type Options struct {
	// Sizes returns the operand sizes to measure for a crossover name.
	Sizes func(name string) []int
	// MinDuration is the minimum accumulated time per measurement.
	MinDuration time.Duration
	// Seed makes operand generation reproducible.
	Seed uint64
	// Progress, when set, is called after every measured size.
	Progress func(done, total int)
}

// FullOptions is used by --calibrate.
func FullOptions() Options {
	return Options{Sizes: GenerateFullSizes, MinDuration: 20 * time.Millisecond, Seed: 1}
}

// QuickOptions is used by --auto-calibrate.
func QuickOptions() Options {
	return Options{Sizes: GenerateQuickSizes, MinDuration: 3 * time.Millisecond, Seed: 1}
}

// benchmark describes a crossover: how to build operands of a given size
// and the two timed functions.
type benchmark struct {
	name, lower, upper string
	// operands returns the arguments for size n.
	operands func(rng *rand.Rand, n int) []*einteger.EInteger
	lowerFn  func(a []*einteger.EInteger)
	upperFn  func(a []*einteger.EInteger)
	// below reports thresholds as "largest size using lower" instead of
	// "smallest size using upper".
	below bool
}

func twoOperands(rng *rand.Rand, n int) []*einteger.EInteger {
	return []*einteger.EInteger{RandomOperand(rng, n), RandomOperand(rng, n)}
}

func mulWith(alg einteger.MulAlgorithm) func(a []*einteger.EInteger) {
	return func(a []*einteger.EInteger) { a[0].MultiplyUsing(a[1], alg) }
}

func divWith(alg einteger.DivAlgorithm) func(a []*einteger.EInteger) {
	return func(a []*einteger.EInteger) { _, _, _ = a[0].DivideUsing(a[1], alg) }
}

func gcdWith(alg einteger.GcdAlgorithm) func(a []*einteger.EInteger) {
	return func(a []*einteger.EInteger) { a[0].GcdUsing(a[1], alg) }
}

var benchmarks = []benchmark{
	{"mult", "schoolbook", "karatsuba", twoOperands, mulWith(einteger.MulSchoolbook), mulWith(einteger.MulKaratsuba), true},
	{"toom3", "karatsuba", "toom3", twoOperands, mulWith(einteger.MulKaratsuba), mulWith(einteger.MulToom3), false},
	{"toom4", "toom3", "toom4", twoOperands, mulWith(einteger.MulToom3), mulWith(einteger.MulToom4), false},
	{"div", "schoolbook", "recursive", func(rng *rand.Rand, n int) []*einteger.EInteger {
		return []*einteger.EInteger{RandomOperand(rng, 2*n), RandomOperand(rng, n)}
	}, divWith(einteger.DivSchoolbook), divWith(einteger.DivRecursive), false},
	{"gcd", "lehmer", "halfgcd", twoOperands, gcdWith(einteger.GcdLehmer), gcdWith(einteger.GcdHalf), true},
}

// RandomOperand returns a positive value of exactly n limbs.
func RandomOperand(rng *rand.Rand, n int) *einteger.EInteger {
	b := make([]byte, 2*n+1)
	for i := 1; i < len(b); i++ {
		b[i] = byte(rng.Uint32())
	}
	b[1] |= 0x80
	x, err := einteger.FromBytes(b, false)
	if err != nil {
		panic(err)
	}
	return x
}

// measure returns the mean time of fn over enough runs to fill minDur.
func measure(fn func(), minDur time.Duration) time.Duration {
	fn() // warm pools and caches
	runs := 0
	start := time.Now()
	for {
		fn()
		runs++
		if el := time.Since(start); el >= minDur {
			return el / time.Duration(runs)
		}
	}
}

// Calibrate measures every crossover and returns validated thresholds.
// It stops between measurements when ctx is done.
func Calibrate(ctx context.Context, opts Options) (einteger.Thresholds, []Crossover, error) {
	if opts.Sizes == nil {
		opts.Sizes = GenerateFullSizes
	}
	total := 0
	for _, b := range benchmarks {
		total += len(opts.Sizes(b.name))
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9E3779B97F4A7C15))

	done := 0
	crossovers := make([]Crossover, 0, len(benchmarks))
	for _, b := range benchmarks {
		c := Crossover{Name: b.name, Lower: b.lower, Upper: b.upper}
		for _, n := range opts.Sizes(b.name) {
			if err := ctx.Err(); err != nil {
				return einteger.Thresholds{}, nil, err
			}
			args := b.operands(rng, n)
			c.Samples = append(c.Samples, Sample{
				Size:  n,
				Lower: measure(func() { b.lowerFn(args) }, opts.MinDuration),
				Upper: measure(func() { b.upperFn(args) }, opts.MinDuration),
			})
			done++
			if opts.Progress != nil {
				opts.Progress(done, total)
			}
		}
		c.Threshold = pickThreshold(c.Samples, b.below)
		crossovers = append(crossovers, c)
	}
	return assemble(crossovers)
}

// pickThreshold returns the first size from which the upper algorithm
// wins at every remaining sample, which ignores isolated noisy wins. With
// below set, the size just before it is returned.
func pickThreshold(samples []Sample, below bool) int {
	if len(samples) == 0 {
		return 0
	}
	idx := len(samples)
	for i := len(samples) - 1; i >= 0 && samples[i].UpperWins(); i-- {
		idx = i
	}
	var th int
	switch {
	case idx == len(samples):
		// The upper algorithm never won: move the threshold past the window.
		th = 2 * samples[len(samples)-1].Size
	case below && idx > 0:
		th = samples[idx-1].Size
	case below:
		th = samples[0].Size - 1
	default:
		th = samples[idx].Size
	}
	return th
}

// assemble converts crossovers into thresholds, clamping them into the
// ranges the engine accepts.
func assemble(crossovers []Crossover) (einteger.Thresholds, []Crossover, error) {
	t := einteger.DefaultThresholds()
	low := einteger.MinimumThresholds()
	for _, c := range crossovers {
		if c.Threshold == 0 {
			continue
		}
		switch c.Name {
		case "mult":
			t.MultRecursion = max(c.Threshold, low.MultRecursion)
		case "toom3":
			t.Toom3 = max(c.Threshold, low.Toom3)
		case "toom4":
			t.Toom4 = c.Threshold
		case "div":
			t.RecursiveDivision = max(c.Threshold, low.RecursiveDivision)
		case "gcd":
			t.GcdSubquadratic = max(c.Threshold, low.GcdSubquadratic)
		}
	}
	t.Toom4 = max(t.Toom4, t.Toom3)
	if err := t.Validate(); err != nil {
		return einteger.DefaultThresholds(), crossovers, err
	}
	return t, crossovers, nil
}

// RunCalibration performs a full calibration, prints the report and saves
// the profile to path (the default path when empty). It returns an exit
// code.
func RunCalibration(ctx context.Context, out io.Writer, path string, progress func(done, total int)) int {
	opts := FullOptions()
	opts.Progress = progress
	start := time.Now()
	th, crossovers, err := Calibrate(ctx, opts)
	if err != nil {
		return apperrors.HandleCalculationError(err, time.Since(start), out, nil)
	}
	printCalibrationResults(out, crossovers)

	p := NewProfile()
	p.Thresholds = th
	p.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	if path == "" {
		path = GetDefaultProfilePath()
	}
	if err := p.SaveProfile(path); err != nil {
		return apperrors.HandleCalculationError(err, 0, out, nil)
	}
	printProfileSaved(out, p, path)
	return apperrors.ExitSuccess
}

// AutoCalibrate runs a quick calibration and applies its thresholds to the
// fields of cfg the user did not set. The profile is cached on success.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer) (config.AppConfig, bool) {
	start := time.Now()
	th, _, err := Calibrate(ctx, QuickOptions())
	if err != nil {
		return cfg, false
	}
	updated := fillUnset(cfg, th)
	p := NewProfile()
	p.Thresholds = updated.Thresholds()
	p.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	path := cfg.CalibrationProfile
	if path == "" {
		path = GetDefaultProfilePath()
	}
	_ = p.SaveProfile(path)
	printCalibrationOutput(updated, out)
	return updated, true
}

// LoadCachedCalibration applies a valid, fresh cached profile to the unset
// thresholds of cfg.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	p, loaded := LoadOrCreateProfile(path)
	if !loaded {
		return cfg, false
	}
	return fillUnset(cfg, p.Thresholds), true
}

// fillUnset copies t into the zero threshold fields of cfg.
func fillUnset(cfg config.AppConfig, t einteger.Thresholds) config.AppConfig {
	fill := func(dst *int, v int) {
		if *dst == 0 {
			*dst = v
		}
	}
	fill(&cfg.MultThreshold, t.MultRecursion)
	fill(&cfg.Toom3Threshold, t.Toom3)
	fill(&cfg.Toom4Threshold, t.Toom4)
	fill(&cfg.DivThreshold, t.RecursiveDivision)
	fill(&cfg.GcdThreshold, t.GcdSubquadratic)
	return cfg
}
