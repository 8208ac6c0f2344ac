package tui

import (
	"context"
	"io"
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/einteger"
	"github.com/agbru/einteger/internal/calc"
	"github.com/agbru/einteger/internal/calibration"
	"github.com/agbru/einteger/internal/config"
	apperrors "github.com/agbru/einteger/internal/errors"
	"github.com/agbru/einteger/internal/orchestration"
)

// Sweep defaults. Sizes are operand lengths in limbs and double from
// MinWords up to MaxWords.
const (
	DefaultSweepOp  = "mul"
	DefaultMinWords = 16
	DefaultMaxWords = 4096
)

// SweepConfig describes one benchmark sweep.
type SweepConfig struct {
	Op       string
	MinWords int
	MaxWords int
	Seed     uint64
}

// SweepConfigFor derives the sweep from the command line. The operation
// given on the command line is swept when it has several algorithm
// variants; multiplication otherwise.
func SweepConfigFor(cfg config.AppConfig) SweepConfig {
	sc := SweepConfig{Op: DefaultSweepOp, MinWords: DefaultMinWords, MaxWords: DefaultMaxWords, Seed: 1}
	if len(orchestration.VariantNames(cfg.Op, calc.DefaultRegistry())) > 1 {
		sc.Op = cfg.Op
	}
	// Division sweeps use a dividend twice the size.
	if limit := cfg.MaxOperandWords / 2; limit > 0 && sc.MaxWords > limit {
		sc.MaxWords = max(limit, sc.MinWords)
	}
	return sc
}

// Sizes lists the swept operand sizes in increasing order.
func (sc SweepConfig) Sizes() []int {
	var sizes []int
	for n := max(sc.MinWords, 1); n <= sc.MaxWords; n *= 2 {
		sizes = append(sizes, n)
	}
	return sizes
}

// sweepOperands returns random arguments of op at size n.
func sweepOperands(rng *rand.Rand, op string, n int) []*einteger.EInteger {
	switch op {
	case "sqr":
		return []*einteger.EInteger{calibration.RandomOperand(rng, n)}
	case "div", "rem", "divrem":
		return []*einteger.EInteger{calibration.RandomOperand(rng, 2*n), calibration.RandomOperand(rng, n)}
	}
	return []*einteger.EInteger{calibration.RandomOperand(rng, n), calibration.RandomOperand(rng, n)}
}

// runSweep measures every variant of sc.Op at every size and returns the
// exit code. Inconsistent sizes are reported and the sweep continues;
// cancellation stops it between sizes.
func runSweep(ctx context.Context, ref *programRef, gate *pauseGate, sc SweepConfig, gen uint64) int {
	variants := orchestration.VariantsFor(sc.Op, calc.DefaultRegistry())
	rng := rand.New(rand.NewPCG(sc.Seed, sc.Seed^0x9e3779b97f4a7c15))
	reporter := &TUIProgressReporter{ref: ref}
	opts := orchestration.PresentationOptions{Op: sc.Op}

	exitCode := apperrors.ExitSuccess
	for i, n := range sc.Sizes() {
		if err := gate.Wait(ctx); err != nil {
			return apperrors.ExitCodeFor(err)
		}
		ref.Send(SizeStartedMsg{Index: i, Words: n, Generation: gen})

		args := sweepOperands(rng, sc.Op, n)
		results := orchestration.ExecuteVariants(ctx, variants, args, reporter, io.Discard)
		if err := ctx.Err(); err != nil {
			return apperrors.ExitCodeFor(err)
		}

		presenter := &TUIResultPresenter{ref: ref, words: n, generation: gen}
		if code := orchestration.AnalyzeComparisonResults(results, opts, presenter, io.Discard); code != apperrors.ExitSuccess {
			exitCode = code
		}
	}
	return exitCode
}

// startSweepCmd runs the sweep off the UI goroutine.
func startSweepCmd(ref *programRef, gate *pauseGate, ctx context.Context, sc SweepConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		return SweepCompleteMsg{ExitCode: runSweep(ctx, ref, gate, sc, gen), Generation: gen}
	}
}
