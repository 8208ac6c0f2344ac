package tui

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/agbru/einteger/internal/config"
	apperrors "github.com/agbru/einteger/internal/errors"
)

func TestSweepConfig_Sizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sc   SweepConfig
		want []int
	}{
		{"default", SweepConfig{MinWords: DefaultMinWords, MaxWords: DefaultMaxWords}, []int{16, 32, 64, 128, 256, 512, 1024, 2048, 4096}},
		{"single", SweepConfig{MinWords: 8, MaxWords: 8}, []int{8}},
		{"max not a power", SweepConfig{MinWords: 4, MaxWords: 20}, []int{4, 8, 16}},
		{"empty", SweepConfig{MinWords: 64, MaxWords: 32}, nil},
		{"zero min", SweepConfig{MinWords: 0, MaxWords: 2}, []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.sc.Sizes(); !slices.Equal(got, tt.want) {
				t.Errorf("Sizes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSweepConfigFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.AppConfig
		wantOp  string
		wantMax int
	}{
		{"default", config.AppConfig{MaxOperandWords: config.DefaultMaxOperandWords}, "mul", DefaultMaxWords},
		{"gcd", config.AppConfig{Op: "gcd", MaxOperandWords: config.DefaultMaxOperandWords}, "gcd", DefaultMaxWords},
		{"single variant op", config.AppConfig{Op: "add", MaxOperandWords: config.DefaultMaxOperandWords}, "mul", DefaultMaxWords},
		{"capped", config.AppConfig{Op: "divrem", MaxOperandWords: 1000}, "divrem", 500},
		{"tiny cap", config.AppConfig{MaxOperandWords: 10}, "mul", DefaultMinWords},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sc := SweepConfigFor(tt.cfg)
			if sc.Op != tt.wantOp || sc.MaxWords != tt.wantMax {
				t.Errorf("SweepConfigFor = %+v, want op %s max %d", sc, tt.wantOp, tt.wantMax)
			}
		})
	}
}

func TestSweepOperands(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(1, 2))

	tests := []struct {
		op    string
		words []int
	}{
		{"mul", []int{8, 8}},
		{"sqr", []int{8}},
		{"divrem", []int{16, 8}},
		{"gcd", []int{8, 8}},
	}
	for _, tt := range tests {
		args := sweepOperands(rng, tt.op, 8)
		if len(args) != len(tt.words) {
			t.Fatalf("%s: %d operands, want %d", tt.op, len(args), len(tt.words))
		}
		for i, a := range args {
			if a.WordCount() != tt.words[i] || a.Sign() <= 0 {
				t.Errorf("%s operand %d: %d words sign %d", tt.op, i, a.WordCount(), a.Sign())
			}
		}
	}
}

func TestRunSweep(t *testing.T) {
	t.Parallel()
	sc := SweepConfig{Op: "mul", MinWords: 4, MaxWords: 32, Seed: 7}

	if code := runSweep(context.Background(), &programRef{}, &pauseGate{}, sc, 0); code != apperrors.ExitSuccess {
		t.Errorf("runSweep = %d, want %d", code, apperrors.ExitSuccess)
	}
}

func TestRunSweep_AllOps(t *testing.T) {
	t.Parallel()
	for _, op := range []string{"sqr", "div", "rem", "divrem", "gcd"} {
		t.Run(op, func(t *testing.T) {
			t.Parallel()
			sc := SweepConfig{Op: op, MinWords: 4, MaxWords: 16, Seed: 3}
			if code := runSweep(context.Background(), &programRef{}, &pauseGate{}, sc, 0); code != apperrors.ExitSuccess {
				t.Errorf("runSweep(%s) = %d", op, code)
			}
		})
	}
}

func TestRunSweep_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := SweepConfig{Op: "mul", MinWords: 4, MaxWords: 1 << 12, Seed: 1}
	if code := runSweep(ctx, &programRef{}, &pauseGate{}, sc, 0); code != apperrors.ExitErrorCanceled {
		t.Errorf("runSweep = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestRunSweep_CanceledWhilePaused(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	gate := &pauseGate{}
	gate.Pause()

	done := make(chan int, 1)
	go func() {
		done <- runSweep(ctx, &programRef{}, gate, SweepConfig{Op: "mul", MinWords: 4, MaxWords: 8}, 0)
	}()
	cancel()
	if code := <-done; code != apperrors.ExitErrorCanceled {
		t.Errorf("runSweep = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestStartSweepCmd(t *testing.T) {
	t.Parallel()
	cmd := startSweepCmd(&programRef{}, &pauseGate{}, context.Background(), SweepConfig{Op: "mul", MinWords: 4, MaxWords: 8}, 5)
	raw := cmd()
	msg, ok := raw.(SweepCompleteMsg)
	if !ok {
		t.Fatalf("command returned %T", raw)
	}
	if msg.Generation != 5 || msg.ExitCode != apperrors.ExitSuccess {
		t.Errorf("msg = %+v", msg)
	}
}
