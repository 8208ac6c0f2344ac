package calibration

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/agbru/einteger"
	"github.com/agbru/einteger/internal/config"
	apperrors "github.com/agbru/einteger/internal/errors"
)

func tinyOptions() Options {
	return Options{
		Sizes: func(name string) []int {
			switch name {
			case "toom3", "toom4":
				return []int{12, 24}
			}
			return []int{4, 8}
		},
		MinDuration: time.Microsecond,
		Seed:        7,
	}
}

func TestGenerateSizes(t *testing.T) {
	t.Parallel()
	sizes := GenerateSizes(4, 48, 10)
	if sizes[0] != 4 || sizes[len(sizes)-1] != 48 || !slices.IsSorted(sizes) {
		t.Errorf("GenerateSizes = %v", sizes)
	}
	if len(slices.Compact(slices.Clone(sizes))) != len(sizes) {
		t.Errorf("duplicate sizes in %v", sizes)
	}
	for _, bad := range [][3]int{{0, 10, 10}, {10, 5, 10}, {4, 48, 8}} {
		if s := GenerateSizes(bad[0], bad[1], bad[2]); s != nil {
			t.Errorf("GenerateSizes%v = %v, want nil", bad, s)
		}
	}
	for _, name := range []string{"mult", "toom3", "toom4", "div", "gcd"} {
		if len(GenerateQuickSizes(name)) > len(GenerateFullSizes(name)) {
			t.Errorf("%s: quick list longer than full list", name)
		}
	}
}

func TestRandomOperandSize(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{1, 2, 17, 100} {
		x := RandomOperand(rng, n)
		if x.Sign() <= 0 || x.WordCount() != n {
			t.Errorf("RandomOperand(%d): sign %d words %d", n, x.Sign(), x.WordCount())
		}
	}
}

func TestPickThreshold(t *testing.T) {
	t.Parallel()
	ms := time.Millisecond
	lowerWins := Sample{Lower: ms, Upper: 2 * ms}
	upperWins := Sample{Lower: 2 * ms, Upper: ms}
	at := func(s Sample, n int) Sample { s.Size = n; return s }

	tests := []struct {
		name    string
		samples []Sample
		below   bool
		want    int
	}{
		{"empty", nil, false, 0},
		{"crossover", []Sample{at(lowerWins, 10), at(lowerWins, 20), at(upperWins, 30), at(upperWins, 40)}, false, 30},
		{"crossover below", []Sample{at(lowerWins, 10), at(lowerWins, 20), at(upperWins, 30)}, true, 20},
		{"noisy early win", []Sample{at(upperWins, 10), at(lowerWins, 20), at(upperWins, 30)}, false, 30},
		{"never wins", []Sample{at(lowerWins, 10), at(lowerWins, 20)}, false, 40},
		{"always wins below", []Sample{at(upperWins, 10), at(upperWins, 20)}, true, 9},
	}
	for _, tt := range tests {
		if got := pickThreshold(tt.samples, tt.below); got != tt.want {
			t.Errorf("%s: pickThreshold = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestAssembleClamps(t *testing.T) {
	t.Parallel()
	th, _, err := assemble([]Crossover{
		{Name: "mult", Threshold: 1},
		{Name: "toom3", Threshold: 500},
		{Name: "toom4", Threshold: 100},
		{Name: "div", Threshold: 2},
		{Name: "gcd", Threshold: 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := einteger.Thresholds{MultRecursion: 2, Toom3: 500, Toom4: 500, RecursiveDivision: 4,
		GcdSubquadratic: einteger.DefaultGcdSubquadraticThreshold}
	if th != want {
		t.Errorf("assemble = %+v, want %+v", th, want)
	}
}

func TestCalibrate(t *testing.T) {
	t.Parallel()
	var calls, lastTotal int
	opts := tinyOptions()
	opts.Progress = func(done, total int) { calls, lastTotal = done, total }

	th, crossovers, err := Calibrate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if err := th.Validate(); err != nil {
		t.Errorf("thresholds invalid: %v", err)
	}
	if len(crossovers) != 5 || calls != 10 || lastTotal != 10 {
		t.Errorf("crossovers %d, progress %d/%d", len(crossovers), calls, lastTotal)
	}
	for _, c := range crossovers {
		if len(c.Samples) != 2 || c.Samples[0].Lower <= 0 {
			t.Errorf("%s: samples %+v", c.Name, c.Samples)
		}
	}
}

func TestCalibrateCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Calibrate(ctx, tinyOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestPrintCalibrationResults(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	printCalibrationResults(&out, []Crossover{{
		Name: "toom3", Lower: "karatsuba", Upper: "toom3", Threshold: 120,
		Samples: []Sample{{Size: 100, Lower: time.Millisecond, Upper: 2 * time.Millisecond}},
	}})
	for _, want := range []string{"Calibration Summary", "karatsuba", "100", "chosen:", "120"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output lacks %q:\n%s", want, out.String())
		}
	}
}

func TestLoadCachedCalibration(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "p.json")
	if _, ok := LoadCachedCalibration(config.AppConfig{}, path); ok {
		t.Fatal("missing profile applied")
	}
	p := NewProfile()
	p.Thresholds.Toom3, p.Thresholds.Toom4 = 90, 360
	if err := p.SaveProfile(path); err != nil {
		t.Fatal(err)
	}
	cfg, ok := LoadCachedCalibration(config.AppConfig{Toom3Threshold: 64}, path)
	if !ok {
		t.Fatal("valid profile not applied")
	}
	if cfg.Toom3Threshold != 64 || cfg.Toom4Threshold != 360 {
		t.Errorf("explicit value must win: %+v", cfg)
	}
}

func TestRunCalibrationCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	code := RunCalibration(ctx, &out, filepath.Join(t.TempDir(), "p.json"), nil)
	if code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}
