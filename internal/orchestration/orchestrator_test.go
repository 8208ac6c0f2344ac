package orchestration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agbru/einteger"
	"github.com/agbru/einteger/internal/calc"
	apperrors "github.com/agbru/einteger/internal/errors"
	"github.com/agbru/einteger/internal/oracle"
)

// mockPresenter records what it was asked to present.
type mockPresenter struct {
	tableRows int
	presented *CalculationResult
	handled   error
}

func (m *mockPresenter) PresentComparisonTable(results []CalculationResult, _ io.Writer) {
	m.tableRows = len(results)
}

func (m *mockPresenter) PresentResult(r CalculationResult, _ PresentationOptions, _ io.Writer) {
	m.presented = &r
}

func (m *mockPresenter) HandleError(err error, _ time.Duration, _ io.Writer) int {
	m.handled = err
	return apperrors.ExitCodeFor(err)
}

// stubVariant returns fixed values after an optional delay.
type stubVariant struct {
	name   string
	values []*einteger.EInteger
	err    error
	delay  time.Duration
}

func (s stubVariant) Name() string { return s.name }

func (s stubVariant) Run(ctx context.Context, _ []*einteger.EInteger) ([]*einteger.EInteger, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.values, s.err
}

func vals(xs ...int64) []*einteger.EInteger {
	out := make([]*einteger.EInteger, len(xs))
	for i, x := range xs {
		out[i] = einteger.FromInt64(x)
	}
	return out
}

func TestExecuteVariantsKeepsOrder(t *testing.T) {
	t.Parallel()
	variants := []Variant{
		stubVariant{name: "slow", values: vals(1), delay: 20 * time.Millisecond},
		stubVariant{name: "fast", values: vals(1)},
		stubVariant{name: "broken", err: errors.New("boom")},
	}
	results := ExecuteVariants(context.Background(), variants, nil, NullProgressReporter{}, io.Discard)
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	for i, want := range []string{"slow", "fast", "broken"} {
		if results[i].Name != want {
			t.Errorf("result %d is %q, want %q", i, results[i].Name, want)
		}
	}
	if results[2].Err == nil || results[0].Err != nil {
		t.Errorf("errors misplaced: %+v", results)
	}
}

func TestExecuteVariantsReportsProgress(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	final := map[int]float64{}
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, n int, _ io.Writer) {
		defer wg.Done()
		for u := range ch {
			mu.Lock()
			final[u.VariantIndex] = u.Value
			mu.Unlock()
		}
	})
	variants := []Variant{stubVariant{name: "a", values: vals(1)}, stubVariant{name: "b", values: vals(1)}}
	ExecuteVariants(context.Background(), variants, nil, reporter, io.Discard)
	if final[0] != 1 || final[1] != 1 {
		t.Errorf("final progress = %v", final)
	}
}

func TestExecuteVariantsCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	variants := []Variant{
		stubVariant{name: "a", values: vals(1), delay: time.Hour},
		stubVariant{name: "b", values: vals(1), delay: time.Hour},
	}
	done := make(chan []CalculationResult)
	go func() { done <- ExecuteVariants(ctx, variants, nil, NullProgressReporter{}, io.Discard) }()
	select {
	case results := <-done:
		for _, r := range results {
			if !errors.Is(r.Err, context.DeadlineExceeded) {
				t.Errorf("%s: err = %v", r.Name, r.Err)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ExecuteVariants did not return after cancellation")
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	divErr := apperrors.CalculationError{Op: "div", Cause: einteger.ErrDivideByZero}
	tests := []struct {
		name      string
		results   []CalculationResult
		want      int
		presented bool
	}{
		{"all agree", []CalculationResult{
			{Name: "a", Values: vals(5), Duration: 2 * time.Millisecond},
			{Name: "b", Values: vals(5), Duration: time.Millisecond},
		}, apperrors.ExitSuccess, true},
		{"values differ", []CalculationResult{
			{Name: "a", Values: vals(5)},
			{Name: "b", Values: vals(6)},
		}, apperrors.ExitErrorMismatch, false},
		{"value count differs", []CalculationResult{
			{Name: "a", Values: vals(5, 1)},
			{Name: "b", Values: vals(5)},
		}, apperrors.ExitErrorMismatch, false},
		{"one fails", []CalculationResult{
			{Name: "a", Values: vals(5)},
			{Name: "b", Err: errors.New("fail")},
		}, apperrors.ExitErrorMismatch, false},
		{"all fail alike", []CalculationResult{
			{Name: "auto", Err: divErr},
			{Name: "oracle:big", Err: oracle.ErrDomain},
		}, apperrors.ExitErrorGeneric, false},
		{"unsupported oracle ignored", []CalculationResult{
			{Name: "auto", Values: vals(3)},
			{Name: "oracle:gmp", Err: oracle.ErrUnsupported},
		}, apperrors.ExitSuccess, true},
		{"timeout", []CalculationResult{
			{Name: "a", Err: context.DeadlineExceeded},
		}, apperrors.ExitErrorTimeout, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &mockPresenter{}
			var out bytes.Buffer
			got := AnalyzeComparisonResults(tt.results, PresentationOptions{Op: "test"}, p, &out)
			if got != tt.want {
				t.Errorf("exit code %d, want %d\n%s", got, tt.want, out.String())
			}
			if (p.presented != nil) != tt.presented {
				t.Errorf("presented = %v", p.presented != nil)
			}
			if p.tableRows != len(tt.results) {
				t.Errorf("table rows %d", p.tableRows)
			}
		})
	}
}

func TestAnalyzeSortsSuccessesFirst(t *testing.T) {
	t.Parallel()
	results := []CalculationResult{
		{Name: "auto", Err: oracle.ErrUnsupported},
		{Name: "slow", Values: vals(1), Duration: 3 * time.Millisecond},
		{Name: "fast", Values: vals(1), Duration: time.Millisecond},
	}
	p := &mockPresenter{}
	AnalyzeComparisonResults(results, PresentationOptions{}, p, io.Discard)
	if results[0].Name != "fast" || results[2].Name != "auto" {
		t.Errorf("order = %s, %s, %s", results[0].Name, results[1].Name, results[2].Name)
	}
	if p.presented.Name != "fast" {
		t.Errorf("presented %s", p.presented.Name)
	}
}

func TestVariantsAgreeOnRealOperands(t *testing.T) {
	t.Parallel()
	reg := calc.DefaultRegistry()
	x := einteger.One().ShiftLeft(3000).Subtract(einteger.FromInt64(12345))
	y := einteger.MustFromString("-987654321987654321987654321987654321").ShiftLeft(700)
	for _, op := range []string{"mul", "sqr", "div", "rem", "divrem", "gcd", "add"} {
		args := []*einteger.EInteger{x, y}
		if op == "sqr" {
			args = args[:1]
		}
		variants := VariantsFor(op, reg)
		big, err := oracle.New("big")
		if err != nil {
			t.Fatal(err)
		}
		variants = append(variants, OracleVariant{Op: op, Backend: big})
		results := ExecuteVariants(context.Background(), variants, args, NullProgressReporter{}, io.Discard)
		if code := AnalyzeComparisonResults(results, PresentationOptions{Op: op}, &mockPresenter{}, io.Discard); code != apperrors.ExitSuccess {
			t.Errorf("%s: variants disagree (exit %d)", op, code)
		}
	}
}

func TestSelectVariants(t *testing.T) {
	t.Parallel()
	reg := calc.DefaultRegistry()
	tests := []struct {
		op, sel string
		want    string
		wantErr bool
	}{
		{"mul", "all", "auto,schoolbook,karatsuba,toom3,toom4", false},
		{"mul", "", "auto,schoolbook,karatsuba,toom3,toom4", false},
		{"mul", "toom4, schoolbook", "schoolbook,toom4", false},
		{"mul", "KARATSUBA", "karatsuba", false},
		{"div", "recursive", "recursive", false},
		{"gcd", "halfgcd,lehmer,lehmer", "lehmer,halfgcd", false},
		{"add", "all", "auto", false},
		{"mul", "fft", "", true},
		{"frob", "all", "", true},
	}
	for _, tt := range tests {
		vs, err := SelectVariants(tt.op, tt.sel, reg)
		if (err != nil) != tt.wantErr {
			t.Errorf("SelectVariants(%s, %q) err = %v", tt.op, tt.sel, err)
			continue
		}
		if tt.wantErr {
			continue
		}
		names := make([]string, len(vs))
		for i, v := range vs {
			names[i] = v.Name()
		}
		if got := strings.Join(names, ","); got != tt.want {
			t.Errorf("SelectVariants(%s, %q) = %s, want %s", tt.op, tt.sel, got, tt.want)
		}
	}
}

func TestAllVariantNames(t *testing.T) {
	t.Parallel()
	got := strings.Join(AllVariantNames(calc.DefaultRegistry()), ",")
	want := "auto,binary,euclid,halfgcd,karatsuba,lehmer,recursive,schoolbook,toom3,toom4"
	if got != want {
		t.Errorf("AllVariantNames = %s, want %s", got, want)
	}
}
