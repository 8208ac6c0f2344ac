package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/agbru/einteger/internal/calc"
)

func runREPL(t *testing.T, input string) (*REPL, string) {
	t.Helper()
	r := NewREPL(calc.NewEvaluator(1<<16), REPLConfig{Timeout: 5 * time.Second, Digits: 10})
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	r.Start(context.Background())
	return r, out.String()
}

func TestREPL_Evaluate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"simple", "add 2 3\n", []string{"add = 5"}},
		{"last result", "mul 6 7\nadd $ 1\n", []string{"mul = 42", "add = 43"}},
		{"assignment", "x = pow 2 100\nrem $x 1000\n", []string{"x = 1267650600...6703205376", "rem = 376"}},
		{"divrem labels", "divrem 17 5\n", []string{"quotient = 3", "remainder = 2"}},
		{"truncation", "pow 10 50\n", []string{"1000000000...0000000000", "(51 digits)"}},
		{"hex toggle", "hex\nadd 255 1\n", []string{"Result radix: 16", "add = 100"}},
		{"input radix", "radix 2\nadd 101 1\n", []string{"Radix set to 2", "add = 6"}},
		{"prefix operand", "add 0xff 1\n", []string{"add = 256"}},
		{"comments and blanks", "# note\n\nneg 5\n", []string{"neg = -5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, out := runREPL(t, tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestREPL_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown command", "frobnicate 1\n", "Unknown command: frobnicate"},
		{"undefined variable", "add $y 1\n", "undefined variable"},
		{"bad operand", "add 1z 1\n", "not an integer in radix 10"},
		{"wrong arity", "add 1\n", "takes 2 operand(s)"},
		{"divide by zero", "div 1 0\n", "Error:"},
		{"bad radix", "radix 40\n", "Invalid radix: 40"},
		{"bad name", "1x = add 1 1\n", "invalid variable name"},
		{"compare without op", "compare\n", "Usage: compare"},
		{"compare unknown op", "compare frob 1\n", "unknown operation"},
		{"operand too large", "x = shl 1 2000000\nadd $x 1\n", "operand too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, out := runREPL(t, tt.input)
			if !strings.Contains(out, tt.want) {
				t.Errorf("output should contain %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestREPL_Compare(t *testing.T) {
	t.Parallel()
	r, out := runREPL(t, "compare gcd 1071 462\n")
	for _, name := range []string{"euclid", "binary", "lehmer", "halfgcd"} {
		if !strings.Contains(out, name) {
			t.Errorf("comparison should list %s:\n%s", name, out)
		}
	}
	if strings.Contains(out, "INCONSISTENT") {
		t.Errorf("variants should agree:\n%s", out)
	}
	if got := r.Vars()[calc.LastResult]; got == nil || got.String() != "21" {
		t.Errorf("$ = %v, want 21", got)
	}
}

func TestREPL_VarsAndStatus(t *testing.T) {
	t.Parallel()
	_, out := runREPL(t, "vars\na = add 1 2\nb = mul $a $a\nvars\nstatus\nops\nhelp\n")
	for _, want := range []string{"No variables defined.", "$_ = 9", "$a = 3", "$b = 9", "Operand radix:  10", "Max operand:    65536 limbs", "modpow", "Available commands:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestREPL_Exit(t *testing.T) {
	t.Parallel()
	_, out := runREPL(t, "exit\nadd 1 1\n")
	if strings.Contains(out, "add = 2") {
		t.Error("commands after exit should not run")
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Error("exit should say goodbye")
	}
}

func TestREPL_CanceledContext(t *testing.T) {
	t.Parallel()
	r := NewREPL(calc.NewEvaluator(0), REPLConfig{})
	var out bytes.Buffer
	r.SetInput(strings.NewReader("add 1 1\n"))
	r.SetOutput(&out)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.Start(ctx)
	if strings.Contains(out.String(), "add = 2") {
		t.Error("a canceled session should not evaluate")
	}
}
