package calc

import (
	"errors"
	"testing"

	"github.com/agbru/einteger"
	apperrors "github.com/agbru/einteger/internal/errors"
)

func TestParseOperand(t *testing.T) {
	t.Parallel()
	vars := Vars{"x": einteger.FromInt64(42), LastResult: einteger.FromInt64(-7)}
	tests := []struct {
		in    string
		radix int
		want  string
	}{
		{"123", 10, "123"},
		{"-123", 10, "-123"},
		{"ff", 16, "255"},
		{"0xff", 10, "255"},
		{"-0x10", 10, "-16"},
		{"0b1010", 10, "10"},
		{"0o777", 10, "511"},
		{"1_000_000", 10, "1000000"},
		{"zz", 36, "1295"},
		{"$x", 10, "42"},
		{"$", 10, "-7"},
		{"$_", 10, "-7"},
	}
	for _, tt := range tests {
		got, err := ParseOperand(tt.in, tt.radix, vars)
		if err != nil {
			t.Errorf("ParseOperand(%q): %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseOperand(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseOperandErrors(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "-", "12a", "0x", "0xg", "$nope", "+5", " 1"} {
		_, err := ParseOperand(in, 10, nil)
		var valErr apperrors.ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("ParseOperand(%q) err = %v, want ValidationError", in, err)
		}
	}
}

func TestParseOperands(t *testing.T) {
	t.Parallel()
	xs, err := ParseOperands([]string{"1", "0x2", "-3"}, 10, nil)
	if err != nil || len(xs) != 3 || xs[1].String() != "2" {
		t.Fatalf("ParseOperands = %v, %v", xs, err)
	}
	if _, err := ParseOperands([]string{"1", "x"}, 10, nil); err == nil {
		t.Error("expected error for bad operand")
	}
}

func TestParseStatement(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line    string
		want    Statement
		wantErr bool
	}{
		{"add 1 2", Statement{Op: "add", Args: []string{"1", "2"}}, false},
		{"  MUL   $x  3 ", Statement{Op: "mul", Args: []string{"$x", "3"}}, false},
		{"y = sqrt 99", Statement{Assign: "y", Op: "sqrt", Args: []string{"99"}}, false},
		{"v2 = neg 1", Statement{Assign: "v2", Op: "neg", Args: []string{"1"}}, false},
		{"x =", Statement{}, true},
		{"2x = add 1 1", Statement{}, true},
		{"_ = add 1 1", Statement{}, true},
		{"", Statement{}, true},
	}
	for _, tt := range tests {
		got, err := ParseStatement(tt.line)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatement(%q) err = %v", tt.line, err)
			continue
		}
		if tt.wantErr {
			continue
		}
		if got.Assign != tt.want.Assign || got.Op != tt.want.Op || len(got.Args) != len(tt.want.Args) {
			t.Errorf("ParseStatement(%q) = %+v, want %+v", tt.line, got, tt.want)
			continue
		}
		for i := range got.Args {
			if got.Args[i] != tt.want.Args[i] {
				t.Errorf("ParseStatement(%q) arg %d = %q", tt.line, i, got.Args[i])
			}
		}
	}
}
