package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/einteger"
	"github.com/agbru/einteger/internal/orchestration"
	"github.com/agbru/einteger/internal/ui"
)

func init() {
	ui.SetCurrentTheme(ui.NoColorTheme)
}

func pow10(n int64) *einteger.EInteger {
	v, err := einteger.Ten().Pow(n)
	if err != nil {
		panic(err)
	}
	return v
}

func result(name string, values ...*einteger.EInteger) orchestration.CalculationResult {
	return orchestration.CalculationResult{Name: name, Values: values, Duration: 1500 * time.Microsecond}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()
	big := pow10(60)

	tests := []struct {
		name          string
		x             *einteger.EInteger
		radix, digits int
		verbose       bool
		want          string
		truncated     bool
	}{
		{"short", einteger.FromInt64(-12345), 10, 4, false, "-12345", false},
		{"truncated", big, 10, 5, false, "10000...00000", true},
		{"verbose", big, 10, 5, true, "1" + strings.Repeat("0", 60), false},
		{"digits zero", big, 10, 0, false, "1" + strings.Repeat("0", 60), false},
		{"hex", einteger.FromInt64(255), 16, 4, false, "FF", false},
		{"negative base 36", einteger.FromInt64(-46655), 36, 4, false, "-ZZZ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, truncated, err := FormatValue(tt.x, tt.radix, tt.digits, tt.verbose)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("FormatValue = (%q, %v), want (%q, %v)", got, truncated, tt.want, tt.truncated)
			}
		})
	}

	if _, _, err := FormatValue(big, 1, 0, false); err == nil {
		t.Error("FormatValue with radix 1 should fail")
	}
}

func TestValueLabels(t *testing.T) {
	t.Parallel()
	tests := []struct {
		op   string
		n    int
		want string
	}{
		{"mul", 1, "mul"},
		{"divrem", 2, "quotient,remainder"},
		{"sqrtrem", 2, "root,remainder"},
		{"other", 2, "other[0],other[1]"},
	}
	for _, tt := range tests {
		if got := strings.Join(valueLabels(tt.op, tt.n), ","); got != tt.want {
			t.Errorf("valueLabels(%s, %d) = %s, want %s", tt.op, tt.n, got, tt.want)
		}
	}
}

func TestDisplayResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   orchestration.CalculationResult
		opts     orchestration.PresentationOptions
		contains []string
		excludes []string
	}{
		{
			name:     "grouped decimal",
			result:   result("auto", einteger.FromInt64(1234567)),
			opts:     orchestration.PresentationOptions{Op: "mul", Radix: 10, Digits: 40},
			contains: []string{"--- Result ---", "mul = 1,234,567"},
			excludes: []string{"Details", "truncated"},
		},
		{
			name:     "details",
			result:   result("toom3", einteger.FromInt64(255)),
			opts:     orchestration.PresentationOptions{Op: "add", Radix: 10, Details: true},
			contains: []string{"--- Details ---", "toom3", "1ms", "8 bits", "3 decimal digits", "1 limbs"},
		},
		{
			name:     "truncated",
			result:   result("auto", pow10(200)),
			opts:     orchestration.PresentationOptions{Op: "pow", Radix: 10, Digits: 10},
			contains: []string{"(truncated)", "Tip: use -v"},
		},
		{
			name:     "verbose",
			result:   result("auto", pow10(200)),
			opts:     orchestration.PresentationOptions{Op: "pow", Radix: 10, Digits: 10, Verbose: true},
			excludes: []string{"(truncated)"},
		},
		{
			name:     "two values in hex",
			result:   result("auto", einteger.FromInt64(3), einteger.FromInt64(31)),
			opts:     orchestration.PresentationOptions{Op: "divrem", Radix: 16},
			contains: []string{"quotient = 3 (radix 16)", "remainder = 1F (radix 16)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			DisplayResult(tt.result, tt.opts, &buf)
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output should contain %q:\n%s", s, out)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := DisplayQuietResult(&buf, []*einteger.EInteger{einteger.FromInt64(-7), einteger.FromInt64(10)}, 2); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "-111\n1010\n" {
		t.Errorf("quiet output = %q", got)
	}
}

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	testCases := []struct {
		name       string
		outputFile string
		checkFunc  func(t *testing.T, filePath string)
	}{
		{
			name:       "Write decimal result to file",
			outputFile: filepath.Join(tmpDir, "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatalf("Failed to read output file: %v", err)
				}
				s := string(content)
				for _, want := range []string{"# Operation: mul 6 7", "# Variant: karatsuba", "mul =\n42\n"} {
					if !strings.Contains(s, want) {
						t.Errorf("file should contain %q:\n%s", want, s)
					}
				}
			},
		},
		{
			name:       "Empty output file (no write)",
			outputFile: "",
		},
		{
			name:       "Create nested directory",
			outputFile: filepath.Join(tmpDir, "nested", "dir", "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				if _, err := os.Stat(filePath); err != nil {
					t.Errorf("File should exist in nested directory: %v", err)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := OutputConfig{OutputFile: tc.outputFile, Radix: 10}
			if err := WriteResultToFile(result("karatsuba", einteger.FromInt64(42)), "mul", []string{"6", "7"}, cfg); err != nil {
				t.Fatalf("WriteResultToFile: %v", err)
			}
			if tc.checkFunc != nil {
				tc.checkFunc(t, tc.outputFile)
			}
		})
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out.txt")

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := DisplayResultWithConfig(&buf, result("auto", einteger.FromInt64(99)), "add", nil, OutputConfig{Quiet: true, Radix: 10})
		if err != nil {
			t.Fatal(err)
		}
		if buf.String() != "99\n" {
			t.Errorf("quiet output = %q", buf.String())
		}
	})

	t.Run("saved", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := DisplayResultWithConfig(&buf, result("auto", einteger.FromInt64(99)), "add", nil, OutputConfig{OutputFile: path, Radix: 10})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "Result saved to: "+path) {
			t.Errorf("output should mention the file:\n%s", buf.String())
		}
	})
}
