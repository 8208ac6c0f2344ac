package oracle

import (
	"errors"
	"math/big"
	"testing"

	"github.com/agbru/einteger"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBigConversions(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"0", "1", "-1", "127", "128", "-128", "-129", "255", "65535", "-65536",
		"340282366920938463463374607431768211456", "-340282366920938463463374607431768211457"} {
		x := einteger.MustFromString(s)
		b := ToBig(x)
		if b.String() != s {
			t.Errorf("ToBig(%s) = %s", s, b)
		}
		if back := FromBig(b); !back.Equals(x) {
			t.Errorf("FromBig(ToBig(%s)) = %s", s, back)
		}
	}
}

func TestConversionProperties(t *testing.T) {
	t.Parallel()
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 300
	properties := gopter.NewProperties(params)

	properties.Property("FromBig inverts ToBig", prop.ForAll(
		func(b []byte, neg bool) bool {
			v := new(big.Int).SetBytes(b)
			if neg {
				v.Neg(v)
			}
			return ToBig(FromBig(v)).Cmp(v) == 0 && FromBig(v).String() == v.String()
		},
		gen.SliceOf(gen.UInt8()),
		gen.Bool(),
	))
	properties.TestingRun(t)
}

func TestNewBackend(t *testing.T) {
	t.Parallel()
	b, err := New("big")
	if err != nil || b.Name() != "big" {
		t.Fatalf("New(big) = %v, %v", b, err)
	}
	if _, err := New("python"); err == nil {
		t.Error("unknown backend accepted")
	}
	found := false
	for _, n := range Available() {
		found = found || n == "big"
	}
	if !found {
		t.Errorf("Available() = %v", Available())
	}
}

func TestBigBackendEval(t *testing.T) {
	t.Parallel()
	b := BigBackend{}
	tests := []struct {
		op   string
		args []string
		want []string
	}{
		{"divrem", []string{"-7", "2"}, []string{"-3", "-1"}},
		{"mod", []string{"-7", "5"}, []string{"3"}},
		{"lcm", []string{"-4", "6"}, []string{"12"}},
		{"lcm", []string{"0", "6"}, []string{"0"}},
		{"modpow", []string{"-2", "3", "5"}, []string{"2"}},
		{"root", []string{"-1000", "3"}, []string{"-10"}},
		{"root", []string{"1023", "10"}, []string{"1"}},
		{"ornot", []string{"5", "3"}, []string{"-3"}},
		{"shl", []string{"-5", "-1"}, []string{"-3"}},
		{"lowbits", []string{"-1", "20"}, []string{"1048575"}},
		{"testbit", []string{"-1", "1000"}, []string{"1"}},
		{"popcount", []string{"-7"}, []string{"3"}},
		{"digits", []string{"0"}, []string{"1"}},
	}
	for _, tt := range tests {
		args := make([]*einteger.EInteger, len(tt.args))
		for i, a := range tt.args {
			args[i] = einteger.MustFromString(a)
		}
		got, err := b.Eval(tt.op, args)
		if err != nil {
			t.Errorf("%s%v: %v", tt.op, tt.args, err)
			continue
		}
		for i := range tt.want {
			if got[i].String() != tt.want[i] {
				t.Errorf("%s%v[%d] = %s, want %s", tt.op, tt.args, i, got[i], tt.want[i])
			}
		}
	}
}

func TestBigBackendErrors(t *testing.T) {
	t.Parallel()
	b := BigBackend{}
	zero, one := einteger.Zero(), einteger.One()
	for _, tc := range []struct {
		op   string
		args []*einteger.EInteger
		want error
	}{
		{"div", []*einteger.EInteger{one, zero}, ErrDomain},
		{"mod", []*einteger.EInteger{one, einteger.MinusOne()}, ErrDomain},
		{"sqrt", []*einteger.EInteger{einteger.MinusOne()}, ErrDomain},
		{"root", []*einteger.EInteger{einteger.MinusOne(), einteger.FromInt64(2)}, ErrDomain},
		{"frob", nil, ErrUnsupported},
	} {
		if _, err := b.Eval(tc.op, tc.args); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.op, err, tc.want)
		}
	}
	if b.Supports("frob") || !b.Supports("mul") {
		t.Error("Supports disagrees with the operation table")
	}
}
