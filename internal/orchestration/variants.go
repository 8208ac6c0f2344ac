package orchestration

import (
	"context"
	"slices"
	"strings"

	"github.com/agbru/einteger"
	"github.com/agbru/einteger/internal/calc"
	apperrors "github.com/agbru/einteger/internal/errors"
	"github.com/agbru/einteger/internal/oracle"
)

// Variant is one way of evaluating an operation.
type Variant interface {
	Name() string
	Run(ctx context.Context, args []*einteger.EInteger) ([]*einteger.EInteger, error)
}

type variantFunc struct {
	name string
	fn   calc.Func
}

func (v variantFunc) Name() string { return v.name }

func (v variantFunc) Run(ctx context.Context, args []*einteger.EInteger) ([]*einteger.EInteger, error) {
	return calc.Run(ctx, func() ([]*einteger.EInteger, error) { return v.fn(args) })
}

// OracleVariant evaluates through a reference backend.
type OracleVariant struct {
	Op      string
	Backend oracle.Backend
}

func (v OracleVariant) Name() string { return "oracle:" + v.Backend.Name() }

func (v OracleVariant) Run(ctx context.Context, args []*einteger.EInteger) ([]*einteger.EInteger, error) {
	return calc.Run(ctx, func() ([]*einteger.EInteger, error) { return v.Backend.Eval(v.Op, args) })
}

var (
	mulAlgorithms = []einteger.MulAlgorithm{einteger.MulAuto, einteger.MulSchoolbook, einteger.MulKaratsuba, einteger.MulToom3, einteger.MulToom4}
	divAlgorithms = []einteger.DivAlgorithm{einteger.DivAuto, einteger.DivSchoolbook, einteger.DivRecursive}
	gcdAlgorithms = []einteger.GcdAlgorithm{einteger.GcdAuto, einteger.GcdEuclid, einteger.GcdBinary, einteger.GcdLehmer, einteger.GcdHalf}
)

// divProjection picks the values an operation reports out of (q, r).
var divProjection = map[string]func(q, r *einteger.EInteger) []*einteger.EInteger{
	"div":    func(q, _ *einteger.EInteger) []*einteger.EInteger { return []*einteger.EInteger{q} },
	"rem":    func(_, r *einteger.EInteger) []*einteger.EInteger { return []*einteger.EInteger{r} },
	"divrem": func(q, r *einteger.EInteger) []*einteger.EInteger { return []*einteger.EInteger{q, r} },
}

// VariantsFor returns every variant of op. Operations without algorithm
// choices have a single "auto" variant; unknown operations have none.
func VariantsFor(op string, reg *calc.Registry) []Variant {
	switch op {
	case "mul", "sqr":
		out := make([]Variant, len(mulAlgorithms))
		for i, alg := range mulAlgorithms {
			out[i] = variantFunc{alg.String(), func(a []*einteger.EInteger) ([]*einteger.EInteger, error) {
				y := a[0]
				if op == "mul" {
					y = a[1]
				}
				return []*einteger.EInteger{a[0].MultiplyUsing(y, alg)}, nil
			}}
		}
		return out
	case "div", "rem", "divrem":
		project := divProjection[op]
		out := make([]Variant, len(divAlgorithms))
		for i, alg := range divAlgorithms {
			out[i] = variantFunc{alg.String(), func(a []*einteger.EInteger) ([]*einteger.EInteger, error) {
				q, r, err := a[0].DivideUsing(a[1], alg)
				if err != nil {
					return nil, err
				}
				return project(q, r), nil
			}}
		}
		return out
	case "gcd":
		out := make([]Variant, len(gcdAlgorithms))
		for i, alg := range gcdAlgorithms {
			out[i] = variantFunc{alg.String(), func(a []*einteger.EInteger) ([]*einteger.EInteger, error) {
				return []*einteger.EInteger{a[0].GcdUsing(a[1], alg)}, nil
			}}
		}
		return out
	}
	if o, ok := reg.Lookup(op); ok {
		return []Variant{variantFunc{"auto", o.Fn}}
	}
	return nil
}

// VariantNames lists the variant names of op.
func VariantNames(op string, reg *calc.Registry) []string {
	vs := VariantsFor(op, reg)
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name()
	}
	return names
}

// SelectVariants returns the variants of op named in selection, which is
// "all" or a comma-separated list, in their canonical order.
func SelectVariants(op, selection string, reg *calc.Registry) ([]Variant, error) {
	all := VariantsFor(op, reg)
	if len(all) == 0 {
		return nil, apperrors.NewConfigError("unknown operation %q", op)
	}
	if selection == "" || selection == "all" {
		return all, nil
	}
	wanted := strings.Split(strings.ToLower(selection), ",")
	for i := range wanted {
		wanted[i] = strings.TrimSpace(wanted[i])
	}
	var out []Variant
	for _, v := range all {
		if slices.Contains(wanted, v.Name()) {
			out = append(out, v)
		}
	}
	if len(out) != len(slices.Compact(slices.Sorted(slices.Values(wanted)))) {
		return nil, apperrors.NewConfigError("unknown variant in %q for %s; available: %s",
			selection, op, strings.Join(VariantNames(op, reg), ", "))
	}
	return out, nil
}

// AllVariantNames lists every variant name of every registered operation,
// sorted and without duplicates. Shell completion offers them for
// --variants.
func AllVariantNames(reg *calc.Registry) []string {
	var names []string
	for _, op := range reg.Names() {
		names = append(names, VariantNames(op, reg)...)
	}
	slices.Sort(names)
	return slices.Compact(names)
}
