// Command generate-golden writes reference results computed with math/big
// for the engine's golden test. Operands come from a splitmix64 stream so
// that the file only changes when the seed or the case list does.
//
//	go run ./cmd/generate-golden -o testdata/golden.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
)

// goldenSizes are operand sizes in 16-bit limbs. They straddle the default
// schoolbook, Karatsuba and Toom crossovers.
var goldenSizes = []int{1, 4, 33, 130, 400}

type goldenCase struct {
	Op   string   `json:"op"`
	Args []string `json:"args"`
	Want []string `json:"want"`
}

type goldenFile struct {
	Seed  uint64       `json:"seed"`
	Cases []goldenCase `json:"cases"`
}

type splitMix struct{ state uint64 }

func (s *splitMix) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// operand returns a value of exactly limbs limbs, negative when signed and
// the sign draw says so.
func (s *splitMix) operand(limbs int, signed bool) *big.Int {
	v := new(big.Int)
	for i := 0; i < limbs; i++ {
		limb := s.next() & 0xffff
		if i == 0 && limb == 0 {
			limb = 1
		}
		v.Lsh(v, 16)
		v.Or(v, new(big.Int).SetUint64(limb))
	}
	if signed && s.next()&1 == 1 {
		v.Neg(v)
	}
	return v
}

func evalBig(op string, args []*big.Int) ([]*big.Int, error) {
	switch op {
	case "mul":
		return []*big.Int{new(big.Int).Mul(args[0], args[1])}, nil
	case "divrem":
		if args[1].Sign() == 0 {
			return nil, fmt.Errorf("divrem: division by zero")
		}
		q, r := new(big.Int).QuoRem(args[0], args[1], new(big.Int))
		return []*big.Int{q, r}, nil
	case "gcd":
		a := new(big.Int).Abs(args[0])
		b := new(big.Int).Abs(args[1])
		return []*big.Int{new(big.Int).GCD(nil, nil, a, b)}, nil
	case "sqrt":
		if args[0].Sign() < 0 {
			return nil, fmt.Errorf("sqrt: negative operand")
		}
		return []*big.Int{new(big.Int).Sqrt(args[0])}, nil
	case "pow":
		return []*big.Int{new(big.Int).Exp(args[0], args[1], nil)}, nil
	}
	return nil, fmt.Errorf("unknown operation %q", op)
}

func operandsFor(rng *splitMix, op string, n int) []*big.Int {
	switch op {
	case "divrem":
		return []*big.Int{rng.operand(2*n, true), rng.operand(n, true)}
	case "gcd":
		half := n/2 + 1
		g := rng.operand(half, false)
		a := new(big.Int).Mul(g, rng.operand(half, true))
		b := new(big.Int).Mul(g, rng.operand(half, true))
		return []*big.Int{a, b}
	case "sqrt":
		return []*big.Int{rng.operand(2*n, false)}
	case "pow":
		base := rng.operand(max(n/8, 1), true)
		return []*big.Int{base, big.NewInt(int64(3 + rng.next()%5))}
	}
	return []*big.Int{rng.operand(n, true), rng.operand(n, true)}
}

func generate(seed uint64) (goldenFile, error) {
	rng := &splitMix{state: seed}
	file := goldenFile{Seed: seed}
	for _, op := range []string{"mul", "divrem", "gcd", "sqrt", "pow"} {
		for _, n := range goldenSizes {
			args := operandsFor(rng, op, n)
			want, err := evalBig(op, args)
			if err != nil {
				return goldenFile{}, err
			}
			file.Cases = append(file.Cases, goldenCase{Op: op, Args: toStrings(args), Want: toStrings(want)})
		}
	}
	return file, nil
}

func toStrings(vs []*big.Int) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func main() {
	output := flag.String("o", "testdata/golden.json", "output path")
	seed := flag.Uint64("seed", 1, "operand stream seed")
	flag.Parse()

	file, err := generate(*seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d cases to %s\n", len(file.Cases), *output)
}
