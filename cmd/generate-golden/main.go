// Command generate-golden regenerates the end-to-end golden vectors.
//
// The oracle evaluates the RPN grammar over math/big.Rat, sharing no code
// with the engines under test, and writes the expected canonical results
// as JSON. Rerun it after grammar changes:
//
//	go run ./cmd/generate-golden -out test/e2e/testdata/golden.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
)

// GoldenVector is one expression with its expected canonical result.
type GoldenVector struct {
	Expr string `json:"expr"`
	Num  string `json:"num"`
	Den  string `json:"den"`
}

// goldenExprs are the expressions the e2e suite drives the binary with.
// Every operator and stack word appears at least once.
var goldenExprs = []string{
	"2 3 +",
	"10 4 -",
	"6 7 *",
	"1 3 / 1 6 / +",
	"1 2 / 1 3 / -",
	"2 64 ^",
	"48 18 gcd",
	"17 5 %",
	"-7 3 %",
	"22 7 / inv",
	"2 3 / neg",
	"10 neg abs",
	"1 2 / dup +",
	"3 4 swap /",
	"5 drop 7",
	"0.125 8 *",
	"2 10 ^ 1024 -",
	"5 -2 ^",
	"123456789 987654321 *",
	"1 3 / 3 *",
}

func main() {
	out := flag.String("out", filepath.Join("test", "e2e", "testdata", "golden.json"), "output path for the golden vectors")
	flag.Parse()

	vectors := make([]GoldenVector, 0, len(goldenExprs))
	for _, expr := range goldenExprs {
		v, err := evalRPN(expr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "oracle failed on %q: %v\n", expr, err)
			os.Exit(1)
		}
		vectors = append(vectors, GoldenVector{
			Expr: expr,
			Num:  v.Num().String(),
			Den:  v.Denom().String(),
		})
	}

	data, err := json.MarshalIndent(vectors, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoding vectors: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "creating %s: %v\n", filepath.Dir(*out), err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "writing %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d golden vectors to %s\n", len(vectors), *out)
}

// evalRPN evaluates an RPN expression over exact rationals. big.Rat keeps
// every value normalized, so the result is already canonical: lowest
// terms, positive denominator, sign on the numerator.
func evalRPN(expr string) (*big.Rat, error) {
	var stack []*big.Rat

	pop1 := func(word string) (*big.Rat, error) {
		if len(stack) < 1 {
			return nil, fmt.Errorf("%q needs 1 operand, stack has 0", word)
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, nil
	}
	pop2 := func(word string) (*big.Rat, *big.Rat, error) {
		if len(stack) < 2 {
			return nil, nil, fmt.Errorf("%q needs 2 operands, stack has %d", word, len(stack))
		}
		x, y := stack[len(stack)-2], stack[len(stack)-1]
		stack = stack[:len(stack)-2]
		return x, y, nil
	}

	for _, tok := range strings.Fields(expr) {
		switch tok {
		case "+", "-", "*", "/", "%", "gcd", "^":
			x, y, err := pop2(tok)
			if err != nil {
				return nil, err
			}
			z, err := applyBinary(tok, x, y)
			if err != nil {
				return nil, err
			}
			stack = append(stack, z)
		case "neg":
			v, err := pop1(tok)
			if err != nil {
				return nil, err
			}
			stack = append(stack, new(big.Rat).Neg(v))
		case "abs":
			v, err := pop1(tok)
			if err != nil {
				return nil, err
			}
			stack = append(stack, new(big.Rat).Abs(v))
		case "inv":
			v, err := pop1(tok)
			if err != nil {
				return nil, err
			}
			if v.Sign() == 0 {
				return nil, fmt.Errorf("inverse of zero")
			}
			stack = append(stack, new(big.Rat).Inv(v))
		case "dup":
			v, err := pop1(tok)
			if err != nil {
				return nil, err
			}
			// Values are never mutated, so sharing the pointer is safe.
			stack = append(stack, v, v)
		case "swap":
			x, y, err := pop2(tok)
			if err != nil {
				return nil, err
			}
			stack = append(stack, y, x)
		case "drop":
			if _, err := pop1(tok); err != nil {
				return nil, err
			}
		default:
			r, ok := new(big.Rat).SetString(tok)
			if !ok {
				return nil, fmt.Errorf("bad token %q", tok)
			}
			stack = append(stack, r)
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("expression leaves %d values on the stack, want exactly 1", len(stack))
	}
	return stack[0], nil
}

func applyBinary(word string, x, y *big.Rat) (*big.Rat, error) {
	switch word {
	case "+":
		return new(big.Rat).Add(x, y), nil
	case "-":
		return new(big.Rat).Sub(x, y), nil
	case "*":
		return new(big.Rat).Mul(x, y), nil
	case "/":
		if y.Sign() == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return new(big.Rat).Quo(x, y), nil
	case "%":
		if !x.IsInt() || !y.IsInt() {
			return nil, fmt.Errorf("%q requires integer operands", word)
		}
		if y.Sign() == 0 {
			return nil, fmt.Errorf("modulo by zero")
		}
		return new(big.Rat).SetInt(new(big.Int).Rem(x.Num(), y.Num())), nil
	case "gcd":
		if !x.IsInt() || !y.IsInt() {
			return nil, fmt.Errorf("%q requires integer operands", word)
		}
		a := new(big.Int).Abs(x.Num())
		b := new(big.Int).Abs(y.Num())
		return new(big.Rat).SetInt(new(big.Int).GCD(nil, nil, a, b)), nil
	case "^":
		return ratPow(x, y)
	}
	return nil, fmt.Errorf("unknown word %q", word)
}

// ratPow raises x to an integer power by exponentiating numerator and
// denominator separately; negative exponents invert the result.
func ratPow(x, y *big.Rat) (*big.Rat, error) {
	if !y.IsInt() {
		return nil, fmt.Errorf(`"^" requires an integer exponent`)
	}
	if !y.Num().IsInt64() {
		return nil, fmt.Errorf("exponent out of range")
	}
	k := y.Num().Int64()
	neg := k < 0
	if neg {
		if x.Sign() == 0 {
			return nil, fmt.Errorf("zero to a negative power")
		}
		k = -k
	}
	e := big.NewInt(k)
	num := new(big.Int).Exp(x.Num(), e, nil)
	den := new(big.Int).Exp(x.Denom(), e, nil)
	z := new(big.Rat).SetFrac(num, den)
	if neg {
		z.Inv(z)
	}
	return z, nil
}
