package calc

import (
	"context"
	"fmt"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/progress"
)

// maxExponent bounds the magnitude of the "^" exponent. Larger exponents
// would be exact but produce results whose size makes them useless as
// interactive answers.
const maxExponent = 1 << 20

// arith provides exact rational arithmetic for one engine backend.
//
// Operations must treat their operands as read-only and return fresh
// values: the evaluator shares values freely on the stack. Integer-only
// preconditions (% and gcd) are enforced by the evaluator, so Mod and
// Gcd may assume both operands have denominator one.
type arith[T any] interface {
	Parse(tok Token) (T, error)
	Add(x, y T) T
	Sub(x, y T) T
	Mul(x, y T) T
	Quo(x, y T) (T, error)
	Neg(x T) T
	Abs(x T) T
	Inv(x T) (T, error)
	Pow(x T, k int64) (T, error)
	Mod(x, y T) (T, error)
	Gcd(x, y T) T
	IsInt(x T) bool
	Int64(x T) (int64, bool)
	Canonical(x T) Result
}

// evaluate runs the token sequence on ops, reporting fractional progress
// after each consumed token. The expression must leave exactly one value
// on the stack; that value is returned in canonical form.
func evaluate[T any](ctx context.Context, ops arith[T], report progress.ProgressCallback, tokens []Token) (Result, error) {
	if len(tokens) == 0 {
		return Result{}, apperrors.ValidationError{Field: "expression", Message: "empty expression"}
	}

	var st stack[T]
	for i, tok := range tokens {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := applyToken(ops, &st, tok); err != nil {
			return Result{}, err
		}
		progress.ReportStepProgress(report, i+1, len(tokens))
	}

	if st.len() != 1 {
		return Result{}, apperrors.ValidationError{
			Field:   "expression",
			Message: fmt.Sprintf("expression leaves %d values on the stack, want exactly 1", st.len()),
		}
	}
	v, err := st.pop1("result")
	if err != nil {
		return Result{}, err
	}
	return ops.Canonical(v), nil
}

func applyToken[T any](ops arith[T], st *stack[T], tok Token) error {
	if tok.IsNumber() {
		v, err := ops.Parse(tok)
		if err != nil {
			return err
		}
		st.push(v)
		return nil
	}

	word := tok.Text
	switch word {
	case "+":
		x, y, err := st.pop2(word)
		if err != nil {
			return err
		}
		st.push(ops.Add(x, y))
	case "-":
		x, y, err := st.pop2(word)
		if err != nil {
			return err
		}
		st.push(ops.Sub(x, y))
	case "*":
		x, y, err := st.pop2(word)
		if err != nil {
			return err
		}
		st.push(ops.Mul(x, y))
	case "/":
		x, y, err := st.pop2(word)
		if err != nil {
			return err
		}
		q, err := ops.Quo(x, y)
		if err != nil {
			return err
		}
		st.push(q)
	case "%":
		x, y, err := st.pop2(word)
		if err != nil {
			return err
		}
		if !ops.IsInt(x) || !ops.IsInt(y) {
			return integerOperands(word)
		}
		r, err := ops.Mod(x, y)
		if err != nil {
			return err
		}
		st.push(r)
	case "gcd":
		x, y, err := st.pop2(word)
		if err != nil {
			return err
		}
		if !ops.IsInt(x) || !ops.IsInt(y) {
			return integerOperands(word)
		}
		st.push(ops.Gcd(x, y))
	case "^":
		x, y, err := st.pop2(word)
		if err != nil {
			return err
		}
		if !ops.IsInt(y) {
			return apperrors.ValidationError{Field: "expression", Message: `"^" requires an integer exponent`}
		}
		k, ok := ops.Int64(y)
		if !ok || k > maxExponent || k < -maxExponent {
			return apperrors.ValidationError{
				Field:   "expression",
				Message: fmt.Sprintf("exponent magnitude exceeds %d", maxExponent),
			}
		}
		p, err := ops.Pow(x, k)
		if err != nil {
			return err
		}
		st.push(p)
	case "neg":
		v, err := st.pop1(word)
		if err != nil {
			return err
		}
		st.push(ops.Neg(v))
	case "abs":
		v, err := st.pop1(word)
		if err != nil {
			return err
		}
		st.push(ops.Abs(v))
	case "inv":
		v, err := st.pop1(word)
		if err != nil {
			return err
		}
		w, err := ops.Inv(v)
		if err != nil {
			return err
		}
		st.push(w)
	case "dup":
		v, err := st.pop1(word)
		if err != nil {
			return err
		}
		st.push(v)
		st.push(v)
	case "swap":
		x, y, err := st.pop2(word)
		if err != nil {
			return err
		}
		st.push(y)
		st.push(x)
	case "drop":
		if _, err := st.pop1(word); err != nil {
			return err
		}
	default:
		// Tokenize only emits known words; keep the guard for direct callers.
		return apperrors.ValidationError{Field: "expression", Message: fmt.Sprintf("unknown word %q", word)}
	}
	return nil
}

func integerOperands(word string) error {
	return apperrors.ValidationError{
		Field:   "expression",
		Message: fmt.Sprintf("%q requires integer operands", word),
	}
}
