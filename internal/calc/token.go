package calc

import (
	"fmt"
	"strings"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// Kind classifies a scanned token.
type Kind int

const (
	// KindWord is an operator or stack word.
	KindWord Kind = iota
	// KindInt is an optionally signed integer literal.
	KindInt
	// KindFrac is a fraction literal "n/d".
	KindFrac
	// KindDecimal is a decimal-point literal "i.f".
	KindDecimal
)

// Token is one whitespace-delimited element of an expression. Numeric
// tokens carry their value pre-normalized as a numerator/denominator
// string pair so that every backend parses the same representation: the
// integer "42" becomes 42/1, the decimal "1.25" becomes 125/100.
type Token struct {
	Kind Kind
	Text string // the token as written
	Num  string // numeric kinds: signed decimal numerator
	Den  string // numeric kinds: unsigned decimal denominator, never zero
}

// IsNumber reports whether the token is a literal.
func (t Token) IsNumber() bool { return t.Kind != KindWord }

// words is the closed set of operators and stack words. Tokenize rejects
// anything that is neither a word nor a literal.
var words = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "%": {}, "^": {},
	"gcd": {}, "neg": {}, "abs": {}, "inv": {},
	"dup": {}, "swap": {}, "drop": {},
}

// Tokenize splits expr on whitespace and classifies each token. The
// returned slice is empty (not an error) for a blank expression; invalid
// tokens and zero-denominator literals return a ValidationError.
func Tokenize(expr string) ([]Token, error) {
	fields := strings.Fields(expr)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		tok, err := scanToken(f)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func scanToken(text string) (Token, error) {
	// "-" and "/" are words on their own and sign/fraction marks inside
	// a literal, so words are matched first.
	if _, ok := words[text]; ok {
		return Token{Kind: KindWord, Text: text}, nil
	}

	body := text
	sign := ""
	if strings.HasPrefix(body, "-") {
		sign = "-"
		body = body[1:]
	} else if strings.HasPrefix(body, "+") {
		body = body[1:]
	}

	if slash := strings.IndexByte(body, '/'); slash >= 0 {
		num, den := body[:slash], body[slash+1:]
		if !isDigits(num) || !isDigits(den) {
			return Token{}, unknownToken(text)
		}
		if allZeros(den) {
			return Token{}, apperrors.ValidationError{
				Field:   "expression",
				Message: fmt.Sprintf("zero denominator in %q", text),
			}
		}
		return Token{Kind: KindFrac, Text: text, Num: sign + num, Den: den}, nil
	}

	if dot := strings.IndexByte(body, '.'); dot >= 0 {
		// One side of the point may be empty, as in "2." or ".5".
		intPart, fracPart := body[:dot], body[dot+1:]
		if intPart == "" && fracPart == "" {
			return Token{}, unknownToken(text)
		}
		if (intPart != "" && !isDigits(intPart)) || (fracPart != "" && !isDigits(fracPart)) {
			return Token{}, unknownToken(text)
		}
		den := "1" + strings.Repeat("0", len(fracPart))
		return Token{Kind: KindDecimal, Text: text, Num: sign + intPart + fracPart, Den: den}, nil
	}

	if isDigits(body) {
		return Token{Kind: KindInt, Text: text, Num: sign + body, Den: "1"}, nil
	}
	return Token{}, unknownToken(text)
}

func unknownToken(text string) error {
	return apperrors.ValidationError{
		Field:   "expression",
		Message: fmt.Sprintf("unknown token %q", text),
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func allZeros(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return true
}
