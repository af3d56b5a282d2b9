package bignum

import "fmt"

// ParseError reports a numeric literal that does not match the accepted
// grammar: an optional leading minus followed by one or more decimal
// digits (plus the "/" form for Rat).
type ParseError struct {
	Input  string // the rejected literal
	Reason string // what made it invalid
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bignum: parsing %q: %s", e.Input, e.Reason)
}

// DomainError reports an operation applied outside its mathematical
// domain; every current case is a division by zero, including rational
// construction with a zero denominator.
type DomainError struct {
	Op string // the operation that was attempted
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("bignum: %s: division by zero", e.Op)
}
