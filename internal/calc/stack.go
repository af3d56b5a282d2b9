package calc

import (
	"fmt"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// stack is the evaluation stack. Values pushed onto it are never mutated
// by the arithmetic backends, so the same value may sit on the stack more
// than once (dup).
type stack[T any] struct {
	items []T
}

func (s *stack[T]) push(v T) {
	s.items = append(s.items, v)
}

func (s *stack[T]) len() int { return len(s.items) }

// pop1 removes and returns the top value, or an underflow error naming
// the word that needed it.
func (s *stack[T]) pop1(word string) (T, error) {
	if len(s.items) == 0 {
		var zero T
		return zero, underflow(word, 1, 0)
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

// pop2 removes the top two values and returns them in push order: x was
// below y on the stack, so "a b -" yields x=a, y=b.
func (s *stack[T]) pop2(word string) (x, y T, err error) {
	if n := len(s.items); n < 2 {
		var zero T
		return zero, zero, underflow(word, 2, n)
	}
	y = s.items[len(s.items)-1]
	x = s.items[len(s.items)-2]
	s.items = s.items[:len(s.items)-2]
	return x, y, nil
}

func underflow(word string, need, have int) error {
	return apperrors.ValidationError{
		Field:   "expression",
		Message: fmt.Sprintf("%q: stack underflow (need %d, have %d)", word, need, have),
	}
}
