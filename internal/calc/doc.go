// Package calc implements the postfix (RPN) expression language evaluated
// by the application, together with the pluggable arithmetic engines that
// execute it.
//
// An expression is a whitespace-separated token sequence. Literals are
// exact rationals in three spellings:
//
//	42  -17        integers
//	3/4  -22/7     fractions (denominator unsigned, non-zero)
//	1.25  -0.5     decimals (shorthand for 125/100, -5/10)
//
// Operators pop their operands and push the result: + - * / are total
// rational arithmetic (division by zero excepted), % and gcd require
// integer operands, ^ raises to an integer exponent, and neg, abs, inv
// are unary. The stack words dup, swap and drop rearrange values. A valid
// expression leaves exactly one value on the stack:
//
//	3 4 + 2 *        ->  14
//	1 3 / 1 6 / +    ->  1/2
//	2 -3 ^           ->  1/8
//
// Every engine evaluates the same language over exact rationals and
// produces the same canonical fraction, so engines can be run side by
// side and cross-checked. The bignum engine exercises this repository's
// numeric core, the stdlib engine is a math/big reference, and the gmp
// engine (build tag "gmp") delegates to libgmp.
package calc
