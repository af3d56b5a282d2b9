// Package bignum implements arbitrary-precision signed integers (Int) and
// exact rational numbers (Rat) over the radix-10^4 digit store of
// internal/limb, with multiplication delegated to the tiered engine of
// internal/bigfft.
//
// The API follows the math/big convention: an operation z.Op(x, y) stores
// its result in the receiver and returns it, so storage can be reused and
// calls chain. Operand values are logically copied before use; no
// operation aliases state between distinct values.
//
// Operations that can fail return an explicit error: malformed literals
// produce a *ParseError and zero divisors a *DomainError. Everything else
// is total.
//
// # Concurrency
//
// Distinct Int and Rat values share no state and may be used from any
// number of goroutines without coordination. A single value is not
// internally synchronized: concurrent mutation of the same value is a
// data race the caller must prevent, by external locking or by keeping
// each value single-owner.
package bignum
