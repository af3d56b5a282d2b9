// Package parallel provides small helpers for fanning CPU-bound work out
// across the available cores: a first-error-wins collector and bounded
// range iteration. The arithmetic engine uses ForEach for butterfly and
// pointwise loops; batch evaluation uses ForEachN.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrorCollector retains the first non-nil error it is given.
// The zero value is ready to use and safe for concurrent access.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is the first non-nil error seen.
// Nil errors are ignored.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}

// Err returns the first recorded error, or nil.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// ForEach applies fn to contiguous sub-ranges of [0, n), splitting the range
// across up to GOMAXPROCS goroutines. Ranges never shrink below minGrain
// elements; when n < 2×minGrain the call runs serially on the caller's
// goroutine. fn must be safe to run concurrently on disjoint ranges.
func ForEach(n, minGrain int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if minGrain < 1 {
		minGrain = 1
	}
	workers := runtime.GOMAXPROCS(0)
	if maxW := n / minGrain; workers > maxW {
		workers = maxW
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // fn cannot fail
}

// ForEachN applies fn to every index in [0, n) using up to GOMAXPROCS
// workers pulling from a shared counter. Every index is attempted even
// after a failure; the first error encountered is returned.
func ForEachN(n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}

	var (
		next int64 = -1
		ec   ErrorCollector
		g    errgroup.Group
	)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				i := int(atomic.AddInt64(&next, 1))
				if i >= n {
					return nil
				}
				ec.SetError(fn(i))
			}
		})
	}
	g.Wait() //nolint:errcheck // workers always return nil
	return ec.Err()
}
