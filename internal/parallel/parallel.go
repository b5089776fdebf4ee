// Package parallel splits independent row computations across goroutines.
//
// Callers must only use it for loops whose iterations write disjoint memory
// (one matrix row per iteration); each row is then computed exactly as the
// sequential loop would compute it.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled bool // Whether parallel execution is enabled.
	Workers int  // Number of worker goroutines to use.
	MinRows int  // Minimum rows per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled: n > 1,
		Workers: n,
		MinRows: 64,
	}
}

// Sequential returns a config that always runs inline.
func Sequential() Config {
	return Config{Workers: 1, MinRows: 1}
}

// For executes f(i) for i in [0, n).
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, cfg Config, f func(i int)) {
	Range(n, cfg, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(i)
		}
	})
}

// Range hands out contiguous [lo, hi) chunks of [0, n) to f.
func Range(n int, cfg Config, f func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.Workers < 2 || n < 2*max(cfg.MinRows, 1) {
		f(0, n)
		return
	}

	chunk := max((n+cfg.Workers-1)/cfg.Workers, cfg.MinRows)

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
