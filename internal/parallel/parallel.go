// Package parallel splits index ranges across goroutines for read-only
// workloads such as scoring a dataset against a fixed parameter snapshot.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// Sequential returns a configuration that never spawns goroutines.
func Sequential() Config {
	return Config{}
}

// chunkSize returns how many items each goroutine handles, or 0 when n
// should run sequentially.
func (c Config) chunkSize(n int) int {
	if !c.Enabled || c.NumWorkers < 2 || n < max(c.MinChunkSize, 1) {
		return 0
	}
	return max((n+c.NumWorkers-1)/c.NumWorkers, c.MinChunkSize)
}

// ForRange calls f once per contiguous chunk [start, end) covering [0, n).
// Chunks never overlap, so f may accumulate into per-chunk state without
// locking and merge once at the end.
func ForRange(n int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	size := cfg.chunkSize(n)
	if size == 0 {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}
