package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/vi-boids/parameter"
)

// Kernel dispatches an index range across parallel workers
// fn receives half-open [lo, hi) chunks; chunks never overlap
type Kernel interface {
	Dispatch(ctx context.Context, n int, fn func(lo, hi int) error) error
	Workers() int
}

// KernelFactory acquires the parallel execution facility once at Initialize
type KernelFactory func() (Kernel, error)

// ParallelKernel runs chunks on an errgroup bounded to a worker count
type ParallelKernel struct {
	workers  int
	minChunk int
}

// NewParallelKernel creates a kernel, workers 0 means GOMAXPROCS
func NewParallelKernel(workers int) (*ParallelKernel, error) {
	if workers < 0 {
		return nil, fmt.Errorf("%w: worker count %d", ErrEnvironmentUnavailable, workers)
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &ParallelKernel{workers: workers, minChunk: parameter.KernelMinChunk}, nil
}

// Workers returns the goroutine limit
func (k *ParallelKernel) Workers() int {
	return k.workers
}

// Dispatch splits [0, n) into at most Workers chunks of at least minChunk items
// A panicking chunk is reported as an error, the remaining chunks still complete
func (k *ParallelKernel) Dispatch(ctx context.Context, n int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}

	chunk := (n + k.workers - 1) / k.workers
	if chunk < k.minChunk {
		chunk = k.minChunk
	}
	if chunk >= n {
		return runChunk(fn, 0, n)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(k.workers)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return runChunk(fn, lo, hi)
		})
	}
	return g.Wait()
}

func runChunk(fn func(lo, hi int) error, lo, hi int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("kernel chunk [%d,%d) panicked: %v", lo, hi, r)
		}
	}()
	return fn(lo, hi)
}
