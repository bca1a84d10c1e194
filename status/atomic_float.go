package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 gauge stored as its bit pattern, zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add adds delta and returns the new value
func (f *AtomicFloat) Add(delta float64) float64 {
	return f.update(func(v float64) float64 { return v + delta })
}

// Smooth folds sample into an exponential moving average with the given weight
// The first sample of a zero gauge is stored as is
func (f *AtomicFloat) Smooth(sample, weight float64) float64 {
	return f.update(func(v float64) float64 {
		if v == 0 {
			return sample
		}
		return v + (sample-v)*weight
	})
}

func (f *AtomicFloat) update(fn func(float64) float64) float64 {
	for {
		old := f.bits.Load()
		next := fn(math.Float64frombits(old))
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
