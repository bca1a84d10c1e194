package vmath

import "math"

// --- Scalars ---

// IsFinite reports whether f is neither NaN nor ±Inf
func IsFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Pow returns base^exp in float32
func Pow(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}

// Sin returns sin(x) in float32
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Atan2 returns atan2(y, x) in float32
func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// --- Randomness ---

// FastRand is an xorshift64 generator, not safe for concurrent use
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float32 returns a value in [0, 1)
func (r *FastRand) Float32() float32 {
	return float32(r.Next()>>40) / (1 << 24)
}

// Range returns a value in [lo, hi)
func (r *FastRand) Range(lo, hi float32) float32 {
	return lo + (hi-lo)*r.Float32()
}

// Symmetric returns a value in [-h, h)
func (r *FastRand) Symmetric(h float32) float32 {
	return r.Range(-h, h)
}
