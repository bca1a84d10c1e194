package parameter

import "time"

// Loop timing
const (
	// FrameUpdateInterval is the simulation/render tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// ReadbackInterval is the game-logic cadence: snapshot, process, commit
	ReadbackInterval = 100 * time.Millisecond
)

// Kernel dispatch
const (
	// KernelMinChunk is the smallest per-goroutine agent range, below it dispatch overhead dominates
	KernelMinChunk = 64
)

// Diagnostics
const (
	// TickTimeSmoothing is the moving-average weight of each new tick duration sample
	TickTimeSmoothing = 0.1
)
