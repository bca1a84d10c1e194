package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides simulation time that stops advancing while paused
// Simulation seconds feed SimParams.Time and every captureTime stamp
type PausableClock struct {
	mu sync.RWMutex

	source    TimeProvider
	startTime time.Time // Real time at creation or last Reset

	isPaused        atomic.Bool
	pauseStartTime  time.Time     // Real time the current pause started
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewPausableClock creates a clock reading from source, nil means the system clock
func NewPausableClock(source TimeProvider) *PausableClock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		source:    source,
		startTime: source.Now(),
	}
}

// Elapsed returns simulation time since start, excluding pauses
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	paused := pc.totalPausedTime
	now := pc.source.Now()
	if pc.isPaused.Load() {
		// Frozen at the pause point
		now = pc.pauseStartTime
	}
	return now.Sub(pc.startTime) - paused
}

// Seconds returns Elapsed as float32 seconds, the unit of captureTime
func (pc *PausableClock) Seconds() float32 {
	return float32(pc.Elapsed().Seconds())
}

// RealTime returns the source time, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return pc.source.Now()
}

// Pause stops simulation time advancement
// The flag flips under mu so Elapsed never sees it without its pause start
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.pauseStartTime = pc.source.Now()
	}
}

// Resume continues simulation time advancement
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.isPaused.CompareAndSwap(true, false) {
		if !pc.pauseStartTime.IsZero() {
			pc.totalPausedTime += pc.source.Now().Sub(pc.pauseStartTime)
			pc.pauseStartTime = time.Time{}
		}
	}
}

// Toggle flips pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// Reset restarts simulation time at zero, used on game restart
func (pc *PausableClock) Reset() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	now := pc.source.Now()
	pc.startTime = now
	pc.totalPausedTime = 0
	if pc.isPaused.Load() {
		pc.pauseStartTime = now
	} else {
		pc.pauseStartTime = time.Time{}
	}
}
