package engine

import (
	"sync"
	"time"
)

// MockTimeProvider provides a controllable time source for testing
// Intervals created from it fire only when Advance crosses their deadline
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
	intervals   []*manualInterval
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime sets the current time for the mock without firing intervals
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
	for _, iv := range m.intervals {
		iv.next = t.Add(iv.period)
	}
}

// Advance moves time forward and fires every interval whose deadline was crossed
// Like time.Ticker, a slow receiver sees at most one pending tick per interval
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)

	live := m.intervals[:0]
	for _, iv := range m.intervals {
		if iv.stopped() {
			continue
		}
		live = append(live, iv)
		for !iv.next.After(m.currentTime) {
			select {
			case iv.ch <- iv.next:
			default:
			}
			iv.next = iv.next.Add(iv.period)
		}
	}
	m.intervals = live
}

// NewInterval is an IntervalFactory bound to the mock clock
func (m *MockTimeProvider) NewInterval(period time.Duration) Interval {
	m.mu.Lock()
	defer m.mu.Unlock()
	if period <= 0 {
		period = time.Millisecond
	}
	iv := &manualInterval{
		ch:     make(chan time.Time, 1),
		period: period,
		next:   m.currentTime.Add(period),
		done:   make(chan struct{}),
	}
	m.intervals = append(m.intervals, iv)
	return iv
}

// manualInterval is the mock clock's Interval
type manualInterval struct {
	ch     chan time.Time
	period time.Duration
	next   time.Time

	stopOnce sync.Once
	done     chan struct{}
}

func (iv *manualInterval) C() <-chan time.Time { return iv.ch }

func (iv *manualInterval) Stop() {
	iv.stopOnce.Do(func() { close(iv.done) })
}

func (iv *manualInterval) stopped() bool {
	select {
	case <-iv.done:
		return true
	default:
		return false
	}
}
