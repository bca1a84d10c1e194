package engine

import "time"

// Interval delivers periodic ticks to a loop
// Injected so tests drive loops by advancing simulated time instead of sleeping
type Interval interface {
	C() <-chan time.Time
	Stop()
}

// IntervalFactory creates an Interval with the given period
type IntervalFactory func(period time.Duration) Interval

// tickerInterval wraps time.Ticker
type tickerInterval struct {
	ticker *time.Ticker
}

// NewTickerInterval is the real-time IntervalFactory
func NewTickerInterval(period time.Duration) Interval {
	return &tickerInterval{ticker: time.NewTicker(period)}
}

func (t *tickerInterval) C() <-chan time.Time { return t.ticker.C }

func (t *tickerInterval) Stop() { t.ticker.Stop() }
