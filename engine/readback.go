package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/vi-boids/component"
)

// Snapshot is a stale, fully materialized copy of the latest buffer
type Snapshot struct {
	Tick       uint64
	Generation uint64
	Mode       component.Mode
	Count      int
	Time       float32 // Simulation seconds when copied
	Data       []float32
}

// Agents decodes the snapshot buffer
func (s *Snapshot) Agents() ([]component.Agent, error) {
	return component.DecodeAgents(s.Mode, s.Data)
}

// ReadbackGate serves CPU-side copies of the agent store
// Closed gates and stores that have not ticked yet yield nil
type ReadbackGate struct {
	store *AgentStore
	clock *PausableClock
	open  atomic.Bool
}

// NewReadbackGate creates a closed gate over store
func NewReadbackGate(store *AgentStore, clock *PausableClock) *ReadbackGate {
	return &ReadbackGate{store: store, clock: clock}
}

// Open allows reads
func (g *ReadbackGate) Open() { g.open.Store(true) }

// Close makes every read return nil
func (g *ReadbackGate) Close() { g.open.Store(false) }

// Read waits for the in-flight tick, then copies buffers[tick%2]
func (g *ReadbackGate) Read() *Snapshot {
	if !g.open.Load() {
		return nil
	}
	tick, gen, data, ok := g.store.CopyLatest()
	if !ok || tick == 0 {
		return nil
	}
	mode := g.store.Mode()
	return &Snapshot{
		Tick:       tick,
		Generation: gen,
		Mode:       mode,
		Count:      len(data) / mode.Stride(),
		Time:       g.clock.Seconds(),
		Data:       data,
	}
}
