package engine

import (
	"fmt"
	"sync"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/vmath"
)

// BufferID names one side of the ping-pong pair
type BufferID uint8

const (
	BufferA BufferID = iota
	BufferB
)

func (b BufferID) String() string {
	if b == BufferB {
		return "B"
	}
	return "A"
}

// AgentStore owns the double-buffered agent array
// buffers[tick%2] holds the latest state; a force pass reads it and writes the other side
// Replace is the only way population changes and always rewrites both sides
type AgentStore struct {
	mu sync.RWMutex

	mode       component.Mode
	buffers    [2][]component.Agent
	tick       uint64
	generation uint64 // Bumped on every Initialize/Replace
	ready      bool
}

// NewAgentStore creates an empty store for a mode
func NewAgentStore(mode component.Mode) *AgentStore {
	return &AgentStore{mode: mode}
}

// Mode returns the buffer layout mode
func (s *AgentStore) Mode() component.Mode {
	return s.mode
}

// Initialize installs data into both buffers and resets the tick counter
func (s *AgentStore) Initialize(count int, data []float32) (uint64, error) {
	agents, err := s.decodeExact(count, data)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.install(agents)
	s.tick = 0
	s.ready = true
	return s.generation, nil
}

// InitializeRandom seeds both buffers with uniformly scattered agents, simulation mode layout
func (s *AgentStore) InitializeRandom(count int, rng *vmath.FastRand) (uint64, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: negative agent count %d", ErrContractViolation, count)
	}
	agents := make([]component.Agent, count)
	for i := range agents {
		agents[i].Pos = vmath.Vec2{
			X: rng.Symmetric(parameter.SimInitialSpread),
			Y: rng.Symmetric(parameter.SimInitialSpread),
		}
		agents[i].Vel = vmath.Vec2{
			X: rng.Symmetric(parameter.SimInitialVelocity),
			Y: rng.Symmetric(parameter.SimInitialVelocity),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.install(agents)
	s.tick = 0
	s.ready = true
	return s.generation, nil
}

// Replace recreates both buffers from data, tick parity is kept
// Length must equal newCount*stride; the store never truncates or pads
func (s *AgentStore) Replace(newCount int, data []float32) (uint64, error) {
	agents, err := s.decodeExact(newCount, data)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return 0, ErrNotInitialized
	}
	s.install(agents)
	return s.generation, nil
}

// ReplaceAt is Replace guarded by the generation a snapshot was taken at
// Fails with ErrStaleGeneration if another replace happened in between
func (s *AgentStore) ReplaceAt(expect uint64, newCount int, data []float32) (uint64, error) {
	agents, err := s.decodeExact(newCount, data)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return 0, ErrNotInitialized
	}
	if s.generation != expect {
		return s.generation, fmt.Errorf("%w: have %d, snapshot %d", ErrStaleGeneration, s.generation, expect)
	}
	s.install(agents)
	return s.generation, nil
}

// install must be called with mu held
func (s *AgentStore) install(agents []component.Agent) {
	second := make([]component.Agent, len(agents))
	copy(second, agents)
	s.buffers[0] = agents
	s.buffers[1] = second
	s.generation++
}

func (s *AgentStore) decodeExact(count int, data []float32) ([]component.Agent, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative agent count %d", ErrContractViolation, count)
	}
	if want := count * s.mode.Stride(); len(data) != want {
		return nil, fmt.Errorf("%w: %s buffer for %d agents needs %d floats, got %d",
			ErrContractViolation, s.mode, count, want, len(data))
	}
	agents, err := component.DecodeAgents(s.mode, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContractViolation, err)
	}
	return agents, nil
}

// CurrentBufferFor returns the buffer holding the latest state after tick ticks
func (s *AgentStore) CurrentBufferFor(tick uint64) BufferID {
	return BufferID(tick % 2)
}

// Advance runs one force pass under the write lock
// current is read-only for pass; next must be fully written. Tick increments only on success
func (s *AgentStore) Advance(pass func(current, next []component.Agent) error) (uint64, []component.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return s.tick, nil, ErrNotInitialized
	}

	current := s.buffers[s.tick%2]
	next := s.buffers[(s.tick+1)%2]
	if err := pass(current, next); err != nil {
		return s.tick, nil, err
	}
	s.tick++
	return s.tick, next, nil
}

// CopyLatest returns an encoded copy of buffers[tick%2]
// Holding the read lock waits out an in-flight Advance
func (s *AgentStore) CopyLatest() (tick, generation uint64, data []float32, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return 0, 0, nil, false
	}
	return s.tick, s.generation, component.EncodeAgents(s.mode, s.buffers[s.tick%2]), true
}

// Count returns the current population
func (s *AgentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buffers[0])
}

// Tick returns completed force passes since Initialize
func (s *AgentStore) Tick() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tick
}

// Generation returns the replace counter
func (s *AgentStore) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Ready reports whether Initialize succeeded
func (s *AgentStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}
