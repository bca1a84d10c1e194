package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/vmath"
)

func gameAgents(n int) []component.Agent {
	agents := make([]component.Agent, n)
	for i := range agents {
		agents[i] = component.Agent{
			Pos:  vmath.V2(float32(i)*0.01, -float32(i)*0.01),
			Vel:  vmath.V2(0.001, 0),
			Pack: component.PackID(i % 3),
		}
	}
	return agents
}

func TestAgentStore_InitializeRejectsLengthMismatch(t *testing.T) {
	store := NewAgentStore(component.ModeGame)

	_, err := store.Initialize(3, make([]float32, 3*component.StrideGame-1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContractViolation))
	assert.False(t, store.Ready())

	_, err = store.Initialize(-1, nil)
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestAgentStore_ReplaceBeforeInitialize(t *testing.T) {
	store := NewAgentStore(component.ModeSimulation)
	_, err := store.Replace(0, nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestAgentStore_CurrentBufferAlternates(t *testing.T) {
	store := NewAgentStore(component.ModeSimulation)
	assert.Equal(t, BufferA, store.CurrentBufferFor(0))
	assert.Equal(t, BufferB, store.CurrentBufferFor(1))
	assert.Equal(t, BufferA, store.CurrentBufferFor(2))
	assert.Equal(t, "B", BufferB.String())
}

func TestAgentStore_AdvancePingPong(t *testing.T) {
	store := NewAgentStore(component.ModeGame)
	agents := gameAgents(4)
	_, err := store.Initialize(len(agents), component.EncodeAgents(component.ModeGame, agents))
	require.NoError(t, err)

	for step := 1; step <= 3; step++ {
		tick, next, err := store.Advance(func(current, next []component.Agent) error {
			for i := range current {
				next[i] = current[i]
				next[i].Pos.X += 1
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(step), tick)
		assert.InDelta(t, float64(step), next[0].Pos.X, 1e-6)
	}

	tick, _, data, ok := store.CopyLatest()
	require.True(t, ok)
	assert.Equal(t, uint64(3), tick)
	latest, err := component.DecodeAgents(component.ModeGame, data)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, latest[0].Pos.X, 1e-6)
}

func TestAgentStore_AdvanceFailureKeepsTick(t *testing.T) {
	store := NewAgentStore(component.ModeSimulation)
	_, err := store.InitializeRandom(10, vmath.NewFastRand(1))
	require.NoError(t, err)

	boom := errors.New("boom")
	tick, _, err := store.Advance(func(_, _ []component.Agent) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, tick)
	assert.Zero(t, store.Tick())
}

func TestAgentStore_ReplaceGrowsAndKeepsTick(t *testing.T) {
	store := NewAgentStore(component.ModeGame)
	agents := gameAgents(3)
	gen0, err := store.Initialize(3, component.EncodeAgents(component.ModeGame, agents))
	require.NoError(t, err)

	_, _, err = store.Advance(func(current, next []component.Agent) error {
		copy(next, current)
		return nil
	})
	require.NoError(t, err)

	grown := append(gameAgents(3), component.Agent{Pack: component.PackFood})
	gen1, err := store.Replace(4, component.EncodeAgents(component.ModeGame, grown))
	require.NoError(t, err)
	assert.Greater(t, gen1, gen0)
	assert.Equal(t, 4, store.Count())
	assert.Equal(t, uint64(1), store.Tick())

	// Both sides hold the replacement
	for i := 0; i < 2; i++ {
		_, next, err := store.Advance(func(current, next []component.Agent) error {
			copy(next, current)
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, next, 4)
		assert.Equal(t, component.PackFood, next[3].Pack)
	}
}

func TestAgentStore_ReplaceRejectsWrongLength(t *testing.T) {
	store := NewAgentStore(component.ModeGame)
	_, err := store.Initialize(2, component.EncodeAgents(component.ModeGame, gameAgents(2)))
	require.NoError(t, err)

	_, err = store.Replace(3, component.EncodeAgents(component.ModeGame, gameAgents(2)))
	assert.ErrorIs(t, err, ErrContractViolation)
	assert.Equal(t, 2, store.Count())
}

func TestAgentStore_ReplaceAtDetectsStaleGeneration(t *testing.T) {
	store := NewAgentStore(component.ModeGame)
	data := component.EncodeAgents(component.ModeGame, gameAgents(2))
	gen, err := store.Initialize(2, data)
	require.NoError(t, err)

	_, err = store.Replace(2, data)
	require.NoError(t, err)

	_, err = store.ReplaceAt(gen, 2, data)
	assert.ErrorIs(t, err, ErrStaleGeneration)

	fresh := store.Generation()
	next, err := store.ReplaceAt(fresh, 2, data)
	require.NoError(t, err)
	assert.Equal(t, fresh+1, next)
}

func TestAgentStore_InitializeRandomWithinSpread(t *testing.T) {
	store := NewAgentStore(component.ModeSimulation)
	_, err := store.InitializeRandom(500, vmath.NewFastRand(42))
	require.NoError(t, err)

	_, _, data, ok := store.CopyLatest()
	require.True(t, ok)
	require.Len(t, data, 500*component.StrideSimulation)
	for i := 0; i < 500; i++ {
		x, y := data[i*4], data[i*4+1]
		assert.True(t, x >= -1 && x <= 1 && y >= -1 && y <= 1, "agent %d at (%v,%v)", i, x, y)
	}
}
