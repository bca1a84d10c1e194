package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/vmath"
)

func TestNewPopulation_LineUp(t *testing.T) {
	rules := DefaultGameRules()
	cfg := PopulationConfig{Players: 4, Food: 20, RivalPacks: 2, RivalSize: 5}
	agents, roster := NewPopulation(cfg, rules, vmath.NewFastRand(11))

	require.Len(t, agents, 34)
	counts := countPacks(agents)
	assert.Equal(t, 4, counts[component.PackPlayer])
	assert.Equal(t, 20, counts[component.PackFood])
	assert.Equal(t, 5, counts[component.PackFirstRival])
	assert.Equal(t, 5, counts[component.PackFirstRival+1])
	requirePartition(t, agents, roster.Snapshot())

	f, ok := roster.Get(component.PackFirstRival)
	require.True(t, ok)
	assert.Equal(t, "Crimson", f.Name)

	extent := rules.spawnExtent()
	for i := range agents {
		a := &agents[i]
		assert.Zero(t, a.CaptureTime)
		if a.Pack == component.PackFood {
			assert.LessOrEqual(t, vmath.Abs(a.Pos.X), extent)
			assert.LessOrEqual(t, vmath.Abs(a.Pos.Y), extent)
		}
		if a.Pack == component.PackPlayer {
			assert.Equal(t, vmath.Zero2, a.Pos)
		}
	}
}

func TestDefaultFlockName(t *testing.T) {
	assert.Equal(t, "You", defaultFlockName(component.PackPlayer))
	assert.Equal(t, "Food", defaultFlockName(component.PackFood))
	assert.Equal(t, "Amber", defaultFlockName(component.PackFirstRival+1))
	assert.Equal(t, "Pack 40", defaultFlockName(40))
}
