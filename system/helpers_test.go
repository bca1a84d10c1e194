package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/engine"
	"github.com/lixenwraith/vi-boids/vmath"
)

// fakeCommitter is an in-memory store honoring the generation guard
type fakeCommitter struct {
	gen   uint64
	err   error
	calls int
	count int
	data  []float32
}

func (f *fakeCommitter) CommitAgentData(gen uint64, count int, data []float32) (uint64, error) {
	f.calls++
	if f.err != nil {
		return f.gen, f.err
	}
	if gen != f.gen {
		return f.gen, engine.ErrStaleGeneration
	}
	f.gen++
	f.count = count
	f.data = data
	return f.gen, nil
}

func (f *fakeCommitter) agents(t *testing.T) []component.Agent {
	t.Helper()
	agents, err := component.DecodeAgents(component.ModeGame, f.data)
	require.NoError(t, err)
	return agents
}

func snapshotOf(agents []component.Agent, gen uint64, now float32) *engine.Snapshot {
	return &engine.Snapshot{
		Tick:       1,
		Generation: gen,
		Mode:       component.ModeGame,
		Count:      len(agents),
		Time:       now,
		Data:       component.EncodeAgents(component.ModeGame, agents),
	}
}

func agentAt(pack component.PackID, x, y float32) component.Agent {
	return component.Agent{Pos: vmath.V2(x, y), Pack: pack}
}

// rosterFor registers every pack present in agents with zero counts
func rosterFor(agents []component.Agent) *component.Roster {
	r := component.NewRoster()
	for i := range agents {
		r.Ensure(agents[i].Pack, defaultFlockName(agents[i].Pack))
	}
	return r
}

func newMachine() *GameStateMachine {
	return NewGameStateMachine(DefaultGameRules(), AIRules{}, nil, nil)
}

func countPacks(agents []component.Agent) map[component.PackID]int {
	counts := make(map[component.PackID]int)
	for i := range agents {
		counts[agents[i].Pack]++
	}
	return counts
}

func requirePartition(t *testing.T, agents []component.Agent, roster []component.Flock) {
	t.Helper()
	counts := countPacks(agents)
	total := 0
	for _, f := range roster {
		require.Equal(t, counts[f.ID], f.Count, "pack %d", f.ID)
		total += f.Count
	}
	require.Equal(t, len(agents), total)
}
