package system

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/engine"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/status"
	"github.com/lixenwraith/vi-boids/vmath"
)

func newGameSim(t *testing.T, mock *engine.MockTimeProvider) *engine.Simulator {
	t.Helper()
	sim := engine.NewSimulator(engine.Config{
		Mode: component.ModeGame,
		Params: component.SimParams{
			FlockingParams:    parameter.GameFlocking,
			AgentSize:         0.04,
			ArenaSize:         parameter.DefaultArenaSize,
			ColorFadeDuration: parameter.ColorFadeDuration,
		},
		Workers:     2,
		Clock:       engine.NewPausableClock(mock),
		NewInterval: mock.NewInterval,
		Logger:      zaptest.NewLogger(t),
	})
	t.Cleanup(sim.Stop)
	return sim
}

func TestGameLoop_StepBeforeRestart(t *testing.T) {
	mock := engine.NewMockTimeProvider(time.Unix(0, 0))
	loop := NewGameLoop(GameLoopConfig{Simulator: newGameSim(t, mock), Rules: DefaultGameRules()})
	_, err := loop.Step()
	assert.ErrorIs(t, err, engine.ErrNotInitialized)
	_, _, ok := loop.LastPlayer()
	assert.False(t, ok)
}

func TestGameLoop_RestartAndStep(t *testing.T) {
	mock := engine.NewMockTimeProvider(time.Unix(0, 0))
	sim := newGameSim(t, mock)
	reg := status.NewRegistry()
	loop := NewGameLoop(GameLoopConfig{
		Simulator:  sim,
		Rules:      DefaultGameRules(),
		AI:         DefaultAIRules(),
		Population: DefaultPopulation(),
		Logger:     zaptest.NewLogger(t),
		Status:     reg,
		Seed:       3,
	})

	var reports atomic.Int32
	loop.AddListener(ListenerFunc(func(s *engine.GameSession, r *Report) {
		assert.Same(t, loop.Session(), s)
		reports.Add(1)
	}))

	require.NoError(t, loop.Restart())
	first := loop.Session()
	require.NotNil(t, first)
	want := parameter.StartingPlayers + parameter.StartingFood + parameter.DefaultRivalPacks*parameter.DefaultRivalSize
	assert.Equal(t, want, sim.Count())
	assert.True(t, first.MultiFlock())

	// No tick yet, nothing to read
	report, err := loop.Step()
	require.NoError(t, err)
	assert.Nil(t, report)

	_, err = sim.Tick(context.Background())
	require.NoError(t, err)
	report, err = loop.Step()
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, int32(1), reports.Load())
	assert.Equal(t, int64(1), reg.Ints.Get("game.passes").Load())

	center, count, ok := loop.LastPlayer()
	require.True(t, ok)
	assert.Equal(t, parameter.StartingPlayers, count)
	assert.InDelta(t, 0, center.X, 0.1)

	require.NoError(t, loop.Restart())
	assert.NotSame(t, first, loop.Session())
	assert.NotEqual(t, first.ID, loop.Session().ID)
	assert.Zero(t, sim.CurrentTick())
	assert.Equal(t, want, sim.Count())
}

func TestGameLoop_VictoryLocksInput(t *testing.T) {
	mock := engine.NewMockTimeProvider(time.Unix(0, 0))
	sim := newGameSim(t, mock)
	loop := NewGameLoop(GameLoopConfig{
		Simulator:  sim,
		Rules:      DefaultGameRules(),
		Population: PopulationConfig{Players: 3, Food: 2, RivalPacks: 1, RivalSize: 0},
		Logger:     zaptest.NewLogger(t),
	})
	var outcomes []engine.Outcome
	loop.AddListener(ListenerFunc(func(_ *engine.GameSession, r *Report) {
		if r.NewOutcome {
			outcomes = append(outcomes, r.Outcome)
		}
	}))

	require.NoError(t, loop.Restart())
	require.NoError(t, sim.SetParameters(func(p *component.SimParams) {
		p.InputActive = true
		p.Target = vmath.V2(1, 1)
	}))

	_, err := sim.Tick(context.Background())
	require.NoError(t, err)
	_, err = loop.Step()
	require.NoError(t, err)
	_, err = loop.Step()
	require.NoError(t, err)

	assert.Equal(t, []engine.Outcome{engine.OutcomeVictory}, outcomes)
	assert.True(t, sim.InputLocked())
	assert.False(t, sim.Parameters().InputActive)

	// The simulation keeps running
	_, err = sim.Tick(context.Background())
	assert.NoError(t, err)

	require.NoError(t, loop.Restart())
	assert.False(t, sim.InputLocked())
	assert.Equal(t, engine.OutcomeNone, loop.Session().Outcome())
}

func TestGameLoop_RunsOnInterval(t *testing.T) {
	mock := engine.NewMockTimeProvider(time.Unix(0, 0))
	sim := newGameSim(t, mock)
	reg := status.NewRegistry()
	loop := NewGameLoop(GameLoopConfig{
		Simulator:   sim,
		Rules:       DefaultGameRules(),
		Population:  DefaultPopulation(),
		Interval:    100 * time.Millisecond,
		NewInterval: mock.NewInterval,
		Logger:      zaptest.NewLogger(t),
		Status:      reg,
	})
	require.NoError(t, loop.Restart())
	_, err := sim.Tick(context.Background())
	require.NoError(t, err)

	loop.Start()
	defer loop.Stop()

	mock.Advance(100 * time.Millisecond)
	require.Eventually(t, func() bool { return reg.Ints.Get("game.passes").Load() >= 1 },
		time.Second, time.Millisecond)

	loop.Stop()
	passes := reg.Ints.Get("game.passes").Load()
	mock.Advance(time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, passes, reg.Ints.Get("game.passes").Load())
}

func TestCamera_AttachPublishesParameters(t *testing.T) {
	mock := engine.NewMockTimeProvider(time.Unix(0, 0))
	sim := newGameSim(t, mock)
	loop := NewGameLoop(GameLoopConfig{
		Simulator:  sim,
		Rules:      DefaultGameRules(),
		Population: PopulationConfig{Players: 4, Food: 5},
		Logger:     zaptest.NewLogger(t),
	})
	require.NoError(t, loop.Restart())

	cam := NewCameraController(DefaultCameraTuning(), loop)
	cam.SetViewport(120, 40, 0.5)
	cam.Attach(sim)

	_, err := sim.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float32(parameter.CameraInitialZoom), sim.Parameters().CameraZoom)
	assert.InDelta(t, 1.5, sim.Parameters().AspectRatio, 1e-6)

	_, err = loop.Step()
	require.NoError(t, err)
	_, err = sim.Tick(context.Background())
	require.NoError(t, err)

	target := cam.TargetZoom(4)
	want := float32(parameter.CameraInitialZoom) + (target-float32(parameter.CameraInitialZoom))*float32(parameter.CameraSmoothing)
	assert.InDelta(t, want, sim.Parameters().CameraZoom, 1e-6)
}
