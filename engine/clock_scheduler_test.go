package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/physics"
	"github.com/lixenwraith/vi-boids/status"
)

type failingKernel struct{ err error }

func (k failingKernel) Dispatch(context.Context, int, func(lo, hi int) error) error { return k.err }
func (k failingKernel) Workers() int                                                { return 1 }

func newTestScheduler(t *testing.T, kernel Kernel, clock *PausableClock) (*SimulationScheduler, *AgentStore, *status.Registry) {
	t.Helper()
	store := NewAgentStore(component.ModeGame)
	_, err := store.Initialize(8, component.EncodeAgents(component.ModeGame, gameAgents(8)))
	require.NoError(t, err)

	reg := status.NewRegistry()
	sched := NewSimulationScheduler(SchedulerConfig{
		Store:  store,
		Kernel: kernel,
		Model:  physics.NewForceModel(component.ModeGame, physics.GameProfile),
		Params: NewParamBlock(component.SimParams{ArenaSize: 2}),
		Clock:  clock,
		Logger: zaptest.NewLogger(t),
		Status: reg,
	})
	return sched, store, reg
}

func TestSimulationScheduler_KernelFailureKeepsTick(t *testing.T) {
	boom := errors.New("device lost")
	sched, store, reg := newTestScheduler(t, failingKernel{err: boom}, nil)

	_, err := sched.Tick(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, store.Tick())
	assert.Equal(t, int64(1), reg.Ints.Get("engine.tick_failures").Load())
}

func TestSimulationScheduler_StampsSimulationTime(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(mock)
	kernel, err := NewParallelKernel(2)
	require.NoError(t, err)
	sched, _, _ := newTestScheduler(t, kernel, clock)

	var seen []float32
	sched.AddFrameSink(FrameSinkFunc(func(v FrameView) { seen = append(seen, v.Params.Time) }))

	mock.Advance(1500 * time.Millisecond)
	_, err = sched.Tick(context.Background())
	require.NoError(t, err)
	mock.Advance(500 * time.Millisecond)
	_, err = sched.Tick(context.Background())
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float32{1.5, 2.0}, seen, 1e-6)
}

func TestSimulationScheduler_StopWithoutStart(t *testing.T) {
	kernel, err := NewParallelKernel(1)
	require.NoError(t, err)
	sched, _, _ := newTestScheduler(t, kernel, nil)

	sched.Stop()
	assert.False(t, sched.IsRunning())
}

func TestSimulationScheduler_SkipsWhilePaused(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(mock)
	kernel, err := NewParallelKernel(1)
	require.NoError(t, err)
	sched, store, _ := newTestScheduler(t, kernel, clock)
	sched.tickInterval = 10 * time.Millisecond
	sched.newInterval = mock.NewInterval

	fired := make(chan uint64, 16)
	sched.AddTickHook(func(tick uint64) { fired <- tick })

	clock.Pause()
	sched.Start()
	defer sched.Stop()

	mock.Advance(10 * time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, store.Tick())

	clock.Resume()
	mock.Advance(10 * time.Millisecond)
	select {
	case tick := <-fired:
		assert.Equal(t, uint64(1), tick)
	case <-time.After(time.Second):
		t.Fatal("no tick after resume")
	}
}
