package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/core"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/physics"
	"github.com/lixenwraith/vi-boids/status"
)

// FrameView is the result of one tick handed to frame sinks
// Agents aliases the store buffer and is only valid during OnFrame
type FrameView struct {
	Tick   uint64
	Mode   component.Mode
	Agents []component.Agent
	Params *component.SimParams
}

// FrameSink consumes finished frames, called on the tick goroutine in registration order
type FrameSink interface {
	OnFrame(view FrameView)
}

// FrameSinkFunc adapts a function to FrameSink
type FrameSinkFunc func(view FrameView)

func (f FrameSinkFunc) OnFrame(view FrameView) { f(view) }

// TickHook runs after a tick has fully completed and its locks are released
type TickHook func(tick uint64)

// SimulationScheduler advances the agent store one force pass per frame interval
// Ticks are strictly sequential; Stop lets the in-flight tick finish
type SimulationScheduler struct {
	store  *AgentStore
	kernel Kernel
	model  physics.ForceModel
	params *ParamBlock
	clock  *PausableClock
	logger *zap.Logger

	tickInterval time.Duration
	newInterval  IntervalFactory

	tickMu sync.Mutex
	sinks  []FrameSink
	hooks  []TickHook

	// Lifecycle
	lifeMu   sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  atomic.Bool

	// Cached metric pointers
	statTicks    *atomic.Int64
	statFailures *atomic.Int64
	statTickTime *status.AtomicFloat
}

// SchedulerConfig wires a SimulationScheduler
type SchedulerConfig struct {
	Store        *AgentStore
	Kernel       Kernel
	Model        physics.ForceModel
	Params       *ParamBlock
	Clock        *PausableClock
	TickInterval time.Duration
	NewInterval  IntervalFactory
	Logger       *zap.Logger
	Status       *status.Registry
}

// NewSimulationScheduler creates a stopped scheduler
func NewSimulationScheduler(cfg SchedulerConfig) *SimulationScheduler {
	if cfg.NewInterval == nil {
		cfg.NewInterval = NewTickerInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = NewPausableClock(nil)
	}
	if cfg.Status == nil {
		cfg.Status = status.NewRegistry()
	}
	return &SimulationScheduler{
		store:        cfg.Store,
		kernel:       cfg.Kernel,
		model:        cfg.Model,
		params:       cfg.Params,
		clock:        cfg.Clock,
		logger:       cfg.Logger.Named("scheduler"),
		tickInterval: cfg.TickInterval,
		newInterval:  cfg.NewInterval,
		statTicks:    cfg.Status.Ints.Get("engine.ticks"),
		statFailures: cfg.Status.Ints.Get("engine.tick_failures"),
		statTickTime: cfg.Status.Floats.Get("engine.tick_seconds"),
	}
}

// setKernel installs the kernel acquired at Initialize
func (s *SimulationScheduler) setKernel(k Kernel) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	s.kernel = k
}

// AddFrameSink registers a sink, safe while running
func (s *SimulationScheduler) AddFrameSink(sink FrameSink) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	s.sinks = append(s.sinks, sink)
}

// AddTickHook registers a post-tick hook, safe while running
func (s *SimulationScheduler) AddTickHook(hook TickHook) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Tick runs exactly one force pass: read buffers[tick%2], write buffers[(tick+1)%2]
func (s *SimulationScheduler) Tick(ctx context.Context) (uint64, error) {
	s.tickMu.Lock()

	if s.kernel == nil {
		s.tickMu.Unlock()
		return 0, ErrNotInitialized
	}

	start := time.Now()
	p := *s.params.Load()
	p.Time = s.clock.Seconds()

	tick, next, err := s.store.Advance(func(current, next []component.Agent) error {
		if len(current) != len(next) {
			return fmt.Errorf("%w: buffer sizes %d and %d differ", ErrContractViolation, len(current), len(next))
		}
		return s.kernel.Dispatch(ctx, len(current), func(lo, hi int) error {
			for i := lo; i < hi; i++ {
				next[i] = s.model.Step(i, current, &p)
			}
			return nil
		})
	})
	if err != nil {
		s.tickMu.Unlock()
		s.statFailures.Add(1)
		return tick, err
	}

	// next stays valid: Replace installs fresh slices and the following pass waits on tickMu
	view := FrameView{Tick: tick, Mode: s.store.Mode(), Agents: next, Params: &p}
	for _, sink := range s.sinks {
		sink.OnFrame(view)
	}
	hooks := s.hooks
	s.tickMu.Unlock()

	s.statTicks.Add(1)
	s.statTickTime.Smooth(time.Since(start).Seconds(), parameter.TickTimeSmoothing)

	for _, hook := range hooks {
		hook(tick)
	}
	return tick, nil
}

// Start begins the frame loop; a stopped scheduler can be started again
func (s *SimulationScheduler) Start() {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	s.stopChan = make(chan struct{})
	iv := s.newInterval(s.tickInterval)
	s.wg.Add(1)
	stop := s.stopChan
	core.Go(func() { s.schedulerLoop(stop, iv) })
}

// Stop halts the loop after the in-flight tick completes
func (s *SimulationScheduler) Stop() {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if s.running.CompareAndSwap(true, false) {
		close(s.stopChan)
		s.wg.Wait()
	}
}

// IsRunning reports whether the frame loop is active
func (s *SimulationScheduler) IsRunning() bool {
	return s.running.Load()
}

// schedulerLoop runs one tick per interval fire, skipping fires while the clock is paused
func (s *SimulationScheduler) schedulerLoop(stop <-chan struct{}, iv Interval) {
	defer s.wg.Done()
	defer iv.Stop()

	for {
		select {
		case <-stop:
			return
		case <-iv.C():
		}

		if s.clock.IsPaused() {
			continue
		}
		if _, err := s.Tick(context.Background()); err != nil {
			s.logger.Error("tick failed", zap.Error(err))
		}
	}
}
