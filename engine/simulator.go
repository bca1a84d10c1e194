package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/physics"
	"github.com/lixenwraith/vi-boids/status"
	"github.com/lixenwraith/vi-boids/vmath"
)

// Config wires a Simulator; zero fields take defaults
type Config struct {
	Mode    component.Mode
	Profile *physics.ForceProfile // nil selects the mode default
	Params  component.SimParams

	FrameInterval time.Duration
	Workers       int           // Kernel goroutines, 0 means GOMAXPROCS
	AcquireKernel KernelFactory // Overrides Workers

	Clock       *PausableClock
	NewInterval IntervalFactory
	Logger      *zap.Logger
	Status      *status.Registry
	Seed        uint64
}

// Simulator is the facade over store, scheduler, readback and parameters
type Simulator struct {
	mode      component.Mode
	store     *AgentStore
	params    *ParamBlock
	clock     *PausableClock
	model     physics.ForceModel
	scheduler *SimulationScheduler
	gate      *ReadbackGate
	logger    *zap.Logger

	acquire     KernelFactory
	kernelOnce  sync.Once
	kernel      Kernel
	kernelErr   error
	initialized atomic.Bool
	inputLocked atomic.Bool

	rngMu sync.Mutex
	rng   *vmath.FastRand

	statAgents     *atomic.Int64
	statGeneration *atomic.Int64
	statMode       *status.AtomicString
}

// NewSimulator creates an uninitialized simulator
func NewSimulator(cfg Config) *Simulator {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Status == nil {
		cfg.Status = status.NewRegistry()
	}
	if cfg.Clock == nil {
		cfg.Clock = NewPausableClock(nil)
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = parameter.FrameUpdateInterval
	}
	profile := physics.ProfileFor(cfg.Mode)
	if cfg.Profile != nil {
		profile = *cfg.Profile
	}
	acquire := cfg.AcquireKernel
	if acquire == nil {
		workers := cfg.Workers
		acquire = func() (Kernel, error) { return NewParallelKernel(workers) }
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	store := NewAgentStore(cfg.Mode)
	params := NewParamBlock(cfg.Params)
	model := physics.NewForceModel(cfg.Mode, profile)

	s := &Simulator{
		mode:    cfg.Mode,
		store:   store,
		params:  params,
		clock:   cfg.Clock,
		model:   model,
		gate:    NewReadbackGate(store, cfg.Clock),
		logger:  cfg.Logger.Named("simulator"),
		acquire: acquire,
		rng:     vmath.NewFastRand(cfg.Seed),

		statAgents:     cfg.Status.Ints.Get("sim.agents"),
		statGeneration: cfg.Status.Ints.Get("sim.generation"),
		statMode:       cfg.Status.Strings.Get("sim.mode"),
	}
	s.scheduler = NewSimulationScheduler(SchedulerConfig{
		Store:        store,
		Model:        model,
		Params:       params,
		Clock:        cfg.Clock,
		TickInterval: cfg.FrameInterval,
		NewInterval:  cfg.NewInterval,
		Logger:       cfg.Logger,
		Status:       cfg.Status,
	})
	s.statMode.Store(cfg.Mode.String())
	s.gate.Open()
	return s
}

// Initialize acquires the kernel and fills both buffers
// nil data seeds random agents in simulation mode; game mode requires data
func (s *Simulator) Initialize(count int, data []float32) error {
	s.kernelOnce.Do(func() {
		k, err := s.acquire()
		if err != nil {
			if !errors.Is(err, ErrEnvironmentUnavailable) {
				err = fmt.Errorf("%w: %v", ErrEnvironmentUnavailable, err)
			}
			s.kernelErr = err
			return
		}
		if k == nil {
			s.kernelErr = fmt.Errorf("%w: kernel factory returned nil", ErrEnvironmentUnavailable)
			return
		}
		s.kernel = k
	})
	if s.kernelErr != nil {
		return s.kernelErr
	}

	if err := s.install(count, data); err != nil {
		return err
	}
	s.scheduler.setKernel(s.kernel)
	s.initialized.Store(true)
	s.logger.Info("initialized",
		zap.Stringer("mode", s.mode),
		zap.Int("agents", count),
		zap.Int("workers", s.kernel.Workers()))
	return nil
}

// install replaces the whole population and resets the tick counter
func (s *Simulator) install(count int, data []float32) error {
	var (
		gen uint64
		err error
	)
	if data == nil && s.mode == component.ModeSimulation {
		s.rngMu.Lock()
		gen, err = s.store.InitializeRandom(count, s.rng)
		s.rngMu.Unlock()
	} else {
		gen, err = s.store.Initialize(count, data)
	}
	if err != nil {
		return err
	}
	s.syncCount(count, gen)
	return nil
}

// syncCount mirrors the population into the parameter block and status
func (s *Simulator) syncCount(count int, gen uint64) {
	s.params.Update(func(p *component.SimParams) error {
		p.AgentCount = count
		return nil
	})
	s.statAgents.Store(int64(count))
	s.statGeneration.Store(int64(gen))
}

// SetParameters publishes a whole new parameter struct built by update
// In simulation mode a changed agent count re-seeds both buffers; in game mode
// the count follows the store and cannot be set here
func (s *Simulator) SetParameters(update func(p *component.SimParams)) error {
	locked := s.inputLocked.Load()
	current := s.store.Count()
	prev, next, err := s.params.Update(func(p *component.SimParams) error {
		update(p)
		if p.AgentCount < 0 {
			return fmt.Errorf("%w: negative agent count %d", ErrContractViolation, p.AgentCount)
		}
		if s.mode == component.ModeGame {
			p.AgentCount = current
		}
		if locked {
			p.InputActive = false
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.mode == component.ModeSimulation && next.AgentCount != prev.AgentCount && s.initialized.Load() {
		return s.Randomize(next.AgentCount)
	}
	return nil
}

// Parameters returns the current parameter struct
func (s *Simulator) Parameters() component.SimParams {
	return *s.params.Load()
}

// SetAgentData replaces both buffers unconditionally
func (s *Simulator) SetAgentData(count int, data []float32) error {
	if !s.initialized.Load() {
		return ErrNotInitialized
	}
	gen, err := s.store.Replace(count, data)
	if err != nil {
		return err
	}
	s.syncCount(count, gen)
	s.logger.Debug("agent data replaced", zap.Int("agents", count), zap.Uint64("generation", gen))
	return nil
}

// CommitAgentData replaces both buffers if no replace happened since the snapshot at gen
func (s *Simulator) CommitAgentData(gen uint64, count int, data []float32) (uint64, error) {
	if !s.initialized.Load() {
		return 0, ErrNotInitialized
	}
	newGen, err := s.store.ReplaceAt(gen, count, data)
	if err != nil {
		return newGen, err
	}
	s.syncCount(count, newGen)
	return newGen, nil
}

// Randomize re-seeds both buffers with count random agents, simulation mode only
func (s *Simulator) Randomize(count int) error {
	if s.mode != component.ModeSimulation {
		return fmt.Errorf("%w: randomize requires simulation mode", ErrContractViolation)
	}
	if !s.initialized.Load() {
		return ErrNotInitialized
	}
	if err := s.install(count, nil); err != nil {
		return err
	}
	s.logger.Info("agents randomized", zap.Int("agents", count))
	return nil
}

// ResetGame installs a fresh population, restarts simulation time and unlocks input
func (s *Simulator) ResetGame(count int, data []float32) error {
	if !s.initialized.Load() {
		return ErrNotInitialized
	}
	if err := s.install(count, data); err != nil {
		return err
	}
	s.clock.Reset()
	s.inputLocked.Store(false)
	s.logger.Info("game reset", zap.Int("agents", count))
	return nil
}

// SetInputLocked disables input-driven steering, used once the game is won
func (s *Simulator) SetInputLocked(locked bool) {
	s.inputLocked.Store(locked)
	if locked {
		s.params.Update(func(p *component.SimParams) error {
			p.InputActive = false
			return nil
		})
	}
}

// InputLocked reports whether input steering is disabled
func (s *Simulator) InputLocked() bool {
	return s.inputLocked.Load()
}

// Start begins frame ticking and opens readback
func (s *Simulator) Start() error {
	if !s.initialized.Load() {
		return ErrNotInitialized
	}
	s.gate.Open()
	s.scheduler.Start()
	return nil
}

// Stop halts ticking after the in-flight tick; readback returns nil until the next Start
func (s *Simulator) Stop() {
	s.scheduler.Stop()
	s.gate.Close()
}

// Tick runs one force pass synchronously
func (s *Simulator) Tick(ctx context.Context) (uint64, error) {
	if !s.initialized.Load() {
		return 0, ErrNotInitialized
	}
	return s.scheduler.Tick(ctx)
}

// ReadSnapshot returns a copy of the latest buffer, nil while stopped or before the first tick
func (s *Simulator) ReadSnapshot() *Snapshot {
	return s.gate.Read()
}

// AddFrameSink registers a presentation sink
func (s *Simulator) AddFrameSink(sink FrameSink) {
	s.scheduler.AddFrameSink(sink)
}

// AddTickHook registers a post-tick hook
func (s *Simulator) AddTickHook(hook TickHook) {
	s.scheduler.AddTickHook(hook)
}

// Mode returns the simulator mode
func (s *Simulator) Mode() component.Mode { return s.mode }

// Clock returns the simulation clock
func (s *Simulator) Clock() *PausableClock { return s.clock }

// Model returns the force model
func (s *Simulator) Model() physics.ForceModel { return s.model }

// Count returns the population
func (s *Simulator) Count() int { return s.store.Count() }

// Generation returns the store replace counter
func (s *Simulator) Generation() uint64 { return s.store.Generation() }

// CurrentTick returns completed ticks
func (s *Simulator) CurrentTick() uint64 { return s.store.Tick() }

// Running reports whether the frame loop is active
func (s *Simulator) Running() bool { return s.scheduler.IsRunning() }
