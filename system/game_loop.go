package system

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/core"
	"github.com/lixenwraith/vi-boids/engine"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/status"
	"github.com/lixenwraith/vi-boids/vmath"
)

// Listener receives every game pass report on the game loop goroutine
type Listener interface {
	OnReport(session *engine.GameSession, report *Report)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(session *engine.GameSession, report *Report)

func (f ListenerFunc) OnReport(session *engine.GameSession, report *Report) { f(session, report) }

// GameLoopConfig wires a GameLoop
type GameLoopConfig struct {
	Simulator   *engine.Simulator
	Rules       GameRules
	AI          AIRules
	Population  PopulationConfig
	Interval    time.Duration
	NewInterval engine.IntervalFactory
	Logger      *zap.Logger
	Status      *status.Registry
	Seed        uint64
}

// GameLoop snapshots the simulator at the readback cadence and runs the state machine
// Step and Restart are serialized; the frame tick never waits on a pass
type GameLoop struct {
	sim        *engine.Simulator
	machine    *GameStateMachine
	population PopulationConfig
	interval   time.Duration
	newIv      engine.IntervalFactory
	logger     *zap.Logger

	stepMu    sync.Mutex
	session   atomic.Pointer[engine.GameSession]
	seed      uint64
	listeners []Listener

	lifeMu   sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewGameLoop creates a stopped loop; call Restart to build the first session
func NewGameLoop(cfg GameLoopConfig) *GameLoop {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = parameter.ReadbackInterval
	}
	if cfg.NewInterval == nil {
		cfg.NewInterval = engine.NewTickerInterval
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return &GameLoop{
		sim:        cfg.Simulator,
		machine:    NewGameStateMachine(cfg.Rules, cfg.AI, cfg.Logger, cfg.Status),
		population: cfg.Population,
		interval:   cfg.Interval,
		newIv:      cfg.NewInterval,
		logger:     cfg.Logger.Named("gameloop"),
		seed:       cfg.Seed,
	}
}

// AddListener registers a report listener, must be called before Start
func (g *GameLoop) AddListener(l Listener) {
	g.stepMu.Lock()
	defer g.stepMu.Unlock()
	g.listeners = append(g.listeners, l)
}

// Session returns the current session, nil before the first Restart
func (g *GameLoop) Session() *engine.GameSession {
	return g.session.Load()
}

// LastPlayer delegates to the current session so the camera survives restarts
func (g *GameLoop) LastPlayer() (vmath.Vec2, int, bool) {
	if s := g.session.Load(); s != nil {
		return s.LastPlayer()
	}
	return vmath.Zero2, 0, false
}

// Restart spawns a fresh population and session
// The first call initializes the simulator, later calls reset it
func (g *GameLoop) Restart() error {
	g.stepMu.Lock()
	defer g.stepMu.Unlock()

	g.seed++
	rng := vmath.NewFastRand(g.seed)
	agents, roster := NewPopulation(g.population, g.machine.Rules(), rng)
	data := component.EncodeAgents(component.ModeGame, agents)

	var err error
	if g.session.Load() == nil {
		err = g.sim.Initialize(len(agents), data)
	} else {
		err = g.sim.ResetGame(len(agents), data)
	}
	if err != nil {
		return err
	}

	session := engine.NewGameSession(component.ModeGame, roster, rng.Next())
	g.session.Store(session)
	g.logger.Info("session started",
		zap.Stringer("session", session.ID),
		zap.Int("agents", len(agents)),
		zap.Int("rivals", g.population.RivalPacks))
	return nil
}

// Step runs one pass over a fresh snapshot, nil report when no snapshot is available
func (g *GameLoop) Step() (*Report, error) {
	g.stepMu.Lock()
	defer g.stepMu.Unlock()

	session := g.session.Load()
	if session == nil {
		return nil, engine.ErrNotInitialized
	}
	snap := g.sim.ReadSnapshot()
	if snap == nil {
		return nil, nil
	}

	report, err := g.machine.Process(session, snap, g.sim)
	if err != nil || report == nil {
		return report, err
	}

	if report.NewOutcome && report.Outcome == engine.OutcomeVictory {
		g.sim.SetInputLocked(true)
	}
	for _, l := range g.listeners {
		l.OnReport(session, report)
	}
	return report, nil
}

// Start runs Step at the readback interval
func (g *GameLoop) Start() {
	g.lifeMu.Lock()
	defer g.lifeMu.Unlock()
	if !g.running.CompareAndSwap(false, true) {
		return
	}
	g.stopChan = make(chan struct{})
	stop := g.stopChan
	iv := g.newIv(g.interval)
	g.wg.Add(1)
	core.Go(func() { g.loop(stop, iv) })
}

// Stop halts the loop after the in-flight pass
func (g *GameLoop) Stop() {
	g.lifeMu.Lock()
	defer g.lifeMu.Unlock()
	if g.running.CompareAndSwap(true, false) {
		close(g.stopChan)
		g.wg.Wait()
	}
}

func (g *GameLoop) loop(stop <-chan struct{}, iv engine.Interval) {
	defer g.wg.Done()
	defer iv.Stop()

	for {
		select {
		case <-stop:
			return
		case <-iv.C():
		}
		if _, err := g.Step(); err != nil && !errors.Is(err, engine.ErrNotInitialized) {
			g.logger.Error("game pass failed", zap.Error(err))
		}
	}
}
