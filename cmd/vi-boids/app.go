package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-boids/audio"
	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/config"
	"github.com/lixenwraith/vi-boids/core"
	"github.com/lixenwraith/vi-boids/engine"
	"github.com/lixenwraith/vi-boids/input"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/render"
	"github.com/lixenwraith/vi-boids/status"
	"github.com/lixenwraith/vi-boids/system"
)

// app owns every long-lived component of one run
type app struct {
	cfg    *config.Config
	mode   component.Mode
	screen tcell.Screen
	logger *zap.Logger

	sim     *engine.Simulator
	game    *system.GameLoop         // nil in simulation mode
	camera  *system.CameraController // nil in simulation mode
	term    *render.Terminal
	sound   *audio.SoundManager
	handler *input.Handler

	presetMu sync.Mutex
	preset   string
}

// newApp wires the simulator, presenter, audio and input without starting anything
// In game mode the first session is spawned here
func newApp(cfg *config.Config, screen tcell.Screen, logger *zap.Logger, reg *status.Registry) (*app, error) {
	palette, err := render.PaletteByName(cfg.Palette)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		mode:   cfg.ModeValue(),
		screen: screen,
		logger: logger,
		preset: cfg.Preset,
	}

	a.sim = engine.NewSimulator(engine.Config{
		Mode:          a.mode,
		Params:        cfg.SimParams(),
		FrameInterval: cfg.Intervals.Frame,
		Workers:       cfg.Workers,
		Logger:        logger,
		Status:        reg,
		Seed:          cfg.Seed,
	})

	a.sound = audio.NewSoundManager(cfg.AudioConfig(), logger, reg)
	if err := a.sound.Initialize(); err != nil {
		if errors.Is(err, audio.ErrAudioDisabled) {
			logger.Info("audio disabled")
		} else {
			logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		}
	}

	tc := render.TerminalConfig{
		Screen:    screen,
		Mode:      a.mode,
		Palette:   palette,
		Audio:     a.sound,
		Clock:     a.sim.Clock(),
		Status:    reg,
		Logger:    logger,
		ArenaSize: cfg.Game.ArenaSize,
		Preset:    cfg.Preset,
	}

	var pointer *input.Pointer
	if a.mode == component.ModeGame {
		a.game = system.NewGameLoop(system.GameLoopConfig{
			Simulator:  a.sim,
			Rules:      cfg.Game,
			AI:         cfg.AI,
			Population: cfg.Population,
			Interval:   cfg.Intervals.Readback,
			Logger:     logger,
			Status:     reg,
			Seed:       cfg.Seed,
		})
		a.game.AddListener(a.sound)
		if err := a.game.Restart(); err != nil {
			return nil, fmt.Errorf("spawn session: %w", err)
		}

		a.camera = system.NewCameraController(cfg.Camera, a.game)
		a.camera.Attach(a.sim)
		pointer = input.NewPointer(a.camera, a.sim)
		pointer.Attach(a.sim)

		tc.Projection = a.camera
		tc.Sessions = a.game
		tc.Preset = "game"
	} else if err := a.sim.Initialize(cfg.AgentCount, nil); err != nil {
		return nil, fmt.Errorf("initialize simulation: %w", err)
	}

	a.term = render.NewTerminal(tc)
	a.sim.AddFrameSink(a.term)

	keys := input.DefaultKeyTable()
	if err := keys.Override(cfg.Keys); err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}
	a.handler = input.NewHandler(keys, pointer, logger)
	return a, nil
}

// start begins frame ticking and, in game mode, the readback passes
func (a *app) start() error {
	if err := a.sim.Start(); err != nil {
		return err
	}
	if a.game != nil {
		a.game.Start()
	}
	a.term.Redraw()
	return nil
}

// stop halts the loops after their current pass and releases audio
func (a *app) stop() {
	if a.game != nil {
		a.game.Stop()
	}
	a.sim.Stop()
	a.sound.Cleanup()
}

// run processes terminal events until quit or ctx ends
func (a *app) run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)

	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if a.dispatch(a.handler.Handle(ev)) {
				return nil
			}
		}
	}
}

// dispatch acts on one intent, returns true on quit
func (a *app) dispatch(intent input.Intent) bool {
	switch intent.Type {
	case input.IntentQuit:
		return true

	case input.IntentPause:
		paused := a.sim.Clock().Toggle()
		a.logger.Info("pause toggled", zap.Bool("paused", paused))

	case input.IntentRestart:
		if err := a.restart(); err != nil {
			a.logger.Warn("restart failed", zap.Error(err))
		}

	case input.IntentToggleMute:
		a.sound.ToggleMute()

	case input.IntentNextPalette:
		a.term.SetPalette(a.term.Palette().Next())

	case input.IntentNextPreset:
		if err := a.nextPreset(); err != nil {
			a.logger.Warn("preset change failed", zap.Error(err))
		}

	case input.IntentResize:
		a.screen.Sync()
		a.term.Resize()

	default:
		return false
	}
	a.term.Redraw()
	return false
}

// restart spawns a new game session or re-seeds the simulation
func (a *app) restart() error {
	if a.game != nil {
		if err := a.game.Restart(); err != nil {
			return err
		}
		a.camera.Reset()
		return nil
	}
	return a.sim.Randomize(a.sim.Count())
}

// nextPreset cycles the flocking preset in name order, simulation mode only
func (a *app) nextPreset() error {
	if a.mode != component.ModeSimulation {
		return nil
	}
	a.presetMu.Lock()
	names := parameter.PresetNames()
	next := names[(slices.Index(names, a.preset)+1)%len(names)]
	a.preset = next
	a.presetMu.Unlock()

	fp, err := parameter.Preset(next)
	if err != nil {
		return err
	}
	a.term.SetPreset(next)
	return a.sim.SetParameters(func(p *component.SimParams) {
		p.FlockingParams = fp
	})
}

// applyReload publishes a reloaded file; the running mode is kept and the file's preset is adopted
func (a *app) applyReload(cfg *config.Config) error {
	cfg.Mode = a.cfg.Mode
	if err := config.ApplyFlocking(a.sim)(cfg); err != nil {
		return err
	}
	if a.mode == component.ModeSimulation {
		a.presetMu.Lock()
		a.preset = cfg.Preset
		a.presetMu.Unlock()
		a.term.SetPreset(cfg.Preset)
	}
	return nil
}

// currentPreset returns the active preset name
func (a *app) currentPreset() string {
	a.presetMu.Lock()
	defer a.presetMu.Unlock()
	return a.preset
}
