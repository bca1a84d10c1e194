package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-boids/config"
	"github.com/lixenwraith/vi-boids/core"
	"github.com/lixenwraith/vi-boids/status"
)

// options are the command-line flags; zero values keep the config file's setting
type options struct {
	configPath string
	mode       string
	preset     string
	palette    string
	count      int
	debug      bool
	metrics    string
	mute       bool
	color      string
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "YAML config file, watched for flocking changes")
	fs.StringVar(&o.mode, "mode", "", "Mode: simulation, game")
	fs.StringVar(&o.preset, "preset", "", "Flocking preset: default, game, mosquitoes, blobs, particles, nanites")
	fs.StringVar(&o.palette, "palette", "", "Simulation palette: plumTree, jeans, greyscale, hotcold")
	fs.IntVar(&o.count, "count", 0, "Agent count in simulation mode")
	fs.BoolVar(&o.debug, "debug", false, "Write debug logs to logs/vi-boids.log")
	fs.StringVar(&o.metrics, "metrics", "", "Serve Prometheus metrics on this address, e.g. :9090")
	fs.BoolVar(&o.mute, "mute", false, "Start with sound muted")
	fs.StringVar(&o.color, "color", "auto", "Color mode: auto, truecolor, 256")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

// apply writes the set flags over cfg and revalidates
func (o *options) apply(cfg *config.Config) error {
	if o.mode != "" {
		cfg.Mode = o.mode
	}
	if o.preset != "" {
		cfg.Preset = o.preset
	}
	if o.palette != "" {
		cfg.Palette = o.palette
	}
	if o.count > 0 {
		cfg.AgentCount = o.count
	}
	return cfg.Validate()
}

// applyColorMode steers tcell's color detection before the screen is created
func applyColorMode(mode string) error {
	switch mode {
	case "auto", "":
		return nil
	case "truecolor", "true", "24bit":
		return os.Setenv("COLORTERM", "truecolor")
	case "256":
		return os.Setenv("TCELL_TRUECOLOR", "disable")
	}
	return fmt.Errorf("unknown color mode %q", mode)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vi-boids: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}
	if err := applyColorMode(opts.color); err != nil {
		return err
	}

	logger, logFile, err := setupLogging(opts.debug)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	defer logger.Sync()

	reg := status.NewRegistry()
	if opts.metrics != "" {
		stopMetrics := serveMetrics(opts.metrics, reg, logger)
		defer stopMetrics()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()
	core.SetCrashTerminal(screen)
	defer core.SetCrashTerminal(nil)

	a, err := newApp(cfg, screen, logger, reg)
	if err != nil {
		return err
	}
	if opts.mute {
		a.sound.SetMuted(true)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if opts.configPath != "" {
		w, err := config.NewWatcher(opts.configPath, a.applyReload, config.DefaultDebounce, logger)
		if err != nil {
			logger.Warn("config watcher unavailable", zap.Error(err))
		} else if err := w.Start(ctx); err != nil {
			logger.Warn("config watcher unavailable", zap.Error(err))
			_ = w.Stop()
		} else {
			defer w.Stop()
		}
	}

	if err := a.start(); err != nil {
		return err
	}
	defer a.stop()

	logger.Info("vi-boids started",
		zap.Stringer("mode", a.mode),
		zap.String("preset", a.currentPreset()),
		zap.Int("agents", a.sim.Count()))
	return a.run(ctx)
}
