package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/core"
)

// DefaultDebounce coalesces editor save bursts into one reload
const DefaultDebounce = 250 * time.Millisecond

// ApplyFunc receives each successfully reloaded configuration
type ApplyFunc func(cfg *Config) error

// ParamSetter is the simulator surface the flocking reload needs
type ParamSetter interface {
	SetParameters(update func(p *component.SimParams)) error
}

// ApplyFlocking publishes the reloaded flocking sextuple as one whole parameter update
func ApplyFlocking(sim ParamSetter) ApplyFunc {
	return func(cfg *Config) error {
		fp := cfg.FlockingParams()
		return sim.SetParameters(func(p *component.SimParams) {
			p.FlockingParams = fp
		})
	}
}

// Watcher reloads a config file on change
// The parent directory is watched so rename-on-save editors are seen
type Watcher struct {
	path     string
	apply    ApplyFunc
	logger   *zap.Logger
	debounce time.Duration
	watcher  *fsnotify.Watcher

	reloads  atomic.Int64
	failures atomic.Int64

	started  atomic.Bool
	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher creates a watcher for path, debounce <= 0 selects DefaultDebounce
func NewWatcher(path string, apply ApplyFunc, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		path:     filepath.Clean(abs),
		apply:    apply,
		logger:   logger.Named("config"),
		debounce: debounce,
		watcher:  fw,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching until ctx ends or Stop is called
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.logger.Info("watching config", zap.String("path", w.path))
	w.started.Store(true)

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	core.Go(func() {
		defer close(w.done)
		defer timer.Stop()
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if w.shouldProcessEvent(event) {
					w.logger.Debug("config change detected",
						zap.String("file", event.Name),
						zap.String("op", event.Op.String()))
					timer.Reset(w.debounce)
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("watcher error", zap.Error(err))

			case <-timer.C:
				w.Reload()

			case <-ctx.Done():
				w.watcher.Close()
				return
			}
		}
	})
	return nil
}

// Stop closes the watcher and waits for the loop to exit
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.watcher.Close()
	})
	if w.started.Load() {
		<-w.done
	}
	return err
}

// Reload reads the file now and applies it, failures keep the running configuration
func (w *Watcher) Reload() {
	cfg, err := Load(w.path)
	if err == nil {
		err = w.apply(cfg)
	}
	if err != nil {
		w.failures.Add(1)
		w.logger.Warn("config reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.reloads.Add(1)
	w.logger.Info("config reloaded", zap.String("path", w.path))
}

// Reloads returns the count of applied reloads
func (w *Watcher) Reloads() int64 { return w.reloads.Load() }

// Failures returns the count of rejected reloads
func (w *Watcher) Failures() int64 { return w.failures.Load() }

func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
