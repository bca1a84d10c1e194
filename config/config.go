package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-boids/audio"
	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/system"
)

// Config is the runtime configuration file
// Fields absent from the file keep their Default values
type Config struct {
	Mode    string `yaml:"mode"`
	Preset  string `yaml:"preset"`
	Palette string `yaml:"palette"`
	Seed    uint64 `yaml:"seed"`
	Workers int    `yaml:"workers"`

	Flocking FlockingOverrides `yaml:"flocking"`

	AgentCount        int     `yaml:"agent_count"`
	AgentSize         float32 `yaml:"agent_size"`
	ColorFadeDuration float32 `yaml:"color_fade_seconds"`

	Game       system.GameRules        `yaml:"game"`
	AI         system.AIRules          `yaml:"ai"`
	Population system.PopulationConfig `yaml:"population"`
	Camera     system.CameraTuning     `yaml:"camera"`
	Intervals  Intervals               `yaml:"intervals"`
	Audio      AudioSection            `yaml:"audio"`

	// Keys rebinds actions, key name to action name, e.g. "x": "quit"
	Keys map[string]string `yaml:"keys"`
}

// Intervals are the loop cadences
type Intervals struct {
	Frame    time.Duration `yaml:"frame"`
	Readback time.Duration `yaml:"readback"`
}

// FlockingOverrides patch individual fields of the selected preset
type FlockingOverrides struct {
	SeparationDistance *float32 `yaml:"separation_distance"`
	SeparationStrength *float32 `yaml:"separation_strength"`
	AlignmentDistance  *float32 `yaml:"alignment_distance"`
	AlignmentStrength  *float32 `yaml:"alignment_strength"`
	CohesionDistance   *float32 `yaml:"cohesion_distance"`
	CohesionStrength   *float32 `yaml:"cohesion_strength"`
}

// Apply returns base with every set override written over it
func (o FlockingOverrides) Apply(base component.FlockingParams) component.FlockingParams {
	set := func(dst *float32, v *float32) {
		if v != nil {
			*dst = *v
		}
	}
	set(&base.SeparationDistance, o.SeparationDistance)
	set(&base.SeparationStrength, o.SeparationStrength)
	set(&base.AlignmentDistance, o.AlignmentDistance)
	set(&base.AlignmentStrength, o.AlignmentStrength)
	set(&base.CohesionDistance, o.CohesionDistance)
	set(&base.CohesionStrength, o.CohesionStrength)
	return base
}

// AudioSection is the file form of audio.AudioConfig, volumes keyed by cue name
type AudioSection struct {
	Enabled      bool               `yaml:"enabled"`
	MasterVolume float64            `yaml:"master_volume"`
	SampleRate   int                `yaml:"sample_rate"`
	Volumes      map[string]float64 `yaml:"volumes"`
}

// Default returns the compiled-in configuration
func Default() *Config {
	ac := audio.DefaultAudioConfig()
	return &Config{
		Mode:              component.ModeSimulation.String(),
		Preset:            "default",
		Palette:           "plumTree",
		AgentCount:        parameter.DefaultAgentCount,
		AgentSize:         parameter.DefaultAgentSize,
		ColorFadeDuration: parameter.ColorFadeDuration,
		Game:              system.DefaultGameRules(),
		AI:                system.DefaultAIRules(),
		Population:        system.DefaultPopulation(),
		Camera:            system.DefaultCameraTuning(),
		Intervals: Intervals{
			Frame:    parameter.FrameUpdateInterval,
			Readback: parameter.ReadbackInterval,
		},
		Audio: AudioSection{
			Enabled:      ac.Enabled,
			MasterVolume: ac.MasterVolume,
			SampleRate:   ac.SampleRate,
		},
	}
}

// Load reads path over the defaults; an empty path returns the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.decode(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(r); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate rejects values the simulator or game rules cannot run with
func (c *Config) Validate() error {
	var errs []error
	if _, err := component.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := parameter.Preset(c.Preset); err != nil {
		errs = append(errs, err)
	}
	if c.AgentCount < parameter.MinAgentCount || c.AgentCount > parameter.MaxAgentCount {
		errs = append(errs, fmt.Errorf("agent_count %d outside [%d, %d]", c.AgentCount, parameter.MinAgentCount, parameter.MaxAgentCount))
	}
	if c.AgentSize <= 0 {
		errs = append(errs, fmt.Errorf("agent_size %g must be positive", c.AgentSize))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d is negative", c.Workers))
	}
	if c.Game.ConsumeRatio < 1 {
		errs = append(errs, fmt.Errorf("game.consume_ratio %g must be at least 1", c.Game.ConsumeRatio))
	}
	if c.Game.CaptureDistanceSq <= 0 {
		errs = append(errs, fmt.Errorf("game.capture_distance_sq %g must be positive", c.Game.CaptureDistanceSq))
	}
	if c.Game.ArenaSize <= 0 {
		errs = append(errs, fmt.Errorf("game.arena_size %g must be positive", c.Game.ArenaSize))
	}
	if c.Population.Players < 1 {
		errs = append(errs, fmt.Errorf("population.players %d must be at least 1", c.Population.Players))
	}
	if c.Population.Food < 0 || c.Population.RivalPacks < 0 || c.Population.RivalSize < 0 {
		errs = append(errs, errors.New("population counts must not be negative"))
	}
	if c.Intervals.Frame <= 0 || c.Intervals.Readback <= 0 {
		errs = append(errs, errors.New("intervals must be positive"))
	}
	return errors.Join(errs...)
}

// ModeValue returns the parsed mode, valid after Validate
func (c *Config) ModeValue() component.Mode {
	m, _ := component.ParseMode(c.Mode)
	return m
}

// FlockingParams resolves the preset and applies the overrides
// The game preset is the base in game mode when no preset was named
func (c *Config) FlockingParams() component.FlockingParams {
	name := c.Preset
	if (name == "" || name == "default") && c.ModeValue() == component.ModeGame {
		name = "game"
	}
	base, err := parameter.Preset(name)
	if err != nil {
		base = parameter.DefaultFlocking
	}
	return c.Flocking.Apply(base)
}

// SimParams builds the initial parameter block
func (c *Config) SimParams() component.SimParams {
	p := component.SimParams{
		FlockingParams:    c.FlockingParams(),
		AgentSize:         c.AgentSize,
		AgentCount:        c.AgentCount,
		ArenaSize:         c.Game.ArenaSize,
		ColorFadeDuration: c.ColorFadeDuration,
		CameraZoom:        c.Camera.InitialZoom,
		AspectRatio:       1,
	}
	return p
}

// AudioConfig builds the audio settings, environment variables take precedence
func (c *Config) AudioConfig() *audio.AudioConfig {
	ac := audio.DefaultAudioConfig()
	ac.Enabled = c.Audio.Enabled
	ac.MasterVolume = c.Audio.MasterVolume
	if c.Audio.SampleRate > 0 {
		ac.SampleRate = c.Audio.SampleRate
	}
	ac.SetEffectVolumes(c.Audio.Volumes)
	audio.ApplyEnv(ac)
	return ac
}
