package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-boids/audio"
	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/system"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vi-boids.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, component.ModeSimulation, cfg.ModeValue())
	assert.Equal(t, parameter.DefaultFlocking, cfg.FlockingParams())
	assert.Equal(t, system.DefaultGameRules(), cfg.Game)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPartialOverrides(t *testing.T) {
	path := writeConfig(t, `
mode: game
preset: blobs
flocking:
  cohesion_strength: 0.5
game:
  consume_ratio: 2
  max_capacity: 400
population:
  rival_packs: 5
camera:
  enabled: false
intervals:
  readback: 50ms
audio:
  enabled: false
  volumes:
    victory: 0.3
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, component.ModeGame, cfg.ModeValue())

	fp := cfg.FlockingParams()
	blobs := parameter.Presets["blobs"]
	assert.Equal(t, float32(0.5), fp.CohesionStrength)
	assert.Equal(t, blobs.SeparationDistance, fp.SeparationDistance)
	assert.Equal(t, blobs.AlignmentStrength, fp.AlignmentStrength)

	assert.Equal(t, float32(2), cfg.Game.ConsumeRatio)
	assert.Equal(t, 400, cfg.Game.MaxCapacity)
	assert.Equal(t, system.DefaultGameRules().CaptureDistanceSq, cfg.Game.CaptureDistanceSq, "unset keys keep defaults")

	assert.Equal(t, 5, cfg.Population.RivalPacks)
	assert.Equal(t, system.DefaultPopulation().Food, cfg.Population.Food)
	assert.False(t, cfg.Camera.Enabled)
	assert.Equal(t, 50*time.Millisecond, cfg.Intervals.Readback)
	assert.Equal(t, parameter.FrameUpdateInterval, cfg.Intervals.Frame)

	t.Setenv(audio.EnvAudioEnabled, "")
	t.Setenv(audio.EnvSFXVolumes, "")
	ac := cfg.AudioConfig()
	assert.False(t, ac.Enabled)
	assert.Equal(t, 0.3, ac.EffectVolumes[audio.SoundVictory])
}

func TestGameModeDefaultsToGamePreset(t *testing.T) {
	cfg, err := Parse(strings.NewReader("mode: game\n"))
	require.NoError(t, err)
	assert.Equal(t, parameter.GameFlocking, cfg.FlockingParams())

	cfg, err = Parse(strings.NewReader("mode: game\npreset: nanites\n"))
	require.NoError(t, err)
	assert.Equal(t, parameter.Presets["nanites"], cfg.FlockingParams())
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("flocking:\n  wobble: 1\n"))
	require.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"mode", "mode: arcade\n", "unknown mode"},
		{"preset", "preset: swarm\n", "unknown preset"},
		{"count", "agent_count: -1\n", "agent_count"},
		{"count_low", "agent_count: 99\n", "agent_count"},
		{"count_high", "agent_count: 20001\n", "agent_count"},
		{"size", "agent_size: 0\n", "agent_size"},
		{"ratio", "game:\n  consume_ratio: 0.5\n", "consume_ratio"},
		{"players", "population:\n  players: 0\n", "players"},
		{"interval", "intervals:\n  frame: 0s\n", "intervals"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSimParams(t *testing.T) {
	cfg := Default()
	cfg.AgentCount = 500
	p := cfg.SimParams()

	assert.Equal(t, 500, p.AgentCount)
	assert.Equal(t, cfg.AgentSize, p.AgentSize)
	assert.Equal(t, cfg.Game.ArenaSize, p.ArenaSize)
	assert.Equal(t, cfg.Camera.InitialZoom, p.CameraZoom)
	assert.Equal(t, cfg.FlockingParams(), p.FlockingParams)
	assert.False(t, p.InputActive)
}
