package audio

import (
	"encoding/json"
	"os"
	"strconv"
)

// Environment overrides, applied on top of file configuration
const (
	EnvAudioEnabled = "VI_BOIDS_AUDIO_ENABLED"
	EnvMasterVolume = "VI_BOIDS_MASTER_VOLUME"
	EnvSFXVolumes   = "VI_BOIDS_SFX_VOLUMES"
	EnvSampleRate   = "VI_BOIDS_SAMPLE_RATE"
)

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()
	ApplyEnv(cfg)
	return cfg
}

// ApplyEnv overlays environment variables onto cfg, malformed values are ignored
func ApplyEnv(cfg *AudioConfig) {
	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// 0-100 converted to 0.0-1.0
	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	// JSON object keyed by cue name
	if effectVols := os.Getenv(EnvSFXVolumes); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			cfg.SetEffectVolumes(volumes)
		}
	}

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}
}
