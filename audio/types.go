package audio

import (
	"errors"

	"github.com/lixenwraith/vi-boids/parameter"
)

// SoundType represents different sound cues
type SoundType int

const (
	SoundCapture SoundType = iota // Player flock captured food
	SoundConsume                  // Player flock absorbed a rival member
	SoundLoss                     // Player flock lost a member
	SoundVictory                  // Last rival flock eliminated
	SoundDefeat                   // Player flock eliminated
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"capture", "consume", "loss", "victory", "defeat"}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// ParseSoundType maps a cue name to its type
func ParseSoundType(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return 0, false
}

// AudioConfig holds sound settings
type AudioConfig struct {
	Enabled       bool                  `yaml:"enabled"`
	MasterVolume  float64               `yaml:"master_volume"`
	EffectVolumes map[SoundType]float64 `yaml:"-"`
	SampleRate    int                   `yaml:"sample_rate"`
}

// DefaultAudioConfig returns the default settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: map[SoundType]float64{
			SoundCapture: 0.6,
			SoundConsume: 0.8,
			SoundLoss:    0.7,
			SoundVictory: 1.0,
			SoundDefeat:  1.0,
		},
		SampleRate: parameter.AudioSampleRate,
	}
}

// SetEffectVolumes applies named per-cue volumes, unknown names are returned
func (c *AudioConfig) SetEffectVolumes(volumes map[string]float64) []string {
	if c.EffectVolumes == nil {
		c.EffectVolumes = make(map[SoundType]float64, soundTypeCount)
	}
	var unknown []string
	for name, v := range volumes {
		st, ok := ParseSoundType(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		c.EffectVolumes[st] = clampVolume(v)
	}
	return unknown
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ErrAudioDisabled is returned by Initialize when the config disables sound
var ErrAudioDisabled = errors.New("audio disabled")
