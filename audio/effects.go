package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/vi-boids/parameter"
)

// WaveType selects the oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// waveforms map a phase in [0, 1) to a sample in [-1, 1]
var waveforms = [...]func(phase float64) float64{
	WaveSine: func(p float64) float64 { return math.Sin(2 * math.Pi * p) },
	WaveSquare: func(p float64) float64 {
		if p < 0.5 {
			return 1
		}
		return -1
	},
	WaveSaw:   func(p float64) float64 { return 2*p - 1 },
	WaveNoise: func(float64) float64 { return rand.Float64()*2 - 1 },
}

// NewOscillator creates a fixed-pitch tone of the given length
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewGlide(freq, freq, duration, wave, rate)
}

// NewGlide creates a tone whose pitch moves linearly from freq to endFreq
func NewGlide(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	shape := waveforms[WaveSine]
	if wave >= 0 && int(wave) < len(waveforms) {
		shape = waveforms[wave]
	}
	total := rate.N(duration)
	slope := (endFreq - freq) / float64(max(total, 1))

	var phase float64
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			if pos >= total {
				return i, i > 0
			}
			v := shape(phase)
			samples[i] = [2]float64{v, v}

			phase += (freq + slope*float64(pos)) / float64(rate)
			phase -= math.Floor(phase)
			pos++
		}
		return len(samples), true
	})
}

// shaped scales a stream by a per-sample gain curve and cuts it after limit samples
type shaped struct {
	beep.Streamer
	pos   int
	limit int
	curve func(pos int) float64
}

func (s *shaped) Stream(samples [][2]float64) (int, bool) {
	left := s.limit - s.pos
	if left <= 0 {
		return 0, false
	}
	n, ok := s.Streamer.Stream(samples[:min(len(samples), left)])
	for i := range samples[:n] {
		g := s.curve(s.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		s.pos++
	}
	return n, ok
}

// NewEnvelope ramps s up over attack and down over the final release, cut at duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total, att, rel := rate.N(duration), rate.N(attack), rate.N(release)
	return &shaped{
		Streamer: s,
		limit:    total,
		curve: func(pos int) float64 {
			switch {
			case rel > 0 && pos >= total-rel:
				return float64(total-pos) / float64(rel)
			case att > 0 && pos < att:
				return float64(pos) / float64(att)
			}
			return 1
		},
	}
}

// math.Log2(0) is -Inf, zero volume maps to a silent stream
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func (c *AudioConfig) gain(st SoundType) float64 {
	return c.EffectVolumes[st] * c.MasterVolume
}

func tone(freq float64, d, attack, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// CreateCaptureSound generates a short rising blip
func CreateCaptureSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.CaptureSoundDuration

	// A5 gliding to E6
	osc := NewGlide(880.0, 1318.51, d, WaveSine, rate)
	env := NewEnvelope(osc, d, parameter.CaptureSoundAttack, parameter.CaptureSoundRelease, rate)

	return newVolume(env, cfg.gain(SoundCapture))
}

// CreateConsumeSound generates a two-note chime with an octave overtone on the second note
func CreateConsumeSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// E5 then B5
	n1 := tone(659.25, parameter.ConsumeSoundNote1Duration, parameter.ConsumeSoundAttack, parameter.ConsumeSoundNote1Release, WaveSquare, rate)
	n2 := beep.Mix(
		newVolume(tone(987.77, parameter.ConsumeSoundNote2Duration, parameter.ConsumeSoundAttack, parameter.ConsumeSoundNote2Release, WaveSquare, rate), 0.7),
		newVolume(tone(1975.53, parameter.ConsumeSoundNote2Duration, parameter.ConsumeSoundAttack, parameter.ConsumeSoundNote2Release/2, WaveSine, rate), 0.3),
	)
	// Mix never ends on its own
	n2 = beep.Take(rate.N(parameter.ConsumeSoundNote2Duration), n2)

	return newVolume(beep.Seq(n1, n2), cfg.gain(SoundConsume))
}

// CreateLossSound generates a low harsh buzz
func CreateLossSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	env := tone(110.0, parameter.LossSoundDuration, parameter.LossSoundAttack, parameter.LossSoundRelease, WaveSaw, rate)
	return newVolume(env, cfg.gain(SoundLoss))
}

// CreateVictorySound generates a rising major arpeggio
func CreateVictorySound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// C5 E5 G5 C6
	freqs := []float64{523.25, 659.25, 783.99}
	notes := make([]beep.Streamer, 0, len(freqs)+1)
	for _, f := range freqs {
		notes = append(notes, tone(f, parameter.VictorySoundNoteDuration, parameter.VictorySoundAttack, parameter.VictorySoundRelease, WaveSquare, rate))
	}
	notes = append(notes, tone(1046.5, parameter.VictorySoundFinalNote, parameter.VictorySoundAttack, parameter.VictorySoundFinalRelease, WaveSquare, rate))

	return newVolume(beep.Seq(notes...), cfg.gain(SoundVictory))
}

// CreateDefeatSound generates a falling tone over a noise bed
func CreateDefeatSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.DefeatSoundDuration

	fall := NewEnvelope(NewGlide(440.0, 110.0, d, WaveSaw, rate), d, parameter.DefeatSoundAttack, parameter.DefeatSoundRelease, rate)
	noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, parameter.DefeatSoundAttack, parameter.DefeatSoundRelease, rate)
	mixed := beep.Take(rate.N(d), beep.Mix(
		newVolume(fall, 0.8),
		newVolume(noise, 0.2),
	))

	return newVolume(mixed, cfg.gain(SoundDefeat))
}

// GetSoundEffect returns the streamer for the given cue, nil when unknown
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundCapture:
		return CreateCaptureSound(cfg)
	case SoundConsume:
		return CreateConsumeSound(cfg)
	case SoundLoss:
		return CreateLossSound(cfg)
	case SoundVictory:
		return CreateVictorySound(cfg)
	case SoundDefeat:
		return CreateDefeatSound(cfg)
	default:
		return nil
	}
}
