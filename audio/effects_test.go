package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-boids/parameter"
)

// drain streams s to exhaustion, failing if it exceeds limit samples
func drain(t *testing.T, s beep.Streamer, limit int) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, abs(buf[i][0]), abs(buf[i][1]))
		}
		total += n
		require.LessOrEqual(t, total, limit, "streamer did not terminate")
		if !ok {
			return total, peak
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// TestOscillatorSine verifies sine wave generation
func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440.0, 100*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	require.True(t, ok)
	require.Equal(t, 100, n)
	for i := 0; i < n; i++ {
		assert.InDelta(t, 0, samples[i][0], 1.0)
		assert.Equal(t, samples[i][0], samples[i][1])
	}
	assert.NoError(t, osc.Err())
}

// TestOscillatorSquare verifies square wave levels
func TestOscillatorSquare(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(220.0, 50*time.Millisecond, WaveSquare, rate)

	samples := make([][2]float64, 50)
	n, _ := osc.Stream(samples)
	for i := 0; i < n; i++ {
		v := samples[i][0]
		assert.True(t, v == 1.0 || v == -1.0, "sample %d = %f", i, v)
	}
}

// TestOscillatorDuration verifies the oscillator stops at its duration
func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440.0, 10*time.Millisecond, WaveSaw, rate)

	total, _ := drain(t, osc, rate.N(time.Second))
	assert.Equal(t, rate.N(10*time.Millisecond), total)

	n, ok := osc.Stream(make([][2]float64, 16))
	assert.Zero(t, n)
	assert.False(t, ok)
}

// TestGlideAdvancesPhaseFaster verifies a rising glide crosses zero more often than a flat tone
func TestGlideAdvancesPhaseFaster(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 50 * time.Millisecond

	crossings := func(s beep.Streamer) int {
		buf := make([][2]float64, rate.N(d))
		n, _ := s.Stream(buf)
		c := 0
		for i := 1; i < n; i++ {
			if (buf[i-1][0] < 0) != (buf[i][0] < 0) {
				c++
			}
		}
		return c
	}

	flat := crossings(NewOscillator(200, d, WaveSine, rate))
	rising := crossings(NewGlide(200, 800, d, WaveSine, rate))
	assert.Greater(t, rising, flat)
}

// TestEnvelopeShape verifies silence at the start and decay at the end
func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 100)
	n, _ := env.Stream(buf)
	require.Equal(t, 100, n)

	assert.Equal(t, 0.0, buf[0][0])
	assert.Equal(t, 1.0, buf[50][0])
	assert.Less(t, buf[99][0], 0.2)
}

// TestVolumeSilent verifies zero volume produces silence
func TestVolumeSilent(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := newVolume(NewOscillator(440, 10*time.Millisecond, WaveSquare, rate), 0)
	_, peak := drain(t, s, rate.N(time.Second))
	assert.Zero(t, peak)
}

// TestSoundEffectsTerminate verifies every cue is finite and audible
func TestSoundEffectsTerminate(t *testing.T) {
	cfg := DefaultAudioConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	expected := map[SoundType]time.Duration{
		SoundCapture: parameter.CaptureSoundDuration,
		SoundConsume: parameter.ConsumeSoundNote1Duration + parameter.ConsumeSoundNote2Duration,
		SoundLoss:    parameter.LossSoundDuration,
		SoundVictory: 3*parameter.VictorySoundNoteDuration + parameter.VictorySoundFinalNote,
		SoundDefeat:  parameter.DefeatSoundDuration,
	}

	for st, d := range expected {
		t.Run(st.String(), func(t *testing.T) {
			s := GetSoundEffect(st, cfg)
			require.NotNil(t, s)

			total, peak := drain(t, s, rate.N(d)+rate.N(10*time.Millisecond))
			assert.Greater(t, total, rate.N(d)/2)
			assert.Greater(t, peak, 0.0)
			assert.LessOrEqual(t, peak, 1.0)
		})
	}
}

// TestGetSoundEffectUnknown verifies unknown cues return nil
func TestGetSoundEffectUnknown(t *testing.T) {
	assert.Nil(t, GetSoundEffect(soundTypeCount, DefaultAudioConfig()))
	assert.Nil(t, GetSoundEffect(-1, DefaultAudioConfig()))
}
