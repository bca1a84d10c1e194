package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap between consecutive plays of the same cue
	MinSoundGap = 80 * time.Millisecond

	// AudioMaxVoices caps concurrently mixed cues
	AudioMaxVoices = 8
)

// Capture Sound
const (
	CaptureSoundDuration = 120 * time.Millisecond
	CaptureSoundAttack   = 5 * time.Millisecond
	CaptureSoundRelease  = 90 * time.Millisecond
)

// Consume Sound
const (
	ConsumeSoundNote1Duration = 70 * time.Millisecond
	ConsumeSoundNote2Duration = 160 * time.Millisecond
	ConsumeSoundAttack        = 5 * time.Millisecond
	ConsumeSoundNote1Release  = 30 * time.Millisecond
	ConsumeSoundNote2Release  = 120 * time.Millisecond
)

// Loss Sound
const (
	LossSoundDuration = 90 * time.Millisecond
	LossSoundAttack   = 5 * time.Millisecond
	LossSoundRelease  = 40 * time.Millisecond
)

// Victory Sound
const (
	VictorySoundNoteDuration = 140 * time.Millisecond
	VictorySoundFinalNote    = 500 * time.Millisecond
	VictorySoundAttack       = 5 * time.Millisecond
	VictorySoundRelease      = 60 * time.Millisecond
	VictorySoundFinalRelease = 400 * time.Millisecond
)

// Defeat Sound
const (
	DefeatSoundDuration = 700 * time.Millisecond
	DefeatSoundAttack   = 20 * time.Millisecond
	DefeatSoundRelease  = 500 * time.Millisecond
)
