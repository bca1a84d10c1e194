package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/engine"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/status"
	"github.com/lixenwraith/vi-boids/system"
)

// SoundManager plays game cues through a single speaker mixer
// All methods are safe to call when audio is unavailable
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool

	lastPlayed [soundTypeCount]time.Time
	now        func() time.Time

	logger    *zap.Logger
	statPlays *atomic.Int64
	statDrops *atomic.Int64
}

// NewSoundManager creates a sound manager, nil cfg loads defaults with environment overrides
func NewSoundManager(cfg *AudioConfig, logger *zap.Logger, reg *status.Registry) *SoundManager {
	if cfg == nil {
		cfg = LoadAudioConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &SoundManager{
		cfg:       cfg,
		mixer:     &beep.Mixer{},
		now:       time.Now,
		logger:    logger.Named("audio"),
		statPlays: reg.Ints.Get("audio.plays"),
		statDrops: reg.Ints.Get("audio.drops"),
	}
}

// Initialize opens the speaker, a failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrAudioDisabled
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		sm.logger.Warn("audio unavailable", zap.Error(err))
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Info("audio initialized", zap.Int("sample_rate", sm.cfg.SampleRate))
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()

	// beep has no speaker close; a cleared mixer leaves no artifacts
	sm.initialized = false
}

// SetMuted silences new cues without releasing the device
func (sm *SoundManager) SetMuted(muted bool) { sm.muted.Store(muted) }

// ToggleMute flips the mute flag and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsMuted reports the mute flag
func (sm *SoundManager) IsMuted() bool { return sm.muted.Load() }

// Play queues a cue, repeats within MinSoundGap and cues beyond the voice cap are dropped
func (sm *SoundManager) Play(st SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted.Load() || st < 0 || st >= soundTypeCount {
		return false
	}

	now := sm.now()
	if now.Sub(sm.lastPlayed[st]) < parameter.MinSoundGap {
		sm.statDrops.Add(1)
		return false
	}

	streamer := GetSoundEffect(st, sm.cfg)
	if streamer == nil {
		return false
	}

	speaker.Lock()
	full := sm.mixer.Len() >= parameter.AudioMaxVoices
	if !full {
		sm.mixer.Add(streamer)
	}
	speaker.Unlock()

	if full {
		sm.statDrops.Add(1)
		return false
	}
	sm.lastPlayed[st] = now
	sm.statPlays.Add(1)
	return true
}

// OnReport plays the cues a game pass produced
func (sm *SoundManager) OnReport(_ *engine.GameSession, report *system.Report) {
	for _, st := range CuesFor(report) {
		sm.Play(st)
	}
}

// CuesFor maps a game pass to the cues heard by the player, outcome cues first
func CuesFor(report *system.Report) []SoundType {
	if report == nil {
		return nil
	}

	var cues []SoundType
	if report.NewOutcome {
		switch report.Outcome {
		case engine.OutcomeVictory:
			cues = append(cues, SoundVictory)
		case engine.OutcomeDefeat:
			cues = append(cues, SoundDefeat)
		}
	}

	for _, ev := range report.Captures {
		if ev.To == component.PackPlayer {
			cues = append(cues, SoundCapture)
			break
		}
	}

	var gained, lost bool
	for _, ev := range report.Consumptions {
		gained = gained || ev.To == component.PackPlayer
		lost = lost || ev.From == component.PackPlayer
	}
	if gained {
		cues = append(cues, SoundConsume)
	}
	if lost {
		cues = append(cues, SoundLoss)
	}
	return cues
}

var _ system.Listener = (*SoundManager)(nil)
