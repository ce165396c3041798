package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/lixenwraith/wallwalker/parameter"
)

// SoundManager plays locomotion cues through one speaker mixer
// Every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	breath      *beep.Ctrl
	initialized bool
	logger      *log.Logger

	// lock and unlock guard the mixer against the speaker goroutine
	lock        func()
	unlock      func()
	closeDevice func()
}

// NewSoundManager creates a detached sound manager; nil cfg uses the defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:         cfg,
		mixer:       &beep.Mixer{},
		logger:      log.New(io.Discard),
		lock:        speaker.Lock,
		unlock:      speaker.Unlock,
		closeDevice: speaker.Close,
	}
}

// SetLogger routes audio diagnostics to l
func (sm *SoundManager) SetLogger(l *log.Logger) {
	if l != nil {
		sm.logger = l
	}
}

// Initialize opens the speaker and starts the mixer
// A disabled config succeeds without touching the device
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return errors.Wrap(err, "speaker init")
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Info("audio started", "rate", sm.cfg.SampleRate)
	return nil
}

// Cleanup silences everything and detaches from the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.lock()
	sm.mixer.Clear()
	sm.unlock()
	sm.breath = nil
	sm.closeDevice()
	sm.initialized = false
}

// Enabled reports whether cues reach the speaker
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// PlayStep plays a footstep click; intensity in [0,1]
func (sm *SoundManager) PlayStep(intensity float64) {
	sm.add(func() beep.Streamer { return CreateStepSound(sm.cfg, intensity) })
}

// Play plays a one-shot cue
func (sm *SoundManager) Play(st SoundType) {
	sm.add(func() beep.Streamer { return GetSoundEffect(st, sm.cfg) })
}

func (sm *SoundManager) add(create func() beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := create()
	if s == nil {
		return
	}
	sm.lock()
	sm.mixer.Add(s)
	sm.unlock()
}

// SetBreathing starts or pauses the breathing hum
func (sm *SoundManager) SetBreathing(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.lock()
	defer sm.unlock()

	if sm.breath == nil {
		if !on {
			return
		}
		rate := beep.SampleRate(sm.cfg.SampleRate)
		period := time.Duration(parameter.BreathePeriod * float64(time.Second))
		hum := newVolume(NewBreathStreamer(period, rate), sm.cfg.BreathVolume*sm.cfg.MasterVolume)
		sm.breath = &beep.Ctrl{Streamer: hum}
		sm.mixer.Add(sm.breath)
		return
	}
	sm.breath.Paused = !on
}

// Breathing reports whether the hum is audible
func (sm *SoundManager) Breathing() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.breath != nil && !sm.breath.Paused
}

// Active returns the number of streamers in the mixer
func (sm *SoundManager) Active() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.lock()
	defer sm.unlock()
	return sm.mixer.Len()
}
