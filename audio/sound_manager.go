package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/deskrush/component"
)

// SoundManager plays game cues through the speaker
// Every method is safe before Initialize and after Cleanup; calls are then dropped
type SoundManager struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	loops       map[component.SoundCue]*beep.Ctrl
	initialized bool

	played  int
	dropped int
}

// NewSoundManager creates a sound manager; cfg nil uses defaults
func NewSoundManager(cfg *Config) *SoundManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		loops: make(map[component.SoundCue]*beep.Ctrl),
	}
}

// Initialize opens the speaker; a disabled config leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops every sound
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	for cue, ctrl := range sm.loops {
		ctrl.Paused = true
		delete(sm.loops, cue)
	}
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker close; an empty mixer keeps the device quiet
	sm.initialized = false
}

// PlaySound starts a cue; a looping cue already playing is not restarted
func (sm *SoundManager) PlaySound(cue component.SoundCue, loop bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		sm.dropped++
		return
	}
	if !HasVoice(cue) {
		log.Printf("audio: no voice for cue %q, using default", cue)
	}

	var s beep.Streamer
	if loop {
		if ctrl, ok := sm.loops[cue]; ok && !ctrl.Paused {
			return
		}
		cfg := sm.cfg
		// Music is endless already; one-shots are rebuilt back to back
		if cue == component.CueLevelMusic {
			s = Voice(cue, cfg)
		} else {
			s = beep.Iterate(func() beep.Streamer { return Voice(cue, cfg) })
		}
		ctrl := &beep.Ctrl{Streamer: s}
		sm.loops[cue] = ctrl
		s = ctrl
	} else {
		s = Voice(cue, sm.cfg)
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played++
}

// StopSound silences a looping cue; one-shots run to completion
func (sm *SoundManager) StopSound(cue component.SoundCue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ctrl, ok := sm.loops[cue]
	if !ok {
		return
	}
	delete(sm.loops, cue)
	if sm.initialized {
		speaker.Lock()
		ctrl.Paused = true
		speaker.Unlock()
		return
	}
	ctrl.Paused = true
}

// Looping reports whether a cue is currently looping
func (sm *SoundManager) Looping(cue component.SoundCue) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	ctrl, ok := sm.loops[cue]
	return ok && !ctrl.Paused
}

// Stats returns how many cues were played and how many were dropped while uninitialized
func (sm *SoundManager) Stats() (played, dropped int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played, sm.dropped
}
