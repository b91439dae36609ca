// Package audio synthesises the game's sound cues with beep. Every method is
// safe to call before Initialize, after Cleanup, or when no audio device is
// present; in those cases it does nothing.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// DefaultVolume is the linear output level a new manager starts at.
const DefaultVolume = 0.3

// Cue identifies one of the game's sounds.
type Cue int

const (
	CueMove Cue = iota
	CueFood
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueMove:
		return "move"
	case CueFood:
		return "food"
	case CueGameOver:
		return "game_over"
	}
	return fmt.Sprintf("Cue(%d)", int(c))
}

// NewCue builds a fresh streamer for c. Streamers are single use.
func NewCue(c Cue, rate beep.SampleRate) (beep.Streamer, error) {
	switch c {
	case CueMove:
		return tone("G4", "32n", WaveSquare, rate)
	case CueFood:
		return tone("C5", "16n", WaveSine, rate)
	case CueGameOver:
		return phrase([]string{"C4", "G3", "E3", "C3"}, "8n", WaveTriangle, rate)
	}
	return nil, fmt.Errorf("unknown cue %d", int(c))
}

// SoundManager plays cues through the speaker.
type SoundManager struct {
	mu          sync.Mutex
	initialized bool
	muted       bool
	volume      float64
	play        func(beep.Streamer)
	stop        func()
	played      map[Cue]int
}

// NewSoundManager creates an uninitialised manager.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		volume: DefaultVolume,
		play:   func(s beep.Streamer) { speaker.Play(s) },
		stop:   speaker.Clear,
		played: make(map[Cue]int),
	}
}

// Initialize opens the audio device. Calling it again is a no-op. A failure
// leaves the manager silent but usable.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	sm.initialized = true
	return nil
}

// Cleanup stops everything that is playing. The speaker itself stays open;
// beep offers no way to close it.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.stop()
	sm.initialized = false
}

// SetMuted silences or restores all cues. Muting also cuts anything still
// sounding.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	if muted && sm.initialized {
		sm.stop()
	}
}

// Muted reports whether cues are silenced.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// SetVolume sets the linear output level, clamped to [0,1]. Cues already
// playing keep their level.
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = max(0, min(1, v))
}

// PlayMove plays the short turn blip.
func (sm *SoundManager) PlayMove() { sm.Play(CueMove) }

// PlayFoodCollect plays the pickup chime.
func (sm *SoundManager) PlayFoodCollect() { sm.Play(CueFood) }

// PlayGameOver plays the falling four-note phrase.
func (sm *SoundManager) PlayGameOver() { sm.Play(CueGameOver) }

// Play sounds c unless the manager is muted or not initialised.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s, err := NewCue(c, sampleRate)
	if err != nil {
		return
	}
	sm.played[c]++
	sm.play(newVolume(s, sm.volume))
}

// Played returns how many times c has been sent to the speaker.
func (sm *SoundManager) Played(c Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[c]
}
