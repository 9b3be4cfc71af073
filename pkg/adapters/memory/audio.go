package memory

import (
	"sync"
	"time"
)

// Audio is an in-memory audio port. It records every prompt it is asked to
// play and simulates playback duration with per-prompt holds, which makes
// interruption and listen-while-playing behavior scriptable in tests.
type Audio struct {
	mu          sync.Mutex
	plays       []string
	current     string
	playing     bool
	until       time.Time // zero means playing until Stop
	holds       map[string]time.Duration
	defaultHold time.Duration
	missing     map[string]struct{}
}

// AudioOption configures an Audio.
type AudioOption func(*Audio)

// WithHold makes promptID "play" for d before completing on its own.
// A negative d plays until Stop.
func WithHold(promptID string, d time.Duration) AudioOption {
	return func(a *Audio) {
		a.holds[promptID] = d
	}
}

// WithDefaultHold sets the playback duration for prompts without an explicit
// hold. The default is zero: prompts complete immediately.
func WithDefaultHold(d time.Duration) AudioOption {
	return func(a *Audio) {
		a.defaultHold = d
	}
}

// WithMissing marks prompt IDs as unresolvable; Play reports false for them.
func WithMissing(promptIDs ...string) AudioOption {
	return func(a *Audio) {
		for _, id := range promptIDs {
			a.missing[id] = struct{}{}
		}
	}
}

func NewAudio(opts ...AudioOption) *Audio {
	a := &Audio{
		holds:   make(map[string]time.Duration),
		missing: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Play starts promptID, replacing whatever was playing.
func (a *Audio) Play(promptID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, miss := a.missing[promptID]; miss {
		return false
	}
	a.plays = append(a.plays, promptID)
	hold, ok := a.holds[promptID]
	if !ok {
		hold = a.defaultHold
	}
	switch {
	case hold < 0:
		a.current = promptID
		a.playing = true
		a.until = time.Time{}
	case hold == 0:
		// Completes synchronously; recorded but never observed playing.
		a.current = ""
		a.playing = false
	default:
		a.current = promptID
		a.playing = true
		a.until = time.Now().Add(hold)
	}
	return true
}

func (a *Audio) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playing = false
	a.current = ""
}

func (a *Audio) IsPlaying() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.playing && !a.until.IsZero() && time.Now().After(a.until) {
		a.playing = false
		a.current = ""
	}
	return a.playing
}

// Plays returns a copy of every prompt successfully started, in order.
func (a *Audio) Plays() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.plays))
	copy(out, a.plays)
	return out
}

// Current returns the prompt now playing, or "".
func (a *Audio) Current() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}
