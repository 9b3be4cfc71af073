package console

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// Audio simulates the phone speaker on a terminal. Each prompt prints a
// styled transcript line and "plays" for a fixed duration, so interruption
// and continuous dialing feel like the real phone.
type Audio struct {
	mu       sync.Mutex
	out      io.Writer
	profile  termenv.Profile
	duration time.Duration
	current  string
	until    time.Time
}

// AudioOption configures an Audio.
type AudioOption func(*Audio)

// WithOutput redirects the transcript (default stdout).
func WithOutput(w io.Writer) AudioOption {
	return func(a *Audio) {
		a.out = w
	}
}

// WithPromptDuration sets how long each simulated prompt plays (default 2s).
func WithPromptDuration(d time.Duration) AudioOption {
	return func(a *Audio) {
		a.duration = d
	}
}

// NewAudio creates a terminal speaker.
func NewAudio(opts ...AudioOption) *Audio {
	a := &Audio{
		out:      os.Stdout,
		profile:  termenv.ColorProfile(),
		duration: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Play starts a prompt, replacing whatever was playing.
func (a *Audio) Play(promptID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = promptID
	a.until = time.Now().Add(a.duration)
	line := termenv.String("  ♪ " + promptID).Foreground(a.profile.Color("#fbbf24"))
	fmt.Fprintf(a.out, "%s\r\n", line)
	return true
}

// Stop silences the speaker.
func (a *Audio) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current != "" && time.Now().Before(a.until) {
		line := termenv.String("  ■ stopped " + a.current).Faint()
		fmt.Fprintf(a.out, "%s\r\n", line)
	}
	a.current = ""
	a.until = time.Time{}
}

// IsPlaying reports whether the simulated prompt is still running.
func (a *Audio) IsPlaying() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current != "" && time.Now().Before(a.until)
}
