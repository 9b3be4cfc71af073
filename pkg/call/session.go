package call

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pkarlsen/switchboard/internal/logging"
	"github.com/pkarlsen/switchboard/pkg/menu"
	"github.com/pkarlsen/switchboard/pkg/navigator"
	"github.com/pkarlsen/switchboard/pkg/ports"
)

// ErrOffHook is returned when OffHook is called while a call is in progress.
var ErrOffHook = errors.New("handset already off hook")

// TreeFunc builds a fresh menu tree for a call. It runs once per OffHook so
// systems can rebuild dynamic content (schedules, announcements) per call.
type TreeFunc func() (*menu.Node, error)

// Session drives the lifecycle of the handset: OffHook starts a call and its
// worker goroutine, OnHook tears it down. One Session serves one phone for
// its whole uptime; calls run strictly one at a time.
type Session struct {
	audio ports.AudioPort
	input ports.InputSource
	build TreeFunc

	logger  *slog.Logger
	store   Store
	system  string
	hooks   navigator.Hooks
	navOpts []navigator.Option

	dialTone    time.Duration
	joinTimeout time.Duration
	tick        time.Duration

	offHook atomic.Bool

	mu         sync.Mutex
	workerDone chan struct{}
	record     *Record
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithStore enables call record persistence. system names the phone system
// in saved records.
func WithStore(store Store, system string) SessionOption {
	return func(s *Session) {
		s.store = store
		s.system = system
	}
}

// WithHooks registers navigation callbacks, composed with the session's own
// prompt-trail recording.
func WithHooks(hooks navigator.Hooks) SessionOption {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithNavigatorOptions forwards options to the per-call navigator.
func WithNavigatorOptions(opts ...navigator.Option) SessionOption {
	return func(s *Session) {
		s.navOpts = opts
	}
}

// WithDialTone sets how long the dial tone plays before the first prompt
// (default 1s, zero disables it).
func WithDialTone(d time.Duration) SessionOption {
	return func(s *Session) {
		s.dialTone = d
	}
}

// WithJoinTimeout bounds how long hook transitions wait for the previous
// call's worker to unwind (default 2s).
func WithJoinTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.joinTimeout = d
	}
}

// NewSession wires a session to the phone's audio and keypad and the tree
// builder for its phone system.
func NewSession(audio ports.AudioPort, input ports.InputSource, build TreeFunc, opts ...SessionOption) *Session {
	s := &Session{
		audio:       audio,
		input:       input,
		build:       build,
		logger:      logging.NewNop(),
		dialTone:    time.Second,
		joinTimeout: 2 * time.Second,
		tick:        100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Active reports whether a call is in progress.
func (s *Session) Active() bool { return s.offHook.Load() }

// OffHook starts a call: it joins any straggling worker from the previous
// call, builds a fresh tree, and launches the navigation goroutine. The dial
// tone and all navigation happen on the worker, so OffHook returns without
// waiting for audio.
func (s *Session) OffHook(ctx context.Context) error {
	if s.offHook.Load() {
		return ErrOffHook
	}
	s.joinPrevious()

	root, err := s.build()
	if err != nil {
		return fmt.Errorf("building menu tree: %w", err)
	}

	rec := &Record{
		ID:        uuid.NewString(),
		System:    s.system,
		StartedAt: time.Now(),
	}
	done := make(chan struct{})

	s.mu.Lock()
	s.record = rec
	s.workerDone = done
	s.mu.Unlock()
	s.offHook.Store(true)

	nv := navigator.New(s.audio, s.input, s.offHook.Load,
		append([]navigator.Option{
			navigator.WithLogger(s.logger),
			navigator.WithTick(s.tick),
			navigator.WithHooks(s.recordingHooks()),
		}, s.navOpts...)...)

	s.logger.Info("call started", "call_id", rec.ID, "system", s.system)
	go func() {
		defer close(done)
		s.playDialTone()
		nv.Walk(root, root)
	}()
	return nil
}

// OnHook ends the call: silence the speaker, flush the keypad queue, wait
// (bounded) for the worker to notice the hook, and persist the record.
func (s *Session) OnHook(ctx context.Context) error {
	if !s.offHook.Swap(false) {
		return nil
	}
	s.audio.Stop()
	s.joinPrevious()
	// The worker may have started one last prompt while unwinding.
	s.audio.Stop()
	if dropped := s.input.Drain(); dropped > 0 {
		s.logger.Debug("discarded keys queued at hangup", "count", dropped)
	}

	s.mu.Lock()
	rec := s.record
	var snapshot Record
	if rec != nil {
		rec.EndedAt = time.Now()
		snapshot = *rec
	}
	s.mu.Unlock()
	if rec == nil {
		return nil
	}

	s.logger.Info("call ended", "call_id", snapshot.ID, "duration", snapshot.Duration())
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("saving call record: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current (or last) call's record.
func (s *Session) Snapshot() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return Record{}, false
	}
	rec := *s.record
	rec.Prompts = append([]string(nil), s.record.Prompts...)
	return rec, true
}

// recordingHooks wraps the user hooks so every prompt lands in the record.
func (s *Session) recordingHooks() navigator.Hooks {
	hooks := s.hooks
	user := hooks.OnPromptStart
	hooks.OnPromptStart = func(promptID string) {
		s.mu.Lock()
		if s.record != nil {
			s.record.Prompts = append(s.record.Prompts, promptID)
		}
		s.mu.Unlock()
		if user != nil {
			user(promptID)
		}
	}
	return hooks
}

func (s *Session) playDialTone() {
	if s.dialTone <= 0 {
		return
	}
	if !s.audio.Play(navigator.PromptDialTone) {
		return
	}
	deadline := time.Now().Add(s.dialTone)
	for s.offHook.Load() && time.Now().Before(deadline) {
		time.Sleep(s.tick)
	}
	s.audio.Stop()
}

// joinPrevious waits for the last worker goroutine to return, bounded by the
// join timeout. A worker blocked past the bound is logged and abandoned; it
// still exits on its next poll tick.
func (s *Session) joinPrevious() {
	s.mu.Lock()
	done := s.workerDone
	s.mu.Unlock()
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-time.After(s.joinTimeout):
		s.logger.Warn("previous call worker still unwinding", "timeout", s.joinTimeout)
	}
}
