// Package switchboard is a menu navigation engine for payphone-style
// installations: a tree of audio prompts navigated with a 12-key keypad, one
// call at a time. This package is the library facade; it wires a tree
// source, an audio port and an input source into a running phone.
package switchboard

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pkarlsen/switchboard/internal/logging"
	"github.com/pkarlsen/switchboard/internal/metrics"
	"github.com/pkarlsen/switchboard/pkg/call"
	"github.com/pkarlsen/switchboard/pkg/menu"
	"github.com/pkarlsen/switchboard/pkg/navigator"
	"github.com/pkarlsen/switchboard/pkg/ports"
)

// Version is the released switchboard version.
const Version = "1.0.0"

// System is one wired phone: a tree source, the audio and keypad ports, and
// the call session driving them.
type System struct {
	session *call.Session
	build   call.TreeFunc
	logger  *slog.Logger
	metrics *metrics.Metrics

	sessOpts []call.SessionOption
	hooks    navigator.Hooks
}

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger for the session and navigator.
func WithLogger(logger *slog.Logger) Option {
	return func(s *System) {
		s.logger = logger
	}
}

// WithStore persists call records under the given system name.
func WithStore(store call.Store, system string) Option {
	return func(s *System) {
		s.sessOpts = append(s.sessOpts, call.WithStore(store, system))
	}
}

// WithMetrics registers Prometheus collectors with reg and feeds them from
// the phone's lifecycle and navigation events.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *System) {
		s.metrics = metrics.New(reg)
	}
}

// WithHooks registers navigation callbacks.
func WithHooks(hooks navigator.Hooks) Option {
	return func(s *System) {
		s.hooks = hooks
	}
}

// WithSessionOptions forwards options to the underlying call session.
func WithSessionOptions(opts ...call.SessionOption) Option {
	return func(s *System) {
		s.sessOpts = append(s.sessOpts, opts...)
	}
}

// New wires a phone system. build runs once per call; audio and input are
// the phone's hardware (or console, or in-memory) ports.
func New(build call.TreeFunc, audio ports.AudioPort, input ports.InputSource, opts ...Option) *System {
	s := &System{
		build:  build,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	hooks := s.hooks
	if s.metrics != nil {
		hooks = s.metrics.Hooks().Merge(hooks)
	}
	sessOpts := append([]call.SessionOption{
		call.WithLogger(s.logger),
		call.WithHooks(hooks),
	}, s.sessOpts...)

	s.session = call.NewSession(audio, input, build, sessOpts...)
	return s
}

// OffHook answers the phone and starts navigation.
func (s *System) OffHook(ctx context.Context) error {
	if err := s.session.OffHook(ctx); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.CallStarted()
	}
	return nil
}

// OnHook hangs up and persists the call record.
func (s *System) OnHook(ctx context.Context) error {
	wasActive := s.session.Active()
	err := s.session.OnHook(ctx)
	if s.metrics != nil && wasActive {
		if rec, ok := s.session.Snapshot(); ok {
			s.metrics.CallEnded(rec)
		}
	}
	return err
}

// Active reports whether a call is in progress.
func (s *System) Active() bool { return s.session.Active() }

// Snapshot returns the current (or last) call record.
func (s *System) Snapshot() (call.Record, bool) { return s.session.Snapshot() }

// Session exposes the underlying call session, e.g. for the admin server.
func (s *System) Session() *call.Session { return s.session }

// Tree builds the system's current menu tree.
func (s *System) Tree() (*menu.Node, error) { return s.build() }
