package navigator

import (
	"log/slog"
	"time"

	"github.com/pkarlsen/switchboard/internal/logging"
	"github.com/pkarlsen/switchboard/pkg/menu"
	"github.com/pkarlsen/switchboard/pkg/ports"
)

// Reserved prompt identifiers used by the navigator's own error and timeout
// handling. They are resolved by the AudioPort like any other prompt; a
// deployment that lacks one simply skips it.
const (
	PromptTimeout          = "prompts/timeout"
	PromptInvalidOption    = "prompts/invalid_option"
	PromptInvalidExtension = "prompts/invalid_extension"
	PromptDialTone         = "prompts/dial_tone"
)

// Hooks defines callbacks for navigation observability. All fields are
// optional. Hooks run on the call's worker goroutine and must return quickly.
type Hooks struct {
	OnNodeEnter        func(node *menu.Node)
	OnPromptStart      func(promptID string)
	OnInvalidSelection func(key rune, suppressed bool)
	OnInvalidExtension func(extension string)
	OnMenuTimeout      func(node *menu.Node)
}

// Navigator walks a menu tree for one call. It owns the phone's audio output
// for the call's duration and is the only consumer of the input source.
//
// Every wait (for input, for prompt completion, for extension inactivity) is
// a short bounded poll, so the hook-alive predicate is re-checked at least
// once per tick. That poll is the cancellation mechanism: there is no
// separate cancel signal.
type Navigator struct {
	audio  ports.AudioPort
	input  ports.InputSource
	alive  func() bool
	logger *slog.Logger
	hooks  Hooks

	tick       time.Duration
	leafPause  time.Duration
	errorPause time.Duration
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets a structured logger for navigation events.
func WithLogger(logger *slog.Logger) Option {
	return func(nv *Navigator) {
		nv.logger = logger
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks Hooks) Option {
	return func(nv *Navigator) {
		nv.hooks = hooks
	}
}

// WithTick sets the poll interval for all bounded waits (default 100ms).
// Target environments with an interrupt-driven input source can lower it.
func WithTick(d time.Duration) Option {
	return func(nv *Navigator) {
		nv.tick = d
	}
}

// WithLeafPause sets the breather between a leaf prompt finishing and the
// return to the main menu (default 2s).
func WithLeafPause(d time.Duration) Option {
	return func(nv *Navigator) {
		nv.leafPause = d
	}
}

// WithErrorPause sets the pause after an audible invalid-option prompt
// (default 500ms).
func WithErrorPause(d time.Duration) Option {
	return func(nv *Navigator) {
		nv.errorPause = d
	}
}

// New creates a Navigator for one call. alive is the hook-switch liveness
// predicate; when it turns false the walk unwinds promptly with no further
// prompts. A nil alive means the call never ends on its own.
func New(audio ports.AudioPort, input ports.InputSource, alive func() bool, opts ...Option) *Navigator {
	if alive == nil {
		alive = func() bool { return true }
	}
	nv := &Navigator{
		audio:      audio,
		input:      input,
		alive:      alive,
		logger:     logging.NewNop(),
		tick:       100 * time.Millisecond,
		leafPause:  2 * time.Second,
		errorPause: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(nv)
	}
	return nv
}

// Walk runs the navigation state machine starting at root. mainMenu is the
// node every timeout, abort and leaf return falls back to; for a whole call
// it is normally the root itself. Walk returns when the caller hangs up or
// navigation has nowhere left to go. Runtime navigation errors never escape:
// they are recovered in place by replaying a prompt.
func (nv *Navigator) Walk(root, mainMenu *menu.Node) {
	nv.walk(root, mainMenu, false)
}

// walk visits one node. viaExtension marks that the node was reached by
// dialing an extension, which is what arms continuous dialing at leaves.
func (nv *Navigator) walk(node, mainMenu *menu.Node, viaExtension bool) {
	if !nv.alive() {
		nv.logger.Info("caller hung up")
		return
	}
	if nv.hooks.OnNodeEnter != nil {
		nv.hooks.OnNodeEnter(node)
	}

	if node.Prompt != "" {
		// Non-blocking so a key press can interrupt it.
		nv.play(node.Prompt)
	}

	if node.Action != nil {
		// Actions run only after the caller heard the whole prompt.
		nv.waitForAudio()
		if !nv.alive() {
			return
		}
		if !node.Action() {
			nv.logger.Debug("action aborted path, returning to main menu", "prompt", node.Prompt)
			if mainMenu != nil {
				nv.walk(mainMenu, mainMenu, false)
			}
			return
		}
	}

	if node.IsLeaf() {
		nv.finishLeaf(node, mainMenu, viaExtension)
		return
	}

	switch node.Mode {
	case menu.ModeExtension:
		nv.waitExtension(node, mainMenu)
	case menu.ModeHybrid:
		nv.waitHybrid(node, mainMenu)
	default:
		nv.waitSingleDigit(node, mainMenu)
	}
}

// finishLeaf plays out a leaf node and falls back to the main menu. Hybrid
// leaves reached via an extension keep listening for the next extension
// while their prompt plays (continuous dialing).
func (nv *Navigator) finishLeaf(node, mainMenu *menu.Node, viaExtension bool) {
	if viaExtension && mainMenu != nil && mainMenu.Mode == menu.ModeHybrid && !mainMenu.NoContinuousDialing {
		if next := nv.listenWhilePlaying(node, mainMenu); next != nil {
			nv.walk(next, mainMenu, true)
			return
		}
	} else {
		nv.waitForAudio()
	}

	if mainMenu == nil || !nv.alive() {
		return
	}
	nv.pause(nv.leafPause)
	nv.walk(mainMenu, mainMenu, false)
}

// menuTimeout handles overall inactivity at a node: stop whatever is playing,
// announce the timeout, and fall back to the main menu.
func (nv *Navigator) menuTimeout(node, mainMenu *menu.Node) {
	nv.logger.Info("menu timeout", "prompt", node.Prompt, "timeout", node.Timeout)
	if nv.hooks.OnMenuTimeout != nil {
		nv.hooks.OnMenuTimeout(node)
	}
	nv.audio.Stop()
	nv.playBlocking(PromptTimeout)
	if mainMenu != nil {
		nv.walk(mainMenu, mainMenu, false)
	}
}

// invalidSelection recovers from an unmapped single-digit key. The error is
// audible only when the menu prompt had already finished; a key that
// interrupted playback is an impatient dialer, not someone who heard the
// options and got them wrong, so the scolding is suppressed. Either way the
// queue is drained before the replay so a burst of presses cannot cascade.
func (nv *Navigator) invalidSelection(node *menu.Node, key rune, wasPlaying bool) {
	if nv.hooks.OnInvalidSelection != nil {
		nv.hooks.OnInvalidSelection(key, wasPlaying)
	}
	if wasPlaying {
		nv.logger.Info("invalid option during playback, suppressing error prompt", "key", string(key))
	} else {
		nv.logger.Info("invalid option", "key", string(key))
		nv.playBlocking(PromptInvalidOption)
		nv.pause(nv.errorPause)
	}
	nv.drain()
	nv.play(node.Prompt)
}

// invalidExtension recovers from a submitted buffer that matches nothing.
// Unlike single-digit errors this is always audible: the caller deliberately
// dialed a full extension and deserves to know it went nowhere.
func (nv *Navigator) invalidExtension(node *menu.Node, ext string) {
	if nv.hooks.OnInvalidExtension != nil {
		nv.hooks.OnInvalidExtension(ext)
	}
	nv.logger.Info("invalid extension", "extension", ext)
	nv.playBlocking(PromptInvalidExtension)
	nv.drain()
	nv.play(node.Prompt)
}

// play starts a prompt without blocking. An unresolvable prompt is a logged
// no-op, never a navigation error.
func (nv *Navigator) play(promptID string) {
	if promptID == "" {
		return
	}
	if nv.hooks.OnPromptStart != nil {
		nv.hooks.OnPromptStart(promptID)
	}
	if !nv.audio.Play(promptID) {
		nv.logger.Warn("prompt unavailable, continuing", "prompt", promptID)
	}
}

// playBlocking starts a prompt and waits for it to finish (or hangup).
func (nv *Navigator) playBlocking(promptID string) {
	nv.play(promptID)
	nv.waitForAudio()
}

// waitForAudio polls until playback ends or the caller hangs up.
func (nv *Navigator) waitForAudio() {
	for nv.audio.IsPlaying() && nv.alive() {
		time.Sleep(nv.tick)
	}
}

// pause sleeps for d, waking every tick to re-check the hook.
func (nv *Navigator) pause(d time.Duration) {
	deadline := time.Now().Add(d)
	for nv.alive() && time.Now().Before(deadline) {
		time.Sleep(nv.tick)
	}
}

func (nv *Navigator) drain() {
	if n := nv.input.Drain(); n > 0 {
		nv.logger.Debug("cleared queued key presses", "count", n)
	}
}
