// Package console adapts a developer's terminal into a payphone: stdin
// becomes the keypad, stdout becomes the speaker. It exists so whole phone
// systems can be exercised without kiosk hardware.
package console

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/pkarlsen/switchboard/internal/logging"
	"github.com/pkarlsen/switchboard/pkg/adapters/memory"
)

// Keypad reads single keystrokes from a terminal in raw mode and feeds the
// call's input queue. Keys 0-9, * and # are phone keys; 'h' toggles the
// hook and 'q' (or Ctrl-C) quits.
type Keypad struct {
	queue  *memory.Input
	tty    *os.File
	logger *slog.Logger
	onHook func()
	onQuit func()
}

// KeypadOption configures a Keypad.
type KeypadOption func(*Keypad)

// WithOnHook sets the callback for the hook toggle key.
func WithOnHook(fn func()) KeypadOption {
	return func(k *Keypad) {
		k.onHook = fn
	}
}

// WithOnQuit sets the callback for the quit key, fired before Run returns.
func WithOnQuit(fn func()) KeypadOption {
	return func(k *Keypad) {
		k.onQuit = fn
	}
}

// WithKeypadLogger sets the keypad logger.
func WithKeypadLogger(logger *slog.Logger) KeypadOption {
	return func(k *Keypad) {
		k.logger = logger
	}
}

// NewKeypad wires a keypad on stdin feeding queue.
func NewKeypad(queue *memory.Input, opts ...KeypadOption) *Keypad {
	k := &Keypad{
		queue:  queue,
		tty:    os.Stdin,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Run blocks reading keystrokes until the quit key, read failure, or ctx
// cancellation (checked between keystrokes; a canceled ctx takes effect on
// the next key).
func (k *Keypad) Run(ctx context.Context) error {
	fd := int(k.tty.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("entering raw mode: %w", err)
		}
		defer term.Restore(fd, oldState)
	}

	buf := make([]byte, 1)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		n, err := k.tty.Read(buf)
		if err != nil {
			return fmt.Errorf("reading keypad: %w", err)
		}
		if n == 0 {
			continue
		}

		switch key := buf[0]; {
		case key >= '0' && key <= '9', key == '*', key == '#':
			k.logger.Debug("key press", "key", string(key))
			k.queue.Put(rune(key))
		case key == 'h', key == 'H':
			if k.onHook != nil {
				k.onHook()
			}
		case key == 'q', key == 'Q', key == 3: // Ctrl-C in raw mode
			if k.onQuit != nil {
				k.onQuit()
			}
			return nil
		}
	}
}
