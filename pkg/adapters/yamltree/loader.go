// Package yamltree loads menu trees from YAML files. Prompts, addressing
// modes and timings live in the file; actions are referenced by name and
// bound to Go functions at load time. The loader can also watch the file so
// a kiosk picks up edits without a restart.
package yamltree

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/pkarlsen/switchboard/internal/logging"
	"github.com/pkarlsen/switchboard/pkg/menu"
)

// nodeSpec is the YAML shape of one node. Keys under options may be written
// unquoted; weak typing turns numeric keys back into strings.
type nodeSpec struct {
	Prompt              string              `mapstructure:"prompt"`
	Mode                string              `mapstructure:"mode"`
	Timeout             time.Duration       `mapstructure:"timeout"`
	ExtensionLength     int                 `mapstructure:"extension_length"`
	ExtensionTerminator string              `mapstructure:"extension_terminator"`
	ExtensionTimeout    time.Duration       `mapstructure:"extension_timeout"`
	ExtensionPrefix     string              `mapstructure:"extension_prefix"`
	ReturnKey           string              `mapstructure:"return_key"`
	ContinuousDialing   *bool               `mapstructure:"continuous_dialing"`
	Action              string              `mapstructure:"action"`
	Options             map[string]nodeSpec `mapstructure:"options"`
}

// Loader reads one tree file.
type Loader struct {
	path    string
	actions map[string]menu.Action
	logger  *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithActions binds action names used in the file to functions.
func WithActions(actions map[string]menu.Action) Option {
	return func(l *Loader) {
		l.actions = actions
	}
}

// WithLogger sets the logger used by Watch.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a loader for the tree file at path.
func New(path string, opts ...Option) *Loader {
	l := &Loader{
		path:   path,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses and validates the file into a menu tree.
func (l *Loader) Load() (*menu.Node, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("reading tree file: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.path, err)
	}

	var spec nodeSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", l.path, err)
	}

	return l.toNode(spec)
}

func (l *Loader) toNode(spec nodeSpec) (*menu.Node, error) {
	cfg := menu.Node{
		Prompt:              spec.Prompt,
		Timeout:             spec.Timeout,
		ExtensionLength:     spec.ExtensionLength,
		ExtensionTimeout:    spec.ExtensionTimeout,
		ExtensionTerminator: firstRune(spec.ExtensionTerminator),
		ExtensionPrefix:     firstRune(spec.ExtensionPrefix),
		ReturnKey:           firstRune(spec.ReturnKey),
	}

	switch spec.Mode {
	case "", string(menu.ModeSingleDigit):
		cfg.Mode = menu.ModeSingleDigit
	case string(menu.ModeExtension):
		cfg.Mode = menu.ModeExtension
	case string(menu.ModeHybrid):
		cfg.Mode = menu.ModeHybrid
	default:
		return nil, fmt.Errorf("node %q: unknown mode %q", spec.Prompt, spec.Mode)
	}

	if spec.ContinuousDialing != nil {
		cfg.NoContinuousDialing = !*spec.ContinuousDialing
	}
	if spec.Action != "" {
		fn, ok := l.actions[spec.Action]
		if !ok {
			return nil, fmt.Errorf("node %q: unbound action %q", spec.Prompt, spec.Action)
		}
		cfg.Action = fn
	}

	if len(spec.Options) > 0 {
		cfg.Children = make(map[string]*menu.Node, len(spec.Options))
		for key, childSpec := range spec.Options {
			child, err := l.toNode(childSpec)
			if err != nil {
				return nil, err
			}
			cfg.Children[key] = child
		}
	}

	node, err := menu.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", spec.Prompt, err)
	}
	return node, nil
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// Watch emits a signal whenever the tree file is rewritten. The watcher runs
// until ctx is canceled. Editors that replace the file (rename-over) are
// covered by watching the directory rather than the file itself.
func (l *Loader) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(l.path), err)
	}

	ch := make(chan struct{}, 1)
	base := filepath.Base(l.path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				l.logger.Info("tree file changed", "path", l.path, "op", ev.Op.String())
				select {
				case ch <- struct{}{}:
				default: // a notification is already pending
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				l.logger.Warn("tree watcher error", "err", err)
			}
		}
	}()
	return ch, nil
}
