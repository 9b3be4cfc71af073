package dsl

import (
	"fmt"
	"time"

	"github.com/pkarlsen/switchboard/pkg/menu"
)

// MenuBuilder accumulates one node's settings and children. All methods
// return the builder for chaining; nothing is validated until Build.
type MenuBuilder struct {
	node     menu.Node
	children map[string]*MenuBuilder
}

// NewMenu starts a menu node with the given prompt.
func NewMenu(prompt string) *MenuBuilder {
	return &MenuBuilder{
		node:     menu.Node{Prompt: prompt},
		children: make(map[string]*MenuBuilder),
	}
}

// Leaf starts a terminal node. It is the same builder type; the name just
// reads better at call sites.
func Leaf(prompt string) *MenuBuilder {
	return NewMenu(prompt)
}

// SingleDigit sets the addressing mode to one key per option (the default).
func (b *MenuBuilder) SingleDigit() *MenuBuilder {
	b.node.Mode = menu.ModeSingleDigit
	return b
}

// Extension sets multi-digit addressing for every option.
func (b *MenuBuilder) Extension() *MenuBuilder {
	b.node.Mode = menu.ModeExtension
	return b
}

// Hybrid mixes single-digit options with prefix-dialed extensions.
func (b *MenuBuilder) Hybrid() *MenuBuilder {
	b.node.Mode = menu.ModeHybrid
	return b
}

// Timeout sets the overall inactivity timeout for this menu.
func (b *MenuBuilder) Timeout(d time.Duration) *MenuBuilder {
	b.node.Timeout = d
	return b
}

// ExtensionLength fixes the extension size so dialing auto-submits at n
// digits.
func (b *MenuBuilder) ExtensionLength(n int) *MenuBuilder {
	b.node.ExtensionLength = n
	return b
}

// Terminator sets the submit key for extension dialing.
func (b *MenuBuilder) Terminator(r rune) *MenuBuilder {
	b.node.ExtensionTerminator = r
	return b
}

// ExtensionTimeout sets the inter-digit inactivity auto-submit window.
func (b *MenuBuilder) ExtensionTimeout(d time.Duration) *MenuBuilder {
	b.node.ExtensionTimeout = d
	return b
}

// Prefix sets the key that arms extension dialing in a hybrid menu.
func (b *MenuBuilder) Prefix(r rune) *MenuBuilder {
	b.node.ExtensionPrefix = r
	return b
}

// ReturnKey sets the key that jumps back to the main menu in a hybrid menu.
func (b *MenuBuilder) ReturnKey(r rune) *MenuBuilder {
	b.node.ReturnKey = r
	return b
}

// ContinuousDialing toggles listen-while-playing at this menu's leaves
// (on by default for hybrid menus).
func (b *MenuBuilder) ContinuousDialing(enabled bool) *MenuBuilder {
	b.node.NoContinuousDialing = !enabled
	return b
}

// Do attaches the action that runs after this node's prompt finishes.
func (b *MenuBuilder) Do(action menu.Action) *MenuBuilder {
	b.node.Action = action
	return b
}

// Option mounts a child under a key. Re-using a key overwrites the previous
// child.
func (b *MenuBuilder) Option(key string, child *MenuBuilder) *MenuBuilder {
	b.children[key] = child
	return b
}

// Build compiles the subtree bottom-up, validating each node as it goes.
func (b *MenuBuilder) Build() (*menu.Node, error) {
	cfg := b.node
	if len(b.children) > 0 {
		cfg.Children = make(map[string]*menu.Node, len(b.children))
		for key, child := range b.children {
			built, err := child.Build()
			if err != nil {
				return nil, err
			}
			cfg.Children[key] = built
		}
	}
	node, err := menu.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("menu %q: %w", b.node.Prompt, err)
	}
	return node, nil
}

// MustBuild is Build for static trees defined at init time, where a layout
// error is a programming bug.
func (b *MenuBuilder) MustBuild() *menu.Node {
	node, err := b.Build()
	if err != nil {
		panic(err)
	}
	return node
}
