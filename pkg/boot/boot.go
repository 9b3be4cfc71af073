// Package boot assembles the boot menu, the tree a multi-system switchboard
// answers with: each registered phone system mounted under a digit, so the
// caller picks a system first and navigates inside it after.
package boot

import (
	"fmt"
	"strconv"

	"github.com/pkarlsen/switchboard/pkg/menu"
	"github.com/pkarlsen/switchboard/pkg/registry"
)

// DefaultPrompt announces the boot menu choices.
const DefaultPrompt = "prompts/boot"

// Option configures the boot tree.
type Option func(*builder)

// WithPrompt overrides the boot menu announcement.
func WithPrompt(promptID string) Option {
	return func(b *builder) {
		b.prompt = promptID
	}
}

// WithOnSelect registers a callback fired with the system ID the caller
// picked, before that system's own entry action runs.
func WithOnSelect(fn func(systemID string)) Option {
	return func(b *builder) {
		b.onSelect = fn
	}
}

type builder struct {
	prompt   string
	onSelect func(string)
}

// Tree builds the boot menu from every system in the registry, in ID order,
// mounted under keys "1" through "9". More than nine systems is an error;
// a kiosk that big wants its own menu layout, not the default bootloader.
func Tree(reg *registry.Registry, opts ...Option) (*menu.Node, error) {
	b := &builder{prompt: DefaultPrompt}
	for _, opt := range opts {
		opt(b)
	}

	infos := reg.List()
	if len(infos) > 9 {
		return nil, fmt.Errorf("boot menu holds at most 9 systems, registry has %d", len(infos))
	}

	children := make(map[string]*menu.Node, len(infos))
	for i, info := range infos {
		build, err := reg.Resolve(info.ID)
		if err != nil {
			return nil, err
		}
		root, err := build()
		if err != nil {
			return nil, fmt.Errorf("building system %s: %w", info.ID, err)
		}
		children[strconv.Itoa(i+1)] = b.mount(info.ID, root)
	}

	return menu.New(menu.Node{
		Prompt:   b.prompt,
		Children: children,
	})
}

// mount shallow-copies the system root so chaining the select callback onto
// its action never mutates the tree the registry handed out.
func (b *builder) mount(systemID string, root *menu.Node) *menu.Node {
	if b.onSelect == nil {
		return root
	}
	mounted := *root
	inner := mounted.Action
	mounted.Action = func() bool {
		b.onSelect(systemID)
		if inner != nil {
			return inner()
		}
		return true
	}
	return &mounted
}
