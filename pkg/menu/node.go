package menu

import (
	"time"
)

// Mode selects how a node interprets keypad input while waiting for a choice.
type Mode string

const (
	// ModeSingleDigit matches each keypress directly against the option keys.
	ModeSingleDigit Mode = "single"
	// ModeExtension collects a multi-digit buffer (fixed length or
	// terminator-ended) and matches the whole buffer against the option keys.
	ModeExtension Mode = "extension"
	// ModeHybrid serves single-digit options directly and multi-digit
	// extensions behind a prefix key.
	ModeHybrid Mode = "hybrid"
)

// Defaults applied by New when the corresponding field is zero.
const (
	DefaultTimeout          = 30 * time.Second
	DefaultExtensionTimeout = 3 * time.Second
	DefaultTerminator       = '#'
	DefaultPrefix           = '*'
	DefaultReturnKey        = '0'
)

// Action is an optional side-effect attached to a node. It runs after the
// node's prompt finishes playing. Returning false aborts the current path and
// sends the caller back to the main menu.
type Action func() bool

// Node is one menu in the phone tree. A node is built once per call, read-only
// afterwards, and never holds a pointer back to its parent: the main-menu
// reference is threaded through navigation calls instead.
type Node struct {
	// Prompt is the audio identifier played on entry. Empty means silent
	// (e.g. a pure action dispatcher).
	Prompt string

	// Children maps option keys to submenus. Key length rules depend on Mode
	// and are enforced by New.
	Children map[string]*Node

	// Action, if set, runs after the prompt completes. See Action.
	Action Action

	// Timeout is the overall inactivity budget while waiting at this node.
	Timeout time.Duration

	// Mode selects the waiting algorithm. Zero value is ModeSingleDigit.
	Mode Mode

	// ExtensionLength, when non-zero, fixes the extension digit count;
	// collection auto-submits on the keystroke that reaches it.
	ExtensionLength int

	// ExtensionTerminator ends variable-length collection. It is stripped
	// before the buffer is matched.
	ExtensionTerminator rune

	// ExtensionTimeout auto-submits a non-empty partial buffer after this
	// much inactivity.
	ExtensionTimeout time.Duration

	// ExtensionPrefix activates extension collection on a hybrid node.
	ExtensionPrefix rune

	// ReturnKey sends the caller back to the main menu on a hybrid node.
	ReturnKey rune

	// NoContinuousDialing disables dialing the next extension while a leaf
	// prompt is still playing. The zero value keeps continuous dialing on,
	// which is the default for hybrid menus.
	NoContinuousDialing bool
}

// New applies defaults to n, validates it, and returns the finished node.
// Validation runs only when the node has children; a childless node is a leaf
// and carries no addressing rules. Violations return a *ConfigError and the
// node must not be used.
func New(n Node) (*Node, error) {
	if n.Mode == "" {
		n.Mode = ModeSingleDigit
	}
	if n.Timeout == 0 {
		n.Timeout = DefaultTimeout
	}
	if n.ExtensionTerminator == 0 {
		n.ExtensionTerminator = DefaultTerminator
	}
	if n.ExtensionTimeout == 0 {
		n.ExtensionTimeout = DefaultExtensionTimeout
	}
	if n.ExtensionPrefix == 0 {
		n.ExtensionPrefix = DefaultPrefix
	}
	if n.ReturnKey == 0 {
		n.ReturnKey = DefaultReturnKey
	}

	if len(n.Children) > 0 {
		if err := validate(&n); err != nil {
			return nil, err
		}
	}

	return &n, nil
}

// IsLeaf reports whether the node has no options to wait for.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}
