package menu

import (
	"fmt"
	"strings"
)

// validate enforces the addressing invariants for a node with children.
// Defaults must already be applied.
func validate(n *Node) error {
	switch n.Mode {
	case ModeHybrid:
		return validateHybrid(n)
	default:
		return validateUniform(n)
	}
}

// validateUniform covers single-digit and extension menus: every key must
// have the same length, match ExtensionLength when one is declared, and stay
// clear of the terminator.
func validateUniform(n *Node) error {
	want := -1
	for key := range n.Children {
		if err := checkTerminator(n, key); err != nil {
			return err
		}
		if n.ExtensionLength > 0 && len(key) != n.ExtensionLength {
			return &ConfigError{
				Kind:   ErrLengthMismatch,
				Key:    key,
				Reason: fmt.Sprintf("all option keys must be %d digits long", n.ExtensionLength),
			}
		}
		if want == -1 {
			want = len(key)
			continue
		}
		if len(key) != want {
			return &ConfigError{
				Kind:   ErrMixedKeyLength,
				Key:    key,
				Reason: "cannot mix single-digit and multi-digit option keys",
			}
		}
	}
	return nil
}

// validateHybrid allows mixed key lengths (single digits are dialed directly,
// extensions only behind the prefix) but reserves the prefix and return keys
// and applies ExtensionLength to multi-digit keys only.
func validateHybrid(n *Node) error {
	prefix := string(n.ExtensionPrefix)
	ret := string(n.ReturnKey)

	for key := range n.Children {
		if key == prefix {
			return &ConfigError{
				Kind:   ErrPrefixCollision,
				Key:    key,
				Reason: fmt.Sprintf("extension prefix %q cannot be a menu option", prefix),
			}
		}
		if key == ret {
			return &ConfigError{
				Kind:   ErrReturnKeyCollision,
				Key:    key,
				Reason: fmt.Sprintf("return key %q cannot be a menu option", ret),
			}
		}
		if err := checkTerminator(n, key); err != nil {
			return err
		}
		if n.ExtensionLength > 0 && len(key) > 1 && len(key) != n.ExtensionLength {
			return &ConfigError{
				Kind:   ErrLengthMismatch,
				Key:    key,
				Reason: fmt.Sprintf("all extensions must be %d digits long", n.ExtensionLength),
			}
		}
	}
	return nil
}

func checkTerminator(n *Node, key string) error {
	if strings.ContainsRune(key, n.ExtensionTerminator) {
		return &ConfigError{
			Kind:   ErrTerminatorCollision,
			Key:    key,
			Reason: fmt.Sprintf("extension terminator %q cannot appear in option keys", n.ExtensionTerminator),
		}
	}
	return nil
}
