package menu

import "fmt"

// ErrorKind classifies a tree construction failure.
type ErrorKind string

const (
	// ErrMixedKeyLength: single-digit and extension menus require uniform key lengths.
	ErrMixedKeyLength ErrorKind = "mixed_key_length"
	// ErrLengthMismatch: a key does not match the declared ExtensionLength.
	ErrLengthMismatch ErrorKind = "length_mismatch"
	// ErrTerminatorCollision: the extension terminator appears inside a key.
	ErrTerminatorCollision ErrorKind = "terminator_collision"
	// ErrPrefixCollision: the hybrid extension prefix is itself an option key.
	ErrPrefixCollision ErrorKind = "prefix_collision"
	// ErrReturnKeyCollision: the hybrid return key is itself an option key.
	ErrReturnKeyCollision ErrorKind = "return_key_collision"
)

// ConfigError reports an addressing-consistency violation found while
// building a node. It is always fatal to that construction call; it is never
// deferred to navigation time.
type ConfigError struct {
	Kind   ErrorKind
	Key    string // offending option key, when one exists
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("menu config: %s", e.Reason)
	}
	return fmt.Sprintf("menu config: key %q: %s", e.Key, e.Reason)
}
