package ports

import "time"

// InputSource is the stream of keypad events for one phone. Producers (a
// hardware scanner, a keyboard emulator, a test script) enqueue single
// characters from the keypad alphabet (0-9, *, #); the navigator is the only
// consumer. Implementations must be safe for one producer and one consumer
// running concurrently and must not drop or reorder keys.
type InputSource interface {
	// Get waits up to timeout for the next key. ok is false when the timeout
	// elapses with no input.
	Get(timeout time.Duration) (key rune, ok bool)

	// Drain discards everything currently queued and returns how many keys
	// were thrown away. Used to stop a burst of stale presses from cascading
	// into repeated invalid-option errors.
	Drain() int
}
