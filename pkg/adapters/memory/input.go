package memory

import (
	"sync"
	"time"
)

// Input is a thread-safe in-memory key press queue. Producers (a hardware
// keypad scanner, a console reader, a test) call Put from any goroutine; the
// navigator consumes with Get. The zero value is not usable, call NewInput.
type Input struct {
	mu   sync.Mutex
	keys []rune
	wake chan struct{}
}

func NewInput() *Input {
	return &Input{wake: make(chan struct{}, 1)}
}

// Put appends one key press.
func (in *Input) Put(key rune) {
	in.mu.Lock()
	in.keys = append(in.keys, key)
	in.mu.Unlock()
	select {
	case in.wake <- struct{}{}:
	default:
	}
}

// PutString queues each rune of s in order.
func (in *Input) PutString(s string) {
	for _, r := range s {
		in.Put(r)
	}
}

// Get pops the oldest key press, waiting up to timeout for one to arrive.
func (in *Input) Get(timeout time.Duration) (rune, bool) {
	deadline := time.Now().Add(timeout)
	for {
		in.mu.Lock()
		if len(in.keys) > 0 {
			key := in.keys[0]
			in.keys = in.keys[1:]
			in.mu.Unlock()
			return key, true
		}
		in.mu.Unlock()

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, false
		}
		select {
		case <-in.wake:
		case <-time.After(remaining):
		}
	}
}

// Drain discards everything queued and reports how many keys were dropped.
func (in *Input) Drain() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	n := len(in.keys)
	in.keys = in.keys[:0]
	return n
}

// Len reports the number of queued key presses.
func (in *Input) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.keys)
}
