package navigator

import (
	"time"

	"github.com/pkarlsen/switchboard/pkg/menu"
)

type pushResult int

const (
	pushIgnored pushResult = iota
	pushAccepted
	pushComplete
)

// collector accumulates one extension buffer. It is shared by the three
// places extensions get dialed: extension menus, hybrid menus after the
// prefix, and continuous dialing at hybrid leaves.
type collector struct {
	buf        []rune
	length     int
	terminator rune
	idle       time.Duration
	allowHash  bool
	started    time.Time
	last       time.Time
}

// newCollector builds a collector from a menu's extension settings.
// allowHash widens the alphabet to include '#' as an ordinary digit when it
// is not the terminator, which hybrid menus permit.
func newCollector(length int, terminator rune, idle time.Duration, allowHash bool) *collector {
	now := time.Now()
	return &collector{
		length:     length,
		terminator: terminator,
		idle:       idle,
		allowHash:  allowHash,
		started:    now,
		last:       now,
	}
}

// push feeds one key. pushComplete means the buffer is ready to submit; the
// terminator, when it is what completed it, is never part of the extension.
func (c *collector) push(key rune) pushResult {
	if key == c.terminator {
		return pushComplete
	}
	if !c.accepts(key) {
		return pushIgnored
	}
	c.buf = append(c.buf, key)
	c.last = time.Now()
	if c.length > 0 && len(c.buf) >= c.length {
		return pushComplete
	}
	return pushAccepted
}

func (c *collector) accepts(key rune) bool {
	if key >= '0' && key <= '9' {
		return true
	}
	if key == '*' && key != c.terminator {
		return true
	}
	return c.allowHash && key == '#'
}

// expiredIdle reports the inactivity auto-submit condition. It never fires
// on an empty buffer.
func (c *collector) expiredIdle(now time.Time) bool {
	return len(c.buf) > 0 && now.Sub(c.last) > c.idle
}

func (c *collector) extension() string { return string(c.buf) }

func (c *collector) empty() bool { return len(c.buf) == 0 }

// waitExtension runs a menu whose options are all multi-digit. The first key
// press stops any playing prompt and opens a collection window; the window
// closes on the terminator, on reaching the configured length, or after
// ExtensionTimeout of silence with digits buffered.
func (nv *Navigator) waitExtension(node, mainMenu *menu.Node) {
	start := time.Now()
	for nv.alive() {
		if time.Since(start) > node.Timeout {
			nv.menuTimeout(node, mainMenu)
			return
		}
		key, ok := nv.input.Get(nv.tick)
		if !ok {
			continue
		}

		if nv.audio.IsPlaying() {
			nv.audio.Stop()
		}
		ext, submitted := nv.collectExtension(node, key)
		if !submitted {
			return // hung up mid-dial
		}
		if ext == "" {
			// Terminator with nothing buffered: replay, no error.
			nv.play(node.Prompt)
			start = time.Now()
			continue
		}
		if child, found := node.Children[ext]; found {
			nv.walk(child, mainMenu, true)
			return
		}
		nv.invalidExtension(node, ext)
		start = time.Now()
	}
}

// collectExtension gathers a full extension starting from the key that
// opened the window. The returned extension may be empty; submitted is false
// only when the caller hung up. A window that stays empty past the node's
// overall timeout closes as an empty submission rather than stalling.
func (nv *Navigator) collectExtension(node *menu.Node, first rune) (ext string, submitted bool) {
	c := newCollector(node.ExtensionLength, node.ExtensionTerminator, node.ExtensionTimeout, false)
	switch c.push(first) {
	case pushComplete:
		return c.extension(), true
	case pushIgnored:
		nv.logger.Debug("ignoring key outside extension alphabet", "key", string(first))
	}

	for nv.alive() {
		key, ok := nv.input.Get(nv.tick)
		if !ok {
			now := time.Now()
			if c.expiredIdle(now) {
				nv.logger.Debug("extension auto-submitted after inactivity", "extension", c.extension())
				return c.extension(), true
			}
			if c.empty() && now.Sub(c.started) > node.Timeout {
				return "", true
			}
			continue
		}
		switch c.push(key) {
		case pushComplete:
			return c.extension(), true
		case pushIgnored:
			nv.logger.Debug("ignoring key outside extension alphabet", "key", string(key))
		}
	}
	return "", false
}
