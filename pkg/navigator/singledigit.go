package navigator

import (
	"time"

	"github.com/pkarlsen/switchboard/pkg/menu"
)

// waitSingleDigit is the classic one-press menu loop: the first key decides.
// Any key stops playback immediately, whether it maps to an option or not.
// Invalid keys and replays reset the inactivity clock; nothing at all for
// node.Timeout falls back through the timeout prompt to the main menu.
func (nv *Navigator) waitSingleDigit(node, mainMenu *menu.Node) {
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

		wasPlaying := nv.audio.IsPlaying()
		if wasPlaying {
			nv.audio.Stop()
			nv.logger.Debug("prompt interrupted by key press", "key", string(key))
		}
		if child, found := node.Children[string(key)]; found {
			nv.walk(child, mainMenu, false)
			return
		}
		nv.invalidSelection(node, key, wasPlaying)
		start = time.Now()
	}
}
