package navigator

import (
	"time"

	"github.com/pkarlsen/switchboard/pkg/menu"
)

// waitHybrid runs a menu that mixes single-digit shortcuts with
// prefix-dialed extensions. Outside extension mode keys behave exactly like
// a single-digit menu, except two reserved keys: the extension prefix opens
// a collection buffer, and the return key jumps back to the main menu.
// Inside extension mode the collection rules match waitExtension, plus the
// return key on an empty buffer cancels a stray prefix press.
func (nv *Navigator) waitHybrid(node, mainMenu *menu.Node) {
	var ext *collector // non-nil while dialing an extension
	start := time.Now()
	for nv.alive() {
		if time.Since(start) > node.Timeout {
			nv.menuTimeout(node, mainMenu)
			return
		}
		key, ok := nv.input.Get(nv.tick)
		if !ok {
			if ext != nil && ext.expiredIdle(time.Now()) {
				nv.logger.Debug("extension auto-submitted after inactivity", "extension", ext.extension())
				if nv.submitHybrid(node, mainMenu, ext.extension()) {
					return
				}
				ext = nil
				start = time.Now()
			}
			continue
		}

		switch {
		case ext != nil:
			if key == node.ReturnKey && ext.empty() {
				// Prefix pressed by mistake: cancel and return to the
				// main menu.
				nv.audio.Stop()
				nv.walk(mainMenu, mainMenu, false)
				return
			}
			switch ext.push(key) {
			case pushComplete:
				if nv.submitHybrid(node, mainMenu, ext.extension()) {
					return
				}
				ext = nil
				start = time.Now()
			case pushIgnored:
				nv.logger.Debug("rejecting key outside extension alphabet", "key", string(key))
			}

		case key == node.ReturnKey:
			nv.audio.Stop()
			nv.walk(mainMenu, mainMenu, false)
			return

		case key == node.ExtensionPrefix:
			if nv.audio.IsPlaying() {
				nv.audio.Stop()
			}
			nv.logger.Debug("extension mode armed", "prefix", string(key))
			ext = newCollector(node.ExtensionLength, node.ExtensionTerminator, node.ExtensionTimeout, true)

		default:
			wasPlaying := nv.audio.IsPlaying()
			if wasPlaying {
				nv.audio.Stop()
			}
			if child, found := node.Children[string(key)]; found {
				nv.walk(child, mainMenu, false)
				return
			}
			nv.invalidSelection(node, key, wasPlaying)
			start = time.Now()
		}
	}
}

// submitHybrid resolves a completed extension buffer against the hybrid
// menu's options. It reports whether navigation moved on, in which case the
// caller unwinds; otherwise the menu replays and dialing starts over.
func (nv *Navigator) submitHybrid(node, mainMenu *menu.Node, ext string) bool {
	if ext == "" {
		nv.play(node.Prompt)
		return false
	}
	if child, found := node.Children[ext]; found {
		nv.walk(child, mainMenu, true)
		return true
	}
	nv.invalidExtension(node, ext)
	return false
}
