package navigator

import (
	"time"

	"github.com/pkarlsen/switchboard/pkg/menu"
)

// listenWhilePlaying implements continuous dialing: while a hybrid leaf's
// prompt plays, the caller can dial the next extension directly, no prefix
// needed. Leaves carry no extension settings of their own, so the main
// menu's configuration applies. It returns the sibling to visit next, or nil
// to fall back to the menu as usual.
func (nv *Navigator) listenWhilePlaying(leaf, mainMenu *menu.Node) *menu.Node {
	c := newCollector(mainMenu.ExtensionLength, mainMenu.ExtensionTerminator, mainMenu.ExtensionTimeout, true)
	for nv.alive() && nv.audio.IsPlaying() {
		key, ok := nv.input.Get(nv.tick)
		if !ok {
			if c.expiredIdle(time.Now()) {
				return nv.resolveSibling(mainMenu, c.extension())
			}
			continue
		}
		if key == mainMenu.ReturnKey && c.empty() {
			nv.audio.Stop()
			return nil
		}
		switch c.push(key) {
		case pushComplete:
			return nv.resolveSibling(mainMenu, c.extension())
		case pushIgnored:
			nv.logger.Debug("rejecting key outside extension alphabet", "key", string(key))
		}
	}
	if !nv.alive() {
		return nil
	}
	// Prompt ran its course; a partial buffer still counts as dialed.
	if !c.empty() {
		return nv.resolveSibling(mainMenu, c.extension())
	}
	return nil
}

// resolveSibling matches a continuously-dialed extension against the main
// menu's options. A miss is announced audibly; either way any still-playing
// leaf prompt stops first.
func (nv *Navigator) resolveSibling(mainMenu *menu.Node, ext string) *menu.Node {
	nv.audio.Stop()
	if ext == "" {
		return nil
	}
	if sibling, found := mainMenu.Children[ext]; found {
		nv.logger.Debug("continuous dial", "extension", ext)
		return sibling
	}
	if nv.hooks.OnInvalidExtension != nil {
		nv.hooks.OnInvalidExtension(ext)
	}
	nv.logger.Info("invalid extension", "extension", ext)
	nv.playBlocking(PromptInvalidExtension)
	nv.drain()
	return nil
}
