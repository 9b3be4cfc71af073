package navigator

import "github.com/pkarlsen/switchboard/pkg/menu"

// Merge composes two hook sets; for each event h fires first, then other.
// Useful when metrics and call recording both want the same events.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnNodeEnter: func(node *menu.Node) {
			if h.OnNodeEnter != nil {
				h.OnNodeEnter(node)
			}
			if other.OnNodeEnter != nil {
				other.OnNodeEnter(node)
			}
		},
		OnPromptStart: func(promptID string) {
			if h.OnPromptStart != nil {
				h.OnPromptStart(promptID)
			}
			if other.OnPromptStart != nil {
				other.OnPromptStart(promptID)
			}
		},
		OnInvalidSelection: func(key rune, suppressed bool) {
			if h.OnInvalidSelection != nil {
				h.OnInvalidSelection(key, suppressed)
			}
			if other.OnInvalidSelection != nil {
				other.OnInvalidSelection(key, suppressed)
			}
		},
		OnInvalidExtension: func(extension string) {
			if h.OnInvalidExtension != nil {
				h.OnInvalidExtension(extension)
			}
			if other.OnInvalidExtension != nil {
				other.OnInvalidExtension(extension)
			}
		},
		OnMenuTimeout: func(node *menu.Node) {
			if h.OnMenuTimeout != nil {
				h.OnMenuTimeout(node)
			}
			if other.OnMenuTimeout != nil {
				other.OnMenuTimeout(node)
			}
		},
	}
}
