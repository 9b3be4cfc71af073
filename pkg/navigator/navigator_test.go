package navigator_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarlsen/switchboard/pkg/adapters/memory"
	"github.com/pkarlsen/switchboard/pkg/menu"
	"github.com/pkarlsen/switchboard/pkg/navigator"
)

// fixture wires a navigator to in-memory ports with a fast poll tick and no
// cosmetic pauses, so whole-call walks finish in milliseconds.
type fixture struct {
	audio  *memory.Audio
	input  *memory.Input
	hangup atomic.Bool
	done   chan struct{}
}

func newFixture(opts ...memory.AudioOption) *fixture {
	return &fixture{
		audio: memory.NewAudio(opts...),
		input: memory.NewInput(),
		done:  make(chan struct{}),
	}
}

func (f *fixture) alive() bool { return !f.hangup.Load() }

// hangupAction returns a leaf action that ends the call, which is how most
// tests make Walk unwind at a known point.
func (f *fixture) hangupAction() menu.Action {
	return func() bool {
		f.hangup.Store(true)
		return true
	}
}

func (f *fixture) walk(t *testing.T, root *menu.Node, opts ...navigator.Option) {
	t.Helper()
	opts = append([]navigator.Option{
		navigator.WithTick(time.Millisecond),
		navigator.WithLeafPause(0),
		navigator.WithErrorPause(0),
	}, opts...)
	nv := navigator.New(f.audio, f.input, f.alive, opts...)
	go func() {
		defer close(f.done)
		nv.Walk(root, root)
	}()
}

func (f *fixture) wait(t *testing.T) {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(5 * time.Second):
		t.Fatal("walk did not return")
	}
}

// waitForPlays blocks until at least n prompts have been started.
func (f *fixture) waitForPlays(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(f.audio.Plays()) >= n
	}, 5*time.Second, time.Millisecond)
}

func mustNode(t *testing.T, n menu.Node) *menu.Node {
	t.Helper()
	node, err := menu.New(n)
	require.NoError(t, err)
	return node
}

func leaf(t *testing.T, prompt string, action menu.Action) *menu.Node {
	t.Helper()
	return mustNode(t, menu.Node{Prompt: prompt, Action: action})
}

func TestWalk_SingleDigitSelection(t *testing.T) {
	f := newFixture()
	root := mustNode(t, menu.Node{
		Prompt: "prompts/main",
		Children: map[string]*menu.Node{
			"1": leaf(t, "prompts/info", f.hangupAction()),
		},
	})
	f.input.Put('1')

	f.walk(t, root)
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/info"}, f.audio.Plays())
}

func TestWalk_KeyPressInterruptsPrompt(t *testing.T) {
	f := newFixture(memory.WithHold("prompts/main", -1))
	root := mustNode(t, menu.Node{
		Prompt: "prompts/main",
		Children: map[string]*menu.Node{
			"1": leaf(t, "prompts/info", f.hangupAction()),
		},
	})
	f.input.Put('1')

	f.walk(t, root)
	f.wait(t)

	// The selection landed even though the main prompt never finished.
	assert.Equal(t, []string{"prompts/main", "prompts/info"}, f.audio.Plays())
}

func TestWalk_InvalidSelectionAfterPromptIsAudible(t *testing.T) {
	f := newFixture()
	root := mustNode(t, menu.Node{
		Prompt: "prompts/main",
		Children: map[string]*menu.Node{
			"1": leaf(t, "prompts/info", f.hangupAction()),
		},
	})

	var mu sync.Mutex
	var suppressed []bool
	hooks := navigator.Hooks{
		OnInvalidSelection: func(key rune, sup bool) {
			mu.Lock()
			suppressed = append(suppressed, sup)
			mu.Unlock()
		},
	}

	f.input.Put('9')
	f.walk(t, root, navigator.WithHooks(hooks))

	// Error announced, menu replayed, then a valid pick.
	f.waitForPlays(t, 3)
	f.input.Put('1')
	f.wait(t)

	assert.Equal(t, []string{
		"prompts/main",
		navigator.PromptInvalidOption,
		"prompts/main",
		"prompts/info",
	}, f.audio.Plays())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{false}, suppressed)
}

func TestWalk_InvalidSelectionDuringPromptIsSuppressed(t *testing.T) {
	f := newFixture(memory.WithHold("prompts/main", -1))
	root := mustNode(t, menu.Node{
		Prompt: "prompts/main",
		Children: map[string]*menu.Node{
			"1": leaf(t, "prompts/info", f.hangupAction()),
		},
	})

	var mu sync.Mutex
	var suppressed []bool
	hooks := navigator.Hooks{
		OnInvalidSelection: func(key rune, sup bool) {
			mu.Lock()
			suppressed = append(suppressed, sup)
			mu.Unlock()
		},
	}

	f.input.Put('9')
	f.walk(t, root, navigator.WithHooks(hooks))

	// No error prompt, straight to the replay.
	f.waitForPlays(t, 2)
	f.input.Put('1')
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/main", "prompts/info"}, f.audio.Plays())
	assert.NotContains(t, f.audio.Plays(), navigator.PromptInvalidOption)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true}, suppressed)
}

func TestWalk_InvalidSelectionDrainsBurst(t *testing.T) {
	f := newFixture()
	root := mustNode(t, menu.Node{
		Prompt: "prompts/main",
		Children: map[string]*menu.Node{
			"1": leaf(t, "prompts/info", f.hangupAction()),
		},
	})

	// Three bad keys mashed at once produce exactly one error.
	f.input.PutString("987")
	f.walk(t, root)
	f.waitForPlays(t, 3)
	f.input.Put('1')
	f.wait(t)

	plays := f.audio.Plays()
	errors := 0
	for _, p := range plays {
		if p == navigator.PromptInvalidOption {
			errors++
		}
	}
	assert.Equal(t, 1, errors)
	assert.Equal(t, "prompts/info", plays[len(plays)-1])
}

func TestWalk_MenuTimeoutFallsBackToMain(t *testing.T) {
	f := newFixture()
	root := mustNode(t, menu.Node{
		Prompt:  "prompts/main",
		Timeout: 30 * time.Millisecond,
		Children: map[string]*menu.Node{
			"1": leaf(t, "prompts/info", nil),
		},
	})

	var timedOut atomic.Bool
	hooks := navigator.Hooks{
		OnMenuTimeout: func(node *menu.Node) {
			timedOut.Store(true)
			f.hangup.Store(true)
		},
	}

	f.walk(t, root, navigator.WithHooks(hooks))
	f.wait(t)

	assert.True(t, timedOut.Load())
	assert.Equal(t, []string{"prompts/main", navigator.PromptTimeout}, f.audio.Plays())
}

func TestWalk_TimeoutClockResetsOnInvalidKey(t *testing.T) {
	f := newFixture()
	root := mustNode(t, menu.Node{
		Prompt:  "prompts/main",
		Timeout: 60 * time.Millisecond,
		Children: map[string]*menu.Node{
			"1": leaf(t, "prompts/info", f.hangupAction()),
		},
	})

	var timedOut atomic.Bool
	hooks := navigator.Hooks{
		OnMenuTimeout: func(node *menu.Node) { timedOut.Store(true) },
	}

	f.walk(t, root, navigator.WithHooks(hooks))

	// Keep the clock alive past the original deadline with bad keys.
	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		f.input.Put('9')
	}
	f.input.Put('1')
	f.wait(t)

	assert.False(t, timedOut.Load())
	assert.NotContains(t, f.audio.Plays(), navigator.PromptTimeout)
}

func TestWalk_ActionAbortReturnsToMain(t *testing.T) {
	f := newFixture()
	var calls atomic.Int32
	gate := func() bool {
		if calls.Add(1) == 1 {
			return false
		}
		f.hangup.Store(true)
		return true
	}
	root := mustNode(t, menu.Node{
		Prompt: "prompts/main",
		Children: map[string]*menu.Node{
			"1": leaf(t, "prompts/info", gate),
		},
	})

	f.input.Put('1')
	f.walk(t, root)
	f.waitForPlays(t, 3) // main, info, main again after the abort
	f.input.Put('1')
	f.wait(t)

	assert.Equal(t, []string{
		"prompts/main", "prompts/info",
		"prompts/main", "prompts/info",
	}, f.audio.Plays())
	assert.Equal(t, int32(2), calls.Load())
}

func TestWalk_HangupUnwindsPromptly(t *testing.T) {
	f := newFixture(memory.WithHold("prompts/main", -1))
	root := mustNode(t, menu.Node{
		Prompt: "prompts/main",
		Children: map[string]*menu.Node{
			"1": leaf(t, "prompts/info", nil),
		},
	})

	f.walk(t, root)
	f.waitForPlays(t, 1)
	f.hangup.Store(true)

	start := time.Now()
	f.wait(t)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, []string{"prompts/main"}, f.audio.Plays())
}

func TestWalk_MissingPromptIsNotFatal(t *testing.T) {
	f := newFixture(memory.WithMissing("prompts/main"))
	root := mustNode(t, menu.Node{
		Prompt: "prompts/main",
		Children: map[string]*menu.Node{
			"1": leaf(t, "prompts/info", f.hangupAction()),
		},
	})

	f.input.Put('1')
	f.walk(t, root)
	f.wait(t)

	assert.Equal(t, []string{"prompts/info"}, f.audio.Plays())
}

func extensionRoot(t *testing.T, f *fixture, cfg menu.Node) *menu.Node {
	t.Helper()
	cfg.Prompt = "prompts/main"
	cfg.Mode = menu.ModeExtension
	cfg.Children = map[string]*menu.Node{
		"101": leaf(t, "prompts/weather", f.hangupAction()),
		"102": leaf(t, "prompts/time", f.hangupAction()),
	}
	return mustNode(t, cfg)
}

func TestWalk_ExtensionSubmitOnTerminator(t *testing.T) {
	f := newFixture(memory.WithHold("prompts/main", -1))
	root := extensionRoot(t, f, menu.Node{})

	f.input.PutString("101#")
	f.walk(t, root)
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/weather"}, f.audio.Plays())
}

func TestWalk_ExtensionSubmitOnLength(t *testing.T) {
	f := newFixture()
	root := extensionRoot(t, f, menu.Node{ExtensionLength: 3})

	f.input.PutString("102")
	f.walk(t, root)
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/time"}, f.audio.Plays())
}

func TestWalk_ExtensionSubmitOnInactivity(t *testing.T) {
	f := newFixture()
	root := extensionRoot(t, f, menu.Node{ExtensionTimeout: 30 * time.Millisecond})

	f.input.PutString("101")
	f.walk(t, root)
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/weather"}, f.audio.Plays())
}

func TestWalk_ExtensionInvalidIsAlwaysAudible(t *testing.T) {
	f := newFixture()
	root := extensionRoot(t, f, menu.Node{})

	var dialed []string
	var mu sync.Mutex
	hooks := navigator.Hooks{
		OnInvalidExtension: func(ext string) {
			mu.Lock()
			dialed = append(dialed, ext)
			mu.Unlock()
		},
	}

	f.input.PutString("999#")
	f.walk(t, root, navigator.WithHooks(hooks))
	f.waitForPlays(t, 3)
	f.input.PutString("101#")
	f.wait(t)

	assert.Equal(t, []string{
		"prompts/main",
		navigator.PromptInvalidExtension,
		"prompts/main",
		"prompts/weather",
	}, f.audio.Plays())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"999"}, dialed)
}

func TestWalk_ExtensionEmptySubmissionReplaysWithoutError(t *testing.T) {
	f := newFixture()
	root := extensionRoot(t, f, menu.Node{})

	f.input.Put('#')
	f.walk(t, root)
	f.waitForPlays(t, 2)
	f.input.PutString("101#")
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/main", "prompts/weather"}, f.audio.Plays())
}

func hybridRoot(t *testing.T, f *fixture, cfg menu.Node) *menu.Node {
	t.Helper()
	cfg.Prompt = "prompts/main"
	cfg.Mode = menu.ModeHybrid
	if cfg.Children == nil {
		cfg.Children = map[string]*menu.Node{
			"1":   leaf(t, "prompts/info", f.hangupAction()),
			"101": leaf(t, "prompts/weather", f.hangupAction()),
			"102": leaf(t, "prompts/music", f.hangupAction()),
		}
	}
	return mustNode(t, cfg)
}

func TestWalk_HybridSingleDigitShortcut(t *testing.T) {
	f := newFixture()
	root := hybridRoot(t, f, menu.Node{NoContinuousDialing: true})

	f.input.Put('1')
	f.walk(t, root)
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/info"}, f.audio.Plays())
}

func TestWalk_HybridPrefixedExtension(t *testing.T) {
	f := newFixture()
	root := hybridRoot(t, f, menu.Node{})

	f.input.PutString("*101#")
	f.walk(t, root)
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/weather"}, f.audio.Plays())
}

func TestWalk_HybridExtensionIdleAutoSubmit(t *testing.T) {
	f := newFixture()
	root := hybridRoot(t, f, menu.Node{ExtensionTimeout: 30 * time.Millisecond})

	f.input.PutString("*101")
	f.walk(t, root)
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/weather"}, f.audio.Plays())
}

func TestWalk_HybridReturnKeyDigitInsideBuffer(t *testing.T) {
	f := newFixture()
	root := hybridRoot(t, f, menu.Node{
		Children: map[string]*menu.Node{
			"1":   leaf(t, "prompts/info", nil),
			"100": leaf(t, "prompts/support", f.hangupAction()),
		},
	})

	// '0' after '1' is a digit, not the return key.
	f.input.PutString("*100#")
	f.walk(t, root)
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/support"}, f.audio.Plays())
}

func TestWalk_HybridReturnKeyCancelsStrayPrefix(t *testing.T) {
	f := newFixture()
	root := hybridRoot(t, f, menu.Node{})

	f.input.PutString("*0")
	f.walk(t, root)
	f.waitForPlays(t, 2) // cancel replays the menu, no error prompt
	f.input.Put('1')
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/main", "prompts/info"}, f.audio.Plays())
	assert.NotContains(t, f.audio.Plays(), navigator.PromptInvalidExtension)
}

func TestWalk_HybridReturnKeyAtRootReplaysRoot(t *testing.T) {
	f := newFixture()
	root := hybridRoot(t, f, menu.Node{})

	f.input.Put('0')
	f.walk(t, root)
	f.waitForPlays(t, 2)
	f.input.Put('1')
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/main", "prompts/info"}, f.audio.Plays())
}

func TestWalk_HybridInvalidExtensionReplays(t *testing.T) {
	f := newFixture()
	root := hybridRoot(t, f, menu.Node{})

	f.input.PutString("*999#")
	f.walk(t, root)
	f.waitForPlays(t, 3)
	f.input.Put('1')
	f.wait(t)

	assert.Equal(t, []string{
		"prompts/main",
		navigator.PromptInvalidExtension,
		"prompts/main",
		"prompts/info",
	}, f.audio.Plays())
}

func TestWalk_ContinuousDialingChainsExtensions(t *testing.T) {
	// The weather prompt keeps playing, so the next extension can be
	// dialed straight through it, no prefix and no menu replay.
	f := newFixture(memory.WithHold("prompts/weather", -1))
	root := hybridRoot(t, f, menu.Node{
		Children: map[string]*menu.Node{
			"101": leaf(t, "prompts/weather", nil),
			"102": leaf(t, "prompts/music", f.hangupAction()),
		},
	})

	f.input.PutString("*101#102#")
	f.walk(t, root)
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/weather", "prompts/music"}, f.audio.Plays())
}

func TestWalk_ContinuousDialingPartialBufferSubmitsWhenPromptEnds(t *testing.T) {
	f := newFixture(memory.WithHold("prompts/weather", 60*time.Millisecond))
	root := hybridRoot(t, f, menu.Node{
		ExtensionTimeout: time.Second,
		Children: map[string]*menu.Node{
			"101": leaf(t, "prompts/weather", nil),
			"102": leaf(t, "prompts/music", f.hangupAction()),
		},
	})

	f.input.PutString("*101#102")
	f.walk(t, root)
	f.wait(t)

	assert.Equal(t, []string{"prompts/main", "prompts/weather", "prompts/music"}, f.audio.Plays())
}

func TestWalk_ContinuousDialingReturnKeyGoesBackToMenu(t *testing.T) {
	f := newFixture(memory.WithHold("prompts/weather", -1))
	root := hybridRoot(t, f, menu.Node{
		Children: map[string]*menu.Node{
			"1":   leaf(t, "prompts/info", f.hangupAction()),
			"101": leaf(t, "prompts/weather", nil),
		},
	})

	f.input.PutString("*101#01")
	f.walk(t, root)
	f.wait(t)

	assert.Equal(t, []string{
		"prompts/main", "prompts/weather",
		"prompts/main", "prompts/info",
	}, f.audio.Plays())
}

func TestWalk_ContinuousDialingInvalidExtension(t *testing.T) {
	f := newFixture(memory.WithHold("prompts/weather", -1))
	root := hybridRoot(t, f, menu.Node{
		Children: map[string]*menu.Node{
			"1":   leaf(t, "prompts/info", f.hangupAction()),
			"101": leaf(t, "prompts/weather", nil),
		},
	})

	f.input.PutString("*101#999#")
	f.walk(t, root)
	f.waitForPlays(t, 4) // main, weather, error, main
	f.input.Put('1')
	f.wait(t)

	assert.Equal(t, []string{
		"prompts/main", "prompts/weather",
		navigator.PromptInvalidExtension,
		"prompts/main", "prompts/info",
	}, f.audio.Plays())
}

func TestWalk_ContinuousDialingDisabled(t *testing.T) {
	f := newFixture()
	root := hybridRoot(t, f, menu.Node{
		NoContinuousDialing: true,
		Children: map[string]*menu.Node{
			"1":   leaf(t, "prompts/info", f.hangupAction()),
			"101": leaf(t, "prompts/weather", nil),
		},
	})

	f.input.PutString("*101#")
	f.walk(t, root)
	f.waitForPlays(t, 3) // weather plays out, then back to the menu
	f.input.Put('1')
	f.wait(t)

	assert.Equal(t, []string{
		"prompts/main", "prompts/weather",
		"prompts/main", "prompts/info",
	}, f.audio.Plays())
}

func TestWalk_NestedMenusReturnToRootAfterLeaf(t *testing.T) {
	f := newFixture()
	sub := mustNode(t, menu.Node{
		Prompt: "prompts/info_menu",
		Children: map[string]*menu.Node{
			"1": leaf(t, "prompts/weather", nil),
		},
	})
	root := mustNode(t, menu.Node{
		Prompt: "prompts/main",
		Children: map[string]*menu.Node{
			"1": sub,
			"2": leaf(t, "prompts/jokes", f.hangupAction()),
		},
	})

	f.input.PutString("11")
	f.walk(t, root)
	f.waitForPlays(t, 4) // main, info_menu, weather, main
	f.input.Put('2')
	f.wait(t)

	assert.Equal(t, []string{
		"prompts/main", "prompts/info_menu", "prompts/weather",
		"prompts/main", "prompts/jokes",
	}, f.audio.Plays())
}

func TestHooks_NodeEnterAndPromptStart(t *testing.T) {
	f := newFixture()
	root := mustNode(t, menu.Node{
		Prompt: "prompts/main",
		Children: map[string]*menu.Node{
			"1": leaf(t, "prompts/info", f.hangupAction()),
		},
	})

	var mu sync.Mutex
	var entered, prompts []string
	hooks := navigator.Hooks{
		OnNodeEnter: func(node *menu.Node) {
			mu.Lock()
			entered = append(entered, node.Prompt)
			mu.Unlock()
		},
		OnPromptStart: func(promptID string) {
			mu.Lock()
			prompts = append(prompts, promptID)
			mu.Unlock()
		},
	}

	f.input.Put('1')
	f.walk(t, root, navigator.WithHooks(hooks))
	f.wait(t)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"prompts/main", "prompts/info"}, entered)
	assert.Equal(t, []string{"prompts/main", "prompts/info"}, prompts)
}
