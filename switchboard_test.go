package switchboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	switchboard "github.com/pkarlsen/switchboard"
	"github.com/pkarlsen/switchboard/pkg/adapters/memory"
	"github.com/pkarlsen/switchboard/pkg/call"
	"github.com/pkarlsen/switchboard/pkg/dsl"
	"github.com/pkarlsen/switchboard/pkg/menu"
	"github.com/pkarlsen/switchboard/pkg/navigator"
)

func tree() (*menu.Node, error) {
	return dsl.NewMenu("prompts/main").
		Option("1", dsl.Leaf("prompts/info")).
		Build()
}

func TestSystem_WholeCallWithMetrics(t *testing.T) {
	ctx := context.Background()
	audio := memory.NewAudio()
	input := memory.NewInput()
	reg := prometheus.NewRegistry()

	sys := switchboard.New(tree, audio, input,
		switchboard.WithMetrics(reg),
		switchboard.WithSessionOptions(
			call.WithDialTone(0),
			call.WithNavigatorOptions(
				navigator.WithTick(time.Millisecond),
				navigator.WithLeafPause(0),
			),
		),
	)

	require.NoError(t, sys.OffHook(ctx))
	assert.True(t, sys.Active())

	input.Put('1')
	require.Eventually(t, func() bool {
		return len(audio.Plays()) >= 2
	}, 5*time.Second, time.Millisecond)

	require.NoError(t, sys.OnHook(ctx))
	assert.False(t, sys.Active())

	rec, ok := sys.Snapshot()
	require.True(t, ok)
	assert.Contains(t, rec.Prompts, "prompts/info")

	// Metric names are stable API for dashboards; spot-check the counters.
	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["switchboard_calls_started_total"])
	assert.True(t, names["switchboard_prompts_played_total"])

	counter, err := testutil.GatherAndCount(reg, "switchboard_calls_ended_total")
	require.NoError(t, err)
	assert.Equal(t, 1, counter)
}

func TestSystem_TreeAccessor(t *testing.T) {
	sys := switchboard.New(tree, memory.NewAudio(), memory.NewInput())

	root, err := sys.Tree()
	require.NoError(t, err)
	assert.Equal(t, "prompts/main", root.Prompt)
}
