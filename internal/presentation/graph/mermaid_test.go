package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarlsen/switchboard/internal/presentation/graph"
	"github.com/pkarlsen/switchboard/pkg/dsl"
)

func TestGenerateMermaid(t *testing.T) {
	root, err := dsl.NewMenu("prompts/main").
		Hybrid().
		Option("1", dsl.Leaf("prompts/info")).
		Option("101", dsl.Leaf("prompts/weather").Do(func() bool { return true })).
		Build()
	require.NoError(t, err)

	out := graph.GenerateMermaid(root)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "prompts/main")
	assert.Contains(t, out, "hybrid")
	// Single-digit edges are solid, extensions dotted.
	assert.Contains(t, out, `-- "1" -->`)
	assert.Contains(t, out, `-. "101" .->`)
	// The action leaf renders as a subroutine.
	assert.Contains(t, out, `[["prompts/weather"]]`)
	// The plain leaf renders as a circle.
	assert.Contains(t, out, `(("prompts/info"))`)
}

func TestGenerateMermaid_DeterministicOrder(t *testing.T) {
	root, err := dsl.NewMenu("prompts/main").
		Option("2", dsl.Leaf("prompts/b")).
		Option("1", dsl.Leaf("prompts/a")).
		Option("3", dsl.Leaf("prompts/c")).
		Build()
	require.NoError(t, err)

	first := graph.GenerateMermaid(root)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, graph.GenerateMermaid(root))
	}
	assert.Less(t, strings.Index(first, `"1"`), strings.Index(first, `"2"`))
}
