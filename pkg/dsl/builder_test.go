package dsl_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarlsen/switchboard/pkg/dsl"
	"github.com/pkarlsen/switchboard/pkg/menu"
)

func TestBuilder_HybridTree(t *testing.T) {
	var told bool
	root, err := dsl.NewMenu("prompts/main").
		Hybrid().
		Timeout(45*time.Second).
		Option("1", dsl.NewMenu("prompts/info").
			Option("1", dsl.Leaf("prompts/weather")).
			Option("2", dsl.Leaf("prompts/time"))).
		Option("101", dsl.Leaf("prompts/weather")).
		Option("102", dsl.Leaf("prompts/jokes").Do(func() bool {
			told = true
			return true
		})).
		Build()
	require.NoError(t, err)

	assert.Equal(t, menu.ModeHybrid, root.Mode)
	assert.Equal(t, 45*time.Second, root.Timeout)
	assert.Equal(t, '*', root.ExtensionPrefix)
	assert.Equal(t, '0', root.ReturnKey)
	require.Len(t, root.Children, 3)

	info := root.Children["1"]
	require.NotNil(t, info)
	assert.Equal(t, menu.ModeSingleDigit, info.Mode)
	assert.Len(t, info.Children, 2)

	jokes := root.Children["102"]
	require.NotNil(t, jokes)
	require.NotNil(t, jokes.Action)
	assert.True(t, jokes.Action())
	assert.True(t, told)
}

func TestBuilder_ExtensionSettingsPropagate(t *testing.T) {
	root, err := dsl.NewMenu("prompts/main").
		Extension().
		ExtensionLength(3).
		Terminator('9').
		ExtensionTimeout(5*time.Second).
		Option("101", dsl.Leaf("prompts/weather")).
		Option("102", dsl.Leaf("prompts/time")).
		Build()
	require.NoError(t, err)

	assert.Equal(t, menu.ModeExtension, root.Mode)
	assert.Equal(t, 3, root.ExtensionLength)
	assert.Equal(t, '9', root.ExtensionTerminator)
	assert.Equal(t, 5*time.Second, root.ExtensionTimeout)
}

func TestBuilder_ContinuousDialingToggle(t *testing.T) {
	root, err := dsl.NewMenu("prompts/main").
		Hybrid().
		ContinuousDialing(false).
		Option("101", dsl.Leaf("prompts/weather")).
		Build()
	require.NoError(t, err)
	assert.True(t, root.NoContinuousDialing)
}

func TestBuilder_ValidationErrorNamesTheMenu(t *testing.T) {
	_, err := dsl.NewMenu("prompts/main").
		Option("1", dsl.Leaf("prompts/info")).
		Option("101", dsl.Leaf("prompts/weather")).
		Build()
	require.Error(t, err)

	var cfgErr *menu.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, menu.ErrMixedKeyLength, cfgErr.Kind)
	assert.Contains(t, err.Error(), "prompts/main")
}

func TestBuilder_MustBuildPanicsOnBadLayout(t *testing.T) {
	assert.Panics(t, func() {
		dsl.NewMenu("prompts/main").
			Option("1", dsl.Leaf("a")).
			Option("22", dsl.Leaf("b")).
			MustBuild()
	})
}
