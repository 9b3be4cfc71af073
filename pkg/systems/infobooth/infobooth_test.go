package infobooth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarlsen/switchboard/pkg/menu"
	"github.com/pkarlsen/switchboard/pkg/registry"
	"github.com/pkarlsen/switchboard/pkg/systems/infobooth"
)

func TestTree_Builds(t *testing.T) {
	root, err := infobooth.Tree()
	require.NoError(t, err)

	assert.Equal(t, menu.ModeHybrid, root.Mode)
	assert.Equal(t, "infobooth/main", root.Prompt)
	assert.Contains(t, root.Children, "1")
	assert.Contains(t, root.Children, "101")

	info := root.Children["1"]
	require.NotNil(t, info)
	assert.Equal(t, "infobooth/weather", info.Children["1"].Prompt)
}

func TestRegister(t *testing.T) {
	r := registry.New()
	infobooth.Register(r)

	info, err := r.Lookup(infobooth.ID)
	require.NoError(t, err)
	assert.Equal(t, "Information Booth", info.Name)

	build, err := r.Resolve(infobooth.ID)
	require.NoError(t, err)
	root, err := build()
	require.NoError(t, err)
	assert.NotNil(t, root)
}
