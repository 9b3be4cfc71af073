// Package infobooth is the reference phone system: a small information line
// with a nested info menu, a joke line, and direct extensions to the most
// popular announcements. It doubles as living documentation for the dsl
// package.
package infobooth

import (
	"time"

	"github.com/pkarlsen/switchboard/pkg/dsl"
	"github.com/pkarlsen/switchboard/pkg/menu"
	"github.com/pkarlsen/switchboard/pkg/registry"
)

// ID is the registry identifier for the information booth.
const ID = "info-booth"

// Register adds the information booth to a registry.
func Register(r *registry.Registry) {
	r.Register(registry.Info{
		ID:          ID,
		Name:        "Information Booth",
		Description: "Weather, time, jokes and music, with direct extensions.",
		Version:     "1.0.0",
	}, Tree)
}

// Tree builds a fresh information booth menu.
func Tree() (*menu.Node, error) {
	return dsl.NewMenu("infobooth/main").
		Hybrid().
		Timeout(30*time.Second).
		ExtensionLength(3).
		Option("1", dsl.NewMenu("infobooth/info").
			Option("1", dsl.Leaf("infobooth/weather")).
			Option("2", dsl.Leaf("infobooth/current_time"))).
		Option("2", dsl.Leaf("infobooth/joke")).
		Option("3", dsl.Leaf("infobooth/music")).
		Option("101", dsl.Leaf("infobooth/weather")).
		Option("102", dsl.Leaf("infobooth/current_time")).
		Option("103", dsl.Leaf("infobooth/joke")).
		Build()
}
