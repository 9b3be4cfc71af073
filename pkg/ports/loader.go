package ports

import (
	"context"

	"github.com/pkarlsen/switchboard/pkg/menu"
)

// TreeLoader builds a menu tree from some backing definition (YAML file,
// in-memory fixture, generated registry menu). Load is called once per call
// session; the returned tree is read-only for that call's duration.
type TreeLoader interface {
	Load() (*menu.Node, error)
}

// Watchable is implemented by loaders that can notify about backend changes,
// typically for hot-reloading a tree definition between calls.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying
	// definition changes. It carries no event details; a signal only means a
	// reload is worthwhile.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
