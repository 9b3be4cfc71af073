// Package registry tracks the phone systems compiled into a switchboard
// binary. Systems register themselves at init time (or explicitly at wiring
// time) and the boot menu and CLI resolve them by ID.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/pkarlsen/switchboard/pkg/menu"
)

// ErrUnknownSystem is returned when no system is registered under an ID.
var ErrUnknownSystem = errors.New("unknown phone system")

// BuildFunc constructs a fresh menu tree for a phone system.
type BuildFunc func() (*menu.Node, error)

// Info describes a registered phone system.
type Info struct {
	ID          string
	Name        string
	Description string
	Version     string
}

type entry struct {
	info  Info
	build BuildFunc
}

// Registry is a thread-safe phone system catalog.
type Registry struct {
	mu      sync.RWMutex
	systems map[string]entry
}

func New() *Registry {
	return &Registry{systems: make(map[string]entry)}
}

// Register adds a phone system. Re-registering an ID overwrites the previous
// entry, which lets a deployment shadow a built-in system.
func (r *Registry) Register(info Info, build BuildFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.systems[info.ID] = entry{info: info, build: build}
}

// Resolve returns the builder for a system ID.
func (r *Registry) Resolve(id string) (BuildFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.systems[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSystem, id)
	}
	return e.build, nil
}

// Lookup returns the metadata for a system ID.
func (r *Registry) Lookup(id string) (Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.systems[id]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrUnknownSystem, id)
	}
	return e.info, nil
}

// List returns all registered systems sorted by ID.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]Info, 0, len(r.systems))
	for _, e := range r.systems {
		infos = append(infos, e.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Default is the process-wide registry that built-in systems register into.
var Default = New()
