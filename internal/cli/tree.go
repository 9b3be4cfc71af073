package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkarlsen/switchboard/internal/config"
	"github.com/pkarlsen/switchboard/pkg/adapters/yamltree"
	"github.com/pkarlsen/switchboard/pkg/boot"
	"github.com/pkarlsen/switchboard/pkg/call"
	"github.com/pkarlsen/switchboard/pkg/menu"
	"github.com/pkarlsen/switchboard/pkg/registry"
	"github.com/pkarlsen/switchboard/pkg/systems/infobooth"
)

// BootSystem selects the boot menu over a single phone system.
const BootSystem = "boot"

// DefaultRegistry returns the process registry with the built-in systems
// registered.
func DefaultRegistry() *registry.Registry {
	infobooth.Register(registry.Default)
	return registry.Default
}

// ResolveTree turns config into a per-call tree builder and a system name
// for logs and call records. A tree file takes precedence over the registry;
// when watching is requested the file is reloaded on change and the last
// good tree is kept if an edit breaks it.
func ResolveTree(ctx context.Context, cfg config.Config, logger *slog.Logger) (call.TreeFunc, string, error) {
	if cfg.TreeFile != "" {
		return watchedTree(ctx, cfg.TreeFile, logger)
	}

	reg := DefaultRegistry()
	if cfg.System == BootSystem {
		return func() (*menu.Node, error) {
			return boot.Tree(reg)
		}, BootSystem, nil
	}

	build, err := reg.Resolve(cfg.System)
	if err != nil {
		return nil, "", err
	}
	return call.TreeFunc(build), cfg.System, nil
}

// watchedTree loads the file once up front so a broken config fails at
// startup, then serves the freshest valid tree per call.
func watchedTree(ctx context.Context, path string, logger *slog.Logger) (call.TreeFunc, string, error) {
	loader := yamltree.New(path, yamltree.WithLogger(logger))
	root, err := loader.Load()
	if err != nil {
		return nil, "", fmt.Errorf("loading tree file: %w", err)
	}

	var mu sync.Mutex
	lastGood := root

	changes, err := loader.Watch(ctx)
	if err != nil {
		return nil, "", err
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				fresh, err := loader.Load()
				if err != nil {
					logger.Warn("tree file edit is invalid, keeping previous tree", "err", err)
					continue
				}
				mu.Lock()
				lastGood = fresh
				mu.Unlock()
				logger.Info("tree file reloaded", "path", path)
			}
		}
	}()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return func() (*menu.Node, error) {
		mu.Lock()
		defer mu.Unlock()
		return lastGood, nil
	}, name, nil
}
