package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	switchboard "github.com/pkarlsen/switchboard"
	"github.com/pkarlsen/switchboard/internal/config"
	"github.com/pkarlsen/switchboard/internal/presentation/tui"
	"github.com/pkarlsen/switchboard/pkg/adapters/admin"
	"github.com/pkarlsen/switchboard/pkg/adapters/console"
	"github.com/pkarlsen/switchboard/pkg/adapters/memory"
	"github.com/pkarlsen/switchboard/pkg/adapters/redis"
	"github.com/pkarlsen/switchboard/pkg/call"
)

// Run is the `switchboard run` entrypoint: it wires the configured phone
// system to the console keypad and speaker and blocks until the quit key or
// a termination signal.
func Run(ctx context.Context, cfg config.Config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	build, systemName, err := ResolveTree(ctx, cfg, logger)
	if err != nil {
		return err
	}

	audio := console.NewAudio(console.WithPromptDuration(cfg.PromptDuration))
	input := memory.NewInput()

	opts := []switchboard.Option{
		switchboard.WithLogger(logger),
		switchboard.WithSessionOptions(call.WithDialTone(cfg.DialTone)),
	}

	var store call.Store
	if cfg.Redis.Enabled {
		rstore := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.Redis.TTL))
		defer rstore.Close()
		store = rstore
		opts = append(opts, switchboard.WithStore(store, systemName))
	}

	var promReg *prometheus.Registry
	if cfg.Admin.Enabled {
		promReg = prometheus.NewRegistry()
		opts = append(opts, switchboard.WithMetrics(promReg))
	}

	sys := switchboard.New(build, audio, input, opts...)

	if cfg.Admin.Enabled {
		adminOpts := []admin.Option{
			admin.WithLogger(logger),
			admin.WithTree(build),
			admin.WithSession(sys.Session()),
			admin.WithGatherer(promReg),
		}
		if store != nil {
			adminOpts = append(adminOpts, admin.WithStore(store))
		}
		srv := &http.Server{
			Addr:    cfg.Admin.Listen,
			Handler: admin.NewHandler(adminOpts...),
		}
		go func() {
			logger.Info("admin server listening", "addr", cfg.Admin.Listen)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("admin server failed", "err", err)
				cancel()
			}
		}()
		defer func() {
			shutCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			srv.Shutdown(shutCtx)
		}()
	}

	tui.PrintBanner()
	fmt.Printf("  system: %s\r\n", systemName)
	fmt.Printf("  keys 0-9 * # dial, 'h' lifts or hangs up the handset, 'q' quits\r\n\r\n")

	keypad := console.NewKeypad(input,
		console.WithKeypadLogger(logger),
		console.WithOnHook(func() {
			if sys.Active() {
				if err := sys.OnHook(ctx); err != nil {
					logger.Error("hanging up", "err", err)
				}
				fmt.Printf("  ☎ on hook\r\n")
				return
			}
			if err := sys.OffHook(ctx); err != nil {
				logger.Error("answering", "err", err)
				return
			}
			fmt.Printf("  ☎ off hook\r\n")
		}),
		console.WithOnQuit(cancel),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- keypad.Run(ctx)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	// Leave the phone on hook so the record of an in-flight call persists.
	hangCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	return sys.OnHook(hangCtx)
}
