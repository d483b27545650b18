// Package daemon wires the display service together and runs it: config,
// logging, journal, backend selection, the debug endpoint, and signal
// handling. An external signal always triggers ForceShutdown before exit
// so display buffers are not leaked.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/evsd/internal/config"
	"github.com/bnema/evsd/internal/display"
	"github.com/bnema/evsd/internal/httpapi"
	"github.com/bnema/evsd/internal/journal"
	"github.com/bnema/evsd/pkg/gralloc"
)

// Options inject the platform collaborators. Nil fields fall back to the
// in-process loopback implementations, which present to nothing but keep
// the full buffer protocol observable; the real compositor proxy and layer
// service bindings are provided by the platform integration.
type Options struct {
	Proxy   display.CompositorProxy
	Locator display.LayerServiceLocator
}

// Run builds the service from cfg and blocks until ctx is cancelled or a
// termination signal arrives.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts Options) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	alloc := gralloc.NewShmAllocator()
	defer func() {
		if n := alloc.LiveCount(); n > 0 {
			log.Warn().Int("buffers", n).Msg("freeing buffers leaked past shutdown")
		}
		_ = alloc.Close()
	}()

	var jnl *journal.Journal
	if cfg.Journal.Enabled {
		var err error
		jnl, err = journal.Open(cfg.Journal.Path, log)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer func() { _ = jnl.Close() }()
	}

	svc, err := buildService(cfg, alloc, jnl, log, opts)
	if err != nil {
		return err
	}
	// The shutdown path must run even when we exit through an error: it
	// releases buffers and the surface or layer.
	defer svc.ForceShutdown()

	log.Info().
		Str("display", svc.DisplayInfo().DisplayID).
		Str("backend", string(cfg.Backend.Mode)).
		Msg("display service ready")

	g, ctx := errgroup.WithContext(ctx)

	if cfg.HTTP.Enabled {
		server := &http.Server{
			Addr:              cfg.HTTP.Listen,
			Handler:           httpapi.NewRouter(svc, jnl, log),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			log.Info().Str("listen", cfg.HTTP.Listen).Msg("debug endpoint listening")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down display service")
		return nil
	})

	return g.Wait()
}

func buildService(cfg *config.Config, alloc gralloc.Allocator, jnl *journal.Journal, log zerolog.Logger, opts Options) (*display.Service, error) {
	var backend display.Backend
	switch cfg.Backend.Mode {
	case config.BackendProxy:
		proxy := opts.Proxy
		if proxy == nil {
			proxy = newLoopbackProxy(cfg.Display.Width, cfg.Display.Height, log)
		}
		backend = display.NewProxyBackend(proxy, cfg.Backend.ProxyDisplayID, alloc, log)
	case config.BackendLayer:
		locator := opts.Locator
		if locator == nil {
			locator = loopbackLocator(log)
		}
		var err error
		backend, err = display.NewDirectLayerBackend(locator, alloc, display.DirectLayerConfig{
			Width:       cfg.Display.Width,
			Height:      cfg.Display.Height,
			BufferCount: cfg.Display.BufferCount,
			ServiceWait: cfg.Backend.ServiceWait,
		}, log)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown backend mode %q", cfg.Backend.Mode)
	}

	sm := display.NewStateMachine(backend, log)
	info := display.Info{
		DisplayID:   cfg.Display.ID,
		VendorFlags: cfg.Display.VendorFlags,
		NativeID:    cfg.Backend.ProxyDisplayID,
	}

	var recorder display.EventRecorder
	if jnl != nil {
		recorder = jnl
	}
	return display.NewService(info, sm, recorder, log), nil
}
