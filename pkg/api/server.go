// Package api runs advisord, the advisor HTTP API server.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/computeadvisor/advisor/pkg/advisor"
	"github.com/computeadvisor/advisor/pkg/catalog"
	"github.com/computeadvisor/advisor/pkg/logging"
	"github.com/computeadvisor/advisor/pkg/oci"
	"github.com/computeadvisor/advisor/pkg/server"
)

const (
	name           = "advisord"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/computeadvisor/advisor/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server with the environment configuration and blocks
// until shutdown.
func Serve() error {
	return Run(context.Background(), server.DefaultConfig())
}

// Run starts the API server with cfg and blocks until ctx is cancelled or a
// termination signal arrives. When cfg names a catalog source it is loaded
// before the listener opens and reloaded on SIGHUP; a failed reload keeps
// the catalog in use.
func Run(ctx context.Context, cfg *server.Config) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	if cfg.CatalogSource != "" {
		src := oci.SourceFor(cfg.CatalogSource)
		if _, err := catalog.Reload(ctx, src); err != nil {
			return fmt.Errorf("failed to load catalog from %s: %w", cfg.CatalogSource, err)
		}

		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)

		reloadCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			reloadOnSignal(reloadCtx, src, hup)
		}()
		defer func() {
			cancel()
			<-done
		}()
	} else if _, err := catalog.Default(); err != nil {
		return err
	}

	a := advisor.New(advisor.WithVersion(version))

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithConfig(cfg),
		server.WithHandler(a.Handlers()),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// reloadOnSignal reloads the catalog from src each time sig fires, until ctx
// is done.
func reloadOnSignal(ctx context.Context, src catalog.Source, sig <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-sig:
			slog.Info("reloading catalog", "signal", s.String())
			if _, err := catalog.Reload(ctx, src); err != nil {
				slog.Error("catalog reload failed, keeping current catalog", "error", err)
			}
		}
	}
}
