package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/computeadvisor/advisor/pkg/catalog"
	"github.com/computeadvisor/advisor/pkg/server"
)

func testConfig() *server.Config {
	return &server.Config{
		Address:         "127.0.0.1",
		Port:            0,
		RateLimit:       100,
		RateLimitBurst:  10,
		ShutdownTimeout: time.Second,
	}
}

func restoreCatalog(t *testing.T) {
	t.Helper()
	prev := catalog.Swap(nil)
	catalog.Swap(prev)
	t.Cleanup(func() { catalog.Swap(prev) })
}

func TestRun_StopsWhenContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, Run(ctx, testConfig()))
}

func TestRun_LoadsCatalogSource(t *testing.T) {
	restoreCatalog(t)

	def, err := catalog.Default()
	require.NoError(t, err)
	data, err := catalog.Marshal(def)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg := testConfig()
	cfg.CatalogSource = path

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, Run(ctx, cfg))

	current, err := catalog.Current()
	require.NoError(t, err)
	assert.NotSame(t, def, current)
	assert.Equal(t, def.Keys(), current.Keys())
}

func TestRun_BadCatalogSource(t *testing.T) {
	restoreCatalog(t)

	cfg := testConfig()
	cfg.CatalogSource = filepath.Join(t.TempDir(), "missing.yaml")

	err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load catalog")
}

func TestReloadOnSignal(t *testing.T) {
	restoreCatalog(t)

	def, err := catalog.Default()
	require.NoError(t, err)

	var loads atomic.Int32
	src := catalog.SourceFunc(func(context.Context) (*catalog.Catalog, error) {
		if loads.Add(1) == 2 {
			return nil, errors.New("registry unreachable")
		}
		return &catalog.Catalog{Version: def.Version, Platforms: def.Platforms, Patterns: def.Patterns, Reasoning: def.Reasoning}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal)
	done := make(chan struct{})
	go func() {
		defer close(done)
		reloadOnSignal(ctx, src, sig)
	}()

	sig <- syscall.SIGHUP
	require.Eventually(t, func() bool {
		c, err := catalog.Current()
		return err == nil && c != def
	}, time.Second, 10*time.Millisecond)
	first, err := catalog.Current()
	require.NoError(t, err)

	sig <- syscall.SIGHUP
	require.Eventually(t, func() bool { return loads.Load() == 2 }, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	after, err := catalog.Current()
	require.NoError(t, err)
	assert.Same(t, first, after, "failed reload keeps the current catalog")
}
