package daemon

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/evsd/internal/config"
	"github.com/bnema/evsd/internal/display"
	"github.com/bnema/evsd/pkg/gralloc"
)

func testConfig(t *testing.T, mode config.BackendMode) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Backend.Mode = mode
	cfg.Journal.Path = filepath.Join(t.TempDir(), "journal.sqlite")
	return cfg
}

func TestBuildService_LayerMode(t *testing.T) {
	alloc := gralloc.NewShmAllocator()
	defer func() { _ = alloc.Close() }()

	svc, err := buildService(testConfig(t, config.BackendLayer), alloc, nil, zerolog.Nop(), Options{})
	require.NoError(t, err)
	defer svc.ForceShutdown()

	// the layer pool allocates eagerly
	assert.Equal(t, 3, alloc.LiveCount())

	require.NoError(t, svc.SetDisplayState(display.StateVisibleOnNextFrame))
	desc, err := svc.AcquireTargetBuffer(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.ReturnTargetBuffer(desc))
	assert.Equal(t, display.StateVisible, svc.DisplayState())
}

func TestBuildService_ProxyMode(t *testing.T) {
	alloc := gralloc.NewShmAllocator()
	defer func() { _ = alloc.Close() }()

	svc, err := buildService(testConfig(t, config.BackendProxy), alloc, nil, zerolog.Nop(), Options{})
	require.NoError(t, err)
	defer svc.ForceShutdown()

	// the proxy render target allocates lazily on first acquire
	assert.Equal(t, 0, alloc.LiveCount())

	desc, err := svc.AcquireTargetBuffer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(1280), desc.Width)
	assert.Equal(t, 1, alloc.LiveCount())
}

func TestBuildService_ShutdownFreesBuffers(t *testing.T) {
	alloc := gralloc.NewShmAllocator()
	defer func() { _ = alloc.Close() }()

	svc, err := buildService(testConfig(t, config.BackendLayer), alloc, nil, zerolog.Nop(), Options{})
	require.NoError(t, err)

	_, err = svc.AcquireTargetBuffer(context.Background())
	require.NoError(t, err)

	svc.ForceShutdown()
	assert.Equal(t, 0, alloc.LiveCount())
}

func TestBuildService_UnknownMode(t *testing.T) {
	cfg := testConfig(t, "virtual")
	_, err := buildService(cfg, gralloc.NewShmAllocator(), nil, zerolog.Nop(), Options{})
	require.Error(t, err)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	cfg := testConfig(t, config.BackendLayer)
	cfg.HTTP.Enabled = false

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, cfg, zerolog.Nop(), Options{})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop on context cancellation")
	}
}
