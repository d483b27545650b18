package display

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/evsd/pkg/gralloc"
)

// ProxyBackend presents through an external compositor proxy: it acquires a
// GPU-backed window surface keyed by the display id, renders into a single
// lazily allocated target buffer, and forwards visibility to the proxy.
type ProxyBackend struct {
	proxy     CompositorProxy
	displayID uint64
	alloc     gralloc.Allocator
	log       zerolog.Logger

	mu     sync.Mutex
	pool   *BufferPool
	target *gralloc.Buffer
	ready  bool
}

var _ Backend = (*ProxyBackend)(nil)

// NewProxyBackend creates the compositor-proxy presentation path. The
// surface and render target are acquired on Initialize, not here, since
// the proxy may be expensive to reach during boot.
func NewProxyBackend(proxy CompositorProxy, displayID uint64, alloc gralloc.Allocator, log zerolog.Logger) *ProxyBackend {
	return &ProxyBackend{
		proxy:     proxy,
		displayID: displayID,
		alloc:     alloc,
		log:       log.With().Str("backend", "proxy").Uint64("display_id", displayID).Logger(),
	}
}

// Initialize acquires the window surface and allocates the render target
// sized to the proxy-reported resolution.
func (b *ProxyBackend) Initialize(ctx context.Context) error {
	b.mu.Lock()
	if b.ready {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	surface, err := b.proxy.AcquireSurface(ctx, b.displayID)
	if err != nil {
		return fmt.Errorf("%w: acquire surface: %v", ErrBackend, err)
	}

	pool, err := NewBufferPool(b.alloc, 1, gralloc.BufferDesc{
		Name:   "evs display target",
		Width:  surface.Width,
		Height: surface.Height,
		Format: gralloc.FormatRGBA8888,
		Usage:  gralloc.UsageHWRender | gralloc.UsageHWComposer | gralloc.UsageHWVideoEncoder,
	}, b.log)
	if err != nil {
		if rerr := b.proxy.ReleaseSurface(b.displayID); rerr != nil {
			b.log.Warn().Err(rerr).Msg("failed to release surface after allocation failure")
		}
		return err
	}
	target, err := pool.Handle(0)
	if err != nil {
		pool.ReleaseAll()
		return err
	}

	b.mu.Lock()
	b.pool = pool
	b.target = target
	b.ready = true
	b.mu.Unlock()

	b.log.Debug().
		Uint64("buffer", target.ID).
		Uint32("stride", target.Stride).
		Msg("allocated render target")
	return nil
}

// NextBuffer returns the render target descriptor. There is exactly one
// outstanding frame at a time on this path, identified by the fixed render
// target id.
func (b *ProxyBackend) NextBuffer() (BufferDescriptor, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.ready {
		return BufferDescriptor{}, fmt.Errorf("%w: backend not initialized", ErrBackend)
	}
	return descriptorForBuffer(b.target, renderTargetBufferID), nil
}

// ValidBufferID accepts only the render target id.
func (b *ProxyBackend) ValidBufferID(id uint32) bool {
	return id == renderTargetBufferID
}

// Present uploads the render target to the window surface and composites.
func (b *ProxyBackend) Present(desc BufferDescriptor) error {
	b.mu.Lock()
	target := b.target
	ready := b.ready
	b.mu.Unlock()
	if !ready {
		return fmt.Errorf("%w: backend not initialized", ErrBackend)
	}

	// Render from our own target, not the returned handle; the handle the
	// client sends back is a borrowed view of the same memory.
	_ = desc
	if err := b.proxy.Render(b.displayID, target); err != nil {
		return fmt.Errorf("%w: render: %v", ErrBackend, err)
	}
	return nil
}

func (b *ProxyBackend) Show() error {
	return b.proxy.Show(b.displayID)
}

func (b *ProxyBackend) Hide() error {
	return b.proxy.Hide(b.displayID)
}

// DisplayConfig delegates to the proxy, which knows the real mode of the
// window it hosts.
func (b *ProxyBackend) DisplayConfig() (Mode, StateInfo, error) {
	return b.proxy.DisplayConfig(b.displayID)
}

// Teardown frees the render target and releases the surface. Idempotent.
func (b *ProxyBackend) Teardown() {
	b.mu.Lock()
	pool := b.pool
	ready := b.ready
	b.pool = nil
	b.target = nil
	b.ready = false
	b.mu.Unlock()

	if pool != nil {
		pool.ReleaseAll()
	}
	if ready {
		if err := b.proxy.ReleaseSurface(b.displayID); err != nil {
			b.log.Warn().Err(err).Msg("failed to release surface")
		}
	}
}
