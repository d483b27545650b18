package display

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/evsd/pkg/gralloc"
)

// Direct layer path defaults, matching the reference hardware configuration.
const (
	DefaultLayerWidth  = 640
	DefaultLayerHeight = 480
	DefaultBufferCount = 3
	defaultRefreshRate = 60.0

	layerServicePollInterval = 200 * time.Millisecond
)

// DirectLayerBackend presents by handing pre-allocated buffers to a
// hardware compositor layer by slot index. The buffer pool is allocated
// eagerly at construction; the layer itself is acquired on Initialize
// because the layer service may not be registered during early boot.
// There is no show/hide on this path: visibility follows from presenting.
type DirectLayerBackend struct {
	locator      LayerServiceLocator
	pool         *BufferPool
	width        uint32
	height       uint32
	pollInterval time.Duration
	serviceWait  time.Duration
	log          zerolog.Logger

	mu    sync.Mutex
	svc   LayerService
	layer uint32
	ready bool
}

var _ Backend = (*DirectLayerBackend)(nil)

// DirectLayerConfig sizes the direct backend's pool. Zero values fall back
// to the reference defaults (640x480 RGBA8888, 3 buffers).
type DirectLayerConfig struct {
	Width       uint32
	Height      uint32
	Format      gralloc.Format
	BufferCount int
	// ServiceWait caps how long Initialize polls for the layer service,
	// on top of whatever deadline the caller's context carries. Zero
	// means the context alone bounds the wait.
	ServiceWait time.Duration
}

func (c *DirectLayerConfig) applyDefaults() {
	if c.Width == 0 {
		c.Width = DefaultLayerWidth
	}
	if c.Height == 0 {
		c.Height = DefaultLayerHeight
	}
	if c.Format == 0 {
		c.Format = gralloc.FormatRGBA8888
	}
	if c.BufferCount == 0 {
		c.BufferCount = DefaultBufferCount
	}
}

// NewDirectLayerBackend allocates the fixed buffer pool and returns the
// backend. Fails with ErrAllocationFailed if the pool cannot be allocated.
func NewDirectLayerBackend(locator LayerServiceLocator, alloc gralloc.Allocator, cfg DirectLayerConfig, log zerolog.Logger) (*DirectLayerBackend, error) {
	cfg.applyDefaults()
	log = log.With().Str("backend", "layer").Logger()

	pool, err := NewBufferPool(alloc, cfg.BufferCount, gralloc.BufferDesc{
		Name:   "evs display buf",
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: cfg.Format,
		Usage:  gralloc.UsageHWTexture | gralloc.UsageHWRender | gralloc.UsageHWVideoEncoder,
	}, log)
	if err != nil {
		return nil, err
	}

	return &DirectLayerBackend{
		locator:      locator,
		pool:         pool,
		width:        cfg.Width,
		height:       cfg.Height,
		pollInterval: layerServicePollInterval,
		serviceWait:  cfg.ServiceWait,
		log:          log,
	}, nil
}

// Initialize waits for the layer service to come up, then claims a layer
// sized for the pool. The wait polls the locator, bounded by ctx and by
// the configured ServiceWait.
func (b *DirectLayerBackend) Initialize(ctx context.Context) error {
	b.mu.Lock()
	if b.ready {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	if b.serviceWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.serviceWait)
		defer cancel()
	}

	svc, err := b.waitForService(ctx)
	if err != nil {
		return err
	}

	layer, err := svc.GetLayer(b.pool.Size())
	if err != nil {
		return fmt.Errorf("%w: get layer: %v", ErrBackend, err)
	}

	b.mu.Lock()
	b.svc = svc
	b.layer = layer
	b.ready = true
	b.mu.Unlock()

	b.log.Debug().Uint32("layer", layer).Int("buffers", b.pool.Size()).Msg("claimed display layer")
	return nil
}

func (b *DirectLayerBackend) waitForService(ctx context.Context) (LayerService, error) {
	for {
		svc, err := b.locator.Locate()
		if err == nil {
			return svc, nil
		}
		b.log.Error().Err(err).Msg("display service not available, retrying")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: waiting for display service: %v", ErrBackend, ctx.Err())
		case <-time.After(b.pollInterval):
		}
	}
}

// NextBuffer asks the layer service which slot to fill next and returns
// that slot's descriptor. The buffer id on this path is the slot index.
func (b *DirectLayerBackend) NextBuffer() (BufferDescriptor, error) {
	b.mu.Lock()
	svc, layer, ready := b.svc, b.layer, b.ready
	b.mu.Unlock()
	if !ready {
		return BufferDescriptor{}, fmt.Errorf("%w: backend not initialized", ErrBackend)
	}

	slot, err := svc.GetSlot(layer)
	if err != nil {
		return BufferDescriptor{}, fmt.Errorf("%w: get slot: %v", ErrBackend, err)
	}

	buf, err := b.pool.Handle(slot)
	if err != nil {
		return BufferDescriptor{}, err
	}
	return descriptorForBuffer(buf, uint32(slot)), nil
}

// ValidBufferID accepts any id inside the pool's slot range.
func (b *DirectLayerBackend) ValidBufferID(id uint32) bool {
	return id < uint32(b.pool.Size())
}

// Present submits the slot's buffer to the layer.
func (b *DirectLayerBackend) Present(desc BufferDescriptor) error {
	b.mu.Lock()
	svc, layer, ready := b.svc, b.layer, b.ready
	b.mu.Unlock()
	if !ready {
		return fmt.Errorf("%w: backend not initialized", ErrBackend)
	}

	buf, err := b.pool.Handle(int(desc.BufferID))
	if err != nil {
		return err
	}
	if err := svc.PresentLayer(layer, int(desc.BufferID), buf); err != nil {
		return fmt.Errorf("%w: present layer: %v", ErrBackend, err)
	}
	return nil
}

// Show is a no-op: the layer becomes visible when a buffer is presented.
func (b *DirectLayerBackend) Show() error { return nil }

// Hide is a no-op, as above.
func (b *DirectLayerBackend) Hide() error { return nil }

// DisplayConfig reports the fixed layer mode and the claimed layer as the
// layer stack id.
func (b *DirectLayerBackend) DisplayConfig() (Mode, StateInfo, error) {
	b.mu.Lock()
	layer, ready := b.layer, b.ready
	b.mu.Unlock()
	if !ready {
		return Mode{}, StateInfo{}, fmt.Errorf("%w: backend not initialized", ErrBackend)
	}
	return Mode{Width: b.width, Height: b.height, RefreshRate: defaultRefreshRate},
		StateInfo{LayerStack: layer}, nil
}

// Teardown returns the layer to the service and frees the pool. Idempotent,
// and frees the eagerly allocated pool even if the layer was never claimed.
func (b *DirectLayerBackend) Teardown() {
	b.mu.Lock()
	svc, layer, ready := b.svc, b.layer, b.ready
	b.svc = nil
	b.layer = 0
	b.ready = false
	b.mu.Unlock()

	if ready && svc != nil {
		if err := svc.PutLayer(layer); err != nil {
			b.log.Warn().Err(err).Uint32("layer", layer).Msg("failed to return display layer")
		}
	}
	b.pool.ReleaseAll()
}
