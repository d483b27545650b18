package display

import (
	"context"

	"github.com/bnema/evsd/pkg/gralloc"
)

//go:generate mockgen -source=backend.go -destination=mocks/mock_collaborators.go -package=mocks

// SurfaceInfo is what the compositor proxy reports for an acquired window
// surface. The proxy path sizes its render target to this.
type SurfaceInfo struct {
	Width  uint32
	Height uint32
}

// CompositorProxy is the external service hosting a GPU-backed window
// surface on behalf of the display core. Windows are addressed by a 64-bit
// display id. AcquireSurface may block on the remote service and must not
// be called with any display-core lock held.
type CompositorProxy interface {
	AcquireSurface(ctx context.Context, displayID uint64) (SurfaceInfo, error)
	ReleaseSurface(displayID uint64) error
	Show(displayID uint64) error
	Hide(displayID uint64) error
	// Render uploads the buffer contents to the window surface and issues
	// the composite call.
	Render(displayID uint64, buf *gralloc.Buffer) error
	DisplayConfig(displayID uint64) (Mode, StateInfo, error)
}

// LayerService is the lower-level display service for the direct path. It
// hands out a hardware layer with a fixed number of buffer slots and
// accepts presented buffers by slot index.
type LayerService interface {
	GetLayer(bufferCount int) (uint32, error)
	GetSlot(layer uint32) (int, error)
	PresentLayer(layer uint32, slot int, buf *gralloc.Buffer) error
	PutLayer(layer uint32) error
}

// LayerServiceLocator resolves the layer service. During early boot the
// service may not be registered yet, so the direct backend polls the
// locator until it succeeds or the caller's context expires.
type LayerServiceLocator interface {
	Locate() (LayerService, error)
}

// LocatorFunc adapts a plain function to a LayerServiceLocator.
type LocatorFunc func() (LayerService, error)

func (f LocatorFunc) Locate() (LayerService, error) { return f() }

// Backend is the presentation side of the display core. The state machine
// is written once against this interface; the two implementations hold all
// path-specific mechanics. The variant is fixed at construction.
//
// The state machine never calls Backend methods while holding its own
// lock, so implementations guard their own handles.
type Backend interface {
	// Initialize acquires the surface or layer and readies buffers. Called
	// lazily on the first buffer request; may block (surface acquisition,
	// waiting for the layer service) bounded by ctx.
	Initialize(ctx context.Context) error

	// NextBuffer returns the descriptor to hand to the client for the next
	// frame. Only called after a successful Initialize.
	NextBuffer() (BufferDescriptor, error)

	// ValidBufferID reports whether id could ever have been issued by this
	// backend. Used to distinguish InvalidArgument from a double return.
	ValidBufferID(id uint32) bool

	// Present submits a returned buffer to the display.
	Present(desc BufferDescriptor) error

	// Show and Hide forward window visibility. The direct layer path has
	// no explicit visibility; those implementations are no-ops.
	Show() error
	Hide() error

	// DisplayConfig reports the active mode and layer placement.
	DisplayConfig() (Mode, StateInfo, error)

	// Teardown releases the surface or layer and all buffers. Idempotent,
	// and safe to call on a backend that was never initialized.
	Teardown()
}
