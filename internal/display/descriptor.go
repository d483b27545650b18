package display

import "github.com/bnema/evsd/pkg/gralloc"

// Default self-description values. The vendor flags and the render target
// buffer id are arbitrary magic carried over from the reference HAL for
// self recognition.
const (
	DefaultDisplayID   = "evs hal Display"
	DefaultVendorFlags = 3870

	renderTargetBufferID = 0x3870
)

// Info is the immutable self-description of the display instance. Built
// once at construction and read-only afterwards.
type Info struct {
	DisplayID   string `json:"display_id"`
	VendorFlags uint32 `json:"vendor_flags"`
	// NativeID identifies the underlying window on the compositor proxy,
	// zero for the direct layer path.
	NativeID uint64 `json:"native_id,omitempty"`
}

// BufferDescriptor describes one frame buffer handed to the client. The
// Handle is borrowed: the pool keeps ownership, the client writes pixels
// and returns the descriptor.
type BufferDescriptor struct {
	Width     uint32
	Height    uint32
	Format    gralloc.Format
	Usage     gralloc.Usage
	Stride    uint32
	BufferID  uint32
	PixelSize uint32
	Handle    *gralloc.Buffer
}

// Zero reports whether the descriptor is the empty rejection value.
func (d BufferDescriptor) Zero() bool {
	return d.Handle == nil && d.Width == 0 && d.Height == 0
}

// Mode describes the active display mode, mirroring what the compositor
// reports for the proxy path and the fixed layer configuration for the
// direct path.
type Mode struct {
	Width       uint32  `json:"width"`
	Height      uint32  `json:"height"`
	RefreshRate float32 `json:"refresh_rate"`
}

// StateInfo carries the layer-stack placement of the display.
type StateInfo struct {
	LayerStack uint32 `json:"layer_stack"`
}

func descriptorForBuffer(buf *gralloc.Buffer, bufferID uint32) BufferDescriptor {
	return BufferDescriptor{
		Width:     buf.Width,
		Height:    buf.Height,
		Format:    buf.Format,
		Usage:     buf.Usage,
		Stride:    buf.Stride,
		BufferID:  bufferID,
		PixelSize: buf.Format.BytesPerPixel(),
		Handle:    buf,
	}
}
