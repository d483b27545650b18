// Package gralloc provides graphics buffer allocation for the display service.
//
// Buffers are plain shared-memory allocations addressed by a process-unique
// id. The allocator interface mirrors a native gralloc driver: callers
// describe the buffer they need (dimensions, pixel format, usage bits) and
// get back an opaque handle they must eventually free.
package gralloc

import (
	"fmt"
	"sync/atomic"
)

// Format identifies the pixel format of a buffer. Values follow the
// Android HAL pixel format numbering so descriptors stay comparable with
// what the remote client reports.
type Format uint32

const (
	FormatRGBA8888 Format = 1
	FormatRGBX8888 Format = 2
	FormatRGB888   Format = 3
	FormatRGB565   Format = 4
	FormatBGRA8888 Format = 5
)

// BytesPerPixel returns the pixel size for the format, or 0 if unknown.
func (f Format) BytesPerPixel() uint32 {
	switch f {
	case FormatRGBA8888, FormatRGBX8888, FormatBGRA8888:
		return 4
	case FormatRGB888:
		return 3
	case FormatRGB565:
		return 2
	default:
		return 0
	}
}

func (f Format) String() string {
	switch f {
	case FormatRGBA8888:
		return "RGBA8888"
	case FormatRGBX8888:
		return "RGBX8888"
	case FormatRGB888:
		return "RGB888"
	case FormatRGB565:
		return "RGB565"
	case FormatBGRA8888:
		return "BGRA8888"
	default:
		return fmt.Sprintf("Format(%d)", uint32(f))
	}
}

// Usage is a bitmask describing how a buffer will be used. Values follow
// the gralloc usage bits of the native allocator.
type Usage uint64

const (
	UsageHWTexture      Usage = 0x100
	UsageHWRender       Usage = 0x200
	UsageHWComposer     Usage = 0x800
	UsageHWVideoEncoder Usage = 0x10000
)

// BufferDesc describes a buffer to allocate. Name is carried through to the
// underlying allocation for diagnosis only.
type BufferDesc struct {
	Name   string
	Width  uint32
	Height uint32
	Format Format
	Usage  Usage
}

// Validate reports whether the descriptor can be allocated at all.
func (d BufferDesc) Validate() error {
	if d.Width == 0 || d.Height == 0 {
		return fmt.Errorf("zero-sized buffer %dx%d", d.Width, d.Height)
	}
	if d.Format.BytesPerPixel() == 0 {
		return fmt.Errorf("unsupported pixel format %s", d.Format)
	}
	return nil
}

// Buffer is an allocated graphics buffer. The numeric ID is unique within
// the process for the lifetime of the allocator; Data is the mapped pixel
// memory and must not be used after Free.
type Buffer struct {
	ID     uint64
	Name   string
	Width  uint32
	Height uint32
	Format Format
	Usage  Usage
	Stride uint32 // bytes per row
	Size   int

	// backing store, owned by the allocator
	fd   int
	data []byte
}

// Bytes returns the mapped pixel memory. Returns nil after Free.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// FD returns the file descriptor backing the buffer, or -1 once freed.
// It can be passed over a unix socket to share the buffer with another
// process.
func (b *Buffer) FD() int {
	if b == nil || b.data == nil {
		return -1
	}
	return b.fd
}

// Allocator hands out graphics buffers. Implementations must make Free
// idempotent and nil-safe.
type Allocator interface {
	Allocate(desc BufferDesc) (*Buffer, error)
	Free(buf *Buffer) error
}

var nextBufferID atomic.Uint64

func newBufferID() uint64 {
	return nextBufferID.Add(1)
}
