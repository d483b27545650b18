package gralloc

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// ShmAllocator allocates buffers as anonymous shared memory (memfd) so a
// buffer's backing store can be handed to the compositor or another process
// by file descriptor. It tracks live allocations so a leaked buffer shows
// up in Close.
type ShmAllocator struct {
	mu   sync.Mutex
	live map[uint64]*Buffer
}

// NewShmAllocator creates an allocator backed by memfd shared memory.
func NewShmAllocator() *ShmAllocator {
	return &ShmAllocator{live: make(map[uint64]*Buffer)}
}

// Allocate creates a new shared-memory buffer matching desc.
func (a *ShmAllocator) Allocate(desc BufferDesc) (*Buffer, error) {
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid buffer descriptor: %w", err)
	}

	stride := desc.Width * desc.Format.BytesPerPixel()
	size := int(stride) * int(desc.Height)

	name := desc.Name
	if name == "" {
		name = "gralloc"
	}
	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC|unix.MFD_ALLOW_SEALING)
	if err != nil {
		return nil, fmt.Errorf("memfd_create %q: %w", name, err)
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("ftruncate to %d bytes: %w", size, err)
	}
	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	// Growing a presented buffer out from under the compositor is never
	// valid, so seal the size now.
	_, _ = unix.FcntlInt(uintptr(fd), unix.F_ADD_SEALS, unix.F_SEAL_GROW|unix.F_SEAL_SHRINK)

	buf := &Buffer{
		ID:     newBufferID(),
		Name:   name,
		Width:  desc.Width,
		Height: desc.Height,
		Format: desc.Format,
		Usage:  desc.Usage,
		Stride: stride,
		Size:   size,
		fd:     fd,
		data:   data,
	}

	a.mu.Lock()
	a.live[buf.ID] = buf
	a.mu.Unlock()
	return buf, nil
}

// Free releases the buffer's mapping and descriptor. Safe to call twice or
// with nil.
func (a *ShmAllocator) Free(buf *Buffer) error {
	if buf == nil || buf.data == nil {
		return nil
	}

	a.mu.Lock()
	delete(a.live, buf.ID)
	a.mu.Unlock()

	if err := unix.Munmap(buf.data); err != nil {
		return fmt.Errorf("munmap buffer %d: %w", buf.ID, err)
	}
	buf.data = nil
	if err := unix.Close(buf.fd); err != nil {
		return fmt.Errorf("close buffer %d fd: %w", buf.ID, err)
	}
	buf.fd = -1
	return nil
}

// LiveCount returns the number of buffers allocated and not yet freed.
func (a *ShmAllocator) LiveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// Close frees every live buffer. Returns the first error encountered.
func (a *ShmAllocator) Close() error {
	a.mu.Lock()
	bufs := make([]*Buffer, 0, len(a.live))
	for _, b := range a.live {
		bufs = append(bufs, b)
	}
	a.mu.Unlock()

	var firstErr error
	for _, b := range bufs {
		if err := a.Free(b); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
