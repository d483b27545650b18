package display

import (
	"fmt"
	"sync"

	"github.com/bnema/evsd/pkg/gralloc"
)

// fakeAllocator is an in-memory gralloc.Allocator with call tracking.
type fakeAllocator struct {
	mu sync.Mutex

	AllocateFunc func(desc gralloc.BufferDesc) (*gralloc.Buffer, error)
	FailAt       int // 1-based allocation index that fails, 0 disables

	calls     int
	nextID    uint64
	Allocated []gralloc.BufferDesc
	Freed     []uint64
	live      map[uint64]bool
}

func newFakeAllocator() *fakeAllocator {
	return &fakeAllocator{live: make(map[uint64]bool)}
}

func (a *fakeAllocator) Allocate(desc gralloc.BufferDesc) (*gralloc.Buffer, error) {
	if a.AllocateFunc != nil {
		return a.AllocateFunc(desc)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	if a.FailAt != 0 && a.calls == a.FailAt {
		return nil, fmt.Errorf("allocation %d refused", a.calls)
	}
	a.nextID++
	a.Allocated = append(a.Allocated, desc)
	a.live[a.nextID] = true
	return &gralloc.Buffer{
		ID:     a.nextID,
		Name:   desc.Name,
		Width:  desc.Width,
		Height: desc.Height,
		Format: desc.Format,
		Usage:  desc.Usage,
		Stride: desc.Width * desc.Format.BytesPerPixel(),
	}, nil
}

func (a *fakeAllocator) Free(buf *gralloc.Buffer) error {
	if buf == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.live[buf.ID] {
		return fmt.Errorf("double free of buffer %d", buf.ID)
	}
	delete(a.live, buf.ID)
	a.Freed = append(a.Freed, buf.ID)
	return nil
}

func (a *fakeAllocator) LiveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}
