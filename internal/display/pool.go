package display

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/evsd/pkg/gralloc"
)

// BufferPool owns a fixed, slot-indexed set of graphics buffers. The direct
// layer backend allocates its full pool up front; the proxy backend uses a
// pool of one for its render target. Slot indices are stable for the
// lifetime of the pool.
type BufferPool struct {
	alloc gralloc.Allocator
	log   zerolog.Logger

	mu   sync.Mutex
	bufs []*gralloc.Buffer // nil entries once released
}

// NewBufferPool allocates count buffers matching template, naming each one
// after its slot. On any allocation failure the buffers already allocated
// are freed and the error wraps ErrAllocationFailed.
func NewBufferPool(alloc gralloc.Allocator, count int, template gralloc.BufferDesc, log zerolog.Logger) (*BufferPool, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: pool size %d", ErrAllocationFailed, count)
	}

	p := &BufferPool{
		alloc: alloc,
		log:   log,
		bufs:  make([]*gralloc.Buffer, count),
	}

	for i := 0; i < count; i++ {
		desc := template
		desc.Name = fmt.Sprintf("%s %d", template.Name, i)
		buf, err := alloc.Allocate(desc)
		if err != nil {
			log.Error().Err(err).
				Uint32("width", desc.Width).
				Uint32("height", desc.Height).
				Stringer("format", desc.Format).
				Uint64("usage", uint64(desc.Usage)).
				Msg("failed to allocate display buffer")
			p.ReleaseAll()
			return nil, fmt.Errorf("%w: slot %d: %v", ErrAllocationFailed, i, err)
		}
		p.bufs[i] = buf
	}

	return p, nil
}

// Size returns the number of slots in the pool.
func (p *BufferPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.bufs)
}

// Handle returns the buffer at slot, or an error if the slot is out of
// range or already released.
func (p *BufferPool) Handle(slot int) (*gralloc.Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if slot < 0 || slot >= len(p.bufs) {
		return nil, fmt.Errorf("%w: slot %d out of range (pool size %d)", ErrInvalidArgument, slot, len(p.bufs))
	}
	if p.bufs[slot] == nil {
		return nil, fmt.Errorf("%w: slot %d already released", ErrInvalidArgument, slot)
	}
	return p.bufs[slot], nil
}

// Slot returns the slot index for a buffer, matched by buffer id.
func (p *BufferPool) Slot(buf *gralloc.Buffer) (int, bool) {
	if buf == nil {
		return 0, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, b := range p.bufs {
		if b != nil && b.ID == buf.ID {
			return i, true
		}
	}
	return 0, false
}

// ReleaseAll frees every buffer in the pool. Idempotent; already-released
// slots are skipped.
func (p *BufferPool) ReleaseAll() {
	p.mu.Lock()
	bufs := p.bufs
	p.bufs = make([]*gralloc.Buffer, len(bufs))
	p.mu.Unlock()

	for i, buf := range bufs {
		if buf == nil {
			continue
		}
		if err := p.alloc.Free(buf); err != nil {
			p.log.Warn().Err(err).Int("slot", i).Msg("failed to free display buffer")
		}
	}
}
