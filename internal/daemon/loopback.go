package daemon

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/evsd/internal/display"
	"github.com/bnema/evsd/pkg/gralloc"
)

// loopbackProxy is a stand-in compositor proxy used when no platform
// binding is injected. It accepts the full surface protocol and counts
// frames instead of compositing them, which keeps bring-up and soak
// testing possible on machines without the real compositor.
type loopbackProxy struct {
	width  uint32
	height uint32
	log    zerolog.Logger

	mu      sync.Mutex
	visible bool
	frames  uint64
}

func newLoopbackProxy(width, height uint32, log zerolog.Logger) *loopbackProxy {
	return &loopbackProxy{
		width:  width,
		height: height,
		log:    log.With().Str("component", "loopback_proxy").Logger(),
	}
}

func (p *loopbackProxy) AcquireSurface(ctx context.Context, displayID uint64) (display.SurfaceInfo, error) {
	p.log.Debug().Uint64("display_id", displayID).Msg("surface acquired")
	return display.SurfaceInfo{Width: p.width, Height: p.height}, nil
}

func (p *loopbackProxy) ReleaseSurface(displayID uint64) error {
	p.log.Debug().Uint64("display_id", displayID).Msg("surface released")
	return nil
}

func (p *loopbackProxy) Show(displayID uint64) error {
	p.mu.Lock()
	p.visible = true
	p.mu.Unlock()
	return nil
}

func (p *loopbackProxy) Hide(displayID uint64) error {
	p.mu.Lock()
	p.visible = false
	p.mu.Unlock()
	return nil
}

func (p *loopbackProxy) Render(displayID uint64, buf *gralloc.Buffer) error {
	p.mu.Lock()
	p.frames++
	frames := p.frames
	p.mu.Unlock()
	if frames == 1 {
		p.log.Debug().Uint64("buffer", buf.ID).Msg("first frame rendered")
	}
	return nil
}

func (p *loopbackProxy) DisplayConfig(displayID uint64) (display.Mode, display.StateInfo, error) {
	return display.Mode{Width: p.width, Height: p.height, RefreshRate: 60}, display.StateInfo{}, nil
}

// loopbackLayerService mirrors the hardware compositor's slot protocol in
// memory: round-robin slots, presents counted and dropped.
type loopbackLayerService struct {
	log zerolog.Logger

	mu        sync.Mutex
	nextLayer uint32
	slots     map[uint32]int // layer -> slot count
	cursor    map[uint32]int // layer -> next slot
}

func loopbackLocator(log zerolog.Logger) display.LayerServiceLocator {
	svc := &loopbackLayerService{
		log:       log.With().Str("component", "loopback_layer").Logger(),
		nextLayer: 1,
		slots:     make(map[uint32]int),
		cursor:    make(map[uint32]int),
	}
	return display.LocatorFunc(func() (display.LayerService, error) {
		return svc, nil
	})
}

func (s *loopbackLayerService) GetLayer(bufferCount int) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	layer := s.nextLayer
	s.nextLayer++
	s.slots[layer] = bufferCount
	return layer, nil
}

func (s *loopbackLayerService) GetSlot(layer uint32) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot := s.cursor[layer]
	s.cursor[layer] = (slot + 1) % s.slots[layer]
	return slot, nil
}

func (s *loopbackLayerService) PresentLayer(layer uint32, slot int, buf *gralloc.Buffer) error {
	return nil
}

func (s *loopbackLayerService) PutLayer(layer uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, layer)
	delete(s.cursor, layer)
	return nil
}
