package display

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// StateMachine arbitrates the display between exactly one remote client
// and the presentation backend. It owns the current State and the
// frame-busy flag behind a single mutex.
//
// The mutex is never held across a backend call: Initialize, Present, Show
// and Hide all reach external services and may block, and the compositor
// proxy is allowed to call back into the display core while we wait on it.
// Every operation inspects and decides under the lock, performs backend
// work outside it, then re-acquires the lock to commit, re-checking for a
// ForceShutdown that raced the external call.
type StateMachine struct {
	backend Backend
	log     zerolog.Logger

	mu           sync.Mutex
	state        State
	frameBusy    bool
	outstanding  BufferDescriptor
	initialized  bool
	initializing bool
}

// NewStateMachine creates the state machine over the chosen backend. The
// display starts NOT_VISIBLE with no frame outstanding.
func NewStateMachine(backend Backend, log zerolog.Logger) *StateMachine {
	return &StateMachine{
		backend: backend,
		log:     log.With().Str("component", "display").Logger(),
	}
}

// SetState records the client's requested presentation state. Any
// recognized state is accepted from any live state, including no-op
// transitions; the backend's visibility follows NOT_VISIBLE and VISIBLE
// requests immediately.
func (m *StateMachine) SetState(requested State) error {
	m.mu.Lock()
	if m.state == StateDead {
		m.mu.Unlock()
		return ErrOwnershipLost
	}
	if !requested.Valid() {
		m.mu.Unlock()
		return fmt.Errorf("%w: unknown display state %d", ErrInvalidArgument, int32(requested))
	}
	m.mu.Unlock()

	switch requested {
	case StateNotVisible:
		if err := m.backend.Hide(); err != nil {
			m.log.Warn().Err(err).Msg("hide failed")
		}
	case StateVisible:
		if err := m.backend.Show(); err != nil {
			m.log.Warn().Err(err).Msg("show failed")
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateDead {
		// Shutdown raced the visibility call; DEAD is terminal.
		return ErrOwnershipLost
	}
	if m.state != requested {
		m.log.Debug().Stringer("from", m.state).Stringer("to", requested).Msg("display state change")
	}
	m.state = requested
	return nil
}

// State returns the current state verbatim. It may transiently lag the
// true presentation state; driving state from frame delivery is the
// caller's job, except for the return-path advance documented on
// ReturnBuffer.
func (m *StateMachine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// AcquireBuffer hands the next frame buffer to the client. The first call
// initializes the backend (surface or layer acquisition, bounded by ctx).
// Only one frame may be outstanding: a second acquire fails with
// ErrBufferNotAvailable, which means either a competing client (not a
// supported mode) or a client that never returned its previous buffer.
func (m *StateMachine) AcquireBuffer(ctx context.Context) (BufferDescriptor, error) {
	m.mu.Lock()
	if m.state == StateDead {
		m.mu.Unlock()
		m.log.Error().Msg("rejecting buffer request from client that lost display ownership")
		return BufferDescriptor{}, ErrOwnershipLost
	}
	if m.frameBusy || m.initializing {
		m.mu.Unlock()
		m.log.Error().Msg("buffer requested while no buffers available")
		return BufferDescriptor{}, ErrBufferNotAvailable
	}
	needInit := !m.initialized
	if needInit {
		m.initializing = true
	}
	m.mu.Unlock()

	if needInit {
		if err := m.backend.Initialize(ctx); err != nil {
			m.mu.Lock()
			m.initializing = false
			m.mu.Unlock()
			return BufferDescriptor{}, err
		}
	}

	desc, nextErr := m.backend.NextBuffer()

	m.mu.Lock()
	if needInit {
		m.initializing = false
	}
	if m.state == StateDead {
		m.mu.Unlock()
		// Shutdown raced the initialization; drop whatever we just set up.
		m.backend.Teardown()
		return BufferDescriptor{}, ErrOwnershipLost
	}
	if nextErr != nil {
		m.mu.Unlock()
		return BufferDescriptor{}, nextErr
	}
	if m.frameBusy {
		m.mu.Unlock()
		return BufferDescriptor{}, ErrBufferNotAvailable
	}
	if needInit {
		m.initialized = true
	}
	m.frameBusy = true
	m.outstanding = desc
	m.mu.Unlock()

	m.log.Trace().Uint32("buffer_id", desc.BufferID).Msg("providing display buffer")
	return desc, nil
}

// ReturnBuffer takes a frame back from the client and presents it. The
// descriptor must be the one issued by the last AcquireBuffer; anything
// else is an ErrInvalidArgument, and a return with no frame outstanding is
// an ErrBufferNotAvailable. Buffer bookkeeping clears even when the
// display is DEAD (the error still reports ErrOwnershipLost). A return in
// VISIBLE_ON_NEXT_FRAME advances the state to VISIBLE and shows the
// window; presentation happens only while VISIBLE. A return while
// NOT_VISIBLE is legal (the client may race the last in-flight frame
// against a hide request) and is logged, not presented.
func (m *StateMachine) ReturnBuffer(desc BufferDescriptor) error {
	if desc.Handle == nil {
		m.log.Error().Msg("buffer returned without a valid handle")
		return fmt.Errorf("%w: nil buffer handle", ErrInvalidArgument)
	}

	m.mu.Lock()
	if m.state == StateDead {
		// The buffer bookkeeping must still clear even though this
		// instance has been superseded.
		m.frameBusy = false
		m.outstanding = BufferDescriptor{}
		m.mu.Unlock()
		return ErrOwnershipLost
	}
	if m.frameBusy {
		if desc.BufferID != m.outstanding.BufferID {
			m.mu.Unlock()
			m.log.Error().Uint32("buffer_id", desc.BufferID).Msg("unrecognized frame returned")
			return fmt.Errorf("%w: buffer id %d is not the outstanding frame", ErrInvalidArgument, desc.BufferID)
		}
	} else {
		if !m.backend.ValidBufferID(desc.BufferID) {
			m.mu.Unlock()
			m.log.Error().Uint32("buffer_id", desc.BufferID).Msg("unrecognized frame returned")
			return fmt.Errorf("%w: buffer id %d was never issued", ErrInvalidArgument, desc.BufferID)
		}
		m.mu.Unlock()
		m.log.Error().Msg("frame returned with no outstanding frames")
		return ErrBufferNotAvailable
	}

	m.frameBusy = false
	m.outstanding = BufferDescriptor{}

	advance := m.state == StateVisibleOnNextFrame
	if advance {
		m.state = StateVisible
	}
	visible := m.state == StateVisible
	m.mu.Unlock()

	if advance {
		if err := m.backend.Show(); err != nil {
			m.log.Warn().Err(err).Msg("show failed on first frame")
		}
	}

	if !visible {
		m.log.Warn().Msg("frame returned while not visible, ignoring")
		return nil
	}

	if err := m.backend.Present(desc); err != nil {
		return err
	}
	m.log.Trace().Uint32("buffer_id", desc.BufferID).Msg("presented frame")
	return nil
}

// DisplayConfig reports the active mode and layer placement from the
// backend.
func (m *StateMachine) DisplayConfig() (Mode, StateInfo, error) {
	return m.backend.DisplayConfig()
}

// ForceShutdown revokes this instance's ownership of the display: it
// releases all buffers, tears the backend down and moves the state to
// DEAD. Idempotent, and safe to race against any in-flight client call;
// it is the teardown path for both signal handling and "client replaced".
func (m *StateMachine) ForceShutdown() {
	m.mu.Lock()
	if m.state == StateDead {
		m.mu.Unlock()
		return
	}
	if m.frameBusy {
		// The previous client never returned its buffer.
		m.log.Error().Uint32("buffer_id", m.outstanding.BufferID).
			Msg("display going down while client is holding a buffer")
	}
	m.frameBusy = false
	m.outstanding = BufferDescriptor{}
	m.state = StateDead
	wasInitialized := m.initialized
	m.initialized = false
	m.mu.Unlock()

	if wasInitialized {
		if err := m.backend.Hide(); err != nil {
			m.log.Warn().Err(err).Msg("hide failed during shutdown")
		}
	}
	m.backend.Teardown()
	m.log.Debug().Msg("display shut down")
}
