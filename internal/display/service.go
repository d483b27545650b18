package display

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// EventRecorder receives display lifecycle events for post-mortem
// diagnosis. Recording must never block the display path; implementations
// queue internally.
type EventRecorder interface {
	Record(kind, detail string)
}

type nopRecorder struct{}

func (nopRecorder) Record(string, string) {}

// Service is the client-facing surface of the display core. It owns the
// immutable self-description and forwards the buffer and state operations
// to the state machine, journaling lifecycle events as they happen.
//
// The wire encoding that carries these operations to the remote client
// lives outside this package.
type Service struct {
	info     Info
	sm       *StateMachine
	recorder EventRecorder
	log      zerolog.Logger
}

// ServiceName returns the service identifier used for logging and
// registration.
func (s *Service) ServiceName() string { return "DisplayService" }

// NewService builds the facade over a state machine. recorder may be nil.
func NewService(info Info, sm *StateMachine, recorder EventRecorder, log zerolog.Logger) *Service {
	if info.DisplayID == "" {
		info.DisplayID = DefaultDisplayID
	}
	if info.VendorFlags == 0 {
		info.VendorFlags = DefaultVendorFlags
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{
		info:     info,
		sm:       sm,
		recorder: recorder,
		log:      log.With().Str("component", "display_service").Logger(),
	}
}

// DisplayInfo returns the immutable self-description.
func (s *Service) DisplayInfo() Info { return s.info }

// SetDisplayState forwards the client's requested state.
func (s *Service) SetDisplayState(state State) error {
	err := s.sm.SetState(state)
	switch {
	case err == nil:
		s.recorder.Record("state_change", state.String())
	case errors.Is(err, ErrOwnershipLost):
		s.recorder.Record("rejected_after_revocation", state.String())
	}
	return err
}

// DisplayState returns the current state.
func (s *Service) DisplayState() State { return s.sm.State() }

// AcquireTargetBuffer hands the next frame buffer to the client. On
// rejection the returned descriptor is the zero value: the calling
// convention requires a descriptor even on failure, so callers marshal
// the empty one alongside the error.
func (s *Service) AcquireTargetBuffer(ctx context.Context) (BufferDescriptor, error) {
	desc, err := s.sm.AcquireBuffer(ctx)
	if err != nil {
		if errors.Is(err, ErrAllocationFailed) {
			s.recorder.Record("allocation_failed", err.Error())
		}
		return BufferDescriptor{}, err
	}
	return desc, nil
}

// ReturnTargetBuffer takes the frame back and presents it.
func (s *Service) ReturnTargetBuffer(desc BufferDescriptor) error {
	return s.sm.ReturnBuffer(desc)
}

// DisplayConfig reports the active mode and layer placement.
func (s *Service) DisplayConfig() (Mode, StateInfo, error) {
	return s.sm.DisplayConfig()
}

// ForceShutdown revokes this instance's display ownership. Called when a
// new owner supersedes it and from the process teardown path.
func (s *Service) ForceShutdown() {
	s.sm.ForceShutdown()
	s.recorder.Record("ownership_revoked", s.info.DisplayID)
}
