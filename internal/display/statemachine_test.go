package display

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/evsd/pkg/gralloc"
)

// fakeBackend is a func-field test double with call tracking.
type fakeBackend struct {
	mu sync.Mutex

	InitializeFunc func(ctx context.Context) error
	NextBufferFunc func() (BufferDescriptor, error)
	PresentFunc    func(desc BufferDescriptor) error

	InitializeCalls int
	ShowCalls       int
	HideCalls       int
	TeardownCalls   int
	Presented       []uint32
}

func newFakeBackend() *fakeBackend {
	handle := &gralloc.Buffer{ID: 1, Width: 1280, Height: 720}
	return &fakeBackend{
		NextBufferFunc: func() (BufferDescriptor, error) {
			return BufferDescriptor{
				Width:    1280,
				Height:   720,
				BufferID: renderTargetBufferID,
				Handle:   handle,
			}, nil
		},
	}
}

func (f *fakeBackend) Initialize(ctx context.Context) error {
	f.mu.Lock()
	f.InitializeCalls++
	f.mu.Unlock()
	if f.InitializeFunc != nil {
		return f.InitializeFunc(ctx)
	}
	return nil
}

func (f *fakeBackend) NextBuffer() (BufferDescriptor, error) {
	return f.NextBufferFunc()
}

func (f *fakeBackend) ValidBufferID(id uint32) bool {
	return id == renderTargetBufferID
}

func (f *fakeBackend) Present(desc BufferDescriptor) error {
	f.mu.Lock()
	f.Presented = append(f.Presented, desc.BufferID)
	f.mu.Unlock()
	if f.PresentFunc != nil {
		return f.PresentFunc(desc)
	}
	return nil
}

func (f *fakeBackend) Show() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ShowCalls++
	return nil
}

func (f *fakeBackend) Hide() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.HideCalls++
	return nil
}

func (f *fakeBackend) DisplayConfig() (Mode, StateInfo, error) {
	return Mode{Width: 1280, Height: 720, RefreshRate: 60}, StateInfo{}, nil
}

func (f *fakeBackend) Teardown() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TeardownCalls++
}

func newTestStateMachine(t *testing.T) (*StateMachine, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	return NewStateMachine(backend, zerolog.Nop()), backend
}

func TestStateMachine_StartsNotVisible(t *testing.T) {
	sm, _ := newTestStateMachine(t)
	assert.Equal(t, StateNotVisible, sm.State())
}

func TestStateMachine_SetState(t *testing.T) {
	sm, backend := newTestStateMachine(t)

	require.NoError(t, sm.SetState(StateVisibleOnNextFrame))
	assert.Equal(t, StateVisibleOnNextFrame, sm.State())

	// VISIBLE forwards a show to the backend
	require.NoError(t, sm.SetState(StateVisible))
	assert.Equal(t, 1, backend.ShowCalls)

	// no-op transition is accepted
	require.NoError(t, sm.SetState(StateVisible))

	// NOT_VISIBLE forwards a hide
	require.NoError(t, sm.SetState(StateNotVisible))
	assert.Equal(t, 1, backend.HideCalls)
}

func TestStateMachine_SetStateOutOfRange(t *testing.T) {
	sm, _ := newTestStateMachine(t)
	require.NoError(t, sm.SetState(StateVisible))

	err := sm.SetState(State(99))
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, StateVisible, sm.State(), "failed request must leave state unchanged")
}

func TestStateMachine_AcquireReturnCycle(t *testing.T) {
	sm, backend := newTestStateMachine(t)
	ctx := context.Background()

	desc, err := sm.AcquireBuffer(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(renderTargetBufferID), desc.BufferID)
	assert.Equal(t, 1, backend.InitializeCalls, "backend initializes lazily on first acquire")

	require.NoError(t, sm.ReturnBuffer(desc))

	// second cycle reuses the initialized backend
	_, err = sm.AcquireBuffer(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.InitializeCalls)
}

func TestStateMachine_DoubleAcquireRejected(t *testing.T) {
	sm, _ := newTestStateMachine(t)
	ctx := context.Background()

	_, err := sm.AcquireBuffer(ctx)
	require.NoError(t, err)

	_, err = sm.AcquireBuffer(ctx)
	require.ErrorIs(t, err, ErrBufferNotAvailable)
}

func TestStateMachine_ReturnUnknownBufferID(t *testing.T) {
	sm, _ := newTestStateMachine(t)
	ctx := context.Background()

	desc, err := sm.AcquireBuffer(ctx)
	require.NoError(t, err)

	bogus := desc
	bogus.BufferID = desc.BufferID + 1
	require.ErrorIs(t, sm.ReturnBuffer(bogus), ErrInvalidArgument)

	// the issued descriptor is still returnable
	require.NoError(t, sm.ReturnBuffer(desc))
}

func TestStateMachine_ReturnNilHandle(t *testing.T) {
	sm, _ := newTestStateMachine(t)
	err := sm.ReturnBuffer(BufferDescriptor{BufferID: renderTargetBufferID})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestStateMachine_DoubleReturn(t *testing.T) {
	sm, _ := newTestStateMachine(t)
	ctx := context.Background()

	desc, err := sm.AcquireBuffer(ctx)
	require.NoError(t, err)
	require.NoError(t, sm.ReturnBuffer(desc))

	require.ErrorIs(t, sm.ReturnBuffer(desc), ErrBufferNotAvailable)
}

func TestStateMachine_VisibleOnNextFrameAdvances(t *testing.T) {
	sm, backend := newTestStateMachine(t)
	ctx := context.Background()

	require.NoError(t, sm.SetState(StateVisibleOnNextFrame))

	desc, err := sm.AcquireBuffer(ctx)
	require.NoError(t, err)
	require.NoError(t, sm.ReturnBuffer(desc))

	assert.Equal(t, StateVisible, sm.State())
	assert.Equal(t, 1, backend.ShowCalls, "first returned frame shows the window")
	assert.Equal(t, []uint32{renderTargetBufferID}, backend.Presented)

	// a second cycle while already VISIBLE must not show again
	desc, err = sm.AcquireBuffer(ctx)
	require.NoError(t, err)
	require.NoError(t, sm.ReturnBuffer(desc))
	assert.Equal(t, 1, backend.ShowCalls)
	assert.Len(t, backend.Presented, 2)
}

func TestStateMachine_ReturnWhileNotVisible(t *testing.T) {
	sm, backend := newTestStateMachine(t)
	ctx := context.Background()

	desc, err := sm.AcquireBuffer(ctx)
	require.NoError(t, err)

	// accepted, but the frame is not presented
	require.NoError(t, sm.ReturnBuffer(desc))
	assert.Empty(t, backend.Presented)
	assert.Equal(t, StateNotVisible, sm.State())
}

func TestStateMachine_PresentFailure(t *testing.T) {
	sm, backend := newTestStateMachine(t)
	backend.PresentFunc = func(BufferDescriptor) error {
		return assert.AnError
	}
	ctx := context.Background()

	require.NoError(t, sm.SetState(StateVisible))
	desc, err := sm.AcquireBuffer(ctx)
	require.NoError(t, err)

	require.Error(t, sm.ReturnBuffer(desc))

	// the frame bookkeeping cleared, the client can acquire again
	_, err = sm.AcquireBuffer(ctx)
	require.NoError(t, err)
}

func TestStateMachine_ForceShutdown(t *testing.T) {
	sm, backend := newTestStateMachine(t)
	ctx := context.Background()

	desc, err := sm.AcquireBuffer(ctx)
	require.NoError(t, err)

	sm.ForceShutdown()
	assert.Equal(t, StateDead, sm.State())
	assert.Equal(t, 1, backend.TeardownCalls)

	// every subsequent operation reports lost ownership
	require.ErrorIs(t, sm.SetState(StateVisible), ErrOwnershipLost)
	_, err = sm.AcquireBuffer(ctx)
	require.ErrorIs(t, err, ErrOwnershipLost)
	require.ErrorIs(t, sm.ReturnBuffer(desc), ErrOwnershipLost)
}

func TestStateMachine_ForceShutdownIdempotent(t *testing.T) {
	sm, backend := newTestStateMachine(t)
	ctx := context.Background()

	_, err := sm.AcquireBuffer(ctx)
	require.NoError(t, err)

	sm.ForceShutdown()
	sm.ForceShutdown()

	assert.Equal(t, StateDead, sm.State())
	assert.Equal(t, 1, backend.TeardownCalls, "second shutdown must not tear down again")
}

func TestStateMachine_ReturnAfterShutdownClearsBookkeeping(t *testing.T) {
	sm, _ := newTestStateMachine(t)
	ctx := context.Background()

	desc, err := sm.AcquireBuffer(ctx)
	require.NoError(t, err)

	sm.ForceShutdown()

	// the return still reports lost ownership but must clear the busy
	// flag so teardown accounting stays consistent
	require.ErrorIs(t, sm.ReturnBuffer(desc), ErrOwnershipLost)
	require.ErrorIs(t, sm.ReturnBuffer(desc), ErrOwnershipLost)
}

func TestStateMachine_ShutdownRacesInitialization(t *testing.T) {
	sm, backend := newTestStateMachine(t)

	initStarted := make(chan struct{})
	release := make(chan struct{})
	backend.InitializeFunc = func(ctx context.Context) error {
		close(initStarted)
		<-release
		return nil
	}

	errCh := make(chan error, 1)
	go func() {
		_, err := sm.AcquireBuffer(context.Background())
		errCh <- err
	}()

	<-initStarted
	go func() {
		sm.ForceShutdown()
		close(release)
	}()

	err := <-errCh
	require.ErrorIs(t, err, ErrOwnershipLost)
	assert.Equal(t, StateDead, sm.State())

	// the acquire path tears down the backend it initialized after losing
	// the race, in addition to the shutdown's own teardown
	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, 2, backend.TeardownCalls)
}

func TestStateMachine_InitializationFailure(t *testing.T) {
	sm, backend := newTestStateMachine(t)
	backend.InitializeFunc = func(ctx context.Context) error {
		return ErrAllocationFailed
	}
	ctx := context.Background()

	_, err := sm.AcquireBuffer(ctx)
	require.ErrorIs(t, err, ErrAllocationFailed)

	// a later acquire retries initialization
	backend.InitializeFunc = nil
	_, err = sm.AcquireBuffer(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.InitializeCalls)
}
