package display

import "errors"

// Error taxonomy of the display core. All failures surface as one of these
// sentinels (possibly wrapped); none of them are process-fatal. Match with
// errors.Is.
var (
	// ErrOwnershipLost means another owner superseded this display
	// instance. Every call on a DEAD instance fails with it; there is no
	// recovery for this instance.
	ErrOwnershipLost = errors.New("display ownership lost")

	// ErrInvalidArgument is a malformed client request: unknown state
	// value, nil handle, or a buffer id that was never issued.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBufferNotAvailable is a buffer protocol violation: acquiring
	// while a frame is outstanding, or returning when none is.
	ErrBufferNotAvailable = errors.New("buffer not available")

	// ErrAllocationFailed means the native allocator could not satisfy a
	// buffer request.
	ErrAllocationFailed = errors.New("buffer allocation failed")

	// ErrBackend means the underlying present or render call failed.
	ErrBackend = errors.New("presentation backend error")
)
