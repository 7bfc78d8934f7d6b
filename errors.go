package embxx

import "errors"

// The closed set of protocol outcomes. Layer operations return nil on
// success or exactly one of these values, possibly wrapped with
// context. Match with [errors.Is].
var (
	// ErrNotEnoughData reports input shorter than a field or frame
	// requires. The caller may retry the read from the original
	// position once more bytes have arrived.
	ErrNotEnoughData = errors.New("embxx: not enough data")

	// ErrBufferOverflow reports output capacity too small for a field
	// or frame.
	ErrBufferOverflow = errors.New("embxx: buffer overflow")

	// ErrInvalidMsgID reports an ID field matching no registered
	// message type.
	ErrInvalidMsgID = errors.New("embxx: no message registered for ID")

	// ErrMsgAllocFailure reports that the allocator could not produce
	// a message object, typically because an in-place slot is still
	// occupied.
	ErrMsgAllocFailure = errors.New("embxx: message allocation failed")

	// ErrSyncMismatch reports bytes that do not match the expected
	// synchronization marker.
	ErrSyncMismatch = errors.New("embxx: sync prefix mismatch")

	// ErrChecksumMismatch reports a frame whose checksum field does
	// not match the protected bytes.
	ErrChecksumMismatch = errors.New("embxx: checksum mismatch")

	// ErrInvalidMsgData reports a message body the message's own
	// codec could not accept.
	ErrInvalidMsgData = errors.New("embxx: invalid message body")

	// ErrUpdateRequired is not a failure. A Write returning it has
	// produced a complete frame whose reserved envelope fields still
	// hold placeholders, because the sink cannot be patched in place.
	// The caller must run [Stack.Update] over the finished frame
	// before using it.
	ErrUpdateRequired = errors.New("embxx: update pass required")
)
