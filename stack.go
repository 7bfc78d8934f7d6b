package embxx

import (
	"errors"

	"github.com/chris-vieira/embxx/wire"
)

// A Stack is a fixed composition of protocol layers, outermost first.
// Its Read, Write and Update methods are the only entry points a
// caller needs; the composition itself is decided once, at
// construction.
//
// One Stack, and the Allocator its MsgIdLayer owns, must not be
// driven from multiple goroutines without external locking. Distinct
// stacks over distinct buffers are independent.
type Stack struct {
	top Layer
}

// NewStack returns a stack whose outermost layer is top.
func NewStack(top Layer) (*Stack, error) {
	if top == nil {
		return nil, errors.New("embxx: stack requires an outermost layer")
	}
	return &Stack{top: top}, nil
}

// Read decodes one message from the first size bytes of r. On
// success msg holds the decoded message and ownership passes to the
// caller; on any error msg is empty. A failed read must be retried
// from the original reader position, not resumed mid-field.
func (s *Stack) Read(msg *MsgPtr, r *wire.Reader, size int) error {
	if !msg.Empty() {
		return errors.New("embxx: Read requires an empty message handle")
	}
	if size < 0 || size > r.Remaining() {
		return ErrNotEnoughData
	}
	return s.top.Read(msg, r, size)
}

// Write encodes msg into at most size bytes of w. A nil return means
// the frame is complete. ErrUpdateRequired means every frame byte was
// written but reserved envelope fields still hold placeholders; the
// caller must pass the finished frame to Update before using it. Any
// other error leaves the sink's content unspecified and it must be
// discarded.
func (s *Stack) Write(msg Message, w wire.Writer, size int) error {
	if size < 0 || size > w.Remaining() {
		return ErrBufferOverflow
	}
	return s.top.Write(msg, w, size)
}

// Update patches the reserved envelope fields of a finished frame of
// size bytes in place. It is mandatory after a Write that returned
// ErrUpdateRequired, and a no-op for stacks with no reserved fields.
func (s *Stack) Update(b *wire.Buffer, size int) error {
	if size < 0 || size > b.Position() {
		return ErrNotEnoughData
	}
	u, ok := s.top.(Updater)
	if !ok {
		return nil
	}
	return u.Update(b, 0, size)
}
