package wire

import (
	"errors"
	"fmt"
)

// ErrShortRead is the error returned when a read would run off the
// end of the source. Protocol layers translate it into their own
// error taxonomy.
var ErrShortRead = errors.New("wire: not enough bytes in source")

// A Reader is a bounded sequential source over a byte slice.
//
// Methods never read past the end of the slice; a read that would do
// so fails with [ErrShortRead] and leaves the position unchanged, so
// that a failed parse can be retried from its original position once
// more bytes have arrived.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader consuming data. The reader aliases data
// rather than copying it.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining reports the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Position reports the number of bytes consumed so far.
func (r *Reader) Position() int { return r.pos }

// Read consumes and returns the next n bytes. The returned slice
// aliases the reader's backing array and is only valid until the
// backing array is reused.
func (r *Reader) Read(n int) ([]byte, error) {
	bs, err := r.Peek(n)
	if err != nil {
		return nil, err
	}
	r.pos += n
	return bs, nil
}

// Peek returns the next n bytes without consuming them.
func (r *Reader) Peek(n int) ([]byte, error) {
	return r.PeekAt(0, n)
}

// PeekAt returns n bytes starting off bytes past the current
// position, without consuming anything. Layers use it to inspect
// trailing envelope fields before the bytes they protect.
func (r *Reader) PeekAt(off, n int) ([]byte, error) {
	if off < 0 || n < 0 {
		return nil, fmt.Errorf("wire: negative peek (off=%d, n=%d)", off, n)
	}
	if r.Remaining() < off+n {
		return nil, ErrShortRead
	}
	return r.data[r.pos+off : r.pos+off+n], nil
}

// Skip consumes n bytes without returning them.
func (r *Reader) Skip(n int) error {
	_, err := r.Read(n)
	return err
}

// Uint consumes an n-byte unsigned field encoded in the given order.
func (r *Reader) Uint(order ByteOrder, n int) (uint64, error) {
	bs, err := r.Read(n)
	if err != nil {
		return 0, err
	}
	return order.UintN(bs, n), nil
}
