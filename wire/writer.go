package wire

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrShortWrite is the error returned when a write would exceed the
// sink's capacity. Writes are all-or-nothing: a failed write leaves
// the sink unchanged.
var ErrShortWrite = errors.New("wire: sink capacity exhausted")

// A Writer is a sequential sink for encoded frames.
type Writer interface {
	// Remaining reports how many more bytes the sink can accept.
	Remaining() int
	// Position reports the number of bytes written so far.
	Position() int
	// Write appends p to the sink, failing with [ErrShortWrite] if
	// the remaining capacity is smaller than len(p).
	Write(p []byte) error
}

// A PatchWriter is a Writer whose already-written content can be read
// back and overwritten in place. Layers that reserve an envelope
// field and fill it in once inner layers have run need this
// capability; given a plain Writer they request a second update pass
// over the finished frame instead.
type PatchWriter interface {
	Writer

	// Bytes returns the content written so far. The slice aliases the
	// sink's storage.
	Bytes() []byte
	// WriteAt overwrites len(p) bytes at pos. The target range must
	// lie entirely within the content written so far.
	WriteAt(p []byte, pos int) error
}

// A Buffer is a fixed-capacity random-access sink. It supports the
// reserve-then-patch discipline directly, so frames written through a
// Buffer never need an update pass.
type Buffer struct {
	buf []byte
}

// NewBuffer returns an empty Buffer that can hold capacity bytes.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Wrap returns an empty Buffer writing into storage, up to
// cap(storage) bytes. It performs no allocation of its own, which
// suits fixed preallocated transmit buffers.
func Wrap(storage []byte) *Buffer {
	return &Buffer{buf: storage[:0]}
}

// View returns a Buffer over an already-finished frame, with all of
// frame counted as written and no room to append. It is the
// random-access view handed to an update pass.
func View(frame []byte) *Buffer {
	return &Buffer{buf: frame[:len(frame):len(frame)]}
}

// Remaining reports the unused capacity.
func (b *Buffer) Remaining() int { return cap(b.buf) - len(b.buf) }

// Position reports the number of bytes written so far.
func (b *Buffer) Position() int { return len(b.buf) }

// Write appends p, failing with [ErrShortWrite] if p does not fit.
func (b *Buffer) Write(p []byte) error {
	if b.Remaining() < len(p) {
		return ErrShortWrite
	}
	b.buf = append(b.buf, p...)
	return nil
}

// Bytes returns the written content. The slice aliases the buffer's
// storage.
func (b *Buffer) Bytes() []byte { return b.buf }

// WriteAt overwrites len(p) bytes at pos within the written content.
func (b *Buffer) WriteAt(p []byte, pos int) error {
	if pos < 0 || pos+len(p) > len(b.buf) {
		return fmt.Errorf("wire: patch of %d bytes at %d outside written range [0,%d)", len(p), pos, len(b.buf))
	}
	copy(b.buf[pos:], p)
	return nil
}

// An AppendWriter adapts an append-only io.Writer into a sink.
// It cannot patch previously written bytes, so layers that reserve
// envelope fields leave zero placeholders behind and the caller must
// run the stack's update pass over the finished frame.
type AppendWriter struct {
	w     io.Writer
	limit int
	pos   int
}

// NewAppendWriter returns an AppendWriter emitting to w with the
// given capacity budget. A negative capacity means unlimited.
func NewAppendWriter(w io.Writer, capacity int) *AppendWriter {
	if capacity < 0 {
		capacity = math.MaxInt
	}
	return &AppendWriter{w: w, limit: capacity}
}

// Remaining reports the capacity budget left.
func (a *AppendWriter) Remaining() int { return a.limit - a.pos }

// Position reports the number of bytes written so far.
func (a *AppendWriter) Position() int { return a.pos }

// Write appends p, failing with [ErrShortWrite] if the budget is
// exhausted, or with the underlying writer's error.
func (a *AppendWriter) Write(p []byte) error {
	if a.Remaining() < len(p) {
		return ErrShortWrite
	}
	n, err := a.w.Write(p)
	a.pos += n
	if err != nil {
		return fmt.Errorf("wire: append sink: %w", err)
	}
	if n != len(p) {
		return fmt.Errorf("wire: append sink: %w", io.ErrShortWrite)
	}
	return nil
}

// PutUint writes an n-byte unsigned field encoded in the given order.
func PutUint(w Writer, order ByteOrder, v uint64, n int) error {
	var tmp [8]byte
	order.PutUintN(tmp[:], v, n)
	return w.Write(tmp[:n])
}

// PatchUint overwrites an n-byte unsigned field at pos.
func PatchUint(w PatchWriter, order ByteOrder, v uint64, n int, pos int) error {
	var tmp [8]byte
	order.PutUintN(tmp[:], v, n)
	return w.WriteAt(tmp[:n], pos)
}
