package wire_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/chris-vieira/embxx/wire"
)

func TestReaderSequential(t *testing.T) {
	r := wire.NewReader([]byte{1, 2, 3, 4, 5})

	if got := r.Remaining(); got != 5 {
		t.Errorf("Remaining = %d, want 5", got)
	}

	bs, err := r.Read(2)
	if err != nil {
		t.Fatalf("Read(2): %v", err)
	}
	if !bytes.Equal(bs, []byte{1, 2}) {
		t.Errorf("Read(2) = %x, want 0102", bs)
	}
	if got := r.Position(); got != 2 {
		t.Errorf("Position = %d, want 2", got)
	}

	if err := r.Skip(1); err != nil {
		t.Fatalf("Skip(1): %v", err)
	}
	if got := r.Remaining(); got != 2 {
		t.Errorf("Remaining = %d, want 2", got)
	}

	if _, err := r.Read(3); !errors.Is(err, wire.ErrShortRead) {
		t.Errorf("Read past end = %v, want ErrShortRead", err)
	}
	// A failed read consumes nothing.
	if got := r.Position(); got != 3 {
		t.Errorf("Position after failed read = %d, want 3", got)
	}
}

func TestReaderPeek(t *testing.T) {
	r := wire.NewReader([]byte{1, 2, 3, 4})

	bs, err := r.Peek(2)
	if err != nil {
		t.Fatalf("Peek(2): %v", err)
	}
	if !bytes.Equal(bs, []byte{1, 2}) {
		t.Errorf("Peek(2) = %x, want 0102", bs)
	}
	if got := r.Position(); got != 0 {
		t.Errorf("Peek consumed bytes, position = %d", got)
	}

	bs, err = r.PeekAt(2, 2)
	if err != nil {
		t.Fatalf("PeekAt(2, 2): %v", err)
	}
	if !bytes.Equal(bs, []byte{3, 4}) {
		t.Errorf("PeekAt(2, 2) = %x, want 0304", bs)
	}

	if _, err := r.PeekAt(3, 2); !errors.Is(err, wire.ErrShortRead) {
		t.Errorf("PeekAt past end = %v, want ErrShortRead", err)
	}
}

func TestReaderUint(t *testing.T) {
	r := wire.NewReader([]byte{0x12, 0x34, 0x56})

	v, err := r.Uint(wire.BigEndian, 2)
	if err != nil {
		t.Fatalf("Uint: %v", err)
	}
	if v != 0x1234 {
		t.Errorf("Uint = %#x, want 0x1234", v)
	}

	if _, err := r.Uint(wire.BigEndian, 2); !errors.Is(err, wire.ErrShortRead) {
		t.Errorf("Uint past end = %v, want ErrShortRead", err)
	}
	// The failed field read left the remaining byte in place.
	if got := r.Remaining(); got != 1 {
		t.Errorf("Remaining = %d, want 1", got)
	}
}
