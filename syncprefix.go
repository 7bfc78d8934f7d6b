package embxx

import (
	"errors"
	"fmt"

	"github.com/chris-vieira/embxx/wire"
)

// A SyncPrefixLayer frames messages with a fixed marker so a receiver
// can resynchronize on a byte stream. The expected marker value is a
// construction parameter rather than a trait: it belongs to the
// deployed link, not to the wire-format type.
type SyncPrefixLayer struct {
	layerBase
	marker uint64
}

// NewSyncPrefixLayer returns a sync-marker layer expecting the given
// marker value. It consumes Traits.SyncPrefixWidth.
func NewSyncPrefixLayer(traits Traits, marker uint64, next Layer) (*SyncPrefixLayer, error) {
	if err := checkFieldWidth("sync prefix", traits.SyncPrefixWidth); err != nil {
		return nil, err
	}
	if marker&^fieldMask(traits.SyncPrefixWidth) != 0 {
		return nil, fmt.Errorf("embxx: sync marker 0x%x does not fit in a %d-byte field", marker, traits.SyncPrefixWidth)
	}
	if next == nil {
		return nil, errors.New("embxx: SyncPrefixLayer requires a next layer")
	}
	return &SyncPrefixLayer{layerBase{traits: traits, next: next}, marker}, nil
}

// Marker returns the configured marker value.
func (l *SyncPrefixLayer) Marker() uint64 { return l.marker }

// Read checks the marker and delegates the remainder. On mismatch it
// consumes nothing, so the caller can advance one byte and retry to
// resynchronize.
func (l *SyncPrefixLayer) Read(msg *MsgPtr, r *wire.Reader, size int) error {
	fw := l.traits.SyncPrefixWidth
	if size < fw {
		return ErrNotEnoughData
	}
	got, err := r.Peek(fw)
	if err != nil {
		return ErrNotEnoughData
	}
	if v := l.traits.order().UintN(got, fw); v != l.marker {
		return fmt.Errorf("%w: want 0x%x, got 0x%x", ErrSyncMismatch, l.marker, v)
	}
	if err := r.Skip(fw); err != nil {
		return ErrNotEnoughData
	}
	return l.next.Read(msg, r, size-fw)
}

// Write emits the marker and delegates the remaining capacity.
func (l *SyncPrefixLayer) Write(msg Message, w wire.Writer, size int) error {
	fw := l.traits.SyncPrefixWidth
	if size < fw {
		return ErrBufferOverflow
	}
	if err := l.writeField(w, l.marker, fw); err != nil {
		return err
	}
	return l.next.Write(msg, w, size-fw)
}

// Update forwards the pass over the marker; the marker itself never
// needs patching.
func (l *SyncPrefixLayer) Update(b *wire.Buffer, pos, size int) error {
	fw := l.traits.SyncPrefixWidth
	if size < fw {
		return ErrNotEnoughData
	}
	return l.updateNext(b, pos+fw, size-fw)
}
