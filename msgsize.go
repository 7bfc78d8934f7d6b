package embxx

import (
	"errors"
	"fmt"

	"github.com/chris-vieira/embxx/wire"
)

// A MsgSizeLayer frames the inner layers' output with an explicit
// byte-count field.
//
// The field's value depends on bytes that do not exist yet when the
// field's position is reached, so Write reserves the field and
// patches it once the inner layers return. On a sink without
// in-place patching the reservation stays a placeholder and Write
// returns ErrUpdateRequired; the subsequent [Stack.Update] pass
// fills it in.
type MsgSizeLayer struct {
	layerBase
}

// NewMsgSizeLayer returns a size-framing layer. It consumes
// Traits.SizeFieldWidth and Traits.ExtraSizeValue.
func NewMsgSizeLayer(traits Traits, next Layer) (*MsgSizeLayer, error) {
	if err := checkFieldWidth("size field", traits.SizeFieldWidth); err != nil {
		return nil, err
	}
	if traits.ExtraSizeValue < 0 {
		return nil, fmt.Errorf("embxx: ExtraSizeValue must not be negative, got %d", traits.ExtraSizeValue)
	}
	if next == nil {
		return nil, errors.New("embxx: MsgSizeLayer requires a next layer")
	}
	return &MsgSizeLayer{layerBase{traits: traits, next: next}}, nil
}

// Read decodes the size field and delegates exactly the declared
// byte count inward.
func (l *MsgSizeLayer) Read(msg *MsgPtr, r *wire.Reader, size int) error {
	fw := l.traits.SizeFieldWidth
	if size < fw {
		return ErrNotEnoughData
	}
	declared, err := l.readField(r, fw)
	if err != nil {
		return err
	}
	inner := int(declared) - l.traits.ExtraSizeValue
	if inner < 0 || inner > size-fw || inner > r.Remaining() {
		return ErrNotEnoughData
	}
	return l.next.Read(msg, r, inner)
}

// Write reserves the size field, delegates the remaining capacity,
// and patches the field with the measured inner length plus
// ExtraSizeValue.
func (l *MsgSizeLayer) Write(msg Message, w wire.Writer, size int) error {
	fw := l.traits.SizeFieldWidth
	if size < fw {
		return ErrBufferOverflow
	}
	pos := w.Position()
	if err := l.writeField(w, 0, fw); err != nil {
		return err
	}

	err := l.next.Write(msg, w, size-fw)
	if err != nil && !errors.Is(err, ErrUpdateRequired) {
		return err
	}

	pw, ok := w.(wire.PatchWriter)
	if !ok {
		return ErrUpdateRequired
	}
	inner := w.Position() - pos - fw
	if perr := wire.PatchUint(pw, l.traits.order(), uint64(inner+l.traits.ExtraSizeValue), fw, pos); perr != nil {
		return perr
	}
	return err
}

// Update patches the size field of a finished frame. The declared
// value is the span past the field plus ExtraSizeValue, which matches
// the bytes the inner layers produced because an update pass runs
// over exact frame spans, not capacity budgets.
func (l *MsgSizeLayer) Update(b *wire.Buffer, pos, size int) error {
	fw := l.traits.SizeFieldWidth
	if size < fw {
		return ErrNotEnoughData
	}
	inner := size - fw
	if err := wire.PatchUint(b, l.traits.order(), uint64(inner+l.traits.ExtraSizeValue), fw, pos); err != nil {
		return err
	}
	return l.updateNext(b, pos+fw, inner)
}
