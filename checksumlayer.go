package embxx

import (
	"errors"
	"fmt"

	"github.com/chris-vieira/embxx/wire"
)

// A Checksum computes the integrity field appended by a
// ChecksumLayer. Implementations are injected, not part of the core;
// the checksum package provides the common ones.
type Checksum interface {
	// Sum computes the checksum of p. Only the low
	// ChecksumFieldWidth*8 bits are encoded on the wire.
	Sum(p []byte) uint64
}

// A ChecksumLayer appends an integrity field covering everything its
// inner layers produce, and verifies that field on read. The
// verification order is configurable: VerifyBefore rejects a corrupt
// frame before any message is allocated, VerifyAfter parses first and
// discards the message on mismatch.
//
// Like MsgSizeLayer, the field value depends on inner-layer output:
// on a sink without in-place patching Write leaves a placeholder and
// returns ErrUpdateRequired.
type ChecksumLayer struct {
	layerBase
	calc Checksum
}

// NewChecksumLayer returns a checksum layer using the given
// calculator. It consumes Traits.ChecksumFieldWidth and
// Traits.Verification.
func NewChecksumLayer(traits Traits, calc Checksum, next Layer) (*ChecksumLayer, error) {
	if err := checkFieldWidth("checksum field", traits.ChecksumFieldWidth); err != nil {
		return nil, err
	}
	if calc == nil {
		return nil, errors.New("embxx: ChecksumLayer requires a checksum calculator")
	}
	switch traits.Verification {
	case VerifyBefore, VerifyAfter:
	default:
		return nil, fmt.Errorf("embxx: unknown checksum verification order %d", traits.Verification)
	}
	if next == nil {
		return nil, errors.New("embxx: ChecksumLayer requires a next layer")
	}
	return &ChecksumLayer{layerBase{traits: traits, next: next}, calc}, nil
}

func (l *ChecksumLayer) sum(p []byte) uint64 {
	return l.calc.Sum(p) & fieldMask(l.traits.ChecksumFieldWidth)
}

// Read verifies the trailing checksum field over the preceding span
// and delegates the span inward, in the configured order.
func (l *ChecksumLayer) Read(msg *MsgPtr, r *wire.Reader, size int) error {
	fw := l.traits.ChecksumFieldWidth
	if size < fw {
		return ErrNotEnoughData
	}
	inner := size - fw

	body, err := r.Peek(inner)
	if err != nil {
		return ErrNotEnoughData
	}
	field, err := r.PeekAt(inner, fw)
	if err != nil {
		return ErrNotEnoughData
	}
	want := l.traits.order().UintN(field, fw)

	if l.traits.Verification == VerifyBefore {
		if got := l.sum(body); got != want {
			return fmt.Errorf("%w: computed 0x%x, field holds 0x%x", ErrChecksumMismatch, got, want)
		}
	}

	start := r.Position()
	if err := l.next.Read(msg, r, inner); err != nil {
		return err
	}

	if l.traits.Verification == VerifyAfter {
		if got := l.sum(body); got != want {
			msg.Release()
			return fmt.Errorf("%w: computed 0x%x, field holds 0x%x", ErrChecksumMismatch, got, want)
		}
	}

	// Consume any inner slack plus the checksum field itself, so the
	// reader lands on the byte after this layer's span.
	if err := r.Skip(start + inner + fw - r.Position()); err != nil {
		msg.Release()
		return ErrNotEnoughData
	}
	return nil
}

// Write delegates first, then appends the checksum of the bytes the
// inner layers just produced.
func (l *ChecksumLayer) Write(msg Message, w wire.Writer, size int) error {
	fw := l.traits.ChecksumFieldWidth
	if size < fw {
		return ErrBufferOverflow
	}

	start := w.Position()
	err := l.next.Write(msg, w, size-fw)
	if err != nil && !errors.Is(err, ErrUpdateRequired) {
		return err
	}

	pw, ok := w.(wire.PatchWriter)
	if !ok {
		// Reserve the field so the update pass finds room to patch.
		if werr := l.writeField(w, 0, fw); werr != nil {
			return werr
		}
		return ErrUpdateRequired
	}

	sum := l.sum(pw.Bytes()[start:w.Position()])
	if werr := l.writeField(w, sum, fw); werr != nil {
		return werr
	}
	return err
}

// Update patches the checksum field of a finished frame, after
// forwarding the pass so that inner reserved fields are patched
// before the protected span is summed.
func (l *ChecksumLayer) Update(b *wire.Buffer, pos, size int) error {
	fw := l.traits.ChecksumFieldWidth
	if size < fw {
		return ErrNotEnoughData
	}
	inner := size - fw
	if pos < 0 || pos+size > b.Position() {
		return ErrNotEnoughData
	}
	if err := l.updateNext(b, pos, inner); err != nil {
		return err
	}
	sum := l.sum(b.Bytes()[pos : pos+inner])
	return wire.PatchUint(b, l.traits.order(), sum, fw, pos+inner)
}
