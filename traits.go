package embxx

import (
	"fmt"

	"github.com/chris-vieira/embxx/wire"
)

// VerifyOrder selects when a ChecksumLayer verifies during read.
type VerifyOrder int

const (
	// VerifyBefore checks the checksum before any inner layer runs,
	// so a corrupt frame is rejected before a message is allocated.
	VerifyBefore VerifyOrder = iota
	// VerifyAfter runs the inner layers first and verifies only if
	// they succeed. On mismatch the already-built message is
	// discarded before the error is returned.
	VerifyAfter
)

// Traits is the construction-time configuration shared by the layers
// of one stack: byte order and the widths of the envelope fields.
// Only the fields consumed by the layers actually composed need to be
// set; each layer constructor validates its own.
type Traits struct {
	// Order is the byte order of every envelope field. A nil Order
	// means big-endian, the usual network order on embedded links.
	Order wire.ByteOrder

	// IDFieldWidth is the width in bytes of the message ID field.
	IDFieldWidth int

	// SizeFieldWidth is the width in bytes of the size field.
	SizeFieldWidth int

	// ExtraSizeValue is added to the measured inner length before the
	// size field is encoded, and subtracted symmetrically on read. It
	// accounts for envelope bytes written outside the size layer that
	// the field must still cover, such as a trailing checksum.
	ExtraSizeValue int

	// ChecksumFieldWidth is the width in bytes of the checksum field.
	ChecksumFieldWidth int

	// Verification selects when the checksum is verified during read.
	Verification VerifyOrder

	// SyncPrefixWidth is the width in bytes of the sync marker.
	SyncPrefixWidth int
}

func (t Traits) order() wire.ByteOrder {
	if t.Order == nil {
		return wire.BigEndian
	}
	return t.Order
}

func checkFieldWidth(name string, w int) error {
	if w < 1 || w > 8 {
		return fmt.Errorf("embxx: %s width must be 1 to 8 bytes, got %d", name, w)
	}
	return nil
}

// fieldMask returns the value mask of a width-byte unsigned field.
func fieldMask(width int) uint64 {
	if width >= 8 {
		return ^uint64(0)
	}
	return 1<<(8*width) - 1
}
