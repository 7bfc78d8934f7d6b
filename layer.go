package embxx

import "github.com/chris-vieira/embxx/wire"

// A Layer implements one stage of a protocol stack. Each layer owns
// one envelope field (or, for the terminal [MsgDataLayer], the
// message body itself), consumes or emits that field, and delegates
// the remaining byte budget to the next inner layer.
//
// The size argument is a budget: a layer never touches more than size
// bytes, and the amount of budget it delegates inward is exactly the
// budget minus its own field width. Budgets are validated outermost
// first, so when several layers' fields cannot fit it is the
// outermost violation that is reported.
//
// Composition is fixed at construction time. Layers hold no per-
// message state, but a stack's layers share its Allocator, so one
// stack must not be driven from multiple goroutines at once.
type Layer interface {
	// Read decodes the layer's field from r and delegates the rest of
	// the budget inward. On success msg holds the decoded message; on
	// any error msg is left, or reset to, empty.
	Read(msg *MsgPtr, r *wire.Reader, size int) error

	// Write encodes msg through this layer into w.
	Write(msg Message, w wire.Writer, size int) error
}

// An Updater is a layer whose frames may need a second pass after
// writing: its own envelope field, or an inner layer's, is patched
// only once the bytes it covers exist. Update re-walks a finished
// frame through a random-access view and fills in every reserved
// field.
//
// The terminal data layer is not an Updater; forwarding layers skip
// the remaining span when their next layer does not implement it.
type Updater interface {
	// Update patches reserved fields within the frame span
	// [pos, pos+size) of b.
	Update(b *wire.Buffer, pos, size int) error
}

// layerBase carries what every concrete layer shares: the stack
// traits and the next inner layer.
type layerBase struct {
	traits Traits
	next   Layer
}

// readField decodes one width-byte envelope field in stack order.
func (l *layerBase) readField(r *wire.Reader, width int) (uint64, error) {
	v, err := r.Uint(l.traits.order(), width)
	if err != nil {
		return 0, ErrNotEnoughData
	}
	return v, nil
}

// writeField encodes one width-byte envelope field in stack order.
func (l *layerBase) writeField(w wire.Writer, v uint64, width int) error {
	if err := wire.PutUint(w, l.traits.order(), v, width); err != nil {
		return ErrBufferOverflow
	}
	return nil
}

// updateNext forwards an update pass to the next layer. A next layer
// without reserved fields of its own is skipped over.
func (l *layerBase) updateNext(b *wire.Buffer, pos, size int) error {
	if u, ok := l.next.(Updater); ok {
		return u.Update(b, pos, size)
	}
	return nil
}
