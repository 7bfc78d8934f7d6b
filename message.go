package embxx

import "github.com/chris-vieira/embxx/wire"

// A MsgID identifies a concrete message type on the wire. Its encoded
// width and byte order are stack configuration, not properties of the
// ID itself.
type MsgID uint64

// A Message is one unit of payload: it knows its own wire ID, its
// serialized body length, and how to encode and decode its body.
//
// Body codecs must stay within the size budget they are given: a body
// that needs more than size bytes reports ErrNotEnoughData (read) or
// ErrBufferOverflow (write) rather than touching bytes beyond the
// budget, which may belong to envelope fields of outer layers.
type Message interface {
	// ID reports the message's wire identifier.
	ID() MsgID
	// Length reports the serialized length of the message body.
	Length() int
	// ReadBody decodes the body from at most size bytes of r.
	ReadBody(r *wire.Reader, size int) error
	// WriteBody encodes the body into at most size bytes of w.
	WriteBody(w wire.Writer, size int) error
	// Dispatch routes the message to the handler method matching its
	// concrete type; see [DispatchTo].
	Dispatch(h Handler) error
}

// A Handler consumes decoded messages. Handle is the catch-all: a
// handler that additionally implements [TypedHandler] for a concrete
// message type receives those messages through the typed method
// instead.
type Handler interface {
	Handle(m Message) error
}

// A TypedHandler handles one concrete message type.
type TypedHandler[M Message] interface {
	HandleTyped(m M) error
}

// DispatchTo routes m to h's typed method when h implements
// TypedHandler[M], falling back to the catch-all Handle otherwise.
// The concrete type is pinned at the call site, so message types
// implement their Dispatch method as a single call:
//
//	func (m *Heartbeat) Dispatch(h embxx.Handler) error {
//		return embxx.DispatchTo(h, m)
//	}
func DispatchTo[M Message](h Handler, m M) error {
	if th, ok := h.(TypedHandler[M]); ok {
		return th.HandleTyped(m)
	}
	return h.Handle(m)
}
