package embxx

// A MsgPtr is the single-owner handle to an allocated message.
// [Stack.Read] fills it in; the handle is non-empty if and only if
// the read returned nil. Releasing the handle returns the message's
// storage to its allocator; for an in-place allocator that is what
// frees the slot for the next message.
type MsgPtr struct {
	msg     Message
	release func()
}

// Empty reports whether the handle holds no message.
func (p *MsgPtr) Empty() bool { return p.msg == nil }

// Get returns the held message, or nil for an empty handle.
func (p *MsgPtr) Get() Message { return p.msg }

// Release drops the held message and returns its storage to the
// allocator. It is idempotent, and releasing an empty handle is a
// no-op.
func (p *MsgPtr) Release() {
	if p.msg == nil {
		return
	}
	p.msg = nil
	if p.release != nil {
		rel := p.release
		p.release = nil
		rel()
	}
}

// An Allocator owns message-object storage.
type Allocator interface {
	// Alloc returns a handle holding the message produced by newMsg,
	// or an empty handle if the allocator cannot currently produce
	// one.
	Alloc(newMsg func() Message) MsgPtr
}

// DynAllocator allocates every message on the heap. Any number of
// messages may be alive at once.
type DynAllocator struct{}

// Alloc implements [Allocator].
func (DynAllocator) Alloc(newMsg func() Message) MsgPtr {
	return MsgPtr{msg: newMsg()}
}

// An InPlaceAllocator enforces the single reusable-slot discipline of
// a static receive buffer: at most one allocated message is alive at
// a time, and a second Alloc before the first handle is released
// returns an empty handle. The zero value is ready to use.
//
// The Go runtime owns the message bytes themselves, so the slot here
// is a liveness flag rather than a raw arena; the occupied/free
// contract is the same, and releasing the owning handle clears the
// flag exactly once.
type InPlaceAllocator struct {
	occupied bool
}

// Alloc implements [Allocator].
func (a *InPlaceAllocator) Alloc(newMsg func() Message) MsgPtr {
	if a.occupied {
		return MsgPtr{}
	}
	a.occupied = true
	return MsgPtr{
		msg:     newMsg(),
		release: func() { a.occupied = false },
	}
}

// Occupied reports whether the slot currently backs a live message.
func (a *InPlaceAllocator) Occupied() bool { return a.occupied }
