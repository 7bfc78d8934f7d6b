package embxx

import (
	"errors"
	"fmt"
	"sort"

	"github.com/creachadair/mds/mapset"

	"github.com/chris-vieira/embxx/wire"
)

// A Factory creates instances of one registered message type.
type Factory struct {
	// ID is the wire identifier the factory serves.
	ID MsgID
	// New returns a fresh instance of the concrete message type.
	New func() Message
}

// A MsgIdLayer identifies the incoming message type from its wire ID
// field, allocates an instance through its Allocator, and passes
// ownership of the instance to the caller through the output handle.
type MsgIdLayer struct {
	layerBase
	alloc     Allocator
	factories []Factory // sorted by ID, immutable after construction
}

// NewMsgIdLayer builds the layer's registry from the given message
// set. The registry is sorted by ascending ID once, so lookups are a
// binary search. Duplicate IDs are a configuration error and are
// rejected here, not at read time.
func NewMsgIdLayer(traits Traits, alloc Allocator, factories []Factory, next Layer) (*MsgIdLayer, error) {
	if err := checkFieldWidth("message ID field", traits.IDFieldWidth); err != nil {
		return nil, err
	}
	if alloc == nil {
		return nil, errors.New("embxx: MsgIdLayer requires an allocator")
	}
	if next == nil {
		return nil, errors.New("embxx: MsgIdLayer requires a next layer")
	}
	if len(factories) == 0 {
		return nil, errors.New("embxx: MsgIdLayer requires at least one registered message type")
	}

	mask := fieldMask(traits.IDFieldWidth)
	reg := make([]Factory, len(factories))
	copy(reg, factories)
	seen := mapset.New[MsgID]()
	for _, f := range reg {
		if f.New == nil {
			return nil, fmt.Errorf("embxx: factory for message ID %d has no constructor", f.ID)
		}
		if uint64(f.ID)&^mask != 0 {
			return nil, fmt.Errorf("embxx: message ID 0x%x does not fit in a %d-byte field", uint64(f.ID), traits.IDFieldWidth)
		}
		if seen.Has(f.ID) {
			return nil, fmt.Errorf("embxx: duplicate message ID %d in registry", f.ID)
		}
		seen.Add(f.ID)
	}
	sort.Slice(reg, func(i, j int) bool { return reg[i].ID < reg[j].ID })

	return &MsgIdLayer{
		layerBase: layerBase{traits: traits, next: next},
		alloc:     alloc,
		factories: reg,
	}, nil
}

// Allocator returns the layer's message allocator.
func (l *MsgIdLayer) Allocator() Allocator { return l.alloc }

func (l *MsgIdLayer) lookup(id MsgID) (Factory, bool) {
	i := sort.Search(len(l.factories), func(i int) bool {
		return l.factories[i].ID >= id
	})
	if i < len(l.factories) && l.factories[i].ID == id {
		return l.factories[i], true
	}
	return Factory{}, false
}

// Read decodes the ID field, allocates the matching message type and
// delegates the rest of the budget inward. On any failure past
// allocation the handle is reset to empty, so callers never observe a
// half-populated message.
func (l *MsgIdLayer) Read(msg *MsgPtr, r *wire.Reader, size int) error {
	fw := l.traits.IDFieldWidth
	if size < fw {
		return ErrNotEnoughData
	}
	raw, err := l.readField(r, fw)
	if err != nil {
		return err
	}
	id := MsgID(raw)

	f, ok := l.lookup(id)
	if !ok {
		return fmt.Errorf("%w: 0x%x", ErrInvalidMsgID, uint64(id))
	}

	*msg = l.alloc.Alloc(f.New)
	if msg.Empty() {
		return ErrMsgAllocFailure
	}

	if err := l.next.Read(msg, r, size-fw); err != nil {
		msg.Release()
		return err
	}
	return nil
}

// Write encodes msg's ID field and delegates the remaining capacity.
func (l *MsgIdLayer) Write(msg Message, w wire.Writer, size int) error {
	fw := l.traits.IDFieldWidth
	if size < fw {
		return ErrBufferOverflow
	}
	if err := l.writeField(w, uint64(msg.ID()), fw); err != nil {
		return err
	}
	return l.next.Write(msg, w, size-fw)
}

// Update forwards the pass over the ID field; the field itself never
// needs patching.
func (l *MsgIdLayer) Update(b *wire.Buffer, pos, size int) error {
	fw := l.traits.IDFieldWidth
	if size < fw {
		return ErrNotEnoughData
	}
	return l.updateNext(b, pos+fw, size-fw)
}
