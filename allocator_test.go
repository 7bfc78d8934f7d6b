package embxx_test

import (
	"testing"

	"github.com/chris-vieira/embxx"
)

func TestDynAllocator(t *testing.T) {
	var alloc embxx.DynAllocator

	a := alloc.Alloc(func() embxx.Message { return new(value16Msg) })
	b := alloc.Alloc(func() embxx.Message { return new(value16Msg) })
	if a.Empty() || b.Empty() {
		t.Fatal("dynamic allocation returned an empty handle")
	}
	if a.Get() == b.Get() {
		t.Error("two dynamic allocations share one message object")
	}
	a.Release()
	b.Release()
}

func TestInPlaceExclusivity(t *testing.T) {
	var alloc embxx.InPlaceAllocator
	newMsg := func() embxx.Message { return new(value16Msg) }

	first := alloc.Alloc(newMsg)
	if first.Empty() {
		t.Fatal("first allocation failed")
	}
	if !alloc.Occupied() {
		t.Error("slot not marked occupied")
	}

	second := alloc.Alloc(newMsg)
	if !second.Empty() {
		t.Fatal("second allocation succeeded while slot occupied")
	}

	first.Release()
	if alloc.Occupied() {
		t.Error("slot still occupied after release")
	}

	third := alloc.Alloc(newMsg)
	if third.Empty() {
		t.Fatal("allocation failed after slot was freed")
	}
	third.Release()
}

func TestMsgPtrReleaseIdempotent(t *testing.T) {
	var alloc embxx.InPlaceAllocator
	p := alloc.Alloc(func() embxx.Message { return new(statusMsg) })

	p.Release()
	// The second release must not free a slot someone else now owns.
	q := alloc.Alloc(func() embxx.Message { return new(statusMsg) })
	p.Release()
	if !alloc.Occupied() {
		t.Error("double release freed a slot owned by another handle")
	}
	q.Release()

	if !p.Empty() {
		t.Error("released handle not empty")
	}
	if p.Get() != nil {
		t.Error("released handle still returns a message")
	}

	var empty embxx.MsgPtr
	empty.Release() // no-op
}
