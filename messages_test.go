package embxx_test

import (
	"testing"

	"github.com/chris-vieira/embxx"
	"github.com/chris-vieira/embxx/wire"
)

// statusMsg has ID 0 and an empty body.
type statusMsg struct{}

func (*statusMsg) ID() embxx.MsgID { return 0 }
func (*statusMsg) Length() int     { return 0 }

func (*statusMsg) ReadBody(r *wire.Reader, size int) error { return nil }
func (*statusMsg) WriteBody(w wire.Writer, size int) error { return nil }

func (m *statusMsg) Dispatch(h embxx.Handler) error {
	return embxx.DispatchTo(h, m)
}

// value16Msg has ID 1 and a body holding one big-endian 16-bit value.
type value16Msg struct {
	Val uint16
}

func (*value16Msg) ID() embxx.MsgID { return 1 }
func (*value16Msg) Length() int     { return 2 }

func (m *value16Msg) ReadBody(r *wire.Reader, size int) error {
	if size < m.Length() {
		return embxx.ErrNotEnoughData
	}
	v, err := r.Uint(wire.BigEndian, 2)
	if err != nil {
		return embxx.ErrNotEnoughData
	}
	m.Val = uint16(v)
	return nil
}

func (m *value16Msg) WriteBody(w wire.Writer, size int) error {
	if size < m.Length() {
		return embxx.ErrBufferOverflow
	}
	return wire.PutUint(w, wire.BigEndian, uint64(m.Val), 2)
}

func (m *value16Msg) Dispatch(h embxx.Handler) error {
	return embxx.DispatchTo(h, m)
}

// value32Msg has ID 2 and a body holding one big-endian 32-bit value.
type value32Msg struct {
	Val uint32
}

func (*value32Msg) ID() embxx.MsgID { return 2 }
func (*value32Msg) Length() int     { return 4 }

func (m *value32Msg) ReadBody(r *wire.Reader, size int) error {
	if size < m.Length() {
		return embxx.ErrNotEnoughData
	}
	v, err := r.Uint(wire.BigEndian, 4)
	if err != nil {
		return embxx.ErrNotEnoughData
	}
	m.Val = uint32(v)
	return nil
}

func (m *value32Msg) WriteBody(w wire.Writer, size int) error {
	if size < m.Length() {
		return embxx.ErrBufferOverflow
	}
	return wire.PutUint(w, wire.BigEndian, uint64(m.Val), 4)
}

func (m *value32Msg) Dispatch(h embxx.Handler) error {
	return embxx.DispatchTo(h, m)
}

func testFactories() []embxx.Factory {
	return []embxx.Factory{
		{ID: 0, New: func() embxx.Message { return new(statusMsg) }},
		{ID: 1, New: func() embxx.Message { return new(value16Msg) }},
		{ID: 2, New: func() embxx.Message { return new(value32Msg) }},
	}
}

// idStack composes MsgIdLayer(2-byte big-endian ID) -> MsgDataLayer
// over the test message set.
func idStack(t *testing.T, alloc embxx.Allocator) *embxx.Stack {
	t.Helper()
	id, err := embxx.NewMsgIdLayer(
		embxx.Traits{Order: wire.BigEndian, IDFieldWidth: 2},
		alloc, testFactories(), embxx.NewMsgDataLayer())
	if err != nil {
		t.Fatalf("NewMsgIdLayer: %v", err)
	}
	stack, err := embxx.NewStack(id)
	if err != nil {
		t.Fatalf("NewStack: %v", err)
	}
	return stack
}
