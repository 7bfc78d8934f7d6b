package embxx_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chris-vieira/embxx"
	"github.com/chris-vieira/embxx/wire"
)

// sizeStack composes MsgSizeLayer -> MsgIdLayer -> MsgDataLayer with
// 2-byte big-endian fields.
func sizeStack(t *testing.T, extra int) *embxx.Stack {
	t.Helper()
	traits := embxx.Traits{
		Order:          wire.BigEndian,
		IDFieldWidth:   2,
		SizeFieldWidth: 2,
		ExtraSizeValue: extra,
	}
	id, err := embxx.NewMsgIdLayer(traits, embxx.DynAllocator{}, testFactories(), embxx.NewMsgDataLayer())
	if err != nil {
		t.Fatalf("NewMsgIdLayer: %v", err)
	}
	size, err := embxx.NewMsgSizeLayer(traits, id)
	if err != nil {
		t.Fatalf("NewMsgSizeLayer: %v", err)
	}
	stack, err := embxx.NewStack(size)
	if err != nil {
		t.Fatalf("NewStack: %v", err)
	}
	return stack
}

func TestMsgSizeWrite(t *testing.T) {
	stack := sizeStack(t, 0)

	b := wire.NewBuffer(16)
	if err := stack.Write(&value16Msg{Val: 0x0203}, b, 16); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := []byte{
		0x00, 0x04, // size: ID field + body
		0x00, 0x01, // ID
		0x02, 0x03, // body
	}
	if diff := cmp.Diff(b.Bytes(), want); diff != "" {
		t.Errorf("frame (-got+want):\n%s", diff)
	}
}

func TestMsgSizeRoundTrip(t *testing.T) {
	for _, extra := range []int{0, 2, 5} {
		stack := sizeStack(t, extra)

		b := wire.NewBuffer(16)
		if err := stack.Write(&value32Msg{Val: 0xcafef00d}, b, 16); err != nil {
			t.Fatalf("Write(extra=%d): %v", extra, err)
		}

		// The declared size is the measured inner length plus extra,
		// so reading must subtract it back out. Pad the frame so the
		// declared span exists in the buffer when extra > 0.
		frame := append(b.Bytes(), make([]byte, extra)...)
		var msg embxx.MsgPtr
		if err := stack.Read(&msg, wire.NewReader(frame), len(frame)); err != nil {
			t.Fatalf("Read(extra=%d): %v", extra, err)
		}
		got, ok := msg.Get().(*value32Msg)
		if !ok {
			t.Fatalf("decoded %T, want *value32Msg", msg.Get())
		}
		if got.Val != 0xcafef00d {
			t.Errorf("Val = %#x, want 0xcafef00d", got.Val)
		}
	}
}

func TestMsgSizeReadErrors(t *testing.T) {
	stack := sizeStack(t, 0)
	tests := []struct {
		name string
		in   []byte
	}{
		{"budget below field width", []byte{0x00}},
		{"declared size exceeds buffer", []byte{0x00, 0x10, 0x00, 0x01, 0x02, 0x03}},
		{"declared size starves the body", []byte{0x00, 0x03, 0x00, 0x01, 0x02, 0x03}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var msg embxx.MsgPtr
			err := stack.Read(&msg, wire.NewReader(tc.in), len(tc.in))
			if !errors.Is(err, embxx.ErrNotEnoughData) {
				t.Errorf("Read = %v, want ErrNotEnoughData", err)
			}
			if !msg.Empty() {
				t.Error("handle not empty after failed read")
			}
		})
	}
}

func TestMsgSizeUnderDeclared(t *testing.T) {
	// A declared size below the real extra offset must not go
	// negative on the inner budget.
	stack := sizeStack(t, 4)
	in := []byte{0x00, 0x01, 0x00, 0x01, 0x02, 0x03}
	var msg embxx.MsgPtr
	if err := stack.Read(&msg, wire.NewReader(in), len(in)); !errors.Is(err, embxx.ErrNotEnoughData) {
		t.Errorf("Read = %v, want ErrNotEnoughData", err)
	}
}

func TestMsgSizeUpdateRequired(t *testing.T) {
	stack := sizeStack(t, 0)

	// Reference frame through a random-access sink.
	ref := wire.NewBuffer(16)
	if err := stack.Write(&value16Msg{Val: 0x0203}, ref, 16); err != nil {
		t.Fatalf("reference Write: %v", err)
	}

	var sink bytes.Buffer
	w := wire.NewAppendWriter(&sink, 16)
	err := stack.Write(&value16Msg{Val: 0x0203}, w, 16)
	if !errors.Is(err, embxx.ErrUpdateRequired) {
		t.Fatalf("append Write = %v, want ErrUpdateRequired", err)
	}

	frame := sink.Bytes()
	// The size field is still a placeholder.
	if frame[0] != 0 || frame[1] != 0 {
		t.Fatalf("size field patched without random access: % x", frame)
	}

	b := wire.View(frame)
	if err := stack.Update(b, len(frame)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if diff := cmp.Diff(frame, ref.Bytes()); diff != "" {
		t.Errorf("updated frame (-got+want):\n%s", diff)
	}
}
