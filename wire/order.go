package wire

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// A ByteOrder encodes and decodes multi-byte values. In addition to
// the fixed-width methods of the standard library orders, it handles
// unsigned fields of any width from 1 to 8 bytes, which is how
// protocol stacks describe their envelope fields.
type ByteOrder interface {
	byteOrder

	// UintN decodes b[:n] as an n-byte unsigned value.
	UintN(b []byte, n int) uint64
	// PutUintN encodes the low n bytes of v into b[:n].
	PutUintN(b []byte, v uint64, n int)
	// AppendUintN appends the n-byte encoding of v to b.
	AppendUintN(b []byte, v uint64, n int) []byte
}

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

type wrapStd struct {
	byteOrder
}

func (w wrapStd) big() bool {
	switch w.byteOrder {
	case binary.BigEndian:
		return true
	case binary.LittleEndian:
		return false
	case binary.NativeEndian:
		return cpu.IsBigEndian
	default:
		panic("unknown ByteOrder, how did you manage to make one of those?")
	}
}

func (w wrapStd) UintN(b []byte, n int) uint64 {
	_ = b[n-1]
	var v uint64
	if w.big() {
		for i := 0; i < n; i++ {
			v = v<<8 | uint64(b[i])
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint64(b[i])
		}
	}
	return v
}

func (w wrapStd) PutUintN(b []byte, v uint64, n int) {
	_ = b[n-1]
	if w.big() {
		for i := n - 1; i >= 0; i-- {
			b[i] = byte(v)
			v >>= 8
		}
	} else {
		for i := 0; i < n; i++ {
			b[i] = byte(v)
			v >>= 8
		}
	}
}

func (w wrapStd) AppendUintN(b []byte, v uint64, n int) []byte {
	var tmp [8]byte
	w.PutUintN(tmp[:], v, n)
	return append(b, tmp[:n]...)
}

var (
	BigEndian    ByteOrder = wrapStd{binary.BigEndian}
	LittleEndian ByteOrder = wrapStd{binary.LittleEndian}
	NativeEndian ByteOrder = wrapStd{binary.NativeEndian}
)
