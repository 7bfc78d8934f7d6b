package embxx

import (
	"errors"
	"fmt"

	"github.com/chris-vieira/embxx/wire"
)

// A MsgDataLayer is the terminal layer of every stack: it hands the
// remaining byte budget straight to the message's own body codec. It
// never allocates and never inspects message identity.
type MsgDataLayer struct{}

// NewMsgDataLayer returns a terminal data layer.
func NewMsgDataLayer() *MsgDataLayer { return &MsgDataLayer{} }

// Read decodes the message body. msg must already hold the instance
// allocated by an outer MsgIdLayer.
func (l *MsgDataLayer) Read(msg *MsgPtr, r *wire.Reader, size int) error {
	m := msg.Get()
	if m == nil {
		return fmt.Errorf("%w: data layer reached with an empty handle", ErrInvalidMsgData)
	}
	if err := m.ReadBody(r, size); err != nil {
		if errors.Is(err, wire.ErrShortRead) {
			return ErrNotEnoughData
		}
		return err
	}
	return nil
}

// Write encodes the message body.
func (l *MsgDataLayer) Write(msg Message, w wire.Writer, size int) error {
	if msg.Length() > size {
		return ErrBufferOverflow
	}
	if err := msg.WriteBody(w, size); err != nil {
		if errors.Is(err, wire.ErrShortWrite) {
			return ErrBufferOverflow
		}
		return err
	}
	return nil
}
