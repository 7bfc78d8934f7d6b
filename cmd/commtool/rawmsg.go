package main

import (
	"github.com/chris-vieira/embxx"
	"github.com/chris-vieira/embxx/wire"
)

// rawMessage carries an uninterpreted body, letting the tool frame
// and unframe messages without knowing their schemas. The body takes
// the whole byte budget the data layer receives.
type rawMessage struct {
	id   embxx.MsgID
	body []byte
}

func (m *rawMessage) ID() embxx.MsgID { return m.id }

func (m *rawMessage) Length() int { return len(m.body) }

func (m *rawMessage) ReadBody(r *wire.Reader, size int) error {
	bs, err := r.Read(size)
	if err != nil {
		return embxx.ErrNotEnoughData
	}
	m.body = append(m.body[:0], bs...)
	return nil
}

func (m *rawMessage) WriteBody(w wire.Writer, size int) error {
	if len(m.body) > size {
		return embxx.ErrBufferOverflow
	}
	if err := w.Write(m.body); err != nil {
		return embxx.ErrBufferOverflow
	}
	return nil
}

func (m *rawMessage) Dispatch(h embxx.Handler) error {
	return embxx.DispatchTo(h, m)
}
