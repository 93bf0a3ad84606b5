package event

import (
	"bytes"
	"encoding/binary"

	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/replication"
)

// MessageEvent records replication messages sent over a pipe.
type MessageEvent struct {
	NopEvent

	Messages []replication.Message
	// Authority is true if the messages were sent by the authority.
	Authority bool
}

func (MessageEvent) ID() byte {
	return EventIDMessages
}

func (ev MessageEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		// Write the authority flag to the buffer
		if ev.Authority {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}

		binary.Write(buf, binary.LittleEndian, uint32(len(ev.Messages)))
		for _, m := range ev.Messages {
			dat := replication.Encode(m)
			binary.Write(buf, binary.LittleEndian, uint32(len(dat)))
			buf.Write(dat)
		}
	})
}

func (ev *MessageEvent) decode(buf *bytes.Buffer) error {
	b, err := next(buf, 5)
	if err != nil {
		return oerror.New("error reading MessageEvent header: %v", err)
	}
	ev.Authority = b[0] == 1

	count := binary.LittleEndian.Uint32(b[1:])
	ev.Messages = make([]replication.Message, 0, min(count, 256))
	for i := uint32(0); i < count; i++ {
		l, err := next(buf, 4)
		if err != nil {
			return err
		}
		dat, err := next(buf, int(binary.LittleEndian.Uint32(l)))
		if err != nil {
			return err
		}
		m, err := replication.Decode(dat)
		if err != nil {
			return oerror.New("error decoding message from MessageEvent: %v", err)
		}
		ev.Messages = append(ev.Messages, m)
	}
	return nil
}
