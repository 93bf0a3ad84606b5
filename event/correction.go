package event

import (
	"bytes"
	"encoding/binary"
)

// CorrectionEvent records a correction of the owner of a character by the authority.
type CorrectionEvent struct {
	NopEvent

	Tick     uint64
	Replayed uint32
}

func (CorrectionEvent) ID() byte {
	return EventIDCorrection
}

func (ev CorrectionEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		binary.Write(buf, binary.LittleEndian, ev.Tick)
		binary.Write(buf, binary.LittleEndian, ev.Replayed)
	})
}

func (ev *CorrectionEvent) decode(buf *bytes.Buffer) error {
	b, err := next(buf, 12)
	if err != nil {
		return err
	}
	ev.Tick = binary.LittleEndian.Uint64(b[:8])
	ev.Replayed = binary.LittleEndian.Uint32(b[8:])
	return nil
}
