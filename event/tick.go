package event

import (
	"bytes"
	"encoding/binary"

	"github.com/oomph-ac/locomotion/replication"
)

// TickEvent records the state of a character after it simulated or applied a tick.
type TickEvent struct {
	NopEvent

	Role     replication.SimulationRole
	Snapshot replication.Snapshot
}

func (TickEvent) ID() byte {
	return EventIDTick
}

func (ev TickEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		buf.WriteByte(byte(ev.Role))
		dat := replication.EncodeSnapshot(ev.Snapshot)
		binary.Write(buf, binary.LittleEndian, uint32(len(dat)))
		buf.Write(dat)
	})
}

func (ev *TickEvent) decode(buf *bytes.Buffer) error {
	b, err := next(buf, 5)
	if err != nil {
		return err
	}
	ev.Role = replication.SimulationRole(b[0])
	dat, err := next(buf, int(binary.LittleEndian.Uint32(b[1:])))
	if err != nil {
		return err
	}
	ev.Snapshot, err = replication.DecodeSnapshot(dat)
	return err
}
