package event

import (
	"bytes"
	"encoding/binary"

	"github.com/oomph-ac/locomotion/internal"
	"github.com/oomph-ac/locomotion/oerror"
)

const EventsVersion = "1"

// Event is a single entry of a locomotion journal.
type Event interface {
	ID() byte
	Encode() []byte

	Time() int64
}

type NopEvent struct {
	EvTime int64
}

func (n NopEvent) Time() int64 {
	return n.EvTime
}

func WriteEventHeader(ev Event, buf *bytes.Buffer) {
	binary.Write(buf, binary.LittleEndian, uint64(ev.ID()))
	binary.Write(buf, binary.LittleEndian, uint64(ev.Time()))
}

// DecodeEvents decodes every event in dat. The events decoded before an error occurred are returned along
// with the error.
func DecodeEvents(dat []byte) ([]Event, error) {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	buf.Write(dat)
	defer internal.BufferPool.Put(buf)

	events := []Event{}
	for buf.Len() > 0 {
		ev, err := DecodeEvent(buf)
		if err != nil {
			return events, oerror.New("error decoding event: %v", err)
		}

		events = append(events, ev)
	}

	return events, nil
}

// DecodeEvent decodes the next event from buf.
func DecodeEvent(buf *bytes.Buffer) (Event, error) {
	header, err := next(buf, 16)
	if err != nil {
		return nil, err
	}
	id := byte(binary.LittleEndian.Uint64(header[:8]))
	t := int64(binary.LittleEndian.Uint64(header[8:]))

	switch id {
	case EventIDMessages:
		ev := MessageEvent{}
		ev.EvTime = t
		err := ev.decode(buf)
		return ev, err
	case EventIDTick:
		ev := TickEvent{}
		ev.EvTime = t
		err := ev.decode(buf)
		return ev, err
	case EventIDTransition:
		ev := TransitionEvent{}
		ev.EvTime = t
		err := ev.decode(buf)
		return ev, err
	case EventIDCorrection:
		ev := CorrectionEvent{}
		ev.EvTime = t
		err := ev.decode(buf)
		return ev, err
	default:
		return nil, oerror.New("unknown event: %d", id)
	}
}

// next reads exactly n bytes from buf.
func next(buf *bytes.Buffer, n int) ([]byte, error) {
	if buf.Len() < n {
		return nil, oerror.New("event truncated: need %d bytes, have %d", n, buf.Len())
	}
	return buf.Next(n), nil
}

// encode writes the header of ev followed by body into a pooled buffer and returns a copy of the result.
func encode(ev Event, body func(buf *bytes.Buffer)) []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	WriteEventHeader(ev, buf)
	body(buf)
	return bytes.Clone(buf.Bytes())
}

const (
	_ = iota
	EventIDMessages
	EventIDTick
	EventIDTransition
	EventIDCorrection
)
