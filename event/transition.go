package event

import (
	"bytes"

	"github.com/oomph-ac/locomotion/locomotion"
)

const (
	TransitionGait byte = iota
	TransitionCustomMode
)

// TransitionEvent records a change of gait or custom mode of a character.
type TransitionEvent struct {
	NopEvent

	Kind byte
	// Old and New hold a locomotion.Gait or a locomotion.CustomMode, depending on Kind.
	Old, New byte
	// Side is the wall-run side, only set when a wall-run is started.
	Side locomotion.WallRunSide
}

// GaitTransition returns a transition event for a gait change.
func GaitTransition(t int64, old, new locomotion.Gait) TransitionEvent {
	ev := TransitionEvent{Kind: TransitionGait, Old: byte(old), New: byte(new)}
	ev.EvTime = t
	return ev
}

// CustomModeTransition returns a transition event for a custom mode change.
func CustomModeTransition(t int64, old, new locomotion.CustomMode, side locomotion.WallRunSide) TransitionEvent {
	ev := TransitionEvent{Kind: TransitionCustomMode, Old: byte(old), New: byte(new), Side: side}
	ev.EvTime = t
	return ev
}

func (TransitionEvent) ID() byte {
	return EventIDTransition
}

func (ev TransitionEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		buf.Write([]byte{ev.Kind, ev.Old, ev.New, byte(ev.Side)})
	})
}

func (ev *TransitionEvent) decode(buf *bytes.Buffer) error {
	b, err := next(buf, 4)
	if err != nil {
		return err
	}
	ev.Kind, ev.Old, ev.New, ev.Side = b[0], b[1], b[2], locomotion.WallRunSide(b[3])
	return nil
}
