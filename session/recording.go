package session

import (
	"bufio"
	"bytes"
	"io"

	"github.com/oomph-ac/locomotion/character"
	"github.com/oomph-ac/locomotion/event"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/replication"
)

const CurrentRecordingVer = "1"

// Recording is a decoded session recording.
type Recording struct {
	Version       string
	EventsVersion string
	Name          string

	Events []event.Event
}

// StartRecording starts journaling the messages, transitions and tick results of the session. The current
// state of every character is recorded first.
func (s *Session) StartRecording() {
	if s.journal != nil {
		return
	}
	s.journal = &event.Journal{}
	s.recordTick(replication.RoleAuthority, s.Authority)
	s.recordTick(replication.RoleAutonomous, s.Owner)
	for _, p := range s.Proxies {
		s.recordTick(replication.RoleSimulated, p)
	}
}

// StopRecording stops journaling and returns the journal recorded so far, or nil if the session was not
// recording.
func (s *Session) StopRecording() *event.Journal {
	j := s.journal
	s.journal = nil
	return j
}

// Recording reports if the session is currently recording.
func (s *Session) Recording() bool {
	return s.journal != nil
}

// WriteRecording writes the current journal of the session to w, prefixed by a header identifying the
// recording. It returns an error if the session is not recording.
func (s *Session) WriteRecording(w io.Writer) error {
	if s.journal == nil {
		return oerror.New("session %s is not recording", s.name)
	}
	bw := bufio.NewWriter(w)
	// Encode the recording version into the header of the recording so that readers can reject versions
	// they do not support.
	bw.WriteString(CurrentRecordingVer + "\n")
	bw.WriteString(event.EventsVersion + "\n")
	bw.WriteString(s.name + "\n")
	if _, err := s.journal.WriteTo(bw); err != nil {
		return oerror.New("unable to write recording: %v", err)
	}
	return bw.Flush()
}

// DecodeRecording decodes a recording written by WriteRecording. It returns an error if the recording
// could not be parsed, or if the version of the recording is not supported.
func DecodeRecording(r io.Reader) (*Recording, error) {
	dat, err := io.ReadAll(r)
	if err != nil {
		return nil, oerror.New("unable to read recording: %v", err)
	}
	parts := bytes.SplitN(dat, []byte{'\n'}, 4)
	if len(parts) != 4 {
		return nil, oerror.New("recording header truncated")
	}

	rec := &Recording{
		Version:       string(parts[0]),
		EventsVersion: string(parts[1]),
		Name:          string(parts[2]),
	}
	if rec.Version != CurrentRecordingVer {
		return nil, oerror.New("unsupported recording version: %s", rec.Version)
	}
	if rec.EventsVersion != event.EventsVersion {
		return nil, oerror.New("unsupported events version: %s", rec.EventsVersion)
	}

	rec.Events, err = event.DecodeEvents(parts[3])
	if err != nil {
		return nil, oerror.New("unable to decode recording: %v", err)
	}
	return rec, nil
}

func (s *Session) recordTick(role replication.SimulationRole, c *character.Character) {
	if s.journal == nil {
		return
	}
	ev := event.TickEvent{Role: role, Snapshot: c.Snapshot()}
	ev.EvTime = s.clock()
	s.journal.Add(ev)
}

func (s *Session) record(ev event.Event) {
	if s.journal != nil {
		s.journal.Add(ev)
	}
}

// journalHandler records the notifications of a character of the session before passing them on.
type journalHandler struct {
	s    *Session
	next character.Handler
}

func (h *journalHandler) HandleGaitChanged(old, new locomotion.Gait) {
	h.s.record(event.GaitTransition(h.s.clock(), old, new))
	if h.next != nil {
		h.next.HandleGaitChanged(old, new)
	}
}

func (h *journalHandler) HandleWallRunStarted(side locomotion.WallRunSide) {
	h.s.record(event.CustomModeTransition(h.s.clock(), locomotion.CustomModeNone, locomotion.CustomModeWallRunning, side))
	if h.next != nil {
		h.next.HandleWallRunStarted(side)
	}
}

func (h *journalHandler) HandleWallRunEnded() {
	h.ended(locomotion.CustomModeWallRunning)
	if h.next != nil {
		h.next.HandleWallRunEnded()
	}
}

func (h *journalHandler) HandleSlideStarted() {
	h.started(locomotion.CustomModeSliding)
	if h.next != nil {
		h.next.HandleSlideStarted()
	}
}

func (h *journalHandler) HandleSlideEnded() {
	h.ended(locomotion.CustomModeSliding)
	if h.next != nil {
		h.next.HandleSlideEnded()
	}
}

func (h *journalHandler) HandleProneStarted() {
	h.started(locomotion.CustomModeProne)
	if h.next != nil {
		h.next.HandleProneStarted()
	}
}

func (h *journalHandler) HandleProneEnded() {
	h.ended(locomotion.CustomModeProne)
	if h.next != nil {
		h.next.HandleProneEnded()
	}
}

func (h *journalHandler) HandleCorrection(tick uint64, replayed int) {
	ev := event.CorrectionEvent{Tick: tick, Replayed: uint32(replayed)}
	ev.EvTime = h.s.clock()
	h.s.record(ev)
	if h.next != nil {
		h.next.HandleCorrection(tick, replayed)
	}
}

func (h *journalHandler) started(mode locomotion.CustomMode) {
	h.s.record(event.CustomModeTransition(h.s.clock(), locomotion.CustomModeNone, mode, 0))
}

func (h *journalHandler) ended(mode locomotion.CustomMode) {
	h.s.record(event.CustomModeTransition(h.s.clock(), mode, locomotion.CustomModeNone, 0))
}
