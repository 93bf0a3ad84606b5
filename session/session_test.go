package session

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/character"
	"github.com/oomph-ac/locomotion/event"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/replication"
	"github.com/oomph-ac/locomotion/surface"
)

const dt = float32(1.0 / 60)

var (
	forward = character.Input{MoveInput: mgl32.Vec2{0, 1}, MoveWorldInput: mgl32.Vec2{0, 1}, DeltaTime: dt}
	idle    = character.Input{DeltaTime: dt}
)

type correctionHandler struct {
	character.NopHandler
	corrections int
	panicOnGait bool
}

func (h *correctionHandler) HandleCorrection(uint64, int) {
	h.corrections++
}

func (h *correctionHandler) HandleGaitChanged(locomotion.Gait, locomotion.Gait) {
	if h.panicOnGait {
		panic("gait handler failure")
	}
}

func newSession(t *testing.T, latency uint64, proxies int, h character.Handler) *Session {
	t.Helper()
	w := surface.NewBoxWorld()
	w.Add(cube.Box(-10000, -100, -10000, 10000, 0, 10000))

	opts := character.DefaultOptions()
	opts.OnGround = true
	opts.Handler = h
	s, err := New(Config{
		Name:         "test",
		Options:      opts,
		World:        w,
		LatencyTicks: latency,
		Proxies:      proxies,
		Clock:        func() int64 { return 1 },
	})
	if err != nil {
		t.Fatalf("unable to create session: %v", err)
	}
	return s
}

func run(t *testing.T, s *Session, in character.Input, ticks int) {
	t.Helper()
	for range ticks {
		if err := s.Tick(in); err != nil {
			t.Fatalf("tick %d failed: %v", s.Ticks(), err)
		}
	}
}

func TestPipeLatency(t *testing.T) {
	p := NewPipe(2)
	p.Send(&replication.AckMessage{Tick: 1})
	p.Send(&replication.AckMessage{Tick: 2})

	p.Advance()
	if msgs, err := p.Receive(); err != nil || len(msgs) != 0 {
		t.Fatalf("expected nothing to be delivered before the latency passed, got %v %v", msgs, err)
	}
	p.Advance()
	msgs, err := p.Receive()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 || msgs[0].(*replication.AckMessage).Tick != 1 || msgs[1].(*replication.AckMessage).Tick != 2 {
		t.Fatalf("expected both acks in order, got %v", msgs)
	}
	if p.Pending() != 0 {
		t.Fatalf("expected empty pipe, got %d pending", p.Pending())
	}
}

func TestPipeDropsMalformed(t *testing.T) {
	p := NewPipe(0)
	p.SendRaw([]byte{0xff})
	p.Send(&replication.AckMessage{Tick: 3})
	msgs, err := p.Receive()
	if err == nil {
		t.Fatal("expected decode error")
	}
	if len(msgs) != 1 {
		t.Fatalf("expected the valid message to still be delivered, got %v", msgs)
	}
}

func TestSessionAcknowledges(t *testing.T) {
	s := newSession(t, 0, 2, nil)
	if len(s.Proxies) != 2 {
		t.Fatalf("expected 2 proxies, got %d", len(s.Proxies))
	}
	run(t, s, forward, 10)
	if s.Divergence() > 0.001 {
		t.Fatalf("expected owner and authority to agree, got divergence %v", s.Divergence())
	}
	if s.Owner.Buffer().Len() > 1 {
		t.Fatalf("expected moves to be acknowledged, got %d pending", s.Owner.Buffer().Len())
	}
}

func TestSessionConvergesAfterCorrection(t *testing.T) {
	h := &correctionHandler{}
	s := newSession(t, 3, 1, h)
	run(t, s, forward, 20)

	s.Authority.Teleport(s.Authority.Position().Add(mgl32.Vec3{100, 0, 0}))
	if s.Divergence() < 50 {
		t.Fatalf("expected teleport to diverge the owner, got %v", s.Divergence())
	}
	run(t, s, forward, 20)
	run(t, s, idle, 120)

	if h.corrections == 0 {
		t.Fatal("expected the owner to be corrected")
	}
	if d := s.Divergence(); d > character.DefaultPositionCorrectionThreshold {
		t.Fatalf("expected owner to converge to the authority, got divergence %v", d)
	}
	if math.Abs(float64(s.Owner.Position().X()-s.Authority.Position().X())) > 1 {
		t.Fatalf("expected owner to adopt the teleport, got %v vs %v", s.Owner.Position(), s.Authority.Position())
	}
	if s.Proxies[0].Position().Sub(s.Authority.Position()).Len() > 0.001 {
		t.Fatalf("expected proxy to follow the authority, got %v vs %v", s.Proxies[0].Position(), s.Authority.Position())
	}
}

func TestRecording(t *testing.T) {
	s := newSession(t, 1, 1, nil)
	var buf bytes.Buffer
	if err := s.WriteRecording(&buf); err == nil {
		t.Fatal("expected error when not recording")
	}

	s.StartRecording()
	sprint := forward
	sprint.Sprint = true
	run(t, s, forward, 30)
	run(t, s, sprint, 5)
	if err := s.WriteRecording(&buf); err != nil {
		t.Fatalf("unable to write recording: %v", err)
	}
	if j := s.StopRecording(); j == nil || j.Len() == 0 || s.Recording() {
		t.Fatal("expected a non-empty journal after stopping")
	}

	rec, err := DecodeRecording(&buf)
	if err != nil {
		t.Fatalf("unable to decode recording: %v", err)
	}
	if rec.Name != "test" || rec.Version != CurrentRecordingVer {
		t.Fatalf("unexpected header %q %q", rec.Name, rec.Version)
	}

	var ticks, messages, transitions int
	for _, ev := range rec.Events {
		switch ev := ev.(type) {
		case event.TickEvent:
			ticks++
		case event.MessageEvent:
			messages++
			if ev.Time() != 1 {
				t.Fatalf("expected clock timestamp, got %d", ev.Time())
			}
		case event.TransitionEvent:
			transitions++
		}
	}
	if first, ok := rec.Events[0].(event.TickEvent); !ok || first.Role != replication.RoleAuthority {
		t.Fatalf("expected recording to start with the authority state, got %#v", rec.Events[0])
	}
	if ticks == 0 || messages == 0 || transitions == 0 {
		t.Fatalf("expected ticks, messages and transitions, got %d %d %d", ticks, messages, transitions)
	}
}

func TestDecodeRecordingRejectsVersion(t *testing.T) {
	if _, err := DecodeRecording(strings.NewReader("0\n1\nname\n")); err == nil {
		t.Fatal("expected unsupported version error")
	}
	if _, err := DecodeRecording(strings.NewReader("1\n")); err == nil {
		t.Fatal("expected truncated header error")
	}
}

func TestTickRecoversPanic(t *testing.T) {
	h := &correctionHandler{}
	s := newSession(t, 0, 0, h)
	run(t, s, forward, 30)

	h.panicOnGait = true
	sprint := forward
	sprint.Sprint = true
	if err := s.Tick(sprint); err == nil || !strings.Contains(err.Error(), "gait handler failure") {
		t.Fatalf("expected recovered panic, got %v", err)
	}
}

func TestTickAll(t *testing.T) {
	sessions := []*Session{newSession(t, 1, 1, nil), newSession(t, 1, 1, nil), newSession(t, 1, 1, nil)}
	inputs := []character.Input{forward, idle, forward}
	for range 10 {
		if errs := TickAll(sessions, inputs); errs != nil {
			t.Fatalf("unexpected errors: %v", errs)
		}
	}
	for i, s := range sessions {
		if s.Ticks() != 10 {
			t.Fatalf("expected session %d to tick 10 times, got %d", i, s.Ticks())
		}
	}
	if sessions[0].Owner.Position() != sessions[2].Owner.Position() {
		t.Fatal("expected sessions with equal input to be deterministic")
	}
	if sessions[1].Owner.Position() == sessions[0].Owner.Position() {
		t.Fatal("expected idle session to stay behind")
	}
}
