package session

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/oomph-ac/locomotion/character"
	"github.com/oomph-ac/locomotion/event"
	"github.com/oomph-ac/locomotion/replication"
	"github.com/oomph-ac/locomotion/surface"
	"github.com/oomph-ac/locomotion/worker"
)

// Config holds everything needed to start a session.
type Config struct {
	// Name identifies the session in logs and error reports.
	Name string
	// Options are the options every character of the session is spawned with. Collision is taken from
	// World, and a handler set in the options receives the notifications of the owner.
	Options character.Options
	World   *surface.BoxWorld

	LatencyTicks uint64
	Proxies      int

	Logger *slog.Logger
	// Clock returns the timestamps of recorded events. Defaults to time.Now().UnixNano.
	Clock func() int64
}

// Session runs a single character across an authority, the predicting client owning it and any amount of
// proxies observing it, connected by pipes. A session is not safe for concurrent use, but independent
// sessions may be ticked in parallel.
type Session struct {
	name string
	log  *slog.Logger

	Authority *character.Character
	Owner     *character.Character
	Proxies   []*character.Character

	toAuthority *Pipe
	toOwner     *Pipe
	toProxies   []*Pipe

	// snapshots drops snapshots sent to proxies when the authoritative state did not change.
	snapshots replication.Deduplicator

	journal *event.Journal
	clock   func() int64
	ticks   uint64
}

// New starts a session from the given config.
func New(cfg Config) (*Session, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = func() int64 { return time.Now().UnixNano() }
	}
	if cfg.World == nil {
		cfg.World = surface.NewBoxWorld()
	}
	s := &Session{
		name:        cfg.Name,
		log:         cfg.Logger.With("session", cfg.Name),
		toAuthority: NewPipe(cfg.LatencyTicks),
		toOwner:     NewPipe(cfg.LatencyTicks),
		clock:       cfg.Clock,
	}

	var err error
	if s.Authority, err = s.spawn(cfg, replication.RoleAuthority, 1, nil); err != nil {
		return nil, err
	}
	if s.Owner, err = s.spawn(cfg, replication.RoleAutonomous, 2, cfg.Options.Handler); err != nil {
		return nil, err
	}
	for i := range cfg.Proxies {
		proxy, err := s.spawn(cfg, replication.RoleSimulated, surface.ActorID(3+i), nil)
		if err != nil {
			return nil, err
		}
		s.Proxies = append(s.Proxies, proxy)
		s.toProxies = append(s.toProxies, NewPipe(cfg.LatencyTicks))
	}
	return s, nil
}

func (s *Session) spawn(cfg Config, role replication.SimulationRole, actor surface.ActorID, h character.Handler) (*character.Character, error) {
	opts := cfg.Options
	opts.Collider, opts.Tracer, opts.Actor = cfg.World, cfg.World, actor
	opts.Logger = s.log.With("role", role.String())
	opts.Handler = &journalHandler{s: s, next: h}
	return character.New(opts)
}

// Name ...
func (s *Session) Name() string {
	return s.name
}

// Ticks returns the amount of ticks the session ran.
func (s *Session) Ticks() uint64 {
	return s.ticks
}

// Tick runs a single tick of the session with the given input of the owner. The owner predicts the tick
// and sends its moves to the authority, which answers with an acknowledgement or a correction and sends
// snapshots to the proxies. Messages arrive after the latency of the pipes. A panic while ticking is
// recovered, reported and returned as an error.
func (s *Session) Tick(in character.Input) (err error) {
	defer s.recoverPanic("tick", &err)

	for _, p := range s.pipes() {
		p.Advance()
	}

	if _, ok := s.Owner.Tick(replication.RoleAutonomous, in); ok {
		s.recordTick(replication.RoleAutonomous, s.Owner)
	}
	if moves := s.Owner.FlushMoves(); len(moves) > 0 {
		for len(moves) > 0 {
			n := min(len(moves), replication.MaxMovesPerMessage)
			s.send(s.toAuthority, &replication.MoveMessage{Moves: moves[:n]}, false)
			moves = moves[n:]
		}
	}

	if err := s.serveAuthority(); err != nil {
		return err
	}
	if err := s.receiveOwner(); err != nil {
		return err
	}
	if err := s.receiveProxies(); err != nil {
		return err
	}
	s.ticks++
	return nil
}

func (s *Session) pipes() []*Pipe {
	return append([]*Pipe{s.toAuthority, s.toOwner}, s.toProxies...)
}

// serveAuthority processes the moves that reached the authority and sends the resulting state out.
func (s *Session) serveAuthority() error {
	msgs, err := s.toAuthority.Receive()
	if err != nil {
		s.log.Warn("dropped message to authority", "error", err)
	}
	for _, msg := range msgs {
		pk, ok := msg.(*replication.MoveMessage)
		if !ok {
			s.log.Warn("unexpected message to authority", "id", msg.ID())
			continue
		}
		if reply := s.Authority.ServerMoves(pk.Moves); reply != nil {
			s.send(s.toOwner, reply, true)
		}
		s.recordTick(replication.RoleAuthority, s.Authority)
	}

	snapshot := s.Authority.Snapshot()
	if len(s.toProxies) > 0 && s.snapshots.Changed(snapshot) {
		for _, p := range s.toProxies {
			s.send(p, &replication.SnapshotMessage{Snapshot: snapshot}, true)
		}
	}
	return nil
}

// receiveOwner applies the acknowledgements and corrections that reached the owner.
func (s *Session) receiveOwner() error {
	msgs, err := s.toOwner.Receive()
	if err != nil {
		s.log.Warn("dropped message to owner", "error", err)
	}
	for _, msg := range msgs {
		switch pk := msg.(type) {
		case *replication.AckMessage:
			s.Owner.Acknowledge(pk.Tick)
		case *replication.CorrectionMessage:
			if _, err := s.Owner.Reconcile(pk.Tick, pk.Snapshot); err != nil {
				return err
			}
			s.recordTick(replication.RoleAutonomous, s.Owner)
		default:
			s.log.Warn("unexpected message to owner", "id", msg.ID())
		}
	}
	return nil
}

// receiveProxies applies the snapshots that reached the proxies.
func (s *Session) receiveProxies() error {
	for i, p := range s.toProxies {
		msgs, err := p.Receive()
		if err != nil {
			s.log.Warn("dropped message to proxy", "proxy", i, "error", err)
		}
		for _, msg := range msgs {
			pk, ok := msg.(*replication.SnapshotMessage)
			if !ok {
				continue
			}
			if s.Proxies[i].ApplySnapshot(replication.RoleSimulated, pk.Snapshot) {
				s.recordTick(replication.RoleSimulated, s.Proxies[i])
			}
		}
	}
	return nil
}

func (s *Session) send(p *Pipe, m replication.Message, fromAuthority bool) {
	p.Send(m)
	if s.journal != nil {
		ev := event.MessageEvent{Messages: []replication.Message{m}, Authority: fromAuthority}
		ev.EvTime = s.clock()
		s.journal.Add(ev)
	}
}

// Divergence returns the distance between the positions of the owner and the authority.
func (s *Session) Divergence() float32 {
	return s.Owner.Position().Sub(s.Authority.Position()).Len()
}

// InFlight returns the amount of messages currently travelling through the pipes of the session.
func (s *Session) InFlight() int {
	n := 0
	for _, p := range s.pipes() {
		n += p.Pending()
	}
	return n
}

// TickAll ticks every session with its input on the worker pool and returns the errors of the sessions that
// failed, indexed like sessions. It returns nil if every session ticked.
func TickAll(sessions []*Session, inputs []character.Input) []error {
	var (
		errs   = make([]error, len(sessions))
		failed atomic.Bool
		fs     = make([]func(), len(sessions))
	)
	for i, s := range sessions {
		fs[i] = func() {
			if errs[i] = s.Tick(inputs[i]); errs[i] != nil {
				failed.Store(true)
			}
		}
	}
	worker.Wait(fs...)
	if !failed.Load() {
		return nil
	}
	return errs
}
