package replication

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/movesim"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/prediction"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

const (
	IDMove uint8 = iota + 1
	IDAck
	IDCorrection
	IDSnapshot
)

// MaxMovesPerMessage is the most moves a single move message may carry.
const MaxMovesPerMessage = 64

// Message is a single message sent over the replication channel.
type Message interface {
	ID() uint8
	Marshal(io protocol.IO)
}

// MoveMessage carries moves from the owning client to the authority, oldest first.
type MoveMessage struct {
	Moves []prediction.SavedMove
}

func (*MoveMessage) ID() uint8 {
	return IDMove
}

func (pk *MoveMessage) Marshal(io protocol.IO) {
	count := uint32(len(pk.Moves))
	io.Varuint32(&count)
	if count > MaxMovesPerMessage {
		panic(oerror.New("move message carries %d moves, max is %d", count, MaxMovesPerMessage))
	}
	if len(pk.Moves) != int(count) {
		pk.Moves = make([]prediction.SavedMove, count)
	}
	for i := range pk.Moves {
		marshalMove(io, &pk.Moves[i])
	}
}

// AckMessage acknowledges every move up to and including Tick.
type AckMessage struct {
	Tick uint64
}

func (*AckMessage) ID() uint8 {
	return IDAck
}

func (pk *AckMessage) Marshal(io protocol.IO) {
	io.Varuint64(&pk.Tick)
}

// CorrectionMessage rejects the move ending at Tick and carries the authoritative state after it.
type CorrectionMessage struct {
	Tick     uint64
	Snapshot Snapshot
}

func (*CorrectionMessage) ID() uint8 {
	return IDCorrection
}

func (pk *CorrectionMessage) Marshal(io protocol.IO) {
	io.Varuint64(&pk.Tick)
	pk.Snapshot.Marshal(io)
}

// SnapshotMessage carries the full state of a character to its proxies.
type SnapshotMessage struct {
	Snapshot Snapshot
}

func (*SnapshotMessage) ID() uint8 {
	return IDSnapshot
}

func (pk *SnapshotMessage) Marshal(io protocol.IO) {
	pk.Snapshot.Marshal(io)
}

// Snapshot is the full replicated state of a character.
type Snapshot struct {
	Tick uint64

	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Yaw      float32

	MovementMode movesim.Mode
	OnGround     bool

	Gait  locomotion.Gait
	Flags prediction.CompressedFlags

	CustomMode       locomotion.CustomMode
	WallRunDirection mgl32.Vec3
	WallRunSide      locomotion.WallRunSide

	Radius     float32
	HalfHeight float32
}

// Marshal ...
func (s *Snapshot) Marshal(io protocol.IO) {
	io.Varuint64(&s.Tick)
	io.Vec3(&s.Position)
	io.Vec3(&s.Velocity)
	io.Float32(&s.Yaw)

	mode := uint8(s.MovementMode)
	io.Uint8(&mode)
	s.MovementMode = movesim.Mode(mode)
	io.Bool(&s.OnGround)

	gait := uint8(s.Gait)
	io.Uint8(&gait)
	s.Gait = locomotion.Gait(gait)
	flags := uint8(s.Flags)
	io.Uint8(&flags)
	s.Flags = prediction.CompressedFlags(flags)

	customMode := uint8(s.CustomMode)
	io.Uint8(&customMode)
	s.CustomMode = locomotion.CustomMode(customMode)
	io.Vec3(&s.WallRunDirection)
	side := uint8(s.WallRunSide)
	io.Uint8(&side)
	s.WallRunSide = locomotion.WallRunSide(side)

	io.Float32(&s.Radius)
	io.Float32(&s.HalfHeight)
}

func marshalMove(io protocol.IO, m *prediction.SavedMove) {
	io.Varuint64(&m.FirstTick)
	io.Varuint64(&m.Tick)
	io.Float32(&m.DeltaTime)
	io.Vec3(&m.Acceleration)
	io.Float32(&m.DesiredYaw)

	flags := uint8(m.CompressedFlags())
	io.Uint8(&flags)
	m.UpdateFromCompressedFlags(prediction.CompressedFlags(flags))

	io.Bool(&m.GaitSystemEnabled)
	gait := uint8(m.Gait)
	io.Uint8(&gait)
	m.Gait = locomotion.Gait(gait)
	io.Vec2(&m.MoveInput)
	io.Vec2(&m.MoveWorldInput)

	io.Vec3(&m.EndPosition)
	io.Vec3(&m.EndVelocity)
	mode := uint8(m.EndCustomMode)
	io.Uint8(&mode)
	m.EndCustomMode = locomotion.CustomMode(mode)
}
