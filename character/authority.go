package character

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/prediction"
	"github.com/oomph-ac/locomotion/replication"
)

// MaxMoveDelta is the longest delta time the authority simulates for a single received move.
const MaxMoveDelta = 0.25

// ServerMove simulates a move received from the owner of the character on the authority. Intents are
// taken from the compressed flags of the move only. The move is acknowledged if the authoritative end
// position is within the correction threshold of the position the client reported, and corrected with the
// authoritative state otherwise. Moves older than the last processed one are ignored and nil is returned.
func (c *Character) ServerMove(m prediction.SavedMove) replication.Message {
	if m.Tick <= c.serverTick {
		c.Dbg.Notify(DebugModePrediction, true, "stale move %d ignored (last=%d)", m.Tick, c.serverTick)
		return nil
	}
	if c.stepper.Collider == nil {
		return nil
	}
	m.UpdateFromCompressedFlags(m.CompressedFlags())
	m.DeltaTime = mgl32.Clamp(m.DeltaTime, game.MinTickDelta, MaxMoveDelta)
	if m.Acceleration.LenSqr() > 1 {
		m.Acceleration = m.Acceleration.Normalize()
	}

	result := c.simulate(replication.RoleAuthority, frameFromMove(m))
	c.serverTick, c.tick = m.Tick, m.Tick

	diff := result.EndPosition.Sub(m.EndPosition).Len()
	if diff > c.correctionThreshold || result.EndCustomMode != m.EndCustomMode {
		c.Dbg.NotifyValues(
			DebugModePrediction,
			true,
			"correcting move",
			"tick", m.Tick,
			"diff", diff,
			"client", m.EndPosition,
			"server", result.EndPosition,
			"custom", result.EndCustomMode,
		)
		return &replication.CorrectionMessage{Tick: m.Tick, Snapshot: c.Snapshot()}
	}
	return &replication.AckMessage{Tick: m.Tick}
}

// ServerMoves processes every move of a move message in order. The returned message is the correction of
// the last corrected move if any move was corrected, and the acknowledgement of the last move otherwise.
func (c *Character) ServerMoves(moves []prediction.SavedMove) replication.Message {
	var reply, correction replication.Message
	for _, m := range moves {
		msg := c.ServerMove(m)
		if msg == nil {
			continue
		}
		if _, ok := msg.(*replication.CorrectionMessage); ok {
			correction = msg
		}
		reply = msg
	}
	if correction != nil {
		if _, ok := reply.(*replication.AckMessage); ok {
			// A later move was fine, but the client still predicted on top of the corrected one.
			return &replication.CorrectionMessage{Tick: c.serverTick, Snapshot: c.Snapshot()}
		}
		return correction
	}
	return reply
}

// LastServerMove returns the tick of the last move processed by the authority.
func (c *Character) LastServerMove() uint64 {
	return c.serverTick
}
