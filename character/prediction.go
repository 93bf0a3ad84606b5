package character

import (
	"github.com/oomph-ac/locomotion/assert"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/movesim"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/prediction"
	"github.com/oomph-ac/locomotion/replication"
)

// FlushMoves returns the moves recorded since the last flush, combined where possible, to be sent to the
// authority.
func (c *Character) FlushMoves() []prediction.SavedMove {
	return c.buffer.Flush()
}

// Acknowledge discards every recorded move up to and including the given tick.
func (c *Character) Acknowledge(tick uint64) int {
	n := c.buffer.Acknowledge(tick)
	c.Dbg.Notify(DebugModePrediction, n > 0, "acknowledged %d moves up to tick %d", n, tick)
	return n
}

// Reconcile rolls the character back to the authoritative state it had after the given tick and replays
// every move recorded after it, oldest first. Intents are never taken from the snapshot: the replayed moves
// carry their own. Notifications are not fired for replayed ticks, only for the net change the correction
// caused. The amount of moves replayed is returned.
func (c *Character) Reconcile(tick uint64, s replication.Snapshot) (int, error) {
	if err := c.validateSnapshot(s); err != nil {
		return 0, err
	}
	if hh := c.halfHeightFor(s.CustomMode); s.HalfHeight != hh {
		return 0, oerror.New(game.ErrorInternalInvalidCapsule, s.HalfHeight)
	}
	c.buffer.Acknowledge(tick)

	oldGait, oldMode, oldSide := c.state.Gait, c.state.CustomMode, c.state.WallRunSide
	c.replaying = true
	c.adoptSnapshot(s, false)

	replayed, last := 0, tick
	for _, m := range c.buffer.Pending() {
		assert.IsTrue(m.Tick > last, game.ErrorInternalReplayOutOfOrder, m.Tick, last)
		result := c.simulate(replication.RoleAutonomous, frameFromMove(m))
		result.FirstTick = m.FirstTick
		c.buffer.Update(result)
		last = m.Tick
		replayed++
	}
	c.replaying = false
	if last > c.tick {
		c.tick = last
	}

	if c.state.Gait != oldGait {
		c.handler.HandleGaitChanged(oldGait, c.state.Gait)
	}
	if c.state.CustomMode != oldMode {
		side := c.state.WallRunSide
		if c.state.CustomMode != locomotion.CustomModeWallRunning {
			side = oldSide
		}
		c.notifyCustomModeChange(oldMode, c.state.CustomMode, side)
	}
	c.Dbg.Notify(DebugModePrediction, true, "corrected at tick %d, replayed %d moves (pos=%v)", tick, replayed, c.move.Pos)
	c.handler.HandleCorrection(tick, replayed)
	return replayed, nil
}

// validateSnapshot checks that a snapshot describes a state the character can be put in.
func (c *Character) validateSnapshot(s replication.Snapshot) error {
	if !s.CustomMode.Valid() || s.MovementMode > movesim.ModeCustom || s.Gait > locomotion.GaitSprint {
		return oerror.New("snapshot %d holds unknown modes (movement=%d custom=%d gait=%d)", s.Tick, s.MovementMode, s.CustomMode, s.Gait)
	}
	if (s.CustomMode != locomotion.CustomModeNone) != (s.MovementMode == movesim.ModeCustom) {
		return oerror.New("snapshot %d movement mode %v does not match custom mode %v", s.Tick, s.MovementMode, s.CustomMode)
	}
	if s.Radius <= 0 || s.HalfHeight <= 0 {
		return oerror.New(game.ErrorInternalInvalidCapsule, s.HalfHeight)
	}
	return nil
}

// adoptSnapshot overwrites the state of the character with a snapshot. Intents are only taken from the
// snapshot if withIntents is true. Custom modes are adopted without running their entry or exit physics.
func (c *Character) adoptSnapshot(s replication.Snapshot, withIntents bool) {
	c.move.Pos, c.move.LastPos = s.Position, s.Position
	c.move.Vel, c.move.LastVel = s.Velocity, s.Velocity
	c.move.Yaw = s.Yaw
	c.move.OnGround = s.OnGround
	c.move.Radius, c.move.HalfHeight = s.Radius, s.HalfHeight
	c.stepper.SetMode(&c.move, s.MovementMode)

	old := c.state.CustomMode
	c.state.CustomMode = s.CustomMode
	if s.CustomMode == locomotion.CustomModeWallRunning {
		c.state.WallRunDirection, c.state.WallRunSide = s.WallRunDirection, s.WallRunSide
		c.move.SetPlaneConstraint(game.Up)
	} else {
		c.state.ClearWallRun()
		c.move.ReleasePlaneConstraint()
	}

	c.setGait(s.Gait)
	if withIntents {
		c.applyIntents(s.Flags.Intents())
	}
	c.notifyCustomModeChange(old, s.CustomMode, s.WallRunSide)
}
