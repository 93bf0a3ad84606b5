package character

import (
	"github.com/oomph-ac/locomotion/prediction"
	"github.com/oomph-ac/locomotion/replication"
)

// Snapshot returns the full replicated state of the character.
func (c *Character) Snapshot() replication.Snapshot {
	return replication.Snapshot{
		Tick:             c.tick,
		Position:         c.move.Pos,
		Velocity:         c.move.Vel,
		Yaw:              c.move.Yaw,
		MovementMode:     c.move.Mode,
		OnGround:         c.move.OnGround,
		Gait:             c.state.Gait,
		Flags:            prediction.Compress(c.intents()),
		CustomMode:       c.state.CustomMode,
		WallRunDirection: c.state.WallRunDirection,
		WallRunSide:      c.state.WallRunSide,
		Radius:           c.move.Radius,
		HalfHeight:       c.move.HalfHeight,
	}
}

// ApplySnapshot overwrites the state of a proxy with a snapshot received from the authority. Custom modes
// are adopted as they are, the proxy never runs their physics. False is returned if the role is not driven
// by snapshots, or the snapshot is older than the current state, unchanged or invalid.
func (c *Character) ApplySnapshot(role replication.SimulationRole, s replication.Snapshot) bool {
	if !role.AppliesSnapshots() {
		return false
	}
	if s.Tick < c.tick {
		c.Dbg.Notify(DebugModeReplication, true, "stale snapshot %d dropped (tick=%d)", s.Tick, c.tick)
		return false
	}
	if err := c.validateSnapshot(s); err != nil {
		c.log.Warn("invalid snapshot dropped", "tick", s.Tick, "error", err)
		return false
	}
	c.tick = s.Tick
	if !c.proxyFilter.Changed(s) {
		return false
	}
	c.role = role
	c.adoptSnapshot(s, role.ReceivesOwnerState())
	c.Dbg.Notify(DebugModeReplication, true, "snapshot %d applied (pos=%v custom=%v)", s.Tick, s.Position, s.CustomMode)
	return true
}
