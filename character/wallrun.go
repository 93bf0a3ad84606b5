package character

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/movesim"
	"github.com/oomph-ac/locomotion/replication"
	"github.com/oomph-ac/locomotion/surface"
)

// wallRunKeysHeld reports whether the keys required to wall-run are held. Sprint is only required when
// the character is controlled on this instance.
func (c *Character) wallRunKeysHeld(role replication.SimulationRole) bool {
	if !c.state.WallRunKeyDown {
		return false
	}
	return !role.LocallyControlled(c.hostOwned) || c.state.SprintRequested
}

func (c *Character) wallProbe(dir mgl32.Vec3, side locomotion.WallRunSide) surface.WallProbe {
	return surface.WallProbe{
		Origin:    c.move.Centre(),
		Direction: dir,
		Side:      side,
		Right:     game.RightVector(c.move.Yaw),
		Tolerance: c.cfg.WallRunTraceTolerance,
		Lead:      c.cfg.WallRunProbeLead,
		Reach:     c.cfg.WallRunProbeReach,
		Ignore:    c.actor,
	}
}

// BeginWallRun attempts to start running along a wall next to the character. The character must be
// airborne with the wall-run key held, and sprint held if it is controlled on this instance. Both sides of
// the character are probed for a surface that may be wall-ran on. Nothing changes if the wall-run is refused.
func (c *Character) BeginWallRun(role replication.SimulationRole) bool {
	if !role.SimulatesCustomModes() || c.state.CustomMode != locomotion.CustomModeNone {
		return false
	}
	if !c.move.Airborne() || !c.wallRunKeysHeld(role) || c.tracer == nil {
		return false
	}
	hit, dir, side, ok := surface.FindWall(c.tracer, c.move.Centre(), game.RightVector(c.move.Yaw), c.cfg.WallRunProbeReach, c.cfg.WalkableFloorAngle, c.actor)
	if !ok {
		c.Dbg.Notify(DebugModeWallRun, true, "no wall found to run on")
		return false
	}
	c.Dbg.Notify(DebugModeWallRun, true, "wall found at %v (normal=%v side=%v)", hit.Position, hit.Normal, side)
	return c.startWallRun(dir, side)
}

// wallRunFromImpact starts a wall-run against a surface the character ran into while falling.
func (c *Character) wallRunFromImpact(normal mgl32.Vec3) {
	if !c.role.SimulatesCustomModes() || !c.wallRunKeysHeld(c.role) || c.tracer == nil {
		return
	}
	if !surface.CanSurfaceBeWallRan(normal, c.cfg.WalkableFloorAngle) {
		return
	}
	dir, side := surface.WallRunDirectionAndSide(normal, game.RightVector(c.move.Yaw))
	if c.startWallRun(dir, side) {
		c.Dbg.Notify(DebugModeWallRun, true, "wall-run started by impact (normal=%v)", normal)
	}
}

// startWallRun confirms the character is next to the wall and enters the wall-run.
func (c *Character) startWallRun(dir mgl32.Vec3, side locomotion.WallRunSide) bool {
	_, confirmed, ok := surface.IsNextToWall(c.tracer, c.wallProbe(dir, side))
	if !ok {
		c.Dbg.Notify(DebugModeWallRun, true, "wall-run refused: not next to wall (dir=%v side=%v)", dir, side)
		return false
	}
	c.state.WallRunDirection, c.state.WallRunSide = confirmed, side
	c.setCustomMode(locomotion.CustomModeWallRunning)
	return true
}

// stepWallRun computes the velocity of a wall-running tick. It returns false if the wall-run ended.
func (c *Character) stepWallRun(s *movesim.State, _ movesim.Input) bool {
	if !c.wallRunKeysHeld(c.role) {
		c.Dbg.Notify(DebugModeWallRun, true, "wall-run ended: keys released")
		c.EndWallRun()
		return false
	}
	_, dir, ok := surface.IsNextToWall(c.tracer, c.wallProbe(c.state.WallRunDirection, c.state.WallRunSide))
	if !ok {
		c.Dbg.Notify(DebugModeWallRun, true, "wall-run ended: wall lost")
		c.EndWallRun()
		return false
	}
	c.state.WallRunDirection = dir

	hz := dir.Mul(c.cfg.WallRunSpeed)
	vy := math32.Max(s.Vel.Y()*c.cfg.WallRunGravityScale, -c.cfg.WallRunSpeed*0.1)
	s.Vel = mgl32.Vec3{hz.X(), vy, hz.Z()}
	return true
}

// EndWallRun ends the wall-run of the character, if it is running along a wall. The character falls.
func (c *Character) EndWallRun() {
	if !c.state.IsWallRunning() {
		return
	}
	c.setCustomMode(locomotion.CustomModeNone)
}
