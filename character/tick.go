package character

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/assert"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/movesim"
	"github.com/oomph-ac/locomotion/prediction"
	"github.com/oomph-ac/locomotion/replication"
)

// Tick simulates a single tick of input for the given role. Simulated proxies never simulate and are only
// driven by ApplySnapshot. The saved move of the tick is returned, together with false if nothing was
// simulated because the role does not simulate, there was no time to integrate or no collider.
// Roles that record moves store the move in the prediction buffer. The authority acknowledges its own
// moves right away.
func (c *Character) Tick(role replication.SimulationRole, in Input) (prediction.SavedMove, bool) {
	if !role.SimulatesPhysics() {
		c.Dbg.Notify(DebugModeMovementSim, true, "tick skipped for role %v", role)
		return prediction.SavedMove{}, false
	}
	if in.DeltaTime < game.MinTickDelta || c.stepper.Collider == nil {
		c.Dbg.Notify(DebugModeMovementSim, true, "tick skipped (dt=%v collider=%v)", in.DeltaTime, c.stepper.Collider != nil)
		return prediction.SavedMove{}, false
	}

	f := frameFromInput(c.tick+1, in)
	move := c.simulate(role, f)
	c.tick = f.tick

	if role.RecordsMoves() {
		if err := c.buffer.Record(move); err != nil {
			c.log.Error("unable to record move", "tick", move.Tick, "error", err)
		}
		if role == replication.RoleAuthority {
			c.buffer.Acknowledge(move.Tick)
			c.serverTick = move.Tick
		}
	}
	return move, true
}

// simulate runs a single frame: gait, rotation, custom mode entry and the movement integrator, in that
// order. The saved move describing the frame and its outcome is returned.
func (c *Character) simulate(role replication.SimulationRole, f frame) prediction.SavedMove {
	c.role = role

	c.state.Input.Invalidate()
	c.state.Input.Store(f.tick, f.moveInput, f.moveWorldInput)
	c.applyIntents(f.intents)

	c.updateGait(f)
	c.updateRotation(f)
	c.updateCustomModes()

	res := c.stepper.Step(&c.move, movesim.Input{Acceleration: f.accel, DeltaTime: f.dt})
	c.Dbg.Notify(
		DebugModeMovementSim,
		true,
		"tick=%d role=%v outcome=%d pos=%v vel=%v mode=%v custom=%v",
		f.tick, role, res.Outcome, res.Position, res.Velocity, res.Mode, c.state.CustomMode,
	)
	c.checkInvariants()

	c.Dbg.Watch(DebugModeGait, "gait", c.state.Gait)
	c.Dbg.Watch(DebugModeGait, "max_speed", c.stepper.Hooks.MaxSpeed(&c.move))
	c.Dbg.Watch(DebugModeRotations, "yaw", c.move.Yaw)
	c.Dbg.Watch(DebugModeRotations, "rotation_mode", c.state.RotationMode())
	return c.savedMove(f)
}

// applyIntents writes the intents of a tick into the locomotion state.
func (c *Character) applyIntents(in prediction.Intents) {
	c.state.WalkRequested = in.Walk
	c.state.SprintRequested = in.Sprint
	c.state.Strafing = in.Strafe
	c.state.Aiming = in.Aim
	c.state.Crouched = in.Crouch
	c.state.WallRunKeyDown = in.WallRun
	c.state.SlideKeyDown = in.Slide
	c.state.ProneKeyDown = in.Prone
}

// intents returns the intents currently held by the locomotion state.
func (c *Character) intents() prediction.Intents {
	return prediction.Intents{
		Walk:    c.state.WalkRequested,
		Sprint:  c.state.SprintRequested,
		Strafe:  c.state.Strafing,
		Aim:     c.state.Aiming,
		WallRun: c.state.WallRunKeyDown,
		Slide:   c.state.SlideKeyDown,
		Prone:   c.state.ProneKeyDown,
		Crouch:  c.state.Crouched,
	}
}

func (c *Character) updateGait(f frame) {
	permitted := locomotion.CanSprint(locomotion.SprintQuery{
		SprintRequested:  c.state.SprintRequested,
		Acceleration:     f.accel,
		FacingYaw:        c.move.Yaw,
		OrientToMovement: c.state.RotationMode() == locomotion.RotationModeOrientToMovement,
	})

	var gait locomotion.Gait
	switch {
	case c.cfg.UseGaitSystem:
		moveInput, moveWorldInput := c.cachedInput(f.tick)
		gait = locomotion.ResolveGait(locomotion.GaitInput{
			MoveInput:       moveInput,
			MoveWorldInput:  moveWorldInput,
			SprintRequested: c.state.SprintRequested,
			WalkRequested:   c.state.WalkRequested,
			SprintPermitted: permitted,
			StickMode:       c.cfg.StickMode,
			Threshold:       c.cfg.AnalogWalkRunThreshold,
		})
	case permitted:
		gait = locomotion.GaitSprint
	case c.state.WalkRequested:
		gait = locomotion.GaitWalk
	default:
		gait = locomotion.GaitRun
	}
	c.setGait(gait)
}

func (c *Character) setGait(gait locomotion.Gait) {
	old := c.state.Gait
	if old == gait {
		return
	}
	c.state.Gait = gait
	c.Dbg.Notify(DebugModeGait, true, "gait %v -> %v", old, gait)
	if !c.replaying {
		c.handler.HandleGaitChanged(old, gait)
	}
}

// rotationTarget returns the yaw the character turns towards this tick, if any.
func (c *Character) rotationTarget(f frame) (float32, bool) {
	switch {
	case c.state.RotationMode() == locomotion.RotationModeFaceTarget:
		return f.desiredYaw, true
	case c.state.IsWallRunning() && c.state.WallRunDirection.LenSqr() > 0:
		return game.YawFromVector(c.state.WallRunDirection), true
	case game.Vec3HzDistSqr(f.accel) > 1e-8:
		return game.YawFromVector(f.accel), true
	}
	return 0, false
}

func (c *Character) updateRotation(f frame) {
	target, ok := c.rotationTarget(f)
	if !ok {
		return
	}
	rate := c.cfg.RotationRate(c.move.Airborne())
	yaw := game.WrapYawDelta(locomotion.StepYaw(c.move.Yaw, target, rate, f.dt))
	if math32.Abs(game.WrapYawDelta(yaw-c.move.Yaw)) > 1e-3 {
		c.Dbg.Notify(DebugModeRotations, true, "yaw %.2f -> %.2f (target=%.2f rate=%v)", c.move.Yaw, yaw, target, rate)
	}
	c.move.Yaw = yaw
}

// updateCustomModes enters a custom mode if one of the custom mode keys is held and its conditions are met.
func (c *Character) updateCustomModes() {
	if c.state.CustomMode != locomotion.CustomModeNone {
		return
	}
	switch {
	case c.state.SlideKeyDown && c.BeginSlide():
	case c.state.ProneKeyDown && c.BeginProne():
	case c.state.WallRunKeyDown && c.move.Airborne() && c.BeginWallRun(c.role):
	}
}

// checkInvariants panics if the character ended a tick in a state that can only be reached through a
// programming error.
func (c *Character) checkInvariants() {
	custom := c.state.CustomMode != locomotion.CustomModeNone
	assert.IsTrue(
		c.state.CustomMode.Valid() && custom == (c.move.Mode == movesim.ModeCustom),
		game.ErrorInternalMultipleModes,
		fmt.Sprintf("custom=%v movement=%v", c.state.CustomMode, c.move.Mode),
	)
	assert.IsTrue(c.move.HalfHeight == c.halfHeightFor(c.state.CustomMode), game.ErrorInternalInvalidCapsule, c.move.HalfHeight)
	assert.IsTrue(c.move.PlaneConstrained == c.state.IsWallRunning(), game.ErrorInternalMultipleModes, "plane constraint outside wall-run")
}

// savedMove builds the saved move describing the frame and the state it left the character in.
func (c *Character) savedMove(f frame) prediction.SavedMove {
	m := prediction.SavedMove{
		FirstTick:    f.tick,
		Tick:         f.tick,
		DeltaTime:    f.dt,
		Acceleration: f.accel,
		DesiredYaw:   f.desiredYaw,

		GaitSystemEnabled: c.cfg.UseGaitSystem,
		Gait:              c.state.Gait,

		EndPosition:   c.move.Pos,
		EndVelocity:   c.move.Vel,
		EndCustomMode: c.state.CustomMode,
	}
	m.UpdateFromCompressedFlags(prediction.Compress(c.intents()))
	if m.GaitSystemEnabled {
		m.MoveInput, m.MoveWorldInput = c.cachedInput(f.tick)
	}
	return m
}

// cachedInput returns the input vectors computed for the tick being simulated.
func (c *Character) cachedInput(tick uint64) (moveInput, moveWorldInput mgl32.Vec2) {
	moveInput, moveWorldInput, ok := c.state.Input.Lookup(tick)
	assert.IsTrue(ok, game.ErrorInternalStaleInputCache, tick)
	return moveInput, moveWorldInput
}
