package movesim

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// Step runs a single movement tick and returns the resulting state. Ticks without a collider, hooks or
// time to integrate change nothing.
func (s *Stepper) Step(state *State, in Input) Result {
	if state == nil {
		return Result{Outcome: OutcomeMissingContext}
	}
	if s.Collider == nil || s.Hooks == nil {
		return s.resultFromState(state, mgl32.Vec3{}, false, OutcomeMissingContext)
	}
	if in.DeltaTime < game.MinTickDelta {
		return s.resultFromState(state, mgl32.Vec3{}, false, OutcomeNoTime)
	}

	wasOnGround := state.OnGround
	state.LastVel = state.Vel
	if state.Mode != ModeCustom || !s.Hooks.StepCustom(state, in) {
		s.standardVelocity(state, in)
	}
	state.Vel = state.ConstrainToPlane(state.Vel)
	s.debugf("mode=%v preCollideVel=%v", state.Mode, state.Vel)

	delta := state.Vel.Mul(in.DeltaTime)
	moved := s.collide(state, delta)

	xCollision := math32.Abs(delta.X()-moved.X()) >= 1e-4
	yCollision := math32.Abs(delta.Y()-moved.Y()) >= 1e-4
	zCollision := math32.Abs(delta.Z()-moved.Z()) >= 1e-4
	state.CollideX, state.CollideY, state.CollideZ = xCollision, yCollision, zCollision

	// Clipped axes lose their velocity.
	if xCollision {
		state.Vel[0] = 0
	}
	if yCollision {
		state.Vel[1] = 0
	}
	if zCollision {
		state.Vel[2] = 0
	}
	state.OnGround = (yCollision && delta.Y() < 0) || (wasOnGround && !yCollision && math32.Abs(delta.Y()) <= 1e-4)
	landed := state.OnGround && !wasOnGround
	s.debugf("finalVel=%v finalPos=%v onGround=%v landed=%v", state.Vel, state.Pos, state.OnGround, landed)

	if landed {
		s.Hooks.OnLanded(state)
	}
	switch {
	case state.Mode == ModeWalking && !state.OnGround:
		s.SetMode(state, ModeFalling)
	case state.Mode == ModeFalling && state.OnGround:
		s.SetMode(state, ModeWalking)
	}

	if xCollision {
		s.Hooks.OnImpact(state, Impact{Normal: mgl32.Vec3{-sign(delta.X()), 0, 0}, Axis: 0, Blocked: delta.X() - moved.X()})
	}
	if zCollision {
		s.Hooks.OnImpact(state, Impact{Normal: mgl32.Vec3{0, 0, -sign(delta.Z())}, Axis: 2, Blocked: delta.Z() - moved.Z()})
	}

	return s.resultFromState(state, moved, landed, OutcomeNormal)
}

// SetMode changes the standard movement mode of the state, notifying the hooks if it changed.
func (s *Stepper) SetMode(state *State, mode Mode) {
	old := state.Mode
	if old == mode {
		return
	}
	state.Mode = mode
	if s.Hooks != nil {
		s.Hooks.OnModeChanged(state, old, mode)
	}
}

// standardVelocity computes the velocity of a walking or falling tick.
func (s *Stepper) standardVelocity(state *State, in Input) {
	if state.Mode == ModeWalking && state.OnGround {
		s.GroundVelocity(state, in)
		// Gravity keeps the character pressed into the ground so contact is detected next tick.
		state.Vel[1] = -s.Options.Gravity * in.DeltaTime
		return
	}
	s.AirVelocity(state, in)
}

func (s *Stepper) resultFromState(state *State, moved mgl32.Vec3, landed bool, outcome Outcome) Result {
	return Result{
		Position: state.Pos,
		Velocity: state.Vel,
		Movement: moved,
		Mode:     state.Mode,
		OnGround: state.OnGround,
		Landed:   landed,
		CollideX: state.CollideX,
		CollideY: state.CollideY,
		CollideZ: state.CollideZ,
		Outcome:  outcome,
	}
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
