package movesim

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// calcVelocity updates the horizontal velocity of the state for a tick of acceleration, friction and
// braking. The vertical velocity is left untouched.
func calcVelocity(state *State, in Input, maxSpeed, maxAccel, friction, braking, dt float32) {
	hz := game.Horizontal(state.Vel)
	accel := game.Horizontal(in.Acceleration)
	if accel.LenSqr() > 1 {
		accel = accel.Normalize()
	}
	accel = accel.Mul(maxAccel)
	hasAccel := accel.LenSqr() > 1e-8

	speed := hz.Len()
	if !hasAccel || speed > maxSpeed {
		hz = applyBraking(hz, friction*BrakingFrictionFactor, braking, dt)
	} else {
		// Turning friction pulls the velocity towards the acceleration direction.
		dir := game.SafeNormalize(accel)
		hz = hz.Sub(hz.Sub(dir.Mul(speed)).Mul(math32.Min(dt*friction, 1)))
	}

	if hasAccel {
		hz = hz.Add(accel.Mul(dt))
		if l := hz.Len(); l > maxSpeed && l > speed {
			hz = hz.Mul(math32.Max(maxSpeed, speed) / l)
		}
	}
	state.Vel = mgl32.Vec3{hz.X(), state.Vel.Y(), hz.Z()}
}

// applyBraking decelerates v, never reversing its direction.
func applyBraking(v mgl32.Vec3, friction, braking, dt float32) mgl32.Vec3 {
	if v.LenSqr() == 0 || (friction == 0 && braking == 0) {
		return v
	}
	decel := v.Mul(-friction).Add(game.SafeNormalize(v).Mul(-braking))
	braked := v.Add(decel.Mul(dt))
	if braked.Dot(v) <= 0 || braked.Len() < BrakingStopSpeed {
		return mgl32.Vec3{}
	}
	return braked
}

// GroundVelocity computes the horizontal velocity of a grounded tick from the hooks.
func (s *Stepper) GroundVelocity(state *State, in Input) {
	if s.Hooks == nil || in.DeltaTime < game.MinTickDelta {
		return
	}
	calcVelocity(
		state, in,
		s.Hooks.MaxSpeed(state),
		s.Hooks.MaxAcceleration(state),
		s.Hooks.GroundFriction(state),
		s.Hooks.BrakingDeceleration(state, in.HasAcceleration()),
		in.DeltaTime,
	)
}

// AirVelocity computes the velocity of an airborne tick from the hooks, including gravity.
func (s *Stepper) AirVelocity(state *State, in Input) {
	if s.Hooks == nil || in.DeltaTime < game.MinTickDelta {
		return
	}
	calcVelocity(
		state, in,
		s.Hooks.MaxSpeed(state),
		s.Hooks.MaxAcceleration(state)*s.Options.AirControl,
		0,
		0,
		in.DeltaTime,
	)
	state.Vel[1] -= s.Options.Gravity * in.DeltaTime
}
