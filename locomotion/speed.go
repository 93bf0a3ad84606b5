package locomotion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

const (
	// BaseAcceleration is the acceleration of walking and running characters, and of sprinting characters
	// moving at SprintAccelerationLowSpeed or slower.
	BaseAcceleration = 800.0
	// SprintTopAcceleration is the acceleration of sprinting characters moving at SprintAccelerationHighSpeed
	// or faster.
	SprintTopAcceleration       = 300.0
	SprintAccelerationLowSpeed  = 300.0
	SprintAccelerationHighSpeed = 700.0

	BrakingDecelerationNoInput = 2000.0
	BrakingDecelerationInput   = 500.0

	BaseGroundFriction = 5.0
	// SprintTopGroundFriction is reached by sprinting characters moving at SprintFrictionHighSpeed or faster.
	SprintTopGroundFriction = 3.0
	SprintFrictionHighSpeed = 500.0
)

// SpeedSet is a per-direction max speed tuple.
type SpeedSet struct {
	Forward  float32 `yaml:"forward"`
	Strafe   float32 `yaml:"strafe"`
	Backward float32 `yaml:"backward"`
}

// At returns the max speed for a direction blend in [0, 2], where 0 is forward, 1 is strafing and 2 is
// backwards.
func (s SpeedSet) At(blend float32) float32 {
	blend = mgl32.Clamp(blend, 0, 2)
	if blend <= 1 {
		return game.Lerp(s.Forward, s.Strafe, blend)
	}
	return game.Lerp(s.Strafe, s.Backward, blend-1)
}

// SpeedModel maps a gait and movement direction to the max speed, acceleration, braking and friction fed to
// the movement integrator. Its values are derived again every tick.
type SpeedModel struct {
	Walk   SpeedSet
	Run    SpeedSet
	Sprint SpeedSet
	Crouch SpeedSet

	// Curve maps the absolute angle between velocity and facing, in degrees, to a direction blend. A nil
	// curve always yields forward speed.
	Curve *Curve
}

// DirectionBlend returns the direction blend in [0, 2] for the given velocity and facing. Characters facing
// an external target always use forward speed.
func (m SpeedModel) DirectionBlend(velocity mgl32.Vec3, facingYaw float32, mode RotationMode) float32 {
	if m.Curve == nil || mode == RotationModeFaceTarget {
		return 0
	}
	if game.Vec3HzDistSqr(velocity) <= 1e-6 {
		return 0
	}
	angle := math32.Abs(game.WrapYawDelta(game.YawFromVector(velocity) - facingYaw))
	return mgl32.Clamp(m.Curve.Eval(angle), 0, 2)
}

// Speeds returns the speed tuple used for the given gait and crouch state.
func (m SpeedModel) Speeds(gait Gait, crouched bool) SpeedSet {
	if crouched {
		return m.Crouch
	}
	switch gait {
	case GaitWalk:
		return m.Walk
	case GaitSprint:
		return m.Sprint
	default:
		return m.Run
	}
}

// MaxSpeed returns the max ground speed for the gait, crouch state and direction blend.
func (m SpeedModel) MaxSpeed(gait Gait, crouched bool, blend float32) float32 {
	return m.Speeds(gait, crouched).At(blend)
}

// MaxAcceleration returns the acceleration available at the given speed.
func (m SpeedModel) MaxAcceleration(gait Gait, speed float32) float32 {
	if gait != GaitSprint {
		return BaseAcceleration
	}
	return game.MapRangeClamped(speed, SprintAccelerationLowSpeed, SprintAccelerationHighSpeed, BaseAcceleration, SprintTopAcceleration)
}

// BrakingDeceleration returns the braking deceleration depending on whether there is pending move input.
func (m SpeedModel) BrakingDeceleration(hasInput bool) float32 {
	if hasInput {
		return BrakingDecelerationInput
	}
	return BrakingDecelerationNoInput
}

// GroundFriction returns the ground friction at the given speed.
func (m SpeedModel) GroundFriction(gait Gait, speed float32) float32 {
	if gait != GaitSprint {
		return BaseGroundFriction
	}
	return game.MapRangeClamped(speed, 0, SprintFrictionHighSpeed, BaseGroundFriction, SprintTopGroundFriction)
}
