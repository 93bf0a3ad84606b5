package character

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/prediction"
)

// Input is a single tick of player intent.
type Input struct {
	// MoveInput is the raw stick vector, X pointing right and Y pointing forward.
	MoveInput mgl32.Vec2
	// MoveWorldInput is the stick vector in world space (X, Z). If zero, it is derived from MoveInput
	// rotated by ControlYaw.
	MoveWorldInput mgl32.Vec2

	Walk   bool
	Sprint bool
	Strafe bool
	Aim    bool
	Crouch bool

	WallRun bool
	Slide   bool
	Prone   bool

	// DesiredYaw is the yaw faced while aiming or strafing, in degrees.
	DesiredYaw float32
	// ControlYaw is the yaw of the camera the stick input is relative to, in degrees.
	ControlYaw float32

	DeltaTime float32
}

// Intents returns the boolean intents of the input.
func (in Input) Intents() prediction.Intents {
	return prediction.Intents{
		Walk:    in.Walk,
		Sprint:  in.Sprint,
		Strafe:  in.Strafe,
		Aim:     in.Aim,
		WallRun: in.WallRun,
		Slide:   in.Slide,
		Prone:   in.Prone,
		Crouch:  in.Crouch,
	}
}

// WorldInput returns the world space input vector of the tick.
func (in Input) WorldInput() mgl32.Vec2 {
	if in.MoveWorldInput != (mgl32.Vec2{}) {
		return in.MoveWorldInput
	}
	forward, right := game.DirectionVector(in.ControlYaw), game.RightVector(in.ControlYaw)
	world := forward.Mul(in.MoveInput.Y()).Add(right.Mul(in.MoveInput.X()))
	return mgl32.Vec2{world.X(), world.Z()}
}

// frame is everything a single simulated tick consumes, built either from live input or from a saved move
// being replayed or received by the authority.
type frame struct {
	tick uint64
	dt   float32

	accel          mgl32.Vec3
	moveInput      mgl32.Vec2
	moveWorldInput mgl32.Vec2
	desiredYaw     float32

	intents prediction.Intents
}

func frameFromInput(tick uint64, in Input) frame {
	world := in.WorldInput()
	return frame{
		tick:           tick,
		dt:             in.DeltaTime,
		accel:          mgl32.Vec3{world.X(), 0, world.Y()},
		moveInput:      in.MoveInput,
		moveWorldInput: world,
		desiredYaw:     in.DesiredYaw,
		intents:        in.Intents(),
	}
}

func frameFromMove(m prediction.SavedMove) frame {
	f := frame{
		tick:       m.Tick,
		dt:         m.DeltaTime,
		accel:      m.Acceleration,
		desiredYaw: m.DesiredYaw,
		intents:    m.Intents(),
	}
	if m.GaitSystemEnabled {
		f.moveInput, f.moveWorldInput = m.MoveInput, m.MoveWorldInput
	} else {
		// Without the gait system the stick is not captured, so the acceleration stands in for both.
		f.moveWorldInput = mgl32.Vec2{m.Acceleration.X(), m.Acceleration.Z()}
		f.moveInput = f.moveWorldInput
	}
	return f
}
