package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// StickMode is how the magnitude of an analog move input selects a gait.
type StickMode uint8

const (
	// StickModeFixedSingleGait always treats input as full input, measured in world space.
	StickModeFixedSingleGait StickMode = iota
	// StickModeFixedWalkRun walks below the threshold and runs above it, measured in world space.
	StickModeFixedWalkRun
	// StickModeVariableSingleGait always treats input as full input, measured on the raw stick.
	StickModeVariableSingleGait
	// StickModeVariableWalkRun walks below the threshold and runs above it, measured on the raw stick.
	StickModeVariableWalkRun
)

func (m StickMode) String() string {
	switch m {
	case StickModeFixedSingleGait:
		return "fixed_single_gait"
	case StickModeFixedWalkRun:
		return "fixed_walk_run"
	case StickModeVariableSingleGait:
		return "variable_single_gait"
	case StickModeVariableWalkRun:
		return "variable_walk_run"
	default:
		return "unknown"
	}
}

// Variable reports whether the mode reads the raw stick vector rather than the world space one.
func (m StickMode) Variable() bool {
	return m == StickModeVariableSingleGait || m == StickModeVariableWalkRun
}

// SingleGait reports whether every non-zero input counts as full input.
func (m StickMode) SingleGait() bool {
	return m == StickModeFixedSingleGait || m == StickModeVariableSingleGait
}

// GaitInput is everything the gait resolver needs for a single tick.
type GaitInput struct {
	MoveInput      mgl32.Vec2
	MoveWorldInput mgl32.Vec2

	SprintRequested bool
	WalkRequested   bool
	// SprintPermitted is the result of CanSprint for the tick.
	SprintPermitted bool

	StickMode StickMode
	Threshold float32
}

// InputMagnitude returns the magnitude of whichever input vector the stick mode reads.
func (in GaitInput) InputMagnitude() float32 {
	if in.StickMode.Variable() {
		return in.MoveInput.Len()
	}
	return in.MoveWorldInput.Len()
}

// FullInput reports whether the input counts as full input for the stick mode.
func (in GaitInput) FullInput() bool {
	if in.StickMode.SingleGait() {
		return true
	}
	return in.InputMagnitude() >= in.Threshold
}

// ResolveGait derives the gait for a tick from the input magnitude and the walk/sprint modifiers.
func ResolveGait(in GaitInput) Gait {
	if in.FullInput() {
		if in.SprintRequested && in.SprintPermitted {
			return GaitSprint
		}
		return GaitRun
	}
	if in.WalkRequested {
		return GaitWalk
	}
	return GaitRun
}

// SprintQuery describes the conditions sprinting is checked against.
type SprintQuery struct {
	SprintRequested bool
	// Acceleration is the world space acceleration input for the tick. Only its horizontal part is used.
	Acceleration mgl32.Vec3
	// FacingYaw is the current facing of the character, in degrees.
	FacingYaw float32
	// OrientToMovement is true when the character rotates towards its movement.
	OrientToMovement bool
}

// CanSprint returns whether the character is permitted to sprint. A zero acceleration input never
// permits sprinting.
func CanSprint(q SprintQuery) bool {
	if !q.SprintRequested {
		return false
	}
	accel := game.Horizontal(q.Acceleration)
	if accel.LenSqr() <= 1e-8 {
		return false
	}
	if q.OrientToMovement {
		return true
	}
	delta := game.WrapYawDelta(game.YawFromVector(accel) - q.FacingYaw)
	if delta < 0 {
		delta = -delta
	}
	return delta <= game.SprintMaxFacingAngle
}

// ParseStickMode returns the stick mode with the given name, as returned by StickMode.String.
func ParseStickMode(name string) (StickMode, bool) {
	for m := StickModeFixedSingleGait; m <= StickModeVariableWalkRun; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}
