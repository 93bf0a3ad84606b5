package locomotion

import (
	"github.com/chewxy/math32"
	"github.com/oomph-ac/locomotion/game"
)

// RotationMode is what a character turns towards.
type RotationMode uint8

const (
	// RotationModeOrientToMovement turns the character towards its acceleration.
	RotationModeOrientToMovement RotationMode = iota
	// RotationModeFaceTarget turns the character towards an externally supplied desired yaw.
	RotationModeFaceTarget
)

func (m RotationMode) String() string {
	if m == RotationModeFaceTarget {
		return "face_target"
	}
	return "orient_to_movement"
}

// RotationModeFor returns the rotation mode for the given aim and strafe flags. It must be evaluated the
// same way on every role, proxies included.
func RotationModeFor(aiming, strafing bool) RotationMode {
	if aiming || strafing {
		return RotationModeFaceTarget
	}
	return RotationModeOrientToMovement
}

// RotationRate returns the turn rate, in degrees per second, for the given ground state. A negative rate
// means the character snaps to its target instantly.
func (c Config) RotationRate(airborne bool) float32 {
	if airborne {
		return c.FallingRotationRate
	}
	return c.GroundRotationRate
}

// StepYaw turns current towards target by at most rate*dt degrees. A negative rate snaps to the target.
func StepYaw(current, target, rate, dt float32) float32 {
	delta := game.WrapYawDelta(target - current)
	if rate < 0 {
		return current + delta
	}
	step := rate * dt
	if math32.Abs(delta) <= step {
		return current + delta
	}
	if delta < 0 {
		return current - step
	}
	return current + step
}
