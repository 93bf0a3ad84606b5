package movesim

import "github.com/go-gl/mathgl/mgl32"

// Outcome describes which path the stepper took for the current tick.
type Outcome uint8

const (
	OutcomeNormal Outcome = iota
	// OutcomeMissingContext is returned when the stepper has no collider or hooks. Nothing is changed.
	OutcomeMissingContext
	// OutcomeNoTime is returned for ticks too short to integrate. Nothing is changed.
	OutcomeNoTime
)

// Result captures the outcome of a single tick.
type Result struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Movement mgl32.Vec3

	Mode     Mode
	OnGround bool
	Landed   bool
	CollideX bool
	CollideY bool
	CollideZ bool

	Outcome Outcome
}
