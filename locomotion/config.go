package locomotion

import (
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/oerror"
)

// Config holds the tunables of the locomotion model.
type Config struct {
	WalkSpeeds   SpeedSet
	RunSpeeds    SpeedSet
	SprintSpeeds SpeedSet
	CrouchSpeeds SpeedSet
	// StrafeCurve is the direction blend response curve. Nil disables direction dependent speeds.
	StrafeCurve *Curve

	UseGaitSystem          bool
	StickMode              StickMode
	AnalogWalkRunThreshold float32

	// FallingRotationRate and GroundRotationRate are in degrees per second. Negative values snap.
	FallingRotationRate float32
	GroundRotationRate  float32

	WalkableFloorAngle float32

	WallRunSpeed          float32
	WallRunTraceTolerance float32
	WallRunGravityScale   float32
	// WallRunProbeLead is how far ahead along the run direction wall probes start.
	WallRunProbeLead float32
	// WallRunProbeReach is how far sideways wall probes reach.
	WallRunProbeReach float32

	SlideSpeed             float32
	SlideDeceleration      float32
	MinSlideSpeed          float32
	SlideCapsuleHalfHeight float32

	ProneSpeed             float32
	ProneCapsuleHalfHeight float32
}

// DefaultConfig returns the default locomotion tunables.
func DefaultConfig() Config {
	return Config{
		WalkSpeeds:   SpeedSet{Forward: 200, Strafe: 180, Backward: 150},
		RunSpeeds:    SpeedSet{Forward: 500, Strafe: 350, Backward: 300},
		SprintSpeeds: SpeedSet{Forward: 700, Strafe: 700, Backward: 700},
		CrouchSpeeds: SpeedSet{Forward: 225, Strafe: 200, Backward: 180},

		UseGaitSystem:          true,
		StickMode:              StickModeFixedSingleGait,
		AnalogWalkRunThreshold: 0.7,

		FallingRotationRate: 200,
		GroundRotationRate:  -1,

		WalkableFloorAngle: game.DefaultWalkableFloorAngle,

		WallRunSpeed:          625,
		WallRunTraceTolerance: 50,
		WallRunGravityScale:   0.1,
		WallRunProbeLead:      20,
		WallRunProbeReach:     100,

		SlideSpeed:             800,
		SlideDeceleration:      1000,
		MinSlideSpeed:          200,
		SlideCapsuleHalfHeight: 40,

		ProneSpeed:             100,
		ProneCapsuleHalfHeight: 30,
	}
}

// SpeedModel returns the speed model described by the config.
func (c Config) SpeedModel() SpeedModel {
	return SpeedModel{
		Walk:   c.WalkSpeeds,
		Run:    c.RunSpeeds,
		Sprint: c.SprintSpeeds,
		Crouch: c.CrouchSpeeds,
		Curve:  c.StrafeCurve,
	}
}

// Validate checks that the config describes a usable locomotion model against a capsule of the given
// default half height.
func (c Config) Validate(defaultHalfHeight float32) error {
	if c.AnalogWalkRunThreshold < 0 || c.AnalogWalkRunThreshold > 1 {
		return oerror.New("analog walk/run threshold %v must be within [0, 1]", c.AnalogWalkRunThreshold)
	}
	if c.SlideCapsuleHalfHeight <= 0 || c.SlideCapsuleHalfHeight > defaultHalfHeight {
		return oerror.New("slide capsule half height %v must be within (0, %v]", c.SlideCapsuleHalfHeight, defaultHalfHeight)
	}
	if c.ProneCapsuleHalfHeight <= 0 || c.ProneCapsuleHalfHeight > defaultHalfHeight {
		return oerror.New("prone capsule half height %v must be within (0, %v]", c.ProneCapsuleHalfHeight, defaultHalfHeight)
	}
	if c.MinSlideSpeed < 0 || c.SlideDeceleration < 0 {
		return oerror.New("slide speeds must not be negative")
	}
	if c.WallRunTraceTolerance < 0 || c.WallRunProbeReach <= 0 {
		return oerror.New("wall-run probe tolerance %v and reach %v are invalid", c.WallRunTraceTolerance, c.WallRunProbeReach)
	}
	if c.StickMode > StickModeVariableWalkRun {
		return oerror.New("unknown stick mode %d", c.StickMode)
	}
	return nil
}
