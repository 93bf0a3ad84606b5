package movesim

const (
	DefaultMaxSpeed            = 600.0
	DefaultMaxAcceleration     = 2048.0
	DefaultBrakingDeceleration = 2048.0
	DefaultGroundFriction      = 8.0

	// BrakingFrictionFactor scales ground friction while braking.
	BrakingFrictionFactor = 2.0
	// BrakingStopSpeed is the speed below which braking stops a character entirely.
	BrakingStopSpeed = 1.0
)
