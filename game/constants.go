package game

const (
	// DefaultGravity is the downwards acceleration applied to falling characters, in units/s².
	DefaultGravity = 980.0
	// DefaultWalkableFloorAngle is the steepest surface angle, in degrees, that still counts as a floor.
	DefaultWalkableFloorAngle = 44.765
	// DefaultAirControl is the fraction of ground acceleration available while airborne.
	DefaultAirControl = 0.05

	DefaultCapsuleRadius     = 42.0
	DefaultCapsuleHalfHeight = 96.0

	// SprintMaxFacingAngle is the widest angle, in degrees, between facing and acceleration that still
	// permits sprinting when the character is not oriented to its movement.
	SprintMaxFacingAngle = 50.0

	// CeilingNormalY is the lowest vertical normal component a surface may have before it is considered
	// a ceiling.
	CeilingNormalY = -0.05

	// MinTickDelta is the smallest delta time the simulation will integrate.
	MinTickDelta = 1e-6
)
