package movesim

import "github.com/go-gl/mathgl/mgl32"

// Input is a single tick of movement input.
type Input struct {
	// Acceleration is the world space input direction. Magnitudes above 1 are normalized.
	Acceleration mgl32.Vec3
	DeltaTime    float32
}

// HasAcceleration reports whether there is any horizontal input.
func (in Input) HasAcceleration() bool {
	return in.Acceleration.X()*in.Acceleration.X()+in.Acceleration.Z()*in.Acceleration.Z() > 1e-8
}

// Impact describes horizontal movement blocked by collision.
type Impact struct {
	// Normal is the normal of the blocking surface.
	Normal mgl32.Vec3
	// Axis is the axis movement was blocked on.
	Axis int
	// Blocked is the amount of movement that was removed by the collision.
	Blocked float32
}
